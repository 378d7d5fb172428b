package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/hoshi/pkg/diagnostic"
	"github.com/leapstack-labs/hoshi/pkg/format"
	"github.com/leapstack-labs/hoshi/pkg/parser"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

// Compile lexes, parses and checks src, then emits SQL if no
// error-severity diagnostic was produced. A lex or parse failure is
// reported as a single fatal diagnostic in the Result, not as an error.
// The returned error is non-nil only when ctx is done.
func (e *Engine) Compile(ctx context.Context, src *token.Source) (*Result, error) {
	return e.run(ctx, src, true)
}

// Check is Compile without emission.
func (e *Engine) Check(ctx context.Context, src *token.Source) (*Result, error) {
	return e.run(ctx, src, false)
}

// CompileFile reads path and compiles it.
func (e *Engine) CompileFile(ctx context.Context, path string) (*Result, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return e.Compile(ctx, src)
}

// CheckFile reads path and checks it.
func (e *Engine) CheckFile(ctx context.Context, path string) (*Result, error) {
	src, err := readSource(path)
	if err != nil {
		return nil, err
	}
	return e.Check(ctx, src)
}

// CompileFiles compiles every path concurrently. Results are returned in
// the order of paths. The first read error cancels the remaining runs.
func (e *Engine) CompileFiles(ctx context.Context, paths []string) ([]*Result, error) {
	return e.runFiles(ctx, paths, e.CompileFile)
}

// CheckFiles checks every path concurrently, in the same manner as
// CompileFiles.
func (e *Engine) CheckFiles(ctx context.Context, paths []string) ([]*Result, error) {
	return e.runFiles(ctx, paths, e.CheckFile)
}

func (e *Engine) runFiles(ctx context.Context, paths []string, fn func(context.Context, string) (*Result, error)) ([]*Result, error) {
	results := make([]*Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	if e.concurrency > 0 {
		g.SetLimit(e.concurrency)
	}
	for i, path := range paths {
		g.Go(func() error {
			res, err := fn(gctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) run(ctx context.Context, src *token.Source, emit bool) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{
		RunID:  uuid.NewString(),
		Path:   src.Path,
		Source: src,
	}
	log := e.logger.With(slog.String("run_id", res.RunID), slog.String("file", src.Path))
	log.Debug("parsing source", "bytes", len(src.Raw))

	prog, err := parser.ParseSource(src)
	if err != nil {
		d, ok := parser.AsDiagnostic(err)
		if !ok {
			return nil, fmt.Errorf("parse %s: %w", src.Path, err)
		}
		log.Debug("parse failed", "error", err)
		res.Diagnostics = []diagnostic.Diagnostic{d}
		res.Fatal = true
		return res, nil
	}
	res.Program = prog

	res.Diagnostics = e.analyzer.Analyze(prog)
	if res.Diagnostics == nil {
		res.Diagnostics = []diagnostic.Diagnostic{}
	}
	log.Debug("checked program",
		"statements", len(prog.Statements),
		"diagnostics", len(res.Diagnostics))

	if res.ContainsError() {
		log.Info("emission skipped", "reason", ErrCheckFailed)
		return res, nil
	}
	if !emit {
		return res, nil
	}

	if e.pretty {
		res.SQL = format.PrettyWith(prog, e.format)
	} else {
		res.SQL = format.SQLWith(prog, e.format)
	}
	log.Debug("emitted sql", "length", len(res.SQL))
	return res, nil
}

func readSource(path string) (*token.Source, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is a user-named input file
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return token.NewSource(path, string(data)), nil
}
