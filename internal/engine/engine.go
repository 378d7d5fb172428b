// Package engine drives a compile run: lex and parse a source, check the
// resulting program, and emit SQL when no error-severity diagnostic was
// raised.
package engine

import (
	"errors"
	"log/slog"

	"github.com/leapstack-labs/hoshi/pkg/format"
	"github.com/leapstack-labs/hoshi/pkg/lint"

	// Registers the built-in rules.
	_ "github.com/leapstack-labs/hoshi/pkg/lint/rules"
)

// ErrCheckFailed is returned when a run produced at least one
// error-severity diagnostic.
var ErrCheckFailed = errors.New("check failed")

// Engine compiles sources. It holds no per-run state and is safe for
// concurrent use.
type Engine struct {
	logger      *slog.Logger
	analyzer    *lint.Analyzer
	format      format.Options
	pretty      bool
	concurrency int
}

// Config holds engine configuration.
type Config struct {
	// Logger is the structured logger (optional, uses discard if nil)
	Logger *slog.Logger
	// Lint configures rule selection, severities and options (optional)
	Lint *lint.Config
	// Format controls emission
	Format format.Options
	// Pretty emits one clause per line instead of a single line
	Pretty bool
	// Concurrency bounds CompileFiles; zero or less means one file per
	// goroutine.
	Concurrency int
}

// New creates an engine.
func New(cfg Config) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	lintCfg := cfg.Lint
	if lintCfg == nil {
		lintCfg = lint.NewConfig()
	}

	logger.Debug("initializing engine",
		"rules", lint.Count(),
		"disabled", len(lintCfg.DisabledRules),
		"pretty", cfg.Pretty)

	return &Engine{
		logger:      logger,
		analyzer:    lint.NewAnalyzer(lintCfg),
		format:      cfg.Format,
		pretty:      cfg.Pretty,
		concurrency: cfg.Concurrency,
	}
}
