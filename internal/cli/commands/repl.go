package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/hoshi/internal/engine"
	"github.com/leapstack-labs/hoshi/pkg/lint"
	"github.com/leapstack-labs/hoshi/pkg/token"
)

const (
	replPrompt       = "hoshi> "
	replContinuation = "   ...> "
	replSourceName   = "<repl>"
)

var replKeywords = []string{
	"SELECT", "DISTINCT", "FROM", "JOIN", "ON", "WHERE", "GROUP", "BY",
	"ORDER", "ASC", "DESC", "LIMIT", "OFFSET", "AS", "AND", "OR", "AGGREGATE",
	"COUNT", "SUM", "AVG", "MIN", "MAX",
}

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	var historyFile string
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Compile Hoshi interactively",
		Long: `Start an interactive session. Input accumulates until a line ends
with a semicolon, then is compiled and the SQL or diagnostics are printed.

Commands:
  .help           Show help
  .pretty         Toggle pretty-printed output
  .rules          List checker rules
  .clear          Clear the screen
  .quit / .exit   Exit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmdCtx := NewCommandContext(cmd)
			return runREPL(cmd, cmdCtx)
		},
	}

	cmd.Flags().StringVar(&historyFile, "history-file", "", "History file, relative to the home directory")
	return cmd
}

func runREPL(cmd *cobra.Command, cmdCtx *CommandContext) error {
	ctx := cmd.Context()

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyPath(cmdCtx.Cfg.Repl.HistoryFile),
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmdCtx.Renderer
	out.Println("Hoshi REPL")
	out.Println("Type .help for commands, .quit to exit")
	out.Println()

	sess := newREPLSession(cmdCtx)
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			sess.reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}

		quit := sess.handleLine(ctx, line)
		if quit {
			break
		}
		rl.SetPrompt(sess.prompt())
	}
	return nil
}

// historyPath resolves a relative history file against the home
// directory. An empty name disables history.
func historyPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, name)
}

func newREPLCompleter() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(".help"),
		readline.PcItem(".pretty"),
		readline.PcItem(".rules"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	}
	for _, kw := range replKeywords {
		items = append(items, readline.PcItem(kw))
	}
	return readline.NewPrefixCompleter(items...)
}

// replSession holds the state of one interactive session apart from
// the line editor, so input handling can be driven directly.
type replSession struct {
	cmdCtx *CommandContext
	pretty bool
	buf    strings.Builder
}

func newREPLSession(cmdCtx *CommandContext) *replSession {
	return &replSession{cmdCtx: cmdCtx, pretty: cmdCtx.Cfg.Pretty}
}

func (s *replSession) reset() { s.buf.Reset() }

func (s *replSession) prompt() string {
	if s.buf.Len() > 0 {
		return replContinuation
	}
	return replPrompt
}

// handleLine consumes one line of input and reports whether the session
// should end.
func (s *replSession) handleLine(ctx context.Context, line string) bool {
	line = strings.TrimSpace(line)
	if line == "" {
		return false
	}

	if s.buf.Len() == 0 && strings.HasPrefix(line, ".") {
		return s.dotCommand(line)
	}

	s.buf.WriteString(line)
	if !strings.HasSuffix(line, ";") {
		s.buf.WriteString("\n")
		return false
	}

	input := s.buf.String()
	s.buf.Reset()
	s.compile(ctx, input)
	return false
}

func (s *replSession) compile(ctx context.Context, input string) {
	r := s.cmdCtx.Renderer
	cfg := s.cmdCtx.Cfg.EngineConfig(s.cmdCtx.Logger)
	cfg.Pretty = s.pretty

	res, err := engine.New(cfg).Compile(ctx, token.NewSource(replSourceName, input))
	if err != nil {
		r.Error(err.Error())
		return
	}
	s.cmdCtx.Reporter().Report(res.Diagnostics, res.Source)
	if res.SQL != "" {
		r.Println(res.SQL)
	}
}

func (s *replSession) dotCommand(line string) bool {
	r := s.cmdCtx.Renderer
	command := strings.ToLower(strings.Fields(line)[0])

	switch command {
	case ".quit", ".exit":
		return true
	case ".help":
		printREPLHelp(r.Writer())
	case ".pretty":
		s.pretty = !s.pretty
		if s.pretty {
			r.Muted("pretty output on")
		} else {
			r.Muted("pretty output off")
		}
	case ".rules":
		for _, rule := range lint.AllRules() {
			r.Printf("%s  %-20s %s\n", rule.ID, rule.Name, rule.DefaultSeverity)
		}
	case ".clear":
		r.Printf("\033[H\033[2J")
	default:
		r.Error(fmt.Sprintf("Unknown command: %s (type .help for commands)", command))
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .pretty         Toggle pretty-printed output
  .rules          List checker rules
  .clear          Clear the screen
  .quit / .exit   Exit the REPL

Tips:
  - Input is compiled once a line ends with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for dot commands and keywords
`
	_, _ = fmt.Fprintln(w, help)
}
