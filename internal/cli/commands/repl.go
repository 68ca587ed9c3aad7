package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/epochscript/internal/cli/output"
	"github.com/leapstack-labs/epochscript/pkg/core"
	"github.com/leapstack-labs/epochscript/pkg/parser"
)

const (
	replPrompt         = "eps> "
	replContinuePrompt = " ...> "
)

// NewREPLCommand creates the repl command.
func NewREPLCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse lines interactively",
		Long: `Start an interactive session that parses each entry and prints its
canonical S-expression.

An entry that ends inside an open bracket or string continues on the next
line; an empty line ends it early. Dot-commands control the session.`,
		Args: cobra.NoArgs,
		RunE: runREPL,
	}
	cmd.Flags().String("history-file", "", "REPL history file (default: user cache dir)")
	return cmd
}

func runREPL(cmd *cobra.Command, _ []string) error {
	cmdCtx := NewCommandContext(cmd)
	cfg := cmdCtx.Cfg

	historyFile := cfg.REPL.HistoryFile
	if cmd.Flags().Changed("history-file") {
		historyFile, _ = cmd.Flags().GetString("history-file")
	}
	if historyFile == "" {
		historyFile = defaultHistoryFile()
	}

	// Configure readline
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          replPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newREPLCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	// Print welcome message
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "EpochScript REPL")
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(cmd.OutOrStdout())

	session := newREPLSession(cmd.OutOrStdout(), cmd.ErrOrStderr(), cmdCtx.Renderer.Styles(), cfg.Raw)
	cmdCtx.Logger.Debug("repl started", "history", historyFile)

	// REPL loop
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			session.reset()
			rl.SetPrompt(replPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		prompt, quit := session.handleLine(line)
		if quit {
			break
		}
		rl.SetPrompt(prompt)
	}

	return nil
}

// defaultHistoryFile returns a history path under the user cache directory,
// or "" to disable history.
func defaultHistoryFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	dir = filepath.Join(dir, "epochscript")
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return ""
	}
	return filepath.Join(dir, "repl_history")
}

// replSession holds the state of one interactive session, independent of
// the terminal so it can be driven line by line.
type replSession struct {
	out    io.Writer
	errOut io.Writer
	styles *output.Styles
	raw    bool
	buf    strings.Builder
}

func newREPLSession(out, errOut io.Writer, styles *output.Styles, raw bool) *replSession {
	return &replSession{out: out, errOut: errOut, styles: styles, raw: raw}
}

func (s *replSession) reset() {
	s.buf.Reset()
}

// handleLine processes one input line and returns the next prompt and
// whether the session should end.
func (s *replSession) handleLine(line string) (prompt string, quit bool) {
	trimmed := strings.TrimSpace(line)

	if s.buf.Len() == 0 {
		if trimmed == "" {
			return replPrompt, false
		}
		// Handle dot-commands
		if strings.HasPrefix(trimmed, ".") {
			return replPrompt, s.handleDotCommand(trimmed)
		}
	}

	flush := trimmed == ""
	if !flush {
		s.buf.WriteString(line)
		s.buf.WriteString("\n")
	}
	src := s.buf.String()

	mod, err := s.parse(src)
	if err != nil && parser.Incomplete(err) && !flush {
		return replContinuePrompt, false
	}
	s.buf.Reset()

	if err != nil {
		writeParseError(s.errOut, s.styles, "<repl>", src, err)
		return replPrompt, false
	}
	if len(mod.Statements) > 0 {
		_, _ = fmt.Fprintln(s.out, core.SExpr(mod))
	}
	return replPrompt, false
}

func (s *replSession) parse(src string) (*core.Module, error) {
	if s.raw {
		return parser.ParseRaw(src)
	}
	return parser.Parse(src)
}

// handleDotCommand runs a dot-command and reports whether to quit.
func (s *replSession) handleDotCommand(line string) bool {
	command, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(command) {
	case ".quit", ".exit":
		return true

	case ".help":
		printREPLHelp(s.out)

	case ".raw":
		s.raw = !s.raw
		state := "off"
		if s.raw {
			state = "on"
		}
		_, _ = fmt.Fprintf(s.out, "raw mode %s\n", state)

	case ".tokens":
		if rest == "" {
			_, _ = fmt.Fprintln(s.errOut, "Usage: .tokens <source>")
			return false
		}
		toks, err := parser.Tokenize(rest)
		if err != nil {
			writeParseError(s.errOut, s.styles, "<repl>", rest, err)
			return false
		}
		for _, tok := range toks {
			_, _ = fmt.Fprintf(s.out, "%-12s %q\n", tok.Type, tok.Literal)
		}

	case ".builtins":
		for _, name := range parser.BuiltinsWithPrefix(rest) {
			_, _ = fmt.Fprintln(s.out, name)
		}

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printREPLHelp(w io.Writer) {
	help := `
Commands:
  .help              Show this help message
  .raw               Toggle printing the tree before desugaring
  .tokens <source>   Show the tokens of <source>
  .builtins [prefix] List reserved names
  .quit / .exit      Exit the REPL

Tips:
  - Each entry prints its canonical S-expression
  - An unclosed bracket or string continues on the next line
  - An empty line ends a continued entry
  - Use arrow keys to navigate history
`
	_, _ = fmt.Fprintln(w, help)
}

// newREPLCompleter creates a readline completer for dot-commands and
// reserved names.
func newREPLCompleter() *readline.PrefixCompleter {
	builtins := func(string) []string {
		return parser.BuiltinsWithPrefix("")
	}

	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".raw"),
		readline.PcItem(".tokens"),
		readline.PcItem(".builtins", readline.PcItemDynamic(builtins)),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
