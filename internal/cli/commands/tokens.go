package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/epochscript/internal/cli/output"
	"github.com/leapstack-labs/epochscript/pkg/parser"
	"github.com/leapstack-labs/epochscript/pkg/token"
)

// tokenRow is the structured form of one token.
type tokenRow struct {
	Kind    string `json:"kind" yaml:"kind"`
	Literal string `json:"literal" yaml:"literal"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Offset  int    `json:"offset" yaml:"offset"`
}

// NewTokensCommand creates the tokens command.
func NewTokensCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Print the token stream of a script",
		Long: `Run the lexer over a script and print every token with its kind,
literal text and position. Useful for checking how timeframes, numbers
and reserved names are classified.`,
		Example: `  # Tokenize a file
  epochscript tokens strategy.eps

  # Tokenize standard input as JSON
  echo "x = 1W-MON-1st" | epochscript tokens -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runTokens,
	}
}

func runTokens(cmd *cobra.Command, args []string) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	name, src, err := readSource(cmd, args)
	if err != nil {
		return err
	}

	toks, err := parser.Tokenize(src)
	if err != nil {
		writeParseError(r.ErrWriter(), r.Styles(), name, src, err)
		return ErrParseFailed
	}
	cmdCtx.Logger.Debug("tokenized script", "name", name, "tokens", len(toks))

	return renderTokens(r, toks)
}

func renderTokens(r *output.Renderer, toks []token.Token) error {
	rows := make([]tokenRow, len(toks))
	for i, tok := range toks {
		rows[i] = tokenRow{
			Kind:    tok.Type.String(),
			Literal: tok.Literal,
			Line:    tok.Pos.Line,
			Column:  tok.Pos.Column,
			Offset:  tok.Pos.Offset,
		}
	}

	if ok, err := r.Structured(rows); ok {
		return err
	}

	if r.EffectiveMode() == output.ModeSExpr {
		for _, row := range rows {
			r.Printf("(%s %q %d:%d)\n", row.Kind, row.Literal, row.Line, row.Column)
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Kind", "Literal", "Position"})
	for i, row := range rows {
		t.AppendRow(table.Row{i, row.Kind, row.Literal, fmt.Sprintf("%d:%d", row.Line, row.Column)})
	}
	t.Render()
	r.Printf("(%d tokens)\n", len(rows))
	return nil
}
