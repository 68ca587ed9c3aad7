package commands

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/jedib0t/go-pretty/v6/list"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/epochscript/internal/cli/output"
	"github.com/leapstack-labs/epochscript/pkg/core"
	"github.com/leapstack-labs/epochscript/pkg/parser"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Raw  bool   // Print the tree before desugaring
	Expr string // Parse this expression instead of a file
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a script and print its syntax tree",
		Long: `Parse an EpochScript file and print the resulting syntax tree.

By default the canonical tree is printed, in which pipelines and lag/lead
forms have been rewritten into nested calls. Use --raw to see the tree as
written.

Output adapts to the --output flag:
  - text:  Indented tree
  - sexpr: One-line S-expression per statement
  - json:  Machine-readable node maps
  - yaml:  Same as json, as YAML`,
		Example: `  # Parse a file
  epochscript parse strategy.eps

  # Read from standard input
  cat strategy.eps | epochscript parse -

  # Parse one expression
  epochscript parse -e "src.c | ema(12)" -o sexpr

  # Show the tree before desugaring
  epochscript parse --raw strategy.eps -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Raw, "raw", false, "Print the tree before pipeline, lag and lead are rewritten")
	cmd.Flags().StringVarP(&opts.Expr, "expr", "e", "", "Parse a single expression given on the command line")

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cmdCtx := NewCommandContext(cmd)
	r := cmdCtx.Renderer

	raw := cmdCtx.Cfg.Raw
	if cmd.Flags().Changed("raw") {
		raw = opts.Raw
	}

	var (
		name, src string
		node      core.Node
		err       error
	)
	if opts.Expr != "" {
		name, src = "<expr>", opts.Expr
		var expr core.Expr
		if raw {
			expr, err = parser.ParseExprRaw(src)
		} else {
			expr, err = parser.ParseExpr(src)
		}
		if err == nil {
			node = expr
		}
	} else {
		name, src, err = readSource(cmd, args)
		if err != nil {
			return err
		}
		var mod *core.Module
		if raw {
			mod, err = parser.ParseRaw(src)
		} else {
			mod, err = parser.Parse(src)
		}
		if err == nil {
			node = mod
		}
	}

	if err != nil {
		writeParseError(r.ErrWriter(), r.Styles(), name, src, err)
		return ErrParseFailed
	}
	cmdCtx.Logger.Debug("parsed script", "name", name, "raw", raw)

	return renderNode(r, node)
}

// renderNode prints a parsed tree in the renderer's mode.
func renderNode(r *output.Renderer, node core.Node) error {
	if ok, err := r.Structured(core.ToMap(node)); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeSExpr {
		r.Println(core.SExpr(node))
		return nil
	}
	r.Println(treeString(r.Styles(), node))
	return nil
}

// childOrder lists node map keys in reading order; keys not listed sort last.
var childOrder = []string{
	"statements", "target", "expr",
	"func", "args", "object", "index",
	"left", "right", "base", "exponent", "operand",
	"body", "cond", "else",
	"key", "value", "periods",
	"elements", "entries",
}

// treeString renders node as an indented tree.
func treeString(styles *output.Styles, node core.Node) string {
	l := list.NewWriter()
	l.SetStyle(list.StyleConnectedRounded)
	appendTree(l, styles, "", core.ToMap(node))
	return l.Render()
}

func appendTree(l list.Writer, styles *output.Styles, label string, m map[string]any) {
	if m == nil {
		return
	}

	var scalars, children []string
	for k, v := range m {
		if k == "type" || k == "span" {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			children = append(children, k)
		default:
			scalars = append(scalars, k)
		}
	}
	slices.Sort(scalars)
	slices.SortFunc(children, compareChildKeys)

	item := label + styles.Bold.Render(fmt.Sprint(m["type"]))
	for _, k := range scalars {
		item += fmt.Sprintf(" %s=%v", k, m[k])
	}
	if span, ok := m["span"].(string); ok {
		item += " " + styles.Muted.Render(span)
	}
	l.AppendItem(item)

	if len(children) == 0 {
		return
	}
	l.Indent()
	for _, k := range children {
		switch v := m[k].(type) {
		case map[string]any:
			appendTree(l, styles, k+": ", v)
		case []any:
			for i, e := range v {
				if em, ok := e.(map[string]any); ok {
					appendTree(l, styles, fmt.Sprintf("%s[%d]: ", k, i), em)
				}
			}
		}
	}
	l.UnIndent()
}

func compareChildKeys(a, b string) int {
	ia, ib := slices.Index(childOrder, a), slices.Index(childOrder, b)
	switch {
	case ia < 0 && ib < 0:
		return cmp.Compare(a, b)
	case ia < 0:
		return 1
	case ib < 0:
		return -1
	default:
		return ia - ib
	}
}
