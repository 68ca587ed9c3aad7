package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/epochscript/internal/cli/output"
	"github.com/leapstack-labs/epochscript/pkg/parser"
)

// BuiltinsOptions holds options for the builtins command.
type BuiltinsOptions struct {
	Category string // Filter by category
}

// NewBuiltinsCommand creates the builtins command.
func NewBuiltinsCommand() *cobra.Command {
	opts := &BuiltinsOptions{}
	cmd := &cobra.Command{
		Use:   "builtins [name]",
		Short: "List reserved functions and type names",
		Long: `List the names the language reserves. Reserved functions are applied
directly as fn(args); reserved type names build schema values.`,
		Example: `  # List everything
  epochscript builtins

  # Only signal functions
  epochscript builtins --category signal

  # Show one entry
  epochscript builtins crossover`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return parser.BuiltinsWithPrefix(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showBuiltin(cmd, args[0])
			}
			return listBuiltins(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Category, "category", "c", "", "Filter by category: math, data, signal, selection, schema")
	_ = cmd.RegisterFlagCompletionFunc("category", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"math", "data", "signal", "selection", "schema"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func listBuiltins(cmd *cobra.Command, opts *BuiltinsOptions) error {
	r := NewCommandContext(cmd).Renderer

	entries := parser.BuiltinsByCategory(parser.BuiltinCategory(opts.Category))
	if len(entries) == 0 {
		return fmt.Errorf("unknown category %q", opts.Category)
	}

	if ok, err := r.Structured(entries); ok {
		return err
	}
	if r.EffectiveMode() == output.ModeSExpr {
		for _, b := range entries {
			r.Printf("(%s %s %s)\n", b.Kind, b.Category, b.Name)
		}
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Name", "Kind", "Category", "Description"})
	for _, b := range entries {
		t.AppendRow(table.Row{b.Name, b.Kind, b.Category, b.Description})
	}
	t.Render()
	r.Muted("Use 'epochscript builtins <name>' for details")
	return nil
}

func showBuiltin(cmd *cobra.Command, name string) error {
	r := NewCommandContext(cmd).Renderer

	b, ok := parser.LookupBuiltin(name)
	if !ok {
		return fmt.Errorf("%q is not a reserved name", name)
	}

	if ok, err := r.Structured(b); ok {
		return err
	}

	styles := r.Styles()
	r.Header(b.Name)
	r.Println("  " + styles.FormatKeyValue("Kind", string(b.Kind)))
	r.Println("  " + styles.FormatKeyValue("Category", string(b.Category)))
	r.Println("  " + styles.FormatKeyValue("Signature", styles.Code.Render(b.Signature)))
	r.Println("")
	r.Println("  " + b.Description)
	return nil
}
