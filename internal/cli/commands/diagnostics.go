package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/leapstack-labs/epochscript/internal/cli/output"
	"github.com/leapstack-labs/epochscript/pkg/parser"
)

// Errors returned to cobra once the diagnostics have been printed.
var (
	ErrParseFailed = errors.New("parse failed")
	ErrCheckFailed = errors.New("check failed")
)

// writeParseError prints "name:line:col: message" followed by the offending
// source line with a caret.
func writeParseError(w io.Writer, styles *output.Styles, name, src string, err error) {
	pos, ok := parser.Position(err)
	if !ok {
		_, _ = fmt.Fprintf(w, "%s: %s\n", name, styles.Error.Render(err.Error()))
		return
	}
	_, _ = fmt.Fprintf(w, "%s:%d:%d: %s\n", name, pos.Line, pos.Column, styles.Error.Render(err.Error()))
	if excerpt := styles.FormatSourceExcerpt(src, pos.Line, pos.Column); excerpt != "" {
		_, _ = fmt.Fprintln(w, excerpt)
	}
}
