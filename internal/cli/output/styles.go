package output

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status symbols.
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "!"
)

// Styles holds the lipgloss styles used across commands.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Code    lipgloss.Style
	Caret   lipgloss.Style
}

// NewStyles builds styles bound to r. A renderer with the Ascii profile
// strips all colour.
func NewStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Header2: r.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("11")),
		Code:    r.NewStyle().Foreground(lipgloss.Color("13")),
		Caret:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
	}
}

// FormatKeyValue formats "key: value" with a bold key.
func (s *Styles) FormatKeyValue(key, value string) string {
	return fmt.Sprintf("%s: %s", s.Bold.Render(key), value)
}

// FormatSourceExcerpt renders the line of src containing (line, col) with a
// caret under the column. Columns count bytes, starting at 1.
func (s *Styles) FormatSourceExcerpt(src string, line, col int) string {
	lines := strings.Split(src, "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	text := strings.TrimRight(lines[line-1], "\r")
	if col < 1 {
		col = 1
	}
	if col > len(text)+1 {
		col = len(text) + 1
	}

	gutter := fmt.Sprintf("%4d | ", line)
	pad := strings.Repeat(" ", len(gutter)+col-1)
	return s.Muted.Render(gutter) + text + "\n" + pad + s.Caret.Render("^")
}
