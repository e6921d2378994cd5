package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rtledit/rtl-decimal/internal/screen"
)

const (
	helpLine = "digits: enter value  enter: next  tab: next field  ^A: select all  ^U: clear  ^S: submit  esc: quit"

	// DefaultWidth is the display width used when the terminal size is unknown.
	DefaultWidth = 80

	minBoxWidth = 8
	maxBoxWidth = 24
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true)
	focusStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	selectionStyle = lipgloss.NewStyle().Reverse(true)
	statusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	helpStyle      = lipgloss.NewStyle().Faint(true)
)

// Renderer lays out a form as text.
type Renderer struct {
	// Styled turns on colors, cursor and selection highlighting and the help line.
	Styled bool
	// Width is the terminal width in columns.
	Width int
}

// Render returns the whole form: title, one line per field with the value
// right aligned, then the status message.
func (r Renderer) Render(form *screen.Form, status string) string {
	var lines []string

	if form.Title() != "" {
		lines = append(lines, r.style(titleStyle, form.Title()), "")
	}

	labelWidth := 0
	for _, fld := range form.Fields() {
		labelWidth = max(labelWidth, lipgloss.Width(fld.Label()))
	}
	boxWidth := r.boxWidth(labelWidth)

	for _, fld := range form.Fields() {
		marker := " "
		label := fmt.Sprintf("%-*s", labelWidth, fld.Label())
		if fld == form.Focused() {
			marker = ">"
			label = r.style(focusStyle, label)
		}
		lines = append(lines, fmt.Sprintf("%s %s [%s]", marker, label, r.value(fld, boxWidth)))
	}

	if status != "" {
		lines = append(lines, "", r.style(statusStyle, status))
	}
	if r.Styled {
		lines = append(lines, "", helpStyle.Render(helpLine))
	}
	return strings.Join(lines, "\n")
}

// Draw writes the rendered form to w.
func (r Renderer) Draw(w io.Writer, form *screen.Form, status string) error {
	_, err := io.WriteString(w, r.Render(form, status)+"\n")
	return err
}

func (r Renderer) style(s lipgloss.Style, text string) string {
	if !r.Styled {
		return text
	}
	return s.Render(text)
}

func (r Renderer) boxWidth(labelWidth int) int {
	width := r.Width
	if width <= 0 {
		width = DefaultWidth
	}
	// marker, spaces and brackets
	return min(max(width-labelWidth-5, minBoxWidth), maxBoxWidth)
}

// value right aligns the text in the box so digits grow from the right
// edge, marking the selection or cursor when styled.
func (r Renderer) value(fld *screen.Field, width int) string {
	text := fld.Text()
	content := text

	if r.Styled && fld.Focused() {
		runes := []rune(text)
		start, end := fld.Selection()
		switch {
		case start != end:
			content = string(runes[:start]) + selectionStyle.Render(string(runes[start:end])) + string(runes[end:]) + " "
		case start >= len(runes):
			content = text + selectionStyle.Render(" ")
		default:
			content = string(runes[:start]) + selectionStyle.Render(string(runes[start])) + string(runes[start+1:]) + " "
		}
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Right, content)
}
