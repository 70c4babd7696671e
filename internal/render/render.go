package render

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/diogo/geminichat/internal/chat"
)

// Markdown renders markdown content for terminal display.
// Uses a pooled renderer for better performance and thread safety.
func Markdown(content string, opts Options) (string, error) {
	renderer, err := globalPool.get(opts)
	if err != nil {
		return "", err
	}
	defer globalPool.put(opts, renderer)

	return renderer.Render(content)
}

// EntryRenderer draws the text of one conversation entry at a given width
type EntryRenderer interface {
	Render(text string, width int) string
}

// ForStyle returns the renderer for a variant's render style
func ForStyle(style chat.RenderStyle, opts Options) EntryRenderer {
	switch style {
	case chat.StyleBold:
		return BoldRenderer{Emphasis: lipgloss.NewStyle().Bold(true)}
	case chat.StyleMarkdown:
		return MarkdownRenderer{Options: opts}
	default:
		return PlainRenderer{}
	}
}

// PlainRenderer shows text as-is, word-wrapped
type PlainRenderer struct{}

// Render implements EntryRenderer
func (PlainRenderer) Render(text string, width int) string {
	return wrap(text, width)
}

// BoldRenderer shows **marked** runs with Emphasis and drops the markers
type BoldRenderer struct {
	Emphasis lipgloss.Style
}

// Render implements EntryRenderer
func (r BoldRenderer) Render(text string, width int) string {
	var b strings.Builder
	for _, seg := range SplitBold(text) {
		if seg.Text == "" {
			continue
		}
		if seg.Bold {
			b.WriteString(r.Emphasis.Render(seg.Text))
		} else {
			b.WriteString(seg.Text)
		}
	}
	return wrap(b.String(), width)
}

// MarkdownRenderer renders through glamour. If glamour fails the text is
// shown plain.
type MarkdownRenderer struct {
	Options Options
}

// Render implements EntryRenderer
func (r MarkdownRenderer) Render(text string, width int) string {
	opts := r.Options
	if width > 0 {
		opts = opts.WithWidth(width)
	}

	out, err := Markdown(text, opts)
	if err != nil {
		return wrap(text, width)
	}
	return strings.Trim(out, "\n")
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return wordwrap.String(text, width)
}
