// Package render turns conversation entries into terminal text: plain,
// **bold**-aware, or glamour markdown.
package render

import (
	"os"

	"github.com/diogo/geminichat/internal/config"
)

// Options configures the markdown renderer behavior.
type Options struct {
	// Width defines the maximum output width (default: 80)
	Width int

	// Style is a glamour style name ("dark", "light", "tokyonight", ...)
	// or a path to a JSON style file
	Style string

	// EnableEmoji converts :emoji: to unicode characters
	EnableEmoji bool

	// PreserveNewLines preserves original line breaks
	PreserveNewLines bool

	TableWrap        bool
	InlineTableLinks bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() Options {
	md := config.DefaultMarkdownConfig()
	return Options{
		Width:            80,
		Style:            md.Style,
		EnableEmoji:      md.EnableEmoji,
		PreserveNewLines: md.PreserveNewLines,
		TableWrap:        md.TableWrap,
		InlineTableLinks: md.InlineTableLinks,
	}
}

// OptionsFromConfig builds options from the markdown section of the user
// configuration. GLAMOUR_STYLE takes precedence over the configured style.
func OptionsFromConfig(md config.MarkdownConfig) Options {
	opts := DefaultOptions()

	if md.Style != "" {
		opts.Style = md.Style
	}
	opts.EnableEmoji = md.EnableEmoji
	opts.PreserveNewLines = md.PreserveNewLines
	opts.TableWrap = md.TableWrap
	opts.InlineTableLinks = md.InlineTableLinks

	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		opts.Style = style
	}

	return opts
}

// WithWidth returns Options with the specified width.
func (o Options) WithWidth(width int) Options {
	o.Width = width
	return o
}

// WithStyle returns Options with the specified style.
func (o Options) WithStyle(style string) Options {
	o.Style = style
	return o
}
