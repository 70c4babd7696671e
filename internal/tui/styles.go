// Package tui provides the terminal chat screen for geminichat.
package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	apierrors "github.com/diogo/geminichat/internal/errors"
	"github.com/diogo/geminichat/internal/render"
)

// Color variables (updated from theme)
var (
	colorBorder lipgloss.Color

	colorPrimary   lipgloss.Color
	colorSecondary lipgloss.Color
	colorAccent    lipgloss.Color
	colorError     lipgloss.Color

	colorText     lipgloss.Color
	colorTextDim  lipgloss.Color
	colorTextMute lipgloss.Color

	gradientColors []lipgloss.Color
)

// Style variables (rebuilt when theme changes)
var (
	headerStyle   lipgloss.Style
	subtitleStyle lipgloss.Style
	hintStyle     lipgloss.Style

	messagesAreaStyle lipgloss.Style

	userBubbleStyle      lipgloss.Style
	userLabelStyle       lipgloss.Style
	assistantBubbleStyle lipgloss.Style
	assistantLabelStyle  lipgloss.Style

	inputPanelStyle lipgloss.Style
	inputLabelStyle lipgloss.Style
	loadingStyle    lipgloss.Style

	statusBarStyle  lipgloss.Style
	statusKeyStyle  lipgloss.Style
	statusDescStyle lipgloss.Style

	errorStyle lipgloss.Style

	emptyStateStyle lipgloss.Style
	emptyIconStyle  lipgloss.Style
)

// init loads the default theme on package initialization
func init() {
	UpdateTheme()
}

// UpdateTheme refreshes all styles based on the current TUI theme
func UpdateTheme() {
	theme := render.GetTUITheme()

	colorBorder = theme.Border
	colorPrimary = theme.Primary
	colorSecondary = theme.Secondary
	colorAccent = theme.Accent
	colorError = theme.Error
	colorText = theme.Text
	colorTextDim = theme.TextDim
	colorTextMute = theme.TextMute

	gradientColors = theme.Gradient
	if len(gradientColors) == 0 {
		gradientColors = []lipgloss.Color{theme.Primary, theme.Accent}
	}

	rebuildStyles()
}

// rebuildStyles creates all lipgloss styles with current color values
func rebuildStyles() {
	headerStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 2).
		Align(lipgloss.Center)

	subtitleStyle = lipgloss.NewStyle().
		Foreground(colorTextDim)

	hintStyle = lipgloss.NewStyle().
		Foreground(colorTextMute).
		Italic(true)

	messagesAreaStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	userBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorSecondary).
		Foreground(colorText).
		Padding(0, 1).
		MarginLeft(4)

	userLabelStyle = lipgloss.NewStyle().
		Foreground(colorSecondary).
		Bold(true).
		MarginLeft(4)

	assistantBubbleStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorPrimary).
		Foreground(colorText).
		Padding(0, 1).
		MarginRight(4)

	assistantLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	inputPanelStyle = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	inputLabelStyle = lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true)

	loadingStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	statusKeyStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Bold(true)

	statusDescStyle = lipgloss.NewStyle().
		Foreground(colorTextMute)

	errorStyle = lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true)

	emptyStateStyle = lipgloss.NewStyle().
		Foreground(colorTextDim).
		Align(lipgloss.Center)

	emptyIconStyle = lipgloss.NewStyle().
		Foreground(colorAccent).
		Align(lipgloss.Center)
}

// gradientText colors each rune of s along a Lab blend of stops
func gradientText(s string, stops []lipgloss.Color) string {
	runes := []rune(s)
	if len(runes) == 0 || len(stops) == 0 {
		return s
	}
	if len(stops) == 1 || len(runes) == 1 {
		return lipgloss.NewStyle().Foreground(stops[0]).Render(s)
	}

	parsed := make([]colorful.Color, 0, len(stops))
	for _, c := range stops {
		cc, err := colorful.Hex(string(c))
		if err != nil {
			return lipgloss.NewStyle().Foreground(stops[0]).Render(s)
		}
		parsed = append(parsed, cc)
	}

	var b strings.Builder
	segments := float64(len(parsed) - 1)
	for i, r := range runes {
		pos := float64(i) / float64(len(runes)-1) * segments
		idx := int(pos)
		if idx >= len(parsed)-1 {
			idx = len(parsed) - 2
		}
		blended := parsed[idx].BlendLab(parsed[idx+1], pos-float64(idx))
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color(blended.Hex())).
			Bold(true).
			Render(string(r)))
	}
	return b.String()
}

// FormatError returns a styled error message with a hint for known failures.
func FormatError(err error) string {
	if err == nil {
		return ""
	}

	errStyle := lipgloss.NewStyle().Foreground(colorError)
	dimStyle := lipgloss.NewStyle().Foreground(colorTextDim)

	var sb strings.Builder
	sb.WriteString(errStyle.Render(fmt.Sprintf("✗ %v", err)))

	if model := apierrors.GetModel(err); model != "" {
		sb.WriteString(dimStyle.Render(fmt.Sprintf("\n  Model: %s", model)))
	}

	switch {
	case apierrors.IsNoContent(err):
		sb.WriteString(dimStyle.Render("\n  Hint: The model returned no text. Try rephrasing the prompt"))
	case errors.Is(err, apierrors.ErrClientClosed):
		sb.WriteString(dimStyle.Render("\n  Hint: The client was closed. Restart geminichat"))
	case apierrors.IsGenerationError(err):
		sb.WriteString(dimStyle.Render("\n  Hint: Check that GEMINI_AI_KEY is set and your connection works"))
	}

	return sb.String()
}
