package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/render"
)

var (
	colorText     = lipgloss.Color("#e3e3e3")
	colorTextMute = lipgloss.Color("#444746")
	colorSuccess  = lipgloss.Color("#34a853")
	colorWarning  = lipgloss.Color("#fbbc04")
	colorPrimary  = lipgloss.Color("#4285f4")
)

// Styles matching the chat TUI
var (
	assistantLabelStyle = lipgloss.NewStyle().
				Foreground(colorPrimary).
				Bold(true)

	assistantBubbleStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(colorPrimary).
				Foreground(colorText).
				Padding(0, 1).
				MarginBottom(1)
)

// spinner handles the animated loading indicator on stderr
type spinner struct {
	out     io.Writer
	message string
	stop    chan struct{}
	done    chan struct{}
	mu      sync.Mutex
	frame   int
	stopped bool // Flag to prevent double-close
}

// newSpinner creates a new animated spinner
func newSpinner(out io.Writer, message string) *spinner {
	return &spinner{
		out:     out,
		message: message,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// start begins the animation
func (s *spinner) start() {
	go func() {
		defer close(s.done)

		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		// Hide cursor
		fmt.Fprint(s.out, "\033[?25l")

		for {
			select {
			case <-s.stop:
				// Clear line and show cursor
				fmt.Fprint(s.out, "\r\033[K\033[?25h")
				return
			case <-ticker.C:
				s.mu.Lock()
				s.render()
				s.frame++
				s.mu.Unlock()
			}
		}
	}()
}

// render draws the current animation frame
func (s *spinner) render() {
	chars := []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}
	gradient := render.GetTUITheme().Gradient
	if len(gradient) == 0 {
		gradient = []lipgloss.Color{colorPrimary}
	}

	spinColor := gradient[s.frame%len(gradient)]
	spinnerChar := lipgloss.NewStyle().Foreground(spinColor).Bold(true).Render(chars[s.frame%len(chars)])

	var dots strings.Builder
	numDots := (s.frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dots.WriteString(lipgloss.NewStyle().Foreground(gradient[(s.frame+i)%len(gradient)]).Render("●"))
		} else {
			dots.WriteString(lipgloss.NewStyle().Foreground(colorTextMute).Render("○"))
		}
	}

	msg := lipgloss.NewStyle().Foreground(colorText).Render(s.message)
	fmt.Fprintf(s.out, "\r\033[K%s %s %s", spinnerChar, msg, dots.String())
}

// stopOnce safely closes the stop channel only once
func (s *spinner) stopOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.stopped {
		close(s.stop)
		s.stopped = true
	}
}

// stopWithSuccess stops the spinner and shows success message
func (s *spinner) stopWithSuccess(message string) {
	s.stopOnce()
	<-s.done

	checkmark := lipgloss.NewStyle().Foreground(colorSuccess).Bold(true).Render("✓")
	msg := lipgloss.NewStyle().Foreground(colorSuccess).Render(message)
	fmt.Fprintf(s.out, "%s %s\n", checkmark, msg)
}

// stopWithError stops the spinner and clears its line
func (s *spinner) stopWithError() {
	s.stopOnce()
	<-s.done
}

// runQuery sends a single prompt through a chat session and prints the
// answer. Output is decorated only when stdout is a terminal and --raw is
// not set.
func runQuery(cmd *cobra.Command, deps *Dependencies, s *settings, opts *rootOptions, prompt string) error {
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	decorated := !opts.raw && isTerminal(stdout)

	logger := deps.logger(s)
	defer func() { _ = logger.Sync() }()

	client := deps.client(s, logger)
	defer func() { _ = client.Close() }()

	session := chat.NewSession(client, s.variant, chat.WithLogger(logger))

	var spin *spinner
	if decorated && isTerminal(stderr) {
		spin = newSpinner(stderr, "Generating response")
		spin.start()
	}

	startTime := time.Now()
	out, err := session.Submit(backgroundIfNil(cmd.Context()), prompt)
	requestDuration := time.Since(startTime)

	if err != nil || out.Err != nil {
		if spin != nil {
			spin.stopWithError()
		}
		if err != nil {
			// Rejected before reaching the API
			return err
		}
		return fmt.Errorf("generation failed: %w", out.Err)
	}
	if spin != nil {
		spin.stopWithSuccess("Done")
	}

	if s.cfg.Verbose && decorated {
		fmt.Fprintf(stderr, "[verbose] Model: %s, variant: %s, request took %s\n",
			s.model.Name, s.variant.Name, requestDuration.Round(time.Millisecond))
	}

	text := out.Entry.Text

	if opts.copy || s.cfg.CopyToClipboard {
		copyToClipboard(deps, stderr, text, logger)
	}

	if opts.output != "" {
		if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if decorated {
			fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render(
				fmt.Sprintf("✓ Response saved to %s", opts.output),
			))
		}
		return nil
	}

	if !decorated {
		fmt.Fprint(stdout, text)
		if !strings.HasSuffix(text, "\n") {
			fmt.Fprintln(stdout)
		}
		return nil
	}

	bubbleWidth := getTerminalWidth() - 4
	if bubbleWidth < 40 {
		bubbleWidth = 40
	}
	if bubbleWidth > 120 {
		bubbleWidth = 120
	}

	renderer := render.ForStyle(s.variant.Style, s.renderOpts)
	fmt.Fprintln(stdout, assistantLabelStyle.Render("✦ Gemini"))
	fmt.Fprintln(stdout, assistantBubbleStyle.Width(bubbleWidth).Render(renderer.Render(text, bubbleWidth-4)))

	return nil
}

// copyToClipboard copies text, warning on stderr instead of failing
func copyToClipboard(deps *Dependencies, stderr io.Writer, text string, logger *zap.Logger) {
	copyFn := deps.Clipboard
	if copyFn == nil {
		copyFn = writeClipboard
	}

	if err := copyFn(text); err != nil {
		logger.Warn("clipboard copy failed", zap.Error(err))
		fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorWarning).Render(
			fmt.Sprintf("⚠ Failed to copy to clipboard: %v", err),
		))
		return
	}
	fmt.Fprintln(stderr, lipgloss.NewStyle().Foreground(colorSuccess).Render("✓ Copied to clipboard"))
}

func writeClipboard(text string) error {
	return clipboard.WriteAll(text)
}

// getTerminalWidth returns the terminal width or a default value
func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80 // default width
	}
	return width
}

// isTerminal returns true if w is a file connected to a terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// backgroundIfNil keeps commands usable when executed without a context
func backgroundIfNil(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
