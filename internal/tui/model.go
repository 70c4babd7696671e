package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/diogo/geminichat/internal/chat"
	"github.com/diogo/geminichat/internal/models"
	"github.com/diogo/geminichat/internal/render"
)

const appTitle = "✦ Google Gemini AI"

// Animation tick message
type animationTickMsg time.Time

// resultMsg carries the outcome of a generation call back to the update loop
type resultMsg struct {
	text string
	err  error
}

// Model represents the TUI state. The session owns the transcript and the
// loading flag; the model only mirrors them on screen.
type Model struct {
	session   *chat.Session
	renderer  render.EntryRenderer
	modelName string

	// UI components
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	// State
	ready          bool
	err            error // last dropped failure, shown under the composer
	animationFrame int

	// Dimensions
	width  int
	height int
}

// NewChatModel creates a new chat TUI model around a session
func NewChatModel(session *chat.Session, modelName string, opts render.Options) Model {
	ta := textarea.New()
	ta.Placeholder = models.ComposerPlaceholder
	ta.CharLimit = 4000
	ta.ShowLineNumbers = false
	ta.SetHeight(2)
	ta.KeyMap.InsertNewline.SetEnabled(false) // Enter submits
	ta.Focus()

	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle().Foreground(colorText)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(colorTextDim)
	ta.BlurredStyle = ta.FocusedStyle

	s := spinner.New()
	s.Spinner = spinner.Points
	s.Style = loadingStyle

	return Model{
		session:   session,
		renderer:  render.ForStyle(session.Variant().Style, opts),
		modelName: modelName,
		textarea:  ta,
		spinner:   s,
	}
}

// newViewport builds the conversation viewport. Only arrows and page keys
// scroll it so typing in the composer never moves the list.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
	}
	return vp
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textarea.Blink,
		m.spinner.Tick,
	)
}

// animationTick returns a command that sends animation tick messages
func animationTick() tea.Cmd {
	return tea.Tick(time.Millisecond*80, func(t time.Time) tea.Msg {
		return animationTickMsg(t)
	})
}

// isExitCommand reports whether the composer text asks to leave
func isExitCommand(input string) bool {
	switch input {
	case "exit", "quit", "/exit", "/quit":
		return true
	}
	return false
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3 // Header panel with border
		inputHeight := 5  // Input panel with border
		statusHeight := 1
		padding := 3

		vpHeight := m.height - headerHeight - inputHeight - statusHeight - padding
		if vpHeight < 5 {
			vpHeight = 5
		}

		contentWidth := m.width - 4

		if !m.ready {
			m.viewport = newViewport(contentWidth, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = contentWidth
			m.viewport.Height = vpHeight
		}
		m.textarea.SetWidth(contentWidth - 4)
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "esc":
			if !m.session.Loading() {
				return m, tea.Quit
			}
			return m, nil

		case "enter":
			return m.submit()
		}

	case resultMsg:
		out := m.session.Complete(msg.text, msg.err)
		if out.Succeeded {
			m.textarea.Reset()
		}
		if out.Err != nil && !out.Appended {
			m.err = out.Err
		}
		m.textarea.Focus()
		m.updateViewport()
		m.viewport.GotoBottom()
		cmds = append(cmds, textarea.Blink)

	case spinner.TickMsg:
		if m.session.Loading() {
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case animationTickMsg:
		if m.session.Loading() {
			m.animationFrame++
			cmds = append(cmds, animationTick())
		}
	}

	// The composer is disabled while a call is outstanding
	if !m.session.Loading() {
		if _, ok := msg.(tea.KeyMsg); ok {
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit handles Enter. Blank input and submits while loading do nothing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.session.Loading() {
		return m, nil
	}

	input := m.textarea.Value()
	if isExitCommand(strings.TrimSpace(input)) {
		return m, tea.Quit
	}

	prompt, err := m.session.Begin(input)
	if err != nil {
		return m, nil
	}

	m.err = nil
	m.animationFrame = 0
	m.textarea.Blur()
	m.updateViewport()
	m.viewport.GotoBottom()

	return m, tea.Batch(
		m.generate(prompt),
		m.spinner.Tick,
		animationTick(),
	)
}

// generate runs the generation call off the update loop
func (m Model) generate(prompt string) tea.Cmd {
	session := m.session
	return func() tea.Msg {
		text, err := session.Generate(context.Background(), prompt)
		return resultMsg{text: text, err: err}
	}
}

// View renders the TUI
func (m Model) View() string {
	if !m.ready {
		return loadingStyle.Render("  Initializing...")
	}

	contentWidth := m.width - 4
	var sections []string

	// Header
	headerContent := lipgloss.JoinHorizontal(lipgloss.Center,
		gradientText(appTitle, gradientColors),
		hintStyle.Render("  •  "),
		subtitleStyle.Render(m.modelName),
	)
	sections = append(sections, headerStyle.Width(contentWidth).Render(headerContent))

	// Conversation
	var messagesContent string
	if m.session.Transcript().IsEmpty() {
		messagesContent = m.renderEmptyState()
	} else {
		messagesContent = m.viewport.View()
	}
	sections = append(sections, messagesAreaStyle.
		Width(contentWidth).
		Height(m.viewport.Height).
		Render(messagesContent))

	// Composer
	var inputContent string
	if m.session.Loading() {
		inputContent = m.renderLoadingAnimation()
	} else {
		inputContent = lipgloss.JoinVertical(
			lipgloss.Left,
			inputLabelStyle.Render("You"),
			m.textarea.View(),
		)
	}
	sections = append(sections, inputPanelStyle.Width(contentWidth).Render(inputContent))

	if m.err != nil {
		sections = append(sections, errorStyle.Render(FormatError(m.err)))
	}

	sections = append(sections, m.renderStatusBar(contentWidth))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderEmptyState renders the placeholder shown before the first entry
func (m Model) renderEmptyState() string {
	width := m.viewport.Width - 4
	height := m.viewport.Height

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		emptyIconStyle.Width(width).Render("✦"),
		"",
		emptyStateStyle.Width(width).Render(models.EmptyStateMessage),
	)

	topPadding := (height - lipgloss.Height(content)) / 2
	if topPadding < 0 {
		topPadding = 0
	}

	return strings.Repeat("\n", topPadding) + content
}

// renderLoadingAnimation renders the animated indicator shown in place of
// the composer while a call is outstanding
func (m Model) renderLoadingAnimation() string {
	frame := m.animationFrame

	var bar strings.Builder
	barWidth := 20
	for i := 0; i < barWidth; i++ {
		c := gradientColors[(i+frame)%len(gradientColors)]
		bar.WriteString(lipgloss.NewStyle().Foreground(c).Render("█"))
	}

	dots := ""
	numDots := (frame / 3) % 4
	for i := 0; i < 3; i++ {
		if i < numDots {
			dots += lipgloss.NewStyle().Foreground(gradientColors[(frame+i)%len(gradientColors)]).Render("●")
		} else {
			dots += lipgloss.NewStyle().Foreground(colorTextMute).Render("○")
		}
	}

	text := lipgloss.NewStyle().Foreground(colorText).Render(" Gemini is thinking ")

	return fmt.Sprintf("%s %s %s %s", m.spinner.View(), bar.String(), text, dots)
}

// renderStatusBar renders the bottom status bar with shortcuts
func (m Model) renderStatusBar(width int) string {
	shortcuts := []struct {
		key  string
		desc string
	}{
		{"Enter", "Send"},
		{"Esc", "Quit"},
		{"exit/quit", "Quit"},
		{"↑↓", "Scroll"},
	}

	var items []string
	for _, s := range shortcuts {
		items = append(items, statusKeyStyle.Render(s.key)+statusDescStyle.Render(" "+s.desc))
	}
	items = append(items, statusDescStyle.Render(m.session.Variant().Name))

	return statusBarStyle.Width(width).Align(lipgloss.Center).Render(strings.Join(items, "  │  "))
}

// updateViewport refreshes the viewport content from the transcript
func (m *Model) updateViewport() {
	entries := m.session.Transcript().Entries()
	layout := m.session.Variant().Layout

	var content strings.Builder
	for i, e := range entries {
		if i > 0 {
			content.WriteString("\n")
		}
		if layout == chat.LayoutCompact {
			content.WriteString(m.renderCompactEntry(e))
		} else {
			content.WriteString(m.renderBubbleEntry(e))
		}
		content.WriteString("\n")
	}

	m.viewport.SetContent(content.String())
}

// renderBubbleEntry draws an entry as a labelled bordered bubble
func (m Model) renderBubbleEntry(e models.Entry) string {
	bubbleWidth := m.viewport.Width - 6
	text := m.renderer.Render(e.Text, bubbleWidth-4)

	if e.Author == models.AuthorUser {
		return userLabelStyle.Render("● You") + "\n" +
			userBubbleStyle.Width(bubbleWidth).Render(text)
	}
	return assistantLabelStyle.Render("✦ Gemini") + "\n" +
		assistantBubbleStyle.Width(bubbleWidth).Render(text)
}

// renderCompactEntry draws an entry as a label followed by its text
func (m Model) renderCompactEntry(e models.Entry) string {
	label := assistantLabelStyle.Render("Gemini: ")
	if e.Author == models.AuthorUser {
		label = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true).Render("You: ")
	}

	text := m.renderer.Render(e.Text, m.viewport.Width-lipgloss.Width(label))
	return lipgloss.JoinHorizontal(lipgloss.Top, label, text)
}

// RunChat starts the chat TUI
func RunChat(session *chat.Session, modelName string, opts render.Options) error {
	m := NewChatModel(session, modelName, opts)

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
