// Package tui implements the interactive terminal client.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"docqa/internal/client"
)

// API is the TUI-facing subset of the HTTP client.
type API interface {
	Upload(ctx context.Context, path string) (string, error)
	Ask(ctx context.Context, question string) (client.AskResponse, error)
}

// Entry is one question/answer exchange kept in the session history,
// together with the context the server used.
type Entry struct {
	Question    string
	Answer      string
	Context     string
	ShowContext bool
}

type mode int

const (
	modeUpload mode = iota
	modeAsk
)

// Model is the Bubble Tea model for the Q&A client.
type Model struct {
	api      API
	input    textinput.Model
	viewport viewport.Model
	history  []Entry
	cursor   int
	mode     mode
	status   string
	ready    bool
}

// New creates a new TUI model. The session starts in upload mode.
func New(api API) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Path to a .txt or .pdf file (tab to skip upload)"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{
		api:      api,
		input:    ti,
		viewport: vp,
		status:   "Upload a document to get started.",
	}
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 2 + qh + 1 // header + status, input frame, help line
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-rh)
		m.viewport.SetContent(m.renderCurrentEntry())
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			return m.submit()
		case "tab":
			m.toggleMode()
			return m, nil
		case "ctrl+t":
			if len(m.history) > 0 {
				m.history[m.cursor].ShowContext = !m.history[m.cursor].ShowContext
				m.viewport.SetContent(m.renderCurrentEntry())
			}
			return m, nil
		case "ctrl+r":
			m.reset()
			return m, nil
		case "up":
			if len(m.history) > 0 {
				m.cursor = (m.cursor - 1 + len(m.history)) % len(m.history)
				m.viewport.SetContent(m.renderCurrentEntry())
				return m, nil
			}
		case "down":
			if len(m.history) > 0 {
				m.cursor = (m.cursor + 1) % len(m.history)
				m.viewport.SetContent(m.renderCurrentEntry())
				return m, nil
			}
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m, nil
	}
	switch m.mode {
	case modeUpload:
		message, err := m.api.Upload(context.Background(), value)
		if err != nil {
			m.status = errorStyle.Render("Error: " + err.Error())
			return m, nil
		}
		m.status = okStyle.Render(message)
		m.input.Reset()
		m.toggleMode()
	case modeAsk:
		resp, err := m.api.Ask(context.Background(), value)
		if err != nil {
			m.status = errorStyle.Render("Error: " + err.Error())
			return m, nil
		}
		m.history = append(m.history, Entry{Question: value, Answer: resp.Answer, Context: resp.Context})
		m.cursor = len(m.history) - 1
		m.status = okStyle.Render(fmt.Sprintf("Answered. %d question(s) this session.", len(m.history)))
		m.input.Reset()
		m.viewport.SetContent(m.renderCurrentEntry())
	}
	return m, nil
}

func (m *Model) toggleMode() {
	if m.mode == modeUpload {
		m.mode = modeAsk
		m.input.Placeholder = "Ask a question about the uploaded documents"
	} else {
		m.mode = modeUpload
		m.input.Placeholder = "Path to a .txt or .pdf file (tab to skip upload)"
	}
	m.input.Reset()
}

// reset clears the local session history and re-arms the upload flow.
// Chunks stored on the server are untouched.
func (m *Model) reset() {
	m.history = nil
	m.cursor = 0
	m.mode = modeAsk // toggleMode flips back to upload
	m.toggleMode()
	m.status = okStyle.Render("Session reset. Ready for a new file.")
	m.viewport.SetContent(m.renderCurrentEntry())
}

// View renders the TUI layout and the current history entry.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("Document Q&A")
	body := resultBoxStyle.Render(m.viewport.View())
	input := queryBoxStyle.Render(m.input.View())
	help := helpStyle.Render("enter submit · tab switch upload/ask · ↑/↓ history · ctrl+t context · ctrl+r reset · ctrl+c quit")
	return header + "\n" + m.status + "\n" + body + "\n" + input + "\n" + help
}

func (m Model) renderCurrentEntry() string {
	if len(m.history) == 0 {
		return "No questions asked yet."
	}
	e := m.history[m.cursor]
	var b strings.Builder
	fmt.Fprintf(&b, "Q %d/%d: %s\n\n", m.cursor+1, len(m.history), questionStyle.Render(e.Question))
	b.WriteString(e.Answer)
	if e.ShowContext {
		b.WriteString("\n\n")
		b.WriteString(contextHeaderStyle.Render("Context used:"))
		b.WriteString("\n")
		if e.Context == "" {
			b.WriteString("(empty)")
		} else {
			b.WriteString(contextStyle.Render(e.Context))
		}
	} else {
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("ctrl+t to view the context used"))
	}
	return b.String()
}

var (
	resultBoxStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	questionStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	contextHeaderStyle = lipgloss.NewStyle().Bold(true)
	contextStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	okStyle            = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
