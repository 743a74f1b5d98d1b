package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kandasoft/salesdojo/internal/engine"
	"github.com/kandasoft/salesdojo/internal/persona"
	"github.com/kandasoft/salesdojo/internal/prompt"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#7D56F4"))

	traineeLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#04B575"))

	prospectLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#7D56F4"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C")).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// turnResultMsg carries an orchestrated turn back into the TUI loop.
type turnResultMsg struct {
	outcome engine.Outcome
}

// chatTUI is the Bubble Tea model for the interactive training session.
type chatTUI struct {
	orch     *engine.Orchestrator
	prospect persona.Persona
	contract prompt.Contract

	history []engine.Message
	notice  string // one-line warning/error banner under the conversation

	vp      viewport.Model
	input   textinput.Model
	spin    spinner.Model
	waiting bool
	ready   bool
	width   int
}

func newChatTUI(orch *engine.Orchestrator, prospect persona.Persona, contract prompt.Contract) chatTUI {
	ti := textinput.New()
	ti.Placeholder = "営業トークを入力..."
	ti.Focus()
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	return chatTUI{
		orch:     orch,
		prospect: prospect,
		contract: contract,
		input:    ti,
		spin:     sp,
	}
}

// runChatTUI runs the full-screen session and returns the final history.
func runChatTUI(orch *engine.Orchestrator, prospect persona.Persona, contract prompt.Contract) ([]engine.Message, error) {
	final, err := tea.NewProgram(newChatTUI(orch, prospect, contract), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("run chat ui: %w", err)
	}
	m, ok := final.(chatTUI)
	if !ok {
		return nil, nil
	}
	return m.history, nil
}

func (m chatTUI) Init() tea.Cmd {
	return textinput.Blink
}

func (m chatTUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		vpHeight := msg.Height - 6 // header, notice, input, help
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.vp = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.vp.Width = msg.Width
			m.vp.Height = vpHeight
		}
		m.vp.SetContent(m.renderConversation())
		m.vp.GotoBottom()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := strings.TrimSpace(m.input.Value())
			if m.waiting || text == "" {
				return m, nil
			}
			m.history = append(m.history, engine.NewMessage(engine.RoleUser, text))
			m.input.Reset()
			m.notice = ""
			m.waiting = true
			m.vp.SetContent(m.renderConversation())
			m.vp.GotoBottom()
			return m, tea.Batch(m.spin.Tick, m.generateCmd())
		}

	case spinner.TickMsg:
		if !m.waiting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case turnResultMsg:
		m.waiting = false
		switch msg.outcome.Status {
		case engine.StatusOK:
			m.history = append(m.history, engine.NewMessage(engine.RoleAssistant, msg.outcome.Text))
		case engine.StatusViolation:
			m.notice = warningStyle.Render("⚠ " + msg.outcome.Warning)
		default:
			m.notice = errorStyle.Render("✗ " + msg.outcome.Err)
		}
		m.vp.SetContent(m.renderConversation())
		m.vp.GotoBottom()
		return m, nil
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.vp, cmd = m.vp.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

// generateCmd snapshots the history and runs the orchestrator off the UI
// loop.
func (m chatTUI) generateCmd() tea.Cmd {
	history := append([]engine.Message(nil), m.history...)
	orch, prospect, contract := m.orch, m.prospect, m.contract
	return func() tea.Msg {
		return turnResultMsg{outcome: orch.GenerateTurn(context.Background(), history, prospect, contract)}
	}
}

func (m chatTUI) renderConversation() string {
	var b strings.Builder
	for _, msg := range m.history {
		if msg.Role == engine.RoleUser {
			b.WriteString(traineeLabelStyle.Render("あなた"))
		} else {
			b.WriteString(prospectLabelStyle.Render(m.prospect.Name))
		}
		b.WriteString("\n")
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}
	return b.String()
}

func (m chatTUI) View() string {
	if !m.ready {
		return "loading..."
	}

	header := headerStyle.Render(fmt.Sprintf("salesdojo — %s（%d歳・%s・%s）",
		m.prospect.Name, m.prospect.Age, m.prospect.GenderLabel, m.prospect.MaritalLabel))

	status := m.notice
	if m.waiting {
		status = m.spin.View() + " 応答を生成中..."
	}

	return fmt.Sprintf("%s\n%s\n%s\n%s\n%s",
		header,
		m.vp.View(),
		status,
		m.input.View(),
		helpStyle.Render("enter: 送信 • esc: 終了"),
	)
}
