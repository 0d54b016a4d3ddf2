// Package tui renders the conversation view: a scrolling message log, an
// input line, and per-message speech playback.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"voxchat/internal/api"
	"voxchat/internal/audio"
	"voxchat/internal/conversation"
	"voxchat/internal/models"
)

const headerTitle = "Personal AI Assistant"

// Model is the Bubble Tea model for the chat client.
type Model struct {
	controller *conversation.Controller
	client     *api.Client
	player     *audio.Player

	// UI components
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	renderer *glamour.TermRenderer

	width  int
	height int
	ready  bool

	// Highlighted message; target of the speak keybinding
	selected int

	status string
}

func New(client *api.Client, player *audio.Player) Model {
	input := textinput.New()
	input.Placeholder = "Ask me anything..."
	input.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = assistantLabelStyle

	return Model{
		controller: conversation.New(),
		client:     client,
		player:     player,
		input:      input,
		spinner:    sp,
		selected:   -1,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		chromeHeight := 6 // header + error/status + help + input
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-chromeHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - chromeHeight
		}
		m.input.Width = msg.Width - 4

		if r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(msg.Width-8),
		); err == nil {
			m.renderer = r
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "enter":
			text := m.input.Value()
			token := m.controller.Submit(text)
			if token != 0 {
				// Input clears immediately, independent of call outcome
				m.input.SetValue("")
				m.selected = m.controller.Len() - 1
				m.status = ""
				m.refreshViewport()
				m.viewport.GotoBottom()
				cmds = append(cmds, submitCmd(m.client, token, text), m.spinner.Tick)
			}

		case "ctrl+s":
			if m.controller.BeginSpeak(m.selected) {
				text := m.controller.Messages()[m.selected].Text
				m.refreshViewport()
				cmds = append(cmds, speakCmd(m.client, m.selected, text))
			}

		case "ctrl+p":
			if m.selected > 0 {
				m.selected--
				m.refreshViewport()
			}

		case "ctrl+n":
			if m.selected < m.controller.Len()-1 {
				m.selected++
				m.refreshViewport()
			}

		case "esc":
			m.controller.ClearFailure()
			m.status = ""
			m.refreshViewport()
		}

	case completionResultMsg:
		if m.controller.ResolveCompletion(msg.token, msg.reply, msg.err) {
			m.selected = m.controller.Len() - 1
		}
		m.refreshViewport()
		m.viewport.GotoBottom()

	case speechResultMsg:
		m.controller.ResolveSpeak(msg.index, msg.err)
		m.refreshViewport()
		if msg.err == nil {
			cmds = append(cmds, playCmd(m.player, msg.index, msg.mp3))
		}

	case playbackFinishedMsg:
		switch {
		case msg.err != nil:
			m.status = fmt.Sprintf("playback failed: %v", msg.err)
		case msg.savedPath != "":
			m.status = "no audio player found; saved to " + msg.savedPath
		default:
			m.status = ""
		}

	case spinner.TickMsg:
		if m.controller.SubmitBusy() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render(headerTitle))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter send · ctrl+s speak · ctrl+p/ctrl+n select · esc dismiss · ctrl+c quit"))
	b.WriteString("\n")
	b.WriteString(m.input.View())

	return b.String()
}

func (m Model) statusLine() string {
	if failure := m.controller.LastFailure(); failure != nil {
		switch failure.Kind {
		case conversation.FailureCompletion:
			return errorStyle.Render(fmt.Sprintf("couldn't get a reply: %v", failure.Err))
		case conversation.FailureSpeech:
			return errorStyle.Render(fmt.Sprintf("couldn't generate speech: %v", failure.Err))
		}
	}
	if m.controller.SubmitBusy() {
		return m.spinner.View() + statusStyle.Render(" thinking...")
	}
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return ""
}

// refreshViewport re-renders the message log into the viewport.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	var b strings.Builder
	for i, msg := range m.controller.Messages() {
		b.WriteString(m.renderMessage(i, msg))
		b.WriteString("\n")
	}
	m.viewport.SetContent(b.String())
}

func (m *Model) renderMessage(i int, msg models.Message) string {
	marker := "  "
	if i == m.selected {
		marker = selectedMarkerStyle.Render("▌ ")
	}

	label := userLabelStyle.Render("You")
	if msg.Sender == models.SenderAssistant {
		label = assistantLabelStyle.Render("Assistant")
	}
	if m.controller.Speaking(i) {
		label += speakingStyle.Render(" ♪")
	}

	body := msg.Text
	if msg.Sender == models.SenderAssistant && m.renderer != nil {
		if rendered, err := m.renderer.Render(msg.Text); err == nil {
			body = strings.TrimRight(rendered, "\n")
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, marker+label, body)
}
