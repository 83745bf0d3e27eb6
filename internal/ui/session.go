package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/streamalong/cli/internal/media"
	"github.com/streamalong/cli/internal/room"
	"github.com/streamalong/cli/internal/utils"
)

const chatWindow = 12

// reaction keys available during a session
var reactionKeys = map[string]string{
	"7": "👍",
	"8": "👏",
	"9": "❤️",
	"0": "🔥",
}

// sessionClosed is delivered when the controller event stream ends.
type sessionClosed struct{}

// TickMsg drives the clock and reaction redraws.
type TickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// SessionModel is the Bubble Tea model for a live room session. It
// renders the controller's state and translates keys into controller
// calls; all session logic stays in the controller.
type SessionModel struct {
	ctrl   *room.Controller
	events <-chan room.Event

	input   textinput.Model
	spinner spinner.Model

	chat       []room.ChatEntry
	requests   []string // pending viewer stream requests, host only
	status     string
	errMsg     string
	showRoster bool

	width    int
	quitting bool
}

func NewSessionModel(ctrl *room.Controller) *SessionModel {
	in := textinput.New()
	in.Placeholder = "Type a message and press Enter"
	in.CharLimit = 280
	in.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return &SessionModel{
		ctrl:    ctrl,
		events:  ctrl.Events(),
		input:   in,
		spinner: s,
		chat:    ctrl.ChatEntries(),
		width:   80,
	}
}

func (m *SessionModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForEvent(),
		tickCmd(),
	)
}

func (m *SessionModel) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return sessionClosed{}
		}
		return ev
	}
}

func (m *SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
		if m.input.Focused() {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = min(60, msg.Width-10)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case TickMsg:
		if !m.quitting {
			cmds = append(cmds, tickCmd())
		}

	case room.Event:
		if cmd := m.handleEvent(msg); cmd != nil {
			return m, cmd
		}
		cmds = append(cmds, m.waitForEvent())

	case sessionClosed:
		m.quitting = true
		return m, tea.Quit
	}

	return m, tea.Batch(cmds...)
}

// handleKey translates a key press into a controller call. It returns
// handled=false for keys that belong to the chat input.
func (m *SessionModel) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	key := msg.String()

	if key == "ctrl+c" {
		m.ctrl.Leave()
		m.quitting = true
		return tea.Quit, true
	}

	if m.input.Focused() {
		switch key {
		case "enter":
			text := strings.TrimSpace(m.input.Value())
			if text != "" {
				if err := m.ctrl.SendChat(text); err != nil {
					m.errMsg = err.Error()
				}
			}
			m.input.Reset()
			return nil, true
		case "esc":
			m.input.Blur()
			return nil, true
		}
		return nil, false
	}

	switch key {
	case "q":
		m.ctrl.Leave()
		m.quitting = true
		return tea.Quit, true

	case "enter", "t":
		return m.input.Focus(), true

	case "m":
		if _, err := m.ctrl.ToggleMute(); err != nil {
			m.errMsg = err.Error()
		}
		return nil, true

	case "s":
		var err error
		if m.ctrl.Role() == room.RoleHost {
			if m.ctrl.Streaming() {
				err = m.ctrl.StopStreaming()
			} else {
				err = m.ctrl.StartStreaming()
			}
		} else {
			err = m.ctrl.RequestStream()
			if err == nil {
				m.status = "Stream request sent, waiting for the host"
			}
		}
		if err != nil {
			m.errMsg = err.Error()
		}
		return nil, true

	case "1":
		if err := m.ctrl.SwitchQuality(media.Quality720p); err != nil {
			m.errMsg = err.Error()
		}
		return nil, true

	case "2":
		if err := m.ctrl.SwitchQuality(media.Quality480p); err != nil {
			m.errMsg = err.Error()
		}
		return nil, true

	case "r":
		m.showRoster = !m.showRoster
		return nil, true

	case "y", "n":
		if len(m.requests) == 0 {
			return nil, true
		}
		viewerID := m.requests[0]
		m.requests = m.requests[1:]
		if err := m.ctrl.RespondToRequest(viewerID, key == "y"); err != nil {
			m.errMsg = err.Error()
		}
		return nil, true
	}

	if kind, ok := reactionKeys[key]; ok {
		if err := m.ctrl.SendReaction(kind); err != nil {
			m.errMsg = err.Error()
		}
		return nil, true
	}

	return nil, false
}

func (m *SessionModel) handleEvent(ev room.Event) tea.Cmd {
	switch ev.Kind {
	case room.EventStateChanged:
		if ev.State == room.StateLeft || ev.State == room.StateIdle {
			if ev.Err != nil {
				m.errMsg = ev.Err.Error()
			}
			m.quitting = true
			return tea.Quit
		}

	case room.EventChat:
		m.chat = append(m.chat, ev.Chat)

	case room.EventStreamRequest:
		m.requests = append(m.requests, ev.PeerID)

	case room.EventPermission:
		if ev.Allowed {
			m.status = "Stream request granted, you are live"
		} else {
			m.status = "Stream request denied by the host"
		}

	case room.EventStreamingChanged:
		if ev.Streaming {
			m.status = "Stream started"
		} else {
			m.status = "Stream stopped"
		}

	case room.EventPeerFailed:
		m.errMsg = fmt.Sprintf("connection to %s failed", ev.PeerID)

	case room.EventReconnecting:
		m.status = "Connection lost, reconnecting..."

	case room.EventReconnected:
		m.status = "Reconnected"

	case room.EventError:
		if ev.Err != nil {
			m.errMsg = ev.Err.Error()
		}
	}

	return nil
}

func (m *SessionModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.viewHeader() + "\n\n")

	if m.status != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), m.status))
	}
	if m.errMsg != "" {
		b.WriteString(FormatError(fmt.Errorf("%s", m.errMsg)) + "\n")
	}
	if len(m.requests) > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf(
			"%s %s wants to stream. Allow? (y/n)", IconHand, m.participantName(m.requests[0]))) + "\n")
	}

	if m.showRoster {
		b.WriteString("\n" + NewParticipantTable(m.ctrl.Participants(), m.ctrl.SelfID()).View() + "\n")
	}

	b.WriteString("\n" + m.viewChat() + "\n")

	if reactions := m.viewReactions(); reactions != "" {
		b.WriteString(reactions + "\n")
	}

	b.WriteString("\n" + m.input.View() + "\n")
	b.WriteString(m.viewFooter())

	return ContainerStyle.Render(b.String())
}

func (m *SessionModel) viewHeader() string {
	var badge string
	if m.ctrl.Streaming() {
		badge = " " + LiveBadgeStyle.Render("LIVE")
	}

	mic := IconMic
	if m.ctrl.Muted() {
		mic = IconMuted
	}

	header := HeaderStyle.Render(fmt.Sprintf("%s StreamAlong - %s", IconCamera, m.ctrl.RoomID()))

	info := MutedStyle.Render(fmt.Sprintf("%s %d viewers   %s   %s %s   %s",
		IconViewers, m.ctrl.ViewerCount(),
		mic,
		IconWatch, m.ctrl.Quality(),
		utils.FormatDuration(m.ctrl.Stats().Duration()),
	))

	return header + badge + "\n" + info
}

func (m *SessionModel) viewChat() string {
	if len(m.chat) == 0 {
		return MutedStyle.Render("No messages yet. Press Enter to chat.")
	}

	start := 0
	if len(m.chat) > chatWindow {
		start = len(m.chat) - chatWindow
	}

	var b strings.Builder
	for _, entry := range m.chat[start:] {
		sender := utils.TruncateString(entry.Sender, 16)
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			MutedStyle.Render(entry.At.Format("15:04")),
			ChatSenderStyle.Render(sender+":"),
			entry.Text,
		))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *SessionModel) viewReactions() string {
	active := m.ctrl.ActiveReactions()
	if len(active) == 0 {
		return ""
	}

	var parts []string
	for _, r := range active {
		parts = append(parts, r.Kind)
	}
	return "  " + strings.Join(parts, " ")
}

func (m *SessionModel) viewFooter() string {
	var keys string
	if m.ctrl.Role() == room.RoleHost {
		keys = "s stream on/off · m mute · 1/2 quality · r roster · 7-0 react · enter chat · q leave"
	} else {
		keys = "s request stream · m mute · r roster · 7-0 react · enter chat · q leave"
	}
	return FooterStyle.Render(keys)
}

func (m *SessionModel) participantName(id string) string {
	for _, p := range m.ctrl.Participants() {
		if p.ID == id {
			if p.DisplayName != "" {
				return p.DisplayName
			}
			break
		}
	}
	return utils.TruncateString(id, 8)
}
