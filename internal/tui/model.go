package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/ringline/internal/core/config"
	"github.com/hay-kot/ringline/internal/core/session"
	"github.com/hay-kot/ringline/internal/styles"
	"github.com/hay-kot/ringline/internal/transport"
)

// UIState represents the current state of the TUI.
type UIState int

const (
	stateNormal UIState = iota
	stateSettings
	statePreviewing
)

// Key constants for event handling.
const (
	keyEnter = "enter"
	keyCtrlC = "ctrl+c"
)

// tickInterval drives toast expiry and the elapsed-time display.
const tickInterval = time.Second

// Model is the main Bubble Tea model for the TUI.
type Model struct {
	sess     *session.Session
	broker   config.Broker
	dialMode string

	state    UIState
	logView  *LogView
	toasts   *ToastStack
	width    int
	height   int
	quitting bool

	// Set when the connected event arrives, cleared on loss or disconnect.
	connectedAt time.Time

	settingsForm *SettingsForm
	previewModal PreviewModal
}

// sessionEventMsg wraps one event from the session channel.
type sessionEventMsg struct {
	event session.Event
	ok    bool
}

// tickMsg fires once per tickInterval.
type tickMsg time.Time

// New creates a new TUI model.
func New(sess *session.Session, cfg *config.Config) Model {
	m := Model{
		sess:     sess,
		broker:   cfg.Broker,
		dialMode: cfg.Dial.Mode,
		state:    stateNormal,
		logView:  NewLogView(),
		toasts:   NewToastStack(),
	}
	m.logView.SetRecords(sess.Log().All())
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		listenForSessionEvents(m.sess.Events()),
		scheduleTick(),
	)
}

// listenForSessionEvents returns a command that waits for the next
// session event. It is re-issued after every receive.
func listenForSessionEvents(events <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-events
		return sessionEventMsg{event: e, ok: ok}
	}
}

// scheduleTick returns a command that fires the next tick.
func scheduleTick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Banner (5) + status bar (1) + spacing (1) + help (1)
		contentHeight := msg.Height - 8
		if contentHeight < 1 {
			contentHeight = 1
		}
		m.logView.SetSize(msg.Width, contentHeight)
		return m, nil

	case sessionEventMsg:
		if !msg.ok {
			// Channel closed during teardown, stop listening.
			return m, nil
		}
		m = m.handleSessionEvent(msg.event)
		return m, listenForSessionEvents(m.sess.Events())

	case tickMsg:
		m.toasts.Expire()
		return m, scheduleTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Route all other messages to the form while editing settings
	if m.state == stateSettings && m.settingsForm != nil {
		return m.updateSettingsForm(msg)
	}

	if m.state == statePreviewing {
		m.previewModal.UpdateViewport(msg)
	}
	return m, nil
}

// handleSessionEvent maps a session event to UI updates.
func (m Model) handleSessionEvent(e session.Event) Model {
	switch e.Kind {
	case session.EventConnected:
		m.connectedAt = time.Now()
		m.toasts.Push(ToastSuccess, "connected to "+transport.BrokerURL(m.broker.Host, m.broker.Port))

	case session.EventConnectFailed:
		m.connectedAt = time.Time{}
		m.toasts.Push(ToastError, "connect failed: "+e.Err.Error())

	case session.EventSubscribed:
		m.toasts.Push(ToastInfo, "subscribed to "+e.Topic)

	case session.EventSubscribeFailed:
		m.toasts.Push(ToastError, "subscribe failed: "+e.Err.Error())

	case session.EventMessage:
		m.logView.SetRecords(m.sess.Log().All())

	case session.EventDetected:
		m.toasts.Push(ToastSuccess, fmt.Sprintf("%s calling %s", iconRing, e.Phone))

	case session.EventDialFailed:
		m.toasts.Push(ToastError, "call failed: "+e.Err.Error())

	case session.EventConnectionLost:
		m.connectedAt = time.Time{}
		detail := ""
		if e.Err != nil {
			detail = ": " + e.Err.Error()
		}
		m.toasts.Push(ToastWarn, "connection lost"+detail)

	case session.EventDisconnected:
		m.connectedAt = time.Time{}
		m.toasts.Push(ToastInfo, "disconnected")
	}
	return m
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()

	if m.state == stateSettings {
		return m.handleSettingsKey(msg, keyStr)
	}
	if m.state == statePreviewing {
		return m.handlePreviewKey(msg, keyStr)
	}
	if m.logView.IsFiltering() {
		return m.handleFilteringKey(msg, keyStr)
	}
	return m.handleNormalKey(keyStr)
}

// handleSettingsKey handles keys while the settings form is shown.
func (m Model) handleSettingsKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	if keyStr == keyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}
	if keyStr == "esc" {
		m.settingsForm.SetCancelled()
		m.state = stateNormal
		m.settingsForm = nil
		return m, nil
	}
	return m.updateSettingsForm(msg)
}

// updateSettingsForm routes a message to the form and applies the result
// once the form completes.
func (m Model) updateSettingsForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.settingsForm.Form().Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.settingsForm.SetForm(f)

		if m.settingsForm.Completed() {
			m.broker = m.settingsForm.Result()
			m.state = stateNormal
			m.settingsForm = nil
			m.toasts.Push(ToastInfo, "settings updated, press c to connect")
			return m, nil
		}
	}
	return m, cmd
}

// handlePreviewKey handles keys while the preview modal is shown.
func (m Model) handlePreviewKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case "esc", keyEnter, "q":
		m.state = stateNormal
		return m, nil
	case "up", "k":
		m.previewModal.ScrollUp()
		return m, nil
	case "down", "j":
		m.previewModal.ScrollDown()
		return m, nil
	default:
		m.previewModal.UpdateViewport(msg)
		return m, nil
	}
}

// handleFilteringKey handles keys while the log filter input is active.
func (m Model) handleFilteringKey(msg tea.KeyMsg, keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case keyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case "esc":
		m.logView.CancelFilter()
	case keyEnter:
		m.logView.ConfirmFilter()
	case "backspace":
		m.logView.DeleteFilterRune()
	default:
		if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
			runes := msg.Runes
			if msg.Type == tea.KeySpace {
				runes = []rune{' '}
			}
			for _, r := range runes {
				m.logView.AddFilterRune(r)
			}
		}
	}
	return m, nil
}

// handleNormalKey handles keys in normal state.
func (m Model) handleNormalKey(keyStr string) (tea.Model, tea.Cmd) {
	switch keyStr {
	case "q", keyCtrlC:
		m.quitting = true
		return m, tea.Quit

	case "c":
		if err := m.sess.Connect(m.broker); err != nil {
			m.toasts.Push(ToastWarn, err.Error())
			return m, nil
		}
		m.toasts.Push(ToastInfo, "connecting to "+transport.BrokerURL(m.broker.Host, m.broker.Port))
		return m, nil

	case "d":
		m.sess.Disconnect()
		return m, nil

	case "s":
		m.settingsForm = NewSettingsForm(m.broker)
		m.state = stateSettings
		return m, m.settingsForm.Form().Init()

	case keyEnter:
		if rec := m.logView.SelectedRecord(); rec != nil {
			m.state = statePreviewing
			m.previewModal = NewPreviewModal(*rec, m.width, m.height)
		}
		return m, nil

	case "up", "k":
		m.logView.MoveUp()
		return m, nil

	case "down", "j":
		m.logView.MoveDown()
		return m, nil

	case "/":
		m.logView.StartFilter()
		return m, nil
	}
	return m, nil
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	bannerView := styles.BannerStyle.Render(styles.Banner)
	statusBar := m.renderStatusBar()
	logContent := m.logView.View()
	helpBar := m.renderHelp()

	sections := []string{bannerView, statusBar, "", logContent}
	if m.toasts.Len() > 0 {
		sections = append(sections, m.toasts.View())
	}
	sections = append(sections, helpBar)

	mainView := lipgloss.JoinVertical(lipgloss.Left, sections...)

	w, h := m.width, m.height
	if w == 0 {
		w = 80
	}
	if h == 0 {
		h = 24
	}

	if m.state == stateSettings && m.settingsForm != nil {
		formContent := lipgloss.JoinVertical(
			lipgloss.Left,
			modalTitleStyle.Render("Broker Settings"),
			"",
			m.settingsForm.View(),
			modalHelpStyle.Render("[esc] cancel"),
		)
		modal := modalStyle.Render(formContent)
		return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, modal)
	}

	if m.state == statePreviewing {
		return m.previewModal.Overlay(w, h)
	}

	return mainView
}

// renderStatusBar renders the connection status line.
func (m Model) renderStatusBar() string {
	var status string
	switch m.sess.Status() {
	case session.StatusConnected:
		elapsed := time.Since(m.connectedAt).Round(time.Second)
		status = statusConnectedStyle.Render(fmt.Sprintf("%s connected %s", iconLive, elapsed))
	case session.StatusConnecting:
		status = statusConnectingStyle.Render(iconLive + " connecting")
	case session.StatusDisconnected:
		status = statusDisconnectedStyle.Render(iconLive + " disconnected")
	default:
		status = statusDisconnectedStyle.Render(iconLive + " idle")
	}

	url := transport.BrokerURL(m.broker.Host, m.broker.Port)
	detail := statusDetailStyle.Render(fmt.Sprintf("%s %s %s %s %s %s",
		iconDot, url, iconDot, m.broker.Topic, iconDot, m.dialMode))

	return statusBarStyle.Render(status + " " + detail)
}

// renderHelp renders the key hints line.
func (m Model) renderHelp() string {
	if m.logView.IsFiltering() {
		return helpStyle.Render("[enter] apply filter  [esc] cancel")
	}

	hints := "[c] connect  [d] disconnect  [s] settings  [enter] preview  [/] filter  [q] quit"
	if m.sess.Status() == session.StatusConnected {
		hints = "[d] disconnect  [s] settings  [enter] preview  [/] filter  [q] quit"
	}
	return helpStyle.Render(hints)
}
