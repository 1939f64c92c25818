package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// defaultToastTTL is how long a notification stays visible.
const defaultToastTTL = 4 * time.Second

// ToastLevel classifies a transient notification.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarn
	ToastError
)

// Toast is a transient, non-blocking notification. Purely informational;
// nothing machine-readable hangs off it.
type Toast struct {
	Level     ToastLevel
	Text      string
	expiresAt time.Time
}

// ToastStack holds the currently visible notifications, oldest first.
type ToastStack struct {
	toasts []Toast
	ttl    time.Duration
	now    func() time.Time
}

// NewToastStack creates an empty stack with the default TTL.
func NewToastStack() *ToastStack {
	return &ToastStack{
		ttl: defaultToastTTL,
		now: time.Now,
	}
}

// Push adds a notification.
func (s *ToastStack) Push(level ToastLevel, text string) {
	s.toasts = append(s.toasts, Toast{
		Level:     level,
		Text:      text,
		expiresAt: s.now().Add(s.ttl),
	})
}

// Expire drops notifications past their TTL. Returns true if anything
// remains visible.
func (s *ToastStack) Expire() bool {
	now := s.now()
	kept := s.toasts[:0]
	for _, t := range s.toasts {
		if t.expiresAt.After(now) {
			kept = append(kept, t)
		}
	}
	s.toasts = kept
	return len(s.toasts) > 0
}

// Len returns the number of visible notifications.
func (s *ToastStack) Len() int {
	return len(s.toasts)
}

// View renders the stack, one notification per line.
func (s *ToastStack) View() string {
	if len(s.toasts) == 0 {
		return ""
	}

	var b strings.Builder
	for i, t := range s.toasts {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(" ")
		b.WriteString(toastStyle(t.Level).Render(toastSymbol(t.Level) + " " + t.Text))
	}
	return b.String()
}

func toastStyle(level ToastLevel) lipgloss.Style {
	switch level {
	case ToastSuccess:
		return lipgloss.NewStyle().Foreground(colorGreen)
	case ToastWarn:
		return lipgloss.NewStyle().Foreground(colorYellow)
	case ToastError:
		return lipgloss.NewStyle().Foreground(colorRed)
	default:
		return lipgloss.NewStyle().Foreground(colorGray)
	}
}

func toastSymbol(level ToastLevel) string {
	switch level {
	case ToastSuccess:
		return "✔"
	case ToastWarn:
		return "•"
	case ToastError:
		return "✘"
	default:
		return "•"
	}
}
