package tui

import (
	"errors"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/hay-kot/ringline/internal/core/config"
	"github.com/hay-kot/ringline/internal/styles"
)

// SettingsForm wraps a huh.Form for editing broker settings between
// connection attempts.
type SettingsForm struct {
	form *huh.Form

	host     string
	port     string
	topic    string
	username string
	password string

	cancelled bool
}

// NewSettingsForm creates a form pre-filled from the given broker config.
func NewSettingsForm(broker config.Broker) *SettingsForm {
	f := &SettingsForm{
		host:     broker.Host,
		port:     strconv.Itoa(broker.Port),
		topic:    broker.Topic,
		username: broker.Username,
		password: broker.Password,
	}

	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Host").
				Value(&f.host).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("host is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Port").
				Value(&f.port),
			huh.NewInput().
				Title("Topic").
				Value(&f.topic).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("topic is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Username").
				Description("optional").
				Value(&f.username),
			huh.NewInput().
				Title("Password").
				Description("optional").
				EchoMode(huh.EchoModePassword).
				Value(&f.password),
		),
	).WithTheme(styles.FormTheme())

	return f
}

// Form returns the underlying huh.Form for tea.Model integration.
func (f *SettingsForm) Form() *huh.Form {
	return f.form
}

// SetForm replaces the underlying form after an update cycle.
func (f *SettingsForm) SetForm(form *huh.Form) {
	f.form = form
}

// Completed returns true once the form was submitted.
func (f *SettingsForm) Completed() bool {
	return f.form.State == huh.StateCompleted
}

// SetCancelled marks the form as cancelled.
func (f *SettingsForm) SetCancelled() {
	f.cancelled = true
}

// Cancelled returns true if the form was cancelled.
func (f *SettingsForm) Cancelled() bool {
	return f.cancelled
}

// Result builds the broker config from the submitted values. An
// unparsable port falls back to the default rather than erroring.
func (f *SettingsForm) Result() config.Broker {
	return config.Broker{
		Host:     strings.TrimSpace(f.host),
		Port:     config.ParsePort(strings.TrimSpace(f.port)),
		Topic:    strings.TrimSpace(f.topic),
		Username: strings.TrimSpace(f.username),
		Password: f.password,
	}
}

// View renders the form.
func (f *SettingsForm) View() string {
	return f.form.View()
}
