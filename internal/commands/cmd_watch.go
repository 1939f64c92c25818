package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/ringline/internal/core/config"
	"github.com/hay-kot/ringline/internal/core/msglog"
	"github.com/hay-kot/ringline/internal/core/session"
	"github.com/hay-kot/ringline/internal/dial"
	"github.com/hay-kot/ringline/internal/transport"
	"github.com/hay-kot/ringline/internal/tui"
	"github.com/hay-kot/ringline/pkg/executil"
	"github.com/hay-kot/ringline/pkg/randid"
)

type WatchCmd struct {
	flags *Flags
}

// NewWatchCmd creates a new watch command.
func NewWatchCmd(flags *Flags) *WatchCmd {
	return &WatchCmd{
		flags: flags,
	}
}

// Flags returns the watch-specific flags for registration on the root command.
func (cmd *WatchCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "host",
			Usage:       "broker host override",
			Sources:     cli.EnvVars("RINGLINE_HOST"),
			Destination: &cmd.flags.Host,
		},
		&cli.IntFlag{
			Name:        "port",
			Usage:       "broker port override",
			Sources:     cli.EnvVars("RINGLINE_PORT"),
			Destination: &cmd.flags.Port,
		},
		&cli.StringFlag{
			Name:        "topic",
			Usage:       "topic override",
			Sources:     cli.EnvVars("RINGLINE_TOPIC"),
			Destination: &cmd.flags.Topic,
		},
		&cli.StringFlag{
			Name:        "dial-mode",
			Usage:       "dial mode override (simulate, system)",
			Sources:     cli.EnvVars("RINGLINE_DIAL_MODE"),
			Destination: &cmd.flags.DialMode,
		},
	}
}

// Run executes the TUI. Exported for use as default command.
func (cmd *WatchCmd) Run(ctx context.Context, c *cli.Command) error {
	return cmd.run(ctx, c)
}

func (cmd *WatchCmd) run(_ context.Context, _ *cli.Command) error {
	cfg := cmd.flags.Config

	var dialer dial.Dialer
	switch cfg.Dial.Mode {
	case config.DialSystem:
		dialer = dial.NewSystemDialer(
			&executil.RealExecutor{},
			log.With().Str("component", "dial").Logger(),
		)
	default:
		dialer = dial.NewSimulatedDialer(log.With().Str("component", "dial").Logger())
	}

	factory := func(opts transport.Options, events transport.Events) transport.Client {
		return transport.New(opts, events, log.With().Str("component", "transport").Logger())
	}

	sess := session.New(factory, dialer, msglog.New(0), session.Options{
		ClientID: func() string { return randid.ClientID("ringline") },
		Logger:   log.With().Str("component", "session").Logger(),
	})
	defer sess.Close()

	m := tui.New(sess, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}

	return nil
}
