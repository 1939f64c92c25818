// Package dial places phone calls for detected numbers.
package dial

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/hay-kot/ringline/pkg/executil"
	"github.com/rs/zerolog"
)

// Dialer places a call to a cleaned phone number. Implementations report
// failure through the error return; callers surface it as a notification
// and never let it propagate further.
type Dialer interface {
	Dial(ctx context.Context, number string) error
}

// SystemDialer hands a tel: URI to the platform's URI opener.
type SystemDialer struct {
	exec   executil.Executor
	opener string
	log    zerolog.Logger
}

// NewSystemDialer creates a dialer that invokes the platform opener.
func NewSystemDialer(exec executil.Executor, log zerolog.Logger) *SystemDialer {
	return &SystemDialer{
		exec:   exec,
		opener: defaultOpener(),
		log:    log,
	}
}

// Dial opens a tel: URI for the given number.
func (d *SystemDialer) Dial(ctx context.Context, number string) error {
	uri := "tel:" + number
	d.log.Info().Str("uri", uri).Msg("placing call")

	if _, err := d.exec.Run(ctx, d.opener, uri); err != nil {
		return fmt.Errorf("open %s: %w", uri, err)
	}
	return nil
}

// defaultOpener returns the platform URI opener command.
func defaultOpener() string {
	if runtime.GOOS == "darwin" {
		return "open"
	}
	return "xdg-open"
}

// SimulatedDialer never places a real call; it records the number and
// logs what would have been dialed.
type SimulatedDialer struct {
	mu    sync.Mutex
	calls []string
	log   zerolog.Logger
}

// NewSimulatedDialer creates a dialer for development use.
func NewSimulatedDialer(log zerolog.Logger) *SimulatedDialer {
	return &SimulatedDialer{log: log}
}

// Dial records the number without touching the platform.
func (d *SimulatedDialer) Dial(_ context.Context, number string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.calls = append(d.calls, number)
	d.log.Info().Str("number", number).Msg("simulated call, no dial performed")
	return nil
}

// Calls returns the numbers that would have been dialed, in order.
func (d *SimulatedDialer) Calls() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	out := make([]string, len(d.calls))
	copy(out, d.calls)
	return out
}
