package dial

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/ringline/pkg/executil"
)

func TestSystemDialer_InvokesOpenerOnce(t *testing.T) {
	exec := &executil.RecordingExecutor{}
	d := NewSystemDialer(exec, zerolog.Nop())

	err := d.Dial(context.Background(), "+18005550199")
	require.NoError(t, err)

	recorded := exec.Recorded()
	require.Len(t, recorded, 1)
	assert.Equal(t, []string{"tel:+18005550199"}, recorded[0].Args)
}

func TestSystemDialer_WrapsOpenerError(t *testing.T) {
	exec := &executil.RecordingExecutor{
		Errors: map[string]error{"xdg-open": errors.New("no handler")},
	}
	d := NewSystemDialer(exec, zerolog.Nop())
	d.opener = "xdg-open"

	err := d.Dial(context.Background(), "5551234567")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tel:5551234567")
}

func TestSimulatedDialer_NeverTouchesPlatform(t *testing.T) {
	d := NewSimulatedDialer(zerolog.Nop())

	require.NoError(t, d.Dial(context.Background(), "5551234567"))
	require.NoError(t, d.Dial(context.Background(), "+442079460958"))

	assert.Equal(t, []string{"5551234567", "+442079460958"}, d.Calls())
}
