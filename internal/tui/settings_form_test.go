package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/ringline/internal/core/config"
)

func TestNewSettingsForm(t *testing.T) {
	broker := config.Broker{
		Host:  "broker.example.com",
		Port:  8083,
		Topic: "alerts/phones",
	}

	t.Run("creates form with broker values", func(t *testing.T) {
		form := NewSettingsForm(broker)
		require.NotNil(t, form)
		require.NotNil(t, form.Form())
		assert.False(t, form.Completed())
		assert.False(t, form.Cancelled())
	})

	t.Run("result round-trips values", func(t *testing.T) {
		form := NewSettingsForm(broker)

		result := form.Result()
		assert.Equal(t, "broker.example.com", result.Host)
		assert.Equal(t, 8083, result.Port)
		assert.Equal(t, "alerts/phones", result.Topic)
	})

	t.Run("result trims whitespace", func(t *testing.T) {
		form := NewSettingsForm(broker)
		form.host = "  broker.example.com  "
		form.topic = " alerts/phones "

		result := form.Result()
		assert.Equal(t, "broker.example.com", result.Host)
		assert.Equal(t, "alerts/phones", result.Topic)
	})

	t.Run("unparsable port falls back to default", func(t *testing.T) {
		form := NewSettingsForm(broker)
		form.port = "not-a-port"

		result := form.Result()
		assert.Equal(t, config.DefaultPort, result.Port)
	})

	t.Run("tracks cancelled state", func(t *testing.T) {
		form := NewSettingsForm(broker)
		assert.False(t, form.Cancelled())
		form.SetCancelled()
		assert.True(t, form.Cancelled())
	})
}
