package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, DefaultHost, cfg.Broker.Host)
	assert.Equal(t, DefaultPort, cfg.Broker.Port)
	assert.Equal(t, DefaultTopic, cfg.Broker.Topic)
	assert.Equal(t, DialSimulate, cfg.Dial.Mode)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
broker:
  host: mqtt.example.com
  port: 443
  topic: alerts/oncall
  username: watcher
  password: hunter2
dial:
  mode: system
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mqtt.example.com", cfg.Broker.Host)
	assert.Equal(t, 443, cfg.Broker.Port)
	assert.Equal(t, "alerts/oncall", cfg.Broker.Topic)
	assert.Equal(t, "watcher", cfg.Broker.Username)
	assert.Equal(t, "hunter2", cfg.Broker.Password)
	assert.Equal(t, DialSystem, cfg.Dial.Mode)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
broker:
  host: mqtt.example.com
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "mqtt.example.com", cfg.Broker.Host)
	assert.Equal(t, DefaultPort, cfg.Broker.Port)
	assert.Equal(t, DefaultTopic, cfg.Broker.Topic)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		field   string
		wantErr bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty host",
			mutate:  func(c *Config) { c.Broker.Host = "" },
			field:   "broker.host",
			wantErr: true,
		},
		{
			name:    "port out of range",
			mutate:  func(c *Config) { c.Broker.Port = 70000 },
			field:   "broker.port",
			wantErr: true,
		},
		{
			name:    "empty topic",
			mutate:  func(c *Config) { c.Broker.Topic = "" },
			field:   "broker.topic",
			wantErr: true,
		},
		{
			name:    "unknown dial mode",
			mutate:  func(c *Config) { c.Dial.Mode = "carrier-pigeon" },
			field:   "dial.mode",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			var fieldErrs criterio.FieldErrors
			require.ErrorAs(t, err, &fieldErrs)
			require.Len(t, fieldErrs, 1)
			assert.Equal(t, tt.field, fieldErrs[0].Field)
		})
	}
}

func TestParsePort(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"1883", 1883},
		{"443", 443},
		{"", DefaultPort},
		{"abc", DefaultPort},
		{"0", DefaultPort},
		{"-1", DefaultPort},
		{"99999", DefaultPort},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParsePort(tt.input))
		})
	}
}
