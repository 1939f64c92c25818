// Package config handles configuration loading and validation for ringline.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"
)

// Built-in dial modes.
const (
	DialSimulate = "simulate"
	DialSystem   = "system"
)

// Broker defaults.
const (
	DefaultHost  = "broker.emqx.io"
	DefaultPort  = 8083
	DefaultTopic = "ringline/inbox"
)

// Config holds the application configuration.
type Config struct {
	Broker Broker `yaml:"broker"`
	Dial   Dial   `yaml:"dial"`
}

// Broker describes one connection attempt. It is immutable per attempt;
// the settings form produces a fresh value for the next attempt.
type Broker struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Topic    string `yaml:"topic"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Address returns the host:port pair for display.
func (b Broker) Address() string {
	return fmt.Sprintf("%s:%d", b.Host, b.Port)
}

// Dial holds call-trigger configuration.
type Dial struct {
	// Mode selects how detected numbers are handled: simulate never
	// places a real call, system hands a tel: URI to the platform opener.
	Mode string `yaml:"mode"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Broker: Broker{
			Host:  DefaultHost,
			Port:  DefaultPort,
			Topic: DefaultTopic,
		},
		Dial: Dial{
			Mode: DialSimulate,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Broker.Host == "" {
		c.Broker.Host = defaults.Broker.Host
	}
	if c.Broker.Port == 0 {
		c.Broker.Port = defaults.Broker.Port
	}
	if c.Broker.Topic == "" {
		c.Broker.Topic = defaults.Broker.Topic
	}
	if c.Dial.Mode == "" {
		c.Dial.Mode = defaults.Dial.Mode
	}
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrors

	if c.Broker.Host == "" {
		errs = append(errs, criterio.FieldError{
			Field: "broker.host",
			Err:   errors.New("host cannot be empty"),
		})
	}

	if c.Broker.Port < 1 || c.Broker.Port > 65535 {
		errs = append(errs, criterio.FieldError{
			Field: "broker.port",
			Err:   fmt.Errorf("port must be between 1 and 65535, got %d", c.Broker.Port),
		})
	}

	if c.Broker.Topic == "" {
		errs = append(errs, criterio.FieldError{
			Field: "broker.topic",
			Err:   errors.New("topic cannot be empty"),
		})
	}

	if !isValidDialMode(c.Dial.Mode) {
		errs = append(errs, criterio.FieldError{
			Field: "dial.mode",
			Err:   fmt.Errorf("invalid mode %q, must be %q or %q", c.Dial.Mode, DialSimulate, DialSystem),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ParsePort converts a port string from user input. Unparsable or
// out-of-range values fall back to DefaultPort rather than erroring.
func ParsePort(s string) int {
	port, err := strconv.Atoi(s)
	if err != nil || port < 1 || port > 65535 {
		return DefaultPort
	}
	return port
}

func isValidDialMode(mode string) bool {
	switch mode {
	case DialSimulate, DialSystem:
		return true
	default:
		return false
	}
}
