// Package config loads mavscope settings from an optional YAML file merged
// over compiled defaults. With no file present, the defaults reproduce the
// stock sensor-rate monitoring setup.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Monitor MonitorConfig `yaml:"monitor"`
	Server  ServerConfig  `yaml:"server"`
	Log     LogConfig     `yaml:"log"`
}

type MonitorConfig struct {
	// Messages is the fixed, ordered whitelist of MAVLink message names to
	// track. Display order follows this list, not discovery order.
	Messages []string `yaml:"messages"`

	// TickInterval is the dashboard redraw period.
	TickInterval time.Duration `yaml:"tick_interval"`

	// ReadyTimeout bounds the initial wait for a device; ReadyPoll is the
	// poll period inside that wait; ReadyGrace is the extra listen window
	// granted after the timeout before giving up entirely.
	ReadyTimeout time.Duration `yaml:"ready_timeout"`
	ReadyPoll    time.Duration `yaml:"ready_poll"`
	ReadyGrace   time.Duration `yaml:"ready_grace"`

	// ExpectedRates maps a message name to its nominal rate in Hz, used to
	// scale the dashboard's rate bars. Names without an entry fall back to
	// the "default" key.
	ExpectedRates map[string]float64 `yaml:"expected_rates"`
}

type ServerConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

type LogConfig struct {
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
}

func defaultConfig() *Config {
	return &Config{
		Monitor: MonitorConfig{
			Messages: []string{
				"OPTICAL_FLOW",
				"OPTICAL_FLOW_RAD",
				"DISTANCE_SENSOR",
				"HEARTBEAT",
			},
			TickInterval: time.Second,
			ReadyTimeout: 10 * time.Second,
			ReadyPoll:    100 * time.Millisecond,
			ReadyGrace:   2 * time.Second,
			ExpectedRates: map[string]float64{
				"HEARTBEAT": 1,
				"default":   10,
			},
		},
		Server: ServerConfig{
			Enabled: false,
			Host:    "127.0.0.1",
			Port:    8320,
		},
		Log: LogConfig{
			File:       "mavscope.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// Load reads the config file at path. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if len(c.Monitor.Messages) == 0 {
		return fmt.Errorf("monitor.messages must list at least one message name")
	}
	if c.Monitor.TickInterval <= 0 {
		return fmt.Errorf("monitor.tick_interval must be positive")
	}
	if c.Monitor.ReadyPoll <= 0 {
		return fmt.Errorf("monitor.ready_poll must be positive")
	}
	return nil
}

// ExpectedRate returns the nominal rate for a message name, falling back to
// the "default" key and finally to 10 Hz.
func (c *Config) ExpectedRate(name string) float64 {
	if r, ok := c.Monitor.ExpectedRates[name]; ok {
		return r
	}
	if r, ok := c.Monitor.ExpectedRates["default"]; ok {
		return r
	}
	return 10
}
