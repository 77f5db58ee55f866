package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/flightlink/msp/transport"
)

// cliConfig is the resolved tool configuration after file and flag
// overrides are applied on top of the defaults.
type cliConfig struct {
	Device          string
	Baud            int
	ReadTimeout     time.Duration
	RequestTimeout  time.Duration
	DesyncThreshold int
	Output          string
}

func defaultCLIConfig() cliConfig {
	return cliConfig{
		Device:          "/dev/ttyUSB0",
		Baud:            transport.DefaultBaud,
		ReadTimeout:     50 * time.Millisecond,
		RequestTimeout:  500 * time.Millisecond,
		DesyncThreshold: 3,
		Output:          "table",
	}
}

type fileConfig struct {
	Device          string `toml:"device"`
	Baud            int    `toml:"baud"`
	ReadTimeout     string `toml:"read_timeout"`
	RequestTimeout  string `toml:"request_timeout"`
	DesyncThreshold int    `toml:"desync_threshold"`
	Output          string `toml:"output"`
}

// loadCLIConfig layers the file at path over the defaults. Only keys
// actually present in the file override anything.
func loadCLIConfig(path string) (cliConfig, error) {
	cfg := defaultCLIConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return cliConfig{}, fmt.Errorf("load config: %w", err)
	}

	if meta.IsDefined("device") {
		device := strings.TrimSpace(raw.Device)
		if device != "" {
			cfg.Device = device
		}
	}

	if meta.IsDefined("baud") {
		if raw.Baud <= 0 {
			return cliConfig{}, fmt.Errorf("load config: baud must be positive, got %d", raw.Baud)
		}
		cfg.Baud = raw.Baud
	}

	if meta.IsDefined("read_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.ReadTimeout))
		if err != nil {
			return cliConfig{}, fmt.Errorf("parse read_timeout: %w", err)
		}
		cfg.ReadTimeout = d
	}

	if meta.IsDefined("request_timeout") {
		d, err := time.ParseDuration(strings.TrimSpace(raw.RequestTimeout))
		if err != nil {
			return cliConfig{}, fmt.Errorf("parse request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}

	if meta.IsDefined("desync_threshold") {
		if raw.DesyncThreshold <= 0 {
			return cliConfig{}, fmt.Errorf("load config: desync_threshold must be positive, got %d", raw.DesyncThreshold)
		}
		cfg.DesyncThreshold = raw.DesyncThreshold
	}

	if meta.IsDefined("output") {
		cfg.Output = strings.TrimSpace(raw.Output)
	}

	return cfg, nil
}

func parseTimeout(raw string) (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("parse timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout must be positive, got %s", d)
	}
	return d, nil
}
