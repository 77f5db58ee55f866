package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadCLIConfigDefaultsAndOverrides(t *testing.T) {
	path := writeConfig(t, `
device = "/dev/ttyACM0"
baud = 57600
request_timeout = "1s"
output = "json"
`)

	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Device != "/dev/ttyACM0" {
		t.Fatalf("unexpected device: %q", cfg.Device)
	}
	if cfg.Baud != 57600 {
		t.Fatalf("unexpected baud: %d", cfg.Baud)
	}
	if cfg.RequestTimeout != time.Second {
		t.Fatalf("unexpected request timeout: %v", cfg.RequestTimeout)
	}
	if cfg.Output != "json" {
		t.Fatalf("unexpected output: %q", cfg.Output)
	}
	// Untouched keys keep their defaults.
	if cfg.ReadTimeout != 50*time.Millisecond {
		t.Fatalf("unexpected read timeout: %v", cfg.ReadTimeout)
	}
	if cfg.DesyncThreshold != 3 {
		t.Fatalf("unexpected desync threshold: %d", cfg.DesyncThreshold)
	}
}

func TestLoadCLIConfigEmptyFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "")

	cfg, err := loadCLIConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg != defaultCLIConfig() {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadCLIConfigBadDuration(t *testing.T) {
	path := writeConfig(t, `
request_timeout = "soon"
`)
	if _, err := loadCLIConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoadCLIConfigBadBaud(t *testing.T) {
	path := writeConfig(t, `
baud = -9600
`)
	if _, err := loadCLIConfig(path); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestParseTimeout(t *testing.T) {
	d, err := parseTimeout(" 250ms ")
	if err != nil {
		t.Fatalf("parse timeout: %v", err)
	}
	if d != 250*time.Millisecond {
		t.Fatalf("unexpected duration: %v", d)
	}
	if _, err := parseTimeout("-1s"); err == nil {
		t.Fatalf("expected rejection of negative timeout")
	}
}
