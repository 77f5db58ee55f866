package session

import (
	"time"

	"github.com/rs/zerolog"
)

// Config defines per-session reliability defaults.
type Config struct {
	// RequestTimeout bounds one request/response cycle.
	RequestTimeout time.Duration
	// DesyncThreshold is the number of consecutive checksum failures
	// tolerated before a request fails with ErrTransportDesync. The
	// protocol fixes no value; tune it to the line quality.
	DesyncThreshold int
	// ReadChunk is the transport read buffer size.
	ReadChunk int
	// Logger receives frame-level diagnostics. Defaults to a no-op
	// logger when left zero-valued.
	Logger *zerolog.Logger
}

// DefaultConfig returns conservative defaults for a direct USB link.
func DefaultConfig() Config {
	return Config{
		RequestTimeout:  500 * time.Millisecond,
		DesyncThreshold: 3,
		ReadChunk:       256,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.RequestTimeout <= 0 {
		c.RequestTimeout = d.RequestTimeout
	}
	if c.DesyncThreshold <= 0 {
		c.DesyncThreshold = d.DesyncThreshold
	}
	if c.ReadChunk <= 0 {
		c.ReadChunk = d.ReadChunk
	}
	return c
}
