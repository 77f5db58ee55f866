package transport

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// DefaultBaud is the rate MultiWii boards ship with.
const DefaultBaud = 115200

// SerialConfig holds the parameters for opening a serial port.
type SerialConfig struct {
	// Device path, e.g. "/dev/ttyUSB0" or "COM3".
	Device string
	Baud   int
	// ReadTimeout bounds a single blocking read. Keep it short: the
	// session layer loops over reads and enforces the caller's overall
	// budget itself.
	ReadTimeout time.Duration
}

// DefaultSerialConfig returns the standard MultiWii settings for device.
func DefaultSerialConfig(device string) SerialConfig {
	return SerialConfig{
		Device:      device,
		Baud:        DefaultBaud,
		ReadTimeout: 50 * time.Millisecond,
	}
}

type serialPort struct {
	port *serial.Port
}

// OpenSerial opens the serial device described by cfg.
func OpenSerial(cfg SerialConfig) (Port, error) {
	if cfg.Baud == 0 {
		cfg.Baud = DefaultBaud
	}
	if cfg.ReadTimeout == 0 {
		cfg.ReadTimeout = 50 * time.Millisecond
	}
	p, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: cfg.ReadTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("transport: open %s: %w", cfg.Device, err)
	}
	return &serialPort{port: p}, nil
}

func (s *serialPort) Read(p []byte) (int, error)  { return s.port.Read(p) }
func (s *serialPort) Write(p []byte) (int, error) { return s.port.Write(p) }
func (s *serialPort) Close() error                { return s.port.Close() }
