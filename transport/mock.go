package transport

import (
	"errors"
	"sync"
)

// ErrPortClosed is returned by mock operations after Close.
var ErrPortClosed = errors.New("transport: port closed")

// Responder produces the bytes a mock firmware sends back for one
// written request frame. Returning nil means no reply.
type Responder func(frame []byte) []byte

// MockPort is an in-memory Port scripted to behave like firmware on the
// other end of the wire. Reads drain an internal buffer, optionally in
// bounded chunks to exercise partial-read handling.
type MockPort struct {
	mu        sync.Mutex
	inbound   []byte
	writes    [][]byte
	responder Responder
	chunk     int
	closed    bool
}

// NewMockPort returns an open mock with no scripted responder.
func NewMockPort() *MockPort {
	return &MockPort{}
}

// Respond installs fn as the reply script for subsequent writes.
func (m *MockPort) Respond(fn Responder) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responder = fn
}

// ChunkReads caps every Read at n bytes, forcing the reader to
// reassemble frames across calls. Zero removes the cap.
func (m *MockPort) ChunkReads(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunk = n
}

// QueueRead appends raw bytes for the reader to consume, independent of
// any written request. Used to inject noise and unsolicited frames.
func (m *MockPort) QueueRead(p []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inbound = append(m.inbound, p...)
}

// Writes returns a copy of every frame written so far.
func (m *MockPort) Writes() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([][]byte, len(m.writes))
	for i, w := range m.writes {
		out[i] = append([]byte(nil), w...)
	}
	return out
}

func (m *MockPort) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrPortClosed
	}
	if len(m.inbound) == 0 {
		return 0, nil // idle, like a serial read timeout
	}
	n := len(m.inbound)
	if n > len(p) {
		n = len(p)
	}
	if m.chunk > 0 && n > m.chunk {
		n = m.chunk
	}
	copy(p, m.inbound[:n])
	m.inbound = m.inbound[n:]
	return n, nil
}

func (m *MockPort) Write(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, ErrPortClosed
	}
	frame := append([]byte(nil), p...)
	m.writes = append(m.writes, frame)
	if m.responder != nil {
		if reply := m.responder(frame); len(reply) > 0 {
			m.inbound = append(m.inbound, reply...)
		}
	}
	return len(p), nil
}

func (m *MockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
