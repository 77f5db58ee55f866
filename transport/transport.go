// Package transport provides the byte-stream ports the protocol engine
// drives. The engine never opens devices itself; it is handed a Port and
// funnels every read and write through it.
package transport

import "io"

// Port is one byte-oriented link to a flight controller.
//
// Read follows serial semantics: it may return fewer bytes than requested,
// and it returns (0, nil) when the port's read timeout elapses with no
// data. The session layer relies on that to poll its own deadline between
// reads instead of blocking forever.
type Port interface {
	io.ReadWriteCloser
}
