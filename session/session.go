package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/flightlink/msp/internal/observability"
	"github.com/flightlink/msp/protocol"
	"github.com/flightlink/msp/protocol/codec"
	"github.com/flightlink/msp/protocol/schema"
	"github.com/flightlink/msp/transport"
)

var (
	ErrClosed          = errors.New("session: closed")
	ErrTimeout         = errors.New("session: request timed out")
	ErrRequestInFlight = errors.New("session: request already in flight")
	ErrTransportDesync = errors.New("session: transport desynchronized")
	ErrUnknownCommand  = errors.New("session: unknown command code")
)

// Session drives the request/response cycle for one flight controller.
// It owns the transport for its lifetime; callers never touch the port
// directly once the session holds it.
type Session struct {
	cfg Config
	log zerolog.Logger

	mu      sync.Mutex // lifecycle state and the pending registry
	opened  bool
	closed  bool
	pending map[uint8]struct{}

	ioMu     sync.Mutex // serializes wire access; no interleaved frames
	port     transport.Port
	deframer *protocol.Deframer
}

// New wraps port in an unopened session. Call Open before Request.
func New(port transport.Port, cfg Config) *Session {
	cfg = cfg.withDefaults()
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}
	return &Session{
		cfg:      cfg,
		log:      log,
		port:     port,
		pending:  make(map[uint8]struct{}),
		deframer: protocol.NewDeframer(),
	}
}

// Open marks the session ready for requests. Opening an open session is
// a no-op; a closed session cannot be reopened.
func (s *Session) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.opened = true
	s.log.Debug().Msg("session open")
	return nil
}

// Close releases the transport. Closing twice is a no-op.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	s.pending = make(map[uint8]struct{})
	s.log.Debug().Msg("session closed")
	if err := s.port.Close(); err != nil {
		return fmt.Errorf("session: close transport: %w", err)
	}
	return nil
}

// Request sends one command and blocks until the matching reply arrives,
// the configured timeout elapses, or ctx is cancelled.
//
// payload may be nil for commands that carry no request data. Exactly one
// request per command code may be outstanding; a second one fails with
// ErrRequestInFlight before anything is written to the wire. Corrupted
// frames encountered while waiting are dropped until DesyncThreshold
// consecutive checksum failures, and replies for other command codes are
// discarded as unsolicited.
func (s *Session) Request(ctx context.Context, code uint8, payload *codec.Record) (*codec.Record, error) {
	desc, ok := schema.Lookup(code)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCommand, code)
	}

	if err := s.register(code); err != nil {
		return nil, err
	}
	defer s.unregister(code)

	raw, err := encodeRequest(desc, payload)
	if err != nil {
		return nil, err
	}
	frame, err := protocol.EncodeFrame(code, raw)
	if err != nil {
		return nil, err
	}

	s.ioMu.Lock()
	defer s.ioMu.Unlock()

	start := time.Now()
	if err := s.writeFull(frame); err != nil {
		observability.RecordRequest(desc.Name, observability.OutcomeError, time.Since(start))
		return nil, err
	}
	s.log.Debug().Uint8("code", code).Int("payload_len", len(raw)).Msg("request sent")

	reply, err := s.awaitReply(ctx, code)
	observability.RecordRequest(desc.Name, outcome(err), time.Since(start))
	if err != nil {
		return nil, err
	}
	return decodeReply(desc, reply)
}

func (s *Session) register(code uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.opened || s.closed {
		return ErrClosed
	}
	if _, inFlight := s.pending[code]; inFlight {
		return fmt.Errorf("%w: command %d", ErrRequestInFlight, code)
	}
	s.pending[code] = struct{}{}
	return nil
}

func (s *Session) unregister(code uint8) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, code)
}

func (s *Session) writeFull(frame []byte) error {
	for len(frame) > 0 {
		n, err := s.port.Write(frame)
		if err != nil {
			return fmt.Errorf("session: transport write: %w", err)
		}
		frame = frame[n:]
	}
	return nil
}

// awaitReply reads and deframes until a frame for code arrives or the
// budget runs out. The caller holds ioMu.
func (s *Session) awaitReply(ctx context.Context, code uint8) ([]byte, error) {
	deadline := time.Now().Add(s.cfg.RequestTimeout)
	buf := make([]byte, s.cfg.ReadChunk)
	checksumErrors := 0

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if time.Now().After(deadline) {
			s.deframer.Reset()
			return nil, fmt.Errorf("%w: command %d after %s", ErrTimeout, code, s.cfg.RequestTimeout)
		}

		n, err := s.port.Read(buf)
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("session: transport read: %w", err)
		}
		if n == 0 {
			// Idle read; serial timeouts pace this loop on real ports.
			time.Sleep(500 * time.Microsecond)
			continue
		}

		for _, ev := range s.deframer.Feed(buf[:n]) {
			switch ev.Kind {
			case protocol.EventChecksumError:
				checksumErrors++
				observability.RecordFrameError(observability.FrameErrorChecksum)
				s.log.Debug().Uint8("code", ev.Code).Int("consecutive", checksumErrors).Msg("checksum error")
				if checksumErrors >= s.cfg.DesyncThreshold {
					return nil, fmt.Errorf("%w: %d consecutive checksum errors",
						ErrTransportDesync, checksumErrors)
				}
			case protocol.EventFrame:
				checksumErrors = 0
				if ev.Code == code && s.isPending(code) {
					return ev.Payload, nil
				}
				// Unsolicited telemetry or a stale reply from a request
				// that already timed out. Expected; drop it.
				s.log.Debug().Uint8("code", ev.Code).Msg("dropped unsolicited frame")
			}
		}
	}
}

func outcome(err error) string {
	switch {
	case err == nil:
		return observability.OutcomeOK
	case errors.Is(err, ErrTimeout):
		return observability.OutcomeTimeout
	case errors.Is(err, ErrTransportDesync):
		return observability.OutcomeDesync
	default:
		return observability.OutcomeError
	}
}

func (s *Session) isPending(code uint8) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.pending[code]
	return ok
}

// encodeRequest builds the request payload. GET commands always send an
// empty payload regardless of their response layout; bidirectional
// commands encode against their query-side layout.
func encodeRequest(desc schema.Descriptor, payload *codec.Record) ([]byte, error) {
	if desc.Direction == schema.DirResponse {
		return nil, nil
	}
	if desc.Query != nil {
		desc.Layout = desc.Query
	}
	return codec.Encode(desc, payload)
}

// decodeReply turns the reply payload into a Record. Set and action
// commands are acknowledged with an empty echo, so an empty payload for
// those resolves to an empty record instead of a layout decode.
func decodeReply(desc schema.Descriptor, payload []byte) (*codec.Record, error) {
	if len(payload) == 0 && desc.Direction == schema.DirRequest {
		return codec.NewRecord(), nil
	}
	return codec.Decode(desc, payload)
}
