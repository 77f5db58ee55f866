package protocol

import (
	"bytes"
	"reflect"
	"testing"
)

// responseFrame builds a '>' framed reply the way firmware would emit it.
func responseFrame(t *testing.T, code uint8, payload []byte) []byte {
	t.Helper()
	frame, err := EncodeFrame(code, payload)
	if err != nil {
		t.Fatalf("encode frame: %v", err)
	}
	frame[2] = DirResponse
	return frame
}

func TestFeedCompleteFrame(t *testing.T) {
	d := NewDeframer()
	events := d.Feed(responseFrame(t, 108, []byte{0x0A, 0x00, 0xF6, 0xFF, 0x2C, 0x01}))
	if len(events) != 1 {
		t.Fatalf("expected one event, got %d", len(events))
	}
	ev := events[0]
	if ev.Kind != EventFrame || ev.Code != 108 {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if !bytes.Equal(ev.Payload, []byte{0x0A, 0x00, 0xF6, 0xFF, 0x2C, 0x01}) {
		t.Fatalf("payload mismatch: % x", ev.Payload)
	}
}

func TestFeedZeroLengthFrame(t *testing.T) {
	d := NewDeframer()
	events := d.Feed(responseFrame(t, 205, nil))
	if len(events) != 1 || events[0].Kind != EventFrame || events[0].Code != 205 {
		t.Fatalf("unexpected events: %+v", events)
	}
	if len(events[0].Payload) != 0 {
		t.Fatalf("expected empty payload, got % x", events[0].Payload)
	}
}

func TestFeedChunkingIndependence(t *testing.T) {
	stream := append([]byte{}, responseFrame(t, 100, []byte{0x17, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00})...)
	stream = append(stream, 0x00, '$', 'q')
	stream = append(stream, responseFrame(t, 108, []byte{0x01, 0x02})...)
	corrupt := responseFrame(t, 105, []byte{0xAA, 0xBB})
	corrupt[len(corrupt)-1] ^= 0xFF
	stream = append(stream, corrupt...)

	whole := NewDeframer().Feed(stream)

	bytewise := NewDeframer()
	var split []Event
	for _, b := range stream {
		split = append(split, bytewise.Feed([]byte{b})...)
	}

	if !reflect.DeepEqual(whole, split) {
		t.Fatalf("event streams diverge:\nwhole=%+v\nsplit=%+v", whole, split)
	}
	if len(whole) != 3 {
		t.Fatalf("expected 3 events, got %d", len(whole))
	}
	if whole[2].Kind != EventChecksumError {
		t.Fatalf("expected trailing checksum error, got %+v", whole[2])
	}
}

func TestFeedMultipleFramesInOneChunk(t *testing.T) {
	stream := append(responseFrame(t, 104, []byte{0xE8, 0x03}), responseFrame(t, 110, []byte{0x7E, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})...)
	events := NewDeframer().Feed(stream)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Code != 104 || events[1].Code != 110 {
		t.Fatalf("unexpected codes: %d %d", events[0].Code, events[1].Code)
	}
}

func TestSingleBitFlipNeverYieldsFrame(t *testing.T) {
	payload := []byte{0x17, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00}
	frame := responseFrame(t, 100, payload)

	// Flip every bit of the length byte and each payload byte in turn,
	// holding the checksum fixed.
	for pos := 3; pos < len(frame)-1; pos++ {
		if pos == 4 {
			continue // code byte: a flipped code still fails the checksum, covered below
		}
		for bit := 0; bit < 8; bit++ {
			mutated := append([]byte(nil), frame...)
			mutated[pos] ^= 1 << bit
			events := NewDeframer().Feed(mutated)
			for _, ev := range events {
				if ev.Kind == EventFrame {
					t.Fatalf("bit flip at byte %d bit %d produced a frame", pos, bit)
				}
			}
		}
	}

	for bit := 0; bit < 8; bit++ {
		mutated := append([]byte(nil), frame...)
		mutated[4] ^= 1 << bit
		events := NewDeframer().Feed(mutated)
		if len(events) != 1 || events[0].Kind != EventChecksumError {
			t.Fatalf("code bit flip %d: expected one checksum error, got %+v", bit, events)
		}
	}
}

func TestResyncAfterNoise(t *testing.T) {
	noise := [][]byte{
		{0x00, 0xFF, 0x13, 0x37},
		{'$'},
		{'$', 'M'},
		{'$', 'M', '<'}, // request direction is never valid inbound
		{'M', '>', '$'},
	}
	frame := responseFrame(t, 100, []byte{0x17, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00})
	for _, prefix := range noise {
		d := NewDeframer()
		var events []Event
		events = append(events, d.Feed(prefix)...)
		events = append(events, d.Feed(frame)...)

		var frames int
		for _, ev := range events {
			if ev.Kind == EventFrame {
				frames++
				if ev.Code != 100 {
					t.Fatalf("prefix % x: unexpected code %d", prefix, ev.Code)
				}
			}
		}
		if frames != 1 {
			t.Fatalf("prefix % x: expected exactly one frame, got %d", prefix, frames)
		}
	}
}

func TestResyncWithoutResetAfterTruncatedFrame(t *testing.T) {
	truncated := responseFrame(t, 108, []byte{0x01, 0x02, 0x03})
	truncated = truncated[:4] // preamble, direction, length; then the stream restarts
	frame := responseFrame(t, 100, []byte{0x17, 0x03, 0x00, 0x00, 0x00, 0x00, 0x00})

	d := NewDeframer()
	d.Feed(truncated)
	d.Reset() // caller gave up on the partial frame
	events := d.Feed(frame)
	if len(events) != 1 || events[0].Kind != EventFrame || events[0].Code != 100 {
		t.Fatalf("unexpected events after reset: %+v", events)
	}
}

func TestNoiseThatResemblesPreamble(t *testing.T) {
	frame := responseFrame(t, 101, []byte{0x10, 0x27, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01})
	stream := append([]byte{'$', '$', 'M', 'x', '$'}, frame...)
	events := NewDeframer().Feed(stream)
	var frames int
	for _, ev := range events {
		if ev.Kind == EventFrame {
			frames++
		}
	}
	if frames != 1 {
		t.Fatalf("expected one frame after preamble-like noise, got %d (%+v)", frames, events)
	}
}
