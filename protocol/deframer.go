package protocol

// EventKind discriminates the outcomes a Deframer can produce.
type EventKind uint8

const (
	// EventFrame reports a complete frame with a valid checksum.
	EventFrame EventKind = iota
	// EventChecksumError reports a frame whose checksum did not match.
	// The frame content is discarded and the parser resynchronizes.
	EventChecksumError
)

// Event is one parse outcome emitted by Deframer.Feed.
type Event struct {
	Kind    EventKind
	Code    uint8
	Payload []byte
}

type parseState uint8

const (
	awaitPreamble1 parseState = iota
	awaitPreamble2
	awaitDirection
	awaitLength
	awaitCommand
	awaitPayload
	awaitChecksum
)

// Deframer reassembles inbound frames from a byte stream delivered in
// arbitrary chunks. Feeding successive chunks is equivalent to feeding
// their concatenation; all parse context is carried between calls.
//
// Any byte that does not fit the expected header sequence resets the
// parser to hunting for the next preamble, so line noise or a partial
// frame cannot wedge the stream.
//
// A Deframer is owned by a single reader and is not safe for concurrent
// use.
type Deframer struct {
	state   parseState
	length  uint8
	code    uint8
	crc     uint8
	payload []byte
}

// NewDeframer returns a Deframer hunting for a preamble.
func NewDeframer() *Deframer {
	return &Deframer{}
}

// Reset discards any partially accumulated frame.
func (d *Deframer) Reset() {
	d.state = awaitPreamble1
	d.payload = nil
}

// Feed consumes p and returns the events completed by those bytes, in
// stream order. The returned payload slices are owned by the caller.
func (d *Deframer) Feed(p []byte) []Event {
	var events []Event
	for _, b := range p {
		switch d.state {
		case awaitPreamble1:
			if b == Preamble1 {
				d.state = awaitPreamble2
			}
		case awaitPreamble2:
			if b == Preamble2 {
				d.state = awaitDirection
			} else if b != Preamble1 {
				// A '$' here may start the real preamble; stay put for it.
				d.Reset()
			}
		case awaitDirection:
			switch b {
			case DirResponse:
				d.state = awaitLength
			case Preamble1:
				d.Reset()
				d.state = awaitPreamble2
			default:
				d.Reset()
			}
		case awaitLength:
			d.length = b
			d.crc = b
			d.state = awaitCommand
		case awaitCommand:
			d.code = b
			d.crc ^= b
			if d.length == 0 {
				d.state = awaitChecksum
			} else {
				d.payload = make([]byte, 0, d.length)
				d.state = awaitPayload
			}
		case awaitPayload:
			d.payload = append(d.payload, b)
			d.crc ^= b
			if len(d.payload) == int(d.length) {
				d.state = awaitChecksum
			}
		case awaitChecksum:
			if b == d.crc {
				events = append(events, Event{Kind: EventFrame, Code: d.code, Payload: d.payload})
			} else {
				events = append(events, Event{Kind: EventChecksumError, Code: d.code})
			}
			d.Reset()
		}
	}
	return events
}
