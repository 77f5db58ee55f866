// Package codec converts raw MSP payload bytes to and from Record values
// driven by a command's schema layout. Multi-byte fields are little-endian
// and signed fields are two's-complement. No unit conversion happens here;
// scaling belongs to the typed layer so byte handling stays exact.
package codec

import (
	"errors"
	"fmt"

	"github.com/flightlink/msp/protocol"
	"github.com/flightlink/msp/protocol/schema"
)

var (
	ErrSchemaMismatch = errors.New("codec: value shape does not match layout")
	ErrPayloadLength  = errors.New("codec: payload length mismatch")
)

// ErrPayloadTooLarge mirrors the frame bound: no encoded payload may
// exceed the single-byte length field.
var ErrPayloadTooLarge = protocol.ErrPayloadTooLarge

// Record holds the raw integer values of one payload, keyed by layout
// field name. Values are widened to int64 on decode; Encode narrows them
// back and rejects values that do not fit the field's wire width.
type Record struct {
	values map[string][]int64
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string][]int64)}
}

// Set stores vals under name, replacing any previous values.
func (r *Record) Set(name string, vals ...int64) *Record {
	r.values[name] = vals
	return r
}

// Int returns the first value stored under name, or 0.
func (r *Record) Int(name string) int64 {
	if vs := r.values[name]; len(vs) > 0 {
		return vs[0]
	}
	return 0
}

// Ints returns every value stored under name.
func (r *Record) Ints(name string) []int64 {
	return r.values[name]
}

// Bytes reinterprets a repeated U8 field as a byte slice.
func (r *Record) Bytes(name string) []byte {
	vs := r.values[name]
	out := make([]byte, len(vs))
	for i, v := range vs {
		out[i] = byte(v)
	}
	return out
}

// Decode parses raw according to desc's layout.
//
// Fixed fields consume exactly their width; a trailing variable field
// consumes whatever remains, which must hold a whole number of elements.
// Any leftover or missing bytes fail with ErrPayloadLength.
func Decode(desc schema.Descriptor, raw []byte) (*Record, error) {
	rec := NewRecord()
	offset := 0
	for _, f := range desc.Layout {
		size := f.Kind.Size()
		count := f.Count
		if count == 0 {
			rest := len(raw) - offset
			if rest%size != 0 {
				return nil, fmt.Errorf("%w: %s: %d trailing bytes are not a multiple of %d",
					ErrPayloadLength, desc.Name, rest, size)
			}
			count = rest / size
		}
		need := count * size
		if offset+need > len(raw) {
			return nil, fmt.Errorf("%w: %s: need %d bytes for %q, have %d",
				ErrPayloadLength, desc.Name, need, f.Name, len(raw)-offset)
		}
		vals := make([]int64, count)
		for i := 0; i < count; i++ {
			vals[i] = readValue(f.Kind, raw[offset+i*size:])
		}
		rec.values[f.Name] = vals
		offset += need
	}
	if offset != len(raw) {
		return nil, fmt.Errorf("%w: %s: %d unconsumed bytes",
			ErrPayloadLength, desc.Name, len(raw)-offset)
	}
	return rec, nil
}

// Encode serializes rec according to desc's layout.
//
// Every layout field must be present with the exact count the layout
// fixes; variable fields accept any element count. Values outside the
// field's representable range fail with ErrSchemaMismatch.
func Encode(desc schema.Descriptor, rec *Record) ([]byte, error) {
	if rec == nil {
		rec = NewRecord()
	}
	out := make([]byte, 0, desc.Layout.FixedSize())
	for _, f := range desc.Layout {
		vals, ok := rec.values[f.Name]
		if f.Count > 0 {
			if !ok || len(vals) != f.Count {
				return nil, fmt.Errorf("%w: %s: field %q wants %d values, got %d",
					ErrSchemaMismatch, desc.Name, f.Name, f.Count, len(vals))
			}
		}
		for _, v := range vals {
			if !fits(f.Kind, v) {
				return nil, fmt.Errorf("%w: %s: value %d overflows field %q",
					ErrSchemaMismatch, desc.Name, v, f.Name)
			}
			out = appendValue(out, f.Kind, v)
		}
	}
	if len(out) > protocol.MaxPayload {
		return nil, fmt.Errorf("%w: %s encodes to %d bytes", ErrPayloadTooLarge, desc.Name, len(out))
	}
	return out, nil
}

func readValue(k schema.Kind, b []byte) int64 {
	switch k {
	case schema.U8:
		return int64(b[0])
	case schema.S8:
		return int64(int8(b[0]))
	case schema.U16:
		return int64(uint16(b[0]) | uint16(b[1])<<8)
	case schema.S16:
		return int64(int16(uint16(b[0]) | uint16(b[1])<<8))
	case schema.U32:
		return int64(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24)
	default: // schema.S32
		return int64(int32(uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24))
	}
}

func appendValue(out []byte, k schema.Kind, v int64) []byte {
	switch k.Size() {
	case 1:
		return append(out, byte(v))
	case 2:
		return append(out, byte(v), byte(v>>8))
	default:
		return append(out, byte(v), byte(v>>8), byte(v>>16), byte(v>>24))
	}
}

func fits(k schema.Kind, v int64) bool {
	if k.Signed() {
		bits := uint(k.Size()*8 - 1)
		return v >= -(1<<bits) && v < 1<<bits
	}
	bits := uint(k.Size() * 8)
	return v >= 0 && v < 1<<bits
}
