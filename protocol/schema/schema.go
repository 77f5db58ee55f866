// Package schema is the compiled-in MSP v1 command registry. Descriptors
// are fixed data: adding a command is a code change, never a runtime
// mutation, so concurrent lookups need no synchronization.
package schema

// Direction states which side originates a command's payload.
type Direction uint8

const (
	// DirRequest carries caller data to the firmware (SET and action
	// commands); the reply echoes the code with an empty payload.
	DirRequest Direction = iota
	// DirResponse carries firmware data back to the caller (GET
	// commands); the request payload is empty.
	DirResponse
	// DirBidirectional carries data both ways.
	DirBidirectional
)

// Kind is the wire width and signedness of one layout field.
type Kind uint8

const (
	U8 Kind = iota
	S8
	U16
	S16
	U32
	S32
)

// Size returns the encoded width in bytes.
func (k Kind) Size() int {
	switch k {
	case U8, S8:
		return 1
	case U16, S16:
		return 2
	default:
		return 4
	}
}

// Signed reports whether values of this kind are two's-complement.
func (k Kind) Signed() bool {
	return k == S8 || k == S16 || k == S32
}

// Field is one entry of a payload layout.
//
// Count > 0 is a fixed repeat; Count == 0 means the field consumes the
// remaining payload, which must then hold a whole number of elements. At
// most one field of a layout may be variable, and it must be last.
type Field struct {
	Name  string
	Kind  Kind
	Count int
}

// Layout is the ordered field sequence of one command's payload.
type Layout []Field

// FixedSize sums the widths of all fixed-count fields.
func (l Layout) FixedSize() int {
	size := 0
	for _, f := range l {
		size += f.Kind.Size() * f.Count
	}
	return size
}

// Variable returns the trailing variable field, if the layout has one.
func (l Layout) Variable() (Field, bool) {
	if len(l) == 0 {
		return Field{}, false
	}
	last := l[len(l)-1]
	if last.Count == 0 {
		return last, true
	}
	return Field{}, false
}

// Descriptor describes one command: its wire code, which direction its
// payload travels, and the payload layout.
//
// For bidirectional commands the request and response shapes differ;
// Query holds the request-side layout and Layout the response.
type Descriptor struct {
	Code      uint8
	Name      string
	Direction Direction
	Layout    Layout
	Query     Layout
}

// Lookup returns the descriptor registered for code.
func Lookup(code uint8) (Descriptor, bool) {
	d, ok := registry[code]
	return d, ok
}

// Commands returns every registered code in ascending order.
func Commands() []uint8 {
	out := make([]uint8, 0, len(registry))
	for c := uint8(0); ; c++ {
		if _, ok := registry[c]; ok {
			out = append(out, c)
		}
		if c == 255 {
			break
		}
	}
	return out
}
