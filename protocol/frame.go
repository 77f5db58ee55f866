package protocol

// Wire format, bit exact:
//
//	byte 0      '$'  preamble 1
//	byte 1      'M'  preamble 2
//	byte 2      '<' to firmware, '>' from firmware
//	byte 3      payload length (uint8)
//	byte 4      command code (uint8)
//	bytes 5..   payload
//	last byte   XOR of length, code and every payload byte
const (
	Preamble1 byte = '$'
	Preamble2 byte = 'M'

	DirRequest  byte = '<'
	DirResponse byte = '>'

	// MaxPayload is bounded by the single-byte length field.
	MaxPayload = 255

	headerLen  = 5
	trailerLen = 1
)

// Checksum folds the length byte, the command code and the payload into
// the single-byte XOR checksum the protocol carries after the payload.
func Checksum(length, code uint8, payload []byte) uint8 {
	crc := length ^ code
	for _, b := range payload {
		crc ^= b
	}
	return crc
}

// EncodeFrame builds a complete outgoing request frame for code with the
// given payload. It is a pure function; the same inputs always produce the
// same bytes.
func EncodeFrame(code uint8, payload []byte) ([]byte, error) {
	if len(payload) > MaxPayload {
		return nil, ErrPayloadTooLarge
	}
	length := uint8(len(payload))
	buf := make([]byte, 0, headerLen+len(payload)+trailerLen)
	buf = append(buf, Preamble1, Preamble2, DirRequest, length, code)
	buf = append(buf, payload...)
	buf = append(buf, Checksum(length, code, payload))
	return buf, nil
}
