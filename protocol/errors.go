package protocol

import "errors"

var (
	ErrPayloadTooLarge = errors.New("protocol: payload too large")
	ErrChecksum        = errors.New("protocol: checksum mismatch")
)
