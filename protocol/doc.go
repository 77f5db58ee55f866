// Package protocol owns the MSP v1 wire contract and parsing primitives.
//
// Ownership boundary:
// - frame encoding and the XOR checksum
// - incremental deframing of the inbound byte stream
// - parse events consumed by the session layer
package protocol
