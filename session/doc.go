// Package session owns the request/response cycle against one flight
// controller link.
//
// Ownership boundary:
// - the transport handle (all byte I/O funnels through one Session)
// - pending-request correlation by command code
// - timeout, resync and desync policy while waiting for replies
// - open/close lifecycle
//
// The protocol has no multiplexing field, so a Session serializes wire
// access internally: concurrent callers queue, they never interleave
// frames on the line.
package session
