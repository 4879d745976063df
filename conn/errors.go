package conn

import "errors"

// Sentinel errors surfaced by Connection and, wrapped with further context,
// by package manager. Matching spec.md §7's taxonomy: I/O, timeout, and
// lifecycle errors are distinct sentinels so callers can errors.Is against
// them regardless of the wrapping added along the way.
var (
	ErrClosed       = errors.New("conn: connection closed")
	ErrWriteTimeout = errors.New("conn: write timed out")
	ErrReadTimeout  = errors.New("conn: read timed out")
	ErrIdleTimeout  = errors.New("conn: idle timeout")
)
