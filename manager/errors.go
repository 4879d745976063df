package manager

import "errors"

// Sentinel errors surfaced by Manager operations, per spec.md §7.
var (
	ErrConnectionNotFound   = errors.New("manager: connection not found")
	ErrConnectionClosed     = errors.New("manager: connection closed")
	ErrMaxConnectionsReached = errors.New("manager: max connections reached")
	ErrShuttingDown         = errors.New("manager: server is shutting down")
)
