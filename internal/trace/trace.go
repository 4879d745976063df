// Package trace provides opt-in execution tracing for connection lifecycle
// and telnet option negotiation events, gated the same way barn's verb-call
// tracer was: a global enable flag plus glob filters.
package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Tracer writes filtered trace lines to a writer.
type Tracer struct {
	enabled bool
	filters []string
	writer  io.Writer
	mu      sync.Mutex
}

var globalTracer *Tracer

// Init installs the global tracer. Passing a nil writer defaults to stderr.
func Init(enabled bool, filters []string, writer io.Writer) {
	if writer == nil {
		writer = os.Stderr
	}
	globalTracer = &Tracer{enabled: enabled, filters: filters, writer: writer}
}

// IsEnabled reports whether the global tracer is active.
func IsEnabled() bool {
	return globalTracer != nil && globalTracer.enabled
}

func (t *Tracer) matchesFilter(tag string) bool {
	if len(t.filters) == 0 {
		return true
	}
	for _, pattern := range t.filters {
		if matched, _ := filepath.Match(pattern, tag); matched {
			return true
		}
	}
	return false
}

// Connection logs a connection lifecycle event (NEW, CONNECT, DISCONNECT,
// READ_TIMEOUT, IDLE_TIMEOUT).
func (t *Tracer) Connection(event string, connID uint64, remoteAddr string, details string) {
	if !t.enabled || !t.matchesFilter(event) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if details != "" {
		fmt.Fprintf(t.writer, "[TRACE] CONN %s conn=%d peer=%s %s\n", event, connID, remoteAddr, details)
	} else {
		fmt.Fprintf(t.writer, "[TRACE] CONN %s conn=%d peer=%s\n", event, connID, remoteAddr)
	}
}

// Negotiation logs a Q-method state transition.
func (t *Tracer) Negotiation(connID uint64, side string, option string, fromState, toState string) {
	if !t.enabled || !t.matchesFilter("negotiation") {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.writer, "[TRACE] NEGOTIATE conn=%d side=%s option=%s %s->%s\n", connID, side, option, fromState, toState)
}

// Connection logs a connection lifecycle event using the global tracer.
func Connection(event string, connID uint64, remoteAddr string, details string) {
	if globalTracer != nil {
		globalTracer.Connection(event, connID, remoteAddr, details)
	}
}

// Negotiation logs a Q-method state transition using the global tracer.
func Negotiation(connID uint64, side string, option string, fromState, toState string) {
	if globalTracer != nil {
		globalTracer.Negotiation(connID, side, option, fromState, toState)
	}
}
