package conn

import "bytes"

// FlushKind names the writer's auto-flush policy, per spec.md §4.F.
type FlushKind uint8

const (
	FlushManual FlushKind = iota
	FlushImmediate
	FlushOnNewline
	FlushOnThreshold
)

// FlushStrategy decides when the writer task flushes buffered output.
// OnNewline is the default.
type FlushStrategy struct {
	Kind      FlushKind
	Threshold int // only meaningful for FlushOnThreshold
}

// DefaultFlushStrategy buffers until a command contains or ends with a
// newline, per spec.md §4.F.
var DefaultFlushStrategy = FlushStrategy{Kind: FlushOnNewline}

// shouldFlush reports whether the writer should flush after writing cmd,
// given pendingBytes already buffered (including cmd).
func (f FlushStrategy) shouldFlush(cmd []byte, pendingBytes int) bool {
	switch f.Kind {
	case FlushImmediate:
		return true
	case FlushOnNewline:
		return bytes.IndexByte(cmd, '\n') >= 0
	case FlushOnThreshold:
		return pendingBytes >= f.Threshold
	default: // FlushManual
		return false
	}
}
