package telnet

import "fmt"

// CodecErrorKind categorizes decode/encode failures per spec.md §7's error
// taxonomy for component A.
type CodecErrorKind uint8

const (
	// ErrInsufficientData means the decoder ran out of input mid-sequence;
	// callers should retain state and resume on the next call. Decoder
	// itself never returns this as an error value -- it simply stops
	// consuming and returns zero events, per the input-exhaustion contract.
	ErrInsufficientData CodecErrorKind = iota
	// ErrInvalidCommand means an IAC was followed by a byte that is not a
	// recognized command, DO/DONT/WILL/WONT, or SB.
	ErrInvalidCommand
	// ErrUnexpectedData means a subnegotiation argument decoder rejected
	// the payload bytes for its option (malformed NAWS length, bad MSDP
	// marker sequence, etc).
	ErrUnexpectedData
	// ErrSubnegotiationTooLarge means a subnegotiation buffer exceeded its
	// configured cap before an IAC SE was seen.
	ErrSubnegotiationTooLarge
)

var codecErrorKindNames = [...]string{
	"insufficient data",
	"invalid command",
	"unexpected data",
	"subnegotiation too large",
}

func (k CodecErrorKind) String() string {
	if int(k) < len(codecErrorKindNames) {
		return codecErrorKindNames[k]
	}
	return "unknown codec error"
}

// CodecError is the error type returned by Decoder. (The telnet/args
// argument codecs report failure with a bool or a plain error instead.) It
// carries enough context (option, offending byte) for a caller to log
// something actionable without string-matching.
type CodecError struct {
	Kind   CodecErrorKind
	Option Option
	Byte   byte
	Detail string
}

func (e *CodecError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("telnet: %s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("telnet: %s (option=%s byte=%#x)", e.Kind, e.Option, e.Byte)
}

func newCodecError(kind CodecErrorKind, opt Option, b byte, detail string) *CodecError {
	return &CodecError{Kind: kind, Option: opt, Byte: b, Detail: detail}
}
