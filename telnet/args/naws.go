package args

import "github.com/huhlig/termionix/telnet"

// WindowSize is the NAWS (RFC 1073) negotiated terminal size: two
// big-endian 16-bit values, columns then rows. Grounded on
// telnetcodec/src/args/naws.rs, including its 80x24 default.
type WindowSize struct {
	Columns uint16
	Rows    uint16
}

// DefaultWindowSize is used when a client never sends NAWS.
var DefaultWindowSize = WindowSize{Columns: 80, Rows: 24}

func (w WindowSize) Option() telnet.Option { return telnet.OptionNAWS }

func (w WindowSize) Encode(dst []byte) []byte {
	return append(dst,
		byte(w.Columns>>8), byte(w.Columns),
		byte(w.Rows>>8), byte(w.Rows),
	)
}

// DecodeNAWS parses a 4-byte NAWS payload. IAC bytes inside the payload
// have already been un-escaped by telnet.Decoder, so this is a plain
// fixed-width read.
func DecodeNAWS(b []byte) (WindowSize, bool) {
	if len(b) < 4 {
		return WindowSize{}, false
	}
	return WindowSize{
		Columns: uint16(b[0])<<8 | uint16(b[1]),
		Rows:    uint16(b[2])<<8 | uint16(b[3]),
	}, true
}
