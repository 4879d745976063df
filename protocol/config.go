// Package protocol implements the ANSI codec adapter (spec.md §4.D): it
// composes the telnet and ansi packages into a single inbound/outbound
// Sequence stream, applying the stripping and color-mode policy an
// AnsiConfig describes.
package protocol

import (
	"golang.org/x/text/encoding"

	"github.com/huhlig/termionix/ansi"
)

// Config enumerates the ANSI codec adapter's decode-side stripping flags
// and the color ceiling applied on encode, per spec.md §4.D.
type Config struct {
	StripCtrl   bool // drop C0/C1 controls on decode
	StripCSI    bool // drop non-SGR CSI on decode
	StripSGR    bool
	ColorMode   ansi.Mode
	StripOSC    bool
	StripDCS    bool
	StripSosST  bool
	StripPM     bool
	StripAPC    bool
	StripTelnet bool // drop telnet command passthrough events on decode

	// Encoding transcodes inbound Data frames to UTF-8 before the ANSI
	// parser sees them. Nil means the peer is already sending UTF-8 (the
	// default for a fresh connection, before any CHARSET negotiation).
	// Set by a CHARSET ACCEPTED subnegotiation via Adapter.SetEncoding.
	Encoding encoding.Encoding
}

// DefaultConfig keeps every sequence kind and caps color at TrueColor,
// matching "do nothing extra" as the safe default for a new connection
// before a client's capabilities are known.
func DefaultConfig() Config {
	return Config{ColorMode: ansi.ModeTrueColor}
}
