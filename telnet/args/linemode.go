package args

import "github.com/huhlig/termionix/telnet"

// Linemode is the raw, un-interpreted payload of a LINEMODE (RFC 1184)
// subnegotiation. Per the Open Question decision in DESIGN.md, Termionix
// tracks LINEMODE's DO/WILL enablement through the Q-method engine like
// any other option but doesn't interpret MODE/FORWARDMASK/SLC payloads --
// line editing is a client-local concern this layer never needs to parse,
// so the bytes just pass through to whatever owns the session above it.
type Linemode []byte

func (Linemode) Option() telnet.Option { return telnet.OptionLinemode }

func (l Linemode) Encode(dst []byte) []byte {
	return append(dst, []byte(l)...)
}
