package args

import (
	"bytes"

	"github.com/huhlig/termionix/telnet"
)

// GMCP is a Generic MUD Communication Protocol message: a dotted package
// name followed by an optional JSON payload, separated by the first space.
// Termionix treats the payload as opaque bytes; interpreting the JSON body
// belongs to whatever sits above the terminal adapter.
type GMCP struct {
	Package string
	Data    []byte // raw JSON, nil if the message carried no payload
}

func (g GMCP) Option() telnet.Option { return telnet.OptionGMCP }

func (g GMCP) Encode(dst []byte) []byte {
	dst = append(dst, []byte(g.Package)...)
	if g.Data != nil {
		dst = append(dst, ' ')
		dst = append(dst, g.Data...)
	}
	return dst
}

// DecodeGMCP splits a GMCP payload on its first space.
func DecodeGMCP(b []byte) GMCP {
	if i := bytes.IndexByte(b, ' '); i >= 0 {
		data := append([]byte(nil), b[i+1:]...)
		return GMCP{Package: string(b[:i]), Data: data}
	}
	return GMCP{Package: string(b)}
}
