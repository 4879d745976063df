package args

import "github.com/huhlig/termionix/telnet"

// TerminalTypeSubcommand is the RFC 1091 leading byte: IS answers a SEND
// request with a name, SEND asks the peer to report its terminal type.
type TerminalTypeSubcommand uint8

const (
	TerminalTypeIs   TerminalTypeSubcommand = 0
	TerminalTypeSend TerminalTypeSubcommand = 1
)

// TerminalType is the decoded TERMINAL-TYPE subnegotiation payload. Name
// is only meaningful when Subcommand == TerminalTypeIs.
type TerminalType struct {
	Subcommand TerminalTypeSubcommand
	Name       string
}

func (t TerminalType) Option() telnet.Option { return telnet.OptionTerminalType }

func (t TerminalType) Encode(dst []byte) []byte {
	dst = append(dst, byte(t.Subcommand))
	if t.Subcommand == TerminalTypeIs {
		dst = append(dst, []byte(t.Name)...)
	}
	return dst
}

// NewTerminalTypeSend builds the SEND request a peer sends to ask for a
// terminal type name.
func NewTerminalTypeSend() TerminalType {
	return TerminalType{Subcommand: TerminalTypeSend}
}

// NewTerminalTypeIs builds the IS response carrying name.
func NewTerminalTypeIs(name string) TerminalType {
	return TerminalType{Subcommand: TerminalTypeIs, Name: name}
}

// DecodeTerminalType parses a TERMINAL-TYPE payload: a leading IS/SEND
// byte, followed by an ASCII name when IS.
func DecodeTerminalType(b []byte) (TerminalType, bool) {
	if len(b) < 1 {
		return TerminalType{}, false
	}
	switch TerminalTypeSubcommand(b[0]) {
	case TerminalTypeSend:
		return TerminalType{Subcommand: TerminalTypeSend}, true
	case TerminalTypeIs:
		return TerminalType{Subcommand: TerminalTypeIs, Name: string(b[1:])}, true
	default:
		return TerminalType{}, false
	}
}
