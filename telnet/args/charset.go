package args

import (
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"

	"github.com/huhlig/termionix/telnet"
)

// CharsetSubcommand is the first byte of a CHARSET (RFC 2066)
// subnegotiation.
type CharsetSubcommand byte

const (
	CharsetRequest        CharsetSubcommand = 1
	CharsetAccepted       CharsetSubcommand = 2
	CharsetRejected       CharsetSubcommand = 3
	CharsetTTableIs       CharsetSubcommand = 4
	CharsetTTableAck      CharsetSubcommand = 5
	CharsetTTableNak      CharsetSubcommand = 6
	CharsetTTableRejected CharsetSubcommand = 7
)

// Charset carries a decoded CHARSET subnegotiation. Only Request and
// Accepted carry charset names (Candidates / Name; LookupEncoding resolves
// a name to an encoding.Encoding); the TTABLE variants keep only their
// subcommand, and Termionix doesn't implement translation-table character
// sets.
type Charset struct {
	Subcommand CharsetSubcommand
	Candidates []string // Request: the semicolon-separated list offered
	Name       string   // Accepted: the chosen charset name
}

func (c Charset) Option() telnet.Option { return telnet.OptionCharset }

func (c Charset) Encode(dst []byte) []byte {
	dst = append(dst, byte(c.Subcommand))
	switch c.Subcommand {
	case CharsetRequest:
		dst = append(dst, ';')
		dst = append(dst, []byte(strings.Join(c.Candidates, ";"))...)
	case CharsetAccepted:
		dst = append(dst, []byte(c.Name)...)
	}
	return dst
}

// DecodeCharset parses a CHARSET subnegotiation payload.
func DecodeCharset(b []byte) (Charset, bool) {
	if len(b) < 1 {
		return Charset{}, false
	}
	sub := CharsetSubcommand(b[0])
	rest := b[1:]
	switch sub {
	case CharsetRequest:
		if len(rest) < 1 {
			return Charset{}, false
		}
		sep := rest[0]
		list := string(rest[1:])
		var candidates []string
		for _, name := range strings.Split(list, string(sep)) {
			if name != "" {
				candidates = append(candidates, name)
			}
		}
		return Charset{Subcommand: sub, Candidates: candidates}, true
	case CharsetAccepted:
		return Charset{Subcommand: sub, Name: string(rest)}, true
	case CharsetRejected, CharsetTTableIs, CharsetTTableAck, CharsetTTableNak, CharsetTTableRejected:
		return Charset{Subcommand: sub}, true
	default:
		return Charset{}, false
	}
}

// legacyCharsets maps the charset names actually offered by Telnet/MUD
// peers to a golang.org/x/text/encoding/charmap table. CP437 is also
// DefaultEncoding, matching stlalpha-vision3's BBS-era assumption.
var legacyCharsets = map[string]encoding.Encoding{
	"CP437":      charmap.CodePage437,
	"IBM437":     charmap.CodePage437,
	"CP850":      charmap.CodePage850,
	"IBM850":     charmap.CodePage850,
	"ISO-8859-1": charmap.ISO8859_1,
	"LATIN1":     charmap.ISO8859_1,
	"ISO-8859-2": charmap.ISO8859_2,
	"WINDOWS-1252": charmap.Windows1252,
	"CP1252":       charmap.Windows1252,
}

// LookupEncoding resolves a CHARSET name to a golang.org/x/text encoding,
// matching case-insensitively. UTF-8 is not in this table; callers should
// check for it first and skip transcoding entirely.
func LookupEncoding(name string) (encoding.Encoding, bool) {
	enc, ok := legacyCharsets[strings.ToUpper(name)]
	return enc, ok
}

// DefaultEncoding is used when a peer negotiates CHARSET but the accepted
// name is neither UTF-8 nor one LookupEncoding recognizes. Without a
// CHARSET negotiation a connection stays on UTF-8 passthrough.
var DefaultEncoding encoding.Encoding = charmap.CodePage437
