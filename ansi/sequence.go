// Package ansi parses and encodes ANSI/VT escape sequences: C0/C1 controls,
// CSI, SGR, OSC, DCS, SOS/PM/APC, and UTF-8 text, restated in
// MongooseMoo-barn's byte-scanner idiom.
package ansi

import "github.com/huhlig/termionix/telnet"

// Kind discriminates the Sequence tagged variant.
type Kind uint8

const (
	KindCharacter Kind = iota
	KindUnicode
	KindControl
	KindEscape
	KindCSI
	KindSGR
	KindOSC
	KindDCS
	KindSOS
	KindST
	KindPM
	KindAPC
	KindTelnetCommand
)

// Sequence is a single decoded unit of the ANSI layer's event stream. Only
// the fields relevant to Kind are populated.
type Sequence struct {
	Kind Kind

	Char    rune          // KindCharacter, KindUnicode
	Control byte          // KindControl: the C0/C1 code
	CSI     CSICommand    // KindCSI
	SGR     SGRRecord     // KindSGR
	String  []byte        // KindOSC, KindDCS, KindSOS, KindPM, KindAPC: raw payload
	Telnet  telnet.Event  // KindTelnetCommand
}

func CharacterSeq(r rune) Sequence { return Sequence{Kind: KindCharacter, Char: r} }
func UnicodeSeq(r rune) Sequence   { return Sequence{Kind: KindUnicode, Char: r} }
func ControlSeq(b byte) Sequence   { return Sequence{Kind: KindControl, Control: b} }
func EscapeSeq() Sequence          { return Sequence{Kind: KindEscape} }
func STSeq() Sequence              { return Sequence{Kind: KindST} }
func CSISeq(cmd CSICommand) Sequence { return Sequence{Kind: KindCSI, CSI: cmd} }
func SGRSeq(rec SGRRecord) Sequence  { return Sequence{Kind: KindSGR, SGR: rec} }
func OSCSeq(payload []byte) Sequence { return Sequence{Kind: KindOSC, String: payload} }
func DCSSeq(payload []byte) Sequence { return Sequence{Kind: KindDCS, String: payload} }
func SOSSeq(payload []byte) Sequence { return Sequence{Kind: KindSOS, String: payload} }
func PMSeq(payload []byte) Sequence  { return Sequence{Kind: KindPM, String: payload} }
func APCSeq(payload []byte) Sequence { return Sequence{Kind: KindAPC, String: payload} }
func TelnetCommandSeq(ev telnet.Event) Sequence {
	return Sequence{Kind: KindTelnetCommand, Telnet: ev}
}
