package telnet

import "fmt"

// Command is a tag for the two/three-byte Telnet control commands of
// Frame. Data and Subnegotiate frames don't use a Command value.
type Command uint8

const (
	CmdNoOperation     Command = 0xF1
	CmdDataMark        Command = 0xF2
	CmdBreak           Command = 0xF3
	CmdInterruptProc   Command = 0xF4
	CmdAbortOutput     Command = 0xF5
	CmdAreYouThere     Command = 0xF6
	CmdEraseCharacter  Command = 0xF7
	CmdEraseLine       Command = 0xF8
	CmdGoAhead         Command = 0xF9
	CmdEndOfRecord     Command = 0xEF
	CmdDo              Command = 0xFD
	CmdDont            Command = 0xFE
	CmdWill            Command = 0xFB
	CmdWont            Command = 0xFC
)

// Kind discriminates the Frame variant, mirroring spec.md's tagged-variant
// Telnet frame: Data, the bare control commands, the four negotiation
// verbs, and Subnegotiate.
type Kind uint8

const (
	KindData Kind = iota
	KindNoOperation
	KindDataMark
	KindBreak
	KindInterruptProcess
	KindAbortOutput
	KindAreYouThere
	KindEraseCharacter
	KindEraseLine
	KindGoAhead
	KindEndOfRecord
	KindDo
	KindDont
	KindWill
	KindWont
	KindSubnegotiate
)

// Frame is a single decoded/encodable Telnet protocol unit. Only the fields
// relevant to Kind are populated; it plays the role of spec.md's tagged
// union without needing a sum-type library.
type Frame struct {
	Kind     Kind
	Data     byte   // valid for KindData
	Option   Option // valid for KindDo/Dont/Will/Wont/Subnegotiate
	Argument []byte // valid for KindSubnegotiate: already de-escaped payload
}

func DataFrame(b byte) Frame                { return Frame{Kind: KindData, Data: b} }
func DoFrame(o Option) Frame                { return Frame{Kind: KindDo, Option: o} }
func DontFrame(o Option) Frame              { return Frame{Kind: KindDont, Option: o} }
func WillFrame(o Option) Frame              { return Frame{Kind: KindWill, Option: o} }
func WontFrame(o Option) Frame              { return Frame{Kind: KindWont, Option: o} }
func SubnegotiateFrame(o Option, arg []byte) Frame {
	return Frame{Kind: KindSubnegotiate, Option: o, Argument: arg}
}

func simpleFrame(k Kind) Frame { return Frame{Kind: k} }

func (f Frame) String() string {
	switch f.Kind {
	case KindData:
		return fmt.Sprintf("Data(%d)", f.Data)
	case KindDo:
		return fmt.Sprintf("Do(%s)", f.Option)
	case KindDont:
		return fmt.Sprintf("Dont(%s)", f.Option)
	case KindWill:
		return fmt.Sprintf("Will(%s)", f.Option)
	case KindWont:
		return fmt.Sprintf("Wont(%s)", f.Option)
	case KindSubnegotiate:
		return fmt.Sprintf("Subnegotiate(%s, %d bytes)", f.Option, len(f.Argument))
	default:
		return kindNames[f.Kind]
	}
}

var kindNames = map[Kind]string{
	KindNoOperation:      "NoOperation",
	KindDataMark:         "DataMark",
	KindBreak:            "Break",
	KindInterruptProcess: "InterruptProcess",
	KindAbortOutput:      "AbortOutput",
	KindAreYouThere:      "AreYouThere",
	KindEraseCharacter:   "EraseCharacter",
	KindEraseLine:        "EraseLine",
	KindGoAhead:          "GoAhead",
	KindEndOfRecord:      "EndOfRecord",
}

// Event is a decoded unit of information delivered to callers of Decoder.
// Most Events simply wrap a Frame; OptionStatus and Subnegotiate carry
// additional typed data produced by the Q-method engine and the option
// argument codecs (component B) respectively.
type Event struct {
	Frame Frame

	// IsOptionStatus is set when this event reports a Q-method No<->Yes
	// transition rather than a raw frame.
	IsOptionStatus bool
	StatusOption   Option
	StatusSide     Side
	StatusEnabled  bool

	// Argument is set for KindSubnegotiate events once component B has
	// decoded the payload (nil if decoding failed or wasn't attempted).
	Argument Argument
}

// OptionStatusEvent builds an Event reporting a Q-method transition.
func OptionStatusEvent(option Option, side Side, enabled bool) Event {
	return Event{IsOptionStatus: true, StatusOption: option, StatusSide: side, StatusEnabled: enabled}
}

// Argument is implemented by every decoded option subnegotiation payload
// type in package telnet/args.
type Argument interface {
	// Option identifies which Telnet option this argument belongs to.
	Option() Option
	// Encode appends the wire representation of the argument (without the
	// surrounding IAC SB / IAC SE framing or IAC-doubling) to dst.
	Encode(dst []byte) []byte
}
