package terminal

import (
	"strings"

	"github.com/huhlig/termionix/ansi"
	"github.com/huhlig/termionix/protocol"
	"github.com/huhlig/termionix/telnet"
	"github.com/huhlig/termionix/telnet/args"
)

// Adapter wraps a protocol.Adapter and a Buffer, translating the ANSI
// sequence stream into terminal Events with cursor tracking and line
// completion, per spec.md §4.E.
type Adapter struct {
	proto     *protocol.Adapter
	buffer    Buffer
	style     ansi.SGRRecord
	lastSize  WindowSize
}

// NewAdapter builds a terminal Adapter. A nil buffer defaults to
// NewDefaultBuffer().
func NewAdapter(proto *protocol.Adapter, buffer Buffer) *Adapter {
	if buffer == nil {
		buffer = NewDefaultBuffer()
	}
	return &Adapter{proto: proto, buffer: buffer}
}

// Decode runs in through the protocol adapter and translates each
// resulting ansi.Sequence into zero or more terminal Events.
func (a *Adapter) Decode(in []byte) ([]Event, []byte, error) {
	result, err := a.proto.Decode(in)
	if err != nil {
		return nil, nil, err
	}

	var reply []byte
	for _, f := range result.Reply {
		reply = a.proto.Encode(reply, ansi.TelnetCommandSeq(telnet.Event{Frame: f}))
	}

	var events []Event
	for _, sq := range result.Sequences {
		events = append(events, a.apply(sq)...)
	}
	return events, reply, nil
}

func (a *Adapter) apply(sq ansi.Sequence) []Event {
	switch sq.Kind {
	case ansi.KindCharacter, ansi.KindUnicode:
		a.buffer.AppendChar(sq.Char, a.style)
		return []Event{{Kind: EventCharacterAppended, Cursor: a.buffer.Cursor(), Char: sq.Char}}

	case ansi.KindControl:
		switch sq.Control {
		case 0x08: // BS
			a.buffer.Backspace()
			return []Event{{Kind: EventCursorMoved, Cursor: a.buffer.Cursor()}}
		case 0x0A: // LF
			line := a.buffer.CompleteLine()
			return []Event{{Kind: EventLineCompleted, Cursor: a.buffer.Cursor(), Line: line}}
		case 0x07: // BEL
			return []Event{{Kind: EventBell, Cursor: a.buffer.Cursor()}}
		default:
			return []Event{{Kind: EventSequence, Cursor: a.buffer.Cursor(), Sequence: sq}}
		}

	case ansi.KindSGR:
		a.style = mergeSGR(a.style, sq.SGR)
		return []Event{{Kind: EventSequence, Cursor: a.buffer.Cursor(), Sequence: sq}}

	case ansi.KindCSI:
		return a.applyCSI(sq)

	case ansi.KindTelnetCommand:
		return a.applyTelnetCommand(sq)

	default:
		return []Event{{Kind: EventSequence, Cursor: a.buffer.Cursor(), Sequence: sq}}
	}
}

func (a *Adapter) applyCSI(sq ansi.Sequence) []Event {
	cmd := sq.CSI
	switch cmd.Kind {
	case ansi.CSICUU:
		a.buffer.MoveCursorBy(-cmd.Count, 0)
	case ansi.CSICUD:
		a.buffer.MoveCursorBy(cmd.Count, 0)
	case ansi.CSICUF:
		a.buffer.MoveCursorBy(0, cmd.Count)
	case ansi.CSICUB:
		a.buffer.MoveCursorBy(0, -cmd.Count)
	case ansi.CSICUP, ansi.CSIHVP:
		a.buffer.SetCursor(cmd.Row, cmd.Col)
	case ansi.CSIED:
		a.buffer.EraseDisplay(EraseMode(cmd.Mode))
		return []Event{{Kind: EventCleared, Cursor: a.buffer.Cursor(), Sequence: sq}}
	case ansi.CSIEL:
		a.buffer.EraseLine(EraseMode(cmd.Mode))
	}
	return []Event{{Kind: EventCursorMoved, Cursor: a.buffer.Cursor(), Sequence: sq}}
}

// applyTelnetCommand inspects a non-data Telnet event and, for the
// subnegotiations spec.md §4.E calls out by name (NAWS, TERMINAL-TYPE,
// STATUS, GMCP, MSDP, MSSP), emits the corresponding typed event instead
// of the generic EventTelnetCommand passthrough.
func (a *Adapter) applyTelnetCommand(sq ansi.Sequence) []Event {
	cursor := a.buffer.Cursor()
	switch arg := sq.Telnet.Argument.(type) {
	case args.WindowSize:
		size := WindowSize{Columns: arg.Columns, Rows: arg.Rows}
		old := a.lastSize
		a.lastSize = size
		return []Event{
			{Kind: EventResizeWindow, Cursor: cursor, OldSize: old, NewSize: size},
			{Kind: EventWindowSize, Cursor: cursor, Size: size},
		}
	case args.TerminalType:
		if arg.Subcommand == args.TerminalTypeIs {
			return []Event{{Kind: EventTerminalType, Cursor: cursor, TerminalTypeName: arg.Name}}
		}
	case args.Charset:
		if arg.Subcommand == args.CharsetAccepted {
			if strings.EqualFold(arg.Name, "UTF-8") {
				a.proto.SetEncoding(nil)
			} else if enc, ok := args.LookupEncoding(arg.Name); ok {
				a.proto.SetEncoding(enc)
			} else {
				a.proto.SetEncoding(args.DefaultEncoding)
			}
		}
		return []Event{{Kind: EventTelnetCommand, Cursor: cursor, Telnet: sq.Telnet}}
	case args.Status:
		return []Event{{Kind: EventOptionStatus, Cursor: cursor, Telnet: sq.Telnet}}
	case args.GMCP:
		return []Event{{Kind: EventMudServerData, Cursor: cursor, Telnet: sq.Telnet}}
	case args.MSDP:
		return []Event{{Kind: EventMudServerData, Cursor: cursor, Telnet: sq.Telnet}}
	case args.MSSP:
		return []Event{{Kind: EventMudServerStatus, Cursor: cursor, Telnet: sq.Telnet}}
	}
	return []Event{{Kind: EventTelnetCommand, Cursor: cursor, Telnet: sq.Telnet}}
}

// mergeSGR overlays new's set fields onto base, matching the left-to-right
// merge semantics of the SGR decoder itself (a later record's set fields
// win; a 0/reset record's IsZero()==true fields don't override anything).
func mergeSGR(base, new ansi.SGRRecord) ansi.SGRRecord {
	if new.IsZero() {
		return base
	}
	out := base
	if new.Foreground != nil {
		out.Foreground = new.Foreground
	}
	if new.Background != nil {
		out.Background = new.Background
	}
	if new.Intensity != ansi.IntensityUnset {
		out.Intensity = new.Intensity
	}
	if new.Italic != nil {
		out.Italic = new.Italic
	}
	if new.Underline != ansi.UnderlineUnset {
		out.Underline = new.Underline
	}
	if new.Blink != ansi.BlinkUnset {
		out.Blink = new.Blink
	}
	if new.Reverse != nil {
		out.Reverse = new.Reverse
	}
	if new.Hidden != nil {
		out.Hidden = new.Hidden
	}
	if new.Strike != nil {
		out.Strike = new.Strike
	}
	if new.Font != nil {
		out.Font = new.Font
	}
	if new.Script != ansi.ScriptUnset {
		out.Script = new.Script
	}
	if new.Ideogram != nil {
		out.Ideogram = new.Ideogram
	}
	return out
}
