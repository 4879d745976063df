package terminal

import (
	"github.com/huhlig/termionix/ansi"
	"github.com/huhlig/termionix/telnet"
)

// EventKind discriminates the terminal adapter's output events, per
// spec.md §4.E.
type EventKind uint8

const (
	EventCharacterAppended EventKind = iota
	EventLineCompleted
	EventCursorMoved
	EventCleared
	EventBell
	EventTelnetCommand
	EventSequence // any ANSI sequence not otherwise interpreted, passed through

	// EventResizeWindow and EventWindowSize both fire on an inbound NAWS
	// subnegotiation, per spec.md §4.E's passthrough list.
	EventResizeWindow
	EventWindowSize
	EventTerminalType  // TERMINAL-TYPE IS <name>
	EventOptionStatus  // STATUS option (telnet.args.Status)
	EventMudServerData // GMCP/MSDP (args.GMCP, args.MSDP)
	EventMudServerStatus // MSSP (args.MSSP)
)

// WindowSize is a (columns, rows) pair, used by EventResizeWindow and
// EventWindowSize.
type WindowSize struct {
	Columns, Rows uint16
}

// Event is a single terminal-level event. Cursor always reflects the
// buffer's position *after* the update that produced this event, per
// spec.md §4.E.
type Event struct {
	Kind   EventKind
	Cursor Position

	Char     rune          // EventCharacterAppended
	Line     []StyledChar  // EventLineCompleted
	Telnet   telnet.Event  // EventTelnetCommand and the typed passthrough kinds below
	Sequence ansi.Sequence // EventSequence

	OldSize, NewSize WindowSize // EventResizeWindow
	Size             WindowSize // EventWindowSize
	TerminalTypeName string     // EventTerminalType
}
