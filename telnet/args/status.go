package args

import (
	"github.com/huhlig/termionix/telnet"
)

// StatusCommand is the first byte of a STATUS (RFC 859) subnegotiation.
type StatusCommand byte

const (
	StatusSend StatusCommand = 1
	StatusIs   StatusCommand = 2
)

// StatusEntry is one (verb, option) pair inside a STATUS IS payload,
// reporting the sender's negotiated state for that option.
type StatusEntry struct {
	Verb   telnet.Command // CmdDo, CmdDont, CmdWill, or CmdWont
	Option telnet.Option
}

// Status is a decoded STATUS subnegotiation. Entries is only populated for
// StatusIs; StatusSend carries no payload besides the command byte, per
// telnetcodec/src/args/status.rs.
type Status struct {
	Command StatusCommand
	Entries []StatusEntry
}

func (Status) Option() telnet.Option { return telnet.OptionStatus }

func (s Status) Encode(dst []byte) []byte {
	dst = append(dst, byte(s.Command))
	for _, e := range s.Entries {
		dst = append(dst, byte(e.Verb), byte(e.Option))
	}
	return dst
}

// DoStates reports, for every DO/DONT entry, whether the sender has that
// option enabled on itself.
func (s Status) DoStates() map[telnet.Option]bool {
	out := make(map[telnet.Option]bool)
	for _, e := range s.Entries {
		switch e.Verb {
		case telnet.CmdDo:
			out[e.Option] = true
		case telnet.CmdDont:
			out[e.Option] = false
		}
	}
	return out
}

// WillStates reports, for every WILL/WONT entry, whether the sender
// believes the peer has that option enabled.
func (s Status) WillStates() map[telnet.Option]bool {
	out := make(map[telnet.Option]bool)
	for _, e := range s.Entries {
		switch e.Verb {
		case telnet.CmdWill:
			out[e.Option] = true
		case telnet.CmdWont:
			out[e.Option] = false
		}
	}
	return out
}

// NewStatusIs builds a STATUS IS payload from a Negotiator's current
// committed state, as returned by telnet.Negotiator.Status.
func NewStatusIs(doStates, willStates map[telnet.Option]bool) Status {
	var entries []StatusEntry
	for opt, on := range doStates {
		verb := telnet.CmdDont
		if on {
			verb = telnet.CmdDo
		}
		entries = append(entries, StatusEntry{Verb: verb, Option: opt})
	}
	for opt, on := range willStates {
		verb := telnet.CmdWont
		if on {
			verb = telnet.CmdWill
		}
		entries = append(entries, StatusEntry{Verb: verb, Option: opt})
	}
	return Status{Command: StatusIs, Entries: entries}
}

// DecodeStatus parses a STATUS subnegotiation payload.
func DecodeStatus(b []byte) (Status, bool) {
	if len(b) < 1 {
		return Status{}, false
	}
	cmd := StatusCommand(b[0])
	if cmd != StatusSend && cmd != StatusIs {
		return Status{}, false
	}
	rest := b[1:]
	if cmd == StatusSend {
		return Status{Command: cmd}, true
	}
	if len(rest)%2 != 0 {
		return Status{}, false
	}
	var entries []StatusEntry
	for i := 0; i < len(rest); i += 2 {
		verb := telnet.Command(rest[i])
		switch verb {
		case telnet.CmdDo, telnet.CmdDont, telnet.CmdWill, telnet.CmdWont:
		default:
			return Status{}, false
		}
		entries = append(entries, StatusEntry{Verb: verb, Option: telnet.Option(rest[i+1])})
	}
	return Status{Command: cmd, Entries: entries}, true
}
