package telnet

import "github.com/huhlig/termionix/internal/trace"

// qState and qFlag implement the RFC 1143 "Q method" option negotiation
// state machine: four states (No/Yes/WantNo/WantYes) plus a one-bit queue
// (Empty/Opposite) that records a reversal requested while a negotiation is
// already in flight, so at most one outstanding request per option per side
// is ever on the wire at a time.
type qState uint8

const (
	qNo qState = iota
	qYes
	qWantNo
	qWantYes
)

func (s qState) String() string {
	switch s {
	case qNo:
		return "No"
	case qYes:
		return "Yes"
	case qWantNo:
		return "WantNo"
	case qWantYes:
		return "WantYes"
	default:
		return "?"
	}
}

type qFlag uint8

const (
	qEmpty qFlag = iota
	qOpposite
)

// optionNegState is the negotiation state for one option on one side (local
// or remote). The allow policy passed to receive is consulted only when
// transitioning out of qNo on a peer-initiated enable request.
type optionNegState struct {
	state qState
	flag  qFlag
}

// receive processes an incoming accept (enable=true, i.e. DO or WILL) or
// refuse/disable (enable=false, i.e. DONT or WONT) for this entry. allow is
// the local policy consulted only from state No on a peer-initiated enable;
// it is not consulted again until the entry returns to No.
//
// Returns whether a response frame must be sent and, if so, what verb it
// carries, plus whether the Yes/non-Yes boundary was crossed (callers use
// this to decide whether to emit an OptionStatus event).
func (e *optionNegState) receive(enable bool, allow func() bool) (sendResp bool, respEnable bool, crossed bool) {
	wasYes := e.state == qYes

	switch e.state {
	case qNo:
		if enable {
			if allow() {
				e.state = qYes
				sendResp, respEnable = true, true
			} else {
				sendResp, respEnable = true, false
			}
		}
		// enable==false while already No: nothing to do.

	case qYes:
		if !enable {
			e.state = qNo
			sendResp, respEnable = true, false
		}
		// enable==true while already Yes: duplicate request, ignore.

	case qWantNo:
		switch e.flag {
		case qEmpty:
			if enable {
				// Protocol error: the peer answered our outstanding
				// disable request with an enable. Resynchronize to No
				// and reassert the disable.
				e.state = qNo
				sendResp, respEnable = true, false
			} else {
				// The expected answer to our outstanding disable request.
				e.state = qNo
			}
		case qOpposite:
			// A reversal was queued while we waited for this answer; the
			// queued enable fires now regardless of which way the
			// pending disable resolved.
			e.state = qWantYes
			e.flag = qEmpty
			sendResp, respEnable = true, true
		}

	case qWantYes:
		switch e.flag {
		case qEmpty:
			if enable {
				e.state = qYes
			} else {
				// Our enable request was refused.
				e.state = qNo
			}
		case qOpposite:
			// A reversal was queued while we waited for this answer; the
			// queued disable fires now regardless of which way the
			// pending enable resolved.
			e.state = qWantNo
			e.flag = qEmpty
			sendResp, respEnable = true, false
		}
	}

	crossed = wasYes != (e.state == qYes)
	return
}

// request processes a locally-initiated attempt to enable or disable this
// option. Returns whether a request frame must be sent.
func (e *optionNegState) request(enable bool) (send bool) {
	switch e.state {
	case qNo:
		if enable {
			e.state = qWantYes
			send = true
		}
		// disable while already No: no-op.

	case qYes:
		if !enable {
			e.state = qWantNo
			send = true
		}
		// enable while already Yes: no-op.

	case qWantNo:
		switch e.flag {
		case qEmpty:
			if enable {
				// Queue a reversal for when the WONT/DONT resolves.
				e.flag = qOpposite
			}
			// disable while already WantNo/Empty: already requested.
		case qOpposite:
			if !enable {
				// Cancel the queued reversal.
				e.flag = qEmpty
			}
			// enable while already WantNo/Opposite: already queued.
		}

	case qWantYes:
		switch e.flag {
		case qEmpty:
			if !enable {
				e.flag = qOpposite
			}
		case qOpposite:
			if enable {
				e.flag = qEmpty
			}
		}
	}
	return
}

func (e *optionNegState) enabled() bool {
	return e.state == qYes
}

// Negotiator tracks both the local ("us") and remote ("him") option
// negotiation state for a single connection, driving frame emission per
// the RFC 1143 Q method. "Local" options are ones this process may offer
// (negotiated via WILL/WONT outbound, DO/DONT inbound); "remote" options
// are ones the peer may offer (negotiated via DO/DONT outbound, WILL/WONT
// inbound).
type Negotiator struct {
	local       map[Option]*optionNegState
	remote      map[Option]*optionNegState
	AllowLocal  func(Option) bool
	AllowRemote func(Option) bool

	// ConnID tags trace.Negotiation log lines; conn.New sets it from the
	// owning Connection's id. Zero (the default) just traces as conn 0.
	ConnID uint64
}

// NewNegotiator builds a Negotiator with both policies defaulting to
// refuse-everything; set AllowLocal/AllowRemote to opt options in.
func NewNegotiator() *Negotiator {
	return &Negotiator{
		local:       make(map[Option]*optionNegState),
		remote:      make(map[Option]*optionNegState),
		AllowLocal:  func(Option) bool { return false },
		AllowRemote: func(Option) bool { return false },
	}
}

func (n *Negotiator) localEntry(o Option) *optionNegState {
	e, ok := n.local[o]
	if !ok {
		e = &optionNegState{}
		n.local[o] = e
	}
	return e
}

func (n *Negotiator) remoteEntry(o Option) *optionNegState {
	e, ok := n.remote[o]
	if !ok {
		e = &optionNegState{}
		n.remote[o] = e
	}
	return e
}

// IsLocalEnabled reports whether this process currently has option o
// enabled on itself (the Q-method "us" state is Yes).
func (n *Negotiator) IsLocalEnabled(o Option) bool {
	e, ok := n.local[o]
	return ok && e.enabled()
}

// IsRemoteEnabled reports whether the peer currently has option o enabled
// (the Q-method "him" state is Yes).
func (n *Negotiator) IsRemoteEnabled(o Option) bool {
	e, ok := n.remote[o]
	return ok && e.enabled()
}

func (n *Negotiator) receive(entry *optionNegState, allow func() bool, enable bool, side Side, option Option, makeFrame func(bool) Frame) (frames []Frame, events []Event) {
	from := entry.state.String()
	sendResp, respEnable, crossed := entry.receive(enable, allow)
	if trace.IsEnabled() {
		trace.Negotiation(n.ConnID, side.String(), option.String(), from, entry.state.String())
	}
	if sendResp {
		frames = append(frames, makeFrame(respEnable))
	}
	if crossed {
		events = append(events, OptionStatusEvent(0, side, entry.enabled()))
	}
	return
}

// ReceiveDo handles an inbound IAC DO <option>: the peer wants us to
// enable a local option.
func (n *Negotiator) ReceiveDo(o Option) ([]Frame, []Event) {
	e := n.localEntry(o)
	frames, events := n.receive(e, func() bool { return n.AllowLocal(o) }, true, Local, o, func(on bool) Frame {
		if on {
			return WillFrame(o)
		}
		return WontFrame(o)
	})
	tagEvents(events, o)
	return frames, events
}

// ReceiveDont handles an inbound IAC DONT <option>.
func (n *Negotiator) ReceiveDont(o Option) ([]Frame, []Event) {
	e := n.localEntry(o)
	frames, events := n.receive(e, func() bool { return n.AllowLocal(o) }, false, Local, o, func(on bool) Frame {
		if on {
			return WillFrame(o)
		}
		return WontFrame(o)
	})
	tagEvents(events, o)
	return frames, events
}

// ReceiveWill handles an inbound IAC WILL <option>: the peer wants to
// enable a remote option (an option it owns).
func (n *Negotiator) ReceiveWill(o Option) ([]Frame, []Event) {
	e := n.remoteEntry(o)
	frames, events := n.receive(e, func() bool { return n.AllowRemote(o) }, true, Remote, o, func(on bool) Frame {
		if on {
			return DoFrame(o)
		}
		return DontFrame(o)
	})
	tagEvents(events, o)
	return frames, events
}

// ReceiveWont handles an inbound IAC WONT <option>.
func (n *Negotiator) ReceiveWont(o Option) ([]Frame, []Event) {
	e := n.remoteEntry(o)
	frames, events := n.receive(e, func() bool { return n.AllowRemote(o) }, false, Remote, o, func(on bool) Frame {
		if on {
			return DoFrame(o)
		}
		return DontFrame(o)
	})
	tagEvents(events, o)
	return frames, events
}

func tagEvents(events []Event, o Option) {
	for i := range events {
		events[i].StatusOption = o
	}
}

// RequestLocal asks to enable or disable a local option (sends WILL/WONT
// if the current state permits sending immediately; otherwise the request
// is queued per the Q method and fires automatically once the in-flight
// negotiation resolves).
func (n *Negotiator) RequestLocal(o Option, enable bool) []Frame {
	e := n.localEntry(o)
	if e.request(enable) {
		if enable {
			return []Frame{WillFrame(o)}
		}
		return []Frame{WontFrame(o)}
	}
	return nil
}

// RequestRemote asks to enable or disable a remote option (sends DO/DONT).
func (n *Negotiator) RequestRemote(o Option, enable bool) []Frame {
	e := n.remoteEntry(o)
	if e.request(enable) {
		if enable {
			return []Frame{DoFrame(o)}
		}
		return []Frame{DontFrame(o)}
	}
	return nil
}

// Status reports, per RFC 1143 STATUS semantics, the current committed
// (not pending) do/will state for every option either side has ever
// negotiated. Used by the STATUS option argument codec (telnet/args).
func (n *Negotiator) Status() (doStates, willStates map[Option]bool) {
	doStates = make(map[Option]bool, len(n.local))
	for o, e := range n.local {
		doStates[o] = e.enabled()
	}
	willStates = make(map[Option]bool, len(n.remote))
	for o, e := range n.remote {
		willStates[o] = e.enabled()
	}
	return
}
