package telnet

import "testing"

func TestNegotiatorLocalAcceptsDo(t *testing.T) {
	n := NewNegotiator()
	n.AllowLocal = func(Option) bool { return true }

	frames, events := n.ReceiveDo(OptionSuppressGoAhead)
	if len(frames) != 1 || frames[0].Kind != KindWill {
		t.Fatalf("expected a single WILL reply, got %v", frames)
	}
	if len(events) != 1 || !events[0].StatusEnabled || events[0].StatusSide != Local {
		t.Fatalf("expected local enabled status event, got %v", events)
	}
	if !n.IsLocalEnabled(OptionSuppressGoAhead) {
		t.Fatal("expected option to be enabled")
	}
}

func TestNegotiatorLocalRefusesDo(t *testing.T) {
	n := NewNegotiator()
	n.AllowLocal = func(Option) bool { return false }

	frames, events := n.ReceiveDo(OptionBinary)
	if len(frames) != 1 || frames[0].Kind != KindWont {
		t.Fatalf("expected a single WONT reply, got %v", frames)
	}
	if len(events) != 0 {
		t.Fatalf("refusing from No should not cross the Yes boundary: %v", events)
	}
}

func TestNegotiatorDuplicateDoIsIgnored(t *testing.T) {
	n := NewNegotiator()
	n.AllowLocal = func(Option) bool { return true }

	n.ReceiveDo(OptionEcho)
	frames, events := n.ReceiveDo(OptionEcho)
	if len(frames) != 0 || len(events) != 0 {
		t.Fatalf("duplicate DO while already Yes should be a no-op, got frames=%v events=%v", frames, events)
	}
}

func TestNegotiatorRequestLocalThenAccepted(t *testing.T) {
	n := NewNegotiator()

	frames := n.RequestLocal(OptionNAWS, true)
	if len(frames) != 1 || frames[0].Kind != KindWill {
		t.Fatalf("expected WILL request, got %v", frames)
	}

	// Peer confirms with DO.
	replyFrames, events := n.ReceiveDo(OptionNAWS)
	if len(replyFrames) != 0 {
		t.Fatalf("confirming an outstanding WantYes request sends nothing further, got %v", replyFrames)
	}
	if len(events) != 1 || !events[0].StatusEnabled {
		t.Fatalf("expected enabled status event, got %v", events)
	}
	if !n.IsLocalEnabled(OptionNAWS) {
		t.Fatal("expected NAWS to be enabled")
	}
}

func TestNegotiatorQueuedReversal(t *testing.T) {
	n := NewNegotiator()
	n.AllowLocal = func(Option) bool { return true }

	// Get to Yes.
	n.ReceiveDo(OptionEcho)

	// Request disable: Yes -> WantNo/Empty, sends WONT.
	frames := n.RequestLocal(OptionEcho, false)
	if len(frames) != 1 || frames[0].Kind != KindWont {
		t.Fatalf("expected WONT request, got %v", frames)
	}

	// Before the peer answers, request enable again: queues a reversal.
	frames = n.RequestLocal(OptionEcho, true)
	if len(frames) != 0 {
		t.Fatalf("queuing a reversal must not send anything yet, got %v", frames)
	}

	// Peer confirms the WONT with DONT; queued reversal fires immediately.
	replyFrames, events := n.ReceiveDont(OptionEcho)
	if len(replyFrames) != 1 || replyFrames[0].Kind != KindWill {
		t.Fatalf("expected the queued reversal to send WILL, got %v", replyFrames)
	}
	if len(events) != 0 {
		t.Fatalf("WantNo/Opposite -> WantYes/Empty never crosses Yes, got %v", events)
	}

	// Peer now grants the reversal.
	_, events = n.ReceiveDo(OptionEcho)
	if len(events) != 1 || !events[0].StatusEnabled {
		t.Fatalf("expected final enabled event, got %v", events)
	}
	if !n.IsLocalEnabled(OptionEcho) {
		t.Fatal("expected echo enabled after queued reversal resolved")
	}
}

func TestNegotiatorWantNoEmptyErrorReassertsDisable(t *testing.T) {
	n := NewNegotiator()
	n.AllowLocal = func(Option) bool { return true }

	// Get to Yes, then request disable: Yes -> WantNo/Empty, sends WONT.
	n.ReceiveDo(OptionEcho)
	n.RequestLocal(OptionEcho, false)

	// Peer answers with DO instead of DONT: a protocol error. We
	// resynchronize to No and reassert the disable.
	frames, events := n.ReceiveDo(OptionEcho)
	if len(frames) != 1 || frames[0].Kind != KindWont {
		t.Fatalf("expected a reasserted WONT, got %v", frames)
	}
	if len(events) != 0 {
		t.Fatalf("already non-Yes before and after, should not cross: %v", events)
	}
	if n.IsLocalEnabled(OptionEcho) {
		t.Fatal("expected echo to remain disabled")
	}
}

func TestNegotiatorQueuedReversalFiresOnErrorAnswerToo(t *testing.T) {
	n := NewNegotiator()
	n.AllowLocal = func(Option) bool { return true }

	// Get to Yes, request disable: Yes -> WantNo/Empty, sends WONT.
	n.ReceiveDo(OptionEcho)
	n.RequestLocal(OptionEcho, false)

	// Queue a reversal back to enable before the peer answers.
	n.RequestLocal(OptionEcho, true)

	// Peer answers with DO (the erroneous/explicit WILL-DO row) rather
	// than DONT; the queued enable fires regardless.
	frames, events := n.ReceiveDo(OptionEcho)
	if len(frames) != 1 || frames[0].Kind != KindWill {
		t.Fatalf("expected the queued reversal to send WILL, got %v", frames)
	}
	if len(events) != 0 {
		t.Fatalf("WantNo/Opposite -> WantYes/Empty never crosses Yes, got %v", events)
	}

	_, events = n.ReceiveDo(OptionEcho)
	if len(events) != 1 || !events[0].StatusEnabled {
		t.Fatalf("expected final enabled event, got %v", events)
	}
}

func TestNegotiatorRemoteSide(t *testing.T) {
	n := NewNegotiator()
	n.AllowRemote = func(Option) bool { return true }

	frames, events := n.ReceiveWill(OptionNAWS)
	if len(frames) != 1 || frames[0].Kind != KindDo {
		t.Fatalf("expected DO reply to WILL, got %v", frames)
	}
	if len(events) != 1 || events[0].StatusSide != Remote {
		t.Fatalf("expected remote status event, got %v", events)
	}
	if !n.IsRemoteEnabled(OptionNAWS) {
		t.Fatal("expected remote NAWS enabled")
	}

	frames, events = n.ReceiveWont(OptionNAWS)
	if len(frames) != 1 || frames[0].Kind != KindDont {
		t.Fatalf("expected DONT reply to WONT, got %v", frames)
	}
	if len(events) != 1 || events[0].StatusEnabled {
		t.Fatalf("expected disabled status event, got %v", events)
	}
}
