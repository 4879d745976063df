package terminal

import (
	"testing"

	"github.com/huhlig/termionix/protocol"
)

func TestAdapterAccumulatesLineAndCompletesOnLF(t *testing.T) {
	a := NewAdapter(protocol.NewAdapter(nil, protocol.DefaultConfig()), nil)

	events, _, err := a.Decode([]byte("hello\n"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawCompleted bool
	for _, ev := range events {
		if ev.Kind == EventLineCompleted {
			sawCompleted = true
			if string(runesOf(ev.Line)) != "hello" {
				t.Fatalf("expected completed line 'hello', got %q", runesOf(ev.Line))
			}
		}
	}
	if !sawCompleted {
		t.Fatal("expected a LineCompleted event")
	}
}

func TestAdapterCursorMovementCUP(t *testing.T) {
	a := NewAdapter(protocol.NewAdapter(nil, protocol.DefaultConfig()), nil)
	events, _, err := a.Decode([]byte("\x1B[5;10H"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Cursor != (Position{Row: 5, Col: 10}) {
		t.Fatalf("expected cursor at (5,10), got %+v", events)
	}
}

func TestAdapterNAWSProducesResizeAndWindowSize(t *testing.T) {
	a := NewAdapter(protocol.NewAdapter(nil, protocol.DefaultConfig()), nil)

	// IAC SB NAWS 0x00 0x50 0x00 0x18 IAC SE -> 80x24
	events, _, err := a.Decode([]byte{0xFF, 0xFA, 31, 0x00, 0x50, 0x00, 0x18, 0xFF, 0xF0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawResize, sawSize bool
	for _, ev := range events {
		switch ev.Kind {
		case EventResizeWindow:
			sawResize = true
			if ev.NewSize != (WindowSize{Columns: 80, Rows: 24}) {
				t.Fatalf("expected new size 80x24, got %+v", ev.NewSize)
			}
		case EventWindowSize:
			sawSize = true
		}
	}
	if !sawResize || !sawSize {
		t.Fatalf("expected both ResizeWindow and WindowSize events, got %+v", events)
	}
}

func TestAdapterCharsetAcceptedTranscodesSubsequentData(t *testing.T) {
	a := NewAdapter(protocol.NewAdapter(nil, protocol.DefaultConfig()), nil)

	// IAC SB CHARSET ACCEPTED "CP437" IAC SE
	charsetAccept := []byte{0xFF, 0xFA, 42, 2}
	charsetAccept = append(charsetAccept, []byte("CP437")...)
	charsetAccept = append(charsetAccept, 0xFF, 0xF0)

	if _, _, err := a.Decode(charsetAccept); err != nil {
		t.Fatalf("unexpected error decoding CHARSET accept: %v", err)
	}

	// 0xA7 is CP437's masculine ordinal indicator (º); not valid
	// standalone UTF-8.
	events, _, err := a.Decode([]byte{0xA7})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawChar bool
	for _, ev := range events {
		if ev.Kind == EventCharacterAppended {
			sawChar = true
			if ev.Char != 'º' {
				t.Fatalf("expected CP437 0xA7 to transcode to 'º', got %q", ev.Char)
			}
		}
	}
	if !sawChar {
		t.Fatal("expected a CharacterAppended event")
	}
}

func runesOf(line []StyledChar) []rune {
	out := make([]rune, len(line))
	for i, sc := range line {
		out[i] = sc.Char
	}
	return out
}
