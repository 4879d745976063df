package telnet

import "testing"

// TestDecodeLoginBanner reproduces the round-trip scenario from the Rust
// telnetcodec crate's lib.rs tests: a plain banner line followed by the
// server offering BINARY mode.
func TestDecodeLoginBanner(t *testing.T) {
	d := NewDecoder(nil)

	in := []byte("Login:\r\n")
	in = append(in, 0xFF, byte(CmdDo), byte(OptionBinary))

	result, err := d.Decode(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var text []byte
	var sawDo bool
	for _, ev := range result.Events {
		if ev.Frame.Kind == KindData {
			text = append(text, ev.Frame.Data)
		}
		if ev.Frame.Kind == KindDo && ev.Frame.Option == OptionBinary {
			sawDo = true
		}
	}
	if string(text) != "Login:\r\n" {
		t.Fatalf("expected banner text, got %q", text)
	}
	if !sawDo {
		t.Fatal("expected a Do(BINARY) event")
	}
	// Decoder refuses by default (nil Negotiator allows nothing).
	if len(result.Reply) != 1 || result.Reply[0].Kind != KindWont {
		t.Fatalf("expected default-refuse WONT reply, got %v", result.Reply)
	}
}

func TestDecodeEscapedIACInData(t *testing.T) {
	d := NewDecoder(nil)
	result, err := d.Decode([]byte{'a', 0xFF, 0xFF, 'b'})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Events) != 3 {
		t.Fatalf("expected 3 data events, got %d", len(result.Events))
	}
	if result.Events[1].Frame.Data != 0xFF {
		t.Fatalf("expected escaped IAC byte, got %v", result.Events[1].Frame)
	}
}

func TestDecodeSplitAcrossCalls(t *testing.T) {
	d := NewDecoder(nil)

	r1, err := d.Decode([]byte{0xFF, byte(CmdWill)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(r1.Events) != 0 {
		t.Fatalf("expected no events yet, got %v", r1.Events)
	}

	r2, err := d.Decode([]byte{byte(OptionEcho)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sawWill bool
	for _, ev := range r2.Events {
		if ev.Frame.Kind == KindWill && ev.Frame.Option == OptionEcho {
			sawWill = true
		}
	}
	if !sawWill {
		t.Fatalf("expected Will(Echo) event once the option byte arrived, got %v", r2.Events)
	}
}

func TestDecodeSubnegotiationWithEscapedIAC(t *testing.T) {
	d := NewDecoder(nil)
	in := []byte{0xFF, 0xFA, byte(OptionTerminalType), 1, 0xFF, 0xFF, 2, 0xFF, 0xF0}

	result, err := d.Decode(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Events) != 1 || result.Events[0].Frame.Kind != KindSubnegotiate {
		t.Fatalf("expected one Subnegotiate event, got %v", result.Events)
	}
	want := []byte{1, 0xFF, 2}
	got := result.Events[0].Frame.Argument
	if len(got) != len(want) {
		t.Fatalf("expected payload %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected payload %v, got %v", want, got)
		}
	}
}

func TestDecodeBareSEIsTolerated(t *testing.T) {
	d := NewDecoder(nil)
	result, err := d.Decode([]byte{0xFF, 0xF0, 'x'})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Events) != 2 {
		t.Fatalf("bare IAC SE should emit NoOperation then not affect trailing data: %v", result.Events)
	}
	if result.Events[0].Frame.Kind != KindNoOperation {
		t.Fatalf("expected a NoOperation event for the bare IAC SE, got %v", result.Events[0])
	}
	if result.Events[1].Frame.Data != 'x' {
		t.Fatalf("expected trailing data event, got %v", result.Events[1])
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	enc := NewEncoder()
	var buf []byte
	buf = enc.Encode(buf, DoFrame(OptionNAWS))
	buf = enc.Encode(buf, DataFrame('a'))
	buf = enc.Encode(buf, DataFrame(0xFF))
	buf = enc.Encode(buf, SubnegotiateFrame(OptionNAWS, []byte{0, 80, 0, 24}))

	d := NewDecoder(nil)
	result, err := d.Decode(buf)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Events) != 4 {
		t.Fatalf("expected 4 events (Do, data, data, Subnegotiate), got %d: %v", len(result.Events), result.Events)
	}
	if result.Events[0].Frame.Kind != KindDo || result.Events[0].Frame.Option != OptionNAWS {
		t.Fatalf("expected Do(NAWS) first, got %v", result.Events[0].Frame)
	}
	if result.Events[3].Frame.Kind != KindSubnegotiate || len(result.Events[3].Frame.Argument) != 4 {
		t.Fatalf("expected NAWS subnegotiation last, got %v", result.Events[3].Frame)
	}
}
