package ansi

import "testing"

func collectChars(seqs []Sequence) string {
	var s []rune
	for _, sq := range seqs {
		if sq.Kind == KindCharacter || sq.Kind == KindUnicode {
			s = append(s, sq.Char)
		}
	}
	return string(s)
}

func TestGroundPlainText(t *testing.T) {
	p := NewParser()
	seqs := p.Decode([]byte("Hello"))
	if collectChars(seqs) != "Hello" {
		t.Fatalf("expected Hello, got %q", collectChars(seqs))
	}
}

func TestFullScenarioFromSpec(t *testing.T) {
	p := NewParser()
	in := "Hello\x1B[2JWorld\x1B[H\x1B[31mRed\x1B[0m"
	seqs := p.Decode([]byte(in))

	var chars, csis, sgrs int
	for _, sq := range seqs {
		switch sq.Kind {
		case KindCharacter, KindUnicode:
			chars++
		case KindCSI:
			csis++
		case KindSGR:
			sgrs++
		}
	}
	if chars != 13 { // Hello(5) + World(5) + Red(3)
		t.Fatalf("expected 13 character events, got %d", chars)
	}
	if csis != 2 {
		t.Fatalf("expected 2 CSI events (ED, CUP), got %d", csis)
	}
	if sgrs != 2 {
		t.Fatalf("expected 2 SGR events (red fg, reset), got %d", sgrs)
	}
}

func TestCSICUP(t *testing.T) {
	p := NewParser()
	seqs := p.Decode([]byte("\x1B[10;20H"))
	if len(seqs) != 1 || seqs[0].Kind != KindCSI {
		t.Fatalf("expected one CSI event, got %v", seqs)
	}
	cmd := seqs[0].CSI
	if cmd.Kind != CSICUP || cmd.Row != 10 || cmd.Col != 20 {
		t.Fatalf("expected CUP(10,20), got %+v", cmd)
	}
}

func TestCSIDefaultParam(t *testing.T) {
	p := NewParser()
	seqs := p.Decode([]byte("\x1B[A"))
	if seqs[0].CSI.Kind != CSICUU || seqs[0].CSI.Count != 1 {
		t.Fatalf("expected CUU with default count 1, got %+v", seqs[0].CSI)
	}
}

func TestOSCTerminatedByBEL(t *testing.T) {
	p := NewParser()
	seqs := p.Decode([]byte("\x1B]0;title\x07"))
	if len(seqs) != 1 || seqs[0].Kind != KindOSC {
		t.Fatalf("expected one OSC event, got %v", seqs)
	}
	if string(seqs[0].String) != "0;title" {
		t.Fatalf("expected payload 0;title, got %q", seqs[0].String)
	}
}

func TestOSCTerminatedBySTSplitAcrossCalls(t *testing.T) {
	p := NewParser()
	seqs1 := p.Decode([]byte("\x1B]0;partial"))
	if len(seqs1) != 0 {
		t.Fatalf("expected no events mid-OSC, got %v", seqs1)
	}
	seqs2 := p.Decode([]byte("\x1B\\"))
	if len(seqs2) != 1 || seqs2[0].Kind != KindOSC || string(seqs2[0].String) != "0;partial" {
		t.Fatalf("expected completed OSC after ST, got %v", seqs2)
	}
}

func TestUnterminatedSequenceAtEndOfInputRetainsState(t *testing.T) {
	p := NewParser()
	seqs := p.Decode([]byte("\x1B["))
	if len(seqs) != 0 {
		t.Fatalf("expected no events yet, got %v", seqs)
	}
	if p.state != stCsiEntry {
		t.Fatalf("expected parser to retain CsiEntry state, got %v", p.state)
	}
}

func TestUnicodeThreeByteSequence(t *testing.T) {
	p := NewParser()
	// U+20AC EURO SIGN, UTF-8: E2 82 AC
	seqs := p.Decode([]byte{0xE2, 0x82, 0xAC})
	if len(seqs) != 1 || seqs[0].Kind != KindUnicode || seqs[0].Char != '€' {
		t.Fatalf("expected euro sign, got %v", seqs)
	}
}

func TestUnicodeSplitAcrossCalls(t *testing.T) {
	p := NewParser()
	seqs1 := p.Decode([]byte{0xE2, 0x82})
	if len(seqs1) != 0 {
		t.Fatalf("expected no events yet, got %v", seqs1)
	}
	seqs2 := p.Decode([]byte{0xAC})
	if len(seqs2) != 1 || seqs2[0].Char != '€' {
		t.Fatalf("expected euro sign after final continuation byte, got %v", seqs2)
	}
}

func TestSGRRecordRoundTripTrueColor(t *testing.T) {
	p := NewParser()
	seqs := p.Decode([]byte("\x1B[38;2;255;0;0m"))
	if len(seqs) != 1 || seqs[0].Kind != KindSGR {
		t.Fatalf("expected one SGR event, got %v", seqs)
	}
	fg := seqs[0].SGR.Foreground
	if fg == nil || fg.Kind != ColorRGB || fg.R != 255 {
		t.Fatalf("expected RGB(255,0,0) foreground, got %+v", fg)
	}

	wire := encodeSGR(seqs[0].SGR, ModeTrueColor)
	if string(wire) != "38;2;255;0;0" {
		t.Fatalf("expected round-tripped true color params, got %q", wire)
	}
}

func TestSGREncodeDowngradeToBasic(t *testing.T) {
	rec := SGRRecord{Foreground: &Color{Kind: ColorRGB, R: 255, G: 0, B: 0}}
	wire := encodeSGR(rec, ModeBasic)
	if string(wire) != "31" {
		t.Fatalf("expected downgrade to named red (31), got %q", wire)
	}
}

func TestSGRZeroRecordEncodesNothing(t *testing.T) {
	if wire := encodeSGR(SGRRecord{}, ModeTrueColor); wire != nil {
		t.Fatalf("expected nil for an all-unset record, got %q", wire)
	}
}

func TestSGRResetThenDefault(t *testing.T) {
	p := NewParser()
	seqs := p.Decode([]byte("\x1B[31m\x1B[0m"))
	if len(seqs) != 2 {
		t.Fatalf("expected 2 SGR events, got %d", len(seqs))
	}
	if !seqs[1].SGR.IsZero() {
		t.Fatalf("expected the reset record to equal the default record, got %+v", seqs[1].SGR)
	}
}
