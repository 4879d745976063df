package args

import (
	"reflect"
	"testing"

	"github.com/huhlig/termionix/telnet"
)

func TestNAWSRoundTrip(t *testing.T) {
	w := WindowSize{Columns: 132, Rows: 43}
	wire := w.Encode(nil)
	got, ok := DecodeNAWS(wire)
	if !ok || got != w {
		t.Fatalf("round trip mismatch: got %+v ok=%v", got, ok)
	}
}

func TestCharsetRequestRoundTrip(t *testing.T) {
	c := Charset{Subcommand: CharsetRequest, Candidates: []string{"UTF-8", "CP437"}}
	wire := c.Encode(nil)
	got, ok := DecodeCharset(wire)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if !reflect.DeepEqual(got.Candidates, c.Candidates) {
		t.Fatalf("expected candidates %v, got %v", c.Candidates, got.Candidates)
	}
}

func TestLookupEncodingKnownAndUnknown(t *testing.T) {
	if _, ok := LookupEncoding("cp437"); !ok {
		t.Fatal("expected cp437 to resolve case-insensitively")
	}
	if _, ok := LookupEncoding("NOT-A-REAL-CHARSET"); ok {
		t.Fatal("expected unknown charset to fail lookup")
	}
}

func TestGMCPSplitsOnFirstSpace(t *testing.T) {
	g := DecodeGMCP([]byte(`Core.Hello {"client":"termionix"}`))
	if g.Package != "Core.Hello" {
		t.Fatalf("expected package Core.Hello, got %q", g.Package)
	}
	if string(g.Data) != `{"client":"termionix"}` {
		t.Fatalf("expected JSON payload, got %q", g.Data)
	}
}

func TestGMCPNoPayload(t *testing.T) {
	g := DecodeGMCP([]byte("Core.Ping"))
	if g.Package != "Core.Ping" || g.Data != nil {
		t.Fatalf("expected bare package with no data, got %+v", g)
	}
}

func TestMSDPFlatPairs(t *testing.T) {
	msdp := MSDP{Values: MSDPTable{
		{Name: "NAME", Value: MSDPString("Termionix")},
		{Name: "PLAYERS", Value: MSDPString("3")},
	}}
	wire := msdp.Encode(nil)
	got, err := DecodeMSDP(wire)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := got.Values.Get("NAME"); !ok || v != MSDPString("Termionix") {
		t.Fatalf("expected NAME=Termionix, got %v ok=%v", v, ok)
	}
}

func TestMSDPNestedArrayAndTable(t *testing.T) {
	msdp := MSDP{Values: MSDPTable{
		{Name: "ROOM", Value: MSDPTable{
			{Name: "EXITS", Value: MSDPArray{MSDPString("north"), MSDPString("south")}},
		}},
	}}
	wire := msdp.Encode(nil)
	got, err := DecodeMSDP(wire)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	room, ok := got.Values.Get("ROOM")
	if !ok {
		t.Fatal("expected ROOM entry")
	}
	table, ok := room.(MSDPTable)
	if !ok {
		t.Fatalf("expected ROOM value to be a table, got %T", room)
	}
	exits, ok := table.Get("EXITS")
	if !ok {
		t.Fatal("expected EXITS entry")
	}
	arr, ok := exits.(MSDPArray)
	if !ok || len(arr) != 2 {
		t.Fatalf("expected a 2-element array, got %#v", exits)
	}
}

func TestMSDPDepthCapRejected(t *testing.T) {
	var wire []byte
	wire = append(wire, msdpVar)
	wire = append(wire, []byte("ROOT")...)
	for i := 0; i < MaxMSDPDepth+1; i++ {
		wire = append(wire, msdpVal, msdpTableOpen)
	}
	_, err := DecodeMSDP(wire)
	if err == nil {
		t.Fatal("expected depth-cap error for excessively nested input")
	}
}

func TestMSSPRepeatedValues(t *testing.T) {
	mssp := MSSP{Entries: []MSSPEntry{
		{Name: "CODEBASE", Values: []string{"Termionix"}},
		{Name: "CRAWL DELAY", Values: []string{"-1"}},
	}}
	wire := mssp.Encode(nil)
	got, err := DecodeMSSP(wire)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := got.Get("CODEBASE"); !ok || v != "Termionix" {
		t.Fatalf("expected CODEBASE=Termionix, got %q ok=%v", v, ok)
	}
}

func TestStatusIsRoundTrip(t *testing.T) {
	s := Status{Command: StatusIs, Entries: []StatusEntry{
		{Verb: telnet.CmdWill, Option: telnet.OptionEcho},
		{Verb: telnet.CmdDont, Option: telnet.OptionBinary},
	}}
	wire := s.Encode(nil)
	got, ok := DecodeStatus(wire)
	if !ok {
		t.Fatal("expected decode to succeed")
	}
	if !got.WillStates()[telnet.OptionEcho] {
		t.Fatal("expected echo will-state true")
	}
	if got.DoStates()[telnet.OptionBinary] {
		t.Fatal("expected binary do-state false")
	}
}

func TestDecodersRegisteredWithTelnetPackage(t *testing.T) {
	if _, ok := telnet.ArgumentDecoders[telnet.OptionNAWS]; !ok {
		t.Fatal("expected NAWS decoder to be registered via init()")
	}
	if _, ok := telnet.ArgumentDecoders[telnet.OptionMSDP]; !ok {
		t.Fatal("expected MSDP decoder to be registered via init()")
	}
}
