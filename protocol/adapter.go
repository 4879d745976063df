package protocol

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"github.com/huhlig/termionix/ansi"
	"github.com/huhlig/termionix/telnet"
)

// Adapter wraps a telnet.Decoder and an ansi.Parser into a single decoded
// Sequence stream, and the corresponding telnet.Encoder for writing
// Sequences back out, per spec.md §4.D.
type Adapter struct {
	Config Config

	decoder *telnet.Decoder
	parser  *ansi.Parser
	encoder *telnet.Encoder
}

// NewAdapter builds an Adapter over a (possibly nil, i.e. default-refuse)
// Negotiator.
func NewAdapter(n *telnet.Negotiator, cfg Config) *Adapter {
	return &Adapter{
		Config:  cfg,
		decoder: telnet.NewDecoder(n),
		parser:  ansi.NewParser(),
		encoder: telnet.NewEncoder(),
	}
}

// DecodeResult is the output of a single Decode call.
type DecodeResult struct {
	Sequences []ansi.Sequence
	Reply     []telnet.Frame // negotiation replies that must be sent back
}

// Decode feeds in through the telnet decoder, then the ANSI parser for
// any Data frames, wrapping every non-data telnet event as a
// TelnetCommand sequence, per spec.md §4.D.
func (a *Adapter) Decode(in []byte) (DecodeResult, error) {
	tResult, err := a.decoder.Decode(in)
	if err != nil {
		return DecodeResult{}, err
	}

	var result DecodeResult
	result.Reply = tResult.Reply

	var dataRun []byte
	flushData := func() {
		if len(dataRun) == 0 {
			return
		}
		text := dataRun
		if a.Config.Encoding != nil {
			// Legacy 8-bit charsets (e.g. CP437) aren't valid UTF-8; transcode
			// before the ANSI parser's UTF-8 rune decoding sees them.
			utf8Bytes, err := a.Config.Encoding.NewDecoder().Bytes(dataRun)
			if err == nil {
				text = utf8Bytes
			}
		}
		seqs := a.parser.Decode(text)
		result.Sequences = append(result.Sequences, a.filter(seqs)...)
		dataRun = dataRun[:0]
	}

	for _, ev := range tResult.Events {
		if ev.Frame.Kind == telnet.KindData && !ev.IsOptionStatus {
			dataRun = append(dataRun, ev.Frame.Data)
			continue
		}
		flushData()
		if a.Config.StripTelnet {
			continue
		}
		result.Sequences = append(result.Sequences, ansi.TelnetCommandSeq(ev))
	}
	flushData()

	return result, nil
}

func (a *Adapter) filter(seqs []ansi.Sequence) []ansi.Sequence {
	out := seqs[:0]
	for _, sq := range seqs {
		switch sq.Kind {
		case ansi.KindControl:
			if a.Config.StripCtrl {
				continue
			}
		case ansi.KindCSI:
			if a.Config.StripCSI {
				continue
			}
		case ansi.KindSGR:
			if a.Config.StripSGR {
				continue
			}
		case ansi.KindOSC:
			if a.Config.StripOSC {
				continue
			}
		case ansi.KindDCS:
			if a.Config.StripDCS {
				continue
			}
		case ansi.KindSOS, ansi.KindST:
			if a.Config.StripSosST {
				continue
			}
		case ansi.KindPM:
			if a.Config.StripPM {
				continue
			}
		case ansi.KindAPC:
			if a.Config.StripAPC {
				continue
			}
		}
		out = append(out, sq)
	}
	return out
}

// Encode serializes a Sequence to wire bytes, UTF-8-encoding characters
// and consulting Config.ColorMode for SGR, per spec.md §4.D.
func (a *Adapter) Encode(dst []byte, sq ansi.Sequence) []byte {
	switch sq.Kind {
	case ansi.KindCharacter, ansi.KindUnicode:
		var buf [utf8.UTFMax]byte
		n := utf8.EncodeRune(buf[:], sq.Char)
		return a.encoder.EncodeData(dst, buf[:n])
	case ansi.KindControl:
		return a.encoder.EncodeData(dst, []byte{sq.Control})
	case ansi.KindEscape:
		return a.encoder.EncodeData(dst, []byte{0x1B})
	case ansi.KindST:
		return a.encoder.EncodeData(dst, []byte{0x1B, '\\'})
	case ansi.KindCSI:
		return a.encoder.EncodeData(dst, ansi.EncodeCSI(sq.CSI))
	case ansi.KindSGR:
		if wire := ansi.EncodeSGR(sq.SGR, a.Config.ColorMode); wire != nil {
			dst = a.encoder.EncodeData(dst, wire)
		}
		return dst
	case ansi.KindOSC:
		dst = a.encoder.EncodeData(dst, []byte{0x1B, ']'})
		dst = a.encoder.EncodeData(dst, sq.String)
		return a.encoder.EncodeData(dst, []byte{0x07})
	case ansi.KindDCS:
		dst = a.encoder.EncodeData(dst, []byte{0x1B, 'P'})
		dst = a.encoder.EncodeData(dst, sq.String)
		return a.encoder.EncodeData(dst, []byte{0x1B, '\\'})
	case ansi.KindSOS:
		dst = a.encoder.EncodeData(dst, []byte{0x1B, 'X'})
		dst = a.encoder.EncodeData(dst, sq.String)
		return a.encoder.EncodeData(dst, []byte{0x1B, '\\'})
	case ansi.KindPM:
		dst = a.encoder.EncodeData(dst, []byte{0x1B, '^'})
		dst = a.encoder.EncodeData(dst, sq.String)
		return a.encoder.EncodeData(dst, []byte{0x1B, '\\'})
	case ansi.KindAPC:
		dst = a.encoder.EncodeData(dst, []byte{0x1B, '_'})
		dst = a.encoder.EncodeData(dst, sq.String)
		return a.encoder.EncodeData(dst, []byte{0x1B, '\\'})
	case ansi.KindTelnetCommand:
		return a.encoder.Encode(dst, sq.Telnet.Frame)
	}
	return dst
}

// RequestLocal/RequestRemote forward to the underlying Negotiator so
// callers don't need to reach into Adapter internals to drive
// negotiation.
func (a *Adapter) RequestLocal(o telnet.Option, enable bool) []telnet.Frame {
	return a.decoder.Negotiator.RequestLocal(o, enable)
}

func (a *Adapter) RequestRemote(o telnet.Option, enable bool) []telnet.Frame {
	return a.decoder.Negotiator.RequestRemote(o, enable)
}

func (a *Adapter) Negotiator() *telnet.Negotiator { return a.decoder.Negotiator }

// SetEncoding changes the transcoding applied to inbound Data frames before
// the ANSI parser sees them. Called when a CHARSET subnegotiation accepts a
// non-UTF-8 charset; nil restores plain UTF-8 passthrough.
func (a *Adapter) SetEncoding(enc encoding.Encoding) {
	a.Config.Encoding = enc
}
