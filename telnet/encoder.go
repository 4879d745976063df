package telnet

const (
	iac byte = 0xFF
	sb  byte = 0xFA
	se  byte = 0xF0
)

// Encoder serializes Frames into IAC-escaped wire bytes. It is stateless
// across calls; callers may freely interleave Encode calls from multiple
// goroutines only if each holds its own Encoder (Encoder itself does no
// locking, matching conn's split reader/writer design where only the
// writer task ever touches the wire encoder).
type Encoder struct{}

// NewEncoder returns a ready-to-use Encoder.
func NewEncoder() *Encoder { return &Encoder{} }

// Encode appends the wire bytes for f to dst and returns the extended
// slice.
func (e *Encoder) Encode(dst []byte, f Frame) []byte {
	switch f.Kind {
	case KindData:
		if f.Data == iac {
			return append(dst, iac, iac)
		}
		return append(dst, f.Data)

	case KindDo:
		return append(dst, iac, byte(CmdDo), byte(f.Option))
	case KindDont:
		return append(dst, iac, byte(CmdDont), byte(f.Option))
	case KindWill:
		return append(dst, iac, byte(CmdWill), byte(f.Option))
	case KindWont:
		return append(dst, iac, byte(CmdWont), byte(f.Option))

	case KindSubnegotiate:
		dst = append(dst, iac, sb, byte(f.Option))
		dst = appendEscaped(dst, f.Argument)
		return append(dst, iac, se)

	case KindNoOperation:
		return append(dst, iac, byte(CmdNoOperation))
	case KindDataMark:
		return append(dst, iac, byte(CmdDataMark))
	case KindBreak:
		return append(dst, iac, byte(CmdBreak))
	case KindInterruptProcess:
		return append(dst, iac, byte(CmdInterruptProc))
	case KindAbortOutput:
		return append(dst, iac, byte(CmdAbortOutput))
	case KindAreYouThere:
		return append(dst, iac, byte(CmdAreYouThere))
	case KindEraseCharacter:
		return append(dst, iac, byte(CmdEraseCharacter))
	case KindEraseLine:
		return append(dst, iac, byte(CmdEraseLine))
	case KindGoAhead:
		return append(dst, iac, byte(CmdGoAhead))
	case KindEndOfRecord:
		return append(dst, iac, byte(CmdEndOfRecord))
	}
	return dst
}

// EncodeData appends a run of plain data bytes, doubling any embedded IAC
// byte. This is the common path for bulk output and avoids a Frame/Event
// allocation per byte.
func (e *Encoder) EncodeData(dst []byte, data []byte) []byte {
	return appendEscaped(dst, data)
}

func appendEscaped(dst []byte, data []byte) []byte {
	for _, b := range data {
		if b == iac {
			dst = append(dst, iac, iac)
		} else {
			dst = append(dst, b)
		}
	}
	return dst
}
