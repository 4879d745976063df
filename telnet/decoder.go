package telnet

// decState is the byte-by-byte scanner state, the direct descendant of
// MongooseMoo-barn's server/transport.go telnetState machine, generalized
// from "strip telnet bytes" to "emit typed Frames".
type decState uint8

const (
	decNormal decState = iota
	decAfterIAC
	decAfterVerb    // saw IAC DO/DONT/WILL/WONT, waiting for the option byte
	decSubnegOption // saw IAC SB, waiting for the option byte
	decSubneg       // inside IAC SB <option> ... , waiting for IAC SE
	decSubnegIAC    // inside subnegotiation, just saw an IAC
)

// DefaultMaxSubnegotiationSize bounds subnegotiation buffering so a peer
// that never sends IAC SE cannot grow Decoder's buffer without limit.
const DefaultMaxSubnegotiationSize = 64 * 1024

// Decoder turns a raw inbound byte stream into a sequence of Events,
// retaining partial-frame state across calls per the input-exhaustion
// contract: when bytes run out mid-sequence, Decode returns the events
// produced so far and keeps the remainder internally, ready to resume on
// the next call.
type Decoder struct {
	state      decState
	verb       Command
	subOption  Option
	subBuf     []byte
	maxSubSize int

	Negotiator *Negotiator
}

// NewDecoder builds a Decoder driving the given Negotiator's Q-method
// engine. A nil Negotiator is replaced with a fresh one that refuses every
// option, which still decodes correctly but answers every DO/WILL with a
// refusal.
func NewDecoder(n *Negotiator) *Decoder {
	if n == nil {
		n = NewNegotiator()
	}
	return &Decoder{
		state:      decNormal,
		maxSubSize: DefaultMaxSubnegotiationSize,
		Negotiator: n,
	}
}

// DecodeResult is the output of a single Decode call: the events produced
// and any reply frames the Q-method engine generated that must be sent
// back to the peer (e.g. the WILL/WONT answer to an inbound DO).
type DecodeResult struct {
	Events []Event
	Reply  []Frame
}

// Decode consumes as much of in as forms complete frames and returns the
// resulting events plus any reply frames the Q-method engine generated.
// Bytes that don't yet complete a frame are retained internally; pass the
// next chunk of input on the following call.
func (d *Decoder) Decode(in []byte) (DecodeResult, error) {
	var result DecodeResult

	for _, b := range in {
		switch d.state {
		case decNormal:
			if b == 0xFF { // IAC
				d.state = decAfterIAC
				continue
			}
			result.Events = append(result.Events, Event{Frame: DataFrame(b)})

		case decAfterIAC:
			switch {
			case b == 0xFF: // escaped 0xFF in the data stream
				result.Events = append(result.Events, Event{Frame: DataFrame(0xFF)})
				d.state = decNormal
			case b == byte(CmdDo), b == byte(CmdDont), b == byte(CmdWill), b == byte(CmdWont):
				d.verb = Command(b)
				d.state = decAfterVerb
			case b == 0xFA: // SB
				d.subBuf = d.subBuf[:0]
				d.state = decSubnegOption
			case b == 0xF0: // SE with no matching SB: protocol error, tolerated as NoOperation.
				d.state = decNormal
				result.Events = append(result.Events, Event{Frame: simpleFrame(KindNoOperation)})
			default:
				d.state = decNormal
				if kind, ok := simpleCommandKind(b); ok {
					result.Events = append(result.Events, Event{Frame: simpleFrame(kind)})
				}
				// Unknown command byte: per the tolerant reading, ignore
				// silently rather than erroring the whole stream.
			}

		case decAfterVerb:
			opt := Option(b)
			d.state = decNormal
			var received Frame
			var frames []Frame
			var events []Event
			switch d.verb {
			case CmdDo:
				received = DoFrame(opt)
				frames, events = d.Negotiator.ReceiveDo(opt)
			case CmdDont:
				received = DontFrame(opt)
				frames, events = d.Negotiator.ReceiveDont(opt)
			case CmdWill:
				received = WillFrame(opt)
				frames, events = d.Negotiator.ReceiveWill(opt)
			case CmdWont:
				received = WontFrame(opt)
				frames, events = d.Negotiator.ReceiveWont(opt)
			}
			result.Reply = append(result.Reply, frames...)
			result.Events = append(result.Events, Event{Frame: received})
			result.Events = append(result.Events, events...)

		case decSubnegOption:
			d.subOption = Option(b)
			d.state = decSubneg

		case decSubneg:
			if b == 0xFF {
				d.state = decSubnegIAC
				continue
			}
			if err := d.appendSubneg(b); err != nil {
				d.state = decNormal
				return result, err
			}

		case decSubnegIAC:
			switch b {
			case 0xF0: // SE: end of subnegotiation
				d.state = decNormal
				opt := d.subOption
				payload := append([]byte(nil), d.subBuf...)
				d.subBuf = d.subBuf[:0]
				ev := Event{Frame: SubnegotiateFrame(opt, payload)}
				ev.Argument = decodeArgument(opt, payload)
				result.Events = append(result.Events, ev)
			case 0xFF: // escaped 0xFF inside subnegotiation data
				d.state = decSubneg
				if err := d.appendSubneg(0xFF); err != nil {
					d.state = decNormal
					return result, err
				}
			default:
				// IAC followed by something other than SE/IAC inside a
				// subnegotiation: tolerated without an error. The
				// subnegotiation and this byte are discarded and decoding
				// resumes in decNormal.
				d.state = decNormal
			}
		}
	}

	return result, nil
}

// ArgumentDecoders holds one decode function per Option with a known
// subnegotiation argument format. telnet/args registers into this map from
// its init() so that telnet itself never imports telnet/args (which would
// be a cycle, since telnet/args imports telnet for Option/Argument).
// Options with no registered decoder simply carry a nil Event.Argument;
// callers still have the raw bytes on Event.Frame.Argument.
var ArgumentDecoders = map[Option]func([]byte) Argument{}

func decodeArgument(o Option, payload []byte) Argument {
	if fn, ok := ArgumentDecoders[o]; ok {
		return fn(payload)
	}
	return nil
}

func (d *Decoder) appendSubneg(b byte) error {
	if len(d.subBuf) >= d.maxSubSize {
		return newCodecError(ErrSubnegotiationTooLarge, d.subOption, b, "")
	}
	d.subBuf = append(d.subBuf, b)
	return nil
}

func simpleCommandKind(b byte) (Kind, bool) {
	switch Command(b) {
	case CmdNoOperation:
		return KindNoOperation, true
	case CmdDataMark:
		return KindDataMark, true
	case CmdBreak:
		return KindBreak, true
	case CmdInterruptProc:
		return KindInterruptProcess, true
	case CmdAbortOutput:
		return KindAbortOutput, true
	case CmdAreYouThere:
		return KindAreYouThere, true
	case CmdEraseCharacter:
		return KindEraseCharacter, true
	case CmdEraseLine:
		return KindEraseLine, true
	case CmdGoAhead:
		return KindGoAhead, true
	case CmdEndOfRecord:
		return KindEndOfRecord, true
	default:
		return 0, false
	}
}
