package args

import (
	"fmt"

	"github.com/huhlig/termionix/telnet"
)

// MSDP marker bytes, per codec/src/args/msdp.rs.
const (
	msdpVar         byte = 0x01
	msdpVal         byte = 0x02
	msdpTableOpen   byte = 0x03
	msdpTableClose  byte = 0x04
	msdpArrayOpen   byte = 0x05
	msdpArrayClose  byte = 0x06
)

// MaxMSDPDepth bounds nested TABLE/ARRAY recursion during decode. The
// original Rust implementation recurses the call stack directly; Termionix
// uses an explicit stack instead (see DecodeMSDP) so an adversarial peer
// can't exhaust the goroutine stack, and caps depth at this value.
const MaxMSDPDepth = 32

// MSDPValue is one of MSDPString, MSDPArray, or MSDPTable.
type MSDPValue interface {
	isMSDPValue()
	encodeValue(dst []byte) []byte
}

type MSDPString string

func (MSDPString) isMSDPValue() {}
func (s MSDPString) encodeValue(dst []byte) []byte {
	return append(dst, []byte(s)...)
}

type MSDPArray []MSDPValue

func (MSDPArray) isMSDPValue() {}
func (a MSDPArray) encodeValue(dst []byte) []byte {
	dst = append(dst, msdpArrayOpen)
	for _, v := range a {
		dst = append(dst, msdpVal)
		dst = v.encodeValue(dst)
	}
	return append(dst, msdpArrayClose)
}

// MSDPPair is one VAR/VAL entry of an MSDPTable, kept as a slice rather
// than a map so decode preserves wire order.
type MSDPPair struct {
	Name  string
	Value MSDPValue
}

type MSDPTable []MSDPPair

func (MSDPTable) isMSDPValue() {}
func (t MSDPTable) encodeValue(dst []byte) []byte {
	dst = append(dst, msdpTableOpen)
	dst = encodePairs(dst, t)
	return append(dst, msdpTableClose)
}

func encodePairs(dst []byte, pairs []MSDPPair) []byte {
	for _, p := range pairs {
		dst = append(dst, msdpVar)
		dst = append(dst, []byte(p.Name)...)
		dst = append(dst, msdpVal)
		dst = p.Value.encodeValue(dst)
	}
	return dst
}

// Get looks up a top-level variable by name.
func (t MSDPTable) Get(name string) (MSDPValue, bool) {
	for _, p := range t {
		if p.Name == name {
			return p.Value, true
		}
	}
	return nil, false
}

// MSDP is the top-level Mud Server Data Protocol subnegotiation payload: an
// implicit table of VAR/VAL pairs with no surrounding TABLE_OPEN/CLOSE.
type MSDP struct {
	Values MSDPTable
}

func (MSDP) Option() telnet.Option { return telnet.OptionMSDP }

func (m MSDP) Encode(dst []byte) []byte {
	return encodePairs(dst, m.Values)
}

func isMSDPMarker(b byte) bool {
	return b >= msdpVar && b <= msdpArrayClose
}

type msdpFrameKind uint8

const (
	msdpFrameTable msdpFrameKind = iota
	msdpFrameArray
)

type msdpFrame struct {
	kind        msdpFrameKind
	pairs       []MSDPPair
	elems       []MSDPValue
	pendingName string
}

func (f *msdpFrame) append(v MSDPValue) {
	if f.kind == msdpFrameArray {
		f.elems = append(f.elems, v)
	} else {
		f.pairs = append(f.pairs, MSDPPair{Name: f.pendingName, Value: v})
	}
}

// DecodeMSDP parses an MSDP payload with an explicit stack (depth capped at
// MaxMSDPDepth) rather than recursive descent, per the decode strategy
// chosen for this subnegotiation.
func DecodeMSDP(b []byte) (MSDP, error) {
	stack := []*msdpFrame{{kind: msdpFrameTable}}
	i := 0

	readRun := func() string {
		start := i
		for i < len(b) && !isMSDPMarker(b[i]) {
			i++
		}
		return string(b[start:i])
	}

	for i < len(b) {
		switch b[i] {
		case msdpVar:
			i++
			top := stack[len(stack)-1]
			if top.kind != msdpFrameTable {
				return MSDP{}, fmt.Errorf("msdp: VAR inside an array")
			}
			top.pendingName = readRun()

		case msdpVal:
			i++
			if i < len(b) && (b[i] == msdpTableOpen || b[i] == msdpArrayOpen) {
				if len(stack) >= MaxMSDPDepth {
					return MSDP{}, fmt.Errorf("msdp: nesting exceeds depth cap of %d", MaxMSDPDepth)
				}
				kind := msdpFrameTable
				if b[i] == msdpArrayOpen {
					kind = msdpFrameArray
				}
				i++
				stack = append(stack, &msdpFrame{kind: kind})
				continue
			}
			top := stack[len(stack)-1]
			top.append(MSDPString(readRun()))

		case msdpTableClose, msdpArrayClose:
			wantArray := b[i] == msdpArrayClose
			i++
			if len(stack) < 2 {
				return MSDP{}, fmt.Errorf("msdp: unmatched close marker")
			}
			finished := stack[len(stack)-1]
			if (finished.kind == msdpFrameArray) != wantArray {
				return MSDP{}, fmt.Errorf("msdp: mismatched open/close marker")
			}
			stack = stack[:len(stack)-1]
			var v MSDPValue
			if finished.kind == msdpFrameArray {
				v = MSDPArray(finished.elems)
			} else {
				v = MSDPTable(finished.pairs)
			}
			stack[len(stack)-1].append(v)

		default:
			return MSDP{}, fmt.Errorf("msdp: unexpected byte %#x", b[i])
		}
	}

	if len(stack) != 1 {
		return MSDP{}, fmt.Errorf("msdp: unterminated TABLE/ARRAY")
	}
	return MSDP{Values: MSDPTable(stack[0].pairs)}, nil
}
