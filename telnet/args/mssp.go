package args

import (
	"fmt"

	"github.com/huhlig/termionix/telnet"
)

const (
	msspVar byte = 1
	msspVal byte = 2
)

// MSSPEntry is one Mud Server Status Protocol variable. MSSP allows a
// variable to repeat (e.g. multiple CODEBASE values), so Values is a
// slice rather than a single string.
type MSSPEntry struct {
	Name   string
	Values []string
}

// MSSP is the flat VAR/VAL list used by the Mud Server Status Protocol:
// unlike MSDP it never nests TABLE/ARRAY structures.
type MSSP struct {
	Entries []MSSPEntry
}

func (MSSP) Option() telnet.Option { return telnet.OptionMSSP }

func (m MSSP) Encode(dst []byte) []byte {
	for _, e := range m.Entries {
		dst = append(dst, msspVar)
		dst = append(dst, []byte(e.Name)...)
		for _, v := range e.Values {
			dst = append(dst, msspVal)
			dst = append(dst, []byte(v)...)
		}
	}
	return dst
}

// Get returns the first value registered for name.
func (m MSSP) Get(name string) (string, bool) {
	for _, e := range m.Entries {
		if e.Name == name {
			if len(e.Values) == 0 {
				return "", true
			}
			return e.Values[0], true
		}
	}
	return "", false
}

// DecodeMSSP parses an MSSP payload.
func DecodeMSSP(b []byte) (MSSP, error) {
	isMarker := func(c byte) bool { return c == msspVar || c == msspVal }
	readRun := func(i *int) string {
		start := *i
		for *i < len(b) && !isMarker(b[*i]) {
			*i++
		}
		return string(b[start:*i])
	}

	var entries []MSSPEntry
	i := 0
	for i < len(b) {
		if b[i] != msspVar {
			return MSSP{}, fmt.Errorf("mssp: expected VAR marker, got %#x", b[i])
		}
		i++
		name := readRun(&i)
		entry := MSSPEntry{Name: name}
		for i < len(b) && b[i] == msspVal {
			i++
			entry.Values = append(entry.Values, readRun(&i))
		}
		entries = append(entries, entry)
	}
	return MSSP{Entries: entries}, nil
}
