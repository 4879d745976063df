package args

import "github.com/huhlig/termionix/telnet"

// HTStopRule is the single-byte NAOHTS value.
type HTStopRule byte

const (
	HTDefault       HTStopRule = 0
	HTNoEffect      HTStopRule = 1
	HTTabToNextStop HTStopRule = 2
	HTSpacesOnly    HTStopRule = 3
)

// NAOHTS wraps a negotiated horizontal tab stop rule.
type NAOHTS struct {
	Rule HTStopRule
}

func (NAOHTS) Option() telnet.Option { return telnet.OptionNAOHTS }

func (n NAOHTS) Encode(dst []byte) []byte {
	return append(dst, byte(n.Rule))
}

// DecodeNAOHTS parses a NAOHTS payload.
func DecodeNAOHTS(b []byte) (NAOHTS, bool) {
	if len(b) < 1 {
		return NAOHTS{}, false
	}
	return NAOHTS{Rule: HTStopRule(b[0])}, true
}
