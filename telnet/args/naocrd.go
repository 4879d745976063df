package args

import "github.com/huhlig/termionix/telnet"

// NAOCRD (RFC 652, Output Carriage-Return Disposition) and NAOHTS (RFC
// 653, Output Horizontal Tab Stops) share the same wire shape: a single
// byte naming which disposition/stop rule the sender uses.

// CRDisposition is the single-byte NAOCRD value.
type CRDisposition byte

const (
	CRDefault        CRDisposition = 0
	CRNoEffect       CRDisposition = 1
	CRMoveToNewLine  CRDisposition = 2
	CRMoveToLineFeed CRDisposition = 3
)

// NAOCRD wraps a negotiated carriage-return disposition.
type NAOCRD struct {
	Disposition CRDisposition
}

func (NAOCRD) Option() telnet.Option { return telnet.OptionNAOCRD }

func (n NAOCRD) Encode(dst []byte) []byte {
	return append(dst, byte(n.Disposition))
}

// DecodeNAOCRD parses a NAOCRD payload.
func DecodeNAOCRD(b []byte) (NAOCRD, bool) {
	if len(b) < 1 {
		return NAOCRD{}, false
	}
	return NAOCRD{Disposition: CRDisposition(b[0])}, true
}
