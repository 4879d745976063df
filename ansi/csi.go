package ansi

import "strconv"

// CSIKind names the recognized CSI final-byte commands, per spec.md's CSI
// parameter grammar table.
type CSIKind uint8

const (
	CSIUnknown CSIKind = iota
	CSICUU             // A
	CSICUD             // B
	CSICUF             // C
	CSICUB             // D
	CSICNL             // E
	CSICPL             // F
	CSICHA             // G
	CSICUP             // H
	CSIED              // J
	CSIEL              // K
	CSISU              // S
	CSISD              // T
	CSIHVP             // f
	CSIDSR             // n
	CSISCP             // s
	CSIRCP             // u
	CSISM              // ?..h
	CSIRM              // ?..l
)

// CSICommand is a decoded CSI sequence: kind plus whatever parameters that
// kind needs. Params holds the raw semicolon-separated parameter list
// (missing parameters as 0) for every kind, including CSIUnknown; the
// named fields below carry the defaulted values.
type CSICommand struct {
	Kind          CSIKind
	Params        []int
	Intermediates []byte
	Final         byte
	Private       bool // true when the parameter byte '?' prefixed the params (DEC private mode)

	// Row/Col are populated for CSICUP/CSIHVP (1-based, per the terminal
	// convention); Count is populated for the single-count movement
	// commands (CUU/CUD/CUF/CUB/CNL/CPL/CHA/SU/SD); Mode is populated for
	// ED/EL/SM/RM.
	Row, Col int
	Count    int
	Mode     int
}

// decodeCSI classifies a fully-collected CSI sequence (params already
// split and defaulted) into a CSICommand. Unrecognized final bytes produce
// CSIUnknown with the raw Params/Intermediates/Final preserved.
func decodeCSI(params []int, intermediates []byte, final byte, private bool) CSICommand {
	cmd := CSICommand{Params: params, Intermediates: intermediates, Final: final, Private: private}

	get := func(i int, def int) int {
		if i < len(params) && params[i] != 0 {
			return params[i]
		}
		return def
	}

	switch final {
	case 'A':
		cmd.Kind, cmd.Count = CSICUU, get(0, 1)
	case 'B':
		cmd.Kind, cmd.Count = CSICUD, get(0, 1)
	case 'C':
		cmd.Kind, cmd.Count = CSICUF, get(0, 1)
	case 'D':
		cmd.Kind, cmd.Count = CSICUB, get(0, 1)
	case 'E':
		cmd.Kind, cmd.Count = CSICNL, get(0, 1)
	case 'F':
		cmd.Kind, cmd.Count = CSICPL, get(0, 1)
	case 'G':
		cmd.Kind, cmd.Count = CSICHA, get(0, 1)
	case 'H':
		cmd.Kind, cmd.Row, cmd.Col = CSICUP, get(0, 1), get(1, 1)
	case 'J':
		cmd.Kind, cmd.Mode = CSIED, get(0, 0)
	case 'K':
		cmd.Kind, cmd.Mode = CSIEL, get(0, 0)
	case 'S':
		cmd.Kind, cmd.Count = CSISU, get(0, 1)
	case 'T':
		cmd.Kind, cmd.Count = CSISD, get(0, 1)
	case 'f':
		cmd.Kind, cmd.Row, cmd.Col = CSIHVP, get(0, 1), get(1, 1)
	case 'n':
		cmd.Kind, cmd.Mode = CSIDSR, get(0, 0)
	case 's':
		cmd.Kind = CSISCP
	case 'u':
		cmd.Kind = CSIRCP
	case 'h':
		if private {
			cmd.Kind, cmd.Mode = CSISM, get(0, 0)
		}
	case 'l':
		if private {
			cmd.Kind, cmd.Mode = CSIRM, get(0, 0)
		}
	}
	return cmd
}

// EncodeCSI reconstructs the wire bytes for cmd, including the leading
// "ESC [" and trailing final byte, from its stored Params/Intermediates/
// Final/Private fields -- which are populated regardless of Kind, so even
// a CSIUnknown command round-trips.
func EncodeCSI(cmd CSICommand) []byte {
	out := []byte{0x1B, '['}
	if cmd.Private {
		out = append(out, '?')
	}
	for i, p := range cmd.Params {
		if i > 0 {
			out = append(out, ';')
		}
		out = append(out, []byte(strconv.Itoa(p))...)
	}
	out = append(out, cmd.Intermediates...)
	return append(out, cmd.Final)
}

// EncodeSGR serializes rec between "ESC [" and the final "m", downgrading
// colors to mode. Returns nil for an all-unset record (nothing to emit).
func EncodeSGR(rec SGRRecord, mode Mode) []byte {
	wire := encodeSGR(rec, mode)
	if wire == nil {
		return nil
	}
	out := []byte{0x1B, '['}
	out = append(out, wire...)
	return append(out, 'm')
}
