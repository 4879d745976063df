// Package args decodes and encodes the subnegotiation payloads for the
// Telnet options Termionix understands: NAWS, TERMINAL-TYPE, CHARSET,
// GMCP, MSDP, MSSP, STATUS, NAOCRD, NAOHTS, and LINEMODE (passthrough
// only). Each type
// implements telnet.Argument and registers a decoder into
// telnet.ArgumentDecoders from this package's init(), so telnet.Decoder can
// produce typed Event.Argument values without telnet importing this
// package back.
package args

import "github.com/huhlig/termionix/telnet"

func init() {
	telnet.ArgumentDecoders[telnet.OptionNAWS] = func(b []byte) telnet.Argument {
		w, ok := DecodeNAWS(b)
		if !ok {
			return nil
		}
		return w
	}
	telnet.ArgumentDecoders[telnet.OptionCharset] = func(b []byte) telnet.Argument {
		c, ok := DecodeCharset(b)
		if !ok {
			return nil
		}
		return c
	}
	telnet.ArgumentDecoders[telnet.OptionGMCP] = func(b []byte) telnet.Argument {
		return DecodeGMCP(b)
	}
	telnet.ArgumentDecoders[telnet.OptionMSDP] = func(b []byte) telnet.Argument {
		v, err := DecodeMSDP(b)
		if err != nil {
			return nil
		}
		return v
	}
	telnet.ArgumentDecoders[telnet.OptionMSSP] = func(b []byte) telnet.Argument {
		v, err := DecodeMSSP(b)
		if err != nil {
			return nil
		}
		return v
	}
	telnet.ArgumentDecoders[telnet.OptionStatus] = func(b []byte) telnet.Argument {
		s, ok := DecodeStatus(b)
		if !ok {
			return nil
		}
		return s
	}
	telnet.ArgumentDecoders[telnet.OptionNAOCRD] = func(b []byte) telnet.Argument {
		n, ok := DecodeNAOCRD(b)
		if !ok {
			return nil
		}
		return n
	}
	telnet.ArgumentDecoders[telnet.OptionNAOHTS] = func(b []byte) telnet.Argument {
		n, ok := DecodeNAOHTS(b)
		if !ok {
			return nil
		}
		return n
	}
	telnet.ArgumentDecoders[telnet.OptionLinemode] = func(b []byte) telnet.Argument {
		return Linemode(append([]byte(nil), b...))
	}
	telnet.ArgumentDecoders[telnet.OptionTerminalType] = func(b []byte) telnet.Argument {
		t, ok := DecodeTerminalType(b)
		if !ok {
			return nil
		}
		return t
	}
}
