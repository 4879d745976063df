package telnet

import "fmt"

// Option is an 8-bit Telnet option code (RFC 855 and successors). Ordering
// and equality are by numeric code, so Option is just a named byte.
type Option uint8

// Well-known Telnet options. Values not named here are still valid Options;
// Name reports "UNKNOWN(code)" for them.
const (
	OptionBinary                 Option = 0
	OptionEcho                   Option = 1
	OptionReconnection           Option = 2
	OptionSuppressGoAhead        Option = 3
	OptionApproxMessageSize      Option = 4
	OptionStatus                 Option = 5
	OptionTimingMark             Option = 6
	OptionRemoteControlledTrans  Option = 7
	OptionOutputLineWidth        Option = 8
	OptionOutputPageSize         Option = 9
	OptionNAOCRD                 Option = 10
	OptionNAOHTS                 Option = 11
	OptionNAOHTD                 Option = 12
	OptionNAOFFD                 Option = 13
	OptionNAOVTS                 Option = 14
	OptionNAOVTD                 Option = 15
	OptionNAOLFD                 Option = 16
	OptionExtendedASCII          Option = 17
	OptionLogout                 Option = 18
	OptionByteMacro              Option = 19
	OptionDataEntryTerminal      Option = 20
	OptionSUPDUP                 Option = 21
	OptionSUPDUPOutput           Option = 22
	OptionSendLocation           Option = 23
	OptionTerminalType           Option = 24
	OptionEndOfRecord            Option = 25
	OptionTACACSUserID           Option = 26
	OptionOutputMarking          Option = 27
	OptionTerminalLocationNumber Option = 28
	OptionTelnet3270Regime       Option = 29
	OptionX3Pad                  Option = 30
	OptionNAWS                   Option = 31
	OptionTerminalSpeed          Option = 32
	OptionRemoteFlowControl      Option = 33
	OptionLinemode               Option = 34
	OptionXDisplayLocation       Option = 35
	OptionOldEnviron             Option = 36
	OptionAuthentication         Option = 37
	OptionEncrypt                Option = 38
	OptionNewEnviron             Option = 39
	OptionTN3270E                Option = 40
	OptionCharset                Option = 42
	OptionComPortControl         Option = 44
	OptionSuppressLocalEcho      Option = 45
	OptionStartTLS               Option = 46
	OptionKermit                 Option = 47
	OptionSendURL                Option = 48
	OptionForwardX               Option = 49
	OptionMSDP                   Option = 69
	OptionMSSP                   Option = 70
	OptionCompress               Option = 85
	OptionCompress2              Option = 86
	OptionZMP                    Option = 93
	OptionPragmaLogon            Option = 138
	OptionSSPILogon              Option = 139
	OptionPragmaHeartbeat        Option = 140
	OptionGMCP                   Option = 201
	OptionEXOPL                  Option = 255
)

var optionNames = map[Option]string{
	OptionBinary:                 "BINARY",
	OptionEcho:                   "ECHO",
	OptionReconnection:           "RECONNECTION",
	OptionSuppressGoAhead:        "SUPPRESS-GO-AHEAD",
	OptionApproxMessageSize:      "APPROX-MESSAGE-SIZE",
	OptionStatus:                 "STATUS",
	OptionTimingMark:             "TIMING-MARK",
	OptionRemoteControlledTrans:  "RCTE",
	OptionOutputLineWidth:        "NAOL",
	OptionOutputPageSize:         "NAOP",
	OptionNAOCRD:                 "NAOCRD",
	OptionNAOHTS:                 "NAOHTS",
	OptionNAOHTD:                 "NAOHTD",
	OptionNAOFFD:                 "NAOFFD",
	OptionNAOVTS:                 "NAOVTS",
	OptionNAOVTD:                 "NAOVTD",
	OptionNAOLFD:                 "NAOLFD",
	OptionExtendedASCII:          "EXTEND-ASCII",
	OptionLogout:                 "LOGOUT",
	OptionByteMacro:              "BM",
	OptionDataEntryTerminal:      "DET",
	OptionSUPDUP:                 "SUPDUP",
	OptionSUPDUPOutput:           "SUPDUP-OUTPUT",
	OptionSendLocation:           "SEND-LOCATION",
	OptionTerminalType:           "TERMINAL-TYPE",
	OptionEndOfRecord:            "END-OF-RECORD",
	OptionTACACSUserID:           "TACACS-UID",
	OptionOutputMarking:          "OUTPUT-MARKING",
	OptionTerminalLocationNumber: "TTYLOC",
	OptionTelnet3270Regime:       "3270-REGIME",
	OptionX3Pad:                  "X.3-PAD",
	OptionNAWS:                   "NAWS",
	OptionTerminalSpeed:          "TSPEED",
	OptionRemoteFlowControl:      "TOGGLE-FLOW-CONTROL",
	OptionLinemode:               "LINEMODE",
	OptionXDisplayLocation:       "X-DISPLAY-LOCATION",
	OptionOldEnviron:             "OLD-ENVIRON",
	OptionAuthentication:         "AUTHENTICATION",
	OptionEncrypt:                "ENCRYPT",
	OptionNewEnviron:             "NEW-ENVIRON",
	OptionTN3270E:                "TN3270E",
	OptionCharset:                "CHARSET",
	OptionComPortControl:         "COM-PORT-CONTROL",
	OptionSuppressLocalEcho:      "SUPPRESS-LOCAL-ECHO",
	OptionStartTLS:               "START-TLS",
	OptionKermit:                 "KERMIT",
	OptionSendURL:                "SEND-URL",
	OptionForwardX:               "FORWARD-X",
	OptionMSDP:                   "MSDP",
	OptionMSSP:                   "MSSP",
	OptionCompress:               "COMPRESS",
	OptionCompress2:              "COMPRESS2",
	OptionZMP:                    "ZMP",
	OptionPragmaLogon:            "PRAGMA-LOGON",
	OptionSSPILogon:              "SSPI-LOGON",
	OptionPragmaHeartbeat:        "PRAGMA-HEARTBEAT",
	OptionGMCP:                   "GMCP",
	OptionEXOPL:                  "EXOPL",
}

// Name returns the registered IANA-ish name for the option, or
// "UNKNOWN(code)" if the code is not one this package knows about. Unknown
// options are still valid Option values -- there is no separate wrapper
// type, since Option is already just the numeric code.
func (o Option) Name() string {
	if name, ok := optionNames[o]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", uint8(o))
}

func (o Option) String() string {
	return o.Name()
}

// Side is which end of the connection an option negotiation state applies
// to: Local is this process, Remote is the peer.
type Side uint8

const (
	Local Side = iota
	Remote
)

func (s Side) String() string {
	if s == Local {
		return "local"
	}
	return "remote"
}
