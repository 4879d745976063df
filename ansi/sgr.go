package ansi

import (
	"bytes"
	"strconv"
)

type Intensity uint8

const (
	IntensityUnset Intensity = iota
	IntensityNormal
	IntensityBold
	IntensityFaint
)

type Underline uint8

const (
	UnderlineUnset Underline = iota
	UnderlineNone
	UnderlineSingle
	UnderlineDouble
)

type Blink uint8

const (
	BlinkUnset Blink = iota
	BlinkOff
	BlinkSlow
	BlinkFast
)

type Script uint8

const (
	ScriptUnset Script = iota
	ScriptNormal
	ScriptSuper
	ScriptSub
)

// SGRRecord is a set of optional text-attribute fields, per spec.md §2's
// SGR record. Every field's zero value means "not set by this record";
// merging two records (as the decoder does while walking a parameter
// list) just overwrites the fields the later one sets.
type SGRRecord struct {
	Foreground *Color
	Background *Color
	Intensity  Intensity
	Italic     *bool
	Underline  Underline
	Blink      Blink
	Reverse    *bool
	Hidden     *bool
	Strike     *bool
	Font       *int // 0 = primary, 1-9 = alternates
	Script     Script
	Ideogram   *int
}

// IsZero reports whether every field of the record is unset, in which
// case it must encode to nothing (spec.md §2).
func (r SGRRecord) IsZero() bool {
	return r.Foreground == nil && r.Background == nil &&
		r.Intensity == IntensityUnset && r.Italic == nil &&
		r.Underline == UnderlineUnset && r.Blink == BlinkUnset &&
		r.Reverse == nil && r.Hidden == nil && r.Strike == nil &&
		r.Font == nil && r.Script == ScriptUnset && r.Ideogram == nil
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

// decodeSGR walks a left-to-right SGR parameter list (already split and
// defaulted to 0) and merges the attributes into a record, per spec.md
// §4.C. Unknown parameters are skipped.
func decodeSGR(params []int) SGRRecord {
	var rec SGRRecord
	for i := 0; i < len(params); i++ {
		p := params[i]
		switch {
		case p == 0:
			rec = SGRRecord{}
		case p == 1:
			rec.Intensity = IntensityBold
		case p == 2:
			rec.Intensity = IntensityFaint
		case p == 3:
			rec.Italic = boolPtr(true)
		case p == 4:
			rec.Underline = UnderlineSingle
		case p == 5:
			rec.Blink = BlinkSlow
		case p == 6:
			rec.Blink = BlinkFast
		case p == 7:
			rec.Reverse = boolPtr(true)
		case p == 8:
			rec.Hidden = boolPtr(true)
		case p == 9:
			rec.Strike = boolPtr(true)
		case p == 21:
			rec.Underline = UnderlineDouble
		case p == 22:
			rec.Intensity = IntensityNormal
		case p == 23:
			rec.Italic = boolPtr(false)
		case p == 24:
			rec.Underline = UnderlineNone
		case p == 25:
			rec.Blink = BlinkOff
		case p == 27:
			rec.Reverse = boolPtr(false)
		case p == 28:
			rec.Hidden = boolPtr(false)
		case p == 29:
			rec.Strike = boolPtr(false)
		case p >= 30 && p <= 37:
			c := BasicColor(uint8(p - 30))
			rec.Foreground = &c
		case p == 38:
			if c, consumed := decodeExtendedColor(params[i+1:]); consumed > 0 {
				rec.Foreground = &c
				i += consumed
			}
		case p == 39:
			rec.Foreground = nil
		case p >= 40 && p <= 47:
			c := BasicColor(uint8(p - 40))
			rec.Background = &c
		case p == 48:
			if c, consumed := decodeExtendedColor(params[i+1:]); consumed > 0 {
				rec.Background = &c
				i += consumed
			}
		case p == 49:
			rec.Background = nil
		case p >= 90 && p <= 97:
			c := BasicColor(uint8(p - 90 + 8))
			rec.Foreground = &c
		case p >= 100 && p <= 107:
			c := BasicColor(uint8(p - 100 + 8))
			rec.Background = &c
		case p >= 73 && p <= 75:
			if p == 73 {
				rec.Script = ScriptSuper
			} else if p == 74 {
				rec.Script = ScriptSub
			} else {
				rec.Script = ScriptNormal
			}
		case p >= 10 && p <= 19:
			rec.Font = intPtr(p - 10)
		case p >= 60 && p <= 65:
			rec.Ideogram = intPtr(p)
		}
		// Any other parameter is unknown and silently skipped.
	}
	return rec
}

// decodeExtendedColor parses the tail of a 38/48 sequence: either
// "5;n" (Fixed) or "2;r;g;b" (RGB). Returns the parsed color and how many
// extra parameters (beyond the 38/48 itself) were consumed.
func decodeExtendedColor(rest []int) (Color, int) {
	if len(rest) == 0 {
		return Color{}, 0
	}
	switch rest[0] {
	case 5:
		if len(rest) < 2 {
			return Color{}, 0
		}
		return FixedColor(uint8(rest[1])), 2
	case 2:
		if len(rest) < 4 {
			return Color{}, 0
		}
		return RGBColor(uint8(rest[1]), uint8(rest[2]), uint8(rest[3])), 4
	default:
		return Color{}, 0
	}
}

// encodeSGR serializes rec to the bytes between "ESC [" and the final "m",
// downgrading colors to mode and emitting parameters in canonical order
// (attributes, then foreground, then background), per spec.md §4.C. An
// all-unset record returns nil (callers must then emit nothing at all).
func encodeSGR(rec SGRRecord, mode Mode) []byte {
	if rec.IsZero() {
		return nil
	}
	var params []string
	add := func(n int) { params = append(params, strconv.Itoa(n)) }

	switch rec.Intensity {
	case IntensityBold:
		add(1)
	case IntensityFaint:
		add(2)
	case IntensityNormal:
		add(22)
	}
	if rec.Italic != nil {
		if *rec.Italic {
			add(3)
		} else {
			add(23)
		}
	}
	switch rec.Underline {
	case UnderlineSingle:
		add(4)
	case UnderlineDouble:
		add(21)
	case UnderlineNone:
		add(24)
	}
	switch rec.Blink {
	case BlinkSlow:
		add(5)
	case BlinkFast:
		add(6)
	case BlinkOff:
		add(25)
	}
	if rec.Reverse != nil {
		if *rec.Reverse {
			add(7)
		} else {
			add(27)
		}
	}
	if rec.Hidden != nil {
		if *rec.Hidden {
			add(8)
		} else {
			add(28)
		}
	}
	if rec.Strike != nil {
		if *rec.Strike {
			add(9)
		} else {
			add(29)
		}
	}
	if rec.Font != nil {
		add(10 + *rec.Font)
	}
	switch rec.Script {
	case ScriptSuper:
		add(73)
	case ScriptSub:
		add(74)
	case ScriptNormal:
		add(75)
	}
	if rec.Ideogram != nil {
		add(*rec.Ideogram)
	}

	if rec.Foreground != nil {
		appendColorParams(&params, *rec.Foreground, mode, true)
	}
	if rec.Background != nil {
		appendColorParams(&params, *rec.Background, mode, false)
	}

	if len(params) == 0 {
		return nil
	}
	return []byte(joinParams(params))
}

func appendColorParams(params *[]string, c Color, mode Mode, foreground bool) {
	out, ok := downgrade(c, mode)
	if !ok {
		return
	}
	base := 30
	if !foreground {
		base = 40
	}
	switch out.Kind {
	case ColorBasic:
		code := int(out.Code)
		if code < 8 {
			*params = append(*params, strconv.Itoa(base+code))
		} else {
			brightBase := 90
			if !foreground {
				brightBase = 100
			}
			*params = append(*params, strconv.Itoa(brightBase+code-8))
		}
	case ColorFixed:
		extBase := 38
		if !foreground {
			extBase = 48
		}
		*params = append(*params, strconv.Itoa(extBase), "5", strconv.Itoa(int(out.Code)))
	case ColorRGB:
		extBase := 38
		if !foreground {
			extBase = 48
		}
		*params = append(*params, strconv.Itoa(extBase), "2",
			strconv.Itoa(int(out.R)), strconv.Itoa(int(out.G)), strconv.Itoa(int(out.B)))
	}
}

func joinParams(params []string) string {
	var buf bytes.Buffer
	for i, p := range params {
		if i > 0 {
			buf.WriteByte(';')
		}
		buf.WriteString(p)
	}
	return buf.String()
}
