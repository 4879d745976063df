package ansi

// ColorKind discriminates the three ways a color can be expressed on the
// wire: Basic is SGR's original 16-color set (30-37/90-97, 40-47/100-107),
// Fixed is the 256-color palette (38/48;5;n), RGB is 24-bit true color
// (38/48;2;r;g;b).
type ColorKind uint8

const (
	ColorBasic ColorKind = iota
	ColorFixed
	ColorRGB
)

// Color is a single foreground or background color value in whichever
// form it was decoded or constructed.
type Color struct {
	Kind ColorKind
	Code uint8 // ColorBasic: 0-15; ColorFixed: 0-255
	R, G, B uint8
}

func BasicColor(code uint8) Color { return Color{Kind: ColorBasic, Code: code} }
func FixedColor(code uint8) Color { return Color{Kind: ColorFixed, Code: code} }
func RGBColor(r, g, b uint8) Color { return Color{Kind: ColorRGB, R: r, G: g, B: b} }

// Mode is the configured ceiling on color richness a connection's SGR
// encoder is allowed to emit. Ordered weakest to strongest so comparisons
// like "configured < requested" downgrade correctly.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeBasic
	ModeFixed
	ModeTrueColor
)

// basicPalette is the conventional VGA/ANSI RGB approximation of the 16
// named SGR colors (0-7 normal, 8-15 bright), used as the target set for
// Fixed/RGB downgrade. With these values pure RGB red (255,0,0) is nearest
// to named red (code 1) rather than bright red.
var basicPalette = [16][3]uint8{
	{0, 0, 0}, {170, 0, 0}, {0, 170, 0}, {170, 85, 0},
	{0, 0, 170}, {170, 0, 170}, {0, 170, 170}, {170, 170, 170},
	{85, 85, 85}, {255, 85, 85}, {85, 255, 85}, {255, 255, 85},
	{85, 85, 255}, {255, 85, 255}, {85, 255, 255}, {255, 255, 255},
}

// fixedToRGB reproduces the 256-color palette: 0-15 are the basic
// palette above, 16-231 are xterm's 6x6x6 color cube, 232-255 are xterm's
// 24-step grayscale ramp. Spec.md asks for a static 256-entry lookup; since the palette is
// entirely formulaic, this computes it rather than hand-transcribing 256
// literal triples, which comes out to the same table.
func fixedToRGB(code uint8) (r, g, b uint8) {
	switch {
	case code < 16:
		p := basicPalette[code]
		return p[0], p[1], p[2]
	case code < 232:
		n := int(code) - 16
		levels := [6]uint8{0, 95, 135, 175, 215, 255}
		ri, gi, bi := n/36, (n/6)%6, n%6
		return levels[ri], levels[gi], levels[bi]
	default:
		v := uint8(8 + (int(code)-232)*10)
		return v, v, v
	}
}

func distSq(r1, g1, b1, r2, g2, b2 uint8) int {
	dr, dg, db := int(r1)-int(r2), int(g1)-int(g2), int(b1)-int(b2)
	return dr*dr + dg*dg + db*db
}

// nearestFixed performs a lazy nearest-match search over the 256-entry
// palette for an arbitrary RGB triple.
func nearestFixed(r, g, b uint8) uint8 {
	best, bestDist := uint8(0), -1
	for code := 0; code < 256; code++ {
		cr, cg, cb := fixedToRGB(uint8(code))
		d := distSq(r, g, b, cr, cg, cb)
		if bestDist < 0 || d < bestDist {
			best, bestDist = uint8(code), d
		}
	}
	return best
}

func nearestBasic(r, g, b uint8) uint8 {
	best, bestDist := uint8(0), -1
	for code, p := range basicPalette {
		d := distSq(r, g, b, p[0], p[1], p[2])
		if bestDist < 0 || d < bestDist {
			best, bestDist = uint8(code), d
		}
	}
	return best
}

// downgrade converts c to the strongest representation permitted by mode.
// ModeNone drops the color entirely (ok=false).
func downgrade(c Color, mode Mode) (out Color, ok bool) {
	if mode == ModeNone {
		return Color{}, false
	}
	switch c.Kind {
	case ColorRGB:
		if mode == ModeTrueColor {
			return c, true
		}
		if mode == ModeFixed {
			return FixedColor(nearestFixed(c.R, c.G, c.B)), true
		}
		return BasicColor(nearestBasic(c.R, c.G, c.B)), true

	case ColorFixed:
		if mode == ModeFixed || mode == ModeTrueColor {
			return c, true
		}
		// Fixed->Basic: 0-15 passthrough, 16-231 to the nearest basic
		// color by RGB distance (not by luminance alone), 232-255 to
		// bright white or bright black by the gray level.
		if c.Code < 16 {
			return BasicColor(c.Code), true
		}
		r, g, b := fixedToRGB(c.Code)
		if c.Code >= 232 {
			lum := (int(r) + int(g) + int(b)) / 3
			if lum >= 128 {
				return BasicColor(15), true // bright white
			}
			return BasicColor(8), true // bright black
		}
		return BasicColor(nearestBasic(r, g, b)), true

	default: // ColorBasic
		return c, true
	}
}
