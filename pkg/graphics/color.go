// Package graphics provides geometry, color, and canvas primitives shared by
// the layout and widget layers.
package graphics

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

const maxByte = 255.0

// Color packs ARGB into one word, 0xAARRGGBB.
type Color uint32

// RGBA builds a Color from channel bytes and a 0-1 alpha.
func RGBA(r, g, b uint8, a float64) Color {
	return Color(uint32(alpha01ToByte(a))<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGBA8 builds a Color from four channel bytes.
func RGBA8(r, g, b, a uint8) Color {
	return Color(uint32(a)<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b))
}

// RGB builds an opaque Color from channel bytes.
func RGB(r, g, b uint8) Color {
	return RGBA8(r, g, b, 0xFF)
}

// RGBAF returns the channels normalized to 0-1.
func (c Color) RGBAF() (r, g, b, a float64) {
	return float64(uint8(c>>16)) / maxByte,
		float64(uint8(c>>8)) / maxByte,
		float64(uint8(c)) / maxByte,
		float64(uint8(c>>24)) / maxByte
}

// Alpha returns the alpha channel as 0 (transparent) to 1 (opaque).
func (c Color) Alpha() float64 {
	return float64(uint8(c>>24)) / maxByte
}

// WithAlpha replaces the alpha channel, given as 0-1.
func (c Color) WithAlpha(a float64) Color {
	return Color(uint32(alpha01ToByte(a))<<24 | uint32(c)&0x00FFFFFF)
}

// WithAlpha8 replaces the alpha channel with a byte value.
func (c Color) WithAlpha8(a uint8) Color {
	return Color(uint32(a)<<24 | uint32(c)&0x00FFFFFF)
}

// ARGB returns the raw packed value for platform channel transmission.
func (c Color) ARGB() uint32 {
	return uint32(c)
}

// ParseColor parses a color from a hex string ("#RRGGBB" or "#AARRGGBB")
// or an SVG 1.1 color name ("rebeccapurple", "slategray", ...).
func ParseColor(s string) (Color, error) {
	if hex, ok := strings.CutPrefix(s, "#"); ok {
		switch len(hex) {
		case 6:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return 0, fmt.Errorf("graphics: invalid hex color %q: %w", s, err)
			}
			return Color(0xFF000000 | uint32(v)), nil
		case 8:
			v, err := strconv.ParseUint(hex, 16, 32)
			if err != nil {
				return 0, fmt.Errorf("graphics: invalid hex color %q: %w", s, err)
			}
			return Color(uint32(v)), nil
		default:
			return 0, fmt.Errorf("graphics: invalid hex color %q: want 6 or 8 digits", s)
		}
	}
	if named, ok := colornames.Map[strings.ToLower(s)]; ok {
		return RGBA8(named.R, named.G, named.B, named.A), nil
	}
	return 0, fmt.Errorf("graphics: unknown color name %q", s)
}

// alpha01ToByte rounds a 0-1 alpha into a byte.
func alpha01ToByte(a float64) uint8 {
	return uint8(math.Round(clamp01(a) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Common colors.
const (
	ColorTransparent = Color(0x00000000)
	ColorBlack       = Color(0xFF000000)
	ColorWhite       = Color(0xFFFFFFFF)
	ColorRed         = Color(0xFFFF0000)
	ColorGreen       = Color(0xFF00FF00)
	ColorBlue        = Color(0xFF0000FF)
)
