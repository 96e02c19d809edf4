package gradient

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is a linear RGB triple. Channels are nominally in [0, 1]; values
// outside that range are allowed in intermediate arithmetic and are clamped
// only when quantized.
type Color struct {
	R, G, B float64
}

// RGB creates a color from its channels.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Common colors.
var (
	Black = Color{0, 0, 0}
	White = Color{1, 1, 1}
)

// Mix blends a toward b. Amount 0 yields a and amount 1 yields b exactly.
// Amount is not clamped.
func Mix(a, b Color, amount float64) Color {
	af := 1.0 - amount
	bf := amount
	return Color{
		R: a.R*af + b.R*bf,
		G: a.G*af + b.G*bf,
		B: a.B*af + b.B*bf,
	}
}

// quantize maps a channel to a byte with round(v*255) clamped to [0, 255].
// NaN maps to 0.
func quantize(v float64) uint8 {
	q := math.Round(v * 255)
	switch {
	case math.IsNaN(q), q <= 0:
		return 0
	case q >= 255:
		return 255
	}
	return uint8(q)
}

// Bytes returns the quantized 8-bit channels.
func (c Color) Bytes() (r, g, b uint8) {
	return quantize(c.R), quantize(c.G), quantize(c.B)
}

// Write stores the color in dst as B, G, R. dst must hold at least 3 bytes.
func (c Color) Write(dst []byte) {
	_ = dst[2]
	r, g, b := c.Bytes()
	dst[0] = b
	dst[1] = g
	dst[2] = r
}

// WriteBGRA stores the color as B, G, R followed by an opaque alpha byte.
func (c Color) WriteBGRA(dst []byte) {
	_ = dst[3]
	c.Write(dst)
	dst[3] = 0xff
}

// WriteRGBA stores the color as R, G, B, A for sinks that expect red first.
func (c Color) WriteRGBA(dst []byte) {
	_ = dst[3]
	r, g, b := c.Bytes()
	dst[0] = r
	dst[1] = g
	dst[2] = b
	dst[3] = 0xff
}

// NRGBA converts to the standard library color model.
func (c Color) NRGBA() color.NRGBA {
	r, g, b := c.Bytes()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// Hex formats the clamped color as "#rrggbb".
func (c Color) Hex() string {
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Clamped().Hex()
}

// ParseHex parses "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, err
	}
	return Color{R: cf.R, G: cf.G, B: cf.B}, nil
}
