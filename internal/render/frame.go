package render

import (
	"fmt"
	"image"
	"image/color"

	"github.com/san-kum/mandelzoom/internal/gradient"
)

// Format is the byte order of a packed 32-bit pixel.
type Format int

const (
	// BGRA stores blue, green, red, alpha. It matches the layout of Windows
	// and most little-endian ARGB surfaces.
	BGRA Format = iota
	// RGBA stores red, green, blue, alpha, as raylib textures and
	// image.RGBA expect.
	RGBA
)

func (f Format) String() string {
	switch f {
	case BGRA:
		return "bgra"
	case RGBA:
		return "rgba"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// Frame is a caller-owned pixel buffer: row-major, four bytes per pixel.
type Frame struct {
	Width, Height int
	Stride        int
	Format        Format
	Pix           []byte
}

// NewFrame allocates a frame with Stride = 4*width.
func NewFrame(width, height int, format Format) *Frame {
	f := &Frame{Format: format}
	f.Resize(width, height)
	return f
}

// Resize changes the frame dimensions, reusing the buffer when it is large
// enough. Pixel contents are unspecified afterwards.
func (f *Frame) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	n := 4 * width * height
	if cap(f.Pix) >= n {
		f.Pix = f.Pix[:n]
	} else {
		f.Pix = make([]byte, n)
	}
	f.Width, f.Height, f.Stride = width, height, 4*width
}

// Empty reports whether the frame has no pixels.
func (f *Frame) Empty() bool {
	return f.Width <= 0 || f.Height <= 0
}

// Offset returns the index of the first byte of pixel (x, y).
func (f *Frame) Offset(x, y int) int {
	return y*f.Stride + 4*x
}

// Row returns the bytes of row y.
func (f *Frame) Row(y int) []byte {
	start := y * f.Stride
	return f.Pix[start : start+4*f.Width]
}

// Set writes c to pixel (x, y) in the frame's byte order.
func (f *Frame) Set(x, y int, c gradient.Color) {
	if x < 0 || x >= f.Width {
		panic(fmt.Sprintf("render: x %d out of range [0, %d)", x, f.Width))
	}
	i := f.Offset(x, y)
	writePixel(f.Format, f.Pix[i:i+4], c)
}

// RGB returns the quantized channels of pixel (x, y).
func (f *Frame) RGB(x, y int) (r, g, b uint8) {
	i := f.Offset(x, y)
	p := f.Pix[i : i+4]
	if f.Format == RGBA {
		return p[0], p[1], p[2]
	}
	return p[2], p[1], p[0]
}

// RGBAImage returns an image.RGBA that shares the frame's pixels. It panics
// unless the frame is in RGBA format.
func (f *Frame) RGBAImage() *image.RGBA {
	if f.Format != RGBA {
		panic(fmt.Sprintf("render: RGBAImage on %s frame", f.Format))
	}
	return &image.RGBA{
		Pix:    f.Pix,
		Stride: f.Stride,
		Rect:   image.Rect(0, 0, f.Width, f.Height),
	}
}

// CopyRGBA appends every pixel to dst[:0] as opaque color.RGBA values in
// row-major order and returns the result. Reusing dst across frames avoids
// a per-frame allocation.
func (f *Frame) CopyRGBA(dst []color.RGBA) []color.RGBA {
	dst = dst[:0]
	for y := 0; y < f.Height; y++ {
		row := f.Row(y)
		for x := 0; x < f.Width; x++ {
			p := row[4*x : 4*x+4]
			if f.Format == RGBA {
				dst = append(dst, color.RGBA{R: p[0], G: p[1], B: p[2], A: 255})
			} else {
				dst = append(dst, color.RGBA{R: p[2], G: p[1], B: p[0], A: 255})
			}
		}
	}
	return dst
}

func writePixel(format Format, dst []byte, c gradient.Color) {
	if format == RGBA {
		c.WriteRGBA(dst)
		return
	}
	c.WriteBGRA(dst)
}
