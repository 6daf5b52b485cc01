// Package glyph converts decoded frames into colorized terminal text.
package glyph

import (
	"image"
	"image/color"
	"strconv"
	"strings"
)

// DefaultRamp runs from sparse to dense.
const DefaultRamp = " .:-=+*#%@"

// Table is an ordered glyph ramp from least to most intense.
type Table []rune

// NewTable builds a Table from a string of glyphs.
func NewTable(ramp string) Table {
	return Table([]rune(ramp))
}

// DefaultTable returns the Table for DefaultRamp.
func DefaultTable() Table {
	return NewTable(DefaultRamp)
}

// Index maps a luminance value to a position in the table using truncating
// integer scaling. lum is clamped to [0,255] first.
func (t Table) Index(lum int) int {
	if len(t) == 0 {
		return 0
	}
	lum = clamp(lum)
	return lum * (len(t) - 1) / 255
}

// Glyph returns the glyph for a luminance value.
func (t Table) Glyph(lum int) rune {
	return t[t.Index(lum)]
}

// Luminance returns the ITU-R BT.601 luma of an RGB triple.
func Luminance(r, g, b uint8) int {
	return clamp((299*int(r) + 587*int(g) + 114*int(b)) / 1000)
}

// Frame is one fully rendered frame, ready to be written verbatim.
type Frame struct {
	Seq  int
	Text string
}

// Empty reports whether the frame carries no text.
func (f Frame) Empty() bool {
	return f.Text == ""
}

// Map renders img as rows of truecolor glyphs terminated by "\r\n".
// A zero-area image yields an empty Frame.
func Map(img image.Image, table Table) Frame {
	if img == nil || len(table) == 0 {
		return Frame{}
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return Frame{}
	}

	var sb strings.Builder
	// "\x1b[38;2;255;255;255m" plus a glyph is at most 23 bytes.
	sb.Grow(w*h*23 + h*2)

	num := make([]byte, 0, 3)
	writeNum := func(v uint8) {
		num = strconv.AppendUint(num[:0], uint64(v), 10)
		sb.Write(num)
	}

	rgba, fast := img.(*image.RGBA)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			var r, g, bl uint8
			if fast {
				i := rgba.PixOffset(x, y)
				r, g, bl = rgba.Pix[i], rgba.Pix[i+1], rgba.Pix[i+2]
			} else {
				c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
				r, g, bl = c.R, c.G, c.B
			}

			sb.WriteString("\x1b[38;2;")
			writeNum(r)
			sb.WriteByte(';')
			writeNum(g)
			sb.WriteByte(';')
			writeNum(bl)
			sb.WriteByte('m')
			sb.WriteRune(table.Glyph(Luminance(r, g, bl)))
		}
		sb.WriteString("\r\n")
	}

	return Frame{Text: sb.String()}
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
