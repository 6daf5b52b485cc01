package glyph

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func solid(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestTable_IndexEndpoints(t *testing.T) {
	for l := 1; l <= 70; l++ {
		table := NewTable(strings.Repeat("x", l))
		if got := table.Index(0); got != 0 {
			t.Errorf("L=%d: Index(0) = %d, want 0", l, got)
		}
		if got := table.Index(255); got != l-1 {
			t.Errorf("L=%d: Index(255) = %d, want %d", l, got, l-1)
		}
	}
}

func TestTable_IndexMonotonic(t *testing.T) {
	for _, l := range []int{1, 2, 3, 10, 16, 70, 256, 300} {
		table := NewTable(strings.Repeat("x", l))
		prev := table.Index(0)
		for lum := 1; lum <= 255; lum++ {
			idx := table.Index(lum)
			if idx < prev {
				t.Fatalf("L=%d: Index(%d)=%d < Index(%d)=%d", l, lum, idx, lum-1, prev)
			}
			prev = idx
		}
	}
}

func TestTable_IndexTruncates(t *testing.T) {
	table := DefaultTable() // L = 10

	tests := []struct {
		lum  int
		want int
	}{
		{lum: 0, want: 0},
		{lum: 28, want: 0},  // 252/255
		{lum: 29, want: 1},  // 261/255
		{lum: 127, want: 4}, // 1143/255
		{lum: 254, want: 8}, // 2286/255
		{lum: 255, want: 9},
		{lum: -10, want: 0},
		{lum: 999, want: 9},
	}
	for _, tt := range tests {
		if got := table.Index(tt.lum); got != tt.want {
			t.Errorf("Index(%d) = %d, want %d", tt.lum, got, tt.want)
		}
	}
}

func TestLuminance(t *testing.T) {
	if got := Luminance(0, 0, 0); got != 0 {
		t.Errorf("black: got %d", got)
	}
	if got := Luminance(255, 255, 255); got != 255 {
		t.Errorf("white: got %d", got)
	}
	if got := Luminance(255, 0, 0); got != 76 {
		t.Errorf("red: got %d, want 76", got)
	}
	if got := Luminance(0, 255, 0); got != 149 {
		t.Errorf("green: got %d, want 149", got)
	}
}

func TestMap_SinglePixel(t *testing.T) {
	table := NewTable("0123456789")

	black := Map(solid(1, 1, color.RGBA{A: 255}), table)
	if want := "\x1b[38;2;0;0;0m0\r\n"; black.Text != want {
		t.Errorf("black pixel: got %q, want %q", black.Text, want)
	}

	white := Map(solid(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255}), table)
	if want := "\x1b[38;2;255;255;255m9\r\n"; white.Text != want {
		t.Errorf("white pixel: got %q, want %q", white.Text, want)
	}
}

func TestMap_RowMajorLayout(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 1, G: 2, B: 3, A: 255})
	img.SetRGBA(1, 0, color.RGBA{R: 4, G: 5, B: 6, A: 255})
	img.SetRGBA(0, 1, color.RGBA{R: 7, G: 8, B: 9, A: 255})
	img.SetRGBA(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255})

	got := Map(img, NewTable(" @")).Text
	want := "\x1b[38;2;1;2;3m \x1b[38;2;4;5;6m \r\n" +
		"\x1b[38;2;7;8;9m \x1b[38;2;255;255;255m@\r\n"
	if got != want {
		t.Errorf("got %q\nwant %q", got, want)
	}
}

func TestMap_NonRGBAImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 1, 1))
	img.SetGray(0, 0, color.Gray{Y: 255})

	got := Map(img, NewTable("ab")).Text
	if want := "\x1b[38;2;255;255;255mb\r\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMap_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.SetRGBA(2, 2, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	sub := img.SubImage(image.Rect(2, 2, 3, 3))

	got := Map(sub, NewTable("ab")).Text
	if want := "\x1b[38;2;255;255;255mb\r\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMap_Degenerate(t *testing.T) {
	table := DefaultTable()
	if f := Map(image.NewRGBA(image.Rect(0, 0, 0, 5)), table); !f.Empty() {
		t.Errorf("zero width: expected empty frame, got %q", f.Text)
	}
	if f := Map(image.NewRGBA(image.Rect(0, 0, 5, 0)), table); !f.Empty() {
		t.Errorf("zero height: expected empty frame, got %q", f.Text)
	}
	if f := Map(nil, table); !f.Empty() {
		t.Error("nil image: expected empty frame")
	}
}

func TestMap_MultibyteGlyphs(t *testing.T) {
	table := NewTable(" ░▒▓█")
	got := Map(solid(1, 1, color.RGBA{R: 255, G: 255, B: 255, A: 255}), table).Text
	if !strings.HasSuffix(got, "█\r\n") {
		t.Errorf("expected dense block glyph, got %q", got)
	}
}
