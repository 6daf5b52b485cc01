// Package convert implements the frame conversion stage: scale a decoded
// frame to the terminal grid, then map it to colorized glyphs.
package convert

import (
	"context"
	"image"

	"golang.org/x/image/draw"

	"github.com/user/termplay/pkg/glyph"
	"github.com/user/termplay/pkg/pipeline"
	"github.com/user/termplay/pkg/ports"
)

// Scaler names a resampling kernel.
type Scaler string

const (
	ScalerNearest  Scaler = "nearest"
	ScalerBilinear Scaler = "bilinear"
	ScalerCatmull  Scaler = "catmullrom"
)

func (s Scaler) interpolator() draw.Interpolator {
	switch s {
	case ScalerNearest:
		return draw.NearestNeighbor
	case ScalerCatmull:
		return draw.CatmullRom
	default:
		return draw.ApproxBiLinear
	}
}

// GridForTerminal returns the frame grid for a terminal of cols x rows,
// keeping the last row free for the status line.
func GridForTerminal(cols, rows int) pipeline.Dimension {
	return pipeline.Dimension{Width: cols, Height: rows - 1}
}

// Stage converts decoded frames into glyph frames of a fixed grid size.
type Stage struct {
	table  glyph.Table
	grid   pipeline.Dimension
	kernel draw.Interpolator
	logger ports.Logger

	// dst is reused between frames; Stage is driven by a single producer.
	dst *image.RGBA
}

// NewStage creates a convert stage targeting grid.
func NewStage(table glyph.Table, grid pipeline.Dimension, scaler Scaler, logger ports.Logger) *Stage {
	s := &Stage{
		table:  table,
		grid:   grid,
		kernel: scaler.interpolator(),
		logger: logger.WithComponent("convert"),
	}
	if !grid.Empty() {
		s.dst = image.NewRGBA(image.Rect(0, 0, grid.Width, grid.Height))
	}
	return s
}

// Grid returns the target grid.
func (s *Stage) Grid() pipeline.Dimension {
	return s.grid
}

// Execute scales img onto the grid and maps it to glyphs.
func (s *Stage) Execute(ctx context.Context, img image.Image) (glyph.Frame, error) {
	if err := ctx.Err(); err != nil {
		return glyph.Frame{}, err
	}
	if img == nil || img.Bounds().Empty() || s.dst == nil {
		return glyph.Frame{}, nil
	}

	src := img.Bounds()
	if src.Dx() == s.grid.Width && src.Dy() == s.grid.Height {
		return glyph.Map(img, s.table), nil
	}

	s.kernel.Scale(s.dst, s.dst.Bounds(), img, src, draw.Src, nil)
	return glyph.Map(s.dst, s.table), nil
}

var _ pipeline.Stage[image.Image, glyph.Frame] = (*Stage)(nil)
