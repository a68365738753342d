// Package surface derives the fixed axis bounds for a dataset and projects
// individual frames into renderable surface descriptions.
package surface

import (
	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
)

// Span is a closed numeric interval on one display axis.
type Span struct {
	Min, Max float64
}

func (s Span) Size() float64 { return s.Max - s.Min }

// Bounds are the display ranges for a whole dataset. They are computed once
// per load and reused for every frame; recomputing per frame would make the
// vertical scale visibly breathe during playback.
type Bounds struct {
	ZMin, ZMax float64
	Padding    float64
	X, Y, Z    Span
}

// flatPadding keeps the z axis open when every cell holds the same value.
const flatPadding = 0.1

// ComputeBounds scans every cell of every frame exactly once and returns the
// fixed bounds. Equal datasets always yield equal bounds.
func ComputeBounds(ds *dataset.Dataset) Bounds {
	zMin, zMax := ds.Frames[0][0][0], ds.Frames[0][0][0]
	for _, frame := range ds.Frames {
		for _, row := range frame {
			for _, v := range row {
				if v < zMin {
					zMin = v
				}
				if v > zMax {
					zMax = v
				}
			}
		}
	}

	pad := (zMax - zMin) * 0.1
	if zMax == zMin {
		pad = flatPadding
	}

	return Bounds{
		ZMin:    zMin,
		ZMax:    zMax,
		Padding: pad,
		X:       Span{ds.X[0], ds.X[len(ds.X)-1]},
		Y:       Span{ds.Y[0], ds.Y[len(ds.Y)-1]},
		Z:       Span{zMin - pad, zMax + pad},
	}
}
