package surface

import (
	"fmt"

	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
)

// Surface describes one renderable frame: the grid at the current time step,
// the unchanged coordinate axes, the fixed display spans, and a time label.
// The grid and axes are shared with the dataset, not copied; renderers must
// treat them as read-only.
type Surface struct {
	Grid   [][]float64
	X, Y   []float64
	XSpan  Span
	YSpan  Span
	ZSpan  Span
	Label  string
	TimeAt float64
}

// Project combines a frame with the fixed bounds. Pure: inputs are never
// mutated, and the same (dataset, bounds, frame) always yields the same
// description.
func Project(ds *dataset.Dataset, b Bounds, frame int) Surface {
	return Surface{
		Grid:   ds.Frames[frame],
		X:      ds.X,
		Y:      ds.Y,
		XSpan:  b.X,
		YSpan:  b.Y,
		ZSpan:  b.Z,
		Label:  fmt.Sprintf("t = %.3f", ds.T[frame]),
		TimeAt: ds.T[frame],
	}
}
