package dataset

import "math"

// Dataset holds the coordinate axes and the ordered frame stack for one
// completed solve. Frames are y-major: Frames[i][row][col] is the field value
// at (Y[row], X[col]) at time T[i]. A Dataset is never mutated after New
// returns it, so it may be shared freely.
type Dataset struct {
	X      []float64     `json:"x"`
	Y      []float64     `json:"y"`
	T      []float64     `json:"t"`
	Frames [][][]float64 `json:"frames"`
}

// New validates a solver payload and wraps it in a Dataset. It returns a
// *MalformedDatasetError when the payload cannot be animated: no frames, a
// time axis that disagrees with the frame count, a grid whose shape disagrees
// with the axes, or any non-finite cell.
func New(x, y, t []float64, frames [][][]float64) (*Dataset, error) {
	if len(frames) == 0 {
		return nil, malformed("no frames")
	}
	if len(t) != len(frames) {
		return nil, malformed("time axis has %d entries for %d frames", len(t), len(frames))
	}
	if len(x) == 0 || len(y) == 0 {
		return nil, malformed("empty spatial axis")
	}
	for name, axis := range map[string][]float64{"x": x, "y": y, "t": t} {
		if !ascending(axis) {
			return nil, malformed("%s axis is not strictly ascending", name)
		}
	}
	for i, frame := range frames {
		if len(frame) != len(y) {
			return nil, malformed("frame %d has %d rows, want %d", i, len(frame), len(y))
		}
		for r, row := range frame {
			if len(row) != len(x) {
				return nil, malformed("frame %d row %d has %d columns, want %d", i, r, len(row), len(x))
			}
			for c, v := range row {
				if math.IsNaN(v) || math.IsInf(v, 0) {
					return nil, malformed("frame %d cell (%d,%d) is not finite", i, r, c)
				}
			}
		}
	}
	return &Dataset{X: x, Y: y, T: t, Frames: frames}, nil
}

// NumFrames reports the length of the time axis.
func (d *Dataset) NumFrames() int { return len(d.Frames) }

// Frame returns the grid at index i. The caller must not modify it.
func (d *Dataset) Frame(i int) [][]float64 { return d.Frames[i] }

func ascending(axis []float64) bool {
	for i := 1; i < len(axis); i++ {
		if axis[i] <= axis[i-1] {
			return false
		}
	}
	return true
}

// FrameStats returns the minimum, maximum, and mean of one frame's cells.
func (d *Dataset) FrameStats(i int) (min, max, mean float64) {
	frame := d.Frames[i]
	min, max = math.Inf(1), math.Inf(-1)
	sum, n := 0.0, 0
	for _, row := range frame {
		for _, v := range row {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
			sum += v
			n++
		}
	}
	return min, max, sum / float64(n)
}
