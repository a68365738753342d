package dataset

import "math"

// Sample builds a small built-in dataset so the viewer works without a
// solver: a damped standing wave sin(x)sin(y)cos(2πt)e^(-2t) on [0,π]².
func Sample() *Dataset {
	const nx, ny, nf = 24, 24, 40
	x := linspace(0, math.Pi, nx)
	y := linspace(0, math.Pi, ny)
	t := linspace(0, 1, nf)

	frames := make([][][]float64, nf)
	for i := range frames {
		decay := math.Exp(-2 * t[i])
		phase := math.Cos(2 * math.Pi * t[i])
		grid := make([][]float64, ny)
		for r := range grid {
			row := make([]float64, nx)
			sy := math.Sin(y[r])
			for c := range row {
				row[c] = math.Sin(x[c]) * sy * phase * decay
			}
			grid[r] = row
		}
		frames[i] = grid
	}
	return &Dataset{X: x, Y: y, T: t, Frames: frames}
}

func linspace(lo, hi float64, n int) []float64 {
	vals := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range vals {
		vals[i] = lo + float64(i)*step
	}
	return vals
}
