package surface

import (
	"math"
	"testing"

	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
)

func mustDataset(t *testing.T, x, y, ts []float64, frames [][][]float64) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(x, y, ts, frames)
	if err != nil {
		t.Fatalf("dataset: %v", err)
	}
	return ds
}

func TestComputeBounds(t *testing.T) {
	ds := mustDataset(t,
		[]float64{0, 1}, []float64{0, 1}, []float64{0, 1},
		[][][]float64{
			{{0, 1}, {1, 0}},
			{{2, 3}, {3, 2}},
		})

	b := ComputeBounds(ds)
	if b.ZMin != 0 || b.ZMax != 3 {
		t.Errorf("z extent = [%f, %f], want [0, 3]", b.ZMin, b.ZMax)
	}
	if math.Abs(b.Padding-0.3) > 1e-12 {
		t.Errorf("padding = %f, want 0.3", b.Padding)
	}
	if math.Abs(b.Z.Min+0.3) > 1e-12 || math.Abs(b.Z.Max-3.3) > 1e-12 {
		t.Errorf("display z span = [%f, %f], want [-0.3, 3.3]", b.Z.Min, b.Z.Max)
	}
	if b.X != (Span{0, 1}) || b.Y != (Span{0, 1}) {
		t.Errorf("spatial spans = %v %v, want [0,1] [0,1]", b.X, b.Y)
	}
}

func TestComputeBounds_FlatField(t *testing.T) {
	ds := mustDataset(t,
		[]float64{0, 1}, []float64{0, 1}, []float64{0},
		[][][]float64{{{0, 0}, {0, 0}}})

	b := ComputeBounds(ds)
	if b.Padding != 0.1 {
		t.Errorf("flat-field padding = %f, want 0.1", b.Padding)
	}
	if b.Z.Min != -0.1 || b.Z.Max != 0.1 {
		t.Errorf("display z span = [%f, %f], want [-0.1, 0.1]", b.Z.Min, b.Z.Max)
	}
}

func TestComputeBounds_ContainsEveryCell(t *testing.T) {
	ds := dataset.Sample()
	b := ComputeBounds(ds)
	for i := range ds.Frames {
		for _, row := range ds.Frames[i] {
			for _, v := range row {
				if v < b.ZMin || v > b.ZMax {
					t.Fatalf("cell %f outside [%f, %f]", v, b.ZMin, b.ZMax)
				}
			}
		}
	}
}

func TestComputeBounds_Deterministic(t *testing.T) {
	ds := dataset.Sample()
	if ComputeBounds(ds) != ComputeBounds(ds) {
		t.Error("equal datasets must yield equal bounds")
	}
}
