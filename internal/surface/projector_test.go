package surface

import (
	"testing"

	"github.com/sebastiengilbert73/auto-pde/internal/dataset"
)

func TestProject(t *testing.T) {
	ds := mustDataset(t,
		[]float64{0, 1}, []float64{0, 1}, []float64{0, 0.5},
		[][][]float64{
			{{0, 1}, {1, 0}},
			{{2, 3}, {3, 2}},
		})
	b := ComputeBounds(ds)

	s := Project(ds, b, 1)
	if &s.Grid[0][0] != &ds.Frames[1][0][0] {
		t.Error("surface should reference the frame grid, not copy it")
	}
	if s.XSpan != b.X || s.YSpan != b.Y || s.ZSpan != b.Z {
		t.Error("surface spans must come from the fixed bounds")
	}
	if s.Label != "t = 0.500" {
		t.Errorf("label = %q, want %q", s.Label, "t = 0.500")
	}
	if s.TimeAt != 0.5 {
		t.Errorf("time = %f, want 0.5", s.TimeAt)
	}
}

func TestProject_SpansFixedAcrossFrames(t *testing.T) {
	ds := dataset.Sample()
	b := ComputeBounds(ds)
	first := Project(ds, b, 0)
	for i := 1; i < ds.NumFrames(); i++ {
		s := Project(ds, b, i)
		if s.XSpan != first.XSpan || s.YSpan != first.YSpan || s.ZSpan != first.ZSpan {
			t.Fatalf("frame %d changed the display spans", i)
		}
	}
}
