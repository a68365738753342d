package viz

import "github.com/sebastiengilbert73/auto-pde/internal/surface"

// meshHalfWidth is the normalized extent of the surface in world space; the
// display spans always map onto the same cube so the drawn scale never
// changes between frames.
const (
	meshHalfWidth  = 1.0
	meshHalfHeight = 0.8
)

// SurfaceMesh builds a wireframe for one projected frame: grid lines along
// both axes, each vertex placed by normalizing (x, y, u) into the fixed
// display spans.
func SurfaceMesh(s surface.Surface) *Wireframe {
	wf := NewWireframe()
	ny, nx := len(s.Grid), len(s.Grid[0])

	vertex := func(r, c int) Vec3 {
		return Vec3{
			X: normalize(s.X[c], s.XSpan) * meshHalfWidth,
			Z: normalize(s.Y[r], s.YSpan) * meshHalfWidth,
			Y: normalize(s.Grid[r][c], s.ZSpan) * meshHalfHeight,
		}
	}

	for r := 0; r < ny; r++ {
		for c := 0; c < nx; c++ {
			v := vertex(r, c)
			if c+1 < nx {
				wf.AddEdge(v, vertex(r, c+1))
			}
			if r+1 < ny {
				wf.AddEdge(v, vertex(r+1, c))
			}
		}
	}
	return wf
}

// BoundsBox outlines the base of the display cube, anchoring the fixed
// spatial extent under the animated surface.
func BoundsBox() *Wireframe {
	wf := NewWireframe()
	const w, h = meshHalfWidth, meshHalfHeight
	corners := []Vec3{{-w, -h, -w}, {w, -h, -w}, {w, -h, w}, {-w, -h, w}}
	for i := range corners {
		wf.AddEdge(corners[i], corners[(i+1)%4])
	}
	return wf
}

// normalize maps a value inside span onto [-1, 1].
func normalize(v float64, span surface.Span) float64 {
	size := span.Size()
	if size == 0 {
		return 0
	}
	return 2*(v-span.Min)/size - 1
}
