package viz

import (
	"math"
	"sort"
)

type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Camera projects the normalized surface cube onto the 2D canvas.
type Camera struct {
	Position         Vec3
	Near             float64
	RotX, RotY, RotZ float64
	Zoom             float64
}

// NewCamera starts slightly tilted so the surface reads as 3D before the
// user touches the rotation keys.
func NewCamera() *Camera {
	return &Camera{Position: Vec3{0, 0, 5}, Near: 0.1, Zoom: 1.0, RotX: -1.0, RotZ: -0.4}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

func (c *Camera) rotate(p Vec3) Vec3 {
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p.Y, p.Z = p.Y*cx-p.Z*sx, p.Y*sx+p.Z*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p.X, p.Z = p.X*cy+p.Z*sy, -p.X*sy+p.Z*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p.X, p.Y = p.X*cz-p.Y*sz, p.X*sz+p.Y*cz
	return p
}

// Project converts a world point to canvas sub-pixel coordinates. The last
// results report depth and whether the point landed on screen.
func (c *Camera) Project(p Vec3, sw, sh int) (int, int, float64, bool) {
	rot := c.rotate(p).Scale(c.Zoom)
	dist := c.Position.Z
	if rot.Z >= dist-c.Near {
		return 0, 0, 0, false
	}
	scale := dist / (dist - rot.Z)
	minDim := float64(sh)
	if float64(sw) < minDim {
		minDim = float64(sw)
	}
	pScale := minDim / 3.0
	sx := int(rot.X*scale*pScale) + sw/2
	sy := int(-rot.Y*scale*pScale) + sh/2
	return sx, sy, rot.Z, sx >= 0 && sx < sw && sy >= 0 && sy < sh
}

type segment struct {
	a, b Vec3
}

// Wireframe is an edge list drawn back to front.
type Wireframe struct {
	segments []segment
}

func NewWireframe() *Wireframe { return &Wireframe{} }

func (w *Wireframe) AddEdge(a, b Vec3) { w.segments = append(w.segments, segment{a, b}) }

type projectedSegment struct {
	x1, y1, x2, y2 int
	depth          float64
}

// Render draws the wireframe onto the canvas with a painter's algorithm:
// project every segment, sort by depth, rasterize far to near.
func Render(c *Canvas, w *Wireframe, cam *Camera) {
	if c == nil || w == nil || cam == nil {
		return
	}
	sw, sh := c.Width*2, c.Height*4
	proj := make([]projectedSegment, 0, len(w.segments))
	for _, s := range w.segments {
		x1, y1, d1, v1 := cam.Project(s.a, sw, sh)
		x2, y2, d2, v2 := cam.Project(s.b, sw, sh)
		if v1 || v2 {
			proj = append(proj, projectedSegment{x1, y1, x2, y2, (d1 + d2) / 2})
		}
	}
	sort.Slice(proj, func(i, j int) bool { return proj[i].depth < proj[j].depth })
	for _, s := range proj {
		if s.x1 == s.x2 && s.y1 == s.y2 {
			c.Set(s.x1, s.y1)
		} else {
			c.DrawLine(s.x1, s.y1, s.x2, s.y2)
		}
	}
}
