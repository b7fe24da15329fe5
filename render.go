package spiralkeys

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is a shared 1x1 white image used to draw solid-color triangles.
var whitePixel *ebiten.Image

func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return whitePixel
}

// Compositor is the dirty-region renderer: a cached snapshot of everything
// static, restored each frame, with only the currently visible segments
// painted on top. Many simultaneously fading segments never force a repaint
// of the backbone, shading, or labels.
type Compositor struct {
	registry *Registry
	mapping  PlotMapping
	width    int
	height   int

	background *ebiten.Image

	// StrokeWidth is the on-screen thickness of a lit segment in pixels.
	StrokeWidth float64
	// StrokeColor tints lit segments; alpha comes from the segment itself.
	StrokeColor Color

	ptsBuf []Vec2
	verts  []ebiten.Vertex
	inds   []uint16
}

// NewCompositor creates a compositor for a w×h viewport. The snapshot is not
// captured until the first Recapture call.
func NewCompositor(reg *Registry, mapping PlotMapping, w, h int) *Compositor {
	return &Compositor{
		registry:    reg,
		mapping:     mapping,
		width:       w,
		height:      h,
		StrokeWidth: 5,
		StrokeColor: Color{A: 1}, // black
	}
}

// Mapping returns the polar↔screen mapping the compositor paints with.
func (c *Compositor) Mapping() PlotMapping {
	return c.mapping
}

// HasSnapshot reports whether a background snapshot has been captured.
func (c *Compositor) HasSnapshot() bool {
	return c.background != nil
}

// Recapture rebuilds the static background snapshot by handing a clean
// offscreen image to paint. It is a single atomic operation: the dynamic
// segments are never part of the painted scene, so a lit or fading segment
// cannot leak into the cached background no matter when recapture happens.
// Call it once at startup and again whenever the static scene changes (for
// example a mode caption toggle).
func (c *Compositor) Recapture(paint func(dst *ebiten.Image)) {
	if c.background == nil {
		c.background = ebiten.NewImage(c.width, c.height)
	} else {
		c.background.Clear()
	}
	if paint != nil {
		paint(c.background)
	}
}

// Draw restores the background snapshot onto screen and paints every segment
// with nonzero alpha over it. Returns the number of segments painted. Work is
// O(segments with nonzero alpha) beyond the single snapshot blit.
func (c *Compositor) Draw(screen *ebiten.Image) int {
	if c.background != nil {
		screen.DrawImage(c.background, nil)
	}
	painted := 0
	c.registry.ForEach(func(seg *Segment) {
		if seg.Alpha <= 0 {
			return
		}
		c.drawSegment(screen, seg)
		painted++
	})
	return painted
}

// drawSegment renders one segment as a ribbon of constant screen width along
// its sampled arc, shrunk radially by the segment's current factor and
// blended at its current alpha.
func (c *Compositor) drawSegment(screen *ebiten.Image, seg *Segment) {
	n := len(seg.Thetas)
	if n < 2 {
		return
	}

	if cap(c.ptsBuf) < n {
		c.ptsBuf = make([]Vec2, n)
	}
	pts := c.ptsBuf[:n]
	for i := 0; i < n; i++ {
		x, y := c.mapping.ToScreen(seg.Thetas[i], seg.Radii[i]*seg.RadialFactor)
		pts[i] = Vec2{X: x, Y: y}
	}

	verts, inds := c.buildStrip(pts)
	if len(inds) == 0 {
		return
	}

	var op ebiten.DrawTrianglesOptions
	op.AntiAlias = true
	a := seg.Alpha
	for i := range verts {
		verts[i].ColorR = float32(c.StrokeColor.R)
		verts[i].ColorG = float32(c.StrokeColor.G)
		verts[i].ColorB = float32(c.StrokeColor.B)
		verts[i].ColorA = float32(a)
	}
	screen.DrawTriangles(verts, inds, ensureWhitePixel(), &op)
}

// buildStrip converts a polyline into a ribbon mesh of the compositor's
// stroke width. For N points: 2N vertices, 6(N-1) indices. Interior normals
// are the average of the adjacent segment normals, with a clamped miter so
// tight curvature near the spiral center cannot spike.
func (c *Compositor) buildStrip(points []Vec2) ([]ebiten.Vertex, []uint16) {
	n := len(points)
	numVerts := n * 2
	numInds := (n - 1) * 6

	if cap(c.verts) < numVerts {
		c.verts = make([]ebiten.Vertex, numVerts)
	}
	c.verts = c.verts[:numVerts]
	if cap(c.inds) < numInds {
		c.inds = make([]uint16, numInds)
	}
	c.inds = c.inds[:numInds]

	halfW := c.StrokeWidth / 2

	for i := 0; i < n; i++ {
		var nx, ny float64
		switch {
		case i == 0:
			nx, ny = perpendicular(points[0], points[1])
		case i == n-1:
			nx, ny = perpendicular(points[n-2], points[n-1])
		default:
			nx0, ny0 := perpendicular(points[i-1], points[i])
			nx1, ny1 := perpendicular(points[i], points[i+1])
			nx, ny = nx0+nx1, ny0+ny1
			ln := math.Sqrt(nx*nx + ny*ny)
			if ln > 1e-10 {
				nx /= ln
				ny /= ln
			}
			// Clamped miter: keep width through the bend, max 2x extension.
			dot := nx0*nx + ny0*ny
			if dot > 0.1 {
				scale := 1.0 / dot
				if scale > 2.0 {
					scale = 2.0
				}
				nx *= scale
				ny *= scale
			}
		}

		vi := i * 2
		c.verts[vi] = ebiten.Vertex{
			DstX:   float32(points[i].X + nx*halfW),
			DstY:   float32(points[i].Y + ny*halfW),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
		c.verts[vi+1] = ebiten.Vertex{
			DstX:   float32(points[i].X - nx*halfW),
			DstY:   float32(points[i].Y - ny*halfW),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
		}
	}

	for i := 0; i < n-1; i++ {
		ii := i * 6
		v := uint16(i * 2)
		c.inds[ii+0] = v
		c.inds[ii+1] = v + 1
		c.inds[ii+2] = v + 2
		c.inds[ii+3] = v + 1
		c.inds[ii+4] = v + 3
		c.inds[ii+5] = v + 2
	}

	return c.verts, c.inds
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	ln := math.Sqrt(dx*dx + dy*dy)
	if ln < 1e-10 {
		return 0, -1
	}
	return -dy / ln, dx / ln
}
