package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// Point is a position in surface pixels. Y grows downward.
type Point struct {
	X, Y float64
}

// Canvas is a 2D raster with the fill and stroke operations the renderers need.
// Shapes are anti-aliased and composited over existing pixels; anything outside
// the canvas is clipped.
type Canvas struct {
	img  *image.RGBA
	rast *vector.Rasterizer
}

// NewCanvas allocates a canvas of the given size. Non-positive sizes yield an empty canvas.
func NewCanvas(width, height int) *Canvas {
	return &Canvas{
		img:  image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0))),
		rast: vector.NewRasterizer(0, 0),
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA {
	return c.img
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.img.Rect.Dx()
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.img.Rect.Dy()
}

// Clear replaces every pixel with col.
func (c *Canvas) Clear(col color.RGBA) {
	draw.Draw(c.img, c.img.Rect, image.NewUniform(col), image.Point{}, draw.Src)
}

// FillRect fills the rectangle with origin (x, y) and size (w, h).
// Negative sizes extend left or up, like a 2D canvas context.
func (c *Canvas) FillRect(x, y, w, h float64, col color.RGBA) {
	if w < 0 {
		x, w = x+w, -w
	}
	if h < 0 {
		y, h = y+h, -h
	}
	if w == 0 || h == 0 {
		return
	}

	if isIntegral(x, y, w, h) && col.A == 0xff {
		r := image.Rect(int(x), int(y), int(x+w), int(y+h)).Intersect(c.img.Rect)
		if !r.Empty() {
			draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
		}
		return
	}

	c.FillPolygon([]Point{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}, col)
}

// FillPolygon fills the closed polygon through pts.
func (c *Canvas) FillPolygon(pts []Point, col color.RGBA) {
	c.fillPaths([][]Point{pts}, col)
}

// StrokeSegment strokes a straight line of the given width with butt caps.
func (c *Canvas) StrokeSegment(a, b Point, width float64, col color.RGBA) {
	if quad, ok := segmentQuad(a, b, width); ok {
		c.fillPaths([][]Point{quad}, col)
	}
}

// StrokePolyline strokes connected segments through pts as one shape, so
// overlapping joints are not painted twice.
func (c *Canvas) StrokePolyline(pts []Point, width float64, col color.RGBA) {
	if len(pts) < 2 {
		return
	}
	paths := make([][]Point, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		if quad, ok := segmentQuad(pts[i-1], pts[i], width); ok {
			paths = append(paths, quad)
		}
	}
	c.fillPaths(paths, col)
}

// fillPaths rasterizes the union of closed paths within their clipped bounding box.
// Every path must wind the same way; coverage saturates where they overlap.
func (c *Canvas) fillPaths(paths [][]Point, col color.RGBA) {
	bounds := rectOf(c.img.Rect)

	clipped := make([][]Point, 0, len(paths))
	box := emptyBox()
	for _, p := range paths {
		p = clipPolygon(p, bounds)
		if len(p) < 3 {
			continue
		}
		clipped = append(clipped, p)
		for _, pt := range p {
			box = box.extend(pt)
		}
	}
	if len(clipped) == 0 {
		return
	}

	r := image.Rect(
		int(math.Floor(box.min.X)), int(math.Floor(box.min.Y)),
		int(math.Ceil(box.max.X)), int(math.Ceil(box.max.Y)),
	).Intersect(c.img.Rect)
	if r.Empty() {
		return
	}

	c.rast.Reset(r.Dx(), r.Dy())
	c.rast.DrawOp = draw.Over
	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	for _, p := range clipped {
		c.rast.MoveTo(float32(p[0].X-ox), float32(p[0].Y-oy))
		for _, pt := range p[1:] {
			c.rast.LineTo(float32(pt.X-ox), float32(pt.Y-oy))
		}
		c.rast.ClosePath()
	}
	c.rast.Draw(c.img, r, image.NewUniform(col), image.Point{})
}

// segmentQuad returns the rectangle covering a butt-capped stroke from a to b.
// All quads wind the same way regardless of direction.
func segmentQuad(a, b Point, width float64) ([]Point, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 || width <= 0 {
		return nil, false
	}
	half := width / 2
	nx, ny := -dy/length*half, dx/length*half
	return []Point{
		{a.X + nx, a.Y + ny},
		{b.X + nx, b.Y + ny},
		{b.X - nx, b.Y - ny},
		{a.X - nx, a.Y - ny},
	}, true
}

type box struct {
	min, max Point
}

func emptyBox() box {
	return box{
		min: Point{math.Inf(1), math.Inf(1)},
		max: Point{math.Inf(-1), math.Inf(-1)},
	}
}

func (b box) extend(p Point) box {
	b.min.X, b.min.Y = math.Min(b.min.X, p.X), math.Min(b.min.Y, p.Y)
	b.max.X, b.max.Y = math.Max(b.max.X, p.X), math.Max(b.max.Y, p.Y)
	return b
}

func rectOf(r image.Rectangle) box {
	return box{
		min: Point{float64(r.Min.X), float64(r.Min.Y)},
		max: Point{float64(r.Max.X), float64(r.Max.Y)},
	}
}

// clipPolygon clips a polygon to an axis-aligned box (Sutherland-Hodgman).
func clipPolygon(pts []Point, b box) []Point {
	edges := []struct {
		inside func(Point) bool
		cross  func(p, q Point) Point
	}{
		{func(p Point) bool { return p.X >= b.min.X }, func(p, q Point) Point { return atX(p, q, b.min.X) }},
		{func(p Point) bool { return p.X <= b.max.X }, func(p, q Point) Point { return atX(p, q, b.max.X) }},
		{func(p Point) bool { return p.Y >= b.min.Y }, func(p, q Point) Point { return atY(p, q, b.min.Y) }},
		{func(p Point) bool { return p.Y <= b.max.Y }, func(p, q Point) Point { return atY(p, q, b.max.Y) }},
	}

	out := pts
	for _, e := range edges {
		if len(out) == 0 {
			return nil
		}
		in := out
		out = make([]Point, 0, len(in)+2)
		prev := in[len(in)-1]
		for _, cur := range in {
			switch curIn, prevIn := e.inside(cur), e.inside(prev); {
			case curIn && prevIn:
				out = append(out, cur)
			case curIn:
				out = append(out, e.cross(prev, cur), cur)
			case prevIn:
				out = append(out, e.cross(prev, cur))
			}
			prev = cur
		}
	}
	return out
}

func atX(p, q Point, x float64) Point {
	t := (x - p.X) / (q.X - p.X)
	return Point{x, p.Y + t*(q.Y-p.Y)}
}

func atY(p, q Point, y float64) Point {
	t := (y - p.Y) / (q.Y - p.Y)
	return Point{p.X + t*(q.X-p.X), y}
}

func isIntegral(vs ...float64) bool {
	for _, v := range vs {
		if v != math.Trunc(v) {
			return false
		}
	}
	return true
}
