package fan

import "math"

// Shape is a geometric description that can be tessellated into triangles.
//
// The set of implementations is closed to this package. Use [Circle],
// [Rectangle], [Polygon] or [Ring].
type Shape interface {
	// VertexCount returns the exact number of vertices AppendVertices adds.
	VertexCount() int

	// AppendVertices appends the shape's triangle list to dst and returns
	// the extended slice.
	AppendVertices(dst []Vertex) []Vertex

	shape()
}

// Movable is implemented by shapes that have a center and can be
// repositioned without changing their other parameters.
type Movable interface {
	Shape

	// MoveTo returns a copy of the shape centered at c.
	MoveTo(c Vertex) Shape
}

// Circle is a disc approximated by a triangle fan around Center.
//
// It produces 3*Segments vertices. Zero segments produce no geometry.
// Radius is not validated: a negative radius mirrors the disc through
// its center.
type Circle struct {
	Center   Vertex
	Radius   float32
	Segments int
}

func (Circle) shape() {}

// VertexCount returns 3*Segments, or 0 for non-positive segment counts.
func (c Circle) VertexCount() int {
	if c.Segments <= 0 {
		return 0
	}
	return 3 * c.Segments
}

// AppendVertices appends (center, p(i), p(i+1)) for every segment i.
func (c Circle) AppendVertices(dst []Vertex) []Vertex {
	n := c.Segments
	if n <= 0 {
		return dst
	}
	step := 2 * math.Pi / float64(n)
	prev := c.point(0)
	for i := 0; i < n; i++ {
		next := fanPoint(c, i+1, n, step)
		dst = append(dst, c.Center, prev, next)
		prev = next
	}
	return dst
}

// MoveTo returns a copy of the circle centered at center.
func (c Circle) MoveTo(center Vertex) Shape {
	c.Center = center
	return c
}

func (c Circle) point(angle float64) Vertex {
	return Vertex{
		c.Center[0] + c.Radius*float32(math.Cos(angle)),
		c.Center[1] + c.Radius*float32(math.Sin(angle)),
	}
}

// fanPoint returns rim point i of n. Index n wraps to the first point so the
// fan closes exactly.
func fanPoint(c Circle, i, n int, step float64) Vertex {
	if i == n {
		return c.point(0)
	}
	return c.point(float64(i) * step)
}

// Rectangle is an axis-aligned rectangle spanning Min to Max.
// It produces two counter-clockwise triangles (6 vertices).
type Rectangle struct {
	Min, Max Vertex
}

func (Rectangle) shape() {}

// VertexCount always returns 6.
func (Rectangle) VertexCount() int { return 6 }

// AppendVertices appends the two triangles covering the rectangle.
func (r Rectangle) AppendVertices(dst []Vertex) []Vertex {
	bl := r.Min
	br := Vertex{r.Max[0], r.Min[1]}
	tr := r.Max
	tl := Vertex{r.Min[0], r.Max[1]}
	return append(dst, bl, br, tr, bl, tr, tl)
}

// Polygon is a convex polygon, triangulated as a fan from Points[0].
//
// Points should be listed counter-clockwise. A polygon with N points
// produces 3*(N-2) vertices; fewer than 3 points produce none.
type Polygon struct {
	Points []Vertex
}

func (Polygon) shape() {}

// VertexCount returns 3*(len(Points)-2), or 0 for degenerate polygons.
func (p Polygon) VertexCount() int {
	if len(p.Points) < 3 {
		return 0
	}
	return 3 * (len(p.Points) - 2)
}

// AppendVertices appends the fan triangles (p0, pi, pi+1).
func (p Polygon) AppendVertices(dst []Vertex) []Vertex {
	if len(p.Points) < 3 {
		return dst
	}
	p0 := p.Points[0]
	for i := 1; i < len(p.Points)-1; i++ {
		dst = append(dst, p0, p.Points[i], p.Points[i+1])
	}
	return dst
}

// Ring is an annulus between Inner and Outer radius, used to draw circle
// outlines. Each segment is a quad split into two triangles, so a ring
// produces 6*Segments vertices.
type Ring struct {
	Center       Vertex
	Inner, Outer float32
	Segments     int
}

func (Ring) shape() {}

// VertexCount returns 6*Segments, or 0 for non-positive segment counts.
func (r Ring) VertexCount() int {
	if r.Segments <= 0 {
		return 0
	}
	return 6 * r.Segments
}

// AppendVertices appends two triangles per segment.
func (r Ring) AppendVertices(dst []Vertex) []Vertex {
	n := r.Segments
	if n <= 0 {
		return dst
	}
	inner := Circle{Center: r.Center, Radius: r.Inner, Segments: n}
	outer := Circle{Center: r.Center, Radius: r.Outer, Segments: n}
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		i0, o0 := fanPoint(inner, i, n, step), fanPoint(outer, i, n, step)
		i1, o1 := fanPoint(inner, i+1, n, step), fanPoint(outer, i+1, n, step)
		dst = append(dst, i0, o0, o1, i0, o1, i1)
	}
	return dst
}

// MoveTo returns a copy of the ring centered at center.
func (r Ring) MoveTo(center Vertex) Shape {
	r.Center = center
	return r
}
