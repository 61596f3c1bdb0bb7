package fan

import "math"

// Tessellate returns the triangle list for a single shape.
// A shape with no geometry (for example a circle with zero segments)
// yields an empty, non-nil slice.
func Tessellate(s Shape) []Vertex {
	return s.AppendVertices(make([]Vertex, 0, s.VertexCount()))
}

// TessellateAll concatenates the triangle lists of all shapes in order.
// The result is allocated once with the exact final length.
func TessellateAll(shapes ...Shape) []Vertex {
	out := make([]Vertex, 0, VertexCount(shapes...))
	for _, s := range shapes {
		out = s.AppendVertices(out)
	}
	Logger().Debug("fan: tessellated shapes", "shapes", len(shapes), "vertices", len(out))
	return out
}

// VertexCount returns the total number of vertices the shapes produce.
func VertexCount(shapes ...Shape) int {
	n := 0
	for _, s := range shapes {
		n += s.VertexCount()
	}
	return n
}

// Grid lays out count copies of base on a square grid centered on
// base.Center. Neighbouring circles are spacing apart (center to center).
// The last row may be partially filled.
func Grid(count int, base Circle, spacing float32) []Shape {
	if count <= 0 {
		return nil
	}
	cols := int(math.Ceil(math.Sqrt(float64(count))))
	rows := (count + cols - 1) / cols

	// Offsets that center the full grid on base.Center.
	originX := base.Center[0] - spacing*float32(cols-1)/2
	originY := base.Center[1] + spacing*float32(rows-1)/2

	shapes := make([]Shape, 0, count)
	for i := 0; i < count; i++ {
		col, row := i%cols, i/cols
		shapes = append(shapes, base.MoveTo(Vertex{
			originX + spacing*float32(col),
			originY - spacing*float32(row),
		}))
	}
	return shapes
}
