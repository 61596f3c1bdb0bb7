package fan

import (
	"math"
	"testing"
)

const tolerance = 1e-5

func near(a, b Vertex) bool {
	return math.Abs(float64(a[0]-b[0])) <= tolerance && math.Abs(float64(a[1]-b[1])) <= tolerance
}

func dist(a, b Vertex) float64 {
	dx := float64(a[0] - b[0])
	dy := float64(a[1] - b[1])
	return math.Sqrt(dx*dx + dy*dy)
}

func TestCircle_VertexCount(t *testing.T) {
	for _, n := range []int{3, 4, 7, 32, 100, 1000} {
		c := Circle{Center: Vertex{0.25, -0.5}, Radius: 0.3, Segments: n}
		got := Tessellate(c)
		if len(got) != 3*n {
			t.Errorf("segments=%d: got %d vertices, want %d", n, len(got), 3*n)
		}
		if c.VertexCount() != len(got) {
			t.Errorf("segments=%d: VertexCount()=%d, tessellated %d", n, c.VertexCount(), len(got))
		}
	}
}

func TestCircle_TriplesStartAtCenter(t *testing.T) {
	c := Circle{Center: Vertex{-0.2, 0.7}, Radius: 0.1, Segments: 16}
	verts := Tessellate(c)
	for i := 0; i < len(verts); i += 3 {
		if verts[i] != c.Center {
			t.Fatalf("triple %d starts at %v, want center %v", i/3, verts[i], c.Center)
		}
	}
}

func TestCircle_RimPointsAtRadius(t *testing.T) {
	tests := []struct {
		name   string
		radius float32
	}{
		{"unit", 1},
		{"small", 0.05},
		{"large", 3.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Circle{Center: Vertex{0.1, 0.2}, Radius: tt.radius, Segments: 24}
			verts := Tessellate(c)
			for i := 0; i < len(verts); i += 3 {
				for _, p := range verts[i+1 : i+3] {
					if d := dist(p, c.Center); math.Abs(d-float64(tt.radius)) > tolerance {
						t.Errorf("triple %d: distance %v, want %v", i/3, d, tt.radius)
					}
				}
			}
		})
	}
}

func TestCircle_FanHasNoGaps(t *testing.T) {
	n := 12
	verts := Tessellate(Circle{Radius: 0.5, Segments: n})
	for i := 0; i < n; i++ {
		prev := (i - 1 + n) % n
		second := verts[3*i+1]
		prevThird := verts[3*prev+2]
		if !near(second, prevThird) {
			t.Errorf("triple %d second point %v != triple %d third point %v", i, second, prev, prevThird)
		}
	}
}

func TestCircle_FirstAngleIsZero(t *testing.T) {
	verts := Tessellate(Circle{Radius: 2, Segments: 4})
	want := []Vertex{
		{0, 0}, {2, 0}, {0, 2},
		{0, 0}, {0, 2}, {-2, 0},
		{0, 0}, {-2, 0}, {0, -2},
		{0, 0}, {0, -2}, {2, 0},
	}
	for i := range want {
		if !near(verts[i], want[i]) {
			t.Errorf("vertex %d = %v, want %v", i, verts[i], want[i])
		}
	}
}

func TestCircle_ZeroSegments(t *testing.T) {
	for _, n := range []int{0, -3} {
		got := Tessellate(Circle{Radius: 1, Segments: n})
		if got == nil || len(got) != 0 {
			t.Errorf("segments=%d: got %v, want empty non-nil slice", n, got)
		}
	}
}

func TestCircle_NegativeRadiusMirrors(t *testing.T) {
	pos := Tessellate(Circle{Radius: 0.5, Segments: 8})
	neg := Tessellate(Circle{Radius: -0.5, Segments: 8})
	if len(pos) != len(neg) {
		t.Fatalf("length mismatch: %d vs %d", len(pos), len(neg))
	}
	for i := range pos {
		mirrored := Vertex{-pos[i][0], -pos[i][1]}
		if !near(neg[i], mirrored) {
			t.Errorf("vertex %d = %v, want mirrored %v", i, neg[i], mirrored)
		}
	}
}

// signedArea returns twice the signed area of triangle abc; positive means
// counter-clockwise.
func signedArea(a, b, c Vertex) float32 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

func TestShapes_CounterClockwise(t *testing.T) {
	tests := []struct {
		name  string
		shape Shape
		want  int
	}{
		{"circle", Circle{Radius: 0.4, Segments: 10}, 30},
		{"rectangle", Rectangle{Min: Vertex{-0.5, -0.25}, Max: Vertex{0.5, 0.25}}, 6},
		{"triangle", Polygon{Points: []Vertex{{-0.5, -0.5}, {0.5, -0.5}, {0, 0.5}}}, 3},
		{"pentagon", Polygon{Points: []Vertex{{1, 0}, {0.3, 0.95}, {-0.8, 0.6}, {-0.8, -0.6}, {0.3, -0.95}}}, 9},
		{"ring", Ring{Inner: 0.3, Outer: 0.4, Segments: 8}, 48},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verts := Tessellate(tt.shape)
			if len(verts) != tt.want {
				t.Fatalf("got %d vertices, want %d", len(verts), tt.want)
			}
			for i := 0; i < len(verts); i += 3 {
				if a := signedArea(verts[i], verts[i+1], verts[i+2]); a <= 0 {
					t.Errorf("triangle %d is not counter-clockwise (area %v)", i/3, a)
				}
			}
		})
	}
}

func TestPolygon_Degenerate(t *testing.T) {
	tests := []struct {
		name   string
		points []Vertex
	}{
		{"nil", nil},
		{"one point", []Vertex{{0, 0}}},
		{"two points", []Vertex{{0, 0}, {1, 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Polygon{Points: tt.points}
			if p.VertexCount() != 0 {
				t.Errorf("VertexCount() = %d, want 0", p.VertexCount())
			}
			if got := Tessellate(p); len(got) != 0 {
				t.Errorf("got %d vertices, want 0", len(got))
			}
		})
	}
}

func TestRing_PointsBetweenRadii(t *testing.T) {
	r := Ring{Center: Vertex{0.1, 0.1}, Inner: 0.2, Outer: 0.25, Segments: 16}
	for i, v := range Tessellate(r) {
		d := dist(v, r.Center)
		if d < 0.2-tolerance || d > 0.25+tolerance {
			t.Errorf("vertex %d at distance %v outside [0.2, 0.25]", i, d)
		}
	}
}

func TestTessellateAll(t *testing.T) {
	shapes := []Shape{
		Circle{Radius: 0.1, Segments: 5},
		Rectangle{Min: Vertex{0, 0}, Max: Vertex{1, 1}},
		Circle{Radius: 0.1, Segments: 0},
	}
	got := TessellateAll(shapes...)
	if want := VertexCount(shapes...); len(got) != want || want != 21 {
		t.Fatalf("got %d vertices, VertexCount %d, want 21", len(got), want)
	}
	if cap(got) != len(got) {
		t.Errorf("cap = %d, want exact allocation %d", cap(got), len(got))
	}
	// The rectangle follows the 15 circle vertices.
	if got[15] != (Vertex{0, 0}) {
		t.Errorf("vertex 15 = %v, want rectangle corner (0, 0)", got[15])
	}
}

func TestMovable(t *testing.T) {
	var m Movable = Circle{Radius: 0.1, Segments: 3}
	moved := m.MoveTo(Vertex{0.5, -0.5}).(Circle)
	if moved.Center != (Vertex{0.5, -0.5}) || moved.Radius != 0.1 || moved.Segments != 3 {
		t.Errorf("MoveTo produced %+v", moved)
	}

	m = Ring{Inner: 0.1, Outer: 0.2, Segments: 3}
	ring := m.MoveTo(Vertex{1, 1}).(Ring)
	if ring.Center != (Vertex{1, 1}) || ring.Outer != 0.2 {
		t.Errorf("MoveTo produced %+v", ring)
	}
}

func TestGrid(t *testing.T) {
	base := Circle{Radius: 0.01, Segments: 8}
	shapes := Grid(4, base, 0.1)
	if len(shapes) != 4 {
		t.Fatalf("got %d shapes, want 4", len(shapes))
	}
	want := []Vertex{{-0.05, 0.05}, {0.05, 0.05}, {-0.05, -0.05}, {0.05, -0.05}}
	for i, s := range shapes {
		c := s.(Circle)
		if !near(c.Center, want[i]) {
			t.Errorf("circle %d at %v, want %v", i, c.Center, want[i])
		}
		if c.Radius != base.Radius || c.Segments != base.Segments {
			t.Errorf("circle %d changed parameters: %+v", i, c)
		}
	}
}

func TestGrid_PartialRow(t *testing.T) {
	shapes := Grid(5, Circle{Segments: 3}, 1)
	if len(shapes) != 5 {
		t.Fatalf("got %d shapes, want 5", len(shapes))
	}
	if got := VertexCount(shapes...); got != 45 {
		t.Errorf("VertexCount = %d, want 45", got)
	}
	if Grid(0, Circle{}, 1) != nil {
		t.Error("Grid(0) should be nil")
	}
}
