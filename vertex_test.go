package fan

import "testing"

func TestEncodeVertices(t *testing.T) {
	verts := []Vertex{{1, -1}, {0.5, 0.25}, {-0.125, 2}}
	data := EncodeVertices(nil, verts)
	if len(data) != len(verts)*VertexStride {
		t.Fatalf("len = %d, want %d", len(data), len(verts)*VertexStride)
	}
	for i, want := range verts {
		if got := DecodeVertex(data, i); got != want {
			t.Errorf("vertex %d = %v, want %v", i, got, want)
		}
	}
	// 1.0f little-endian.
	if data[0] != 0x00 || data[1] != 0x00 || data[2] != 0x80 || data[3] != 0x3f {
		t.Errorf("first float bytes = % x, want 00 00 80 3f", data[:4])
	}
}

func TestEncodeVertices_ReusesCapacity(t *testing.T) {
	staging := make([]byte, 0, 64)
	data := EncodeVertices(staging, []Vertex{{1, 2}, {3, 4}})
	if &data[0] != &staging[:1][0] {
		t.Error("expected staging buffer to be reused")
	}
	if len(data) != 16 {
		t.Errorf("len = %d, want 16", len(data))
	}
	if got := EncodeVertices(staging, nil); len(got) != 0 {
		t.Errorf("empty input encoded to %d bytes", len(got))
	}
}

func TestPixelToNDC(t *testing.T) {
	tests := []struct {
		name          string
		x, y          float64
		width, height int
		want          Vertex
	}{
		{"top-left", 0, 0, 800, 600, Vertex{-1, 1}},
		{"bottom-right", 800, 600, 800, 600, Vertex{1, -1}},
		{"center", 400, 300, 800, 600, Vertex{0, 0}},
		{"quarter", 200, 450, 800, 600, Vertex{-0.5, -0.5}},
		{"zero size clamps", 1, 1, 0, 0, Vertex{1, -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PixelToNDC(tt.x, tt.y, tt.width, tt.height); !near(got, tt.want) {
				t.Errorf("PixelToNDC = %v, want %v", got, tt.want)
			}
		})
	}
}
