package fan

import (
	"encoding/binary"
	"math"

	"golang.org/x/image/math/f32"
)

// Vertex is a 2D position in normalized device coordinates.
//
// X runs from -1 (left) to +1 (right) and Y from -1 (bottom) to +1 (top).
type Vertex = f32.Vec2

// VertexStride is the byte size of one encoded vertex: two float32 values.
const VertexStride = 8

// EncodeVertices writes verts as little-endian float32 pairs into dst,
// growing it only when its capacity is too small, and returns the slice
// holding exactly len(verts)*VertexStride bytes.
func EncodeVertices(dst []byte, verts []Vertex) []byte {
	needed := len(verts) * VertexStride
	if cap(dst) < needed {
		dst = make([]byte, needed)
	} else {
		dst = dst[:needed]
	}
	for i, v := range verts {
		off := i * VertexStride
		binary.LittleEndian.PutUint32(dst[off:off+4], math.Float32bits(v[0]))
		binary.LittleEndian.PutUint32(dst[off+4:off+8], math.Float32bits(v[1]))
	}
	return dst
}

// DecodeVertex reads the vertex at index i from data produced by
// EncodeVertices.
func DecodeVertex(data []byte, i int) Vertex {
	off := i * VertexStride
	return Vertex{
		math.Float32frombits(binary.LittleEndian.Uint32(data[off : off+4])),
		math.Float32frombits(binary.LittleEndian.Uint32(data[off+4 : off+8])),
	}
}

// PixelToNDC maps a position in window pixels (origin top-left, Y down)
// to normalized device coordinates (origin center, Y up).
// Sizes below one pixel are treated as one pixel.
func PixelToNDC(x, y float64, width, height int) Vertex {
	w := float64(max(width, 1))
	h := float64(max(height, 1))
	return Vertex{
		float32(x/w*2 - 1),
		float32(1 - y/h*2),
	}
}
