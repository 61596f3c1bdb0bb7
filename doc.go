// Package fan turns simple 2D shapes into triangle lists ready for the GPU.
//
// # Overview
//
// Every shape is described in normalized device coordinates (NDC) and
// tessellated into a flat list of [Vertex] values. Three consecutive vertices
// form one triangle, so the result can be uploaded as a vertex buffer and
// drawn with a single non-indexed draw call using triangle-list topology.
//
//	circle := fan.Circle{Radius: 0.05, Segments: 32}
//	verts := fan.Tessellate(circle) // 96 vertices
//	data := fan.EncodeVertices(nil, verts)
//
// # Shapes
//
// The set of shapes is closed: [Circle], [Rectangle], [Polygon] and [Ring].
// Each one knows how many vertices it produces and how to append them, so
// adding a shape never grows a type switch elsewhere.
//
// Circles are approximated by a triangle fan around the center: segment i
// spans the angles i*2π/n and (i+1)*2π/n. All triangles wind counter-clockwise
// in NDC (Y up), which lets the renderer enable back-face culling.
//
// # Rendering
//
// GPU submission lives in the renderer subpackage. This package is pure and
// has no GPU dependency; tessellation can be repeated at any time to rebuild
// geometry for moving shapes.
package fan
