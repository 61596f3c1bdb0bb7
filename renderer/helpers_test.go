package renderer

import (
	"testing"

	"github.com/gogpu/fan"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
)

// noopSource returns a device source backed by the noop HAL backend.
func noopSource() StandaloneSource {
	return StandaloneSource{
		NewInstance: func() (hal.Instance, error) {
			api := noop.API{}
			return api.CreateInstance(nil)
		},
	}
}

// newTestRenderer initializes a renderer for shapes on a noop device with an
// offscreen surface. The renderer is destroyed when the test ends.
func newTestRenderer(t *testing.T, w, h int, shapes []fan.Shape, opts ...Option) *Renderer {
	t.Helper()
	r, err := New(shapes, opts...).Init(noopSource(), NewOffscreenSurface(), w, h)
	if err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(r.Destroy)
	return r
}

func unitCircle() []fan.Shape {
	return []fan.Shape{fan.Circle{Center: fan.Vertex{0, 0}, Radius: 0.05, Segments: 32}}
}
