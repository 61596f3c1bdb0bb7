package renderer

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/gogpu/fan"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// uniformSize is the byte size of Uniforms on the GPU: one f32.
const uniformSize = 4

// Uniforms holds the per-frame shader parameters.
type Uniforms struct {
	// Aspect is height/width of the surface. The vertex stage multiplies
	// x by it so shapes keep their proportions.
	Aspect float32
}

// AspectFor returns height/width with both dimensions clamped to at least 1.
func AspectFor(width, height int) float32 {
	return float32(max(height, 1)) / float32(max(width, 1))
}

func (u Uniforms) bytes() []byte {
	b := make([]byte, uniformSize)
	binary.LittleEndian.PutUint32(b, math.Float32bits(u.Aspect))
	return b
}

// PointerState is the last known cursor position.
type PointerState struct {
	// Position is the cursor in normalized device coordinates.
	Position fan.Vertex

	// Valid is false until the first cursor event.
	Valid bool
}

// uniformBinding is the uniform buffer and the bind group exposing it.
type uniformBinding struct {
	buf       hal.Buffer
	bindGroup hal.BindGroup
	values    Uniforms
}

// newUniformBinding creates the uniform buffer and its bind group for layout.
func newUniformBinding(device hal.Device, layout hal.BindGroupLayout, label string) (*uniformBinding, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_uniform",
		Size:  uniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: uniform: %w", ErrBuffer, err)
	}
	bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_uniform_bind",
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buf.NativeHandle(), Offset: 0, Size: uniformSize,
			}},
		},
	})
	if err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("%w: uniform bind group: %w", ErrPipeline, err)
	}
	return &uniformBinding{buf: buf, bindGroup: bindGroup}, nil
}

// write uploads u. The cached values change only on success.
func (b *uniformBinding) write(queue hal.Queue, u Uniforms) error {
	if err := queue.WriteBuffer(b.buf, 0, u.bytes()); err != nil {
		return fmt.Errorf("%w: upload uniform: %w", ErrBuffer, err)
	}
	b.values = u
	return nil
}

func (b *uniformBinding) destroy(device hal.Device) {
	device.DestroyBindGroup(b.bindGroup)
	device.DestroyBuffer(b.buf)
}
