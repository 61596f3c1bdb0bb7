package renderer

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// msaaTarget is the multisampled color texture that resolves into the
// surface view. It follows the surface size.
type msaaTarget struct {
	tex    hal.Texture
	view   hal.TextureView
	width  uint32
	height uint32
}

// ensure recreates the texture when the size differs. A matching size is a no-op.
func (m *msaaTarget) ensure(device hal.Device, w, h uint32, o *options) error {
	if m.tex != nil && m.width == w && m.height == h {
		return nil
	}
	m.destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         o.label + "_msaa_color",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   o.sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        o.format,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("create MSAA color texture: %w", err)
	}
	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: o.label + "_msaa_color_view",
	})
	if err != nil {
		device.DestroyTexture(tex)
		return fmt.Errorf("create MSAA color texture view: %w", err)
	}
	m.tex, m.view = tex, view
	m.width, m.height = w, h
	return nil
}

func (m *msaaTarget) destroy(device hal.Device) {
	if m.view != nil {
		device.DestroyTextureView(m.view)
		m.view = nil
	}
	if m.tex != nil {
		device.DestroyTexture(m.tex)
		m.tex = nil
	}
	m.width, m.height = 0, 0
}
