// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import (
	"errors"
	"fmt"
	"image"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// SurfaceConfig describes the presentable target.
type SurfaceConfig struct {
	Width       uint32
	Height      uint32
	Format      gputypes.TextureFormat
	PresentMode PresentMode
	AlphaMode   AlphaMode
}

// Surface is the drawing target a renderer presents to.
//
// Configure is called once during initialization and again on every resize
// (and after a failed acquisition). Acquire returns the view for the next
// frame; Present hands the finished frame to the display.
type Surface interface {
	Configure(gpu *GPU, cfg SurfaceConfig) error
	Acquire() (hal.TextureView, error)
	Present() error
}

// errNoView is returned by ViewSurface.Acquire when the host has not
// provided a view for the current frame.
var errNoView = errors.New("renderer: no surface view for this frame")

// ViewSurface renders into views owned and presented by a windowing host.
// The host calls SetView with the swap-chain view of each frame before
// RenderFrame; presentation happens when the host's draw callback returns.
type ViewSurface struct {
	view hal.TextureView
	cfg  SurfaceConfig
}

// NewViewSurface returns an empty host-backed surface.
func NewViewSurface() *ViewSurface {
	return &ViewSurface{}
}

// SetView sets the view to render the next frame into. Passing nil clears it.
func (s *ViewSurface) SetView(view hal.TextureView) {
	s.view = view
}

// Config returns the last applied configuration.
func (s *ViewSurface) Config() SurfaceConfig {
	return s.cfg
}

// Configure records the configuration. The host resizes its own swap chain.
func (s *ViewSurface) Configure(_ *GPU, cfg SurfaceConfig) error {
	s.cfg = cfg
	return nil
}

// Acquire returns the view set for this frame.
func (s *ViewSurface) Acquire() (hal.TextureView, error) {
	if s.view == nil {
		return nil, errNoView
	}
	return s.view, nil
}

// Present releases the frame view. The host presents it.
func (s *ViewSurface) Present() error {
	s.view = nil
	return nil
}

// OffscreenSurface renders into a texture owned by the surface. The result
// can be read back with ReadPixels.
type OffscreenSurface struct {
	gpu  *GPU
	cfg  SurfaceConfig
	tex  hal.Texture
	view hal.TextureView
}

// NewOffscreenSurface returns an unconfigured offscreen surface.
func NewOffscreenSurface() *OffscreenSurface {
	return &OffscreenSurface{}
}

// Configure (re)creates the target texture if the size or format changed.
func (s *OffscreenSurface) Configure(gpu *GPU, cfg SurfaceConfig) error {
	if s.tex != nil && s.gpu == gpu && s.cfg == cfg {
		return nil
	}
	s.Destroy()
	s.gpu = gpu

	tex, err := gpu.Device.CreateTexture(&hal.TextureDescriptor{
		Label:         "offscreen_target",
		Size:          hal.Extent3D{Width: cfg.Width, Height: cfg.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        cfg.Format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create offscreen texture: %w", err)
	}
	view, err := gpu.Device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "offscreen_target_view",
	})
	if err != nil {
		gpu.Device.DestroyTexture(tex)
		return fmt.Errorf("create offscreen texture view: %w", err)
	}
	s.tex = tex
	s.view = view
	s.cfg = cfg
	return nil
}

// Acquire returns the target view.
func (s *OffscreenSurface) Acquire() (hal.TextureView, error) {
	if s.view == nil {
		return nil, errNoView
	}
	return s.view, nil
}

// Present is a no-op; the texture keeps the last frame.
func (s *OffscreenSurface) Present() error {
	return nil
}

// Size returns the configured dimensions.
func (s *OffscreenSurface) Size() (uint32, uint32) {
	return s.cfg.Width, s.cfg.Height
}

// ReadPixels copies the target texture to the CPU and returns it as RGBA.
// BGRA targets are swizzled.
func (s *OffscreenSurface) ReadPixels() (*image.RGBA, error) {
	if s.tex == nil {
		return nil, errNoView
	}
	device, queue := s.gpu.Device, s.gpu.Queue
	w, h := s.cfg.Width, s.cfg.Height

	// Buffer copies need BytesPerRow aligned to 256 bytes.
	const copyPitchAlignment = 256
	bytesPerRow := w * 4
	alignedBytesPerRow := (bytesPerRow + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
	stagingSize := uint64(alignedBytesPerRow) * uint64(h)

	staging, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: "offscreen_staging",
		Size:  stagingSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: staging: %w", ErrBuffer, err)
	}
	defer device.DestroyBuffer(staging)

	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "offscreen_readback"})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("offscreen_readback"); err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("begin encoding: %w", err)
	}
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(s.tex, staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow, RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: s.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: s.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	index, err := queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	if err := s.gpu.wait(index); err != nil {
		return nil, fmt.Errorf("%w: wait for GPU: %w", ErrSubmit, err)
	}

	mapping, err := device.MapBuffer(staging, 0, stagingSize)
	if err != nil {
		return nil, fmt.Errorf("readback: map staging: %w", err)
	}
	raw := make([]byte, stagingSize)
	copy(raw, unsafe.Slice((*byte)(mapping.Ptr), stagingSize))
	if err := device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("readback: unmap staging: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	swizzle := s.cfg.Format == gputypes.TextureFormatBGRA8Unorm
	for row := 0; row < int(h); row++ {
		src := raw[row*int(alignedBytesPerRow) : row*int(alignedBytesPerRow)+int(bytesPerRow)]
		dst := img.Pix[row*img.Stride : row*img.Stride+int(bytesPerRow)]
		copy(dst, src)
		if swizzle {
			for i := 0; i < len(dst); i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
	return img, nil
}

// Destroy releases the target texture. The surface can be configured again.
func (s *OffscreenSurface) Destroy() {
	if s.gpu == nil {
		return
	}
	if s.view != nil {
		s.gpu.Device.DestroyTextureView(s.view)
		s.view = nil
	}
	if s.tex != nil {
		s.gpu.Device.DestroyTexture(s.tex)
		s.tex = nil
	}
}
