// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import (
	"fmt"
	"image"

	"github.com/gogpu/fan"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Pending is a renderer that has not acquired any GPU resources yet.
// Init turns it into a ready Renderer exactly once.
type Pending struct {
	shapes []fan.Shape
	opts   options
	done   bool
}

// New returns a pending renderer for shapes. No GPU work happens until Init.
func New(shapes []fan.Shape, opts ...Option) *Pending {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Pending{
		shapes: append([]fan.Shape(nil), shapes...),
		opts:   o,
	}
}

// Init acquires a device from src and builds every resource needed to draw:
// vertex buffer, shader, optional uniform buffer and bind group, pipeline and
// MSAA target. It then configures surface at width x height (each clamped to
// at least 1).
//
// Init blocks until the device is ready. On failure everything created so
// far is released and the error wraps one of the package sentinels.
// A second call returns ErrAlreadyInitialized.
func (p *Pending) Init(src DeviceSource, surface Surface, width, height int) (*Renderer, error) {
	if p.done {
		return nil, ErrAlreadyInitialized
	}
	if fan.VertexCount(p.shapes...) == 0 {
		return nil, ErrNoGeometry
	}
	p.done = true

	gpu, err := src.Acquire()
	if err != nil {
		return nil, err
	}

	r := &Renderer{
		opts:    p.opts,
		gpu:     gpu,
		surface: surface,
		follow:  p.opts.followPointer,
	}
	if err := r.build(p.shapes, width, height); err != nil {
		r.Destroy()
		return nil, err
	}

	slogger().Info("renderer: ready",
		"adapter", gpu.AdapterName,
		"vertices", r.vertCount,
		"width", r.width, "height", r.height,
		"samples", r.opts.sampleCount,
		"uniform", r.uniform != nil)
	return r, nil
}

// Renderer draws the uploaded shapes with one render pass and one draw
// call per frame. Create it with New and Pending.Init.
//
// Renderer is not safe for concurrent use.
type Renderer struct {
	opts    options
	gpu     *GPU
	surface Surface

	pipe      *pipeline
	uniform   *uniformBinding // nil when the aspect uniform is disabled
	msaa      *msaaTarget     // nil without multisampling
	vertBuf   hal.Buffer
	vertSize  uint64
	vertCount uint32
	staging   []byte
	shapes    []fan.Shape

	width, height int
	pointer       PointerState
	follow        bool
	redraw        bool
	frame         FrameStats
	destroyed     bool
}

// FrameStats describes the last submitted frame.
type FrameStats struct {
	// Index counts submitted frames, starting at 1.
	Index uint64

	RenderPasses int
	DrawCalls    int

	// Vertices is the vertex count of the draw call.
	Vertices uint32

	// Aspect is the uniform value the frame was drawn with, or 0 when the
	// uniform is disabled.
	Aspect float32

	Width, Height int
}

// build creates all resources in initialization order.
func (r *Renderer) build(shapes []fan.Shape, width, height int) error {
	if err := r.SetShapes(shapes...); err != nil {
		return err
	}

	pipe, err := createPipeline(r.gpu.Device, &r.opts)
	if err != nil {
		return err
	}
	r.pipe = pipe

	if r.opts.aspectUniform {
		u, err := newUniformBinding(r.gpu.Device, r.pipe.uniformLayout, r.opts.label)
		if err != nil {
			return err
		}
		r.uniform = u
	}
	if r.opts.sampleCount > 1 {
		r.msaa = &msaaTarget{}
	}
	return r.configure(max(width, 1), max(height, 1))
}

// configure applies a size to the surface, the MSAA target and the uniform.
func (r *Renderer) configure(w, h int) error {
	if err := r.surface.Configure(r.gpu, r.surfaceConfig(w, h)); err != nil {
		return fmt.Errorf("%w: %w", ErrSurfaceConfigure, err)
	}
	if r.msaa != nil {
		if err := r.msaa.ensure(r.gpu.Device, uint32(w), uint32(h), &r.opts); err != nil { //nolint:gosec // clamped positive
			return fmt.Errorf("%w: %w", ErrSurfaceConfigure, err)
		}
	}
	r.width, r.height = w, h
	if r.uniform != nil {
		if err := r.uniform.write(r.gpu.Queue, Uniforms{Aspect: AspectFor(w, h)}); err != nil {
			return err
		}
	}
	r.redraw = true
	slogger().Debug("renderer: surface configured", "width", w, "height", h)
	return nil
}

func (r *Renderer) surfaceConfig(w, h int) SurfaceConfig {
	return SurfaceConfig{
		Width:       uint32(w), //nolint:gosec // clamped positive
		Height:      uint32(h), //nolint:gosec // clamped positive
		Format:      r.opts.format,
		PresentMode: r.opts.presentMode,
		AlphaMode:   r.opts.alphaMode,
	}
}

// Resize reconfigures the surface for the new size. Dimensions below 1 are
// clamped to 1, so minimized windows (0x0) are safe. The aspect uniform is
// recomputed and uploaded, and a redraw is requested. Repeating the current
// size does nothing.
func (r *Renderer) Resize(width, height int) error {
	w, h := max(width, 1), max(height, 1)
	if w == r.width && h == r.height {
		return nil
	}
	return r.configure(w, h)
}

// SetShapes replaces the geometry: the shapes are tessellated again and
// uploaded. The vertex buffer is recreated only when its size changes, so
// moving a shape reuses it. The draw range always equals the uploaded data.
func (r *Renderer) SetShapes(shapes ...fan.Shape) error {
	verts := fan.TessellateAll(shapes...)
	if len(verts) == 0 {
		return ErrNoGeometry
	}
	r.staging = fan.EncodeVertices(r.staging, verts)
	size := uint64(len(r.staging))

	if r.vertBuf == nil || size != r.vertSize {
		buf, err := r.gpu.Device.CreateBuffer(&hal.BufferDescriptor{
			Label: r.opts.label + "_vertices",
			Size:  size,
			Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("%w: vertices: %w", ErrBuffer, err)
		}
		if r.vertBuf != nil {
			r.gpu.Device.DestroyBuffer(r.vertBuf)
		}
		r.vertBuf = buf
		r.vertSize = size
		slogger().Debug("renderer: vertex buffer allocated", "bytes", size)
	}
	if err := r.gpu.Queue.WriteBuffer(r.vertBuf, 0, r.staging); err != nil {
		return fmt.Errorf("%w: upload vertices: %w", ErrBuffer, err)
	}
	r.vertCount = uint32(len(verts)) //nolint:gosec // vertex count fits uint32
	r.shapes = append(r.shapes[:0], shapes...)
	r.redraw = true
	return nil
}

// MovePointer records a cursor position given in window pixels and requests
// a redraw. When pointer following is on, the first movable shape is moved
// to the cursor and the geometry is uploaded again.
func (r *Renderer) MovePointer(x, y float64) error {
	r.pointer = PointerState{
		Position: fan.PixelToNDC(x, y, r.width, r.height),
		Valid:    true,
	}
	r.redraw = true
	if !r.follow {
		return nil
	}
	return r.followPointer()
}

// SetFollowPointer turns pointer following on or off. Turning it on with a
// known cursor position moves the shape immediately.
func (r *Renderer) SetFollowPointer(enabled bool) error {
	r.follow = enabled
	if enabled && r.pointer.Valid {
		return r.followPointer()
	}
	return nil
}

// FollowPointer reports whether pointer following is on.
func (r *Renderer) FollowPointer() bool {
	return r.follow
}

// followPointer moves the first movable shape to the cursor. The vertex
// stage scales x by the aspect ratio, so the target x is divided by it to
// land under the cursor.
func (r *Renderer) followPointer() error {
	target := r.pointer.Position
	if r.uniform != nil {
		target[0] /= r.uniform.values.Aspect
	}
	shapes := append([]fan.Shape(nil), r.shapes...)
	for i, s := range shapes {
		if m, ok := s.(fan.Movable); ok {
			shapes[i] = m.MoveTo(target)
			return r.SetShapes(shapes...)
		}
	}
	return nil
}

// RenderFrame draws one frame: acquire the surface view, clear it, bind
// pipeline, uniform and vertex buffer, draw the full vertex range, submit,
// wait for completion and present.
//
// If the surface cannot provide a view, it is reconfigured and acquisition
// is retried once; a second failure returns ErrSurfaceAcquire.
func (r *Renderer) RenderFrame() error {
	view, err := r.acquire()
	if err != nil {
		return err
	}

	device := r.gpu.Device
	encoder, err := device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: r.opts.label + "_encoder",
	})
	if err != nil {
		return fmt.Errorf("%w: create command encoder: %w", ErrSubmit, err)
	}
	if err := encoder.BeginEncoding(r.opts.label + "_frame"); err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("%w: begin encoding: %w", ErrSubmit, err)
	}

	color := hal.RenderPassColorAttachment{
		View:       view,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: r.opts.clearColor,
	}
	if r.msaa != nil {
		color.View = r.msaa.view
		color.ResolveTarget = view
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            r.opts.label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{color},
	})
	rp.SetPipeline(r.pipe.pipeline)
	if r.uniform != nil {
		rp.SetBindGroup(0, r.uniform.bindGroup, nil)
	}
	rp.SetVertexBuffer(0, r.vertBuf, 0)
	rp.Draw(r.vertCount, 1, 0, 0)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		encoder.DiscardEncoding()
		return fmt.Errorf("%w: end encoding: %w", ErrSubmit, err)
	}
	defer device.FreeCommandBuffer(cmdBuf)

	index, err := r.gpu.Queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSubmit, err)
	}
	// Presentation must not start before the pass has finished.
	if err := r.gpu.wait(index); err != nil {
		return fmt.Errorf("%w: wait for GPU: %w", ErrSubmit, err)
	}
	if err := r.surface.Present(); err != nil {
		return fmt.Errorf("%w: present: %w", ErrSubmit, err)
	}

	r.frame = FrameStats{
		Index:        r.frame.Index + 1,
		RenderPasses: 1,
		DrawCalls:    1,
		Vertices:     r.vertCount,
		Aspect:       r.Uniforms().Aspect,
		Width:        r.width,
		Height:       r.height,
	}
	r.redraw = false
	return nil
}

// acquire returns the next surface view, reconfiguring once on failure.
func (r *Renderer) acquire() (hal.TextureView, error) {
	view, err := r.surface.Acquire()
	if err == nil {
		return view, nil
	}
	slogger().Warn("renderer: surface acquisition failed, reconfiguring", "err", err)
	if cerr := r.surface.Configure(r.gpu, r.surfaceConfig(r.width, r.height)); cerr != nil {
		return nil, fmt.Errorf("%w: reconfigure: %w", ErrSurfaceAcquire, cerr)
	}
	view, err = r.surface.Acquire()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceAcquire, err)
	}
	return view, nil
}

// Uniforms returns the last uploaded uniform values. The zero value is
// returned when the uniform is disabled.
func (r *Renderer) Uniforms() Uniforms {
	if r.uniform == nil {
		return Uniforms{}
	}
	return r.uniform.values
}

// Pointer returns the last cursor position.
func (r *Renderer) Pointer() PointerState {
	return r.pointer
}

// Size returns the configured surface size.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// VertexCount returns the number of uploaded vertices.
func (r *Renderer) VertexCount() uint32 {
	return r.vertCount
}

// Shapes returns a copy of the shapes currently uploaded.
func (r *Renderer) Shapes() []fan.Shape {
	return append([]fan.Shape(nil), r.shapes...)
}

// LastFrame returns statistics of the last submitted frame.
func (r *Renderer) LastFrame() FrameStats {
	return r.frame
}

// NeedsRedraw reports whether state changed since the last frame.
func (r *Renderer) NeedsRedraw() bool {
	return r.redraw
}

// AdapterName returns the name of the adapter in use.
func (r *Renderer) AdapterName() string {
	return r.gpu.AdapterName
}

// Snapshot reads the last frame back from a surface that supports readback,
// such as OffscreenSurface.
func (r *Renderer) Snapshot() (*image.RGBA, error) {
	s, ok := r.surface.(interface{ ReadPixels() (*image.RGBA, error) })
	if !ok {
		return nil, ErrNotOffscreen
	}
	return s.ReadPixels()
}

// Destroy releases all GPU resources in reverse creation order and returns
// the device to its source. Safe to call multiple times. The renderer must
// not be used afterwards.
func (r *Renderer) Destroy() {
	if r.destroyed {
		return
	}
	r.destroyed = true
	device := r.gpu.Device

	if s, ok := r.surface.(interface{ Destroy() }); ok {
		s.Destroy()
	}
	if r.msaa != nil {
		r.msaa.destroy(device)
	}
	if r.uniform != nil {
		r.uniform.destroy(device)
	}
	if r.pipe != nil {
		r.pipe.destroy(device)
	}
	if r.vertBuf != nil {
		device.DestroyBuffer(r.vertBuf)
		r.vertBuf = nil
	}
	r.gpu.Release()
}
