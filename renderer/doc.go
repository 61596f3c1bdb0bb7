// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package renderer draws tessellated fan shapes with one render pass and one
// draw call per frame, using the gogpu/wgpu HAL directly.
//
// # Lifecycle
//
// A renderer has two states, expressed as two types:
//
//	pending := renderer.New(shapes, renderer.WithSampleCount(4))   // Uninitialized
//	r, err := pending.Init(source, surface, width, height)         // Ready
//	if err != nil {
//	    log.Fatalf("renderer: %v", err)
//	}
//	defer r.Destroy()
//
// [Pending.Init] runs exactly once. It acquires a device from the
// [DeviceSource], tessellates the shapes, uploads the vertex buffer, compiles
// the shader, creates the optional aspect-ratio uniform and the pipeline, and
// finally configures the [Surface]. A [Renderer] returned by Init has every
// resource in place; none of its methods check for missing state.
//
// # Frames
//
// [Renderer.Resize] reconfigures the surface and re-uploads the aspect ratio
// (height/width) read by the vertex shader. [Renderer.RenderFrame] acquires the
// next surface view, clears it, binds the pipeline, the uniform bind group and
// the vertex buffer, issues a single Draw over the full vertex range, submits
// and presents.
//
// # Devices and surfaces
//
// [StandaloneSource] creates its own instance and selects a hardware adapter
// when one exists. [SharedSource] borrows the device of a host framework such
// as gogpu. [OffscreenSurface] renders into a texture that can be read back;
// [ViewSurface] renders into views handed over by a windowing host.
//
// A Renderer is not safe for concurrent use. All calls must come from the
// thread that runs the host event loop.
package renderer
