// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package renderer

import "errors"

// Package errors. Errors returned by this package wrap one of these
// sentinels; test with errors.Is.
var (
	// ErrNoAdapter is returned when no GPU adapter is available.
	ErrNoAdapter = errors.New("renderer: no GPU adapter available")

	// ErrDeviceCreation is returned when the adapter rejects device creation.
	ErrDeviceCreation = errors.New("renderer: device creation failed")

	// ErrNoHalProvider is returned when a shared device provider does not
	// expose HAL device and queue handles.
	ErrNoHalProvider = errors.New("renderer: provider does not expose HAL device")

	// ErrShaderCompile is returned when the shader source fails validation
	// or module creation.
	ErrShaderCompile = errors.New("renderer: shader compilation failed")

	// ErrPipeline is returned when layouts or the render pipeline cannot be created.
	ErrPipeline = errors.New("renderer: pipeline creation failed")

	// ErrBuffer is returned when a GPU buffer cannot be created.
	ErrBuffer = errors.New("renderer: buffer creation failed")

	// ErrSurfaceConfigure is returned when the surface cannot be configured.
	ErrSurfaceConfigure = errors.New("renderer: surface configuration failed")

	// ErrSurfaceAcquire is returned when no presentable view could be
	// acquired, even after reconfiguring the surface once.
	ErrSurfaceAcquire = errors.New("renderer: surface acquisition failed")

	// ErrSubmit is returned when frame encoding or submission fails.
	ErrSubmit = errors.New("renderer: frame submission failed")

	// ErrNoGeometry is returned when the shapes produce no vertices.
	ErrNoGeometry = errors.New("renderer: shapes produce no vertices")

	// ErrAlreadyInitialized is returned by a second Pending.Init call.
	ErrAlreadyInitialized = errors.New("renderer: already initialized")

	// ErrNotOffscreen is returned by Snapshot when the surface cannot be read back.
	ErrNotOffscreen = errors.New("renderer: surface does not support readback")
)
