package renderer

import (
	"fmt"
	"strings"

	"github.com/gogpu/gputypes"
)

// Option configures a Renderer during creation.
//
// Example:
//
//	pending := renderer.New(shapes,
//	    renderer.WithSampleCount(4),
//	    renderer.WithClearColor(gputypes.Color{R: 1, G: 1, B: 1, A: 1}),
//	)
type Option func(*options)

// PresentMode selects how finished frames are handed to the display.
type PresentMode int

const (
	// PresentModeFifo waits for vertical blank. Always supported.
	PresentModeFifo PresentMode = iota

	// PresentModeMailbox replaces the queued frame with the newest one.
	PresentModeMailbox

	// PresentModeImmediate presents without waiting; may tear.
	PresentModeImmediate
)

// String returns the lower-case mode name used in configuration files.
func (m PresentMode) String() string {
	switch m {
	case PresentModeMailbox:
		return "mailbox"
	case PresentModeImmediate:
		return "immediate"
	default:
		return "fifo"
	}
}

// ParsePresentMode returns the mode named by s as printed by String.
// The empty string selects PresentModeFifo.
func ParsePresentMode(s string) (PresentMode, error) {
	switch strings.ToLower(s) {
	case "", "fifo":
		return PresentModeFifo, nil
	case "mailbox":
		return PresentModeMailbox, nil
	case "immediate":
		return PresentModeImmediate, nil
	}
	return PresentModeFifo, fmt.Errorf("unknown present mode %q", s)
}

// AlphaMode selects how the compositor treats the surface alpha channel.
type AlphaMode int

const (
	// AlphaModeOpaque ignores alpha.
	AlphaModeOpaque AlphaMode = iota

	// AlphaModePremultiplied composites premultiplied colors.
	AlphaModePremultiplied
)

// options holds the renderer configuration.
type options struct {
	label         string
	aspectUniform bool
	shaderSource  string
	clearColor    gputypes.Color
	format        gputypes.TextureFormat
	sampleCount   uint32
	presentMode   PresentMode
	alphaMode     AlphaMode
	followPointer bool
}

// defaultOptions returns the default renderer configuration: aspect-ratio
// uniform on, BGRA8 surfaces, no multisampling, vsync presentation.
func defaultOptions() options {
	return options{
		label:         "fan",
		aspectUniform: true,
		clearColor:    gputypes.Color{R: 0.1, G: 0.2, B: 0.3, A: 1},
		format:        gputypes.TextureFormatBGRA8Unorm,
		sampleCount:   1,
		presentMode:   PresentModeFifo,
		alphaMode:     AlphaModeOpaque,
	}
}

// shader returns the configured WGSL source, or the built-in one matching
// the uniform setting.
func (o *options) shader() string {
	if o.shaderSource != "" {
		return o.shaderSource
	}
	if o.aspectUniform {
		return fanShaderSource
	}
	return fillShaderSource
}

// WithAspectUniform enables or disables the height/width uniform bound at
// group 0, binding 0. Custom shaders must declare the binding when enabled
// and must not declare it when disabled.
func WithAspectUniform(enabled bool) Option {
	return func(o *options) {
		o.aspectUniform = enabled
	}
}

// WithShaderSource replaces the built-in WGSL shader. The source must define
// the vs_main and fs_main entry points and read a vec2<f32> position at
// location 0.
func WithShaderSource(wgsl string) Option {
	return func(o *options) {
		o.shaderSource = wgsl
	}
}

// WithClearColor sets the background the render pass clears to.
func WithClearColor(c gputypes.Color) Option {
	return func(o *options) {
		o.clearColor = c
	}
}

// WithFormat sets the color format of the surface and the pipeline target.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(o *options) {
		o.format = f
	}
}

// WithSampleCount sets the MSAA sample count. Only 1 and 4 are accepted;
// other values fall back to 1. With 4 samples the renderer owns a
// multisampled color target that resolves into the surface view.
func WithSampleCount(n uint32) Option {
	return func(o *options) {
		if n != 4 {
			n = 1
		}
		o.sampleCount = n
	}
}

// WithPresentMode sets the present mode requested from the surface.
func WithPresentMode(m PresentMode) Option {
	return func(o *options) {
		o.presentMode = m
	}
}

// WithAlphaMode sets the surface alpha mode.
func WithAlphaMode(m AlphaMode) Option {
	return func(o *options) {
		o.alphaMode = m
	}
}

// WithLabel sets the prefix of GPU debug labels.
func WithLabel(label string) Option {
	return func(o *options) {
		if label != "" {
			o.label = label
		}
	}
}

// WithFollowPointer makes the first movable shape follow the cursor.
func WithFollowPointer(enabled bool) Option {
	return func(o *options) {
		o.followPointer = enabled
	}
}
