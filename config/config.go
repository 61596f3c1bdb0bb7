// Package config holds the settings of the fan programs: window, surface and
// scene. Settings start from DefaultConfig, may be overridden by a YAML file
// (Load) and are adjusted with the With* builder methods.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"github.com/gogpu/fan"
	"github.com/gogpu/fan/renderer"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation error.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Scene kinds.
const (
	KindTriangle = "triangle"
	KindCircle   = "circle"
	KindCircles  = "circles"
)

// Power preferences.
const (
	PowerHighPerformance = "high-performance"
	PowerLowPower        = "low-power"
)

// maxFileSize bounds configuration files read by Load.
const maxFileSize = 1 << 20

// Config is the complete program configuration.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	// Background is the clear color: a CSS color name ("darkslateblue")
	// or "#rrggbb".
	Background string `yaml:"background"`

	// SampleCount is 1 or 4. When omitted it is the default of the scene
	// kind (see DefaultSampleCount).
	SampleCount uint32 `yaml:"sample_count"`

	// PresentMode is fifo, mailbox or immediate.
	PresentMode string `yaml:"present_mode"`

	// Power is high-performance or low-power.
	Power string `yaml:"power"`

	Scene Scene `yaml:"scene"`
}

// Scene describes what is drawn.
type Scene struct {
	// Kind is triangle, circle or circles.
	Kind string `yaml:"kind"`

	// Segments and Radius describe each circle.
	Segments int     `yaml:"segments"`
	Radius   float32 `yaml:"radius"`

	// Count and Spacing lay out the circles scene on a grid. A zero
	// spacing fits the grid into the viewport.
	Count   int     `yaml:"count"`
	Spacing float32 `yaml:"spacing"`

	// FollowPointer moves the circle with the cursor.
	FollowPointer bool `yaml:"follow_pointer"`
}

// DefaultConfig returns the configuration of the circle program.
func DefaultConfig() Config {
	return Config{
		Title:       "fan",
		Width:       800,
		Height:      600,
		Background:  "#1a334d",
		SampleCount: 1,
		PresentMode: renderer.PresentModeFifo.String(),
		Power:       PowerHighPerformance,
		Scene:       SceneFor(KindCircle),
	}
}

// SceneFor returns the default scene of the given kind. Unknown kinds
// return a Scene with only Kind set, which fails validation.
func SceneFor(kind string) Scene {
	switch kind {
	case KindTriangle:
		return Scene{Kind: KindTriangle}
	case KindCircle:
		return Scene{Kind: KindCircle, Segments: 32, Radius: 0.05}
	case KindCircles:
		return Scene{Kind: KindCircles, Segments: 12, Radius: 0.002, Count: 100_000}
	}
	return Scene{Kind: kind}
}

// DefaultSampleCount returns the MSAA sample count a scene kind starts
// with. The dense circles grid is multisampled.
func DefaultSampleCount(kind string) uint32 {
	if kind == KindCircles {
		return 4
	}
	return 1
}

// withDefaults fills zero fields from the defaults of the scene kind.
func (s Scene) withDefaults() Scene {
	if s.Kind == "" {
		s.Kind = KindCircle
	}
	d := SceneFor(s.Kind)
	if s.Segments == 0 {
		s.Segments = d.Segments
	}
	if s.Radius == 0 {
		s.Radius = d.Radius
	}
	if s.Count == 0 {
		s.Count = d.Count
	}
	return s
}

// WithTitle returns a copy with the window title set.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize returns a copy with the window size set.
func (c Config) WithSize(width, height int) Config {
	c.Width, c.Height = width, height
	return c
}

// WithBackground returns a copy with the clear color set.
func (c Config) WithBackground(color string) Config {
	c.Background = color
	return c
}

// WithSampleCount returns a copy with the MSAA sample count set.
func (c Config) WithSampleCount(n uint32) Config {
	c.SampleCount = n
	return c
}

// WithPresentMode returns a copy with the present mode set.
func (c Config) WithPresentMode(m renderer.PresentMode) Config {
	c.PresentMode = m.String()
	return c
}

// WithPower returns a copy with the adapter power preference set.
func (c Config) WithPower(power string) Config {
	c.Power = power
	return c
}

// WithScene returns a copy drawing the default scene of kind. Scene
// fields already customised for the same kind are kept. A sample count
// still at the default of the old kind takes the default of the new one.
func (c Config) WithScene(kind string) Config {
	if c.Scene.Kind != kind {
		if c.SampleCount == DefaultSampleCount(c.Scene.Kind) {
			c.SampleCount = DefaultSampleCount(kind)
		}
		follow := c.Scene.FollowPointer
		c.Scene = SceneFor(kind)
		c.Scene.FollowPointer = follow
	}
	return c
}

// WithFollowPointer returns a copy with pointer following set.
func (c Config) WithFollowPointer(enabled bool) Config {
	c.Scene.FollowPointer = enabled
	return c
}

// Load reads a YAML file on top of DefaultConfig and validates the result.
// Scene fields missing from the file take the defaults of the scene kind.
func Load(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if info.Size() > maxFileSize {
		return Config{}, fmt.Errorf("%w: %s is larger than %d bytes", ErrInvalidConfig, path, maxFileSize)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML data on top of DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	c := DefaultConfig()
	c.Scene = Scene{}
	c.SampleCount = 0
	if err := yaml.Unmarshal(data, &c); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c.Scene = c.Scene.withDefaults()
	if c.SampleCount == 0 {
		c.SampleCount = DefaultSampleCount(c.Scene.Kind)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// FieldError reports an invalid field. It wraps ErrInvalidConfig.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return "config: invalid " + e.Field + ": " + e.Reason
}

// Unwrap returns ErrInvalidConfig.
func (e *FieldError) Unwrap() error {
	return ErrInvalidConfig
}

// Validate checks all fields and returns the first problem found.
func (c *Config) Validate() error {
	if c.Width < 1 || c.Height < 1 {
		return &FieldError{Field: "size", Reason: fmt.Sprintf("%dx%d must be positive", c.Width, c.Height)}
	}
	if _, err := ParseColor(c.Background); err != nil {
		return &FieldError{Field: "background", Reason: err.Error()}
	}
	if c.SampleCount != 1 && c.SampleCount != 4 {
		return &FieldError{Field: "sample_count", Reason: "must be 1 or 4"}
	}
	if _, err := renderer.ParsePresentMode(c.PresentMode); err != nil {
		return &FieldError{Field: "present_mode", Reason: err.Error()}
	}
	switch c.Power {
	case "", PowerHighPerformance, PowerLowPower:
	default:
		return &FieldError{Field: "power", Reason: strconv.Quote(c.Power) + " is not high-performance or low-power"}
	}
	return c.Scene.validate()
}

func (s *Scene) validate() error {
	switch s.Kind {
	case KindTriangle:
		return nil
	case KindCircle, KindCircles:
	default:
		return &FieldError{Field: "scene.kind", Reason: strconv.Quote(s.Kind) + " is not triangle, circle or circles"}
	}
	if s.Segments < 3 {
		return &FieldError{Field: "scene.segments", Reason: "must be at least 3"}
	}
	if s.Radius <= 0 {
		return &FieldError{Field: "scene.radius", Reason: "must be positive"}
	}
	if s.Kind == KindCircles && s.Count < 1 {
		return &FieldError{Field: "scene.count", Reason: "must be positive"}
	}
	if s.Spacing < 0 {
		return &FieldError{Field: "scene.spacing", Reason: "must not be negative"}
	}
	return nil
}

// ParseColor parses a CSS color name or a "#rrggbb" hex triplet.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("color %q is neither a name nor #rrggbb", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil //nolint:gosec // masked by width
}

// Shapes builds the shapes of the configured scene.
func (c *Config) Shapes() []fan.Shape {
	s := c.Scene.withDefaults()
	switch s.Kind {
	case KindTriangle:
		return []fan.Shape{fan.Polygon{Points: []fan.Vertex{
			{0, 0.5}, {-0.5, -0.5}, {0.5, -0.5},
		}}}
	case KindCircles:
		base := fan.Circle{Radius: s.Radius, Segments: s.Segments}
		spacing := s.Spacing
		if spacing == 0 {
			spacing = gridSpacing(s.Count)
		}
		return fan.Grid(s.Count, base, spacing)
	default:
		return []fan.Shape{fan.Circle{Radius: s.Radius, Segments: s.Segments}}
	}
}

// gridSpacing fits count circles into the central 90% of the viewport.
func gridSpacing(count int) float32 {
	cols := 1
	for cols*cols < count {
		cols++
	}
	return 1.8 / float32(cols)
}

// PowerPreference maps Power to the renderer adapter preference.
func (c *Config) PowerPreference() renderer.PowerPreference {
	if c.Power == PowerLowPower {
		return renderer.PowerLowPower
	}
	return renderer.PowerHighPerformance
}

// RendererOptions returns the renderer options for this configuration.
// The triangle scene has no uniform; the others use the aspect uniform.
// Call Validate first: invalid values fall back to renderer defaults.
func (c *Config) RendererOptions() []renderer.Option {
	opts := []renderer.Option{
		renderer.WithLabel(c.Scene.Kind),
		renderer.WithSampleCount(c.SampleCount),
		renderer.WithAspectUniform(c.Scene.Kind != KindTriangle),
		renderer.WithFollowPointer(c.Scene.FollowPointer),
	}
	if bg, err := ParseColor(c.Background); err == nil {
		opts = append(opts, renderer.WithClearColor(gputypes.Color{
			R: float64(bg.R) / 255,
			G: float64(bg.G) / 255,
			B: float64(bg.B) / 255,
			A: 1,
		}))
	}
	if m, err := renderer.ParsePresentMode(c.PresentMode); err == nil {
		opts = append(opts, renderer.WithPresentMode(m))
	}
	return opts
}
