package main

import (
	"log"

	"github.com/gogpu/fan"
	"github.com/gogpu/fan/config"
	"github.com/gogpu/fan/renderer"
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
	"github.com/urfave/cli"
)

// sceneAction returns the action of a windowed scene command.
func sceneAction(kind string) func(*cli.Context) error {
	return func(ctx *cli.Context) error {
		setupLogging(ctx)
		cfg, err := loadConfig(ctx, kind)
		if err != nil {
			return err
		}
		return runWindow(cfg)
	}
}

// surfaceView returns the HAL view behind a frame's swap-chain view, or nil
// if the host has none for this frame.
func surfaceView(v *wgpu.TextureView) hal.TextureView {
	if v == nil {
		return nil
	}
	return v.HalTextureView()
}

// sceneHost routes window input to a renderer. Frames are drawn on demand:
// every input that changes what is on screen asks the host for a redraw.
type sceneHost struct {
	kind          string
	r             *renderer.Renderer
	requestRedraw func()
}

// pointerMoved records the cursor and requests a redraw if the frame changed.
func (h *sceneHost) pointerMoved(x, y float64) error {
	if h.r == nil {
		return nil
	}
	if err := h.r.MovePointer(x, y); err != nil {
		return err
	}
	fan.Logger().Debug("fandemo: pointer", "x", x, "y", y, "ndc", h.r.Pointer().Position)
	h.redrawIfNeeded()
	return nil
}

// keyPressed toggles cursor following on Space. The triangle has no
// movable shape, so it ignores the key.
func (h *sceneHost) keyPressed(key gpucontext.Key) error {
	if key != gpucontext.KeySpace || h.r == nil || h.kind == config.KindTriangle {
		return nil
	}
	follow := !h.r.FollowPointer()
	if err := h.r.SetFollowPointer(follow); err != nil {
		return err
	}
	fan.Logger().Info("fandemo: cursor following", "enabled", follow)
	h.redrawIfNeeded()
	return nil
}

func (h *sceneHost) redrawIfNeeded() {
	if h.r.NeedsRedraw() && h.requestRedraw != nil {
		h.requestRedraw()
	}
}

// runWindow opens a window and draws the configured scene until it is
// closed. Any renderer failure aborts the process.
func runWindow(cfg config.Config) error {
	app := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithContinuousRender(false))

	shapes := cfg.Shapes()
	opts := cfg.RendererOptions()
	surface := renderer.NewViewSurface()
	host := &sceneHost{kind: cfg.Scene.Kind, requestRedraw: app.RequestRedraw}

	app.OnDraw(func(dc *gogpu.Context) {
		if host.r == nil {
			provider := app.GPUContextProvider()
			if provider == nil {
				app.RequestRedraw()
				return
			}
			pending := renderer.New(shapes,
				append(opts, renderer.WithFormat(provider.SurfaceFormat()))...)
			r, err := pending.Init(renderer.SharedSource{Provider: provider}, surface, dc.Width(), dc.Height())
			if err != nil {
				log.Fatalf("fandemo: init renderer: %v", err)
			}
			host.r = r
			fan.Logger().Info("fandemo: renderer ready",
				"scene", cfg.Scene.Kind,
				"shapes", len(shapes),
				"vertices", r.VertexCount())
		}

		sw, sh := dc.SurfaceSize()
		if err := host.r.Resize(int(sw), int(sh)); err != nil {
			log.Fatalf("fandemo: resize: %v", err)
		}
		view := surfaceView(dc.SurfaceView())
		if view == nil {
			fan.Logger().Debug("fandemo: no surface view, frame skipped")
			return
		}
		surface.SetView(view)
		if err := host.r.RenderFrame(); err != nil {
			log.Fatalf("fandemo: frame: %v", err)
		}
	})

	events := app.EventSource()
	events.OnMouseMove(func(x, y float64) {
		if err := host.pointerMoved(x, y); err != nil {
			log.Fatalf("fandemo: pointer: %v", err)
		}
	})
	events.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
		if err := host.keyPressed(key); err != nil {
			log.Fatalf("fandemo: follow pointer: %v", err)
		}
	})

	app.OnClose(func() {
		if host.r != nil {
			f := host.r.LastFrame()
			fan.Logger().Info("fandemo: closing", "frames", f.Index, "aspect", f.Aspect)
			host.r.Destroy()
		}
	})

	return app.Run()
}
