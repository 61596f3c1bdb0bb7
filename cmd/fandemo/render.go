package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/gogpu/fan/renderer"
	"github.com/gogpu/gputypes"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderFrame draws one frame of a scene into an offscreen texture and
// writes it to a PNG file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx, ctx.String("scene"))
	if err != nil {
		return err
	}

	src := renderer.StandaloneSource{
		NewInstance: renderer.VulkanInstance(),
		Power:       cfg.PowerPreference(),
	}
	opts := append(cfg.RendererOptions(), renderer.WithFormat(gputypes.TextureFormatRGBA8Unorm))

	start := time.Now()
	r, err := renderer.New(cfg.Shapes(), opts...).
		Init(src, renderer.NewOffscreenSurface(), cfg.Width, cfg.Height)
	if err != nil {
		return err
	}
	defer r.Destroy()
	initTime := time.Since(start)

	start = time.Now()
	if err := r.RenderFrame(); err != nil {
		return err
	}
	img, err := r.Snapshot()
	if err != nil {
		return err
	}
	frameTime := time.Since(start)

	out := ctx.String("out")
	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", out, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	displayFrameStats(r, initTime, frameTime, out)
	return nil
}

func displayFrameStats(r *renderer.Renderer, initTime, frameTime time.Duration, out string) {
	stats := r.LastFrame()
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Adapter", "Size", "Vertices", "Passes", "Draws", "Aspect", "Init", "Frame"})
	table.Append([]string{
		r.AdapterName(),
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.Vertices),
		fmt.Sprintf("%d", stats.RenderPasses),
		fmt.Sprintf("%d", stats.DrawCalls),
		fmt.Sprintf("%.4f", stats.Aspect),
		initTime.String(),
		frameTime.String(),
	})
	table.SetFooter([]string{"", "", "", "", "", "", "OUTPUT", out})
	table.Render()
	fmt.Print(buf.String())
}
