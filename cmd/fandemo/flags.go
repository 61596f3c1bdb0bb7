package main

import (
	"github.com/gogpu/fan/config"
	"github.com/urfave/cli"
)

var windowFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Usage: "surface width in pixels",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "surface height in pixels",
	},
	cli.IntFlag{
		Name:  "samples",
		Usage: "MSAA sample count (1 or 4)",
	},
	cli.StringFlag{
		Name:  "background, bg",
		Usage: "clear color: CSS name or #rrggbb",
	},
}

var followFlag = cli.BoolFlag{
	Name:  "follow",
	Usage: "start with cursor following enabled",
}

// loadConfig reads the --config file (or the defaults), switches to the
// scene kind and applies command-line overrides.
func loadConfig(ctx *cli.Context, kind string) (config.Config, error) {
	cfg := config.DefaultConfig()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return config.Config{}, err
		}
	}
	if kind != "" {
		cfg = cfg.WithScene(kind)
	}
	if cfg.Title == config.DefaultConfig().Title {
		cfg = cfg.WithTitle("fan: " + cfg.Scene.Kind)
	}

	if ctx.IsSet("width") || ctx.IsSet("height") {
		w, h := cfg.Width, cfg.Height
		if ctx.IsSet("width") {
			w = ctx.Int("width")
		}
		if ctx.IsSet("height") {
			h = ctx.Int("height")
		}
		cfg = cfg.WithSize(w, h)
	}
	if ctx.IsSet("samples") {
		cfg = cfg.WithSampleCount(uint32(ctx.Int("samples"))) //nolint:gosec // validated below
	}
	if ctx.IsSet("background") {
		cfg = cfg.WithBackground(ctx.String("background"))
	}
	if ctx.Bool("follow") {
		cfg = cfg.WithFollowPointer(true)
	}
	if ctx.IsSet("count") {
		cfg.Scene.Count = ctx.Int("count")
	}
	return cfg, cfg.Validate()
}
