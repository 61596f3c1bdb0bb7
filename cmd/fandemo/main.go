// Command fandemo draws tessellated shapes with the fan renderer.
//
// Usage:
//
//	fandemo triangle            # one triangle, no uniform
//	fandemo circle              # aspect-corrected circle; Space toggles cursor following
//	fandemo circles             # 100,000 circles batched into one draw call
//	fandemo render -o out.png   # headless frame written to a PNG file
//	fandemo list-adapters       # adapters visible to the Vulkan backend
//
// Global flags select a YAML configuration (--config) and the log level
// (-v for info, --vv for debug).
package main

import (
	"log"
	"os"

	"github.com/gogpu/fan/config"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "fandemo"
	app.Usage = "draw tessellated shapes on the GPU"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "load settings from a YAML `FILE`",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   config.KindTriangle,
			Usage:  "draw a single triangle",
			Flags:  windowFlags,
			Action: sceneAction(config.KindTriangle),
		},
		{
			Name:  config.KindCircle,
			Usage: "draw an aspect-corrected circle that can follow the cursor",
			Description: `
Draw one tessellated circle. The aspect-ratio uniform keeps it round when the
window is resized. Press Space to toggle cursor following.`,
			Flags:  append(windowFlags, followFlag),
			Action: sceneAction(config.KindCircle),
		},
		{
			Name:  config.KindCircles,
			Usage: "draw many circles in one draw call",
			Flags: append(windowFlags,
				cli.IntFlag{
					Name:  "count, n",
					Usage: "number of circles",
				},
			),
			Action: sceneAction(config.KindCircles),
		},
		{
			Name:  "render",
			Usage: "render one frame without a window and save it as PNG",
			Flags: append(windowFlags,
				cli.StringFlag{
					Name:  "scene",
					Value: config.KindCircle,
					Usage: "scene to draw: triangle, circle or circles",
				},
				cli.StringFlag{
					Name:  "out, o",
					Value: "frame.png",
					Usage: "image filename for the rendered frame",
				},
			),
			Action: RenderFrame,
		},
		{
			Name:   "list-adapters",
			Usage:  "list GPU adapters",
			Action: ListAdapters,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fandemo: %v", err)
	}
}
