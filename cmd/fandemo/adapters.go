package main

import (
	"fmt"
	"os"

	"github.com/gogpu/fan/config"
	"github.com/gogpu/fan/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// ListAdapters prints the adapters of the Vulkan backend and marks the one
// the render command would use.
func ListAdapters(ctx *cli.Context) error {
	setupLogging(ctx)

	cfg, err := loadConfig(ctx, "")
	if err != nil {
		return err
	}
	infos, err := renderer.ListAdapters(renderer.VulkanInstance(), cfg.PowerPreference())
	if err != nil {
		return err
	}

	fmt.Printf("\nVulkan backend provides %d adapter(s), power preference %s:\n\n", len(infos), powerName(cfg))
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"#", "Name", "Type", "Selected"})
	for i, info := range infos {
		selected := ""
		if info.Selected {
			selected = "*"
		}
		table.Append([]string{fmt.Sprintf("%02d", i), info.Name, info.Kind, selected})
	}
	table.Render()
	return nil
}

func powerName(cfg config.Config) string {
	if cfg.Power == "" {
		return config.PowerHighPerformance
	}
	return cfg.Power
}
