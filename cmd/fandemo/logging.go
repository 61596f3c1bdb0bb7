package main

import (
	"log/slog"
	"os"

	"github.com/gogpu/fan"
	"github.com/urfave/cli"
)

// setupLogging installs a text logger on stderr. Warnings are always shown;
// -v adds info and --vv adds debug output.
func setupLogging(ctx *cli.Context) {
	level := slog.LevelWarn
	if ctx.GlobalBool("v") {
		level = slog.LevelInfo
	}
	if ctx.GlobalBool("vv") {
		level = slog.LevelDebug
	}
	fan.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
