package cmd

import (
	"github.com/urfave/cli"

	"github.com/toxichemicals/GO/holy-render/config"
)

// loadSettings reads the settings file named by --config and applies any
// command line overrides on top.
func loadSettings(ctx *cli.Context) (config.Config, error) {
	cfg, err := config.Load(ctx.String("config"))
	if err != nil {
		return config.Config{}, err
	}

	if ctx.IsSet("width") {
		cfg.Window.Width = ctx.Int("width")
	}
	if ctx.IsSet("height") {
		cfg.Window.Height = ctx.Int("height")
	}
	if ctx.IsSet("fps") {
		cfg.FPS = ctx.Int("fps")
	}
	if ctx.IsSet("res") {
		cfg.Resources.Root = ctx.String("res")
	}
	if ctx.IsSet("vsync") {
		cfg.Window.VSync = ctx.Bool("vsync")
	}

	return cfg, cfg.Validate()
}
