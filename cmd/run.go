package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/toxichemicals/GO/holy-render/game"
	"github.com/toxichemicals/GO/holy-render/gpu"
	"github.com/toxichemicals/GO/holy-render/platform"
)

// Run opens a window and renders the configured scene until it is closed.
// The caller must have locked the main goroutine to its OS thread.
func Run(ctx *cli.Context) error {
	cfg, err := loadSettings(ctx)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(ctx, cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	opts := platform.DefaultOptions()
	opts.Width = cfg.Window.Width
	opts.Height = cfg.Window.Height
	opts.Title = cfg.Window.Title
	if cfg.Window.VSync {
		opts.SwapInterval = 1
	}

	win, err := platform.Open(opts)
	if err != nil {
		return err
	}
	defer win.Destroy()

	dev, err := gpu.NewGLDevice()
	if err != nil {
		return err
	}
	logger.Infof("OpenGL version %s", dev.Version())

	c := game.New(win, dev, os.DirFS(cfg.Resources.Root), cfg)
	if err = c.Initialize(); err != nil {
		return err
	}
	if err = c.Run(); err != nil {
		return err
	}

	displayFrameStats(c.Stats())
	return nil
}

func displayFrameStats(stats game.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Frames", "Wall time", "Avg FPS", "Avg cost", "Max cost", "Slept", "Overruns"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Frames),
		stats.Wall.String(),
		fmt.Sprintf("%.2f", stats.FPS()),
		stats.AvgCost().String(),
		stats.MaxCost.String(),
		stats.Slept.String(),
		fmt.Sprintf("%d", stats.Overruns),
	})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
