package main

import (
	"os"
	"runtime"

	"github.com/urfave/cli"

	"github.com/toxichemicals/GO/holy-render/cmd"
	"github.com/toxichemicals/GO/holy-render/log"
)

func init() {
	// GLFW and GL calls must come from the main thread.
	runtime.LockOSThread()
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	settingsFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "YAML settings file",
		},
		cli.StringFlag{
			Name:  "res",
			Value: "Res",
			Usage: "resource root containing shaders.config, Shaders/, Textures/ and Models/",
		},
	}

	app := cli.NewApp()
	app.Name = "holy-render"
	app.Usage = "render a lit grid of meshes with a fly camera"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
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
			Name:  "run",
			Usage: "open a window and render the scene",
			Description: `
Load the shaders listed in shaders.config, the geometry and the textures from
the resource root, then render until escape is pressed or the window closes.

Movement: W/S forward and back, A/D left and right, Q/E down and up.
Hold the right mouse button to look around.`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: 1280,
					Usage: "window width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: 720,
					Usage: "window height",
				},
				cli.IntFlag{
					Name:  "fps",
					Value: 60,
					Usage: "target frame rate",
				},
				cli.BoolFlag{
					Name:  "vsync",
					Usage: "wait for vertical sync on buffer swaps",
				},
			}, settingsFlags...),
			Action: cmd.Run,
		},
		{
			Name:   "check",
			Usage:  "validate the shader config, shader sources, textures and geometry without opening a window",
			Flags:  settingsFlags,
			Action: cmd.Check,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New("holy-render").Error(err)
		os.Exit(1)
	}
}
