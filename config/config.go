// Package config loads the renderer settings file.
package config

import (
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/toxichemicals/GO/holy-render/log"
	"github.com/toxichemicals/GO/holy-render/material"
)

// Movement policies.
const (
	MoveOverwrite = "overwrite"
	MoveAdditive  = "additive"
)

var ErrInvalid = errors.New("config: invalid settings")

type Config struct {
	Window    Window    `yaml:"window"`
	FPS       int       `yaml:"fps"`
	Resources Resources `yaml:"resources"`
	Scene     Scene     `yaml:"scene"`
	Camera    Camera    `yaml:"camera"`
	Movement  Movement  `yaml:"movement"`
	Log       Log       `yaml:"log"`
}

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
	VSync  bool   `yaml:"vsync"`
}

// Resources locates everything loaded from disk. Paths other than Root are
// relative to Root.
type Resources struct {
	Root         string  `yaml:"root"`
	ShaderConfig string  `yaml:"shaderConfig"`
	Shaders      string  `yaml:"shaders"`
	Textures     string  `yaml:"textures"`
	Geometry     string  `yaml:"geometry"`
	Detail       []Layer `yaml:"detail,omitempty"`
}

// Layer is a per-mesh texture layer. Path is relative to the texture
// directory.
type Layer struct {
	Path string `yaml:"path"`
	Role string `yaml:"role"`
}

type Scene struct {
	Grid        int        `yaml:"grid"`
	MeshShader  string     `yaml:"meshShader"`
	MeshScale   float32    `yaml:"meshScale"`
	Lights      int        `yaml:"lights"`
	LightShader string     `yaml:"lightShader"`
	LightScale  float32    `yaml:"lightScale"`
	LightOrigin mgl32.Vec3 `yaml:"lightOrigin"`
	Ambient     mgl32.Vec3 `yaml:"ambient"`
	Seed        int64      `yaml:"seed"`
}

// Camera angles are in degrees.
type Camera struct {
	Position mgl32.Vec3 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`
	Pitch    float32    `yaml:"pitch"`
	FOV      float32    `yaml:"fov"`
	Near     float32    `yaml:"near"`
	Far      float32    `yaml:"far"`
}

// Log selects the log sink and verbosity. An empty File logs to stdout.
// Modules maps logger names (asset, shader, game, ...) to their own level.
type Log struct {
	Level   string            `yaml:"level"`
	File    string            `yaml:"file"`
	Modules map[string]string `yaml:"modules,omitempty"`
}

type Movement struct {
	Policy string  `yaml:"policy"`
	Speed  float32 `yaml:"speed"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Window: Window{Width: 1280, Height: 720, Title: "holy-render"},
		FPS:    60,
		Resources: Resources{
			Root:         "Res",
			ShaderConfig: "shaders.config",
			Shaders:      "Shaders",
			Textures:     "Textures",
			Geometry:     "Models/cube.obj",
			Detail: []Layer{
				{Path: "wood.png", Role: "base"},
				{Path: "grunge.png", Role: "detail"},
				{Path: "box-alpha.png", Role: "mask"},
			},
		},
		Scene: Scene{
			Grid:        10,
			MeshShader:  "crate",
			MeshScale:   .5,
			Lights:      4,
			LightShader: "sphere",
			LightScale:  1,
			LightOrigin: mgl32.Vec3{3.5, 0, -.5},
			Ambient:     mgl32.Vec3{.1, .1, .1},
			Seed:        1,
		},
		Camera: Camera{
			Position: mgl32.Vec3{7, -.25, 1.25},
			Yaw:      180,
			FOV:      45,
			Near:     .1,
			Far:      100,
		},
		Movement: Movement{Policy: MoveOverwrite, Speed: 1},
		Log:      Log{Level: "notice"},
	}
}

// Load reads path over the defaults. Unknown keys are rejected. An empty
// path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config: could not open %q", path)
	}
	defer f.Close()

	if err = cfg.decode(f); err != nil {
		return Config{}, errors.Wrapf(err, "config: parsing %q", path)
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return err
	}
	return c.Validate()
}

// Validate checks that the settings describe a runnable scene.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return errors.Wrapf(ErrInvalid, "window size %dx%d", c.Window.Width, c.Window.Height)
	case c.FPS <= 0:
		return errors.Wrapf(ErrInvalid, "fps %d", c.FPS)
	case c.Resources.Geometry == "":
		return errors.Wrap(ErrInvalid, "no geometry file")
	case c.Scene.Grid < 0 || c.Scene.Lights < 0:
		return errors.Wrapf(ErrInvalid, "grid %d with %d lights", c.Scene.Grid, c.Scene.Lights)
	case c.Scene.Grid > 0 && c.Scene.Lights == 0:
		return errors.Wrap(ErrInvalid, "meshes need at least one light")
	case c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near:
		return errors.Wrapf(ErrInvalid, "clip planes %v..%v", c.Camera.Near, c.Camera.Far)
	case c.Movement.Policy != MoveOverwrite && c.Movement.Policy != MoveAdditive:
		return errors.Wrapf(ErrInvalid, "movement policy %q", c.Movement.Policy)
	case c.Movement.Speed <= 0:
		return errors.Wrapf(ErrInvalid, "movement speed %v", c.Movement.Speed)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrapf(ErrInvalid, "log level: %v", err)
	}
	for module, level := range c.Log.Modules {
		if _, err := log.ParseLevel(level); err != nil {
			return errors.Wrapf(ErrInvalid, "log level of %q: %v", module, err)
		}
	}
	for _, l := range c.Resources.Detail {
		if _, err := material.ParseRole(l.Role); err != nil {
			return errors.Wrapf(ErrInvalid, "detail layer %q: %v", l.Path, err)
		}
	}
	return nil
}
