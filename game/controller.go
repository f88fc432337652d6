// Package game runs the frame loop: it builds the scene, moves the camera
// from keyboard and pointer input and paces rendering to a target rate.
package game

import (
	"fmt"
	"io/fs"
	"math/rand"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/toxichemicals/GO/holy-render/asset"
	"github.com/toxichemicals/GO/holy-render/camera"
	"github.com/toxichemicals/GO/holy-render/config"
	"github.com/toxichemicals/GO/holy-render/gpu"
	"github.com/toxichemicals/GO/holy-render/log"
	"github.com/toxichemicals/GO/holy-render/material"
	"github.com/toxichemicals/GO/holy-render/mesh"
	"github.com/toxichemicals/GO/holy-render/platform"
	"github.com/toxichemicals/GO/holy-render/shader"
)

var logger = log.New("game")

// State is the lifecycle stage of a Controller.
type State uint8

const (
	Uninitialized State = iota
	Initialized
	Running
	Terminated
)

func (s State) String() string {
	switch s {
	case Initialized:
		return "initialized"
	case Running:
		return "running"
	case Terminated:
		return "terminated"
	}
	return "uninitialized"
}

// Controller owns the scene and drives the frame loop on a window it is
// handed. It does not own the window.
type Controller struct {
	win  platform.Window
	res  *gpu.Resources
	fsys fs.FS
	cfg  config.Config

	state  State
	policy MovePolicy
	camera *camera.Camera
	pacer  *Pacer
	look   Look
	fps    fpsCounter

	table  *shader.Table
	lights mesh.Lights
	meshes []*mesh.Mesh
	order  []*mesh.Mesh

	// Meshes whose render error has already been logged.
	failed map[*mesh.Mesh]bool
}

// New creates a controller rendering to win through dev. Resource paths in
// cfg are resolved inside fsys.
func New(win platform.Window, dev gpu.Device, fsys fs.FS, cfg config.Config) *Controller {
	return &Controller{
		win:    win,
		res:    gpu.NewResources(dev),
		fsys:   fsys,
		cfg:    cfg,
		pacer:  NewPacer(cfg.FPS),
		look:   Look{Button: platform.MouseRight},
		failed: make(map[*mesh.Mesh]bool),
	}
}

// Initialize prepares the render state and the camera. It must run exactly
// once before Run.
func (c *Controller) Initialize() error {
	if c.state != Uninitialized {
		return errors.Wrapf(ErrAlreadyInitialized, "state %s", c.state)
	}
	policy, err := ParsePolicy(c.cfg.Movement.Policy)
	if err != nil {
		return err
	}
	c.policy = policy

	dev := c.res.Device()
	dev.SetClearColor(.1, .1, .1, 1)
	dev.EnableDepthTest()
	dev.EnableAlphaBlending()
	c.win.SetStickyKeys(true)

	res := c.win.Resolution()
	dev.Viewport(res.Width, res.Height)
	c.camera = camera.New(res, camera.Options{
		Position: c.cfg.Camera.Position,
		Yaw:      c.cfg.Camera.Yaw,
		Pitch:    c.cfg.Camera.Pitch,
		FOV:      c.cfg.Camera.FOV,
		Near:     c.cfg.Camera.Near,
		Far:      c.cfg.Camera.Far,
	})
	c.win.OnResize(c.resize)

	c.state = Initialized
	logger.Noticef("initialized %dx%d, target %d fps, %s movement", res.Width, res.Height, c.cfg.FPS, c.policy)
	return nil
}

func (c *Controller) resize(res platform.Resolution) {
	c.res.Device().Viewport(res.Width, res.Height)
	c.camera.Resize(res)
	logger.Debugf("resized to %dx%d", res.Width, res.Height)
}

// Run builds the scene and renders until escape is pressed or the window is
// asked to close. Everything it created is released before it returns.
func (c *Controller) Run() error {
	if c.state != Initialized {
		return errors.Wrapf(ErrNotInitialized, "state %s", c.state)
	}
	c.state = Running
	defer func() { c.state = Terminated }()

	if err := c.setup(); err != nil {
		c.cleanup()
		return err
	}
	logger.Noticef("scene ready: %d lights, %d meshes, %d shaders", c.lights.Len(), len(c.meshes), c.table.Len())

	c.pacer.Start()
	c.fps.last = c.pacer.Now()
	for {
		c.frame()
		if c.win.KeyPressed(platform.KeyEscape) || c.win.ShouldClose() {
			break
		}
	}

	logger.Noticef("loop exited: %s", c.pacer.Stats())
	return c.cleanup()
}

func (c *Controller) setup() error {
	rc := c.cfg.Resources
	f, err := c.fsys.Open(rc.ShaderConfig)
	if err != nil {
		return errors.Wrap(err, "game: shader config")
	}
	entries, err := shader.ParseConfig(f)
	f.Close()
	if err != nil {
		return err
	}

	dirs := shader.Dirs{Shaders: rc.Shaders, Textures: rc.Textures}
	if c.table, err = shader.Build(c.res, c.fsys, dirs, entries); err != nil {
		return err
	}

	geo, err := asset.LoadGeometry(c.fsys, rc.Geometry)
	if err != nil {
		return err
	}

	detail := make([]mesh.LayerSpec, 0, len(rc.Detail))
	for _, l := range rc.Detail {
		role, err := material.ParseRole(l.Role)
		if err != nil {
			return err
		}
		detail = append(detail, mesh.LayerSpec{Path: dirs.TexturePath(l.Path), Role: role})
	}

	res := c.win.Resolution()
	factory := &mesh.Factory{
		Res:      c.res,
		Textures: gpu.TextureLoader{Res: c.res, FS: c.fsys},
		Detail:   detail,
		Width:    res.Width,
		Height:   res.Height,
	}

	if err = c.createLights(factory, geo); err != nil {
		return err
	}
	return c.createGrid(factory, geo)
}

func (c *Controller) program(name string) (*shader.Program, error) {
	p, ok := c.table.Lookup(name)
	if !ok {
		return nil, errors.Wrapf(ErrUnknownShader, "%q (have %v)", name, c.table.Names())
	}
	return p, nil
}

func (c *Controller) createLights(factory *mesh.Factory, geo *mesh.Geometry) error {
	sc := c.cfg.Scene
	if sc.Lights == 0 {
		return nil
	}
	prog, err := c.program(sc.LightShader)
	if err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(sc.Seed))
	for i := 0; i < sc.Lights; i++ {
		m, err := factory.Create(prog, geo)
		if err != nil {
			return errors.Wrapf(err, "game: light %d", i)
		}
		c.lights.Add(m)
		m.SetPosition(sc.LightOrigin.Add(mgl32.Vec3{0, float32(i)/1.5 - 1, 0}))
		m.SetScale(mgl32.Vec3{sc.LightScale, sc.LightScale, sc.LightScale})
		m.SetLightColor(mgl32.Vec3{rng.Float32(), rng.Float32(), rng.Float32()})
	}
	return nil
}

func (c *Controller) createGrid(factory *mesh.Factory, geo *mesh.Geometry) error {
	sc := c.cfg.Scene
	if sc.Grid == 0 {
		return nil
	}
	prog, err := c.program(sc.MeshShader)
	if err != nil {
		return err
	}

	for row := 0; row < sc.Grid; row++ {
		for col := 0; col < sc.Grid; col++ {
			m, err := factory.Create(prog, geo)
			if err != nil {
				return errors.Wrapf(err, "game: mesh %d,%d", row, col)
			}
			c.meshes = append(c.meshes, m)
			m.SetScale(mgl32.Vec3{sc.MeshScale, sc.MeshScale, sc.MeshScale})
			m.SetPosition(mgl32.Vec3{0, -.5 + float32(row)/10, -.2 + float32(col)/10}.Mul(5))
			if sc.Lights > 0 {
				m.SetLight((row*sc.Grid + col) % sc.Lights)
			}
		}
	}
	return nil
}

func (c *Controller) frame() {
	c.res.Device().Clear()

	view, proj := c.camera.View(), c.camera.Projection()
	env := mesh.Environment{
		Time:    float32(c.win.Time()),
		Ambient: c.cfg.Scene.Ambient,
		Lights:  &c.lights,
	}
	for _, m := range c.lights.Meshes() {
		c.render(m, view, proj, env)
	}
	for _, m := range c.backToFront() {
		c.render(m, view, proj, env)
	}

	c.win.SwapBuffers()
	c.win.PollEvents()

	dt := c.pacer.State().Seconds()
	c.camera.Displace(Displacement(c.win, c.camera, c.policy, dt, c.cfg.Movement.Speed))
	c.look.Update(c.win, c.camera)

	if fps, ok := c.fps.tick(c.pacer.Now()); ok {
		c.win.SetTitle(fmt.Sprintf("%s | FPS: %.2f", c.cfg.Window.Title, fps))
	}

	c.pacer.Pace()
}

// backToFront orders the regular meshes by decreasing distance from the
// camera so blended fragments land over what is behind them. Ties keep grid
// order.
func (c *Controller) backToFront() []*mesh.Mesh {
	c.order = append(c.order[:0], c.meshes...)
	eye := c.camera.Position()
	sort.SliceStable(c.order, func(i, j int) bool {
		return c.order[i].Position().Sub(eye).Len() > c.order[j].Position().Sub(eye).Len()
	})
	return c.order
}

func (c *Controller) render(m *mesh.Mesh, view, proj mgl32.Mat4, env mesh.Environment) {
	if err := m.Render(view, proj, env); err != nil && !c.failed[m] {
		c.failed[m] = true
		logger.Errorf("render: %v", err)
	}
}

// cleanup releases every light and mesh once, then the shader table. The
// first error is returned after everything was attempted.
func (c *Controller) cleanup() error {
	var first error
	keep := func(err error) {
		if err != nil {
			logger.Warningf("cleanup: %v", err)
			if first == nil {
				first = err
			}
		}
	}

	for _, m := range c.lights.Meshes() {
		keep(m.Cleanup())
	}
	for _, m := range c.meshes {
		keep(m.Cleanup())
	}
	c.lights = mesh.Lights{}
	c.meshes = nil
	c.order = nil
	if c.table != nil {
		keep(c.table.Cleanup())
		c.table = nil
	}

	if live := c.res.Live(); live != 0 {
		logger.Warningf("cleanup: %d GPU objects still live", live)
	}
	return first
}

// State returns the lifecycle stage.
func (c *Controller) State() State { return c.state }

// Camera returns the camera, or nil before Initialize.
func (c *Controller) Camera() *camera.Camera { return c.camera }

// Pacer returns the frame pacer. Its clock may be replaced before Run.
func (c *Controller) Pacer() *Pacer { return c.pacer }

// Stats returns the statistics of the last run.
func (c *Controller) Stats() FrameStats { return c.pacer.Stats() }

// Scene returns the light registry and the regular meshes.
func (c *Controller) Scene() (*mesh.Lights, []*mesh.Mesh) { return &c.lights, c.meshes }
