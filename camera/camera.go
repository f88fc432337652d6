// Package camera implements the fly camera driven by the frame loop.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-render/platform"
)

// MaxPitch is the pitch limit in degrees. Looking straight up or down would
// make the forward vector parallel to world up.
const MaxPitch = 89.0

var worldUp = mgl32.Vec3{0, 1, 0}

// Options configures a camera. Angles are in degrees; yaw -90 looks down -Z.
type Options struct {
	Position mgl32.Vec3
	Yaw      float32
	Pitch    float32
	FOV      float32
	Near     float32
	Far      float32
}

// DefaultOptions returns a camera at the origin looking down -Z.
func DefaultOptions() Options {
	return Options{
		Yaw:  -90,
		FOV:  45,
		Near: .1,
		Far:  100,
	}
}

// Camera is a yaw/pitch fly camera.
type Camera struct {
	position mgl32.Vec3
	yaw      float32
	pitch    float32

	forward mgl32.Vec3
	right   mgl32.Vec3
	up      mgl32.Vec3

	fov    float32
	near   float32
	far    float32
	aspect float32
}

// New creates a camera whose projection matches res.
func New(res platform.Resolution, opts Options) *Camera {
	c := &Camera{
		position: opts.Position,
		yaw:      opts.Yaw,
		pitch:    clampPitch(opts.Pitch),
		fov:      opts.FOV,
		near:     opts.Near,
		far:      opts.Far,
	}
	c.Resize(res)
	c.updateBasis()
	return c
}

func clampPitch(p float32) float32 {
	if p > MaxPitch {
		return MaxPitch
	}
	if p < -MaxPitch {
		return -MaxPitch
	}
	return p
}

func (c *Camera) updateBasis() {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))
	c.forward = mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
	c.right = c.forward.Cross(worldUp).Normalize()
	c.up = c.right.Cross(c.forward).Normalize()
}

func (c *Camera) Right() mgl32.Vec3 { return c.right }
func (c *Camera) Forward() mgl32.Vec3 { return c.forward }
func (c *Camera) Up() mgl32.Vec3 { return c.up }

func (c *Camera) Position() mgl32.Vec3 { return c.position }

// Angles returns yaw and pitch in degrees.
func (c *Camera) Angles() (yaw, pitch float32) { return c.yaw, c.pitch }

// Displace moves the camera by velocity. The caller scales velocity by the
// frame time.
func (c *Camera) Displace(velocity mgl32.Vec3) {
	c.position = c.position.Add(velocity)
}

// Turn rotates the camera by yaw and pitch radians. Positive yaw turns left,
// positive pitch looks up.
func (c *Camera) Turn(yaw, pitch float32) {
	c.yaw -= mgl32.RadToDeg(yaw)
	c.yaw = float32(math.Mod(float64(c.yaw), 360))
	c.pitch = clampPitch(c.pitch + mgl32.RadToDeg(pitch))
	c.updateBasis()
}

// View returns the look-at matrix for the current position and orientation.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.position, c.position.Add(c.forward), c.up)
}

// Projection returns the perspective matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.fov), c.aspect, c.near, c.far)
}

// Resize updates the projection aspect. A zero-height framebuffer (minimized
// window) keeps the previous aspect.
func (c *Camera) Resize(res platform.Resolution) {
	if res.Height <= 0 || res.Width <= 0 {
		if c.aspect == 0 {
			c.aspect = 1
		}
		return
	}
	c.aspect = res.Aspect()
}

// Aspect returns the projection aspect ratio.
func (c *Camera) Aspect() float32 { return c.aspect }
