package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/toxichemicals/GO/holy-render/platform"
)

// MovePolicy decides how simultaneously held movement keys combine.
type MovePolicy uint8

const (
	// Overwrite lets the last checked pressed key win. Keys are checked in
	// the order A, D, W, S, Q, E, so holding W and S moves backward.
	Overwrite MovePolicy = iota
	// Additive sums the pressed directions and normalizes the result.
	Additive
)

func (p MovePolicy) String() string {
	if p == Additive {
		return "additive"
	}
	return "overwrite"
}

// ParsePolicy converts a policy name to a MovePolicy.
func ParsePolicy(name string) (MovePolicy, error) {
	switch name {
	case "overwrite", "":
		return Overwrite, nil
	case "additive":
		return Additive, nil
	}
	return 0, errors.Wrap(ErrUnknownPolicy, name)
}

// Basis exposes the camera axes movement keys map onto.
type Basis interface {
	Right() mgl32.Vec3
	Forward() mgl32.Vec3
	Up() mgl32.Vec3
}

// Turner is rotated by pointer input.
type Turner interface {
	Turn(yaw, pitch float32)
}

type binding struct {
	key platform.Key
	dir func(Basis) mgl32.Vec3
}

var movementKeys = []binding{
	{platform.KeyA, func(b Basis) mgl32.Vec3 { return b.Right().Mul(-1) }},
	{platform.KeyD, func(b Basis) mgl32.Vec3 { return b.Right() }},
	{platform.KeyW, func(b Basis) mgl32.Vec3 { return b.Forward() }},
	{platform.KeyS, func(b Basis) mgl32.Vec3 { return b.Forward().Mul(-1) }},
	{platform.KeyQ, func(b Basis) mgl32.Vec3 { return b.Up().Mul(-1) }},
	{platform.KeyE, func(b Basis) mgl32.Vec3 { return b.Up() }},
}

// KeyboardVelocity maps the held movement keys to a unit velocity along the
// camera basis. It is zero when no movement key is held.
func KeyboardVelocity(win platform.Window, basis Basis, policy MovePolicy) mgl32.Vec3 {
	var v mgl32.Vec3
	for _, k := range movementKeys {
		if !win.KeyPressed(k.key) {
			continue
		}
		if policy == Additive {
			v = v.Add(k.dir(basis))
		} else {
			v = k.dir(basis)
		}
	}
	if policy == Additive && v.Len() > 0 {
		v = v.Normalize()
	}
	return v
}

// Displacement scales the keyboard velocity by the frame time and speed.
func Displacement(win platform.Window, basis Basis, policy MovePolicy, dt, speed float32) mgl32.Vec3 {
	return KeyboardVelocity(win, basis, policy).Mul(dt * speed)
}

// remap maps v from [inMin, inMax] to [outMin, outMax], clamping v first.
func remap(inMin, inMax, outMin, outMax, v float64) float64 {
	if v < inMin {
		v = inMin
	} else if v > inMax {
		v = inMax
	}
	return outMin + (v-inMin)/(inMax-inMin)*(outMax-outMin)
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// Look turns a camera while the look button is held.
type Look struct {
	Button platform.MouseButton

	held    bool
	anchorX float64
	anchorY float64
}

// Update samples the pointer once. A fresh press hides the cursor and
// anchors it; while held, each sample moving along both axes turns t and
// advances the anchor. Samples with a zero delta on either axis are ignored
// without advancing the anchor. It reports whether t was turned.
func (l *Look) Update(win platform.Window, t Turner) bool {
	if !win.MouseButtonPressed(l.Button) {
		if l.held {
			win.SetCursorMode(platform.CursorNormal)
			l.held = false
		}
		return false
	}

	x, y := win.CursorPos()
	if !l.held {
		win.SetCursorMode(platform.CursorDisabled)
		l.held = true
		l.anchorX, l.anchorY = x, y
		return false
	}

	dx, dy := x-l.anchorX, y-l.anchorY
	if dx == 0 || dy == 0 {
		return false
	}
	yaw, pitch := TurnAmount(dx, dy)
	l.anchorX, l.anchorY = x, y
	t.Turn(yaw, pitch)
	return true
}

// TurnAmount converts a nonzero pointer delta to yaw and pitch radians.
// Motion dominated by one axis turns faster along that axis.
func TurnAmount(dx, dy float64) (yaw, pitch float32) {
	yaw = float32(-sign(dx) * remap(0, 40, .05, .08, math.Abs(dx/dy)))
	pitch = float32(-sign(dy) * remap(0, 40, .01, .2, math.Abs(dy/dx)))
	return yaw, pitch
}
