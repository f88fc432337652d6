package game

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-render/platform"
	"github.com/toxichemicals/GO/holy-render/platform/platformtest"
)

type fixedBasis struct{}

func (fixedBasis) Right() mgl32.Vec3 { return mgl32.Vec3{1, 0, 0} }
func (fixedBasis) Forward() mgl32.Vec3 { return mgl32.Vec3{0, 0, -1} }
func (fixedBasis) Up() mgl32.Vec3 { return mgl32.Vec3{0, 1, 0} }

type turn struct{ yaw, pitch float32 }

type recordingTurner struct {
	turns []turn
}

func (r *recordingTurner) Turn(yaw, pitch float32) {
	r.turns = append(r.turns, turn{yaw, pitch})
}

func keys(k ...platform.Key) platformtest.Frame {
	return platformtest.Frame{Keys: k}
}

func TestKeyboardVelocity(t *testing.T) {
	var b fixedBasis
	specs := []struct {
		frame  platformtest.Frame
		policy MovePolicy
		exp    mgl32.Vec3
	}{
		{keys(), Overwrite, mgl32.Vec3{}},
		{keys(platform.KeyW), Overwrite, b.Forward()},
		{keys(platform.KeyA), Overwrite, mgl32.Vec3{-1, 0, 0}},
		{keys(platform.KeyE), Overwrite, b.Up()},
		// Last checked pressed key wins.
		{keys(platform.KeyW, platform.KeyS), Overwrite, mgl32.Vec3{0, 0, 1}},
		{keys(platform.KeyS, platform.KeyW), Overwrite, mgl32.Vec3{0, 0, 1}},
		{keys(platform.KeyD, platform.KeyQ), Overwrite, mgl32.Vec3{0, -1, 0}},
		{keys(platform.KeyW, platform.KeyS), Additive, mgl32.Vec3{}},
		{keys(platform.KeyW, platform.KeyD), Additive, mgl32.Vec3{1, 0, -1}.Normalize()},
	}

	for index, s := range specs {
		win := platformtest.New(800, 600, s.frame)
		win.PollEvents()
		if got := KeyboardVelocity(win, b, s.policy); !got.ApproxEqual(s.exp) {
			t.Fatalf("[spec %d] expected velocity %v; got %v", index, s.exp, got)
		}
	}
}

func TestDisplacementScalesByFrameTime(t *testing.T) {
	var b fixedBasis
	win := platformtest.New(800, 600, keys(platform.KeyW))
	win.PollEvents()

	dt := float32(.016)
	got := Displacement(win, b, Overwrite, dt, 1)
	if exp := b.Forward().Mul(dt); !got.ApproxEqual(exp) {
		t.Fatalf("expected displacement %v; got %v", exp, got)
	}
	got = Displacement(win, b, Overwrite, dt, 3)
	if exp := b.Forward().Mul(dt * 3); !got.ApproxEqual(exp) {
		t.Fatalf("expected displacement %v; got %v", exp, got)
	}
}

func TestParsePolicy(t *testing.T) {
	for name, exp := range map[string]MovePolicy{"": Overwrite, "overwrite": Overwrite, "additive": Additive} {
		got, err := ParsePolicy(name)
		if err != nil || got != exp {
			t.Fatalf("expected %q to parse as %s; got %s, %v", name, exp, got, err)
		}
	}
	if _, err := ParsePolicy("diagonal"); err == nil {
		t.Fatal("expected unknown policy to fail")
	}
}

func TestTurnAmount(t *testing.T) {
	specs := []struct {
		dx, dy           float64
		expYaw, expPitch float32
	}{
		{10, 5, -.0515, -.012375},
		{-10, -5, .0515, .012375},
		// Ratios beyond 40 clamp to the top of the range.
		{100, 1, -.08, -.0100475},
		{1, -100, -.0500075, .2},
	}

	for index, s := range specs {
		yaw, pitch := TurnAmount(s.dx, s.dy)
		if math.Abs(float64(yaw-s.expYaw)) > 1e-6 || math.Abs(float64(pitch-s.expPitch)) > 1e-6 {
			t.Fatalf("[spec %d] expected (%f, %f); got (%f, %f)", index, s.expYaw, s.expPitch, yaw, pitch)
		}
	}
}

func TestLook(t *testing.T) {
	held := []platform.MouseButton{platform.MouseRight}
	win := platformtest.New(800, 600,
		platformtest.Frame{CursorX: 50, CursorY: 50},
		platformtest.Frame{Buttons: held, CursorX: 100, CursorY: 100},
		// Zero vertical delta: skipped, anchor stays at (100,100).
		platformtest.Frame{Buttons: held, CursorX: 110, CursorY: 100},
		platformtest.Frame{Buttons: held, CursorX: 110, CursorY: 105},
		platformtest.Frame{CursorX: 200, CursorY: 200},
	)
	look := Look{Button: platform.MouseRight}
	var turner recordingTurner

	expTurned := []bool{false, false, false, true, false}
	for i, exp := range expTurned {
		win.PollEvents()
		if got := look.Update(win, &turner); got != exp {
			t.Fatalf("frame %d: expected turned=%t; got %t", i, exp, got)
		}
	}

	if len(turner.turns) != 1 {
		t.Fatalf("expected 1 turn; got %d", len(turner.turns))
	}
	expYaw, expPitch := TurnAmount(10, 5)
	if got := turner.turns[0]; got.yaw != expYaw || got.pitch != expPitch {
		t.Fatalf("expected turn (%f, %f) from the first anchor; got %+v", expYaw, expPitch, got)
	}

	expModes := []platform.CursorMode{platform.CursorDisabled, platform.CursorNormal}
	if len(win.ModeLog) != len(expModes) {
		t.Fatalf("expected cursor modes %v; got %v", expModes, win.ModeLog)
	}
	for i, m := range expModes {
		if win.ModeLog[i] != m {
			t.Fatalf("expected cursor modes %v; got %v", expModes, win.ModeLog)
		}
	}
}
