package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/toxichemicals/GO/holy-render/platform"
)

const eps = 1e-4

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < eps
}

func assertOrthonormal(t *testing.T, c *Camera, ctx string) {
	t.Helper()
	r, f, u := c.Right(), c.Forward(), c.Up()
	if !near(r.Len(), 1) || !near(f.Len(), 1) || !near(u.Len(), 1) {
		t.Fatalf("%s: expected unit basis; got |r|=%f |f|=%f |u|=%f", ctx, r.Len(), f.Len(), u.Len())
	}
	if !near(r.Dot(f), 0) || !near(r.Dot(u), 0) || !near(f.Dot(u), 0) {
		t.Fatalf("%s: expected orthogonal basis; got r.f=%f r.u=%f f.u=%f", ctx, r.Dot(f), r.Dot(u), f.Dot(u))
	}
}

func TestDefaultBasis(t *testing.T) {
	c := New(platform.Resolution{Width: 800, Height: 600}, DefaultOptions())
	if !c.Forward().ApproxEqualThreshold(mgl32.Vec3{0, 0, -1}, eps) {
		t.Fatalf("expected forward -Z; got %v", c.Forward())
	}
	if !c.Right().ApproxEqualThreshold(mgl32.Vec3{1, 0, 0}, eps) {
		t.Fatalf("expected right +X; got %v", c.Right())
	}
	if !c.Up().ApproxEqualThreshold(mgl32.Vec3{0, 1, 0}, eps) {
		t.Fatalf("expected up +Y; got %v", c.Up())
	}
}

func TestBasisStaysOrthonormal(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for seq := 0; seq < 1000; seq++ {
		c := New(platform.Resolution{Width: 640, Height: 480}, DefaultOptions())
		steps := 1 + rng.Intn(20)
		for i := 0; i < steps; i++ {
			c.Turn(float32(rng.NormFloat64()), float32(rng.NormFloat64()))
		}
		assertOrthonormal(t, c, "random turns")
		if _, pitch := c.Angles(); pitch > MaxPitch || pitch < -MaxPitch {
			t.Fatalf("expected pitch within limits; got %f", pitch)
		}
	}
}

func TestTurnDirections(t *testing.T) {
	c := New(platform.Resolution{Width: 800, Height: 600}, DefaultOptions())
	c.Turn(.1, 0)
	if c.Forward().Dot(mgl32.Vec3{1, 0, 0}) >= 0 {
		t.Fatalf("expected positive yaw to turn left; forward %v", c.Forward())
	}

	c = New(platform.Resolution{Width: 800, Height: 600}, DefaultOptions())
	c.Turn(0, .1)
	if c.Forward().Y() <= 0 {
		t.Fatalf("expected positive pitch to look up; forward %v", c.Forward())
	}

	c.Turn(0, 10)
	if _, pitch := c.Angles(); pitch != MaxPitch {
		t.Fatalf("expected pitch clamped to %v; got %v", MaxPitch, pitch)
	}
	assertOrthonormal(t, c, "clamped pitch")
}

func TestDisplace(t *testing.T) {
	opts := DefaultOptions()
	opts.Position = mgl32.Vec3{1, 2, 3}
	c := New(platform.Resolution{Width: 800, Height: 600}, opts)

	c.Displace(mgl32.Vec3{})
	if c.Position() != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("expected zero displacement to be a no-op; got %v", c.Position())
	}
	c.Displace(c.Forward().Mul(2))
	if !c.Position().ApproxEqualThreshold(mgl32.Vec3{1, 2, 1}, eps) {
		t.Fatalf("expected (1,2,1); got %v", c.Position())
	}

	// The eye sits at the view-space origin.
	eye := c.View().Mul4x1(c.Position().Vec4(1)).Vec3()
	if !eye.ApproxEqualThreshold(mgl32.Vec3{}, eps) {
		t.Fatalf("expected eye at view origin; got %v", eye)
	}
}

func TestProjectionAspect(t *testing.T) {
	specs := []struct {
		res       platform.Resolution
		expAspect float32
	}{
		{platform.Resolution{Width: 800, Height: 600}, 800.0 / 600.0},
		{platform.Resolution{Width: 1920, Height: 1080}, 1920.0 / 1080.0},
		// A minimized window keeps the previous aspect.
		{platform.Resolution{Width: 0, Height: 0}, 1920.0 / 1080.0},
	}

	c := New(platform.Resolution{Width: 100, Height: 100}, DefaultOptions())
	for index, s := range specs {
		c.Resize(s.res)
		if !near(c.Aspect(), s.expAspect) {
			t.Fatalf("[spec %d] expected aspect %f; got %f", index, s.expAspect, c.Aspect())
		}
		exp := mgl32.Perspective(mgl32.DegToRad(45), s.expAspect, .1, 100)
		if !c.Projection().ApproxEqualThreshold(exp, eps) {
			t.Fatalf("[spec %d] unexpected projection %v", index, c.Projection())
		}
	}
}
