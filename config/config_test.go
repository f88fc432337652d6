package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.FPS != 60 || cfg.Movement.Policy != MoveOverwrite {
		t.Fatalf("expected defaults; got %+v", cfg)
	}
}

func TestDefaultScene(t *testing.T) {
	sc := Default().Scene
	if sc.Grid != 10 || sc.MeshScale != .5 {
		t.Fatalf("expected a 10x10 grid at scale .5; got %d at %v", sc.Grid, sc.MeshScale)
	}
	if sc.Lights != 4 || sc.LightScale != 1 || sc.LightOrigin != (mgl32.Vec3{3.5, 0, -.5}) {
		t.Fatalf("expected 4 unscaled lights at (3.5,0,-.5); got %d at scale %v from %v", sc.Lights, sc.LightScale, sc.LightOrigin)
	}

	var roles []string
	for _, l := range Default().Resources.Detail {
		roles = append(roles, l.Path+":"+l.Role)
	}
	if got := strings.Join(roles, " "); got != "wood.png:base grunge.png:detail box-alpha.png:mask" {
		t.Fatalf("unexpected default detail layers: %s", got)
	}
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	cfg := Default()
	err := cfg.decode(strings.NewReader(`
fps: 30
scene:
  grid: 2
  lightOrigin: [0, 1, 2]
resources:
  detail:
    - path: noise.png
      role: mask
movement:
  policy: additive
`))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.FPS != 30 || cfg.Scene.Grid != 2 || cfg.Movement.Policy != MoveAdditive {
		t.Fatalf("expected overrides to apply; got %+v", cfg)
	}
	if cfg.Scene.LightOrigin != (mgl32.Vec3{0, 1, 2}) {
		t.Fatalf("expected light origin (0,1,2); got %v", cfg.Scene.LightOrigin)
	}
	if len(cfg.Resources.Detail) != 1 || cfg.Resources.Detail[0].Role != "mask" {
		t.Fatalf("unexpected detail layers: %+v", cfg.Resources.Detail)
	}
	// Untouched keys keep their defaults.
	if cfg.Window.Width != 1280 || cfg.Scene.MeshShader != "crate" || cfg.Scene.Lights != 4 {
		t.Fatalf("expected defaults for unset keys; got %+v", cfg)
	}
}

func TestDecodeLogSection(t *testing.T) {
	cfg := Default()
	input := "log:\n  level: warning\n  file: render.log\n  modules:\n    asset: debug\n"
	if err := cfg.decode(strings.NewReader(input)); err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "warning" || cfg.Log.File != "render.log" || cfg.Log.Modules["asset"] != "debug" {
		t.Fatalf("unexpected log settings: %+v", cfg.Log)
	}
	if Default().Log.Level != "notice" {
		t.Fatalf("expected notice as the default log level; got %q", Default().Log.Level)
	}
}

func TestDecodeErrors(t *testing.T) {
	specs := []struct {
		input  string
		expErr error
	}{
		{"fps: 0", ErrInvalid},
		{"window: {width: -1}", ErrInvalid},
		{"movement: {policy: sideways}", ErrInvalid},
		{"movement: {speed: 0}", ErrInvalid},
		{"scene: {lights: 0}", ErrInvalid},
		{"camera: {near: 1, far: 1}", ErrInvalid},
		{"resources: {detail: [{path: a.png, role: gloss}]}", ErrInvalid},
		{"log: {level: loud}", ErrInvalid},
		{"log: {modules: {asset: chatty}}", ErrInvalid},
		{"bogus: true", nil},
		{"fps: [1", nil},
	}

	for index, s := range specs {
		cfg := Default()
		err := cfg.decode(strings.NewReader(s.input))
		if err == nil {
			t.Fatalf("[spec %d] expected an error", index)
		}
		if s.expErr != nil && !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.expErr, err)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	if err := os.WriteFile(path, []byte("window:\n  title: test\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Title != "test" || cfg.Window.Height != 720 {
		t.Fatalf("unexpected window settings: %+v", cfg.Window)
	}

	if _, err = Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected loading a missing file to fail")
	}
}
