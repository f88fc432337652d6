package shader

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/toxichemicals/GO/holy-render/gpu"
	"github.com/toxichemicals/GO/holy-render/gpu/gputest"
	"github.com/toxichemicals/GO/holy-render/material"
)

var testDirs = Dirs{Shaders: "Shaders", Textures: "Textures"}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testFS(t *testing.T) fstest.MapFS {
	img := pngBytes(t)
	return fstest.MapFS{
		"Shaders/crate.vert":  &fstest.MapFile{Data: []byte("void main() {}")},
		"Shaders/crate.frag":  &fstest.MapFile{Data: []byte("void main() {}")},
		"Shaders/sphere.vert": &fstest.MapFile{Data: []byte("void main() {}")},
		"Shaders/sphere.frag": &fstest.MapFile{Data: []byte("void main() {}")},
		"Shaders/broken.vert": &fstest.MapFile{Data: []byte("void main() {}")},
		"Shaders/broken.frag": &fstest.MapFile{Data: []byte(gputest.CompileFailMarker)},
		"Textures/a.png":      &fstest.MapFile{Data: img},
		"Textures/b.png":      &fstest.MapFile{Data: img},
	}
}

func TestBuildAndLookup(t *testing.T) {
	dev := gputest.New()
	res := gpu.NewResources(dev)
	entries, err := ParseConfig(strings.NewReader("crate 2 a.png b.png sphere 0"))
	if err != nil {
		t.Fatal(err)
	}

	table, err := Build(res, testFS(t), testDirs, entries)
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("expected 2 programs; got %d", table.Len())
	}

	crate := table.MustLookup("crate")
	loc := crate.Loc
	for name, l := range map[string]int32{
		"position": loc.Position, "normal": loc.Normal, "texCoord": loc.TexCoord,
		"wvp": loc.WVP, "modelToWorld": loc.ModelToWorld, "lightPos": loc.LightPos,
		"lightColor": loc.LightColor, "ambient": loc.AmbientLight, "cameraPos": loc.CameraPos,
		"time": loc.Time, "sampler1": loc.Samplers[0], "sampler3": loc.Samplers[2],
		"texture0": loc.Samplers[material.SharedSlot(0)],
	} {
		if l < 0 {
			t.Fatalf("expected %s location to resolve; got %d", name, l)
		}
	}

	layers := crate.Layers()
	if len(layers) != 2 {
		t.Fatalf("expected 2 texture layers; got %d", len(layers))
	}
	for i, exp := range []string{"Textures/a.png", "Textures/b.png"} {
		if layers[i].Texture.Path != exp || layers[i].Role != material.Role(i) || layers[i].Owned {
			t.Fatalf("unexpected layer %d: %+v", i, layers[i])
		}
	}

	if _, ok := table.Lookup("font"); ok {
		t.Fatal("expected lookup of unconfigured shader to fail")
	}

	if err = table.Cleanup(); err != nil {
		t.Fatal(err)
	}
	if dev.Live() != 0 || res.Live() != 0 {
		t.Fatalf("expected cleanup to release everything; got device=%d arena=%d", dev.Live(), res.Live())
	}
	if err = table.Cleanup(); err != nil {
		t.Fatalf("expected second cleanup to be a no-op; got %v", err)
	}
	if dev.DoubleDelete != 0 {
		t.Fatalf("expected no double delete; got %d", dev.DoubleDelete)
	}
}

func TestMustLookupUnconfiguredPanics(t *testing.T) {
	table, err := Build(gpu.NewResources(gputest.New()), testFS(t), testDirs, []Entry{{Name: "sphere"}})
	if err != nil {
		t.Fatal(err)
	}

	defer func() {
		if recover() == nil {
			t.Fatal("expected MustLookup of an unconfigured shader to panic")
		}
	}()
	table.MustLookup("crate")
}

func TestMissingLocationsReportNegative(t *testing.T) {
	dev := gputest.New()
	dev.Missing[UniCameraPos] = true
	table, err := Build(gpu.NewResources(dev), testFS(t), testDirs, []Entry{{Name: "sphere"}})
	if err != nil {
		t.Fatal(err)
	}
	if loc := table.MustLookup("sphere").Loc.CameraPos; loc != -1 {
		t.Fatalf("expected missing uniform to resolve to -1; got %d", loc)
	}
}

func TestBuildFailuresReleaseEverything(t *testing.T) {
	type spec struct {
		entries []Entry
		expErr  error
	}
	specs := []spec{
		{[]Entry{{Name: "crate", Textures: []string{"a.png"}}, {Name: "broken"}}, ErrCompile},
		{[]Entry{{Name: "crate", Textures: []string{"a.png", "missing.png"}}}, nil},
		{[]Entry{{Name: "sphere"}, {Name: "missing"}}, nil},
		{[]Entry{{Name: "sphere"}, {Name: "sphere"}}, ErrDuplicateShader},
	}

	for index, s := range specs {
		dev := gputest.New()
		res := gpu.NewResources(dev)
		_, err := Build(res, testFS(t), testDirs, s.entries)
		if err == nil {
			t.Fatalf("[spec %d] expected build to fail", index)
		}
		if s.expErr != nil && !errors.Is(err, s.expErr) {
			t.Fatalf("[spec %d] expected %v; got %v", index, s.expErr, err)
		}
		if dev.Live() != 0 || res.Live() != 0 {
			t.Fatalf("[spec %d] expected failed build to release everything; got device=%d arena=%d", index, dev.Live(), res.Live())
		}
	}
}
