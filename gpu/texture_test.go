package gpu_test

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/toxichemicals/GO/holy-render/gpu"
	"github.com/toxichemicals/GO/holy-render/gpu/gputest"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestToRGBAFlipsRows(t *testing.T) {
	src := image.NewNRGBA(image.Rect(10, 10, 12, 13))
	top := color.NRGBA{R: 255, A: 255}
	bottom := color.NRGBA{B: 255, A: 255}
	for x := 10; x < 12; x++ {
		src.SetNRGBA(x, 10, top)
		src.SetNRGBA(x, 12, bottom)
	}

	out := gpu.ToRGBA(src)
	if out.Rect != image.Rect(0, 0, 2, 3) {
		t.Fatalf("expected rect rebased to origin; got %v", out.Rect)
	}
	if got := out.RGBAAt(0, 0); got.B != 255 || got.R != 0 {
		t.Fatalf("expected first row to hold the bottom of the image; got %v", got)
	}
	if got := out.RGBAAt(1, 2); got.R != 255 || got.B != 0 {
		t.Fatalf("expected last row to hold the top of the image; got %v", got)
	}
}

func TestLoadTexture(t *testing.T) {
	fsys := fstest.MapFS{
		"Textures/wood.png": &fstest.MapFile{Data: encodePNG(t, image.NewRGBA(image.Rect(0, 0, 4, 2)))},
		"Textures/bad.png":  &fstest.MapFile{Data: []byte("not an image")},
	}
	dev := gputest.New()
	loader := gpu.TextureLoader{Res: gpu.NewResources(dev), FS: fsys}

	tex, err := loader.LoadTexture("Textures/wood.png")
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width != 4 || tex.Height != 2 || tex.Path != "Textures/wood.png" {
		t.Fatalf("unexpected texture metadata %+v", tex)
	}
	if dev.LiveOf(gpu.KindTexture) != 1 {
		t.Fatalf("expected one texture on the device; got %d", dev.LiveOf(gpu.KindTexture))
	}

	if _, err = loader.LoadTexture("Textures/bad.png"); !errors.Is(err, gpu.ErrDecodeImage) {
		t.Fatalf("expected decode error; got %v", err)
	}
	if _, err = loader.LoadTexture("Textures/missing.png"); err == nil {
		t.Fatal("expected error for missing texture")
	}

	if err = tex.Release(loader.Res); err != nil {
		t.Fatal(err)
	}
	if err = tex.Release(loader.Res); !errors.Is(err, gpu.ErrStaleHandle) {
		t.Fatalf("expected second release to fail; got %v", err)
	}
}
