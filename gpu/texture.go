package gpu

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Texture is a 2D image living on the GPU.
type Texture struct {
	Handle Handle
	Width  int
	Height int
	Path   string
}

// TextureLoader loads textures from a file system into a Resources arena.
type TextureLoader struct {
	Res *Resources
	FS  fs.FS
}

// LoadTexture decodes the image at path and uploads it.
func (l TextureLoader) LoadTexture(path string) (*Texture, error) {
	f, err := l.FS.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "gpu: could not open texture %q", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrapf(ErrDecodeImage, "%s: %v", path, err)
	}

	rgba := ToRGBA(img)
	h, err := l.Res.NewTexture(rgba)
	if err != nil {
		return nil, errors.Wrapf(err, "gpu: could not upload texture %q", path)
	}

	return &Texture{
		Handle: h,
		Width:  rgba.Rect.Dx(),
		Height: rgba.Rect.Dy(),
		Path:   path,
	}, nil
}

// Release frees the texture. A second call returns ErrStaleHandle.
func (t *Texture) Release(res *Resources) error {
	return res.Release(t.Handle)
}

// ToRGBA converts img to a tightly packed RGBA image with its rows flipped so
// that the first row in memory is the bottom of the image, which is what GL
// expects for texture coordinate (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	src := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(src, src.Bounds(), img, b.Min, draw.Src)

	dst := image.NewRGBA(src.Rect)
	rowLen := 4 * b.Dx()
	for y := 0; y < b.Dy(); y++ {
		srcRow := src.Pix[y*src.Stride : y*src.Stride+rowLen]
		dstY := b.Dy() - 1 - y
		copy(dst.Pix[dstY*dst.Stride:dstY*dst.Stride+rowLen], srcRow)
	}
	return dst
}
