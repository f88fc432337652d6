package gpu

import "errors"

var (
	ErrStaleHandle  = errors.New("gpu: stale or released handle")
	ErrWrongKind    = errors.New("gpu: handle kind mismatch")
	ErrDecodeImage  = errors.New("gpu: could not decode image")
	ErrEmptyTexture = errors.New("gpu: texture has zero area")
)
