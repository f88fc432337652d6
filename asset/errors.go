package asset

import "errors"

var (
	ErrUnsupportedFormat = errors.New("asset: unsupported geometry format")
	ErrNoTriangles       = errors.New("asset: file contains no triangles")
	ErrNoPositions       = errors.New("asset: primitive has no POSITION attribute")
)
