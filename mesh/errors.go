package mesh

import "errors"

var (
	ErrBadStride       = errors.New("mesh: vertex data does not match the interleaved stride")
	ErrIndexOutOfRange = errors.New("mesh: index out of range")
	ErrReleased        = errors.New("mesh: used after cleanup")
	ErrNoProgram       = errors.New("mesh: no shader program")
	ErrNoGeometry      = errors.New("mesh: no geometry")
)
