package shader

import "errors"

var (
	ErrMalformedConfig = errors.New("shader: malformed config")
	ErrDuplicateShader = errors.New("shader: duplicate shader name")
	ErrCompile         = errors.New("shader: compile failed")
)
