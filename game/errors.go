package game

import "errors"

var (
	ErrAlreadyInitialized = errors.New("game: controller already initialized")
	ErrNotInitialized     = errors.New("game: controller not initialized")
	ErrUnknownShader      = errors.New("game: scene references an unconfigured shader")
	ErrUnknownPolicy      = errors.New("game: unknown movement policy")
)
