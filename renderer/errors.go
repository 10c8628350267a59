package renderer

import "errors"

var (
	ErrInvalidConfig   = errors.New("renderer: invalid configuration")
	ErrSceneNotDefined = errors.New("renderer: no scene defined")
	ErrEmptyScene      = errors.New("renderer: scene contains no primitives")
	ErrFrameAllocation = errors.New("renderer: could not allocate render target")
)
