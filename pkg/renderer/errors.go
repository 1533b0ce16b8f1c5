package renderer

import "errors"

var (
	// ErrInvalidCamera is returned for camera configurations with degenerate geometry
	ErrInvalidCamera = errors.New("invalid camera config")
	// ErrInvalidSampling is returned for unusable sampling configurations
	ErrInvalidSampling = errors.New("invalid sampling config")
	// ErrEmptyScene is returned when a scene has nothing to render
	ErrEmptyScene = errors.New("scene has no world")
)
