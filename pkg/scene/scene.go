package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

var (
	// ErrUnknownScene is returned when a scene name has no built-in constructor
	ErrUnknownScene = errors.New("unknown scene")
	// ErrInvalidScene is returned for scenes that cannot be rendered
	ErrInvalidScene = errors.New("invalid scene")
)

// groundRadius is the radius of the floor sphere shared by the built-in scenes
const groundRadius = 1000.0

// Scene contains all the elements needed for rendering
type Scene struct {
	Name           string
	World          *geometry.ShapeList // Objects in the scene
	CameraConfig   renderer.CameraConfig
	SamplingConfig renderer.SamplingConfig
}

// NewScene creates an empty scene with default sampling
func NewScene(name string, cameraConfig renderer.CameraConfig) *Scene {
	return &Scene{
		Name:           name,
		World:          geometry.NewShapeList(),
		CameraConfig:   cameraConfig,
		SamplingConfig: renderer.DefaultSamplingConfig(),
	}
}

// GetWorld returns the scene composite, or nil for an empty scene
func (s *Scene) GetWorld() geometry.Shape {
	if s.World == nil {
		return nil
	}
	return s.World
}

// GetCameraConfig returns the camera configuration
func (s *Scene) GetCameraConfig() renderer.CameraConfig {
	return s.CameraConfig
}

// GetSamplingConfig returns the sampling configuration
func (s *Scene) GetSamplingConfig() renderer.SamplingConfig {
	return s.SamplingConfig
}

// Add appends shapes to the scene world
func (s *Scene) Add(shapes ...geometry.Shape) {
	if s.World == nil {
		s.World = geometry.NewShapeList()
	}
	s.World.Add(shapes...)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	if s.World == nil {
		return 0
	}
	return countPrimitives(s.World)
}

func countPrimitives(shape geometry.Shape) int {
	switch obj := shape.(type) {
	case *geometry.ShapeList:
		count := 0
		for _, child := range obj.Shapes {
			count += countPrimitives(child)
		}
		return count
	default:
		return 1
	}
}

// Validate checks that the scene has a world whose spheres all carry a
// material, and that the camera and sampling configs are usable
func (s *Scene) Validate() error {
	if s.World == nil || s.World.Len() == 0 {
		return fmt.Errorf("%w: scene %q has no objects", ErrInvalidScene, s.Name)
	}
	if err := validateShapes(s.World); err != nil {
		return fmt.Errorf("%w: scene %q: %v", ErrInvalidScene, s.Name, err)
	}
	if err := s.CameraConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	if err := s.SamplingConfig.Validate(); err != nil {
		return fmt.Errorf("scene %q: %w", s.Name, err)
	}
	return nil
}

func validateShapes(list *geometry.ShapeList) error {
	for i, shape := range list.Shapes {
		switch obj := shape.(type) {
		case nil:
			return fmt.Errorf("shape %d is nil", i)
		case *geometry.Sphere:
			if obj.Material == nil {
				return fmt.Errorf("sphere %d at %v has no material", i, obj.Center)
			}
			if obj.Radius == 0 {
				return fmt.Errorf("sphere %d at %v has zero radius", i, obj.Center)
			}
		case *geometry.ShapeList:
			if err := validateShapes(obj); err != nil {
				return err
			}
		}
	}
	return nil
}

// NewGroundSphere creates the large sphere used as a floor, with its top at y=0
func NewGroundSphere(mat material.Material) *geometry.Sphere {
	return geometry.NewSphere(core.NewVec3(0, -groundRadius, 0), groundRadius, mat)
}

// applyCameraOverrides merges the first override, if any, onto the defaults
func applyCameraOverrides(defaults renderer.CameraConfig, overrides []renderer.CameraConfig) renderer.CameraConfig {
	if len(overrides) > 0 {
		return renderer.MergeCameraConfig(defaults, overrides[0])
	}
	return defaults
}
