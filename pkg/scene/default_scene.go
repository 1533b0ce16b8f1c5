package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// NewDefaultScene creates a default scene with spheres, ground, and camera
func NewDefaultScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	// Default camera configuration
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(0, 0.75, 2), // Position camera higher and farther back
		LookAt:        core.NewVec3(0, 0.5, -1), // Look at the sphere center
		Up:            core.NewVec3(0, 1, 0),    // Standard up direction
		Width:         400,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.05,
		FocusDistance: 0.0, // Auto-calculate focus distance
	}

	s := NewScene("default", applyCameraOverrides(defaultCameraConfig, cameraOverrides))

	// Create materials
	lambertianGreen := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6))
	lambertianBlue := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	lambertianRed := material.NewLambertian(core.NewVec3(0.65, 0.25, 0.2))
	metalSilver := material.NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.0)
	metalGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.3)
	materialGlass := material.NewDielectric(1.5)

	// Create spheres with different materials
	sphereCenter := geometry.NewSphere(core.NewVec3(0, 0.5, -1), 0.5, lambertianRed)
	sphereLeft := geometry.NewSphere(core.NewVec3(-1, 0.5, -1), 0.5, metalSilver)
	sphereRight := geometry.NewSphere(core.NewVec3(1, 0.5, -1), 0.5, metalGold)
	solidGlassSphere := geometry.NewSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, materialGlass)

	// Hollow glass sphere with blue sphere inside; the negative radius flips
	// the inner surface normal so the shell behaves like a thin glass wall
	hollowGlassOuter := geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.25, materialGlass)
	hollowGlassInner := geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), -0.24, materialGlass)
	hollowGlassCenter := geometry.NewSphere(core.NewVec3(-0.5, 0.25, -0.5), 0.20, lambertianBlue)

	s.Add(NewGroundSphere(lambertianGreen),
		sphereCenter, sphereLeft, sphereRight,
		solidGlassSphere, hollowGlassOuter, hollowGlassInner, hollowGlassCenter)

	return s
}

// NewGroundScene creates a scene with only the diffuse ground sphere. The
// camera rests on top of the sphere and pitches down by half its field of
// view, so the top edge of the viewport lies on the horizon: every ray below
// it hits the ground and every ray above it sees sky. The defaults render a
// 2x2 image with one sample and a single bounce.
func NewGroundScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, -1, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       2,
		AspectRatio: 1.0,
		VFov:        90.0,
	}

	s := NewScene("ground", applyCameraOverrides(defaultCameraConfig, cameraOverrides))
	s.SamplingConfig = renderer.SamplingConfig{
		SamplesPerPixel: 1,
		MaxDepth:        1,
		Seed:            renderer.DefaultSamplingConfig().Seed,
	}

	s.Add(NewGroundSphere(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	return s
}
