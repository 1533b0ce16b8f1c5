package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// OKLab to LMS and LMS to linear sRGB matrices (Ottosson)
var (
	oklabToLMS = [3][3]float64{
		{1, 0.3963377774, 0.2158037573},
		{1, -0.1055613458, -0.0638541728},
		{1, -0.0894841775, -1.2914855480},
	}
	lmsToLinearRGB = [3][3]float64{
		{4.0767416621, -3.3077115913, 0.2309699292},
		{-1.2684380046, 2.6097574011, -0.3413193965},
		{-0.0041960863, -0.7034186147, 1.7076147010},
	}
)

func mulMat3(m [3][3]float64, v core.Vec3) core.Vec3 {
	return core.NewVec3(
		m[0][0]*v.X+m[0][1]*v.Y+m[0][2]*v.Z,
		m[1][0]*v.X+m[1][1]*v.Y+m[1][2]*v.Z,
		m[2][0]*v.X+m[2][1]*v.Y+m[2][2]*v.Z,
	)
}

// oklchToRGB maps lightness (0-1), chroma and hue in degrees to a clamped
// linear RGB albedo
func oklchToRGB(lightness, chroma, hue float64) core.Vec3 {
	sin, cos := math.Sincos(hue * math.Pi / 180.0)
	lms := mulMat3(oklabToLMS, core.NewVec3(lightness, chroma*cos, chroma*sin))
	lms = core.NewVec3(lms.X*lms.X*lms.X, lms.Y*lms.Y*lms.Y, lms.Z*lms.Z*lms.Z)
	return mulMat3(lmsToLinearRGB, lms).Clamp(0, 1)
}

// NewSphereGridScene creates a grid of metal spheres whose hue varies along
// x and chroma along z
func NewSphereGridScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		Center:        core.NewVec3(4.5, 6, 18),
		LookAt:        core.NewVec3(4.5, 0.8, 4.5), // Center of grid, slightly lower
		Up:            core.NewVec3(0, 1, 0),
		Width:         800,
		AspectRatio:   16.0 / 9.0,
		VFov:          40.0,
		Aperture:      0.02,
		FocusDistance: 0.0,
	}

	s := NewScene("sphere-grid", applyCameraOverrides(defaultCameraConfig, cameraOverrides))
	s.SamplingConfig.MaxDepth = 40

	s.Add(NewGroundSphere(material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))

	gridSize := 20

	// Fit the grid into a 9x9 area regardless of grid size
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)

			fuzz := 0.05 + 0.1*float64((i+j)%3)/2.0
			metal := material.NewMetal(oklchToRGB(lightness, chroma, hue), fuzz)

			s.Add(geometry.NewSphere(position, sphereRadius, metal))
		}
	}

	return s
}
