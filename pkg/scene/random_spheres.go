package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// sceneSeed seeds scene generation, independent of the render sampler
const sceneSeed = 1

const smallSphereRadius = 0.2

// randomColor returns a color with each channel drawn from [lo, hi)
func randomColor(sampler core.Sampler, lo, hi float64) core.Vec3 {
	return core.SampleVec3Range(sampler, lo, hi)
}

// jitteredCenter places a small sphere somewhere inside grid cell (m, n)
func jitteredCenter(sampler core.Sampler, m, n int) core.Vec3 {
	x := float64(m) + 0.9*sampler.Get1D()
	z := float64(n) + 0.9*sampler.Get1D()
	return core.NewVec3(x, smallSphereRadius, z)
}

// originalCameraConfig is the portrait camera shared by the cover, simple and
// snowman scenes
func originalCameraConfig(lookFrom, lookAt core.Vec3, aperture float64) renderer.CameraConfig {
	return renderer.CameraConfig{
		Center:        lookFrom,
		LookAt:        lookAt,
		Up:            core.NewVec3(0, 1, 0),
		Width:         768,
		AspectRatio:   9.0 / 16.0,
		VFov:          30.0,
		Aperture:      aperture,
		FocusDistance: 10.0,
	}
}

// NewCoverScene creates the field of small random spheres around three
// large ones: glass in the middle, diffuse brown on the left and polished
// metal on the right
func NewCoverScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := originalCameraConfig(core.NewVec3(13, 2, 3), core.NewVec3(0, 0, 0), 0.1)
	s := NewScene("cover", applyCameraOverrides(defaultCameraConfig, cameraOverrides))

	sampler := core.NewSeededSampler(sceneSeed)
	s.Add(NewGroundSphere(material.NewLambertian(core.NewVec3(0.2, 0.3, 0.2))))

	glass := material.NewDielectric(1.5)
	clearing := core.NewVec3(4, smallSphereRadius, 0)

	for m := -11; m < 11; m++ {
		for n := -11; n < 11; n++ {
			roulette := sampler.Get1D()
			center := jitteredCenter(sampler, m, n)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			switch {
			case roulette < 0.8:
				// Matte
				albedo := randomColor(sampler, 0, 1).MultiplyVec(randomColor(sampler, 0, 1))
				mat = material.NewLambertian(albedo)
			case roulette < 0.95:
				albedo := randomColor(sampler, 0.5, 1)
				fuzz := core.SampleRange(sampler, 0, 0.5)
				mat = material.NewMetal(albedo, fuzz)
			default:
				mat = glass
			}
			s.Add(geometry.NewSphere(center, smallSphereRadius, mat))
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, glass),
		geometry.NewSphere(core.NewVec3(-4, 1, 0), 1.0, material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		geometry.NewSphere(core.NewVec3(4, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}

// NewSimpleScene creates two rows of small metal and glass spheres on a red
// ground with two large mirror spheres behind them
func NewSimpleScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := originalCameraConfig(core.NewVec3(0, 2, 10), core.NewVec3(0, 0, 0), 0.05)
	s := NewScene("simple", applyCameraOverrides(defaultCameraConfig, cameraOverrides))

	sampler := core.NewSeededSampler(sceneSeed)
	s.Add(NewGroundSphere(material.NewLambertian(core.NewVec3(0.9, 0.1, 0.1))))

	clearing := core.NewVec3(2, smallSphereRadius, 0)

	for m := -5; m < 5; m++ {
		for n := 1; n < 3; n++ {
			roulette := sampler.Get1D()
			center := jitteredCenter(sampler, m, n)

			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			var mat material.Material
			if roulette < 0.8 {
				albedo := randomColor(sampler, 0.5, 1)
				fuzz := core.SampleRange(sampler, 0, 0.5)
				mat = material.NewMetal(albedo, fuzz)
			} else {
				mat = material.NewDielectric(1.5)
			}
			s.Add(geometry.NewSphere(center, smallSphereRadius, mat))
		}
	}

	s.Add(
		geometry.NewSphere(core.NewVec3(-1, 1, 0), 1.0, material.NewMetal(core.NewVec3(1.0, 0.75, 0.8), 0.0)),
		geometry.NewSphere(core.NewVec3(1, 1, 0), 1.0, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0.0)),
	)

	return s
}

// NewSnowmanScene creates three stacked mirror spheres with a row of small
// fuzzy metal spheres scattered behind them
func NewSnowmanScene(cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := originalCameraConfig(core.NewVec3(0, 2, 10), core.NewVec3(0, 2, 0), 0.05)
	s := NewScene("snowman", applyCameraOverrides(defaultCameraConfig, cameraOverrides))

	sampler := core.NewSeededSampler(sceneSeed)
	s.Add(NewGroundSphere(material.NewLambertian(core.NewVec3(0.6, 0.1, 0.1))))

	mirror := material.NewMetal(core.NewVec3(0.5, 0.5, 0.5), 0.0)
	s.Add(
		geometry.NewSphere(core.NewVec3(0, 1, 0), 1.0, mirror),   // bottom
		geometry.NewSphere(core.NewVec3(0, 2.3, 0), 0.7, mirror), // middle
		geometry.NewSphere(core.NewVec3(0, 3.2, 0), 0.4, mirror), // head
	)

	for q := -10; q < 10; q++ {
		albedo := randomColor(sampler, 0.5, 1)
		fuzz := core.SampleRange(sampler, 0, 0.5)
		center := core.NewVec3(float64(q), smallSphereRadius, 10.0*sampler.Get1D())
		s.Add(geometry.NewSphere(center, smallSphereRadius, material.NewMetal(albedo, fuzz)))
	}

	return s
}
