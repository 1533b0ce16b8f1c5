package renderer

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
)

// ShadowAcneEpsilon is the minimum hit distance accepted along a ray.
// Secondary rays start on a surface and would otherwise re-hit it.
const ShadowAcneEpsilon = 0.001

var (
	skyTopColor    = core.NewVec3(0.5, 0.7, 1.0) // sky blue
	skyBottomColor = core.NewVec3(1.0, 1.0, 1.0) // white
)

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	SamplesPerPixel int   // Number of rays per pixel
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Seed for the render sampler
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
	}
}

// Validate checks that the sampling config can produce an image
func (c SamplingConfig) Validate() error {
	if c.SamplesPerPixel <= 0 {
		return fmt.Errorf("%w: samples per pixel must be positive, got %d", ErrInvalidSampling, c.SamplesPerPixel)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("%w: max depth must not be negative, got %d", ErrInvalidSampling, c.MaxDepth)
	}
	return nil
}

// Scene interface to avoid circular imports
type Scene interface {
	GetWorld() geometry.Shape
	GetCameraConfig() CameraConfig
	GetSamplingConfig() SamplingConfig
}

// Raytracer handles the rendering process
type Raytracer struct {
	world   geometry.Shape
	camera  *Camera
	width   int
	height  int
	config  SamplingConfig
	sampler core.Sampler
	logger  core.Logger
}

// NewRaytracer validates the scene configuration and creates a raytracer
// whose sampler is seeded from the sampling config
func NewRaytracer(scene Scene, logger core.Logger) (*Raytracer, error) {
	world := scene.GetWorld()
	if world == nil {
		return nil, ErrEmptyScene
	}

	cameraConfig := scene.GetCameraConfig()
	if err := cameraConfig.Validate(); err != nil {
		return nil, err
	}

	config := scene.GetSamplingConfig()
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = NewNopLogger()
	}

	return &Raytracer{
		world:   world,
		camera:  NewCamera(cameraConfig),
		width:   cameraConfig.Width,
		height:  cameraConfig.ImageHeight(),
		config:  config,
		sampler: core.NewSeededSampler(config.Seed),
		logger:  logger,
	}, nil
}

// SetSampler replaces the sampler used for all random draws
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// Size returns the image dimensions
func (rt *Raytracer) Size() (width, height int) {
	return rt.width, rt.height
}

// backgroundGradient returns a gradient color based on ray direction
func backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Use the y-component to create a gradient (map from -1,1 to 0,1)
	t := 0.5 * (unitDirection.Y + 1.0)

	return skyBottomColor.Lerp(skyTopColor, t)
}

// RayColor returns the radiance carried back along r, allowing at most depth
// scatter events. Each bounce multiplies the running throughput by the
// material attenuation, which is the same product a recursive trace forms.
func (rt *Raytracer) RayColor(r core.Ray, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := rt.world.Hit(r, ShadowAcneEpsilon, math.Inf(1))
		if !isHit {
			return throughput.MultiplyVec(backgroundGradient(r))
		}

		scatter, didScatter := hit.Material.Scatter(r, *hit, rt.sampler)
		if !didScatter {
			return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		r = scatter.Scattered
	}

	// Bounce budget exhausted, no more light is gathered
	return core.Vec3{X: 0, Y: 0, Z: 0}
}

// vec3ToColor converts an averaged linear color to RGBA: gamma 2, clamp to
// [0, 0.9999] and scale by 256 so every channel lands in [0, 255]
func vec3ToColor(colorVec core.Vec3) color.RGBA {
	colorVec = colorVec.GammaCorrect(2.0)
	colorVec = colorVec.Clamp(0.0, 0.9999)

	return color.RGBA{
		R: uint8(256 * colorVec.X),
		G: uint8(256 * colorVec.Y),
		B: uint8(256 * colorVec.Z),
		A: 255,
	}
}

// samplePixel accumulates SamplesPerPixel jittered samples for pixel (i, j),
// where j counts rows from the bottom of the image
func (rt *Raytracer) samplePixel(i, j int, ps *PixelStats) {
	// A single column or row has no extent to divide over
	uDen := float64(max(1, rt.width-1))
	vDen := float64(max(1, rt.height-1))

	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		jitter := rt.sampler.Get2D()
		s := (float64(i) + jitter.X) / uDen
		t := (float64(j) + jitter.Y) / vDen

		ray := rt.camera.GetRay(s, t, rt.sampler)
		ps.AddSample(rt.RayColor(ray, rt.config.MaxDepth))
	}
}

// RenderPass renders every pixel with multi-sampling and returns an image.
// Rows are rendered top to bottom, columns left to right.
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	stats := RenderStats{
		Width:       rt.width,
		Height:      rt.height,
		TotalPixels: rt.width * rt.height,
		MaxDepth:    rt.config.MaxDepth,
	}

	progressStep := max(1, rt.height/10)

	for j := rt.height - 1; j >= 0; j-- {
		remaining := j + 1
		if remaining == rt.height || remaining%progressStep == 0 {
			rt.logger.Printf("Scanlines remaining: %d\n", remaining)
		}

		for i := 0; i < rt.width; i++ {
			var ps PixelStats
			rt.samplePixel(i, j, &ps)

			img.SetRGBA(i, rt.height-1-j, vec3ToColor(ps.GetColor()))
			stats.TotalSamples += ps.SampleCount
		}
	}

	stats.AverageSamples = float64(stats.TotalSamples) / float64(stats.TotalPixels)
	stats.AverageLum = CalculateAverageLuminance(img)
	rt.logger.Printf("Done. %dx%d pixels, %.1f samples per pixel, max depth %d\n",
		stats.Width, stats.Height, stats.AverageSamples, stats.MaxDepth)

	return img, stats
}

// RenderTo renders a pass and writes it to w as P3 text
func (rt *Raytracer) RenderTo(w io.Writer) (RenderStats, error) {
	img, stats := rt.RenderPass()
	if err := WritePPM(w, img); err != nil {
		return stats, err
	}
	return stats, nil
}
