package scene

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Material type names accepted in scene files
const (
	MaterialLambertian = "lambertian"
	MaterialMetal      = "metal"
	MaterialDielectric = "dielectric"
)

// SceneConfig is the on-disk form of a Scene
type SceneConfig struct {
	Name      string                    `json:"name,omitempty"`
	Camera    CameraCfg                 `json:"camera"`
	Sampling  *SamplingCfg              `json:"sampling,omitempty"`
	Materials map[string]MaterialConfig `json:"materials"`
	Spheres   []SphereConfig            `json:"spheres"`
}

// CameraCfg mirrors renderer.CameraConfig with JSON-friendly vectors
type CameraCfg struct {
	LookFrom      [3]float64  `json:"lookFrom"`
	LookAt        [3]float64  `json:"lookAt"`
	Up            *[3]float64 `json:"up,omitempty"` // defaults to +Y
	Width         int         `json:"width"`
	AspectRatio   float64     `json:"aspectRatio"`
	VFov          float64     `json:"vfov"`
	Aperture      float64     `json:"aperture,omitempty"`
	FocusDistance float64     `json:"focusDistance,omitempty"` // 0 focuses on lookAt
}

// SamplingCfg mirrors renderer.SamplingConfig
type SamplingCfg struct {
	SamplesPerPixel int   `json:"samplesPerPixel"`
	MaxDepth        int   `json:"maxDepth"`
	Seed            int64 `json:"seed,omitempty"`
}

// MaterialConfig describes one named material. Albedo applies to lambertian
// and metal, Fuzz to metal, IOR to dielectric.
type MaterialConfig struct {
	Type   string     `json:"type"`
	Albedo [3]float64 `json:"albedo"`
	Fuzz   float64    `json:"fuzz,omitempty"`
	IOR    float64    `json:"ior,omitempty"`
}

// SphereConfig places a sphere using a material by name. Spheres naming the
// same material share one instance.
type SphereConfig struct {
	Center   [3]float64 `json:"center"`
	Radius   float64    `json:"radius"`
	Material string     `json:"material"`
}

func toVec3(a [3]float64) core.Vec3 {
	return core.NewVec3(a[0], a[1], a[2])
}

func fromVec3(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// Build converts the config into a validated Scene
func (c SceneConfig) Build() (*Scene, error) {
	up := core.NewVec3(0, 1, 0)
	if c.Camera.Up != nil {
		up = toVec3(*c.Camera.Up)
	}
	cameraConfig := renderer.CameraConfig{
		Center:        toVec3(c.Camera.LookFrom),
		LookAt:        toVec3(c.Camera.LookAt),
		Up:            up,
		Width:         c.Camera.Width,
		AspectRatio:   c.Camera.AspectRatio,
		VFov:          c.Camera.VFov,
		Aperture:      c.Camera.Aperture,
		FocusDistance: c.Camera.FocusDistance,
	}

	s := NewScene(c.Name, cameraConfig)
	if c.Sampling != nil {
		s.SamplingConfig = renderer.SamplingConfig{
			SamplesPerPixel: c.Sampling.SamplesPerPixel,
			MaxDepth:        c.Sampling.MaxDepth,
			Seed:            c.Sampling.Seed,
		}
	}

	materials := make(map[string]material.Material, len(c.Materials))
	for name, mc := range c.Materials {
		mat, err := mc.build()
		if err != nil {
			return nil, fmt.Errorf("%w: material %q: %v", ErrInvalidScene, name, err)
		}
		materials[name] = mat
	}

	for i, sc := range c.Spheres {
		mat, ok := materials[sc.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d references undefined material %q", ErrInvalidScene, i, sc.Material)
		}
		s.Add(geometry.NewSphere(toVec3(sc.Center), sc.Radius, mat))
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (mc MaterialConfig) build() (material.Material, error) {
	switch mc.Type {
	case MaterialLambertian:
		return material.NewLambertian(toVec3(mc.Albedo)), nil
	case MaterialMetal:
		return material.NewMetal(toVec3(mc.Albedo), mc.Fuzz), nil
	case MaterialDielectric:
		if mc.IOR <= 0 {
			return nil, fmt.Errorf("dielectric needs a positive ior, got %g", mc.IOR)
		}
		return material.NewDielectric(mc.IOR), nil
	default:
		return nil, fmt.Errorf("unknown material type %q (want %s, %s or %s)",
			mc.Type, MaterialLambertian, MaterialMetal, MaterialDielectric)
	}
}

// NewSceneConfig converts a scene made of spheres with lambertian, metal or
// dielectric materials into its on-disk form. Shared materials keep a single entry.
func NewSceneConfig(s *Scene) (SceneConfig, error) {
	up := fromVec3(s.CameraConfig.Up)
	c := SceneConfig{
		Name: s.Name,
		Camera: CameraCfg{
			LookFrom:      fromVec3(s.CameraConfig.Center),
			LookAt:        fromVec3(s.CameraConfig.LookAt),
			Up:            &up,
			Width:         s.CameraConfig.Width,
			AspectRatio:   s.CameraConfig.AspectRatio,
			VFov:          s.CameraConfig.VFov,
			Aperture:      s.CameraConfig.Aperture,
			FocusDistance: s.CameraConfig.FocusDistance,
		},
		Sampling: &SamplingCfg{
			SamplesPerPixel: s.SamplingConfig.SamplesPerPixel,
			MaxDepth:        s.SamplingConfig.MaxDepth,
			Seed:            s.SamplingConfig.Seed,
		},
		Materials: make(map[string]MaterialConfig),
	}

	if s.World == nil {
		return c, nil
	}

	names := make(map[material.Material]string)
	for i, shape := range s.World.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			return SceneConfig{}, fmt.Errorf("%w: shape %d is %T, only spheres can be saved", ErrInvalidScene, i, shape)
		}

		name, seen := names[sphere.Material]
		if !seen {
			mc, err := newMaterialConfig(sphere.Material)
			if err != nil {
				return SceneConfig{}, fmt.Errorf("%w: sphere %d: %v", ErrInvalidScene, i, err)
			}
			name = fmt.Sprintf("%s-%d", mc.Type, len(names))
			names[sphere.Material] = name
			c.Materials[name] = mc
		}

		c.Spheres = append(c.Spheres, SphereConfig{
			Center:   fromVec3(sphere.Center),
			Radius:   sphere.Radius,
			Material: name,
		})
	}
	return c, nil
}

func newMaterialConfig(mat material.Material) (MaterialConfig, error) {
	switch m := mat.(type) {
	case *material.Lambertian:
		return MaterialConfig{Type: MaterialLambertian, Albedo: fromVec3(m.Albedo)}, nil
	case *material.Metal:
		return MaterialConfig{Type: MaterialMetal, Albedo: fromVec3(m.Albedo), Fuzz: m.Fuzzness}, nil
	case *material.Dielectric:
		return MaterialConfig{Type: MaterialDielectric, IOR: m.RefractiveIndex}, nil
	default:
		return MaterialConfig{}, fmt.Errorf("material %T cannot be saved", mat)
	}
}

// Decode reads a scene file from r
func Decode(r io.Reader) (*Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var c SceneConfig
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return c.Build()
}

// Encode writes s to w as indented JSON
func Encode(w io.Writer, s *Scene) error {
	c, err := NewSceneConfig(s)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	return nil
}

// Load reads a Scene from a JSON file. Scenes without a name take the file name.
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Save writes a Scene to a JSON file
func Save(path string, s *Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create scene: %w", err)
	}

	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close scene: %w", err)
	}
	return nil
}
