package scene

import (
	"bytes"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

func spheres(t *testing.T, s *Scene) []*geometry.Sphere {
	t.Helper()
	var result []*geometry.Sphere
	for i, shape := range s.World.Shapes {
		sphere, ok := shape.(*geometry.Sphere)
		if !ok {
			t.Fatalf("Shape %d is %T, expected sphere", i, shape)
		}
		result = append(result, sphere)
	}
	return result
}

func TestBuiltinScenesValidate(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			s, err := New(name)
			if err != nil {
				t.Fatalf("New(%q) failed: %v", name, err)
			}
			if s.Name != name {
				t.Errorf("Expected scene name %q, got %q", name, s.Name)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Built-in scene should be valid: %v", err)
			}

			// Every built-in scene stands on the ground sphere
			ground := spheres(t, s)[0]
			if !ground.Center.Equals(core.NewVec3(0, -1000, 0)) || ground.Radius != 1000 {
				t.Errorf("Expected ground sphere first, got center %v radius %f", ground.Center, ground.Radius)
			}
		})
	}
}

func TestBuiltinScenesAreDeterministic(t *testing.T) {
	for _, name := range []string{"cover", "simple", "snowman"} {
		t.Run(name, func(t *testing.T) {
			first, _ := New(name)
			second, _ := New(name)

			a, b := spheres(t, first), spheres(t, second)
			if len(a) != len(b) {
				t.Fatalf("Sphere counts differ: %d vs %d", len(a), len(b))
			}
			for i := range a {
				if !a[i].Center.Equals(b[i].Center) || a[i].Radius != b[i].Radius {
					t.Fatalf("Sphere %d differs between builds: %v vs %v", i, a[i].Center, b[i].Center)
				}
			}
		})
	}
}

func TestCoverScene(t *testing.T) {
	s := NewCoverScene()
	all := spheres(t, s)

	// Ground, at most 22x22 small spheres, three large ones
	if len(all) < 1+3+400 || len(all) > 1+3+22*22 {
		t.Errorf("Unexpected sphere count %d", len(all))
	}

	clearing := core.NewVec3(4, 0.2, 0)
	for _, sphere := range all[1 : len(all)-3] {
		if sphere.Radius != 0.2 {
			t.Errorf("Expected small sphere radius 0.2, got %f", sphere.Radius)
		}
		if sphere.Center.Subtract(clearing).Length() <= 0.9 {
			t.Errorf("Small sphere at %v intrudes on the clearing", sphere.Center)
		}
	}

	large := all[len(all)-3:]
	expected := []core.Vec3{core.NewVec3(0, 1, 0), core.NewVec3(-4, 1, 0), core.NewVec3(4, 1, 0)}
	for i, sphere := range large {
		if !sphere.Center.Equals(expected[i]) || sphere.Radius != 1 {
			t.Errorf("Large sphere %d: expected center %v, got %v", i, expected[i], sphere.Center)
		}
	}
}

func TestSnowmanScene(t *testing.T) {
	s := NewSnowmanScene()
	all := spheres(t, s)

	if len(all) != 1+3+20 {
		t.Fatalf("Expected 24 spheres, got %d", len(all))
	}

	// The three body spheres share a single mirror material
	if all[1].Material != all[2].Material || all[2].Material != all[3].Material {
		t.Error("Expected body spheres to share one material instance")
	}

	for i, sphere := range all[4:] {
		if sphere.Center.X != float64(i-10) {
			t.Errorf("Expected distant sphere %d at x=%d, got %f", i, i-10, sphere.Center.X)
		}
		if sphere.Center.Z < 0 || sphere.Center.Z >= 10 {
			t.Errorf("Distant sphere z=%f outside [0, 10)", sphere.Center.Z)
		}
	}
}

func TestDefaultScene_HollowGlass(t *testing.T) {
	found := false
	for _, sphere := range spheres(t, NewDefaultScene()) {
		if sphere.Radius < 0 {
			found = true
		}
	}
	if !found {
		t.Error("Expected the default scene to contain a negative-radius sphere")
	}
}

func TestBuiltinSceneCameraOverrides(t *testing.T) {
	s, err := New("cover", renderer.CameraConfig{Width: 32})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if s.CameraConfig.Width != 32 {
		t.Errorf("Expected width override 32, got %d", s.CameraConfig.Width)
	}
	if s.CameraConfig.VFov != 30 {
		t.Errorf("Expected default vfov 30 to survive override, got %f", s.CameraConfig.VFov)
	}
}

func TestGroundSceneRender(t *testing.T) {
	s := NewGroundScene()

	rt, err := renderer.NewRaytracer(s, nil)
	if err != nil {
		t.Fatalf("NewRaytracer failed: %v", err)
	}

	var buf bytes.Buffer
	if _, err := rt.RenderTo(&buf); err != nil {
		t.Fatalf("RenderTo failed: %v", err)
	}

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	if len(lines) != 3+4 {
		t.Errorf("Expected header plus 4 pixel lines, got %d lines", len(lines))
	}
	if string(lines[1]) != "2 2" {
		t.Errorf("Expected 2x2 image, got %q", lines[1])
	}
}

func TestGroundSceneRender_TopBrighterThanBottom(t *testing.T) {
	for seed := int64(1); seed <= 100; seed++ {
		s := NewGroundScene()
		s.SamplingConfig.Seed = seed

		rt, err := renderer.NewRaytracer(s, nil)
		if err != nil {
			t.Fatalf("NewRaytracer failed: %v", err)
		}
		img, _ := rt.RenderPass()

		for x := 0; x < 2; x++ {
			top, bottom := img.RGBAAt(x, 0), img.RGBAAt(x, 1)
			if bottom.R != 0 || bottom.G != 0 || bottom.B != 0 {
				t.Errorf("Seed %d column %d: expected ground pixel to be black, got %v", seed, x, bottom)
			}
			if int(top.R)+int(top.G)+int(top.B) == 0 {
				t.Errorf("Seed %d column %d: expected sky in top row, got %v", seed, x, top)
			}
		}
	}
}

func TestOklchToRGB_NeutralAxis(t *testing.T) {
	tests := []struct {
		lightness float64
		expected  core.Vec3
	}{
		{0, core.NewVec3(0, 0, 0)},
		{1, core.NewVec3(1, 1, 1)},
	}
	for _, tt := range tests {
		got := oklchToRGB(tt.lightness, 0, 123)
		if got.Subtract(tt.expected).Length() > 1e-6 {
			t.Errorf("oklchToRGB(%g, 0, 123) = %v, want %v", tt.lightness, got, tt.expected)
		}
	}

	// Saturated colors stay inside the unit cube
	c := oklchToRGB(0.7, 0.4, 30)
	if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
		t.Errorf("Expected clamped color, got %v", c)
	}
}
