package main

import (
	"bytes"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

func TestCreateScene(t *testing.T) {
	tests := []struct {
		name        string
		sceneType   string
		expectError bool
	}{
		{"default scene", "default", false},
		{"ground scene", "ground", false},
		{"cover scene", "cover", false},
		{"simple scene", "simple", false},
		{"snowman scene", "snowman", false},
		{"sphere grid scene", "sphere-grid", false},

		{"unknown scene", "nonexistent", true},
		{"missing scene file", "scenes/nonexistent.json", true},
		{"empty scene name", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := createScene(options{sceneName: tt.sceneType})

			if tt.expectError {
				if err == nil {
					t.Errorf("Expected error for scene type '%s', but got none", tt.sceneType)
				}
				if s != nil {
					t.Errorf("Expected nil scene for invalid scene type '%s', got %T", tt.sceneType, s)
				}
				return
			}

			if err != nil {
				t.Fatalf("Unexpected error for scene type '%s': %v", tt.sceneType, err)
			}
			if s.CameraConfig.Width <= 0 {
				t.Errorf("Scene camera width should be positive, got %d", s.CameraConfig.Width)
			}
			if s.SamplingConfig.SamplesPerPixel <= 0 {
				t.Errorf("Scene samples per pixel should be positive, got %d", s.SamplingConfig.SamplesPerPixel)
			}
		})
	}
}

func TestCreateScene_Overrides(t *testing.T) {
	s, err := createScene(options{sceneName: "cover", width: 16, spp: 3, depth: 7, seedSet: true})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	if s.CameraConfig.Width != 16 {
		t.Errorf("Expected width 16, got %d", s.CameraConfig.Width)
	}
	if s.SamplingConfig.SamplesPerPixel != 3 || s.SamplingConfig.MaxDepth != 7 {
		t.Errorf("Expected spp 3 and depth 7, got %+v", s.SamplingConfig)
	}
	if s.SamplingConfig.Seed != 0 {
		t.Errorf("Expected explicit seed 0, got %d", s.SamplingConfig.Seed)
	}

	// Unset flags keep scene defaults
	s, err = createScene(options{sceneName: "cover"})
	if err != nil {
		t.Fatalf("createScene failed: %v", err)
	}
	if s.SamplingConfig.Seed != renderer.DefaultSamplingConfig().Seed {
		t.Errorf("Expected scene seed to be kept, got %d", s.SamplingConfig.Seed)
	}
}

func TestParseFlags(t *testing.T) {
	var stderr bytes.Buffer
	opts, err := parseFlags([]string{"-scene", "snowman", "-width", "64", "-seed", "9", "-quiet"}, &stderr)
	if err != nil {
		t.Fatalf("parseFlags failed: %v", err)
	}
	if opts.sceneName != "snowman" || opts.width != 64 || opts.seed != 9 || !opts.seedSet || !opts.quiet {
		t.Errorf("Unexpected options %+v", opts)
	}
	if opts.outPath != "-" {
		t.Errorf("Expected stdout output by default, got %q", opts.outPath)
	}

	if _, err := parseFlags([]string{"-spp", "-1"}, &stderr); err == nil {
		t.Error("Expected error for negative spp")
	}
	if _, err := parseFlags([]string{"-bogus"}, &stderr); err == nil {
		t.Error("Expected error for unknown flag")
	}
	if _, err := parseFlags([]string{"extra"}, &stderr); err == nil {
		t.Error("Expected error for positional arguments")
	}
}

func TestParseFlags_Help(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseFlags([]string{"-help"}, &stderr)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("Expected flag.ErrHelp, got %v", err)
	}
	help := stderr.String()
	for _, want := range []string{"Usage:", "-scene", "snowman"} {
		if !strings.Contains(help, want) {
			t.Errorf("Expected help output to mention %q", want)
		}
	}
}

func TestRun_RendersToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-scene", "ground"}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 3+4 {
		t.Fatalf("Expected header plus 4 pixel lines, got %d lines", len(lines))
	}
	if lines[0] != "P3" || lines[1] != "2 2" || lines[2] != "255" {
		t.Errorf("Unexpected header %q", lines[:3])
	}

	// Progress goes to stderr so stdout carries only pixels
	if !strings.Contains(stderr.String(), "Scanlines remaining") {
		t.Errorf("Expected progress on stderr, got %q", stderr.String())
	}
}

func TestRun_Quiet(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-scene", "ground", "-quiet"}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stderr.Len() != 0 {
		t.Errorf("Expected no stderr output with -quiet, got %q", stderr.String())
	}
}

func TestRun_OutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.ppm")

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-scene", "ground", "-width", "4", "-out", path, "-quiet"}, &stdout, &stderr); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if stdout.Len() != 0 {
		t.Errorf("Expected nothing on stdout when writing a file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	if !strings.HasPrefix(string(data), "P3\n4 4\n255\n") {
		t.Errorf("Unexpected file header %q", string(data[:min(len(data), 16)]))
	}
}

func TestRun_OutputFileErrors(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"output is a directory", t.TempDir()},
		{"missing parent directory", filepath.Join(t.TempDir(), "missing", "out.ppm")},
	}
	if _, err := os.Stat("/dev/full"); err == nil {
		tests = append(tests, struct {
			name string
			path string
		}{"device out of space", "/dev/full"})
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run([]string{"-scene", "ground", "-out", tt.path, "-quiet"}, &stdout, &stderr)
			if err == nil {
				t.Fatalf("Expected error writing to %s", tt.path)
			}
			if !strings.Contains(err.Error(), "output file") {
				t.Errorf("Expected output file error, got %v", err)
			}
		})
	}
}

func TestRun_SaveAndRenderSceneFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "saved.json")

	var stdout, stderr bytes.Buffer
	if err := run([]string{"-scene", "snowman", "-save", path, "-quiet"}, &stdout, &stderr); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded, err := scene.Load(path)
	if err != nil {
		t.Fatalf("Saved scene should load: %v", err)
	}
	if loaded.World.Len() != 24 {
		t.Errorf("Expected 24 spheres in saved snowman scene, got %d", loaded.World.Len())
	}

	stdout.Reset()
	if err := run([]string{"-scene", path, "-width", "6", "-spp", "1", "-depth", "2", "-quiet"}, &stdout, &stderr); err != nil {
		t.Fatalf("render from file failed: %v", err)
	}
	if !strings.HasPrefix(stdout.String(), "P3\n6 10\n255\n") {
		t.Errorf("Unexpected header for portrait render: %q", stdout.String()[:min(stdout.Len(), 16)])
	}
}

func TestRun_Errors(t *testing.T) {
	badCamera := filepath.Join(t.TempDir(), "bad_camera.json")
	content := `{"camera": {"lookFrom": [0, 1, 5], "lookAt": [0, 1, 5], "width": 4, "aspectRatio": 1, "vfov": 60},
"materials": {"m": {"type": "lambertian", "albedo": [1, 1, 1]}},
"spheres": [{"center": [0, 0, 0], "radius": 1, "material": "m"}]}`
	if err := os.WriteFile(badCamera, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	tests := []struct {
		name string
		args []string
		is   error
	}{
		{"unknown scene", []string{"-scene", "nope"}, scene.ErrUnknownScene},
		{"degenerate camera", []string{"-scene", badCamera}, renderer.ErrInvalidCamera},
		{"missing scene file", []string{"-scene", "missing.json"}, os.ErrNotExist},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			err := run(tt.args, &stdout, &stderr)
			if !errors.Is(err, tt.is) {
				t.Errorf("Expected %v, got %v", tt.is, err)
			}
			if stdout.Len() != 0 {
				t.Errorf("Expected no image output on error")
			}
		})
	}
}

func TestRun_List(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if err := run([]string{"-list"}, &stdout, &stderr); err != nil {
		t.Fatalf("run -list failed: %v", err)
	}
	for _, name := range scene.Names() {
		if !strings.Contains(stdout.String(), name) {
			t.Errorf("Expected scene %q in listing", name)
		}
	}
}
