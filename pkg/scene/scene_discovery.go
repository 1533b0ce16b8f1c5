package scene

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by New
	DisplayName string `json:"displayName"` // Human readable name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to scene file (json type only)
}

type builtinScene struct {
	info  SceneInfo
	build func(...renderer.CameraConfig) *Scene
}

var builtinScenes = []builtinScene{
	{
		info:  SceneInfo{ID: "default", Description: "Spheres of every material with a hollow glass sphere"},
		build: NewDefaultScene,
	},
	{
		info:  SceneInfo{ID: "ground", Description: "Single diffuse ground sphere seen from just above"},
		build: NewGroundScene,
	},
	{
		info:  SceneInfo{ID: "cover", Description: "Random field of small spheres around three large ones"},
		build: NewCoverScene,
	},
	{
		info:  SceneInfo{ID: "simple", Description: "Metal and glass spheres in front of two large mirrors"},
		build: NewSimpleScene,
	},
	{
		info:  SceneInfo{ID: "snowman", Description: "Stacked mirror spheres with a row of fuzzy metal spheres"},
		build: NewSnowmanScene,
	},
	{
		info:  SceneInfo{ID: "sphere-grid", Description: "20x20 grid of rainbow-colored metallic spheres"},
		build: NewSphereGridScene,
	},
}

// ListBuiltinScenes returns metadata for every built-in scene in registration order
func ListBuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		info := b.info
		info.DisplayName = titleCase(info.ID)
		info.Type = "builtin"
		scenes = append(scenes, info)
	}
	return scenes
}

// Names returns the IDs of the built-in scenes
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for _, b := range builtinScenes {
		names = append(names, b.info.ID)
	}
	return names
}

// ListJSONScenes scans dir for scene files. A missing directory yields an empty list.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []SceneInfo{}, nil
		}
		return nil, fmt.Errorf("failed to read scenes directory: %w", err)
	}

	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		nameWithoutExt := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		scenes = append(scenes, SceneInfo{
			ID:          filePath,
			DisplayName: titleCase(nameWithoutExt),
			Type:        "json",
			FilePath:    filePath,
		})
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].DisplayName < scenes[j].DisplayName
	})

	return scenes, nil
}

// ListAllScenes returns the built-in scenes followed by the scene files in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	fileScenes, err := ListJSONScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list scene files: %w", err)
	}
	return append(ListBuiltinScenes(), fileScenes...), nil
}

// New builds the scene called name. Names ending in ".json" are loaded from
// disk; anything else must be a built-in scene ID.
func New(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if strings.HasSuffix(name, ".json") {
		s, err := Load(name)
		if err != nil {
			return nil, err
		}
		if len(cameraOverrides) > 0 {
			s.CameraConfig = renderer.MergeCameraConfig(s.CameraConfig, cameraOverrides[0])
		}
		return s, nil
	}

	for _, b := range builtinScenes {
		if b.info.ID == name {
			return b.build(cameraOverrides...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(Names(), ", "))
}

// titleCase converts a filename-style string to title case
// e.g., "sphere-grid" -> "Sphere Grid"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
