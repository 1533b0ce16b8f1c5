package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// scenesDir is scanned for scene files by -list
const scenesDir = "scenes"

// options holds parsed command line flags. Zero values and unset flags keep
// the scene's own defaults.
type options struct {
	sceneName string
	width     int
	spp       int
	depth     int
	seed      int64
	seedSet   bool
	outPath   string
	savePath  string
	list      bool
	quiet     bool
	help      bool
}

func newFlagSet(opts *options, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&opts.sceneName, "scene", "default", "Built-in scene name or path to a .json scene file")
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&opts.spp, "spp", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum bounce depth (0 = scene default)")
	fs.Int64Var(&opts.seed, "seed", 0, "Seed for the render sampler (default: scene seed)")
	fs.StringVar(&opts.outPath, "out", "-", "Output PPM file, '-' for stdout")
	fs.StringVar(&opts.savePath, "save", "", "Write the selected scene as JSON to this path instead of rendering")
	fs.BoolVar(&opts.list, "list", false, "List available scenes and exit")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	fs.Usage = func() {
		fmt.Fprintln(output, "Path Tracer")
		fmt.Fprintln(output, "Usage: pathtracer [options] > image.ppm")
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(output)
		fmt.Fprintln(output, "Available scenes:")
		for _, info := range scene.ListBuiltinScenes() {
			fmt.Fprintf(output, "  %-12s - %s\n", info.ID, info.Description)
		}
	}
	return fs
}

// parseFlags parses args into options. -help returns flag.ErrHelp after printing usage.
func parseFlags(args []string, output io.Writer) (options, error) {
	var opts options
	fs := newFlagSet(&opts, output)

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if opts.help {
		fs.Usage()
		return opts, flag.ErrHelp
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})

	if opts.width < 0 || opts.spp < 0 || opts.depth < 0 {
		return opts, fmt.Errorf("width, spp and depth must not be negative")
	}
	return opts, nil
}

// createScene builds the selected scene and applies flag overrides
func createScene(opts options) (*scene.Scene, error) {
	s, err := scene.New(opts.sceneName, renderer.CameraConfig{Width: opts.width})
	if err != nil {
		return nil, err
	}

	if opts.spp > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.spp
	}
	if opts.depth > 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	if opts.seedSet {
		s.SamplingConfig.Seed = opts.seed
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func listScenes(w io.Writer) error {
	scenes, err := scene.ListAllScenes(scenesDir)
	if err != nil {
		return err
	}
	for _, info := range scenes {
		fmt.Fprintf(w, "%-24s %-8s %s\n", info.ID, info.Type, info.Description)
	}
	return nil
}

// renderToFile writes the render to path. Errors from closing the file are
// reported since they can mean the image was not fully written.
func renderToFile(raytracer *renderer.Raytracer, path string) (renderer.RenderStats, error) {
	file, err := os.Create(path)
	if err != nil {
		return renderer.RenderStats{}, fmt.Errorf("failed to create output file: %w", err)
	}

	stats, err := raytracer.RenderTo(file)
	if err != nil {
		file.Close()
		return stats, fmt.Errorf("failed to write output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return stats, fmt.Errorf("failed to close output file: %w", err)
	}
	return stats, nil
}

// run executes the command line and writes the image to stdout unless -out names a file
func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if opts.list {
		return listScenes(stdout)
	}

	var logger core.Logger = renderer.NewWriterLogger(stderr)
	if opts.quiet {
		logger = renderer.NewNopLogger()
	}

	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}

	if opts.savePath != "" {
		if err := scene.Save(opts.savePath, selectedScene); err != nil {
			return err
		}
		logger.Printf("Scene %q saved as %s\n", selectedScene.Name, opts.savePath)
		return nil
	}

	raytracer, err := renderer.NewRaytracer(selectedScene, logger)
	if err != nil {
		return err
	}

	width, height := raytracer.Size()
	logger.Printf("Rendering scene %q: %dx%d, %d primitives, %d samples per pixel, max depth %d\n",
		selectedScene.Name, width, height, selectedScene.GetPrimitiveCount(),
		selectedScene.SamplingConfig.SamplesPerPixel, selectedScene.SamplingConfig.MaxDepth)

	startTime := time.Now()
	var stats renderer.RenderStats
	if opts.outPath == "-" {
		stats, err = raytracer.RenderTo(stdout)
	} else {
		stats, err = renderToFile(raytracer, opts.outPath)
	}
	if err != nil {
		return err
	}

	logger.Printf("Render completed in %v (average luminance %.3f)\n", time.Since(startTime), stats.AverageLum)
	if opts.outPath != "-" {
		logger.Printf("Render saved as %s\n", opts.outPath)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
