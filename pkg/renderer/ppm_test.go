package renderer

import (
	"errors"
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestWritePPM_Format(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{12, 34, 56, 255})

	var sb strings.Builder
	if err := WritePPM(&sb, img); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	expected := "P3\n2 2\n255\n" +
		"255 0 0\n" +
		"0 255 0\n" +
		"0 0 255\n" +
		"12 34 56\n"
	if sb.String() != expected {
		t.Errorf("Unexpected output:\n%s\nwant:\n%s", sb.String(), expected)
	}
}

func TestWritePPM_NonRectangular(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 1))

	var sb strings.Builder
	if err := WritePPM(&sb, img); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if lines[1] != "3 1" {
		t.Errorf("Expected width before height, got %q", lines[1])
	}
	if len(lines) != 3+3 {
		t.Errorf("Expected 3 pixel lines, got %d", len(lines)-3)
	}
}

var errWriteFailed = errors.New("write failed")

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errWriteFailed
}

func TestWritePPM_PropagatesWriteError(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))

	err := WritePPM(failingWriter{}, img)
	if !errors.Is(err, errWriteFailed) {
		t.Errorf("Expected wrapped write error, got %v", err)
	}
}
