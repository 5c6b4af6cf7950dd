package texel

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// filledSurface returns a w x h surface with every texel set to v.
func filledSurface(t *testing.T, w, h int, v [4]float32) *Surface {
	t.Helper()
	s := NewSurface()
	if err := s.Allocate(w, h, 1); err != nil {
		t.Fatalf("Allocate(%d, %d, 1) error = %v", w, h, err)
	}
	s.buf.Fill(v)
	return s
}

// gradientImage returns an opaque w x h image with a horizontal ramp in red.
func gradientImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / max(w-1, 1)), G: 128, B: 0, A: 255})
		}
	}
	return img
}

// writePNG encodes img into dir and returns its path.
func writePNG(t *testing.T, dir, name string, img image.Image) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func absf32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func approxEqual(a, b, eps float32) bool {
	return absf32(a-b) <= eps
}
