package image

import (
	"bytes"
	"errors"
	stdimage "image"
	"image/color"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"
)

func encodePNG(t *testing.T, img stdimage.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return buf.Bytes()
}

func TestDecode_PNG(t *testing.T) {
	src := stdimage.NewNRGBA(stdimage.Rect(0, 0, 5, 3))
	for y := range 3 {
		for x := range 5 {
			src.SetNRGBA(x, y, color.NRGBA{R: 255, G: 0, B: 51, A: 255})
		}
	}

	dec, err := Decode(bytes.NewReader(encodePNG(t, src)), false)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if dec.Format != "png" {
		t.Errorf("Format = %q, want png", dec.Format)
	}
	if dec.HasAlpha {
		t.Error("opaque image reported HasAlpha = true")
	}
	if w, h, d := dec.Buffer.Bounds(); w != 5 || h != 3 || d != 1 {
		t.Errorf("Bounds() = %d,%d,%d, want 5,3,1", w, h, d)
	}

	got := dec.Buffer.At(4, 2, 0)
	want := [Channels]float32{1, 0, 0.2, 1}
	for c := range Channels {
		if absf32(got[c]-want[c]) > 1e-3 {
			t.Errorf("channel %d = %v, want %v", c, got[c], want[c])
		}
	}
}

func TestDecode_Alpha(t *testing.T) {
	src := stdimage.NewNRGBA(stdimage.Rect(0, 0, 2, 2))
	src.SetNRGBA(0, 0, color.NRGBA{R: 10, A: 255})
	src.SetNRGBA(1, 0, color.NRGBA{R: 10, A: 255})
	src.SetNRGBA(0, 1, color.NRGBA{R: 10, A: 255})
	src.SetNRGBA(1, 1, color.NRGBA{R: 10, A: 128})

	dec, err := Decode(bytes.NewReader(encodePNG(t, src)), false)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if !dec.HasAlpha {
		t.Error("translucent image reported HasAlpha = false")
	}
}

func TestDecode_Signed(t *testing.T) {
	src := stdimage.NewGray(stdimage.Rect(0, 0, 2, 1))
	src.SetGray(0, 0, color.Gray{Y: 0})
	src.SetGray(1, 0, color.Gray{Y: 255})

	dec, err := Decode(bytes.NewReader(encodePNG(t, src)), true)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if got := dec.Buffer.At(0, 0, 0); absf32(got[0]+1) > 1e-4 || absf32(got[3]-1) > 1e-4 {
		t.Errorf("black texel = %v, want red -1 and alpha 1", got)
	}
	if got := dec.Buffer.At(1, 0, 0); absf32(got[1]-1) > 1e-4 {
		t.Errorf("white texel = %v, want green 1", got)
	}
}

func TestDecode_BMP(t *testing.T) {
	src := stdimage.NewRGBA(stdimage.Rect(0, 0, 4, 4))
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, src); err != nil {
		t.Fatalf("bmp.Encode() error = %v", err)
	}

	dec, err := Decode(&buf, false)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if dec.Format != "bmp" {
		t.Errorf("Format = %q, want bmp", dec.Format)
	}
}

func TestDecode_Corrupt(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("definitely not an image")), false); err == nil {
		t.Error("Decode() of garbage should fail")
	}

	data := encodePNG(t, stdimage.NewGray(stdimage.Rect(0, 0, 8, 8)))
	if _, err := Decode(bytes.NewReader(data[:len(data)/2]), false); err == nil {
		t.Error("Decode() of a truncated PNG should fail")
	}
}

func TestToStdImage_RoundTrip(t *testing.T) {
	b, _ := NewBuffer(2, 1, 2)
	_ = b.Set(0, 0, 1, [Channels]float32{1, 0.5, 0, 1})
	_ = b.Set(1, 0, 1, [Channels]float32{2, -1, 0, 0.5})

	img := b.ToStdImage(1, false)
	if got := img.NRGBA64At(0, 0); got.R != 0xffff || got.G != 0x8000 {
		t.Errorf("texel 0 = %+v", got)
	}
	// Out-of-range values are clamped.
	if got := img.NRGBA64At(1, 0); got.R != 0xffff || got.G != 0 || got.A != 0x8000 {
		t.Errorf("texel 1 = %+v", got)
	}

	signed := b.ToStdImage(1, true)
	if got := signed.NRGBA64At(1, 0); got.G != 0 {
		t.Errorf("signed -1 = %d, want 0", got.G)
	}
}

func TestEncode(t *testing.T) {
	img := stdimage.NewNRGBA64(stdimage.Rect(0, 0, 3, 3))

	for _, path := range []string{"a.png", "b.JPG", "c.bmp", "d.tiff"} {
		var buf bytes.Buffer
		if err := Encode(&buf, path, img); err != nil {
			t.Errorf("Encode(%q) error = %v", path, err)
			continue
		}
		if _, err := Decode(&buf, false); err != nil {
			t.Errorf("Decode(Encode(%q)) error = %v", path, err)
		}
	}

	if err := Encode(&bytes.Buffer{}, "e.xyz", img); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Encode(.xyz) error = %v, want ErrUnsupportedFormat", err)
	}
}
