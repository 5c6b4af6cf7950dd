package image

import (
	"errors"
	"fmt"
	stdimage "image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	// Register additional decoders with image.Decode.
	_ "image/gif"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// I/O errors.
var (
	// ErrUnsupportedFormat is returned when no encoder matches a file extension.
	ErrUnsupportedFormat = errors.New("image: unsupported format")

	// ErrEmptyImage is returned when a decoded image has no pixels.
	ErrEmptyImage = errors.New("image: empty image")
)

// Decoded is the result of decoding an image file.
type Decoded struct {
	Buffer   *Buffer
	Format   string // name registered with image.RegisterFormat
	HasAlpha bool
}

// Decode reads an image in any registered format (PNG, JPEG, GIF, BMP, TIFF,
// WebP) and converts it to a float buffer.
//
// Components are normalized to [0, 1]. When signed is true the color
// channels are mapped to [-1, 1]; alpha is left in [0, 1].
func Decode(r io.Reader, signed bool) (*Decoded, error) {
	img, format, err := stdimage.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("image: decode: %w", err)
	}

	buf, err := FromStdImage(img, signed)
	if err != nil {
		return nil, err
	}

	return &Decoded{
		Buffer:   buf,
		Format:   format,
		HasAlpha: buf.MinAlpha() < 1,
	}, nil
}

// FromStdImage converts img into a single-slice float buffer.
func FromStdImage(img stdimage.Image, signed bool) (*Buffer, error) {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}

	buf, err := GetFromDefault(width, height, 1)
	if err != nil {
		return nil, err
	}

	// NRGBA64 keeps straight alpha at 16 bits for every source model.
	src, ok := img.(*stdimage.NRGBA64)
	if !ok {
		src = stdimage.NewNRGBA64(stdimage.Rect(0, 0, width, height))
		draw.Draw(src, src.Bounds(), img, bounds.Min, draw.Src)
	}

	const inv = 1.0 / 0xffff
	r, g, b, a := buf.planes[0], buf.planes[1], buf.planes[2], buf.planes[3]
	for y := range height {
		row := src.Pix[y*src.Stride:]
		for x := range width {
			i := y*width + x
			o := x * 8
			r[i] = float32(uint16(row[o])<<8|uint16(row[o+1])) * inv
			g[i] = float32(uint16(row[o+2])<<8|uint16(row[o+3])) * inv
			b[i] = float32(uint16(row[o+4])<<8|uint16(row[o+5])) * inv
			a[i] = float32(uint16(row[o+6])<<8|uint16(row[o+7])) * inv
		}
	}

	if signed {
		for c := range 3 {
			p := buf.planes[c]
			for i := range p {
				p[i] = p[i]*2 - 1
			}
		}
	}

	return buf, nil
}

// ToStdImage converts slice z of b to an NRGBA64 image.
// Values are clamped to [0, 1]; when signed is true the color channels are
// first mapped from [-1, 1].
func (b *Buffer) ToStdImage(z int, signed bool) *stdimage.NRGBA64 {
	img := stdimage.NewNRGBA64(stdimage.Rect(0, 0, b.width, b.height))
	off := z * b.width * b.height

	for y := range b.height {
		for x := range b.width {
			i := off + y*b.width + x
			var c [Channels]uint16
			for ch := range Channels {
				v := b.planes[ch][i]
				if signed && ch < 3 {
					v = (v + 1) * 0.5
				}
				c[ch] = unorm16(v)
			}
			img.SetNRGBA64(x, y, color.NRGBA64{R: c[0], G: c[1], B: c[2], A: c[3]})
		}
	}

	return img
}

func unorm16(v float32) uint16 {
	v = min(max(v, 0), 1)
	return uint16(v*0xffff + 0.5)
}

// Encode writes img in the format implied by the path extension:
// .png, .jpg/.jpeg, .bmp, .tif/.tiff.
func Encode(w io.Writer, path string, img stdimage.Image) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(w, img)
	case ".jpg", ".jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case ".bmp":
		err = bmp.Encode(w, img)
	case ".tif", ".tiff":
		err = tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return fmt.Errorf("image: encode: %w", err)
	}
	return nil
}
