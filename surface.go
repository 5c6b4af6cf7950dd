package texel

import (
	"bytes"
	"errors"
	"fmt"
	stdimage "image"
	"io"
	"io/fs"
	"os"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/texel/internal/image"
)

// MaxPixels is the largest texel count (width*height*depth) a surface can
// hold.
const MaxPixels = image.MaxTexels

// Surface is an uncompressed texture held as four float32 planes plus the
// metadata that drives filtering.
//
// A Surface starts empty. Load, Decode, SetImage or Allocate give it pixel
// data; BuildNextMipmap replaces that data with the next smaller level.
//
// Thread safety: Surface is not safe for concurrent use. Each surface owns
// its pixels exclusively; use Clone to hand a copy to another goroutine.
type Surface struct {
	buf      *image.Buffer
	hasAlpha bool
	signed   bool

	wrap      WrapMode
	alpha     AlphaMode
	normalMap bool
}

// NewSurface returns an empty surface with clamp wrapping, no alpha mode and
// the normal-map flag cleared.
func NewSurface() *Surface {
	return &Surface{}
}

// Load decodes the image file at path, replacing the surface contents.
//
// PNG, JPEG, GIF, BMP, TIFF and WebP files are recognized. When
// expectSigned is true the color channels are mapped from [0, 1] to
// [-1, 1]. Load reports whether any texel has alpha below 1.
//
// A missing path gives ErrNotFound and undecodable data gives ErrDecode.
// On error the surface keeps its previous contents.
func (s *Surface) Load(path string, expectSigned bool) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return false, fmt.Errorf("texel: stat %s: %w", path, err)
	}

	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("texel: open %s: %w", path, err)
	}
	defer f.Close()

	hasAlpha, err := s.Decode(f, expectSigned)
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	return hasAlpha, nil
}

// Decode is Load for image data read from r.
func (s *Surface) Decode(r io.Reader, expectSigned bool) (bool, error) {
	d, err := image.Decode(r, expectSigned)
	if err != nil {
		return false, bufferError(err)
	}

	s.replace(d.Buffer, d.HasAlpha, expectSigned)
	Logger().Debug("texel: surface decoded",
		"format", d.Format,
		"width", d.Buffer.Width(),
		"height", d.Buffer.Height(),
		"alpha", d.HasAlpha)
	return d.HasAlpha, nil
}

// SetImage replaces the surface contents with img.
func (s *Surface) SetImage(img stdimage.Image, expectSigned bool) (bool, error) {
	if img == nil {
		return false, fmt.Errorf("%w: nil image", ErrInvalidArgument)
	}
	buf, err := image.FromStdImage(img, expectSigned)
	if err != nil {
		return false, bufferError(err)
	}

	hasAlpha := buf.MinAlpha() < 1
	s.replace(buf, hasAlpha, expectSigned)
	return hasAlpha, nil
}

// Allocate replaces the surface contents with zeroed texels.
func (s *Surface) Allocate(width, height, depth int) error {
	buf, err := image.GetFromDefault(width, height, depth)
	if err != nil {
		return bufferError(err)
	}
	s.replace(buf, false, false)
	return nil
}

// bufferError maps internal buffer errors onto the package taxonomy.
func bufferError(err error) error {
	switch {
	case errors.Is(err, image.ErrInvalidDimensions), errors.Is(err, image.ErrOutOfBounds),
		errors.Is(err, image.ErrInvalidFilter):
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	case errors.Is(err, image.ErrTooLarge):
		return fmt.Errorf("%w: %w", ErrAllocation, err)
	default:
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
}

func (s *Surface) replace(buf *image.Buffer, hasAlpha, signed bool) {
	if s.buf != nil {
		image.PutToDefault(s.buf)
	}
	s.buf = buf
	s.hasAlpha = hasAlpha
	s.signed = signed
}

// IsLoaded reports whether the surface holds pixel data.
func (s *Surface) IsLoaded() bool { return s.buf != nil }

// Width returns the width in texels.
func (s *Surface) Width() (int, error) {
	if s.buf == nil {
		return 0, ErrNotLoaded
	}
	return s.buf.Width(), nil
}

// Height returns the height in texels.
func (s *Surface) Height() (int, error) {
	if s.buf == nil {
		return 0, ErrNotLoaded
	}
	return s.buf.Height(), nil
}

// Depth returns the depth in texels; 1 for 2D surfaces.
func (s *Surface) Depth() (int, error) {
	if s.buf == nil {
		return 0, ErrNotLoaded
	}
	return s.buf.Depth(), nil
}

// HasAlpha reports whether the loaded image had any texel with alpha
// below 1.
func (s *Surface) HasAlpha() (bool, error) {
	if s.buf == nil {
		return false, ErrNotLoaded
	}
	return s.hasAlpha, nil
}

// IsSigned reports whether the color channels hold [-1, 1] values.
func (s *Surface) IsSigned() bool { return s.signed }

// WrapMode returns the addressing mode used when filtering.
func (s *Surface) WrapMode() WrapMode { return s.wrap }

// SetWrapMode sets the addressing mode used when filtering.
func (s *Surface) SetWrapMode(m WrapMode) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: wrap mode %d", ErrInvalidArgument, m)
	}
	s.wrap = m
	return nil
}

// AlphaMode returns how alpha relates to color.
func (s *Surface) AlphaMode() AlphaMode { return s.alpha }

// SetAlphaMode sets how alpha relates to color.
func (s *Surface) SetAlphaMode(m AlphaMode) error {
	if !m.IsValid() {
		return fmt.Errorf("%w: alpha mode %d", ErrInvalidArgument, m)
	}
	s.alpha = m
	return nil
}

// IsNormalMap reports whether the surface is flagged as a normal map.
func (s *Surface) IsNormalMap() bool { return s.normalMap }

// SetNormalMap flags the surface as holding normal vectors. The flag is
// carried through Clone and mip generation; filtering does not
// renormalize.
func (s *Surface) SetNormalMap(v bool) { s.normalMap = v }

// TextureType returns Texture3D for surfaces deeper than one slice and
// Texture2D otherwise.
func (s *Surface) TextureType() TextureType {
	if s.buf != nil && s.buf.Depth() > 1 {
		return Texture3D
	}
	return Texture2D
}

// Extent returns the dimensions as a GPU texture extent.
func (s *Surface) Extent() (gputypes.Extent3D, error) {
	if s.buf == nil {
		return gputypes.Extent3D{}, ErrNotLoaded
	}
	w, h, d := s.buf.Bounds()
	return gputypes.Extent3D{
		Width:              uint32(w),
		Height:             uint32(h),
		DepthOrArrayLayers: uint32(d),
	}, nil
}

// Clone returns an independent deep copy of the surface, pixels and
// metadata. Cloning an empty surface gives an empty surface with the same
// metadata.
func (s *Surface) Clone() *Surface {
	c := *s
	if s.buf != nil {
		c.buf = s.buf.Clone()
	}
	return &c
}

// Pixel returns the RGBA value of the texel at (x, y, z).
func (s *Surface) Pixel(x, y, z int) ([4]float32, error) {
	if s.buf == nil {
		return [4]float32{}, ErrNotLoaded
	}
	if s.buf.Index(x, y, z) < 0 {
		return [4]float32{}, fmt.Errorf("%w: texel (%d, %d, %d) outside surface", ErrInvalidArgument, x, y, z)
	}
	return s.buf.At(x, y, z), nil
}

// SetPixel sets the RGBA value of the texel at (x, y, z). It does not
// update HasAlpha.
func (s *Surface) SetPixel(x, y, z int, v [4]float32) error {
	if s.buf == nil {
		return ErrNotLoaded
	}
	if err := s.buf.Set(x, y, z, v); err != nil {
		return bufferError(err)
	}
	return nil
}

// Channel returns plane c (0 = R, 1 = G, 2 = B, 3 = A). The slice aliases
// the surface storage and is only valid until the next mip build, load or
// Release.
func (s *Surface) Channel(c int) ([]float32, error) {
	if s.buf == nil {
		return nil, ErrNotLoaded
	}
	if c < 0 || c >= image.Channels {
		return nil, fmt.Errorf("%w: channel %d", ErrInvalidArgument, c)
	}
	return s.buf.Plane(c), nil
}

// ToImage converts the first depth slice to a 16-bit straight-alpha image.
// Signed surfaces are mapped back to [0, 1].
func (s *Surface) ToImage() (stdimage.Image, error) {
	if s.buf == nil {
		return nil, ErrNotLoaded
	}
	return s.buf.ToStdImage(0, s.signed), nil
}

// Save writes the first depth slice to path. The extension selects the
// encoder: .png, .jpg, .jpeg, .bmp, .tif or .tiff.
func (s *Surface) Save(path string) error {
	img, err := s.ToImage()
	if err != nil {
		return err
	}

	var b bytes.Buffer
	if err := image.Encode(&b, path, img); err != nil {
		if errors.Is(err, image.ErrUnsupportedFormat) {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		return err
	}
	if err := os.WriteFile(path, b.Bytes(), 0o644); err != nil {
		return fmt.Errorf("texel: save %s: %w", path, err)
	}
	return nil
}

// Release returns the pixel storage to the shared pool and empties the
// surface. Metadata is kept.
func (s *Surface) Release() {
	if s.buf != nil {
		image.PutToDefault(s.buf)
	}
	s.buf = nil
	s.hasAlpha = false
	s.signed = false
}
