// Package compress holds the configuration consumed by texture compressors.
//
// Options mirror the settings of a native texture compressor: target
// format, quality, color weights, the bit layout of uncompressed pixels,
// row pitch alignment and quantization. Block-compressed formats can be
// described and sized here but are not encoded; Pack handles the
// uncompressed layouts.
package compress

import (
	"errors"
	"fmt"
	"math/bits"

	"github.com/gogpu/gputypes"
)

// Option errors.
var (
	// ErrInvalidOption is returned when a setter receives an out-of-range value.
	ErrInvalidOption = errors.New("compress: invalid option")

	// ErrUnsupportedFormat is returned when packing a block-compressed format.
	ErrUnsupportedFormat = errors.New("compress: unsupported format")
)

// Default pixel format: A8R8G8B8.
const (
	defaultBitCount = 32
	defaultRMask    = 0x00ff0000
	defaultGMask    = 0x0000ff00
	defaultBMask    = 0x000000ff
	defaultAMask    = 0xff000000

	defaultAlphaThreshold = 127
)

// Options configures how a surface is encoded.
//
// The zero value is not ready for use; call NewOptions.
type Options struct {
	format       Format
	quality      Quality
	colorWeights [4]float32

	bitCount  uint32
	masks     [4]uint32 // R, G, B, A
	pixelType PixelType

	pitchAlignment int

	colorDithering bool
	alphaDithering bool
	binaryAlpha    bool
	alphaThreshold int
}

// NewOptions returns options with the default settings.
func NewOptions() *Options {
	o := &Options{}
	o.Reset()
	return o
}

// Reset restores the default settings: uncompressed A8R8G8B8, normal
// quality, equal color weights, byte pitch alignment and no quantization.
func (o *Options) Reset() {
	*o = Options{
		format:         FormatRGB,
		quality:        QualityNormal,
		colorWeights:   [4]float32{0.25, 0.25, 0.25, 0.25},
		bitCount:       defaultBitCount,
		masks:          [4]uint32{defaultRMask, defaultGMask, defaultBMask, defaultAMask},
		pixelType:      PixelTypeUnsignedNorm,
		pitchAlignment: 1,
		alphaThreshold: defaultAlphaThreshold,
	}
}

// SetFormat selects the output format.
func (o *Options) SetFormat(f Format) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: format %d", ErrInvalidOption, f)
	}
	o.format = f
	return nil
}

// Format returns the output format.
func (o *Options) Format() Format { return o.format }

// SetQuality selects the encoder quality level.
func (o *Options) SetQuality(q Quality) error {
	if q > QualityHighest {
		return fmt.Errorf("%w: quality %d", ErrInvalidOption, q)
	}
	o.quality = q
	return nil
}

// Quality returns the encoder quality level.
func (o *Options) Quality() Quality { return o.quality }

// SetColorWeights sets the per-channel error weights used by block
// encoders. Weights must be non-negative with a positive sum; they are
// stored normalized to sum to 1.
func (o *Options) SetColorWeights(r, g, b, a float32) error {
	if r < 0 || g < 0 || b < 0 || a < 0 {
		return fmt.Errorf("%w: negative color weight", ErrInvalidOption)
	}
	sum := r + g + b + a
	if sum <= 0 {
		return fmt.Errorf("%w: color weights sum to zero", ErrInvalidOption)
	}
	o.colorWeights = [4]float32{r / sum, g / sum, b / sum, a / sum}
	return nil
}

// ColorWeights returns the normalized color weights.
func (o *Options) ColorWeights() (r, g, b, a float32) {
	w := o.colorWeights
	return w[0], w[1], w[2], w[3]
}

// SetPixelFormat describes the uncompressed texel layout.
//
// For normalized pixel types bitCount is 8, 16, 24 or 32 and each mask
// selects a contiguous run of bits; masks must not overlap and at least one
// must be set. A zero mask drops the channel. For PixelTypeFloat pass
// bitCount 64 (RGBA16F) or 128 (RGBA32F) with all masks zero.
func (o *Options) SetPixelFormat(bitCount, rmask, gmask, bmask, amask uint32) error {
	masks := [4]uint32{rmask, gmask, bmask, amask}

	switch bitCount {
	case 64, 128:
		if masks != ([4]uint32{}) {
			return fmt.Errorf("%w: float layouts take no masks", ErrInvalidOption)
		}
	case 8, 16, 24, 32:
		if err := validateMasks(bitCount, masks); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: bit count %d", ErrInvalidOption, bitCount)
	}

	o.bitCount = bitCount
	o.masks = masks
	return nil
}

func validateMasks(bitCount uint32, masks [4]uint32) error {
	var union uint32
	for _, m := range masks {
		if m == 0 {
			continue
		}
		if bitCount < 32 && m>>bitCount != 0 {
			return fmt.Errorf("%w: mask %#x exceeds %d bits", ErrInvalidOption, m, bitCount)
		}
		// Contiguous: shifting out trailing zeros leaves 2^n - 1.
		if v := m >> bits.TrailingZeros32(m); v&(v+1) != 0 {
			return fmt.Errorf("%w: mask %#x is not contiguous", ErrInvalidOption, m)
		}
		if union&m != 0 {
			return fmt.Errorf("%w: overlapping masks", ErrInvalidOption)
		}
		union |= m
	}
	if union == 0 {
		return fmt.Errorf("%w: all masks are zero", ErrInvalidOption)
	}
	return nil
}

// PixelFormat returns the bit count and channel masks.
func (o *Options) PixelFormat() (bitCount, rmask, gmask, bmask, amask uint32) {
	return o.bitCount, o.masks[0], o.masks[1], o.masks[2], o.masks[3]
}

// SetPixelType selects the numeric interpretation of uncompressed channels.
func (o *Options) SetPixelType(t PixelType) error {
	if t > PixelTypeFloat {
		return fmt.Errorf("%w: pixel type %d", ErrInvalidOption, t)
	}
	o.pixelType = t
	return nil
}

// PixelType returns the pixel type.
func (o *Options) PixelType() PixelType { return o.pixelType }

// SetPitchAlignment sets the row alignment in bytes for uncompressed
// output. n must be a power of two between 1 and 256.
func (o *Options) SetPitchAlignment(n int) error {
	if n < 1 || n > 256 || n&(n-1) != 0 {
		return fmt.Errorf("%w: pitch alignment %d", ErrInvalidOption, n)
	}
	o.pitchAlignment = n
	return nil
}

// PitchAlignment returns the row alignment in bytes.
func (o *Options) PitchAlignment() int { return o.pitchAlignment }

// SetQuantization configures quantization of uncompressed output.
//
// colorDithering and alphaDithering enable Floyd-Steinberg error diffusion
// when reducing bit depth. binaryAlpha snaps alpha to 0 or 1 using
// alphaThreshold in [0, 255].
func (o *Options) SetQuantization(colorDithering, alphaDithering, binaryAlpha bool, alphaThreshold int) error {
	if alphaThreshold < 0 || alphaThreshold > 255 {
		return fmt.Errorf("%w: alpha threshold %d", ErrInvalidOption, alphaThreshold)
	}
	o.colorDithering = colorDithering
	o.alphaDithering = alphaDithering
	o.binaryAlpha = binaryAlpha
	o.alphaThreshold = alphaThreshold
	return nil
}

// Quantization returns the quantization settings.
func (o *Options) Quantization() (colorDithering, alphaDithering, binaryAlpha bool, alphaThreshold int) {
	return o.colorDithering, o.alphaDithering, o.binaryAlpha, o.alphaThreshold
}

// validateLayout checks that the pixel type and pixel format agree.
func (o *Options) validateLayout() error {
	float := o.bitCount == 64 || o.bitCount == 128
	if float != (o.pixelType == PixelTypeFloat) {
		return fmt.Errorf("%w: %d-bit pixel format with %v pixel type", ErrInvalidOption, o.bitCount, o.pixelType)
	}
	return nil
}

// BytesPerPixel returns the size of an uncompressed texel, or 0 for block
// formats.
func (o *Options) BytesPerPixel() int {
	if o.format.IsBlockCompressed() {
		return 0
	}
	return int(o.bitCount / 8)
}

// Pitch returns the number of bytes per row of texels (or per row of
// blocks for block formats) for the given width.
func (o *Options) Pitch(width int) int {
	if o.format.IsBlockCompressed() {
		return (width + 3) / 4 * o.format.BlockSize()
	}
	row := width * o.BytesPerPixel()
	a := o.pitchAlignment
	return (row + a - 1) &^ (a - 1)
}

// ImageSize returns the number of bytes of one encoded image.
func (o *Options) ImageSize(width, height, depth int) int {
	if o.format.IsBlockCompressed() {
		return o.Pitch(width) * ((height + 3) / 4) * depth
	}
	return o.Pitch(width) * height * depth
}

// D3D9 format codes for uncompressed layouts.
const (
	d3dfmtR8G8B8        = 20
	d3dfmtA8R8G8B8      = 21
	d3dfmtX8R8G8B8      = 22
	d3dfmtR5G6B5        = 23
	d3dfmtA1R5G5B5      = 25
	d3dfmtA4R4G4B4      = 26
	d3dfmtA8            = 28
	d3dfmtA8B8G8R8      = 32
	d3dfmtX8B8G8R8      = 33
	d3dfmtL8            = 50
	d3dfmtQ8W8V8U8      = 63
	d3dfmtA16B16G16R16F = 113
	d3dfmtA32B32G32R32F = 116
)

type layoutKey struct {
	bitCount uint32
	masks    [4]uint32
}

var unormD3D9 = map[layoutKey]uint32{
	{24, [4]uint32{0xff0000, 0xff00, 0xff, 0}}:          d3dfmtR8G8B8,
	{32, [4]uint32{0xff0000, 0xff00, 0xff, 0xff000000}}: d3dfmtA8R8G8B8,
	{32, [4]uint32{0xff0000, 0xff00, 0xff, 0}}:          d3dfmtX8R8G8B8,
	{16, [4]uint32{0xf800, 0x7e0, 0x1f, 0}}:             d3dfmtR5G6B5,
	{16, [4]uint32{0x7c00, 0x3e0, 0x1f, 0x8000}}:        d3dfmtA1R5G5B5,
	{16, [4]uint32{0xf00, 0xf0, 0xf, 0xf000}}:           d3dfmtA4R4G4B4,
	{8, [4]uint32{0, 0, 0, 0xff}}:                       d3dfmtA8,
	{32, [4]uint32{0xff, 0xff00, 0xff0000, 0xff000000}}: d3dfmtA8B8G8R8,
	{32, [4]uint32{0xff, 0xff00, 0xff0000, 0}}:          d3dfmtX8B8G8R8,
	{8, [4]uint32{0xff, 0, 0, 0}}:                       d3dfmtL8,
}

// D3D9Format returns the Direct3D 9 format code of the configuration: a
// FOURCC for block formats, a D3DFMT value for known uncompressed layouts,
// and 0 when there is no equivalent.
func (o *Options) D3D9Format() uint32 {
	if o.format.IsBlockCompressed() {
		return o.format.fourCC()
	}

	switch o.pixelType {
	case PixelTypeFloat:
		switch o.bitCount {
		case 64:
			return d3dfmtA16B16G16R16F
		case 128:
			return d3dfmtA32B32G32R32F
		}
	case PixelTypeSignedNorm:
		if o.bitCount == 32 && o.masks == [4]uint32{0xff, 0xff00, 0xff0000, 0xff000000} {
			return d3dfmtQ8W8V8U8
		}
	default:
		return unormD3D9[layoutKey{o.bitCount, o.masks}]
	}
	return 0
}

// blockGPUFormats maps block formats onto their WebGPU BC equivalents.
// DXT1a shares BC1 and DXT5n shares BC3; the swizzle lives in the data.
var blockGPUFormats = map[Format]gputypes.TextureFormat{
	FormatDXT1:  gputypes.TextureFormatBC1RGBAUnorm,
	FormatDXT1a: gputypes.TextureFormatBC1RGBAUnorm,
	FormatDXT3:  gputypes.TextureFormatBC2RGBAUnorm,
	FormatDXT5:  gputypes.TextureFormatBC3RGBAUnorm,
	FormatDXT5n: gputypes.TextureFormatBC3RGBAUnorm,
	FormatBC4:   gputypes.TextureFormatBC4RUnorm,
	FormatBC4S:  gputypes.TextureFormatBC4RSnorm,
	FormatBC5:   gputypes.TextureFormatBC5RGUnorm,
	FormatBC5S:  gputypes.TextureFormatBC5RGSnorm,
	FormatBC6U:  gputypes.TextureFormatBC6HRGBUfloat,
	FormatBC6S:  gputypes.TextureFormatBC6HRGBFloat,
	FormatBC7:   gputypes.TextureFormatBC7RGBAUnorm,
}

// GPUFormat returns the WebGPU texture format with the same memory layout,
// or TextureFormatUndefined when there is none.
func (o *Options) GPUFormat() gputypes.TextureFormat {
	if o.format.IsBlockCompressed() {
		return blockGPUFormats[o.format]
	}

	switch o.pixelType {
	case PixelTypeFloat:
		switch o.bitCount {
		case 64:
			return gputypes.TextureFormatRGBA16Float
		case 128:
			return gputypes.TextureFormatRGBA32Float
		}
	case PixelTypeUnsignedNorm:
		switch o.D3D9Format() {
		case d3dfmtA8B8G8R8:
			return gputypes.TextureFormatRGBA8Unorm
		case d3dfmtA8R8G8B8:
			return gputypes.TextureFormatBGRA8Unorm
		case d3dfmtL8:
			return gputypes.TextureFormatR8Unorm
		}
	}
	return gputypes.TextureFormatUndefined
}
