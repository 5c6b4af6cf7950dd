package compress

// Format is the output texture format.
type Format uint8

const (
	// FormatRGB is an uncompressed layout described by the pixel format and
	// pixel type of the Options.
	FormatRGB Format = iota

	FormatDXT1  // BC1, opaque
	FormatDXT1a // BC1 with 1-bit alpha
	FormatDXT3  // BC2
	FormatDXT5  // BC3
	FormatDXT5n // BC3 with the normal map swizzle
	FormatBC4   // single channel, unsigned
	FormatBC4S  // single channel, signed
	FormatBC5   // two channels, unsigned
	FormatBC5S  // two channels, signed
	FormatBC6U  // HDR, unsigned float
	FormatBC6S  // HDR, signed float
	FormatBC7

	// formatCount is the number of formats (for internal use).
	formatCount
)

var formatNames = [formatCount]string{
	FormatRGB:   "RGB",
	FormatDXT1:  "DXT1",
	FormatDXT1a: "DXT1a",
	FormatDXT3:  "DXT3",
	FormatDXT5:  "DXT5",
	FormatDXT5n: "DXT5n",
	FormatBC4:   "BC4",
	FormatBC4S:  "BC4S",
	FormatBC5:   "BC5",
	FormatBC5S:  "BC5S",
	FormatBC6U:  "BC6U",
	FormatBC6S:  "BC6S",
	FormatBC7:   "BC7",
}

// String returns the conventional name of the format.
func (f Format) String() string {
	if !f.IsValid() {
		return "Unknown"
	}
	return formatNames[f]
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// IsBlockCompressed reports whether f stores 4x4 texel blocks.
func (f Format) IsBlockCompressed() bool {
	return f != FormatRGB && f.IsValid()
}

// BlockSize returns the number of bytes per 4x4 block, or 0 for FormatRGB.
func (f Format) BlockSize() int {
	switch f {
	case FormatDXT1, FormatDXT1a, FormatBC4, FormatBC4S:
		return 8
	case FormatRGB:
		return 0
	default:
		if f.IsValid() {
			return 16
		}
		return 0
	}
}

// fourCC returns the DDS FOURCC code of a block format.
func (f Format) fourCC() uint32 {
	switch f {
	case FormatDXT1, FormatDXT1a:
		return makeFourCC('D', 'X', 'T', '1')
	case FormatDXT3:
		return makeFourCC('D', 'X', 'T', '3')
	case FormatDXT5, FormatDXT5n:
		return makeFourCC('D', 'X', 'T', '5')
	case FormatBC4:
		return makeFourCC('A', 'T', 'I', '1')
	case FormatBC4S:
		return makeFourCC('B', 'C', '4', 'S')
	case FormatBC5:
		return makeFourCC('A', 'T', 'I', '2')
	case FormatBC5S:
		return makeFourCC('B', 'C', '5', 'S')
	case FormatBC6U, FormatBC6S, FormatBC7:
		// Only expressible through the DX10 extended header.
		return makeFourCC('D', 'X', '1', '0')
	default:
		return 0
	}
}

func makeFourCC(a, b, c, d byte) uint32 {
	return uint32(a) | uint32(b)<<8 | uint32(c)<<16 | uint32(d)<<24
}

// Quality trades encoding speed for fidelity. Only block encoders consult it.
type Quality uint8

const (
	QualityFastest Quality = iota
	QualityNormal
	QualityProduction
	QualityHighest
)

// String returns the name of the quality level.
func (q Quality) String() string {
	switch q {
	case QualityFastest:
		return "Fastest"
	case QualityNormal:
		return "Normal"
	case QualityProduction:
		return "Production"
	case QualityHighest:
		return "Highest"
	default:
		return "Unknown"
	}
}

// PixelType is the numeric interpretation of uncompressed channels.
type PixelType uint8

const (
	// PixelTypeUnsignedNorm maps [0, 1] to the full unsigned range of each
	// channel mask.
	PixelTypeUnsignedNorm PixelType = iota

	// PixelTypeSignedNorm maps [-1, 1] to two's complement channel values.
	PixelTypeSignedNorm

	// PixelTypeFloat stores IEEE half (64-bit texels) or single (128-bit
	// texels) precision RGBA.
	PixelTypeFloat
)

// String returns the name of the pixel type.
func (t PixelType) String() string {
	switch t {
	case PixelTypeUnsignedNorm:
		return "UnsignedNorm"
	case PixelTypeSignedNorm:
		return "SignedNorm"
	case PixelTypeFloat:
		return "Float"
	default:
		return "Unknown"
	}
}
