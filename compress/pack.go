package compress

import (
	"encoding/binary"
	"fmt"
	"math/bits"

	"github.com/chewxy/math32"
	"github.com/x448/float16"
)

// Planes is planar RGBA float data, x-fastest then y then z.
type Planes [4][]float32

// Pack encodes planes of a width x height x depth image into the
// uncompressed layout described by o.
//
// Rows are padded to the pitch alignment. Block-compressed formats return
// ErrUnsupportedFormat.
func Pack(planes Planes, width, height, depth int, o *Options) ([]byte, error) {
	if o.format.IsBlockCompressed() {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedFormat, o.format)
	}
	if err := o.validateLayout(); err != nil {
		return nil, err
	}
	n := width * height * depth
	for c := range planes {
		if len(planes[c]) < n {
			return nil, fmt.Errorf("%w: plane %d has %d texels, want %d", ErrInvalidOption, c, len(planes[c]), n)
		}
	}

	out := make([]byte, o.ImageSize(width, height, depth))
	if o.pixelType == PixelTypeFloat {
		packFloat(out, planes, width, height, depth, o)
		return out, nil
	}
	packNorm(out, planes, width, height, depth, o)
	return out, nil
}

func packFloat(out []byte, planes Planes, width, height, depth int, o *Options) {
	pitch := o.Pitch(width)
	bpp := o.BytesPerPixel()

	for z := range depth {
		for y := range height {
			row := out[(z*height+y)*pitch:]
			for x := range width {
				i := (z*height+y)*width + x
				px := row[x*bpp:]
				for c := range 4 {
					v := planes[c][i]
					if bpp == 8 {
						binary.LittleEndian.PutUint16(px[c*2:], float16.Fromfloat32(v).Bits())
					} else {
						binary.LittleEndian.PutUint32(px[c*4:], math32.Float32bits(v))
					}
				}
			}
		}
	}
}

// channel describes where one component lives in a packed texel.
type channel struct {
	shift  int
	bits   int
	maxv   uint32
	dither bool
	binary bool
}

func (o *Options) channels() [4]channel {
	var chs [4]channel
	for c, m := range o.masks {
		if m == 0 {
			continue
		}
		n := bits.OnesCount32(m)
		chs[c] = channel{
			shift:  bits.TrailingZeros32(m),
			bits:   n,
			maxv:   uint32(1)<<n - 1,
			dither: o.colorDithering,
		}
	}
	chs[3].dither = o.alphaDithering
	chs[3].binary = o.binaryAlpha
	return chs
}

func packNorm(out []byte, planes Planes, width, height, depth int, o *Options) {
	pitch := o.Pitch(width)
	bpp := o.BytesPerPixel()
	chs := o.channels()
	signed := o.pixelType == PixelTypeSignedNorm
	threshold := float32(o.alphaThreshold) / 255

	// Error diffusion needs the current and the next row of residuals.
	var cur, next [4][]float32
	for c := range 4 {
		cur[c] = make([]float32, width+2)
		next[c] = make([]float32, width+2)
	}

	codes := make([][4]uint32, width)
	for z := range depth {
		for c := range 4 {
			clear(cur[c])
			clear(next[c])
		}

		for y := range height {
			for c, ch := range chs {
				if ch.bits == 0 {
					continue
				}
				plane := planes[c][(z*height+y)*width:]
				for x := range width {
					v := plane[x]
					if ch.dither {
						v += cur[c][x+1]
					}

					var code uint32
					var recon float32
					switch {
					case ch.binary:
						if v >= threshold {
							code, recon = ch.maxv, 1
						}
					case signed:
						code, recon = quantizeSigned(v, ch)
					default:
						code, recon = quantizeUnsigned(v, ch)
					}
					codes[x][c] = code

					if ch.dither {
						diffuse(cur[c], next[c], x+1, v-recon)
					}
				}
			}

			row := out[(z*height+y)*pitch:]
			for x := range width {
				var texel uint64
				for c, ch := range chs {
					if ch.bits == 0 {
						continue
					}
					texel |= uint64(codes[x][c]) << ch.shift
				}
				putTexel(row[x*bpp:], texel, bpp)
			}

			for c := range 4 {
				cur[c], next[c] = next[c], cur[c]
				clear(next[c])
			}
		}
	}
}

// diffuse spreads err onto the neighbours of x using Floyd-Steinberg weights.
// Both rows carry one guard element on each side.
func diffuse(cur, next []float32, x int, err float32) {
	cur[x+1] += err * 7 / 16
	next[x-1] += err * 3 / 16
	next[x] += err * 5 / 16
	next[x+1] += err * 1 / 16
}

func quantizeUnsigned(v float32, ch channel) (uint32, float32) {
	v = min(max(v, 0), 1)
	code := uint32(v*float32(ch.maxv) + 0.5)
	return code, float32(code) / float32(ch.maxv)
}

// quantizeSigned maps [-1, 1] onto the symmetric two's complement range of
// the channel, so -1 and 1 are both representable.
func quantizeSigned(v float32, ch channel) (uint32, float32) {
	half := float32(ch.maxv >> 1)
	if half == 0 {
		return 0, 0
	}
	v = min(max(v, -1), 1)
	q := int32(math32.Floor(v*half + 0.5))
	return uint32(q) & ch.maxv, float32(q) / half
}

func putTexel(dst []byte, texel uint64, bpp int) {
	for i := range bpp {
		dst[i] = byte(texel >> (8 * i))
	}
}
