// Package image provides the floating-point texel storage behind texel
// surfaces.
//
// A Buffer holds four float32 planes (R, G, B, A) for a width x height x depth
// volume. Planes are stored x-fastest, then y, then z, so one-dimensional
// filter passes walk each plane with a fixed stride.
package image

import "errors"

// Channels is the number of planes in every Buffer.
const Channels = 4

// MaxTexels bounds the texel count of a single buffer (width*height*depth).
// Four float32 planes of this size take 4 GiB.
const MaxTexels = 1 << 28

// Common errors for buffer operations.
var (
	// ErrInvalidDimensions is returned when width, height or depth is non-positive.
	ErrInvalidDimensions = errors.New("image: invalid dimensions")

	// ErrTooLarge is returned when the texel count exceeds MaxTexels.
	ErrTooLarge = errors.New("image: buffer too large")

	// ErrOutOfBounds is returned when texel coordinates are outside the buffer.
	ErrOutOfBounds = errors.New("image: coordinates out of bounds")

	// ErrInvalidFilter is returned when a filter cannot produce finite,
	// bounded weights.
	ErrInvalidFilter = errors.New("image: invalid filter")
)

// Buffer is a planar RGBA float32 volume.
//
// Thread safety: Buffer is safe for concurrent reads. Writes require
// external synchronization, except that disjoint texels may be written
// concurrently.
type Buffer struct {
	width  int
	height int
	depth  int
	planes [Channels][]float32
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height, depth int) (*Buffer, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, ErrInvalidDimensions
	}
	// Divide instead of multiply so the check cannot overflow.
	if width > MaxTexels/height || width*height > MaxTexels/depth {
		return nil, ErrTooLarge
	}

	n := width * height * depth
	b := &Buffer{width: width, height: height, depth: depth}
	for c := range b.planes {
		b.planes[c] = make([]float32, n)
	}
	return b, nil
}

// Clone creates a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	nb := &Buffer{width: b.width, height: b.height, depth: b.depth}
	for c := range b.planes {
		nb.planes[c] = append([]float32(nil), b.planes[c]...)
	}
	return nb
}

// Width returns the buffer width in texels.
func (b *Buffer) Width() int { return b.width }

// Height returns the buffer height in texels.
func (b *Buffer) Height() int { return b.height }

// Depth returns the buffer depth in texels.
func (b *Buffer) Depth() int { return b.depth }

// Bounds returns the dimensions as (width, height, depth).
func (b *Buffer) Bounds() (int, int, int) {
	return b.width, b.height, b.depth
}

// Len returns the number of texels per plane.
func (b *Buffer) Len() int {
	return b.width * b.height * b.depth
}

// Plane returns channel c. The slice aliases the buffer.
func (b *Buffer) Plane(c int) []float32 {
	return b.planes[c]
}

// Index returns the plane offset of texel (x, y, z), or -1 if it is out of
// bounds.
func (b *Buffer) Index(x, y, z int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height || z < 0 || z >= b.depth {
		return -1
	}
	return (z*b.height+y)*b.width + x
}

// At returns the RGBA value of texel (x, y, z).
// Returns zero for out-of-bounds coordinates.
func (b *Buffer) At(x, y, z int) [Channels]float32 {
	var v [Channels]float32
	i := b.Index(x, y, z)
	if i < 0 {
		return v
	}
	for c := range b.planes {
		v[c] = b.planes[c][i]
	}
	return v
}

// Set stores the RGBA value of texel (x, y, z).
func (b *Buffer) Set(x, y, z int, v [Channels]float32) error {
	i := b.Index(x, y, z)
	if i < 0 {
		return ErrOutOfBounds
	}
	for c := range b.planes {
		b.planes[c][i] = v[c]
	}
	return nil
}

// Fill sets every texel to v.
func (b *Buffer) Fill(v [Channels]float32) {
	for c := range b.planes {
		p := b.planes[c]
		for i := range p {
			p[i] = v[c]
		}
	}
}

// Clear zeroes every plane.
func (b *Buffer) Clear() {
	for c := range b.planes {
		clear(b.planes[c])
	}
}

// Premultiply multiplies the color planes by alpha in place.
func (b *Buffer) Premultiply() {
	a := b.planes[3]
	for c := range 3 {
		p := b.planes[c]
		for i := range p {
			p[i] *= a[i]
		}
	}
}

// Unpremultiply divides the color planes by alpha in place.
// Texels with zero alpha are left unchanged.
func (b *Buffer) Unpremultiply() {
	a := b.planes[3]
	for c := range 3 {
		p := b.planes[c]
		for i := range p {
			if a[i] != 0 {
				p[i] /= a[i]
			}
		}
	}
}

// MinAlpha returns the smallest alpha value in the buffer.
func (b *Buffer) MinAlpha() float32 {
	a := b.planes[3]
	m := a[0]
	for _, v := range a[1:] {
		m = min(m, v)
	}
	return m
}
