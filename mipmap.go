package texel

import (
	"fmt"

	"github.com/gogpu/texel/internal/color"
	"github.com/gogpu/texel/internal/image"
)

// CountMipmaps returns the number of levels in a full chain that stops once
// the largest dimension is at most minSize. The current level counts as
// one. A minSize below 1 is treated as 1. An empty surface has no levels.
//
// For a 256x256 surface CountMipmaps(1) is 9.
func (s *Surface) CountMipmaps(minSize int) int {
	if s.buf == nil {
		return 0
	}
	return countMipmaps(s.buf.Width(), s.buf.Height(), s.buf.Depth(), minSize)
}

func countMipmaps(w, h, d, minSize int) int {
	minSize = max(minSize, 1)
	count := 1
	for max(w, h, d) > minSize {
		w, h, d = image.NextLevel(w, h, d)
		count++
	}
	return count
}

// BuildNextMipmap replaces the surface contents with the next smaller mip
// level: each dimension halved and floored, with a minimum of 1.
//
// It returns false and leaves the surface untouched once the largest
// dimension is at most minSize (minSize below 1 is treated as 1). The wrap
// mode addresses texels beyond the edges and AlphaTransparency weights color
// by alpha. On error the surface is unchanged.
func (s *Surface) BuildNextMipmap(f MipmapFilter, minSize int, opts ...MipmapOption) (bool, error) {
	if s.buf == nil {
		return false, ErrNotLoaded
	}
	if !f.IsValid() {
		return false, fmt.Errorf("%w: mipmap filter %d", ErrInvalidArgument, f)
	}

	o := defaultMipmapOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if !o.validate() {
		return false, fmt.Errorf("%w: filter parameters kaiser %+v mitchell %+v", ErrInvalidArgument, o.kaiser, o.mitchell)
	}

	w, h, d := s.buf.Bounds()
	if max(w, h, d) <= max(minSize, 1) {
		return false, nil
	}

	src := s.buf
	if o.srgb {
		src = s.buf.Clone()
		defer image.PutToDefault(src)
		convertColor(src, color.SRGB, color.Linear)
	}

	kernel, reduce := f.kernel(&o)
	next, err := image.Downsample(src, image.DownsampleOptions{
		Filter:        kernel,
		Wrap:          s.wrap.internal(),
		Reduce:        reduce,
		AlphaWeighted: s.alpha == AlphaTransparency,
	})
	if err != nil {
		return false, bufferError(err)
	}
	if o.srgb {
		convertColor(next, color.Linear, color.SRGB)
	}

	image.PutToDefault(s.buf)
	s.buf = next

	Logger().Debug("texel: mip level built",
		"filter", f,
		"width", next.Width(),
		"height", next.Height(),
		"depth", next.Depth())
	return true, nil
}

// MipmapChain holds every level of a surface from full size down to the
// minimum size.
//
// Level 0 is a copy of the source surface; the source is not modified.
type MipmapChain struct {
	levels []*Surface
}

// BuildMipmapChain builds all levels of s down to minSize with f.
func (s *Surface) BuildMipmapChain(f MipmapFilter, minSize int, opts ...MipmapOption) (*MipmapChain, error) {
	if s.buf == nil {
		return nil, ErrNotLoaded
	}

	cur := s.Clone()
	chain := &MipmapChain{
		levels: make([]*Surface, 0, s.CountMipmaps(minSize)),
	}
	chain.levels = append(chain.levels, cur.Clone())

	for {
		ok, err := cur.BuildNextMipmap(f, minSize, opts...)
		if err != nil {
			cur.Release()
			chain.Release()
			return nil, err
		}
		if !ok {
			break
		}
		chain.levels = append(chain.levels, cur.Clone())
	}
	cur.Release()

	return chain, nil
}

// Level returns mip level n, or nil when n is out of range.
func (m *MipmapChain) Level(n int) *Surface {
	if m == nil || n < 0 || n >= len(m.levels) {
		return nil
	}
	return m.levels[n]
}

// NumLevels returns the number of levels. Returns 0 for a nil chain.
func (m *MipmapChain) NumLevels() int {
	if m == nil {
		return 0
	}
	return len(m.levels)
}

// Release returns every level's storage to the pool. The chain must not be
// used afterwards.
func (m *MipmapChain) Release() {
	if m == nil {
		return
	}
	for _, l := range m.levels {
		l.Release()
	}
	m.levels = nil
}
