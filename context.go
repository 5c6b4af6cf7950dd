package texel

import (
	"errors"
	"fmt"

	"github.com/gogpu/texel/compress"
	"github.com/gogpu/texel/internal/image"
	"github.com/gogpu/texel/output"
)

// Context drives encoding: it combines a surface with compression options
// and output options.
//
// A Context holds no mutable state and is safe for concurrent use, but the
// output options passed to it are not.
//
// Example:
//
//	ctx := texel.NewContext()
//	co := compress.NewOptions()
//	oo := output.NewOptions()
//	oo.SetFileName("out.txl")
//	oo.SetContainer(output.ContainerTXL)
//	defer oo.Close()
//
//	ctx.OutputHeader(s, s.CountMipmaps(1), co, oo)
//	for mip := 0; ; mip++ {
//	    ctx.Compress(s, 0, mip, co, oo)
//	    if ok, _ := s.BuildNextMipmap(texel.FilterBox, 1); !ok {
//	        break
//	    }
//	}
type Context struct{}

// NewContext returns a Context.
func NewContext() *Context {
	return &Context{}
}

func checkArgs(s *Surface, co *compress.Options, oo *output.Options) error {
	if s == nil || co == nil || oo == nil {
		return fmt.Errorf("%w: nil surface or options", ErrInvalidArgument)
	}
	if s.buf == nil {
		return ErrNotLoaded
	}
	return nil
}

// OutputHeader writes the container header for s with mipCount levels.
// It does nothing for the raw container or when headers are disabled.
func (c *Context) OutputHeader(s *Surface, mipCount int, co *compress.Options, oo *output.Options) error {
	if err := checkArgs(s, co, oo); err != nil {
		return err
	}
	if mipCount < 1 {
		return fmt.Errorf("%w: mip count %d", ErrInvalidArgument, mipCount)
	}

	w, h, d := s.buf.Bounds()
	return oo.WriteHeader(output.Header{
		Format:     uint32(co.Format()),
		D3D9Format: co.D3D9Format(),
		PixelType:  uint32(co.PixelType()),
		Width:      uint32(w),
		Height:     uint32(h),
		Depth:      uint32(d),
		Faces:      1,
		MipCount:   uint32(mipCount),
	})
}

// Compress encodes the current contents of s as image (face, mip) and writes
// it to oo. Only uncompressed formats can be encoded; block formats give
// ErrUnsupportedFormat.
func (c *Context) Compress(s *Surface, face, mip int, co *compress.Options, oo *output.Options) error {
	if err := checkArgs(s, co, oo); err != nil {
		return err
	}
	if face < 0 || mip < 0 {
		return fmt.Errorf("%w: face %d mip %d", ErrInvalidArgument, face, mip)
	}
	if co.Format().IsBlockCompressed() {
		return fmt.Errorf("%w: %v", ErrUnsupportedFormat, co.Format())
	}

	w, h, d := s.buf.Bounds()
	planes := compress.Planes{s.buf.Plane(0), s.buf.Plane(1), s.buf.Plane(2), s.buf.Plane(3)}
	data, err := compress.Pack(planes, w, h, d, co)
	if err != nil {
		if errors.Is(err, compress.ErrInvalidOption) {
			return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
		}
		return err
	}

	return oo.WriteImage(output.ImageHeader{
		Face:   uint32(face),
		Mip:    uint32(mip),
		Width:  uint32(w),
		Height: uint32(h),
		Depth:  uint32(d),
	}, data)
}

// CompressMipmaps writes the header and every mip level of s, built with f
// down to minSize. s itself is not modified. It returns the number of
// levels written.
func (c *Context) CompressMipmaps(s *Surface, f MipmapFilter, minSize int, co *compress.Options, oo *output.Options, opts ...MipmapOption) (int, error) {
	if err := checkArgs(s, co, oo); err != nil {
		return 0, err
	}

	count := s.CountMipmaps(minSize)
	if err := c.OutputHeader(s, count, co, oo); err != nil {
		return 0, err
	}

	level := s.Clone()
	defer level.Release()

	for mip := 0; ; mip++ {
		if err := c.Compress(level, 0, mip, co, oo); err != nil {
			return mip, err
		}
		ok, err := level.BuildNextMipmap(f, minSize, opts...)
		if err != nil {
			return mip + 1, err
		}
		if !ok {
			return mip + 1, nil
		}
	}
}

// EstimateSize returns the number of payload bytes for mipCount levels of s
// in the format described by co. Block formats are rounded up to whole
// 4x4 blocks.
func (c *Context) EstimateSize(s *Surface, mipCount int, co *compress.Options) (int, error) {
	if s == nil || co == nil {
		return 0, fmt.Errorf("%w: nil surface or options", ErrInvalidArgument)
	}
	if s.buf == nil {
		return 0, ErrNotLoaded
	}
	if mipCount < 1 {
		return 0, fmt.Errorf("%w: mip count %d", ErrInvalidArgument, mipCount)
	}

	w, h, d := s.buf.Bounds()
	total := 0
	for range mipCount {
		total += co.ImageSize(w, h, d)
		w, h, d = image.NextLevel(w, h, d)
	}
	return total, nil
}
