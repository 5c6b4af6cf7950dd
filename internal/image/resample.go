package image

import (
	"github.com/gogpu/texel/internal/filter"
	"github.com/gogpu/texel/internal/parallel"
)

// Reduce selects how the source texels under a kernel window are combined.
type Reduce uint8

const (
	// ReduceWeighted computes the normalized weighted sum.
	ReduceWeighted Reduce = iota

	// ReduceMin takes the smallest texel with a positive weight.
	ReduceMin

	// ReduceMax takes the largest texel with a positive weight.
	ReduceMax
)

// parallelLineThreshold is the minimum number of texels a pass must touch
// before it is split across the worker pool.
const parallelLineThreshold = 64 * 64

// DownsampleOptions configures Downsample.
type DownsampleOptions struct {
	Filter filter.Filter
	Wrap   Wrap
	Reduce Reduce

	// AlphaWeighted weights color by alpha while filtering. It has no
	// effect for min/max reduction.
	AlphaWeighted bool
}

// NextLevel returns the dimensions of the next mip level: each dimension
// halved and floored, with a minimum of 1.
func NextLevel(w, h, d int) (int, int, int) {
	return max(1, w/2), max(1, h/2), max(1, d/2)
}

// Downsample produces the next mip level of src.
//
// The kernel is applied separably along x, then y, then z. Axes that are
// already one texel long are passed through. The result comes from the
// default pool; src is not modified.
func Downsample(src *Buffer, opts DownsampleOptions) (*Buffer, error) {
	f := opts.Filter
	if f == nil {
		f = filter.Box{}
	}

	cur := src
	weighted := opts.AlphaWeighted && opts.Reduce == ReduceWeighted
	if weighted {
		cur = src.Clone()
		cur.Premultiply()
	}

	dw, dh, dd := NextLevel(src.Bounds())
	targets := [3]int{dw, dh, dd}

	for axis, dstLen := range targets {
		srcLen := axisLen(cur, axis)
		if srcLen == dstLen {
			continue
		}

		p := filter.CachedPolyphase(f, srcLen, dstLen)
		if p == nil {
			if cur != src {
				PutToDefault(cur)
			}
			return nil, ErrInvalidFilter
		}
		next, err := resampleAxis(cur, axis, p, opts)
		if err != nil {
			return nil, err
		}
		if cur != src {
			PutToDefault(cur)
		}
		cur = next
	}

	if cur == src {
		// 1x1x1 input: still hand back an independent level.
		cur = src.Clone()
	}
	if weighted {
		cur.Unpremultiply()
	}
	return cur, nil
}

func axisLen(b *Buffer, axis int) int {
	switch axis {
	case 0:
		return b.width
	case 1:
		return b.height
	default:
		return b.depth
	}
}

// resampleAxis filters every line of src along one axis.
func resampleAxis(src *Buffer, axis int, p *filter.Polyphase, opts DownsampleOptions) (*Buffer, error) {
	w, h, d := src.Bounds()
	dims := [3]int{w, h, d}
	dims[axis] = p.DstLen

	dst, err := GetFromDefault(dims[0], dims[1], dims[2])
	if err != nil {
		return nil, err
	}

	// Each line is addressed by a base offset and a stride in both buffers.
	var lines, srcStride, dstStride int
	var base func(line int) (int, int)

	switch axis {
	case 0:
		lines = h * d
		srcStride, dstStride = 1, 1
		base = func(l int) (int, int) { return l * w, l * p.DstLen }
	case 1:
		lines = w * d
		srcStride, dstStride = w, w
		base = func(l int) (int, int) {
			x, z := l%w, l/w
			return z*w*h + x, z*w*p.DstLen + x
		}
	default:
		lines = w * h
		srcStride, dstStride = w*h, w*h
		base = func(l int) (int, int) { return l, l }
	}

	minLines := max(1, parallelLineThreshold/max(1, dims[axis]))
	parallel.Ranges(lines, minLines, func(lo, hi int) {
		for l := lo; l < hi; l++ {
			sb, db := base(l)
			for c := range Channels {
				filterLine(src.planes[c], dst.planes[c], sb, srcStride, db, dstStride, p, opts)
			}
		}
	})

	return dst, nil
}

// filterLine resamples one line of a plane.
func filterLine(src, dst []float32, sb, ss, db, ds int, p *filter.Polyphase, opts DownsampleOptions) {
	n := p.SrcLen
	for i := range p.DstLen {
		start := p.Start(i)
		weights := p.Weights(i)

		var v float32
		switch opts.Reduce {
		case ReduceMin, ReduceMax:
			first := true
			for j, wt := range weights {
				if wt <= 0 {
					continue
				}
				s := src[sb+opts.Wrap.Resolve(start+j, n)*ss]
				switch {
				case first:
					v, first = s, false
				case opts.Reduce == ReduceMin:
					v = min(v, s)
				default:
					v = max(v, s)
				}
			}
		default:
			for j, wt := range weights {
				if wt == 0 {
					continue
				}
				v += wt * src[sb+opts.Wrap.Resolve(start+j, n)*ss]
			}
		}

		dst[db+i*ds] = v
	}
}
