package filter

import (
	"github.com/chewxy/math32"

	"github.com/gogpu/texel/internal/cache"
)

// samplesPerTexel is the number of sub-samples used to integrate a kernel
// over the footprint of one source texel.
const samplesPerTexel = 32

// maxWindow bounds the number of source texels read per destination texel.
const maxWindow = 1 << 12

// Polyphase holds the precomputed weights for resampling a line of SrcLen
// texels into DstLen texels.
//
// Destination texel i reads WindowSize consecutive source texels starting at
// Start(i). Start may be negative or the window may extend past SrcLen; the
// caller resolves those indices according to its wrap mode.
type Polyphase struct {
	SrcLen     int
	DstLen     int
	WindowSize int

	starts  []int
	weights []float32
}

// validator is implemented by kernels with tunable parameters.
type validator interface {
	Valid() bool
}

// usable reports whether f can build a bounded, finite kernel.
func usable(f Filter) bool {
	if v, ok := f.(validator); ok && !v.Valid() {
		return false
	}
	r := f.Support()
	return r > 0 && r <= MaxSupport
}

// NewPolyphase computes a normalized polyphase kernel for f.
// It returns nil if either length is not positive, if f has invalid
// parameters or a support outside (0, MaxSupport], or if the weights are
// not finite.
func NewPolyphase(f Filter, srcLen, dstLen int) *Polyphase {
	if srcLen <= 0 || dstLen <= 0 || !usable(f) {
		return nil
	}

	scale := float32(srcLen) / float32(dstLen)
	// Never shrink the kernel when magnifying.
	fscale := max(scale, 1)
	width := f.Support() * fscale
	if width*2 >= maxWindow {
		return nil
	}
	windowSize := int(math32.Ceil(width*2)) + 1

	p := &Polyphase{
		SrcLen:     srcLen,
		DstLen:     dstLen,
		WindowSize: windowSize,
		starts:     make([]int, dstLen),
		weights:    make([]float32, dstLen*windowSize),
	}

	for i := range dstLen {
		center := (float32(i) + 0.5) * scale
		left := int(math32.Floor(center - width))
		p.starts[i] = left

		w := p.weights[i*windowSize : (i+1)*windowSize]
		var total float32
		for j := range windowSize {
			w[j] = integrate(f, float32(left+j), center, fscale)
			total += w[j]
		}
		if !finite(total) {
			return nil
		}

		if total > 0 {
			inv := 1 / total
			for j := range w {
				w[j] *= inv
			}
			continue
		}

		// Degenerate kernel: fall back to the texel under the center.
		nearest := int(math32.Floor(center)) - left
		if nearest >= 0 && nearest < windowSize {
			w[nearest] = 1
		}
	}

	return p
}

// integrate averages f across the source texel [pos, pos+1).
func integrate(f Filter, pos, center, scale float32) float32 {
	var sum float32
	for s := range samplesPerTexel {
		x := (pos + (float32(s)+0.5)/samplesPerTexel - center) / scale
		sum += f.Evaluate(x)
	}
	return sum / samplesPerTexel
}

// Start returns the first source index read by destination texel i.
func (p *Polyphase) Start(i int) int {
	return p.starts[i]
}

// Weights returns the WindowSize weights of destination texel i.
// The slice is shared and must not be modified.
func (p *Polyphase) Weights(i int) []float32 {
	return p.weights[i*p.WindowSize : (i+1)*p.WindowSize]
}

// polyphaseKey identifies a cached kernel. Filters are comparable values.
type polyphaseKey struct {
	filter Filter
	src    int
	dst    int
}

// defaultPolyphaseCache holds kernels shared across surfaces. Mip chains
// request the same handful of (filter, length) pairs for every channel and
// every row.
var defaultPolyphaseCache = cache.New[polyphaseKey, *Polyphase](128)

// CachedPolyphase returns a shared polyphase kernel for f, computing it on
// first use. It returns nil, without caching, when NewPolyphase would.
func CachedPolyphase(f Filter, srcLen, dstLen int) *Polyphase {
	// Keys holding NaN never match, so they must not reach the cache.
	if srcLen <= 0 || dstLen <= 0 || !usable(f) {
		return nil
	}
	key := polyphaseKey{filter: f, src: srcLen, dst: dstLen}
	return defaultPolyphaseCache.GetOrCreate(key, func() *Polyphase {
		return NewPolyphase(f, srcLen, dstLen)
	})
}
