package image

// Wrap defines how out-of-range texel indices are resolved.
type Wrap uint8

const (
	// WrapClamp clamps indices to the nearest edge texel.
	WrapClamp Wrap = iota

	// WrapRepeat wraps indices modulo the dimension.
	WrapRepeat

	// WrapMirror reflects indices at the edges without repeating the edge
	// texel: -1 maps to 1 and n maps to n-2.
	WrapMirror
)

// Resolve maps index i into [0, n) according to the wrap mode.
// n must be positive.
func (w Wrap) Resolve(i, n int) int {
	switch w {
	case WrapRepeat:
		i %= n
		if i < 0 {
			i += n
		}
		return i
	case WrapMirror:
		if n == 1 {
			return 0
		}
		i = abs(i)
		for i >= n {
			i = abs(2*n - i - 2)
		}
		return i
	default:
		return clamp(i, 0, n-1)
	}
}

// clamp clamps an integer value to [minVal, maxVal].
func clamp(val, minVal, maxVal int) int {
	if val < minVal {
		return minVal
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
