package filter

import "github.com/chewxy/math32"

// Filter is a continuous reconstruction kernel.
//
// Support returns the radius beyond which Evaluate is zero. Evaluate returns
// the unnormalized weight at offset x from the kernel center. Implementations
// are stateless and safe for concurrent use.
type Filter interface {
	Support() float32
	Evaluate(x float32) float32
}

// MaxSupport bounds the support radius of any kernel used for resampling.
const MaxSupport = 32

// Box is a uniform kernel of radius 0.5.
type Box struct{}

// Support implements Filter.
func (Box) Support() float32 { return 0.5 }

// Evaluate implements Filter.
func (Box) Evaluate(x float32) float32 {
	if math32.Abs(x) <= 0.5 {
		return 1
	}
	return 0
}

// Triangle is a tent kernel falling linearly to zero at radius 1.
type Triangle struct{}

// Support implements Filter.
func (Triangle) Support() float32 { return 1 }

// Evaluate implements Filter.
func (Triangle) Evaluate(x float32) float32 {
	x = math32.Abs(x)
	if x < 1 {
		return 1 - x
	}
	return 0
}

// Kaiser is a sinc kernel windowed by the Kaiser-Bessel window.
//
// Width is the support radius. Alpha controls the window shape: larger
// values give a smoother falloff and less ringing. Stretch scales the sinc
// argument; values above 1 sharpen the result.
type Kaiser struct {
	Width   float32
	Alpha   float32
	Stretch float32
}

// Default Kaiser parameters.
const (
	DefaultKaiserWidth   = 3
	DefaultKaiserAlpha   = 4
	DefaultKaiserStretch = 1
)

// NewKaiser returns a Kaiser kernel with the default parameters.
func NewKaiser() Kaiser {
	return Kaiser{
		Width:   DefaultKaiserWidth,
		Alpha:   DefaultKaiserAlpha,
		Stretch: DefaultKaiserStretch,
	}
}

// Valid reports whether every parameter is finite, Width is in
// (0, MaxSupport], Stretch is positive and Alpha is not negative.
func (k Kaiser) Valid() bool {
	return finite(k.Width) && finite(k.Alpha) && finite(k.Stretch) &&
		k.Width > 0 && k.Width <= MaxSupport && k.Stretch > 0 && k.Alpha >= 0
}

// Support implements Filter.
func (k Kaiser) Support() float32 { return k.Width }

// Evaluate implements Filter.
func (k Kaiser) Evaluate(x float32) float32 {
	t := x / k.Width
	t2 := 1 - t*t
	if t2 < 0 {
		return 0
	}
	return sinc(x*k.Stretch) * bessel0(k.Alpha*math32.Sqrt(t2)) / bessel0(k.Alpha)
}

// Mitchell is the Mitchell-Netravali piecewise cubic with radius 2.
type Mitchell struct {
	B, C float32
}

// Default Mitchell-Netravali parameters (B = C = 1/3).
const (
	DefaultMitchellB = 1.0 / 3.0
	DefaultMitchellC = 1.0 / 3.0
)

// NewMitchell returns a Mitchell kernel with B = C = 1/3.
func NewMitchell() Mitchell {
	return Mitchell{B: DefaultMitchellB, C: DefaultMitchellC}
}

// Valid reports whether B and C are finite.
func (m Mitchell) Valid() bool {
	return finite(m.B) && finite(m.C)
}

// Support implements Filter.
func (Mitchell) Support() float32 { return 2 }

// Evaluate implements Filter.
func (m Mitchell) Evaluate(x float32) float32 {
	b, c := m.B, m.C
	x = math32.Abs(x)

	if x < 1 {
		p0 := (6 - 2*b) / 6
		p2 := (-18 + 12*b + 6*c) / 6
		p3 := (12 - 9*b - 6*c) / 6
		return p0 + x*x*(p2+x*p3)
	}
	if x < 2 {
		q0 := (8*b + 24*c) / 6
		q1 := (-12*b - 48*c) / 6
		q2 := (6*b + 30*c) / 6
		q3 := (-b - 6*c) / 6
		return q0 + x*(q1+x*(q2+x*q3))
	}
	return 0
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}

// sinc returns sin(pi*x)/(pi*x), with sinc(0) = 1.
func sinc(x float32) float32 {
	if math32.Abs(x) < 1e-4 {
		// Taylor expansion around zero avoids 0/0.
		px := math32.Pi * x
		return 1 - px*px/6
	}
	px := math32.Pi * x
	return math32.Sin(px) / px
}

// bessel0 evaluates the zeroth-order modified Bessel function of the first
// kind by its power series.
func bessel0(x float32) float32 {
	const eps = 1e-6
	xh := 0.5 * x
	sum := float32(1)
	pow := float32(1)
	ds := float32(1)
	k := float32(0)
	for ds > sum*eps {
		k++
		pow *= xh / k
		ds = pow * pow
		sum += ds
	}
	return sum
}
