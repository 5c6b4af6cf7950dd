// Package color converts texel planes between the sRGB transfer curve and
// linear light.
//
// Alpha is always linear; callers pass only color planes.
package color

// Space identifies the transfer curve a plane is encoded with.
type Space uint8

const (
	// SRGB is the standard sRGB curve.
	SRGB Space = iota
	// Linear is linear light.
	Linear
)

// String returns "srgb" or "linear".
func (s Space) String() string {
	if s == Linear {
		return "linear"
	}
	return "srgb"
}

// ToLinear decodes sRGB values in p to linear light in place.
// Values outside [0,1] keep their sign and are mirrored through the curve.
func ToLinear(p []float32) {
	for i, v := range p {
		p[i] = signed(v, SRGBToLinear)
	}
}

// ToSRGB encodes linear values in p with the sRGB curve in place.
func ToSRGB(p []float32) {
	for i, v := range p {
		p[i] = signed(v, LinearToSRGB)
	}
}

// Convert converts every plane from one space to the other. It is a no-op
// when from equals to.
func Convert(from, to Space, planes ...[]float32) {
	if from == to {
		return
	}
	fn := ToLinear
	if to == SRGB {
		fn = ToSRGB
	}
	for _, p := range planes {
		fn(p)
	}
}

func signed(v float32, f func(float32) float32) float32 {
	if v < 0 {
		return -f(-v)
	}
	return f(v)
}
