package texel

import (
	"github.com/gogpu/texel/internal/color"
	"github.com/gogpu/texel/internal/image"
)

// ToLinear decodes the RGB channels from the sRGB curve to linear light.
// Alpha is left unchanged.
func (s *Surface) ToLinear() error {
	if s.buf == nil {
		return ErrNotLoaded
	}
	convertColor(s.buf, color.SRGB, color.Linear)
	return nil
}

// ToSRGB encodes the RGB channels of a linear surface with the sRGB curve.
// Alpha is left unchanged.
func (s *Surface) ToSRGB() error {
	if s.buf == nil {
		return ErrNotLoaded
	}
	convertColor(s.buf, color.Linear, color.SRGB)
	return nil
}

func convertColor(b *image.Buffer, from, to color.Space) {
	color.Convert(from, to, b.Plane(0), b.Plane(1), b.Plane(2))
}
