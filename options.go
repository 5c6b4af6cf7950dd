package texel

import "github.com/gogpu/texel/internal/filter"

// MipmapOption configures BuildNextMipmap and BuildMipmapChain.
//
// Example:
//
//	// Sharper Kaiser window
//	s.BuildNextMipmap(texel.FilterKaiser, 1, texel.WithKaiserParams(3, 8, 1))
type MipmapOption func(*mipmapOptions)

// mipmapOptions holds the tunable kernel parameters.
type mipmapOptions struct {
	kaiser   filter.Kaiser
	mitchell filter.Mitchell
	srgb     bool
}

// defaultMipmapOptions returns the default kernel parameters.
func defaultMipmapOptions() mipmapOptions {
	return mipmapOptions{
		kaiser:   filter.NewKaiser(),
		mitchell: filter.NewMitchell(),
	}
}

// WithKaiserParams sets the Kaiser window width (support radius), its alpha
// (sharpness) and the sinc stretch. The defaults are 3, 4 and 1.
// Non-finite values, a width outside (0, 32], a non-positive stretch or a
// negative alpha make the build fail with ErrInvalidArgument.
func WithKaiserParams(width, alpha, stretch float32) MipmapOption {
	return func(o *mipmapOptions) {
		o.kaiser = filter.Kaiser{Width: width, Alpha: alpha, Stretch: stretch}
	}
}

// WithMitchellParams sets the B and C parameters of the Mitchell-Netravali
// cubic. The defaults are 1/3 and 1/3. Non-finite values make the build
// fail with ErrInvalidArgument.
func WithMitchellParams(b, c float32) MipmapOption {
	return func(o *mipmapOptions) {
		o.mitchell = filter.Mitchell{B: b, C: c}
	}
}

// WithSRGB filters color in linear light. The RGB channels are decoded from
// the sRGB curve before resampling and encoded again afterwards.
func WithSRGB() MipmapOption {
	return func(o *mipmapOptions) {
		o.srgb = true
	}
}

func (o *mipmapOptions) validate() bool {
	return o.kaiser.Valid() && o.mitchell.Valid()
}
