package texel

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/gogpu/texel/internal/filter"
	"github.com/gogpu/texel/internal/image"
)

// WrapMode selects how texels outside the surface are addressed while
// filtering.
type WrapMode uint8

const (
	// WrapClamp repeats the edge texel.
	WrapClamp WrapMode = iota

	// WrapRepeat tiles the surface.
	WrapRepeat

	// WrapMirror reflects the surface at its edges without repeating the
	// edge texel.
	WrapMirror
)

var wrapNames = []string{"clamp", "repeat", "mirror"}

// String returns the lower-case name of the wrap mode.
func (m WrapMode) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("WrapMode(%d)", m)
	}
	return wrapNames[m]
}

// IsValid reports whether m is a known wrap mode.
func (m WrapMode) IsValid() bool { return int(m) < len(wrapNames) }

// ParseWrapMode parses a wrap mode name, ignoring case.
func ParseWrapMode(s string) (WrapMode, error) {
	i, err := parseName(s, wrapNames, "wrap mode")
	return WrapMode(i), err
}

func (m WrapMode) internal() image.Wrap {
	switch m {
	case WrapRepeat:
		return image.WrapRepeat
	case WrapMirror:
		return image.WrapMirror
	default:
		return image.WrapClamp
	}
}

// AlphaMode describes how the alpha channel relates to color.
type AlphaMode uint8

const (
	// AlphaNone treats alpha as an independent channel.
	AlphaNone AlphaMode = iota

	// AlphaTransparency is straight alpha. Color is weighted by alpha while
	// filtering.
	AlphaTransparency

	// AlphaPremultiplied means color is already multiplied by alpha.
	AlphaPremultiplied
)

var alphaNames = []string{"none", "transparency", "premultiplied"}

// String returns the lower-case name of the alpha mode.
func (m AlphaMode) String() string {
	if !m.IsValid() {
		return fmt.Sprintf("AlphaMode(%d)", m)
	}
	return alphaNames[m]
}

// IsValid reports whether m is a known alpha mode.
func (m AlphaMode) IsValid() bool { return int(m) < len(alphaNames) }

// ParseAlphaMode parses an alpha mode name, ignoring case.
func ParseAlphaMode(s string) (AlphaMode, error) {
	i, err := parseName(s, alphaNames, "alpha mode")
	return AlphaMode(i), err
}

// TextureType is the shape of a surface.
type TextureType uint8

const (
	Texture2D TextureType = iota
	TextureCube
	Texture3D
)

var textureTypeNames = []string{"2d", "cube", "3d"}

// String returns the name of the texture type.
func (t TextureType) String() string {
	if int(t) >= len(textureTypeNames) {
		return fmt.Sprintf("TextureType(%d)", t)
	}
	return textureTypeNames[t]
}

// MipmapFilter selects the kernel used to build mip levels.
type MipmapFilter uint8

const (
	FilterBox MipmapFilter = iota
	FilterTriangle
	FilterKaiser
	FilterMitchell

	// FilterMin keeps the smallest texel under a box window.
	FilterMin

	// FilterMax keeps the largest texel under a box window.
	FilterMax
)

var filterNames = []string{"box", "triangle", "kaiser", "mitchell", "min", "max"}

// String returns the lower-case name of the filter.
func (f MipmapFilter) String() string {
	if !f.IsValid() {
		return fmt.Sprintf("MipmapFilter(%d)", f)
	}
	return filterNames[f]
}

// IsValid reports whether f is a known filter.
func (f MipmapFilter) IsValid() bool { return int(f) < len(filterNames) }

// ParseMipmapFilter parses a filter name, ignoring case.
func ParseMipmapFilter(s string) (MipmapFilter, error) {
	i, err := parseName(s, filterNames, "mipmap filter")
	return MipmapFilter(i), err
}

// kernel returns the filter kernel and reduction for f.
func (f MipmapFilter) kernel(o *mipmapOptions) (filter.Filter, image.Reduce) {
	switch f {
	case FilterTriangle:
		return filter.Triangle{}, image.ReduceWeighted
	case FilterKaiser:
		return o.kaiser, image.ReduceWeighted
	case FilterMitchell:
		return o.mitchell, image.ReduceWeighted
	case FilterMin:
		return filter.Box{}, image.ReduceMin
	case FilterMax:
		return filter.Box{}, image.ReduceMax
	default:
		return filter.Box{}, image.ReduceWeighted
	}
}

func parseName(s string, names []string, what string) (int, error) {
	// A Caser carries state, so each call gets its own.
	key := cases.Fold().String(strings.TrimSpace(s))
	for i, n := range names {
		if n == key {
			return i, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown %s %q", ErrInvalidArgument, what, s)
}
