package texel

import (
	"errors"
	"testing"
)

func TestParseMipmapFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    MipmapFilter
		wantErr bool
	}{
		{"box", FilterBox, false},
		{"BOX", FilterBox, false},
		{"Triangle", FilterTriangle, false},
		{" kaiser ", FilterKaiser, false},
		{"MITCHELL", FilterMitchell, false},
		{"min", FilterMin, false},
		{"Max", FilterMax, false},
		{"lanczos", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMipmapFilter(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("ParseMipmapFilter(%q) error = %v, want ErrInvalidArgument", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseMipmapFilter(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestParseWrapAndAlpha(t *testing.T) {
	if m, err := ParseWrapMode("Mirror"); err != nil || m != WrapMirror {
		t.Errorf("ParseWrapMode(Mirror) = %v, %v", m, err)
	}
	if _, err := ParseWrapMode("border"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseWrapMode(border) error = %v", err)
	}
	if m, err := ParseAlphaMode("TRANSPARENCY"); err != nil || m != AlphaTransparency {
		t.Errorf("ParseAlphaMode(TRANSPARENCY) = %v, %v", m, err)
	}
	if _, err := ParseAlphaMode("straight"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("ParseAlphaMode(straight) error = %v", err)
	}
}

func TestEnumStrings(t *testing.T) {
	tests := []struct {
		got, want string
	}{
		{FilterKaiser.String(), "kaiser"},
		{MipmapFilter(99).String(), "MipmapFilter(99)"},
		{WrapRepeat.String(), "repeat"},
		{WrapMode(5).String(), "WrapMode(5)"},
		{AlphaPremultiplied.String(), "premultiplied"},
		{AlphaMode(8).String(), "AlphaMode(8)"},
		{Texture3D.String(), "3d"},
		{TextureCube.String(), "cube"},
		{TextureType(4).String(), "TextureType(4)"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("String() = %q, want %q", tt.got, tt.want)
		}
	}
}

func TestEnumRoundTrip(t *testing.T) {
	for f := FilterBox; f <= FilterMax; f++ {
		got, err := ParseMipmapFilter(f.String())
		if err != nil || got != f {
			t.Errorf("ParseMipmapFilter(%q) = %v, %v", f.String(), got, err)
		}
	}
}

func TestVersion(t *testing.T) {
	if Version != versionString() {
		t.Errorf("Version = %q, components give %q", Version, versionString())
	}
	if VersionNumber() != VersionMajor*10000+VersionMinor*100+VersionPatch {
		t.Errorf("VersionNumber() = %d", VersionNumber())
	}
}
