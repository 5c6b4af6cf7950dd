package compress

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
)

func TestNewOptions_Defaults(t *testing.T) {
	o := NewOptions()

	if o.Format() != FormatRGB {
		t.Errorf("Format() = %v, want RGB", o.Format())
	}
	if o.Quality() != QualityNormal {
		t.Errorf("Quality() = %v, want Normal", o.Quality())
	}
	if bc, r, g, b, a := o.PixelFormat(); bc != 32 || r != 0xff0000 || g != 0xff00 || b != 0xff || a != 0xff000000 {
		t.Errorf("PixelFormat() = %d %#x %#x %#x %#x, want A8R8G8B8", bc, r, g, b, a)
	}
	if got := o.D3D9Format(); got != d3dfmtA8R8G8B8 {
		t.Errorf("D3D9Format() = %d, want %d", got, d3dfmtA8R8G8B8)
	}
	if _, _, _, th := o.Quantization(); th != 127 {
		t.Errorf("alpha threshold = %d, want 127", th)
	}
}

func TestOptions_Reset(t *testing.T) {
	o := NewOptions()
	_ = o.SetFormat(FormatBC7)
	_ = o.SetPitchAlignment(16)
	_ = o.SetQuantization(true, true, true, 10)

	o.Reset()

	if o.Format() != FormatRGB || o.PitchAlignment() != 1 {
		t.Errorf("Reset() left format %v, alignment %d", o.Format(), o.PitchAlignment())
	}
	if cd, ad, ba, _ := o.Quantization(); cd || ad || ba {
		t.Error("Reset() left quantization enabled")
	}
}

func TestOptions_SetColorWeights(t *testing.T) {
	o := NewOptions()

	if err := o.SetColorWeights(2, 1, 1, 0); err != nil {
		t.Fatalf("SetColorWeights() error = %v", err)
	}
	r, g, b, a := o.ColorWeights()
	if r != 0.5 || g != 0.25 || b != 0.25 || a != 0 {
		t.Errorf("ColorWeights() = %v %v %v %v, want normalized", r, g, b, a)
	}

	if err := o.SetColorWeights(-1, 1, 1, 1); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("negative weight error = %v, want ErrInvalidOption", err)
	}
	if err := o.SetColorWeights(0, 0, 0, 0); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("zero weights error = %v, want ErrInvalidOption", err)
	}
}

func TestOptions_SetPixelFormat(t *testing.T) {
	tests := []struct {
		name       string
		bitCount   uint32
		r, g, b, a uint32
		wantErr    bool
	}{
		{"A8R8G8B8", 32, 0xff0000, 0xff00, 0xff, 0xff000000, false},
		{"R5G6B5", 16, 0xf800, 0x7e0, 0x1f, 0, false},
		{"L8", 8, 0xff, 0, 0, 0, false},
		{"RGBA16F", 64, 0, 0, 0, 0, false},
		{"RGBA32F", 128, 0, 0, 0, 0, false},
		{"bad bit count", 12, 0xff, 0, 0, 0, true},
		{"mask too wide", 16, 0x10000, 0, 0, 0, true},
		{"overlap", 32, 0xff, 0x1ff, 0, 0, true},
		{"non contiguous", 32, 0xf0f, 0, 0, 0, true},
		{"all zero", 32, 0, 0, 0, 0, true},
		{"float with masks", 64, 0xff, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions()
			err := o.SetPixelFormat(tt.bitCount, tt.r, tt.g, tt.b, tt.a)
			if (err != nil) != tt.wantErr {
				t.Fatalf("SetPixelFormat() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidOption) {
				t.Errorf("error = %v, want ErrInvalidOption", err)
			}
			if err != nil {
				// A rejected layout must not replace the previous one.
				if bc, _, _, _, _ := o.PixelFormat(); bc != 32 {
					t.Errorf("bit count changed to %d after failed set", bc)
				}
			}
		})
	}
}

func TestOptions_SetPitchAlignment(t *testing.T) {
	o := NewOptions()
	for _, n := range []int{1, 2, 4, 128, 256} {
		if err := o.SetPitchAlignment(n); err != nil {
			t.Errorf("SetPitchAlignment(%d) error = %v", n, err)
		}
	}
	for _, n := range []int{0, 3, 12, 512, -4} {
		if err := o.SetPitchAlignment(n); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("SetPitchAlignment(%d) error = %v, want ErrInvalidOption", n, err)
		}
	}
}

func TestOptions_SetQuantizationThreshold(t *testing.T) {
	o := NewOptions()
	if err := o.SetQuantization(false, false, true, 256); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("threshold 256 error = %v, want ErrInvalidOption", err)
	}
	if err := o.SetQuantization(false, false, true, -1); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("threshold -1 error = %v, want ErrInvalidOption", err)
	}
}

func TestOptions_InvalidEnums(t *testing.T) {
	o := NewOptions()
	if err := o.SetFormat(Format(200)); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("SetFormat(200) error = %v", err)
	}
	if err := o.SetQuality(Quality(9)); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("SetQuality(9) error = %v", err)
	}
	if err := o.SetPixelType(PixelType(7)); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("SetPixelType(7) error = %v", err)
	}
}

func TestOptions_PitchAndSize(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(o *Options)
		w, h, d   int
		wantPitch int
		wantSize  int
	}{
		{"rgba8", func(o *Options) {}, 5, 3, 1, 20, 60},
		{"rgba8 aligned", func(o *Options) { _ = o.SetPitchAlignment(8) }, 5, 3, 1, 24, 72},
		{"rgb565 volume", func(o *Options) { _ = o.SetPixelFormat(16, 0xf800, 0x7e0, 0x1f, 0) }, 3, 2, 2, 6, 24},
		{"dxt1", func(o *Options) { _ = o.SetFormat(FormatDXT1) }, 5, 5, 1, 16, 32},
		{"bc7 1x1", func(o *Options) { _ = o.SetFormat(FormatBC7) }, 1, 1, 1, 16, 16},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions()
			tt.setup(o)
			if got := o.Pitch(tt.w); got != tt.wantPitch {
				t.Errorf("Pitch(%d) = %d, want %d", tt.w, got, tt.wantPitch)
			}
			if got := o.ImageSize(tt.w, tt.h, tt.d); got != tt.wantSize {
				t.Errorf("ImageSize() = %d, want %d", got, tt.wantSize)
			}
		})
	}
}

func TestOptions_D3D9Format(t *testing.T) {
	tests := []struct {
		name  string
		setup func(o *Options)
		want  uint32
	}{
		{"dxt1", func(o *Options) { _ = o.SetFormat(FormatDXT1) }, makeFourCC('D', 'X', 'T', '1')},
		{"dxt5n", func(o *Options) { _ = o.SetFormat(FormatDXT5n) }, makeFourCC('D', 'X', 'T', '5')},
		{"bc5", func(o *Options) { _ = o.SetFormat(FormatBC5) }, makeFourCC('A', 'T', 'I', '2')},
		{"bc7", func(o *Options) { _ = o.SetFormat(FormatBC7) }, makeFourCC('D', 'X', '1', '0')},
		{"r5g6b5", func(o *Options) { _ = o.SetPixelFormat(16, 0xf800, 0x7e0, 0x1f, 0) }, d3dfmtR5G6B5},
		{"a8b8g8r8", func(o *Options) { _ = o.SetPixelFormat(32, 0xff, 0xff00, 0xff0000, 0xff000000) }, d3dfmtA8B8G8R8},
		{"rgba16f", func(o *Options) {
			_ = o.SetPixelFormat(64, 0, 0, 0, 0)
			_ = o.SetPixelType(PixelTypeFloat)
		}, d3dfmtA16B16G16R16F},
		{"q8w8v8u8", func(o *Options) {
			_ = o.SetPixelFormat(32, 0xff, 0xff00, 0xff0000, 0xff000000)
			_ = o.SetPixelType(PixelTypeSignedNorm)
		}, d3dfmtQ8W8V8U8},
		{"unknown", func(o *Options) { _ = o.SetPixelFormat(16, 0xff, 0xff00, 0, 0) }, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := NewOptions()
			tt.setup(o)
			if got := o.D3D9Format(); got != tt.want {
				t.Errorf("D3D9Format() = %#x, want %#x", got, tt.want)
			}
		})
	}
}

func TestOptions_GPUFormat(t *testing.T) {
	o := NewOptions()
	if got := o.GPUFormat(); got != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("default GPUFormat() = %v, want BGRA8Unorm", got)
	}

	_ = o.SetPixelFormat(32, 0xff, 0xff00, 0xff0000, 0xff000000)
	if got := o.GPUFormat(); got != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("GPUFormat() = %v, want RGBA8Unorm", got)
	}

	_ = o.SetPixelFormat(128, 0, 0, 0, 0)
	_ = o.SetPixelType(PixelTypeFloat)
	if got := o.GPUFormat(); got != gputypes.TextureFormatRGBA32Float {
		t.Errorf("GPUFormat() = %v, want RGBA32Float", got)
	}

	_ = o.SetPixelFormat(24, 0xff0000, 0xff00, 0xff, 0)
	_ = o.SetPixelType(PixelTypeUnsignedNorm)
	if got := o.GPUFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("R8G8B8 GPUFormat() = %v, want Undefined", got)
	}
}

func TestOptions_GPUFormatBlock(t *testing.T) {
	tests := []struct {
		format Format
		want   gputypes.TextureFormat
	}{
		{FormatDXT1, gputypes.TextureFormatBC1RGBAUnorm},
		{FormatDXT1a, gputypes.TextureFormatBC1RGBAUnorm},
		{FormatDXT3, gputypes.TextureFormatBC2RGBAUnorm},
		{FormatDXT5, gputypes.TextureFormatBC3RGBAUnorm},
		{FormatDXT5n, gputypes.TextureFormatBC3RGBAUnorm},
		{FormatBC4, gputypes.TextureFormatBC4RUnorm},
		{FormatBC4S, gputypes.TextureFormatBC4RSnorm},
		{FormatBC5, gputypes.TextureFormatBC5RGUnorm},
		{FormatBC5S, gputypes.TextureFormatBC5RGSnorm},
		{FormatBC6U, gputypes.TextureFormatBC6HRGBUfloat},
		{FormatBC6S, gputypes.TextureFormatBC6HRGBFloat},
		{FormatBC7, gputypes.TextureFormatBC7RGBAUnorm},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			o := NewOptions()
			if err := o.SetFormat(tt.format); err != nil {
				t.Fatal(err)
			}
			if got := o.GPUFormat(); got != tt.want {
				t.Errorf("GPUFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFormat_Properties(t *testing.T) {
	if FormatRGB.IsBlockCompressed() {
		t.Error("RGB reported as block compressed")
	}
	if !FormatBC4.IsBlockCompressed() || FormatBC4.BlockSize() != 8 {
		t.Errorf("BC4 block size = %d, want 8", FormatBC4.BlockSize())
	}
	if FormatBC5.BlockSize() != 16 {
		t.Errorf("BC5 block size = %d, want 16", FormatBC5.BlockSize())
	}
	if got := Format(99).String(); got != "Unknown" {
		t.Errorf("Format(99).String() = %q", got)
	}
	if got := FormatDXT1a.String(); got != "DXT1a" {
		t.Errorf("FormatDXT1a.String() = %q", got)
	}
}
