package filter

import (
	"math"
	"testing"
)

func TestBoxEvaluate(t *testing.T) {
	tests := []struct {
		x    float32
		want float32
	}{
		{0, 1},
		{0.25, 1},
		{-0.5, 1},
		{0.5, 1},
		{0.51, 0},
		{-2, 0},
	}

	for _, tt := range tests {
		if got := (Box{}).Evaluate(tt.x); got != tt.want {
			t.Errorf("Box.Evaluate(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestTriangleEvaluate(t *testing.T) {
	tests := []struct {
		x    float32
		want float32
	}{
		{0, 1},
		{0.5, 0.5},
		{-0.25, 0.75},
		{1, 0},
		{1.5, 0},
	}

	for _, tt := range tests {
		got := (Triangle{}).Evaluate(tt.x)
		if absf32(got-tt.want) > 1e-6 {
			t.Errorf("Triangle.Evaluate(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestMitchellEvaluate(t *testing.T) {
	m := NewMitchell()

	tests := []struct {
		name string
		x    float32
		want float32
	}{
		{"center", 0, 16.0 / 18.0},
		{"one", 1, 1.0 / 18.0},
		{"two", 2, 0},
		{"outside", 2.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := m.Evaluate(tt.x)
			if absf32(got-tt.want) > 1e-5 {
				t.Errorf("Mitchell.Evaluate(%v) = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestMitchellContinuousAtOne(t *testing.T) {
	m := NewMitchell()
	left := m.Evaluate(0.9999)
	right := m.Evaluate(1.0001)
	if absf32(left-right) > 1e-3 {
		t.Errorf("Mitchell discontinuous at 1: %v vs %v", left, right)
	}
}

func TestKaiserEvaluate(t *testing.T) {
	k := NewKaiser()

	if got := k.Evaluate(0); absf32(got-1) > 1e-5 {
		t.Errorf("Kaiser.Evaluate(0) = %v, want 1", got)
	}
	if got := k.Evaluate(3.5); got != 0 {
		t.Errorf("Kaiser.Evaluate(3.5) = %v, want 0", got)
	}
	if got := k.Evaluate(3); absf32(got) > 1e-4 {
		t.Errorf("Kaiser.Evaluate(width) = %v, want ~0", got)
	}
	// Zero crossings of the sinc lobe.
	if got := k.Evaluate(1); absf32(got) > 1e-4 {
		t.Errorf("Kaiser.Evaluate(1) = %v, want ~0", got)
	}
}

func TestKernelsSymmetric(t *testing.T) {
	filters := map[string]Filter{
		"box":      Box{},
		"triangle": Triangle{},
		"kaiser":   NewKaiser(),
		"mitchell": NewMitchell(),
	}

	for name, f := range filters {
		t.Run(name, func(t *testing.T) {
			for x := float32(0); x <= f.Support(); x += 0.125 {
				if a, b := f.Evaluate(x), f.Evaluate(-x); absf32(a-b) > 1e-6 {
					t.Errorf("Evaluate(%v) = %v, Evaluate(%v) = %v", x, a, -x, b)
				}
			}
		})
	}
}

func TestBessel0(t *testing.T) {
	tests := []struct {
		x    float32
		want float64
	}{
		{0, 1},
		{1, 1.2660658},
		{4, 11.3019219},
	}

	for _, tt := range tests {
		got := float64(bessel0(tt.x))
		if math.Abs(got-tt.want)/tt.want > 1e-5 {
			t.Errorf("bessel0(%v) = %v, want %v", tt.x, got, tt.want)
		}
	}
}

func TestSinc(t *testing.T) {
	if got := sinc(0); got != 1 {
		t.Errorf("sinc(0) = %v, want 1", got)
	}
	if got := sinc(0.5); absf32(got-float32(2/math.Pi)) > 1e-5 {
		t.Errorf("sinc(0.5) = %v, want %v", got, 2/math.Pi)
	}
}

func TestKernelValid(t *testing.T) {
	inf := float32(math.Inf(1))
	nan := float32(math.NaN())

	tests := []struct {
		name string
		v    interface{ Valid() bool }
		want bool
	}{
		{"default kaiser", NewKaiser(), true},
		{"widest kaiser", Kaiser{Width: MaxSupport, Alpha: 4, Stretch: 1}, true},
		{"kaiser above cap", Kaiser{Width: MaxSupport + 0.5, Alpha: 4, Stretch: 1}, false},
		{"kaiser negative width", Kaiser{Width: -3, Alpha: 4, Stretch: 1}, false},
		{"kaiser infinite stretch", Kaiser{Width: 3, Alpha: 4, Stretch: inf}, false},
		{"kaiser NaN alpha", Kaiser{Width: 3, Alpha: nan, Stretch: 1}, false},
		{"default mitchell", NewMitchell(), true},
		{"catmull-rom", Mitchell{B: 0, C: 0.5}, true},
		{"mitchell NaN B", Mitchell{B: nan, C: 0}, false},
		{"mitchell infinite C", Mitchell{B: 0, C: inf}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
