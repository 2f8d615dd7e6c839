package geom

import (
	"math"
	"testing"
)

func TestPackColorRoundTrip(t *testing.T) {
	cases := []struct {
		name string
		in   Color
		want Color
	}{
		{"black", Color{}, Color{}},
		{"white", Color{1, 1, 1, 1}, Color{1, 1, 1, 1}},
		{"mid", Color{R: 128.0 / 255, A: 1}, Color{R: 128.0 / 255, A: 1}},
		{"clamped high", Color{R: 2.5, G: 1.1, A: 1}, Color{R: 1, G: 1, A: 1}},
		{"clamped low", Color{R: -0.5, B: 0.5, A: 1}, Color{B: 128.0 / 255, A: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := UnpackColor(PackColor(tc.in))
			for _, ch := range [][2]float64{
				{got.R, tc.want.R}, {got.G, tc.want.G}, {got.B, tc.want.B}, {got.A, tc.want.A},
			} {
				if math.Abs(ch[0]-ch[1]) > 1.0/255 {
					t.Errorf("UnpackColor(PackColor(%+v)) = %+v, want %+v", tc.in, got, tc.want)
					break
				}
			}
		})
	}
}

func TestPackColorQuantization(t *testing.T) {
	// 0.75 lands between 8-bit steps; the unpacked value must be the
	// quantized one, stable under a second pack.
	f := PackColor(Color{R: 0.75, A: 1})
	c := UnpackColor(f)
	if got := PackColor(c); PackedBits(got) != PackedBits(f) {
		t.Errorf("re-pack changed bits: %#x -> %#x", PackedBits(f), PackedBits(got))
	}
	if math.Abs(c.R*255-191) > 0.5 {
		t.Errorf("R quantized to %v, want 191/255", c.R*255)
	}
}

func TestPackedBitsZeroMarker(t *testing.T) {
	if bits := PackedBits(PackColor(Color{})); bits != 0 {
		t.Fatalf("all-zero color packs to bits %#x, want 0", bits)
	}
	if bits := PackedBits(PackColor(Color{A: 1})); bits == 0 {
		t.Fatal("opaque color must not collide with the zero marker")
	}
}
