package geom

import "math"

// Color is an RGBA color with channels nominally in [0, 1].
type Color struct {
	R, G, B, A float64
}

// PackColor packs a 4-channel color into a single float32 by quantizing each
// channel to 8 bits and reinterpreting the packed 32-bit integer as an
// IEEE-754 float. This is a deliberate lossy wire format that lets one
// float32 render-target component carry per-pixel metadata alongside
// geometry; it is not a numeric conversion. Channels outside [0, 1] are
// clamped before quantization, never wrapped.
func PackColor(c Color) float32 {
	u := channelByte(c.R)<<24 | channelByte(c.G)<<16 | channelByte(c.B)<<8 | channelByte(c.A)
	return math.Float32frombits(u)
}

// UnpackColor is the bit-exact inverse of PackColor up to the 8-bit
// quantization applied at pack time.
func UnpackColor(f float32) Color {
	u := math.Float32bits(f)
	return Color{
		R: float64(u>>24&0xff) / 255,
		G: float64(u>>16&0xff) / 255,
		B: float64(u>>8&0xff) / 255,
		A: float64(u&0xff) / 255,
	}
}

// PackedBits exposes the raw bit pattern of a packed color, for callers that
// need an exact comparison unaffected by float equality rules.
func PackedBits(f float32) uint32 {
	return math.Float32bits(f)
}

func channelByte(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint32(v*255 + 0.5)
}
