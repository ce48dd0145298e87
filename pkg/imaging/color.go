package imaging

import "math"

// BGRA is an 8-bit gamma-encoded color with alpha, in the byte order
// used by the tile textures.
type BGRA struct {
	B, G, R, A uint8
}

// RGBA returns the color as an RGBA byte quadruple.
func (c BGRA) RGBA() [4]uint8 {
	return [4]uint8{c.R, c.G, c.B, c.A}
}

// Linear returns the linearized color, dropping alpha.
// Uses the fast approximate transfer function (see SRGBToLinearFast).
func (c BGRA) Linear() RGBf {
	return RGBf{
		R: SRGBToLinearFast(c.R),
		G: SRGBToLinearFast(c.G),
		B: SRGBToLinearFast(c.B),
	}
}

// RGBf is a linear-light RGB color with float32 precision.
type RGBf struct {
	R, G, B float32
}

// Add returns c + other, channel-wise.
func (c RGBf) Add(other RGBf) RGBf {
	return RGBf{c.R + other.R, c.G + other.G, c.B + other.B}
}

// Scale returns c * s, channel-wise.
func (c RGBf) Scale(s float32) RGBf {
	return RGBf{c.R * s, c.G * s, c.B * s}
}

// SRGB8 converts the linear color to gamma-encoded bytes using the
// exact sRGB transfer function.
func (c RGBf) SRGB8() [3]uint8 {
	return [3]uint8{SRGB8(c.R), SRGB8(c.G), SRGB8(c.B)}
}

// SRGB8 converts one linear channel to a gamma-encoded byte using the
// exact sRGB transfer function.
func SRGB8(x float32) uint8 {
	return uint8(LinearToSRGB(x) * 255.0)
}

// LinearToSRGB applies the standard sRGB transfer function,
// clamping the result to [0, 1].
// https://en.wikipedia.org/wiki/SRGB
func LinearToSRGB(c float32) float32 {
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	if c <= 0.0031308 {
		return 12.92 * c
	}
	s := 1.055*float32(math.Pow(float64(c), 1.0/2.4)) - 0.055
	if s > 1.0 {
		return 1.0
	}
	return s
}

// SRGBToLinearFast approximates gamma decoding with a square curve.
// Good enough for diffuse maps inside the shading loop, where the
// exact transfer function would be needlessly slow.
func SRGBToLinearFast(x uint8) float32 {
	f := float32(x)
	return (f * f) / (255.0 * 255.0)
}

// LinearToSRGB8Fast approximates gamma encoding with a square root,
// clamped to 255. Inverse of SRGBToLinearFast.
func LinearToSRGB8Fast(x float32) uint8 {
	c := float32(math.Sqrt(float64(x))) * 255.0
	if c > 255.0 {
		return 255
	}
	if c < 0 {
		return 0
	}
	return uint8(c)
}
