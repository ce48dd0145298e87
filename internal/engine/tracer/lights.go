package tracer

import (
	"github.com/Faultbox/tilebake/pkg/imaging"
	vmath "github.com/Faultbox/tilebake/pkg/math"
)

// Lights holds the lighting configuration for a render session.
// It is immutable once handed to a Renderer and is shared by value
// across all worker goroutines.
type Lights struct {
	// SunDir is the direction towards the sun, normalized.
	SunDir vmath.Vec3 `yaml:"sun_dir"`

	// SunColor is the sun's light intensity.
	SunColor imaging.RGBf `yaml:"sun_color"`

	// SunAngle is the angular radius of the sun disk, controlling
	// shadow softness.
	SunAngle float64 `yaml:"sun_angle"`

	// SunRays is the number of shadow rays cast towards the sun per pixel.
	SunRays int `yaml:"sun_rays"`

	// Ambient is the sky light intensity.
	Ambient imaging.RGBf `yaml:"ambient"`

	// AmbientRays is the number of hemisphere rays cast per pixel.
	AmbientRays int `yaml:"ambient_rays"`

	// FakeAmbient is a flat additive term applied regardless of occlusion.
	FakeAmbient imaging.RGBf `yaml:"fake_ambient"`

	// InvertDM inverts the diffuse map colors (debug/visual mode).
	InvertDM bool `yaml:"invert_dm"`
}

// DefaultLights returns the stock lighting setup.
func DefaultLights() Lights {
	return Lights{
		SunDir:      vmath.Vec3{X: 1, Y: -1, Z: 0.7}.Normalize(),
		SunColor:    imaging.RGBf{R: 0.7, G: 0.4, B: 0.2}.Scale(0.4),
		SunAngle:    0.25,
		SunRays:     7,
		Ambient:     imaging.RGBf{R: 0.5, G: 0.6, B: 0.9}.Scale(0.6),
		AmbientRays: 31,
		FakeAmbient: imaging.RGBf{},
		InvertDM:    false,
	}
}

// SampleSunDir returns a unit direction within the sun's cone, built
// from a unit-square sample. The disk sample is scaled by the sun's
// angular radius and offset along the sun direction.
func (l Lights) SampleSunDir(u, v float64) vmath.Vec3 {
	x, y := uniformDisk(u, v)
	d := makeBasis(l.SunDir).mul(vmath.Vec3{X: x, Y: y, Z: 1})
	return d.Scale(l.SunAngle).Add(l.SunDir).Normalize()
}
