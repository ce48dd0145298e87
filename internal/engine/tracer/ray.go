package tracer

import (
	vmath "github.com/Faultbox/tilebake/pkg/math"
)

// Ray is a half-line representing a line of light.
// Dir is expected to be normalized.
type Ray struct {
	Start vmath.Vec3
	Dir   vmath.Vec3
}

// NewRay constructs a ray from a start point and a unit direction.
func NewRay(start, dir vmath.Vec3) Ray {
	return Ray{Start: start, Dir: dir}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float64) vmath.Vec3 {
	return r.Start.Add(r.Dir.Scale(t))
}

// IsValid reports whether the ray contains only finite numbers and has
// an approximately normalized direction.
func (r Ray) IsValid() bool {
	return r.Start.IsFinite() && r.Dir.IsNormalized()
}
