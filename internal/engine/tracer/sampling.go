package tracer

import (
	"math"

	vmath "github.com/Faultbox/tilebake/pkg/math"
)

// uniformDisk maps a uniform unit-square sample to a point on the unit disk.
func uniformDisk(u, v float64) (x, y float64) {
	r := math.Sqrt(u)
	theta := 2 * math.Pi * v
	return r * math.Cos(theta), r * math.Sin(theta)
}

// basis is an orthonormal frame with n as its third axis.
type basis struct {
	t, b, n vmath.Vec3
}

// makeBasis builds an orthonormal basis around the given unit vector.
func makeBasis(n vmath.Vec3) basis {
	up := vmath.Vec3{Z: 1}
	if math.Abs(n.Z) > 0.999 {
		up = vmath.Vec3{X: 1}
	}
	t := up.Cross(n).Normalize()
	return basis{t: t, b: n.Cross(t), n: n}
}

// mul transforms a vector from the local frame to world space.
func (m basis) mul(v vmath.Vec3) vmath.Vec3 {
	return m.t.Scale(v.X).Add(m.b.Scale(v.Y)).Add(m.n.Scale(v.Z))
}

// cosineSphere returns a cosine-weighted sample direction in the
// hemisphere around the normal: the probability density of a direction
// is proportional to cos(theta) from the normal.
func cosineSphere(u, v float64, normal vmath.Vec3) vmath.Vec3 {
	x, y := uniformDisk(u, v)
	z := math.Sqrt(math.Max(0, 1-x*x-y*y))
	return makeBasis(normal).mul(vmath.Vec3{X: x, Y: y, Z: z})
}
