package bounds

import "github.com/Faultbox/midgard-cull/pkg/math"

// Plane is the set of points p with Normal·p + D = 0.
// Frustum planes point their normal into the frustum.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// PlaneFromPoints builds the plane through a, b, c with normal (b-a)x(c-a).
// Collinear points produce the zero plane.
func PlaneFromPoints(a, b, c math.Vec3) Plane {
	n := b.Sub(a).Cross(c.Sub(a)).Normalize()
	return Plane{Normal: n, D: -n.Dot(a)}
}

// Distance returns the signed distance from p to the plane.
func (p Plane) Distance(pt math.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Flip returns the plane facing the other way.
func (p Plane) Flip() Plane {
	return Plane{Normal: p.Normal.Neg(), D: -p.D}
}
