package bounds

import "github.com/Faultbox/midgard-cull/pkg/math"

// Sphere is a bounding sphere.
type Sphere struct {
	Center math.Vec3 `yaml:"center"`
	Radius float32   `yaml:"radius"`
}

// SphereFromAABB returns the sphere circumscribing b.
func SphereFromAABB(b AABB) Sphere {
	return Sphere{Center: b.Center, Radius: b.Radius()}
}

// Contains reports whether p lies inside or on the sphere.
func (s Sphere) Contains(p math.Vec3) bool {
	return p.Distance(s.Center) <= s.Radius
}
