// Package bounds provides bounding volumes and the frustum intersection
// tests used for visibility culling.
//
// All shapes report their corners in the same order: face A is 0-1-2-3,
// face B is 4-5-6-7 and corner i sits opposite corner i+4. Each face walks
// (-x,-y), (+x,-y), (+x,+y), (-x,+y) in the shape's own frame.
package bounds

import "github.com/Faultbox/midgard-cull/pkg/math"

// cornerOffsets are unit-box corners in the shared corner order.
// Face A is +Z, face B is -Z.
var cornerOffsets = [8]math.Vec3{
	{X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: 1},
	{X: -1, Y: -1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: -1},
}

// AABB is an axis-aligned box stored as center and half-extents.
type AABB struct {
	Center  math.Vec3 `yaml:"center"`
	Extents math.Vec3 `yaml:"extents"`
}

// FromMinMax creates an AABB from two opposite corners in any order.
func FromMinMax(a, b math.Vec3) AABB {
	lo := a.Min(b)
	hi := a.Max(b)
	return AABB{
		Center:  lo.Add(hi).Scale(0.5),
		Extents: hi.Sub(lo).Scale(0.5),
	}
}

// FromPoints returns the smallest AABB containing every point.
// An empty slice yields the zero box.
func FromPoints(points []math.Vec3) AABB {
	if len(points) == 0 {
		return AABB{}
	}
	lo, hi := points[0], points[0]
	for _, p := range points[1:] {
		lo = lo.Min(p)
		hi = hi.Max(p)
	}
	return FromMinMax(lo, hi)
}

// Min returns the minimum corner.
func (b AABB) Min() math.Vec3 {
	return b.Center.Sub(b.Extents)
}

// Max returns the maximum corner.
func (b AABB) Max() math.Vec3 {
	return b.Center.Add(b.Extents)
}

// Corners returns the 8 corners in the shared corner order.
func (b AABB) Corners() [8]math.Vec3 {
	var out [8]math.Vec3
	for i, o := range cornerOffsets {
		out[i] = b.Center.Add(o.Mul(b.Extents))
	}
	return out
}

// Contains reports whether p lies inside or on the box.
func (b AABB) Contains(p math.Vec3) bool {
	d := p.Sub(b.Center).Abs()
	return d.X <= b.Extents.X && d.Y <= b.Extents.Y && d.Z <= b.Extents.Z
}

// Radius returns the distance from center to corner (half-diagonal).
func (b AABB) Radius() float32 {
	return b.Extents.Length()
}
