package bounds

import "github.com/Faultbox/midgard-cull/pkg/math"

// OrientedBox is a box with its own orientation.
// Axes holds unit directions for the box's local X, Y and Z; Extents are the
// half-lengths along them. Axes stay orthogonal under rigid transforms; a
// sheared transform leaves them skewed and the box becomes a parallelepiped,
// which every method here still handles exactly.
type OrientedBox struct {
	Center  math.Vec3
	Extents math.Vec3
	Axes    [3]math.Vec3
}

// OrientedFromAABB converts an axis-aligned box.
func OrientedFromAABB(b AABB) OrientedBox {
	return OrientedBox{
		Center:  b.Center,
		Extents: b.Extents,
		Axes:    [3]math.Vec3{{X: 1}, {Y: 1}, {Z: 1}},
	}
}

// NewOrientedBox creates a box rotated by q.
func NewOrientedBox(center, extents math.Vec3, q math.Quat) OrientedBox {
	return OrientedBox{
		Center:  center,
		Extents: extents,
		Axes: [3]math.Vec3{
			q.Rotate(math.Vec3{X: 1}),
			q.Rotate(math.Vec3{Y: 1}),
			q.Rotate(math.Vec3{Z: 1}),
		},
	}
}

// HalfAxes returns each axis scaled by its extent.
func (b OrientedBox) HalfAxes() [3]math.Vec3 {
	return [3]math.Vec3{
		b.Axes[0].Scale(b.Extents.X),
		b.Axes[1].Scale(b.Extents.Y),
		b.Axes[2].Scale(b.Extents.Z),
	}
}

// Corners returns the 8 corners in the shared corner order.
func (b OrientedBox) Corners() [8]math.Vec3 {
	h := b.HalfAxes()
	var out [8]math.Vec3
	for i, o := range cornerOffsets {
		out[i] = b.Center.
			Add(h[0].Scale(o.X)).
			Add(h[1].Scale(o.Y)).
			Add(h[2].Scale(o.Z))
	}
	return out
}

// Transform returns the box mapped through the affine matrix m.
// Scale in m is folded into Extents.
func (b OrientedBox) Transform(m math.Mat4) OrientedBox {
	out := OrientedBox{Center: m.TransformPoint(b.Center)}
	h := b.HalfAxes()
	ext := [3]float32{}
	for i := range h {
		a := m.TransformDirection(h[i])
		l := a.Length()
		ext[i] = l
		if l > 0 {
			out.Axes[i] = a.Scale(1 / l)
		} else {
			// Zero extent: keep a direction so the box stays well formed.
			out.Axes[i] = m.TransformDirection(b.Axes[i]).Normalize()
		}
	}
	out.Extents = math.Vec3{X: ext[0], Y: ext[1], Z: ext[2]}
	return out
}

// Contains reports whether p lies inside or on the box.
func (b OrientedBox) Contains(p math.Vec3) bool {
	h := b.HalfAxes()
	d := p.Sub(b.Center)
	// Face normals give the box-local coordinate of p even when skewed.
	for i := 0; i < 3; i++ {
		n := b.Axes[(i+1)%3].Cross(b.Axes[(i+2)%3])
		r := abs32(n.Dot(h[i]))
		if abs32(n.Dot(d)) > r {
			return false
		}
	}
	return true
}

// radiusAlong returns the half-length of the box's projection onto n.
func (b OrientedBox) radiusAlong(n math.Vec3) float32 {
	h := b.HalfAxes()
	return abs32(n.Dot(h[0])) + abs32(n.Dot(h[1])) + abs32(n.Dot(h[2]))
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
