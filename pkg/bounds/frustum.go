package bounds

import "github.com/Faultbox/midgard-cull/pkg/math"

// Frustum plane indices.
const (
	PlaneNear = iota
	PlaneFar
	PlaneLeft
	PlaneRight
	PlaneBottom
	PlaneTop
)

// ndcCorners are the clip-space cube corners: near face (z=-1) first, then
// the far face, each walking (-x,-y), (+x,-y), (+x,+y), (-x,+y).
var ndcCorners = [8]math.Vec3{
	{X: -1, Y: -1, Z: -1},
	{X: 1, Y: -1, Z: -1},
	{X: 1, Y: 1, Z: -1},
	{X: -1, Y: 1, Z: -1},
	{X: -1, Y: -1, Z: 1},
	{X: 1, Y: -1, Z: 1},
	{X: 1, Y: 1, Z: 1},
	{X: -1, Y: 1, Z: 1},
}

// facePoints picks three corners on each face, indexed by plane.
var facePoints = [6][3]int{
	PlaneNear:   {0, 1, 2},
	PlaneFar:    {4, 5, 6},
	PlaneLeft:   {0, 3, 7},
	PlaneRight:  {1, 2, 6},
	PlaneBottom: {0, 1, 5},
	PlaneTop:    {3, 2, 6},
}

// Frustum is a convex hexahedron described by its 8 corners (near face
// 0-3, far face 4-7) and the 6 inward-facing planes through them.
//
// Keeping corners as the primary data makes Transform exact for any affine
// matrix, including non-uniform scale and mirroring.
type Frustum struct {
	corners [8]math.Vec3
	planes  [6]Plane
}

// FromProjection builds the view-space frustum of a projection matrix by
// unprojecting the clip-space cube. A singular projection gives a
// degenerate frustum.
func FromProjection(proj math.Mat4) Frustum {
	inv := proj.Inverse()
	var c [8]math.Vec3
	for i, p := range ndcCorners {
		c[i] = inv.TransformPoint(p)
	}
	return FromCorners(c)
}

// FromCorners builds a frustum from 8 corners in the shared corner order.
func FromCorners(corners [8]math.Vec3) Frustum {
	f := Frustum{corners: corners}

	var centroid math.Vec3
	for _, c := range corners {
		centroid = centroid.Add(c)
	}
	centroid = centroid.Scale(1.0 / 8)

	for i, fp := range facePoints {
		p := PlaneFromPoints(corners[fp[0]], corners[fp[1]], corners[fp[2]])
		if p.Distance(centroid) < 0 {
			p = p.Flip()
		}
		f.planes[i] = p
	}
	return f
}

// Transform returns the frustum mapped through m.
func (f Frustum) Transform(m math.Mat4) Frustum {
	var c [8]math.Vec3
	for i, p := range f.corners {
		c[i] = m.TransformPoint(p)
	}
	return FromCorners(c)
}

// Corners returns the near face corners followed by the far face corners.
func (f Frustum) Corners() [8]math.Vec3 {
	return f.corners
}

// Planes returns the 6 planes, indexed by PlaneNear..PlaneTop.
func (f Frustum) Planes() [6]Plane {
	return f.planes
}

// Plane returns one plane by index.
func (f Frustum) Plane(i int) Plane {
	return f.planes[i]
}

// ContainsPoint reports whether p is inside or on the frustum.
func (f Frustum) ContainsPoint(p math.Vec3) bool {
	for _, pl := range f.planes {
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsSphere reports whether s touches the frustum. The test only
// uses the frustum planes, so spheres near an outside edge may be accepted.
func (f Frustum) IntersectsSphere(s Sphere) bool {
	for _, pl := range f.planes {
		if pl.Distance(s.Center) < -s.Radius {
			return false
		}
	}
	return true
}

// IntersectsBox reports whether an axis-aligned box in the frustum's space
// touches or lies inside the frustum.
func (f Frustum) IntersectsBox(b AABB) bool {
	e := b.Extents
	for _, pl := range f.planes {
		n := pl.Normal.Abs()
		r := n.X*e.X + n.Y*e.Y + n.Z*e.Z
		if pl.Distance(b.Center) < -r {
			return false
		}
	}

	// Box face slabs against the frustum corners.
	lo, hi := f.corners[0], f.corners[0]
	for _, c := range f.corners[1:] {
		lo = lo.Min(c)
		hi = hi.Max(c)
	}
	bmin, bmax := b.Min(), b.Max()
	if lo.X > bmax.X || hi.X < bmin.X ||
		lo.Y > bmax.Y || hi.Y < bmin.Y ||
		lo.Z > bmax.Z || hi.Z < bmin.Z {
		return false
	}
	return true
}

// IntersectsOrientedBox reports whether an oriented box in the frustum's
// space touches or lies inside the frustum.
//
// Separating axes tested: the 6 frustum planes and the 3 box face normals.
// Edge-edge axes are skipped, so a box may be accepted when it is separated
// only along such an axis; an intersecting box is never rejected.
func (f Frustum) IntersectsOrientedBox(b OrientedBox) bool {
	for _, pl := range f.planes {
		if pl.Distance(b.Center) < -b.radiusAlong(pl.Normal) {
			return false
		}
	}

	h := b.HalfAxes()
	for i := 0; i < 3; i++ {
		n := b.Axes[(i+1)%3].Cross(b.Axes[(i+2)%3]).Normalize()
		if n == (math.Vec3{}) {
			continue
		}
		r := abs32(n.Dot(h[i]))
		d := f.corners[0].Sub(b.Center).Dot(n)
		lo, hi := d, d
		for _, c := range f.corners[1:] {
			d = c.Sub(b.Center).Dot(n)
			lo = min(lo, d)
			hi = max(hi, d)
		}
		if lo > r || hi < -r {
			return false
		}
	}
	return true
}
