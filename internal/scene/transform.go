// Package scene describes the objects fed into visibility culling: their
// transforms, the shared local box and the camera looking at them.
package scene

import "github.com/Faultbox/midgard-cull/pkg/math"

// Transform places an object with scale, then rotation, then translation.
type Transform struct {
	Position math.Vec3
	Rotation math.Quat
	Scale    math.Vec3
}

// NewTransform creates a transform.
func NewTransform(position math.Vec3, rotation math.Quat, scale math.Vec3) Transform {
	return Transform{Position: position, Rotation: rotation, Scale: scale}
}

// IdentityTransform returns a transform that leaves points unchanged.
func IdentityTransform() Transform {
	return Transform{
		Rotation: math.QuatIdentity(),
		Scale:    math.Vec3{X: 1, Y: 1, Z: 1},
	}
}

// LocalToWorld returns T * R * S.
func (t Transform) LocalToWorld() math.Mat4 {
	rot := t.Rotation
	if rot.IsZero() {
		rot = math.QuatIdentity()
	}
	return math.TranslateVec3(t.Position).
		Mul(rot.ToMat4()).
		Mul(math.Scale(t.Scale.X, t.Scale.Y, t.Scale.Z))
}

// WorldToLocal returns S^-1 * R^T * T^-1. A zero scale component gives a
// singular result.
func (t Transform) WorldToLocal() math.Mat4 {
	rot := t.Rotation
	if rot.IsZero() {
		rot = math.QuatIdentity()
	}
	inv := func(s float32) float32 {
		if s == 0 {
			return 0
		}
		return 1 / s
	}
	return math.Scale(inv(t.Scale.X), inv(t.Scale.Y), inv(t.Scale.Z)).
		Mul(rot.ToMat4().Transpose()).
		Mul(math.TranslateVec3(t.Position.Neg()))
}

// Translated returns a copy moved by d.
func (t Transform) Translated(d math.Vec3) Transform {
	t.Position = t.Position.Add(d)
	return t
}
