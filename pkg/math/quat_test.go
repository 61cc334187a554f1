package math

import (
	"math"
	"testing"
)

func TestQuatIdentity(t *testing.T) {
	q := QuatIdentity()
	if q.X != 0 || q.Y != 0 || q.Z != 0 || q.W != 1 {
		t.Errorf("Identity quaternion should be (0,0,0,1), got (%v,%v,%v,%v)", q.X, q.Y, q.Z, q.W)
	}
	if !q.ToMat4().ApproxEqual(Identity(), 1e-6) {
		t.Error("Identity quat should produce identity matrix")
	}
}

func TestQuatNormalize(t *testing.T) {
	n := Quat{X: 1, Y: 2, Z: 3, W: 4}.Normalize()
	length := float32(math.Sqrt(float64(n.Dot(n))))
	if abs32(length-1) > 0.0001 {
		t.Errorf("Normalized quaternion length should be 1, got %v", length)
	}
	if (Quat{}).Normalize() != QuatIdentity() {
		t.Error("zero quaternion should normalize to identity")
	}
}

func TestQuatToMat4MatchesRotate(t *testing.T) {
	tests := []struct {
		name string
		axis Vec3
		want func(float32) Mat4
	}{
		{"x", Vec3{X: 1}, RotateX},
		{"y", Vec3{Y: 1}, RotateY},
		{"z", Vec3{Z: 1}, RotateZ},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuatFromAxisAngle(tt.axis, 0.8).ToMat4()
			if !got.ApproxEqual(tt.want(0.8), 1e-5) {
				t.Errorf("ToMat4 = %v, want %v", got, tt.want(0.8))
			}
		})
	}
}

func TestQuatRotateMatchesMatrix(t *testing.T) {
	q := QuatFromYawPitchRoll(0.5, -0.3, 1.2)
	v := Vec3{1, -2, 3}
	got := q.Rotate(v)
	want := q.ToMat4().TransformPoint(v)
	if !got.ApproxEqual(want, 1e-5) {
		t.Errorf("Rotate = %v, matrix = %v", got, want)
	}
	back := q.Conjugate().Rotate(got)
	if !back.ApproxEqual(v, 1e-4) {
		t.Errorf("conjugate rotation = %v, want %v", back, v)
	}
}

func TestQuatFromAxisAngle(t *testing.T) {
	// 90 degrees around Y axis
	q := QuatFromAxisAngle(Vec3{X: 0, Y: 1, Z: 0}, float32(math.Pi/2))

	expectedW := float32(math.Cos(math.Pi / 4))
	expectedY := float32(math.Sin(math.Pi / 4))

	if abs32(q.W-expectedW) > 0.001 {
		t.Errorf("QuatFromAxisAngle W: expected %v, got %v", expectedW, q.W)
	}
	if abs32(q.Y-expectedY) > 0.001 {
		t.Errorf("QuatFromAxisAngle Y: expected %v, got %v", expectedY, q.Y)
	}
}
