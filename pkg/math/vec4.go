package math

// Vec4 is a 4-component vector.
type Vec4 [4]float32

// Color is an RGBA color used to tag debug geometry.
type Color = Vec4

// Debug colors.
var (
	ColorWhite  = Color{1, 1, 1, 1}
	ColorRed    = Color{1, 0, 0, 1}
	ColorGreen  = Color{0, 1, 0, 1}
	ColorBlue   = Color{0, 0, 1, 1}
	ColorYellow = Color{1, 1, 0, 1}
)

// Vec3 drops the w component.
func (v Vec4) Vec3() Vec3 {
	return Vec3{v[0], v[1], v[2]}
}

// Point returns p as a homogeneous point (w=1).
func Point(p Vec3) Vec4 {
	return Vec4{p.X, p.Y, p.Z, 1}
}
