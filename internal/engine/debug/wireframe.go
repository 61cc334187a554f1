// Package debug provides debug visualization utilities.
package debug

import (
	gomath "math"

	"github.com/Faultbox/midgard-cull/pkg/bounds"
	"github.com/Faultbox/midgard-cull/pkg/math"
)

// MinSphereSlices is the smallest ring resolution FromSphere will build.
const MinSphereSlices = 3

// DefaultSphereSlices is the ring resolution used when none is configured.
const DefaultSphereSlices = 32

// Vertex is a colored wireframe vertex.
type Vertex struct {
	Pos   math.Vec3  `yaml:"pos"`
	Color math.Color `yaml:"color,flow"`
}

// WireFrameData is a line list: Indices holds index pairs into Vertices.
type WireFrameData struct {
	Vertices []Vertex `yaml:"vertices"`
	Indices  []uint32 `yaml:"indices,flow"`
}

// LineCount returns the number of line segments.
func (w WireFrameData) LineCount() int {
	return len(w.Indices) / 2
}

// FromBox builds the 12-edge wireframe of an axis-aligned box.
func FromBox(box bounds.AABB, color math.Color) WireFrameData {
	return FromCorners(box.Corners(), color)
}

// FromOrientedBox builds the 12-edge wireframe of an oriented box.
func FromOrientedBox(box bounds.OrientedBox, color math.Color) WireFrameData {
	return FromCorners(box.Corners(), color)
}

// FromFrustum builds the 12-edge wireframe of a frustum.
func FromFrustum(f bounds.Frustum, color math.Color) WireFrameData {
	return FromCorners(f.Corners(), color)
}

// FromSphere approximates a sphere with three perpendicular great circles of
// slices points each. Vertices are stored slice by slice, three per slice:
// the ring around Y (starting on +X), around Z (starting on +Y) and around X
// (starting on +Z). Fewer than MinSphereSlices slices are raised to the
// minimum.
func FromSphere(s bounds.Sphere, color math.Color, slices int) WireFrameData {
	if slices < MinSphereSlices {
		slices = MinSphereSlices
	}

	data := WireFrameData{
		Vertices: make([]Vertex, 0, 3*slices),
		Indices:  make([]uint32, 0, 6*slices),
	}

	step := 2 * gomath.Pi / float64(slices)
	for i := 0; i < slices; i++ {
		theta := float32(float64(i) * step)
		rings := [3]math.Vec3{
			math.RotateY(theta).TransformDirection(math.Vec3{X: 1}),
			math.RotateZ(theta).TransformDirection(math.Vec3{Y: 1}),
			math.RotateX(theta).TransformDirection(math.Vec3{Z: 1}),
		}
		for _, dir := range rings {
			data.Vertices = append(data.Vertices, Vertex{
				Pos:   s.Center.Add(dir.Scale(s.Radius)),
				Color: color,
			})
		}
	}

	n := uint32(slices)
	for i := uint32(0); i < n; i++ {
		next := (i + 1) % n
		for ring := uint32(0); ring < 3; ring++ {
			data.Indices = append(data.Indices, i*3+ring, next*3+ring)
		}
	}
	return data
}

// FromCorners builds a cuboid-topology wireframe from 8 corners in the
// shared order (face A 0-3, face B 4-7, corner i opposite i+4):
//
//	    3_______2
//	   /|      /|
//	 7/_|____6/ |
//	 |  |____|__|
//	 | /0    | /1
//	 |/______|/
//	 4       5
//
// For each i in 0..3 it emits the column edge (i, i+4) and the face edges
// (i, i+1) and (i+4, i+5), wrapping within the face.
func FromCorners(corners [8]math.Vec3, color math.Color) WireFrameData {
	data := WireFrameData{
		Vertices: make([]Vertex, 0, 8),
		Indices:  make([]uint32, 0, 24),
	}
	for _, c := range corners {
		data.Vertices = append(data.Vertices, Vertex{Pos: c, Color: color})
	}
	for i := uint32(0); i < 4; i++ {
		next := (i + 1) % 4
		data.Indices = append(data.Indices,
			i, i+4,
			i, next,
			i+4, next+4,
		)
	}
	return data
}

// Append merges other into w, offsetting its indices.
func (w *WireFrameData) Append(other WireFrameData) {
	base := uint32(len(w.Vertices))
	w.Vertices = append(w.Vertices, other.Vertices...)
	for _, idx := range other.Indices {
		w.Indices = append(w.Indices, base+idx)
	}
}

// LineVertexFloats is the number of floats per line vertex: [x, y, z, r, g, b, a].
const LineVertexFloats = 7

// LineVertices expands the indexed data into an interleaved line-list
// buffer, two vertices per segment, ready for a non-indexed line draw.
func (w WireFrameData) LineVertices() []float32 {
	out := make([]float32, 0, len(w.Indices)*LineVertexFloats)
	for _, idx := range w.Indices {
		v := w.Vertices[idx]
		out = append(out,
			v.Pos.X, v.Pos.Y, v.Pos.Z,
			v.Color[0], v.Color[1], v.Color[2], v.Color[3],
		)
	}
	return out
}

// LineVertexCount returns the number of vertices LineVertices produces.
func (w WireFrameData) LineVertexCount() int {
	return len(w.Indices)
}
