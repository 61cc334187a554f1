package debug

import (
	"github.com/Faultbox/midgard-cull/pkg/bounds"
	"github.com/Faultbox/midgard-cull/pkg/math"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for selection boxes.
const DefaultBBoxPadding = 1.0

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func GenerateBBoxWireframeVertices(box bounds.AABB) []float32 {
	w := FromBox(box, math.ColorWhite)
	out := make([]float32, 0, BBoxWireframeVertexCount*3)
	for _, idx := range w.Indices {
		p := w.Vertices[idx].Pos
		out = append(out, p.X, p.Y, p.Z)
	}
	return out
}

// PlacedBoxWireframe transforms a local box by a placement and pads it.
// The result is the oriented wireframe drawn around a culled object.
func PlacedBoxWireframe(local bounds.AABB, world math.Mat4, padding float32, color math.Color) WireFrameData {
	padded := local
	padded.Extents = padded.Extents.Add(math.Vec3{X: padding, Y: padding, Z: padding})
	return FromOrientedBox(bounds.OrientedFromAABB(padded).Transform(world), color)
}
