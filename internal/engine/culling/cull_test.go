package culling

import (
	gomath "math"
	"math/rand"
	"slices"
	"testing"

	"github.com/Faultbox/midgard-cull/internal/scene"
	"github.com/Faultbox/midgard-cull/pkg/bounds"
	"github.com/Faultbox/midgard-cull/pkg/math"
)

// tagged carries an id so tests can check which placements survived.
type tagged struct {
	id    int
	world math.Mat4
}

func (t tagged) LocalToWorld() math.Mat4 { return t.world }

func ids(ps []tagged) []int {
	out := make([]int, len(ps))
	for i, p := range ps {
		out[i] = p.id
	}
	return out
}

var unitBox = bounds.AABB{Extents: math.Vec3{X: 0.5, Y: 0.5, Z: 0.5}}

func TestCameraCoincidentAccepted(t *testing.T) {
	proj := math.Perspective(gomath.Pi/2, 1, 0.1, 100)
	for _, s := range Strategies() {
		got := Filter(s, []math.Mat4{math.Identity()}, unitBox, math.Identity(), proj)
		if len(got) != 1 {
			t.Errorf("%v: placement at the camera should be visible", s)
		}
	}
}

func TestBeyondFarPlaneRejected(t *testing.T) {
	proj := math.Perspective(gomath.Pi/2, 1, 0.1, 100)
	world := math.Translate(0, 0, -1000)
	for _, s := range Strategies() {
		got := Filter(s, []math.Mat4{world}, unitBox, math.Identity(), proj)
		if len(got) != 0 {
			t.Errorf("%v: placement 10x past the far plane should be culled", s)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	proj := math.Perspective(gomath.Pi/2, 1, 0.1, 100)
	for _, s := range Strategies() {
		got := Filter[math.Mat4](s, nil, unitBox, math.Identity(), proj)
		if got == nil || len(got) != 0 {
			t.Errorf("%v: expected empty non-nil result, got %v", s, got)
		}
	}
}

func TestFilterBehindCamera(t *testing.T) {
	view := math.LookAt(math.Vec3{Z: 10}, math.Vec3{}, math.Vec3{Y: 1})
	proj := math.Perspective(gomath.Pi/3, 1, 0.5, 50)
	in := []math.Mat4{
		math.Identity(),          // straight ahead
		math.Translate(0, 0, 20), // behind the eye
		math.Translate(30, 0, 0), // off to the side
		math.Translate(0, 0, -35),
	}
	for _, s := range Strategies() {
		got := Filter(s, in, unitBox, view, proj)
		if len(got) != 2 || got[0] != in[0] || got[1] != in[3] {
			t.Errorf("%v: got %d visible, want the first and last", s, len(got))
		}
	}
}

// randomScene scatters boxes with random rotation and non-uniform scale
// around a camera so some are visible and some are not.
func randomScene(n int) ([]tagged, bounds.AABB, math.Mat4, math.Mat4) {
	r := rand.New(rand.NewSource(42))
	uniform := func(lo, hi float32) float32 { return lo + r.Float32()*(hi-lo) }

	placements := make([]tagged, n)
	for i := range placements {
		axis := math.Vec3{X: uniform(-1, 1), Y: uniform(-1, 1), Z: uniform(-1, 1)}
		if axis.Length() < 1e-3 {
			axis = math.Vec3{Y: 1}
		}
		tr := scene.NewTransform(
			math.Vec3{X: uniform(-80, 80), Y: uniform(-40, 40), Z: uniform(-120, 40)},
			math.QuatFromAxisAngle(axis.Normalize(), uniform(0, 2*gomath.Pi)),
			math.Vec3{X: uniform(0.2, 3), Y: uniform(0.2, 3), Z: uniform(0.2, 3)},
		)
		placements[i] = tagged{id: i, world: tr.LocalToWorld()}
	}

	box := bounds.AABB{
		Center:  math.Vec3{X: 0.5, Y: 1},
		Extents: math.Vec3{X: 1, Y: 2, Z: 0.5},
	}
	view := math.LookAt(math.Vec3{X: 5, Y: 10, Z: 20}, math.Vec3{Z: -30}, math.Vec3{Y: 1})
	proj := math.Perspective(gomath.Pi/3, 16.0/9.0, 0.5, 100)
	return placements, box, view, proj
}

// nearBoundary reports whether p flips visibility when its box grows or
// shrinks by a hair, which is where strategies may round differently.
func nearBoundary(p tagged, box bounds.AABB, view, proj math.Mat4) bool {
	grown, shrunk := box, box
	grown.Extents = box.Extents.Scale(1.01)
	shrunk.Extents = box.Extents.Scale(0.99)
	in := []tagged{p}
	return len(Filter(ViewSpace, in, grown, view, proj)) == 1 &&
		len(Filter(ViewSpace, in, shrunk, view, proj)) == 0
}

func TestStrategiesAgree(t *testing.T) {
	placements, box, view, proj := randomScene(2000)

	results := make(map[Strategy]map[int]bool)
	for _, s := range Strategies() {
		got := Filter(s, placements, box, view, proj)
		set := make(map[int]bool, len(got))
		for _, p := range got {
			set[p.id] = true
		}
		results[s] = set
	}

	visible := len(results[ViewSpace])
	if visible == 0 || visible == len(placements) {
		t.Fatalf("scene should be partly visible, got %d of %d", visible, len(placements))
	}

	for _, p := range placements {
		w := results[WorldSpace][p.id]
		l := results[LocalSpace][p.id]
		v := results[ViewSpace][p.id]
		if w == l && l == v {
			continue
		}
		if !nearBoundary(p, box, view, proj) {
			t.Errorf("placement %d: world=%v local=%v view=%v away from any boundary", p.id, w, l, v)
		}
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	placements, box, view, proj := randomScene(500)
	for _, s := range Strategies() {
		got := ids(Filter(s, placements, box, view, proj))
		if !slices.IsSorted(got) {
			t.Errorf("%v: result out of input order", s)
		}
		if len(slices.Compact(slices.Clone(got))) != len(got) {
			t.Errorf("%v: result has duplicates", s)
		}
	}
}

func TestFilterIdempotent(t *testing.T) {
	placements, box, view, proj := randomScene(500)
	for _, s := range Strategies() {
		once := Filter(s, placements, box, view, proj)
		twice := Filter(s, once, box, view, proj)
		if !slices.Equal(ids(once), ids(twice)) {
			t.Errorf("%v: filtering the visible set again changed it", s)
		}
	}
}

func TestFilterDoesNotMutate(t *testing.T) {
	placements, box, view, proj := randomScene(200)
	before := slices.Clone(placements)
	boxBefore := box

	got := Filter(LocalSpace, placements, box, view, proj)
	if len(got) > 0 {
		got[0] = tagged{id: -1}
	}

	if !slices.Equal(ids(before), ids(placements)) {
		t.Error("input slice was modified")
	}
	for i := range before {
		if before[i].world != placements[i].world {
			t.Fatalf("placement %d matrix changed", i)
		}
	}
	if box != boxBefore {
		t.Error("local box was modified")
	}
}

func TestFilterTransformsMatchMatrices(t *testing.T) {
	s := scene.Default()
	transforms := s.Placements()
	matrices := make([]math.Mat4, len(transforms))
	for i, tr := range transforms {
		matrices[i] = tr.LocalToWorld()
	}

	view, proj := s.View(), s.Projection()
	for _, st := range Strategies() {
		a := Filter(st, transforms, s.LocalBox, view, proj)
		b := Filter(st, matrices, s.LocalBox, view, proj)
		if len(a) != len(b) {
			t.Fatalf("%v: %d transforms vs %d matrices visible", st, len(a), len(b))
		}
		for i := range a {
			if a[i].LocalToWorld() != b[i] {
				t.Errorf("%v: result %d differs", st, i)
			}
		}
	}
}

func TestCullMatchesFilter(t *testing.T) {
	placements, box, view, proj := randomScene(1000)
	for _, s := range Strategies() {
		c := NewCuller(Options{Strategy: s, Workers: 4, BatchSize: 7})
		got := Cull(c, placements, box, view, proj)
		want := Filter(s, placements, box, view, proj)
		if !slices.Equal(ids(got), ids(want)) {
			t.Errorf("%v: parallel result differs from sequential", s)
		}

		stats := c.LastStats()
		if stats.Strategy != s || stats.Total != len(placements) || stats.Visible != len(want) {
			t.Errorf("%v: stats = %+v", s, stats)
		}
	}
}

func TestCullInline(t *testing.T) {
	placements, box, view, proj := randomScene(50)
	c := NewCuller(Options{Strategy: WorldSpace, Workers: 1})
	if c.Options().BatchSize != DefaultBatchSize {
		t.Errorf("BatchSize = %d, want default", c.Options().BatchSize)
	}
	got := Cull(c, placements, box, view, proj)
	if !slices.Equal(ids(got), ids(Filter(WorldSpace, placements, box, view, proj))) {
		t.Error("inline cull differs from Filter")
	}

	empty := Cull[tagged](c, nil, box, view, proj)
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil result, got %v", empty)
	}
	if c.LastStats().Total != 0 {
		t.Errorf("stats not updated for empty input: %+v", c.LastStats())
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Strategy != ViewSpace {
		t.Errorf("default strategy = %v", opts.Strategy)
	}
	if opts.Workers < 1 || opts.BatchSize != DefaultBatchSize {
		t.Errorf("default options = %+v", opts)
	}
}
