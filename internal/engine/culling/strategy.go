// Package culling filters object placements down to those whose bounding
// box can be seen through a camera frustum.
//
// Three strategies place the transform work in different spaces. They
// accept the same set of placements, up to floating-point ties on exact
// boundary contact:
//
//   - WorldSpace inverts the view once and tests world-space boxes against a
//     world-space frustum.
//   - LocalSpace inverts every world matrix and tests the shared local box
//     against the frustum carried into each object's local space.
//   - ViewSpace never inverts anything and tests view-space boxes against
//     the frustum straight from the projection.
package culling

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Faultbox/midgard-cull/pkg/bounds"
	"github.com/Faultbox/midgard-cull/pkg/math"
)

// ErrUnknownStrategy is returned by ParseStrategy.
var ErrUnknownStrategy = errors.New("unknown culling strategy")

// Strategy selects where the culling transforms happen.
type Strategy int

const (
	// WorldSpace tests world-space oriented boxes against a world-space frustum.
	WorldSpace Strategy = iota
	// LocalSpace tests the local box against a per-object local-space frustum.
	LocalSpace
	// ViewSpace tests view-space oriented boxes against the view-space frustum.
	ViewSpace
)

var strategyNames = [...]string{
	WorldSpace: "world",
	LocalSpace: "local",
	ViewSpace:  "view",
}

// Strategies returns every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{WorldSpace, LocalSpace, ViewSpace}
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
	return strategyNames[s]
}

// ParseStrategy accepts a strategy name, case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, s := range strategyNames {
		if n == s {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// visibilityTest decides visibility for one world matrix. Implementations
// hold only values computed once per call and are safe for concurrent use.
type visibilityTest interface {
	visible(world math.Mat4) bool
}

// newVisibilityTest does the per-call setup for a strategy.
func newVisibilityTest(s Strategy, localBox bounds.AABB, view, proj math.Mat4) visibilityTest {
	frustum := bounds.FromProjection(proj)

	switch s {
	case WorldSpace:
		return worldSpaceTest{
			frustum: frustum.Transform(view.Inverse()),
			box:     bounds.OrientedFromAABB(localBox),
		}
	case LocalSpace:
		return localSpaceTest{
			frustum: frustum,
			invView: view.Inverse(),
			box:     localBox,
		}
	default:
		return viewSpaceTest{
			frustum: frustum,
			view:    view,
			box:     bounds.OrientedFromAABB(localBox),
		}
	}
}

type worldSpaceTest struct {
	frustum bounds.Frustum
	box     bounds.OrientedBox
}

func (t worldSpaceTest) visible(world math.Mat4) bool {
	return t.frustum.IntersectsOrientedBox(t.box.Transform(world))
}

type localSpaceTest struct {
	frustum bounds.Frustum
	invView math.Mat4
	box     bounds.AABB
}

func (t localSpaceTest) visible(world math.Mat4) bool {
	// view space -> world space -> object local space
	toLocal := world.Inverse().Mul(t.invView)
	return t.frustum.Transform(toLocal).IntersectsBox(t.box)
}

type viewSpaceTest struct {
	frustum bounds.Frustum
	view    math.Mat4
	box     bounds.OrientedBox
}

func (t viewSpaceTest) visible(world math.Mat4) bool {
	return t.frustum.IntersectsOrientedBox(t.box.Transform(t.view.Mul(world)))
}
