package culling

import (
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-cull/internal/logger"
	"github.com/Faultbox/midgard-cull/pkg/bounds"
	"github.com/Faultbox/midgard-cull/pkg/math"
)

// DefaultBatchSize is the number of placements one worker tests at a time.
const DefaultBatchSize = 256

// Placement is anything that can say where its local box sits in the world.
// math.Mat4 implements it by returning itself.
type Placement interface {
	LocalToWorld() math.Mat4
}

// Filter returns the placements whose local box, placed by the placement's
// world matrix, intersects the frustum of proj seen through view.
//
// The result keeps input order, never aliases the input slice and is empty
// (not nil) when nothing is visible. view must be invertible for WorldSpace
// and LocalSpace, and every world matrix for LocalSpace; a singular matrix
// gives an unspecified result.
func Filter[P Placement](s Strategy, placements []P, localBox bounds.AABB, view, proj math.Mat4) []P {
	test := newVisibilityTest(s, localBox, view, proj)
	out := make([]P, 0, len(placements))
	for _, p := range placements {
		if test.visible(p.LocalToWorld()) {
			out = append(out, p)
		}
	}
	return out
}

// Options configures a Culler.
type Options struct {
	Strategy  Strategy
	Workers   int // <= 1 runs on the calling goroutine
	BatchSize int // placements per task, DefaultBatchSize if <= 0
}

// DefaultOptions uses the view-space strategy and one worker per CPU.
func DefaultOptions() Options {
	return Options{
		Strategy:  ViewSpace,
		Workers:   runtime.GOMAXPROCS(0),
		BatchSize: DefaultBatchSize,
	}
}

// Stats describes the most recent Cull call.
type Stats struct {
	Strategy Strategy
	Total    int
	Visible  int
	Elapsed  time.Duration
}

// Culler runs Filter's algorithm over batches in parallel.
// A Culler may be shared between goroutines.
type Culler struct {
	opts Options
	log  *zap.Logger

	mu   sync.Mutex
	last Stats
}

// NewCuller creates a culler. It logs through the logger configured at the
// time of the call.
func NewCuller(opts Options) *Culler {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	return &Culler{
		opts: opts,
		log:  logger.Named("culling"),
	}
}

// Options returns the culler's effective options.
func (c *Culler) Options() Options {
	return c.opts
}

// LastStats returns the statistics of the most recent Cull.
func (c *Culler) LastStats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

// Cull is Filter using the culler's strategy, with batches of placements
// tested concurrently. Output order matches input order regardless of how
// the batches are scheduled.
func Cull[P Placement](c *Culler, placements []P, localBox bounds.AABB, view, proj math.Mat4) []P {
	start := time.Now()
	test := newVisibilityTest(c.opts.Strategy, localBox, view, proj)

	n := len(placements)
	visible := make([]bool, n)
	mark := func(lo, hi int) {
		for i := lo; i < hi; i++ {
			visible[i] = test.visible(placements[i].LocalToWorld())
		}
	}

	if c.opts.Workers <= 1 || n <= c.opts.BatchSize {
		mark(0, n)
	} else {
		var g errgroup.Group
		g.SetLimit(c.opts.Workers)
		for lo := 0; lo < n; lo += c.opts.BatchSize {
			lo := lo
			hi := min(lo+c.opts.BatchSize, n)
			g.Go(func() error {
				mark(lo, hi)
				return nil
			})
		}
		_ = g.Wait()
	}

	out := make([]P, 0, n)
	for i, ok := range visible {
		if ok {
			out = append(out, placements[i])
		}
	}

	stats := Stats{
		Strategy: c.opts.Strategy,
		Total:    n,
		Visible:  len(out),
		Elapsed:  time.Since(start),
	}
	c.mu.Lock()
	c.last = stats
	c.mu.Unlock()

	c.log.Debug("frustum culled",
		zap.Stringer("strategy", stats.Strategy),
		zap.Int("total", stats.Total),
		zap.Int("visible", stats.Visible),
		zap.Duration("elapsed", stats.Elapsed),
	)
	return out
}
