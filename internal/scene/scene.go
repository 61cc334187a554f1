package scene

import (
	"errors"
	"fmt"
	gomath "math"
	"os"

	"github.com/aquilax/go-perlin"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/midgard-cull/internal/engine/camera"
	"github.com/Faultbox/midgard-cull/pkg/bounds"
	"github.com/Faultbox/midgard-cull/pkg/math"
)

// ErrInvalidScene wraps every scene validation failure.
var ErrInvalidScene = errors.New("invalid scene")

// Scene is a camera, a shared local box and the placements to cull.
type Scene struct {
	Camera    CameraSpec     `yaml:"camera"`
	Lens      LensSpec       `yaml:"lens"`
	LocalBox  bounds.AABB    `yaml:"local_box"`
	Grid      *GridSpec      `yaml:"grid,omitempty"`
	Instances []InstanceSpec `yaml:"instances,omitempty"`
}

// CameraSpec is an orbit camera. Angles are in degrees.
type CameraSpec struct {
	Target   math.Vec3 `yaml:"target"`
	Distance float32   `yaml:"distance"`
	Pitch    float32   `yaml:"pitch"`
	Yaw      float32   `yaml:"yaw"`
}

// LensSpec is a perspective lens. FovY is in degrees.
type LensSpec struct {
	FovY   float32 `yaml:"fov_y"`
	Aspect float32 `yaml:"aspect"`
	Near   float32 `yaml:"near"`
	Far    float32 `yaml:"far"`
}

// GridSpec lays out Rows x Cols instances on the XZ plane, centered on the
// origin. Each successive instance is turned YawStep degrees further.
// A non-zero HeightNoise lifts each instance by Perlin noise of that
// amplitude, seeded by Seed.
type GridSpec struct {
	Rows        int     `yaml:"rows"`
	Cols        int     `yaml:"cols"`
	Spacing     float32 `yaml:"spacing"`
	Height      float32 `yaml:"height"`
	YawStep     float32 `yaml:"yaw_step"`
	Scale       float32 `yaml:"scale"`
	HeightNoise float32 `yaml:"height_noise,omitempty"`
	Seed        int64   `yaml:"seed,omitempty"`
}

// Perlin parameters for grid height noise.
const (
	noiseAlpha     = 2
	noiseBeta      = 2
	noiseOctaves   = 3
	noiseFrequency = 0.05
)

// heightAt returns the grid height at a world XZ position.
func (g *GridSpec) heightAt(noise *perlin.Perlin, x, z float32) float32 {
	if noise == nil {
		return g.Height
	}
	n := noise.Noise2D(float64(x)*noiseFrequency, float64(z)*noiseFrequency)
	return g.Height + g.HeightNoise*float32(n)
}

// InstanceSpec is one explicitly placed object. Rotation holds pitch (X),
// yaw (Y) and roll (Z) in degrees.
type InstanceSpec struct {
	Position math.Vec3  `yaml:"position"`
	Rotation math.Vec3  `yaml:"rotation"`
	Scale    *math.Vec3 `yaml:"scale,omitempty"`
}

// Default returns a 16x16 grid of unit-footprint objects seen from above.
func Default() *Scene {
	return &Scene{
		Camera: CameraSpec{
			Distance: 120,
			Pitch:    35,
		},
		Lens: LensSpec{
			FovY:   60,
			Aspect: 16.0 / 9.0,
			Near:   0.5,
			Far:    300,
		},
		LocalBox: bounds.AABB{
			Center:  math.Vec3{Y: 2},
			Extents: math.Vec3{X: 1, Y: 2, Z: 1},
		},
		Grid: &GridSpec{
			Rows:    16,
			Cols:    16,
			Spacing: 10,
			YawStep: 15,
			Scale:   1,
		},
	}
}

// Load reads a scene file. Fields missing from the file keep Default values.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML scene.
func Parse(data []byte) (*Scene, error) {
	s := Default()
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScene, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Save writes the scene as YAML.
func (s *Scene) Save(path string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks the lens, box and layout.
func (s *Scene) Validate() error {
	switch {
	case s.Lens.FovY <= 0 || s.Lens.FovY >= 180:
		return fmt.Errorf("%w: fov_y %v must be in (0, 180)", ErrInvalidScene, s.Lens.FovY)
	case s.Lens.Aspect <= 0:
		return fmt.Errorf("%w: aspect %v must be positive", ErrInvalidScene, s.Lens.Aspect)
	case s.Lens.Near <= 0 || s.Lens.Far <= s.Lens.Near:
		return fmt.Errorf("%w: need 0 < near < far, got %v, %v", ErrInvalidScene, s.Lens.Near, s.Lens.Far)
	case s.Camera.Distance <= 0:
		return fmt.Errorf("%w: camera distance %v must be positive", ErrInvalidScene, s.Camera.Distance)
	}
	e := s.LocalBox.Extents
	if e.X < 0 || e.Y < 0 || e.Z < 0 {
		return fmt.Errorf("%w: local box extents %v must not be negative", ErrInvalidScene, e)
	}
	if g := s.Grid; g != nil {
		if g.Rows < 0 || g.Cols < 0 {
			return fmt.Errorf("%w: grid %dx%d", ErrInvalidScene, g.Rows, g.Cols)
		}
		if g.Scale == 0 {
			return fmt.Errorf("%w: grid scale must not be zero", ErrInvalidScene)
		}
	}
	for i, inst := range s.Instances {
		if sc := inst.Scale; sc != nil && (sc.X == 0 || sc.Y == 0 || sc.Z == 0) {
			return fmt.Errorf("%w: instance %d has a zero scale component", ErrInvalidScene, i)
		}
	}
	return nil
}

// OrbitCamera returns the scene camera.
func (s *Scene) OrbitCamera() *camera.OrbitCamera {
	c := camera.NewOrbitCamera()
	c.SetCenter(s.Camera.Target.X, s.Camera.Target.Y, s.Camera.Target.Z)
	c.Distance = s.Camera.Distance
	c.RotationX = radians(s.Camera.Pitch)
	c.RotationY = radians(s.Camera.Yaw)
	c.MaxDistance = max(c.MaxDistance, s.Camera.Distance)
	return c
}

// CameraLens returns the scene lens with angles in radians.
func (s *Scene) CameraLens() camera.Lens {
	return camera.Lens{
		FovY:   radians(s.Lens.FovY),
		Aspect: s.Lens.Aspect,
		Near:   s.Lens.Near,
		Far:    s.Lens.Far,
	}
}

// View returns the world-to-view matrix.
func (s *Scene) View() math.Mat4 {
	return s.OrbitCamera().ViewMatrix()
}

// Projection returns the view-to-clip matrix.
func (s *Scene) Projection() math.Mat4 {
	return s.CameraLens().Projection()
}

// Placements expands the grid, then appends the explicit instances.
func (s *Scene) Placements() []Transform {
	var out []Transform
	if g := s.Grid; g != nil && g.Rows > 0 && g.Cols > 0 {
		out = make([]Transform, 0, g.Rows*g.Cols+len(s.Instances))
		var noise *perlin.Perlin
		if g.HeightNoise != 0 {
			noise = perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, g.Seed)
		}
		x0 := -float32(g.Cols-1) * g.Spacing / 2
		z0 := -float32(g.Rows-1) * g.Spacing / 2
		for r := 0; r < g.Rows; r++ {
			for c := 0; c < g.Cols; c++ {
				yaw := radians(g.YawStep * float32(r*g.Cols+c))
				x := x0 + float32(c)*g.Spacing
				z := z0 + float32(r)*g.Spacing
				out = append(out, NewTransform(
					math.Vec3{X: x, Y: g.heightAt(noise, x, z), Z: z},
					math.QuatFromAxisAngle(math.Vec3{Y: 1}, yaw),
					math.Vec3{X: g.Scale, Y: g.Scale, Z: g.Scale},
				))
			}
		}
	}
	for _, inst := range s.Instances {
		scale := math.Vec3{X: 1, Y: 1, Z: 1}
		if inst.Scale != nil {
			scale = *inst.Scale
		}
		rot := math.QuatFromYawPitchRoll(radians(inst.Rotation.Y), radians(inst.Rotation.X), radians(inst.Rotation.Z))
		out = append(out, NewTransform(inst.Position, rot, scale))
	}
	if out == nil {
		out = []Transform{}
	}
	return out
}

func radians(deg float32) float32 {
	return deg * gomath.Pi / 180
}
