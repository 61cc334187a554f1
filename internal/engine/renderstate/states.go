package renderstate

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-cull/internal/logger"
)

// Handle identifies a state object created by a Device.
type Handle uint32

// Device creates immutable pipeline state objects.
type Device interface {
	CreateRasterizerState(desc RasterizerDesc) (Handle, error)
	CreateSamplerState(desc SamplerDesc) (Handle, error)
	CreateBlendState(desc BlendDesc) (Handle, error)
	CreateDepthStencilState(desc DepthStencilDesc) (Handle, error)
}

// States holds every named state created on one device. Build it once with
// New and pass it to whatever draws.
type States struct {
	Wireframe     Handle
	NoCull        Handle
	CullClockwise Handle

	Linear      Handle
	Anisotropic Handle

	AlphaToCoverage Handle
	Transparent     Handle
	NoColorWrite    Handle

	MarkMirror     Handle
	DrawReflection Handle
	NoDoubleBlend  Handle
	NoDepthTest    Handle
	NoDepthWrite   Handle

	byName map[string]Handle
}

// New creates all named states on device. The first failure stops creation
// and is returned wrapped with the state's name.
func New(device Device) (*States, error) {
	s := &States{byName: make(map[string]Handle)}

	steps := []struct {
		name   string
		dst    *Handle
		create func() (Handle, error)
	}{
		{"wireframe", &s.Wireframe, rasterizer(device, WireframeRasterizer)},
		{"no_cull", &s.NoCull, rasterizer(device, NoCullRasterizer)},
		{"cull_clockwise", &s.CullClockwise, rasterizer(device, CullClockwiseRasterizer)},
		{"linear", &s.Linear, sampler(device, LinearSampler)},
		{"anisotropic", &s.Anisotropic, sampler(device, AnisotropicSampler)},
		{"alpha_to_coverage", &s.AlphaToCoverage, blend(device, AlphaToCoverageBlend)},
		{"transparent", &s.Transparent, blend(device, TransparentBlend)},
		{"no_color_write", &s.NoColorWrite, blend(device, NoColorWriteBlend)},
		{"mark_mirror", &s.MarkMirror, depthStencil(device, MarkMirrorDepthStencil)},
		{"draw_reflection", &s.DrawReflection, depthStencil(device, DrawReflectionDepthStencil)},
		{"no_double_blend", &s.NoDoubleBlend, depthStencil(device, NoDoubleBlendDepthStencil)},
		{"no_depth_test", &s.NoDepthTest, depthStencil(device, NoDepthTestDepthStencil)},
		{"no_depth_write", &s.NoDepthWrite, depthStencil(device, NoDepthWriteDepthStencil)},
	}

	for _, step := range steps {
		h, err := step.create()
		if err != nil {
			return nil, fmt.Errorf("creating %s state: %w", step.name, err)
		}
		*step.dst = h
		s.byName[step.name] = h
	}

	logger.Debug("render states created", zap.Int("count", len(s.byName)))
	return s, nil
}

// Lookup returns the handle of a named state such as "no_depth_write".
func (s *States) Lookup(name string) (Handle, bool) {
	h, ok := s.byName[name]
	return h, ok
}

// Names returns the state names in sorted order.
func (s *States) Names() []string {
	names := make([]string, 0, len(s.byName))
	for name := range s.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of named states.
func (s *States) Len() int {
	return len(s.byName)
}

func rasterizer(d Device, desc RasterizerDesc) func() (Handle, error) {
	return func() (Handle, error) { return d.CreateRasterizerState(desc) }
}

func sampler(d Device, desc SamplerDesc) func() (Handle, error) {
	return func() (Handle, error) { return d.CreateSamplerState(desc) }
}

func blend(d Device, desc BlendDesc) func() (Handle, error) {
	return func() (Handle, error) { return d.CreateBlendState(desc) }
}

func depthStencil(d Device, desc DepthStencilDesc) func() (Handle, error) {
	return func() (Handle, error) { return d.CreateDepthStencilState(desc) }
}

// MemoryDevice is a Device that only records descriptors. Handles start at
// 1 and increase in creation order.
type MemoryDevice struct {
	mu      sync.Mutex
	next    Handle
	Created map[Handle]any
}

// NewMemoryDevice creates an empty recording device.
func NewMemoryDevice() *MemoryDevice {
	return &MemoryDevice{Created: make(map[Handle]any)}
}

func (d *MemoryDevice) record(desc any) (Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.next++
	d.Created[d.next] = desc
	return d.next, nil
}

// CreateRasterizerState implements Device.
func (d *MemoryDevice) CreateRasterizerState(desc RasterizerDesc) (Handle, error) {
	return d.record(desc)
}

// CreateSamplerState implements Device.
func (d *MemoryDevice) CreateSamplerState(desc SamplerDesc) (Handle, error) {
	return d.record(desc)
}

// CreateBlendState implements Device.
func (d *MemoryDevice) CreateBlendState(desc BlendDesc) (Handle, error) {
	return d.record(desc)
}

// CreateDepthStencilState implements Device.
func (d *MemoryDevice) CreateDepthStencilState(desc DepthStencilDesc) (Handle, error) {
	return d.record(desc)
}
