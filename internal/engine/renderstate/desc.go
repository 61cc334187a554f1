// Package renderstate describes the fixed pipeline states the renderer
// switches between and creates them once on a device.
package renderstate

import (
	"fmt"
	gomath "math"
)

// FillMode selects how triangles are rasterized.
type FillMode int

const (
	FillSolid FillMode = iota
	FillWireframe
)

// CullMode selects which triangle faces are discarded.
type CullMode int

const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// CompareFunc is a depth, stencil or sampler comparison.
type CompareFunc int

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareAlways
)

// Filter is a texture filtering mode.
type Filter int

const (
	FilterLinear Filter = iota
	FilterAnisotropic
)

// AddressMode resolves texture coordinates outside [0, 1].
type AddressMode int

const (
	AddressWrap AddressMode = iota
	AddressClamp
)

// BlendFactor scales a blend source or destination.
type BlendFactor int

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendInvSrcAlpha
)

// BlendOp combines the scaled source and destination.
type BlendOp int

const (
	BlendOpAdd BlendOp = iota
)

// StencilOp updates the stencil buffer.
type StencilOp int

const (
	StencilKeep StencilOp = iota
	StencilReplace
	StencilIncr
)

// ColorWriteMask enables writes per color channel.
type ColorWriteMask uint8

const (
	ColorWriteRed ColorWriteMask = 1 << iota
	ColorWriteGreen
	ColorWriteBlue
	ColorWriteAlpha

	ColorWriteAll = ColorWriteRed | ColorWriteGreen | ColorWriteBlue | ColorWriteAlpha
)

// Default stencil masks.
const (
	DefaultStencilReadMask  uint8 = 0xff
	DefaultStencilWriteMask uint8 = 0xff
)

// RasterizerDesc configures triangle rasterization.
type RasterizerDesc struct {
	Fill                  FillMode `yaml:"fill"`
	Cull                  CullMode `yaml:"cull"`
	FrontCounterClockwise bool     `yaml:"front_ccw"`
	DepthClip             bool     `yaml:"depth_clip"`
}

// SamplerDesc configures texture sampling.
type SamplerDesc struct {
	Filter        Filter      `yaml:"filter"`
	AddressU      AddressMode `yaml:"address_u"`
	AddressV      AddressMode `yaml:"address_v"`
	AddressW      AddressMode `yaml:"address_w"`
	Compare       CompareFunc `yaml:"compare"`
	MaxAnisotropy int         `yaml:"max_anisotropy,omitempty"`
	MinLOD        float32     `yaml:"min_lod"`
	MaxLOD        float32     `yaml:"max_lod"`
}

// BlendDesc configures blending for the first render target.
type BlendDesc struct {
	AlphaToCoverage bool           `yaml:"alpha_to_coverage"`
	Enable          bool           `yaml:"enable"`
	Src             BlendFactor    `yaml:"src"`
	Dst             BlendFactor    `yaml:"dst"`
	Op              BlendOp        `yaml:"op"`
	SrcAlpha        BlendFactor    `yaml:"src_alpha"`
	DstAlpha        BlendFactor    `yaml:"dst_alpha"`
	OpAlpha         BlendOp        `yaml:"op_alpha"`
	WriteMask       ColorWriteMask `yaml:"write_mask"`
}

// StencilFace configures the stencil test for one triangle facing.
type StencilFace struct {
	Fail      StencilOp   `yaml:"fail"`
	DepthFail StencilOp   `yaml:"depth_fail"`
	Pass      StencilOp   `yaml:"pass"`
	Func      CompareFunc `yaml:"func"`
}

// DepthStencilDesc configures depth and stencil testing.
type DepthStencilDesc struct {
	DepthEnable      bool        `yaml:"depth_enable"`
	DepthWrite       bool        `yaml:"depth_write"`
	DepthFunc        CompareFunc `yaml:"depth_func"`
	StencilEnable    bool        `yaml:"stencil_enable"`
	StencilReadMask  uint8       `yaml:"stencil_read_mask"`
	StencilWriteMask uint8       `yaml:"stencil_write_mask"`
	Front            StencilFace `yaml:"front"`
	Back             StencilFace `yaml:"back"`
}

var (
	fillNames    = []string{"solid", "wireframe"}
	cullNames    = []string{"none", "front", "back"}
	compareNames = []string{"never", "less", "equal", "always"}
	filterNames  = []string{"linear", "anisotropic"}
	addressNames = []string{"wrap", "clamp"}
	factorNames  = []string{"zero", "one", "src_alpha", "inv_src_alpha"}
	opNames      = []string{"add"}
	stencilNames = []string{"keep", "replace", "incr"}
)

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%d", v)
	}
	return names[v]
}

func (m FillMode) String() string    { return enumName(fillNames, int(m)) }
func (m CullMode) String() string    { return enumName(cullNames, int(m)) }
func (f CompareFunc) String() string { return enumName(compareNames, int(f)) }
func (f Filter) String() string      { return enumName(filterNames, int(f)) }
func (m AddressMode) String() string { return enumName(addressNames, int(m)) }
func (f BlendFactor) String() string { return enumName(factorNames, int(f)) }
func (o BlendOp) String() string     { return enumName(opNames, int(o)) }
func (o StencilOp) String() string   { return enumName(stencilNames, int(o)) }

// MarshalText lets YAML dumps show names instead of numbers.
func (m FillMode) MarshalText() ([]byte, error)    { return []byte(m.String()), nil }
func (m CullMode) MarshalText() ([]byte, error)    { return []byte(m.String()), nil }
func (f CompareFunc) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
func (f Filter) MarshalText() ([]byte, error)      { return []byte(f.String()), nil }
func (m AddressMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }
func (f BlendFactor) MarshalText() ([]byte, error) { return []byte(f.String()), nil }
func (o BlendOp) MarshalText() ([]byte, error)     { return []byte(o.String()), nil }
func (o StencilOp) MarshalText() ([]byte, error)   { return []byte(o.String()), nil }

// Named rasterizer states.
var (
	WireframeRasterizer = RasterizerDesc{Fill: FillWireframe, Cull: CullBack, DepthClip: true}
	NoCullRasterizer    = RasterizerDesc{Fill: FillSolid, Cull: CullNone, DepthClip: true}
	// CullClockwiseRasterizer treats counter-clockwise triangles as front
	// faces, so clockwise ones are culled. Used for mirrored geometry.
	CullClockwiseRasterizer = RasterizerDesc{Fill: FillSolid, Cull: CullBack, FrontCounterClockwise: true, DepthClip: true}
)

// Named sampler states.
var (
	LinearSampler = SamplerDesc{
		Filter:   FilterLinear,
		AddressU: AddressWrap, AddressV: AddressWrap, AddressW: AddressWrap,
		Compare: CompareNever,
		MaxLOD:  gomath.MaxFloat32,
	}
	AnisotropicSampler = SamplerDesc{
		Filter:   FilterAnisotropic,
		AddressU: AddressWrap, AddressV: AddressWrap, AddressW: AddressWrap,
		Compare:       CompareNever,
		MaxAnisotropy: 4,
		MaxLOD:        gomath.MaxFloat32,
	}
)

// Named blend states.
var (
	AlphaToCoverageBlend = BlendDesc{AlphaToCoverage: true, WriteMask: ColorWriteAll}
	// TransparentBlend: color = a*src + (1-a)*dst, alpha = src alpha.
	TransparentBlend = BlendDesc{
		Enable: true,
		Src:    BlendSrcAlpha, Dst: BlendInvSrcAlpha, Op: BlendOpAdd,
		SrcAlpha: BlendOne, DstAlpha: BlendZero, OpAlpha: BlendOpAdd,
		WriteMask: ColorWriteAll,
	}
	// NoColorWriteBlend leaves the color buffer untouched.
	NoColorWriteBlend = BlendDesc{
		Src: BlendZero, Dst: BlendOne, Op: BlendOpAdd,
		SrcAlpha: BlendZero, DstAlpha: BlendOne, OpAlpha: BlendOpAdd,
	}
)

func stencilBoth(pass StencilOp, fn CompareFunc) (front, back StencilFace) {
	f := StencilFace{Fail: StencilKeep, DepthFail: StencilKeep, Pass: pass, Func: fn}
	return f, f
}

// Named depth-stencil states.
var (
	// MarkMirrorDepthStencil writes the stencil reference wherever the
	// mirror passes the depth test, without writing depth.
	MarkMirrorDepthStencil = mirrorState(false, StencilReplace, CompareAlways)
	// DrawReflectionDepthStencil draws only where the stencil equals the
	// reference.
	DrawReflectionDepthStencil = mirrorState(true, StencilKeep, CompareEqual)
	// NoDoubleBlendDepthStencil increments the stencil on pass so each pixel
	// blends at most once.
	NoDoubleBlendDepthStencil = mirrorState(true, StencilIncr, CompareEqual)
	NoDepthTestDepthStencil   = DepthStencilDesc{DepthFunc: CompareLess}
	NoDepthWriteDepthStencil  = DepthStencilDesc{DepthEnable: true, DepthFunc: CompareLess}
)

func mirrorState(depthWrite bool, pass StencilOp, fn CompareFunc) DepthStencilDesc {
	front, back := stencilBoth(pass, fn)
	return DepthStencilDesc{
		DepthEnable:      true,
		DepthWrite:       depthWrite,
		DepthFunc:        CompareLess,
		StencilEnable:    true,
		StencilReadMask:  DefaultStencilReadMask,
		StencilWriteMask: DefaultStencilWriteMask,
		Front:            front,
		Back:             back,
	}
}
