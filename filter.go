package parallax

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is a full-screen post-processing pass.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Resize is called when the screen size changes.
	Resize(w, h int)
}

// --- Kage shader sources ---
// All shaders use //kage:unit pixels and sample in normalized coordinates
// derived from imageSrc0Origin/imageSrc0Size. Progress is the effect
// parameter in [0, 1]; every shader is the identity at 0 and at 1.

const rippleShaderSrc = `//kage:unit pixels
package main

var Progress float
var Center vec2

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	p := (src - origin) / size
	if Progress > 0 && Progress < 1 {
		amp := 0.03 * sin(Progress*3.14159)
		toCenter := p - Center
		dist := length(toCenter)
		dir := vec2(0)
		if dist > 0 {
			dir = toCenter / dist
		}
		wave := sin(dist*20.0-Progress*2.0*6.28318) * amp * 5.0
		p += dir * wave
		wave2 := sin(dist*40.0-Progress*16.0) * amp
		p += dir * wave2
	}
	return imageSrc0At(p*size + origin)
}
`

const curtainShaderSrc = `//kage:unit pixels
package main

var Progress float
var Bands float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	origin := imageSrc0Origin()
	size := imageSrc0Size()
	p := (src - origin) / size
	if Progress > 0 && Progress < 1 {
		amp := 0.04 * sin(Progress*3.14159)
		// Bands sweep top to bottom as progress advances.
		front := Progress*1.4 - 0.2
		fall := exp(-abs(p.y-front) * 6.0)
		p.x += sin(p.y*Bands*6.28318+Progress*12.56636) * amp * fall
		p.y += cos(p.x*Bands*3.14159) * amp * 0.25 * fall
	}
	return imageSrc0At(p*size + origin)
}
`

const rgbShiftShaderSrc = `//kage:unit pixels
package main

var Progress float
var Amount float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	// Peak split at Progress = 0.5.
	shift := 4.0 * Progress * (1.0 - Progress) * Amount
	off := vec2(shift, shift*0.35)
	r := imageSrc0At(src + off)
	g := imageSrc0At(src)
	b := imageSrc0At(src - off)
	a := max(g.a, max(r.a, b.a))
	return vec4(r.r, g.g, b.b, a)
}
`

// --- Lazy shader compilation (single-threaded, no sync.Once) ---

var (
	rippleShader   *ebiten.Shader
	curtainShader  *ebiten.Shader
	rgbShiftShader *ebiten.Shader
)

func ensureShader(cached **ebiten.Shader, src, name string) *ebiten.Shader {
	if *cached == nil {
		s, err := ebiten.NewShader([]byte(src))
		if err != nil {
			panic("parallax: failed to compile " + name + " shader: " + err.Error())
		}
		*cached = s
	}
	return *cached
}

// shaderPass draws src through a Kage shader driven by one effect parameter.
// At Progress 0 the pass is a plain copy.
type shaderPass struct {
	param    *EffectParameter
	shader   func() *ebiten.Shader
	uniforms map[string]any
	shaderOp ebiten.DrawRectShaderOptions
	imgOp    ebiten.DrawImageOptions
}

func (f *shaderPass) apply(src, dst *ebiten.Image) {
	progress := 0.0
	if f.param != nil {
		progress = f.param.Value
	}
	if progress <= 0 || progress >= 1 {
		f.imgOp.GeoM.Reset()
		dst.DrawImage(src, &f.imgOp)
		return
	}
	f.uniforms["Progress"] = float32(progress)
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), f.shader(), &f.shaderOp)
}

// --- RippleFilter ---

// RippleFilter displaces pixels with concentric waves around Center.
type RippleFilter struct {
	// Center is the ripple origin in normalized screen coordinates.
	Center Vec2
	pass   shaderPass
}

// NewRippleFilter creates a ripple driven by param, centered on screen.
func NewRippleFilter(param *EffectParameter) *RippleFilter {
	return &RippleFilter{
		Center: Vec2{0.5, 0.5},
		pass: shaderPass{
			param:    param,
			shader:   func() *ebiten.Shader { return ensureShader(&rippleShader, rippleShaderSrc, "ripple") },
			uniforms: make(map[string]any, 2),
		},
	}
}

// Apply renders the ripple from src into dst.
func (f *RippleFilter) Apply(src, dst *ebiten.Image) {
	f.pass.uniforms["Center"] = []float32{float32(f.Center.X), float32(f.Center.Y)}
	f.pass.apply(src, dst)
}

// Resize is a no-op; the ripple works in normalized coordinates.
func (f *RippleFilter) Resize(w, h int) {}

// --- CurtainFilter ---

// CurtainFilter is a ripple variant that sweeps horizontal wave bands down
// the screen.
type CurtainFilter struct {
	// Bands is the number of wave periods per screen height.
	Bands float64
	pass  shaderPass
}

// NewCurtainFilter creates a curtain ripple driven by param.
func NewCurtainFilter(param *EffectParameter) *CurtainFilter {
	return &CurtainFilter{
		Bands: 6,
		pass: shaderPass{
			param:    param,
			shader:   func() *ebiten.Shader { return ensureShader(&curtainShader, curtainShaderSrc, "curtain") },
			uniforms: make(map[string]any, 2),
		},
	}
}

// Apply renders the curtain ripple from src into dst.
func (f *CurtainFilter) Apply(src, dst *ebiten.Image) {
	f.pass.uniforms["Bands"] = float32(f.Bands)
	f.pass.apply(src, dst)
}

// Resize is a no-op; the curtain works in normalized coordinates.
func (f *CurtainFilter) Resize(w, h int) {}

// --- RGBShiftFilter ---

// RGBShiftFilter splits the red and blue channels apart. The split is in
// pixels and scales with the screen width.
type RGBShiftFilter struct {
	// Scale is the peak split as a fraction of the screen width.
	Scale  float64
	amount float64
	pass   shaderPass
}

// NewRGBShiftFilter creates an RGB split driven by param.
func NewRGBShiftFilter(param *EffectParameter) *RGBShiftFilter {
	return &RGBShiftFilter{
		Scale: 0.012,
		pass: shaderPass{
			param:    param,
			shader:   func() *ebiten.Shader { return ensureShader(&rgbShiftShader, rgbShiftShaderSrc, "rgb shift") },
			uniforms: make(map[string]any, 2),
		},
	}
}

// Apply renders the channel split from src into dst.
func (f *RGBShiftFilter) Apply(src, dst *ebiten.Image) {
	if f.amount == 0 {
		b := src.Bounds()
		f.Resize(b.Dx(), b.Dy())
	}
	f.pass.uniforms["Amount"] = float32(f.amount)
	f.pass.apply(src, dst)
}

// Resize recomputes the pixel split from the new width.
func (f *RGBShiftFilter) Resize(w, h int) {
	f.amount = float64(w) * f.Scale
}

// Amount returns the peak split in pixels for the current size.
func (f *RGBShiftFilter) Amount() float64 {
	return f.amount
}

// newEffectFilter returns the filter for a known effect parameter.
func newEffectFilter(p *EffectParameter) Filter {
	switch p.Name {
	case EffectRipple:
		return NewRippleFilter(p)
	case EffectCurtain:
		return NewCurtainFilter(p)
	case EffectRGB:
		return NewRGBShiftFilter(p)
	default:
		return nil
	}
}
