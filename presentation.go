package parallax

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// LoopConfig tunes the idle animation and parallax of the presentation loop.
type LoopConfig struct {
	// ClockStep is added to the loop clock every frame.
	ClockStep float64 `yaml:"clock_step"`
	// BobFrequency scales the clock before it is fed to the idle sine.
	BobFrequency float64 `yaml:"bob_frequency"`
	// BobAmplitude is how far (world units) layers sink at peak oscillation.
	BobAmplitude float64 `yaml:"bob_amplitude"`
	// LayerSpacing is the depth between stacked layers of one slide.
	LayerSpacing float64 `yaml:"layer_spacing"`
	// Layers is the number of stacked layers per slide. Layer 0 is opaque,
	// the rest are masked.
	Layers int `yaml:"layers"`
	// Tilt is the group rotation, in radians, at the pointer's extreme.
	Tilt float64 `yaml:"tilt"`
	// TextParallax is the overlay offset, in pixels, at the pointer's extreme.
	TextParallax float64 `yaml:"text_parallax"`
	// PlaneWidth and PlaneHeight are the world size of each layer.
	PlaneWidth  float64 `yaml:"plane_width"`
	PlaneHeight float64 `yaml:"plane_height"`
}

// DefaultLoopConfig returns the reference loop parameters.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		ClockStep:    0.05,
		BobFrequency: 0.3,
		BobAmplitude: 50,
		LayerSpacing: 100,
		Layers:       3,
		Tilt:         0.1,
		TextParallax: 30,
		PlaneWidth:   1980,
		PlaneHeight:  1080,
	}
}

// Layer is one plane in a slide group.
type Layer struct {
	// Z is the depth inside the group, rewritten every frame.
	Z      float64
	Masked bool
}

// SlideGroup is the transform of one slide's stacked layers.
type SlideGroup struct {
	Slide    Slide
	Position mgl64.Vec3
	// RotationX and RotationY tilt the whole group toward the pointer.
	RotationX, RotationY float64
	Layers               []Layer
}

// Model returns the group's local-to-world matrix: an XYZ Euler rotation
// with no Z component, then the translation to Position.
func (g *SlideGroup) Model() mgl64.Mat4 {
	return mgl64.Translate3D(g.Position.X(), g.Position.Y(), g.Position.Z()).
		Mul4(mgl64.HomogRotate3DX(g.RotationX)).
		Mul4(mgl64.HomogRotate3DY(g.RotationY))
}

// WorldPoint maps a point on layer i, in layer-local X/Y, to world space.
func (g *SlideGroup) WorldPoint(i int, local Vec2) mgl64.Vec3 {
	return layerPoint(g.Model(), g.Layers[i].Z, local)
}

func layerPoint(model mgl64.Mat4, z float64, local Vec2) mgl64.Vec3 {
	return model.Mul4x1(mgl64.Vec4{local.X, local.Y, z, 1}).Vec3()
}

// Presentation is the per-frame loop: it advances animations, applies idle
// oscillation and pointer parallax, and renders. It implements [ebiten.Game].
//
// The loop only reads transition state; slide changes go through [Engine].
type Presentation struct {
	// ClearColor fills the frame behind the slides.
	ClearColor Color
	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir string
	// ExitWhenDone makes Update return ebiten.Termination once an attached
	// test runner finishes.
	ExitWhenDone bool
	// OnUpdate, if set, runs at the end of every Tick with the step length.
	OnUpdate func(dt float32)

	cfg       LoopConfig
	sched     *Scheduler
	camera    *Camera
	effects   *EffectSet
	overlay   *TextOverlay
	crossfade *Crossfade
	engine    *Engine

	groups      []SlideGroup
	pointer     Vec2
	clock       float64
	oscillation float64
	textOffset  Vec2
	frames      int

	paused   bool
	debug    bool
	hud      bool
	disposed bool

	width, height int

	assets   assets
	renderer *renderer
	input    inputState

	lastEvent       TransitionEvent
	testRunner      *TestRunner
	screenshotQueue []string
	unsubscribe     []func()
}

// NewPresentation builds the engine, camera, effects and overlay described by
// cfg. The presentation rests on slide 0.
func NewPresentation(cfg Config) (*Presentation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slides, err := cfg.SlideRegistry()
	if err != nil {
		return nil, err
	}
	policy, err := cfg.PolicyTable()
	if err != nil {
		return nil, err
	}

	sched := NewScheduler()
	cam := NewCamera(cfg.Camera.FOV, cfg.Camera.RestDepth, cfg.Window.Width, cfg.Window.Height)
	effects := DefaultEffectSet()
	overlay := NewTextOverlay(slides.At(0).Label)
	cf := NewCrossfade(sched, overlay)
	cf.ExitDuration = cfg.Timing.FadeOut
	cf.EnterDuration = cfg.Timing.FadeIn

	engine := NewEngine(EngineConfig{
		Slides: slides,
		Policy: policy,
		Timing: cfg.Timing.engineTiming(),
	}, sched, cam, effects, cf)

	cam.X = slides.At(0).Offset

	p := &Presentation{
		ClearColor:    Color{R: 0x11 / 255.0, G: 0x11 / 255.0, B: 0x11 / 255.0, A: 1},
		ScreenshotDir: "screenshots",
		cfg:           cfg.Loop,
		sched:         sched,
		camera:        cam,
		effects:       effects,
		overlay:       overlay,
		crossfade:     cf,
		engine:        engine,
		width:         cfg.Window.Width,
		height:        cfg.Window.Height,
	}
	p.groups = make([]SlideGroup, slides.Len())
	for i, s := range slides.Slides() {
		g := SlideGroup{
			Slide:    s,
			Position: mgl64.Vec3{s.Offset, 0, 0},
			Layers:   make([]Layer, cfg.Loop.Layers),
		}
		for j := range g.Layers {
			g.Layers[j] = Layer{Z: float64(j+1) * cfg.Loop.LayerSpacing, Masked: j > 0}
		}
		p.groups[i] = g
	}
	p.unsubscribe = append(p.unsubscribe, engine.Subscribe(func(ev TransitionEvent) {
		p.lastEvent = ev
	}))
	p.SetDebugMode(cfg.Debug)
	p.updateLoop()
	return p, nil
}

// Engine returns the transition engine.
func (p *Presentation) Engine() *Engine { return p.engine }

// Camera returns the camera.
func (p *Presentation) Camera() *Camera { return p.camera }

// Effects returns the effect parameters.
func (p *Presentation) Effects() *EffectSet { return p.effects }

// Overlay returns the text overlay.
func (p *Presentation) Overlay() *TextOverlay { return p.overlay }

// Crossfade returns the overlay crossfade.
func (p *Presentation) Crossfade() *Crossfade { return p.crossfade }

// Scheduler returns the tick list shared by the engine and crossfade.
func (p *Presentation) Scheduler() *Scheduler { return p.sched }

// Groups returns the slide group transforms. The returned slice MUST NOT be mutated.
func (p *Presentation) Groups() []SlideGroup { return p.groups }

// Pointer returns the pointer position in [-1, 1], Y up.
func (p *Presentation) Pointer() Vec2 { return p.pointer }

// TextOffset returns the overlay's parallax offset in pixels.
func (p *Presentation) TextOffset() Vec2 { return p.textOffset }

// Oscillation returns the idle oscillation in [0, 1].
func (p *Presentation) Oscillation() float64 { return p.oscillation }

// Frames returns the number of ticks processed while not paused.
func (p *Presentation) Frames() int { return p.frames }

// SetPointer sets the normalized pointer position, clamped to [-1, 1].
func (p *Presentation) SetPointer(x, y float64) {
	p.pointer = Vec2{math.Max(-1, math.Min(1, x)), math.Max(-1, math.Min(1, y))}
}

// setPointerScreen converts screen pixels to the normalized pointer.
func (p *Presentation) setPointerScreen(sx, sy float64) {
	if p.width <= 0 || p.height <= 0 {
		return
	}
	p.SetPointer(sx/float64(p.width)*2-1, -(sy/float64(p.height))*2+1)
}

// Pause stops the loop from advancing. Running animations are kept and
// resume on Play.
func (p *Presentation) Pause() { p.paused = true }

// Play resumes a paused loop.
func (p *Presentation) Play() { p.paused = false }

// Paused reports whether the loop is paused.
func (p *Presentation) Paused() bool { return p.paused }

// TogglePause flips between paused and playing.
func (p *Presentation) TogglePause() { p.paused = !p.paused }

// SetDebugMode enables debug logging and contract panics on the presentation
// and its engine.
func (p *Presentation) SetDebugMode(enabled bool) {
	p.debug = enabled
	p.engine.SetDebugMode(enabled)
}

// SetHUDVisible shows or hides the debug overlay.
func (p *Presentation) SetHUDVisible(visible bool) { p.hud = visible }

// HUDVisible reports whether the debug overlay is drawn.
func (p *Presentation) HUDVisible() bool { return p.hud }

// Update implements ebiten.Game.
func (p *Presentation) Update() error {
	if p.disposed {
		return ebiten.Termination
	}
	if p.testRunner != nil {
		p.testRunner.step(p)
		if p.ExitWhenDone && p.testRunner.Done() && len(p.screenshotQueue) == 0 {
			return ebiten.Termination
		}
	}
	p.processInput()
	if !p.paused {
		p.Tick(tickDelta(ebiten.TPS(), ebiten.ActualTPS()))
	}
	return nil
}

// tickDelta returns the seconds covered by one Update. TPS is negative under
// ebiten.SyncWithFPS, so the measured rate is used then, falling back to 60.
func tickDelta(tps int, actualTPS float64) float32 {
	switch {
	case tps > 0:
		return float32(1 / float64(tps))
	case actualTPS > 0:
		return float32(1 / actualTPS)
	default:
		return 1.0 / 60
	}
}

// Tick advances one frame by dt seconds: scheduled animations first, then the
// idle oscillation and pointer parallax. It does nothing while paused.
func (p *Presentation) Tick(dt float32) {
	if p.paused || p.disposed {
		return
	}
	p.sched.Update(dt)
	p.clock += p.cfg.ClockStep
	p.frames++
	p.updateLoop()
	if p.OnUpdate != nil {
		p.OnUpdate(dt)
	}
}

// updateLoop recomputes the oscillation and every group transform from the
// clock and the current pointer.
func (p *Presentation) updateLoop() {
	p.oscillation = math.Sin(p.clock*p.cfg.BobFrequency)*0.5 + 0.5

	rx := p.pointer.Y * -p.cfg.Tilt
	ry := p.pointer.X * -p.cfg.Tilt
	for gi := range p.groups {
		g := &p.groups[gi]
		g.RotationX = rx
		g.RotationY = ry
		for i := range g.Layers {
			g.Layers[i].Z = float64(i+1)*p.cfg.LayerSpacing - p.oscillation*p.cfg.BobAmplitude
		}
	}
	p.textOffset = Vec2{p.pointer.X * p.cfg.TextParallax, -p.pointer.Y * p.cfg.TextParallax}
}

// Layout implements ebiten.Game. Size changes are forwarded to Resize.
func (p *Presentation) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != p.width || outsideHeight != p.height {
		p.Resize(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Resize updates the camera aspect and size-dependent render state. It does
// not touch transition state.
func (p *Presentation) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	p.width, p.height = w, h
	p.camera.Resize(w, h)
	if p.renderer != nil {
		p.renderer.resize(w, h)
	}
}

// Size returns the current screen size in pixels.
func (p *Presentation) Size() (w, h int) {
	return p.width, p.height
}

// Dispose tears down the engine, drops subscriptions, disables input and
// frees render targets. Update returns ebiten.Termination afterwards.
func (p *Presentation) Dispose() {
	if p.disposed {
		return
	}
	for _, u := range p.unsubscribe {
		u()
	}
	p.unsubscribe = nil
	p.engine.Dispose()
	p.input = inputState{}
	if p.renderer != nil {
		p.renderer.dispose()
		p.renderer = nil
	}
	p.assets.dispose()
	p.disposed = true
}

// Disposed reports whether Dispose has been called.
func (p *Presentation) Disposed() bool { return p.disposed }

// LastEvent returns the most recent transition event.
func (p *Presentation) LastEvent() TransitionEvent { return p.lastEvent }
