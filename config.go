package parallax

import (
	"fmt"
	"os"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Config is the full presentation configuration, usually loaded from YAML.
type Config struct {
	Window WindowConfig  `yaml:"window"`
	Camera CameraConfig  `yaml:"camera"`
	Timing TimingConfig  `yaml:"timing"`
	Loop   LoopConfig    `yaml:"loop"`
	Slides []SlideConfig `yaml:"slides"`
	// Mask is an optional image path whose alpha masks the upper layers.
	Mask string `yaml:"mask"`
	// Font is an optional TTF/OTF path for the overlay label.
	Font string `yaml:"font"`
	// Edges replaces the reference policy table when present.
	Edges []EdgeConfig `yaml:"edges"`
	Debug bool         `yaml:"debug"`
}

// WindowConfig sizes the window.
type WindowConfig struct {
	Title     string `yaml:"title"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	Resizable bool   `yaml:"resizable"`
}

// CameraConfig describes the perspective camera.
type CameraConfig struct {
	FOV       float64 `yaml:"fov"`
	RestDepth float64 `yaml:"rest_depth"`
}

// TimingConfig describes the transition timeline and the label crossfade.
type TimingConfig struct {
	Duration  float32 `yaml:"duration"`
	DepthPull float32 `yaml:"depth_pull"`
	Settle    float32 `yaml:"settle"`
	PullDepth float64 `yaml:"pull_depth"`
	FadeOut   float32 `yaml:"fade_out"`
	FadeIn    float32 `yaml:"fade_in"`
}

func (t TimingConfig) engineTiming() Timing {
	return Timing{
		Duration:  t.Duration,
		DepthPull: t.DepthPull,
		Settle:    t.Settle,
		PullDepth: t.PullDepth,
	}
}

// SlideConfig is one slide entry. Offset defaults to index * spacing when
// omitted.
type SlideConfig struct {
	Label  string   `yaml:"label"`
	Offset *float64 `yaml:"offset"`
	Image  string   `yaml:"image"`
}

// EdgeConfig is one policy table entry.
type EdgeConfig struct {
	From    int                `yaml:"from"`
	To      int                `yaml:"to"`
	Effects []ActivationConfig `yaml:"effects"`
}

// ActivationConfig is one effect activation. Direction is "forward",
// "reverse" or "pulse" (both halves). Ease is a gween easing name.
type ActivationConfig struct {
	Effect    string `yaml:"effect"`
	Direction string `yaml:"direction"`
	Ease      string `yaml:"ease"`
}

// DefaultSlideSpacing is the world distance between neighbouring slides.
const DefaultSlideSpacing = 2100

// DefaultConfig returns the reference configuration: three slides, the
// reference policy table and timing.
func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{Title: "Parallax", Width: 1280, Height: 720, Resizable: true},
		Camera: CameraConfig{FOV: 65, RestDepth: 900},
		Timing: TimingConfig{
			Duration:  1.7,
			DepthPull: 1.2,
			Settle:    1.0,
			PullDepth: 700,
			FadeOut:   0.85,
			FadeIn:    0.85,
		},
		Loop: DefaultLoopConfig(),
		Slides: []SlideConfig{
			{Label: "IMAGE &"},
			{Label: "PARALLAX"},
			{Label: "TRANSITION"},
		},
		Edges: defaultEdges(3),
	}
}

// defaultEdges returns the reference edges that fit a deck of n slides.
func defaultEdges(n int) []EdgeConfig {
	ref := []EdgeConfig{
		{From: 0, To: 1, Effects: []ActivationConfig{
			{Effect: string(EffectCurtain), Direction: "pulse"},
			{Effect: string(EffectRGB), Direction: "pulse", Ease: "inOutQuart"},
		}},
		{From: 1, To: 2, Effects: []ActivationConfig{
			{Effect: string(EffectRipple), Direction: "pulse"},
			{Effect: string(EffectRGB), Direction: "pulse", Ease: "inOutQuart"},
		}},
		{From: 2, To: 0, Effects: []ActivationConfig{
			{Effect: string(EffectRipple), Direction: "pulse"},
		}},
	}
	edges := ref[:0]
	for _, e := range ref {
		if e.From < n && e.To < n {
			edges = append(edges, e)
		}
	}
	return edges
}

// ParseConfig decodes YAML on top of DefaultConfig. Lists present in the
// document (slides, edges) replace the defaults entirely. Without an edges
// key the reference edges that fit the configured slides are used; an empty
// list makes every transition motion-only.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	cfg.Edges = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Edges == nil {
		cfg.Edges = defaultEdges(len(cfg.Slides))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return ParseConfig(data)
}

// Validate checks ranges and cross references.
func (c Config) Validate() error {
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	if c.Camera.FOV <= 0 || c.Camera.FOV >= 180 {
		return fmt.Errorf("camera fov %v must be in (0,180)", c.Camera.FOV)
	}
	if c.Camera.RestDepth <= 0 {
		return fmt.Errorf("camera rest depth %v must be positive", c.Camera.RestDepth)
	}
	if err := c.Timing.engineTiming().Validate(); err != nil {
		return err
	}
	if c.Timing.FadeOut <= 0 || c.Timing.FadeIn <= 0 {
		return fmt.Errorf("crossfade phases %v/%v must be positive", c.Timing.FadeOut, c.Timing.FadeIn)
	}
	if c.Loop.Layers < 1 {
		return fmt.Errorf("loop layers %d must be at least 1", c.Loop.Layers)
	}
	if len(c.Slides) == 0 {
		return fmt.Errorf("%w: no slides configured", ErrInvalidSlide)
	}
	for i, e := range c.Edges {
		if e.From < 0 || e.From >= len(c.Slides) || e.To < 0 || e.To >= len(c.Slides) {
			return fmt.Errorf("edge %d: %w: %d -> %d with %d slides", i, ErrInvalidSlide, e.From, e.To, len(c.Slides))
		}
		for _, a := range e.Effects {
			if _, err := a.activations(); err != nil {
				return fmt.Errorf("edge %d (%d -> %d): %w", i, e.From, e.To, err)
			}
		}
	}
	return nil
}

// SlideRegistry builds the slide registry described by c.Slides.
func (c Config) SlideRegistry() (*SlideRegistry, error) {
	slides := make([]Slide, len(c.Slides))
	for i, s := range c.Slides {
		off := float64(i) * DefaultSlideSpacing
		if s.Offset != nil {
			off = *s.Offset
		}
		slides[i] = Slide{Offset: off, Label: s.Label, Image: s.Image}
	}
	return NewSlideRegistry(slides)
}

// PolicyTable builds the policy table described by c.Edges.
func (c Config) PolicyTable() (*PolicyTable, error) {
	t := NewPolicyTable()
	for _, e := range c.Edges {
		var acts []Activation
		for _, a := range e.Effects {
			as, err := a.activations()
			if err != nil {
				return nil, fmt.Errorf("edge %d -> %d: %w", e.From, e.To, err)
			}
			acts = append(acts, as...)
		}
		t.Set(e.From, e.To, acts)
	}
	return t, nil
}

func (a ActivationConfig) activations() ([]Activation, error) {
	name := EffectName(a.Effect)
	switch name {
	case EffectRipple, EffectCurtain, EffectRGB:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEffect, a.Effect)
	}
	var fn ease.TweenFunc
	if a.Ease != "" {
		f, ok := EaseByName(a.Ease)
		if !ok {
			return nil, fmt.Errorf("unknown ease %q", a.Ease)
		}
		fn = f
	}
	switch a.Direction {
	case "", "pulse":
		return Pulse(name, fn), nil
	case "forward":
		return []Activation{{Effect: name, Direction: Forward, Ease: fn}}, nil
	case "reverse":
		return []Activation{{Effect: name, Direction: Reverse, Ease: fn}}, nil
	default:
		return nil, fmt.Errorf("unknown direction %q", a.Direction)
	}
}
