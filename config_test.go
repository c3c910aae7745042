package parallax

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig invalid: %v", err)
	}
	slides, err := cfg.SlideRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if slides.Len() != 3 {
		t.Errorf("slides = %d, want 3", slides.Len())
	}
	for i, s := range slides.Slides() {
		if s.Offset != float64(i)*DefaultSlideSpacing {
			t.Errorf("slide %d offset = %f", i, s.Offset)
		}
	}

	policy, err := cfg.PolicyTable()
	if err != nil {
		t.Fatal(err)
	}
	ref := DefaultPolicyTable()
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {2, 0}, {1, 0}} {
		got := edgeEffects(t, policy, pair[0], pair[1])
		want := edgeEffects(t, ref, pair[0], pair[1])
		if !sameEffects(got, want) {
			t.Errorf("%d -> %d = %v, want %v", pair[0], pair[1], got, want)
		}
	}
	if cfg.Timing.engineTiming() != DefaultTiming() {
		t.Errorf("timing = %+v, want %+v", cfg.Timing.engineTiming(), DefaultTiming())
	}
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	data := []byte(`
window:
  width: 1920
  height: 1080
camera:
  rest_depth: 1200
slides:
  - label: one
  - label: two
    offset: 5000
edges:
  - from: 1
    to: 0
    effects:
      - {effect: ripple, ease: outQuad}
      - {effect: rgb, direction: forward}
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Width != 1920 || cfg.Window.Title != "Parallax" {
		t.Errorf("window = %+v, want overridden size and default title", cfg.Window)
	}
	if cfg.Camera.RestDepth != 1200 || cfg.Camera.FOV != 65 {
		t.Errorf("camera = %+v", cfg.Camera)
	}
	if cfg.Loop != DefaultLoopConfig() {
		t.Errorf("loop = %+v, want defaults", cfg.Loop)
	}

	slides, _ := cfg.SlideRegistry()
	if slides.Len() != 2 || slides.At(1).Offset != 5000 || slides.At(0).Offset != 0 {
		t.Errorf("slides = %+v", slides.Slides())
	}

	policy, _ := cfg.PolicyTable()
	if policy.Len() != 1 {
		t.Fatalf("edges = %d, want 1; lists replace the defaults", policy.Len())
	}
	e, ok := policy.Lookup(1, 0)
	if !ok || len(e.Activations) != 3 {
		t.Fatalf("1 -> 0 = %+v", e)
	}
	if e.Activations[0].Ease == nil || e.Activations[2].Ease != nil {
		t.Error("ease override not applied to the ripple pulse only")
	}
	if e.Activations[2].Direction != Forward {
		t.Errorf("rgb direction = %v, want forward", e.Activations[2].Direction)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name, yaml, want string
	}{
		{"bad yaml", "window: [", "parse config"},
		{"zero width", "window: {width: 0}", "window size"},
		{"fov", "camera: {fov: 190}", "fov"},
		{"no slides", "slides: []", "no slides"},
		{"edge range", "edges: [{from: 0, to: 7}]", "invalid slide"},
		{"unknown effect", "edges: [{from: 0, to: 1, effects: [{effect: bloom}]}]", "unknown effect"},
		{"unknown ease", "edges: [{from: 0, to: 1, effects: [{effect: rgb, ease: wobble}]}]", "unknown ease"},
		{"direction", "edges: [{from: 0, to: 1, effects: [{effect: rgb, direction: sideways}]}]", "unknown direction"},
		{"timing", "timing: {settle: 5}", "settle"},
		{"layers", "loop: {layers: 0}", "layers"},
	}
	for _, tt := range tests {
		_, err := ParseConfig([]byte(tt.yaml))
		if err == nil {
			t.Errorf("%s: expected error", tt.name)
			continue
		}
		if !strings.Contains(err.Error(), tt.want) {
			t.Errorf("%s: err = %v, want it to mention %q", tt.name, err, tt.want)
		}
	}
}

func TestParseConfigUnknownEffectWraps(t *testing.T) {
	_, err := ParseConfig([]byte("edges: [{from: 0, to: 1, effects: [{effect: bloom}]}]"))
	if !errors.Is(err, ErrUnknownEffect) {
		t.Errorf("err = %v, want ErrUnknownEffect", err)
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "slides.yaml")
	if err := os.WriteFile(path, []byte("window: {title: Demo}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Window.Title != "Demo" {
		t.Errorf("Title = %q", cfg.Window.Title)
	}
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for a missing file")
	}
}

func TestParseConfigShorterDeck(t *testing.T) {
	cfg, err := ParseConfig([]byte("slides:\n  - label: A\n  - label: B\n"))
	if err != nil {
		t.Fatalf("two-slide deck rejected: %v", err)
	}
	policy, err := cfg.PolicyTable()
	if err != nil {
		t.Fatal(err)
	}
	if policy.Len() != 1 {
		t.Errorf("edges = %d, want only the reference 0 -> 1", policy.Len())
	}
	if got := edgeEffects(t, policy, 0, 1); !sameEffects(got, []EffectName{EffectCurtain, EffectRGB}) {
		t.Errorf("0 -> 1 = %v", got)
	}
}

func TestParseConfigEmptyEdges(t *testing.T) {
	cfg, err := ParseConfig([]byte("edges: []\n"))
	if err != nil {
		t.Fatal(err)
	}
	policy, _ := cfg.PolicyTable()
	if policy.Len() != 0 {
		t.Errorf("edges = %d, want 0 for an explicit empty list", policy.Len())
	}
}

func TestDefaultConfigRGBEase(t *testing.T) {
	policy, err := DefaultConfig().PolicyTable()
	if err != nil {
		t.Fatal(err)
	}
	e, _ := policy.Lookup(0, 1)
	for _, a := range e.Activations {
		switch a.Effect {
		case EffectRGB:
			if a.Ease == nil {
				t.Error("rgb should carry its own quartic ease")
			}
		case EffectCurtain:
			if a.Ease != nil {
				t.Error("curtain should use the engine default ease")
			}
		}
	}
}
