package parallax

import (
	"errors"
	"testing"
)

func TestDefaultEffectSet(t *testing.T) {
	s := DefaultEffectSet()
	params := s.Params()
	want := []EffectName{EffectRipple, EffectRGB, EffectCurtain}
	if len(params) != len(want) {
		t.Fatalf("len = %d, want %d", len(params), len(want))
	}
	for i, n := range want {
		if params[i].Name != n {
			t.Errorf("params[%d] = %q, want %q", i, params[i].Name, n)
		}
		if params[i].Value != 0 {
			t.Errorf("%s starts at %f, want 0", n, params[i].Value)
		}
	}
}

func TestNewEffectSetDedup(t *testing.T) {
	s := NewEffectSet(EffectRipple, EffectRipple, EffectRGB)
	if len(s.Params()) != 2 {
		t.Errorf("len = %d, want 2", len(s.Params()))
	}
}

func TestEffectParameterClamps(t *testing.T) {
	p := &EffectParameter{Name: EffectRipple}
	p.Set(1.5)
	if p.Value != 1 {
		t.Errorf("Set(1.5) = %f, want 1", p.Value)
	}
	p.Set(-0.2)
	if p.Value != 0 {
		t.Errorf("Set(-0.2) = %f, want 0", p.Value)
	}
	p.Default = 0.25
	p.Set(0.75)
	p.Reset()
	if p.Value != 0.25 {
		t.Errorf("Reset = %f, want 0.25", p.Value)
	}
}

func TestEffectSetApply(t *testing.T) {
	s := DefaultEffectSet()
	err := s.Apply(Settings{Progress: map[EffectName]float64{
		EffectRipple: 0.4,
		EffectRGB:    2,
	}})
	if err != nil {
		t.Fatal(err)
	}
	if s.Value(EffectRipple) != 0.4 {
		t.Errorf("ripple = %f, want 0.4", s.Value(EffectRipple))
	}
	if s.Value(EffectRGB) != 1 {
		t.Errorf("rgb = %f, want clamped 1", s.Value(EffectRGB))
	}
	if s.Value(EffectCurtain) != 0 {
		t.Errorf("curtain = %f, want untouched 0", s.Value(EffectCurtain))
	}
}

func TestEffectSetApplyUnknownWritesNothing(t *testing.T) {
	s := DefaultEffectSet()
	err := s.Apply(Settings{Progress: map[EffectName]float64{
		EffectRipple: 0.4,
		"bloom":      1,
	}})
	if !errors.Is(err, ErrUnknownEffect) {
		t.Fatalf("err = %v, want ErrUnknownEffect", err)
	}
	if s.Value(EffectRipple) != 0 {
		t.Errorf("ripple = %f, want 0 after rejected Apply", s.Value(EffectRipple))
	}
}

func TestEffectSetUnknownLookups(t *testing.T) {
	s := DefaultEffectSet()
	if s.Get("bloom") != nil {
		t.Error("Get(bloom) should be nil")
	}
	if s.Value("bloom") != 0 {
		t.Error("Value(bloom) should be 0")
	}
	if s.Has("bloom") {
		t.Error("Has(bloom) should be false")
	}
}

func TestEffectSetReset(t *testing.T) {
	s := DefaultEffectSet()
	for _, p := range s.Params() {
		p.Set(0.9)
	}
	s.Reset()
	for _, p := range s.Params() {
		if p.Value != 0 {
			t.Errorf("%s = %f after Reset", p.Name, p.Value)
		}
	}
}

func TestNewEffectFilter(t *testing.T) {
	s := DefaultEffectSet()
	if _, ok := newEffectFilter(s.Get(EffectRipple)).(*RippleFilter); !ok {
		t.Error("ripple should map to RippleFilter")
	}
	if _, ok := newEffectFilter(s.Get(EffectCurtain)).(*CurtainFilter); !ok {
		t.Error("curtain should map to CurtainFilter")
	}
	f, ok := newEffectFilter(s.Get(EffectRGB)).(*RGBShiftFilter)
	if !ok {
		t.Fatal("rgb should map to RGBShiftFilter")
	}
	f.Resize(1000, 500)
	if !approxEqual(f.Amount(), 12, 1e-9) {
		t.Errorf("Amount = %f, want 12", f.Amount())
	}
	if newEffectFilter(&EffectParameter{Name: "bloom"}) != nil {
		t.Error("unknown effect should have no filter")
	}
}
