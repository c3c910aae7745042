package parallax

import (
	"errors"
	"fmt"
	"sort"
)

// EffectName identifies one post-processing distortion effect.
type EffectName string

const (
	EffectRipple  EffectName = "ripple"  // radial ripple from the screen center
	EffectCurtain EffectName = "curtain" // second ripple variant, sweeping horizontal bands
	EffectRGB     EffectName = "rgb"     // chromatic channel split
)

// ErrUnknownEffect is returned when an effect name is not part of the set.
var ErrUnknownEffect = errors.New("parallax: unknown effect")

// EffectParameter is the scalar drive value of one distortion effect.
// 0 means inactive, 1 means full effect.
type EffectParameter struct {
	Name    EffectName
	Value   float64
	Default float64
}

// Set stores v clamped to [0, 1].
func (p *EffectParameter) Set(v float64) {
	p.Value = clamp01(v)
}

// Reset restores the default value.
func (p *EffectParameter) Reset() {
	p.Value = p.Default
}

// EffectSet owns the effect parameters in the order their filters run.
type EffectSet struct {
	params []*EffectParameter
	byName map[EffectName]*EffectParameter
}

// NewEffectSet creates one parameter per name, each defaulting to 0.
// Duplicate names are ignored.
func NewEffectSet(names ...EffectName) *EffectSet {
	s := &EffectSet{byName: make(map[EffectName]*EffectParameter, len(names))}
	for _, n := range names {
		if _, ok := s.byName[n]; ok {
			continue
		}
		p := &EffectParameter{Name: n}
		s.params = append(s.params, p)
		s.byName[n] = p
	}
	return s
}

// DefaultEffectSet returns the three reference effects in filter order.
func DefaultEffectSet() *EffectSet {
	return NewEffectSet(EffectRipple, EffectRGB, EffectCurtain)
}

// Get returns the named parameter, or nil.
func (s *EffectSet) Get(name EffectName) *EffectParameter {
	return s.byName[name]
}

// Value returns the current value of the named parameter, or 0 if unknown.
func (s *EffectSet) Value(name EffectName) float64 {
	if p := s.byName[name]; p != nil {
		return p.Value
	}
	return 0
}

// Params returns the parameters in filter order. The returned slice MUST NOT be mutated.
func (s *EffectSet) Params() []*EffectParameter {
	return s.params
}

// Has reports whether name is part of the set.
func (s *EffectSet) Has(name EffectName) bool {
	_, ok := s.byName[name]
	return ok
}

// Reset restores every parameter to its default.
func (s *EffectSet) Reset() {
	for _, p := range s.params {
		p.Reset()
	}
}

// Settings carries manual effect overrides from a tuning panel.
type Settings struct {
	Progress map[EffectName]float64
}

// Apply writes every override in st. Nothing is written if any name is
// unknown. Values are clamped to [0, 1].
func (s *EffectSet) Apply(st Settings) error {
	names := make([]string, 0, len(st.Progress))
	for n := range st.Progress {
		if !s.Has(n) {
			names = append(names, string(n))
		}
	}
	if len(names) > 0 {
		sort.Strings(names)
		return fmt.Errorf("%w: %v", ErrUnknownEffect, names)
	}
	for n, v := range st.Progress {
		s.byName[n].Set(v)
	}
	return nil
}
