package parallax

import (
	"errors"
	"fmt"
)

// ErrInvalidSlide is returned for a slide index outside [0, N).
var ErrInvalidSlide = errors.New("parallax: invalid slide index")

// Slide is one selectable content state. Immutable after construction.
type Slide struct {
	Index  int
	Offset float64 // world-space X the camera centers on
	Label  string
	Image  string // optional asset path, resolved by the caller
}

// SlideRegistry is the fixed, ordered set of slides.
type SlideRegistry struct {
	slides []Slide
}

// NewSlideRegistry builds a registry from slides, renumbering them by position.
func NewSlideRegistry(slides []Slide) (*SlideRegistry, error) {
	if len(slides) == 0 {
		return nil, fmt.Errorf("%w: registry needs at least one slide", ErrInvalidSlide)
	}
	r := &SlideRegistry{slides: make([]Slide, len(slides))}
	for i, s := range slides {
		s.Index = i
		r.slides[i] = s
	}
	return r, nil
}

// Len returns N.
func (r *SlideRegistry) Len() int {
	return len(r.slides)
}

// Valid reports whether i is in [0, N).
func (r *SlideRegistry) Valid(i int) bool {
	return i >= 0 && i < len(r.slides)
}

// At returns slide i. It panics if i is out of range.
func (r *SlideRegistry) At(i int) Slide {
	return r.slides[i]
}

// Slides returns a copy of all slides in order.
func (r *SlideRegistry) Slides() []Slide {
	out := make([]Slide, len(r.slides))
	copy(out, r.slides)
	return out
}

// Next returns (i+1) mod N.
func (r *SlideRegistry) Next(i int) int {
	return (i + 1) % len(r.slides)
}

// Prev returns (i-1) mod N.
func (r *SlideRegistry) Prev(i int) int {
	n := len(r.slides)
	return (i - 1 + n) % n
}

// check returns a descriptive error for an out-of-range index.
func (r *SlideRegistry) check(i int) error {
	if r.Valid(i) {
		return nil
	}
	return fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidSlide, i, len(r.slides))
}
