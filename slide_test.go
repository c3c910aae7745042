package parallax

import (
	"errors"
	"testing"
)

func TestNewSlideRegistryRenumbers(t *testing.T) {
	r, err := NewSlideRegistry([]Slide{
		{Index: 7, Offset: 0, Label: "a"},
		{Index: 7, Offset: 2100, Label: "b"},
	})
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range r.Slides() {
		if s.Index != i {
			t.Errorf("slide %d has Index %d", i, s.Index)
		}
	}
	if r.At(1).Label != "b" || r.At(1).Offset != 2100 {
		t.Errorf("At(1) = %+v", r.At(1))
	}
}

func TestNewSlideRegistryEmpty(t *testing.T) {
	if _, err := NewSlideRegistry(nil); !errors.Is(err, ErrInvalidSlide) {
		t.Errorf("err = %v, want ErrInvalidSlide", err)
	}
}

func TestSlideRegistryWrap(t *testing.T) {
	r, _ := NewSlideRegistry(make([]Slide, 3))
	tests := []struct {
		i, next, prev int
	}{
		{0, 1, 2},
		{1, 2, 0},
		{2, 0, 1},
	}
	for _, tt := range tests {
		if got := r.Next(tt.i); got != tt.next {
			t.Errorf("Next(%d) = %d, want %d", tt.i, got, tt.next)
		}
		if got := r.Prev(tt.i); got != tt.prev {
			t.Errorf("Prev(%d) = %d, want %d", tt.i, got, tt.prev)
		}
	}
}

func TestSlideRegistryValid(t *testing.T) {
	r, _ := NewSlideRegistry(make([]Slide, 3))
	for _, i := range []int{-1, 3, 99} {
		if r.Valid(i) {
			t.Errorf("Valid(%d) = true", i)
		}
		if err := r.check(i); !errors.Is(err, ErrInvalidSlide) {
			t.Errorf("check(%d) = %v", i, err)
		}
	}
	if r.check(2) != nil {
		t.Error("check(2) should pass")
	}
}

func TestSlideRegistrySlidesIsCopy(t *testing.T) {
	r, _ := NewSlideRegistry([]Slide{{Label: "a"}})
	s := r.Slides()
	s[0].Label = "changed"
	if r.At(0).Label != "a" {
		t.Error("Slides() leaked internal storage")
	}
}
