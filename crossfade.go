package parallax

import "github.com/tanema/gween/ease"

const crossfadeGroup = "crossfade"

// TextOverlay is the label drawn over the slides.
type TextOverlay struct {
	Label string
	// Shift is the vertical offset in label heights: 0 is centered, -1 is
	// fully exited upward and +1 is the mirror position below.
	Shift   float64
	Opacity float64
}

// NewTextOverlay returns a centered, opaque overlay showing label.
func NewTextOverlay(label string) *TextOverlay {
	return &TextOverlay{Label: label, Opacity: 1}
}

// Crossfade swaps an overlay's label in two phases: exit, then enter from
// the opposite side. Only one crossfade runs at a time; a new Swap takes over
// from the current interpolated values.
type Crossfade struct {
	overlay *TextOverlay
	sched   *Scheduler

	// ExitDuration and EnterDuration are the phase lengths in seconds.
	ExitDuration  float32
	EnterDuration float32

	swaps   int
	pending string
	phase   int // 0 idle, 1 exiting, 2 entering
}

// NewCrossfade creates a crossfade for overlay with 0.85 s phases.
func NewCrossfade(sched *Scheduler, overlay *TextOverlay) *Crossfade {
	return &Crossfade{
		overlay:       overlay,
		sched:         sched,
		ExitDuration:  0.85,
		EnterDuration: 0.85,
	}
}

// Swap starts replacing the label with label.
func (c *Crossfade) Swap(label string) {
	c.sched.CancelAll(crossfadeGroup)
	c.pending = label
	c.phase = 1

	o := c.overlay
	tl := c.sched.NewTimeline(crossfadeGroup, c.enter)
	tl.Add(Track{
		Duration: c.ExitDuration,
		Ease:     ease.InCubic,
		From:     func() float64 { return o.Shift },
		To:       -1,
		OnUpdate: func(v float64) { o.Shift = v },
	})
	tl.Add(Track{
		Duration: c.ExitDuration,
		Ease:     ease.InCubic,
		From:     func() float64 { return o.Opacity },
		To:       0,
		OnUpdate: func(v float64) { o.Opacity = v },
	})
}

// enter swaps the content while the overlay is invisible, teleports it to the
// mirror position and animates it back to center.
func (c *Crossfade) enter() {
	o := c.overlay
	o.Label = c.pending
	o.Shift = 1
	c.swaps++
	c.phase = 2

	tl := c.sched.NewTimeline(crossfadeGroup, func() { c.phase = 0 })
	tl.Add(Track{
		Duration: c.EnterDuration,
		Ease:     ease.OutCubic,
		From:     func() float64 { return o.Shift },
		To:       0,
		OnUpdate: func(v float64) { o.Shift = v },
	})
	tl.Add(Track{
		Duration: c.EnterDuration,
		Ease:     ease.OutCubic,
		From:     func() float64 { return o.Opacity },
		To:       1,
		OnUpdate: func(v float64) { o.Opacity = v },
	})
}

// Cancel stops the crossfade, leaving the overlay where it is.
func (c *Crossfade) Cancel() {
	c.sched.CancelAll(crossfadeGroup)
	c.phase = 0
}

// Active reports whether a crossfade is running.
func (c *Crossfade) Active() bool {
	return c.phase != 0
}

// Swaps returns how many times the label content has been replaced.
func (c *Crossfade) Swaps() int {
	return c.swaps
}
