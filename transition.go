package parallax

import (
	"errors"
	"fmt"
	"os"

	"github.com/tanema/gween/ease"
)

const transitionGroup = "transition"

// ErrDisposed is returned by an engine after Dispose.
var ErrDisposed = errors.New("parallax: engine disposed")

// Timing holds the shape of a transition timeline, in seconds and world units.
type Timing struct {
	// Duration is the camera pan length and the end of the timeline.
	Duration float32
	// DepthPull is when the camera reaches PullDepth.
	DepthPull float32
	// Settle is when distortion starts settling and the camera starts
	// returning to rest depth.
	Settle float32
	// PullDepth is the camera Z at the bottom of the swoop.
	PullDepth float64
}

// DefaultTiming returns the reference timeline: a 1.7 s pan, a swoop to 700
// over the first 1.2 s and a settle phase starting at 1.0 s.
func DefaultTiming() Timing {
	return Timing{
		Duration:  1.7,
		DepthPull: 1.2,
		Settle:    1.0,
		PullDepth: 700,
	}
}

// Validate checks that the phases fit inside Duration.
func (t Timing) Validate() error {
	switch {
	case t.Duration <= 0:
		return fmt.Errorf("parallax: timing duration %v must be positive", t.Duration)
	case t.DepthPull <= 0 || t.DepthPull > t.Duration:
		return fmt.Errorf("parallax: timing depth pull %v must be in (0,%v]", t.DepthPull, t.Duration)
	case t.Settle <= 0 || t.Settle >= t.Duration:
		return fmt.Errorf("parallax: timing settle %v must be in (0,%v)", t.Settle, t.Duration)
	}
	return nil
}

// TransitionState is the engine's externally visible state.
type TransitionState struct {
	Current   int
	Animating bool
	// Edge is the edge being animated, nil when idle.
	Edge *TransitionEdge
}

// TransitionEventType identifies a transition lifecycle event.
type TransitionEventType uint8

const (
	TransitionStarted   TransitionEventType = iota // a request was accepted
	TransitionCompleted                            // the timeline finished and Current changed
	TransitionDropped                              // a request arrived while animating
	TransitionCancelled                            // the engine was disposed mid-flight
)

// String returns the event name.
func (t TransitionEventType) String() string {
	switch t {
	case TransitionStarted:
		return "started"
	case TransitionCompleted:
		return "completed"
	case TransitionDropped:
		return "dropped"
	case TransitionCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// TransitionEvent is delivered to engine subscribers.
type TransitionEvent struct {
	Type     TransitionEventType
	From, To int
	Effects  []EffectName
}

// EngineConfig holds the read-only data an engine is built from.
type EngineConfig struct {
	Slides *SlideRegistry
	Policy *PolicyTable
	Timing Timing
}

// Engine runs slide transitions: one composite timeline of camera motion,
// effect activations and a label crossfade. At most one transition runs at a
// time; requests made while animating are dropped.
type Engine struct {
	slides    *SlideRegistry
	policy    *PolicyTable
	timing    Timing
	sched     *Scheduler
	camera    *Camera
	effects   *EffectSet
	crossfade *Crossfade

	state    TransitionState
	edge     TransitionEdge
	debug    bool
	disposed bool

	listeners      map[int]func(TransitionEvent)
	listenerOrder  []int
	nextListenerID int
}

// NewEngine creates an engine resting on slide 0. Effects referenced by the
// policy but missing from effects are skipped at transition time.
func NewEngine(cfg EngineConfig, sched *Scheduler, cam *Camera, effects *EffectSet, cf *Crossfade) *Engine {
	if cfg.Policy == nil {
		cfg.Policy = NewPolicyTable()
	}
	return &Engine{
		slides:    cfg.Slides,
		policy:    cfg.Policy,
		timing:    cfg.Timing,
		sched:     sched,
		camera:    cam,
		effects:   effects,
		crossfade: cf,
		listeners: make(map[int]func(TransitionEvent)),
	}
}

// State returns a snapshot of the transition state.
func (e *Engine) State() TransitionState {
	return e.state
}

// Current returns the index of the slide at rest.
func (e *Engine) Current() int {
	return e.state.Current
}

// Animating reports whether a transition is in flight.
func (e *Engine) Animating() bool {
	return e.state.Animating
}

// Slides returns the slide registry.
func (e *Engine) Slides() *SlideRegistry {
	return e.slides
}

// SetDebugMode enables or disables debug mode. In debug mode invalid slide
// indices panic instead of returning an error, and every request is logged
// to stderr.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// RequestTransition starts a transition to target. It returns false with a
// nil error when the request is dropped because a transition is running.
func (e *Engine) RequestTransition(target int) (bool, error) {
	if e.disposed {
		return false, ErrDisposed
	}
	if err := e.slides.check(target); err != nil {
		if e.debug {
			panic("parallax debug: RequestTransition: " + err.Error())
		}
		return false, err
	}
	from := e.state.Current
	if e.state.Animating {
		if e.debug {
			_, _ = fmt.Fprintf(os.Stderr, "[parallax] dropped %d -> %d: transition %d -> %d in flight\n",
				from, target, e.edge.From, e.edge.To)
		}
		e.emit(TransitionEvent{Type: TransitionDropped, From: from, To: target})
		return false, nil
	}

	e.edge, _ = e.policy.Lookup(from, target)
	e.state.Animating = true
	e.state.Edge = &e.edge
	effects := e.edge.Effects()

	if e.debug {
		_, _ = fmt.Fprintf(os.Stderr, "[parallax] transition %d -> %d effects=%v\n", from, target, effects)
	}

	slide := e.slides.At(target)
	if e.crossfade != nil {
		e.crossfade.Swap(slide.Label)
	}
	e.buildTimeline(slide)
	e.emit(TransitionEvent{Type: TransitionStarted, From: from, To: target, Effects: effects})
	return true, nil
}

// RequestNext transitions to (Current+1) mod N.
func (e *Engine) RequestNext() (bool, error) {
	if e.disposed {
		return false, ErrDisposed
	}
	return e.RequestTransition(e.slides.Next(e.state.Current))
}

// RequestPrev transitions to (Current-1) mod N.
func (e *Engine) RequestPrev() (bool, error) {
	if e.disposed {
		return false, ErrDisposed
	}
	return e.RequestTransition(e.slides.Prev(e.state.Current))
}

// Override applies manual effect values from a tuning panel. Like
// transition requests, overrides are dropped while animating.
func (e *Engine) Override(st Settings) (bool, error) {
	if e.disposed {
		return false, ErrDisposed
	}
	if e.state.Animating {
		return false, nil
	}
	if err := e.effects.Apply(st); err != nil {
		return false, err
	}
	return true, nil
}

// buildTimeline schedules every track of one transition.
func (e *Engine) buildTimeline(slide Slide) {
	cam := e.camera
	t := e.timing
	target := slide.Index

	tl := e.sched.NewTimeline(transitionGroup, func() { e.complete(target) })

	// Camera motion eases quadratically, below every distortion ease.
	tl.Add(Track{
		Duration: t.Duration,
		Ease:     ease.InOutQuad,
		From:     func() float64 { return cam.X },
		To:       slide.Offset,
		OnUpdate: func(v float64) { cam.X = v },
	})

	// Swoop: pull in, then return to rest. The return track starts before
	// the pull finishes and, being scheduled later, takes over.
	tl.Add(Track{
		Duration: t.DepthPull,
		Ease:     ease.InOutQuad,
		From:     func() float64 { return cam.Z },
		To:       t.PullDepth,
		OnUpdate: func(v float64) { cam.Z = v },
	})
	tl.Add(Track{
		Start:    t.Settle,
		Duration: t.Duration - t.Settle,
		Ease:     ease.InOutQuad,
		From:     func() float64 { return cam.Z },
		To:       cam.RestZ,
		OnUpdate: func(v float64) { cam.Z = v },
	})

	for _, act := range e.edge.Activations {
		p := e.effects.Get(act.Effect)
		if p == nil {
			if e.debug {
				_, _ = fmt.Fprintf(os.Stderr, "[parallax] warning: edge %d -> %d names unknown effect %q\n",
					e.edge.From, e.edge.To, act.Effect)
			}
			continue
		}
		fn := act.Ease
		if fn == nil {
			fn = ease.InOutCubic
		}
		tr := Track{
			Ease:     fn,
			From:     func() float64 { return p.Value },
			OnUpdate: p.Set,
		}
		if act.Direction == Forward {
			tr.Duration = t.Settle
			tr.To = 1
		} else {
			tr.Start = t.Settle
			tr.Duration = t.Duration - t.Settle
			tr.To = 0
		}
		tl.Add(tr)
	}
}

// complete runs when the last track of the timeline finishes.
func (e *Engine) complete(target int) {
	from := e.state.Current
	effects := e.edge.Effects()
	e.state = TransitionState{Current: target}
	e.emit(TransitionEvent{Type: TransitionCompleted, From: from, To: target, Effects: effects})
}

// Subscribe registers fn for transition events and returns a function that
// removes it.
func (e *Engine) Subscribe(fn func(TransitionEvent)) (unsubscribe func()) {
	id := e.nextListenerID
	e.nextListenerID++
	e.listeners[id] = fn
	e.listenerOrder = append(e.listenerOrder, id)
	return func() {
		delete(e.listeners, id)
		for i, lid := range e.listenerOrder {
			if lid == id {
				e.listenerOrder = append(e.listenerOrder[:i], e.listenerOrder[i+1:]...)
				break
			}
		}
	}
}

// Listeners returns the number of registered subscribers.
func (e *Engine) Listeners() int {
	return len(e.listeners)
}

func (e *Engine) emit(ev TransitionEvent) {
	ids := append([]int(nil), e.listenerOrder...)
	for _, id := range ids {
		if fn, ok := e.listeners[id]; ok {
			fn(ev)
		}
	}
}

// Dispose cancels any running transition and crossfade and drops all
// subscribers. Animated values are left where they are.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	if e.state.Animating {
		e.emit(TransitionEvent{Type: TransitionCancelled, From: e.state.Current, To: e.edge.To, Effects: e.edge.Effects()})
	}
	e.sched.CancelAll(transitionGroup)
	if e.crossfade != nil {
		e.crossfade.Cancel()
	}
	e.state.Animating = false
	e.state.Edge = nil
	e.disposed = true
	e.listeners = make(map[int]func(TransitionEvent))
	e.listenerOrder = nil
}

// Disposed reports whether Dispose has been called.
func (e *Engine) Disposed() bool {
	return e.disposed
}
