package parallax

import (
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Track animates one scalar inside a scheduler group. Times are in seconds.
type Track struct {
	// Start delays the track relative to the moment it was scheduled.
	Start    float32
	Duration float32
	Ease     ease.TweenFunc // nil means ease.Linear
	// From is sampled once, when the track's clock first reaches Start, so a
	// track takes over from whatever value the target holds at that moment.
	// Nil starts from 0.
	From       func() float64
	To         float64
	OnUpdate   func(v float64)
	OnComplete func()
}

// End returns Start + Duration.
func (t Track) End() float32 {
	return t.Start + t.Duration
}

type scheduledTrack struct {
	group     string
	track     Track
	elapsed   float32
	tween     *gween.Tween
	cancelled bool
	done      bool
}

// Scheduler is a per-frame tick list of tracks. It is not safe for concurrent
// use; call it from the game's update goroutine only.
//
// Tracks are advanced in the order they were scheduled, so when two tracks
// write the same field in the same frame the later one wins.
type Scheduler struct {
	tracks   []*scheduledTrack
	pending  []*scheduledTrack
	updating bool
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule adds a track to group. Tracks scheduled from inside a callback
// start ticking on the next Update.
func (s *Scheduler) Schedule(group string, t Track) {
	st := &scheduledTrack{group: group, track: t}
	if s.updating {
		s.pending = append(s.pending, st)
		return
	}
	s.tracks = append(s.tracks, st)
}

// CancelAll stops every track in group without completing it. Animated
// values keep whatever they held last; no OnComplete callbacks fire. Outside
// of Update the tracks and their callbacks are released immediately.
func (s *Scheduler) CancelAll(group string) {
	for _, st := range s.tracks {
		if st.group == group {
			st.cancelled = true
		}
	}
	for _, st := range s.pending {
		if st.group == group {
			st.cancelled = true
		}
	}
	if !s.updating {
		s.tracks = compactTracks(s.tracks)
		s.pending = compactTracks(s.pending)
	}
}

// compactTracks drops finished and cancelled tracks in place and clears the
// vacated tail so their closures can be collected.
func compactTracks(list []*scheduledTrack) []*scheduledTrack {
	live := list[:0]
	for _, st := range list {
		if !st.cancelled && !st.done {
			live = append(live, st)
		}
	}
	for i := len(live); i < len(list); i++ {
		list[i] = nil
	}
	return live
}

// Active reports whether group has any unfinished track.
func (s *Scheduler) Active(group string) bool {
	for _, st := range s.tracks {
		if st.group == group && !st.cancelled && !st.done {
			return true
		}
	}
	for _, st := range s.pending {
		if st.group == group && !st.cancelled {
			return true
		}
	}
	return false
}

// Len returns the number of live tracks.
func (s *Scheduler) Len() int {
	n := 0
	for _, st := range s.tracks {
		if !st.cancelled && !st.done {
			n++
		}
	}
	for _, st := range s.pending {
		if !st.cancelled {
			n++
		}
	}
	return n
}

// Update advances every track by dt seconds.
func (s *Scheduler) Update(dt float32) {
	s.updating = true
	for _, st := range s.tracks {
		if st.cancelled || st.done {
			continue
		}
		st.elapsed += dt
		tr := &st.track
		if st.elapsed < tr.Start {
			continue
		}
		if st.tween == nil {
			from := 0.0
			if tr.From != nil {
				from = tr.From()
			}
			fn := tr.Ease
			if fn == nil {
				fn = ease.Linear
			}
			st.tween = gween.New(float32(from), float32(tr.To), tr.Duration, fn)
		}
		val, finished := st.tween.Set(st.elapsed - tr.Start)
		if tr.OnUpdate != nil {
			tr.OnUpdate(float64(val))
		}
		if finished {
			st.done = true
			if tr.OnComplete != nil {
				tr.OnComplete()
			}
		}
	}
	s.updating = false

	s.tracks = compactTracks(s.tracks)
	for _, st := range s.pending {
		if !st.cancelled {
			s.tracks = append(s.tracks, st)
		}
	}
	clear(s.pending)
	s.pending = s.pending[:0]
}

// Timeline bundles tracks of one group into a single logical animation whose
// completion callback fires once, after its last track finishes.
type Timeline struct {
	sched      *Scheduler
	group      string
	pending    int
	duration   float32
	onComplete func()
}

// NewTimeline starts an empty timeline in group.
func (s *Scheduler) NewTimeline(group string, onComplete func()) *Timeline {
	return &Timeline{sched: s, group: group, onComplete: onComplete}
}

// Add schedules t as part of the timeline.
func (tl *Timeline) Add(t Track) {
	tl.pending++
	if end := t.End(); end > tl.duration {
		tl.duration = end
	}
	inner := t.OnComplete
	t.OnComplete = func() {
		if inner != nil {
			inner()
		}
		tl.pending--
		if tl.pending == 0 && tl.onComplete != nil {
			tl.onComplete()
		}
	}
	tl.sched.Schedule(tl.group, t)
}

// Duration returns the end time of the latest track added so far.
func (tl *Timeline) Duration() float32 {
	return tl.duration
}

// Group returns the scheduler group the timeline's tracks belong to.
func (tl *Timeline) Group() string {
	return tl.group
}

var easeFuncs = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"inquart":    ease.InQuart,
	"outquart":   ease.OutQuart,
	"inoutquart": ease.InOutQuart,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
	"inexpo":     ease.InExpo,
	"outexpo":    ease.OutExpo,
	"inoutexpo":  ease.InOutExpo,
}

// EaseByName resolves an easing name such as "inOutCubic" (case-insensitive).
func EaseByName(name string) (ease.TweenFunc, bool) {
	fn, ok := easeFuncs[strings.ToLower(name)]
	return fn, ok
}
