package parallax

import "github.com/tanema/gween/ease"

// Direction selects which half of an effect pulse an activation drives.
type Direction uint8

const (
	Forward Direction = iota // ramp the parameter up to 1 while the camera leaves
	Reverse                  // settle the parameter back to 0 while the camera arrives
)

// String returns "forward" or "reverse".
func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// Activation animates one effect parameter during a transition.
type Activation struct {
	Effect    EffectName
	Direction Direction
	// Ease overrides the distortion ease. Nil uses ease.InOutCubic.
	Ease ease.TweenFunc
}

// Pulse returns the forward and reverse activations of one effect, which
// together drive it 0 -> 1 -> 0 over a transition.
func Pulse(effect EffectName, fn ease.TweenFunc) []Activation {
	return []Activation{
		{Effect: effect, Direction: Forward, Ease: fn},
		{Effect: effect, Direction: Reverse, Ease: fn},
	}
}

// TransitionEdge is an ordered (from, to) slide pair and the effects it fires.
type TransitionEdge struct {
	From, To    int
	Activations []Activation
}

// Effects returns the distinct effects the edge touches, in first-seen order.
func (e *TransitionEdge) Effects() []EffectName {
	var out []EffectName
	seen := make(map[EffectName]bool, len(e.Activations))
	for _, a := range e.Activations {
		if !seen[a.Effect] {
			seen[a.Effect] = true
			out = append(out, a.Effect)
		}
	}
	return out
}

type edgeKey struct{ from, to int }

// PolicyTable maps ordered slide pairs to their effect activations. It is
// directional: the A->B entry says nothing about B->A.
type PolicyTable struct {
	edges map[edgeKey][]Activation
}

// NewPolicyTable returns an empty table. Every lookup is motion-only until
// edges are added.
func NewPolicyTable() *PolicyTable {
	return &PolicyTable{edges: make(map[edgeKey][]Activation)}
}

// DefaultPolicyTable returns the reference configuration. Only 0->1, 1->2
// and 2->0 carry distortion, and 2->0 carries a single effect. The RGB split
// uses a quartic ease so it peaks harder and shorter than the ripples.
func DefaultPolicyTable() *PolicyTable {
	t := NewPolicyTable()
	t.Set(0, 1, append(Pulse(EffectCurtain, nil), Pulse(EffectRGB, ease.InOutQuart)...))
	t.Set(1, 2, append(Pulse(EffectRipple, nil), Pulse(EffectRGB, ease.InOutQuart)...))
	t.Set(2, 0, Pulse(EffectRipple, nil))
	return t
}

// Set registers the activations for from->to, replacing any previous entry.
func (t *PolicyTable) Set(from, to int, acts []Activation) {
	cp := make([]Activation, len(acts))
	copy(cp, acts)
	t.edges[edgeKey{from, to}] = cp
}

// Delete removes the from->to entry.
func (t *PolicyTable) Delete(from, to int) {
	delete(t.edges, edgeKey{from, to})
}

// Lookup returns the edge for from->to. Unregistered pairs yield a
// motion-only edge with no activations; ok reports whether it was registered.
func (t *PolicyTable) Lookup(from, to int) (edge TransitionEdge, ok bool) {
	acts, ok := t.edges[edgeKey{from, to}]
	return TransitionEdge{From: from, To: to, Activations: acts}, ok
}

// Len returns the number of registered edges.
func (t *PolicyTable) Len() int {
	return len(t.edges)
}
