package parallax

import (
	"encoding/json"
	"fmt"
)

// scriptStep is one action in a test script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Slide  int     `json:"slide,omitempty"`
	Effect string  `json:"effect,omitempty"`
	Value  float64 `json:"value,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

type testScript struct {
	Steps []scriptStep `json:"steps"`
}

// TestRunner plays a scripted sequence of clicks, slide requests, waits and
// screenshots, one step per frame. Attach it with SetTestRunner.
//
// Actions: "click" (x, y), "move" (x, y), "drag" (x, y, toX, toY, frames),
// "next", "goto" (slide), "override" (effect, value), "pause", "play",
// "wait" (frames), "idle" and "screenshot" (label). "idle" waits until no
// transition is animating.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	idle      bool
	done      bool
	errs      []error
}

var knownActions = map[string]bool{
	"click": true, "move": true, "drag": true, "next": true, "goto": true,
	"override": true, "pause": true, "play": true, "wait": true, "idle": true,
	"screenshot": true,
}

// LoadTestScript parses a JSON test script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner to the presentation. Its step method runs at
// the start of every Update.
func (p *Presentation) SetTestRunner(runner *TestRunner) {
	p.testRunner = runner
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

// Errors returns the request errors collected while stepping.
func (r *TestRunner) Errors() []error {
	return r.errs
}

// step advances the runner by one frame.
func (r *TestRunner) step(p *Presentation) {
	if r.done {
		return
	}
	if len(p.input.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.idle {
		if p.engine.Animating() {
			return
		}
		r.idle = false
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		p.Screenshot(st.Label)
	case "click":
		p.InjectClick(st.X, st.Y)
	case "move":
		p.InjectMove(st.X, st.Y)
	case "drag":
		p.InjectDrag(st.X, st.Y, st.ToX, st.ToY, st.Frames)
	case "next":
		_, err := p.engine.RequestNext()
		r.record(err)
	case "goto":
		_, err := p.engine.RequestTransition(st.Slide)
		r.record(err)
	case "override":
		_, err := p.engine.Override(Settings{Progress: map[EffectName]float64{EffectName(st.Effect): st.Value}})
		r.record(err)
	case "pause":
		p.Pause()
	case "play":
		p.Play()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "idle":
		r.idle = true
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && !r.idle && len(p.input.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) record(err error) {
	if err != nil {
		r.errs = append(r.errs, err)
	}
}
