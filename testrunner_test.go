package parallax

import "testing"

func TestLoadTestScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "screenshot", "label": "initial"},
			{"action": "click", "x": 100, "y": 200},
			{"action": "wait", "frames": 3},
			{"action": "goto", "slide": 2}
		]
	}`)

	runner, err := LoadTestScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 4 {
		t.Fatalf("expected 4 steps, got %d", len(runner.steps))
	}
	if runner.steps[0].Action != "screenshot" || runner.steps[0].Label != "initial" {
		t.Error("step 0 mismatch")
	}
	if runner.steps[1].Action != "click" || runner.steps[1].X != 100 || runner.steps[1].Y != 200 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[2].Action != "wait" || runner.steps[2].Frames != 3 {
		t.Error("step 2 mismatch")
	}
	if runner.steps[3].Action != "goto" || runner.steps[3].Slide != 2 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadTestScript_Invalid(t *testing.T) {
	if _, err := LoadTestScript([]byte(`not json`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestLoadTestScript_Empty(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": []}`)); err == nil {
		t.Error("expected error for empty steps")
	}
}

func TestLoadTestScript_UnknownAction(t *testing.T) {
	if _, err := LoadTestScript([]byte(`{"steps": [{"action": "explode"}]}`)); err == nil {
		t.Error("expected error for unknown action")
	}
}

func TestRunnerStep_Click(t *testing.T) {
	p := newTestPresentation(t)
	runner, err := LoadTestScript([]byte(`{"steps": [{"action": "click", "x": 50, "y": 50}]}`))
	if err != nil {
		t.Fatal(err)
	}
	p.SetTestRunner(runner)

	runner.step(p)
	if p.PendingInjections() != 1 {
		t.Fatalf("expected 1 queued event, got %d", p.PendingInjections())
	}
	if runner.Done() {
		t.Error("runner should not be done while inject queue has events")
	}

	p.processInjectedInput()
	if !p.Engine().Animating() {
		t.Error("injected click should start a transition")
	}

	runner.step(p)
	if !runner.Done() {
		t.Error("runner should be done after all steps executed and queue drained")
	}
}

func TestRunnerStep_IdleWaitsForTransition(t *testing.T) {
	p := newTestPresentation(t)
	runner, err := LoadTestScript([]byte(`{"steps": [
		{"action": "next"},
		{"action": "idle"},
		{"action": "screenshot", "label": "arrived"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.step(p)
	runner.step(p)
	for i := 0; i < 5; i++ {
		runner.step(p)
	}
	if len(p.screenshotQueue) != 0 {
		t.Fatal("screenshot taken while a transition was animating")
	}

	tickFor(p, 2)
	runner.step(p)
	if len(p.screenshotQueue) != 1 || !runner.Done() {
		t.Errorf("queue = %v done = %v, want one screenshot and done", p.screenshotQueue, runner.Done())
	}
	if p.Engine().Current() != 1 {
		t.Errorf("Current = %d, want 1", p.Engine().Current())
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	p := newTestPresentation(t)
	runner, _ := LoadTestScript([]byte(`{"steps": [{"action": "wait", "frames": 3}]}`))
	runner.step(p)
	runner.step(p)
	if runner.Done() {
		t.Fatal("done before the wait elapsed")
	}
	for i := 0; i < 3; i++ {
		runner.step(p)
	}
	if !runner.Done() {
		t.Error("expected done after the wait")
	}
}

func TestRunnerStep_OverrideAndErrors(t *testing.T) {
	p := newTestPresentation(t)
	runner, _ := LoadTestScript([]byte(`{"steps": [
		{"action": "override", "effect": "ripple", "value": 0.5},
		{"action": "goto", "slide": 9},
		{"action": "pause"}
	]}`))
	for i := 0; i < 3; i++ {
		runner.step(p)
	}
	if !runner.Done() {
		t.Fatal("expected done")
	}
	if v := p.Effects().Value(EffectRipple); v != 0.5 {
		t.Errorf("ripple = %f, want 0.5", v)
	}
	if len(runner.Errors()) != 1 {
		t.Errorf("Errors = %v, want one invalid-slide error", runner.Errors())
	}
	if !p.Paused() {
		t.Error("pause step did not pause")
	}
}
