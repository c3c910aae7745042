package ecs

import (
	"testing"

	"github.com/phanxgames/parallax"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func newEngine(t *testing.T) (*parallax.Engine, *parallax.Scheduler) {
	t.Helper()
	slides, err := parallax.NewSlideRegistry([]parallax.Slide{
		{Offset: 0, Label: "a"},
		{Offset: 2100, Label: "b"},
		{Offset: 4200, Label: "c"},
	})
	if err != nil {
		t.Fatal(err)
	}
	sched := parallax.NewScheduler()
	cam := parallax.NewCamera(65, 900, 800, 600)
	e := parallax.NewEngine(parallax.EngineConfig{
		Slides: slides,
		Policy: parallax.DefaultPolicyTable(),
		Timing: parallax.DefaultTiming(),
	}, sched, cam, parallax.DefaultEffectSet(), nil)
	return e, sched
}

func TestBridge_PublishesLifecycle(t *testing.T) {
	world := donburi.NewWorld()
	engine, sched := newEngine(t)
	unsubscribe := Bridge(world, engine)
	defer unsubscribe()

	var received []parallax.TransitionEvent
	TransitionEventType.Subscribe(world, func(w donburi.World, e parallax.TransitionEvent) {
		received = append(received, e)
	})

	if ok, err := engine.RequestTransition(1); !ok || err != nil {
		t.Fatalf("RequestTransition(1) = %v, %v", ok, err)
	}
	if ok, _ := engine.RequestTransition(2); ok {
		t.Fatal("second request should be dropped while animating")
	}
	for i := 0; i < 20; i++ {
		sched.Update(0.1)
	}

	// Events are queued until processed.
	TransitionEventType.ProcessEvents(world)

	if len(received) != 3 {
		t.Fatalf("expected 3 events, got %d: %+v", len(received), received)
	}
	want := []parallax.TransitionEventType{
		parallax.TransitionStarted,
		parallax.TransitionDropped,
		parallax.TransitionCompleted,
	}
	for i, w := range want {
		if received[i].Type != w {
			t.Errorf("event %d type = %v, want %v", i, received[i].Type, w)
		}
	}
	if received[0].From != 0 || received[0].To != 1 {
		t.Errorf("started event = %+v, want 0 -> 1", received[0])
	}
	if len(received[0].Effects) != 2 {
		t.Errorf("started effects = %v, want curtain and rgb", received[0].Effects)
	}
}

func TestBridge_Unsubscribe(t *testing.T) {
	world := donburi.NewWorld()
	engine, _ := newEngine(t)
	unsubscribe := Bridge(world, engine)

	var count int
	TransitionEventType.Subscribe(world, func(w donburi.World, e parallax.TransitionEvent) {
		count++
	})

	unsubscribe()
	if engine.Listeners() != 0 {
		t.Fatalf("Listeners = %d after unsubscribe, want 0", engine.Listeners())
	}
	_, _ = engine.RequestTransition(1)
	events.ProcessAllEvents(world)

	if count != 0 {
		t.Errorf("expected no events after unsubscribe, got %d", count)
	}
}

func TestBridge_PresentationTick(t *testing.T) {
	p, err := parallax.NewPresentation(parallax.DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	world := donburi.NewWorld()
	Bridge(world, p.Engine())

	var received []parallax.TransitionEventType
	TransitionEventType.Subscribe(world, func(w donburi.World, e parallax.TransitionEvent) {
		received = append(received, e.Type)
	})
	p.OnUpdate = func(dt float32) {
		TransitionEventType.ProcessEvents(world)
	}

	if ok, err := p.Engine().RequestNext(); !ok || err != nil {
		t.Fatalf("RequestNext = %v, %v", ok, err)
	}
	for i := 0; i < 40; i++ {
		p.Tick(0.05)
	}
	if len(received) != 2 || received[0] != parallax.TransitionStarted || received[1] != parallax.TransitionCompleted {
		t.Errorf("received = %v, want started, completed", received)
	}
}
