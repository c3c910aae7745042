package parallax

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// overrideStep is how much one key press nudges the ripple override.
const overrideStep = 0.05

// inputState tracks raw pointer input between frames.
type inputState struct {
	hasCursor  bool
	lastCursor [2]int
	touchIDs   []ebiten.TouchID
	released   []ebiten.TouchID

	injectQueue []syntheticPointerEvent
}

// processInput feeds pointer, click, touch and key input into the loop and
// the engine. Injected events take priority over real input for the frame.
func (p *Presentation) processInput() {
	if p.processInjectedInput() {
		return
	}
	p.processPointer()
	p.processTriggers()
	p.processKeys()
}

// processPointer tracks the cursor or the first touch as the parallax pointer.
// The cursor only counts once it has moved, so a window opened with the
// cursor elsewhere starts untilted.
func (p *Presentation) processPointer() {
	in := &p.input
	mx, my := ebiten.CursorPosition()
	cur := [2]int{mx, my}
	if in.hasCursor && cur != in.lastCursor {
		p.setPointerScreen(float64(mx), float64(my))
	}
	in.hasCursor = true
	in.lastCursor = cur

	in.touchIDs = ebiten.AppendTouchIDs(in.touchIDs[:0])
	if len(in.touchIDs) > 0 {
		tx, ty := ebiten.TouchPosition(in.touchIDs[0])
		p.setPointerScreen(float64(tx), float64(ty))
	}
}

// processTriggers advances to the next slide on click or tap release.
func (p *Presentation) processTriggers() {
	in := &p.input
	in.released = inpututil.AppendJustReleasedTouchIDs(in.released[:0])
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) || len(in.released) > 0 {
		ok, err := p.engine.RequestNext()
		p.reportRequest("click", ok, err)
	}
}

// processKeys handles the keyboard panel: number keys jump to a slide,
// arrows and space step, P pauses, H toggles the HUD and [ / ] nudge the
// ripple override.
func (p *Presentation) processKeys() {
	n := p.engine.Slides().Len()
	for i := 0; i < n && i < 9; i++ {
		if inpututil.IsKeyJustPressed(ebiten.Key1 + ebiten.Key(i)) {
			ok, err := p.engine.RequestTransition(i)
			p.reportRequest("key", ok, err)
		}
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		ok, err := p.engine.RequestNext()
		p.reportRequest("key", ok, err)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		ok, err := p.engine.RequestPrev()
		p.reportRequest("key", ok, err)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		p.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		p.hud = !p.hud
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		p.nudgeOverride(EffectRipple, -overrideStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		p.nudgeOverride(EffectRipple, overrideStep)
	}
}

func (p *Presentation) nudgeOverride(name EffectName, delta float64) {
	v := p.effects.Value(name) + delta
	ok, err := p.engine.Override(Settings{Progress: map[EffectName]float64{name: v}})
	p.reportRequest("override", ok, err)
}
