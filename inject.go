package parallax

// syntheticPointerEvent is one injected pointer event in screen pixels.
type syntheticPointerEvent struct {
	screenX, screenY float64
	click            bool
}

// InjectMove queues a pointer move to the given screen coordinates. The
// event is consumed on the next frame's input pass.
func (p *Presentation) InjectMove(x, y float64) {
	p.input.injectQueue = append(p.input.injectQueue, syntheticPointerEvent{screenX: x, screenY: y})
}

// InjectClick queues a click at the given screen coordinates. It moves the
// pointer there and requests the next slide, exactly like a real click.
func (p *Presentation) InjectClick(x, y float64) {
	p.input.injectQueue = append(p.input.injectQueue, syntheticPointerEvent{screenX: x, screenY: y, click: true})
}

// InjectDrag queues pointer moves from (fromX, fromY) to (toX, toY) spread
// over frames frames. Minimum frames is 1.
func (p *Presentation) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		p.InjectMove(lerp(fromX, toX, t), lerp(fromY, toY, t))
	}
}

// PendingInjections returns the number of queued synthetic events.
func (p *Presentation) PendingInjections() int {
	return len(p.input.injectQueue)
}

// processInjectedInput pops one synthetic event and applies it. Returns true
// if an event was consumed, in which case real input is skipped this frame.
func (p *Presentation) processInjectedInput() bool {
	q := p.input.injectQueue
	if len(q) == 0 {
		return false
	}
	evt := q[0]
	copy(q, q[1:])
	p.input.injectQueue = q[:len(q)-1]

	p.setPointerScreen(evt.screenX, evt.screenY)
	if evt.click {
		ok, err := p.engine.RequestNext()
		p.reportRequest("injected click", ok, err)
	}
	return true
}
