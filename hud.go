package parallax

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// hudText formats the debug overlay: frame rates, transition state, effect
// values and the last transition event.
func (p *Presentation) hudText(fps, tps float64) string {
	var sb strings.Builder
	st := p.engine.State()
	fmt.Fprintf(&sb, "FPS: %.1f  TPS: %.1f\n", fps, tps)
	fmt.Fprintf(&sb, "slide: %d/%d  animating: %v  paused: %v\n",
		st.Current, p.engine.Slides().Len(), st.Animating, p.paused)
	if st.Edge != nil {
		fmt.Fprintf(&sb, "edge: %d -> %d %v\n", st.Edge.From, st.Edge.To, st.Edge.Effects())
	}
	fmt.Fprintf(&sb, "camera: x=%.0f z=%.0f\n", p.camera.X, p.camera.Z)
	for _, param := range p.effects.Params() {
		fmt.Fprintf(&sb, "%-8s %.3f\n", param.Name, param.Value)
	}
	fmt.Fprintf(&sb, "last: %s %d -> %d\n", p.lastEvent.Type, p.lastEvent.From, p.lastEvent.To)
	return sb.String()
}

// drawHUD draws the debug overlay in the top-left corner.
func (p *Presentation) drawHUD(screen *ebiten.Image) {
	msg := p.hudText(ebiten.ActualFPS(), ebiten.ActualTPS())
	lines := strings.Count(msg, "\n") + 1
	// ebitenutil.DebugPrint glyphs are 6x16.
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(260, float64(lines*16))
	op.ColorScale.ScaleAlpha(0.5)
	screen.DrawImage(p.renderer.pixel, op)
	ebitenutil.DebugPrint(screen, msg)
}
