// Package parallax is a layered-slide presentation for [Ebitengine]: each
// slide is a stack of image planes in a 3D scene, and a click moves a
// perspective camera from one slide to the next with a depth swoop, a short
// burst of screen-space distortion and a crossfade of the caption.
//
// # Quick start
//
// The simplest way to get started is [Run], which opens a window and runs
// the loop for you:
//
//	p, err := parallax.NewPresentation(parallax.DefaultConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	parallax.Run(p, parallax.RunConfig{Title: "Slides", Width: 1280, Height: 720})
//
// [Presentation] implements [ebiten.Game], so it can also be driven from an
// existing game loop.
//
// # Transitions
//
// [Engine] owns the transition state machine. At most one transition runs at
// a time. [Engine.RequestTransition] returns false while animating and the
// request is dropped, never queued. Each accepted request builds one
// timeline on the shared [Scheduler]:
//
//   - the camera pans on X to the target slide's offset
//   - the camera pulls in to Timing.PullDepth, then returns to rest depth
//   - every effect named by the edge's [Activation]s ramps 0 -> 1, then
//     settles back to 0
//   - the caption exits, swaps its text while invisible, and re-enters
//
// Which effects fire is decided by the [PolicyTable], keyed by the ordered
// (from, to) pair. The table is directional: an entry for 0 -> 1 says nothing
// about 1 -> 0, and pairs without an entry animate the camera only.
//
// # Effects
//
// [EffectSet] holds one scalar per distortion ([EffectRipple],
// [EffectCurtain], [EffectRGB]). The renderer runs one Kage [Filter] per
// parameter; a filter at 0 is a plain copy.
//
// # Configuration
//
// [LoadConfig] reads a YAML document on top of [DefaultConfig], so a file
// only needs the keys it changes:
//
//	slides:
//	  - label: "ONE"
//	    image: one.png
//	  - label: "TWO"
//	    image: two.png
//	edges:
//	  - from: 0
//	    to: 1
//	    effects:
//	      - {effect: ripple, direction: pulse, ease: inOutCubic}
//
// # Testing
//
// [LoadTestScript] plays a JSON script of clicks, slide requests, waits and
// screenshots. Use [Presentation.Tick] to drive the loop headless in unit
// tests.
//
// [Ebitengine]: https://ebitengine.org
package parallax
