package parallax

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// TTFFont wraps Ebitengine's text/v2 for TrueType font rendering.
type TTFFont struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("parallax: failed to parse TTF data: %w", err)
	}
	return &TTFFont{
		face:   &text.GoTextFace{Source: source, Size: size},
		source: source,
	}, nil
}

// Size returns the font size in pixels.
func (f *TTFFont) Size() float64 {
	return f.face.Size
}

// SetSize changes the font size.
func (f *TTFFont) SetSize(size float64) {
	f.face.Size = size
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	m := f.face.Metrics()
	return m.HAscent + m.HDescent + m.HLineGap
}

// MeasureString returns the width and height of the rendered text.
func (f *TTFFont) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.LineHeight())
}

// Face returns the underlying GoTextFace for direct Ebitengine text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}

// overlayFontScale is the label size as a fraction of the screen width.
const overlayFontScale = 0.06

// overlayFont returns the configured font, falling back to Go Regular,
// sized for the current screen width.
func (p *Presentation) overlayFont() *TTFFont {
	if p.assets.font == nil {
		f, err := LoadTTFFont(goregular.TTF, 32)
		if err != nil {
			panic("parallax: failed to load default font: " + err.Error())
		}
		p.assets.font = f
	}
	size := math.Max(8, float64(p.width)*overlayFontScale)
	if p.assets.font.Size() != size {
		p.assets.font.SetSize(size)
	}
	return p.assets.font
}

// overlayPosition returns the top-left corner of the label for a label of
// size w x h, including parallax and the crossfade shift.
func (p *Presentation) overlayPosition(w, h float64) (x, y float64) {
	x = float64(p.width)/2 - w/2 + p.textOffset.X
	y = float64(p.height)/2 - h/2 + p.textOffset.Y + p.overlay.Shift*h
	return x, y
}

// drawOverlay draws the label at the overlay's current shift and opacity.
func (p *Presentation) drawOverlay(screen *ebiten.Image) {
	o := p.overlay
	if o.Opacity <= 0 || o.Label == "" {
		return
	}
	f := p.overlayFont()
	w, h := f.MeasureString(o.Label)
	x, y := p.overlayPosition(w, h)

	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleAlpha(float32(o.Opacity))
	op.LineSpacing = f.LineHeight()
	text.Draw(screen, o.Label, f.Face(), op)
}
