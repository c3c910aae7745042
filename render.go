package parallax

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

// assets holds the images and font supplied by the caller.
type assets struct {
	slides []*ebiten.Image
	mask   *ebiten.Image
	font   *TTFFont

	// masked[slide] is the slide texture clipped by the mask, built lazily.
	masked      []*ebiten.Image
	placeholder []*ebiten.Image
}

func (a *assets) dispose() {
	for _, img := range a.masked {
		if img != nil {
			img.Deallocate()
		}
	}
	for _, img := range a.placeholder {
		if img != nil {
			img.Deallocate()
		}
	}
	a.masked = nil
	a.placeholder = nil
}

// SetSlideImage sets the texture of slide i. Slides without a texture are
// drawn with a generated gradient.
func (p *Presentation) SetSlideImage(i int, img *ebiten.Image) error {
	if err := p.engine.Slides().check(i); err != nil {
		return err
	}
	for len(p.assets.slides) <= i {
		p.assets.slides = append(p.assets.slides, nil)
	}
	p.assets.slides[i] = img
	p.invalidateMasked(i)
	return nil
}

// SetMaskImage sets the image whose alpha clips the upper layers of every
// slide. Nil restores the generated soft-ellipse mask.
func (p *Presentation) SetMaskImage(img *ebiten.Image) {
	p.assets.mask = img
	for i := range p.assets.masked {
		p.invalidateMasked(i)
	}
}

// SetFont sets the overlay font.
func (p *Presentation) SetFont(f *TTFFont) {
	p.assets.font = f
}

func (p *Presentation) invalidateMasked(i int) {
	if i < len(p.assets.masked) && p.assets.masked[i] != nil {
		p.assets.masked[i].Deallocate()
		p.assets.masked[i] = nil
	}
}

// slideTexture returns the texture of slide i, generating a placeholder if
// none was set.
func (p *Presentation) slideTexture(i int) *ebiten.Image {
	if i < len(p.assets.slides) && p.assets.slides[i] != nil {
		return p.assets.slides[i]
	}
	for len(p.assets.placeholder) <= i {
		p.assets.placeholder = append(p.assets.placeholder, nil)
	}
	if p.assets.placeholder[i] == nil {
		p.assets.placeholder[i] = gradientImage(i, p.engine.Slides().Len())
	}
	return p.assets.placeholder[i]
}

// maskedTexture returns slide i's texture clipped by the mask.
func (p *Presentation) maskedTexture(i int) *ebiten.Image {
	for len(p.assets.masked) <= i {
		p.assets.masked = append(p.assets.masked, nil)
	}
	if p.assets.masked[i] != nil {
		return p.assets.masked[i]
	}
	tex := p.slideTexture(i)
	mask := p.assets.mask
	if mask == nil {
		mask = defaultMask()
	}
	b := tex.Bounds()
	img := ebiten.NewImage(b.Dx(), b.Dy())
	img.DrawImage(tex, nil)

	op := &ebiten.DrawImageOptions{Blend: blendMask, Filter: ebiten.FilterLinear}
	mb := mask.Bounds()
	op.GeoM.Scale(float64(b.Dx())/float64(mb.Dx()), float64(b.Dy())/float64(mb.Dy()))
	img.DrawImage(mask, op)

	p.assets.masked[i] = img
	return img
}

var defaultMaskImage *ebiten.Image

// defaultMask is a soft ellipse: opaque in the center, fading out at 60% of
// the half extents.
func defaultMask() *ebiten.Image {
	if defaultMaskImage != nil {
		return defaultMaskImage
	}
	const w, h = 256, 144
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			dx := (float64(x) + 0.5 - w/2) / (w / 2)
			dy := (float64(y) + 0.5 - h/2) / (h / 2)
			d := math.Sqrt(dx*dx + dy*dy)
			a := clamp01((0.75 - d) / 0.25)
			v := uint8(a * 255)
			rgba.SetRGBA(x, y, color.RGBA{v, v, v, v})
		}
	}
	defaultMaskImage = ebiten.NewImageFromImage(rgba)
	return defaultMaskImage
}

// gradientImage generates a vertical two-tone gradient for slide i of n.
func gradientImage(i, n int) *ebiten.Image {
	const w, h = 192, 108
	hue := float64(i) / float64(max(n, 1))
	top := hsv(hue, 0.55, 0.85)
	bottom := hsv(hue+0.08, 0.75, 0.35)
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		t := float64(y) / float64(h-1)
		c := Color{
			R: lerp(top.R, bottom.R, t),
			G: lerp(top.G, bottom.G, t),
			B: lerp(top.B, bottom.B, t),
			A: 1,
		}.toRGBA()
		for x := 0; x < w; x++ {
			rgba.SetRGBA(x, y, c)
		}
	}
	return ebiten.NewImageFromImage(rgba)
}

// hsv converts hue (wrapped to [0,1)), saturation and value to a Color.
func hsv(h, s, v float64) Color {
	h = h - math.Floor(h)
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)
	switch int(i) % 6 {
	case 0:
		return Color{v, t, p, 1}
	case 1:
		return Color{q, v, p, 1}
	case 2:
		return Color{p, v, t, 1}
	case 3:
		return Color{p, q, v, 1}
	case 4:
		return Color{t, p, v, 1}
	default:
		return Color{v, p, q, 1}
	}
}

// --- Projected layers ---

// layerGrid is the number of cells per side each layer plane is split into.
// Every grid vertex is projected, so the two affine triangles of a cell stay
// close to the true perspective mapping.
const layerGrid = 8

const layerVerts = (layerGrid + 1) * (layerGrid + 1)

// quad is one layer projected to screen space.
type quad struct {
	slide  int
	masked bool
	depth  float64 // camera distance of the layer center; larger is farther
	// pts[row*(layerGrid+1)+col] is the projected grid vertex; row 0 is the
	// top edge.
	pts [layerVerts]Vec2
}

// projectLayers projects every visible layer and sorts them back to front.
func (p *Presentation) projectLayers(buf []quad) []quad {
	buf = buf[:0]
	w := p.cfg.PlaneWidth
	h := p.cfg.PlaneHeight
	cam := p.camera

	for gi := range p.groups {
		g := &p.groups[gi]
		model := g.Model()
		for li := range g.Layers {
			z := g.Layers[li].Z
			q := quad{slide: gi, masked: g.Layers[li].Masked}
			visible := true
		grid:
			for row := 0; row <= layerGrid; row++ {
				v := float64(row) / layerGrid
				for col := 0; col <= layerGrid; col++ {
					u := float64(col) / layerGrid
					local := Vec2{(u - 0.5) * w, (0.5 - v) * h}
					sx, sy, _, ok := cam.Project(layerPoint(model, z, local))
					if !ok {
						visible = false
						break grid
					}
					q.pts[row*(layerGrid+1)+col] = Vec2{sx, sy}
				}
			}
			if !visible || !quadOnScreen(q.pts[:], cam.Viewport) {
				continue
			}
			center := layerPoint(model, z, Vec2{})
			q.depth = cam.Z - center.Z()
			buf = append(buf, q)
		}
	}
	sort.SliceStable(buf, func(i, j int) bool { return buf[i].depth > buf[j].depth })
	return buf
}

func quadOnScreen(pts []Vec2, vp Rect) bool {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, pt := range pts {
		minX = math.Min(minX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxX = math.Max(maxX, pt.X)
		maxY = math.Max(maxY, pt.Y)
	}
	return maxX >= vp.X && minX <= vp.X+vp.Width &&
		maxY >= vp.Y && minY <= vp.Y+vp.Height
}

// layerIndices triangulates the layer grid, two triangles per cell.
func layerIndices() []uint16 {
	idx := make([]uint16, 0, layerGrid*layerGrid*6)
	for row := 0; row < layerGrid; row++ {
		for col := 0; col < layerGrid; col++ {
			tl := uint16(row*(layerGrid+1) + col)
			tr := tl + 1
			bl := tl + layerGrid + 1
			br := bl + 1
			idx = append(idx, tl, tr, br, tl, br, bl)
		}
	}
	return idx
}

// --- Renderer ---

// renderer owns the offscreen targets and the post-processing chain.
type renderer struct {
	scene   *ebiten.Image
	ping    *ebiten.Image
	pong    *ebiten.Image
	filters []Filter
	pixel   *ebiten.Image // 1x1 black, scaled for solid rectangles

	quads    []quad
	vertices [layerVerts]ebiten.Vertex
	indices  []uint16
	triOp    ebiten.DrawTrianglesOptions
}

func newRenderer(effects *EffectSet, w, h int) *renderer {
	r := &renderer{
		indices: layerIndices(),
	}
	r.triOp.Filter = ebiten.FilterLinear
	r.pixel = ebiten.NewImage(1, 1)
	r.pixel.Fill(color.Black)
	for _, param := range effects.Params() {
		if f := newEffectFilter(param); f != nil {
			r.filters = append(r.filters, f)
		}
	}
	r.resize(w, h)
	return r
}

func (r *renderer) resize(w, h int) {
	for _, img := range []*ebiten.Image{r.scene, r.ping, r.pong} {
		if img != nil {
			img.Deallocate()
		}
	}
	r.scene = ebiten.NewImage(w, h)
	r.ping = ebiten.NewImage(w, h)
	r.pong = ebiten.NewImage(w, h)
	for _, f := range r.filters {
		f.Resize(w, h)
	}
}

func (r *renderer) dispose() {
	for _, img := range []*ebiten.Image{r.scene, r.ping, r.pong} {
		if img != nil {
			img.Deallocate()
		}
	}
	r.pixel.Deallocate()
	r.scene, r.ping, r.pong, r.pixel = nil, nil, nil, nil
	r.filters = nil
}

// postProcess runs the filter chain over r.scene and returns the result.
func (r *renderer) postProcess() *ebiten.Image {
	src := r.scene
	targets := [2]*ebiten.Image{r.ping, r.pong}
	for i, f := range r.filters {
		dst := targets[i%2]
		dst.Clear()
		f.Apply(src, dst)
		src = dst
	}
	return src
}

// drawLayer maps tex onto the projected grid of q.
func (r *renderer) drawLayer(dst, tex *ebiten.Image, q *quad) {
	b := tex.Bounds()
	tw, th := float64(b.Dx()), float64(b.Dy())
	for row := 0; row <= layerGrid; row++ {
		v := float64(row) / layerGrid
		for col := 0; col <= layerGrid; col++ {
			u := float64(col) / layerGrid
			i := row*(layerGrid+1) + col
			r.vertices[i] = ebiten.Vertex{
				DstX:   float32(q.pts[i].X),
				DstY:   float32(q.pts[i].Y),
				SrcX:   float32(float64(b.Min.X) + u*tw),
				SrcY:   float32(float64(b.Min.Y) + v*th),
				ColorR: 1, ColorG: 1, ColorB: 1, ColorA: 1,
			}
		}
	}
	dst.DrawTriangles(r.vertices[:], r.indices, tex, &r.triOp)
}

// Draw implements ebiten.Game. It renders the current camera, layer and
// effect state; it never changes transition state.
func (p *Presentation) Draw(screen *ebiten.Image) {
	if p.disposed {
		return
	}
	b := screen.Bounds()
	if p.renderer == nil {
		p.renderer = newRenderer(p.effects, b.Dx(), b.Dy())
	} else if sb := p.renderer.scene.Bounds(); sb.Dx() != b.Dx() || sb.Dy() != b.Dy() {
		p.renderer.resize(b.Dx(), b.Dy())
	}
	r := p.renderer

	r.scene.Fill(p.ClearColor.toRGBA())
	r.quads = p.projectLayers(r.quads)
	for i := range r.quads {
		q := &r.quads[i]
		tex := p.slideTexture(q.slide)
		if q.masked {
			tex = p.maskedTexture(q.slide)
		}
		r.drawLayer(r.scene, tex, q)
	}

	screen.DrawImage(r.postProcess(), nil)
	p.drawOverlay(screen)
	if p.hud {
		p.drawHUD(screen)
	}
	p.flushScreenshots(screen)
}
