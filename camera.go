package parallax

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera that looks down -Z with no rotation.
// Transitions move it along X (between slides) and Z (the swoop).
type Camera struct {
	// X, Y and Z are the world-space camera position.
	X, Y, Z float64
	// FOV is the vertical field of view in degrees.
	FOV float64
	// Near and Far bound the projected depth range.
	Near, Far float64
	// RestZ is the depth the camera returns to between transitions.
	RestZ float64
	// Viewport is the screen-space rectangle this camera renders into.
	Viewport Rect

	aspect float64
	proj   mgl64.Mat4
}

// NewCamera creates a camera at (0, 0, restZ) for a viewport of w x h pixels.
func NewCamera(fov, restZ float64, w, h int) *Camera {
	c := &Camera{
		Z:     restZ,
		FOV:   fov,
		Near:  1,
		Far:   10000,
		RestZ: restZ,
	}
	c.Resize(w, h)
	return c
}

// Resize updates the viewport, aspect ratio and projection matrix.
func (c *Camera) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	c.Viewport = Rect{Width: float64(w), Height: float64(h)}
	c.aspect = float64(w) / float64(h)
	c.proj = mgl64.Perspective(mgl64.DegToRad(c.FOV), c.aspect, c.Near, c.Far)
}

// Aspect returns the viewport width divided by its height.
func (c *Camera) Aspect() float64 {
	return c.aspect
}

// Position returns the camera position as a vector.
func (c *Camera) Position() mgl64.Vec3 {
	return mgl64.Vec3{c.X, c.Y, c.Z}
}

// View returns the world-to-camera matrix.
func (c *Camera) View() mgl64.Mat4 {
	return mgl64.Translate3D(-c.X, -c.Y, -c.Z)
}

// Projection returns the perspective matrix for the current viewport.
func (c *Camera) Projection() mgl64.Mat4 {
	return c.proj
}

// Project maps a world-space point to screen coordinates, Y down. ok is
// false when the point is in front of the near plane. scale is the screen
// size of one world unit at that depth.
func (c *Camera) Project(p mgl64.Vec3) (sx, sy, scale float64, ok bool) {
	view := c.View()
	depth := -view.Mul4x1(p.Vec4(1)).Z()
	if depth < c.Near || c.aspect == 0 {
		return 0, 0, 0, false
	}
	vp := c.Viewport
	win := mgl64.Project(p, view, c.proj, int(vp.X), 0, int(vp.Width), int(vp.Height))
	// Project follows the GL convention of Y up from the bottom edge.
	sx = win.X()
	sy = vp.Y + vp.Height - win.Y()
	scale = c.proj.At(1, 1) * vp.Height / 2 / depth
	return sx, sy, scale, true
}
