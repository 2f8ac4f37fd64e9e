package obj

import "github.com/milk9111/pandamonium/common"

// Camera scrolls the view horizontally to keep a target inside a central
// band of the viewport.
type Camera struct {
	// X is the world-space left edge of the view.
	X float64

	viewportW int
	// fraction of the viewport on each side that pushes the camera
	margin float64
	// world width in pixels (0 means unbounded)
	worldW float64
}

// NewCamera creates a camera for a viewport of the given pixel width.
func NewCamera(viewportW int, margin float64) *Camera {
	return &Camera{viewportW: viewportW, margin: margin}
}

// SetWorldBounds sets the world pixel width used for clamping.
func (c *Camera) SetWorldBounds(w int) {
	c.worldW = float64(w)
	c.X = c.clamp(c.X)
}

// SetViewportWidth updates the logical screen width.
func (c *Camera) SetViewportWidth(w int) {
	if w <= 0 {
		return
	}
	c.viewportW = w
	c.X = c.clamp(c.X)
}

func (c *Camera) ViewportWidth() int { return c.viewportW }

// Update moves the view just far enough that targetX sits inside the band
// between the margins.
func (c *Camera) Update(targetX float64) {
	marginWidth := float64(c.viewportW) * c.margin
	marginLeft := c.X + marginWidth
	marginRight := c.X + float64(c.viewportW) - marginWidth

	movement := 0.0
	if targetX < marginLeft {
		movement = targetX - marginLeft
	} else if targetX > marginRight {
		movement = targetX - marginRight
	}
	c.X = c.clamp(c.X + movement)
}

// SnapTo places the view so targetX is centred, within bounds.
func (c *Camera) SnapTo(targetX float64) {
	c.X = c.clamp(targetX - float64(c.viewportW)/2.0)
}

// clamp keeps the view inside [0, worldW-viewportW]. A world narrower than
// the viewport pins the view to 0.
func (c *Camera) clamp(x float64) float64 {
	if c.worldW <= 0 {
		return x
	}
	maxX := c.worldW - float64(c.viewportW)
	if maxX < 0 {
		maxX = 0
	}
	return common.Clamp(x, 0, maxX)
}
