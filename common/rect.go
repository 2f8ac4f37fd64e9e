package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// Rect is an axis-aligned box in whole world pixels. Right and Bottom are
// exclusive, so two rects that only share an edge do not intersect.
type Rect struct {
	X, Y          int
	Width, Height int
}

func (r Rect) Left() int   { return r.X }
func (r Rect) Right() int  { return r.X + r.Width }
func (r Rect) Top() int    { return r.Y }
func (r Rect) Bottom() int { return r.Y + r.Height }

// Center returns the integer centre point.
func (r Rect) Center() (int, int) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// BottomCenter returns the middle of the bottom edge in world space. Spawn
// points are anchored here so sprites stand on the tile below.
func (r Rect) BottomCenter() cp.Vector {
	return cp.Vector{X: float64(r.X) + float64(r.Width)/2.0, Y: float64(r.Bottom())}
}

func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

func (r Rect) Intersects(other Rect) bool {
	return other.Left() < r.Right() &&
		r.Left() < other.Right() &&
		other.Top() < r.Bottom() &&
		r.Top() < other.Bottom()
}

// Contains reports whether the point lies inside r.
func (r Rect) Contains(x, y int) bool {
	return r.X <= x && x < r.Right() && r.Y <= y && y < r.Bottom()
}

// BB converts r into a chipmunk bounding box. Chipmunk is y-up but only the
// ordering matters for overlap queries, so B holds the top edge.
func (r Rect) BB() cp.BB {
	return cp.BB{L: float64(r.Left()), B: float64(r.Top()), R: float64(r.Right()), T: float64(r.Bottom())}
}

// RectAround builds the world rect of a body positioned by its sprite origin.
// local is the collision box relative to the frame's top-left corner.
// Position components are rounded to whole pixels.
func RectAround(pos cp.Vector, originX, originY float64, local Rect) Rect {
	left := int(math.Round(pos.X-originX)) + local.X
	top := int(math.Round(pos.Y-originY)) + local.Y
	return Rect{X: left, Y: top, Width: local.Width, Height: local.Height}
}

// IntersectionDepth returns how far a overlaps b on each axis. The zero
// vector means no overlap. Otherwise each component is the overlap extent,
// signed so that adding it to a's position separates the two rects on that
// axis (positive when a's centre lies right of or below b's).
func IntersectionDepth(a, b Rect) cp.Vector {
	halfWidthA := float64(a.Width) / 2.0
	halfHeightA := float64(a.Height) / 2.0
	halfWidthB := float64(b.Width) / 2.0
	halfHeightB := float64(b.Height) / 2.0

	centerA := cp.Vector{X: float64(a.Left()) + halfWidthA, Y: float64(a.Top()) + halfHeightA}
	centerB := cp.Vector{X: float64(b.Left()) + halfWidthB, Y: float64(b.Top()) + halfHeightB}

	distanceX := centerA.X - centerB.X
	distanceY := centerA.Y - centerB.Y
	minDistanceX := halfWidthA + halfWidthB
	minDistanceY := halfHeightA + halfHeightB

	if math.Abs(distanceX) >= minDistanceX || math.Abs(distanceY) >= minDistanceY {
		return cp.Vector{}
	}

	var depth cp.Vector
	if distanceX > 0 {
		depth.X = minDistanceX - distanceX
	} else {
		depth.X = -minDistanceX - distanceX
	}
	if distanceY > 0 {
		depth.Y = minDistanceY - distanceY
	} else {
		depth.Y = -minDistanceY - distanceY
	}
	return depth
}
