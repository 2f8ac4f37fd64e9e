package obj

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pandamonium/common"
)

// TileResolution is the outcome of pushing a body out of the tile grid.
type TileResolution struct {
	Position cp.Vector
	OnGround bool
	// PreviousBottom is the bottom edge after resolution, fed back in on the
	// next tick for ground detection.
	PreviousBottom int
}

// ResolveTiles pushes the body described by bounds out of every non-passable
// tile it overlaps. Each tile is resolved along its shallower axis, except
// platforms which always resolve vertically and only when the body was
// above them last tick. Tiles are visited row by row, left to right, and the
// bounds are recomputed after every correction.
func ResolveTiles(q CollisionQuery, pos cp.Vector, bounds func(cp.Vector) common.Rect, previousBottom int) TileResolution {
	res := TileResolution{Position: pos}
	rect := bounds(pos)
	span := common.TilesCovering(rect)

	for y := span.Top; y <= span.Bottom; y++ {
		for x := span.Left; x <= span.Right; x++ {
			collision := q.GetCollision(x, y)
			if collision == Passable {
				continue
			}

			tileBounds := q.GetBounds(x, y)
			depth := common.IntersectionDepth(rect, tileBounds)
			if depth.Equal(cp.Vector{}) {
				continue
			}

			absDepthX := math.Abs(depth.X)
			absDepthY := math.Abs(depth.Y)
			if absDepthY < absDepthX || collision == Platform {
				if previousBottom <= tileBounds.Top() {
					res.OnGround = true
				}
				// platforms and padlocks only hold a body that lands on them
				if collision.Blocks() || res.OnGround {
					res.Position.Y += depth.Y
					rect = bounds(res.Position)
				}
			} else if collision.Blocks() {
				res.Position.X += depth.X
				rect = bounds(res.Position)
			}
		}
	}

	res.PreviousBottom = rect.Bottom()
	return res
}
