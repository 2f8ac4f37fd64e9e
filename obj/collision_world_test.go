package obj

import (
	"testing"

	"github.com/milk9111/pandamonium/common"
	"github.com/stretchr/testify/assert"
)

func TestGetCollisionOutsideGridIsImpassable(t *testing.T) {
	l := mustLevel(t,
		"......",
		".1..x.",
		"------",
	)

	outside := [][2]int{
		{-1, 0}, {0, -1}, {-1, -1},
		{6, 0}, {0, 3}, {6, 3},
		{-100, 1}, {100, 1}, {2, 1000},
	}
	for _, pt := range outside {
		assert.Equal(t, Impassable, l.GetCollision(pt[0], pt[1]), "tile %v", pt)
	}

	assert.Equal(t, Passable, l.GetCollision(0, 0))
	assert.Equal(t, Passable, l.GetCollision(1, 1))
	assert.Equal(t, Passable, l.GetCollision(4, 1))
	assert.Equal(t, Platform, l.GetCollision(3, 2))
}

func TestGetBounds(t *testing.T) {
	l := mustLevel(t, "1x", "oo")
	assert.Equal(t, common.Rect{X: 32, Y: 64, Width: 32, Height: 32}, l.GetBounds(1, 2))
	assert.Equal(t, common.Rect{X: -32, Y: 0, Width: 32, Height: 32}, l.GetBounds(-1, 0))
}

func TestTilesFromMap(t *testing.T) {
	l := mustLevel(t,
		"1x-#Q.",
		"oooooo",
	)

	tests := []struct {
		x         int
		collision TileCollision
		texture   string
	}{
		{x: 0, collision: Passable},
		{x: 1, collision: Passable, texture: TextureExit},
		{x: 2, collision: Platform, texture: TexturePlatform},
		{x: 3, collision: Paintable, texture: TexturePaintable},
		{x: 4, collision: Passable},
		{x: 5, collision: Passable},
	}
	for _, tt := range tests {
		tile := l.Tile(tt.x, 0)
		assert.Equal(t, tt.collision, tile.Collision, "x=%d", tt.x)
		assert.Equal(t, tt.texture, tile.Texture, "x=%d", tt.x)
		assert.Equal(t, tt.texture != "", tile.HasVisual(), "x=%d", tt.x)
	}
	assert.Equal(t, Tile{Collision: Impassable, Texture: TextureBlock}, l.Tile(0, 1))
}

func TestMergedBoxesMatchExhaustiveSweep(t *testing.T) {
	l := mustLevel(t,
		"o..........o",
		"o..ooo.....o",
		"o..ooo..-#-o",
		"o1........xo",
		"oooo..oooooo",
		"oooo..oooooo",
	)
	world := l.World()

	solid := 0
	for x := 0; x < world.Width(); x++ {
		for y := 0; y < world.Height(); y++ {
			if world.GetCollision(x, y) != Passable {
				solid++
			}
		}
	}
	assert.Less(t, world.Boxes(), solid)

	w, h := world.PixelSize()
	sizes := []common.Rect{
		{Width: 8, Height: 8},
		{Width: 1, Height: 1},
		{Width: 40, Height: 20},
		{Width: 25, Height: 51},
	}
	for _, size := range sizes {
		for y := -48; y < h+48; y += 5 {
			for x := -48; x < w+48; x += 5 {
				r := common.Rect{X: x, Y: y, Width: size.Width, Height: size.Height}
				if !assert.Equal(t, overlapsSolidSweep(world, r), world.OverlapsSolid(r), "rect %v", r) {
					return
				}
			}
		}
	}
}

func TestOverlapsSolidIgnoresTouchingEdges(t *testing.T) {
	l := mustLevel(t, "1..x", "oooo")
	world := l.World()

	assert.False(t, world.OverlapsSolid(common.Rect{X: 0, Y: 24, Width: 8, Height: 8}))
	assert.True(t, world.OverlapsSolid(common.Rect{X: 0, Y: 25, Width: 8, Height: 8}))
	assert.False(t, world.OverlapsSolid(common.Rect{X: 200, Y: 40, Width: 8, Height: 8}))
}

// overlapsSolidSweep is the exhaustive tile scan OverlapsSolid must agree with.
func overlapsSolidSweep(cw *CollisionWorld, r common.Rect) bool {
	for x := 0; x < cw.width; x++ {
		for y := 0; y < cw.height; y++ {
			if cw.tiles[x][y].Collision == Passable {
				continue
			}
			if r.Intersects(cw.GetBounds(x, y)) {
				return true
			}
		}
	}
	return false
}
