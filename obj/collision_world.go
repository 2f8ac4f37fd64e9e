package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pandamonium/common"
)

// CollisionQuery is the read-only view of the tile grid that moving bodies
// collide against.
type CollisionQuery interface {
	GetCollision(x, y int) TileCollision
	GetBounds(x, y int) common.Rect
}

// CollisionWorld owns the tile grid. Non-passable tiles are also indexed as
// merged static boxes in a chipmunk space so overlap queries only visit
// nearby geometry.
type CollisionWorld struct {
	tiles  [][]Tile
	width  int
	height int

	space *cp.Space
	boxes int
}

// NewCollisionWorld takes ownership of tiles, indexed [x][y].
func NewCollisionWorld(tiles [][]Tile) *CollisionWorld {
	cw := &CollisionWorld{tiles: tiles, space: cp.NewSpace()}
	cw.width = len(tiles)
	if cw.width > 0 {
		cw.height = len(tiles[0])
	}
	cw.buildStaticShapes()
	return cw
}

// Width is the grid width in tiles.
func (cw *CollisionWorld) Width() int { return cw.width }

// Height is the grid height in tiles.
func (cw *CollisionWorld) Height() int { return cw.height }

// PixelSize returns the level extents in world pixels.
func (cw *CollisionWorld) PixelSize() (int, int) {
	return cw.width * common.TileWidth, cw.height * common.TileHeight
}

// Tile returns the tile at (x, y). Outside the grid it returns a textureless
// Impassable tile.
func (cw *CollisionWorld) Tile(x, y int) Tile {
	if x < 0 || x >= cw.width || y < 0 || y >= cw.height {
		return Tile{Collision: Impassable}
	}
	return cw.tiles[x][y]
}

// GetCollision returns the collision class of tile (x, y). Everything outside
// the grid is Impassable so nothing can leave the level sideways.
func (cw *CollisionWorld) GetCollision(x, y int) TileCollision {
	return cw.Tile(x, y).Collision
}

func (cw *CollisionWorld) GetBounds(x, y int) common.Rect {
	return common.TileBounds(x, y)
}

// Boxes reports how many static boxes back the broadphase.
func (cw *CollisionWorld) Boxes() int { return cw.boxes }

// DrawShapes hands every static box to d.
func (cw *CollisionWorld) DrawShapes(d cp.Drawer) {
	if cw == nil || cw.space == nil || d == nil {
		return
	}
	cp.DrawSpace(cw.space, d)
}

func (cw *CollisionWorld) buildStaticShapes() {
	if cw.width == 0 || cw.height == 0 {
		return
	}

	// Greedily merge runs of non-passable tiles, width first then height, so
	// the index holds a few large boxes instead of one per tile.
	processed := make([]bool, cw.width*cw.height)
	solid := func(x, y int) bool {
		return !processed[y*cw.width+x] && cw.tiles[x][y].Collision != Passable
	}

	for y := 0; y < cw.height; y++ {
		for x := 0; x < cw.width; x++ {
			if !solid(x, y) {
				processed[y*cw.width+x] = true
				continue
			}

			w := 1
			for x+w < cw.width && solid(x+w, y) {
				w++
			}

			h := 1
		heightLoop:
			for y+h < cw.height {
				for xi := x; xi < x+w; xi++ {
					if !solid(xi, y+h) {
						break heightLoop
					}
				}
				h++
			}

			box := common.Rect{
				X:      x * common.TileWidth,
				Y:      y * common.TileHeight,
				Width:  w * common.TileWidth,
				Height: h * common.TileHeight,
			}
			shape := cp.NewBox2(cw.space.StaticBody, box.BB(), 0)
			shape.UserData = box
			cw.space.AddShape(shape)
			cw.boxes++

			for yy := y; yy < y+h; yy++ {
				for xx := x; xx < x+w; xx++ {
					processed[yy*cw.width+xx] = true
				}
			}
		}
	}
}

// OverlapsSolid reports whether r overlaps any non-passable tile. Touching
// edges do not count.
func (cw *CollisionWorld) OverlapsSolid(r common.Rect) bool {
	if cw.boxes == 0 || r.Empty() {
		return false
	}
	hit := false
	cw.space.BBQuery(r.BB(), cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if hit {
			return
		}
		box, ok := shape.UserData.(common.Rect)
		if ok && r.Intersects(box) {
			hit = true
		}
	}, nil)
	return hit
}
