package obj

import "github.com/milk9111/pandamonium/levels"

// TileCollision controls how a tile reacts to bodies moving into it.
type TileCollision int

const (
	// Passable tiles never block anything.
	Passable TileCollision = iota
	// Impassable tiles block movement from every side.
	Impassable
	// Platform tiles block only from above.
	Platform
	// Paintable tiles block like Impassable.
	Paintable
	// Padlock tiles only stop a body that lands on them. No level character
	// produces one yet; the resolver handles it for grids built in code.
	Padlock
)

func (c TileCollision) String() string {
	switch c {
	case Passable:
		return "passable"
	case Impassable:
		return "impassable"
	case Platform:
		return "platform"
	case Paintable:
		return "paintable"
	case Padlock:
		return "padlock"
	}
	return "unknown"
}

// Blocks reports whether the tile stops movement on both axes.
func (c TileCollision) Blocks() bool {
	return c == Impassable || c == Paintable
}

// Tile is one cell of the level grid. It does not change after load.
type Tile struct {
	Collision TileCollision
	// Texture is the key the renderer draws for this tile; empty means none.
	Texture string
}

func (t Tile) HasVisual() bool {
	return t.Texture != ""
}

const (
	TextureBlock     = "block"
	TexturePlatform  = "platform"
	TexturePaintable = "paintable"
	TextureExit      = "exit"
)

func tileFor(kind levels.Kind) Tile {
	switch kind {
	case levels.Block:
		return Tile{Collision: Impassable, Texture: TextureBlock}
	case levels.Platform:
		return Tile{Collision: Platform, Texture: TexturePlatform}
	case levels.Paintable:
		return Tile{Collision: Paintable, Texture: TexturePaintable}
	case levels.Exit:
		return Tile{Collision: Passable, Texture: TextureExit}
	}
	// start and enemy cells only mark spawn points
	return Tile{Collision: Passable}
}
