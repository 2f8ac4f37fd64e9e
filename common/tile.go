package common

const (
	TileWidth  = 32
	TileHeight = 32

	BaseWidth  = 1280
	BaseHeight = 720
)

// TileBounds returns the world rect of tile (x, y).
func TileBounds(x, y int) Rect {
	return Rect{X: x * TileWidth, Y: y * TileHeight, Width: TileWidth, Height: TileHeight}
}

// TileSpan is an inclusive range of tile indices.
type TileSpan struct {
	Left, Right int
	Top, Bottom int
}

// TilesCovering returns the inclusive tile range overlapped by r.
func TilesCovering(r Rect) TileSpan {
	return TileSpan{
		Left:   FloorDiv(r.Left(), TileWidth),
		Right:  CeilDiv(r.Right(), TileWidth) - 1,
		Top:    FloorDiv(r.Top(), TileHeight),
		Bottom: CeilDiv(r.Bottom(), TileHeight) - 1,
	}
}
