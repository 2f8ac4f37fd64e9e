// Package levels parses level sources into tile maps. A source is a
// rectangular grid of runes, one tile per rune.
package levels

// Kind is the meaning of one cell in a level source.
type Kind uint8

const (
	Empty Kind = iota
	Block
	Platform
	Paintable
	Start
	Exit
	Enemy
)

var kindNames = [...]string{
	Empty:     "empty",
	Block:     "block",
	Platform:  "platform",
	Paintable: "paintable",
	Start:     "start",
	Exit:      "exit",
	Enemy:     "enemy",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Point is a tile coordinate.
type Point struct {
	X, Y int
}

// Map is a validated level: rectangular, one start, one exit.
type Map struct {
	Name   string
	Width  int
	Height int
	// Cells is row-major, len Width*Height.
	Cells   []Kind
	Start   Point
	Exit    Point
	Enemies []Point
	// Unknown counts runes that were mapped to Empty in tolerant mode.
	Unknown int
}

// At returns the cell at (x, y). Out of range cells are Empty.
func (m *Map) At(x, y int) Kind {
	if m == nil || x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return Empty
	}
	return m.Cells[y*m.Width+x]
}

// Solid reports whether something can stand on the cell.
func (k Kind) Solid() bool {
	return k == Block || k == Platform || k == Paintable
}

// Grounded reports whether the cell under p is solid. The row below the
// map counts as solid, the same as an out of grid collision query.
func (m *Map) Grounded(p Point) bool {
	if p.Y+1 >= m.Height {
		return true
	}
	return m.At(p.X, p.Y+1).Solid()
}
