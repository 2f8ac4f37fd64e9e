package obj

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/pandamonium/common"
	"github.com/milk9111/pandamonium/prefabs"
)

// Bullet travels in a straight horizontal line at a fixed speed per tick.
type Bullet struct {
	Position  cp.Vector
	Direction int
	Speed     float64
	Active    bool

	width  int
	height int
}

func NewBullet(pos cp.Vector, direction int, spec prefabs.BulletSpec) *Bullet {
	if direction < 0 {
		direction = -1
	} else {
		direction = 1
	}
	return &Bullet{
		Position:  pos,
		Direction: direction,
		Speed:     spec.Speed,
		Active:    true,
		width:     spec.Width,
		height:    spec.Height,
	}
}

// Update advances the bullet one tick and deactivates it once it leaves the
// level. The level edges themselves are still inside.
func (b *Bullet) Update(levelWidth, levelHeight int) {
	if b == nil || !b.Active {
		return
	}
	b.Position.X += b.Speed * float64(b.Direction)

	if b.Position.X > float64(levelWidth) || b.Position.X < 0 ||
		b.Position.Y > float64(levelHeight) || b.Position.Y < 0 {
		b.Active = false
	}
}

// BoundingRect is centred on the bullet position.
func (b *Bullet) BoundingRect() common.Rect {
	return common.Rect{
		X:      int(b.Position.X) - b.width/2,
		Y:      int(b.Position.Y) - b.height/2,
		Width:  b.width,
		Height: b.height,
	}
}

// compactBullets drops inactive bullets in place, keeping order.
func compactBullets(bullets []*Bullet) []*Bullet {
	writeIdx := 0
	for _, b := range bullets {
		if b == nil || !b.Active {
			continue
		}
		bullets[writeIdx] = b
		writeIdx++
	}
	for i := writeIdx; i < len(bullets); i++ {
		bullets[i] = nil
	}
	return bullets[:writeIdx]
}
