package obj

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pandamonium/common"
	"github.com/milk9111/pandamonium/prefabs"
)

// Direction is the way an enemy is walking.
type Direction int

const (
	Left  Direction = -1
	Right Direction = 1
)

// enemyState is the interface each concrete enemy state implements.
type enemyState interface {
	OnPhysics(e *Enemy, elapsed float64)
	Name() string
}

// enemyWalkingState moves along the current direction until the tile ahead
// is a wall or a drop.
type enemyWalkingState struct{}

func (enemyWalkingState) Name() string { return "walking" }
func (enemyWalkingState) OnPhysics(e *Enemy, elapsed float64) {
	if e.blockedAhead() {
		e.waitTime = e.spec.MaxWaitTime
		e.state = stateEnemyWaiting
		return
	}
	e.Position.X += float64(e.direction) * e.spec.MoveSpeed * elapsed
}

// enemyWaitingState stands still, then turns around.
type enemyWaitingState struct{}

func (enemyWaitingState) Name() string { return "waiting" }
func (enemyWaitingState) OnPhysics(e *Enemy, elapsed float64) {
	e.waitTime = math.Max(0, e.waitTime-elapsed)
	if e.waitTime <= 0 {
		e.direction = -e.direction
		e.state = stateEnemyWalking
	}
}

// singletons for each state to avoid allocating on every transition
var (
	stateEnemyWalking enemyState = &enemyWalkingState{}
	stateEnemyWaiting enemyState = &enemyWaitingState{}
)

// Enemy patrols back and forth along the ground it was spawned on. It has no
// gravity; it relies on the level putting ground under it.
type Enemy struct {
	Position cp.Vector
	Active   bool

	spec  prefabs.EnemySpec
	query CollisionQuery

	localBounds common.Rect
	originX     float64
	originY     float64

	state     enemyState
	direction Direction
	waitTime  float64
}

// NewEnemy creates an active enemy standing at pos, facing left.
func NewEnemy(pos cp.Vector, query CollisionQuery, spec prefabs.EnemySpec) *Enemy {
	return &Enemy{
		Position:    pos,
		Active:      true,
		spec:        spec,
		query:       query,
		localBounds: colliderBounds(spec.Frame, spec.Collider),
		originX:     float64(spec.Frame.Width) / 2.0,
		originY:     float64(spec.Frame.Height),
		state:       stateEnemyWalking,
		direction:   Left,
	}
}

func (e *Enemy) Direction() Direction { return e.direction }

// Waiting reports whether the enemy is paused before turning around.
func (e *Enemy) Waiting() bool { return e.state == stateEnemyWaiting }

// WaitRemaining is how long the enemy will keep waiting.
func (e *Enemy) WaitRemaining() time.Duration {
	return prefabs.Seconds(e.waitTime)
}

func (e *Enemy) StateName() string { return e.state.Name() }

// BoundingRect is the collision box in world pixels.
func (e *Enemy) BoundingRect() common.Rect {
	return common.RectAround(e.Position, e.originX, e.originY, e.localBounds)
}

// Update advances the patrol by dt.
func (e *Enemy) Update(dt time.Duration) {
	if e == nil || !e.Active {
		return
	}
	e.state.OnPhysics(e, dt.Seconds())
}

// aheadTile is the tile half a body width ahead, on the row the enemy's feet
// rest in.
func (e *Enemy) aheadTile() (int, int) {
	dir := int(e.direction)
	posX := e.Position.X + float64(e.localBounds.Width/2*dir)
	tileX := int(math.Floor(posX/common.TileWidth)) - dir
	tileY := int(math.Floor(e.Position.Y / common.TileHeight))
	return tileX + dir, tileY
}

// blockedAhead reports a wall in front of the enemy or no ground to step on.
func (e *Enemy) blockedAhead() bool {
	x, y := e.aheadTile()
	return e.query.GetCollision(x, y-1) == Impassable ||
		e.query.GetCollision(x, y) == Passable
}

// compactEnemies drops inactive enemies in place, keeping order.
func compactEnemies(enemies []*Enemy) []*Enemy {
	writeIdx := 0
	for _, e := range enemies {
		if e == nil || !e.Active {
			continue
		}
		enemies[writeIdx] = e
		writeIdx++
	}
	for i := writeIdx; i < len(enemies); i++ {
		enemies[i] = nil
	}
	return enemies[:writeIdx]
}
