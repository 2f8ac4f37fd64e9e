package obj

import (
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pandamonium/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const enemyTick = 125 * time.Millisecond

func TestEnemyWaitsAtCliffThenTurns(t *testing.T) {
	l := mustLevel(t,
		"............",
		"............",
		".1.....x....",
		"oooo....oooo",
	)
	e := NewEnemy(cp.Vector{X: 266, Y: 96}, l.World(), prefabs.DefaultTuning().Enemy)
	require.Equal(t, Left, e.Direction())

	e.Update(enemyTick)
	require.True(t, e.Waiting())
	assert.Equal(t, 266.0, e.Position.X)
	assert.Equal(t, 500*time.Millisecond, e.WaitRemaining())

	for i := 0; i < 3; i++ {
		e.Update(enemyTick)
		assert.True(t, e.Waiting(), "tick %d", i)
		assert.Equal(t, Left, e.Direction(), "tick %d", i)
		assert.Equal(t, 266.0, e.Position.X, "tick %d", i)
	}

	e.Update(enemyTick)
	assert.False(t, e.Waiting())
	assert.Equal(t, Right, e.Direction())
	assert.Equal(t, 266.0, e.Position.X)

	e.Update(enemyTick)
	assert.Equal(t, 266.0+50*0.125, e.Position.X)
	assert.Equal(t, 96.0, e.Position.Y)
}

func TestEnemyWaitsAtWall(t *testing.T) {
	l := mustLevel(t,
		"..........",
		"..........",
		"1..o....x.",
		"oooooooooo",
	)
	e := NewEnemy(cp.Vector{X: 120, Y: 96}, l.World(), prefabs.DefaultTuning().Enemy)

	e.Update(enemyTick)
	assert.True(t, e.Waiting())
	assert.Equal(t, 120.0, e.Position.X)
}

func TestEnemyPatrolStaysOnPlatform(t *testing.T) {
	l := mustLevel(t,
		"............",
		"....Q.......",
		"...----.....",
		"............",
		".1.......x..",
		"oooooooooooo",
	)
	require.Len(t, l.Enemies(), 1)
	e := l.Enemies()[0]
	platformLeft := l.GetBounds(3, 2).Left()
	platformRight := l.GetBounds(6, 2).Right()

	turns := 0
	last := e.Direction()
	for i := 0; i < 600; i++ {
		e.Update(tick)
		assert.GreaterOrEqual(t, e.Position.X, float64(platformLeft))
		assert.LessOrEqual(t, e.Position.X, float64(platformRight))
		if e.Direction() != last {
			turns++
			last = e.Direction()
		}
	}
	assert.GreaterOrEqual(t, turns, 2)
}

func TestInactiveEnemyDoesNotMove(t *testing.T) {
	l := mustLevel(t, "1.......x", "ooooooooo")
	e := NewEnemy(cp.Vector{X: 144, Y: 32}, l.World(), prefabs.DefaultTuning().Enemy)
	e.Active = false
	e.Update(time.Second)
	assert.Equal(t, 144.0, e.Position.X)
}

func TestEnemyBoundingRect(t *testing.T) {
	l := mustLevel(t, "1.......x", "ooooooooo")
	e := NewEnemy(cp.Vector{X: 240, Y: 32}, l.World(), prefabs.DefaultTuning().Enemy)
	r := e.BoundingRect()
	assert.Equal(t, 22, r.Width)
	assert.Equal(t, 44, r.Height)
	assert.Equal(t, 32, r.Bottom())
	assert.Equal(t, 229, r.Left())
}
