package obj

import (
	"errors"
	"testing"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pandamonium/levels"
	"github.com/milk9111/pandamonium/prefabs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevelRejectsBadMaps(t *testing.T) {
	_, err := NewLevel(nil, prefabs.DefaultTuning())
	assert.True(t, errors.Is(err, ErrNilMap))

	_, err = NewLevel(&levels.Map{Width: 2, Height: 2, Cells: make([]levels.Kind, 3)}, prefabs.DefaultTuning())
	assert.Error(t, err)
}

func TestNewLevelSpawns(t *testing.T) {
	l := mustLevel(t,
		"..........",
		"..Q....x..",
		"...1..Q...",
		"oooooooooo",
	)

	assert.Equal(t, 10, l.Width())
	assert.Equal(t, 4, l.Height())
	assert.Equal(t, cp.Vector{X: 112, Y: 96}, l.Start())
	assert.Equal(t, l.Start(), l.Player().Position)

	ex, ey := l.Exit()
	assert.Equal(t, 7*32+16, ex)
	assert.Equal(t, 32+16, ey)

	require.Len(t, l.Enemies(), 2)
	assert.Equal(t, cp.Vector{X: 80, Y: 64}, l.Enemies()[0].Position)
	assert.Equal(t, cp.Vector{X: 208, Y: 96}, l.Enemies()[1].Position)
	assert.Equal(t, 60*time.Second, l.TimeRemaining())
}

func TestTimerCountsDownAndClamps(t *testing.T) {
	tuning := prefabs.DefaultTuning()
	tuning.Level.TimeLimit = 0.025
	l := newTestLevel(t, tuning, "1.....x", "ooooooo")
	step := TickInput{Elapsed: 10 * time.Millisecond}

	l.Update(step)
	assert.Equal(t, 15*time.Millisecond, l.TimeRemaining())
	l.Update(step)
	assert.Equal(t, 5*time.Millisecond, l.TimeRemaining())
	assert.False(t, l.TimedOut())

	l.Update(step)
	assert.Zero(t, l.TimeRemaining())
	assert.True(t, l.TimedOut())

	l.Update(step)
	assert.Zero(t, l.TimeRemaining())
}

func TestTimerPausesWhileDead(t *testing.T) {
	l := mustLevel(t,
		"..Q....",
		"1.oo..x",
		"ooooooo",
	)
	enemyBefore := l.Enemies()[0].Position
	l.Player().Kill()

	for i := 0; i < 10; i++ {
		l.Update(TickInput{MoveX: 1, FireHeld: true, Elapsed: tick})
	}
	assert.Equal(t, 60*time.Second, l.TimeRemaining())
	assert.Equal(t, enemyBefore, l.Enemies()[0].Position)
	assert.Empty(t, l.Player().Bullets())
	assert.Equal(t, l.Start(), l.Player().Position)

	l.StartNewLife()
	assert.True(t, l.Player().IsAlive())
	l.Update(idleTick())
	assert.Equal(t, 60*time.Second-tick, l.TimeRemaining())
}

func TestDeadPlayerStillFalls(t *testing.T) {
	l := mustLevel(t,
		"1.....",
		"......",
		"......",
		".....x",
		"oooooo",
	)
	p := l.Player()
	startY := p.Position.Y
	p.Kill()

	for i := 0; i < 60; i++ {
		l.Update(idleTick())
	}
	assert.Greater(t, p.Position.Y, startY)
	assert.True(t, p.IsOnGround())
}

func exitLevel(t *testing.T) *Level {
	// the exit sits right above the start so the first grounded tick wins
	return mustLevel(t,
		"......",
		"..x...",
		"..1...",
		"oooooo",
	)
}

func TestReachingExitDrainsTimeIntoScore(t *testing.T) {
	l := exitLevel(t)
	tuning := prefabs.DefaultTuning()

	l.Update(idleTick())
	require.True(t, l.ReachedExit())
	assert.Equal(t, []Cue{CueExitReached}, l.Snapshot().Cues)
	assert.Equal(t, []Cue{CueExitReached}, l.Cues())
	assert.Equal(t, AnimCelebrate, l.Player().Animation())
	assert.Equal(t, 60*time.Second-tick, l.TimeRemaining())
	assert.Zero(t, l.Score())

	// 1/60s at a drain rate of 100 rounds to two seconds per tick
	l.Update(idleTick())
	assert.Equal(t, 58*time.Second-tick, l.TimeRemaining())
	assert.Equal(t, 2*tuning.Level.PointsPerSecond, l.Score())
	assert.Empty(t, l.Snapshot().Cues)
	assert.Nil(t, l.Cues())

	for i := 0; i < 100 && l.TimeRemaining() > 0; i++ {
		l.Update(idleTick())
	}
	assert.Zero(t, l.TimeRemaining())
	// the started 60th second is paid in full
	assert.Equal(t, 60*tuning.Level.PointsPerSecond, l.Score())
	assert.True(t, l.ReachedExit())
	assert.False(t, l.TimedOut())

	score := l.Score()
	l.Update(idleTick())
	assert.Equal(t, score, l.Score())
	assert.Equal(t, AnimCelebrate, l.Player().Animation())
}

func TestExitNeedsGround(t *testing.T) {
	l := mustLevel(t,
		"..x...",
		"......",
		"..1...",
		"oooooo",
	)
	for i := 0; i < 30; i++ {
		l.Update(TickInput{JumpHeld: true, Elapsed: tick})
		l.Update(idleTick())
	}
	assert.False(t, l.ReachedExit())
}

func TestInactiveEnemiesAreCompacted(t *testing.T) {
	l := mustLevel(t,
		"..............",
		".Q..Q..Q..Q.x.",
		"oooooooooooooo",
		"1.............",
		"oooooooooooooo",
	)
	require.Len(t, l.Enemies(), 4)
	keep := []*Enemy{l.Enemies()[1], l.Enemies()[3]}
	l.Enemies()[0].Active = false
	l.Enemies()[2].Active = false

	l.Update(idleTick())
	assert.Equal(t, keep, l.Enemies())
}

func TestFireRaisesCue(t *testing.T) {
	l := mustLevel(t,
		"..........",
		".1......x.",
		"oooooooooo",
	)
	l.Update(TickInput{FireHeld: true, Elapsed: tick})
	s := l.Snapshot()
	assert.Equal(t, []Cue{CueBulletFired}, s.Cues)
	require.Len(t, s.Bullets, 1)
	assert.Equal(t, 1, s.Bullets[0].Direction)
}

func TestSnapshot(t *testing.T) {
	l := mustLevel(t,
		"......",
		".1.Qx.",
		"oo-#oo",
	)
	s := l.Snapshot()

	assert.Equal(t, 6, s.Width)
	assert.Equal(t, 3, s.Height)
	assert.Len(t, s.Tiles, 7)
	assert.Contains(t, s.Tiles, TileView{X: 4, Y: 1, Collision: Passable, Texture: TextureExit})
	assert.Contains(t, s.Tiles, TileView{X: 2, Y: 2, Collision: Platform, Texture: TexturePlatform})
	assert.Equal(t, l.Start(), s.Player.Position)
	assert.True(t, s.Player.Alive)
	require.Len(t, s.Enemies, 1)
	assert.Equal(t, Left, s.Enemies[0].Facing)
	assert.Empty(t, s.Bullets)
	assert.Equal(t, 60*time.Second, s.TimeRemaining)

	// the snapshot does not alias level state
	s.Enemies[0].Position.X = -1
	assert.NotEqual(t, -1.0, l.Enemies()[0].Position.X)
}
