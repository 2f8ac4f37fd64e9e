package obj

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pandamonium/common"
	"github.com/milk9111/pandamonium/levels"
	"github.com/milk9111/pandamonium/prefabs"
)

var ErrNilMap = errors.New("obj: nil level map")

// Level owns the tile grid, the player and the enemies, and runs them one
// tick at a time.
type Level struct {
	Name string

	world   *CollisionWorld
	tuning  prefabs.Tuning
	player  *Player
	enemies []*Enemy
	camera  *Camera

	start cp.Vector
	// exit is the centre pixel of the exit tile
	exitX, exitY int

	timeRemaining time.Duration
	reachedExit   bool
	score         int

	// cues raised by the last Update
	cues []Cue
}

// NewLevel builds a playable level from a parsed map.
func NewLevel(m *levels.Map, tuning prefabs.Tuning) (*Level, error) {
	if m == nil {
		return nil, ErrNilMap
	}
	if m.Width <= 0 || m.Height <= 0 || len(m.Cells) != m.Width*m.Height {
		return nil, fmt.Errorf("obj: level %q has %d cells for %dx%d tiles", m.Name, len(m.Cells), m.Width, m.Height)
	}

	tiles := make([][]Tile, m.Width)
	for x := range tiles {
		tiles[x] = make([]Tile, m.Height)
		for y := range tiles[x] {
			tiles[x][y] = tileFor(m.At(x, y))
		}
	}

	l := &Level{
		Name:          m.Name,
		world:         NewCollisionWorld(tiles),
		tuning:        tuning,
		timeRemaining: prefabs.Seconds(tuning.Level.TimeLimit),
	}

	l.start = common.TileBounds(m.Start.X, m.Start.Y).BottomCenter()
	l.exitX, l.exitY = common.TileBounds(m.Exit.X, m.Exit.Y).Center()

	l.player = NewPlayer(l.start, l.world, tuning.Player, tuning.Bullet)
	for _, spawn := range m.Enemies {
		pos := common.TileBounds(spawn.X, spawn.Y).BottomCenter()
		l.enemies = append(l.enemies, NewEnemy(pos, l.world, tuning.Enemy))
	}

	w, _ := l.world.PixelSize()
	l.camera = NewCamera(tuning.Level.ViewportWidth, tuning.Level.ViewMargin)
	l.camera.SetWorldBounds(w)
	l.camera.SnapTo(l.start.X)

	return l, nil
}

// Width is the level width in tiles.
func (l *Level) Width() int { return l.world.Width() }

// Height is the level height in tiles.
func (l *Level) Height() int { return l.world.Height() }

// PixelSize returns the level extents in world pixels.
func (l *Level) PixelSize() (int, int) { return l.world.PixelSize() }

func (l *Level) GetCollision(x, y int) TileCollision { return l.world.GetCollision(x, y) }
func (l *Level) GetBounds(x, y int) common.Rect     { return l.world.GetBounds(x, y) }
func (l *Level) Tile(x, y int) Tile                 { return l.world.Tile(x, y) }

func (l *Level) World() *CollisionWorld { return l.world }
func (l *Level) Player() *Player        { return l.player }
func (l *Level) Camera() *Camera        { return l.camera }

// Enemies is the live enemy list. Callers must not keep it across ticks.
func (l *Level) Enemies() []*Enemy { return l.enemies }

// Start is where the player spawns.
func (l *Level) Start() cp.Vector { return l.start }

// Exit is the point the player has to touch to finish.
func (l *Level) Exit() (int, int) { return l.exitX, l.exitY }

func (l *Level) TimeRemaining() time.Duration { return l.timeRemaining }
func (l *Level) ReachedExit() bool            { return l.reachedExit }
func (l *Level) Score() int                   { return l.score }

// TimedOut reports that the clock ran out before the exit was reached.
func (l *Level) TimedOut() bool {
	return l.timeRemaining == 0 && !l.reachedExit
}

// Update advances the level by one tick.
func (l *Level) Update(in TickInput) {
	in = in.Normalized()
	l.cues = l.cues[:0]

	switch {
	case !l.player.IsAlive() || l.timeRemaining == 0:
		// the world keeps settling but the clock and enemies stop
		l.player.ApplyPhysics(in.Elapsed)
	case l.reachedExit:
		l.drainTime(in.Seconds())
	default:
		l.timeRemaining -= in.Elapsed

		if l.player.Update(in, l.enemies) {
			l.cues = append(l.cues, CueBulletFired)
		}
		l.updateEnemies(in.Elapsed)

		if l.player.IsAlive() && l.player.IsOnGround() &&
			l.player.BoundingRect().Contains(l.exitX, l.exitY) {
			l.onExitReached()
		}
	}

	if l.timeRemaining < 0 {
		l.timeRemaining = 0
	}
	l.camera.Update(l.player.Position.X)
}

// drainTime converts whole seconds of the remaining time into score.
func (l *Level) drainTime(elapsed float64) {
	seconds := int(math.Round(elapsed * l.tuning.Level.DrainRate))
	// a partial last second is paid as a whole one
	seconds = min(seconds, int(math.Ceil(l.timeRemaining.Seconds())))
	if seconds <= 0 {
		return
	}
	l.timeRemaining -= time.Duration(seconds) * time.Second
	l.score += seconds * l.tuning.Level.PointsPerSecond
}

func (l *Level) updateEnemies(dt time.Duration) {
	for _, e := range l.enemies {
		e.Update(dt)
	}
	l.enemies = compactEnemies(l.enemies)
}

func (l *Level) onExitReached() {
	l.player.OnReachedExit()
	l.reachedExit = true
	l.cues = append(l.cues, CueExitReached)
}

// StartNewLife puts the player back on the start tile.
func (l *Level) StartNewLife() {
	l.player.Reset(l.start)
	l.camera.SnapTo(l.start.X)
}
