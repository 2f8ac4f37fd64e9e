package obj

import (
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pandamonium/common"
)

// Cue is a one-shot event for the audio side.
type Cue int

const (
	CueBulletFired Cue = iota + 1
	CueExitReached
)

func (c Cue) String() string {
	switch c {
	case CueBulletFired:
		return "bullet_fired"
	case CueExitReached:
		return "exit_reached"
	}
	return "unknown"
}

type TileView struct {
	X, Y      int
	Collision TileCollision
	Texture   string
}

type PlayerView struct {
	Position   cp.Vector
	Bounds     common.Rect
	Facing     int
	Animation  AnimationTag
	Jump       JumpPhase
	Heat       float64
	Overheated bool
	Alive      bool
	OnGround   bool
}

type EnemyView struct {
	Position cp.Vector
	Bounds   common.Rect
	Facing   Direction
	Waiting  bool
}

type BulletView struct {
	Position  cp.Vector
	Bounds    common.Rect
	Direction int
}

// Snapshot is a read-only copy of everything a renderer needs for one frame.
type Snapshot struct {
	Name string
	// Width and Height are in tiles.
	Width, Height int
	// Tiles holds only tiles that have a visual.
	Tiles   []TileView
	Player  PlayerView
	Enemies []EnemyView
	Bullets []BulletView
	ExitX   int
	ExitY   int
	CameraX float64

	TimeRemaining time.Duration
	Score         int
	ReachedExit   bool
	TimedOut      bool

	// Cues raised by the most recent Update.
	Cues []Cue
}

// Snapshot copies the current state. Nothing in it aliases the level.
func (l *Level) Snapshot() Snapshot {
	s := Snapshot{
		Name:          l.Name,
		Width:         l.Width(),
		Height:        l.Height(),
		ExitX:         l.exitX,
		ExitY:         l.exitY,
		CameraX:       l.camera.X,
		TimeRemaining: l.timeRemaining,
		Score:         l.score,
		ReachedExit:   l.reachedExit,
		TimedOut:      l.TimedOut(),
	}

	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			t := l.world.Tile(x, y)
			if !t.HasVisual() {
				continue
			}
			s.Tiles = append(s.Tiles, TileView{X: x, Y: y, Collision: t.Collision, Texture: t.Texture})
		}
	}

	p := l.player
	s.Player = PlayerView{
		Position:   p.Position,
		Bounds:     p.BoundingRect(),
		Facing:     p.Facing(),
		Animation:  p.Animation(),
		Jump:       p.JumpPhase(),
		Heat:       p.Heat(),
		Overheated: p.Overheated(),
		Alive:      p.IsAlive(),
		OnGround:   p.IsOnGround(),
	}

	for _, e := range l.enemies {
		s.Enemies = append(s.Enemies, EnemyView{
			Position: e.Position,
			Bounds:   e.BoundingRect(),
			Facing:   e.Direction(),
			Waiting:  e.Waiting(),
		})
	}
	for _, b := range p.Bullets() {
		s.Bullets = append(s.Bullets, BulletView{
			Position:  b.Position,
			Bounds:    b.BoundingRect(),
			Direction: b.Direction,
		})
	}
	if len(l.cues) > 0 {
		s.Cues = append([]Cue(nil), l.cues...)
	}
	return s
}

// Cues returns a copy of the cues raised by the most recent Update.
func (l *Level) Cues() []Cue {
	if len(l.cues) == 0 {
		return nil
	}
	return append([]Cue(nil), l.cues...)
}
