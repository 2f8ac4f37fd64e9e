package obj

import (
	"math"
	"time"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/pandamonium/common"
	"github.com/milk9111/pandamonium/prefabs"
)

// World is what a player needs from the level: tile collision, the level
// extents and an overlap test for bullets.
type World interface {
	CollisionQuery
	PixelSize() (int, int)
	OverlapsSolid(r common.Rect) bool
}

// AnimationTag names the animation the renderer should play for a body.
type AnimationTag int

const (
	AnimIdle AnimationTag = iota
	AnimRun
	AnimJump
	AnimCelebrate
)

func (a AnimationTag) String() string {
	switch a {
	case AnimIdle:
		return "idle"
	case AnimRun:
		return "run"
	case AnimJump:
		return "jump"
	case AnimCelebrate:
		return "celebrate"
	}
	return "unknown"
}

// JumpPhase is where the player is in the jump cycle.
type JumpPhase int

const (
	// Grounded means standing on something with no jump in progress.
	Grounded JumpPhase = iota
	// Ascending means the jump curve is driving vertical velocity.
	Ascending
	// Released means airborne with gravity in control.
	Released
)

func (j JumpPhase) String() string {
	switch j {
	case Grounded:
		return "grounded"
	case Ascending:
		return "ascending"
	case Released:
		return "released"
	}
	return "unknown"
}

// runThreshold is the horizontal speed below which a grounded player idles.
const runThreshold = 0.02

// playerState is the interface each concrete player state implements.
type playerState interface {
	Enter(p *Player)
	Exit(p *Player)
	OnPhysics(p *Player)
	Tag() AnimationTag
	Name() string
}

// setState helper switches states and calls Enter.
func (p *Player) setState(s playerState) {
	if p.state == s {
		return
	}
	if p.state != nil {
		p.state.Exit(p)
	}
	p.state = s
	p.state.Enter(p)
}

type idleState struct{}

func (idleState) Name() string      { return "idle" }
func (idleState) Tag() AnimationTag { return AnimIdle }
func (idleState) Enter(p *Player)   {}
func (idleState) Exit(p *Player)    {}
func (idleState) OnPhysics(p *Player) {
	if p.jumpTime > 0 {
		p.setState(stateJumping)
		return
	}
	if p.isOnGround && math.Abs(p.Velocity.X) > runThreshold {
		p.setState(stateRunning)
	}
}

type runningState struct{}

func (runningState) Name() string      { return "running" }
func (runningState) Tag() AnimationTag { return AnimRun }
func (runningState) Enter(p *Player)   {}
func (runningState) Exit(p *Player)    {}
func (runningState) OnPhysics(p *Player) {
	if p.jumpTime > 0 {
		p.setState(stateJumping)
		return
	}
	if p.isOnGround && math.Abs(p.Velocity.X) <= runThreshold {
		p.setState(stateIdle)
	}
}

type jumpingState struct{}

func (jumpingState) Name() string      { return "jumping" }
func (jumpingState) Tag() AnimationTag { return AnimJump }
func (jumpingState) Enter(p *Player)   {}
func (jumpingState) Exit(p *Player)    {}
func (jumpingState) OnPhysics(p *Player) {
	if !p.isOnGround || p.jumpTime > 0 {
		return
	}
	if math.Abs(p.Velocity.X) > runThreshold {
		p.setState(stateRunning)
	} else {
		p.setState(stateIdle)
	}
}

// celebratingState holds until the player is reset.
type celebratingState struct{}

func (celebratingState) Name() string        { return "celebrating" }
func (celebratingState) Tag() AnimationTag   { return AnimCelebrate }
func (celebratingState) Enter(p *Player)     {}
func (celebratingState) Exit(p *Player)      {}
func (celebratingState) OnPhysics(p *Player) {}

type deadState struct{}

func (deadState) Name() string      { return "dead" }
func (deadState) Tag() AnimationTag { return AnimIdle }
func (deadState) Enter(p *Player) {
	p.isAlive = false
}
func (deadState) Exit(p *Player)      {}
func (deadState) OnPhysics(p *Player) {}

// singletons for each state to avoid allocating on every transition
var (
	stateIdle        playerState = &idleState{}
	stateRunning     playerState = &runningState{}
	stateJumping     playerState = &jumpingState{}
	stateCelebrating playerState = &celebratingState{}
	stateDead        playerState = &deadState{}
)

// Player is the controllable character. Position is the bottom centre of
// its sprite frame.
type Player struct {
	Position cp.Vector
	Velocity cp.Vector

	spec       prefabs.PlayerSpec
	bulletSpec prefabs.BulletSpec
	world      World

	localBounds common.Rect
	originX     float64
	originY     float64

	isAlive    bool
	isOnGround bool
	isJumping  bool
	wasJumping bool
	jumpTime   float64
	movement   float64

	previousBottom int

	blaster *Blaster
	bullets []*Bullet

	state  playerState
	facing int
}

// NewPlayer creates a live player standing at pos.
func NewPlayer(pos cp.Vector, world World, spec prefabs.PlayerSpec, bulletSpec prefabs.BulletSpec) *Player {
	p := &Player{
		spec:        spec,
		bulletSpec:  bulletSpec,
		world:       world,
		localBounds: colliderBounds(spec.Frame, spec.Collider),
		originX:     float64(spec.Frame.Width) / 2.0,
		originY:     float64(spec.Frame.Height),
		blaster:     NewBlaster(spec.Weapon),
	}
	p.Reset(pos)
	return p
}

// colliderBounds places the collision box inside a sprite frame: centred
// horizontally, resting on the bottom edge. Both sizes scale the frame width.
func colliderBounds(frame prefabs.FrameSpec, collider prefabs.ColliderSpec) common.Rect {
	width := int(float64(frame.Width) * collider.WidthScale)
	height := int(float64(frame.Width) * collider.HeightScale)
	return common.Rect{
		X:      (frame.Width - width) / 2,
		Y:      frame.Height - height,
		Width:  width,
		Height: height,
	}
}

// Reset brings the player back to life at pos with no momentum.
func (p *Player) Reset(pos cp.Vector) {
	p.Position = pos
	p.Velocity = cp.Vector{}
	p.isAlive = true
	p.isOnGround = false
	p.isJumping = false
	p.wasJumping = false
	p.jumpTime = 0
	p.movement = 0
	p.previousBottom = p.BoundingRect().Bottom()
	p.blaster.Reset()
	p.bullets = p.bullets[:0]
	p.facing = 1
	p.state = nil
	p.setState(stateIdle)
}

// Kill stops the player from taking input until the next Reset.
func (p *Player) Kill() {
	p.setState(stateDead)
}

// OnReachedExit switches to the celebration animation.
func (p *Player) OnReachedExit() {
	p.setState(stateCelebrating)
}

func (p *Player) IsAlive() bool    { return p.isAlive }
func (p *Player) IsOnGround() bool { return p.isOnGround }

// Facing is -1 when the player last moved left, otherwise 1.
func (p *Player) Facing() int { return p.facing }

// Animation is the tag of the current state.
func (p *Player) Animation() AnimationTag { return p.state.Tag() }

// StateName is the current state's name, for debug overlays.
func (p *Player) StateName() string { return p.state.Name() }

func (p *Player) JumpPhase() JumpPhase {
	switch {
	case p.jumpTime > 0:
		return Ascending
	case p.isOnGround:
		return Grounded
	}
	return Released
}

func (p *Player) Heat() float64    { return p.blaster.Heat() }
func (p *Player) Overheated() bool { return p.blaster.Overheated() }

// Bullets is the live bullet list. Callers must not keep it across ticks.
func (p *Player) Bullets() []*Bullet { return p.bullets }

// BoundingRect is the collision box in world pixels.
func (p *Player) BoundingRect() common.Rect {
	return p.rectAt(p.Position)
}

func (p *Player) rectAt(pos cp.Vector) common.Rect {
	return common.RectAround(pos, p.originX, p.originY, p.localBounds)
}

// Update runs one full tick: input, physics, bullets and animation. It
// reports whether a bullet was fired. enemies is the set bullets can hit.
func (p *Player) Update(in TickInput, enemies []*Enemy) bool {
	in = in.Normalized()

	fired := p.readInput(in)
	p.ApplyPhysics(in.Elapsed)
	p.updateBullets()
	p.updateBulletCollisions(enemies)
	p.bullets = compactBullets(p.bullets)
	p.state.OnPhysics(p)

	// input only lasts one tick
	p.movement = 0
	p.isJumping = false
	return fired
}

func (p *Player) readInput(in TickInput) bool {
	mv := p.spec.Movement
	p.movement = shapeAxis(in.MoveX, mv.StickScale, mv.Deadzone)
	p.isJumping = in.JumpHeld

	if !p.blaster.Tick(in.Elapsed, in.FireHeld, in.VentHeld) {
		return false
	}
	p.fire()
	return true
}

func (p *Player) fire() {
	direction := 1
	if p.Velocity.X < 0 {
		direction = -1
	}
	muzzle := cp.Vector{X: p.Position.X, Y: p.Position.Y - p.spec.Weapon.MuzzleOffsetY}
	p.bullets = append(p.bullets, NewBullet(muzzle, direction, p.bulletSpec))
}

// ApplyPhysics integrates velocity for one tick and resolves the result
// against the tile grid. It uses whatever input the last readInput left,
// which is none outside of Update.
func (p *Player) ApplyPhysics(dt time.Duration) {
	elapsed := dt.Seconds()
	mv := p.spec.Movement
	jump := p.spec.Jump

	previousPosition := p.Position

	p.Velocity.X += p.movement * mv.Acceleration * elapsed
	p.Velocity.Y = common.Clamp(p.Velocity.Y+jump.Gravity*elapsed, -jump.MaxFallSpeed, jump.MaxFallSpeed)
	p.Velocity.Y = p.doJump(p.Velocity.Y, elapsed)

	if p.isOnGround {
		p.Velocity.X *= mv.GroundDrag
	} else {
		p.Velocity.X *= mv.AirDrag
	}
	p.Velocity.X = common.Clamp(p.Velocity.X, -mv.MaxSpeed, mv.MaxSpeed)

	p.Position = p.Position.Add(p.Velocity.Mult(elapsed))
	p.Position = cp.Vector{X: math.Round(p.Position.X), Y: math.Round(p.Position.Y)}

	p.handleCollisions()

	if p.Position.X == previousPosition.X {
		p.Velocity.X = 0
	}
	if p.Position.Y == previousPosition.Y {
		p.Velocity.Y = 0
	}

	if p.Velocity.X > 0 {
		p.facing = 1
	} else if p.Velocity.X < 0 {
		p.facing = -1
	}
}

// doJump overrides vertical velocity with the jump curve while a jump is
// ascending. Letting go of jump, or holding it past MaxTime, hands control
// back to gravity.
func (p *Player) doJump(velocityY, elapsed float64) float64 {
	if p.isJumping {
		if (!p.wasJumping && p.isOnGround) || p.jumpTime > 0 {
			p.jumpTime += elapsed
		}

		if 0 < p.jumpTime && p.jumpTime <= p.spec.Jump.MaxTime {
			velocityY = jumpVelocity(p.spec.Jump, p.jumpTime)
		} else {
			p.jumpTime = 0
		}
	} else {
		p.jumpTime = 0
	}
	p.wasJumping = p.isJumping
	return velocityY
}

// jumpVelocity eases from LaunchVelocity at the start of a jump to zero at
// MaxTime.
func jumpVelocity(spec prefabs.JumpSpec, jumpTime float64) float64 {
	return spec.LaunchVelocity * (1.0 - math.Pow(jumpTime/spec.MaxTime, spec.ControlPower))
}

func (p *Player) handleCollisions() {
	res := ResolveTiles(p.world, p.Position, p.rectAt, p.previousBottom)
	p.Position = res.Position
	p.isOnGround = res.OnGround
	p.previousBottom = res.PreviousBottom
}

func (p *Player) updateBullets() {
	w, h := p.world.PixelSize()
	for _, b := range p.bullets {
		b.Update(w, h)
	}
}

func (p *Player) updateBulletCollisions(enemies []*Enemy) {
	for _, b := range p.bullets {
		if !b.Active {
			continue
		}
		rect := b.BoundingRect()

		for _, e := range enemies {
			if rect.Intersects(e.BoundingRect()) {
				b.Active = false
				e.Active = false
			}
		}

		if p.world.OverlapsSolid(rect) {
			b.Active = false
		}
	}
}
