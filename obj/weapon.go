package obj

import (
	"time"

	"github.com/milk9111/pandamonium/prefabs"
)

// Blaster gates firing on a cooldown and a heat meter. Heat builds with every
// shot; past the limit the blaster locks until the heat has been vented to
// zero.
type Blaster struct {
	spec prefabs.WeaponSpec

	heat       float64
	overheated bool
	cooldown   time.Duration
	sinceShot  time.Duration
}

func NewBlaster(spec prefabs.WeaponSpec) *Blaster {
	cooldown := prefabs.Seconds(spec.Cooldown)
	return &Blaster{
		spec:     spec,
		cooldown: cooldown,
		// ready on the first tick
		sinceShot: cooldown + time.Nanosecond,
	}
}

func (b *Blaster) Heat() float64    { return b.heat }
func (b *Blaster) Overheated() bool { return b.overheated }

// Tick advances the blaster clock and reports whether a bullet should be
// spawned this tick.
func (b *Blaster) Tick(elapsed time.Duration, fireHeld, ventHeld bool) bool {
	b.sinceShot += elapsed
	if b.sinceShot <= b.cooldown {
		return false
	}

	if !fireHeld {
		if ventHeld {
			b.heat = max(0, b.heat-b.spec.VentPerTick)
		}
		return false
	}

	if b.heat > b.spec.MaxHeat {
		b.heat = b.spec.MaxHeat
		b.overheated = true
	}
	if b.heat <= 0 {
		b.heat = 0
		b.overheated = false
	}
	if b.overheated {
		return false
	}

	b.sinceShot = 0
	b.heat += b.spec.HeatPerShot
	return true
}

// Reset cools the blaster down completely.
func (b *Blaster) Reset() {
	b.heat = 0
	b.overheated = false
	b.sinceShot = b.cooldown + time.Nanosecond
}
