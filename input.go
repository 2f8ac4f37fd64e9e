package main

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/pandamonium/obj"
)

const stickDeadzone = 0.2

// jumpKeys also continue after a death, timeout or cleared level.
var jumpKeys = []ebiten.Key{ebiten.KeySpace, ebiten.KeyW, ebiten.KeyArrowUp}

func anyKey(keys []ebiten.Key, pressed func(ebiten.Key) bool) bool {
	for _, k := range keys {
		if pressed(k) {
			return true
		}
	}
	return false
}

// Controls is one frame of keyboard and gamepad state.
type Controls struct {
	Tick obj.TickInput

	// ContinuePressed is the jump button going down this frame. It restarts
	// after a death or timeout and advances after a cleared level.
	ContinuePressed bool
	PausePressed    bool
	DebugPressed    bool
}

// pollControls reads the devices once. Only the first gamepad is used.
func pollControls(elapsed time.Duration) Controls {
	var c Controls

	moveX := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		moveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		moveX += 1
	}

	jump := anyKey(jumpKeys, ebiten.IsKeyPressed)
	fire := ebiten.IsKeyPressed(ebiten.KeyJ) || ebiten.IsKeyPressed(ebiten.KeyX)
	vent := ebiten.IsKeyPressed(ebiten.KeyK) || ebiten.IsKeyPressed(ebiten.KeyC)

	c.ContinuePressed = anyKey(jumpKeys, inpututil.IsKeyJustPressed)
	c.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP)
	c.DebugPressed = inpututil.IsKeyJustPressed(ebiten.KeyF12)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		leftX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if math.Abs(leftX) > stickDeadzone {
			moveX = leftX
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftLeft) {
			moveX = -1
		}
		if ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftRight) {
			moveX = 1
		}

		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		fire = fire || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightLeft) ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomRight)
		vent = vent || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightTop) ||
			ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)

		c.ContinuePressed = c.ContinuePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
		c.PausePressed = c.PausePressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonCenterRight)
	}

	c.Tick = obj.TickInput{
		MoveX:    moveX,
		JumpHeld: jump,
		FireHeld: fire,
		VentHeld: vent,
		Elapsed:  elapsed,
	}
	return c
}

// tickDuration is the fixed step ebiten calls Update with.
func tickDuration() time.Duration {
	return time.Second / time.Duration(ebiten.TPS())
}
