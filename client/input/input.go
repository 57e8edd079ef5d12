package input

import (
	"github.com/cbodonnell/lockstep/pkg/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ReadKeyState samples the keyboard and any gamepads for the held game keys.
func ReadKeyState() input.KeyState {
	keys := input.KeyState{
		Left:     ebiten.IsKeyPressed(ebiten.KeyLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		Right:    ebiten.IsKeyPressed(ebiten.KeyRight) || ebiten.IsKeyPressed(ebiten.KeyD),
		Jump:     ebiten.IsKeyPressed(ebiten.KeySpace) || ebiten.IsKeyPressed(ebiten.KeyUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		Interact: ebiten.IsKeyPressed(ebiten.KeyE),
	}

	for _, g := range ebiten.AppendGamepadIDs(nil) {
		if !ebiten.IsStandardGamepadLayoutAvailable(g) {
			continue
		}
		keys.Left = keys.Left || ebiten.IsStandardGamepadButtonPressed(g, ebiten.StandardGamepadButtonLeftLeft)
		keys.Right = keys.Right || ebiten.IsStandardGamepadButtonPressed(g, ebiten.StandardGamepadButtonLeftRight)
		keys.Jump = keys.Jump || ebiten.IsStandardGamepadButtonPressed(g, ebiten.StandardGamepadButtonRightBottom)
		keys.Interact = keys.Interact || ebiten.IsStandardGamepadButtonPressed(g, ebiten.StandardGamepadButtonRightRight)
	}

	return keys
}

// IsPositiveJustPressed returns a boolean value indicating whether the generic positive input is just pressed.
// This is used to handle both keyboard and touch inputs.
func IsPositiveJustPressed() bool {
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return true
	}
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		return true
	}
	for _, g := range ebiten.AppendGamepadIDs(nil) {
		if ebiten.IsStandardGamepadLayoutAvailable(g) {
			if inpututil.IsStandardGamepadButtonJustPressed(g, ebiten.StandardGamepadButtonRightBottom) {
				return true
			}
		} else if inpututil.IsGamepadButtonJustPressed(g, ebiten.GamepadButton0) {
			return true
		}
	}
	return false
}

// IsNegativeJustPressed reports whether the back/abort input was just pressed.
func IsNegativeJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

func IsCreateJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyC)
}

func IsJoinJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyJ)
}

func IsHistoryJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyH)
}

func IsDebugJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF3)
}
