package game

import "github.com/Faultbox/ironvale/internal/engine/input"

// Phase is the session's top-level state.
type Phase uint8

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "Menu"
	case PhasePlaying:
		return "Playing"
	case PhasePaused:
		return "Paused"
	case PhaseGameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}

// next returns the phase after key is pressed in p, and whether the key
// asks to quit. Escape pauses and resumes play and quits from the menu and
// the game over screen. Any other key leaves the menu for play and the
// game over screen for the menu.
func (p Phase) next(key input.Key) (Phase, bool) {
	switch p {
	case PhasePlaying:
		if key == input.KeyEscape {
			return PhasePaused, false
		}
	case PhasePaused:
		if key == input.KeyEscape {
			return PhasePlaying, false
		}
	case PhaseMenu:
		if key == input.KeyEscape {
			return p, true
		}
		return PhasePlaying, false
	case PhaseGameOver:
		if key == input.KeyEscape {
			return p, true
		}
		return PhaseMenu, false
	}
	return p, false
}
