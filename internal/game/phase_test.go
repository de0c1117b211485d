package game

import "testing"

func TestPhaseString(t *testing.T) {
	tests := []struct {
		p    Phase
		want string
	}{
		{PhaseMenu, "Menu"},
		{PhasePlaying, "Playing"},
		{PhasePaused, "Paused"},
		{PhaseGameOver, "Game Over"},
		{Phase(9), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestWindowTitle(t *testing.T) {
	tests := []struct {
		name  string
		phase Phase
		fps   int
		want  string
	}{
		{"phase only", PhaseMenu, 0, Title + " - Menu"},
		{"with fps", PhasePlaying, 60, Title + " - Playing - 60 fps"},
		{"negative fps hidden", PhasePaused, -1, Title + " - Paused"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := windowTitle(tt.phase, tt.fps); got != tt.want {
				t.Errorf("windowTitle() = %q, want %q", got, tt.want)
			}
		})
	}
}
