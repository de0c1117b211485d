package game

import (
	"testing"

	"github.com/Faultbox/ironvale/internal/config"
	"github.com/Faultbox/ironvale/internal/engine/input"
	"github.com/Faultbox/ironvale/internal/engine/scene"
	"github.com/Faultbox/ironvale/internal/game/world"
)

type fakeRenderer struct {
	shadows bool
	frames  int
}

func (r *fakeRenderer) SetSize(int, int)            {}
func (r *fakeRenderer) SetPixelRatio(float32)       {}
func (r *fakeRenderer) SetAntialias(bool)           {}
func (r *fakeRenderer) SetShadows(on bool, _ int32) { r.shadows = on }
func (r *fakeRenderer) Render(*scene.Frame) error   { r.frames++; return nil }
func (r *fakeRenderer) Dispose()                    {}

type fakeViewport struct{}

func (fakeViewport) Size() (int, int)    { return 800, 600 }
func (fakeViewport) PixelRatio() float32 { return 1 }

// newTestSession builds a flat 20x20 map with at most one tree in the
// far corner.
func newTestSession(t *testing.T) (*Session, *input.Dispatcher, *fakeRenderer) {
	t.Helper()
	cfg := config.Default()
	cfg.Terrain.Width, cfg.Terrain.Height = 20, 20
	cfg.Terrain.WidthSegments, cfg.Terrain.HeightSegments = 10, 10
	cfg.Terrain.MaxHeight = 0
	cfg.Trees.Count = 1
	cfg.Game.StartInMenu = false

	r := &fakeRenderer{}
	sc, err := scene.New(scene.DefaultOptions(), r, fakeViewport{})
	if err != nil {
		t.Fatalf("scene.New() error = %v", err)
	}
	d := input.NewDispatcher()
	return NewSession(sc, d, cfg), d, r
}

func click(d *input.Dispatcher, x, y float32) {
	d.PointerDown(input.PointerEvent{X: x, Y: y, Button: input.ButtonPrimary, Buttons: input.MaskPrimary})
	d.PointerUp(input.PointerEvent{X: x, Y: y, Button: input.ButtonPrimary})
}

func near(a, b, eps float32) bool {
	d := a - b
	return d < eps && d > -eps
}

func TestNewSessionPopulatesScene(t *testing.T) {
	s, d, _ := newTestSession(t)

	g := s.scene.Graph()
	names := []string{scene.SurfaceNodeName, scene.TreesNodeName, MarkersNodeName, OverlayNodeName, UnitsNodeName, WaterNodeName}
	for _, r := range world.Resources {
		names = append(names, DepositNodeName(r))
	}
	for _, name := range names {
		if g.Find(name) == nil {
			t.Errorf("Graph().Find(%q) = nil", name)
		}
	}
	if s.Squad().Count() != 4 || len(s.unitNode.Instances) != 4 || s.unitNode.Hidden {
		t.Errorf("squad = %d units, %d instances, want 4 visible", s.Squad().Count(), len(s.unitNode.Instances))
	}
	if !s.water.Hidden {
		t.Error("flat terrain should have no water")
	}
	drawn := 0
	for _, n := range s.deposits {
		drawn += len(n.Instances)
	}
	if drawn != len(s.Map().Deposits()) || drawn == 0 {
		t.Errorf("deposit instances = %d, want %d", drawn, len(s.Map().Deposits()))
	}
	if !s.markers.Hidden {
		t.Error("markers should start hidden")
	}
	if s.Map().Grid() == nil {
		t.Error("navigation grid not built")
	}
	// Rig and session both listen.
	if d.Len() != 2 {
		t.Errorf("listeners = %d, want 2", d.Len())
	}
}

func TestPickCenterHitsTarget(t *testing.T) {
	s, _, _ := newTestSession(t)

	p, ok := s.Pick(400, 300)
	if !ok {
		t.Fatal("Pick() missed the ground")
	}
	if !near(p.X, 0, 0.05) || !near(p.Y, 0, 1e-4) || !near(p.Z, 0, 0.05) {
		t.Errorf("Pick() = %v, want origin", p)
	}
}

func TestPickSky(t *testing.T) {
	s, _, _ := newTestSession(t)

	if p, ok := s.Pick(400, 0); ok {
		t.Errorf("Pick() = %v, want miss", p)
	}
}

func TestPickWater(t *testing.T) {
	s, _, _ := newTestSession(t)
	grid := s.Map().Grid()
	grid.HasWater, grid.WaterHeight = true, 0.5

	p, ok := s.Pick(400, 300)
	if !ok {
		t.Fatal("Pick() missed")
	}
	if p.Y != 0.5 || p.Z <= 0 {
		t.Errorf("Pick() = %v, want the water surface in front of the ground hit", p)
	}
}

func TestClickMovesSquad(t *testing.T) {
	s, d, _ := newTestSession(t)
	leader, _ := s.Squad().Leader()
	start := leader.Position

	// Slightly above center lands a few units toward -Z.
	click(d, 400, 260)
	route := s.Route()
	if route.Len() < 2 {
		t.Fatalf("route has %d waypoints, want at least 2", route.Len())
	}
	if s.markers.Hidden {
		t.Error("markers should be visible after planning")
	}
	if len(s.markers.Instances) != route.Len() {
		t.Errorf("marker instances = %d, want %d", len(s.markers.Instances), route.Len())
	}
	goal, _ := route.Goal()
	if goal.Z >= 0 {
		t.Errorf("route goal Z = %v, want negative", goal.Z)
	}
	for i, u := range s.Squad().Units() {
		if _, ok := u.Destination(); !ok {
			t.Errorf("unit %d has no orders", i)
		}
	}

	for i := 0; i < 60; i++ {
		s.Update(0.1)
	}
	if leader.Position.Z >= start.Z {
		t.Errorf("leader Z = %v, want below start %v", leader.Position.Z, start.Z)
	}
	if s.unitNode.Instances[0] != leader.Position {
		t.Errorf("unit node = %v, want leader at %v", s.unitNode.Instances[0], leader.Position)
	}
}

func TestDragIsNotAClick(t *testing.T) {
	s, d, _ := newTestSession(t)

	d.PointerDown(input.PointerEvent{X: 400, Y: 300, Button: input.ButtonPrimary, Buttons: input.MaskPrimary})
	d.PointerMove(input.PointerEvent{X: 450, Y: 300, Buttons: input.MaskPrimary})
	d.PointerUp(input.PointerEvent{X: 450, Y: 300, Button: input.ButtonPrimary})

	if s.lastPick != nil {
		t.Errorf("drag recorded a pick at %v", *s.lastPick)
	}
}

func TestShiftClickIsIgnored(t *testing.T) {
	s, d, _ := newTestSession(t)

	d.PointerDown(input.PointerEvent{X: 400, Y: 300, Button: input.ButtonPrimary, Buttons: input.MaskPrimary, Mods: input.ModShift})
	d.PointerUp(input.PointerEvent{X: 400, Y: 300, Button: input.ButtonPrimary, Mods: input.ModShift})

	if s.lastPick != nil {
		t.Error("shift-click should pan, not pick")
	}
}

func TestHotkeys(t *testing.T) {
	s, d, r := newTestSession(t)

	d.KeyDown(input.KeyF2)
	if s.scene.ShadowsEnabled() || r.shadows {
		t.Error("F2 should disable shadows")
	}
	d.KeyDown(input.KeyF2)
	if !s.scene.ShadowsEnabled() || !r.shadows {
		t.Error("second F2 should enable shadows")
	}

	s.Rig().SetZoom(2)
	s.Rig().SetYaw(1)
	d.KeyDown(input.KeyHome)
	if s.Rig().Yaw() != 0 || s.Rig().Distance() != 50 {
		t.Errorf("Home: yaw %v distance %v, want 0 and 50", s.Rig().Yaw(), s.Rig().Distance())
	}

	before := s.Squad().Formation
	d.KeyDown(input.KeyF)
	if s.Squad().Formation != before+1 {
		t.Errorf("F: formation = %v, want %v", s.Squad().Formation, before+1)
	}
}

func TestPhases(t *testing.T) {
	tests := []struct {
		name  string
		from  Phase
		key   input.Key
		want  Phase
		quits bool
	}{
		{"menu starts on any key", PhaseMenu, input.KeyW, PhasePlaying, false},
		{"menu escape quits", PhaseMenu, input.KeyEscape, PhaseMenu, true},
		{"escape pauses", PhasePlaying, input.KeyEscape, PhasePaused, false},
		{"escape resumes", PhasePaused, input.KeyEscape, PhasePlaying, false},
		{"pause ignores keys", PhasePaused, input.KeyR, PhasePaused, false},
		{"game over returns to menu", PhaseGameOver, input.KeyH, PhaseMenu, false},
		{"game over escape quits", PhaseGameOver, input.KeyEscape, PhaseGameOver, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, d, _ := newTestSession(t)
			s.phase = tt.from
			d.KeyDown(tt.key)
			if s.Phase() != tt.want || s.Quit() != tt.quits {
				t.Errorf("after %v: phase %v quit %v, want %v %v", tt.key, s.Phase(), s.Quit(), tt.want, tt.quits)
			}
		})
	}
}

func TestPausedWorldHolds(t *testing.T) {
	s, d, _ := newTestSession(t)
	leader, _ := s.Squad().Leader()
	click(d, 400, 260)
	d.KeyDown(input.KeyEscape)

	start := leader.Position
	s.Update(1)
	if leader.Position != start {
		t.Errorf("paused leader moved from %v to %v", start, leader.Position)
	}
	route := s.Route()
	click(d, 400, 340)
	if s.Route().Len() != route.Len() {
		t.Error("paused click planned a new route")
	}

	d.KeyDown(input.KeyEscape)
	s.Update(1)
	if leader.Position == start {
		t.Error("leader did not move after resuming")
	}
}

func TestStartInMenu(t *testing.T) {
	s, d, _ := newTestSession(t)
	s.phase = PhaseMenu

	click(d, 400, 260)
	if s.Route().Len() != 0 || s.lastPick != nil {
		t.Error("menu click should be ignored")
	}
	d.KeyDown(input.KeyEnter)
	if s.Phase() != PhasePlaying {
		t.Errorf("phase = %v, want playing", s.Phase())
	}
}

func TestHarvestEndsGame(t *testing.T) {
	s, d, _ := newTestSession(t)
	leader, _ := s.Squad().Leader()
	lx, ly, ok := s.Map().WorldToCell(leader.Position)
	if !ok {
		t.Fatal("leader off grid")
	}
	for _, dep := range s.Map().Deposits() {
		s.Map().Harvest(dep.X, dep.Y, dep.Amount)
	}
	if err := s.Map().PlaceResource(lx, ly, world.ResourceGold, 7); err != nil {
		t.Fatalf("PlaceResource() error = %v", err)
	}

	d.KeyDown(input.KeyH)
	if s.Stockpile(world.ResourceGold) != 5 || s.Phase() != PhasePlaying {
		t.Errorf("after one harvest: gold %d, phase %v, want 5 playing", s.Stockpile(world.ResourceGold), s.Phase())
	}
	d.KeyDown(input.KeyH)
	if s.Stockpile(world.ResourceGold) != 7 || s.Phase() != PhaseGameOver {
		t.Errorf("after two harvests: gold %d, phase %v, want 7 game over", s.Stockpile(world.ResourceGold), s.Phase())
	}
	if !s.deposits[world.ResourceGold].Hidden {
		t.Error("emptied deposits should be hidden")
	}
	if s.Harvest() {
		t.Error("Harvest() with no deposits = true")
	}
}

func TestRegenerateHotkey(t *testing.T) {
	s, d, _ := newTestSession(t)
	s.seeds = func() int { return 7 }

	click(d, 400, 260)
	before := s.scene.Graph().Find(scene.SurfaceNodeName).Mesh

	d.KeyDown(input.KeyR)

	if s.Squad().Count() != 4 || len(s.Units().Units()) != 4 {
		t.Errorf("respawned squad = %d units, manager %d, want 4", s.Squad().Count(), len(s.Units().Units()))
	}
	stats := s.Terrain().Stats()
	if stats.SurfaceSeed != 7 || stats.PlacementSeed != 7 {
		t.Errorf("seeds = %d/%d, want 7/7", stats.SurfaceSeed, stats.PlacementSeed)
	}
	if s.scene.Graph().Find(scene.SurfaceNodeName).Mesh == before {
		t.Error("surface node still holds the old mesh")
	}
	if s.Route().Len() != 0 || !s.markers.Hidden {
		t.Error("regenerating should clear the route")
	}
}

func TestUpdateAndRender(t *testing.T) {
	s, d, r := newTestSession(t)

	d.KeyDown(input.KeyW)
	before := s.Rig().Target()
	s.Update(1.0 / 60)
	if s.Rig().Target() == before {
		t.Error("Update() should apply held keys")
	}

	if err := s.Render(); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if r.frames != 1 {
		t.Errorf("frames = %d, want 1", r.frames)
	}
}

func TestDispose(t *testing.T) {
	s, d, _ := newTestSession(t)

	s.Dispose()
	if d.Len() != 0 {
		t.Errorf("listeners after Dispose = %d, want 0", d.Len())
	}

	d.KeyDown(input.KeyEscape)
	if s.Quit() {
		t.Error("disposed session still handles keys")
	}
}

func TestOverlayToggle(t *testing.T) {
	s, d, _ := newTestSession(t)

	// Block a cell so the overlay has something to draw.
	s.Map().Grid().SetCell(4, 4, world.CellBlocked)

	d.KeyDown(input.KeyN)
	if s.overlay.Hidden || s.overlay.Mesh == nil {
		t.Fatal("N should show the overlay")
	}
	if s.overlay.Mesh.TriangleCount() < 2 {
		t.Errorf("overlay triangles = %d, want at least 2", s.overlay.Mesh.TriangleCount())
	}

	d.KeyDown(input.KeyN)
	if !s.overlay.Hidden {
		t.Error("second N should hide the overlay")
	}
}
