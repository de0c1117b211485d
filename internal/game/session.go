package game

import (
	"errors"
	gomath "math"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/Faultbox/ironvale/internal/config"
	"github.com/Faultbox/ironvale/internal/engine/camera"
	"github.com/Faultbox/ironvale/internal/engine/geometry"
	"github.com/Faultbox/ironvale/internal/engine/input"
	"github.com/Faultbox/ironvale/internal/engine/picking"
	"github.com/Faultbox/ironvale/internal/engine/scene"
	"github.com/Faultbox/ironvale/internal/engine/terrain"
	"github.com/Faultbox/ironvale/internal/game/units"
	"github.com/Faultbox/ironvale/internal/game/world"
	"github.com/Faultbox/ironvale/internal/logger"
	"github.com/Faultbox/ironvale/pkg/math"
)

// Scene node names owned by the session.
const (
	MarkersNodeName = "path.markers"
	OverlayNodeName = "nav.overlay"
	UnitsNodeName   = "units"
	WaterNodeName   = "water"
)

// PlayerTeam is the team the player's squad belongs to.
const PlayerTeam = "player"

// squadTypes is the order unit types join the player's squad.
var squadTypes = []units.Type{
	units.TypeSoldier,
	units.TypeArcher,
	units.TypeHealer,
	units.TypeMage,
	units.TypeKnight,
	units.TypeTank,
}

// teamColor tints the player's units.
var teamColor = [4]float32{30.0 / 255, 144.0 / 255, 1, 1}

// DepositNodeName returns the scene node name for deposits of r.
func DepositNodeName(r world.Resource) string {
	return "resource." + r.String()
}

// clickSlop is how far in pixels the pointer may travel between press and
// release and still count as a click.
const clickSlop = 4

const (
	markerLift  = 0.6
	overlayLift = 0.15
)

// Session is the playable state on top of a scene: terrain, camera rig,
// navigation map, the player's squad and resource deposits. It listens to
// its input source for hotkeys and ground clicks.
type Session struct {
	scene    *scene.Scene
	source   input.Source
	terrain  *terrain.Terrain
	rig      *camera.Rig
	world    *world.Map
	units    *units.Manager
	squad    *units.Group
	markers  *scene.Node
	overlay  *scene.Node
	unitNode *scene.Node
	water    *scene.Node
	deposits map[world.Resource]*scene.Node

	phase       Phase
	treeCount   int
	squadSize   int
	harvest     int
	stockpile   map[world.Resource]int
	showPath    bool
	showOverlay bool
	seeds       func() int

	pressed        bool
	pressX, pressY float32

	lastPick *math.Vec3
	route    world.Route
	quit     bool

	log *zap.Logger
}

// NewSession builds terrain from cfg, adds it to sc and attaches a camera
// rig to src.
func NewSession(sc *scene.Scene, src input.Source, cfg *config.Config) *Session {
	s := &Session{
		scene:     sc,
		source:    src,
		terrain:   terrain.New(cfg.Terrain, cfg.Trees.Model),
		world:     world.NewMap(cfg.Nav),
		units:     units.NewManager(nil),
		treeCount: cfg.Trees.Count,
		squadSize: cfg.Game.SquadSize,
		harvest:   cfg.Game.HarvestAmount,
		stockpile: make(map[world.Resource]int),
		showPath:  cfg.Game.ShowPath,
		seeds:     func() int { return rand.IntN(gomath.MaxInt32) },
		log:       logger.Named("game"),
	}
	if !cfg.Game.StartInMenu {
		s.phase = PhasePlaying
	}
	if s.harvest <= 0 {
		s.harvest = 1
	}

	s.markers = &scene.Node{
		Name:   MarkersNodeName,
		Mesh:   markerMesh(),
		Hidden: true,
	}
	sc.Add(s.markers)
	s.overlay = &scene.Node{
		Name:          OverlayNodeName,
		ReceiveShadow: true,
		Hidden:        true,
	}
	sc.Add(s.overlay)
	s.water = &scene.Node{
		Name:          WaterNodeName,
		ReceiveShadow: true,
		Hidden:        true,
	}
	sc.Add(s.water)
	s.unitNode = &scene.Node{
		Name:       UnitsNodeName,
		Mesh:       unitMesh(),
		CastShadow: true,
		Hidden:     true,
	}
	sc.Add(s.unitNode)
	s.deposits = make(map[world.Resource]*scene.Node, len(world.Resources))
	for _, r := range world.Resources {
		n := &scene.Node{
			Name:       DepositNodeName(r),
			Mesh:       depositMesh(r),
			CastShadow: true,
			Hidden:     true,
		}
		s.deposits[r] = n
		sc.Add(n)
	}

	s.setGroup(s.terrain.Generate(s.treeCount))

	s.rig = camera.NewRig(sc.Camera(), src, math.Vec3{})
	s.rig.SetConstraints(camera.ConstraintsUpdate{
		MinZoom:  &cfg.Camera.Limits.MinZoom,
		MaxZoom:  &cfg.Camera.Limits.MaxZoom,
		MinPitch: &cfg.Camera.Limits.MinPitch,
		MaxPitch: &cfg.Camera.Limits.MaxPitch,
	})
	s.rig.SetSpeeds(camera.SpeedsUpdate{
		Pan:      &cfg.Camera.Speeds.Pan,
		Zoom:     &cfg.Camera.Speeds.Zoom,
		Rotation: &cfg.Camera.Speeds.Rotation,
	})
	s.rig.Update()

	if src != nil {
		src.AddListener(s)
	}

	stats := s.terrain.Stats()
	s.log.Info("session ready",
		zap.Int("trees", stats.TreeCount),
		zap.Int("vertices", stats.VertexCount),
		zap.Int("seed", stats.SurfaceSeed),
		zap.Int("deposits", len(s.world.Deposits())),
		zap.Stringer("phase", s.phase),
	)
	return s
}

func markerMesh() *geometry.Mesh {
	m := geometry.NewCone(0.4, 1.2, 6)
	m.SetColor([4]float32{1, 0.85, 0.1, 1})
	return m
}

func unitMesh() *geometry.Mesh {
	m := geometry.NewCylinder(0.35, 0.35, 1.6, 8)
	m.Translate(0, 0.8, 0)
	m.SetColor(teamColor)
	return m
}

func depositMesh(r world.Resource) *geometry.Mesh {
	m := geometry.NewCylinder(0.3, 0.6, 0.5, 6)
	m.Translate(0, 0.25, 0)
	m.SetColor(r.Color())
	return m
}

func (s *Session) setGroup(g *terrain.Group) {
	s.scene.SetTerrain(g)
	s.world.Rebuild(g)
	s.clearRoute()
	s.refreshOverlay()
	s.refreshWater()
	s.refreshDeposits()
	s.spawnSquad()
}

func (s *Session) refreshWater() {
	grid := s.world.Grid()
	if grid == nil {
		s.water.Mesh, s.water.Hidden = nil, true
		return
	}
	s.water.Mesh = world.WaterMesh(grid)
	s.water.Hidden = s.water.Mesh == nil
}

func (s *Session) refreshDeposits() {
	at := make(map[world.Resource][]math.Vec3, len(world.Resources))
	for _, d := range s.world.Deposits() {
		at[d.Resource] = append(at[d.Resource], s.world.CellToWorld(d.X, d.Y))
	}
	for r, n := range s.deposits {
		n.Instances = at[r]
		n.Hidden = len(n.Instances) == 0
	}
}

// spawnSquad replaces every unit with a fresh player squad on the walkable
// cell nearest the map center.
func (s *Session) spawnSquad() {
	s.units.Clear()
	s.units.SetGround(s.terrain.Surface())
	s.squad = s.units.CreateGroup("squad", PlayerTeam)

	origin, ok := s.spawnPoint()
	if ok {
		slots := s.squad.Slots(s.squadSize)
		for i := 0; i < s.squadSize; i++ {
			pos := origin.Add(slots[i])
			if x, y, ok := s.world.WorldToCell(pos); !ok || !s.world.Grid().IsWalkable(x, y) {
				pos = origin
			}
			t := squadTypes[i%len(squadTypes)]
			u := s.units.Create(t.String(), t, PlayerTeam, pos)
			s.squad.Add(u)
		}
	}
	s.refreshUnits()
}

func (s *Session) spawnPoint() (math.Vec3, bool) {
	grid := s.world.Grid()
	if grid == nil {
		return math.Vec3{}, false
	}
	cx, cy := grid.Width/2, grid.Height/2
	for r := 0; r <= max(grid.Width, grid.Height); r++ {
		for _, c := range grid.VisibleCells(cx, cy, r) {
			if grid.IsWalkable(c[0], c[1]) {
				return grid.CellToWorld(c[0], c[1]), true
			}
		}
	}
	return math.Vec3{}, false
}

func (s *Session) refreshUnits() {
	var at []math.Vec3
	for _, u := range s.squad.Alive() {
		at = append(at, u.Position)
	}
	s.unitNode.Instances = at
	s.unitNode.Hidden = len(at) == 0
}

// ToggleOverlay shows or hides the navigation grid overlay.
func (s *Session) ToggleOverlay() {
	s.showOverlay = !s.showOverlay
	s.refreshOverlay()
}

func (s *Session) refreshOverlay() {
	if !s.showOverlay || s.world.Grid() == nil {
		s.overlay.Hidden = true
		return
	}
	s.overlay.Mesh = world.OverlayMesh(s.world.Grid(), s.terrain.Surface(), overlayLift)
	s.overlay.Hidden = s.overlay.Mesh == nil
}

// Regenerate rebuilds the terrain and trees with seed.
func (s *Session) Regenerate(seed int) {
	s.setGroup(s.terrain.Regenerate(seed))
	s.log.Info("terrain regenerated",
		zap.Int("seed", seed),
		zap.Int("trees", len(s.terrain.Trees())),
	)
}

// Pick returns the ground point under window pixel (x, y).
func (s *Session) Pick(x, y float32) (math.Vec3, bool) {
	w, h := s.scene.Size()
	if w <= 0 || h <= 0 {
		return math.Vec3{}, false
	}
	invViewProj := s.scene.Camera().ViewProjection().Inverse()
	ray := picking.ScreenToRay(x, y, float32(w), float32(h), invViewProj)

	hit, ok := s.terrain.Surface().Raycast(ray)
	if !ok {
		return math.Vec3{}, false
	}
	p := math.Vec3FromArray(hit.Point)

	// Submerged ground is picked at the water surface.
	if grid := s.world.Grid(); grid != nil && grid.HasWater && p.Y < grid.WaterHeight {
		if wx, wz, ok := ray.IntersectPlaneY(grid.WaterHeight); ok {
			p = math.Vec3{X: wx, Y: grid.WaterHeight, Z: wz}
		}
	}
	return p, true
}

// Click picks the ground under (x, y) and sends the squad there. Clicks
// are ignored outside play.
func (s *Session) Click(x, y float32) {
	if s.phase != PhasePlaying {
		return
	}
	p, ok := s.Pick(x, y)
	if !ok {
		return
	}
	s.lastPick = &p
	leader, ok := s.squad.Leader()
	if !ok {
		s.log.Debug("ground picked", zap.Float32("x", p.X), zap.Float32("z", p.Z))
		return
	}

	route, err := s.world.Plan(leader.Position, p)
	if err != nil {
		s.log.Debug("no route", zap.Error(err))
		s.clearRoute()
		return
	}
	s.setRoute(route)
	s.squad.Follow(route.Points)
	s.log.Debug("route planned",
		zap.Int("waypoints", route.Len()),
		zap.Float32("length", route.Length()),
		zap.Float32("cost", route.Cost),
	)
}

// Harvest takes from the first deposit within one cell of the squad
// leader and adds it to the stockpile. The game ends once the map has no
// deposits left.
func (s *Session) Harvest() bool {
	leader, ok := s.squad.Leader()
	if !ok || s.world.Grid() == nil {
		return false
	}
	for _, c := range s.world.Visible(leader.Position, s.world.Grid().CellSize) {
		r, taken, ok := s.world.Harvest(c[0], c[1], s.harvest)
		if !ok {
			continue
		}
		s.stockpile[r] += taken
		s.refreshDeposits()
		s.log.Info("harvested",
			zap.Stringer("resource", r),
			zap.Int("amount", taken),
			zap.Int("stock", s.stockpile[r]),
		)
		if len(s.world.Deposits()) == 0 {
			s.setPhase(PhaseGameOver)
		}
		return true
	}
	return false
}

// Stockpile returns the harvested amount of r.
func (s *Session) Stockpile(r world.Resource) int {
	return s.stockpile[r]
}

// Phase returns the current session phase.
func (s *Session) Phase() Phase {
	return s.phase
}

func (s *Session) setPhase(p Phase) {
	if p == s.phase {
		return
	}
	s.log.Info("phase changed", zap.Stringer("from", s.phase), zap.Stringer("to", p))
	s.phase = p
}

// Squad returns the player's group.
func (s *Session) Squad() *units.Group {
	return s.squad
}

// Units returns the unit manager.
func (s *Session) Units() *units.Manager {
	return s.units
}

func (s *Session) setRoute(r world.Route) {
	s.route = r
	instances := make([]math.Vec3, len(r.Points))
	for i, p := range r.Points {
		instances[i] = math.Vec3{X: p.X, Y: p.Y + markerLift, Z: p.Z}
	}
	s.markers.Instances = instances
	s.markers.Hidden = !s.showPath || len(instances) == 0
}

func (s *Session) clearRoute() {
	s.route = world.Route{}
	s.markers.Instances = nil
	s.markers.Hidden = true
}

// Route returns the last planned route.
func (s *Session) Route() world.Route {
	return s.route
}

// Terrain returns the terrain.
func (s *Session) Terrain() *terrain.Terrain {
	return s.terrain
}

// Rig returns the camera rig.
func (s *Session) Rig() *camera.Rig {
	return s.rig
}

// Map returns the navigation map.
func (s *Session) Map() *world.Map {
	return s.world
}

// Quit reports whether the player asked to leave.
func (s *Session) Quit() bool {
	return s.quit
}

// Update applies held camera keys and advances scene effects. Units only
// move during play.
func (s *Session) Update(dt float32) {
	s.rig.Update()
	if s.phase == PhasePlaying {
		s.units.Update(dt)
		s.refreshUnits()
	}
	s.scene.Update(dt)
}

// Render draws the scene.
func (s *Session) Render() error {
	err := s.scene.Render()
	if errors.Is(err, scene.ErrDisposed) {
		s.quit = true
	}
	return err
}

// Dispose detaches from input and releases the rig.
func (s *Session) Dispose() {
	if s.source != nil {
		s.source.RemoveListener(s)
		s.source = nil
	}
	s.rig.Dispose()
}

// OnKeyDown handles phase changes and hotkeys. Gameplay keys only work
// during play.
func (s *Session) OnKeyDown(key input.Key) {
	before := s.phase
	next, quit := s.phase.next(key)
	if quit {
		s.quit = true
		return
	}
	s.setPhase(next)
	if before != PhasePlaying || next != PhasePlaying {
		s.viewKey(key)
		return
	}

	switch key {
	case input.KeyR:
		s.Regenerate(s.seeds())
	case input.KeyH:
		s.Harvest()
	case input.KeyF:
		s.squad.Formation = (s.squad.Formation + 1) % (units.FormationCircle + 1)
		s.log.Debug("formation", zap.Stringer("formation", s.squad.Formation))
	default:
		s.viewKey(key)
	}
}

// viewKey handles camera and display keys, which work in every phase.
func (s *Session) viewKey(key input.Key) {
	switch key {
	case input.KeyHome:
		s.rig.Reset()
	case input.KeyN:
		s.ToggleOverlay()
	case input.KeyF2:
		s.scene.SetShadowsEnabled(!s.scene.ShadowsEnabled())
		s.log.Info("shadows toggled", zap.Bool("enabled", s.scene.ShadowsEnabled()))
	}
}

func (s *Session) OnKeyUp(input.Key) {}

// OnPointerDown starts a possible click.
func (s *Session) OnPointerDown(e input.PointerEvent) {
	if e.Button != input.ButtonPrimary || e.Mods.Has(input.ModShift) {
		s.pressed = false
		return
	}
	s.pressed = true
	s.pressX, s.pressY = e.X, e.Y
}

// OnPointerMove cancels the click once the pointer drags.
func (s *Session) OnPointerMove(e input.PointerEvent) {
	if !s.pressed {
		return
	}
	dx, dy := e.X-s.pressX, e.Y-s.pressY
	if dx*dx+dy*dy > clickSlop*clickSlop {
		s.pressed = false
	}
}

// OnPointerUp completes a click.
func (s *Session) OnPointerUp(e input.PointerEvent) {
	if e.Button != input.ButtonPrimary || !s.pressed {
		return
	}
	s.pressed = false
	s.Click(e.X, e.Y)
}

func (s *Session) OnWheel(input.WheelEvent) {}
