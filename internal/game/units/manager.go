package units

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/ironvale/internal/logger"
	"github.com/Faultbox/ironvale/pkg/math"
)

// Regeneration per second as a fraction of the pool's maximum.
const (
	manaRegen    = 0.01
	staminaRegen = 0.02
)

// DefaultLogLimit is how many entries ActionLog returns for a limit <= 0.
const DefaultLogLimit = 100

// Ground snaps units to the terrain height under them.
type Ground interface {
	HeightAt(x, z float32) (float32, bool)
}

// LogEntry is one recorded manager action.
type LogEntry struct {
	Time   time.Time
	Action string
}

// Manager owns every unit and group in play.
type Manager struct {
	units  map[uuid.UUID]*Unit
	order  []uuid.UUID
	groups map[uuid.UUID]*Group
	teams  map[string][]uuid.UUID
	ground Ground

	actions []LogEntry
	now     func() time.Time
	log     *zap.Logger
}

// NewManager returns an empty manager. ground may be nil.
func NewManager(ground Ground) *Manager {
	return &Manager{
		units:  make(map[uuid.UUID]*Unit),
		groups: make(map[uuid.UUID]*Group),
		teams:  make(map[string][]uuid.UUID),
		ground: ground,
		now:    time.Now,
		log:    logger.Named("units"),
	}
}

// SetGround replaces the surface units walk on.
func (m *Manager) SetGround(g Ground) {
	m.ground = g
}

// Create adds a unit of type t with default stats and abilities.
func (m *Manager) Create(name string, t Type, team string, pos math.Vec3) *Unit {
	u := New(name, t, team, pos)
	m.snap(u)

	m.units[u.ID] = u
	m.order = append(m.order, u.ID)
	if team != "" {
		m.teams[team] = append(m.teams[team], u.ID)
	}
	m.record("unit created: %s (%s)", u.Name, u.Type)
	return u
}

// CreateGroup adds an empty group.
func (m *Manager) CreateGroup(name, team string) *Group {
	g := NewGroup(name, team)
	m.groups[g.ID] = g
	m.record("group created: %s", name)
	return g
}

// DeleteUnit removes a unit from the manager, its team and every group.
func (m *Manager) DeleteUnit(id uuid.UUID) bool {
	u, ok := m.units[id]
	if !ok {
		return false
	}
	m.teams[u.Team] = without(m.teams[u.Team], id)
	if len(m.teams[u.Team]) == 0 {
		delete(m.teams, u.Team)
	}
	for _, g := range m.groups {
		g.Remove(id)
	}
	m.order = without(m.order, id)
	delete(m.units, id)
	m.record("unit deleted: %s", u.Name)
	return true
}

// DeleteGroup removes a group. Its units stay in play.
func (m *Manager) DeleteGroup(id uuid.UUID) bool {
	g, ok := m.groups[id]
	if !ok {
		return false
	}
	delete(m.groups, id)
	m.record("group deleted: %s", g.Name)
	return true
}

// Clear removes every unit and group. The action log is kept.
func (m *Manager) Clear() {
	clear(m.units)
	clear(m.groups)
	clear(m.teams)
	m.order = nil
	m.record("cleared")
}

// Unit returns the unit with id, or nil.
func (m *Manager) Unit(id uuid.UUID) *Unit {
	return m.units[id]
}

// Group returns the group with id, or nil.
func (m *Manager) Group(id uuid.UUID) *Group {
	return m.groups[id]
}

// Units returns every unit in creation order.
func (m *Manager) Units() []*Unit {
	out := make([]*Unit, len(m.order))
	for i, id := range m.order {
		out[i] = m.units[id]
	}
	return out
}

// Team returns the units of team in creation order.
func (m *Manager) Team(team string) []*Unit {
	var out []*Unit
	for _, id := range m.teams[team] {
		out = append(out, m.units[id])
	}
	return out
}

// AliveTeam returns the living units of team.
func (m *Manager) AliveTeam(team string) []*Unit {
	var out []*Unit
	for _, u := range m.Team(team) {
		if u.Stats.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// InRange returns the units within radius of pos on the ground plane.
func (m *Manager) InRange(pos math.Vec3, radius float32) []*Unit {
	var out []*Unit
	for _, u := range m.Units() {
		if u.Position.XZ().Distance(pos.XZ()) <= radius {
			out = append(out, u)
		}
	}
	return out
}

// Enemies returns the living units on other teams than the unit with id.
func (m *Manager) Enemies(id uuid.UUID) []*Unit {
	self, ok := m.units[id]
	if !ok {
		return nil
	}
	var out []*Unit
	for _, u := range m.Units() {
		if u.Team != self.Team && u.Stats.Alive() {
			out = append(out, u)
		}
	}
	return out
}

// AddToGroup puts a unit into a group.
func (m *Manager) AddToGroup(unitID, groupID uuid.UUID) bool {
	u, g := m.units[unitID], m.groups[groupID]
	if u == nil || g == nil {
		return false
	}
	return g.Add(u)
}

// RemoveFromGroup takes a unit out of a group.
func (m *Manager) RemoveFromGroup(unitID, groupID uuid.UUID) bool {
	g := m.groups[groupID]
	if g == nil {
		return false
	}
	return g.Remove(unitID)
}

// Update advances every living unit by dt seconds: effects age, movers
// walk at their current speed and pools regenerate.
func (m *Manager) Update(dt float32) {
	if dt <= 0 {
		return
	}
	for _, u := range m.Units() {
		if !u.Stats.Alive() {
			continue
		}
		u.tick(dt)
		if u.Advance(u.Speed() * dt) {
			m.log.Debug("unit arrived",
				zap.String("unit", u.Name),
				zap.Float32("x", u.Position.X),
				zap.Float32("z", u.Position.Z),
			)
		}
		m.snap(u)
		u.Stats.RestoreMana(u.Stats.MaxMana * manaRegen * dt)
		u.Stats.RestoreStamina(u.Stats.MaxStamina * staminaRegen * dt)
	}
}

func (m *Manager) snap(u *Unit) {
	if m.ground == nil {
		return
	}
	if h, ok := m.ground.HeightAt(u.Position.X, u.Position.Z); ok {
		u.Position.Y = h
	}
}

// Summary counts units, groups and teams.
type Summary struct {
	Units, Alive, Dead int
	Groups, Teams      int
	Actions            int
}

// Summary returns the manager's counts.
func (m *Manager) Summary() Summary {
	alive := 0
	for _, u := range m.units {
		if u.Stats.Alive() {
			alive++
		}
	}
	return Summary{
		Units:   len(m.units),
		Alive:   alive,
		Dead:    len(m.units) - alive,
		Groups:  len(m.groups),
		Teams:   len(m.teams),
		Actions: len(m.actions),
	}
}

// ActionLog returns the last limit actions, oldest first.
func (m *Manager) ActionLog(limit int) []LogEntry {
	if limit <= 0 {
		limit = DefaultLogLimit
	}
	start := max(0, len(m.actions)-limit)
	return append([]LogEntry(nil), m.actions[start:]...)
}

// ClearActionLog drops every recorded action.
func (m *Manager) ClearActionLog() {
	m.actions = nil
}

func (m *Manager) record(format string, args ...any) {
	action := fmt.Sprintf(format, args...)
	m.actions = append(m.actions, LogEntry{Time: m.now(), Action: action})
	m.log.Debug(action)
}

func without(ids []uuid.UUID, id uuid.UUID) []uuid.UUID {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
