package units

import (
	gomath "math"

	"github.com/google/uuid"

	"github.com/Faultbox/ironvale/pkg/math"
)

// Formation is how a group arranges itself around its destination.
type Formation uint8

const (
	FormationLine Formation = iota
	FormationColumn
	FormationSquare
	FormationCircle
)

func (f Formation) String() string {
	switch f {
	case FormationLine:
		return "line"
	case FormationColumn:
		return "column"
	case FormationSquare:
		return "square"
	case FormationCircle:
		return "circle"
	default:
		return "unknown"
	}
}

// ParseFormation returns the formation with the given name.
func ParseFormation(name string) (Formation, bool) {
	for f := FormationLine; f <= FormationCircle; f++ {
		if f.String() == name {
			return f, true
		}
	}
	return FormationLine, false
}

// DefaultSpacing is the gap between formation slots in world units.
const DefaultSpacing = 1.5

// Group is an ordered set of units that take orders together.
type Group struct {
	ID        uuid.UUID
	Name      string
	Team      string
	Formation Formation
	Spacing   float32

	units []*Unit
}

// NewGroup returns an empty group in line formation.
func NewGroup(name, team string) *Group {
	return &Group{
		ID:      uuid.New(),
		Name:    name,
		Team:    team,
		Spacing: DefaultSpacing,
	}
}

// Add appends u. It returns false when u is already a member.
func (g *Group) Add(u *Unit) bool {
	if g.Get(u.ID) != nil {
		return false
	}
	g.units = append(g.units, u)
	return true
}

// Remove drops the unit with id.
func (g *Group) Remove(id uuid.UUID) bool {
	for i, u := range g.units {
		if u.ID == id {
			g.units = append(g.units[:i], g.units[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the member with id, or nil.
func (g *Group) Get(id uuid.UUID) *Unit {
	for _, u := range g.units {
		if u.ID == id {
			return u
		}
	}
	return nil
}

// Units returns the members in join order.
func (g *Group) Units() []*Unit {
	return g.units
}

// Alive returns the living members.
func (g *Group) Alive() []*Unit {
	var alive []*Unit
	for _, u := range g.units {
		if u.Stats.Alive() {
			alive = append(alive, u)
		}
	}
	return alive
}

// Count returns the number of members.
func (g *Group) Count() int {
	return len(g.units)
}

// AliveCount returns the number of living members.
func (g *Group) AliveCount() int {
	return len(g.Alive())
}

// Leader returns the first living member.
func (g *Group) Leader() (*Unit, bool) {
	for _, u := range g.units {
		if u.Stats.Alive() {
			return u, true
		}
	}
	return nil, false
}

// Slots returns n formation offsets on the XZ plane around the origin.
func (g *Group) Slots(n int) []math.Vec3 {
	s := g.Spacing
	if s <= 0 {
		s = DefaultSpacing
	}
	slots := make([]math.Vec3, n)
	center := func(i, count int) float32 { return (float32(i) - float32(count-1)/2) * s }

	switch g.Formation {
	case FormationColumn:
		for i := range slots {
			slots[i].Z = center(i, n)
		}
	case FormationSquare:
		side := int(gomath.Ceil(gomath.Sqrt(float64(n))))
		rows := (n + side - 1) / max(side, 1)
		for i := range slots {
			slots[i].X = center(i%side, side)
			slots[i].Z = center(i/side, rows)
		}
	case FormationCircle:
		if n < 2 {
			break
		}
		radius := max(s, s*float32(n)/(2*gomath.Pi))
		for i := range slots {
			a := 2 * gomath.Pi * float64(i) / float64(n)
			slots[i].X = radius * float32(gomath.Cos(a))
			slots[i].Z = radius * float32(gomath.Sin(a))
		}
	default:
		for i := range slots {
			slots[i].X = center(i, n)
		}
	}
	return slots
}

// Move sends every living member to its formation slot around target.
func (g *Group) Move(target math.Vec3) {
	alive := g.Alive()
	for i, slot := range g.Slots(len(alive)) {
		alive[i].MoveTo(target.Add(slot))
	}
}

// Follow sends every living member along path, ending in formation
// around the last waypoint.
func (g *Group) Follow(path []math.Vec3) {
	if len(path) == 0 {
		return
	}
	alive := g.Alive()
	goal := path[len(path)-1]
	for i, slot := range g.Slots(len(alive)) {
		waypoints := make([]math.Vec3, len(path))
		copy(waypoints, path)
		waypoints[len(waypoints)-1] = goal.Add(slot)
		alive[i].Follow(waypoints)
	}
}

// AttackTarget has every living member attack target and returns the
// number of hits.
func (g *Group) AttackTarget(target *Unit) int {
	hits := 0
	for _, u := range g.Alive() {
		if u.Attack(target) {
			hits++
		}
	}
	return hits
}

// HealAll heals every living member by amount.
func (g *Group) HealAll(amount float32) {
	for _, u := range g.Alive() {
		u.Heal(amount)
	}
}

// Health returns the summed health and maximum health of all members.
func (g *Group) Health() (total, maximum float32) {
	for _, u := range g.units {
		total += u.Stats.Health
		maximum += u.Stats.MaxHealth
	}
	return total, maximum
}

// GroupInfo is a snapshot of a group for display.
type GroupInfo struct {
	ID                uuid.UUID
	Name              string
	Team              string
	Formation         Formation
	Units, Alive      int
	Health, MaxHealth float32
}

// Info returns a snapshot of the group.
func (g *Group) Info() GroupInfo {
	health, maxHealth := g.Health()
	return GroupInfo{
		ID:        g.ID,
		Name:      g.Name,
		Team:      g.Team,
		Formation: g.Formation,
		Units:     g.Count(),
		Alive:     g.AliveCount(),
		Health:    health,
		MaxHealth: maxHealth,
	}
}
