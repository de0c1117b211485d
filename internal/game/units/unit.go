package units

import (
	"github.com/google/uuid"

	"github.com/Faultbox/ironvale/pkg/math"
)

// AttackRange is how close a plain attack must be, in world units on the
// ground plane.
const AttackRange = 2.0

// Effect names applied by abilities and statuses.
const (
	EffectAttack = "attack"
	EffectHeal   = "heal"
	EffectDefend = "defend"
	EffectSpell  = "spell_cast"
	EffectStun   = "stun"
	EffectSlow   = "slow"
)

// slowFactor scales speed while slowed.
const slowFactor = 0.5

// Effect is a timed modifier on a unit.
type Effect struct {
	Name      string
	Remaining float32 // seconds
	Value     float32 // effect-specific, e.g. a defense bonus
}

// Unit is a single controllable unit.
type Unit struct {
	ID        uuid.UUID
	Name      string
	Type      Type
	Team      string
	Position  math.Vec3
	State     State
	Stats     Stats
	Abilities []Ability
	Effects   []Effect

	waypoints []math.Vec3
}

// New returns a unit of type t with default stats and abilities.
func New(name string, t Type, team string, pos math.Vec3) *Unit {
	return &Unit{
		ID:        uuid.New(),
		Name:      name,
		Type:      t,
		Team:      team,
		Position:  pos,
		Stats:     DefaultStats(t),
		Abilities: DefaultAbilities(t),
	}
}

// Ability returns the unit's ability with the given name.
func (u *Unit) Ability(name string) (Ability, bool) {
	for _, a := range u.Abilities {
		if a.Name == name {
			return a, true
		}
	}
	return Ability{}, false
}

// CanUse reports whether the unit is alive and has the mana for a.
func (u *Unit) CanUse(a Ability) bool {
	return u.Stats.Alive() && a.Cost <= u.Stats.Mana
}

// Use spends mana on a and applies it. Attacks, heals and spells need a
// target; defend applies to the unit itself.
func (u *Unit) Use(a Ability, target *Unit) bool {
	if !u.CanUse(a) {
		return false
	}
	if target == nil && a.Kind != AbilityDefend {
		return false
	}
	u.Stats.Mana = max(0, u.Stats.Mana-a.Cost)

	switch a.Kind {
	case AbilityAttack:
		target.TakeDamage(a.Damage + u.Stats.AttackPower*0.5)
		u.AddEffect(EffectAttack, 0.1, 0)
	case AbilityHeal:
		target.Heal(a.Healing)
		u.AddEffect(EffectHeal, 0.1, 0)
	case AbilityDefend:
		u.AddEffect(EffectDefend, 5, a.Damage)
		u.State = StateIdle
	case AbilitySpell:
		target.TakeDamage(a.Damage)
		u.AddEffect(EffectSpell, 1, 0)
	default:
		return false
	}
	return true
}

// AddEffect applies a timed effect.
func (u *Unit) AddEffect(name string, duration, value float32) {
	u.Effects = append(u.Effects, Effect{Name: name, Remaining: duration, Value: value})
}

// RemoveEffect drops every effect with the given name.
func (u *Unit) RemoveEffect(name string) {
	kept := u.Effects[:0]
	for _, e := range u.Effects {
		if e.Name != name {
			kept = append(kept, e)
		}
	}
	u.Effects = kept
}

// HasEffect reports whether an effect with the given name is active.
func (u *Unit) HasEffect(name string) bool {
	for _, e := range u.Effects {
		if e.Name == name {
			return true
		}
	}
	return false
}

// MoveTo sends the unit straight to p.
func (u *Unit) MoveTo(p math.Vec3) {
	u.Follow([]math.Vec3{p})
}

// Follow sends the unit along waypoints in order.
func (u *Unit) Follow(waypoints []math.Vec3) {
	if len(waypoints) == 0 || u.State == StateDead {
		return
	}
	u.waypoints = append(u.waypoints[:0], waypoints...)
	if u.State != StateStunned {
		u.State = StateMoving
	}
}

// Destination returns the final waypoint while the unit is travelling.
func (u *Unit) Destination() (math.Vec3, bool) {
	if len(u.waypoints) == 0 {
		return math.Vec3{}, false
	}
	return u.waypoints[len(u.waypoints)-1], true
}

// Speed returns the unit's current speed after statuses.
func (u *Unit) Speed() float32 {
	if u.HasEffect(EffectSlow) {
		return u.Stats.Speed * slowFactor
	}
	return u.Stats.Speed
}

// Advance moves the unit up to distance along its waypoints on the ground
// plane. It returns true when the last waypoint is reached.
func (u *Unit) Advance(distance float32) bool {
	if u.State != StateMoving {
		return false
	}
	for distance > 0 && len(u.waypoints) > 0 {
		next := u.waypoints[0]
		here, there := u.Position.XZ(), next.XZ()
		gap := here.Distance(there)
		if gap <= distance {
			u.Position = next
			u.waypoints = u.waypoints[1:]
			distance -= gap
			continue
		}
		step := here.Add(there.Sub(here).Normalize().Scale(distance))
		u.Position.X, u.Position.Z = step.X, step.Y
		distance = 0
	}
	if len(u.waypoints) > 0 {
		return false
	}
	u.waypoints = nil
	u.State = StateIdle
	return true
}

// GroundDistance is the distance between two units on the XZ plane.
func (u *Unit) GroundDistance(other *Unit) float32 {
	return u.Position.XZ().Distance(other.Position.XZ())
}

// Attack hits target with the unit's attack power when both are alive and
// within AttackRange. Both units enter combat.
func (u *Unit) Attack(target *Unit) bool {
	if !u.Stats.Alive() || !target.Stats.Alive() {
		return false
	}
	if u.GroundDistance(target) > AttackRange {
		return false
	}
	target.TakeDamage(u.Stats.AttackPower)
	u.State = StateInCombat
	if target.State != StateDead {
		target.State = StateInCombat
	}
	return true
}

// TakeDamage lowers health and reports whether the unit died.
func (u *Unit) TakeDamage(amount float32) bool {
	u.Stats.TakeDamage(amount)
	if u.Stats.Alive() {
		return false
	}
	u.State = StateDead
	u.waypoints = nil
	return true
}

// Heal restores health.
func (u *Unit) Heal(amount float32) {
	u.Stats.Heal(amount)
}

// Stun stops the unit for duration seconds.
func (u *Unit) Stun(duration float32) {
	if u.State == StateDead {
		return
	}
	u.State = StateStunned
	u.AddEffect(EffectStun, duration, 0)
}

// Slow halves the unit's speed for duration seconds.
func (u *Unit) Slow(duration float32) {
	u.AddEffect(EffectSlow, duration, slowFactor)
}

// Reset returns a living, unstunned unit to idle and drops its orders.
func (u *Unit) Reset() {
	if u.State == StateDead || u.State == StateStunned {
		return
	}
	u.State = StateIdle
	u.waypoints = nil
}

// tick ages effects by dt and lifts an expired stun.
func (u *Unit) tick(dt float32) {
	kept := u.Effects[:0]
	for _, e := range u.Effects {
		e.Remaining -= dt
		if e.Remaining > 0 {
			kept = append(kept, e)
		}
	}
	u.Effects = kept

	if u.State == StateStunned && !u.HasEffect(EffectStun) {
		u.State = StateIdle
		if len(u.waypoints) > 0 {
			u.State = StateMoving
		}
	}
}

// Info is a snapshot of a unit for display.
type Info struct {
	ID        uuid.UUID
	Name      string
	Type      Type
	State     State
	Team      string
	Position  math.Vec3
	Health    float32
	MaxHealth float32
	Mana      float32
	Level     int
}

// Info returns a snapshot of the unit.
func (u *Unit) Info() Info {
	return Info{
		ID:        u.ID,
		Name:      u.Name,
		Type:      u.Type,
		State:     u.State,
		Team:      u.Team,
		Position:  u.Position,
		Health:    u.Stats.Health,
		MaxHealth: u.Stats.MaxHealth,
		Mana:      u.Stats.Mana,
		Level:     u.Stats.Level,
	}
}
