// Package units models squads of units moving and fighting on the map.
package units

import "github.com/google/uuid"

// Type is a unit class.
type Type uint8

const (
	TypeSoldier Type = iota
	TypeKnight
	TypeArcher
	TypeMage
	TypeHealer
	TypeTank
)

func (t Type) String() string {
	switch t {
	case TypeSoldier:
		return "soldier"
	case TypeKnight:
		return "knight"
	case TypeArcher:
		return "archer"
	case TypeMage:
		return "mage"
	case TypeHealer:
		return "healer"
	case TypeTank:
		return "tank"
	default:
		return "unknown"
	}
}

// State is what a unit is currently doing.
type State uint8

const (
	StateIdle State = iota
	StateMoving
	StateInCombat
	StateCasting
	StateStunned
	StateDead
	StateRecovering
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateMoving:
		return "moving"
	case StateInCombat:
		return "in_combat"
	case StateCasting:
		return "casting"
	case StateStunned:
		return "stunned"
	case StateDead:
		return "dead"
	case StateRecovering:
		return "recovering"
	default:
		return "unknown"
	}
}

// AbilityKind selects how an ability resolves.
type AbilityKind uint8

const (
	AbilityAttack AbilityKind = iota
	AbilityDefend
	AbilityHeal
	AbilitySpell
	AbilityBuff
	AbilityDebuff
	AbilitySummon
)

func (k AbilityKind) String() string {
	switch k {
	case AbilityAttack:
		return "attack"
	case AbilityDefend:
		return "defend"
	case AbilityHeal:
		return "heal"
	case AbilitySpell:
		return "spell"
	case AbilityBuff:
		return "buff"
	case AbilityDebuff:
		return "debuff"
	case AbilitySummon:
		return "summon"
	default:
		return "unknown"
	}
}

// Stats are a unit's pools and combat numbers.
type Stats struct {
	Health, MaxHealth   float32
	Mana, MaxMana       float32
	Stamina, MaxStamina float32
	AttackPower         float32
	Defense             float32
	Speed               float32 // world units per second
	Accuracy            float32
	Level               int
	Experience          int
}

// Alive reports whether health is above zero.
func (s *Stats) Alive() bool {
	return s.Health > 0
}

// TakeDamage lowers health and returns the damage actually absorbed.
func (s *Stats) TakeDamage(amount float32) float32 {
	taken := min(amount, s.Health)
	s.Health = max(0, s.Health-amount)
	return taken
}

// Heal raises health up to the maximum and returns the amount restored.
func (s *Stats) Heal(amount float32) float32 {
	return restore(&s.Health, s.MaxHealth, amount)
}

// RestoreMana refills mana and returns the amount restored.
func (s *Stats) RestoreMana(amount float32) float32 {
	return restore(&s.Mana, s.MaxMana, amount)
}

// RestoreStamina refills stamina and returns the amount restored.
func (s *Stats) RestoreStamina(amount float32) float32 {
	return restore(&s.Stamina, s.MaxStamina, amount)
}

func restore(pool *float32, limit, amount float32) float32 {
	gained := min(amount, limit-*pool)
	*pool = min(limit, *pool+amount)
	return gained
}

func pools(health, mana, stamina, attack, defense, speed, accuracy float32) Stats {
	return Stats{
		Health: health, MaxHealth: health,
		Mana: mana, MaxMana: mana,
		Stamina: stamina, MaxStamina: stamina,
		AttackPower: attack,
		Defense:     defense,
		Speed:       speed,
		Accuracy:    accuracy,
		Level:       1,
	}
}

// DefaultStats returns the starting stats for t.
func DefaultStats(t Type) Stats {
	switch t {
	case TypeKnight:
		return pools(150, 10, 60, 20, 15, 4.0, 0.7)
	case TypeArcher:
		return pools(60, 30, 70, 18, 2, 6.5, 0.95)
	case TypeMage:
		return pools(50, 100, 30, 5, 1, 4.5, 0.85)
	case TypeHealer:
		return pools(70, 80, 40, 8, 3, 4.0, 0.8)
	case TypeTank:
		return pools(200, 15, 50, 12, 20, 3.0, 0.6)
	default:
		return pools(100, 20, 50, 15, 5, 5.0, 0.8)
	}
}

// Ability is an action a unit can spend mana on.
type Ability struct {
	ID       uuid.UUID
	Name     string
	Kind     AbilityKind
	Damage   float32
	Healing  float32
	Cooldown float32
	Range    float32
	Cost     float32
}

// DefaultAbilities returns the abilities a new unit of type t starts with.
// Knights have none.
func DefaultAbilities(t Type) []Ability {
	switch t {
	case TypeSoldier:
		return []Ability{{ID: uuid.New(), Name: "Slash", Kind: AbilityAttack, Damage: 20, Range: 2, Cost: 10}}
	case TypeHealer:
		return []Ability{{ID: uuid.New(), Name: "Heal", Kind: AbilityHeal, Healing: 50, Range: 5, Cost: 30}}
	case TypeMage:
		return []Ability{{ID: uuid.New(), Name: "Fireball", Kind: AbilitySpell, Damage: 40, Range: 8, Cost: 40}}
	case TypeArcher:
		return []Ability{{ID: uuid.New(), Name: "Arrow Shot", Kind: AbilityAttack, Damage: 25, Range: 10, Cost: 15}}
	case TypeTank:
		return []Ability{{ID: uuid.New(), Name: "Shield Bash", Kind: AbilityDefend, Damage: 10, Range: 2, Cost: 20}}
	default:
		return nil
	}
}
