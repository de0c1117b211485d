package units

import (
	"testing"

	"github.com/Faultbox/ironvale/pkg/math"
)

func squad(n int) *Group {
	g := NewGroup("squad", "red")
	for i := 0; i < n; i++ {
		g.Add(New("u", TypeSoldier, "red", math.Vec3{}))
	}
	return g
}

func TestGroup_Membership(t *testing.T) {
	g := squad(2)
	extra := New("x", TypeArcher, "red", math.Vec3{})

	if !g.Add(extra) || g.Add(extra) {
		t.Error("Add() should accept a unit once")
	}
	if g.Get(extra.ID) != extra {
		t.Error("Get() did not return the added unit")
	}
	extra.TakeDamage(1000)
	if g.Count() != 3 || g.AliveCount() != 2 {
		t.Errorf("Count(), AliveCount() = %d, %d, want 3, 2", g.Count(), g.AliveCount())
	}
	if !g.Remove(extra.ID) || g.Remove(extra.ID) {
		t.Error("Remove() should succeed once")
	}
	leader, ok := g.Leader()
	if !ok || leader != g.Units()[0] {
		t.Errorf("Leader() = %v, %v, want first unit", leader, ok)
	}
}

func TestGroup_Slots(t *testing.T) {
	tests := []struct {
		formation Formation
		n         int
		want      []math.Vec3
	}{
		{FormationLine, 3, []math.Vec3{{X: -1.5}, {}, {X: 1.5}}},
		{FormationColumn, 2, []math.Vec3{{Z: -0.75}, {Z: 0.75}}},
		{FormationSquare, 4, []math.Vec3{{X: -0.75, Z: -0.75}, {X: 0.75, Z: -0.75}, {X: -0.75, Z: 0.75}, {X: 0.75, Z: 0.75}}},
		{FormationSquare, 3, []math.Vec3{{X: -0.75, Z: -0.75}, {X: 0.75, Z: -0.75}, {X: -0.75, Z: 0.75}}},
		{FormationCircle, 1, []math.Vec3{{}}},
		{FormationCircle, 4, []math.Vec3{{X: 1.5}, {Z: 1.5}, {X: -1.5}, {Z: -1.5}}},
	}
	for _, tt := range tests {
		g := NewGroup("g", "")
		g.Formation = tt.formation
		got := g.Slots(tt.n)
		if len(got) != len(tt.want) {
			t.Fatalf("%v Slots(%d) = %d slots, want %d", tt.formation, tt.n, len(got), len(tt.want))
		}
		for i := range got {
			if !near(got[i].X, tt.want[i].X) || !near(got[i].Z, tt.want[i].Z) || got[i].Y != 0 {
				t.Errorf("%v Slots(%d)[%d] = %v, want %v", tt.formation, tt.n, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseFormation(t *testing.T) {
	for _, f := range []Formation{FormationLine, FormationColumn, FormationSquare, FormationCircle} {
		if got, ok := ParseFormation(f.String()); !ok || got != f {
			t.Errorf("ParseFormation(%q) = %v, %v, want %v", f.String(), got, ok, f)
		}
	}
	if _, ok := ParseFormation("wedge"); ok {
		t.Error(`ParseFormation("wedge") should fail`)
	}
}

func TestGroup_Follow(t *testing.T) {
	g := squad(3)
	g.Units()[2].TakeDamage(1000)
	path := []math.Vec3{{X: 2}, {X: 4, Z: 4}}

	g.Follow(path)
	for i, u := range g.Alive() {
		goal, ok := u.Destination()
		want := math.Vec3{X: 4 - 0.75 + 1.5*float32(i), Z: 4}
		if !ok || !near(goal.X, want.X) || goal.Z != want.Z {
			t.Errorf("unit %d destination = %v, %v, want %v", i, goal, ok, want)
		}
		if u.State != StateMoving {
			t.Errorf("unit %d state = %v, want moving", i, u.State)
		}
	}
	if path[1].X != 4 {
		t.Errorf("Follow() modified the caller's path: %v", path)
	}
	if _, ok := g.Units()[2].Destination(); ok {
		t.Error("dead member should not be given orders")
	}
}

func TestGroup_CombatAndHealth(t *testing.T) {
	g := squad(2)
	g.Units()[1].Position = math.Vec3{X: 10}
	target := New("t", TypeTank, "blue", math.Vec3{X: 1})

	if hits := g.AttackTarget(target); hits != 1 {
		t.Errorf("AttackTarget() = %d hits, want 1", hits)
	}
	if target.Stats.Health != 185 {
		t.Errorf("target health = %v, want 185", target.Stats.Health)
	}

	g.Units()[0].Stats.Health = 50
	g.HealAll(30)
	total, maximum := g.Health()
	if total != 180 || maximum != 200 {
		t.Errorf("Health() = %v/%v, want 180/200", total, maximum)
	}
	info := g.Info()
	if info.Units != 2 || info.Alive != 2 || info.Health != 180 || info.Formation != FormationLine {
		t.Errorf("Info() = %+v", info)
	}
}
