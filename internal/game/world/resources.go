package world

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"github.com/Faultbox/ironvale/pkg/math"
)

// Resource is a harvestable material.
type Resource uint8

const (
	ResourceWood Resource = iota
	ResourceStone
	ResourceGold
	ResourceFood
)

// Resources lists every resource kind.
var Resources = []Resource{ResourceWood, ResourceStone, ResourceGold, ResourceFood}

func (r Resource) String() string {
	switch r {
	case ResourceWood:
		return "wood"
	case ResourceStone:
		return "stone"
	case ResourceGold:
		return "gold"
	case ResourceFood:
		return "food"
	default:
		return "unknown"
	}
}

// Color returns the marker tint for r.
func (r Resource) Color() [4]float32 {
	switch r {
	case ResourceWood:
		return [4]float32{0.55, 0.27, 0.07, 1}
	case ResourceStone:
		return [4]float32{0.66, 0.66, 0.66, 1}
	case ResourceGold:
		return [4]float32{1, 0.84, 0, 1}
	default:
		return [4]float32{0.13, 0.55, 0.13, 1}
	}
}

// Deposit is a resource pile sitting on one grid cell.
type Deposit struct {
	X, Y     int
	Resource Resource
	Amount   int
}

// Deposit amounts rolled at spawn, inclusive.
const (
	minDepositAmount = 5
	maxDepositAmount = 20
)

var (
	// ErrNoCell is returned for a cell outside the grid.
	ErrNoCell = errors.New("cell outside grid")
	// ErrOnWater is returned when placing a deposit on water.
	ErrOnWater = errors.New("cell is water")
	// ErrBadAmount is returned for a non-positive deposit amount.
	ErrBadAmount = errors.New("amount must be positive")
)

type spawnRate struct {
	resource Resource
	chance   float64
}

// spawnRates is the chance per cell type that a cell spawns each resource.
// A cell holds one deposit, so the first roll that hits wins.
var spawnRates = map[CellType][]spawnRate{
	CellGrass:    {{ResourceFood, 0.15}},
	CellForest:   {{ResourceWood, 0.25}, {ResourceFood, 0.05}},
	CellSteep:    {{ResourceStone, 0.20}, {ResourceGold, 0.10}},
	CellMountain: {{ResourceStone, 0.20}, {ResourceGold, 0.10}},
}

// spawnDeposits scatters deposits over g. The same grid and seed give the
// same deposits.
func spawnDeposits(g *NavGrid, seed int) map[[2]int]Deposit {
	rng := rand.New(rand.NewPCG(uint64(seed), 0x1f0d5eed))
	deposits := make(map[[2]int]Deposit)
	for y := 0; y < g.Height; y++ {
		for x := 0; x < g.Width; x++ {
			for _, rate := range spawnRates[g.Cell(x, y)] {
				if rng.Float64() >= rate.chance {
					continue
				}
				deposits[[2]int{x, y}] = Deposit{
					X:        x,
					Y:        y,
					Resource: rate.resource,
					Amount:   minDepositAmount + rng.IntN(maxDepositAmount-minDepositAmount+1),
				}
				break
			}
		}
	}
	return deposits
}

// PlaceResource puts a deposit on cell (x, y), replacing any deposit there.
func (m *Map) PlaceResource(x, y int, r Resource, amount int) error {
	if m.grid == nil {
		return ErrNotBuilt
	}
	if !m.grid.InBounds(x, y) {
		return fmt.Errorf("place %s at (%d, %d): %w", r, x, y, ErrNoCell)
	}
	if m.grid.Cell(x, y) == CellWater {
		return fmt.Errorf("place %s at (%d, %d): %w", r, x, y, ErrOnWater)
	}
	if amount <= 0 {
		return fmt.Errorf("place %s at (%d, %d): %w", r, x, y, ErrBadAmount)
	}
	if m.deposits == nil {
		m.deposits = make(map[[2]int]Deposit)
	}
	m.deposits[[2]int{x, y}] = Deposit{X: x, Y: y, Resource: r, Amount: amount}
	return nil
}

// Harvest takes up to amount from the deposit on (x, y) and returns what
// was taken. An emptied deposit is removed.
func (m *Map) Harvest(x, y, amount int) (Resource, int, bool) {
	key := [2]int{x, y}
	d, ok := m.deposits[key]
	if !ok || amount <= 0 {
		return 0, 0, false
	}
	taken := min(amount, d.Amount)
	d.Amount -= taken
	if d.Amount == 0 {
		delete(m.deposits, key)
	} else {
		m.deposits[key] = d
	}
	return d.Resource, taken, true
}

// DepositAt returns the deposit on (x, y).
func (m *Map) DepositAt(x, y int) (Deposit, bool) {
	d, ok := m.deposits[[2]int{x, y}]
	return d, ok
}

// Deposits returns every deposit in row-major cell order.
func (m *Map) Deposits() []Deposit {
	out := make([]Deposit, 0, len(m.deposits))
	for _, d := range m.deposits {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Totals returns the remaining amount of each resource on the map.
func (m *Map) Totals() map[Resource]int {
	totals := make(map[Resource]int, len(Resources))
	for _, d := range m.deposits {
		totals[d.Resource] += d.Amount
	}
	return totals
}

// Visible returns the cells within radius world units of center, as a
// square clipped to the grid.
func (m *Map) Visible(center math.Vec3, radius float32) [][2]int {
	if m.grid == nil {
		return nil
	}
	cx, cy, ok := m.grid.WorldToCell(center.X, center.Z)
	if !ok {
		return nil
	}
	r := int(radius / m.grid.CellSize)
	return m.grid.VisibleCells(cx, cy, r)
}

// Info summarizes a built map.
type Info struct {
	Width, Height int
	Cells         map[CellType]int
	Deposits      map[Resource]int // deposit count per resource
	Totals        map[Resource]int // remaining amount per resource
}

// Info returns the cell and resource distribution, or a zero Info before
// Rebuild.
func (m *Map) Info() Info {
	if m.grid == nil {
		return Info{}
	}
	counts := make(map[Resource]int, len(Resources))
	for _, d := range m.deposits {
		counts[d.Resource]++
	}
	return Info{
		Width:    m.grid.Width,
		Height:   m.grid.Height,
		Cells:    m.grid.Counts(),
		Deposits: counts,
		Totals:   m.Totals(),
	}
}
