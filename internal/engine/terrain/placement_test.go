package terrain

import (
	gomath "math"
	"testing"

	"github.com/Faultbox/ironvale/internal/engine/geometry"
	"github.com/Faultbox/ironvale/internal/engine/picking"
)

// planeSurface is a flat surface at a fixed height.
type planeSurface struct {
	y    float32
	half float32
	rays int
}

func (p *planeSurface) Raycast(r picking.Ray) (picking.Hit, bool) {
	p.rays++
	x, z := r.Origin[0], r.Origin[2]
	if x < -p.half || x > p.half || z < -p.half || z > p.half {
		return picking.Hit{}, false
	}
	return picking.Hit{Point: [3]float32{x, p.y, z}, Distance: r.Origin[1] - p.y}, true
}

func (p *planeSurface) Bounds() geometry.Bounds {
	return geometry.Bounds{
		Min: [3]float32{-p.half, p.y, -p.half},
		Max: [3]float32{p.half, p.y, p.half},
	}
}

func TestCandidatesPerAxis(t *testing.T) {
	tests := []struct {
		name    string
		size    float32
		density float32
		want    int
	}{
		{"default density", 100, 0.1, 100},
		{"half step", 100, 0.2, 200},
		{"third step", 100, 0.3, 300},
		{"odd region", 37, 0.1, 37},
		{"coarse", 100, 0.01, 10},
		{"zero density", 100, 0, 0},
		{"negative density", 100, -1, 0},
		{"zero region", 0, 0.1, 0},
		{"capped", 100, 1e6, MaxSamplesPerAxis},
		{"infinite", 100, float32(gomath.Inf(1)), MaxSamplesPerAxis},
		{"nan", 100, float32(gomath.NaN()), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CandidatesPerAxis(tt.size, tt.density); got != tt.want {
				t.Errorf("CandidatesPerAxis(%v, %v) = %d, want %d", tt.size, tt.density, got, tt.want)
			}
		})
	}
}

func TestCandidatesStayBelowEdge(t *testing.T) {
	for _, d := range []float32{0.1, 0.2, 0.3, 0.7, DefaultDensity} {
		step, n := placementStep(100, d)
		last := float32(-50 + float64(n-1)*step)
		if last >= 50 {
			t.Errorf("density %v: last candidate = %v, want < 50", d, last)
		}
		if next := -50 + float64(n)*step; float32(next) < 50 {
			t.Errorf("density %v: candidate %v below the edge was not scanned", d, next)
		}
	}
}

func TestCandidatesMonotonicInDensity(t *testing.T) {
	prev := 0
	for d := float32(0.001); d < 500; d *= 1.37 {
		n := CandidatesPerAxis(100, d)
		if n < prev {
			t.Fatalf("CandidatesPerAxis(100, %v) = %d, less than %d at lower density", d, n, prev)
		}
		prev = n
	}
}

func TestPlaceAnchorsSitOnSurface(t *testing.T) {
	surface := &planeSurface{y: 3, half: 50}
	p := Place(surface, 100, 0.1, 42)

	if p.Scanned != 100*100 {
		t.Errorf("Scanned = %d, want %d", p.Scanned, 100*100)
	}
	if len(p.Anchors) == 0 {
		t.Fatal("Place() accepted no anchors")
	}
	if len(p.Anchors) >= p.Scanned {
		t.Errorf("Place() accepted %d of %d, want a patchy subset", len(p.Anchors), p.Scanned)
	}
	if surface.rays != len(p.Anchors) {
		t.Errorf("rays cast = %d, want one per accepted anchor (%d)", surface.rays, len(p.Anchors))
	}
	for _, a := range p.Anchors {
		if a.Y != 3.5 {
			t.Fatalf("anchor %v y = %v, want 3.5", a, a.Y)
		}
		if a.X < -50 || a.X >= 50 || a.Z < -50 || a.Z >= 50 {
			t.Fatalf("anchor %v outside region", a)
		}
	}
}

func TestPlaceScanOrder(t *testing.T) {
	p := Place(&planeSurface{half: 50}, 100, 0.2, 3)

	for i := 1; i < len(p.Anchors); i++ {
		a, b := p.Anchors[i-1], p.Anchors[i]
		if b.X < a.X || (b.X == a.X && b.Z <= a.Z) {
			t.Fatalf("anchors %d and %d out of order: %v then %v", i-1, i, a, b)
		}
	}
}

func TestPlaceDeterministic(t *testing.T) {
	a := Place(&planeSurface{half: 50}, 100, 0.1, 9)
	b := Place(&planeSurface{half: 50}, 100, 0.1, 9)
	c := Place(&planeSurface{half: 50}, 100, 0.1, 10)

	if len(a.Anchors) != len(b.Anchors) {
		t.Fatalf("same seed: %d vs %d anchors", len(a.Anchors), len(b.Anchors))
	}
	for i := range a.Anchors {
		if a.Anchors[i] != b.Anchors[i] {
			t.Fatalf("anchor %d differs: %v vs %v", i, a.Anchors[i], b.Anchors[i])
		}
	}

	differ := len(a.Anchors) != len(c.Anchors)
	for i := 0; !differ && i < len(a.Anchors); i++ {
		differ = a.Anchors[i] != c.Anchors[i]
	}
	if !differ {
		t.Error("different seeds produced identical placement")
	}
}

func TestPlaceDropsMisses(t *testing.T) {
	// Surface covers only the middle of the scanned region.
	surface := &planeSurface{half: 10}
	p := Place(surface, 100, 0.1, 42)

	if p.Dropped == 0 {
		t.Fatal("Dropped = 0, want misses outside the surface")
	}
	if surface.rays != len(p.Anchors)+p.Dropped {
		t.Errorf("rays = %d, want anchors+dropped = %d", surface.rays, len(p.Anchors)+p.Dropped)
	}
	for _, a := range p.Anchors {
		if a.X < -10 || a.X > 10 || a.Z < -10 || a.Z > 10 {
			t.Fatalf("anchor %v outside surface", a)
		}
	}
}

func TestPlaceEmpty(t *testing.T) {
	surface := &planeSurface{half: 50}
	p := Place(surface, 100, 0, 1)
	if p.Scanned != 0 || len(p.Anchors) != 0 || surface.rays != 0 {
		t.Errorf("Place(density 0) = %+v, rays %d, want nothing", p, surface.rays)
	}
}

func TestPlaceCappedDensityTerminates(t *testing.T) {
	p := Place(&planeSurface{half: 50}, 100, 1e9, 1)
	if p.Scanned != MaxSamplesPerAxis*MaxSamplesPerAxis {
		t.Errorf("Scanned = %d, want %d", p.Scanned, MaxSamplesPerAxis*MaxSamplesPerAxis)
	}
}
