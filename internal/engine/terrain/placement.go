package terrain

import (
	gomath "math"

	"go.uber.org/zap"

	"github.com/Faultbox/ironvale/internal/engine/geometry"
	"github.com/Faultbox/ironvale/internal/engine/picking"
	"github.com/Faultbox/ironvale/internal/logger"
	"github.com/Faultbox/ironvale/pkg/math"
	"github.com/Faultbox/ironvale/pkg/noise"
)

// Placement mask and anchoring parameters.
const (
	maskScale     = 5.0
	maskThreshold = 0.6

	// AnchorOffset lifts anchors above the surface hit point.
	AnchorOffset = 0.5

	// rayHeadroom is how far above the surface top placement rays start.
	rayHeadroom = 10

	// MaxSamplesPerAxis caps the candidate grid for very large densities.
	MaxSamplesPerAxis = 1024
)

// maskNoise shapes the patchy clearings between tree clusters.
var maskNoise = noise.Params{Octaves: 3, Persistence: 0.5, Lacunarity: 2}

// Raycaster is a surface that placement rays can be cast against.
type Raycaster interface {
	Raycast(r picking.Ray) (picking.Hit, bool)
	Bounds() geometry.Bounds
}

// Placement is the result of one placement pass.
type Placement struct {
	Anchors []math.Vec3 // Accepted anchors in scan order
	Scanned int         // Candidate grid points evaluated
	Dropped int         // Accepted candidates whose ray missed the surface
}

// placementStep returns the grid step and the number of candidates per axis.
func placementStep(regionSize, density float32) (float64, int) {
	if !(regionSize > 0) || !(density > 0) || gomath.IsInf(float64(regionSize), 1) {
		return 0, 0
	}
	size := float64(regionSize)
	step := 1 / (float64(density) * 10)
	if floor := size / MaxSamplesPerAxis; step < floor {
		step = floor
	}
	// Count steps strictly below size. The relative tolerance absorbs the
	// float32 density widening when size is a multiple of step.
	n := int(gomath.Ceil(size / step * (1 - 1e-6)))
	if n < 0 {
		n = 0
	}
	// Anchors are stored as float32, so the last one must stay below the
	// +size/2 edge after rounding.
	half := size / 2
	for n > 0 && float32(-half+float64(n-1)*step) >= float32(half) {
		n--
	}
	return step, n
}

// CandidatesPerAxis returns how many grid positions one axis of the scan covers.
func CandidatesPerAxis(regionSize, density float32) int {
	_, n := placementStep(regionSize, density)
	return n
}

// Place scans a square region centred on the origin and returns the anchors
// where the placement mask passes. Candidates are visited with x in the outer
// loop and z in the inner loop, both ascending. Each accepted candidate is
// dropped onto the surface with a downward ray and lifted by AnchorOffset.
// Candidates whose ray misses the surface are skipped.
func Place(surface Raycaster, regionSize, density float32, seed int) Placement {
	step, n := placementStep(regionSize, density)
	result := Placement{Scanned: n * n}
	if n == 0 {
		return result
	}

	log := logger.Named("terrain")
	half := float64(regionSize) / 2
	top := surface.Bounds().Max[1] + rayHeadroom

	for i := 0; i < n; i++ {
		x := -half + float64(i)*step
		for j := 0; j < n; j++ {
			z := -half + float64(j)*step

			mask := noise.Fractal2D(x/maskScale, z/maskScale, maskNoise, seed)
			if mask <= maskThreshold {
				continue
			}

			ray := picking.Ray{
				Origin:    [3]float32{float32(x), top, float32(z)},
				Direction: picking.Down,
			}
			hit, ok := surface.Raycast(ray)
			if !ok {
				result.Dropped++
				log.Debug("placement ray missed surface",
					zap.Float64("x", x), zap.Float64("z", z))
				continue
			}
			result.Anchors = append(result.Anchors,
				math.Vec3{X: float32(x), Y: hit.Point[1] + AnchorOffset, Z: float32(z)})
		}
	}

	return result
}
