// Package noise provides a cheap deterministic value-noise field and its
// multi-octave (fractal) composition.
//
// The base function is the classic fract(sin(dot)*C) hash. It is not gradient
// noise: there is no continuity guarantee between samples, so callers should
// not expect smoothness finer than the sampling scale they pick.
package noise

import "math"

// Hash constants for Noise2D.
const (
	hashX     = 12.9898
	hashY     = 78.233
	hashScale = 43758.5453
)

// Params configures fractal noise.
type Params struct {
	Octaves     int     `yaml:"octaves"`
	Persistence float64 `yaml:"persistence"` // amplitude decay per octave, 0..1
	Lacunarity  float64 `yaml:"lacunarity"`  // frequency growth per octave
}

// DefaultParams returns 4 octaves, persistence 0.5, lacunarity 2.
func DefaultParams() Params {
	return Params{
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2.0,
	}
}

// Noise2D returns a deterministic pseudo-random value in [0, 1) for (x, y, seed).
func Noise2D(x, y float64, seed int) float64 {
	return fract(math.Sin(x*hashX+y*hashY+float64(seed)) * hashScale)
}

// FractalNoise2D sums octaves of Noise2D and normalizes by the total amplitude,
// so the result stays in [0, 1) for any octave count >= 1.
// Each octave uses seed+i to decorrelate it from the others.
func FractalNoise2D(x, y float64, octaves int, persistence, lacunarity float64, seed int) float64 {
	if octaves < 1 {
		return 0
	}
	persistence = clamp01(persistence)

	var sum, total float64
	amplitude := 1.0
	frequency := 1.0
	for i := 0; i < octaves; i++ {
		sum += Noise2D(x*frequency, y*frequency, seed+i) * amplitude
		total += amplitude
		amplitude *= persistence
		frequency *= lacunarity
	}

	v := sum / total
	if v >= 1 {
		return math.Nextafter(1, 0)
	}
	return v
}

// Fractal2D is FractalNoise2D driven by a Params value.
func Fractal2D(x, y float64, p Params, seed int) float64 {
	return FractalNoise2D(x, y, p.Octaves, p.Persistence, p.Lacunarity, seed)
}

// fract returns the fractional part in [0, 1).
// v - floor(v) rounds to exactly 1 for tiny negative v; that case folds to 0.
func fract(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	f := v - math.Floor(v)
	if f >= 1 {
		return 0
	}
	return f
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
