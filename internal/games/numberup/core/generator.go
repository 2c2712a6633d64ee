package core

import "math"

// Source supplies uniform random numbers in [0, 1).
// *math/rand.Rand satisfies it; tests substitute scripted sequences.
type Source interface {
	Float64() float64
}

// TileGenerator draws the next tile value, biased toward low values so that
// merges stay frequent. The weight of value v is v^-exponent.
type TileGenerator struct {
	exponent float64
	src      Source
}

// NewTileGenerator creates a generator with the given weighting exponent.
// A non-positive exponent falls back to DefaultWeightExponent.
func NewTileGenerator(src Source, exponent float64) *TileGenerator {
	if exponent <= 0 {
		exponent = DefaultWeightExponent
	}
	return &TileGenerator{exponent: exponent, src: src}
}

// Exponent returns the weighting exponent.
func (t *TileGenerator) Exponent() float64 {
	return t.exponent
}

// SetSource replaces the random source, e.g. after a reseed.
func (t *TileGenerator) SetSource(src Source) {
	t.src = src
}

// weights returns the unnormalised weight of each value 1..highest and their sum.
func (t *TileGenerator) weights(highest int) ([]float64, float64) {
	w := make([]float64, highest)
	total := 0.0
	for v := 1; v <= highest; v++ {
		w[v-1] = math.Pow(float64(v), -t.exponent)
		total += w[v-1]
	}
	return w, total
}

// Probabilities returns the probability of drawing each value 1..highest.
// Index i holds P(i+1).
func (t *TileGenerator) Probabilities(highest int) []float64 {
	if highest <= 1 {
		return []float64{1}
	}
	w, total := t.weights(highest)
	for i := range w {
		w[i] /= total
	}
	return w
}

// Next draws a tile value in [1, highest].
func (t *TileGenerator) Next(highest int) int {
	if highest <= 1 || t.src == nil {
		return 1
	}

	w, total := t.weights(highest)
	sample := t.src.Float64() * total

	cumulative := 0.0
	for i, weight := range w {
		cumulative += weight
		if cumulative >= sample {
			return i + 1
		}
	}

	// Floating-point drift exhausted the walk
	return highest
}
