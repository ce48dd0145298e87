package tracer

import "math"

// Halton returns the i'th element of the Halton series with base b.
// i starts from 0. The base b should be >= 2.
// See https://en.wikipedia.org/wiki/Halton_sequence
func Halton(b, i int) float64 {
	i++ // the actual series starts from 1
	bf := float64(b)
	f := 1.0
	r := 0.0

	for i > 0 {
		f = f / bf
		r = r + f*float64(i%b)
		i = int(math.Floor(float64(i) / bf))
	}
	return r
}

// Halton23 returns the i'th element of the 2D low-discrepancy sequence
// built from the base-2 and base-3 Halton series.
func Halton23(i int) (float64, float64) {
	return Halton(2, i), Halton(3, i)
}

// Halton23Scrambled returns Halton23(i) offset by (ru, rv) modulo 1.
// Scrambling with a per-pixel random offset decorrelates the sample
// pattern between neighboring pixels.
func Halton23Scrambled(i int, ru, rv float64) (float64, float64) {
	u, v := Halton23(i)
	return math.Mod(u+ru, 1.0), math.Mod(v+rv, 1.0)
}
