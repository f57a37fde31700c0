package stats

import (
	"math"
)

// critical values of the standard normal distribution, z = Φ⁻¹(1 - (1-level)/2),
// so the 95% level maps to 1.96
var zscores = map[float64]float64{
	0.80:  1.282,
	0.85:  1.440,
	0.90:  1.645,
	0.95:  1.96,
	0.98:  2.326,
	0.99:  2.576,
	0.995: 2.807,
	0.999: 3.291,
}

// ZScore maps a confidence level to its z-score. Only the tabulated levels
// are known; ok is false for anything else.
func ZScore(level float64) (z float64, ok bool) {
	for l, z := range zscores {
		if math.Abs(l-level) < 1e-9 {
			return z, true
		}
	}
	return 0, false
}

// Margin is the half width z*sqrt(p(1-p)/n) of the normal approximation
// interval for an observed proportion p over n draws. It is 0 at p = 0 and
// p = 1 and largest at p = .5.
func Margin(p float64, n int, z float64) float64 {
	if n <= 0 {
		return 0
	}
	v := p * (1 - p) / float64(n)
	if v <= 0 {
		return 0
	}
	return z * math.Sqrt(v)
}

// UpperBound is the one-sided upper confidence bound p + Margin.
func UpperBound(p float64, n int, z float64) float64 {
	return p + Margin(p, n, z)
}
