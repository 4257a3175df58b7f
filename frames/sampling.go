package frames

import "math"

// EffectiveFPS clamps the requested sampling rate to [1, sourceFPS].
func EffectiveFPS(requested int, sourceFPS float64) float64 {
	eff := math.Min(float64(requested), sourceFPS)
	return math.Max(eff, 1)
}

// SamplingInterval returns how many decoded frames are advanced between two kept
// frames. Halves round to even and the interval is never below 1.
func SamplingInterval(requested int, sourceFPS float64) int {
	interval := int(math.RoundToEven(sourceFPS / EffectiveFPS(requested, sourceFPS)))
	if interval < 1 {
		return 1
	}
	return interval
}

// Keep reports whether decoded frame n survives sampling.
func Keep(n, interval int) bool {
	return n%interval == 0
}

// SampledCount is the number of frames kept out of total decoded frames.
func SampledCount(total, interval int) int {
	if total <= 0 || interval <= 0 {
		return 0
	}
	return (total-1)/interval + 1
}
