package phase

import (
	"math"
)

// Tau is one full turn in radians
const Tau = 2 * math.Pi

// Instantaneous extracts the unwrapped instantaneous phase of a real signal:
// the angle of its analytic signal, with 2π multiples accumulated so the
// sequence carries no artificial jumps at the ±π crossings.
func Instantaneous(signal []float64) []float64 {
	analytic := AnalyticSignal(signal)

	wrapped := make([]float64, len(analytic))
	for i, v := range analytic {
		wrapped[i] = math.Atan2(imag(v), real(v))
	}

	return Unwrap(wrapped)
}

// Unwrap removes ±π discontinuities from a wrapped phase sequence by adding
// the multiple of 2π that keeps consecutive differences inside (-π, π].
// The input is not modified.
func Unwrap(wrapped []float64) []float64 {
	unwrapped := make([]float64, len(wrapped))
	if len(wrapped) == 0 {
		return unwrapped
	}

	unwrapped[0] = wrapped[0]
	offset := 0.0
	for i := 1; i < len(wrapped); i++ {
		delta := wrapped[i] - wrapped[i-1]
		if delta > math.Pi {
			offset -= Tau
		} else if delta < -math.Pi {
			offset += Tau
		}
		unwrapped[i] = wrapped[i] + offset
	}

	return unwrapped
}

// Wrap maps an angle into [0, 2π)
func Wrap(angle float64) float64 {
	wrapped := math.Mod(angle, Tau)
	if wrapped < 0 {
		wrapped += Tau
	}
	return wrapped
}

// RelativeSeries computes the sample-for-sample phase of a signal relative to
// a reference, wrapped into [0, 2π). Both inputs must have the same length.
func RelativeSeries(signal, reference []float64) []float64 {
	own := Instantaneous(signal)
	ref := Instantaneous(reference)

	relative := make([]float64, len(own))
	for i := range own {
		relative[i] = Wrap(own[i] - ref[i])
	}
	return relative
}
