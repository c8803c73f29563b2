package filters

import (
	"math"
	"math/cmplx"
)

// Biquad is a single second-order filter section with normalized a0 = 1.
//
// The difference equation is:
// y[n] = b0*x[n] + b1*x[n-1] + b2*x[n-2] - a1*y[n-1] - a2*y[n-2]
type Biquad struct {
	B0, B1, B2 float64 // Numerator coefficients
	A1, A2     float64 // Denominator coefficients (a0 normalized to 1)

	// Direct Form II state
	s1, s2 float64
}

// Process applies the section to a single sample.
// Uses Direct Form II for numerical stability.
func (b *Biquad) Process(input float64) float64 {
	// w[n] = x[n] - a1*w[n-1] - a2*w[n-2]
	w := input - b.A1*b.s1 - b.A2*b.s2

	// y[n] = b0*w[n] + b1*w[n-1] + b2*w[n-2]
	output := b.B0*w + b.B1*b.s1 + b.B2*b.s2

	b.s2 = b.s1
	b.s1 = w

	return output
}

// Reset clears the section's internal state
func (b *Biquad) Reset() {
	b.s1, b.s2 = 0.0, 0.0
}

// Response computes the section's complex frequency response at z = e^jw
func (b *Biquad) Response(w float64) complex128 {
	z1 := cmplx.Exp(complex(0, -w))
	z2 := z1 * z1

	num := complex(b.B0, 0) + complex(b.B1, 0)*z1 + complex(b.B2, 0)*z2
	den := complex(1, 0) + complex(b.A1, 0)*z1 + complex(b.A2, 0)*z2

	return num / den
}

// CascadeResponse computes the combined response of a section cascade at the
// given frequency in Hz.
func CascadeResponse(sections []Biquad, frequency, sampleRate float64) complex128 {
	w := 2.0 * math.Pi * frequency / sampleRate
	h := complex(1, 0)
	for i := range sections {
		h *= sections[i].Response(w)
	}
	return h
}

// processCascade runs a signal through fresh copies of the cascade, so the
// caller's section states are never disturbed.
func processCascade(sections []Biquad, signal []float64) []float64 {
	work := make([]Biquad, len(sections))
	copy(work, sections)
	for i := range work {
		work[i].Reset()
	}

	output := make([]float64, len(signal))
	for i, sample := range signal {
		y := sample
		for j := range work {
			y = work[j].Process(y)
		}
		output[i] = y
	}
	return output
}
