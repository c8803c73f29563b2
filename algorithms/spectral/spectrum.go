package spectral

import (
	"math/cmplx"
)

// Spectrum holds a single-sided magnitude spectrum of a real signal
type Spectrum struct {
	Magnitudes  []float64 `json:"magnitudes"`  // Scaled magnitude per bin
	Frequencies []float64 `json:"frequencies"` // Bin center frequencies in Hz
	Resolution  float64   `json:"resolution"`  // Frequency resolution (Hz/bin)
}

// MagnitudeSpectrum computes the single-sided magnitude spectrum of a real
// signal, scaled by 2/n so a unit-amplitude sinusoid lands near magnitude 1.
// Only the first n/2 bins are kept; the upper half of a real input's spectrum
// is the mirror image of the lower half.
func MagnitudeSpectrum(signal []float64, sampleRate float64) *Spectrum {
	n := len(signal)
	if n < 2 || sampleRate <= 0 {
		return &Spectrum{
			Magnitudes:  []float64{},
			Frequencies: []float64{},
		}
	}

	transform := NewFFT().Compute(signal)

	bins := n / 2
	resolution := sampleRate / float64(n)
	scale := 2.0 / float64(n)

	magnitudes := make([]float64, bins)
	frequencies := make([]float64, bins)
	for i := range bins {
		magnitudes[i] = scale * cmplx.Abs(transform[i])
		frequencies[i] = float64(i) * resolution
	}

	return &Spectrum{
		Magnitudes:  magnitudes,
		Frequencies: frequencies,
		Resolution:  resolution,
	}
}
