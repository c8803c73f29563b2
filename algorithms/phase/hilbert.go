package phase

import (
	"math"

	"github.com/mjibson/go-dsp/fft"
)

// AnalyticSignal computes the analytic signal of a real input via the FFT
// Hilbert method: the negative-frequency half of the spectrum is zeroed and
// the positive half doubled, so the inverse transform's imaginary part is the
// Hilbert transform of the input.
//
// The real part of the result equals the input (up to transform round-off).
func AnalyticSignal(signal []float64) []complex128 {
	n := len(signal)
	if n == 0 {
		return []complex128{}
	}

	spectrum := fft.FFTReal(signal)

	// DC stays, positive frequencies double, negative frequencies vanish.
	// An even length keeps the Nyquist bin unscaled.
	half := n / 2
	if n%2 == 0 {
		for i := 1; i < half; i++ {
			spectrum[i] *= 2
		}
		for i := half + 1; i < n; i++ {
			spectrum[i] = 0
		}
	} else {
		for i := 1; i <= half; i++ {
			spectrum[i] *= 2
		}
		for i := half + 1; i < n; i++ {
			spectrum[i] = 0
		}
	}

	return fft.IFFT(spectrum)
}

// Envelope returns the instantaneous amplitude of a real signal, the modulus
// of its analytic signal.
func Envelope(signal []float64) []float64 {
	analytic := AnalyticSignal(signal)
	envelope := make([]float64, len(analytic))
	for i, v := range analytic {
		envelope[i] = math.Hypot(real(v), imag(v))
	}
	return envelope
}
