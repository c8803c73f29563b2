package wavelet

import (
	"math"
)

// CWT computes a continuous wavelet transform of the signal using Ricker
// wavelets. One coefficient row is produced per width, each the same length
// as the signal: the centered convolution of the signal with a wavelet of
// min(10*width, len(signal)) points.
func CWT(signal []float64, widths []float64) [][]float64 {
	coefficients := make([][]float64, len(widths))
	if len(signal) == 0 {
		for i := range coefficients {
			coefficients[i] = []float64{}
		}
		return coefficients
	}

	for i, width := range widths {
		points := int(math.Min(10*width, float64(len(signal))))
		points = max(points, 1)
		coefficients[i] = convolveSame(signal, Ricker(points, width))
	}

	return coefficients
}

// Scalogram returns the per-scale coefficient magnitudes of a transform
func Scalogram(coefficients [][]float64) [][]float64 {
	magnitudes := make([][]float64, len(coefficients))
	for i, row := range coefficients {
		magnitudes[i] = make([]float64, len(row))
		for j, c := range row {
			magnitudes[i][j] = math.Abs(c)
		}
	}
	return magnitudes
}

// convolveSame convolves signal with kernel and returns the centered
// len(signal) samples of the full convolution.
func convolveSame(signal, kernel []float64) []float64 {
	n, m := len(signal), len(kernel)
	if m == 0 {
		return make([]float64, n)
	}

	full := make([]float64, n+m-1)
	for j := range full {
		lo := max(0, j-m+1)
		hi := min(j, n-1)
		sum := 0.0
		for k := lo; k <= hi; k++ {
			sum += signal[k] * kernel[j-k]
		}
		full[j] = sum
	}

	offset := (m - 1) / 2
	result := make([]float64, n)
	copy(result, full[offset:offset+n])
	return result
}
