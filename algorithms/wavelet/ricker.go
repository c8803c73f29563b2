package wavelet

import (
	"math"
)

// Ricker samples the Ricker ("Mexican hat") wavelet, the negative normalized
// second derivative of a Gaussian:
//
//	psi(x) = A * (1 - (x/a)^2) * exp(-x^2 / (2a^2)),  A = 2 / (sqrt(3a) * pi^(1/4))
//
// where a is the width parameter. The wavelet is centered on the returned
// slice, symmetric, and integrates to zero.
func Ricker(points int, width float64) []float64 {
	if points <= 0 || width <= 0 {
		return []float64{}
	}

	amplitude := 2.0 / (math.Sqrt(3.0*width) * math.Pow(math.Pi, 0.25))
	widthSq := width * width

	wavelet := make([]float64, points)
	center := float64(points-1) / 2.0
	for i := range wavelet {
		x := float64(i) - center
		xsq := x * x
		wavelet[i] = amplitude * (1.0 - xsq/widthSq) * math.Exp(-xsq/(2.0*widthSq))
	}

	return wavelet
}
