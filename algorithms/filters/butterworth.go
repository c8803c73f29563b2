package filters

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"
)

// ErrInvalidPassband reports a bandpass specification that cannot produce a
// stable filter: a non-positive low edge, a high edge at or beyond Nyquist,
// or an empty band.
var ErrInvalidPassband = errors.New("invalid passband")

// realPoleTolerance decides when a digital pole's imaginary part is treated
// as numerical noise rather than a genuine conjugate pair.
const realPoleTolerance = 1e-10

// ButterworthBandpass designs an order-N Butterworth bandpass filter as a
// cascade of N biquad sections.
//
// The design follows the classic analog route: Butterworth lowpass prototype
// poles, lowpass-to-bandpass transformation with prewarped band edges, then
// the bilinear transform into the z-domain. Section gains are normalized so
// the cascade has unit magnitude at the geometric center of the passband.
//
// Both band edges must lie strictly inside (0, Nyquist).
func ButterworthBandpass(lowcut, highcut, sampleRate float64, order int) ([]Biquad, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("sample rate must be positive, got %v", sampleRate)
	}
	if order < 1 {
		return nil, fmt.Errorf("filter order must be at least 1, got %d", order)
	}

	nyquist := sampleRate / 2
	if lowcut <= 0 || highcut >= nyquist || lowcut >= highcut {
		return nil, fmt.Errorf("%w: [%v, %v] Hz with Nyquist %v Hz",
			ErrInvalidPassband, lowcut, highcut, nyquist)
	}

	// Prewarp the band edges so the bilinear transform lands them exactly
	fs2 := 2 * sampleRate
	w1 := fs2 * math.Tan(math.Pi*lowcut/sampleRate)
	w2 := fs2 * math.Tan(math.Pi*highcut/sampleRate)
	bw := w2 - w1
	w0sq := w1 * w2

	// Each analog prototype pole maps to two bandpass poles; the bilinear
	// transform carries all 2N of them into the z-plane.
	poles := make([]complex128, 0, 2*order)
	for k := range order {
		theta := math.Pi * float64(2*k+1) / float64(2*order)
		prototype := complex(-math.Sin(theta), math.Cos(theta))

		bp := complex(bw/2, 0) * prototype
		d := cmplx.Sqrt(bp*bp - complex(w0sq, 0))
		for _, s := range []complex128{bp + d, bp - d} {
			z := (complex(fs2, 0) + s) / (complex(fs2, 0) - s)
			poles = append(poles, z)
		}
	}

	sections, err := sectionsFromPoles(poles)
	if err != nil {
		return nil, err
	}
	if len(sections) != order {
		return nil, fmt.Errorf("%w: pole pairing produced %d sections, want %d",
			ErrInvalidPassband, len(sections), order)
	}

	// Unit gain at the geometric center of the requested band
	center := math.Sqrt(lowcut * highcut)
	h := CascadeResponse(sections, center, sampleRate)
	mag := cmplx.Abs(h)
	if mag == 0 {
		return nil, fmt.Errorf("%w: degenerate response at center %v Hz", ErrInvalidPassband, center)
	}
	gain := math.Pow(1/mag, 1/float64(len(sections)))
	for i := range sections {
		sections[i].B0 *= gain
		sections[i].B2 *= gain
	}

	return sections, nil
}

// sectionsFromPoles pairs digital poles into biquad sections. Every section
// carries one zero at z = +1 and one at z = -1, which together place the
// bandpass design's N zeros at DC and N at Nyquist.
func sectionsFromPoles(poles []complex128) ([]Biquad, error) {
	var sections []Biquad
	var reals []float64

	for _, p := range poles {
		if cmplx.Abs(p) >= 1 {
			return nil, fmt.Errorf("%w: pole outside the unit circle", ErrInvalidPassband)
		}
		if math.Abs(imag(p)) <= realPoleTolerance {
			reals = append(reals, real(p))
			continue
		}
		if imag(p) < 0 {
			// Conjugate partner; its pair is handled once
			continue
		}
		sections = append(sections, Biquad{
			B0: 1, B1: 0, B2: -1,
			A1: -2 * real(p),
			A2: real(p)*real(p) + imag(p)*imag(p),
		})
	}

	// Real poles appear in even counts from the quadratic bandpass transform
	if len(reals)%2 != 0 {
		return nil, fmt.Errorf("%w: unpaired real pole", ErrInvalidPassband)
	}
	for i := 0; i+1 < len(reals); i += 2 {
		sections = append(sections, Biquad{
			B0: 1, B1: 0, B2: -1,
			A1: -(reals[i] + reals[i+1]),
			A2: reals[i] * reals[i+1],
		})
	}

	return sections, nil
}
