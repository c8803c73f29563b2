package spectral

import (
	"math"
	"testing"
)

// makeSpectrum wraps raw magnitudes with unit bin width for peak tests
func makeSpectrum(mags []float64) *Spectrum {
	freqs := make([]float64, len(mags))
	for i := range freqs {
		freqs[i] = float64(i)
	}
	return &Spectrum{Magnitudes: mags, Frequencies: freqs, Resolution: 1}
}

func TestPeakDetector_SinglePeak(t *testing.T) {
	mags := []float64{0, 0.2, 1.0, 0.2, 0}
	peaks := NewPeakDetector(0.05, 1, 0.05, 5).Detect(makeSpectrum(mags))

	if len(peaks) != 1 {
		t.Fatalf("expected 1 peak, got %d", len(peaks))
	}
	p := peaks[0]
	if p.Bin != 2 || p.Frequency != 2 {
		t.Errorf("peak at bin %d (%v Hz), expected bin 2", p.Bin, p.Frequency)
	}
	if p.Magnitude != 1.0 {
		t.Errorf("magnitude = %v, expected 1.0", p.Magnitude)
	}
	if math.Abs(p.Prominence-1.0) > 1e-12 {
		t.Errorf("prominence = %v, expected 1.0", p.Prominence)
	}
}

func TestPeakDetector_ProminenceRanking(t *testing.T) {
	// Two isolated peaks: ranking must follow prominence, not position
	mags := []float64{0, 0.5, 0, 0, 0, 1.0, 0, 0}
	peaks := NewPeakDetector(0.05, 1, 0.05, 5).Detect(makeSpectrum(mags))

	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks, got %d", len(peaks))
	}
	if peaks[0].Bin != 5 || peaks[1].Bin != 1 {
		t.Errorf("prominence order: got bins %d, %d; expected 5, 1", peaks[0].Bin, peaks[1].Bin)
	}
}

func TestPeakDetector_HeightThreshold(t *testing.T) {
	mags := []float64{0, 0.02, 0, 0, 1.0, 0, 0}
	peaks := NewPeakDetector(0.05, 1, 0.05, 5).Detect(makeSpectrum(mags))

	if len(peaks) != 1 {
		t.Fatalf("expected the sub-threshold peak to be dropped, got %d peaks", len(peaks))
	}
	if peaks[0].Bin != 4 {
		t.Errorf("kept bin %d, expected 4", peaks[0].Bin)
	}
}

func TestPeakDetector_DistanceSuppression(t *testing.T) {
	// Two local maxima 2 bins apart; the taller one wins under minDistance 3
	mags := []float64{0, 0.8, 0.1, 1.0, 0, 0, 0, 0.6, 0}
	peaks := NewPeakDetector(0.05, 3, 0.05, 5).Detect(makeSpectrum(mags))

	if len(peaks) != 2 {
		t.Fatalf("expected 2 peaks after suppression, got %d", len(peaks))
	}
	if peaks[0].Bin != 3 {
		t.Errorf("top peak at bin %d, expected 3", peaks[0].Bin)
	}
	if peaks[1].Bin != 7 {
		t.Errorf("second peak at bin %d, expected 7", peaks[1].Bin)
	}
}

func TestPeakDetector_ProminenceThreshold(t *testing.T) {
	// A small bump on the shoulder of a large peak: tall enough to pass the
	// height check but barely rising above its valley
	mags := []float64{0, 0.2, 1.0, 0.64, 0.65, 0.6, 0.3, 0}
	peaks := NewPeakDetector(0.05, 1, 0.05, 5).Detect(makeSpectrum(mags))

	if len(peaks) != 1 {
		t.Fatalf("expected only the main peak, got %d peaks", len(peaks))
	}
	if peaks[0].Bin != 2 {
		t.Errorf("kept bin %d, expected 2", peaks[0].Bin)
	}
}

func TestPeakDetector_MaxPeaksCap(t *testing.T) {
	mags := make([]float64, 40)
	for i := 0; i < 8; i++ {
		mags[2+i*5] = 0.3 + 0.1*float64(i)
	}
	peaks := NewPeakDetector(0.05, 1, 0.05, 5).Detect(makeSpectrum(mags))

	if len(peaks) != 5 {
		t.Fatalf("expected cap at 5 peaks, got %d", len(peaks))
	}
	for i := 1; i < len(peaks); i++ {
		if peaks[i].Prominence > peaks[i-1].Prominence {
			t.Errorf("peaks not in descending prominence order at %d", i)
		}
	}
}

func TestPeakDetector_NoPeaks(t *testing.T) {
	cases := []struct {
		name string
		mags []float64
	}{
		{"flat", []float64{0.5, 0.5, 0.5, 0.5}},
		{"all zero", make([]float64, 16)},
		{"monotone", []float64{0, 0.1, 0.2, 0.3, 0.4}},
		{"too short", []float64{0, 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			peaks := NewPeakDetector(0.01, 1, 0.01, 5).Detect(makeSpectrum(tc.mags))
			if len(peaks) != 0 {
				t.Errorf("expected no peaks, got %d", len(peaks))
			}
		})
	}
}

func TestPeakDetector_SpectrumFrequencies(t *testing.T) {
	signal := sine(50, 1.0, 1000, 1000)
	spectrum := MagnitudeSpectrum(signal, 1000)
	peaks := NewPeakDetector(0.05, 10, 0.05, 5).Detect(spectrum)

	if len(peaks) != 1 {
		t.Fatalf("expected 1 peak, got %d", len(peaks))
	}
	if math.Abs(peaks[0].Frequency-50) > spectrum.Resolution {
		t.Errorf("detected %v Hz, expected within one bin of 50 Hz", peaks[0].Frequency)
	}
}
