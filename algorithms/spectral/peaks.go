package spectral

import (
	"math"
	"sort"
)

// Peak represents a detected spectral peak
type Peak struct {
	Frequency  float64 // Peak frequency in Hz
	Magnitude  float64 // Peak magnitude
	Prominence float64 // Height above the higher of the two base valleys
	Bin        int     // FFT bin index
}

// PeakDetector finds prominent local maxima in a magnitude spectrum.
//
// A bin qualifies when it is a strict local maximum, its magnitude reaches
// minHeight, it sits at least minDistance bins away from any taller peak,
// and its prominence reaches minProminence. Detected peaks are ranked by
// descending prominence and capped at maxPeaks.
type PeakDetector struct {
	minHeight     float64
	minDistance   int // Minimum separation between peaks in bins
	minProminence float64
	maxPeaks      int
}

// NewPeakDetector creates a new peak detector with absolute thresholds
func NewPeakDetector(minHeight float64, minDistance int, minProminence float64, maxPeaks int) *PeakDetector {
	minDistance = max(minDistance, 1)
	return &PeakDetector{
		minHeight:     minHeight,
		minDistance:   minDistance,
		minProminence: minProminence,
		maxPeaks:      maxPeaks,
	}
}

// Detect finds the prominent peaks of a magnitude spectrum
func (pd *PeakDetector) Detect(spectrum *Spectrum) []Peak {
	mags := spectrum.Magnitudes
	if len(mags) < 3 {
		return []Peak{}
	}

	// Strict local maxima above the height threshold
	var candidates []int
	for i := 1; i < len(mags)-1; i++ {
		if mags[i] > mags[i-1] && mags[i] > mags[i+1] && mags[i] >= pd.minHeight {
			candidates = append(candidates, i)
		}
	}

	candidates = pd.enforceDistance(mags, candidates)

	peaks := make([]Peak, 0, len(candidates))
	for _, bin := range candidates {
		prom := prominence(mags, bin)
		if prom < pd.minProminence {
			continue
		}
		peaks = append(peaks, Peak{
			Frequency:  spectrum.Frequencies[bin],
			Magnitude:  mags[bin],
			Prominence: prom,
			Bin:        bin,
		})
	}

	// Rank by prominence (descending)
	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].Prominence > peaks[j].Prominence
	})

	if pd.maxPeaks > 0 && len(peaks) > pd.maxPeaks {
		peaks = peaks[:pd.maxPeaks]
	}

	return peaks
}

// enforceDistance suppresses candidates that sit within minDistance bins of a
// taller candidate. Taller peaks win; ties keep the lower bin.
func (pd *PeakDetector) enforceDistance(mags []float64, candidates []int) []int {
	if len(candidates) < 2 {
		return candidates
	}

	// Visit candidates tallest-first
	byHeight := make([]int, len(candidates))
	copy(byHeight, candidates)
	sort.Slice(byHeight, func(i, j int) bool {
		if mags[byHeight[i]] != mags[byHeight[j]] {
			return mags[byHeight[i]] > mags[byHeight[j]]
		}
		return byHeight[i] < byHeight[j]
	})

	suppressed := make(map[int]bool, len(candidates))
	for _, bin := range byHeight {
		if suppressed[bin] {
			continue
		}
		for _, other := range candidates {
			if other == bin || suppressed[other] {
				continue
			}
			if abs(other-bin) < pd.minDistance {
				suppressed[other] = true
			}
		}
	}

	kept := candidates[:0]
	for _, bin := range candidates {
		if !suppressed[bin] {
			kept = append(kept, bin)
		}
	}
	return kept
}

// prominence measures how far a peak rises above the higher of its two base
// valleys. Each base is the minimum magnitude between the peak and the nearest
// taller bin on that side, or the edge of the spectrum.
func prominence(mags []float64, peak int) float64 {
	height := mags[peak]

	leftBase := height
	for j := peak - 1; j >= 0; j-- {
		if mags[j] > height {
			break
		}
		if mags[j] < leftBase {
			leftBase = mags[j]
		}
	}

	rightBase := height
	for j := peak + 1; j < len(mags); j++ {
		if mags[j] > height {
			break
		}
		if mags[j] < rightBase {
			rightBase = mags[j]
		}
	}

	return height - math.Max(leftBase, rightBase)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
