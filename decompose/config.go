package decompose

import (
	"fmt"
)

// Config holds the tunable policy of a Decomposer. The zero value is not
// usable; start from DefaultConfig.
type Config struct {
	// MaxComponents caps how many peaks are retained, ranked by prominence
	MaxComponents int `json:"max_components"`

	// Peak thresholds, as fractions of the spectrum's maximum magnitude
	PeakHeightFraction     float64 `json:"peak_height_fraction"`
	PeakProminenceFraction float64 `json:"peak_prominence_fraction"`

	// PeakDistanceFraction sets the minimum bin separation between peaks,
	// as a fraction of the signal length
	PeakDistanceFraction float64 `json:"peak_distance_fraction"`

	// FilterOrder is the Butterworth bandpass order used for extraction
	FilterOrder int `json:"filter_order"`

	// MinFrequencyHz guards against the low-frequency passband degeneracy:
	// detected frequencies below it are skipped rather than filtered. Zero
	// leaves only the passband validity checks in force.
	MinFrequencyHz float64 `json:"min_frequency_hz"`
}

// DefaultConfig returns the standard decomposition policy
func DefaultConfig() Config {
	return Config{
		MaxComponents:          5,
		PeakHeightFraction:     0.05,
		PeakProminenceFraction: 0.05,
		PeakDistanceFraction:   0.01,
		FilterOrder:            5,
		MinFrequencyHz:         0,
	}
}

// Validate reports the first configuration problem found
func (c Config) Validate() error {
	if c.MaxComponents < 1 {
		return fmt.Errorf("max components must be at least 1, got %d", c.MaxComponents)
	}
	if c.FilterOrder < 1 {
		return fmt.Errorf("filter order must be at least 1, got %d", c.FilterOrder)
	}
	if c.PeakHeightFraction <= 0 || c.PeakHeightFraction >= 1 {
		return fmt.Errorf("peak height fraction must be in (0, 1), got %v", c.PeakHeightFraction)
	}
	if c.PeakProminenceFraction <= 0 || c.PeakProminenceFraction >= 1 {
		return fmt.Errorf("peak prominence fraction must be in (0, 1), got %v", c.PeakProminenceFraction)
	}
	if c.PeakDistanceFraction <= 0 || c.PeakDistanceFraction >= 1 {
		return fmt.Errorf("peak distance fraction must be in (0, 1), got %v", c.PeakDistanceFraction)
	}
	if c.MinFrequencyHz < 0 {
		return fmt.Errorf("minimum frequency must not be negative, got %v", c.MinFrequencyHz)
	}
	return nil
}
