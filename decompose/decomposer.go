package decompose

import (
	"math"

	"github.com/tmorlan/phasekit/algorithms/common"
	"github.com/tmorlan/phasekit/algorithms/filters"
	"github.com/tmorlan/phasekit/algorithms/phase"
	"github.com/tmorlan/phasekit/algorithms/spectral"
	"github.com/tmorlan/phasekit/logging"
)

// Decomposer performs frequency-domain decomposition of a one-dimensional
// signal: spectral peak detection, per-peak bandpass isolation, and relative
// phase analysis against the lowest detected frequency.
//
// A Decomposer is stateless between calls; concurrent AnalyzeSignal calls on
// independent signals are safe.
type Decomposer struct {
	cfg    Config
	logger logging.Logger
}

// New creates a Decomposer with the given configuration and the global logger
func New(cfg Config) (*Decomposer, error) {
	return NewWithLogger(cfg, logging.GetGlobalLogger())
}

// NewWithLogger creates a Decomposer that logs through the supplied logger
func NewWithLogger(cfg Config, logger logging.Logger) (*Decomposer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = &logging.NoOpLogger{}
	}
	return &Decomposer{
		cfg:    cfg,
		logger: logger.WithFields(logging.Fields{"component": "decomposer"}),
	}, nil
}

// Config returns a copy of the decomposer's configuration
func (d *Decomposer) Config() Config {
	return d.cfg
}

// AnalyzeSignal runs the full pipeline: dominant-frequency detection,
// component extraction, and relative phase analysis. A signal with no
// qualifying peaks yields an empty result, not an error. Frequencies whose
// bandpass cannot be designed are recorded in the result's Skipped map and do
// not abort the analysis.
func (d *Decomposer) AnalyzeSignal(signal []float64, sampleRate float64) (*AnalysisResult, error) {
	if err := d.validateSignal(signal, sampleRate); err != nil {
		return nil, err
	}

	frequencies, magnitudes, err := d.FindDominantFrequencies(signal, sampleRate)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("detected dominant frequencies", logging.Fields{
		"count":       len(frequencies),
		"frequencies": frequencies,
	})

	components, skipped, err := d.ExtractComponents(signal, frequencies, sampleRate)
	if err != nil {
		return nil, err
	}

	phases := d.AnalyzePhases(components)

	return &AnalysisResult{
		SampleRate:  sampleRate,
		Frequencies: frequencies,
		Magnitudes:  magnitudes,
		Components:  components,
		Phases:      phases,
		Skipped:     skipped,
	}, nil
}

// FindDominantFrequencies computes the single-sided magnitude spectrum and
// returns the frequencies and magnitudes of its most prominent peaks, ordered
// by descending prominence and capped at MaxComponents. Both slices always
// have the same length; zero qualifying peaks is a valid result.
func (d *Decomposer) FindDominantFrequencies(signal []float64, sampleRate float64) ([]float64, []float64, error) {
	if sampleRate <= 0 {
		return nil, nil, &InvalidSignalError{Len: len(signal), SampleRate: sampleRate, Reason: "sample rate must be positive"}
	}
	if len(signal) < 2 {
		return nil, nil, &InvalidSignalError{Len: len(signal), SampleRate: sampleRate, Reason: "need at least 2 samples"}
	}

	spectrum := spectral.MagnitudeSpectrum(signal, sampleRate)

	peak := common.Max(spectrum.Magnitudes)
	if peak == 0 {
		return []float64{}, []float64{}, nil
	}

	minDistance := max(1, int(d.cfg.PeakDistanceFraction*float64(len(signal))))
	detector := spectral.NewPeakDetector(
		d.cfg.PeakHeightFraction*peak,
		minDistance,
		d.cfg.PeakProminenceFraction*peak,
		d.cfg.MaxComponents,
	)

	peaks := detector.Detect(spectrum)

	frequencies := make([]float64, len(peaks))
	magnitudes := make([]float64, len(peaks))
	for i, p := range peaks {
		frequencies[i] = p.Frequency
		magnitudes[i] = p.Magnitude
	}
	return frequencies, magnitudes, nil
}

// ExtractComponents isolates each frequency with a zero-phase Butterworth
// bandpass. The passband spans 20% of the center frequency (at least 0.5 Hz)
// and is validated before any filter is designed; a frequency with an invalid
// passband lands in the skipped map with a *FilterDesignError while the rest
// of the frequencies proceed. The input signal is never modified.
func (d *Decomposer) ExtractComponents(signal []float64, frequencies []float64, sampleRate float64) (map[float64][]float64, map[float64]error, error) {
	if err := d.validateSignal(signal, sampleRate); err != nil {
		return nil, nil, err
	}

	components := make(map[float64][]float64, len(frequencies))
	skipped := make(map[float64]error)
	nyquist := sampleRate / 2

	for _, f := range frequencies {
		bandwidth := math.Max(0.5, 0.2*f)
		lowcut := f - bandwidth/2
		highcut := f + bandwidth/2

		if f < d.cfg.MinFrequencyHz || lowcut <= 0 || highcut >= nyquist || lowcut >= highcut {
			designErr := &FilterDesignError{Frequency: f, Lowcut: lowcut, Highcut: highcut, Nyquist: nyquist}
			skipped[f] = designErr
			d.logger.Warn("skipping component with invalid passband", logging.Fields{
				"frequency": f,
				"lowcut":    lowcut,
				"highcut":   highcut,
				"nyquist":   nyquist,
			})
			continue
		}

		sections, err := filters.ButterworthBandpass(lowcut, highcut, sampleRate, d.cfg.FilterOrder)
		if err != nil {
			skipped[f] = &FilterDesignError{Frequency: f, Lowcut: lowcut, Highcut: highcut, Nyquist: nyquist}
			d.logger.Warn("bandpass design failed", logging.Fields{"frequency": f, "error": err.Error()})
			continue
		}

		components[f] = filters.FiltFilt(sections, signal)
	}

	return components, skipped, nil
}

// AnalyzePhases computes, for every non-reference component, its instantaneous
// phase relative to the lowest-frequency component, wrapped into [0, 2π). The
// reference frequency never appears in the output; fewer than two components
// yield an empty map.
func (d *Decomposer) AnalyzePhases(components map[float64][]float64) map[float64][]float64 {
	phases := make(map[float64][]float64)
	if len(components) < 2 {
		return phases
	}

	reference := math.Inf(1)
	for f := range components {
		if f < reference {
			reference = f
		}
	}

	referencePhase := phase.Instantaneous(components[reference])

	for f, component := range components {
		if f == reference {
			continue
		}

		own := phase.Instantaneous(component)
		relative := make([]float64, len(own))
		for i := range own {
			relative[i] = phase.Wrap(own[i] - referencePhase[i])
		}
		phases[f] = relative
	}

	return phases
}

// validateSignal applies the structural feasibility checks shared by the
// pipeline stages. The bandpass design needs roughly two samples per filter
// order before forward-backward filtering makes sense.
func (d *Decomposer) validateSignal(signal []float64, sampleRate float64) error {
	if sampleRate <= 0 {
		return &InvalidSignalError{Len: len(signal), SampleRate: sampleRate, Reason: "sample rate must be positive"}
	}
	minLen := max(2, 2*d.cfg.FilterOrder)
	if len(signal) < minLen {
		return &InvalidSignalError{
			Len:        len(signal),
			SampleRate: sampleRate,
			Reason:     "too short for the configured filter order",
		}
	}
	return nil
}
