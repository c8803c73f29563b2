package decompose

// AnalysisResult aggregates one full decomposition. It is assembled once per
// AnalyzeSignal call and never mutated afterwards.
//
// Frequencies and Magnitudes are ordered by descending peak prominence and
// always have equal length. Components holds one zero-phase bandpass-filtered
// copy of the input per successfully extracted frequency, each as long as the
// input signal. Phases holds, for every non-reference frequency, its phase
// relative to the lowest extracted frequency, wrapped to [0, 2π) and aligned
// sample-for-sample with the input. Skipped records the per-frequency design
// errors of frequencies that were detected but could not be filtered.
type AnalysisResult struct {
	SampleRate  float64   `json:"sample_rate"`
	Frequencies []float64 `json:"frequencies"`
	Magnitudes  []float64 `json:"magnitudes"`

	// Keyed by frequency; float64 keys do not serialize to JSON
	Components map[float64][]float64 `json:"-"`
	Phases     map[float64][]float64 `json:"-"`
	Skipped    map[float64]error     `json:"-"`
}

// ReferenceFrequency returns the lowest extracted frequency, the one all
// phase series are measured against, and false when nothing was extracted.
func (r *AnalysisResult) ReferenceFrequency() (float64, bool) {
	if len(r.Components) == 0 {
		return 0, false
	}
	first := true
	reference := 0.0
	for f := range r.Components {
		if first || f < reference {
			reference = f
			first = false
		}
	}
	return reference, true
}
