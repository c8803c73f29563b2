package decompose

import (
	"fmt"

	"github.com/tmorlan/phasekit/algorithms/filters"
)

// InvalidSignalError reports an input that cannot be analyzed at all: too few
// samples for the configured filter order, or a non-positive sample rate.
type InvalidSignalError struct {
	Len        int
	SampleRate float64
	Reason     string
}

func (e *InvalidSignalError) Error() string {
	return fmt.Sprintf("invalid signal (%d samples at %v Hz): %s", e.Len, e.SampleRate, e.Reason)
}

// FilterDesignError reports a detected frequency whose bandpass cannot be
// designed: the 20%-bandwidth rule produced a passband outside (0, Nyquist).
// Such frequencies are skipped; the rest of the decomposition proceeds.
type FilterDesignError struct {
	Frequency float64
	Lowcut    float64
	Highcut   float64
	Nyquist   float64
}

func (e *FilterDesignError) Error() string {
	return fmt.Sprintf("cannot design bandpass for %v Hz: passband [%v, %v] Hz outside (0, %v) Hz",
		e.Frequency, e.Lowcut, e.Highcut, e.Nyquist)
}

func (e *FilterDesignError) Unwrap() error {
	return filters.ErrInvalidPassband
}
