package filters

// FiltFilt applies a biquad cascade forward and then backward over the signal,
// cancelling the filter's phase response. The effective magnitude response is
// the square of the cascade's.
//
// The signal is extended at both ends by an odd reflection before filtering,
// which keeps startup transients away from the returned samples. The input is
// never modified; the result has the same length as the input.
func FiltFilt(sections []Biquad, signal []float64) []float64 {
	if len(signal) == 0 {
		return []float64{}
	}
	if len(sections) == 0 {
		out := make([]float64, len(signal))
		copy(out, signal)
		return out
	}

	// Three times the cascade's polynomial length, capped by the signal
	padlen := 3 * (2*len(sections) + 1)
	if padlen >= len(signal) {
		padlen = len(signal) - 1
	}

	extended := oddExtend(signal, padlen)

	forward := processCascade(sections, extended)
	reverse(forward)
	backward := processCascade(sections, forward)
	reverse(backward)

	result := make([]float64, len(signal))
	copy(result, backward[padlen:padlen+len(signal)])
	return result
}

// oddExtend mirrors padlen samples at each end of the signal, reflected
// through the boundary value so slope is preserved across the edge.
func oddExtend(signal []float64, padlen int) []float64 {
	n := len(signal)
	extended := make([]float64, 0, n+2*padlen)

	first, last := signal[0], signal[n-1]
	for i := padlen; i >= 1; i-- {
		extended = append(extended, 2*first-signal[i])
	}
	extended = append(extended, signal...)
	for i := 1; i <= padlen; i++ {
		extended = append(extended, 2*last-signal[n-1-i])
	}

	return extended
}

func reverse(data []float64) {
	for i, j := 0, len(data)-1; i < j; i, j = i+1, j-1 {
		data[i], data[j] = data[j], data[i]
	}
}
