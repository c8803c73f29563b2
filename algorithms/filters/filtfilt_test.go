package filters

import (
	"math"
	"testing"
)

func testTone(freq float64, n int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / testSampleRate)
	}
	return signal
}

func rms(data []float64) float64 {
	sum := 0.0
	for _, v := range data {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(data)))
}

// middle strips a quarter of the samples from each end, keeping the region
// free of startup transients
func middle(data []float64) []float64 {
	q := len(data) / 4
	return data[q : len(data)-q]
}

func TestFiltFilt_PassbandRoundTrip(t *testing.T) {
	sections, err := ButterworthBandpass(4.5, 5.5, testSampleRate, 5)
	if err != nil {
		t.Fatal(err)
	}

	signal := testTone(5, 10000)
	filtered := FiltFilt(sections, signal)

	if len(filtered) != len(signal) {
		t.Fatalf("length changed: %d -> %d", len(signal), len(filtered))
	}

	ratio := rms(middle(filtered)) / rms(middle(signal))
	if ratio < 0.9 {
		t.Errorf("amplitude ratio = %v, expected > 0.9 for a band-centered tone", ratio)
	}
	if ratio > 1.1 {
		t.Errorf("amplitude ratio = %v, expected no gain above 1.1", ratio)
	}
}

func TestFiltFilt_ZeroPhase(t *testing.T) {
	sections, err := ButterworthBandpass(4.5, 5.5, testSampleRate, 5)
	if err != nil {
		t.Fatal(err)
	}

	const freq = 5.0
	signal := testTone(freq, 10000)
	filtered := FiltFilt(sections, signal)

	// Project the settled output onto quadrature references; any group delay
	// would show up as a non-zero phase angle
	var inPhase, quadrature float64
	for i := 2500; i < 7500; i++ {
		w := 2 * math.Pi * freq * float64(i) / testSampleRate
		inPhase += filtered[i] * math.Sin(w)
		quadrature += filtered[i] * math.Cos(w)
	}

	shift := math.Atan2(quadrature, inPhase)
	if math.Abs(shift) > 0.01 {
		t.Errorf("phase shift = %v rad, expected ~0 for forward-backward filtering", shift)
	}
}

func TestFiltFilt_StopbandRejection(t *testing.T) {
	sections, err := ButterworthBandpass(4.5, 5.5, testSampleRate, 5)
	if err != nil {
		t.Fatal(err)
	}

	signal := testTone(50, 10000)
	filtered := FiltFilt(sections, signal)

	ratio := rms(middle(filtered)) / rms(middle(signal))
	if ratio > 1e-4 {
		t.Errorf("stopband ratio = %v, expected near-total rejection", ratio)
	}
}

func TestFiltFilt_InputUntouched(t *testing.T) {
	sections, err := ButterworthBandpass(18, 22, testSampleRate, 5)
	if err != nil {
		t.Fatal(err)
	}

	signal := testTone(20, 2000)
	original := make([]float64, len(signal))
	copy(original, signal)

	FiltFilt(sections, signal)

	for i := range signal {
		if signal[i] != original[i] {
			t.Fatalf("input modified at sample %d", i)
		}
	}
}

func TestFiltFilt_Degenerate(t *testing.T) {
	sections, err := ButterworthBandpass(18, 22, testSampleRate, 2)
	if err != nil {
		t.Fatal(err)
	}

	if got := FiltFilt(sections, []float64{}); len(got) != 0 {
		t.Errorf("empty signal: got %d samples", len(got))
	}

	// Shorter than the preferred padding still round-trips at full length
	short := testTone(20, 12)
	if got := FiltFilt(sections, short); len(got) != len(short) {
		t.Errorf("short signal: length %d -> %d", len(short), len(got))
	}

	// No sections means identity
	passthrough := FiltFilt(nil, []float64{1, 2, 3})
	for i, want := range []float64{1, 2, 3} {
		if passthrough[i] != want {
			t.Errorf("passthrough[%d] = %v, want %v", i, passthrough[i], want)
		}
	}
}
