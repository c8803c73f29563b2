package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/tmorlan/phasekit/algorithms/common"
	"github.com/tmorlan/phasekit/decompose"
	"github.com/tmorlan/phasekit/logging"
)

type options struct {
	maxComponents  int
	filterOrder    int
	heightFrac     float64
	distanceFrac   float64
	prominenceFrac float64
	minFrequency   float64
	verbose        bool

	// synth flags
	frequencies []float64
	amplitudes  []float64
	duration    float64
	sampleRate  float64
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "phasekit",
		Short:         "Spectral decomposition and phase-coherence analysis",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if opts.verbose {
				logging.GetGlobalLogger().SetLevel(logging.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().IntVar(&opts.maxComponents, "max-components", 5,
		"Maximum number of dominant frequencies to retain")
	rootCmd.PersistentFlags().IntVar(&opts.filterOrder, "filter-order", 5,
		"Butterworth bandpass order used for component extraction")
	rootCmd.PersistentFlags().Float64Var(&opts.heightFrac, "peak-height", 0.05,
		"Peak height threshold as a fraction of the spectrum maximum")
	rootCmd.PersistentFlags().Float64Var(&opts.distanceFrac, "peak-distance", 0.01,
		"Minimum peak separation as a fraction of the signal length")
	rootCmd.PersistentFlags().Float64Var(&opts.prominenceFrac, "peak-prominence", 0.05,
		"Peak prominence threshold as a fraction of the spectrum maximum")
	rootCmd.PersistentFlags().Float64Var(&opts.minFrequency, "min-frequency", 0,
		"Skip detected frequencies below this value (Hz)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false,
		"Show debug output")

	analyzeCmd := &cobra.Command{
		Use:   "analyze <file.wav>",
		Short: "Analyze a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			signal, sampleRate, err := readWAV(args[0])
			if err != nil {
				return err
			}
			return runAnalysis(opts, signal, sampleRate)
		},
	}
	rootCmd.AddCommand(analyzeCmd)

	synthCmd := &cobra.Command{
		Use:   "synth",
		Short: "Analyze a synthesized mix of sinusoids",
		RunE: func(cmd *cobra.Command, args []string) error {
			signal, err := synthesize(opts)
			if err != nil {
				return err
			}
			return runAnalysis(opts, signal, opts.sampleRate)
		},
	}
	synthCmd.Flags().Float64SliceVar(&opts.frequencies, "freqs", []float64{5, 20},
		"Frequencies of the synthesized sinusoids (Hz)")
	synthCmd.Flags().Float64SliceVar(&opts.amplitudes, "amps", []float64{1, 0.5},
		"Amplitudes of the synthesized sinusoids")
	synthCmd.Flags().Float64Var(&opts.duration, "duration", 10,
		"Duration of the synthesized signal (seconds)")
	synthCmd.Flags().Float64Var(&opts.sampleRate, "rate", 1000,
		"Sample rate of the synthesized signal (Hz)")
	rootCmd.AddCommand(synthCmd)

	return rootCmd
}

func (o *options) config() decompose.Config {
	return decompose.Config{
		MaxComponents:          o.maxComponents,
		FilterOrder:            o.filterOrder,
		PeakHeightFraction:     o.heightFrac,
		PeakDistanceFraction:   o.distanceFrac,
		PeakProminenceFraction: o.prominenceFrac,
		MinFrequencyHz:         o.minFrequency,
	}
}

func synthesize(opts *options) ([]float64, error) {
	if len(opts.frequencies) != len(opts.amplitudes) {
		return nil, fmt.Errorf("got %d frequencies but %d amplitudes",
			len(opts.frequencies), len(opts.amplitudes))
	}
	if opts.duration <= 0 || opts.sampleRate <= 0 {
		return nil, fmt.Errorf("duration and rate must be positive")
	}

	n := int(opts.duration * opts.sampleRate)
	signal := make([]float64, n)
	for i := range signal {
		t := float64(i) / opts.sampleRate
		for j, f := range opts.frequencies {
			signal[i] += opts.amplitudes[j] * math.Sin(2*math.Pi*f*t)
		}
	}
	return signal, nil
}

// phaseSummary condenses one relative phase series for display
type phaseSummary struct {
	Frequency float64 `json:"frequency"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"std_dev"`
}

type skipSummary struct {
	Frequency float64 `json:"frequency"`
	Reason    string  `json:"reason"`
}

type analysisSummary struct {
	SampleRate  float64        `json:"sample_rate"`
	Samples     int            `json:"samples"`
	Frequencies []float64      `json:"frequencies"`
	Magnitudes  []float64      `json:"magnitudes"`
	Reference   *float64       `json:"reference_frequency,omitempty"`
	Phases      []phaseSummary `json:"phases"`
	Skipped     []skipSummary  `json:"skipped,omitempty"`
}

func runAnalysis(opts *options, signal []float64, sampleRate float64) error {
	decomposer, err := decompose.New(opts.config())
	if err != nil {
		return err
	}

	result, err := decomposer.AnalyzeSignal(signal, sampleRate)
	if err != nil {
		return err
	}

	summary := analysisSummary{
		SampleRate:  result.SampleRate,
		Samples:     len(signal),
		Frequencies: result.Frequencies,
		Magnitudes:  result.Magnitudes,
		Phases:      []phaseSummary{},
	}

	if reference, ok := result.ReferenceFrequency(); ok {
		summary.Reference = &reference
	}

	for f, series := range result.Phases {
		summary.Phases = append(summary.Phases, phaseSummary{
			Frequency: f,
			Mean:      common.Mean(series),
			StdDev:    common.StandardDeviation(series),
		})
	}
	sort.Slice(summary.Phases, func(i, j int) bool {
		return summary.Phases[i].Frequency < summary.Phases[j].Frequency
	})

	for f, reason := range result.Skipped {
		summary.Skipped = append(summary.Skipped, skipSummary{Frequency: f, Reason: reason.Error()})
	}
	sort.Slice(summary.Skipped, func(i, j int) bool {
		return summary.Skipped[i].Frequency < summary.Skipped[j].Frequency
	})

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}
