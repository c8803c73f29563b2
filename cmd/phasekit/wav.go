package main

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tmorlan/phasekit/logging"
)

// readWAV decodes a WAV file into float64 samples in [-1, 1] and returns them
// with the file's sample rate. Multi-channel files are reduced to the first
// channel; the analysis pipeline is single-channel.
func readWAV(path string) ([]float64, float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%s is not a valid WAV file", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}

	signal, sampleRate, err := firstChannel(buf, int(decoder.BitDepth))
	if err != nil {
		return nil, 0, fmt.Errorf("decoding %s: %w", path, err)
	}
	return signal, sampleRate, nil
}

func firstChannel(buf *audio.IntBuffer, bitDepth int) ([]float64, float64, error) {
	if buf == nil || buf.Format == nil || len(buf.Data) == 0 {
		return nil, 0, fmt.Errorf("empty PCM buffer")
	}
	if bitDepth <= 0 || bitDepth > 32 {
		return nil, 0, fmt.Errorf("unsupported bit depth %d", bitDepth)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		return nil, 0, fmt.Errorf("no channels in PCM buffer")
	}
	if channels > 1 {
		logging.GetGlobalLogger().Warn("multi-channel input, using first channel",
			logging.Fields{"channels": channels})
	}

	scale := float64(int64(1) << (bitDepth - 1))
	frames := len(buf.Data) / channels
	signal := make([]float64, frames)
	for i := range frames {
		signal[i] = float64(buf.Data[i*channels]) / scale
	}

	return signal, float64(buf.Format.SampleRate), nil
}
