package audio

import "fmt"

// ----- Output Mode ----- //

// OutputMode decides which synthesis parameter the right sensor and the
// bottom buttons control.
type OutputMode int32

// OutputMode values, in button cycling order.
const (
	FreqAmp OutputMode = iota
	FreqTremolo
	FreqVibrato
	Midi // reserved, no behavior
	numOutputModes
)

var outputModeNames = [numOutputModes]string{"freq-amp", "freq-tremolo", "freq-vibrato", "midi"}

func (m OutputMode) String() string {
	if m < 0 || m >= numOutputModes {
		return fmt.Sprintf("output-mode(%d)", int32(m))
	}
	return outputModeNames[m]
}

// Next ...
func (m OutputMode) Next() OutputMode {
	return OutputMode(wrapIndex(int(m)+1, int(numOutputModes)))
}

// Prev ...
func (m OutputMode) Prev() OutputMode {
	return OutputMode(wrapIndex(int(m)-1, int(numOutputModes)))
}

// ParseOutputMode ...
func ParseOutputMode(s string) (OutputMode, error) {
	for i, name := range outputModeNames {
		if name == s {
			return OutputMode(i), nil
		}
	}
	return FreqAmp, fmt.Errorf("%w: %q", ErrUnknownOutputMode, s)
}

// ----- System Mode ----- //

// SystemMode selects whether the top buttons cycle the waveform or the
// output mode.
type SystemMode int32

// SystemMode values.
const (
	WaveformSelect SystemMode = iota
	OutputModeSelect
)

func (s SystemMode) String() string {
	switch s {
	case WaveformSelect:
		return "waveform"
	case OutputModeSelect:
		return "output-mode"
	}
	return fmt.Sprintf("system-mode(%d)", int32(s))
}

// Toggle flips between the two system modes.
func (s SystemMode) Toggle() SystemMode {
	if s == WaveformSelect {
		return OutputModeSelect
	}
	return WaveformSelect
}

func wrapIndex(i, n int) int {
	return ((i % n) + n) % n
}
