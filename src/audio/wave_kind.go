package audio

import "fmt"

// ----- Waveform Type ----- //

// WaveformType selects the oscillator generation algorithm.
type WaveformType int32

// WaveformType values, in button cycling order.
const (
	Sine WaveformType = iota
	Triangle
	Saw
	Square
	numWaveformTypes
)

var waveformNames = [numWaveformTypes]string{"sine", "triangle", "saw", "square"}

func (w WaveformType) String() string {
	if w < 0 || w >= numWaveformTypes {
		return fmt.Sprintf("waveform(%d)", int32(w))
	}
	return waveformNames[w]
}

// Next returns the following waveform, wrapping around.
func (w WaveformType) Next() WaveformType {
	return WaveformType(wrapIndex(int(w)+1, int(numWaveformTypes)))
}

// Prev returns the preceding waveform, wrapping around.
func (w WaveformType) Prev() WaveformType {
	return WaveformType(wrapIndex(int(w)-1, int(numWaveformTypes)))
}

// ParseWaveformType ...
func ParseWaveformType(s string) (WaveformType, error) {
	for i, name := range waveformNames {
		if name == s {
			return WaveformType(i), nil
		}
	}
	return Sine, fmt.Errorf("%w: %q", ErrUnknownWaveform, s)
}

// WaveformTypes lists every waveform.
func WaveformTypes() []WaveformType {
	return []WaveformType{Sine, Triangle, Saw, Square}
}
