package audio

import (
	"math"
	"sync/atomic"
)

// Parameter limits enforced by the Theremin setters.
const (
	MinFrequency = 1.0
	MinAmplitude = 0.0
	MaxAmplitude = 1.0
)

// Default voice parameters.
const (
	DefaultFrequency    = 220.0
	DefaultAmplitude    = 0.5
	DefaultEffectSpeed  = 0.0005
	DefaultEffectDepth  = 0.0
	DefaultWaveformType = Sine
)

// ----- Theremin ----- //

// Theremin is the synthesis voice: one carrier oscillator plus a tremolo and
// a vibrato. Setters may be called from any goroutine; every parameter is
// published with an independent atomic store. Process must only be called
// from the audio goroutine.
type Theremin struct {
	kind       atomic.Int32
	systemMode atomic.Int32
	outputMode atomic.Int32
	frequency  atomicFloat64
	amplitude  atomicFloat64
	tremActive atomic.Bool
	vibActive  atomic.Bool
	tremSpeed  atomicFloat64
	tremDepth  atomicFloat64
	vibSpeed   atomicFloat64
	vibDepth   atomicFloat64

	// owned by the audio goroutine
	osc  osc
	trem tremolo
	vib  vibrato
}

// NewTheremin returns a voice with the default parameters.
func NewTheremin() *Theremin {
	return NewThereminWith(DefaultWaveformType, DefaultFrequency, DefaultAmplitude)
}

// NewThereminWith returns a voice with the given carrier. Values are stored
// through the clamping setters.
func NewThereminWith(kind WaveformType, freq float64, amp float64) *Theremin {
	t := &Theremin{}
	t.SetType(kind)
	t.SetSystemMode(WaveformSelect)
	t.SetOutputMode(FreqAmp)
	t.SetFrequency(freq)
	t.SetAmplitude(amp)
	t.SetTremoloSpeed(DefaultEffectSpeed)
	t.SetTremoloDepth(DefaultEffectDepth)
	t.SetVibratoSpeed(DefaultEffectSpeed)
	t.SetVibratoDepth(DefaultEffectDepth)
	return t
}

// Init prepares the oscillator for sampleRate with the current parameters.
// It must be called once, before the audio goroutine starts.
func (t *Theremin) Init(sampleRate float64) {
	t.osc.init(sampleRate)
	t.osc.setWaveform(t.Type())
	t.osc.setFrequency(t.Frequency())
	t.osc.setAmplitude(t.Amplitude())
	t.trem.setSpeed(t.TremoloSpeed())
	t.trem.setDepth(t.TremoloDepth())
	t.vib.setSpeed(t.VibratoSpeed())
	t.vib.setDepth(t.VibratoDepth())
}

// Process applies the active effect and returns one sample. Tremolo wins
// when both effects are active. The effect result is written back to the
// cached parameter unless a setter replaced it in the meantime.
func (t *Theremin) Process() float64 {
	t.osc.setWaveform(WaveformType(t.kind.Load()))
	freq := t.frequency.Load()
	amp := t.amplitude.Load()
	if t.tremActive.Load() {
		t.trem.setSpeed(t.tremSpeed.Load())
		t.trem.setDepth(t.tremDepth.Load())
		next := t.trem.process(amp)
		t.amplitude.CompareAndSwap(amp, next)
		amp = next
	} else if t.vibActive.Load() {
		t.vib.setSpeed(t.vibSpeed.Load())
		t.vib.setDepth(t.vibDepth.Load())
		next := t.vib.process(freq)
		t.frequency.CompareAndSwap(freq, next)
		freq = next
	}
	t.osc.setFrequency(freq)
	t.osc.setAmplitude(amp)
	return t.osc.process()
}

// SetType selects the waveform. Unknown values are ignored.
func (t *Theremin) SetType(kind WaveformType) {
	if kind < 0 || kind >= numWaveformTypes {
		return
	}
	t.kind.Store(int32(kind))
}

// SetSystemMode ...
func (t *Theremin) SetSystemMode(s SystemMode) {
	t.systemMode.Store(int32(s))
}

// SetOutputMode ...
func (t *Theremin) SetOutputMode(m OutputMode) {
	if m < 0 || m >= numOutputModes {
		return
	}
	t.outputMode.Store(int32(m))
}

// SetFrequency stores freq, raised to MinFrequency if lower.
func (t *Theremin) SetFrequency(freq float64) {
	t.frequency.Store(clampFrequency(freq))
}

// SetAmplitude stores amp clamped to [0, 1].
func (t *Theremin) SetAmplitude(amp float64) {
	t.amplitude.Store(clampAmplitude(amp))
}

// TremoloActive ...
func (t *Theremin) TremoloActive(active bool) {
	t.tremActive.Store(active)
}

// VibratoActive ...
func (t *Theremin) VibratoActive(active bool) {
	t.vibActive.Store(active)
}

// SetTremoloSpeed sets the tremolo rate in radians per sample.
func (t *Theremin) SetTremoloSpeed(speed float64) {
	t.tremSpeed.Store(clampNonNegative(speed))
}

// SetTremoloDepth ...
func (t *Theremin) SetTremoloDepth(depth float64) {
	t.tremDepth.Store(clampNonNegative(depth))
}

// SetVibratoSpeed sets the vibrato rate in radians per sample.
func (t *Theremin) SetVibratoSpeed(speed float64) {
	t.vibSpeed.Store(clampNonNegative(speed))
}

// SetVibratoDepth sets the vibrato deviation in Hz.
func (t *Theremin) SetVibratoDepth(depth float64) {
	t.vibDepth.Store(clampNonNegative(depth))
}

// Type ...
func (t *Theremin) Type() WaveformType { return WaveformType(t.kind.Load()) }

// SystemMode ...
func (t *Theremin) SystemMode() SystemMode { return SystemMode(t.systemMode.Load()) }

// OutputMode ...
func (t *Theremin) OutputMode() OutputMode { return OutputMode(t.outputMode.Load()) }

// Frequency returns the cached carrier frequency.
func (t *Theremin) Frequency() float64 { return t.frequency.Load() }

// Amplitude returns the cached carrier amplitude.
func (t *Theremin) Amplitude() float64 { return t.amplitude.Load() }

// IsTremoloActive ...
func (t *Theremin) IsTremoloActive() bool { return t.tremActive.Load() }

// IsVibratoActive ...
func (t *Theremin) IsVibratoActive() bool { return t.vibActive.Load() }

// TremoloSpeed ...
func (t *Theremin) TremoloSpeed() float64 { return t.tremSpeed.Load() }

// TremoloDepth ...
func (t *Theremin) TremoloDepth() float64 { return t.tremDepth.Load() }

// VibratoSpeed ...
func (t *Theremin) VibratoSpeed() float64 { return t.vibSpeed.Load() }

// VibratoDepth ...
func (t *Theremin) VibratoDepth() float64 { return t.vibDepth.Load() }

func clampFrequency(freq float64) float64 {
	if math.IsNaN(freq) || freq < MinFrequency {
		return MinFrequency
	}
	return freq
}

func clampAmplitude(amp float64) float64 {
	if math.IsNaN(amp) {
		return MinAmplitude
	}
	return math.Max(MinAmplitude, math.Min(MaxAmplitude, amp))
}

func clampNonNegative(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
