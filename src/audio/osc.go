package audio

import (
	"math"
)

// ----- OSC ----- //

// osc is the carrier generator. It is owned by a single execution context
// and is not safe for concurrent use.
type osc struct {
	kind       WaveformType
	sampleRate float64
	freq       float64
	amp        float64
	phase      float64 // cycles, 0 <= phase < 1
	phaseInc   float64
}

func (o *osc) init(sampleRate float64) {
	o.sampleRate = sampleRate
	o.kind = Sine
	o.freq = 100
	o.amp = 0.5
	o.phase = 0
	o.updateInc()
}

// switching is immediate; the phase is kept as is
func (o *osc) setWaveform(kind WaveformType) {
	o.kind = kind
}

func (o *osc) setFrequency(freq float64) {
	o.freq = freq
	o.updateInc()
}

func (o *osc) setAmplitude(amp float64) {
	o.amp = amp
}

func (o *osc) updateInc() {
	if o.sampleRate == 0 {
		o.phaseInc = 0
		return
	}
	o.phaseInc = o.freq / o.sampleRate
}

func (o *osc) process() float64 {
	p := o.phase
	value := 0.0
	switch o.kind {
	case Sine:
		value = math.Sin(2.0 * math.Pi * p)
	case Triangle:
		value = 2.0 * (math.Abs(2.0*p-1.0) - 0.5)
	case Saw:
		value = 1.0 - 2.0*p
	case Square:
		if p < 0.5 {
			value = 1
		} else {
			value = -1
		}
	}
	o.phase += o.phaseInc
	o.phase -= math.Floor(o.phase)
	return value * o.amp
}
