package audio

// ----- Tone Synth ----- //

// toneSynth is the pitch stage between the left sensor and the voice. It
// caps requested frequencies at maxFrequency and can be gated off, which
// holds the last pitch.
type toneSynth struct {
	active       bool
	frequency    float64
	maxFrequency float64
}

func newToneSynth(maxFrequency float64) *toneSynth {
	return &toneSynth{
		active:       true,
		frequency:    0,
		maxFrequency: maxFrequency,
	}
}

func (ts *toneSynth) setFrequency(freq float64) {
	if freq > ts.maxFrequency {
		freq = ts.maxFrequency
	}
	ts.frequency = freq
}

func (ts *toneSynth) setMaxFrequency(freq float64) {
	ts.maxFrequency = freq
}

// startNote activates the stage at freq. Like a direct note start it is not
// capped.
func (ts *toneSynth) startNote(freq float64) {
	ts.active = true
	ts.frequency = freq
}

func (ts *toneSynth) stopNote() {
	ts.active = false
}

func (ts *toneSynth) isActive() bool {
	return ts.active
}

// update forwards the current pitch to voice while the stage is active.
func (ts *toneSynth) update(voice *Theremin) {
	if ts.active {
		voice.SetFrequency(ts.frequency)
	}
}
