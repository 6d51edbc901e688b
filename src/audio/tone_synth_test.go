package audio

import "testing"

func TestToneSynthClampsAtMaxFrequency(t *testing.T) {
	ts := newToneSynth(1000)
	ts.setFrequency(1500)
	expectEqual(t, ts.frequency, 1000.0)
	ts.setFrequency(500)
	expectEqual(t, ts.frequency, 500.0)
	ts.setMaxFrequency(2000)
	ts.setFrequency(1500)
	expectEqual(t, ts.frequency, 1500.0)
}

func TestToneSynthStartNoteIsNotCapped(t *testing.T) {
	ts := newToneSynth(1000)
	ts.stopNote()
	expectEqual(t, ts.isActive(), false)
	ts.startNote(5000)
	expectEqual(t, ts.isActive(), true)
	expectEqual(t, ts.frequency, 5000.0)
}

func TestToneSynthUpdateHoldsWhenStopped(t *testing.T) {
	voice := NewTheremin()
	ts := newToneSynth(4000)
	ts.setFrequency(330)
	ts.update(voice)
	expectEqual(t, voice.Frequency(), 330.0)
	ts.stopNote()
	ts.setFrequency(660)
	ts.update(voice)
	expectEqual(t, voice.Frequency(), 330.0)
}
