package audio

import (
	"math"
	"testing"
)

func TestOscPeriodicity(t *testing.T) {
	// 48000 / 750 = 64 samples per cycle
	for _, kind := range WaveformTypes() {
		o := &osc{}
		o.init(48000)
		o.setWaveform(kind)
		o.setFrequency(750)
		o.setAmplitude(1)
		samples := make([]float64, 64*4)
		for i := range samples {
			samples[i] = o.process()
		}
		for i := 64; i < len(samples); i++ {
			if samples[i] != samples[i-64] {
				t.Fatalf("%v: sample %d: expected %v, but got: %v", kind, i, samples[i-64], samples[i])
			}
		}
	}
}

func TestOscSineMatchesClosedForm(t *testing.T) {
	o := &osc{}
	o.init(48000)
	o.setFrequency(220)
	o.setAmplitude(0.5)
	for n := 0; n < 1000; n++ {
		expected := 0.5 * math.Sin(2*math.Pi*220*float64(n)/48000)
		actual := o.process()
		if math.Abs(actual-expected) > 1e-9 {
			t.Fatalf("sample %d: expected %v, but got: %v", n, expected, actual)
		}
	}
}

func TestOscWaveformShapes(t *testing.T) {
	// phase steps of 1/8 cycle
	tests := []struct {
		kind     WaveformType
		expected []float64
	}{
		{Sine, []float64{0, math.Sqrt2 / 2, 1, math.Sqrt2 / 2, 0, -math.Sqrt2 / 2, -1, -math.Sqrt2 / 2}},
		{Triangle, []float64{1, 0.5, 0, -0.5, -1, -0.5, 0, 0.5}},
		{Saw, []float64{1, 0.75, 0.5, 0.25, 0, -0.25, -0.5, -0.75}},
		{Square, []float64{1, 1, 1, 1, -1, -1, -1, -1}},
	}
	for _, test := range tests {
		o := &osc{}
		o.init(8000)
		o.setWaveform(test.kind)
		o.setFrequency(1000)
		o.setAmplitude(1)
		for i, expected := range test.expected {
			actual := o.process()
			if math.Abs(actual-expected) > 1e-9 {
				t.Errorf("%v: sample %d: expected %v, but got: %v", test.kind, i, expected, actual)
			}
		}
	}
}

func TestOscWaveformSwitchKeepsPhase(t *testing.T) {
	o := &osc{}
	o.init(8000)
	o.setFrequency(1000)
	o.setAmplitude(1)
	o.process()
	o.process()
	o.setWaveform(Saw)
	expectNearlyEqual(t, o.process(), 0.5)
}

func TestOscWithoutSampleRateIsSilent(t *testing.T) {
	o := &osc{}
	o.setFrequency(440)
	o.setAmplitude(1)
	for i := 0; i < 10; i++ {
		expectEqual(t, o.process(), 0.0)
	}
}
