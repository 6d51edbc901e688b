package audio

import (
	"math"
	"sync"
	"testing"
)

func TestThereminDefaults(t *testing.T) {
	voice := NewTheremin()
	expectEqual(t, voice.Type(), Sine)
	expectEqual(t, voice.SystemMode(), WaveformSelect)
	expectEqual(t, voice.OutputMode(), FreqAmp)
	expectEqual(t, voice.Frequency(), DefaultFrequency)
	expectEqual(t, voice.Amplitude(), DefaultAmplitude)
	expectEqual(t, voice.IsTremoloActive(), false)
	expectEqual(t, voice.IsVibratoActive(), false)
	expectEqual(t, voice.TremoloSpeed(), DefaultEffectSpeed)
	expectEqual(t, voice.VibratoDepth(), DefaultEffectDepth)
}

func TestThereminSine220(t *testing.T) {
	voice := NewTheremin()
	voice.Init(48000)
	for n := 0; n < 1000; n++ {
		expected := 0.5 * math.Sin(2*math.Pi*220*float64(n)/48000)
		actual := voice.Process()
		if math.Abs(actual-expected) > 1e-9 {
			t.Fatalf("sample %d: expected %v, but got: %v", n, expected, actual)
		}
	}
}

func TestThereminAmplitudeRoundTrip(t *testing.T) {
	voice := NewTheremin()
	voice.SetAmplitude(0.7)
	expectEqual(t, voice.Amplitude(), 0.7)
	voice.SetFrequency(523.25)
	expectEqual(t, voice.Frequency(), 523.25)
}

func TestThereminClampsParameters(t *testing.T) {
	voice := NewTheremin()
	voice.SetFrequency(-5)
	expectEqual(t, voice.Frequency(), MinFrequency)
	voice.SetFrequency(math.NaN())
	expectEqual(t, voice.Frequency(), MinFrequency)
	voice.SetAmplitude(1.5)
	expectEqual(t, voice.Amplitude(), MaxAmplitude)
	voice.SetAmplitude(-0.1)
	expectEqual(t, voice.Amplitude(), MinAmplitude)
	voice.SetAmplitude(math.NaN())
	expectEqual(t, voice.Amplitude(), MinAmplitude)
	voice.SetTremoloDepth(-1)
	expectEqual(t, voice.TremoloDepth(), 0.0)
	voice.SetVibratoSpeed(-1)
	expectEqual(t, voice.VibratoSpeed(), 0.0)
}

func TestThereminIgnoresUnknownEnums(t *testing.T) {
	voice := NewTheremin()
	voice.SetType(Saw)
	voice.SetType(numWaveformTypes)
	voice.SetType(-1)
	expectEqual(t, voice.Type(), Saw)
	voice.SetOutputMode(FreqVibrato)
	voice.SetOutputMode(numOutputModes)
	expectEqual(t, voice.OutputMode(), FreqVibrato)
}

func TestTremoloWritesBackAmplitude(t *testing.T) {
	voice := NewTheremin()
	voice.TremoloActive(true)
	voice.SetTremoloSpeed(0.01)
	voice.SetTremoloDepth(0.3)
	voice.Init(48000)
	expectEqual(t, voice.Process(), 0.0)
	// sin(0) collapses the cached amplitude
	expectEqual(t, voice.Amplitude(), 0.0)
}

func TestVibratoWritesBackFrequency(t *testing.T) {
	voice := NewTheremin()
	voice.SetFrequency(440)
	voice.VibratoActive(true)
	voice.SetVibratoSpeed(0.1)
	voice.SetVibratoDepth(2)
	voice.Init(48000)
	voice.Process()
	expectEqual(t, voice.Frequency(), 440.0)
	voice.Process()
	expectNearlyEqual(t, voice.Frequency(), 440+2*math.Sin(0.1))
}

func TestTremoloWinsOverVibrato(t *testing.T) {
	both := NewTheremin()
	tremOnly := NewTheremin()
	for _, voice := range []*Theremin{both, tremOnly} {
		voice.TremoloActive(true)
		voice.SetTremoloSpeed(0.01)
		voice.SetTremoloDepth(0.3)
		voice.SetVibratoSpeed(0.05)
		voice.SetVibratoDepth(5)
		voice.Init(48000)
	}
	both.VibratoActive(true)
	for n := 0; n < 1000; n++ {
		expectEqual(t, both.Process(), tremOnly.Process())
	}
	expectEqual(t, both.Amplitude(), tremOnly.Amplitude())
	expectEqual(t, both.Frequency(), DefaultFrequency)
}

func TestSetterWinsOverEffectWriteBack(t *testing.T) {
	voice := NewTheremin()
	voice.SetFrequency(440)
	voice.VibratoActive(true)
	voice.SetVibratoSpeed(0.1)
	voice.SetVibratoDepth(2)
	voice.Init(48000)
	voice.Process()
	voice.Process()
	voice.SetFrequency(880)
	expectEqual(t, voice.Frequency(), 880.0)
	voice.Process()
	expectNearlyEqual(t, voice.Frequency(), 880+2*math.Sin(0.2))
}

func TestThereminConcurrentSetters(t *testing.T) {
	voice := NewTheremin()
	voice.Init(48000)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 10000; i++ {
			voice.SetFrequency(float64(100 + i%1000))
			voice.SetAmplitude(float64(i%100) / 100)
			voice.SetType(WaveformType(i % int(numWaveformTypes)))
			voice.VibratoActive(i%2 == 0)
			voice.SetVibratoDepth(float64(i % 10))
		}
	}()
	for i := 0; i < 10000; i++ {
		v := voice.Process()
		if math.IsNaN(v) || v > 1 || v < -1 {
			t.Fatalf("sample %d out of range: %v", i, v)
		}
	}
	wg.Wait()
}
