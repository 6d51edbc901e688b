package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParamsApplyJSONKeepsMissingFields(t *testing.T) {
	p := NewParams()
	expectNoError(t, p.ApplyJSON([]byte(`{"waveform": "saw", "frequency": 330, "chordWindow": 25}`)))
	expectEqual(t, p.waveform, Saw)
	expectEqual(t, p.frequency, 330.0)
	expectEqual(t, p.ChordWindow(), 25*time.Millisecond)
	expectEqual(t, p.SampleRate(), 48000)
	expectEqual(t, p.BlockSize(), 1024)
	expectEqual(t, p.outputMode, FreqAmp)
}

func TestParamsApplyJSONErrors(t *testing.T) {
	p := NewParams()
	err := p.ApplyJSON([]byte(`{"waveform": "organ"}`))
	expectEqual(t, errors.Is(err, ErrUnknownWaveform), true)
	err = p.ApplyJSON([]byte(`{"outputMode": "amp"}`))
	expectEqual(t, errors.Is(err, ErrUnknownOutputMode), true)
	err = p.ApplyJSON([]byte(`{"sampleRate": 44100, "blockSize": -1}`))
	expectEqual(t, errors.Is(err, ErrInvalidBlockSize), true)
	expectEqual(t, p.SampleRate(), 48000)
	err = p.ApplyJSON([]byte(`{"sampleRate":`))
	if err == nil {
		t.Errorf("expected an error for broken JSON")
	}
}

func TestParamsSet(t *testing.T) {
	p := NewParams()
	expectNoError(t, p.Set("gain", "0.25"))
	expectEqual(t, p.gain, 0.25)
	expectNoError(t, p.Set("outputMode", "freq-vibrato"))
	expectEqual(t, p.outputMode, FreqVibrato)
	expectNoError(t, p.Set("debounceGap", "200"))
	expectEqual(t, p.DebounceGap(), 200*time.Millisecond)

	err := p.Set("nope", "1")
	expectEqual(t, errors.Is(err, ErrUnknownParam), true)
	err = p.Set("blockSize", "0")
	expectEqual(t, errors.Is(err, ErrInvalidBlockSize), true)
	expectEqual(t, p.BlockSize(), 1024)
	if err := p.Set("highFrequency", "50"); err == nil {
		t.Errorf("expected an error for an inverted frequency range")
	}
	expectEqual(t, p.highFrequency, 1760.0)
	if err := p.Set("sampleRate", "fast"); err == nil {
		t.Errorf("expected an error for a non-numeric value")
	}
}

func TestParamsJSONIsReadBack(t *testing.T) {
	p := NewParams()
	expectNoError(t, p.Set("waveform", "triangle"))
	expectNoError(t, p.Set("maxVibratoDepth", "12.5"))
	path := filepath.Join(t.TempDir(), "config.json")
	expectNoError(t, os.WriteFile(path, p.ToJSON(), 0644))
	loaded, err := LoadParams(path)
	expectNoError(t, err)
	expectEqual(t, *loaded, *p)

	_, err = LoadParams(filepath.Join(t.TempDir(), "missing.json"))
	expectEqual(t, errors.Is(err, os.ErrNotExist), true)
}

func TestParamsNewVoice(t *testing.T) {
	p := NewParams()
	expectNoError(t, p.ApplyJSON([]byte(`{"outputMode": "freq-vibrato", "waveform": "square", "amplitude": 0.3, "vibratoSpeed": 0.002}`)))
	voice := p.NewVoice()
	expectEqual(t, voice.Type(), Square)
	expectEqual(t, voice.OutputMode(), FreqVibrato)
	expectEqual(t, voice.IsVibratoActive(), true)
	expectEqual(t, voice.IsTremoloActive(), false)
	expectEqual(t, voice.Amplitude(), 0.3)
	expectEqual(t, voice.VibratoSpeed(), 0.002)
}
