package audio

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"
)

// ----- Params ----- //

// Params is the startup configuration of the instrument.
type Params struct {
	sampleRate      int
	blockSize       int     // frames per audio callback
	gain            float64 // master gain applied after the voice
	controlInterval int     // ms
	chordWindow     int     // ms
	debounceGap     int     // ms
	lowFrequency    float64
	highFrequency   float64
	maxFrequency    float64
	maxTremoloDepth float64
	maxVibratoDepth float64 // Hz
	minEffectSpeed  float64
	maxEffectSpeed  float64
	speedStep       float64
	waveform        WaveformType
	outputMode      OutputMode
	frequency       float64
	amplitude       float64
	tremoloSpeed    float64
	vibratoSpeed    float64
}

type paramsJSON struct {
	SampleRate      int     `json:"sampleRate"`
	BlockSize       int     `json:"blockSize"`
	Gain            float64 `json:"gain"`
	ControlInterval int     `json:"controlInterval"`
	ChordWindow     int     `json:"chordWindow"`
	DebounceGap     int     `json:"debounceGap"`
	LowFrequency    float64 `json:"lowFrequency"`
	HighFrequency   float64 `json:"highFrequency"`
	MaxFrequency    float64 `json:"maxFrequency"`
	MaxTremoloDepth float64 `json:"maxTremoloDepth"`
	MaxVibratoDepth float64 `json:"maxVibratoDepth"`
	MinEffectSpeed  float64 `json:"minEffectSpeed"`
	MaxEffectSpeed  float64 `json:"maxEffectSpeed"`
	SpeedStep       float64 `json:"speedStep"`
	Waveform        string  `json:"waveform"`
	OutputMode      string  `json:"outputMode"`
	Frequency       float64 `json:"frequency"`
	Amplitude       float64 `json:"amplitude"`
	TremoloSpeed    float64 `json:"tremoloSpeed"`
	VibratoSpeed    float64 `json:"vibratoSpeed"`
}

// NewParams returns the default configuration.
func NewParams() *Params {
	return &Params{
		sampleRate:      48000,
		blockSize:       1024,
		gain:            0.5,
		controlInterval: 1,
		chordWindow:     40,
		debounceGap:     120,
		lowFrequency:    110,
		highFrequency:   1760,
		maxFrequency:    4000,
		maxTremoloDepth: 0.5,
		maxVibratoDepth: 10,
		minEffectSpeed:  0.00001,
		maxEffectSpeed:  0.01,
		speedStep:       1.25,
		waveform:        DefaultWaveformType,
		outputMode:      FreqAmp,
		frequency:       DefaultFrequency,
		amplitude:       DefaultAmplitude,
		tremoloSpeed:    DefaultEffectSpeed,
		vibratoSpeed:    DefaultEffectSpeed,
	}
}

// LoadParams reads a JSON config file over the defaults.
func LoadParams(path string) (*Params, error) {
	p := NewParams()
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := p.ApplyJSON(bytes); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

// ApplyJSON overwrites the fields present in data. p is left unchanged on
// error.
func (p *Params) ApplyJSON(data []byte) error {
	q := *p
	if err := q.applyJSON(data); err != nil {
		return err
	}
	*p = q
	return nil
}

func (p *Params) applyJSON(data []byte) error {
	j := p.toJSONStruct()
	if err := json.Unmarshal(data, j); err != nil {
		return err
	}
	waveform, err := ParseWaveformType(j.Waveform)
	if err != nil {
		return err
	}
	outputMode, err := ParseOutputMode(j.OutputMode)
	if err != nil {
		return err
	}
	p.sampleRate = j.SampleRate
	p.blockSize = j.BlockSize
	p.gain = j.Gain
	p.controlInterval = j.ControlInterval
	p.chordWindow = j.ChordWindow
	p.debounceGap = j.DebounceGap
	p.lowFrequency = j.LowFrequency
	p.highFrequency = j.HighFrequency
	p.maxFrequency = j.MaxFrequency
	p.maxTremoloDepth = j.MaxTremoloDepth
	p.maxVibratoDepth = j.MaxVibratoDepth
	p.minEffectSpeed = j.MinEffectSpeed
	p.maxEffectSpeed = j.MaxEffectSpeed
	p.speedStep = j.SpeedStep
	p.waveform = waveform
	p.outputMode = outputMode
	p.frequency = j.Frequency
	p.amplitude = j.Amplitude
	p.tremoloSpeed = j.TremoloSpeed
	p.vibratoSpeed = j.VibratoSpeed
	return p.validate()
}

// ToJSON ...
func (p *Params) ToJSON() []byte {
	bytes, err := json.MarshalIndent(p.toJSONStruct(), "", "  ")
	if err != nil {
		panic(err)
	}
	return bytes
}

func (p *Params) toJSONStruct() *paramsJSON {
	return &paramsJSON{
		SampleRate:      p.sampleRate,
		BlockSize:       p.blockSize,
		Gain:            p.gain,
		ControlInterval: p.controlInterval,
		ChordWindow:     p.chordWindow,
		DebounceGap:     p.debounceGap,
		LowFrequency:    p.lowFrequency,
		HighFrequency:   p.highFrequency,
		MaxFrequency:    p.maxFrequency,
		MaxTremoloDepth: p.maxTremoloDepth,
		MaxVibratoDepth: p.maxVibratoDepth,
		MinEffectSpeed:  p.minEffectSpeed,
		MaxEffectSpeed:  p.maxEffectSpeed,
		SpeedStep:       p.speedStep,
		Waveform:        p.waveform.String(),
		OutputMode:      p.outputMode.String(),
		Frequency:       p.frequency,
		Amplitude:       p.amplitude,
		TremoloSpeed:    p.tremoloSpeed,
		VibratoSpeed:    p.vibratoSpeed,
	}
}

// Set updates a single parameter from its JSON key and a string value, as
// given on the command line. p is left unchanged on error.
func (p *Params) Set(key string, value string) error {
	q := *p
	if err := q.set(key, value); err != nil {
		return err
	}
	*p = q
	return nil
}

func (p *Params) set(key string, value string) error {
	switch key {
	case "waveform":
		w, err := ParseWaveformType(value)
		if err != nil {
			return err
		}
		p.waveform = w
		return nil
	case "outputMode":
		m, err := ParseOutputMode(value)
		if err != nil {
			return err
		}
		p.outputMode = m
		return nil
	case "sampleRate", "blockSize", "controlInterval", "chordWindow", "debounceGap":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return err
		}
		switch key {
		case "sampleRate":
			p.sampleRate = int(v)
		case "blockSize":
			p.blockSize = int(v)
		case "controlInterval":
			p.controlInterval = int(v)
		case "chordWindow":
			p.chordWindow = int(v)
		case "debounceGap":
			p.debounceGap = int(v)
		}
		return p.validate()
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return err
	}
	switch key {
	case "gain":
		p.gain = v
	case "lowFrequency":
		p.lowFrequency = v
	case "highFrequency":
		p.highFrequency = v
	case "maxFrequency":
		p.maxFrequency = v
	case "maxTremoloDepth":
		p.maxTremoloDepth = v
	case "maxVibratoDepth":
		p.maxVibratoDepth = v
	case "minEffectSpeed":
		p.minEffectSpeed = v
	case "maxEffectSpeed":
		p.maxEffectSpeed = v
	case "speedStep":
		p.speedStep = v
	case "frequency":
		p.frequency = v
	case "amplitude":
		p.amplitude = v
	case "tremoloSpeed":
		p.tremoloSpeed = v
	case "vibratoSpeed":
		p.vibratoSpeed = v
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParam, key)
	}
	return p.validate()
}

func (p *Params) validate() error {
	if p.sampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	if p.blockSize <= 0 {
		return ErrInvalidBlockSize
	}
	if p.controlInterval <= 0 {
		return fmt.Errorf("controlInterval must be positive: %d", p.controlInterval)
	}
	if p.lowFrequency <= 0 || p.highFrequency <= p.lowFrequency {
		return fmt.Errorf("invalid frequency range %v-%v", p.lowFrequency, p.highFrequency)
	}
	if p.speedStep <= 1 {
		return fmt.Errorf("speedStep must be greater than 1: %v", p.speedStep)
	}
	if p.minEffectSpeed < 0 || p.maxEffectSpeed < p.minEffectSpeed {
		return fmt.Errorf("invalid effect speed range %v-%v", p.minEffectSpeed, p.maxEffectSpeed)
	}
	return nil
}

// SampleRate ...
func (p *Params) SampleRate() int { return p.sampleRate }

// BlockSize ...
func (p *Params) BlockSize() int { return p.blockSize }

// ControlInterval ...
func (p *Params) ControlInterval() time.Duration {
	return time.Duration(p.controlInterval) * time.Millisecond
}

// ChordWindow ...
func (p *Params) ChordWindow() time.Duration {
	return time.Duration(p.chordWindow) * time.Millisecond
}

// DebounceGap ...
func (p *Params) DebounceGap() time.Duration {
	return time.Duration(p.debounceGap) * time.Millisecond
}

// NewVoice returns a Theremin configured with the voice defaults.
func (p *Params) NewVoice() *Theremin {
	t := NewThereminWith(p.waveform, p.frequency, p.amplitude)
	t.SetOutputMode(p.outputMode)
	t.TremoloActive(p.outputMode == FreqTremolo)
	t.VibratoActive(p.outputMode == FreqVibrato)
	t.SetTremoloSpeed(p.tremoloSpeed)
	t.SetVibratoSpeed(p.vibratoSpeed)
	return t
}
