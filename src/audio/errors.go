package audio

import "errors"

var (
	ErrUnknownWaveform   = errors.New("unknown waveform")
	ErrUnknownOutputMode = errors.New("unknown output mode")
	ErrUnknownParam      = errors.New("unknown parameter")
	ErrInvalidBlockSize  = errors.New("block size must be positive")
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)
