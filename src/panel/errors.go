package panel

import "errors"

var (
	ErrNotTerminal  = errors.New("stdin is not a terminal")
	ErrNoMIDIInput  = errors.New("no MIDI input found")
	ErrQuit         = errors.New("quit requested")
	ErrUnsupported  = errors.New("not supported on this platform")
	ErrInvalidIndex = errors.New("invalid button index")
)
