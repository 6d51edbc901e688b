package panel

import (
	"context"
	"fmt"
	"log"

	"gitlab.com/gomidi/rtmididrv"
)

// MIDI mapping of the panel.
const (
	DefaultBaseNote = 60 // top-left; the next three notes follow panel order
	leftCC          = 1
	rightCC         = 2
)

// ----- MIDI Host ----- //

// MIDIHost drives the panel from the first MIDI input: notes hold buttons
// down and two controllers move the hands. Controller value 0 means no hand.
type MIDIHost struct {
	sim      *SimHost
	baseNote int
}

// NewMIDIHost ...
func NewMIDIHost() *MIDIHost {
	return &MIDIHost{
		sim:      NewSimHost(),
		baseNote: DefaultBaseNote,
	}
}

// Panel ...
func (h *MIDIHost) Panel() Panel {
	return h.sim.Panel()
}

// Run listens until ctx is cancelled.
func (h *MIDIHost) Run(ctx context.Context) error {
	drv, err := rtmididrv.New()
	if err != nil {
		return fmt.Errorf("failed to initialize MIDI driver: %w", err)
	}
	defer func() {
		err := drv.Close()
		if err != nil {
			log.Printf("failed to close MIDI driver: %v\n", err)
		}
	}()
	ins, err := drv.Ins()
	if err != nil {
		return fmt.Errorf("failed to get MIDI IN: %w", err)
	}
	log.Printf("MIDI IN: %v\n", ins)
	if len(ins) == 0 {
		return ErrNoMIDIInput
	}
	in := ins[0]
	if err := in.Open(); err != nil {
		return fmt.Errorf("failed to open MIDI IN: %w", err)
	}
	log.Println("opened " + in.String())
	defer func() {
		err := in.Close()
		if err != nil {
			log.Printf("failed to close MIDI IN: %v\n", err)
		}
	}()
	if err := in.SetListener(func(data []byte, deltaMicroseconds int64) {
		h.handle(data)
	}); err != nil {
		return fmt.Errorf("failed to set listener: %w", err)
	}
	defer func() {
		log.Println("stop listening MIDI IN...")
		err := in.StopListening()
		if err != nil {
			log.Printf("failed to stop listening: %v\n", err)
		}
	}()
	<-ctx.Done()
	log.Println("MIDIHost.Run() ended.")
	return nil
}

func (h *MIDIHost) handle(data []byte) {
	if len(data) < 3 {
		return
	}
	switch data[0] >> 4 {
	case 0x8:
		h.setButton(int(data[1]), false)
	case 0x9:
		h.setButton(int(data[1]), data[2] > 0)
	case 0xB:
		value := int(data[2]) * ADCMax / 127
		switch data[1] {
		case leftCC:
			h.sim.Left.Set(value)
		case rightCC:
			h.sim.Right.Set(value)
		}
	}
}

func (h *MIDIHost) setButton(note int, down bool) {
	i := note - h.baseNote
	if i < 0 || i >= NumButtons {
		return
	}
	h.sim.Buttons[i].Set(down)
}
