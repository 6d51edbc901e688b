package panel

import (
	"fmt"
	"time"
)

// Button positions on the panel.
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
	NumButtons
)

// ----- Buttons ----- //

// Buttons is the array of the four panel buttons.
type Buttons struct {
	buttons [NumButtons]*Button
}

// NewButtons wraps pins, in panel order.
func NewButtons(pins [NumButtons]Pin) *Buttons {
	bs := &Buttons{}
	for i, pin := range pins {
		bs.buttons[i] = NewButton(pin)
	}
	return bs
}

// SetDebounceGap applies gap to every button.
func (bs *Buttons) SetDebounceGap(gap time.Duration) {
	for _, b := range bs.buttons {
		b.SetDebounceGap(gap)
	}
}

// OnPress registers handler for button i. The handler receives the index.
func (bs *Buttons) OnPress(i int, handler func(i int)) error {
	if i < 0 || i >= NumButtons {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, i)
	}
	bs.buttons[i].OnPress(func() { handler(i) })
	return nil
}

// Update samples every button.
func (bs *Buttons) Update(now time.Time) {
	for _, b := range bs.buttons {
		b.Update(now)
	}
}

// Pressed reports whether button i registered a press in the last Update.
func (bs *Buttons) Pressed(i int) bool {
	if i < 0 || i >= NumButtons {
		return false
	}
	return bs.buttons[i].Pressed()
}

// IsPressed ...
func (bs *Buttons) IsPressed(i int) bool {
	if i < 0 || i >= NumButtons {
		return false
	}
	return bs.buttons[i].IsPressed()
}
