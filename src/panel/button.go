package panel

import "time"

// DefaultDebounceGap is the minimum time between two registered presses.
const DefaultDebounceGap = 500 * time.Millisecond

// Pin is a raw digital input; true means the button is down.
type Pin interface {
	Read() bool
}

// ----- Button ----- //

// Button debounces a Pin. A rising edge registers a press only when at
// least the debounce gap has passed since the previous registered press.
type Button struct {
	pin        Pin
	gap        time.Duration
	onPress    func()
	level      bool
	held       bool
	pressed    bool
	lastPress  time.Time
	hasPressed bool
}

// NewButton ...
func NewButton(pin Pin) *Button {
	return &Button{
		pin: pin,
		gap: DefaultDebounceGap,
	}
}

// SetDebounceGap ...
func (b *Button) SetDebounceGap(gap time.Duration) {
	b.gap = gap
}

// OnPress registers the handler called on every registered press.
func (b *Button) OnPress(handler func()) {
	b.onPress = handler
}

// Update samples the pin once.
func (b *Button) Update(now time.Time) {
	level := b.pin.Read()
	b.pressed = false
	if level && !b.level && (!b.hasPressed || now.Sub(b.lastPress) >= b.gap) {
		b.pressed = true
		b.held = true
		b.hasPressed = true
		b.lastPress = now
		if b.onPress != nil {
			b.onPress()
		}
	}
	if !level {
		b.held = false
	}
	b.level = level
}

// Pressed reports whether the last Update registered a press.
func (b *Button) Pressed() bool {
	return b.pressed
}

// IsPressed reports whether the button is down since a registered press.
func (b *Button) IsPressed() bool {
	return b.held
}
