//go:build unix

package panel

import "testing"

func TestKeyboardButtons(t *testing.T) {
	h := NewKeyboardHost()
	p := h.Panel()
	expectEqual(t, p.Pins[TopLeft].Read(), false)
	h.handleKey('q')
	expectEqual(t, p.Pins[TopLeft].Read(), true)
	expectEqual(t, p.Pins[TopRight].Read(), false)
	h.handleKey(' ')
	expectEqual(t, p.Pins[TopRight].Read(), true)
	h.handleKey('s')
	expectEqual(t, p.Pins[BottomRight].Read(), true)
	expectEqual(t, p.Pins[BottomLeft].Read(), false)
}

func TestKeyboardHands(t *testing.T) {
	h := NewKeyboardHost()
	p := h.Panel()
	expectEqual(t, p.Left.Read(), ADCForDistance(keyMaxDist))
	h.handleKey(',')
	expectEqual(t, p.Left.Read(), ADCForDistance(keyMaxDist-keyStep))
	h.handleKey('.')
	h.handleKey('.')
	expectEqual(t, p.Left.Read(), ADCForDistance(keyMaxDist))
	for i := 0; i < 100; i++ {
		h.handleKey('[')
	}
	expectEqual(t, p.Right.Read(), ADCForDistance(keyMinDist))
}

func TestKeyboardCommands(t *testing.T) {
	h := NewKeyboardHost()
	calls := 0
	h.SetCommand('l', func() { calls++ })
	h.handleKey('l')
	h.handleKey('x')
	expectEqual(t, calls, 1)
}
