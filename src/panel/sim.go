package panel

import "sync/atomic"

// Panel is the raw surface read by the control loop: four button pins in
// panel order and the two sensor ADCs.
type Panel struct {
	Pins  [NumButtons]Pin
	Left  ADC
	Right ADC
}

// SimPin is a Pin set from code. It is safe for concurrent use.
type SimPin struct {
	level atomic.Bool
}

// Read ...
func (p *SimPin) Read() bool { return p.level.Load() }

// Set ...
func (p *SimPin) Set(down bool) { p.level.Store(down) }

// SimADC is an ADC set from code. It is safe for concurrent use.
type SimADC struct {
	value atomic.Int32
}

// Read ...
func (a *SimADC) Read() int { return int(a.value.Load()) }

// Set clamps value to the ADC range.
func (a *SimADC) Set(value int) {
	if value < 0 {
		value = 0
	}
	if value > ADCMax {
		value = ADCMax
	}
	a.value.Store(int32(value))
}

// SetDistance sets the count the sensor produces at cm.
func (a *SimADC) SetDistance(cm float64) {
	a.Set(ADCForDistance(cm))
}

// ----- Sim Host ----- //

// SimHost is a panel driven from code, used for offline rendering and tests.
type SimHost struct {
	Buttons [NumButtons]*SimPin
	Left    *SimADC
	Right   *SimADC
}

// NewSimHost returns a host with no button down and both hands away.
func NewSimHost() *SimHost {
	h := &SimHost{
		Left:  &SimADC{},
		Right: &SimADC{},
	}
	for i := range h.Buttons {
		h.Buttons[i] = &SimPin{}
	}
	return h
}

// Panel ...
func (h *SimHost) Panel() Panel {
	var p Panel
	for i, pin := range h.Buttons {
		p.Pins[i] = pin
	}
	p.Left = h.Left
	p.Right = h.Right
	return p
}
