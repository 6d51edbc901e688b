//go:build !unix

package panel

import "context"

// KeyboardHost is only available on unix terminals.
type KeyboardHost struct {
	sim *SimHost
}

// NewKeyboardHost ...
func NewKeyboardHost() *KeyboardHost {
	return &KeyboardHost{sim: NewSimHost()}
}

// SetCommand ...
func (h *KeyboardHost) SetCommand(key byte, f func()) {}

// Panel ...
func (h *KeyboardHost) Panel() Panel {
	return h.sim.Panel()
}

// Run ...
func (h *KeyboardHost) Run(ctx context.Context) error {
	return ErrUnsupported
}
