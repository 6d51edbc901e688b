//go:build unix

package panel

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/term"
)

// DefaultKeyHold is how long a key press keeps its button down.
const DefaultKeyHold = 80 * time.Millisecond

const (
	keyCtrlC      = 3
	keyStep       = 1.0 // cm per key press
	keyMinDist    = 2.0
	keyMaxDist    = 40.0
	keyHelpString = "keys: q/w top buttons, space both, a/s bottom buttons, ,/. left hand, [/] right hand, l/h calibrate, ctrl-c quit"
)

// heldPin reads down until its deadline.
type heldPin struct {
	until atomic.Int64 // unix nanos
}

func (p *heldPin) Read() bool {
	return time.Now().UnixNano() < p.until.Load()
}

func (p *heldPin) press(hold time.Duration) {
	p.until.Store(time.Now().Add(hold).UnixNano())
}

// ----- Keyboard Host ----- //

// KeyboardHost drives the panel from a raw-mode terminal.
type KeyboardHost struct {
	pins      [NumButtons]*heldPin
	left      *SimADC
	right     *SimADC
	leftDist  float64
	rightDist float64
	hold      time.Duration
	commands  map[byte]func()
}

// NewKeyboardHost returns a host with both hands out of range.
func NewKeyboardHost() *KeyboardHost {
	h := &KeyboardHost{
		left:      &SimADC{},
		right:     &SimADC{},
		leftDist:  keyMaxDist,
		rightDist: keyMaxDist,
		hold:      DefaultKeyHold,
		commands:  map[byte]func(){},
	}
	for i := range h.pins {
		h.pins[i] = &heldPin{}
	}
	h.left.SetDistance(h.leftDist)
	h.right.SetDistance(h.rightDist)
	return h
}

// SetCommand binds an extra key.
func (h *KeyboardHost) SetCommand(key byte, f func()) {
	h.commands[key] = f
}

// Panel ...
func (h *KeyboardHost) Panel() Panel {
	var p Panel
	for i, pin := range h.pins {
		p.Pins[i] = pin
	}
	p.Left = h.left
	p.Right = h.right
	return p
}

// Run reads keys until ctx is cancelled. Ctrl-C returns ErrQuit.
func (h *KeyboardHost) Run(ctx context.Context) error {
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return ErrNotTerminal
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to set raw mode: %w", err)
	}
	defer func() {
		if err := term.Restore(fd, oldState); err != nil {
			log.Printf("error while restoring terminal: %v", err)
		}
	}()
	if err := syscall.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("failed to set nonblocking stdin: %w", err)
	}
	defer syscall.SetNonblock(fd, false)

	log.Print(keyHelpString + "\r\n")
	buf := make([]byte, 1)
	for {
		select {
		case <-ctx.Done():
			log.Print("KeyboardHost.Run() ended.\r\n")
			return nil
		default:
		}
		n, err := syscall.Read(fd, buf)
		if n > 0 {
			if buf[0] == keyCtrlC {
				return ErrQuit
			}
			h.handleKey(buf[0])
			continue
		}
		if err == syscall.EAGAIN || err == syscall.EWOULDBLOCK || n == 0 {
			time.Sleep(5 * time.Millisecond)
			continue
		}
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
	}
}

func (h *KeyboardHost) handleKey(key byte) {
	switch key {
	case 'q':
		h.pins[TopLeft].press(h.hold)
	case 'w':
		h.pins[TopRight].press(h.hold)
	case ' ':
		h.pins[TopLeft].press(h.hold)
		h.pins[TopRight].press(h.hold)
	case 'a':
		h.pins[BottomLeft].press(h.hold)
	case 's':
		h.pins[BottomRight].press(h.hold)
	case ',':
		h.leftDist = moveHand(h.leftDist, -keyStep)
		h.left.SetDistance(h.leftDist)
	case '.':
		h.leftDist = moveHand(h.leftDist, keyStep)
		h.left.SetDistance(h.leftDist)
	case '[':
		h.rightDist = moveHand(h.rightDist, -keyStep)
		h.right.SetDistance(h.rightDist)
	case ']':
		h.rightDist = moveHand(h.rightDist, keyStep)
		h.right.SetDistance(h.rightDist)
	default:
		if f, ok := h.commands[key]; ok {
			f()
		}
	}
}

func moveHand(dist float64, delta float64) float64 {
	dist += delta
	if dist < keyMinDist {
		return keyMinDist
	}
	if dist > keyMaxDist {
		return keyMaxDist
	}
	return dist
}
