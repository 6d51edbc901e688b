package audio

import (
	"context"
	"log"
	"math"
	"sync/atomic"
	"time"
)

// Button indexes as wired on the panel.
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
)

const noButton = -1

const (
	minOctave = -3
	maxOctave = 3
)

// Buttons is the debounced button array read once per tick.
type Buttons interface {
	Update(now time.Time)
	// Pressed reports whether button i registered a press in the last Update.
	Pressed(i int) bool
}

// DistanceSensor is a calibrated, smoothed distance sensor.
type DistanceSensor interface {
	SensorLoop(now time.Time)
	// Distance returns the relative distance in [0, 1]; 0 is the low
	// calibration point.
	Distance() float64
	SetLow()
	SetHigh()
}

type calibration int

const (
	calibrateLow calibration = iota
	calibrateHigh
)

// ----- Control ----- //

// Control maps the panel to the voice. All of its state belongs to the
// goroutine calling Tick.
type Control struct {
	voice   *Theremin
	buttons Buttons
	left    DistanceSensor
	right   DistanceSensor
	pitch   *toneSynth

	interval        time.Duration
	chordWindow     time.Duration
	lowFrequency    float64
	highFrequency   float64
	maxTremoloDepth float64
	maxVibratoDepth float64
	minEffectSpeed  float64
	maxEffectSpeed  float64
	speedStep       float64

	octave       atomic.Int32
	pending      int
	pendingAt    time.Time
	calibrations chan calibration
}

// NewControl ...
func NewControl(voice *Theremin, buttons Buttons, left DistanceSensor, right DistanceSensor, p *Params) *Control {
	return &Control{
		voice:           voice,
		buttons:         buttons,
		left:            left,
		right:           right,
		pitch:           newToneSynth(p.maxFrequency),
		interval:        p.ControlInterval(),
		chordWindow:     p.ChordWindow(),
		lowFrequency:    p.lowFrequency,
		highFrequency:   p.highFrequency,
		maxTremoloDepth: p.maxTremoloDepth,
		maxVibratoDepth: p.maxVibratoDepth,
		minEffectSpeed:  p.minEffectSpeed,
		maxEffectSpeed:  p.maxEffectSpeed,
		speedStep:       p.speedStep,
		pending:         noButton,
		calibrations:    make(chan calibration, 8),
	}
}

// Run ticks until ctx is cancelled.
func (c *Control) Run(ctx context.Context) error {
	t := time.NewTicker(c.interval)
	defer t.Stop()
loop:
	for {
		select {
		case <-ctx.Done():
			log.Println("Control interrupted")
			break loop
		case now := <-t.C:
			c.Tick(now)
		}
	}
	log.Println("Control.Run() ended.")
	return nil
}

// Tick runs one control iteration.
func (c *Control) Tick(now time.Time) {
	c.left.SensorLoop(now)
	c.right.SensorLoop(now)
	c.applyCalibrations()
	c.buttons.Update(now)
	c.updateTopButtons(now)
	c.updateBottomButtons()
	c.updateSensors()
}

// CalibrateLow stores the current readings as the near reference points. It
// is applied on the next tick and may be called from any goroutine.
func (c *Control) CalibrateLow() {
	c.requestCalibration(calibrateLow)
}

// CalibrateHigh stores the current readings as the far reference points.
func (c *Control) CalibrateHigh() {
	c.requestCalibration(calibrateHigh)
}

func (c *Control) requestCalibration(k calibration) {
	select {
	case c.calibrations <- k:
	default:
		log.Println("[WARN] calibration request dropped")
	}
}

func (c *Control) applyCalibrations() {
	for {
		select {
		case k := <-c.calibrations:
			switch k {
			case calibrateLow:
				c.left.SetLow()
				c.right.SetLow()
				log.Println("calibrated low")
			case calibrateHigh:
				c.left.SetHigh()
				c.right.SetHigh()
				log.Println("calibrated high")
			}
		default:
			return
		}
	}
}

// Octave returns the octave offset applied to the left sensor. It may be
// read from any goroutine.
func (c *Control) Octave() int {
	return int(c.octave.Load())
}

// A top press waits up to chordWindow for the other top button. Both
// pressed in time toggle the system mode; otherwise the single action runs.
func (c *Control) updateTopButtons(now time.Time) {
	tl := c.buttons.Pressed(TopLeft)
	tr := c.buttons.Pressed(TopRight)
	if c.pending != noButton && now.Sub(c.pendingAt) > c.chordWindow {
		c.topAction(c.pending)
		c.pending = noButton
	}
	if tl && tr {
		c.pending = noButton
		c.toggleSystemMode()
		return
	}
	if !tl && !tr {
		return
	}
	pressed := TopLeft
	if tr {
		pressed = TopRight
	}
	if c.pending != noButton {
		if c.pending != pressed {
			c.pending = noButton
			c.toggleSystemMode()
			return
		}
		c.topAction(c.pending)
		c.pending = noButton
	}
	if c.chordWindow <= 0 {
		c.topAction(pressed)
		return
	}
	c.pending = pressed
	c.pendingAt = now
}

func (c *Control) toggleSystemMode() {
	s := c.voice.SystemMode().Toggle()
	c.voice.SetSystemMode(s)
	log.Printf("system mode: %v\n", s)
}

// top-left steps backwards, top-right forwards
func (c *Control) topAction(button int) {
	switch c.voice.SystemMode() {
	case WaveformSelect:
		w := c.voice.Type()
		if button == TopLeft {
			w = w.Prev()
		} else {
			w = w.Next()
		}
		c.voice.SetType(w)
		log.Printf("waveform: %v\n", w)
	case OutputModeSelect:
		m := c.voice.OutputMode()
		if button == TopLeft {
			m = m.Prev()
		} else {
			m = m.Next()
		}
		c.SetOutputMode(m)
	}
}

// SetOutputMode switches the output mode and the effect matching it.
func (c *Control) SetOutputMode(m OutputMode) {
	c.voice.SetOutputMode(m)
	c.voice.TremoloActive(m == FreqTremolo)
	c.voice.VibratoActive(m == FreqVibrato)
	log.Printf("output mode: %v\n", m)
}

func (c *Control) updateBottomButtons() {
	if c.voice.SystemMode() != OutputModeSelect {
		return
	}
	down := c.buttons.Pressed(BottomLeft)
	up := c.buttons.Pressed(BottomRight)
	if down == up {
		return
	}
	switch c.voice.OutputMode() {
	case FreqAmp:
		octave := c.Octave()
		if down && octave > minOctave {
			octave--
		}
		if up && octave < maxOctave {
			octave++
		}
		c.octave.Store(int32(octave))
		log.Printf("octave: %d\n", octave)
	case FreqTremolo:
		speed := c.stepSpeed(c.voice.TremoloSpeed(), up)
		c.voice.SetTremoloSpeed(speed)
		log.Printf("tremolo speed: %v\n", speed)
	case FreqVibrato:
		speed := c.stepSpeed(c.voice.VibratoSpeed(), up)
		c.voice.SetVibratoSpeed(speed)
		log.Printf("vibrato speed: %v\n", speed)
	case Midi:
	}
}

func (c *Control) stepSpeed(speed float64, up bool) float64 {
	if up {
		speed *= c.speedStep
	} else {
		speed /= c.speedStep
	}
	return math.Max(c.minEffectSpeed, math.Min(c.maxEffectSpeed, speed))
}

func (c *Control) updateSensors() {
	d := c.left.Distance()
	if d >= 1 || math.IsNaN(d) {
		if c.pitch.isActive() {
			c.pitch.stopNote()
		}
	} else {
		if !c.pitch.isActive() {
			c.pitch.startNote(c.voice.Frequency())
		}
		c.pitch.setFrequency(c.sensorFrequency(d))
	}
	c.pitch.update(c.voice)

	r := clamp01(c.right.Distance())
	switch c.voice.OutputMode() {
	case FreqAmp:
		c.voice.SetAmplitude(r)
	case FreqTremolo:
		c.voice.SetTremoloDepth(r * c.maxTremoloDepth)
	case FreqVibrato:
		c.voice.SetVibratoDepth(r * c.maxVibratoDepth)
	case Midi:
	}
}

// sensorFrequency maps a relative distance to a frequency on an
// exponential curve; the near point gives highFrequency.
func (c *Control) sensorFrequency(d float64) float64 {
	d = clamp01(d)
	freq := c.lowFrequency * math.Pow(c.highFrequency/c.lowFrequency, 1-d)
	return freq * math.Pow(2, float64(c.Octave()))
}

func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}
