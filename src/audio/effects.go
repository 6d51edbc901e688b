package audio

import "math"

// ----- Tremolo ----- //

// tremolo modulates an amplitude. speed is in radians per processed sample;
// the counter is not scaled by the sample rate.
type tremolo struct {
	dt    int32
	speed float64
	depth float64
}

func (t *tremolo) setSpeed(speed float64) { t.speed = speed }
func (t *tremolo) setDepth(depth float64) { t.depth = depth }

// process returns (amp - depth) * depth * sin(dt * speed). The input
// amplitude is not kept as an offset.
func (t *tremolo) process(amp float64) float64 {
	out := amp - t.depth
	out *= t.depth * math.Sin(float64(t.dt)*t.speed)
	t.dt++
	return out
}

// ----- Vibrato ----- //

// vibrato deviates a frequency by up to depth Hz.
type vibrato struct {
	dt    int32
	speed float64
	depth float64
}

func (v *vibrato) setSpeed(speed float64) { v.speed = speed }
func (v *vibrato) setDepth(depth float64) { v.depth = depth }

func (v *vibrato) process(freq float64) float64 {
	out := freq + v.depth*math.Sin(float64(v.dt)*v.speed)
	v.dt++
	return out
}
