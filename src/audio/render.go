package audio

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/cwbudde/algo-vecmath"
	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ----- Offline Render ----- //

// RenderStart is the simulated wall clock origin of an offline render.
var RenderStart = time.Unix(0, 0)

// NewRenderer builds the callback side without opening a device.
func NewRenderer(voice *Theremin, p *Params) (*Audio, error) {
	return newAudio(voice, p)
}

// Render produces frames mono samples without a device. Control ticks (if c
// is not nil) are interleaved with audio blocks on a simulated clock, so the
// result does not depend on the host speed. before is called with the
// elapsed time ahead of every tick. sink receives each block after the
// master gain; the slice is reused.
func (a *Audio) Render(ctx context.Context, c *Control, frames int, before func(elapsed time.Duration), sink func(block []float64) error) error {
	nextTick := RenderStart
	for done := 0; done < frames; {
		if err := ctx.Err(); err != nil {
			return err
		}
		now := RenderStart.Add(framesToDuration(done, a.sampleRate))
		for c != nil && !nextTick.After(now) {
			if before != nil {
				before(nextTick.Sub(RenderStart))
			}
			c.Tick(nextTick)
			nextTick = nextTick.Add(c.interval)
		}
		n := a.blockSize
		if frames-done < n {
			n = frames - done
		}
		a.Callback(nil, a.stereo[:n*channelNum], n)
		mono := a.mono[:n]
		vecmath.ScaleBlock(mono, mono, a.gain)
		if err := sink(mono); err != nil {
			return err
		}
		done += n
	}
	return nil
}

func framesToDuration(frames int, sampleRate int) time.Duration {
	return time.Duration(int64(frames) * int64(time.Second) / int64(sampleRate))
}

// ----- WAV Writer ----- //

// WAVWriter encodes mono 16-bit PCM.
type WAVWriter struct {
	enc *wav.Encoder
	buf *goaudio.IntBuffer
}

// NewWAVWriter ...
func NewWAVWriter(w io.WriteSeeker, sampleRate int) *WAVWriter {
	return &WAVWriter{
		enc: wav.NewEncoder(w, sampleRate, 16, 1, 1),
		buf: &goaudio.IntBuffer{
			Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
			SourceBitDepth: 16,
		},
	}
}

// Write appends samples in [-1, 1]; values outside are clipped.
func (ww *WAVWriter) Write(samples []float64) error {
	const max = 32767
	if cap(ww.buf.Data) < len(samples) {
		ww.buf.Data = make([]int, len(samples))
	}
	ww.buf.Data = ww.buf.Data[:len(samples)]
	for i, value := range samples {
		if value > 1 {
			value = 1
		} else if value < -1 {
			value = -1
		}
		ww.buf.Data[i] = int(value * max)
	}
	if err := ww.enc.Write(ww.buf); err != nil {
		return fmt.Errorf("write wav: %w", err)
	}
	return nil
}

// Close finalizes the headers. It does not close the underlying writer.
func (ww *WAVWriter) Close() error {
	if err := ww.enc.Close(); err != nil {
		return fmt.Errorf("close wav: %w", err)
	}
	return nil
}
