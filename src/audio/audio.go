package audio

import (
	"context"
	"io"
	"log"

	"github.com/cwbudde/algo-vecmath"
	"github.com/hajimehoshi/oto"
)

const (
	channelNum      = 2
	bitDepthInBytes = 2
	bytesPerFrame   = bitDepthInBytes * channelNum
	fftSize         = 4096
)

// ----- Audio ----- //

// Audio streams the voice to the output device. The device pulls blocks
// through Read; each block runs Callback on the device goroutine.
type Audio struct {
	ctx        context.Context
	otoContext *oto.Context
	voice      *Theremin
	sampleRate int
	blockSize  int
	gain       float64
	mono       []float64 // length: blockSize
	stereo     []float64 // length: blockSize * channelNum
	tap        *spectrumTap
}

var _ io.Reader = (*Audio)(nil)

// NewAudio opens the output device and initializes voice for its sample
// rate.
func NewAudio(voice *Theremin, p *Params) (*Audio, error) {
	a, err := newAudio(voice, p)
	if err != nil {
		return nil, err
	}
	otoContext, err := oto.NewContext(a.sampleRate, channelNum, bitDepthInBytes, a.blockSize*bytesPerFrame)
	if err != nil {
		return nil, err
	}
	a.otoContext = otoContext
	log.Printf("audio: %d Hz, %d frames per block\n", a.sampleRate, a.blockSize)
	return a, nil
}

// newAudio builds the callback side without a device.
func newAudio(voice *Theremin, p *Params) (*Audio, error) {
	if p.sampleRate <= 0 {
		return nil, ErrInvalidSampleRate
	}
	if p.blockSize <= 0 {
		return nil, ErrInvalidBlockSize
	}
	voice.Init(float64(p.sampleRate))
	return &Audio{
		ctx:        context.Background(),
		voice:      voice,
		sampleRate: p.sampleRate,
		blockSize:  p.blockSize,
		gain:       p.gain,
		mono:       make([]float64, p.blockSize),
		stereo:     make([]float64, p.blockSize*channelNum),
		tap:        newSpectrumTap(fftSize),
	}, nil
}

// SampleRate ...
func (a *Audio) SampleRate() int { return a.sampleRate }

// BlockSize returns the number of frames per callback.
func (a *Audio) BlockSize() int { return a.blockSize }

// Callback fills size interleaved stereo frames of out with one voice
// sample per frame. in is not used. It does not allocate.
func (a *Audio) Callback(in []float64, out []float64, size int) {
	mono := a.mono[:size]
	for i := 0; i < size; i++ {
		signal := a.voice.Process()
		mono[i] = signal
		out[channelNum*i] = signal
		out[channelNum*i+1] = signal
	}
	a.tap.write(mono)
}

func (a *Audio) Read(buf []byte) (int, error) {
	select {
	case <-a.ctx.Done():
		log.Println("Read() interrupted.")
		return 0, io.EOF
	default:
	}
	frames := len(buf) / bytesPerFrame
	for offset := 0; offset < frames; offset += a.blockSize {
		n := a.blockSize
		if frames-offset < n {
			n = frames - offset
		}
		out := a.stereo[:n*channelNum]
		a.Callback(nil, out, n)
		vecmath.ScaleBlock(out, out, a.gain)
		writeBuffer(out, buf[offset*bytesPerFrame:(offset+n)*bytesPerFrame])
	}
	return frames * bytesPerFrame, nil
}

// writeBuffer converts interleaved samples to 16-bit little-endian PCM.
func writeBuffer(out []float64, buf []byte) {
	const max = 32767
	for i, value := range out {
		if value > 1 {
			value = 1
		} else if value < -1 {
			value = -1
		}
		b := int16(value * max)
		buf[bitDepthInBytes*i] = byte(b)
		buf[bitDepthInBytes*i+1] = byte(b >> 8)
	}
}

// Start streams to the device until ctx is cancelled.
func (a *Audio) Start(ctx context.Context) error {
	p := a.otoContext.NewPlayer()
	defer func() {
		if err := p.Close(); err != nil {
			log.Printf("error: %v", err)
		}
	}()
	a.ctx = ctx

	// block until cancel() called
	if _, err := io.CopyBuffer(p, a, make([]byte, a.blockSize*bytesPerFrame)); err != nil {
		return err
	}
	log.Println("Start() ended.")
	return nil
}

// Close ...
func (a *Audio) Close() error {
	log.Println("Closing Audio...")
	if a.otoContext == nil {
		return nil
	}
	return a.otoContext.Close()
}

// Spectrum returns the magnitude spectrum of the latest output.
func (a *Audio) Spectrum() []float64 {
	return a.tap.spectrum()
}

// PeakFrequency estimates the dominant frequency of the latest output.
func (a *Audio) PeakFrequency() float64 {
	return PeakFrequency(a.tap.spectrum(), a.sampleRate)
}
