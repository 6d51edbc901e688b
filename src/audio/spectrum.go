package audio

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// ----- FFT ----- //

// fft is a radix-2 forward transform of a fixed power-of-two size.
type fft struct {
	reverse []int
	twiddle []complex128
	work    []complex128
	re      []float64
	im      []float64
}

func newFFT(n int) *fft {
	f := &fft{
		reverse: make([]int, n),
		twiddle: make([]complex128, n),
		work:    make([]complex128, n),
		re:      make([]float64, n),
		im:      make([]float64, n),
	}
	for i := 0; i < n; i++ {
		f.reverse[i] = bitReverse(i, n)
		f.twiddle[i] = cmplx.Exp(complex(0, -2.0*math.Pi*float64(i)/float64(n)))
	}
	return f
}

func bitReverse(k, n int) int {
	m := 0
	for ; n > 1; n = n >> 1 {
		m = m<<1 + k&1
		k = k >> 1
	}
	return m
}

func (f *fft) transform(x []complex128) {
	n := len(x)
	for i := 0; i < n; i++ {
		if rev := f.reverse[i]; i < rev {
			x[i], x[rev] = x[rev], x[i]
		}
	}
	for m := 1; m < n; m <<= 1 {
		step := m << 1
		for k := 0; k < m; k++ {
			w := f.twiddle[n/step*k]
			for i := k; i < n; i += step {
				j := i + m
				tmp := x[j] * w
				x[j] = x[i] - tmp
				x[i] = x[i] + tmp
			}
		}
	}
}

// magnitudes replaces x with the magnitudes of its transform.
func (f *fft) magnitudes(x []float64) {
	for i, v := range x {
		f.work[i] = complex(v, 0)
	}
	f.transform(f.work)
	for i, c := range f.work {
		f.re[i] = real(c)
		f.im[i] = imag(c)
	}
	vecmath.Magnitude(x, f.re, f.im)
}

func hann(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2.0*math.Pi*float64(i)/float64(n))
	}
	return w
}

// ----- Spectrum Tap ----- //

// spectrumTap keeps the latest output for analysis. The audio side never
// waits: a write is dropped while a reader holds the lock.
type spectrumTap struct {
	mu     sync.Mutex
	ring   []float64
	pos    int
	fft    *fft
	window []float64
	result []float64
}

func newSpectrumTap(n int) *spectrumTap {
	return &spectrumTap{
		ring:   make([]float64, n),
		fft:    newFFT(n),
		window: hann(n),
		result: make([]float64, n),
	}
}

func (s *spectrumTap) write(samples []float64) {
	if !s.mu.TryLock() {
		return
	}
	n := len(s.ring)
	for _, v := range samples {
		s.ring[s.pos] = v
		s.pos++
		if s.pos == n {
			s.pos = 0
		}
	}
	s.mu.Unlock()
}

// spectrum returns len(ring)/2 magnitudes, oldest sample first.
func (s *spectrumTap) spectrum() []float64 {
	s.mu.Lock()
	// ring:   | 4 | 1 | 2 | 3 |
	// pos:        ^
	// result: | 1 | 2 | 3 | 4 |
	copy(s.result, s.ring[s.pos:])
	copy(s.result[len(s.ring)-s.pos:], s.ring[:s.pos])
	s.mu.Unlock()
	n := len(s.result)
	vecmath.MulBlockInPlace(s.result, s.window)
	s.fft.magnitudes(s.result)
	vecmath.ScaleBlock(s.result, s.result, 2/float64(n))
	return s.result[:n/2]
}

// PeakFrequency returns the frequency of the strongest bin of a half
// spectrum, refined by parabolic interpolation. It returns 0 for silence.
func PeakFrequency(spectrum []float64, sampleRate int) float64 {
	if len(spectrum) < 2 {
		return 0
	}
	peak := 0
	for i := 1; i < len(spectrum); i++ {
		if spectrum[i] > spectrum[peak] {
			peak = i
		}
	}
	if peak == 0 || spectrum[peak] == 0 {
		return 0
	}
	shift := 0.0
	if peak+1 < len(spectrum) {
		a, b, c := spectrum[peak-1], spectrum[peak], spectrum[peak+1]
		if den := a - 2*b + c; den != 0 {
			shift = 0.5 * (a - c) / den
		}
	}
	binWidth := float64(sampleRate) / float64(2*len(spectrum))
	return (float64(peak) + shift) * binWidth
}
