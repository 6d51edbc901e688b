package audio

import (
	"math"
	"sync/atomic"
)

// atomicFloat64 is a float64 published with single-word atomic stores.
type atomicFloat64 struct {
	bits atomic.Uint64
}

func (f *atomicFloat64) Load() float64 {
	return math.Float64frombits(f.bits.Load())
}

func (f *atomicFloat64) Store(v float64) {
	f.bits.Store(math.Float64bits(v))
}

// CompareAndSwap stores v only if the value is still old, bit for bit.
func (f *atomicFloat64) CompareAndSwap(old, v float64) bool {
	return f.bits.CompareAndSwap(math.Float64bits(old), math.Float64bits(v))
}
