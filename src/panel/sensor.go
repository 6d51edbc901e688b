package panel

import (
	"math"
	"time"
)

// Sharp IR sensor characteristics, read through a 12-bit 3.3 V ADC.
const (
	SmoothingSamples = 5
	SensorPeriod     = 40 * time.Millisecond // minimum time between samples
	sensorCoeff      = 12.472
	sensorExponent   = -1.068
	adcResolution    = 12
	ADCMax           = 1<<adcResolution - 1
	adcToVolts       = 3.3 / (1 << adcResolution)
)

// Default calibration points in cm.
const (
	DefaultLow  = 4.0
	DefaultHigh = 30.0
)

// ADC is a raw analog input.
type ADC interface {
	Read() int
}

// ----- IR Sensor ----- //

// IrSensor converts a smoothed ADC reading to a distance in cm.
type IrSensor struct {
	adc        ADC
	samples    [SmoothingSamples]int
	current    int
	lastSample time.Time
}

// NewIrSensor ...
func NewIrSensor(adc ADC) *IrSensor {
	return &IrSensor{adc: adc}
}

// Init fills the smoothing window with fresh samples.
func (s *IrSensor) Init(now time.Time) {
	for i := 0; i < SmoothingSamples; i++ {
		s.storeSample(s.adc.Read())
	}
	s.lastSample = now
}

// SensorLoop takes a sample if the sensor period has elapsed.
func (s *IrSensor) SensorLoop(now time.Time) {
	if now.Sub(s.lastSample) > SensorPeriod {
		s.storeSample(s.adc.Read())
		s.lastSample = now
	}
}

func (s *IrSensor) storeSample(sample int) {
	s.samples[s.current] = sample
	s.current++
	if s.current >= SmoothingSamples {
		s.current = 0
	}
}

func (s *IrSensor) smoothed() int {
	sum := 0
	for _, v := range s.samples {
		sum += v
	}
	return sum / SmoothingSamples
}

// Distance returns the distance in cm. A zero reading gives +Inf.
func (s *IrSensor) Distance() float64 {
	return sensorCoeff * math.Pow(float64(s.smoothed())*adcToVolts, sensorExponent)
}

// ADCForDistance returns the ADC count the sensor produces at cm.
func ADCForDistance(cm float64) int {
	if cm <= 0 {
		return ADCMax
	}
	volts := math.Pow(cm/sensorCoeff, 1/sensorExponent)
	count := int(math.Round(volts / adcToVolts))
	if count > ADCMax {
		return ADCMax
	}
	return count
}

// ----- Relative IR Sensor ----- //

// RelativeSensor maps the distance between two calibration points to [0, 1].
type RelativeSensor struct {
	*IrSensor
	low  float64
	high float64
}

// NewRelativeSensor ...
func NewRelativeSensor(adc ADC) *RelativeSensor {
	return &RelativeSensor{
		IrSensor: NewIrSensor(adc),
		low:      DefaultLow,
		high:     DefaultHigh,
	}
}

// SetLow stores the current distance as the 0 point.
func (s *RelativeSensor) SetLow() {
	s.low = s.IrSensor.Distance()
}

// SetHigh stores the current distance as the 1 point.
func (s *RelativeSensor) SetHigh() {
	s.high = s.IrSensor.Distance()
}

// Calibration ...
func (s *RelativeSensor) Calibration() (low float64, high float64) {
	return s.low, s.high
}

// Distance returns the clamped relative distance. Equal calibration points
// give 0.
func (s *RelativeSensor) Distance() float64 {
	if s.high == s.low {
		return 0
	}
	v := (s.IrSensor.Distance() - s.low) / (s.high - s.low)
	if math.IsNaN(v) {
		return 0
	}
	return math.Min(1, math.Max(v, 0))
}
