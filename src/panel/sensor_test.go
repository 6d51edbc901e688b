package panel

import (
	"math"
	"testing"
	"time"
)

func TestIrSensorDistance(t *testing.T) {
	for _, cm := range []float64{5, 10, 20, 30} {
		adc := &SimADC{}
		adc.SetDistance(cm)
		s := NewIrSensor(adc)
		s.Init(time.Unix(100, 0))
		expectNearlyEqual(t, s.Distance(), cm, 0.1)
	}
}

func TestIrSensorWithoutReflection(t *testing.T) {
	s := NewIrSensor(&SimADC{})
	s.Init(time.Unix(100, 0))
	expectEqual(t, math.IsInf(s.Distance(), 1), true)
}

func TestIrSensorSmoothing(t *testing.T) {
	adc := &SimADC{}
	adc.Set(1000)
	s := NewIrSensor(adc)
	now := time.Unix(100, 0)
	s.Init(now)
	expectEqual(t, s.smoothed(), 1000)

	adc.Set(2000)
	s.SensorLoop(now.Add(SensorPeriod))
	expectEqual(t, s.smoothed(), 1000)
	s.SensorLoop(now.Add(SensorPeriod + time.Millisecond))
	expectEqual(t, s.smoothed(), 1200)
	for i := 2; i <= SmoothingSamples; i++ {
		s.SensorLoop(now.Add(time.Duration(i) * (SensorPeriod + time.Millisecond)))
	}
	expectEqual(t, s.smoothed(), 2000)
}

func TestADCForDistanceLimits(t *testing.T) {
	expectEqual(t, ADCForDistance(0), ADCMax)
	expectEqual(t, ADCForDistance(0.1), ADCMax)
	if ADCForDistance(10) <= ADCForDistance(20) {
		t.Errorf("expected nearer hands to read higher")
	}
}

func newCalibratedSensor(t *testing.T, cm float64) (*RelativeSensor, *SimADC) {
	t.Helper()
	adc := &SimADC{}
	adc.SetDistance(cm)
	s := NewRelativeSensor(adc)
	s.Init(time.Unix(100, 0))
	return s, adc
}

func TestRelativeSensorDefaults(t *testing.T) {
	s, adc := newCalibratedSensor(t, 17)
	low, high := s.Calibration()
	expectEqual(t, low, DefaultLow)
	expectEqual(t, high, DefaultHigh)
	expectNearlyEqual(t, s.Distance(), 0.5, 0.01)

	adc.SetDistance(2)
	s.Init(time.Unix(101, 0))
	expectEqual(t, s.Distance(), 0.0)

	adc.Set(0)
	s.Init(time.Unix(102, 0))
	expectEqual(t, s.Distance(), 1.0)
}

func TestRelativeSensorCalibration(t *testing.T) {
	s, adc := newCalibratedSensor(t, 10)
	s.SetLow()
	adc.SetDistance(20)
	s.Init(time.Unix(101, 0))
	s.SetHigh()
	low, high := s.Calibration()
	expectNearlyEqual(t, low, 10, 0.1)
	expectNearlyEqual(t, high, 20, 0.1)

	adc.SetDistance(15)
	s.Init(time.Unix(102, 0))
	expectNearlyEqual(t, s.Distance(), 0.5, 0.02)

	s.SetLow()
	s.SetHigh()
	expectEqual(t, s.Distance(), 0.0)
}
