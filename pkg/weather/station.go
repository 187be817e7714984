package weather

import (
	"fmt"
	"math"
	"time"

	"github.com/selectdb/feed_observer/pkg/subject"
	"github.com/selectdb/feed_observer/pkg/utils"
)

// Measurements is the snapshot pushed to weather displays.
type Measurements struct {
	Temperature float64   `json:"temperature"` // celsius
	Humidity    float64   `json:"humidity"`    // percent
	Pressure    float64   `json:"pressure"`    // hPa
	Time        time.Time `json:"time"`
}

func (m Measurements) String() string {
	return fmt.Sprintf("%.1fC, %.1f%%, %.1fhPa", m.Temperature, m.Humidity, m.Pressure)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func validateMeasurements(m Measurements) error {
	if !finite(m.Temperature) || !finite(m.Humidity) || !finite(m.Pressure) {
		return fmt.Errorf("measurements %s are not finite numbers", m)
	}
	if m.Humidity < 0 || m.Humidity > 100 {
		return fmt.Errorf("humidity %.1f%% out of range [0, 100]", m.Humidity)
	}
	if m.Pressure <= 0 {
		return fmt.Errorf("pressure %.1fhPa is not positive", m.Pressure)
	}
	return nil
}

type Station struct {
	subject *subject.Subject[Measurements]
}

// NewStation creates a station whose state starts zeroed; the zero state is
// never validated, only new measurements are.
func NewStation(name string) *Station {
	return &Station{
		subject: subject.New(name, Measurements{}, subject.WithValidator(validateMeasurements)),
	}
}

func (s *Station) Name() string {
	return s.subject.Name()
}

func (s *Station) Measurements() Measurements {
	return s.subject.State()
}

func (s *Station) Attach(observer utils.Observer[Measurements]) utils.Handle {
	return s.subject.Attach(observer)
}

func (s *Station) Detach(observer utils.Observer[Measurements]) {
	s.subject.Detach(observer)
}

func (s *Station) DetachHandle(handle utils.Handle) {
	s.subject.DetachHandle(handle)
}

func (s *Station) Notify() error {
	return s.subject.Notify()
}

func (s *Station) Len() int {
	return s.subject.Len()
}

func (s *Station) SetMeasurements(temperature, humidity, pressure float64) error {
	return s.subject.SetState(Measurements{
		Temperature: temperature,
		Humidity:    humidity,
		Pressure:    pressure,
		Time:        time.Now(),
	})
}
