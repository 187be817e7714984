package weather

import (
	"fmt"
	"io"
	"sync"

	"github.com/selectdb/feed_observer/pkg/config"
)

type CurrentConditionsDisplay struct {
	out io.Writer

	mu      sync.Mutex
	current Measurements
}

func NewCurrentConditionsDisplay(out io.Writer) *CurrentConditionsDisplay {
	return &CurrentConditionsDisplay{out: out}
}

func (d *CurrentConditionsDisplay) Name() string {
	return "CurrentConditionsDisplay"
}

func (d *CurrentConditionsDisplay) Current() Measurements {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.current
}

func (d *CurrentConditionsDisplay) Update(m Measurements) error {
	d.mu.Lock()
	d.current = m
	d.mu.Unlock()

	_, err := fmt.Fprintf(d.out, "Current conditions: %.1fC and %.1f%% humidity\n", m.Temperature, m.Humidity)
	return err
}

// Summary is the aggregate reported by StatisticsDisplay.
type Summary struct {
	Min     float64
	Max     float64
	Average float64
	Count   int
}

// StatisticsDisplay keeps running temperature aggregates over every update it
// received. There is no reset.
type StatisticsDisplay struct {
	out io.Writer

	mu    sync.Mutex
	stats running[float64]
}

func NewStatisticsDisplay(out io.Writer) *StatisticsDisplay {
	return &StatisticsDisplay{out: out}
}

func (d *StatisticsDisplay) Name() string {
	return "StatisticsDisplay"
}

// Summary returns false until the first update arrived.
func (d *StatisticsDisplay) Summary() (Summary, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	return d.summary(), d.stats.count > 0
}

func (d *StatisticsDisplay) summary() Summary {
	return Summary{
		Min:     d.stats.min,
		Max:     d.stats.max,
		Average: d.stats.average(),
		Count:   d.stats.count,
	}
}

func (d *StatisticsDisplay) Update(m Measurements) error {
	d.mu.Lock()
	d.stats.add(m.Temperature)
	s := d.summary()
	d.mu.Unlock()

	_, err := fmt.Fprintf(d.out, "Statistics: min %.1fC, max %.1fC, avg %.1fC over %d readings\n",
		s.Min, s.Max, s.Average, s.Count)
	return err
}

// ForecastDisplay guesses the weather from the pressure trend.
type ForecastDisplay struct {
	out io.Writer

	mu       sync.Mutex
	last     float64
	current  float64
	readings int
}

func NewForecastDisplay(out io.Writer) *ForecastDisplay {
	return &ForecastDisplay{out: out}
}

func (d *ForecastDisplay) Name() string {
	return "ForecastDisplay"
}

func (d *ForecastDisplay) Update(m Measurements) error {
	d.mu.Lock()
	d.last, d.current = d.current, m.Pressure
	d.readings++
	last, current, readings := d.last, d.current, d.readings
	d.mu.Unlock()

	if readings < 2 {
		_, err := fmt.Fprintln(d.out, "Forecast: waiting for more data")
		return err
	}

	forecast := "more of the same"
	if current > last {
		forecast = "improving weather on the way"
	} else if current < last {
		forecast = "watch out for cooler, rainy weather"
	}
	_, err := fmt.Fprintf(d.out, "Forecast: %s, pressure %.1f -> %.1f hPa\n", forecast, last, current)
	return err
}

// AlertSystem raises alerts for extreme conditions, thresholds come from the
// weather config section.
type AlertSystem struct {
	cfg config.WeatherConfig
	out io.Writer

	mu     sync.Mutex
	alerts []string
}

func NewAlertSystem(cfg config.WeatherConfig, out io.Writer) *AlertSystem {
	return &AlertSystem{
		cfg: cfg,
		out: out,
	}
}

func (a *AlertSystem) Name() string {
	return "AlertSystem"
}

// Alerts returns every alert raised so far, oldest first.
func (a *AlertSystem) Alerts() []string {
	a.mu.Lock()
	defer a.mu.Unlock()

	return append([]string(nil), a.alerts...)
}

func (a *AlertSystem) check(m Measurements) []string {
	var alerts []string
	if m.Temperature > a.cfg.HeatAlert {
		alerts = append(alerts, fmt.Sprintf("HIGH TEMPERATURE: %.1fC above %.1fC", m.Temperature, a.cfg.HeatAlert))
	} else if m.Temperature < a.cfg.FreezeAlert {
		alerts = append(alerts, fmt.Sprintf("FREEZE: %.1fC below %.1fC", m.Temperature, a.cfg.FreezeAlert))
	}

	if m.Humidity > a.cfg.HighHumidityAlert {
		alerts = append(alerts, fmt.Sprintf("HIGH HUMIDITY: %.1f%% above %.1f%%", m.Humidity, a.cfg.HighHumidityAlert))
	} else if m.Humidity < a.cfg.LowHumidityAlert {
		alerts = append(alerts, fmt.Sprintf("LOW HUMIDITY: %.1f%% below %.1f%%", m.Humidity, a.cfg.LowHumidityAlert))
	}
	return alerts
}

func (a *AlertSystem) Update(m Measurements) error {
	alerts := a.check(m)
	if len(alerts) == 0 {
		return nil
	}

	a.mu.Lock()
	a.alerts = append(a.alerts, alerts...)
	a.mu.Unlock()

	for _, alert := range alerts {
		if _, err := fmt.Fprintf(a.out, "Alert: %s\n", alert); err != nil {
			return err
		}
	}
	return nil
}
