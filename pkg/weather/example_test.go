package weather_test

import (
	"fmt"
	"os"

	"github.com/selectdb/feed_observer/pkg/config"
	"github.com/selectdb/feed_observer/pkg/weather"
)

func Example() {
	station := weather.NewStation("weather station")
	station.Attach(weather.NewCurrentConditionsDisplay(os.Stdout))
	station.Attach(weather.NewStatisticsDisplay(os.Stdout))
	station.Attach(weather.NewForecastDisplay(os.Stdout))
	station.Attach(weather.NewAlertSystem(config.Default().Weather, os.Stdout))

	readings := [][3]float64{
		{25.0, 65.0, 1013.2},
		{28.0, 70.0, 1012.8},
		{38.0, 85.0, 1008.0},
		{-3.0, 15.0, 1020.0},
	}
	for _, r := range readings {
		fmt.Printf("-- %.1fC %.1f%% %.1fhPa\n", r[0], r[1], r[2])
		if err := station.SetMeasurements(r[0], r[1], r[2]); err != nil {
			panic(err)
		}
	}

	// Output:
	// -- 25.0C 65.0% 1013.2hPa
	// Current conditions: 25.0C and 65.0% humidity
	// Statistics: min 25.0C, max 25.0C, avg 25.0C over 1 readings
	// Forecast: waiting for more data
	// -- 28.0C 70.0% 1012.8hPa
	// Current conditions: 28.0C and 70.0% humidity
	// Statistics: min 25.0C, max 28.0C, avg 26.5C over 2 readings
	// Forecast: watch out for cooler, rainy weather, pressure 1013.2 -> 1012.8 hPa
	// -- 38.0C 85.0% 1008.0hPa
	// Current conditions: 38.0C and 85.0% humidity
	// Statistics: min 25.0C, max 38.0C, avg 30.3C over 3 readings
	// Forecast: watch out for cooler, rainy weather, pressure 1012.8 -> 1008.0 hPa
	// Alert: HIGH TEMPERATURE: 38.0C above 35.0C
	// Alert: HIGH HUMIDITY: 85.0% above 80.0%
	// -- -3.0C 15.0% 1020.0hPa
	// Current conditions: -3.0C and 15.0% humidity
	// Statistics: min -3.0C, max 38.0C, avg 22.0C over 4 readings
	// Forecast: improving weather on the way, pressure 1008.0 -> 1020.0 hPa
	// Alert: FREEZE: -3.0C below 0.0C
	// Alert: LOW HUMIDITY: 15.0% below 20.0%
}
