package simulation

import "math"

// Synthetic curve parameters, matching the hub's default environment:
// rooftop solar generating between 06:00 and 18:00, and a diurnal
// temperature swing peaking in the early afternoon.
const (
	maxSolarCapacityKW = 8.0
	solarEfficiency    = 0.85
	sunriseHour        = 6.0
	sunsetHour         = 18.0

	minAmbientC   = 26.0
	maxAmbientC   = 42.0
	peakTempHour  = 14.0
	hoursPerDay   = 24.0
)

// SolarModel is the synthetic daylight-shaped generation curve: zero at
// night, sinusoidal ramp between sunrise and sunset, peak at solar noon.
func SolarModel(hour float64) float64 {
	hour = math.Mod(hour, hoursPerDay)
	if hour < 0 {
		hour += hoursPerDay
	}
	if hour < sunriseHour || hour > sunsetHour {
		return 0
	}
	angle := math.Pi * (hour - sunriseHour) / (sunsetHour - sunriseHour)
	return maxSolarCapacityKW * solarEfficiency * math.Sin(angle)
}

// TemperatureModel is the synthetic diurnal ambient curve: a cosine
// between minAmbientC and maxAmbientC, peaking at peakTempHour.
func TemperatureModel(hour float64) float64 {
	hour = math.Mod(hour, hoursPerDay)
	if hour < 0 {
		hour += hoursPerDay
	}
	avg := (minAmbientC + maxAmbientC) / 2
	amplitude := (maxAmbientC - minAmbientC) / 2
	phase := (hour - peakTempHour) * (2 * math.Pi / hoursPerDay)
	return avg + amplitude*math.Cos(phase)
}

// StaticTariff is a flat price curve used when no price series is supplied.
func StaticTariff(perKWh float64) func(hour float64) float64 {
	return func(float64) float64 { return perKWh }
}
