package simulation

// Default parameters for a run with no overrides. Thermal and cooling
// coefficients are deliberately simplified analytic values, not a
// physical calibration.
const (
	DefaultPowerCapKW         = 10.0
	DefaultStepMinutes        = 10
	DefaultThermalAlpha       = 0.05 // inertia weight toward ambient
	DefaultThermalBeta        = 0.02 // °C per kW of active load per step
	DefaultCoolingBaseKW      = 0.0
	DefaultCoolingK1          = 0.08 // kW per °C above threshold
	DefaultCoolingK2          = 0.02 // kW per kW of active load
	DefaultCoolingThresholdC  = 25.0
	DefaultThrottleThresholdC = 35.0
	DefaultCarbonIntensity    = 0.7 // kg CO2 per grid kWh
	DefaultTariff             = 6.0 // currency per grid kWh
	DefaultBackgroundLoadKW   = 0.5 // baseline infrastructure draw
	DefaultPenaltyKWh         = 0.5 // virtual energy per SLA violation
)

// Config enumerates every knob of one simulation run. There is no
// process-wide default state: a nil source falls back to the synthetic
// Model variant when the engine is constructed, and a zero StepMinutes
// falls back to DefaultStepMinutes.
type Config struct {
	Solar       TimeSeriesSource
	Temperature TimeSeriesSource
	Price       TimeSeriesSource

	PowerCapKW  float64
	StepMinutes int

	ThermalAlpha float64
	ThermalBeta  float64

	CoolingBaseKW     float64
	CoolingK1         float64
	CoolingK2         float64
	CoolingThresholdC float64

	ThrottleThresholdC float64
	CarbonIntensity    float64
	Tariff             float64
	BackgroundLoadKW   float64
	PenaltyKWh         float64
}

// DefaultConfig returns the synthetic-model configuration.
func DefaultConfig() Config {
	return Config{
		Solar:              NewModelSource(SolarModel),
		Temperature:        NewModelSource(TemperatureModel),
		Price:              NewModelSource(StaticTariff(DefaultTariff)),
		PowerCapKW:         DefaultPowerCapKW,
		StepMinutes:        DefaultStepMinutes,
		ThermalAlpha:       DefaultThermalAlpha,
		ThermalBeta:        DefaultThermalBeta,
		CoolingBaseKW:      DefaultCoolingBaseKW,
		CoolingK1:          DefaultCoolingK1,
		CoolingK2:          DefaultCoolingK2,
		CoolingThresholdC:  DefaultCoolingThresholdC,
		ThrottleThresholdC: DefaultThrottleThresholdC,
		CarbonIntensity:    DefaultCarbonIntensity,
		Tariff:             DefaultTariff,
		BackgroundLoadKW:   DefaultBackgroundLoadKW,
		PenaltyKWh:         DefaultPenaltyKWh,
	}
}

// withFallbacks fills absent sources and the step length so the engine
// never branches on missing configuration mid-run.
func (c Config) withFallbacks() Config {
	if c.Solar == nil {
		c.Solar = NewModelSource(SolarModel)
	}
	if c.Temperature == nil {
		c.Temperature = NewModelSource(TemperatureModel)
	}
	if c.Price == nil {
		tariff := c.Tariff
		if tariff == 0 {
			tariff = DefaultTariff
		}
		c.Price = NewModelSource(StaticTariff(tariff))
	}
	if c.StepMinutes <= 0 {
		c.StepMinutes = DefaultStepMinutes
	}
	return c
}
