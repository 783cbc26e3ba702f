package simulation

// ThermalModel tracks server temperature as a single scalar with inertia:
// each step blends the previous temperature toward ambient by alpha and
// adds beta degrees per kW of active load. Cooling has no direct feedback
// here; it influences outcomes only through the smart scheduler's
// throttling decision.
type ThermalModel struct {
	alpha float64 // in (0,1), weight toward ambient
	beta  float64 // load-to-heat coefficient
	temp  float64
}

func NewThermalModel(alpha, beta, initialTempC float64) *ThermalModel {
	return &ThermalModel{alpha: alpha, beta: beta, temp: initialTempC}
}

// Update advances the temperature one step and returns the new value.
// activePowerKW is the compute load of the previous interval.
func (m *ThermalModel) Update(ambientC, activePowerKW float64) float64 {
	m.temp = ambientC*m.alpha + m.temp*(1-m.alpha) + m.beta*activePowerKW
	return m.temp
}

// Current returns the temperature after the latest update.
func (m *ThermalModel) Current() float64 { return m.temp }
