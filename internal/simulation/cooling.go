package simulation

// CoolingModel computes cooling power from server temperature and active
// compute load. Cooling a hot, busy system costs more than cooling an
// idle one; the result never drops below the base draw.
type CoolingModel struct {
	baseKW     float64
	k1         float64 // kW per °C above threshold
	k2         float64 // kW per kW of active load
	thresholdC float64
}

func NewCoolingModel(baseKW, k1, k2, thresholdC float64) CoolingModel {
	return CoolingModel{baseKW: baseKW, k1: k1, k2: k2, thresholdC: thresholdC}
}

// PowerKW returns the electrical draw of the cooling system for one step.
func (m CoolingModel) PowerKW(serverTempC, activePowerKW float64) float64 {
	excess := serverTempC - m.thresholdC
	if excess < 0 {
		excess = 0
	}
	return m.baseKW + m.k1*excess + m.k2*activePowerKW
}
