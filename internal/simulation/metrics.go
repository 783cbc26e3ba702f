package simulation

import "datahub_sim/internal/models"

// MetricsAccumulator folds per-step physical quantities into run totals.
// Compute load draws solar first and the grid for the remainder; cooling
// is all grid but tracked separately. Carbon and cost accrue from compute
// grid energy at the configured intensity and the price source's rate for
// that hour.
type MetricsAccumulator struct {
	price           TimeSeriesSource
	carbonIntensity float64
	penaltyKWh      float64
	totals          models.Totals
}

func NewMetricsAccumulator(price TimeSeriesSource, carbonIntensity, penaltyKWh float64) *MetricsAccumulator {
	return &MetricsAccumulator{price: price, carbonIntensity: carbonIntensity, penaltyKWh: penaltyKWh}
}

// RecordStep accumulates one interval and returns its energy deltas in kWh.
func (m *MetricsAccumulator) RecordStep(hour, activeKW, solarAvailableKW, coolingKW, dtHours float64) (gridKWh, solarKWh, coolingKWh float64) {
	usedSolar := activeKW
	if solarAvailableKW < usedSolar {
		usedSolar = solarAvailableKW
	}
	gridKW := activeKW - usedSolar
	if gridKW < 0 {
		gridKW = 0
	}

	solarKWh = usedSolar * dtHours
	gridKWh = gridKW * dtHours
	coolingKWh = coolingKW * dtHours

	m.totals.SolarKWh += solarKWh
	m.totals.GridKWh += gridKWh
	m.totals.CoolingKWh += coolingKWh
	m.totals.CarbonKg += gridKWh * m.carbonIntensity
	m.totals.Cost += gridKWh * m.price.Value(hour)
	return gridKWh, solarKWh, coolingKWh
}

// RecordViolation counts one SLA violation and its energy-equivalent
// penalty. Called at most once per job.
func (m *MetricsAccumulator) RecordViolation() {
	m.totals.DeadlineViolations++
	m.totals.PenaltyKWh += m.penaltyKWh
}

// Totals returns the finalized totals by value.
func (m *MetricsAccumulator) Totals() models.Totals { return m.totals }
