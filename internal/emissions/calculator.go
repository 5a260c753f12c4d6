// Package emissions implements the EmiMeter calculation model: a pure
// mapping from activity inputs and optimization parameters to baseline
// and optimized CO2e breakdowns with their totals and savings.
//
// The calculator holds no state. Same inputs always produce the same
// Report, so it is safely callable from any number of isolated sessions
// without locking.
package emissions

// kgPerTon converts the kg-denominated factor products into the tons
// reported everywhere else.
const kgPerTon = 1000.0

// BaselineEmissions computes the per-category breakdown with no
// optimization applied. Inputs and factors are assumed validated.
func BaselineEmissions(in ActivityInputs, f Factors) Breakdown {
	return Breakdown{
		CategoryCars:           in.Cars * in.CarKm * f.CarKgPerKm / kgPerTon,
		CategoryTrucks:         in.Trucks * in.TruckKm * f.TruckKgPerKm / kgPerTon,
		CategoryBuses:          in.Buses * in.BusKm * f.BusKgPerKm / kgPerTon,
		CategoryForklifts:      in.ForkliftHours * f.ForkliftKgPerHour / kgPerTon,
		CategoryCargoPlanes:    in.PlaneFlights * in.PlaneKm * f.PlaneKgPerKm / kgPerTon,
		CategoryLighting:       in.LightingKWh * f.LightingKgPerKWh / kgPerTon,
		CategoryHeating:        in.HeatingKWh * f.HeatingKgPerKWh / kgPerTon,
		CategoryCooling:        in.CoolingKWh * f.CoolingKgPerKWh / kgPerTon,
		CategoryComputing:      in.ComputingKWh * f.ComputingKgPerKWh / kgPerTon,
		CategorySubcontractors: in.SubcontractorTons,
	}
}

// OptimizedEmissions computes the per-category breakdown with the
// optimization levers applied. Road vehicle categories scale by the
// distance reduction and by the non-EV share of travel; planes scale by
// the load factor improvement. Every other category matches baseline.
// Parameters are assumed already clamped to [0,1].
func OptimizedEmissions(in ActivityInputs, p Parameters, f Factors) Breakdown {
	road := (1 - p.DistanceReduction) * (1 - p.EVShare)
	air := 1 - p.LoadFactorImprovement

	return Breakdown{
		CategoryCars:           in.Cars * in.CarKm * f.CarKgPerKm * road / kgPerTon,
		CategoryTrucks:         in.Trucks * in.TruckKm * f.TruckKgPerKm * road / kgPerTon,
		CategoryBuses:          in.Buses * in.BusKm * f.BusKgPerKm * road / kgPerTon,
		CategoryForklifts:      in.ForkliftHours * f.ForkliftKgPerHour / kgPerTon,
		CategoryCargoPlanes:    in.PlaneFlights * in.PlaneKm * f.PlaneKgPerKm * air / kgPerTon,
		CategoryLighting:       in.LightingKWh * f.LightingKgPerKWh / kgPerTon,
		CategoryHeating:        in.HeatingKWh * f.HeatingKgPerKWh / kgPerTon,
		CategoryCooling:        in.CoolingKWh * f.CoolingKgPerKWh / kgPerTon,
		CategoryComputing:      in.ComputingKWh * f.ComputingKgPerKWh / kgPerTon,
		CategorySubcontractors: in.SubcontractorTons,
	}
}

// Compute validates inputs, parameters, and factors, clamps the
// parameters into [0,1], and produces the full Report for both
// scenarios. Validation failures leave no partial results.
func Compute(in ActivityInputs, p Parameters, f Factors) (*Report, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}

	clamped := p.Clamp()
	baseline := BaselineEmissions(in, f)
	optimized := OptimizedEmissions(in, clamped, f)

	report := &Report{
		Inputs:         in,
		Parameters:     clamped,
		Factors:        f,
		Baseline:       baseline,
		Optimized:      optimized,
		BaselineTotal:  baseline.Total(),
		OptimizedTotal: optimized.Total(),
		Shares:         make(map[Category]float64, len(baseline)),
	}
	report.Savings = report.BaselineTotal - report.OptimizedTotal
	if report.BaselineTotal > 0 {
		report.SavingsPercent = report.Savings / report.BaselineTotal * 100
	}

	for _, c := range Categories() {
		if report.BaselineTotal > 0 {
			report.Shares[c] = baseline[c] / report.BaselineTotal
		} else {
			report.Shares[c] = 0
		}
	}

	return report, nil
}
