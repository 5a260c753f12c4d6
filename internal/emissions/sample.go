package emissions

// SampleInputs returns the documented demo dataset: a mid-size
// logistics operator with a mixed road fleet, a cargo flight program,
// warehouse equipment, and facility energy use.
func SampleInputs() ActivityInputs {
	return ActivityInputs{
		Cars:              10,
		CarKm:             25000,
		Trucks:            5,
		TruckKm:           30000,
		Buses:             4,
		BusKm:             20000,
		ForkliftHours:     2000,
		PlaneFlights:      160,
		PlaneKm:           2000,
		LightingKWh:       120000,
		HeatingKWh:        50000,
		CoolingKWh:        300000,
		ComputingKWh:      90000,
		SubcontractorTons: 185,
	}
}

// SampleParameters returns the optimization levers paired with the demo
// dataset: 30% EV adoption, 10% distance reduction, 20% load factor
// improvement.
func SampleParameters() Parameters {
	return Parameters{
		EVShare:               0.30,
		DistanceReduction:     0.10,
		LoadFactorImprovement: 0.20,
	}
}
