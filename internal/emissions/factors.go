package emissions

import (
	"fmt"
	"math"
)

// Factors holds the emission factor for each activity unit, in kg CO2e
// per unit. The calculator divides by 1000 to report tons. Factors are
// fixed for the life of the process; a config file may replace
// individual defaults at startup but nothing mutates them afterwards.
type Factors struct {
	CarKgPerKm        float64 `json:"car_kg_per_km" yaml:"car_kg_per_km"`
	TruckKgPerKm      float64 `json:"truck_kg_per_km" yaml:"truck_kg_per_km"`
	BusKgPerKm        float64 `json:"bus_kg_per_km" yaml:"bus_kg_per_km"`
	PlaneKgPerKm      float64 `json:"plane_kg_per_km" yaml:"plane_kg_per_km"`
	ForkliftKgPerHour float64 `json:"forklift_kg_per_hour" yaml:"forklift_kg_per_hour"`
	LightingKgPerKWh  float64 `json:"lighting_kg_per_kwh" yaml:"lighting_kg_per_kwh"`
	HeatingKgPerKWh   float64 `json:"heating_kg_per_kwh" yaml:"heating_kg_per_kwh"`
	CoolingKgPerKWh   float64 `json:"cooling_kg_per_kwh" yaml:"cooling_kg_per_kwh"`
	ComputingKgPerKWh float64 `json:"computing_kg_per_kwh" yaml:"computing_kg_per_kwh"`
}

// Default Emission Factors
//
// Fleet-average values for a mid-size European logistics operator.
// Road and forklift factors follow typical GHG-protocol activity
// factors for diesel/petrol fleets; energy factors assume a mixed grid
// at roughly 0.42 kg CO2e per kWh with gas-fired heating. The plane
// factor converts a freighter burn of ~9,000 kg CO2e per flight hour
// at ~800 km/h cruise into a per-flight-km figure. All are replaceable
// through the factors section of the config file.
const (
	// DefaultCarKgPerKm is kg CO2e per vehicle-km for a passenger car.
	DefaultCarKgPerKm = 0.18

	// DefaultTruckKgPerKm is kg CO2e per vehicle-km for a loaded heavy
	// goods vehicle.
	DefaultTruckKgPerKm = 0.90

	// DefaultBusKgPerKm is kg CO2e per vehicle-km for a coach.
	DefaultBusKgPerKm = 1.10

	// DefaultPlaneKgPerKm is kg CO2e per flight-km for a mid-size cargo
	// freighter (9,000 kg/h at 800 km/h).
	DefaultPlaneKgPerKm = 11.25

	// DefaultForkliftKgPerHour is kg CO2e per operating hour for an LPG
	// counterbalance forklift.
	DefaultForkliftKgPerHour = 4.0

	// DefaultLightingKgPerKWh is kg CO2e per kWh of lighting
	// electricity at mixed-grid intensity.
	DefaultLightingKgPerKWh = 0.42

	// DefaultHeatingKgPerKWh is kg CO2e per kWh of gas-fired heating.
	DefaultHeatingKgPerKWh = 0.20

	// DefaultCoolingKgPerKWh is kg CO2e per kWh of air conditioning
	// electricity.
	DefaultCoolingKgPerKWh = 0.42

	// DefaultComputingKgPerKWh is kg CO2e per kWh of IT electricity.
	DefaultComputingKgPerKWh = 0.42
)

// DefaultFactors returns the built-in factor table.
func DefaultFactors() Factors {
	return Factors{
		CarKgPerKm:        DefaultCarKgPerKm,
		TruckKgPerKm:      DefaultTruckKgPerKm,
		BusKgPerKm:        DefaultBusKgPerKm,
		PlaneKgPerKm:      DefaultPlaneKgPerKm,
		ForkliftKgPerHour: DefaultForkliftKgPerHour,
		LightingKgPerKWh:  DefaultLightingKgPerKWh,
		HeatingKgPerKWh:   DefaultHeatingKgPerKWh,
		CoolingKgPerKWh:   DefaultCoolingKgPerKWh,
		ComputingKgPerKWh: DefaultComputingKgPerKWh,
	}
}

func (f Factors) fields() []inputField {
	return []inputField{
		{"car_kg_per_km", f.CarKgPerKm},
		{"truck_kg_per_km", f.TruckKgPerKm},
		{"bus_kg_per_km", f.BusKgPerKm},
		{"plane_kg_per_km", f.PlaneKgPerKm},
		{"forklift_kg_per_hour", f.ForkliftKgPerHour},
		{"lighting_kg_per_kwh", f.LightingKgPerKWh},
		{"heating_kg_per_kwh", f.HeatingKgPerKWh},
		{"cooling_kg_per_kwh", f.CoolingKgPerKWh},
		{"computing_kg_per_kwh", f.ComputingKgPerKWh},
	}
}

// Validate rejects negative or non-finite factors. The first offending
// field is named in the returned error.
func (f Factors) Validate() error {
	for _, field := range f.fields() {
		if math.IsNaN(field.value) || math.IsInf(field.value, 0) {
			return fmt.Errorf("%w: %s", ErrInvalidFactor, field.name)
		}
		if field.value < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeFactor, field.name)
		}
	}
	return nil
}

// ForCategory returns the factor applied to a category together with
// the unit it converts from. Subcontractor emissions are entered
// directly in tons, so no factor applies and ok is false.
func (f Factors) ForCategory(c Category) (value float64, unit string, ok bool) {
	switch c {
	case CategoryCars:
		return f.CarKgPerKm, "kg/km", true
	case CategoryTrucks:
		return f.TruckKgPerKm, "kg/km", true
	case CategoryBuses:
		return f.BusKgPerKm, "kg/km", true
	case CategoryForklifts:
		return f.ForkliftKgPerHour, "kg/h", true
	case CategoryCargoPlanes:
		return f.PlaneKgPerKm, "kg/km", true
	case CategoryLighting:
		return f.LightingKgPerKWh, "kg/kWh", true
	case CategoryHeating:
		return f.HeatingKgPerKWh, "kg/kWh", true
	case CategoryCooling:
		return f.CoolingKgPerKWh, "kg/kWh", true
	case CategoryComputing:
		return f.ComputingKgPerKWh, "kg/kWh", true
	case CategorySubcontractors:
		return 0, "", false
	default:
		return 0, "", false
	}
}
