package config

import (
	"fmt"
	"math"

	"github.com/rshade/emimeter/internal/emissions"
)

// FactorsConfig holds per-factor overrides from the config file, in kg
// CO2e per unit. A zero or omitted field keeps the built-in default;
// emission factors are physically positive, so zero is not a meaningful
// override.
type FactorsConfig struct {
	CarKgPerKm        float64 `yaml:"car_kg_per_km,omitempty" json:"car_kg_per_km,omitempty"`
	TruckKgPerKm      float64 `yaml:"truck_kg_per_km,omitempty" json:"truck_kg_per_km,omitempty"`
	BusKgPerKm        float64 `yaml:"bus_kg_per_km,omitempty" json:"bus_kg_per_km,omitempty"`
	PlaneKgPerKm      float64 `yaml:"plane_kg_per_km,omitempty" json:"plane_kg_per_km,omitempty"`
	ForkliftKgPerHour float64 `yaml:"forklift_kg_per_hour,omitempty" json:"forklift_kg_per_hour,omitempty"`
	LightingKgPerKWh  float64 `yaml:"lighting_kg_per_kwh,omitempty" json:"lighting_kg_per_kwh,omitempty"`
	HeatingKgPerKWh   float64 `yaml:"heating_kg_per_kwh,omitempty" json:"heating_kg_per_kwh,omitempty"`
	CoolingKgPerKWh   float64 `yaml:"cooling_kg_per_kwh,omitempty" json:"cooling_kg_per_kwh,omitempty"`
	ComputingKgPerKWh float64 `yaml:"computing_kg_per_kwh,omitempty" json:"computing_kg_per_kwh,omitempty"`
}

// overrides pairs each config field with its target in the resolved
// factor table.
func (fc FactorsConfig) overrides(target *emissions.Factors) []struct {
	name  string
	value float64
	dst   *float64
} {
	return []struct {
		name  string
		value float64
		dst   *float64
	}{
		{"car_kg_per_km", fc.CarKgPerKm, &target.CarKgPerKm},
		{"truck_kg_per_km", fc.TruckKgPerKm, &target.TruckKgPerKm},
		{"bus_kg_per_km", fc.BusKgPerKm, &target.BusKgPerKm},
		{"plane_kg_per_km", fc.PlaneKgPerKm, &target.PlaneKgPerKm},
		{"forklift_kg_per_hour", fc.ForkliftKgPerHour, &target.ForkliftKgPerHour},
		{"lighting_kg_per_kwh", fc.LightingKgPerKWh, &target.LightingKgPerKWh},
		{"heating_kg_per_kwh", fc.HeatingKgPerKWh, &target.HeatingKgPerKWh},
		{"cooling_kg_per_kwh", fc.CoolingKgPerKWh, &target.CoolingKgPerKWh},
		{"computing_kg_per_kwh", fc.ComputingKgPerKWh, &target.ComputingKgPerKWh},
	}
}

// Validate rejects negative or non-finite overrides.
func (fc FactorsConfig) Validate() error {
	var scratch emissions.Factors
	for _, o := range fc.overrides(&scratch) {
		if math.IsNaN(o.value) || math.IsInf(o.value, 0) {
			return fmt.Errorf("%w: %s", emissions.ErrInvalidFactor, o.name)
		}
		if o.value < 0 {
			return fmt.Errorf("%w: %s", emissions.ErrNegativeFactor, o.name)
		}
	}
	return nil
}

// Resolve applies the overrides on top of the built-in defaults and
// returns the factor table used for the rest of the process.
func (fc FactorsConfig) Resolve() emissions.Factors {
	factors := emissions.DefaultFactors()
	for _, o := range fc.overrides(&factors) {
		if o.value > 0 {
			*o.dst = o.value
		}
	}
	return factors
}
