package emissions

import (
	"fmt"
	"math"
)

// ActivityInputs holds one year of logistics and facility activity.
// Vehicle fields pair a fleet count with the average distance each
// vehicle covers; energy fields are annual consumption. All quantities
// must be finite and non-negative.
type ActivityInputs struct {
	Cars              float64 `json:"cars" yaml:"cars"`
	CarKm             float64 `json:"car_km" yaml:"car_km"`
	Trucks            float64 `json:"trucks" yaml:"trucks"`
	TruckKm           float64 `json:"truck_km" yaml:"truck_km"`
	Buses             float64 `json:"buses" yaml:"buses"`
	BusKm             float64 `json:"bus_km" yaml:"bus_km"`
	ForkliftHours     float64 `json:"forklift_hours" yaml:"forklift_hours"`
	PlaneFlights      float64 `json:"plane_flights" yaml:"plane_flights"`
	PlaneKm           float64 `json:"plane_km" yaml:"plane_km"`
	LightingKWh       float64 `json:"lighting_kwh" yaml:"lighting_kwh"`
	HeatingKWh        float64 `json:"heating_kwh" yaml:"heating_kwh"`
	CoolingKWh        float64 `json:"cooling_kwh" yaml:"cooling_kwh"`
	ComputingKWh      float64 `json:"computing_kwh" yaml:"computing_kwh"`
	SubcontractorTons float64 `json:"subcontractor_tons" yaml:"subcontractor_tons"`
}

// inputField pairs a field value with the name reported in validation
// errors. Names match the JSON/YAML keys so error messages point at the
// field the user actually set.
type inputField struct {
	name  string
	value float64
}

func (in ActivityInputs) fields() []inputField {
	return []inputField{
		{"cars", in.Cars},
		{"car_km", in.CarKm},
		{"trucks", in.Trucks},
		{"truck_km", in.TruckKm},
		{"buses", in.Buses},
		{"bus_km", in.BusKm},
		{"forklift_hours", in.ForkliftHours},
		{"plane_flights", in.PlaneFlights},
		{"plane_km", in.PlaneKm},
		{"lighting_kwh", in.LightingKWh},
		{"heating_kwh", in.HeatingKWh},
		{"cooling_kwh", in.CoolingKWh},
		{"computing_kwh", in.ComputingKWh},
		{"subcontractor_tons", in.SubcontractorTons},
	}
}

// Validate rejects negative or non-finite quantities. The first
// offending field is named in the returned error.
func (in ActivityInputs) Validate() error {
	for _, f := range in.fields() {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s", ErrInvalidQuantity, f.name)
		}
		if f.value < 0 {
			return fmt.Errorf("%w: %s", ErrNegativeQuantity, f.name)
		}
	}
	return nil
}

// Activity returns the total activity amount behind a category together
// with its unit, for display next to the computed emissions. Vehicle
// and plane categories report fleet-km (count times average distance).
func (in ActivityInputs) Activity(c Category) (float64, string) {
	switch c {
	case CategoryCars:
		return in.Cars * in.CarKm, "km"
	case CategoryTrucks:
		return in.Trucks * in.TruckKm, "km"
	case CategoryBuses:
		return in.Buses * in.BusKm, "km"
	case CategoryForklifts:
		return in.ForkliftHours, "h"
	case CategoryCargoPlanes:
		return in.PlaneFlights * in.PlaneKm, "km"
	case CategoryLighting:
		return in.LightingKWh, "kWh"
	case CategoryHeating:
		return in.HeatingKWh, "kWh"
	case CategoryCooling:
		return in.CoolingKWh, "kWh"
	case CategoryComputing:
		return in.ComputingKWh, "kWh"
	case CategorySubcontractors:
		return in.SubcontractorTons, "t"
	default:
		return 0, ""
	}
}

// Parameters are the optimization levers applied to the optimized
// scenario. Each is a fraction in [0,1]; values outside that range are
// clamped rather than rejected.
type Parameters struct {
	// EVShare is the fraction of vehicle-km assumed shifted to
	// zero-emission vehicles.
	EVShare float64 `json:"ev_share" yaml:"ev_share"`
	// DistanceReduction is the fraction by which vehicle distances are
	// reduced (route optimization, consolidation).
	DistanceReduction float64 `json:"distance_reduction" yaml:"distance_reduction"`
	// LoadFactorImprovement is the fraction by which per-flight
	// emissions shrink as cargo load factors improve.
	LoadFactorImprovement float64 `json:"load_factor_improvement" yaml:"load_factor_improvement"`
}

// Validate rejects NaN or infinite parameters. Finite out-of-range
// values pass validation and are handled by Clamp.
func (p Parameters) Validate() error {
	for _, f := range []inputField{
		{"ev_share", p.EVShare},
		{"distance_reduction", p.DistanceReduction},
		{"load_factor_improvement", p.LoadFactorImprovement},
	} {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s", ErrInvalidParameter, f.name)
		}
	}
	return nil
}

// Clamp returns a copy with every parameter forced into [0,1].
func (p Parameters) Clamp() Parameters {
	return Parameters{
		EVShare:               clampFraction(p.EVShare),
		DistanceReduction:     clampFraction(p.DistanceReduction),
		LoadFactorImprovement: clampFraction(p.LoadFactorImprovement),
	}
}

func clampFraction(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Breakdown maps each category to its emissions in tons CO2e.
type Breakdown map[Category]float64

// Total sums the breakdown.
func (b Breakdown) Total() float64 {
	var total float64
	for _, v := range b {
		total += v
	}
	return total
}

// Clone returns an independent copy. Sessions hand out clones so
// callers cannot mutate derived state in place.
func (b Breakdown) Clone() Breakdown {
	out := make(Breakdown, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Report is the full result of one calculation: both scenarios, their
// totals, the savings between them, and each category's share of the
// baseline total. Reports are immutable snapshots, replaced wholesale
// on every recomputation.
type Report struct {
	Inputs     ActivityInputs `json:"inputs"`
	Parameters Parameters     `json:"parameters"`
	Factors    Factors        `json:"factors"`

	Baseline  Breakdown `json:"baseline_t"`
	Optimized Breakdown `json:"optimized_t"`

	BaselineTotal  float64 `json:"baseline_total_t"`
	OptimizedTotal float64 `json:"optimized_total_t"`

	// Savings is BaselineTotal minus OptimizedTotal in tons CO2e.
	Savings float64 `json:"savings_t"`
	// SavingsPercent is Savings as a percentage of BaselineTotal, 0
	// when the baseline total is zero.
	SavingsPercent float64 `json:"savings_percent"`

	// Shares maps each category to its fraction of the baseline total,
	// all zero when the baseline total is zero.
	Shares map[Category]float64 `json:"baseline_shares"`
}

// Clone returns a deep copy of the report. Sessions return clones so a
// caller holding a report never observes a later recomputation.
func (r *Report) Clone() *Report {
	if r == nil {
		return nil
	}
	out := *r
	out.Baseline = r.Baseline.Clone()
	out.Optimized = r.Optimized.Clone()
	out.Shares = make(map[Category]float64, len(r.Shares))
	for k, v := range r.Shares {
		out.Shares[k] = v
	}
	return &out
}
