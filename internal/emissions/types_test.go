package emissions

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nan() float64 { return math.NaN() }

func TestActivityInputsValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *ActivityInputs)
		wantErr error
		field   string
	}{
		{
			name:   "sample data is valid",
			mutate: func(*ActivityInputs) {},
		},
		{
			name:    "negative car count",
			mutate:  func(in *ActivityInputs) { in.Cars = -1 },
			wantErr: ErrNegativeQuantity,
			field:   "cars",
		},
		{
			name:    "negative subcontractor tons",
			mutate:  func(in *ActivityInputs) { in.SubcontractorTons = -0.01 },
			wantErr: ErrNegativeQuantity,
			field:   "subcontractor_tons",
		},
		{
			name:    "NaN plane distance",
			mutate:  func(in *ActivityInputs) { in.PlaneKm = nan() },
			wantErr: ErrInvalidQuantity,
			field:   "plane_km",
		},
		{
			name:    "infinite lighting",
			mutate:  func(in *ActivityInputs) { in.LightingKWh = math.Inf(1) },
			wantErr: ErrInvalidQuantity,
			field:   "lighting_kwh",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := SampleInputs()
			tt.mutate(&in)

			err := in.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tt.wantErr)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestParametersClamp(t *testing.T) {
	tests := []struct {
		name string
		in   Parameters
		want Parameters
	}{
		{
			name: "in range unchanged",
			in:   Parameters{EVShare: 0.3, DistanceReduction: 0.1, LoadFactorImprovement: 0.2},
			want: Parameters{EVShare: 0.3, DistanceReduction: 0.1, LoadFactorImprovement: 0.2},
		},
		{
			name: "above one clamps to one",
			in:   Parameters{EVShare: 1.5, DistanceReduction: 99, LoadFactorImprovement: 1.0001},
			want: Parameters{EVShare: 1, DistanceReduction: 1, LoadFactorImprovement: 1},
		},
		{
			name: "below zero clamps to zero",
			in:   Parameters{EVShare: -0.2, DistanceReduction: -1, LoadFactorImprovement: -0.0001},
			want: Parameters{},
		},
		{
			name: "boundaries are kept",
			in:   Parameters{EVShare: 0, DistanceReduction: 1, LoadFactorImprovement: 0},
			want: Parameters{EVShare: 0, DistanceReduction: 1, LoadFactorImprovement: 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Clamp())
		})
	}
}

func TestParametersValidate(t *testing.T) {
	assert.NoError(t, Parameters{EVShare: 2, DistanceReduction: -3}.Validate())

	err := Parameters{LoadFactorImprovement: nan()}.Validate()
	require.ErrorIs(t, err, ErrInvalidParameter)
	assert.Contains(t, err.Error(), "load_factor_improvement")
}

func TestActivityAmounts(t *testing.T) {
	in := SampleInputs()

	tests := []struct {
		category Category
		amount   float64
		unit     string
	}{
		{CategoryCars, 250000, "km"},
		{CategoryTrucks, 150000, "km"},
		{CategoryBuses, 80000, "km"},
		{CategoryForklifts, 2000, "h"},
		{CategoryCargoPlanes, 320000, "km"},
		{CategoryLighting, 120000, "kWh"},
		{CategoryHeating, 50000, "kWh"},
		{CategoryCooling, 300000, "kWh"},
		{CategoryComputing, 90000, "kWh"},
		{CategorySubcontractors, 185, "t"},
	}

	for _, tt := range tests {
		t.Run(tt.category.Key(), func(t *testing.T) {
			amount, unit := in.Activity(tt.category)
			assert.InDelta(t, tt.amount, amount, epsilon)
			assert.Equal(t, tt.unit, unit)
		})
	}
}

func TestBreakdownTotalAndClone(t *testing.T) {
	b := Breakdown{CategoryCars: 1.5, CategoryHeating: 2.5}
	assert.InDelta(t, 4.0, b.Total(), epsilon)

	clone := b.Clone()
	clone[CategoryCars] = 99
	assert.InDelta(t, 1.5, b[CategoryCars], epsilon)
}

func TestFactorsValidate(t *testing.T) {
	assert.NoError(t, DefaultFactors().Validate())

	bad := DefaultFactors()
	bad.HeatingKgPerKWh = math.Inf(-1)
	err := bad.Validate()
	require.ErrorIs(t, err, ErrInvalidFactor)
	assert.Contains(t, err.Error(), "heating_kg_per_kwh")
}

func TestFactorsForCategory(t *testing.T) {
	f := DefaultFactors()

	value, unit, ok := f.ForCategory(CategoryTrucks)
	assert.True(t, ok)
	assert.InDelta(t, DefaultTruckKgPerKm, value, epsilon)
	assert.Equal(t, "kg/km", unit)

	_, _, ok = f.ForCategory(CategorySubcontractors)
	assert.False(t, ok, "subcontractor tons are a pass-through with no factor")
}
