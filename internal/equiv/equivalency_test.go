package equiv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name           string
		input          CarbonInput
		wantMiles      float64
		wantTrees      float64
		wantHomeDays   float64
		wantIsEmpty    bool
		wantErr        bool
		errType        error
		displayContain string
		compactContain string
	}{
		{
			name:           "150kg reference value",
			input:          CarbonInput{Value: 150.0, Unit: "kg"},
			wantMiles:      781.25, // 150 / 0.192
			wantTrees:      2.5,    // 150 / 60
			wantHomeDays:   8.2,    // 150 / 18.3
			displayContain: "driving",
			compactContain: "mi",
		},
		{
			name:         "grams normalized correctly",
			input:        CarbonInput{Value: 150000.0, Unit: "g"},
			wantMiles:    781.25,
			wantTrees:    2.5,
			wantHomeDays: 8.2,
		},
		{
			name:         "metric tons normalized correctly",
			input:        CarbonInput{Value: 0.15, Unit: "t"},
			wantMiles:    781.25,
			wantTrees:    2.5,
			wantHomeDays: 8.2,
		},
		{
			name:        "below threshold returns empty",
			input:       CarbonInput{Value: 0.5, Unit: "kg"},
			wantIsEmpty: true,
		},
		{
			name:        "zero value returns empty",
			input:       CarbonInput{Value: 0.0, Unit: "kg"},
			wantIsEmpty: true,
		},
		{
			name:    "negative value returns error",
			input:   CarbonInput{Value: -100.0, Unit: "kg"},
			wantErr: true,
			errType: ErrNegativeValue,
		},
		{
			name:    "invalid unit returns error",
			input:   CarbonInput{Value: 100.0, Unit: "bananas"},
			wantErr: true,
			errType: ErrInvalidUnit,
		},
		{
			name:           "savings-scale value in tons",
			input:          CarbonInput{Value: 819.16, Unit: "t"},
			wantMiles:      4266458.33, // 819160 / 0.192
			wantTrees:      13652.67,   // 819160 / 60
			wantHomeDays:   44763.93,   // 819160 / 18.3
			displayContain: "tree seedlings",
			compactContain: "trees",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				if tt.errType != nil {
					assert.ErrorIs(t, err, tt.errType)
				}
				assert.True(t, got.IsEmpty, "IsEmpty should be true on error")
				return
			}

			require.NoError(t, err)

			if tt.wantIsEmpty {
				assert.True(t, got.IsEmpty, "expected IsEmpty to be true")
				return
			}

			assert.False(t, got.IsEmpty, "expected IsEmpty to be false")
			require.Len(t, got.Results, 3, "expected 3 equivalency results")

			milesResult := got.Results[0]
			assert.Equal(t, EquivalencyMilesDriven, milesResult.Type)
			assert.InDelta(t, tt.wantMiles, milesResult.Value, tt.wantMiles*0.01)
			assert.Equal(t, "miles driven", milesResult.Label)

			treesResult := got.Results[1]
			assert.Equal(t, EquivalencyTreeSeedlings, treesResult.Type)
			assert.InDelta(t, tt.wantTrees, treesResult.Value, tt.wantTrees*0.01)

			homeDaysResult := got.Results[2]
			assert.Equal(t, EquivalencyHomeDays, homeDaysResult.Type)
			assert.InDelta(t, tt.wantHomeDays, homeDaysResult.Value, tt.wantHomeDays*0.01)

			if tt.displayContain != "" {
				assert.Contains(t, got.DisplayText, tt.displayContain)
				assert.Contains(t, got.CompactText, tt.compactContain)
			}
		})
	}
}

func TestFromTons(t *testing.T) {
	t.Run("positive savings", func(t *testing.T) {
		got := FromTons(819.16)
		assert.False(t, got.IsEmpty)
		assert.InDelta(t, 819160.0, got.InputKg, 0.01)
		assert.Contains(t, got.DisplayText, "~4.3 million miles")
	})

	t.Run("negative savings return empty without error", func(t *testing.T) {
		got := FromTons(-5)
		assert.True(t, got.IsEmpty)
	})

	t.Run("tiny savings below threshold", func(t *testing.T) {
		got := FromTons(0.0001)
		assert.True(t, got.IsEmpty)
	})
}
