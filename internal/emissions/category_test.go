package emissions

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategoryRoundTrip(t *testing.T) {
	for _, c := range Categories() {
		parsed, err := ParseCategory(c.Key())
		require.NoError(t, err, c.Key())
		assert.Equal(t, c, parsed)
	}
}

func TestParseCategoryUnknown(t *testing.T) {
	_, err := ParseCategory("bicycles")
	require.ErrorIs(t, err, ErrUnknownCategory)
	assert.Contains(t, err.Error(), "bicycles")
}

func TestCategoryLabels(t *testing.T) {
	assert.Equal(t, "Cargo Planes", CategoryCargoPlanes.String())
	assert.Equal(t, "cargo_planes", CategoryCargoPlanes.Key())
	assert.Equal(t, "Cooling (A/C)", CategoryCooling.String())
	assert.Equal(t, "unknown(42)", Category(42).String())
}

func TestBreakdownJSONKeys(t *testing.T) {
	b := Breakdown{CategoryCargoPlanes: 3600, CategorySubcontractors: 185}

	data, err := json.Marshal(b)
	require.NoError(t, err)
	assert.JSONEq(t, `{"cargo_planes": 3600, "subcontractors": 185}`, string(data))

	var decoded Breakdown
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, b, decoded)
}
