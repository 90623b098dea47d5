package eligibility

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTables2025_IncomeCeilingsNonDecreasingBySize(t *testing.T) {
	tables := Tables2025()
	for _, zone := range Zones {
		prev := 0
		for size := 1; size <= 8; size++ {
			ceiling, ok := tables.IncomeCeiling(zone, size)
			require.True(t, ok)
			assert.GreaterOrEqual(t, ceiling, prev, "zone %s size %d", zone, size)
			prev = ceiling
		}
	}
}

func TestTables2025_CostCeilingsNonDecreasingBySize(t *testing.T) {
	tables := Tables2025()
	for _, zone := range Zones {
		prev := 0
		for size := 1; size <= 5; size++ {
			ceiling, ok := tables.CostCeiling(zone, size)
			require.True(t, ok)
			assert.GreaterOrEqual(t, ceiling, prev, "zone %s size %d", zone, size)
			prev = ceiling
		}
	}
}

func TestTables2025_BracketThresholdsStrictlyIncreasing(t *testing.T) {
	tables := Tables2025()
	for _, zone := range Zones {
		thresholds, ok := tables.BracketThresholds(zone)
		require.True(t, ok)
		for i := 1; i < 4; i++ {
			assert.Greater(t, thresholds[i], thresholds[i-1], "zone %s", zone)
		}
		// The fourth threshold equals the single-person income ceiling so
		// bracket 4 catches everything the ceiling check let through.
		ceiling, ok := tables.IncomeCeiling(zone, 1)
		require.True(t, ok)
		assert.Equal(t, ceiling, thresholds[3], "zone %s", zone)
	}
}

func TestTables2025_SpotValues(t *testing.T) {
	tables := Tables2025()

	ceiling, ok := tables.IncomeCeiling(ZoneA, 2)
	require.True(t, ok)
	assert.Equal(t, 73500, ceiling)

	// Sizes above the table reuse the top bracket.
	ceiling, ok = tables.IncomeCeiling(ZoneB1, 11)
	require.True(t, ok)
	assert.Equal(t, 113850, ceiling)

	cost, ok := tables.CostCeiling(ZoneA, 2)
	require.True(t, ok)
	assert.Equal(t, 225000, cost)

	quota, ok := tables.Quota(HousingIndividual, 4)
	require.True(t, ok)
	assert.Equal(t, 10, quota)

	quota, ok = tables.Quota(HousingCollective, 1)
	require.True(t, ok)
	assert.Equal(t, 50, quota)

	_, ok = tables.Quota(HousingIndividual, 5)
	assert.False(t, ok)

	_, ok = tables.IncomeCeiling("Z", 1)
	assert.False(t, ok)
}
