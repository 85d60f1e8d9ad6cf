package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	questdbconnect "github.com/antoniocaiazzo/questdb-connect"
)

// TestSuffixValidCombinations tests every valid engine combination yields
// the expected clauses in order.
func TestSuffixValidCombinations(t *testing.T) {
	tests := []struct {
		name     string
		engine   *TableEngine
		expected string
	}{
		{
			name:     "bare_table",
			engine:   NewTableEngine("t", "", PartitionNone, false),
			expected: "",
		},
		{
			name:     "timestamp_only",
			engine:   NewTableEngine("t", "ts", PartitionNone, false),
			expected: "TIMESTAMP(ts)",
		},
		{
			name:     "timestamp_partitioned",
			engine:   NewTableEngine("t", "ts", PartitionMonth, false),
			expected: "TIMESTAMP(ts) PARTITION BY MONTH",
		},
		{
			name:     "wal_day",
			engine:   NewTableEngine("t", "ts", PartitionDay, true),
			expected: "TIMESTAMP(ts) PARTITION BY DAY WAL",
		},
		{
			name:     "wal_hour",
			engine:   NewTableEngine("t", "ts", PartitionHour, true),
			expected: "TIMESTAMP(ts) PARTITION BY HOUR WAL",
		},
		{
			name:     "wal_week",
			engine:   NewTableEngine("t", "ts", PartitionWeek, true),
			expected: "TIMESTAMP(ts) PARTITION BY WEEK WAL",
		},
		{
			name:     "wal_year",
			engine:   NewTableEngine("t", "ts", PartitionYear, true),
			expected: "TIMESTAMP(ts) PARTITION BY YEAR WAL",
		},
		{
			name:     "dedup_keys",
			engine:   NewTableEngine("t", "ts", PartitionDay, true).WithDedupKeys("ts", "sensor"),
			expected: "TIMESTAMP(ts) PARTITION BY DAY WAL DEDUP UPSERT KEYS(ts, sensor)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suffix, err := tt.engine.Suffix()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, suffix)
		})
	}
}

// TestSuffixInvalidCombinations tests that invalid engine combinations fail
// with a ConfigError and never return a partial fragment.
func TestSuffixInvalidCombinations(t *testing.T) {
	tests := []struct {
		name   string
		engine *TableEngine
	}{
		{
			name:   "partitioned_without_timestamp",
			engine: NewTableEngine("t", "", PartitionDay, false),
		},
		{
			name:   "wal_without_partitioning",
			engine: NewTableEngine("t", "ts", PartitionNone, true),
		},
		{
			name:   "wal_without_anything",
			engine: NewTableEngine("t", "", PartitionNone, true),
		},
		{
			name:   "dedup_without_wal",
			engine: NewTableEngine("t", "ts", PartitionDay, false).WithDedupKeys("ts"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			suffix, err := tt.engine.Suffix()
			require.Error(t, err)
			assert.True(t, questdbconnect.IsConfigError(err))
			assert.Empty(t, suffix)
		})
	}
}

// TestSuffixMemoized tests that compilation happens once and subsequent
// calls return the same result.
func TestSuffixMemoized(t *testing.T) {
	e := NewTableEngine("t", "ts", PartitionDay, true)
	first, err := e.Suffix()
	require.NoError(t, err)

	// Mutating after the first compilation must not change the result.
	e.PartitionBy = PartitionYear
	second, err := e.Suffix()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestSuffixErrorMemoized tests that a failed compilation stays failed.
func TestSuffixErrorMemoized(t *testing.T) {
	e := NewTableEngine("t", "", PartitionDay, false)
	_, err := e.Suffix()
	require.Error(t, err)

	e.TimestampColumn = "ts"
	_, err = e.Suffix()
	require.Error(t, err, "memoized error should not be recomputed")
}

// TestParsePartitionBy tests granularity name resolution.
func TestParsePartitionBy(t *testing.T) {
	tests := []struct {
		input    string
		expected PartitionBy
	}{
		{"NONE", PartitionNone},
		{"YEAR", PartitionYear},
		{"MONTH", PartitionMonth},
		{"WEEK", PartitionWeek},
		{"DAY", PartitionDay},
		{"HOUR", PartitionHour},
		{"day", PartitionDay},
		{" Hour ", PartitionHour},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePartitionBy(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, p)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := ParsePartitionBy("DECADE")
		require.Error(t, err)
		assert.True(t, questdbconnect.IsConfigError(err))
	})
}

// TestPartitionByString tests the granularity names round-trip.
func TestPartitionByString(t *testing.T) {
	for _, p := range []PartitionBy{PartitionNone, PartitionYear, PartitionMonth, PartitionWeek, PartitionDay, PartitionHour} {
		got, err := ParsePartitionBy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
}
