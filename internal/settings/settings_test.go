package settings

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/studyplan/internal/calendar"
)

func TestResolveDefaults(t *testing.T) {
	p, err := Resolve(nil)
	require.NoError(t, err)
	assert.Equal(t, 30, p.MinDuration)
	assert.Equal(t, 70, p.MaxDuration)
	assert.Equal(t, 5, p.MaxPerDay)
	assert.Equal(t, 2, p.RemedialDelayDays())
	assert.Equal(t, 2, p.HighBonusDays)
	assert.Equal(t, 2, p.MinGapDays)
	assert.Equal(t, 350, p.DefaultDailyMinutes())
}

func TestResolveOverridesAndIgnoresUnknown(t *testing.T) {
	p, err := Resolve(map[string]int{
		KeyMaxPerDay:    3,
		KeyLowBonusDays: -4,
		"couleur":       7,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, p.MaxPerDay)
	assert.Equal(t, 4, p.RemedialDelayDays())
	assert.Equal(t, 210, p.DefaultDailyMinutes())
}

func TestResolveRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]int
		key  string
	}{
		{"min above max", map[string]int{KeyMinDuration: 80}, KeyMaxDuration},
		{"zero min duration", map[string]int{KeyMinDuration: 0}, KeyMinDuration},
		{"zero per day", map[string]int{KeyMaxPerDay: 0}, KeyMaxPerDay},
		{"threshold above 100", map[string]int{KeyHighThreshold: 120}, KeyHighThreshold},
		{"thresholds crossed", map[string]int{KeyLowThreshold: 90}, KeyHighThreshold},
		{"negative gap", map[string]int{KeyMinGapDays: -1}, KeyMinGapDays},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidParameters)

			var pe *ParamError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.key, pe.Key)
		})
	}
}

func TestScoreThresholds(t *testing.T) {
	p := DefaultParams()
	tests := []struct {
		raw, total int
		low, high  bool
	}{
		{5, 10, true, false},
		{59, 100, true, false},
		{6, 10, false, false},
		{84, 100, false, false},
		{17, 20, false, true},
		{10, 10, false, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.low, p.IsLow(tt.raw, tt.total), "IsLow(%d/%d)", tt.raw, tt.total)
		assert.Equal(t, tt.high, p.IsHigh(tt.raw, tt.total), "IsHigh(%d/%d)", tt.raw, tt.total)
	}
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Len(t, keys, len(DefaultValues))
	assert.IsIncreasing(t, keys)
	assert.True(t, IsKnown(KeyMinGapDays))
	assert.False(t, IsKnown("duree"))
	for _, k := range keys {
		assert.NotEmpty(t, Descriptions[k], "description of %s", k)
	}
}

func TestSessionsFor(t *testing.T) {
	table := RevisionTable{8: 9, 3: 0, 10: 12}
	assert.Equal(t, 9, table.SessionsFor(8))
	assert.Equal(t, 1, table.SessionsFor(3), "non-positive entries still yield one session")
	assert.Equal(t, DefaultSessionCount, table.SessionsFor(5))
	assert.Equal(t, 12, table.SessionsFor(42), "clamped to 10")
	assert.Equal(t, DefaultSessionCount, table.SessionsFor(-3), "clamped to 0, no entry")
	assert.Equal(t, 8, RevisionTable(DefaultRevisionTable).SessionsFor(8))
}

func TestAvailability(t *testing.T) {
	a, err := NewAvailability(map[string]int{
		"friday":     45,
		"samedi":     0,
		"2025-01-10": 120,
	}, 350)
	require.NoError(t, err)

	assert.Equal(t, 120, a.Capacity(calendar.Date(2025, 1, 10)), "date beats weekday")
	assert.Equal(t, 45, a.Capacity(calendar.Date(2025, 1, 17)))
	assert.Equal(t, 0, a.Capacity(calendar.Date(2025, 1, 11)))
	assert.Equal(t, 350, a.Capacity(calendar.Date(2025, 1, 13)))

	assert.Equal(t, 60, UniformAvailability(60).Capacity(calendar.Date(2030, 6, 1)))
}

func TestAvailabilityRejectsBadRows(t *testing.T) {
	_, err := NewAvailability(map[string]int{"monday": -5}, 100)
	assert.Error(t, err)

	_, err = NewAvailability(map[string]int{"someday": 30}, 100)
	assert.Error(t, err)
}
