package availability

import (
	"testing"

	"therapair/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2025-06-02 is a Monday.
const monday = "2025-06-02"

func mondayTemplate(intervals ...models.TimeInterval) models.WeeklyTemplate {
	return models.WeeklyTemplate{Monday: intervals}
}

func TestResolveDayTemplateOnly(t *testing.T) {
	template := mondayTemplate(models.TimeInterval{Start: "09:00", End: "12:00"})

	day, err := ResolveDay(template, nil, monday)
	require.NoError(t, err)

	assert.Equal(t, monday, day.Date)
	assert.Equal(t, "monday", day.Weekday)
	assert.True(t, day.IsAvailable)
	assert.Equal(t, []models.TimeInterval{{Start: "09:00", End: "12:00"}}, day.Slots)
	assert.Empty(t, day.OverridesApplied)
}

func TestResolveDayEmptyTemplateDay(t *testing.T) {
	template := mondayTemplate(models.TimeInterval{Start: "09:00", End: "12:00"})

	// 2025-06-03 is a Tuesday with no template entries.
	day, err := ResolveDay(template, nil, "2025-06-03")
	require.NoError(t, err)

	assert.False(t, day.IsAvailable)
	assert.Empty(t, day.Slots)
}

func TestResolveDayFullDayUnavailable(t *testing.T) {
	template := mondayTemplate(models.TimeInterval{Start: "09:00", End: "12:00"})
	overrides := []models.AvailabilityOverride{
		{ID: "o1", StartDate: monday, EndDate: monday, Type: models.OverrideUnavailable},
	}

	day, err := ResolveDay(template, overrides, monday)
	require.NoError(t, err)

	assert.False(t, day.IsAvailable)
	assert.Empty(t, day.Slots)
	assert.Equal(t, []string{"o1"}, day.OverridesApplied)
}

func TestResolveDayBlockedDropsWholeSlot(t *testing.T) {
	template := mondayTemplate(models.TimeInterval{Start: "09:00", End: "12:00"})
	overrides := []models.AvailabilityOverride{
		{ID: "o1", StartDate: monday, EndDate: monday, StartTime: "10:00", EndTime: "11:00", Type: models.OverrideBlocked},
	}

	day, err := ResolveDay(template, overrides, monday)
	require.NoError(t, err)

	// The 09:00-12:00 slot overlaps the blocked window and is dropped in
	// full, not split. BLOCKED never touches the availability flag, so the
	// day still reads available even with zero slots.
	assert.Empty(t, day.Slots)
	assert.True(t, day.IsAvailable)
}

func TestResolveDayTimeOffWithWindow(t *testing.T) {
	template := mondayTemplate(
		models.TimeInterval{Start: "09:00", End: "10:00"},
		models.TimeInterval{Start: "14:00", End: "16:00"},
	)
	overrides := []models.AvailabilityOverride{
		{ID: "o1", StartDate: monday, EndDate: monday, StartTime: "09:30", EndTime: "11:00", Type: models.OverrideTimeOff},
	}

	day, err := ResolveDay(template, overrides, monday)
	require.NoError(t, err)

	// Only the morning slot overlaps; the afternoon slot survives.
	assert.Equal(t, []models.TimeInterval{{Start: "14:00", End: "16:00"}}, day.Slots)
	assert.True(t, day.IsAvailable)
}

func TestResolveDayAdjacentSlotSurvivesSubtraction(t *testing.T) {
	template := mondayTemplate(models.TimeInterval{Start: "09:00", End: "10:00"})
	overrides := []models.AvailabilityOverride{
		// Window starts exactly where the slot ends: no overlap under
		// half-open semantics.
		{ID: "o1", StartDate: monday, EndDate: monday, StartTime: "10:00", EndTime: "11:00", Type: models.OverrideUnavailable},
	}

	day, err := ResolveDay(template, overrides, monday)
	require.NoError(t, err)
	assert.Equal(t, []models.TimeInterval{{Start: "09:00", End: "10:00"}}, day.Slots)
}

func TestResolveDayAvailableOverridesEmptyDay(t *testing.T) {
	overrides := []models.AvailabilityOverride{
		{ID: "o1", StartDate: monday, EndDate: monday, StartTime: "13:00", EndTime: "15:00", Type: models.OverrideAvailable},
	}

	day, err := ResolveDay(models.WeeklyTemplate{}, overrides, monday)
	require.NoError(t, err)

	assert.True(t, day.IsAvailable)
	assert.Equal(t, []models.TimeInterval{{Start: "13:00", End: "15:00"}}, day.Slots)
}

func TestResolveDayLaterAvailableReopensClosedTime(t *testing.T) {
	template := mondayTemplate(models.TimeInterval{Start: "09:00", End: "12:00"})
	overrides := []models.AvailabilityOverride{
		{ID: "o1", StartDate: monday, EndDate: monday, Type: models.OverrideUnavailable},
		{ID: "o2", StartDate: monday, EndDate: monday, StartTime: "10:00", EndTime: "11:00", Type: models.OverrideAvailable},
	}

	day, err := ResolveDay(template, overrides, monday)
	require.NoError(t, err)

	assert.True(t, day.IsAvailable)
	assert.Equal(t, []models.TimeInterval{{Start: "10:00", End: "11:00"}}, day.Slots)
	assert.Equal(t, []string{"o1", "o2"}, day.OverridesApplied)
}

func TestResolveDayOverlappingAvailableNotMerged(t *testing.T) {
	template := mondayTemplate(models.TimeInterval{Start: "09:00", End: "12:00"})
	overrides := []models.AvailabilityOverride{
		{ID: "o1", StartDate: monday, EndDate: monday, StartTime: "10:00", EndTime: "13:00", Type: models.OverrideAvailable},
	}

	day, err := ResolveDay(template, overrides, monday)
	require.NoError(t, err)

	// Overlapping open intervals are returned as-is, sorted by start.
	assert.Equal(t, []models.TimeInterval{
		{Start: "09:00", End: "12:00"},
		{Start: "10:00", End: "13:00"},
	}, day.Slots)
}

func TestResolveDaySlotsSortedAscending(t *testing.T) {
	overrides := []models.AvailabilityOverride{
		{ID: "o1", StartDate: monday, EndDate: monday, StartTime: "15:00", EndTime: "16:00", Type: models.OverrideAvailable},
		{ID: "o2", StartDate: monday, EndDate: monday, StartTime: "08:00", EndTime: "09:00", Type: models.OverrideAvailable},
	}

	day, err := ResolveDay(models.WeeklyTemplate{}, overrides, monday)
	require.NoError(t, err)

	for i := 1; i < len(day.Slots); i++ {
		assert.LessOrEqual(t, day.Slots[i-1].Start, day.Slots[i].Start)
	}
	for _, s := range day.Slots {
		assert.Less(t, s.Start, s.End)
	}
}

func TestResolveDayIgnoresOverridesOutsideDate(t *testing.T) {
	template := mondayTemplate(models.TimeInterval{Start: "09:00", End: "12:00"})
	overrides := []models.AvailabilityOverride{
		{ID: "o1", StartDate: "2025-06-09", EndDate: "2025-06-09", Type: models.OverrideUnavailable},
	}

	day, err := ResolveDay(template, overrides, monday)
	require.NoError(t, err)

	assert.True(t, day.IsAvailable)
	assert.Empty(t, day.OverridesApplied)
}

func TestResolveDayDeterministic(t *testing.T) {
	template := mondayTemplate(models.TimeInterval{Start: "09:00", End: "12:00"})
	overrides := []models.AvailabilityOverride{
		{ID: "o1", StartDate: monday, EndDate: monday, StartTime: "09:00", EndTime: "10:00", Type: models.OverrideBlocked},
		{ID: "o2", StartDate: monday, EndDate: monday, StartTime: "11:00", EndTime: "12:00", Type: models.OverrideAvailable},
	}

	first, err := ResolveDay(template, overrides, monday)
	require.NoError(t, err)
	second, err := ResolveDay(template, overrides, monday)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolveDayInvalidDate(t *testing.T) {
	_, err := ResolveDay(models.WeeklyTemplate{}, nil, "06/02/2025")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestResolveRangeInclusive(t *testing.T) {
	template := mondayTemplate(models.TimeInterval{Start: "09:00", End: "12:00"})

	days, err := ResolveRange(template, nil, monday, "2025-06-08")
	require.NoError(t, err)
	require.Len(t, days, 7)

	assert.Equal(t, monday, days[0].Date)
	assert.Equal(t, "2025-06-08", days[6].Date)
	assert.True(t, days[0].IsAvailable)
	for _, d := range days[1:] {
		assert.False(t, d.IsAvailable)
	}
}

func TestResolveRangeRefiltersPerDay(t *testing.T) {
	template := models.WeeklyTemplate{
		Monday:  []models.TimeInterval{{Start: "09:00", End: "12:00"}},
		Tuesday: []models.TimeInterval{{Start: "09:00", End: "12:00"}},
	}
	overrides := []models.AvailabilityOverride{
		{ID: "o1", StartDate: monday, EndDate: monday, Type: models.OverrideTimeOff},
	}

	days, err := ResolveRange(template, overrides, monday, "2025-06-03")
	require.NoError(t, err)
	require.Len(t, days, 2)

	assert.False(t, days[0].IsAvailable)
	assert.True(t, days[1].IsAvailable)
}

func TestResolveRangeInvalidInput(t *testing.T) {
	_, err := ResolveRange(models.WeeklyTemplate{}, nil, "bad-date", monday)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	_, err = ResolveRange(models.WeeklyTemplate{}, nil, "2025-06-08", monday)
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestIsAvailableForContainment(t *testing.T) {
	template := mondayTemplate(models.TimeInterval{Start: "09:00", End: "12:00"})

	ok, err := IsAvailableFor(template, nil, monday, "09:00", "12:00")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = IsAvailableFor(template, nil, monday, "10:00", "11:00")
	require.NoError(t, err)
	assert.True(t, ok)

	// Partial overlap does not count.
	ok, err = IsAvailableFor(template, nil, monday, "11:00", "13:00")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = IsAvailableFor(template, nil, monday, "13:00", "14:00")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsAvailableForInvalidWindow(t *testing.T) {
	_, err := IsAvailableFor(models.WeeklyTemplate{}, nil, monday, "12:00", "09:00")
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}
