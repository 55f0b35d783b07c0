package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
)

func mustClock(t *testing.T, raw string) models.ClockMinutes {
	t.Helper()
	value, err := models.ParseClock(raw)
	require.NoError(t, err)
	return value
}

func section(t *testing.T, course, label string, day models.Day, start, end, room string) models.Section {
	t.Helper()
	return models.Section{
		CourseCode:   course,
		SectionLabel: label,
		Window:       models.TimeWindow{Day: day, Start: mustClock(t, start), End: mustClock(t, end)},
		Room:         room,
	}
}

func TestValidateSectionsRoomConflict(t *testing.T) {
	sections := []models.Section{
		section(t, "CS101", "A", models.DayMonday, "10:00", "11:00", "RoomA"),
		section(t, "MATH101", "A", models.DayMonday, "10:00", "11:30", "RoomA"),
	}

	violations, err := ValidateSections(sections, SchedulePolicy{})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ViolationRoomConflict, violations[0].Kind)
	assert.Len(t, violations[0].Sections, 2)
	assert.Contains(t, violations[0].Sections, models.SectionRef{CourseCode: "CS101", SectionLabel: "A"})
	assert.Contains(t, violations[0].Sections, models.SectionRef{CourseCode: "MATH101", SectionLabel: "A"})
}

func TestValidateSectionsRoomConflictReportsAllSharers(t *testing.T) {
	sections := []models.Section{
		section(t, "CS101", "A", models.DayMonday, "10:00", "11:00", "RoomA"),
		section(t, "MATH101", "A", models.DayMonday, "10:00", "11:00", "RoomA"),
		section(t, "PHY101", "A", models.DayMonday, "10:00", "11:00", "RoomA"),
	}

	violations, err := ValidateSections(sections, SchedulePolicy{})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Len(t, violations[0].Sections, 3)
}

func TestValidateSectionsDifferentRoomsNoConflict(t *testing.T) {
	sections := []models.Section{
		section(t, "CS101", "A", models.DayMonday, "10:00", "11:00", "RoomA"),
		section(t, "MATH101", "A", models.DayMonday, "10:00", "11:00", "RoomB"),
	}

	violations, err := ValidateSections(sections, SchedulePolicy{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateSectionsBlackoutOverlap(t *testing.T) {
	policy := SchedulePolicy{
		BlackoutWindows: []models.TimeWindow{
			{Day: models.DayMonday, Start: mustClock(t, "12:00"), End: mustClock(t, "13:00")},
		},
	}
	sections := []models.Section{
		section(t, "CS101", "A", models.DayMonday, "12:00", "13:00", "RoomA"),
	}

	violations, err := ValidateSections(sections, policy)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ViolationBlackoutOverlap, violations[0].Kind)
}

func TestValidateSectionsBlackoutBoundariesAreExclusive(t *testing.T) {
	policy := SchedulePolicy{
		BlackoutWindows: []models.TimeWindow{
			{Day: models.DayMonday, Start: mustClock(t, "12:00"), End: mustClock(t, "13:00")},
		},
	}
	sections := []models.Section{
		// ends exactly at blackout start
		section(t, "CS101", "A", models.DayMonday, "11:00", "12:00", "RoomA"),
		// starts exactly at blackout end
		section(t, "MATH101", "A", models.DayMonday, "13:00", "14:00", "RoomB"),
	}

	violations, err := ValidateSections(sections, policy)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateSectionsBlackoutPartialOverlap(t *testing.T) {
	policy := SchedulePolicy{
		BlackoutWindows: []models.TimeWindow{
			{Day: models.DayMonday, Start: mustClock(t, "12:00"), End: mustClock(t, "13:00")},
		},
	}
	sections := []models.Section{
		section(t, "CS101", "A", models.DayMonday, "12:30", "13:30", "RoomA"),
		section(t, "MATH101", "A", models.DayTuesday, "12:00", "13:00", "RoomB"),
	}

	violations, err := ValidateSections(sections, policy)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ViolationBlackoutOverlap, violations[0].Kind)
	assert.Equal(t, "CS101", violations[0].Sections[0].CourseCode)
}

func TestValidateSectionsDuplicateCourse(t *testing.T) {
	policy := SchedulePolicy{UniqueCoursePerGroup: true}
	sections := []models.Section{
		section(t, "CS101", "A", models.DayMonday, "08:00", "09:00", "RoomA"),
		section(t, "CS101", "B", models.DayTuesday, "08:00", "09:00", "RoomA"),
		section(t, "MATH101", "A", models.DayWednesday, "08:00", "09:00", "RoomA"),
	}

	violations, err := ValidateSections(sections, policy)
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ViolationDuplicateCourse, violations[0].Kind)
	assert.Len(t, violations[0].Sections, 2)
}

func TestValidateSectionsDuplicateCourseDisabled(t *testing.T) {
	sections := []models.Section{
		section(t, "CS101", "A", models.DayMonday, "08:00", "09:00", "RoomA"),
		section(t, "CS101", "B", models.DayTuesday, "08:00", "09:00", "RoomA"),
	}

	violations, err := ValidateSections(sections, SchedulePolicy{UniqueCoursePerGroup: false})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateSectionsRangePolicy(t *testing.T) {
	policy := SchedulePolicy{
		AllowedDays: []models.Day{models.DayMonday, models.DayTuesday, models.DayWednesday},
		AllowedTimeRange: &models.TimeWindow{
			Day:   models.DayMonday,
			Start: mustClock(t, "13:00"),
			End:   mustClock(t, "18:00"),
		},
	}
	sections := []models.Section{
		section(t, "CS101", "A", models.DayFriday, "14:00", "15:00", "RoomA"),
		section(t, "MATH101", "A", models.DayMonday, "12:30", "14:00", "RoomB"),
		section(t, "PHY101", "A", models.DayTuesday, "13:00", "14:00", "RoomC"),
	}

	violations, err := ValidateSections(sections, policy)
	require.NoError(t, err)
	require.Len(t, violations, 2)
	assert.Equal(t, models.ViolationRangePolicy, violations[0].Kind)
	assert.Equal(t, "CS101", violations[0].Sections[0].CourseCode)
	assert.Equal(t, "MATH101", violations[1].Sections[0].CourseCode)
}

func TestValidateSectionsRoomOverlapUnequalStarts(t *testing.T) {
	sections := []models.Section{
		section(t, "CS101", "A", models.DayMonday, "10:00", "11:00", "RoomA"),
		section(t, "MATH101", "A", models.DayMonday, "10:30", "11:30", "RoomA"),
	}

	violations, err := ValidateSections(sections, SchedulePolicy{})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ViolationRoomConflict, violations[0].Kind)
	assert.Len(t, violations[0].Sections, 2)
	assert.Contains(t, violations[0].Sections, models.SectionRef{CourseCode: "CS101", SectionLabel: "A"})
	assert.Contains(t, violations[0].Sections, models.SectionRef{CourseCode: "MATH101", SectionLabel: "A"})
}

func TestValidateSectionsBackToBackSameRoomNoConflict(t *testing.T) {
	sections := []models.Section{
		section(t, "CS101", "A", models.DayMonday, "10:00", "11:00", "RoomA"),
		section(t, "MATH101", "A", models.DayMonday, "11:00", "12:00", "RoomA"),
	}

	violations, err := ValidateSections(sections, SchedulePolicy{})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestValidateSectionsRoomOverlapChainsIntoOneViolation(t *testing.T) {
	// PHY101 only overlaps MATH101, but all three contest RoomA in one
	// contiguous span and are reported together.
	sections := []models.Section{
		section(t, "CS101", "A", models.DayMonday, "10:00", "11:00", "RoomA"),
		section(t, "MATH101", "A", models.DayMonday, "10:30", "11:30", "RoomA"),
		section(t, "PHY101", "A", models.DayMonday, "11:15", "12:00", "RoomA"),
	}

	violations, err := ValidateSections(sections, SchedulePolicy{})
	require.NoError(t, err)
	require.Len(t, violations, 1)
	assert.Equal(t, models.ViolationRoomConflict, violations[0].Kind)
	assert.Len(t, violations[0].Sections, 3)
}

func TestValidateSectionsMalformedInputAborts(t *testing.T) {
	sections := []models.Section{
		section(t, "CS101", "A", models.DayMonday, "10:00", "11:00", "RoomA"),
		{
			CourseCode:   "MATH101",
			SectionLabel: "A",
			Window:       models.TimeWindow{Day: "SOMEDAY", Start: mustClock(t, "10:00"), End: mustClock(t, "11:00")},
			Room:         "RoomA",
		},
	}

	violations, err := ValidateSections(sections, SchedulePolicy{})
	require.Error(t, err)
	assert.Nil(t, violations)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestValidateSectionsInvertedWindowAborts(t *testing.T) {
	sections := []models.Section{
		section(t, "CS101", "A", models.DayMonday, "11:00", "10:00", "RoomA"),
	}

	_, err := ValidateSections(sections, SchedulePolicy{})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestValidateSectionsEmptyListPasses(t *testing.T) {
	violations, err := ValidateSections(nil, SchedulePolicy{UniqueCoursePerGroup: true})
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestCountCapacityWarnings(t *testing.T) {
	sections := []models.Section{
		{CourseCode: "CS101", StudentCount: 30, Capacity: 25},
		{CourseCode: "MATH101", StudentCount: 20, Capacity: 25},
		{CourseCode: "PHY101", StudentCount: 40, Capacity: 0}, // unknown capacity, never warns
	}
	assert.Equal(t, 1, CountCapacityWarnings(sections))
}

func TestTimeWindowOverlapSemantics(t *testing.T) {
	base := models.TimeWindow{Day: models.DayMonday, Start: mustClock(t, "10:00"), End: mustClock(t, "11:00")}

	cases := []struct {
		name    string
		other   models.TimeWindow
		overlap bool
	}{
		{"identical", base, true},
		{"touching before", models.TimeWindow{Day: models.DayMonday, Start: mustClock(t, "09:00"), End: mustClock(t, "10:00")}, false},
		{"touching after", models.TimeWindow{Day: models.DayMonday, Start: mustClock(t, "11:00"), End: mustClock(t, "12:00")}, false},
		{"straddles start", models.TimeWindow{Day: models.DayMonday, Start: mustClock(t, "09:30"), End: mustClock(t, "10:30")}, true},
		{"contained", models.TimeWindow{Day: models.DayMonday, Start: mustClock(t, "10:15"), End: mustClock(t, "10:45")}, true},
		{"other day", models.TimeWindow{Day: models.DayTuesday, Start: mustClock(t, "10:00"), End: mustClock(t, "11:00")}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.overlap, base.Overlaps(tc.other))
			assert.Equal(t, tc.overlap, tc.other.Overlaps(base))
		})
	}
}
