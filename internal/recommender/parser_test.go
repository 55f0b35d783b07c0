package recommender

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
)

func TestParseSectionsValidReply(t *testing.T) {
	raw := `[
		{
			"course_code": "CS101",
			"section_label": "A",
			"timeslot": {"day": "MONDAY", "start": "10:00", "end": "11:00"},
			"room": "Lab-1",
			"allocated_student_ids": ["s1", "s2", "s3"],
			"capacity": 30,
			"justification": "morning slot keeps the lab free in the afternoon",
			"confidence_score": 0.92
		}
	]`

	sections, err := ParseSections([]byte(raw))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, "CS101", sections[0].CourseCode)
	assert.Equal(t, models.DayMonday, sections[0].Window.Day)
	assert.Equal(t, "10:00", sections[0].Window.Start.String())
	assert.Equal(t, 3, sections[0].StudentCount)
	assert.Equal(t, 30, sections[0].Capacity)
}

func TestParseSectionsStripsCodeFences(t *testing.T) {
	raw := "Here is the schedule:\n```json\n[{\"course_code\":\"CS101\",\"section_label\":\"A\",\"timeslot\":{\"day\":\"monday\",\"start\":\"09:00\",\"end\":\"10:30\"},\"room\":\"R1\",\"allocated_student_ids\":[]}]\n```\nLet me know if you need changes."

	sections, err := ParseSections([]byte(raw))
	require.NoError(t, err)
	require.Len(t, sections, 1)
	assert.Equal(t, models.DayMonday, sections[0].Window.Day)
	assert.Equal(t, 0, sections[0].StudentCount)
}

func TestParseSectionsMissingWindowFails(t *testing.T) {
	raw := `[{"course_code":"CS101","section_label":"A","room":"R1"}]`

	sections, err := ParseSections([]byte(raw))
	require.Error(t, err)
	assert.Nil(t, sections)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestParseSectionsBadClockFails(t *testing.T) {
	raw := `[{"course_code":"CS101","section_label":"A","timeslot":{"day":"MONDAY","start":"10am","end":"11:00"},"room":"R1"}]`

	_, err := ParseSections([]byte(raw))
	require.Error(t, err)
}

func TestParseSectionsInvertedWindowFails(t *testing.T) {
	raw := `[{"course_code":"CS101","section_label":"A","timeslot":{"day":"MONDAY","start":"12:00","end":"11:00"},"room":"R1"}]`

	_, err := ParseSections([]byte(raw))
	require.Error(t, err)
}

func TestParseSectionsMissingCourseCodeFails(t *testing.T) {
	raw := `[{"course_code":"  ","section_label":"A","timeslot":{"day":"MONDAY","start":"10:00","end":"11:00"},"room":"R1"}]`

	_, err := ParseSections([]byte(raw))
	require.Error(t, err)
}

func TestParseSectionsNoArrayFails(t *testing.T) {
	_, err := ParseSections([]byte("I could not generate a schedule, sorry."))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestParseSectionsDefaultsSectionLabel(t *testing.T) {
	raw := `[{"course_code":"CS101","timeslot":{"day":"FRIDAY","start":"13:00","end":"14:00"},"room":"R1","allocated_student_ids":["s1"]}]`

	sections, err := ParseSections([]byte(raw))
	require.NoError(t, err)
	assert.Equal(t, "A", sections[0].SectionLabel)
}
