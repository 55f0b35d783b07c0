package recommender

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
)

// wireSection mirrors the recommender output contract. Justification and
// confidence score are accepted on the wire but carry no semantic weight
// for conflict detection, so they are dropped during parsing.
type wireSection struct {
	CourseCode   string `json:"course_code"`
	SectionLabel string `json:"section_label"`
	Timeslot     struct {
		Day   string `json:"day"`
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"timeslot"`
	Room                string          `json:"room"`
	AllocatedStudentIDs []string        `json:"allocated_student_ids"`
	Capacity            int             `json:"capacity"`
	Justification       json.RawMessage `json:"justification"`
	ConfidenceScore     json.RawMessage `json:"confidence_score"`
}

// ParseSections strictly maps untrusted recommender JSON into the Section
// type. Missing or malformed required fields fail the whole parse; nothing
// is silently coerced. Markdown code fences and stray prose around the
// JSON array are tolerated because LLM replies routinely include them.
func ParseSections(raw []byte) ([]models.Section, error) {
	payload, err := extractJSONArray(raw)
	if err != nil {
		return nil, err
	}

	var wire []wireSection
	if err := json.Unmarshal(payload, &wire); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "recommender output is not a section array")
	}

	sections := make([]models.Section, 0, len(wire))
	for i, item := range wire {
		if strings.TrimSpace(item.CourseCode) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("recommender section %d is missing course_code", i))
		}
		if strings.TrimSpace(item.Room) == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("recommender section %d (%s) is missing room", i, item.CourseCode))
		}
		day, err := models.ParseDay(item.Timeslot.Day)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				fmt.Sprintf("recommender section %d (%s) has an invalid day", i, item.CourseCode))
		}
		start, err := models.ParseClock(item.Timeslot.Start)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				fmt.Sprintf("recommender section %d (%s) has an invalid start time", i, item.CourseCode))
		}
		end, err := models.ParseClock(item.Timeslot.End)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				fmt.Sprintf("recommender section %d (%s) has an invalid end time", i, item.CourseCode))
		}
		window := models.TimeWindow{Day: day, Start: start, End: end}
		if err := window.Validate(); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status,
				fmt.Sprintf("recommender section %d (%s) has an invalid window", i, item.CourseCode))
		}
		if item.Capacity < 0 {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("recommender section %d (%s) has a negative capacity", i, item.CourseCode))
		}

		label := strings.TrimSpace(item.SectionLabel)
		if label == "" {
			label = "A"
		}
		sections = append(sections, models.Section{
			CourseCode:   strings.TrimSpace(item.CourseCode),
			SectionLabel: label,
			Window:       window,
			Room:         strings.TrimSpace(item.Room),
			StudentCount: len(item.AllocatedStudentIDs),
			Capacity:     item.Capacity,
		})
	}
	return sections, nil
}

// extractJSONArray locates the JSON array inside a possibly fenced or
// prose-wrapped reply.
func extractJSONArray(raw []byte) ([]byte, error) {
	text := strings.TrimSpace(string(raw))
	if fenced := strings.Index(text, "```"); fenced >= 0 {
		text = strings.ReplaceAll(text, "```json", "```")
		parts := strings.Split(text, "```")
		for _, part := range parts {
			candidate := strings.TrimSpace(part)
			if strings.HasPrefix(candidate, "[") {
				text = candidate
				break
			}
		}
	}

	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start < 0 || end < start {
		return nil, appErrors.Clone(appErrors.ErrValidation, "recommender output contains no JSON array")
	}
	return []byte(text[start : end+1]), nil
}
