package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Day represents a day of the week in timetable slots.
type Day string

const (
	DayMonday    Day = "MONDAY"
	DayTuesday   Day = "TUESDAY"
	DayWednesday Day = "WEDNESDAY"
	DayThursday  Day = "THURSDAY"
	DayFriday    Day = "FRIDAY"
	DaySaturday  Day = "SATURDAY"
	DaySunday    Day = "SUNDAY"
)

var dayOrder = map[Day]int{
	DayMonday:    1,
	DayTuesday:   2,
	DayWednesday: 3,
	DayThursday:  4,
	DayFriday:    5,
	DaySaturday:  6,
	DaySunday:    7,
}

// ParseDay maps a day name onto the Day enum. Matching is case-insensitive.
func ParseDay(raw string) (Day, error) {
	day := Day(strings.ToUpper(strings.TrimSpace(raw)))
	if _, ok := dayOrder[day]; !ok {
		return "", fmt.Errorf("unknown day %q", raw)
	}
	return day, nil
}

// Valid reports whether the day is a member of the enum.
func (d Day) Valid() bool {
	_, ok := dayOrder[d]
	return ok
}

// Index returns the ISO weekday index (Monday = 1).
func (d Day) Index() int {
	return dayOrder[d]
}

// ClockMinutes is a time of day expressed as minutes since midnight.
// It round-trips through JSON and SQL as a zero-padded "HH:MM" string.
type ClockMinutes int

// ParseClock parses a strict "HH:MM" 24h clock string.
func ParseClock(raw string) (ClockMinutes, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) != 5 || raw[2] != ':' {
		return 0, fmt.Errorf("invalid clock value %q, expected HH:MM", raw)
	}
	var hours, minutes int
	if _, err := fmt.Sscanf(raw, "%02d:%02d", &hours, &minutes); err != nil {
		return 0, fmt.Errorf("invalid clock value %q: %w", raw, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value %q out of range", raw)
	}
	return ClockMinutes(hours*60 + minutes), nil
}

// String formats the value back into "HH:MM".
func (m ClockMinutes) String() string {
	return fmt.Sprintf("%02d:%02d", int(m)/60, int(m)%60)
}

// MarshalJSON implements json.Marshaler.
func (m ClockMinutes) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON implements json.Unmarshaler with strict parsing.
func (m *ClockMinutes) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseClock(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer so the type can be stored as text.
func (m ClockMinutes) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner.
func (m *ClockMinutes) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		parsed, err := ParseClock(v)
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	case []byte:
		parsed, err := ParseClock(string(v))
		if err != nil {
			return err
		}
		*m = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into ClockMinutes", src)
	}
}

// TimeWindow is a day plus a half-open [Start, End) time interval.
type TimeWindow struct {
	Day   Day          `json:"day" db:"day_of_week"`
	Start ClockMinutes `json:"start" db:"start_time"`
	End   ClockMinutes `json:"end" db:"end_time"`
}

// Validate checks the window invariants: a known day and Start < End.
func (w TimeWindow) Validate() error {
	if !w.Day.Valid() {
		return fmt.Errorf("unknown day %q", string(w.Day))
	}
	if w.Start >= w.End {
		return fmt.Errorf("window start %s must be before end %s", w.Start, w.End)
	}
	return nil
}

// Overlaps reports whether two windows intersect using half-open
// semantics: a window ending exactly when another starts does not overlap.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	if w.Day != other.Day {
		return false
	}
	return w.Start < other.End && other.Start < w.End
}

// Contains reports whether the other window lies fully inside this one.
// Day is not compared; callers check AllowedDays separately.
func (w TimeWindow) Contains(other TimeWindow) bool {
	return other.Start >= w.Start && other.End <= w.End
}

// String renders the window for violation messages.
func (w TimeWindow) String() string {
	return fmt.Sprintf("%s %s-%s", w.Day, w.Start, w.End)
}

// Section is one scheduled meeting of one course.
type Section struct {
	CourseCode   string     `json:"course_code"`
	SectionLabel string     `json:"section_label"`
	Window       TimeWindow `json:"window"`
	Room         string     `json:"room"`
	StudentCount int        `json:"student_count"`
	Capacity     int        `json:"capacity"`
	InstructorID *string    `json:"instructor_id,omitempty"`
}

// Ref returns the lightweight reference used inside violations.
func (s Section) Ref() SectionRef {
	return SectionRef{CourseCode: s.CourseCode, SectionLabel: s.SectionLabel}
}

// SectionRef identifies an offending section inside a violation.
type SectionRef struct {
	CourseCode   string `json:"course_code"`
	SectionLabel string `json:"section_label"`
}

// ViolationKind enumerates the policy breaches the validator reports.
type ViolationKind string

const (
	ViolationRoomConflict    ViolationKind = "ROOM_CONFLICT"
	ViolationBlackoutOverlap ViolationKind = "BLACKOUT_OVERLAP"
	ViolationDuplicateCourse ViolationKind = "DUPLICATE_COURSE"
	ViolationRangePolicy     ViolationKind = "RANGE_POLICY"
)

// Violation is a structured policy breach returned as data, never as an error.
type Violation struct {
	Kind     ViolationKind `json:"kind"`
	Message  string        `json:"message"`
	Sections []SectionRef  `json:"sections"`
}
