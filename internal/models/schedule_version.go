package models

import "time"

// ScheduleVersionStatus represents lifecycle phases for schedule versions.
type ScheduleVersionStatus string

const (
	ScheduleVersionStatusDraft     ScheduleVersionStatus = "DRAFT"
	ScheduleVersionStatusGenerated ScheduleVersionStatus = "GENERATED"
	ScheduleVersionStatusApproved  ScheduleVersionStatus = "APPROVED"
)

// ScheduleVersion is a versioned timetable for one level-semester pair.
// Its section list is only ever replaced wholesale, never patched.
type ScheduleVersion struct {
	ID            string                `db:"id" json:"id"`
	Level         int                   `db:"level" json:"level"`
	Semester      string                `db:"semester" json:"semester"`
	Version       int                   `db:"version" json:"version"`
	Status        ScheduleVersionStatus `db:"status" json:"status"`
	TotalSections int                   `db:"total_sections" json:"total_sections"`
	Conflicts     int                   `db:"conflicts" json:"conflicts"`
	Efficiency    float64               `db:"efficiency" json:"efficiency"`
	CreatedAt     time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time             `db:"updated_at" json:"updated_at"`
}

// ScheduleSection is a persisted section row belonging to one group of a
// schedule version.
type ScheduleSection struct {
	ID                string       `db:"id" json:"id"`
	ScheduleVersionID string       `db:"schedule_version_id" json:"schedule_version_id"`
	GroupName         string       `db:"group_name" json:"group_name"`
	CourseCode        string       `db:"course_code" json:"course_code"`
	SectionLabel      string       `db:"section_label" json:"section_label"`
	DayOfWeek         Day          `db:"day_of_week" json:"day_of_week"`
	StartTime         ClockMinutes `db:"start_time" json:"start_time"`
	EndTime           ClockMinutes `db:"end_time" json:"end_time"`
	Room              string       `db:"room" json:"room"`
	StudentCount      int          `db:"student_count" json:"student_count"`
	Capacity          int          `db:"capacity" json:"capacity"`
	GroupStudentCount int          `db:"group_student_count" json:"group_student_count"`
	InstructorID      *string      `db:"instructor_id" json:"instructor_id,omitempty"`
	CreatedAt         time.Time    `db:"created_at" json:"created_at"`
}

// Section converts the row back into the in-memory candidate shape fed to
// the validator.
func (s ScheduleSection) Section() Section {
	return Section{
		CourseCode:   s.CourseCode,
		SectionLabel: s.SectionLabel,
		Window:       TimeWindow{Day: s.DayOfWeek, Start: s.StartTime, End: s.EndTime},
		Room:         s.Room,
		StudentCount: s.StudentCount,
		Capacity:     s.Capacity,
		InstructorID: s.InstructorID,
	}
}

// GroupSections pairs a group name with its section list for API payloads.
type GroupSections struct {
	GroupName    string    `json:"group_name"`
	StudentCount int       `json:"student_count"`
	Sections     []Section `json:"sections"`
}

// ScheduleVersionDetail is a version plus its sections grouped by group name.
type ScheduleVersionDetail struct {
	ScheduleVersion
	Groups []GroupSections `json:"groups"`
}
