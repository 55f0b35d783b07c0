package dto

import "github.com/MaazSajjad/smart-scheduler-sub001/internal/models"

// GenerateScheduleRequest asks the recommender for a timetable covering
// every group of a level-semester cohort. Blocked slots double as blackout
// windows for validation.
type GenerateScheduleRequest struct {
	Level               int                 `json:"level" validate:"required,min=1"`
	Semester            string              `json:"semester" validate:"required"`
	StudentsPerCourse   map[string]int      `json:"students_per_course" validate:"required,min=1"`
	AvailableRooms      []string            `json:"available_rooms" validate:"required,min=1"`
	BlockedSlots        []models.TimeWindow `json:"blocked_slots"`
	AllowedDays         []models.Day        `json:"allowed_days"`
	AllowedTimeRange    *models.TimeWindow  `json:"allowed_time_range"`
	Rules               []string            `json:"rules"`
	ObjectivePriorities map[string]float64  `json:"objective_priorities"`
}

// GroupViolations pairs a group name with the violations found in its
// candidate list.
type GroupViolations struct {
	GroupName  string             `json:"group_name"`
	Violations []models.Violation `json:"violations"`
}

// GenerateScheduleResponse returns the proposed timetable for preview.
type GenerateScheduleResponse struct {
	ProposalID       string                 `json:"proposal_id"`
	Level            int                    `json:"level"`
	Semester         string                 `json:"semester"`
	Groups           []models.GroupSections `json:"groups"`
	Violations       []GroupViolations      `json:"violations,omitempty"`
	CapacityWarnings int                    `json:"capacity_warnings"`
	Efficiency       float64                `json:"efficiency"`
	Warnings         []string               `json:"warnings,omitempty"`
}

// SaveScheduleRequest persists a previously generated proposal.
type SaveScheduleRequest struct {
	ProposalID string `json:"proposal_id" validate:"required"`
}

// GroupSectionsInput is one group's candidate section list in the manual
// edit path. The list always replaces the stored one wholesale.
type GroupSectionsInput struct {
	GroupName string           `json:"group_name" validate:"required"`
	Sections  []models.Section `json:"sections"`
}

// ValidateScheduleRequest runs the conflict validator over an edit buffer
// without persisting anything.
type ValidateScheduleRequest struct {
	Groups           []GroupSectionsInput `json:"groups" validate:"required,min=1,dive"`
	BlackoutWindows  []models.TimeWindow  `json:"blackout_windows"`
	AllowedDays      []models.Day         `json:"allowed_days"`
	AllowedTimeRange *models.TimeWindow   `json:"allowed_time_range"`
}

// ReplaceSectionsRequest swaps a version's full section list after
// validation succeeds.
type ReplaceSectionsRequest struct {
	Groups           []GroupSectionsInput `json:"groups" validate:"required,min=1,dive"`
	BlackoutWindows  []models.TimeWindow  `json:"blackout_windows"`
	AllowedDays      []models.Day         `json:"allowed_days"`
	AllowedTimeRange *models.TimeWindow   `json:"allowed_time_range"`
}

// FinalizeScheduleRequest re-validates a draft against the cohort policy
// before promoting it. A finalized version must be violation-free.
type FinalizeScheduleRequest struct {
	BlackoutWindows  []models.TimeWindow `json:"blackout_windows"`
	AllowedDays      []models.Day        `json:"allowed_days"`
	AllowedTimeRange *models.TimeWindow  `json:"allowed_time_range"`
}

// ValidateScheduleResponse reports validation output for preview or commit.
type ValidateScheduleResponse struct {
	Valid            bool              `json:"valid"`
	Violations       []GroupViolations `json:"violations,omitempty"`
	CapacityWarnings int               `json:"capacity_warnings"`
	Persisted        bool              `json:"persisted"`
}

// ScheduleVersionQuery filters versions by cohort.
type ScheduleVersionQuery struct {
	Level    int    `form:"level" json:"level"`
	Semester string `form:"semester" json:"semester"`
}
