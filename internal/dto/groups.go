package dto

// CalculateGroupsRequest recomputes the group setting for a cohort. The
// total student count is taken from the roster of regular students.
type CalculateGroupsRequest struct {
	Level            int    `json:"level" validate:"required,min=1"`
	Semester         string `json:"semester" validate:"required"`
	StudentsPerGroup int    `json:"students_per_group" validate:"required,min=1"`
}

// AssignGroupsRequest distributes the cohort across the configured groups.
type AssignGroupsRequest struct {
	Level    int    `json:"level" validate:"required,min=1"`
	Semester string `json:"semester" validate:"required"`
}

// AssignGroupsResponse summarises a completed assignment run.
type AssignGroupsResponse struct {
	Assigned   int               `json:"assigned"`
	Excluded   int               `json:"excluded"`
	GroupSizes map[string]int    `json:"group_sizes"`
	Mapping    map[string]string `json:"mapping"`
}

// GroupSettingQuery selects a cohort's group setting.
type GroupSettingQuery struct {
	Level    int    `form:"level" json:"level"`
	Semester string `form:"semester" json:"semester"`
}
