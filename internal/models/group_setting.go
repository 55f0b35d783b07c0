package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// GroupSetting captures how a level-semester cohort is partitioned into
// equally sized groups. Each recalculation supersedes the previous record.
type GroupSetting struct {
	ID               string         `db:"id" json:"id"`
	Level            int            `db:"level" json:"level"`
	Semester         string         `db:"semester" json:"semester"`
	TotalStudents    int            `db:"total_students" json:"total_students"`
	StudentsPerGroup int            `db:"students_per_group" json:"students_per_group"`
	NumGroups        int            `db:"num_groups" json:"num_groups"`
	GroupNames       types.JSONText `db:"group_names" json:"-"`
	CreatedAt        time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at" json:"updated_at"`
}

// Names decodes the stored group name list.
func (g GroupSetting) Names() ([]string, error) {
	var names []string
	if len(g.GroupNames) == 0 {
		return nil, nil
	}
	if err := g.GroupNames.Unmarshal(&names); err != nil {
		return nil, err
	}
	return names, nil
}
