package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
)

// GroupSettingRepository persists group partition settings per cohort.
type GroupSettingRepository struct {
	db *sqlx.DB
}

// NewGroupSettingRepository constructs repository.
func NewGroupSettingRepository(db *sqlx.DB) *GroupSettingRepository {
	return &GroupSettingRepository{db: db}
}

func (r *GroupSettingRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Upsert stores the setting for a level-semester pair, replacing any
// previous calculation for the same cohort.
func (r *GroupSettingRepository) Upsert(ctx context.Context, exec sqlx.ExtContext, setting *models.GroupSetting) error {
	if setting == nil {
		return fmt.Errorf("group setting payload is nil")
	}
	if setting.Level <= 0 || setting.Semester == "" {
		return fmt.Errorf("level and semester are required")
	}
	if setting.ID == "" {
		setting.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if setting.CreatedAt.IsZero() {
		setting.CreatedAt = now
	}
	setting.UpdatedAt = now

	target := r.exec(exec)

	const query = `
INSERT INTO group_settings (id, level, semester, total_students, students_per_group, num_groups, group_names, created_at, updated_at)
VALUES (:id, :level, :semester, :total_students, :students_per_group, :num_groups, :group_names, :created_at, :updated_at)
ON CONFLICT (level, semester) DO UPDATE SET
  total_students = EXCLUDED.total_students,
  students_per_group = EXCLUDED.students_per_group,
  num_groups = EXCLUDED.num_groups,
  group_names = EXCLUDED.group_names,
  updated_at = EXCLUDED.updated_at`
	if _, err := sqlx.NamedExecContext(ctx, target, query, setting); err != nil {
		return fmt.Errorf("upsert group setting: %w", err)
	}
	return nil
}

// FindByLevelSemester loads the setting for a cohort.
func (r *GroupSettingRepository) FindByLevelSemester(ctx context.Context, level int, semester string) (*models.GroupSetting, error) {
	const query = `SELECT id, level, semester, total_students, students_per_group, num_groups, group_names, created_at, updated_at
FROM group_settings WHERE level = $1 AND semester = $2`
	var setting models.GroupSetting
	if err := r.db.GetContext(ctx, &setting, query, level, semester); err != nil {
		return nil, err
	}
	return &setting, nil
}
