package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
)

// ScheduleVersionRepository persists versioned timetables and their sections.
type ScheduleVersionRepository struct {
	db *sqlx.DB
}

// NewScheduleVersionRepository constructs repository.
func NewScheduleVersionRepository(db *sqlx.DB) *ScheduleVersionRepository {
	return &ScheduleVersionRepository{db: db}
}

func (r *ScheduleVersionRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateVersioned inserts a schedule version assigning the next version number
// for the level-semester pair.
func (r *ScheduleVersionRepository) CreateVersioned(ctx context.Context, exec sqlx.ExtContext, version *models.ScheduleVersion) error {
	if version == nil {
		return fmt.Errorf("schedule version payload is nil")
	}
	if version.Level <= 0 || version.Semester == "" {
		return fmt.Errorf("level and semester are required")
	}
	if version.ID == "" {
		version.ID = uuid.NewString()
	}
	if version.Status == "" {
		version.Status = models.ScheduleVersionStatusDraft
	}
	now := time.Now().UTC()
	if version.CreatedAt.IsZero() {
		version.CreatedAt = now
	}
	version.UpdatedAt = now

	target := r.exec(exec)

	const nextVersionQuery = `SELECT COALESCE(MAX(version), 0) + 1 FROM schedule_versions WHERE level = $1 AND semester = $2`
	if err := sqlx.GetContext(ctx, target, &version.Version, nextVersionQuery, version.Level, version.Semester); err != nil {
		return fmt.Errorf("compute next schedule version: %w", err)
	}

	const insertQuery = `
INSERT INTO schedule_versions (id, level, semester, version, status, total_sections, conflicts, efficiency, created_at, updated_at)
VALUES (:id, :level, :semester, :version, :status, :total_sections, :conflicts, :efficiency, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, target, insertQuery, version); err != nil {
		return fmt.Errorf("insert schedule version: %w", err)
	}
	return nil
}

// InsertSections stores the section rows of one version.
func (r *ScheduleVersionRepository) InsertSections(ctx context.Context, exec sqlx.ExtContext, versionID string, sections []models.ScheduleSection) error {
	if versionID == "" {
		return fmt.Errorf("schedule version id is required")
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	const insertQuery = `
INSERT INTO schedule_sections (id, schedule_version_id, group_name, course_code, section_label, day_of_week, start_time, end_time, room, student_count, capacity, group_student_count, instructor_id, created_at)
VALUES (:id, :schedule_version_id, :group_name, :course_code, :section_label, :day_of_week, :start_time, :end_time, :room, :student_count, :capacity, :group_student_count, :instructor_id, :created_at)`
	for i := range sections {
		if sections[i].ID == "" {
			sections[i].ID = uuid.NewString()
		}
		sections[i].ScheduleVersionID = versionID
		if sections[i].CreatedAt.IsZero() {
			sections[i].CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, target, insertQuery, sections[i]); err != nil {
			return fmt.Errorf("insert schedule section: %w", err)
		}
	}
	return nil
}

// ReplaceSections swaps a version's full section list. Callers run this inside
// a transaction together with UpdateMetrics.
func (r *ScheduleVersionRepository) ReplaceSections(ctx context.Context, exec sqlx.ExtContext, versionID string, sections []models.ScheduleSection) error {
	target := r.exec(exec)

	const deleteQuery = `DELETE FROM schedule_sections WHERE schedule_version_id = $1`
	if _, err := target.ExecContext(ctx, deleteQuery, versionID); err != nil {
		return fmt.Errorf("clear schedule sections: %w", err)
	}
	return r.InsertSections(ctx, target, versionID, sections)
}

// ListSections returns the section rows of a version in stable group order.
func (r *ScheduleVersionRepository) ListSections(ctx context.Context, versionID string) ([]models.ScheduleSection, error) {
	const query = `SELECT id, schedule_version_id, group_name, course_code, section_label, day_of_week, start_time, end_time, room, student_count, capacity, group_student_count, instructor_id, created_at
FROM schedule_sections WHERE schedule_version_id = $1 ORDER BY group_name, day_of_week, start_time, course_code`
	var sections []models.ScheduleSection
	if err := r.db.SelectContext(ctx, &sections, query, versionID); err != nil {
		return nil, fmt.Errorf("list schedule sections: %w", err)
	}
	return sections, nil
}

// ListByLevelSemester returns all versions for the cohort, newest first.
func (r *ScheduleVersionRepository) ListByLevelSemester(ctx context.Context, level int, semester string) ([]models.ScheduleVersion, error) {
	const query = `SELECT id, level, semester, version, status, total_sections, conflicts, efficiency, created_at, updated_at
FROM schedule_versions WHERE level = $1 AND semester = $2 ORDER BY version DESC`
	var versions []models.ScheduleVersion
	if err := r.db.SelectContext(ctx, &versions, query, level, semester); err != nil {
		return nil, fmt.Errorf("list schedule versions: %w", err)
	}
	return versions, nil
}

// FindByID loads a version by its identifier.
func (r *ScheduleVersionRepository) FindByID(ctx context.Context, id string) (*models.ScheduleVersion, error) {
	const query = `SELECT id, level, semester, version, status, total_sections, conflicts, efficiency, created_at, updated_at
FROM schedule_versions WHERE id = $1`
	var version models.ScheduleVersion
	if err := r.db.GetContext(ctx, &version, query, id); err != nil {
		return nil, err
	}
	return &version, nil
}

// FindApproved loads the approved version of a cohort, if any.
func (r *ScheduleVersionRepository) FindApproved(ctx context.Context, level int, semester string) (*models.ScheduleVersion, error) {
	const query = `SELECT id, level, semester, version, status, total_sections, conflicts, efficiency, created_at, updated_at
FROM schedule_versions WHERE level = $1 AND semester = $2 AND status = $3 ORDER BY version DESC LIMIT 1`
	var version models.ScheduleVersion
	if err := r.db.GetContext(ctx, &version, query, level, semester, models.ScheduleVersionStatusApproved); err != nil {
		return nil, err
	}
	return &version, nil
}

// UpdateMetrics refreshes the derived counters and status of a version.
func (r *ScheduleVersionRepository) UpdateMetrics(ctx context.Context, exec sqlx.ExtContext, id string, totalSections, conflicts int, efficiency float64, status models.ScheduleVersionStatus) error {
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `UPDATE schedule_versions SET total_sections = $1, conflicts = $2, efficiency = $3, status = $4, updated_at = $5 WHERE id = $6`
	result, err := target.ExecContext(ctx, query, totalSections, conflicts, efficiency, status, now, id)
	if err != nil {
		return fmt.Errorf("update schedule version metrics: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("schedule version metrics rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStatus flips the lifecycle status of a version.
func (r *ScheduleVersionRepository) UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.ScheduleVersionStatus) error {
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `UPDATE schedule_versions SET status = $1, updated_at = $2 WHERE id = $3`
	result, err := target.ExecContext(ctx, query, status, now, id)
	if err != nil {
		return fmt.Errorf("update schedule version status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("schedule version status rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a stored version. Sections cascade at the schema level.
func (r *ScheduleVersionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM schedule_versions WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete schedule version: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("schedule version rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
