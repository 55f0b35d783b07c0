package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
)

// StudentRepository reads the cohort roster and writes group assignments.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// ListRegularByLevel returns regular students of a level in stable roster
// order. The order matters: group assignment walks this list front to back.
func (r *StudentRepository) ListRegularByLevel(ctx context.Context, level int) ([]models.Student, error) {
	const query = `SELECT id, full_name, email, level, irregular, group_name, created_at, updated_at
FROM students WHERE level = $1 AND irregular = FALSE ORDER BY created_at, id`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, level); err != nil {
		return nil, fmt.Errorf("list regular students: %w", err)
	}
	return students, nil
}

// CountRegularByLevel counts the students eligible for group allocation.
func (r *StudentRepository) CountRegularByLevel(ctx context.Context, level int) (int, error) {
	const query = `SELECT COUNT(*) FROM students WHERE level = $1 AND irregular = FALSE`
	var count int
	if err := r.db.GetContext(ctx, &count, query, level); err != nil {
		return 0, fmt.Errorf("count regular students: %w", err)
	}
	return count, nil
}

// CountIrregularByLevel counts the students excluded from group allocation.
func (r *StudentRepository) CountIrregularByLevel(ctx context.Context, level int) (int, error) {
	const query = `SELECT COUNT(*) FROM students WHERE level = $1 AND irregular = TRUE`
	var count int
	if err := r.db.GetContext(ctx, &count, query, level); err != nil {
		return 0, fmt.Errorf("count irregular students: %w", err)
	}
	return count, nil
}

// List returns students matching the filter plus the total count for paging.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, int, error) {
	where := " WHERE 1=1"
	args := []interface{}{}
	idx := 1
	if filter.Level != nil {
		where += fmt.Sprintf(" AND level = $%d", idx)
		args = append(args, *filter.Level)
		idx++
	}
	if filter.Irregular != nil {
		where += fmt.Sprintf(" AND irregular = $%d", idx)
		args = append(args, *filter.Irregular)
		idx++
	}
	if filter.GroupName != "" {
		where += fmt.Sprintf(" AND group_name = $%d", idx)
		args = append(args, filter.GroupName)
		idx++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM students"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}

	query := "SELECT id, full_name, email, level, irregular, group_name, created_at, updated_at FROM students" + where + " ORDER BY created_at, id"
	if filter.PageSize > 0 {
		offset := 0
		if filter.Page > 1 {
			offset = (filter.Page - 1) * filter.PageSize
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", idx, idx+1)
		args = append(args, filter.PageSize, offset)
	}

	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}
	return students, total, nil
}

// ClearGroupNamesByLevel wipes all regular assignments of a level before a
// fresh assignment run.
func (r *StudentRepository) ClearGroupNamesByLevel(ctx context.Context, exec sqlx.ExtContext, level int) error {
	target := r.exec(exec)
	const query = `UPDATE students SET group_name = NULL, updated_at = $1 WHERE level = $2 AND irregular = FALSE`
	if _, err := target.ExecContext(ctx, query, time.Now().UTC(), level); err != nil {
		return fmt.Errorf("clear group names: %w", err)
	}
	return nil
}

// UpdateGroupNames applies an assignment mapping of student id to group name.
func (r *StudentRepository) UpdateGroupNames(ctx context.Context, exec sqlx.ExtContext, mapping map[string]string) error {
	target := r.exec(exec)
	now := time.Now().UTC()
	const query = `UPDATE students SET group_name = $1, updated_at = $2 WHERE id = $3`
	for studentID, groupName := range mapping {
		if _, err := target.ExecContext(ctx, query, groupName, now, studentID); err != nil {
			return fmt.Errorf("update group name for student %s: %w", studentID, err)
		}
	}
	return nil
}
