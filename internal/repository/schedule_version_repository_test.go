package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
)

func newScheduleVersionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestScheduleVersionRepositoryCreateVersioned(t *testing.T) {
	db, mock, cleanup := newScheduleVersionRepoMock(t)
	defer cleanup()
	repo := NewScheduleVersionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COALESCE(MAX(version), 0) + 1 FROM schedule_versions WHERE level = $1 AND semester = $2")).
		WithArgs(2, "2026-1").
		WillReturnRows(sqlmock.NewRows([]string{"next"}).AddRow(3))

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_versions")).
		WithArgs(sqlmock.AnyArg(), 2, "2026-1", 3, string(models.ScheduleVersionStatusGenerated), 12, 0, 87.5, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	payload := &models.ScheduleVersion{
		Level:         2,
		Semester:      "2026-1",
		Status:        models.ScheduleVersionStatusGenerated,
		TotalSections: 12,
		Efficiency:    87.5,
	}
	err := repo.CreateVersioned(context.Background(), nil, payload)
	require.NoError(t, err)
	assert.Equal(t, 3, payload.Version)
	assert.NotEmpty(t, payload.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleVersionRepositoryCreateVersionedRequiresCohort(t *testing.T) {
	db, _, cleanup := newScheduleVersionRepoMock(t)
	defer cleanup()
	repo := NewScheduleVersionRepository(db)

	err := repo.CreateVersioned(context.Background(), nil, &models.ScheduleVersion{Semester: "2026-1"})
	assert.Error(t, err)
}

func TestScheduleVersionRepositoryReplaceSections(t *testing.T) {
	db, mock, cleanup := newScheduleVersionRepoMock(t)
	defer cleanup()
	repo := NewScheduleVersionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_sections WHERE schedule_version_id = $1")).
		WithArgs("ver-1").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO schedule_sections")).
		WithArgs(sqlmock.AnyArg(), "ver-1", "A", "CS101", "A", string(models.DayMonday), 600, 660, "R1", 25, 30, 25, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	sections := []models.ScheduleSection{{
		GroupName:         "A",
		CourseCode:        "CS101",
		SectionLabel:      "A",
		DayOfWeek:         models.DayMonday,
		StartTime:         600,
		EndTime:           660,
		Room:              "R1",
		StudentCount:      25,
		Capacity:          30,
		GroupStudentCount: 25,
	}}
	err := repo.ReplaceSections(context.Background(), nil, "ver-1", sections)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleVersionRepositoryListByLevelSemester(t *testing.T) {
	db, mock, cleanup := newScheduleVersionRepoMock(t)
	defer cleanup()
	repo := NewScheduleVersionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "level", "semester", "version", "status", "total_sections", "conflicts", "efficiency", "created_at", "updated_at"}).
		AddRow("ver-2", 2, "2026-1", 2, string(models.ScheduleVersionStatusApproved), 10, 0, 91.0, time.Now(), time.Now()).
		AddRow("ver-1", 2, "2026-1", 1, string(models.ScheduleVersionStatusGenerated), 10, 0, 84.0, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, level, semester, version, status, total_sections, conflicts, efficiency, created_at, updated_at").
		WithArgs(2, "2026-1").
		WillReturnRows(rows)

	list, err := repo.ListByLevelSemester(context.Background(), 2, "2026-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 2, list[0].Version)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleVersionRepositoryUpdateMetricsNotFound(t *testing.T) {
	db, mock, cleanup := newScheduleVersionRepoMock(t)
	defer cleanup()
	repo := NewScheduleVersionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE schedule_versions SET total_sections = $1, conflicts = $2, efficiency = $3, status = $4, updated_at = $5 WHERE id = $6")).
		WithArgs(8, 0, 75.0, string(models.ScheduleVersionStatusDraft), sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateMetrics(context.Background(), nil, "missing", 8, 0, 75.0, models.ScheduleVersionStatusDraft)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleVersionRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newScheduleVersionRepoMock(t)
	defer cleanup()
	repo := NewScheduleVersionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_versions WHERE id = $1")).
		WithArgs("ver-1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Delete(context.Background(), "ver-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleVersionRepositoryDeleteNotFound(t *testing.T) {
	db, mock, cleanup := newScheduleVersionRepoMock(t)
	defer cleanup()
	repo := NewScheduleVersionRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM schedule_versions WHERE id = $1")).
		WithArgs("ver-404").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "ver-404")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleVersionRepositoryFindApproved(t *testing.T) {
	db, mock, cleanup := newScheduleVersionRepoMock(t)
	defer cleanup()
	repo := NewScheduleVersionRepository(db)

	rows := sqlmock.NewRows([]string{"id", "level", "semester", "version", "status", "total_sections", "conflicts", "efficiency", "created_at", "updated_at"}).
		AddRow("ver-3", 2, "2026-1", 3, string(models.ScheduleVersionStatusApproved), 10, 0, 90.0, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, level, semester, version, status").
		WithArgs(2, "2026-1", string(models.ScheduleVersionStatusApproved)).
		WillReturnRows(rows)

	record, err := repo.FindApproved(context.Background(), 2, "2026-1")
	require.NoError(t, err)
	assert.Equal(t, models.ScheduleVersionStatusApproved, record.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
