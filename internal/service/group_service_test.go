package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/dto"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
)

type fakeSettingRepo struct {
	stored  *models.GroupSetting
	upserts int
}

func (f *fakeSettingRepo) Upsert(_ context.Context, _ sqlx.ExtContext, setting *models.GroupSetting) error {
	f.stored = setting
	f.upserts++
	return nil
}

func (f *fakeSettingRepo) FindByLevelSemester(_ context.Context, _ int, _ string) (*models.GroupSetting, error) {
	if f.stored == nil {
		return nil, sql.ErrNoRows
	}
	return f.stored, nil
}

type fakeRoster struct {
	students  []models.Student
	irregular int
	cleared   bool
	updated   map[string]string
}

func (f *fakeRoster) ListRegularByLevel(_ context.Context, _ int) ([]models.Student, error) {
	return f.students, nil
}

func (f *fakeRoster) CountRegularByLevel(_ context.Context, _ int) (int, error) {
	return len(f.students), nil
}

func (f *fakeRoster) CountIrregularByLevel(_ context.Context, _ int) (int, error) {
	return f.irregular, nil
}

func (f *fakeRoster) ClearGroupNamesByLevel(_ context.Context, _ sqlx.ExtContext, _ int) error {
	f.cleared = true
	return nil
}

func (f *fakeRoster) UpdateGroupNames(_ context.Context, _ sqlx.ExtContext, mapping map[string]string) error {
	f.updated = mapping
	return nil
}

func roster(count int) []models.Student {
	students := make([]models.Student, count)
	for i := range students {
		students[i] = models.Student{ID: fmt.Sprintf("s%03d", i+1), Level: 2}
	}
	return students
}

func groupTxMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestGroupServiceCalculate(t *testing.T) {
	settings := &fakeSettingRepo{}
	students := &fakeRoster{students: roster(101)}
	svc := NewGroupService(settings, students, nil, nil, zap.NewNop())

	setting, err := svc.Calculate(context.Background(), dto.CalculateGroupsRequest{Level: 2, Semester: "2026-1", StudentsPerGroup: 25})
	require.NoError(t, err)
	assert.Equal(t, 101, setting.TotalStudents)
	assert.Equal(t, 5, setting.NumGroups)
	names, err := setting.Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D", "E"}, names)
	assert.Equal(t, 1, settings.upserts)
}

func TestGroupServiceCalculateEmptyCohort(t *testing.T) {
	settings := &fakeSettingRepo{}
	svc := NewGroupService(settings, &fakeRoster{}, nil, nil, zap.NewNop())

	setting, err := svc.Calculate(context.Background(), dto.CalculateGroupsRequest{Level: 2, Semester: "2026-1", StudentsPerGroup: 25})
	require.NoError(t, err)
	assert.Equal(t, 1, setting.NumGroups)
	names, _ := setting.Names()
	assert.Equal(t, []string{"A"}, names)
}

func TestGroupServiceCalculateRejectsBadSize(t *testing.T) {
	svc := NewGroupService(&fakeSettingRepo{}, &fakeRoster{}, nil, nil, zap.NewNop())

	_, err := svc.Calculate(context.Background(), dto.CalculateGroupsRequest{Level: 2, Semester: "2026-1", StudentsPerGroup: 0})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestGroupServiceAssign(t *testing.T) {
	db, mock, cleanup := groupTxMock(t)
	defer cleanup()
	mock.ExpectBegin()
	mock.ExpectCommit()

	settings := &fakeSettingRepo{}
	students := &fakeRoster{students: roster(101), irregular: 7}
	svc := NewGroupService(settings, students, db, nil, zap.NewNop())

	_, err := svc.Calculate(context.Background(), dto.CalculateGroupsRequest{Level: 2, Semester: "2026-1", StudentsPerGroup: 25})
	require.NoError(t, err)

	result, err := svc.Assign(context.Background(), dto.AssignGroupsRequest{Level: 2, Semester: "2026-1"})
	require.NoError(t, err)
	assert.True(t, students.cleared)
	assert.Equal(t, 101, result.Assigned)
	assert.Equal(t, 7, result.Excluded)
	// first remainder group takes the extra student
	assert.Equal(t, 21, result.GroupSizes["A"])
	assert.Equal(t, 20, result.GroupSizes["E"])
	// roster order is stable, so the first student always lands in group A
	assert.Equal(t, "A", result.Mapping["s001"])
	assert.Equal(t, "A", students.updated["s001"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupServiceAssignIsIdempotent(t *testing.T) {
	db, mock, cleanup := groupTxMock(t)
	defer cleanup()
	mock.ExpectBegin()
	mock.ExpectCommit()
	mock.ExpectBegin()
	mock.ExpectCommit()

	settings := &fakeSettingRepo{}
	students := &fakeRoster{students: roster(50)}
	svc := NewGroupService(settings, students, db, nil, zap.NewNop())

	_, err := svc.Calculate(context.Background(), dto.CalculateGroupsRequest{Level: 2, Semester: "2026-1", StudentsPerGroup: 25})
	require.NoError(t, err)

	first, err := svc.Assign(context.Background(), dto.AssignGroupsRequest{Level: 2, Semester: "2026-1"})
	require.NoError(t, err)
	second, err := svc.Assign(context.Background(), dto.AssignGroupsRequest{Level: 2, Semester: "2026-1"})
	require.NoError(t, err)
	assert.Equal(t, first.Mapping, second.Mapping)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupServiceAssignWithoutSetting(t *testing.T) {
	svc := NewGroupService(&fakeSettingRepo{}, &fakeRoster{}, nil, nil, zap.NewNop())

	_, err := svc.Assign(context.Background(), dto.AssignGroupsRequest{Level: 2, Semester: "2026-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestGroupServiceGetSetting(t *testing.T) {
	settings := &fakeSettingRepo{}
	svc := NewGroupService(settings, &fakeRoster{students: roster(25)}, nil, nil, zap.NewNop())

	_, err := svc.GetSetting(context.Background(), dto.GroupSettingQuery{Level: 2, Semester: "2026-1"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	_, err = svc.Calculate(context.Background(), dto.CalculateGroupsRequest{Level: 2, Semester: "2026-1", StudentsPerGroup: 25})
	require.NoError(t, err)

	setting, err := svc.GetSetting(context.Background(), dto.GroupSettingQuery{Level: 2, Semester: "2026-1"})
	require.NoError(t, err)
	assert.Equal(t, 1, setting.NumGroups)
}
