package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/dto"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
)

type groupSettingRepository interface {
	Upsert(ctx context.Context, exec sqlx.ExtContext, setting *models.GroupSetting) error
	FindByLevelSemester(ctx context.Context, level int, semester string) (*models.GroupSetting, error)
}

type studentRoster interface {
	ListRegularByLevel(ctx context.Context, level int) ([]models.Student, error)
	CountRegularByLevel(ctx context.Context, level int) (int, error)
	CountIrregularByLevel(ctx context.Context, level int) (int, error)
	ClearGroupNamesByLevel(ctx context.Context, exec sqlx.ExtContext, level int) error
	UpdateGroupNames(ctx context.Context, exec sqlx.ExtContext, mapping map[string]string) error
}

// GroupService manages cohort partitioning: computing the group setting and
// distributing regular students across the named groups.
type GroupService struct {
	settings  groupSettingRepository
	students  studentRoster
	tx        txProvider
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGroupService wires group allocation dependencies.
func NewGroupService(settings groupSettingRepository, students studentRoster, tx txProvider, validate *validator.Validate, logger *zap.Logger) *GroupService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GroupService{settings: settings, students: students, tx: tx, validator: validate, logger: logger}
}

// Calculate derives the group count and names from the regular roster size
// and stores the result as the cohort's current setting.
func (s *GroupService) Calculate(ctx context.Context, req dto.CalculateGroupsRequest) (*models.GroupSetting, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid calculate groups payload")
	}

	total, err := s.students.CountRegularByLevel(ctx, req.Level)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count regular students")
	}

	numGroups, names, err := CalculateGroups(total, req.StudentsPerGroup)
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(names)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode group names")
	}

	setting := &models.GroupSetting{
		Level:            req.Level,
		Semester:         req.Semester,
		TotalStudents:    total,
		StudentsPerGroup: req.StudentsPerGroup,
		NumGroups:        numGroups,
		GroupNames:       types.JSONText(encoded),
	}
	if err := s.settings.Upsert(ctx, nil, setting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store group setting")
	}

	s.logger.Info("group setting recalculated",
		zap.Int("level", req.Level), zap.String("semester", req.Semester),
		zap.Int("total_students", total), zap.Int("num_groups", numGroups))
	return setting, nil
}

// Assign distributes the regular roster across the configured groups. The
// run is idempotent: previous assignments are wiped first, and the stable
// roster order makes repeated runs produce the same mapping. Irregular
// students never receive a group.
func (s *GroupService) Assign(ctx context.Context, req dto.AssignGroupsRequest) (*dto.AssignGroupsResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid assign groups payload")
	}

	setting, err := s.settings.FindByLevelSemester(ctx, req.Level, req.Semester)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no group setting for this cohort; calculate groups first")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group setting")
	}
	names, err := setting.Names()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to decode group names")
	}

	students, err := s.students.ListRegularByLevel(ctx, req.Level)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list regular students")
	}
	studentIDs := make([]string, len(students))
	for i, student := range students {
		studentIDs[i] = student.ID
	}

	mapping, err := AssignGroups(studentIDs, setting.NumGroups, names)
	if err != nil {
		return nil, err
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.students.ClearGroupNamesByLevel(ctx, tx, req.Level); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear previous group assignments")
		return nil, err
	}
	if err = s.students.UpdateGroupNames(ctx, tx, mapping); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store group assignments")
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit group assignment transaction")
		return nil, err
	}

	sizes := make(map[string]int, len(names))
	for _, name := range names {
		sizes[name] = 0
	}
	for _, group := range mapping {
		sizes[group]++
	}

	excluded, countErr := s.students.CountIrregularByLevel(ctx, req.Level)
	if countErr != nil {
		s.logger.Warn("failed to count irregular students", zap.Error(countErr))
		excluded = 0
	}

	s.logger.Info("group assignment completed",
		zap.Int("level", req.Level), zap.String("semester", req.Semester),
		zap.Int("assigned", len(mapping)), zap.Int("excluded", excluded))
	return &dto.AssignGroupsResponse{
		Assigned:   len(mapping),
		Excluded:   excluded,
		GroupSizes: sizes,
		Mapping:    mapping,
	}, nil
}

// GetSetting returns the stored setting for a cohort.
func (s *GroupService) GetSetting(ctx context.Context, query dto.GroupSettingQuery) (*models.GroupSetting, error) {
	if query.Level <= 0 || query.Semester == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "level and semester are required")
	}
	setting, err := s.settings.FindByLevelSemester(ctx, query.Level, query.Semester)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "group setting not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group setting")
	}
	return setting, nil
}
