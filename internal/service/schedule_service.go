package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/dto"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/recommender"
	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
)

type scheduleVersionRepository interface {
	CreateVersioned(ctx context.Context, exec sqlx.ExtContext, version *models.ScheduleVersion) error
	InsertSections(ctx context.Context, exec sqlx.ExtContext, versionID string, sections []models.ScheduleSection) error
	ReplaceSections(ctx context.Context, exec sqlx.ExtContext, versionID string, sections []models.ScheduleSection) error
	ListSections(ctx context.Context, versionID string) ([]models.ScheduleSection, error)
	ListByLevelSemester(ctx context.Context, level int, semester string) ([]models.ScheduleVersion, error)
	FindByID(ctx context.Context, id string) (*models.ScheduleVersion, error)
	FindApproved(ctx context.Context, level int, semester string) (*models.ScheduleVersion, error)
	UpdateMetrics(ctx context.Context, exec sqlx.ExtContext, id string, totalSections, conflicts int, efficiency float64, status models.ScheduleVersionStatus) error
	UpdateStatus(ctx context.Context, exec sqlx.ExtContext, id string, status models.ScheduleVersionStatus) error
	Delete(ctx context.Context, id string) error
}

type groupSettingReader interface {
	FindByLevelSemester(ctx context.Context, level int, semester string) (*models.GroupSetting, error)
}

type scheduleCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type txProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

// ScheduleService owns the schedule version lifecycle: generation through the
// recommender, validation, manual edits, finalization and approval.
type ScheduleService struct {
	versions    scheduleVersionRepository
	settings    groupSettingReader
	recommender recommender.Client
	cache       scheduleCache
	tx          txProvider
	validator   *validator.Validate
	logger      *zap.Logger
	store       *proposalStore
	approvedTTL time.Duration
}

// ScheduleServiceConfig governs proposal and cache handling.
type ScheduleServiceConfig struct {
	ProposalTTL      time.Duration
	ApprovedCacheTTL time.Duration
}

// NewScheduleService wires scheduler dependencies.
func NewScheduleService(
	versions scheduleVersionRepository,
	settings groupSettingReader,
	rec recommender.Client,
	cache scheduleCache,
	tx txProvider,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg ScheduleServiceConfig,
) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	if cfg.ApprovedCacheTTL <= 0 {
		cfg.ApprovedCacheTTL = 10 * time.Minute
	}
	return &ScheduleService{
		versions:    versions,
		settings:    settings,
		recommender: rec,
		cache:       cache,
		tx:          tx,
		validator:   validate,
		logger:      logger,
		store:       newProposalStore(cfg.ProposalTTL),
		approvedTTL: cfg.ApprovedCacheTTL,
	}
}

// Generate asks the recommender for one candidate section list per group,
// validates every list, and caches the result as a proposal for preview.
// An unconfigured recommender, a failed call or a malformed reply downgrades
// that group to an empty candidate list plus a warning; it never fails the
// whole call.
func (s *ScheduleService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule generation payload")
	}

	setting, err := s.settings.FindByLevelSemester(ctx, req.Level, req.Semester)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no group setting for this cohort; calculate groups first")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load group setting")
	}
	groupNames, err := setting.Names()
	if err != nil || len(groupNames) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "group setting has no usable group list")
	}

	policy := SchedulePolicy{
		BlackoutWindows:      req.BlockedSlots,
		AllowedDays:          req.AllowedDays,
		AllowedTimeRange:     req.AllowedTimeRange,
		UniqueCoursePerGroup: true,
	}
	groupSizes := splitEvenly(setting.TotalStudents, len(groupNames))

	proposal := scheduleProposal{
		ProposalID:  uuid.NewString(),
		Level:       req.Level,
		Semester:    req.Semester,
		RequestedAt: time.Now().UTC(),
	}
	for i, groupName := range groupNames {
		var sections []models.Section
		var recErr error
		if s.recommender == nil {
			recErr = appErrors.Clone(appErrors.ErrRecommenderUnavailable, "recommender is not configured")
		} else {
			sections, recErr = s.recommender.Recommend(ctx, recommender.Request{
				Level:               req.Level,
				Semester:            req.Semester,
				GroupName:           groupName,
				GroupStudentCount:   groupSizes[i],
				StudentsPerCourse:   req.StudentsPerCourse,
				BlockedSlots:        req.BlockedSlots,
				AvailableRooms:      req.AvailableRooms,
				Rules:               req.Rules,
				ObjectivePriorities: req.ObjectivePriorities,
			})
		}
		if recErr != nil {
			s.logger.Warn("recommender failed for group",
				zap.String("group", groupName), zap.Int("level", req.Level), zap.Error(recErr))
			proposal.Warnings = append(proposal.Warnings,
				fmt.Sprintf("group %s: recommender produced no usable candidate list", groupName))
			sections = nil
		}

		violations, valErr := ValidateSections(sections, policy)
		if valErr != nil {
			// a reply that survived parsing but fails input checks is
			// treated the same as an unusable reply
			s.logger.Warn("recommender sections rejected by validator",
				zap.String("group", groupName), zap.Error(valErr))
			proposal.Warnings = append(proposal.Warnings,
				fmt.Sprintf("group %s: recommender produced no usable candidate list", groupName))
			sections, violations = nil, nil
		}

		proposal.Groups = append(proposal.Groups, models.GroupSections{
			GroupName:    groupName,
			StudentCount: groupSizes[i],
			Sections:     sections,
		})
		if len(violations) > 0 {
			proposal.Violations = append(proposal.Violations, dto.GroupViolations{GroupName: groupName, Violations: violations})
		}
		proposal.CapacityWarnings += CountCapacityWarnings(sections)
	}
	proposal.Efficiency = calculateEfficiency(proposal.Groups)
	s.store.Save(proposal)

	return &dto.GenerateScheduleResponse{
		ProposalID:       proposal.ProposalID,
		Level:            proposal.Level,
		Semester:         proposal.Semester,
		Groups:           proposal.Groups,
		Violations:       proposal.Violations,
		CapacityWarnings: proposal.CapacityWarnings,
		Efficiency:       proposal.Efficiency,
		Warnings:         proposal.Warnings,
	}, nil
}

// Save persists a violation-free proposal as the next schedule version of its
// cohort with status GENERATED.
func (s *ScheduleService) Save(ctx context.Context, req dto.SaveScheduleRequest) (*models.ScheduleVersion, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save schedule payload")
	}
	proposal, ok := s.store.Get(req.ProposalID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	if len(proposal.Violations) > 0 {
		return nil, appErrors.Clone(appErrors.ErrConflict, "proposal contains unresolved violations")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	rows := sectionRows(proposal.Groups)
	record := &models.ScheduleVersion{
		Level:         proposal.Level,
		Semester:      proposal.Semester,
		Status:        models.ScheduleVersionStatusGenerated,
		TotalSections: len(rows),
		Conflicts:     0,
		Efficiency:    proposal.Efficiency,
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

	if err = s.versions.CreateVersioned(ctx, tx, record); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule version")
		return nil, err
	}
	if err = s.versions.InsertSections(ctx, tx, record.ID, rows); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist schedule sections")
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit schedule transaction")
		return nil, err
	}

	s.store.Delete(req.ProposalID)
	return record, nil
}

// ValidateDraft runs the conflict validator over an edit buffer without
// touching storage.
func (s *ScheduleService) ValidateDraft(ctx context.Context, req dto.ValidateScheduleRequest) (*dto.ValidateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid validation payload")
	}
	return s.validateGroups(req.Groups, SchedulePolicy{
		BlackoutWindows:      req.BlackoutWindows,
		AllowedDays:          req.AllowedDays,
		AllowedTimeRange:     req.AllowedTimeRange,
		UniqueCoursePerGroup: true,
	})
}

// ReplaceSections swaps a version's full section list after the edit buffer
// validates cleanly. Any manual edit demotes the version back to DRAFT, so a
// previously approved timetable must be finalized and approved again.
func (s *ScheduleService) ReplaceSections(ctx context.Context, versionID string, req dto.ReplaceSectionsRequest) (*dto.ValidateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid replace sections payload")
	}
	record, err := s.findVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}

	result, err := s.validateGroups(req.Groups, SchedulePolicy{
		BlackoutWindows:      req.BlackoutWindows,
		AllowedDays:          req.AllowedDays,
		AllowedTimeRange:     req.AllowedTimeRange,
		UniqueCoursePerGroup: true,
	})
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	// the edit buffer carries no cohort sizes, so group sizes survive the
	// replacement by copying them from the stored rows
	existing, err := s.versions.ListSections(ctx, record.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule sections")
	}
	groupSizes := make(map[string]int)
	for _, row := range existing {
		groupSizes[row.GroupName] = row.GroupStudentCount
	}

	groups := make([]models.GroupSections, 0, len(req.Groups))
	for _, group := range req.Groups {
		groups = append(groups, models.GroupSections{
			GroupName:    group.GroupName,
			StudentCount: groupSizes[group.GroupName],
			Sections:     group.Sections,
		})
	}
	rows := sectionRows(groups)
	efficiency := calculateEfficiency(groups)

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if err = s.versions.ReplaceSections(ctx, tx, record.ID, rows); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to replace schedule sections")
		return nil, err
	}
	if err = s.versions.UpdateMetrics(ctx, tx, record.ID, len(rows), 0, efficiency, models.ScheduleVersionStatusDraft); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule version metrics")
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit schedule transaction")
		return nil, err
	}

	s.invalidateApproved(ctx, record.Level, record.Semester)
	result.Persisted = true
	return result, nil
}

// Finalize re-validates a draft's stored sections and promotes it to
// GENERATED. Promotion requires a violation-free timetable.
func (s *ScheduleService) Finalize(ctx context.Context, versionID string, req dto.FinalizeScheduleRequest) (*models.ScheduleVersion, error) {
	record, err := s.findVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if record.Status != models.ScheduleVersionStatusDraft {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only draft schedule versions can be finalized")
	}

	rows, err := s.versions.ListSections(ctx, versionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule sections")
	}
	policy := SchedulePolicy{
		BlackoutWindows:      req.BlackoutWindows,
		AllowedDays:          req.AllowedDays,
		AllowedTimeRange:     req.AllowedTimeRange,
		UniqueCoursePerGroup: true,
	}
	for _, group := range groupsFromRows(rows) {
		violations, valErr := ValidateSections(group.Sections, policy)
		if valErr != nil {
			return nil, valErr
		}
		if len(violations) > 0 {
			return nil, appErrors.Clone(appErrors.ErrConflict,
				fmt.Sprintf("group %s still has %d violations", group.GroupName, len(violations)))
		}
	}

	if err := s.versions.UpdateStatus(ctx, nil, versionID, models.ScheduleVersionStatusGenerated); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update schedule version status")
	}
	record.Status = models.ScheduleVersionStatusGenerated
	return record, nil
}

// Approve promotes a GENERATED version to APPROVED and demotes any previously
// approved version of the same cohort. The approved detail is cached for the
// student-facing read path.
func (s *ScheduleService) Approve(ctx context.Context, versionID string) (*models.ScheduleVersion, error) {
	record, err := s.findVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	if record.Status != models.ScheduleVersionStatusGenerated {
		return nil, appErrors.Clone(appErrors.ErrConflict, "only generated schedule versions can be approved")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	previous, err := s.versions.FindApproved(ctx, record.Level, record.Semester)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load approved schedule version")
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

	if previous != nil && previous.ID != record.ID {
		if err = s.versions.UpdateStatus(ctx, tx, previous.ID, models.ScheduleVersionStatusGenerated); err != nil {
			err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to demote previous approved version")
			return nil, err
		}
	}
	if err = s.versions.UpdateStatus(ctx, tx, record.ID, models.ScheduleVersionStatusApproved); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve schedule version")
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit approval transaction")
		return nil, err
	}

	record.Status = models.ScheduleVersionStatusApproved
	s.invalidateApproved(ctx, record.Level, record.Semester)
	if detail, detailErr := s.GetDetail(ctx, record.ID); detailErr == nil && s.cache != nil {
		if cacheErr := s.cache.Set(ctx, approvedCacheKey(record.Level, record.Semester), detail, s.approvedTTL); cacheErr != nil {
			s.logger.Warn("failed to cache approved schedule", zap.Error(cacheErr))
		}
	}
	return record, nil
}

// GetDetail returns a version with its sections grouped by group name.
func (s *ScheduleService) GetDetail(ctx context.Context, versionID string) (*models.ScheduleVersionDetail, error) {
	record, err := s.findVersion(ctx, versionID)
	if err != nil {
		return nil, err
	}
	rows, err := s.versions.ListSections(ctx, versionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule sections")
	}
	return &models.ScheduleVersionDetail{ScheduleVersion: *record, Groups: groupsFromRows(rows)}, nil
}

// GetApproved serves the approved timetable of a cohort, cache first.
func (s *ScheduleService) GetApproved(ctx context.Context, level int, semester string) (*models.ScheduleVersionDetail, error) {
	if level <= 0 || semester == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "level and semester are required")
	}

	key := approvedCacheKey(level, semester)
	if s.cache != nil {
		var cached models.ScheduleVersionDetail
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return &cached, nil
		} else if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("approved schedule cache read failed", zap.Error(err))
		}
	}

	record, err := s.versions.FindApproved(ctx, level, semester)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "no approved schedule for this cohort")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load approved schedule version")
	}
	detail, err := s.GetDetail(ctx, record.ID)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if cacheErr := s.cache.Set(ctx, key, detail, s.approvedTTL); cacheErr != nil {
			s.logger.Warn("failed to cache approved schedule", zap.Error(cacheErr))
		}
	}
	return detail, nil
}

// List returns all versions of a cohort, newest first.
func (s *ScheduleService) List(ctx context.Context, query dto.ScheduleVersionQuery) ([]models.ScheduleVersion, error) {
	if query.Level <= 0 || query.Semester == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "level and semester are required")
	}
	list, err := s.versions.ListByLevelSemester(ctx, query.Level, query.Semester)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule versions")
	}
	return list, nil
}

// Delete removes a version. Approved versions are immutable history and are
// refused.
func (s *ScheduleService) Delete(ctx context.Context, versionID string) error {
	record, err := s.findVersion(ctx, versionID)
	if err != nil {
		return err
	}
	if record.Status == models.ScheduleVersionStatusApproved {
		return appErrors.Clone(appErrors.ErrConflict, "approved schedule versions cannot be deleted")
	}
	if err := s.versions.Delete(ctx, versionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule version not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule version")
	}
	return nil
}

func (s *ScheduleService) findVersion(ctx context.Context, versionID string) (*models.ScheduleVersion, error) {
	if versionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "schedule version id is required")
	}
	record, err := s.versions.FindByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule version not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule version")
	}
	return record, nil
}

func (s *ScheduleService) validateGroups(groups []dto.GroupSectionsInput, policy SchedulePolicy) (*dto.ValidateScheduleResponse, error) {
	resp := &dto.ValidateScheduleResponse{Valid: true}
	for _, group := range groups {
		violations, err := ValidateSections(group.Sections, policy)
		if err != nil {
			return nil, err
		}
		if len(violations) > 0 {
			resp.Valid = false
			resp.Violations = append(resp.Violations, dto.GroupViolations{GroupName: group.GroupName, Violations: violations})
		}
		resp.CapacityWarnings += CountCapacityWarnings(group.Sections)
	}
	return resp, nil
}

func (s *ScheduleService) invalidateApproved(ctx context.Context, level int, semester string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteByPattern(ctx, approvedCacheKey(level, semester)); err != nil {
		s.logger.Warn("failed to invalidate approved schedule cache", zap.Error(err))
	}
}

func approvedCacheKey(level int, semester string) string {
	return fmt.Sprintf("schedule:approved:%d:%s", level, semester)
}

// splitEvenly reports per-group sizes using the same base-plus-remainder
// split the group assignment uses.
func splitEvenly(total, numGroups int) []int {
	sizes := make([]int, numGroups)
	if numGroups == 0 {
		return sizes
	}
	base := total / numGroups
	remainder := total % numGroups
	for i := range sizes {
		sizes[i] = base
		if i < remainder {
			sizes[i]++
		}
	}
	return sizes
}

// calculateEfficiency is seat utilisation: enrolled over capacity across all
// sections that declare a capacity, as a percentage.
func calculateEfficiency(groups []models.GroupSections) float64 {
	var enrolled, capacity int
	for _, group := range groups {
		for _, section := range group.Sections {
			if section.Capacity <= 0 {
				continue
			}
			enrolled += section.StudentCount
			capacity += section.Capacity
		}
	}
	if capacity == 0 {
		return 0
	}
	return float64(enrolled) / float64(capacity) * 100
}

func sectionRows(groups []models.GroupSections) []models.ScheduleSection {
	var rows []models.ScheduleSection
	for _, group := range groups {
		for _, section := range group.Sections {
			rows = append(rows, models.ScheduleSection{
				GroupName:         group.GroupName,
				CourseCode:        section.CourseCode,
				SectionLabel:      section.SectionLabel,
				DayOfWeek:         section.Window.Day,
				StartTime:         section.Window.Start,
				EndTime:           section.Window.End,
				Room:              section.Room,
				StudentCount:      section.StudentCount,
				Capacity:          section.Capacity,
				GroupStudentCount: group.StudentCount,
				InstructorID:      section.InstructorID,
			})
		}
	}
	return rows
}

func groupsFromRows(rows []models.ScheduleSection) []models.GroupSections {
	byGroup := make(map[string]int)
	var groups []models.GroupSections
	for _, row := range rows {
		idx, ok := byGroup[row.GroupName]
		if !ok {
			idx = len(groups)
			byGroup[row.GroupName] = idx
			groups = append(groups, models.GroupSections{GroupName: row.GroupName, StudentCount: row.GroupStudentCount})
		}
		groups[idx].Sections = append(groups[idx].Sections, row.Section())
	}
	return groups
}

// --- Proposal cache ---

type scheduleProposal struct {
	ProposalID       string
	Level            int
	Semester         string
	Groups           []models.GroupSections
	Violations       []dto.GroupViolations
	CapacityWarnings int
	Efficiency       float64
	Warnings         []string
	RequestedAt      time.Time
}

type proposalStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]scheduleProposal
}

func newProposalStore(ttl time.Duration) *proposalStore {
	return &proposalStore{
		ttl:   ttl,
		items: make(map[string]scheduleProposal),
	}
}

func (s *proposalStore) Save(proposal scheduleProposal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[proposal.ProposalID] = proposal
}

func (s *proposalStore) Get(id string) (scheduleProposal, bool) {
	s.mu.RLock()
	proposal, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return scheduleProposal{}, false
	}
	if time.Since(proposal.RequestedAt) > s.ttl {
		s.Delete(id)
		return scheduleProposal{}, false
	}
	return proposal, true
}

func (s *proposalStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
