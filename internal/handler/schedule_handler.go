package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/dto"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/service"
	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
	"github.com/MaazSajjad/smart-scheduler-sub001/pkg/response"
)

type scheduleManager interface {
	Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error)
	Save(ctx context.Context, req dto.SaveScheduleRequest) (*models.ScheduleVersion, error)
	ValidateDraft(ctx context.Context, req dto.ValidateScheduleRequest) (*dto.ValidateScheduleResponse, error)
	ReplaceSections(ctx context.Context, versionID string, req dto.ReplaceSectionsRequest) (*dto.ValidateScheduleResponse, error)
	Finalize(ctx context.Context, versionID string, req dto.FinalizeScheduleRequest) (*models.ScheduleVersion, error)
	Approve(ctx context.Context, versionID string) (*models.ScheduleVersion, error)
	GetDetail(ctx context.Context, versionID string) (*models.ScheduleVersionDetail, error)
	GetApproved(ctx context.Context, level int, semester string) (*models.ScheduleVersionDetail, error)
	List(ctx context.Context, query dto.ScheduleVersionQuery) ([]models.ScheduleVersion, error)
	Delete(ctx context.Context, versionID string) error
}

// ScheduleHandler exposes the schedule version lifecycle endpoints.
type ScheduleHandler struct {
	service scheduleManager
}

// NewScheduleHandler constructs the handler.
func NewScheduleHandler(svc *service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: svc}
}

// Generate godoc
// @Summary Generate a timetable proposal for every group of a cohort
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.GenerateScheduleRequest true "Generate schedule payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/generate [post]
func (h *ScheduleHandler) Generate(c *gin.Context) {
	var req dto.GenerateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generate payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Save godoc
// @Summary Persist a generated proposal as a new schedule version
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.SaveScheduleRequest true "Save schedule payload"
// @Success 201 {object} response.Envelope
// @Router /schedules/save [post]
func (h *ScheduleHandler) Save(c *gin.Context) {
	var req dto.SaveScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}
	record, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, record)
}

// Validate godoc
// @Summary Validate an edit buffer without persisting it
// @Tags Schedules
// @Accept json
// @Produce json
// @Param payload body dto.ValidateScheduleRequest true "Validate payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/validate [post]
func (h *ScheduleHandler) Validate(c *gin.Context) {
	var req dto.ValidateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid validate payload"))
		return
	}
	result, err := h.service.ValidateDraft(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ReplaceSections godoc
// @Summary Replace a version's section list after validation
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule version ID"
// @Param payload body dto.ReplaceSectionsRequest true "Replace sections payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/sections [put]
func (h *ScheduleHandler) ReplaceSections(c *gin.Context) {
	var req dto.ReplaceSectionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid replace payload"))
		return
	}
	result, err := h.service.ReplaceSections(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if !result.Valid {
		status = http.StatusUnprocessableEntity
	}
	response.JSON(c, status, result, nil)
}

// Finalize godoc
// @Summary Promote a violation-free draft to GENERATED
// @Tags Schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule version ID"
// @Param payload body dto.FinalizeScheduleRequest false "Finalize payload"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/finalize [post]
func (h *ScheduleHandler) Finalize(c *gin.Context) {
	var req dto.FinalizeScheduleRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid finalize payload"))
			return
		}
	}
	record, err := h.service.Finalize(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Approve godoc
// @Summary Approve a generated schedule version
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule version ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id}/approve [post]
func (h *ScheduleHandler) Approve(c *gin.Context) {
	record, err := h.service.Approve(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// Get godoc
// @Summary Get a schedule version with its grouped sections
// @Tags Schedules
// @Produce json
// @Param id path string true "Schedule version ID"
// @Success 200 {object} response.Envelope
// @Router /schedules/{id} [get]
func (h *ScheduleHandler) Get(c *gin.Context) {
	detail, err := h.service.GetDetail(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// GetApproved godoc
// @Summary Get the approved timetable of a cohort
// @Tags Schedules
// @Produce json
// @Param level query int true "Level"
// @Param semester query string true "Semester"
// @Success 200 {object} response.Envelope
// @Router /schedules/approved [get]
func (h *ScheduleHandler) GetApproved(c *gin.Context) {
	level, _ := strconv.Atoi(c.Query("level"))
	detail, err := h.service.GetApproved(c.Request.Context(), level, c.Query("semester"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, detail, nil)
}

// List godoc
// @Summary List schedule versions of a cohort
// @Tags Schedules
// @Produce json
// @Param level query int true "Level"
// @Param semester query string true "Semester"
// @Success 200 {object} response.Envelope
// @Router /schedules [get]
func (h *ScheduleHandler) List(c *gin.Context) {
	level, _ := strconv.Atoi(c.Query("level"))
	result, err := h.service.List(c.Request.Context(), dto.ScheduleVersionQuery{Level: level, Semester: c.Query("semester")})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Delete godoc
// @Summary Delete a non-approved schedule version
// @Tags Schedules
// @Param id path string true "Schedule version ID"
// @Success 204
// @Router /schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
