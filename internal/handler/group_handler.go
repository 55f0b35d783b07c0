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

type groupManager interface {
	Calculate(ctx context.Context, req dto.CalculateGroupsRequest) (*models.GroupSetting, error)
	Assign(ctx context.Context, req dto.AssignGroupsRequest) (*dto.AssignGroupsResponse, error)
	GetSetting(ctx context.Context, query dto.GroupSettingQuery) (*models.GroupSetting, error)
}

// GroupHandler exposes cohort partitioning endpoints.
type GroupHandler struct {
	service groupManager
}

// NewGroupHandler constructs the handler.
func NewGroupHandler(svc *service.GroupService) *GroupHandler {
	return &GroupHandler{service: svc}
}

// Calculate godoc
// @Summary Recalculate the group setting for a cohort
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body dto.CalculateGroupsRequest true "Calculate groups payload"
// @Success 200 {object} response.Envelope
// @Router /groups/calculate [post]
func (h *GroupHandler) Calculate(c *gin.Context) {
	var req dto.CalculateGroupsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid calculate payload"))
		return
	}
	setting, err := h.service.Calculate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	names, _ := setting.Names()
	response.JSON(c, http.StatusOK, gin.H{"setting": setting, "group_names": names}, nil)
}

// Assign godoc
// @Summary Distribute regular students across the configured groups
// @Tags Groups
// @Accept json
// @Produce json
// @Param payload body dto.AssignGroupsRequest true "Assign groups payload"
// @Success 200 {object} response.Envelope
// @Router /groups/assign [post]
func (h *GroupHandler) Assign(c *gin.Context) {
	var req dto.AssignGroupsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assign payload"))
		return
	}
	result, err := h.service.Assign(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetSetting godoc
// @Summary Get the stored group setting of a cohort
// @Tags Groups
// @Produce json
// @Param level query int true "Level"
// @Param semester query string true "Semester"
// @Success 200 {object} response.Envelope
// @Router /groups/setting [get]
func (h *GroupHandler) GetSetting(c *gin.Context) {
	level, _ := strconv.Atoi(c.Query("level"))
	setting, err := h.service.GetSetting(c.Request.Context(), dto.GroupSettingQuery{Level: level, Semester: c.Query("semester")})
	if err != nil {
		response.Error(c, err)
		return
	}
	names, _ := setting.Names()
	response.JSON(c, http.StatusOK, gin.H{"setting": setting, "group_names": names}, nil)
}
