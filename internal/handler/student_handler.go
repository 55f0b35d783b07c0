package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/service"
	"github.com/MaazSajjad/smart-scheduler-sub001/pkg/response"
)

type studentManager interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error)
}

// StudentHandler exposes roster endpoints.
type StudentHandler struct {
	service studentManager
}

// NewStudentHandler constructs the handler.
func NewStudentHandler(svc *service.StudentService) *StudentHandler {
	return &StudentHandler{service: svc}
}

// List godoc
// @Summary List students with roster filters
// @Tags Students
// @Produce json
// @Param level query int false "Level"
// @Param irregular query bool false "Irregular only"
// @Param group query string false "Group name"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /students [get]
func (h *StudentHandler) List(c *gin.Context) {
	filter := models.StudentFilter{GroupName: c.Query("group")}
	if raw := c.Query("level"); raw != "" {
		if level, err := strconv.Atoi(raw); err == nil {
			filter.Level = &level
		}
	}
	if raw := c.Query("irregular"); raw != "" {
		if irregular, err := strconv.ParseBool(raw); err == nil {
			filter.Irregular = &irregular
		}
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "50"))

	students, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, students, pagination)
}
