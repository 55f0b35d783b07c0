package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MaazSajjad/smart-scheduler-sub001/internal/dto"
	"github.com/MaazSajjad/smart-scheduler-sub001/internal/models"
	appErrors "github.com/MaazSajjad/smart-scheduler-sub001/pkg/errors"
)

type scheduleServiceMock struct {
	generateResp *dto.GenerateScheduleResponse
	saveResp     *models.ScheduleVersion
	saveErr      error
	validateResp *dto.ValidateScheduleResponse
	replaceResp  *dto.ValidateScheduleResponse
	finalizeResp *models.ScheduleVersion
	approveErr   error
	deleteErr    error
}

func (m *scheduleServiceMock) Generate(context.Context, dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	return m.generateResp, nil
}

func (m *scheduleServiceMock) Save(context.Context, dto.SaveScheduleRequest) (*models.ScheduleVersion, error) {
	if m.saveErr != nil {
		return nil, m.saveErr
	}
	return m.saveResp, nil
}

func (m *scheduleServiceMock) ValidateDraft(context.Context, dto.ValidateScheduleRequest) (*dto.ValidateScheduleResponse, error) {
	return m.validateResp, nil
}

func (m *scheduleServiceMock) ReplaceSections(context.Context, string, dto.ReplaceSectionsRequest) (*dto.ValidateScheduleResponse, error) {
	return m.replaceResp, nil
}

func (m *scheduleServiceMock) Finalize(context.Context, string, dto.FinalizeScheduleRequest) (*models.ScheduleVersion, error) {
	return m.finalizeResp, nil
}

func (m *scheduleServiceMock) Approve(context.Context, string) (*models.ScheduleVersion, error) {
	if m.approveErr != nil {
		return nil, m.approveErr
	}
	return &models.ScheduleVersion{ID: "ver-1", Status: models.ScheduleVersionStatusApproved}, nil
}

func (m *scheduleServiceMock) GetDetail(context.Context, string) (*models.ScheduleVersionDetail, error) {
	return &models.ScheduleVersionDetail{}, nil
}

func (m *scheduleServiceMock) GetApproved(context.Context, int, string) (*models.ScheduleVersionDetail, error) {
	return &models.ScheduleVersionDetail{}, nil
}

func (m *scheduleServiceMock) List(context.Context, dto.ScheduleVersionQuery) ([]models.ScheduleVersion, error) {
	return nil, nil
}

func (m *scheduleServiceMock) Delete(context.Context, string) error {
	return m.deleteErr
}

func newScheduleTestContext(t *testing.T, method, target string, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, target, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	return c, w
}

func TestScheduleHandlerGenerateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := &ScheduleHandler{service: &scheduleServiceMock{}}
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/schedules/generate", bytes.NewReader([]byte(`invalid`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Generate(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestScheduleHandlerGenerate(t *testing.T) {
	mock := &scheduleServiceMock{generateResp: &dto.GenerateScheduleResponse{
		ProposalID: "prop-1",
		Level:      2,
		Semester:   "2026-1",
		Efficiency: 92.5,
	}}
	handler := &ScheduleHandler{service: mock}
	c, w := newScheduleTestContext(t, http.MethodPost, "/schedules/generate", dto.GenerateScheduleRequest{
		Level:             2,
		Semester:          "2026-1",
		StudentsPerCourse: map[string]int{"CS101": 101},
		AvailableRooms:    []string{"R1"},
	})

	handler.Generate(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "prop-1")
}

func TestScheduleHandlerSaveConflict(t *testing.T) {
	mock := &scheduleServiceMock{saveErr: appErrors.Clone(appErrors.ErrConflict, "proposal still has violations")}
	handler := &ScheduleHandler{service: mock}
	c, w := newScheduleTestContext(t, http.MethodPost, "/schedules/save", dto.SaveScheduleRequest{ProposalID: "prop-1"})

	handler.Save(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestScheduleHandlerSaveCreated(t *testing.T) {
	mock := &scheduleServiceMock{saveResp: &models.ScheduleVersion{ID: "ver-1", Version: 1, Status: models.ScheduleVersionStatusGenerated}}
	handler := &ScheduleHandler{service: mock}
	c, w := newScheduleTestContext(t, http.MethodPost, "/schedules/save", dto.SaveScheduleRequest{ProposalID: "prop-1"})

	handler.Save(c)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestScheduleHandlerReplaceSectionsInvalidBuffer(t *testing.T) {
	mock := &scheduleServiceMock{replaceResp: &dto.ValidateScheduleResponse{Valid: false}}
	handler := &ScheduleHandler{service: mock}
	c, w := newScheduleTestContext(t, http.MethodPut, "/schedules/ver-1/sections", dto.ReplaceSectionsRequest{
		Groups: []dto.GroupSectionsInput{{GroupName: "A"}},
	})
	c.Params = gin.Params{{Key: "id", Value: "ver-1"}}

	handler.ReplaceSections(c)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestScheduleHandlerReplaceSectionsPersisted(t *testing.T) {
	mock := &scheduleServiceMock{replaceResp: &dto.ValidateScheduleResponse{Valid: true, Persisted: true}}
	handler := &ScheduleHandler{service: mock}
	c, w := newScheduleTestContext(t, http.MethodPut, "/schedules/ver-1/sections", dto.ReplaceSectionsRequest{
		Groups: []dto.GroupSectionsInput{{GroupName: "A"}},
	})
	c.Params = gin.Params{{Key: "id", Value: "ver-1"}}

	handler.ReplaceSections(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"persisted":true`)
}

func TestScheduleHandlerFinalizeEmptyBody(t *testing.T) {
	mock := &scheduleServiceMock{finalizeResp: &models.ScheduleVersion{ID: "ver-1", Status: models.ScheduleVersionStatusGenerated}}
	handler := &ScheduleHandler{service: mock}
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/schedules/ver-1/finalize", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "ver-1"}}

	handler.Finalize(c)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestScheduleHandlerDeleteApprovedConflict(t *testing.T) {
	mock := &scheduleServiceMock{deleteErr: appErrors.Clone(appErrors.ErrConflict, "approved schedule versions cannot be deleted")}
	handler := &ScheduleHandler{service: mock}
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/schedules/ver-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "ver-1"}}

	handler.Delete(c)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestScheduleHandlerDelete(t *testing.T) {
	handler := &ScheduleHandler{service: &scheduleServiceMock{}}
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/schedules/ver-1", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "ver-1"}}

	handler.Delete(c)
	c.Writer.WriteHeaderNow()
	assert.Equal(t, http.StatusNoContent, w.Code)
}
