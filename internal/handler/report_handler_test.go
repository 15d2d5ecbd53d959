package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kryonic-fluke/PawRescue-sub001/internal/model"
	"github.com/kryonic-fluke/PawRescue-sub001/internal/service"
)

type memoryStore struct {
	reports map[uuid.UUID]*model.RescueReport
}

func (s *memoryStore) Create(report *model.RescueReport) error {
	copied := *report
	s.reports[report.ID] = &copied
	return nil
}

func (s *memoryStore) FindByID(id uuid.UUID) (*model.RescueReport, error) {
	report, ok := s.reports[id]
	if !ok {
		return nil, model.ErrReportNotFound
	}
	copied := *report
	return &copied, nil
}

func (s *memoryStore) FindAll(filter model.ReportFilter) ([]model.RescueReport, error) {
	var out []model.RescueReport
	for _, r := range s.reports {
		out = append(out, *r)
	}
	return out, nil
}

func (s *memoryStore) Count(filter model.ReportFilter) (int, error) {
	return len(s.reports), nil
}

func (s *memoryStore) Update(id uuid.UUID, patch *model.ReportPatch) error {
	report, ok := s.reports[id]
	if !ok {
		return model.ErrReportNotFound
	}
	if patch.Description != nil {
		report.Description = *patch.Description
	}
	if patch.Status != nil {
		report.Status = *patch.Status
	}
	report.UpdatedAt = time.Now()
	return nil
}

func (s *memoryStore) Delete(id uuid.UUID) error {
	if _, ok := s.reports[id]; !ok {
		return model.ErrReportNotFound
	}
	delete(s.reports, id)
	return nil
}

type emptyDirectory struct{}

func (emptyDirectory) Exists(uuid.UUID) (bool, error) { return false, nil }

func (emptyDirectory) FindByID(uuid.UUID) (*model.Organization, error) {
	return nil, errors.New("organization not found")
}

type countingNotifier struct {
	count int
}

func (n *countingNotifier) Enqueue(recipientEmail, subject, message, notificationType string, userID *uuid.UUID) {
	n.count++
}

func newTestRouter() (*gin.Engine, *memoryStore, *countingNotifier) {
	gin.SetMode(gin.TestMode)

	store := &memoryStore{reports: make(map[uuid.UUID]*model.RescueReport)}
	notifier := &countingNotifier{}
	svc := service.NewReportService(store, emptyDirectory{}, emptyDirectory{}, notifier)
	h := NewReportHandler(svc)

	r := gin.New()
	r.GET("/health", h.Health)
	reports := r.Group("/reports")
	{
		reports.POST("", h.CreateReport)
		reports.GET("", h.ListReports)
		reports.GET("/:id", h.GetReportByID)
		reports.PUT("/:id", h.UpdateReport)
		reports.DELETE("/:id", h.DeleteReport)
	}
	return r, store, notifier
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createSample(t *testing.T, r *gin.Engine) model.RescueReport {
	w := doJSON(t, r, http.MethodPost, "/reports", map[string]string{
		"animal_type": "dog",
		"location":    "Park St",
		"description": "injured leg",
		"phone":       "9876543210",
		"email":       "a@b.com",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var report model.RescueReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	return report
}

func TestCreateReport_Created(t *testing.T) {
	r, store, notifier := newTestRouter()

	report := createSample(t, r)
	assert.Equal(t, model.StatusPending, report.Status)
	assert.Equal(t, model.UrgencyMedium, report.Urgency)
	assert.Len(t, store.reports, 1)
	assert.Equal(t, 1, notifier.count)
}

func TestCreateReport_ValidationErrorShape(t *testing.T) {
	r, store, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPost, "/reports", map[string]string{
		"animal_type": "dog",
		"location":    "Park St",
		"description": "injured leg",
		"phone":       "12345",
		"email":       "a@b.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errBody struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errBody))
	assert.Equal(t, model.CodeInvalidPhone, errBody.Code)
	assert.NotEmpty(t, errBody.Error)
	assert.Empty(t, store.reports)
}

func TestListReports_ByIDQuery(t *testing.T) {
	r, _, _ := newTestRouter()
	report := createSample(t, r)

	w := doJSON(t, r, http.MethodGet, "/reports?id="+report.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var got model.RescueReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, report.ID, got.ID)
}

func TestListReports_ByIDQueryNotFound(t *testing.T) {
	r, _, _ := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/reports?id="+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetReportByID_OK(t *testing.T) {
	r, _, _ := newTestRouter()
	report := createSample(t, r)

	w := doJSON(t, r, http.MethodGet, "/reports/"+report.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var detail model.ReportDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &detail))
	assert.Equal(t, report.ID, detail.ID)
	assert.Nil(t, detail.AssignedNgo)
}

func TestGetReportByID_NotFound(t *testing.T) {
	r, _, _ := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/reports/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListReports_InvalidStatusFilter(t *testing.T) {
	r, _, _ := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/reports?status=archived", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListReports_ReturnsTotal(t *testing.T) {
	r, _, _ := newTestRouter()
	createSample(t, r)
	createSample(t, r)

	w := doJSON(t, r, http.MethodGet, "/reports", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response model.ReportListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 2, response.Total)
	assert.Len(t, response.Reports, 2)
}

func TestUpdateReport_StatusTransition(t *testing.T) {
	r, _, notifier := newTestRouter()
	report := createSample(t, r)
	notifier.count = 0

	w := doJSON(t, r, http.MethodPut, "/reports/"+report.ID.String(), map[string]string{
		"status": "resolved",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var updated model.RescueReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, model.StatusResolved, updated.Status)
	assert.Equal(t, 1, notifier.count)
}

func TestUpdateReport_InvalidEnum(t *testing.T) {
	r, _, _ := newTestRouter()
	report := createSample(t, r)

	w := doJSON(t, r, http.MethodPut, "/reports/"+report.ID.String(), map[string]string{
		"status": "closed",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateReport_NotFound(t *testing.T) {
	r, _, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPut, "/reports/"+uuid.New().String(), map[string]string{
		"description": "anything",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReport_InvalidID(t *testing.T) {
	r, _, _ := newTestRouter()

	w := doJSON(t, r, http.MethodPut, "/reports/not-a-uuid", map[string]string{
		"description": "anything",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteReport_ReturnsDeleted(t *testing.T) {
	r, store, _ := newTestRouter()
	report := createSample(t, r)

	w := doJSON(t, r, http.MethodDelete, "/reports/"+report.ID.String(), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response model.DeleteReportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, report.ID, response.DeletedReport.ID)
	assert.NotEmpty(t, response.Message)
	assert.Empty(t, store.reports)
}

func TestDeleteReport_NotFound(t *testing.T) {
	r, _, _ := newTestRouter()

	w := doJSON(t, r, http.MethodDelete, "/reports/"+uuid.New().String(), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter()

	w := doJSON(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
