package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kryonic-fluke/PawRescue-sub001/internal/model"
	"github.com/kryonic-fluke/PawRescue-sub001/internal/service"
)

type ReportHandler struct {
	reportService *service.ReportService
}

func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// respondError renders the uniform {error, code?} body. AppErrors keep their
// status and code; anything else is a 500.
func respondError(c *gin.Context, err error) {
	if appErr, ok := model.AsAppError(err); ok {
		c.JSON(appErr.Status, gin.H{"error": appErr.Message, "code": appErr.Code})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// Handles POST /reports - validates and persists a new rescue report.
func (h *ReportHandler) CreateReport(c *gin.Context) {
	var req model.CreateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.CreateReport(&req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// Handles GET /reports - returns a single report when id is given, otherwise
// a filtered list in triage order.
func (h *ReportHandler) ListReports(c *gin.Context) {
	if idStr := c.Query("id"); idStr != "" {
		id, err := uuid.Parse(idStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
			return
		}

		report, err := h.reportService.GetReport(id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
		return
	}

	filter := model.ReportFilter{
		Status:  model.ReportStatus(c.Query("status")),
		Urgency: model.Urgency(c.Query("urgency")),
		Search:  c.Query("search"),
	}

	if filter.Status != "" && !model.ValidStatus(filter.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid status filter", "code": model.CodeInvalidStatus})
		return
	}
	if filter.Urgency != "" && !model.ValidUrgency(filter.Urgency) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid urgency filter", "code": model.CodeInvalidUrgency})
		return
	}

	if v := c.Query("userId"); v != "" {
		uid, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid userId filter"})
			return
		}
		filter.UserID = &uid
	}
	if v := c.Query("assignedNgoId"); v != "" {
		nid, err := uuid.Parse(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid assignedNgoId filter"})
			return
		}
		filter.AssignedNgoID = &nid
	}
	if v := c.Query("limit"); v != "" {
		if limit, err := strconv.Atoi(v); err == nil {
			filter.Limit = limit
		}
	}
	if v := c.Query("offset"); v != "" {
		if offset, err := strconv.Atoi(v); err == nil {
			filter.Offset = offset
		}
	}

	response, err := h.reportService.ListReports(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// Handles GET /reports/:id - returns a single report by path id with the
// responding organization embedded when one is assigned.
func (h *ReportHandler) GetReportByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	detail, err := h.reportService.GetReportDetail(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

// Handles PUT /reports/:id - applies a partial update and triggers the
// status-change notification when warranted.
func (h *ReportHandler) UpdateReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	var req model.UpdateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.UpdateReport(id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Handles DELETE /reports/:id - administrative removal.
func (h *ReportHandler) DeleteReport(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	report, err := h.reportService.DeleteReport(id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.DeleteReportResponse{
		Message:       "Report deleted successfully",
		DeletedReport: *report,
	})
}

// Health check endpoint for service status monitoring.
func (h *ReportHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}
