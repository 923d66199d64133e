package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scamshield/internal/models"
	"scamshield/internal/repository"
)

type ReportHandler interface {
	Create(c *gin.Context)
	Verify(c *gin.Context)
	ListPending(c *gin.Context)
}

type reportHandler struct {
	reports repository.ReportStore
	logger  *zap.Logger
}

func NewReportHandler(reports repository.ReportStore, logger *zap.Logger) ReportHandler {
	return &reportHandler{reports: reports, logger: logger}
}

type createReportRequest struct {
	Kind    models.TargetKind `json:"kind" binding:"required"`
	Value   string            `json:"value" binding:"required"`
	Comment string            `json:"comment"`
}

// Create handles POST /api/reports. New reports start unverified and do
// not influence scans until a moderator verifies them.
func (h *reportHandler) Create(c *gin.Context) {
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind and value are required"})
		return
	}
	if !req.Kind.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown target kind"})
		return
	}

	report := &models.Report{
		Kind:       req.Kind,
		Value:      req.Value,
		Comment:    req.Comment,
		ReporterID: currentUserID(c),
	}
	if err := h.reports.Create(c.Request.Context(), report); err != nil {
		respondError(c, h.logger, err)
		return
	}

	h.logger.Info("Report submitted",
		zap.Int64("report_id", report.ID),
		zap.String("kind", string(report.Kind)))
	c.JSON(http.StatusCreated, report)
}

// Verify handles POST /api/reports/:id/verify (admin only).
func (h *reportHandler) Verify(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	if err := h.reports.Verify(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true})
}

// ListPending handles GET /api/reports/pending (admin only).
func (h *reportHandler) ListPending(c *gin.Context) {
	reports, err := h.reports.ListPending(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports})
}
