package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"scamshield/internal/models"
	"scamshield/internal/scanner"
)

type ScanHandler interface {
	Scan(c *gin.Context)
	History(c *gin.Context)
}

type scanHandler struct {
	scanner *scanner.Scanner
	logger  *zap.Logger
}

func NewScanHandler(s *scanner.Scanner, logger *zap.Logger) ScanHandler {
	return &scanHandler{scanner: s, logger: logger}
}

type scanRequest struct {
	Kind  models.TargetKind `json:"kind" binding:"required"`
	Value string            `json:"value" binding:"required"`
}

// Scan handles POST /api/scan.
func (h *scanHandler) Scan(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind and value are required"})
		return
	}

	record, err := h.scanner.Scan(c.Request.Context(), currentUserID(c), models.ScanTarget{
		Kind:  req.Kind,
		Value: req.Value,
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// History handles GET /api/scans.
func (h *scanHandler) History(c *gin.Context) {
	records, err := h.scanner.History(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"scans": records})
}
