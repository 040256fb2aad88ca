package handlers

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/wcanalyzer/internal/report"
	"github.com/andresuchdata/wcanalyzer/internal/service"
)

type ReportHandler struct {
	service *service.ReportService
}

func NewReportHandler(service *service.ReportService) *ReportHandler {
	return &ReportHandler{service: service}
}

func (h *ReportHandler) ListReports(c *gin.Context) {
	objects, err := h.service.List(c.Request.Context())
	if err != nil {
		respondError(c, "Failed to list reports", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": objects})
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	key := strings.TrimPrefix(strings.TrimSpace(c.Query("key")), "/")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "report key is required"})
		return
	}

	data, err := h.service.Get(c.Request.Context(), key)
	if err != nil {
		respondError(c, "Failed to load report", err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=\""+path.Base(key)+"\"")
	c.Data(http.StatusOK, report.ContentType, data)
}
