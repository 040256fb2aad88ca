package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/wcanalyzer/internal/domain"
	"github.com/andresuchdata/wcanalyzer/internal/service"
)

type AnalysisHandler struct {
	service *service.AnalysisService
}

func NewAnalysisHandler(service *service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{service: service}
}

func (h *AnalysisHandler) GetIndustries(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.service.Industries()})
}

func (h *AnalysisHandler) GetDemo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.service.Demo()})
}

// Analyze computes the posted profile and stores it as the session's last analysis.
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var profile domain.InputProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		badRequest(c, err)
		return
	}

	analysis, err := h.service.Analyze(c.Request.Context(), session(c), profile)
	if err != nil {
		respondError(c, "Failed to analyze profile", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": presentAnalysis(analysis)})
}

func (h *AnalysisHandler) GetLast(c *gin.Context) {
	snapshot, err := h.service.Last(c.Request.Context(), session(c))
	if err != nil {
		respondError(c, "Failed to load last analysis", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": snapshot})
}

func (h *AnalysisHandler) ResetLast(c *gin.Context) {
	if err := h.service.Reset(c.Request.Context(), session(c)); err != nil {
		respondError(c, "Failed to reset last analysis", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AnalysisHandler) GetHistory(c *gin.Context) {
	filter := domain.HistoryFilter{
		Session:  strings.TrimSpace(c.Query("session")),
		Industry: strings.ToLower(strings.TrimSpace(c.Query("industry"))),
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(c.DefaultQuery("offset", "0")); err == nil {
		filter.Offset = offset
	}
	filter = filter.Normalize()

	items, err := h.service.History(c.Request.Context(), filter)
	if err != nil {
		respondError(c, "Failed to list analyses", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":   items,
		"limit":  filter.Limit,
		"offset": filter.Offset,
	})
}

func (h *AnalysisHandler) GetAnalysis(c *gin.Context) {
	analysis, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "Failed to load analysis", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": presentAnalysis(analysis)})
}

func session(c *gin.Context) string {
	return strings.TrimSpace(c.Query("session"))
}
