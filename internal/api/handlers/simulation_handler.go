package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/wcanalyzer/internal/report"
	"github.com/andresuchdata/wcanalyzer/internal/service"
)

const ReportKeyHeader = "X-Report-Key"

// SimulationHandler serves the what-if calculators: simulation, growth and valuation.
type SimulationHandler struct {
	analysis *service.AnalysisService
	reports  *service.ReportService
}

func NewSimulationHandler(analysis *service.AnalysisService, reports *service.ReportService) *SimulationHandler {
	return &SimulationHandler{analysis: analysis, reports: reports}
}

func (h *SimulationHandler) Simulate(c *gin.Context) {
	var req service.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	summary, _, err := h.analysis.Simulate(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to run simulation", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": summary})
}

// ExportSimulation returns the simulation as a CSV download. With ?archive=true
// the file is also stored and its key returned in the X-Report-Key header.
func (h *SimulationHandler) ExportSimulation(c *gin.Context) {
	var req service.SimulationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	archive, _ := strconv.ParseBool(c.DefaultQuery("archive", "false"))

	summary, in, err := h.analysis.Simulate(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to run simulation", err)
		return
	}

	export, err := h.reports.SimulationCSV(c.Request.Context(), in, summary.SimulationResult, archive)
	if err != nil {
		respondError(c, "Failed to export simulation", err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.FileName))
	if export.Key != "" {
		c.Header(ReportKeyHeader, export.Key)
	}
	c.Data(http.StatusOK, report.ContentType, export.Data)
}

func (h *SimulationHandler) Growth(c *gin.Context) {
	var req service.GrowthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	growth, err := h.analysis.Growth(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to project growth", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": growth})
}

func (h *SimulationHandler) Valuation(c *gin.Context) {
	var req service.ValuationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	impact, err := h.analysis.Valuation(c.Request.Context(), req)
	if err != nil {
		respondError(c, "Failed to compute valuation impact", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": impact})
}
