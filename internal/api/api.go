// internal/api/api.go
package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/andresuchdata/wcanalyzer/internal/api/handlers"
	"github.com/andresuchdata/wcanalyzer/internal/api/middleware"
	"github.com/andresuchdata/wcanalyzer/internal/service"
)

type Services struct {
	AnalysisService *service.AnalysisService
	ReportService   *service.ReportService
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition", handlers.ReportKeyHeader, middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.AnalysisService != nil {
			analysisHandler := handlers.NewAnalysisHandler(services.AnalysisService)
			apiGroup.GET("/industries", analysisHandler.GetIndustries)
			apiGroup.GET("/demo", analysisHandler.GetDemo)

			analysisGroup := apiGroup.Group("/analysis")
			{
				analysisGroup.POST("", analysisHandler.Analyze)
				analysisGroup.GET("/last", analysisHandler.GetLast)
				analysisGroup.DELETE("/last", analysisHandler.ResetLast)
				analysisGroup.GET("/history", analysisHandler.GetHistory)
				analysisGroup.GET("/:id", analysisHandler.GetAnalysis)
			}

			reports := services.ReportService
			if reports == nil {
				reports = service.NewReportService(nil, "")
			}
			simulationHandler := handlers.NewSimulationHandler(services.AnalysisService, reports)
			apiGroup.POST("/simulation", simulationHandler.Simulate)
			apiGroup.POST("/simulation/export", simulationHandler.ExportSimulation)
			apiGroup.POST("/growth", simulationHandler.Growth)
			apiGroup.POST("/valuation", simulationHandler.Valuation)
		}

		if services.ReportService != nil {
			reportHandler := handlers.NewReportHandler(services.ReportService)
			reportGroup := apiGroup.Group("/reports")
			{
				reportGroup.GET("", reportHandler.ListReports)
				reportGroup.GET("/download", reportHandler.GetReport)
			}
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
