package api

import (
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/profitlens/backend-go/internal/api/handlers"
	"github.com/profitlens/backend-go/internal/api/middleware"
	"github.com/profitlens/backend-go/internal/insight"
	"github.com/profitlens/backend-go/internal/service"
	"github.com/profitlens/backend-go/internal/storage"
)

type Services struct {
	Products  *service.ProductService
	Dashboard *service.DashboardService
	Insights  *insight.Service
	Storage   storage.ObjectStorage
}

func NewRouter(services *Services, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())

	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
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
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api/v1")

	if services != nil {
		productHandler := handlers.NewProductHandler(services.Products, services.Dashboard, services.Insights)
		productGroup := apiGroup.Group("/products")
		{
			productGroup.GET("", productHandler.List)
			productGroup.POST("", productHandler.Create)
			productGroup.PUT("/:id", productHandler.Update)
			productGroup.DELETE("/:id", productHandler.Delete)
			productGroup.POST("/import", productHandler.Import)
			productGroup.POST("/reset", productHandler.Reset)
			productGroup.GET("/suggestions", productHandler.Suggestions)
		}

		dashboardHandler := handlers.NewDashboardHandler(services.Dashboard, services.Products)
		dashboardGroup := apiGroup.Group("/dashboard")
		{
			dashboardGroup.GET("/metrics", dashboardHandler.Metrics)
			dashboardGroup.GET("/categories", dashboardHandler.Categories)
			dashboardGroup.GET("/layout", dashboardHandler.Layout)
			dashboardGroup.GET("/widgets", dashboardHandler.Widgets)
			dashboardGroup.PUT("/widgets", dashboardHandler.SaveWidgets)
			dashboardGroup.GET("/goal", dashboardHandler.Goal)
			dashboardGroup.PUT("/goal", dashboardHandler.SaveGoal)
			dashboardGroup.GET("/theme", dashboardHandler.Theme)
			dashboardGroup.PUT("/theme", dashboardHandler.SaveTheme)
		}

		if services.Insights != nil {
			insightHandler := handlers.NewInsightHandler(services.Insights, services.Dashboard)
			insightGroup := apiGroup.Group("/insights")
			{
				insightGroup.POST("/question", insightHandler.Question)
				insightGroup.GET("/overview", insightHandler.Overview)
				insightGroup.GET("/compliance", insightHandler.Compliance)
				insightGroup.GET("/forecast", insightHandler.Forecast)
				insightGroup.POST("/marketing", insightHandler.Marketing)
				insightGroup.POST("/report", insightHandler.Report)
			}
		}

		exportHandler := handlers.NewExportHandler(services.Dashboard, services.Storage)
		exportGroup := apiGroup.Group("/export")
		{
			exportGroup.GET("/csv", exportHandler.CSV)
			exportGroup.GET("/xlsx", exportHandler.XLSX)
			exportGroup.GET("/archive", exportHandler.Archive)
			exportGroup.GET("/archive/link", exportHandler.ArchiveLink)
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
