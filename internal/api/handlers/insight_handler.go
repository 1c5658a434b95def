package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/profitlens/backend-go/internal/domain"
	"github.com/profitlens/backend-go/internal/insight"
	"github.com/profitlens/backend-go/internal/service"
)

type InsightHandler struct {
	insights  *insight.Service
	dashboard *service.DashboardService
}

func NewInsightHandler(insights *insight.Service, dashboard *service.DashboardService) *InsightHandler {
	return &InsightHandler{insights: insights, dashboard: dashboard}
}

type questionRequest struct {
	Question string `json:"question" binding:"required"`
}

// Question answers a free-form analyst question over the current view.
func (h *InsightHandler) Question(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	products, err := h.dashboard.Products(c.Request.Context(), parseFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products", "details": err.Error()})
		return
	}

	answer, err := h.insights.Insight(c.Request.Context(), products, req.Question)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "insight request failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"answer": answer})
}

// Overview streams the business overview as server-sent events. Each event
// carries the stream generation so clients can drop chunks from a
// superseded request.
func (h *InsightHandler) Overview(c *gin.Context) {
	ctx := c.Request.Context()
	filter := parseFilter(c)

	m, err := h.dashboard.Metrics(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute metrics", "details": err.Error()})
		return
	}
	products, err := h.dashboard.Products(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products", "details": err.Error()})
		return
	}

	chunks, _ := h.insights.StreamOverview(ctx, m, products)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		chunk, ok := <-chunks
		if !ok {
			return false
		}
		if chunk.Err != nil {
			c.SSEvent("error", gin.H{"generation": chunk.Generation, "message": chunk.Err.Error()})
			return false
		}
		c.SSEvent("chunk", chunk)
		return true
	})
}

// Compliance generates the checklist for a business profile.
func (h *InsightHandler) Compliance(c *gin.Context) {
	location := strings.TrimSpace(c.Query("location"))
	businessType := strings.TrimSpace(c.Query("businessType"))
	if location == "" || businessType == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "location and businessType are required"})
		return
	}

	tasks, err := h.insights.ComplianceChecklist(c.Request.Context(), location, businessType)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "checklist request failed", "details": err.Error()})
		return
	}
	if tasks == nil {
		tasks = make([]domain.ComplianceTask, 0)
	}

	c.JSON(http.StatusOK, gin.H{"checklist": tasks})
}

// Forecast returns per-product sales forecasts with reorder suggestions.
func (h *InsightHandler) Forecast(c *gin.Context) {
	products, err := h.dashboard.Products(c.Request.Context(), parseFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products", "details": err.Error()})
		return
	}

	forecasted, err := h.insights.Forecast(c.Request.Context(), products)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "forecast request failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, forecasted)
}

type marketingRequest struct {
	ProductID       int64   `json:"productId" binding:"required"`
	DiscountPercent float64 `json:"discountPercent"`
	LiftPercent     float64 `json:"liftPercent"`
}

// Marketing runs the promo simulation for one product and asks for a
// verdict on it.
func (h *InsightHandler) Marketing(c *gin.Context) {
	var req marketingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}
	if req.DiscountPercent < 0 || req.DiscountPercent >= 100 || req.LiftPercent < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "discount must be in [0, 100) and lift non-negative"})
		return
	}

	products, err := h.dashboard.Products(c.Request.Context(), domain.ProductFilter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products", "details": err.Error()})
		return
	}

	var target *domain.Product
	for i := range products {
		if products[i].ID == req.ProductID {
			target = &products[i].Product
			break
		}
	}
	if target == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("product %d not found", req.ProductID)})
		return
	}

	sim, err := h.insights.MarketingAdvice(c.Request.Context(), *target, req.DiscountPercent, req.LiftPercent)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "marketing advice request failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, sim)
}

// Report generates the structured executive report for the current view.
func (h *InsightHandler) Report(c *gin.Context) {
	ctx := c.Request.Context()
	filter := parseFilter(c)

	m, err := h.dashboard.Metrics(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute metrics", "details": err.Error()})
		return
	}
	products, err := h.dashboard.Products(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products", "details": err.Error()})
		return
	}

	report, err := h.insights.Report(ctx, m, products)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "report request failed", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, report)
}
