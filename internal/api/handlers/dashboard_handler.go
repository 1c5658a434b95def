package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/profitlens/backend-go/internal/domain"
	"github.com/profitlens/backend-go/internal/service"
)

type DashboardHandler struct {
	dashboard *service.DashboardService
	products  *service.ProductService
}

func NewDashboardHandler(dashboard *service.DashboardService, products *service.ProductService) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, products: products}
}

// Metrics returns the KPI aggregate for the filtered view.
func (h *DashboardHandler) Metrics(c *gin.Context) {
	m, err := h.dashboard.Metrics(c.Request.Context(), parseFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute metrics", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, m)
}

// Categories returns the revenue and margin rollups.
func (h *DashboardHandler) Categories(c *gin.Context) {
	breakdown, err := h.dashboard.Categories(c.Request.Context(), parseFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute categories", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, breakdown)
}

// Layout returns the visible widget slots in display order. An optional
// widgets param narrows the request to a comma-separated id list.
func (h *DashboardHandler) Layout(c *gin.Context) {
	var ids []domain.WidgetID
	if raw := strings.TrimSpace(c.Query("widgets")); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ids = append(ids, domain.WidgetID(part))
			}
		}
	}

	slots, err := h.dashboard.Layout(c.Request.Context(), ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve layout", "details": err.Error()})
		return
	}
	if slots == nil {
		slots = make([]domain.WidgetSlot, 0)
	}

	c.JSON(http.StatusOK, slots)
}

// Widgets returns the merged widget config snapshot.
func (h *DashboardHandler) Widgets(c *gin.Context) {
	config, err := h.dashboard.WidgetConfig(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load widget config", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, config)
}

// SaveWidgets persists a widget config snapshot.
func (h *DashboardHandler) SaveWidgets(c *gin.Context) {
	var config domain.WidgetConfig
	if err := c.ShouldBindJSON(&config); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	merged, err := h.dashboard.SaveWidgetConfig(c.Request.Context(), config)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save widget config", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, merged)
}

// Goal returns the persisted weekly profit goal.
func (h *DashboardHandler) Goal(c *gin.Context) {
	goal, err := h.products.ProfitGoal(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load profit goal", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": goal})
}

type goalRequest struct {
	Goal float64 `json:"goal" binding:"required"`
}

// SaveGoal persists a new weekly profit goal.
func (h *DashboardHandler) SaveGoal(c *gin.Context) {
	var req goalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.products.SetProfitGoal(c.Request.Context(), req.Goal); err != nil {
		if errors.Is(err, domain.ErrInvalidProduct) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save profit goal", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"goal": req.Goal})
}

// Theme returns the persisted UI theme.
func (h *DashboardHandler) Theme(c *gin.Context) {
	theme, err := h.products.Theme(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load theme", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": theme})
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

// SaveTheme persists the UI theme.
func (h *DashboardHandler) SaveTheme(c *gin.Context) {
	var req themeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.products.SetTheme(c.Request.Context(), req.Theme); err != nil {
		if errors.Is(err, domain.ErrInvalidProduct) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save theme", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}
