package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/profitlens/backend-go/internal/domain"
	"github.com/profitlens/backend-go/internal/insight"
	"github.com/profitlens/backend-go/internal/service"
)

type ProductHandler struct {
	products  *service.ProductService
	dashboard *service.DashboardService
	insights  *insight.Service
}

func NewProductHandler(products *service.ProductService, dashboard *service.DashboardService, insights *insight.Service) *ProductHandler {
	return &ProductHandler{products: products, dashboard: dashboard, insights: insights}
}

// parseFilter reads the shared search/category query params.
func parseFilter(c *gin.Context) domain.ProductFilter {
	filter := domain.ProductFilter{
		Search: strings.TrimSpace(c.Query("search")),
	}
	if category := strings.TrimSpace(c.Query("category")); category != "" {
		filter.Category = &category
	}
	return filter
}

// List returns the filtered calculated product view.
func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.dashboard.Products(c.Request.Context(), parseFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products", "details": err.Error()})
		return
	}
	if products == nil {
		products = make([]domain.CalculatedProduct, 0)
	}

	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.products.Create(c.Request.Context(), in)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

func (h *ProductHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.products.Update(c.Request.Context(), id, in)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		respondProductError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type importRequest struct {
	Text string `json:"text" binding:"required"`
}

// Import extracts products from raw pasted or uploaded text and replaces
// the current list with them. Requires a configured AI generator; the rest
// of the product surface works without one.
func (h *ProductHandler) Import(c *gin.Context) {
	if h.insights == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "AI import is not configured"})
		return
	}

	var req importRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	inputs, err := h.insights.ExtractProducts(c.Request.Context(), req.Text)
	if err != nil {
		if errors.Is(err, insight.ErrBadExtraction) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not extract products", "details": err.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "extraction failed", "details": err.Error()})
		return
	}

	products, err := h.products.Import(c.Request.Context(), inputs)
	if err != nil {
		respondProductError(c, err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// Reset restores the built-in demo catalog.
func (h *ProductHandler) Reset(c *gin.Context) {
	products, err := h.products.Reset(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to reset products", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

// Suggestions returns near-miss product names for an empty search result.
func (h *ProductHandler) Suggestions(c *gin.Context) {
	term := strings.TrimSpace(c.Query("term"))
	suggestions, err := h.dashboard.Suggestions(c.Request.Context(), term)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch suggestions", "details": err.Error()})
		return
	}
	if suggestions == nil {
		suggestions = make([]string, 0)
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func respondProductError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidProduct):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error", "details": err.Error()})
	}
}
