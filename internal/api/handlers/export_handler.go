package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/profitlens/backend-go/internal/domain"
	"github.com/profitlens/backend-go/internal/export"
	"github.com/profitlens/backend-go/internal/service"
	"github.com/profitlens/backend-go/internal/storage"
)

const presignExpiry = 15 * time.Minute

type ExportHandler struct {
	dashboard *service.DashboardService
	store     storage.ObjectStorage
}

// NewExportHandler builds the export handler. A nil store disables the
// archive endpoints; downloads always work.
func NewExportHandler(dashboard *service.DashboardService, store storage.ObjectStorage) *ExportHandler {
	return &ExportHandler{dashboard: dashboard, store: store}
}

// CSV streams the filtered view as a CSV download.
func (h *ExportHandler) CSV(c *gin.Context) {
	h.serve(c, "csv", "text/csv", export.CSV)
}

// XLSX streams the filtered view as a spreadsheet download.
func (h *ExportHandler) XLSX(c *gin.Context) {
	h.serve(c, "xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", export.XLSX)
}

func (h *ExportHandler) serve(c *gin.Context, ext, contentType string, render func([]domain.CalculatedProduct) ([]byte, error)) {
	products, err := h.dashboard.Products(c.Request.Context(), parseFilter(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products", "details": err.Error()})
		return
	}

	data, err := render(products)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render export", "details": err.Error()})
		return
	}

	filename := fmt.Sprintf("products_%s.%s", time.Now().Format("2006-01-02"), ext)

	if h.store != nil && c.Query("archive") == "true" {
		key := fmt.Sprintf("exports/%s/%s", time.Now().Format("2006/01"), filename)
		if err := h.store.UploadObject(c.Request.Context(), key, data, contentType); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("export archive upload failed")
		}
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

// Archive lists previously archived exports.
func (h *ExportHandler) Archive(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "export archive is not configured"})
		return
	}

	objects, err := h.store.ListObjects(c.Request.Context(), "exports/")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list archive", "details": err.Error()})
		return
	}
	if objects == nil {
		objects = make([]storage.ObjectInfo, 0)
	}

	c.JSON(http.StatusOK, gin.H{"exports": objects})
}

// ArchiveLink hands out a time-limited download URL for an archived export.
func (h *ExportHandler) ArchiveLink(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "export archive is not configured"})
		return
	}

	key := c.Query("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "key is required"})
		return
	}

	url, err := h.store.PresignedURL(c.Request.Context(), key, presignExpiry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create download link", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
