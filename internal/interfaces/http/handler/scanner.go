package handler

import (
	"github.com/gin-gonic/gin"

	fleetapp "github.com/courierlog/backend/internal/application/fleet"
)

// ScannerHandler handles scanner lookup endpoints
type ScannerHandler struct {
	BaseHandler
	scannerService *fleetapp.ScannerService
}

// NewScannerHandler creates a new ScannerHandler
func NewScannerHandler(scannerService *fleetapp.ScannerService) *ScannerHandler {
	return &ScannerHandler{scannerService: scannerService}
}

// Search returns active scanner codes matching the query substring
func (h *ScannerHandler) Search(c *gin.Context) {
	codes, err := h.scannerService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"scanners": codes})
}

// RegisterRoutes registers all scanner routes
func (h *ScannerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	scanners := rg.Group("/scanners")
	{
		scanners.GET("/search", h.Search)
	}
}
