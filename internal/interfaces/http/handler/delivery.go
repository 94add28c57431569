package handler

import (
	"github.com/gin-gonic/gin"

	deliveryapp "github.com/courierlog/backend/internal/application/delivery"
	"github.com/courierlog/backend/internal/interfaces/http/middleware"
)

// DeliveryHandler handles delivery submission and summary endpoints
type DeliveryHandler struct {
	BaseHandler
	deliveryService *deliveryapp.DeliveryService
}

// NewDeliveryHandler creates a new DeliveryHandler
func NewDeliveryHandler(deliveryService *deliveryapp.DeliveryService) *DeliveryHandler {
	return &DeliveryHandler{deliveryService: deliveryService}
}

// ScanRequest is one scanner's count within a submitted group.
type ScanRequest struct {
	ScannerCode    string `json:"scanner_code" binding:"required"`
	DeliveredCount int    `json:"delivered_count"`
}

// GroupRequest is one batch of a day's submission. Numeric ranges are left
// to the domain constructors so their messages reach the client.
type GroupRequest struct {
	GroupCode     string        `json:"group_code" binding:"required"`
	ExpectedCount int           `json:"expected_count"`
	Scans         []ScanRequest `json:"scans" binding:"required,min=1,dive"`
}

// SubmitDeliveryRequest carries a full driver-day submission.
type SubmitDeliveryRequest struct {
	ClerkAuthID  string         `json:"clerk_auth_id" binding:"required"`
	DeliveryDate string         `json:"delivery_date" binding:"required,dateonly"`
	Groups       []GroupRequest `json:"groups" binding:"required,min=1,dive"`
}

// Submit replaces the driver's batches for the given date
func (h *DeliveryHandler) Submit(c *gin.Context) {
	var req SubmitDeliveryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err, "Missing required fields"))
		return
	}

	appReq := deliveryapp.SubmitRequest{
		ClerkAuthID:  req.ClerkAuthID,
		DeliveryDate: req.DeliveryDate,
	}
	for _, g := range req.Groups {
		group := deliveryapp.GroupInput{
			GroupCode:     g.GroupCode,
			ExpectedCount: g.ExpectedCount,
		}
		for _, s := range g.Scans {
			group.Scans = append(group.Scans, deliveryapp.ScanInput{
				ScannerCode:    s.ScannerCode,
				DeliveredCount: s.DeliveredCount,
			})
		}
		appReq.Groups = append(appReq.Groups, group)
	}

	if err := h.deliveryService.Submit(c.Request.Context(), appReq); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"success": true})
}

// Today returns the driver's submission state for the current date
func (h *DeliveryHandler) Today(c *gin.Context) {
	summary, err := h.deliveryService.TodaySummary(c.Request.Context(), c.Query("clerk_auth_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// Weekly returns the driver's deliveries for the current week
func (h *DeliveryHandler) Weekly(c *gin.Context) {
	resp, err := h.deliveryService.WeeklyDeliveries(c.Request.Context(), c.Query("clerk_user_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers all delivery routes
func (h *DeliveryHandler) RegisterRoutes(rg *gin.RouterGroup) {
	deliveries := rg.Group("/deliveries")
	{
		deliveries.POST("", h.Submit)
		deliveries.GET("/today", h.Today)
		deliveries.GET("/weekly", h.Weekly)
	}
}
