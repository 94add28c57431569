package handler

import (
	"github.com/gin-gonic/gin"

	fleetapp "github.com/courierlog/backend/internal/application/fleet"
	"github.com/courierlog/backend/internal/interfaces/http/middleware"
)

// DriverHandler handles driver bootstrap endpoints
type DriverHandler struct {
	BaseHandler
	driverService *fleetapp.DriverService
	roleService   *fleetapp.RoleService
}

// NewDriverHandler creates a new DriverHandler
func NewDriverHandler(driverService *fleetapp.DriverService, roleService *fleetapp.RoleService) *DriverHandler {
	return &DriverHandler{
		driverService: driverService,
		roleService:   roleService,
	}
}

// SyncDriverRequest mirrors an identity-provider user into the driver table.
type SyncDriverRequest struct {
	ClerkAuthID string `json:"clerk_auth_id" binding:"required"`
	Email       string `json:"email" binding:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
}

// EnsureRoleRequest names the identity-provider user to tag with the
// default role.
type EnsureRoleRequest struct {
	ClerkUserID string `json:"clerk_user_id" binding:"required"`
}

// Sync upserts the driver row for the authenticated identity
func (h *DriverHandler) Sync(c *gin.Context) {
	var req SyncDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err, "Missing required fields"))
		return
	}

	resp, err := h.driverService.Sync(c.Request.Context(), fleetapp.SyncDriverRequest{
		ClerkAuthID: req.ClerkAuthID,
		Email:       req.Email,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// EnsureRole assigns the default role when the user has none
func (h *DriverHandler) EnsureRole(c *gin.Context) {
	var req EnsureRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, middleware.BindingErrorMessage(err, "Missing clerk_user_id"))
		return
	}

	resp, err := h.roleService.EnsureDriverRole(c.Request.Context(), req.ClerkUserID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, resp)
}

// RegisterRoutes registers all driver routes
func (h *DriverHandler) RegisterRoutes(rg *gin.RouterGroup) {
	drivers := rg.Group("/drivers")
	{
		drivers.POST("/sync", h.Sync)
		drivers.POST("/role", h.EnsureRole)
	}
}
