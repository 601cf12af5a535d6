package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// vendorHandler handles HTTP requests related to vendors.
type vendorHandler struct {
	vendorService portssvc.VendorSvcFacade
}

func newVendorHandler(vs portssvc.VendorSvcFacade) *vendorHandler {
	return &vendorHandler{
		vendorService: vs,
	}
}

// registerVendorRoutes registers routes related to vendors within an
// organization.
func registerVendorRoutes(rg *gin.RouterGroup, vendorService portssvc.VendorSvcFacade) {
	h := newVendorHandler(vendorService)

	vendors := rg.Group("/vendors")
	{
		vendors.POST("", h.createVendor)
		vendors.GET("", h.listVendors)
		vendors.GET("/:vendor_id", h.getVendor)
		vendors.PUT("/:vendor_id", h.updateVendor)
		vendors.DELETE("/:vendor_id", h.deleteVendor)
	}
}

// createVendor godoc
// @Summary Create a new vendor
// @Description Creates a new vendor in the organization.
// @Tags vendors
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param vendor body dto.CreateVendorRequest true "Vendor details"
// @Success 201 {object} dto.VendorResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 409 {object} map[string]string "Email already in use"
// @Failure 500 {object} map[string]string "Failed to create vendor"
// @Security BearerAuth
// @Router /organizations/{org_id}/vendors [post]
func (h *vendorHandler) createVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateVendor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vendor, err := h.vendorService.CreateVendor(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "create vendor")
		return
	}

	logger.Info("Vendor created", slog.String("vendor_id", vendor.VendorID))
	c.JSON(http.StatusCreated, dto.ToVendorResponse(vendor))
}

// getVendor godoc
// @Summary Get a vendor by ID
// @Description Retrieves details for a specific vendor, including the outstanding balance.
// @Tags vendors
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param vendor_id path string true "Vendor ID"
// @Success 200 {object} dto.VendorResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Vendor not found"
// @Failure 500 {object} map[string]string "Failed to retrieve vendor"
// @Security BearerAuth
// @Router /organizations/{org_id}/vendors/{vendor_id} [get]
func (h *vendorHandler) getVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	vendorID := c.Param("vendor_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	vendor, err := h.vendorService.GetVendorByID(c.Request.Context(), orgID, vendorID, userID)
	if err != nil {
		respondWithError(c, logger, err, "retrieve vendor")
		return
	}

	c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
}

// listVendors godoc
// @Summary List vendors
// @Description Retrieves a paginated list of active vendors ordered by name.
// @Tags vendors
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListVendorsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Failed to list vendors"
// @Security BearerAuth
// @Router /organizations/{org_id}/vendors [get]
func (h *vendorHandler) listVendors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params struct {
		Limit  int `form:"limit,default=20"`
		Offset int `form:"offset,default=0"`
	}
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	vendors, err := h.vendorService.ListVendors(c.Request.Context(), orgID, userID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, logger, err, "list vendors")
		return
	}

	c.JSON(http.StatusOK, dto.ListVendorsResponse{Vendors: dto.ToListVendorResponse(vendors)})
}

// updateVendor godoc
// @Summary Update a vendor
// @Description Updates a vendor's details. The outstanding balance is system-maintained and cannot be set directly.
// @Tags vendors
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param vendor_id path string true "Vendor ID"
// @Param vendor body dto.UpdateVendorRequest true "Fields to update"
// @Success 200 {object} dto.VendorResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Vendor not found"
// @Failure 500 {object} map[string]string "Failed to update vendor"
// @Security BearerAuth
// @Router /organizations/{org_id}/vendors/{vendor_id} [put]
func (h *vendorHandler) updateVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	vendorID := c.Param("vendor_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateVendor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	vendor, err := h.vendorService.UpdateVendor(c.Request.Context(), orgID, vendorID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "update vendor")
		return
	}

	logger.Info("Vendor updated", slog.String("vendor_id", vendorID))
	c.JSON(http.StatusOK, dto.ToVendorResponse(vendor))
}

// deleteVendor godoc
// @Summary Deactivate a vendor
// @Description Deactivates a vendor. Vendors with an outstanding balance are refused.
// @Tags vendors
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param vendor_id path string true "Vendor ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Vendor not found"
// @Failure 409 {object} map[string]string "Vendor has an outstanding balance"
// @Failure 500 {object} map[string]string "Failed to delete vendor"
// @Security BearerAuth
// @Router /organizations/{org_id}/vendors/{vendor_id} [delete]
func (h *vendorHandler) deleteVendor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	vendorID := c.Param("vendor_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.vendorService.DeleteVendor(c.Request.Context(), orgID, vendorID, userID); err != nil {
		respondWithError(c, logger, err, "delete vendor")
		return
	}

	logger.Info("Vendor deactivated", slog.String("vendor_id", vendorID))
	c.Status(http.StatusNoContent)
}
