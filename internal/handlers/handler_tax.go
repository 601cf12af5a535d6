package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taxHandler handles HTTP requests related to tax rates.
type taxHandler struct {
	taxService portssvc.TaxSvcFacade
}

func newTaxHandler(ts portssvc.TaxSvcFacade) *taxHandler {
	return &taxHandler{
		taxService: ts,
	}
}

// registerTaxRoutes registers routes related to tax rates within an
// organization.
func registerTaxRoutes(rg *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := newTaxHandler(taxService)

	taxes := rg.Group("/taxes")
	{
		taxes.POST("", h.createTax)
		taxes.GET("", h.listTaxes)
		taxes.GET("/:tax_id", h.getTax)
		taxes.PUT("/:tax_id", h.updateTax)
		taxes.DELETE("/:tax_id", h.deleteTax)
	}
}

// createTax godoc
// @Summary Create a new tax rate
// @Description Creates a new tax rate for use on invoice and bill lines.
// @Tags taxes
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param tax body dto.CreateTaxRequest true "Tax rate details"
// @Success 201 {object} dto.TaxResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 409 {object} map[string]string "Tax code already exists"
// @Failure 500 {object} map[string]string "Failed to create tax rate"
// @Security BearerAuth
// @Router /organizations/{org_id}/taxes [post]
func (h *taxHandler) createTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateTax", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tax, err := h.taxService.CreateTax(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "create tax rate")
		return
	}

	logger.Info("Tax rate created", slog.String("tax_id", tax.TaxID), slog.String("code", tax.Code))
	c.JSON(http.StatusCreated, dto.ToTaxResponse(tax))
}

// getTax godoc
// @Summary Get a tax rate by ID
// @Description Retrieves details for a specific tax rate.
// @Tags taxes
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param tax_id path string true "Tax rate ID"
// @Success 200 {object} dto.TaxResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Tax rate not found"
// @Failure 500 {object} map[string]string "Failed to retrieve tax rate"
// @Security BearerAuth
// @Router /organizations/{org_id}/taxes/{tax_id} [get]
func (h *taxHandler) getTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	taxID := c.Param("tax_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	tax, err := h.taxService.GetTaxByID(c.Request.Context(), orgID, taxID, userID)
	if err != nil {
		respondWithError(c, logger, err, "retrieve tax rate")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxResponse(tax))
}

// listTaxes godoc
// @Summary List tax rates
// @Description Retrieves a paginated list of active tax rates.
// @Tags taxes
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListTaxesResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Failed to list tax rates"
// @Security BearerAuth
// @Router /organizations/{org_id}/taxes [get]
func (h *taxHandler) listTaxes(c *gin.Context) {
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

	taxes, err := h.taxService.ListTaxes(c.Request.Context(), orgID, userID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, logger, err, "list tax rates")
		return
	}

	c.JSON(http.StatusOK, dto.ListTaxesResponse{Taxes: dto.ToListTaxResponse(taxes)})
}

// updateTax godoc
// @Summary Update a tax rate
// @Description Updates a tax rate's details. Existing document lines keep the rate that was applied at creation time.
// @Tags taxes
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param tax_id path string true "Tax rate ID"
// @Param tax body dto.UpdateTaxRequest true "Fields to update"
// @Success 200 {object} dto.TaxResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Tax rate not found"
// @Failure 500 {object} map[string]string "Failed to update tax rate"
// @Security BearerAuth
// @Router /organizations/{org_id}/taxes/{tax_id} [put]
func (h *taxHandler) updateTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	taxID := c.Param("tax_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateTax", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	tax, err := h.taxService.UpdateTax(c.Request.Context(), orgID, taxID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "update tax rate")
		return
	}

	logger.Info("Tax rate updated", slog.String("tax_id", taxID))
	c.JSON(http.StatusOK, dto.ToTaxResponse(tax))
}

// deleteTax godoc
// @Summary Deactivate a tax rate
// @Description Deactivates a tax rate so it can no longer be applied to new document lines.
// @Tags taxes
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param tax_id path string true "Tax rate ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Tax rate not found"
// @Failure 500 {object} map[string]string "Failed to delete tax rate"
// @Security BearerAuth
// @Router /organizations/{org_id}/taxes/{tax_id} [delete]
func (h *taxHandler) deleteTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	taxID := c.Param("tax_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.taxService.DeleteTax(c.Request.Context(), orgID, taxID, userID); err != nil {
		respondWithError(c, logger, err, "delete tax rate")
		return
	}

	logger.Info("Tax rate deactivated", slog.String("tax_id", taxID))
	c.Status(http.StatusNoContent)
}
