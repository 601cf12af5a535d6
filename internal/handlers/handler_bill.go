package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// billHandler handles HTTP requests related to vendor bills.
type billHandler struct {
	billService portssvc.BillSvcFacade
}

// newBillHandler creates a new billHandler.
func newBillHandler(bs portssvc.BillSvcFacade) *billHandler {
	return &billHandler{
		billService: bs,
	}
}

// registerBillRoutes registers routes related to bills within an organization.
func registerBillRoutes(rg *gin.RouterGroup, billService portssvc.BillSvcFacade) {
	h := newBillHandler(billService)

	bills := rg.Group("/bills")
	{
		bills.POST("", h.createBill)
		bills.GET("", h.listBills)
		bills.GET("/:bill_id", h.getBill)
		bills.PUT("/:bill_id", h.updateBill)
		bills.PUT("/:bill_id/status", h.updateBillStatus)
		bills.DELETE("/:bill_id", h.deleteBill)
	}
}

// createBill godoc
// @Summary Create a new bill
// @Description Creates a draft bill from a vendor. Subtotal, tax and total are derived from the items.
// @Tags bills
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param bill body dto.CreateBillRequest true "Bill details"
// @Success 201 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 409 {object} map[string]string "Bill number already exists for this vendor"
// @Failure 500 {object} map[string]string "Failed to create bill"
// @Security BearerAuth
// @Router /organizations/{org_id}/bills [post]
func (h *billHandler) createBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bill, err := h.billService.CreateBill(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "create bill")
		return
	}

	logger.Info("Bill created", slog.String("bill_id", bill.BillID), slog.String("bill_number", bill.BillNumber))
	c.JSON(http.StatusCreated, dto.ToBillResponse(bill))
}

// getBill godoc
// @Summary Get a bill by ID
// @Description Retrieves a bill with its line items.
// @Tags bills
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param bill_id path string true "Bill ID"
// @Success 200 {object} dto.BillResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 500 {object} map[string]string "Failed to retrieve bill"
// @Security BearerAuth
// @Router /organizations/{org_id}/bills/{bill_id} [get]
func (h *billHandler) getBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	billID := c.Param("bill_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bill, err := h.billService.GetBillByID(c.Request.Context(), orgID, billID, userID)
	if err != nil {
		respondWithError(c, logger, err, "retrieve bill")
		return
	}

	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// listBills godoc
// @Summary List bills
// @Description Retrieves a token-paginated list of bills, newest first. Supports status, vendor and overdue filters.
// @Tags bills
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param status query string false "Filter by status" Enums(DRAFT, SUBMITTED, APPROVED, PAID, PARTIALLY_PAID, OVERDUE, CANCELLED)
// @Param vendorID query string false "Filter by vendor"
// @Param overdue query bool false "Only bills past their due date with an open balance"
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Pagination token from previous page"
// @Success 200 {object} dto.ListBillsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Failed to list bills"
// @Security BearerAuth
// @Router /organizations/{org_id}/bills [get]
func (h *billHandler) listBills(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListBillsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListBills", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.billService.ListBills(c.Request.Context(), orgID, userID, params)
	if err != nil {
		respondWithError(c, logger, err, "list bills")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateBill godoc
// @Summary Update a bill
// @Description Updates a bill's details and items, recomputing totals. PAID and CANCELLED bills are immutable.
// @Tags bills
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param bill_id path string true "Bill ID"
// @Param bill body dto.UpdateBillRequest true "Fields to update"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 409 {object} map[string]string "Bill is immutable in its current status"
// @Failure 500 {object} map[string]string "Failed to update bill"
// @Security BearerAuth
// @Router /organizations/{org_id}/bills/{bill_id} [put]
func (h *billHandler) updateBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	billID := c.Param("bill_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBill", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bill, err := h.billService.UpdateBill(c.Request.Context(), orgID, billID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "update bill")
		return
	}

	logger.Info("Bill updated", slog.String("bill_id", billID))
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// updateBillStatus godoc
// @Summary Transition a bill's status
// @Description Moves a bill through its approval lifecycle. Submitting a draft adds the total to the vendor's outstanding balance; cancelling removes the open balance.
// @Tags bills
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param bill_id path string true "Bill ID"
// @Param status body dto.UpdateBillStatusRequest true "Target status"
// @Success 200 {object} dto.BillResponse
// @Failure 400 {object} map[string]string "Invalid transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Bill not found"
// @Failure 500 {object} map[string]string "Failed to update bill status"
// @Security BearerAuth
// @Router /organizations/{org_id}/bills/{bill_id}/status [put]
func (h *billHandler) updateBillStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	billID := c.Param("bill_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateBillStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateBillStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	bill, err := h.billService.UpdateBillStatus(c.Request.Context(), orgID, billID, req.Status, userID)
	if err != nil {
		respondWithError(c, logger, err, "update bill status")
		return
	}

	logger.Info("Bill status updated", slog.String("bill_id", billID), slog.String("status", string(req.Status)))
	c.JSON(http.StatusOK, dto.ToBillResponse(bill))
}

// deleteBill godoc
// @Summary Delete a bill
// @Description Removes a bill and its items. Only DRAFT bills can be deleted.
// @Tags bills
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param bill_id path string true "Bill ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Deletable bill not found"
// @Failure 500 {object} map[string]string "Failed to delete bill"
// @Security BearerAuth
// @Router /organizations/{org_id}/bills/{bill_id} [delete]
func (h *billHandler) deleteBill(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	billID := c.Param("bill_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.billService.DeleteBill(c.Request.Context(), orgID, billID, userID); err != nil {
		respondWithError(c, logger, err, "delete bill")
		return
	}

	logger.Info("Bill deleted", slog.String("bill_id", billID))
	c.Status(http.StatusNoContent)
}
