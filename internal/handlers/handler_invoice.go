package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// invoiceHandler handles HTTP requests related to customer invoices.
type invoiceHandler struct {
	invoiceService portssvc.InvoiceSvcFacade
}

// newInvoiceHandler creates a new invoiceHandler.
func newInvoiceHandler(is portssvc.InvoiceSvcFacade) *invoiceHandler {
	return &invoiceHandler{
		invoiceService: is,
	}
}

// registerInvoiceRoutes registers routes related to invoices within an
// organization.
func registerInvoiceRoutes(rg *gin.RouterGroup, invoiceService portssvc.InvoiceSvcFacade) {
	h := newInvoiceHandler(invoiceService)

	invoices := rg.Group("/invoices")
	{
		invoices.POST("", h.createInvoice)
		invoices.GET("", h.listInvoices)
		invoices.GET("/:invoice_id", h.getInvoice)
		invoices.PUT("/:invoice_id", h.updateInvoice)
		invoices.PUT("/:invoice_id/status", h.updateInvoiceStatus)
		invoices.DELETE("/:invoice_id", h.deleteInvoice)
	}
}

// createInvoice godoc
// @Summary Create a new invoice
// @Description Creates a draft invoice for a customer. Subtotal, tax and total are derived from the items.
// @Tags invoices
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param invoice body dto.CreateInvoiceRequest true "Invoice details"
// @Success 201 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 409 {object} map[string]string "Invoice number already exists"
// @Failure 500 {object} map[string]string "Failed to create invoice"
// @Security BearerAuth
// @Router /organizations/{org_id}/invoices [post]
func (h *invoiceHandler) createInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.CreateInvoice(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "create invoice")
		return
	}

	logger.Info("Invoice created", slog.String("invoice_id", invoice.InvoiceID), slog.String("invoice_number", invoice.InvoiceNumber))
	c.JSON(http.StatusCreated, dto.ToInvoiceResponse(invoice))
}

// getInvoice godoc
// @Summary Get an invoice by ID
// @Description Retrieves an invoice with its line items.
// @Tags invoices
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to retrieve invoice"
// @Security BearerAuth
// @Router /organizations/{org_id}/invoices/{invoice_id} [get]
func (h *invoiceHandler) getInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	invoiceID := c.Param("invoice_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	invoice, err := h.invoiceService.GetInvoiceByID(c.Request.Context(), orgID, invoiceID, userID)
	if err != nil {
		respondWithError(c, logger, err, "retrieve invoice")
		return
	}

	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// listInvoices godoc
// @Summary List invoices
// @Description Retrieves a token-paginated list of invoices, newest first. Supports status, customer and overdue filters.
// @Tags invoices
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param status query string false "Filter by status" Enums(DRAFT, SENT, PARTIALLY_PAID, PAID, OVERDUE, VOID, CANCELLED)
// @Param customerID query string false "Filter by customer"
// @Param overdue query bool false "Only invoices past their due date with an open balance"
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Pagination token from previous page"
// @Success 200 {object} dto.ListInvoicesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Failed to list invoices"
// @Security BearerAuth
// @Router /organizations/{org_id}/invoices [get]
func (h *invoiceHandler) listInvoices(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListInvoicesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListInvoices", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.invoiceService.ListInvoices(c.Request.Context(), orgID, userID, params)
	if err != nil {
		respondWithError(c, logger, err, "list invoices")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updateInvoice godoc
// @Summary Update an invoice
// @Description Updates an invoice's details and items, recomputing totals. PAID, VOID and CANCELLED invoices are immutable.
// @Tags invoices
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param invoice_id path string true "Invoice ID"
// @Param invoice body dto.UpdateInvoiceRequest true "Fields to update"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 409 {object} map[string]string "Invoice is immutable in its current status"
// @Failure 500 {object} map[string]string "Failed to update invoice"
// @Security BearerAuth
// @Router /organizations/{org_id}/invoices/{invoice_id} [put]
func (h *invoiceHandler) updateInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	invoiceID := c.Param("invoice_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoice", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoice(c.Request.Context(), orgID, invoiceID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "update invoice")
		return
	}

	logger.Info("Invoice updated", slog.String("invoice_id", invoiceID))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// updateInvoiceStatus godoc
// @Summary Transition an invoice's status
// @Description Moves an invoice through its lifecycle. Sending a draft adds the total to the customer's outstanding balance; voiding or cancelling removes the open balance.
// @Tags invoices
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param invoice_id path string true "Invoice ID"
// @Param status body dto.UpdateInvoiceStatusRequest true "Target status"
// @Success 200 {object} dto.InvoiceResponse
// @Failure 400 {object} map[string]string "Invalid transition"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Invoice not found"
// @Failure 500 {object} map[string]string "Failed to update invoice status"
// @Security BearerAuth
// @Router /organizations/{org_id}/invoices/{invoice_id}/status [put]
func (h *invoiceHandler) updateInvoiceStatus(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	invoiceID := c.Param("invoice_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateInvoiceStatus", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	invoice, err := h.invoiceService.UpdateInvoiceStatus(c.Request.Context(), orgID, invoiceID, req.Status, userID)
	if err != nil {
		respondWithError(c, logger, err, "update invoice status")
		return
	}

	logger.Info("Invoice status updated", slog.String("invoice_id", invoiceID), slog.String("status", string(req.Status)))
	c.JSON(http.StatusOK, dto.ToInvoiceResponse(invoice))
}

// deleteInvoice godoc
// @Summary Delete an invoice
// @Description Removes an invoice and its items. Only DRAFT and CANCELLED invoices can be deleted.
// @Tags invoices
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param invoice_id path string true "Invoice ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Deletable invoice not found"
// @Failure 500 {object} map[string]string "Failed to delete invoice"
// @Security BearerAuth
// @Router /organizations/{org_id}/invoices/{invoice_id} [delete]
func (h *invoiceHandler) deleteInvoice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	invoiceID := c.Param("invoice_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), orgID, invoiceID, userID); err != nil {
		respondWithError(c, logger, err, "delete invoice")
		return
	}

	logger.Info("Invoice deleted", slog.String("invoice_id", invoiceID))
	c.Status(http.StatusNoContent)
}
