package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests related to payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{
		paymentService: ps,
	}
}

// registerPaymentRoutes registers routes related to payments within an
// organization.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)

	payments := rg.Group("/payments")
	{
		payments.POST("", h.createPayment)
		payments.GET("", h.listPayments)
		payments.GET("/:payment_id", h.getPayment)
		payments.PUT("/:payment_id", h.updatePayment)
		payments.DELETE("/:payment_id", h.deletePayment)
	}
}

// createPayment godoc
// @Summary Record a payment
// @Description Records a payment and reconciles the linked invoice or bill, the party's outstanding balance and the funding account atomically. Overpaying a document is rejected.
// @Tags payments
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param payment body dto.CreatePaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input or link mismatch"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 409 {object} map[string]string "Payment exceeds the document's open balance"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Security BearerAuth
// @Router /organizations/{org_id}/payments [post]
func (h *paymentHandler) createPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.CreatePayment(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("payment_id", payment.PaymentID), slog.String("payment_number", payment.PaymentNumber))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment))
}

// getPayment godoc
// @Summary Get a payment by ID
// @Description Retrieves details for a specific payment.
// @Tags payments
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param payment_id path string true "Payment ID"
// @Success 200 {object} dto.PaymentResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to retrieve payment"
// @Security BearerAuth
// @Router /organizations/{org_id}/payments/{payment_id} [get]
func (h *paymentHandler) getPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	paymentID := c.Param("payment_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	payment, err := h.paymentService.GetPaymentByID(c.Request.Context(), orgID, paymentID, userID)
	if err != nil {
		respondWithError(c, logger, err, "retrieve payment")
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// listPayments godoc
// @Summary List payments
// @Description Retrieves a token-paginated list of payments, newest first.
// @Tags payments
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param paymentType query string false "Filter by direction" Enums(PAYMENT_RECEIVED, PAYMENT_MADE)
// @Param limit query int false "Limit number of results" default(20)
// @Param nextToken query string false "Pagination token from previous page"
// @Success 200 {object} dto.ListPaymentsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Failed to list payments"
// @Security BearerAuth
// @Router /organizations/{org_id}/payments [get]
func (h *paymentHandler) listPayments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var params dto.ListPaymentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query params for ListPayments", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.paymentService.ListPayments(c.Request.Context(), orgID, userID, params)
	if err != nil {
		respondWithError(c, logger, err, "list payments")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// updatePayment godoc
// @Summary Update a payment's annotations
// @Description Updates a payment's method, reference number and notes. Amount and document links are immutable; delete and re-record to correct them.
// @Tags payments
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param payment_id path string true "Payment ID"
// @Param payment body dto.UpdatePaymentRequest true "Fields to update"
// @Success 200 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to update payment"
// @Security BearerAuth
// @Router /organizations/{org_id}/payments/{payment_id} [put]
func (h *paymentHandler) updatePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	paymentID := c.Param("payment_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdatePayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, err := h.paymentService.UpdatePayment(c.Request.Context(), orgID, paymentID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "update payment")
		return
	}

	logger.Info("Payment updated", slog.String("payment_id", paymentID))
	c.JSON(http.StatusOK, dto.ToPaymentResponse(payment))
}

// deletePayment godoc
// @Summary Delete a payment
// @Description Removes a payment and reverses its reconciliation: the linked document's paid amount, the party's outstanding balance and the funding account balance are all restored.
// @Tags payments
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param payment_id path string true "Payment ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 500 {object} map[string]string "Failed to delete payment"
// @Security BearerAuth
// @Router /organizations/{org_id}/payments/{payment_id} [delete]
func (h *paymentHandler) deletePayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	paymentID := c.Param("payment_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.paymentService.DeletePayment(c.Request.Context(), orgID, paymentID, userID); err != nil {
		respondWithError(c, logger, err, "delete payment")
		return
	}

	logger.Info("Payment deleted and reconciliation reversed", slog.String("payment_id", paymentID))
	c.Status(http.StatusNoContent)
}
