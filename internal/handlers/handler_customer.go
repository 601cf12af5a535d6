package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// customerHandler handles HTTP requests related to customers.
type customerHandler struct {
	customerService portssvc.CustomerSvcFacade
}

func newCustomerHandler(cs portssvc.CustomerSvcFacade) *customerHandler {
	return &customerHandler{
		customerService: cs,
	}
}

// registerCustomerRoutes registers routes related to customers within an
// organization.
func registerCustomerRoutes(rg *gin.RouterGroup, customerService portssvc.CustomerSvcFacade) {
	h := newCustomerHandler(customerService)

	customers := rg.Group("/customers")
	{
		customers.POST("", h.createCustomer)
		customers.GET("", h.listCustomers)
		customers.GET("/:customer_id", h.getCustomer)
		customers.PUT("/:customer_id", h.updateCustomer)
		customers.DELETE("/:customer_id", h.deleteCustomer)
	}
}

// createCustomer godoc
// @Summary Create a new customer
// @Description Creates a new customer in the organization.
// @Tags customers
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param customer body dto.CreateCustomerRequest true "Customer details"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 409 {object} map[string]string "Email already in use"
// @Failure 500 {object} map[string]string "Failed to create customer"
// @Security BearerAuth
// @Router /organizations/{org_id}/customers [post]
func (h *customerHandler) createCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "create customer")
		return
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	c.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// getCustomer godoc
// @Summary Get a customer by ID
// @Description Retrieves details for a specific customer, including the outstanding balance.
// @Tags customers
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param customer_id path string true "Customer ID"
// @Success 200 {object} dto.CustomerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to retrieve customer"
// @Security BearerAuth
// @Router /organizations/{org_id}/customers/{customer_id} [get]
func (h *customerHandler) getCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	customerID := c.Param("customer_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	customer, err := h.customerService.GetCustomerByID(c.Request.Context(), orgID, customerID, userID)
	if err != nil {
		respondWithError(c, logger, err, "retrieve customer")
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// listCustomers godoc
// @Summary List customers
// @Description Retrieves a paginated list of active customers ordered by name.
// @Tags customers
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListCustomersResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Failed to list customers"
// @Security BearerAuth
// @Router /organizations/{org_id}/customers [get]
func (h *customerHandler) listCustomers(c *gin.Context) {
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

	customers, err := h.customerService.ListCustomers(c.Request.Context(), orgID, userID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, logger, err, "list customers")
		return
	}

	c.JSON(http.StatusOK, dto.ListCustomersResponse{Customers: dto.ToListCustomerResponse(customers)})
}

// updateCustomer godoc
// @Summary Update a customer
// @Description Updates a customer's details. The outstanding balance is system-maintained and cannot be set directly.
// @Tags customers
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param customer_id path string true "Customer ID"
// @Param customer body dto.UpdateCustomerRequest true "Fields to update"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 500 {object} map[string]string "Failed to update customer"
// @Security BearerAuth
// @Router /organizations/{org_id}/customers/{customer_id} [put]
func (h *customerHandler) updateCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	customerID := c.Param("customer_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateCustomer", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	customer, err := h.customerService.UpdateCustomer(c.Request.Context(), orgID, customerID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "update customer")
		return
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	c.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// deleteCustomer godoc
// @Summary Deactivate a customer
// @Description Deactivates a customer. Customers with an outstanding balance are refused.
// @Tags customers
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param customer_id path string true "Customer ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Customer not found"
// @Failure 409 {object} map[string]string "Customer has an outstanding balance"
// @Failure 500 {object} map[string]string "Failed to delete customer"
// @Security BearerAuth
// @Router /organizations/{org_id}/customers/{customer_id} [delete]
func (h *customerHandler) deleteCustomer(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	customerID := c.Param("customer_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.customerService.DeleteCustomer(c.Request.Context(), orgID, customerID, userID); err != nil {
		respondWithError(c, logger, err, "delete customer")
		return
	}

	logger.Info("Customer deactivated", slog.String("customer_id", customerID))
	c.Status(http.StatusNoContent)
}
