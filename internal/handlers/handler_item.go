package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

// itemHandler handles HTTP requests related to catalog items.
type itemHandler struct {
	itemService portssvc.ItemSvcFacade
}

func newItemHandler(is portssvc.ItemSvcFacade) *itemHandler {
	return &itemHandler{
		itemService: is,
	}
}

// registerItemRoutes registers routes related to catalog items within an
// organization.
func registerItemRoutes(rg *gin.RouterGroup, itemService portssvc.ItemSvcFacade) {
	h := newItemHandler(itemService)

	items := rg.Group("/items")
	{
		items.POST("", h.createItem)
		items.GET("", h.listItems)
		items.GET("/:item_id", h.getItem)
		items.PUT("/:item_id", h.updateItem)
		items.DELETE("/:item_id", h.deleteItem)
	}
}

// createItem godoc
// @Summary Create a new catalog item
// @Description Creates a new product or service in the organization's catalog.
// @Tags items
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param item body dto.CreateItemRequest true "Item details"
// @Success 201 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 409 {object} map[string]string "Item code already exists"
// @Failure 500 {object} map[string]string "Failed to create item"
// @Security BearerAuth
// @Router /organizations/{org_id}/items [post]
func (h *itemHandler) createItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.itemService.CreateItem(c.Request.Context(), orgID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "create item")
		return
	}

	logger.Info("Item created", slog.String("item_id", item.ItemID), slog.String("code", item.Code))
	c.JSON(http.StatusCreated, dto.ToItemResponse(item))
}

// getItem godoc
// @Summary Get a catalog item by ID
// @Description Retrieves details for a specific catalog item.
// @Tags items
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param item_id path string true "Item ID"
// @Success 200 {object} dto.ItemResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to retrieve item"
// @Security BearerAuth
// @Router /organizations/{org_id}/items/{item_id} [get]
func (h *itemHandler) getItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	itemID := c.Param("item_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.itemService.GetItemByID(c.Request.Context(), orgID, itemID, userID)
	if err != nil {
		respondWithError(c, logger, err, "retrieve item")
		return
	}

	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// listItems godoc
// @Summary List catalog items
// @Description Retrieves a paginated list of active catalog items ordered by code.
// @Tags items
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param limit query int false "Limit number of results" default(20)
// @Param offset query int false "Offset for pagination" default(0)
// @Success 200 {object} dto.ListItemsResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Not a member"
// @Failure 500 {object} map[string]string "Failed to list items"
// @Security BearerAuth
// @Router /organizations/{org_id}/items [get]
func (h *itemHandler) listItems(c *gin.Context) {
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

	items, err := h.itemService.ListItems(c.Request.Context(), orgID, userID, params.Limit, params.Offset)
	if err != nil {
		respondWithError(c, logger, err, "list items")
		return
	}

	c.JSON(http.StatusOK, dto.ListItemsResponse{Items: dto.ToListItemResponse(items)})
}

// updateItem godoc
// @Summary Update a catalog item
// @Description Updates an item's details. Code and type are immutable.
// @Tags items
// @Accept json
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param item_id path string true "Item ID"
// @Param item body dto.UpdateItemRequest true "Fields to update"
// @Success 200 {object} dto.ItemResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to update item"
// @Security BearerAuth
// @Router /organizations/{org_id}/items/{item_id} [put]
func (h *itemHandler) updateItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	itemID := c.Param("item_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	item, err := h.itemService.UpdateItem(c.Request.Context(), orgID, itemID, req, userID)
	if err != nil {
		respondWithError(c, logger, err, "update item")
		return
	}

	logger.Info("Item updated", slog.String("item_id", itemID))
	c.JSON(http.StatusOK, dto.ToItemResponse(item))
}

// deleteItem godoc
// @Summary Deactivate a catalog item
// @Description Deactivates an item so it can no longer be added to new documents. Existing document lines keep their snapshot of the item data.
// @Tags items
// @Produce json
// @Param org_id path string true "Organization ID"
// @Param item_id path string true "Item ID"
// @Success 204 "No Content"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 403 {object} map[string]string "Insufficient role"
// @Failure 404 {object} map[string]string "Item not found"
// @Failure 500 {object} map[string]string "Failed to delete item"
// @Security BearerAuth
// @Router /organizations/{org_id}/items/{item_id} [delete]
func (h *itemHandler) deleteItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	orgID := c.Param("org_id")
	itemID := c.Param("item_id")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.itemService.DeleteItem(c.Request.Context(), orgID, itemID, userID); err != nil {
		respondWithError(c, logger, err, "delete item")
		return
	}

	logger.Info("Item deactivated", slog.String("item_id", itemID))
	c.Status(http.StatusNoContent)
}
