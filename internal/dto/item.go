package dto

import (
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateItemRequest defines the data needed to create a new catalog item.
type CreateItemRequest struct {
	Code        string          `json:"code" binding:"required"`
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	ItemType    domain.ItemType `json:"itemType" binding:"required,oneof=PRODUCT SERVICE"`
}

// UpdateItemRequest defines the data allowed for updating an item.
type UpdateItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	UnitPrice   *decimal.Decimal `json:"unitPrice"`
	IsActive    *bool            `json:"isActive"`
}

// ItemResponse defines the data returned for a catalog item.
type ItemResponse struct {
	ItemID      string          `json:"itemID"`
	Code        string          `json:"code"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	ItemType    domain.ItemType `json:"itemType"`
	IsActive    bool            `json:"isActive"`
	CreatedAt   time.Time       `json:"createdAt"`
	CreatedBy   string          `json:"createdBy"`
}

// ToItemResponse converts a domain.Item to ItemResponse DTO.
func ToItemResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ItemID:      item.ItemID,
		Code:        item.Code,
		Name:        item.Name,
		Description: item.Description,
		UnitPrice:   item.UnitPrice,
		ItemType:    item.ItemType,
		IsActive:    item.IsActive,
		CreatedAt:   item.CreatedAt,
		CreatedBy:   item.CreatedBy,
	}
}

// ToListItemResponse converts a slice of domain.Item to a slice of ItemResponse DTOs
func ToListItemResponse(items []domain.Item) []ItemResponse {
	res := make([]ItemResponse, len(items))
	for i := range items {
		res[i] = ToItemResponse(&items[i])
	}
	return res
}

// ListItemsResponse wraps the list of items.
type ListItemsResponse struct {
	Items []ItemResponse `json:"items"`
}
