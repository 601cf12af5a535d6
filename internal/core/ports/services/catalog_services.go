package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// ItemReaderSvc defines read operations for catalog item data
type ItemReaderSvc interface {
	// GetItemByID retrieves a specific item by its ID.
	GetItemByID(ctx context.Context, organizationID string, itemID string, userID string) (*domain.Item, error)

	// ListItems retrieves a paginated list of items.
	ListItems(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Item, error)
}

// ItemWriterSvc defines write operations for catalog item data
type ItemWriterSvc interface {
	// CreateItem persists a new item.
	CreateItem(ctx context.Context, organizationID string, req dto.CreateItemRequest, userID string) (*domain.Item, error)

	// UpdateItem updates an existing item's details.
	UpdateItem(ctx context.Context, organizationID string, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error)

	// DeleteItem deactivates an item.
	DeleteItem(ctx context.Context, organizationID string, itemID string, userID string) error
}

// ItemSvcFacade combines all item-related service interfaces
type ItemSvcFacade interface {
	ItemReaderSvc
	ItemWriterSvc
}

// TaxReaderSvc defines read operations for tax rate data
type TaxReaderSvc interface {
	// GetTaxByID retrieves a specific tax rate by its ID.
	GetTaxByID(ctx context.Context, organizationID string, taxID string, userID string) (*domain.Tax, error)

	// ListTaxes retrieves a paginated list of tax rates.
	ListTaxes(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Tax, error)
}

// TaxWriterSvc defines write operations for tax rate data
type TaxWriterSvc interface {
	// CreateTax persists a new tax rate.
	CreateTax(ctx context.Context, organizationID string, req dto.CreateTaxRequest, userID string) (*domain.Tax, error)

	// UpdateTax updates an existing tax rate's details.
	UpdateTax(ctx context.Context, organizationID string, taxID string, req dto.UpdateTaxRequest, userID string) (*domain.Tax, error)

	// DeleteTax deactivates a tax rate.
	DeleteTax(ctx context.Context, organizationID string, taxID string, userID string) error
}

// TaxSvcFacade combines all tax-related service interfaces
type TaxSvcFacade interface {
	TaxReaderSvc
	TaxWriterSvc
}
