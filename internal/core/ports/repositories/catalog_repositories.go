package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// ItemReader defines read operations for catalog item data
type ItemReader interface {
	// FindItemByID retrieves a specific item by its unique identifier.
	FindItemByID(ctx context.Context, organizationID string, itemID string) (*domain.Item, error)

	// FindItemsByIDs retrieves multiple items by their IDs.
	FindItemsByIDs(ctx context.Context, organizationID string, itemIDs []string) (map[string]domain.Item, error)

	// ListItems retrieves a paginated list of items for an organization.
	ListItems(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Item, error)
}

// ItemWriter defines write operations for catalog item data
type ItemWriter interface {
	// SaveItem persists a new item.
	SaveItem(ctx context.Context, item domain.Item) error

	// UpdateItem updates an existing item's details.
	UpdateItem(ctx context.Context, item domain.Item) error

	// DeactivateItem marks an item as inactive.
	DeactivateItem(ctx context.Context, organizationID string, itemID string, userID string, now time.Time) error
}

// ItemRepositoryFacade combines all item-related repository interfaces
type ItemRepositoryFacade interface {
	ItemReader
	ItemWriter
}

// TaxReader defines read operations for tax rate data
type TaxReader interface {
	// FindTaxByID retrieves a specific tax rate by its unique identifier.
	FindTaxByID(ctx context.Context, organizationID string, taxID string) (*domain.Tax, error)

	// ListTaxes retrieves a paginated list of tax rates for an organization.
	ListTaxes(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Tax, error)
}

// TaxWriter defines write operations for tax rate data
type TaxWriter interface {
	// SaveTax persists a new tax rate.
	SaveTax(ctx context.Context, tax domain.Tax) error

	// UpdateTax updates an existing tax rate's details.
	UpdateTax(ctx context.Context, tax domain.Tax) error

	// DeactivateTax marks a tax rate as inactive.
	DeactivateTax(ctx context.Context, organizationID string, taxID string, userID string, now time.Time) error
}

// TaxRepositoryFacade combines all tax-related repository interfaces
type TaxRepositoryFacade interface {
	TaxReader
	TaxWriter
}
