package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// CustomerReader defines read operations for customer data
type CustomerReader interface {
	// FindCustomerByID retrieves a specific customer by its unique identifier.
	FindCustomerByID(ctx context.Context, organizationID string, customerID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers for an organization.
	ListCustomers(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Customer, error)
}

// CustomerWriter defines write operations for customer data
type CustomerWriter interface {
	// SaveCustomer persists a new customer.
	SaveCustomer(ctx context.Context, customer domain.Customer) error

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeactivateCustomer marks a customer as inactive.
	DeactivateCustomer(ctx context.Context, organizationID string, customerID string, userID string, now time.Time) error
}

// CustomerRepositoryFacade combines all customer-related repository interfaces
type CustomerRepositoryFacade interface {
	CustomerReader
	CustomerWriter
}

// VendorReader defines read operations for vendor data
type VendorReader interface {
	// FindVendorByID retrieves a specific vendor by its unique identifier.
	FindVendorByID(ctx context.Context, organizationID string, vendorID string) (*domain.Vendor, error)

	// ListVendors retrieves a paginated list of vendors for an organization.
	ListVendors(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Vendor, error)
}

// VendorWriter defines write operations for vendor data
type VendorWriter interface {
	// SaveVendor persists a new vendor.
	SaveVendor(ctx context.Context, vendor domain.Vendor) error

	// UpdateVendor updates an existing vendor's details.
	UpdateVendor(ctx context.Context, vendor domain.Vendor) error

	// DeactivateVendor marks a vendor as inactive.
	DeactivateVendor(ctx context.Context, organizationID string, vendorID string, userID string, now time.Time) error
}

// VendorRepositoryFacade combines all vendor-related repository interfaces
type VendorRepositoryFacade interface {
	VendorReader
	VendorWriter
}
