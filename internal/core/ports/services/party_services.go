package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// CustomerReaderSvc defines read operations for customer data
type CustomerReaderSvc interface {
	// GetCustomerByID retrieves a specific customer by its ID.
	GetCustomerByID(ctx context.Context, organizationID string, customerID string, userID string) (*domain.Customer, error)

	// ListCustomers retrieves a paginated list of customers.
	ListCustomers(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Customer, error)
}

// CustomerWriterSvc defines write operations for customer data
type CustomerWriterSvc interface {
	// CreateCustomer persists a new customer.
	CreateCustomer(ctx context.Context, organizationID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error)

	// UpdateCustomer updates an existing customer's details.
	UpdateCustomer(ctx context.Context, organizationID string, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error)

	// DeleteCustomer deactivates a customer. Customers with an outstanding
	// balance are refused.
	DeleteCustomer(ctx context.Context, organizationID string, customerID string, userID string) error
}

// CustomerSvcFacade combines all customer-related service interfaces
type CustomerSvcFacade interface {
	CustomerReaderSvc
	CustomerWriterSvc
}

// VendorReaderSvc defines read operations for vendor data
type VendorReaderSvc interface {
	// GetVendorByID retrieves a specific vendor by its ID.
	GetVendorByID(ctx context.Context, organizationID string, vendorID string, userID string) (*domain.Vendor, error)

	// ListVendors retrieves a paginated list of vendors.
	ListVendors(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Vendor, error)
}

// VendorWriterSvc defines write operations for vendor data
type VendorWriterSvc interface {
	// CreateVendor persists a new vendor.
	CreateVendor(ctx context.Context, organizationID string, req dto.CreateVendorRequest, userID string) (*domain.Vendor, error)

	// UpdateVendor updates an existing vendor's details.
	UpdateVendor(ctx context.Context, organizationID string, vendorID string, req dto.UpdateVendorRequest, userID string) (*domain.Vendor, error)

	// DeleteVendor deactivates a vendor. Vendors with an outstanding balance
	// are refused.
	DeleteVendor(ctx context.Context, organizationID string, vendorID string, userID string) error
}

// VendorSvcFacade combines all vendor-related service interfaces
type VendorSvcFacade interface {
	VendorReaderSvc
	VendorWriterSvc
}
