package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelCustomer converts a domain Customer to a model Customer
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:         d.CustomerID,
		OrganizationID:     d.OrganizationID,
		Name:               d.Name,
		Email:              d.Email,
		Phone:              d.Phone,
		BillingAddress:     d.BillingAddress,
		ShippingAddress:    d.ShippingAddress,
		TaxNumber:          d.TaxNumber,
		OutstandingBalance: d.OutstandingBalance,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCustomer converts a model Customer to a domain Customer
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:         m.CustomerID,
		OrganizationID:     m.OrganizationID,
		Name:               m.Name,
		Email:              m.Email,
		Phone:              m.Phone,
		BillingAddress:     m.BillingAddress,
		ShippingAddress:    m.ShippingAddress,
		TaxNumber:          m.TaxNumber,
		OutstandingBalance: m.OutstandingBalance,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCustomerSlice converts a slice of model Customers to domain Customers
func ToDomainCustomerSlice(ms []models.Customer) []domain.Customer {
	ds := make([]domain.Customer, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCustomer(m)
	}
	return ds
}

// ToModelVendor converts a domain Vendor to a model Vendor
func ToModelVendor(d domain.Vendor) models.Vendor {
	return models.Vendor{
		VendorID:           d.VendorID,
		OrganizationID:     d.OrganizationID,
		Name:               d.Name,
		Email:              d.Email,
		Phone:              d.Phone,
		Address:            d.Address,
		TaxNumber:          d.TaxNumber,
		OutstandingBalance: d.OutstandingBalance,
		IsActive:           d.IsActive,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainVendor converts a model Vendor to a domain Vendor
func ToDomainVendor(m models.Vendor) domain.Vendor {
	return domain.Vendor{
		VendorID:           m.VendorID,
		OrganizationID:     m.OrganizationID,
		Name:               m.Name,
		Email:              m.Email,
		Phone:              m.Phone,
		Address:            m.Address,
		TaxNumber:          m.TaxNumber,
		OutstandingBalance: m.OutstandingBalance,
		IsActive:           m.IsActive,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainVendorSlice converts a slice of model Vendors to domain Vendors
func ToDomainVendorSlice(ms []models.Vendor) []domain.Vendor {
	ds := make([]domain.Vendor, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainVendor(m)
	}
	return ds
}
