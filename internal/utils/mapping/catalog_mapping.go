package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelItem converts a domain Item to a model Item
func ToModelItem(d domain.Item) models.Item {
	return models.Item{
		ItemID:         d.ItemID,
		OrganizationID: d.OrganizationID,
		Code:           d.Code,
		Name:           d.Name,
		Description:    d.Description,
		UnitPrice:      d.UnitPrice,
		ItemType:       string(d.ItemType),
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainItem converts a model Item to a domain Item
func ToDomainItem(m models.Item) domain.Item {
	return domain.Item{
		ItemID:         m.ItemID,
		OrganizationID: m.OrganizationID,
		Code:           m.Code,
		Name:           m.Name,
		Description:    m.Description,
		UnitPrice:      m.UnitPrice,
		ItemType:       domain.ItemType(m.ItemType),
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainItemSlice converts a slice of model Items to domain Items
func ToDomainItemSlice(ms []models.Item) []domain.Item {
	ds := make([]domain.Item, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainItem(m)
	}
	return ds
}

// ToModelTax converts a domain Tax to a model Tax
func ToModelTax(d domain.Tax) models.Tax {
	return models.Tax{
		TaxID:          d.TaxID,
		OrganizationID: d.OrganizationID,
		Code:           d.Code,
		Name:           d.Name,
		Rate:           d.Rate,
		IsActive:       d.IsActive,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTax converts a model Tax to a domain Tax
func ToDomainTax(m models.Tax) domain.Tax {
	return domain.Tax{
		TaxID:          m.TaxID,
		OrganizationID: m.OrganizationID,
		Code:           m.Code,
		Name:           m.Name,
		Rate:           m.Rate,
		IsActive:       m.IsActive,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTaxSlice converts a slice of model Taxes to domain Taxes
func ToDomainTaxSlice(ms []models.Tax) []domain.Tax {
	ds := make([]domain.Tax, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTax(m)
	}
	return ds
}
