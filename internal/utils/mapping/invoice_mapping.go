package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:          d.InvoiceID,
		OrganizationID:     d.OrganizationID,
		CustomerID:         d.CustomerID,
		InvoiceNumber:      d.InvoiceNumber,
		InvoiceDate:        d.InvoiceDate,
		DueDate:            d.DueDate,
		Status:             models.InvoiceStatus(d.Status),
		Subtotal:           d.Subtotal,
		TaxAmount:          d.TaxAmount,
		TotalAmount:        d.TotalAmount,
		PaidAmount:         d.PaidAmount,
		Balance:            d.Balance,
		Notes:              d.Notes,
		TermsAndConditions: d.TermsAndConditions,
		BillingAddress:     d.BillingAddress,
		ShippingAddress:    d.ShippingAddress,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:          m.InvoiceID,
		OrganizationID:     m.OrganizationID,
		CustomerID:         m.CustomerID,
		InvoiceNumber:      m.InvoiceNumber,
		InvoiceDate:        m.InvoiceDate,
		DueDate:            m.DueDate,
		Status:             domain.InvoiceStatus(m.Status),
		Subtotal:           m.Subtotal,
		TaxAmount:          m.TaxAmount,
		TotalAmount:        m.TotalAmount,
		PaidAmount:         m.PaidAmount,
		Balance:            m.Balance,
		Notes:              m.Notes,
		TermsAndConditions: m.TermsAndConditions,
		BillingAddress:     m.BillingAddress,
		ShippingAddress:    m.ShippingAddress,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelInvoiceItem converts a domain InvoiceItem to a model InvoiceItem
func ToModelInvoiceItem(d domain.InvoiceItem) models.InvoiceItem {
	return models.InvoiceItem{
		InvoiceItemID: d.InvoiceItemID,
		InvoiceID:     d.InvoiceID,
		ItemID:        d.ItemID,
		Description:   d.Description,
		Quantity:      d.Quantity,
		UnitPrice:     d.UnitPrice,
		Discount:      d.Discount,
		TaxRate:       d.TaxRate,
		Amount:        d.Amount,
		LineOrder:     d.LineOrder,
	}
}

// ToDomainInvoiceItem converts a model InvoiceItem to a domain InvoiceItem
func ToDomainInvoiceItem(m models.InvoiceItem) domain.InvoiceItem {
	return domain.InvoiceItem{
		InvoiceItemID: m.InvoiceItemID,
		InvoiceID:     m.InvoiceID,
		ItemID:        m.ItemID,
		Description:   m.Description,
		Quantity:      m.Quantity,
		UnitPrice:     m.UnitPrice,
		Discount:      m.Discount,
		TaxRate:       m.TaxRate,
		Amount:        m.Amount,
		LineOrder:     m.LineOrder,
	}
}

// ToDomainInvoiceItemSlice converts a slice of model InvoiceItems to domain InvoiceItems
func ToDomainInvoiceItemSlice(ms []models.InvoiceItem) []domain.InvoiceItem {
	ds := make([]domain.InvoiceItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInvoiceItem(m)
	}
	return ds
}
