package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	return models.Payment{
		PaymentID:       d.PaymentID,
		OrganizationID:  d.OrganizationID,
		PaymentType:     string(d.PaymentType),
		PaymentNumber:   d.PaymentNumber,
		PaymentDate:     d.PaymentDate,
		Amount:          d.Amount,
		PaymentMethod:   string(d.PaymentMethod),
		AccountID:       d.AccountID,
		CustomerID:      d.CustomerID,
		InvoiceID:       d.InvoiceID,
		VendorID:        d.VendorID,
		BillID:          d.BillID,
		ReferenceNumber: d.ReferenceNumber,
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	return domain.Payment{
		PaymentID:       m.PaymentID,
		OrganizationID:  m.OrganizationID,
		PaymentType:     domain.PaymentType(m.PaymentType),
		PaymentNumber:   m.PaymentNumber,
		PaymentDate:     m.PaymentDate,
		Amount:          m.Amount,
		PaymentMethod:   domain.PaymentMethod(m.PaymentMethod),
		AccountID:       m.AccountID,
		CustomerID:      m.CustomerID,
		InvoiceID:       m.InvoiceID,
		VendorID:        m.VendorID,
		BillID:          m.BillID,
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPaymentSlice converts a slice of model Payments to domain Payments
func ToDomainPaymentSlice(ms []models.Payment) []domain.Payment {
	ds := make([]domain.Payment, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPayment(m)
	}
	return ds
}
