package mapping

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/models"
)

// ToModelBill converts a domain Bill to a model Bill
func ToModelBill(d domain.Bill) models.Bill {
	return models.Bill{
		BillID:         d.BillID,
		OrganizationID: d.OrganizationID,
		VendorID:       d.VendorID,
		BillNumber:     d.BillNumber,
		BillDate:       d.BillDate,
		DueDate:        d.DueDate,
		Status:         models.BillStatus(d.Status),
		Subtotal:       d.Subtotal,
		TaxAmount:      d.TaxAmount,
		TotalAmount:    d.TotalAmount,
		PaidAmount:     d.PaidAmount,
		Balance:        d.Balance,
		Reference:      d.Reference,
		Notes:          d.Notes,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBill converts a model Bill to a domain Bill
func ToDomainBill(m models.Bill) domain.Bill {
	return domain.Bill{
		BillID:         m.BillID,
		OrganizationID: m.OrganizationID,
		VendorID:       m.VendorID,
		BillNumber:     m.BillNumber,
		BillDate:       m.BillDate,
		DueDate:        m.DueDate,
		Status:         domain.BillStatus(m.Status),
		Subtotal:       m.Subtotal,
		TaxAmount:      m.TaxAmount,
		TotalAmount:    m.TotalAmount,
		PaidAmount:     m.PaidAmount,
		Balance:        m.Balance,
		Reference:      m.Reference,
		Notes:          m.Notes,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBillItem converts a domain BillItem to a model BillItem
func ToModelBillItem(d domain.BillItem) models.BillItem {
	return models.BillItem{
		BillItemID:  d.BillItemID,
		BillID:      d.BillID,
		ItemID:      d.ItemID,
		Description: d.Description,
		Quantity:    d.Quantity,
		UnitPrice:   d.UnitPrice,
		Discount:    d.Discount,
		TaxRate:     d.TaxRate,
		Amount:      d.Amount,
		LineOrder:   d.LineOrder,
	}
}

// ToDomainBillItem converts a model BillItem to a domain BillItem
func ToDomainBillItem(m models.BillItem) domain.BillItem {
	return domain.BillItem{
		BillItemID:  m.BillItemID,
		BillID:      m.BillID,
		ItemID:      m.ItemID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		Discount:    m.Discount,
		TaxRate:     m.TaxRate,
		Amount:      m.Amount,
		LineOrder:   m.LineOrder,
	}
}

// ToDomainBillItemSlice converts a slice of model BillItems to domain BillItems
func ToDomainBillItemSlice(ms []models.BillItem) []domain.BillItem {
	ds := make([]domain.BillItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBillItem(m)
	}
	return ds
}
