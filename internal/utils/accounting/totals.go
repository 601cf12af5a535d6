package accounting

import (
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DocumentTotals holds the derived monetary totals of an invoice or bill.
type DocumentTotals struct {
	Subtotal    decimal.Decimal
	TaxAmount   decimal.Decimal
	TotalAmount decimal.Decimal
}

// round2 rounds half away from zero to 2 decimal places. All amounts here
// are non-negative, so this is round-half-up.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// CalculateInvoiceLine computes one invoice line. The discount is a flat
// currency amount subtracted before tax.
// Returns the after-discount subtotal, the tax amount and the line total.
func CalculateInvoiceLine(quantity, unitPrice, discount, taxRate decimal.Decimal) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	afterDiscount := quantity.Mul(unitPrice).Sub(discount)
	tax := round2(afterDiscount.Mul(taxRate).Div(hundred))
	return afterDiscount, tax, afterDiscount.Add(tax)
}

// CalculateBillLine computes one bill line. Unlike invoice lines, the
// discount is a percentage of the line subtotal; tax applies to the
// discounted amount.
// Returns the after-discount subtotal, the tax amount and the line total.
func CalculateBillLine(quantity, unitPrice, discountPercent, taxRate decimal.Decimal) (decimal.Decimal, decimal.Decimal, decimal.Decimal) {
	subtotal := quantity.Mul(unitPrice)
	discount := round2(subtotal.Mul(discountPercent).Div(hundred))
	afterDiscount := subtotal.Sub(discount)
	tax := round2(afterDiscount.Mul(taxRate).Div(hundred))
	return afterDiscount, tax, afterDiscount.Add(tax)
}

// CalculateInvoiceTotals recomputes each line's Amount and returns the
// document totals. Client-submitted amounts are ignored.
func CalculateInvoiceTotals(items []domain.InvoiceItem) DocumentTotals {
	totals := DocumentTotals{Subtotal: decimal.Zero, TaxAmount: decimal.Zero, TotalAmount: decimal.Zero}
	for i := range items {
		afterDiscount, tax, total := CalculateInvoiceLine(items[i].Quantity, items[i].UnitPrice, items[i].Discount, items[i].TaxRate)
		items[i].Amount = round2(total)
		totals.Subtotal = totals.Subtotal.Add(afterDiscount)
		totals.TaxAmount = totals.TaxAmount.Add(tax)
	}
	totals.Subtotal = round2(totals.Subtotal)
	totals.TaxAmount = round2(totals.TaxAmount)
	totals.TotalAmount = totals.Subtotal.Add(totals.TaxAmount)
	return totals
}

// CalculateBillTotals recomputes each line's Amount and returns the
// document totals.
func CalculateBillTotals(items []domain.BillItem) DocumentTotals {
	totals := DocumentTotals{Subtotal: decimal.Zero, TaxAmount: decimal.Zero, TotalAmount: decimal.Zero}
	for i := range items {
		afterDiscount, tax, total := CalculateBillLine(items[i].Quantity, items[i].UnitPrice, items[i].Discount, items[i].TaxRate)
		items[i].Amount = round2(total)
		totals.Subtotal = totals.Subtotal.Add(afterDiscount)
		totals.TaxAmount = totals.TaxAmount.Add(tax)
	}
	totals.Subtotal = round2(totals.Subtotal)
	totals.TaxAmount = round2(totals.TaxAmount)
	totals.TotalAmount = totals.Subtotal.Add(totals.TaxAmount)
	return totals
}
