package accounting_test

import (
	"testing"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculateInvoiceLine(t *testing.T) {
	tests := []struct {
		name          string
		quantity      string
		unitPrice     string
		discount      string
		taxRate       string
		wantAfterDisc string
		wantTax       string
		wantTotal     string
	}{
		{
			name:     "basic line, no discount",
			quantity: "2", unitPrice: "50", discount: "0", taxRate: "10",
			wantAfterDisc: "100", wantTax: "10", wantTotal: "110",
		},
		{
			name:     "flat discount before tax",
			quantity: "3", unitPrice: "40", discount: "20", taxRate: "10",
			wantAfterDisc: "100", wantTax: "10", wantTotal: "110",
		},
		{
			name:     "tax rounds half up",
			quantity: "1", unitPrice: "10.01", discount: "0", taxRate: "7.5",
			// 10.01 * 0.075 = 0.75075 -> 0.75
			wantAfterDisc: "10.01", wantTax: "0.75", wantTotal: "10.76",
		},
		{
			name:     "half cent rounds up",
			quantity: "1", unitPrice: "10.10", discount: "0", taxRate: "7.5",
			// 10.10 * 0.075 = 0.7575 -> 0.76
			wantAfterDisc: "10.1", wantTax: "0.76", wantTotal: "10.86",
		},
		{
			name:     "zero tax rate",
			quantity: "5", unitPrice: "9.99", discount: "4.95", taxRate: "0",
			wantAfterDisc: "45", wantTax: "0", wantTotal: "45",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			afterDisc, tax, total := accounting.CalculateInvoiceLine(dec(tt.quantity), dec(tt.unitPrice), dec(tt.discount), dec(tt.taxRate))
			assert.True(t, dec(tt.wantAfterDisc).Equal(afterDisc), "after discount: want %s, got %s", tt.wantAfterDisc, afterDisc)
			assert.True(t, dec(tt.wantTax).Equal(tax), "tax: want %s, got %s", tt.wantTax, tax)
			assert.True(t, dec(tt.wantTotal).Equal(total), "total: want %s, got %s", tt.wantTotal, total)
		})
	}
}

func TestCalculateBillLine(t *testing.T) {
	tests := []struct {
		name          string
		quantity      string
		unitPrice     string
		discountPct   string
		taxRate       string
		wantAfterDisc string
		wantTax       string
		wantTotal     string
	}{
		{
			name:     "percent discount then tax",
			quantity: "2", unitPrice: "50", discountPct: "10", taxRate: "10",
			// subtotal 100, discount 10, after 90, tax 9
			wantAfterDisc: "90", wantTax: "9", wantTotal: "99",
		},
		{
			name:     "no discount",
			quantity: "4", unitPrice: "25", discountPct: "0", taxRate: "5",
			wantAfterDisc: "100", wantTax: "5", wantTotal: "105",
		},
		{
			name:     "discount rounds half up",
			quantity: "1", unitPrice: "10.10", discountPct: "7.5",
			// 10.10 * 0.075 = 0.7575 -> 0.76
			taxRate:       "0",
			wantAfterDisc: "9.34", wantTax: "0", wantTotal: "9.34",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			afterDisc, tax, total := accounting.CalculateBillLine(dec(tt.quantity), dec(tt.unitPrice), dec(tt.discountPct), dec(tt.taxRate))
			assert.True(t, dec(tt.wantAfterDisc).Equal(afterDisc), "after discount: want %s, got %s", tt.wantAfterDisc, afterDisc)
			assert.True(t, dec(tt.wantTax).Equal(tax), "tax: want %s, got %s", tt.wantTax, tax)
			assert.True(t, dec(tt.wantTotal).Equal(total), "total: want %s, got %s", tt.wantTotal, total)
		})
	}
}

func TestCalculateInvoiceTotals(t *testing.T) {
	items := []domain.InvoiceItem{
		{Quantity: dec("2"), UnitPrice: dec("50"), Discount: dec("0"), TaxRate: dec("10")},
		{Quantity: dec("1"), UnitPrice: dec("30"), Discount: dec("5"), TaxRate: dec("10")},
	}

	totals := accounting.CalculateInvoiceTotals(items)

	// Line 1: 100 + 10 tax; Line 2: 25 + 2.50 tax.
	assert.True(t, dec("125").Equal(totals.Subtotal), "subtotal: got %s", totals.Subtotal)
	assert.True(t, dec("12.5").Equal(totals.TaxAmount), "tax: got %s", totals.TaxAmount)
	assert.True(t, dec("137.5").Equal(totals.TotalAmount), "total: got %s", totals.TotalAmount)

	assert.True(t, dec("110").Equal(items[0].Amount), "line 1 amount: got %s", items[0].Amount)
	assert.True(t, dec("27.5").Equal(items[1].Amount), "line 2 amount: got %s", items[1].Amount)
}

func TestCalculateBillTotals(t *testing.T) {
	items := []domain.BillItem{
		{Quantity: dec("2"), UnitPrice: dec("50"), Discount: dec("10"), TaxRate: dec("10")},
		{Quantity: dec("3"), UnitPrice: dec("20"), Discount: dec("0"), TaxRate: dec("5")},
	}

	totals := accounting.CalculateBillTotals(items)

	// Line 1: 100 -> 90 after 10% discount, tax 9; Line 2: 60, tax 3.
	assert.True(t, dec("150").Equal(totals.Subtotal), "subtotal: got %s", totals.Subtotal)
	assert.True(t, dec("12").Equal(totals.TaxAmount), "tax: got %s", totals.TaxAmount)
	assert.True(t, dec("162").Equal(totals.TotalAmount), "total: got %s", totals.TotalAmount)

	assert.True(t, dec("99").Equal(items[0].Amount), "line 1 amount: got %s", items[0].Amount)
	assert.True(t, dec("63").Equal(items[1].Amount), "line 2 amount: got %s", items[1].Amount)
}

func TestInvoiceAndBillDiscountSemanticsDiffer(t *testing.T) {
	// Same inputs, different meaning: invoice discount 10 is a flat amount,
	// bill discount 10 is a percent of the 200 subtotal.
	_, _, invTotal := accounting.CalculateInvoiceLine(dec("4"), dec("50"), dec("10"), dec("0"))
	_, _, billTotal := accounting.CalculateBillLine(dec("4"), dec("50"), dec("10"), dec("0"))

	assert.True(t, dec("190").Equal(invTotal), "invoice flat discount: got %s", invTotal)
	assert.True(t, dec("180").Equal(billTotal), "bill percent discount: got %s", billTotal)
}
