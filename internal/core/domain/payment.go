package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentType distinguishes money received from a customer from money paid
// out to a vendor.
type PaymentType string

const (
	PaymentReceived PaymentType = "PAYMENT_RECEIVED"
	PaymentMade     PaymentType = "PAYMENT_MADE"
)

// PaymentMethod enumerates supported settlement methods.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodCreditCard   PaymentMethod = "CREDIT_CARD"
	MethodDebitCard    PaymentMethod = "DEBIT_CARD"
	MethodCheck        PaymentMethod = "CHECK"
	MethodPaypal       PaymentMethod = "PAYPAL"
	MethodStripe       PaymentMethod = "STRIPE"
	MethodOther        PaymentMethod = "OTHER"
)

// Payment records money received against an invoice (or from a customer
// directly) or money paid against a bill (or to a vendor directly).
// The customer/invoice and vendor/bill references are mutually exclusive
// by PaymentType. The funding AccountID link is immutable.
type Payment struct {
	PaymentID       string          `json:"paymentID"`      // Primary Key (UUID)
	OrganizationID  string          `json:"organizationID"` // FK -> organizations
	PaymentType     PaymentType     `json:"paymentType"`
	PaymentNumber   string          `json:"paymentNumber"` // Unique, generated
	PaymentDate     time.Time       `json:"paymentDate"`
	Amount          decimal.Decimal `json:"amount"` // Positive, <= linked document balance
	PaymentMethod   PaymentMethod   `json:"paymentMethod"`
	AccountID       string          `json:"accountID"` // Funding account
	CustomerID      *string         `json:"customerID,omitempty"`
	InvoiceID       *string         `json:"invoiceID,omitempty"`
	VendorID        *string         `json:"vendorID,omitempty"`
	BillID          *string         `json:"billID,omitempty"`
	ReferenceNumber string          `json:"referenceNumber"`
	Notes           string          `json:"notes"`
	AuditFields
}
