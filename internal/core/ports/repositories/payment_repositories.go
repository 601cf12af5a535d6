package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ReconciliationUpdate carries the balance adjustments a payment applies to
// its linked document, party and funding account. Amount is applied as a
// delta under row locks, so the same struct (with negated amounts) reverses
// a reconciliation when a payment is deleted.
type ReconciliationUpdate struct {
	InvoiceID    *string
	BillID       *string
	CustomerID   *string
	VendorID     *string
	Amount       decimal.Decimal // added to document paidAmount, subtracted from balances
	AccountID    string
	AccountDelta decimal.Decimal // signed change to the funding account balance
}

// PaymentReader defines read operations for payment data
type PaymentReader interface {
	// FindPaymentByID retrieves a specific payment by its unique identifier.
	FindPaymentByID(ctx context.Context, organizationID string, paymentID string) (*domain.Payment, error)

	// ListPayments retrieves a paginated list of payments for an organization
	// using token-based pagination. An optional payment type filters the result.
	ListPayments(ctx context.Context, organizationID string, paymentType *domain.PaymentType, limit int, nextToken *string) ([]domain.Payment, *string, error)

	// CountPaymentsOnDate returns how many payments of the given type were
	// recorded on a calendar date, for payment number generation.
	CountPaymentsOnDate(ctx context.Context, organizationID string, paymentType domain.PaymentType, date time.Time) (int, error)
}

// PaymentWriter defines write operations for payment data
type PaymentWriter interface {
	// SavePayment persists the payment and applies the reconciliation update
	// in one transaction. The linked document row is locked and its remaining
	// balance re-checked under the lock; an overpayment returns ErrConflict
	// and nothing is written.
	SavePayment(ctx context.Context, payment domain.Payment, recon ReconciliationUpdate) error

	// DeletePayment removes the payment and applies the (negated)
	// reconciliation update in one transaction.
	DeletePayment(ctx context.Context, organizationID string, paymentID string, recon ReconciliationUpdate, userID string, now time.Time) error

	// UpdatePayment updates the annotation fields of a payment (reference
	// number, notes, method). Amount and links are immutable.
	UpdatePayment(ctx context.Context, payment domain.Payment) error
}

// PaymentRepositoryFacade combines all payment-related repository interfaces
type PaymentRepositoryFacade interface {
	PaymentReader
	PaymentWriter
}

// PaymentRepositoryWithTx extends PaymentRepositoryFacade with transaction capabilities
type PaymentRepositoryWithTx interface {
	PaymentRepositoryFacade
	TransactionManager
}
