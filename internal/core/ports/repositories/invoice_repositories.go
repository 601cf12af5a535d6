package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// InvoiceReader defines read operations for invoice data
type InvoiceReader interface {
	// FindInvoiceByID retrieves a specific invoice with its items.
	FindInvoiceByID(ctx context.Context, organizationID string, invoiceID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices for an organization
	// using token-based pagination. Optional status and customer filters.
	// When overdueOnly is set, only unpaid invoices past their due date are
	// returned.
	ListInvoices(ctx context.Context, organizationID string, status *domain.InvoiceStatus, customerID *string, overdueOnly bool, limit int, nextToken *string) ([]domain.Invoice, *string, error)
}

// InvoiceWriter defines write operations for invoice data
type InvoiceWriter interface {
	// SaveInvoice persists a new draft invoice and its items in one
	// transaction. Drafts do not affect the customer outstanding balance.
	SaveInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoice replaces the mutable fields and items of an invoice.
	// For non-draft invoices the customer outstanding balance is adjusted
	// by the total delta in the same transaction.
	UpdateInvoice(ctx context.Context, invoice domain.Invoice) error

	// UpdateInvoiceStatus transitions the status of an invoice. The invoice
	// row is locked and the customer outstanding balance is adjusted in the
	// same transaction when the transition requires it: leaving DRAFT adds
	// the open balance, entering VOID or CANCELLED removes it.
	UpdateInvoiceStatus(ctx context.Context, organizationID string, invoiceID string, status domain.InvoiceStatus, userID string, now time.Time) error

	// DeleteInvoice removes an invoice and its items.
	DeleteInvoice(ctx context.Context, organizationID string, invoiceID string) error
}

// InvoiceRepositoryFacade combines all invoice-related repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
	InvoiceWriter
}

// InvoiceRepositoryWithTx extends InvoiceRepositoryFacade with transaction capabilities
type InvoiceRepositoryWithTx interface {
	InvoiceRepositoryFacade
	TransactionManager
}
