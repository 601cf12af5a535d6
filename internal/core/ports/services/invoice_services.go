package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// InvoiceReaderSvc defines read operations for invoice data
type InvoiceReaderSvc interface {
	// GetInvoiceByID retrieves a specific invoice with its items.
	GetInvoiceByID(ctx context.Context, organizationID string, invoiceID string, userID string) (*domain.Invoice, error)

	// ListInvoices retrieves a paginated list of invoices in an organization.
	ListInvoices(ctx context.Context, organizationID string, userID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error)
}

// InvoiceWriterSvc defines write operations for invoice data
type InvoiceWriterSvc interface {
	// CreateInvoice persists a new invoice, deriving all totals from the items.
	CreateInvoice(ctx context.Context, organizationID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoice updates an invoice's details and items, recomputing totals.
	UpdateInvoice(ctx context.Context, organizationID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error)

	// UpdateInvoiceStatus transitions an invoice to a new status.
	UpdateInvoiceStatus(ctx context.Context, organizationID string, invoiceID string, status domain.InvoiceStatus, userID string) (*domain.Invoice, error)

	// DeleteInvoice removes an invoice. Only DRAFT and CANCELLED invoices
	// can be deleted.
	DeleteInvoice(ctx context.Context, organizationID string, invoiceID string, userID string) error
}

// InvoiceSvcFacade combines all invoice-related service interfaces
type InvoiceSvcFacade interface {
	InvoiceReaderSvc
	InvoiceWriterSvc
}
