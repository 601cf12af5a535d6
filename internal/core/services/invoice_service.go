package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrDueDateBeforeDocDate = errors.New("due date cannot be before the document date")
	ErrDocumentNotEditable  = errors.New("document can no longer be edited")
	ErrDocumentNotDeletable = errors.New("document cannot be deleted in its current status")
	ErrInvalidTransition    = errors.New("status transition is not allowed")
)

// invoiceService provides sales invoice operations.
type invoiceService struct {
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	itemRepo     portsrepo.ItemRepositoryFacade
	orgSvc       portssvc.OrganizationSvcFacade
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	itemRepo portsrepo.ItemRepositoryFacade,
	orgSvc portssvc.OrganizationSvcFacade,
) portssvc.InvoiceSvcFacade {
	return &invoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		itemRepo:     itemRepo,
		orgSvc:       orgSvc,
	}
}

var _ portssvc.InvoiceSvcFacade = (*invoiceService)(nil)

// buildInvoiceItems converts item requests into domain items after checking
// that every referenced catalog item exists in the organization.
func (s *invoiceService) buildInvoiceItems(ctx context.Context, organizationID string, invoiceID string, reqs []dto.InvoiceItemRequest) ([]domain.InvoiceItem, error) {
	itemIDs := make([]string, 0, len(reqs))
	for _, r := range reqs {
		itemIDs = append(itemIDs, r.ItemID)
	}
	catalog, err := s.itemRepo.FindItemsByIDs(ctx, organizationID, uniqueStrings(itemIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}

	items := make([]domain.InvoiceItem, 0, len(reqs))
	for i, r := range reqs {
		catalogItem, ok := catalog[r.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item %s not found", apperrors.ErrValidation, r.ItemID)
		}
		if r.Quantity.IsNegative() || r.UnitPrice.IsNegative() || r.Discount.IsNegative() || r.TaxRate.IsNegative() {
			return nil, fmt.Errorf("%w: item amounts cannot be negative", apperrors.ErrValidation)
		}
		description := r.Description
		if description == "" {
			description = catalogItem.Name
		}
		items = append(items, domain.InvoiceItem{
			InvoiceItemID: uuid.NewString(),
			InvoiceID:     invoiceID,
			ItemID:        r.ItemID,
			Description:   description,
			Quantity:      r.Quantity,
			UnitPrice:     r.UnitPrice,
			Discount:      r.Discount,
			TaxRate:       r.TaxRate,
			LineOrder:     i,
		})
	}
	return items, nil
}

// CreateInvoice persists a new draft invoice, deriving all totals from the
// items. Client-submitted totals are never trusted.
func (s *invoiceService) CreateInvoice(ctx context.Context, organizationID string, req dto.CreateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for CreateInvoice", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, organizationID, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, req.CustomerID)
		}
		return nil, fmt.Errorf("failed to fetch customer: %w", err)
	}
	if !customer.IsActive {
		return nil, fmt.Errorf("%w: customer %s is inactive", apperrors.ErrValidation, req.CustomerID)
	}

	if req.DueDate.Before(req.InvoiceDate) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDueDateBeforeDocDate)
	}

	invoiceID := uuid.NewString()
	items, err := s.buildInvoiceItems(ctx, organizationID, invoiceID, req.Items)
	if err != nil {
		return nil, err
	}
	totals := accounting.CalculateInvoiceTotals(items)

	now := time.Now().UTC()
	invoice := domain.Invoice{
		InvoiceID:          invoiceID,
		OrganizationID:     organizationID,
		CustomerID:         req.CustomerID,
		InvoiceNumber:      req.InvoiceNumber,
		InvoiceDate:        req.InvoiceDate,
		DueDate:            req.DueDate,
		Status:             domain.InvoiceDraft,
		Items:              items,
		Subtotal:           totals.Subtotal,
		TaxAmount:          totals.TaxAmount,
		TotalAmount:        totals.TotalAmount,
		PaidAmount:         decimal.Zero,
		Balance:            totals.TotalAmount,
		Notes:              req.Notes,
		TermsAndConditions: req.TermsAndConditions,
		BillingAddress:     req.BillingAddress,
		ShippingAddress:    req.ShippingAddress,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.invoiceRepo.SaveInvoice(ctx, invoice); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, req.InvoiceNumber)
		}
		logger.Error("Failed to save invoice", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save invoice: %w", err)
	}

	logger.Info("Invoice created",
		slog.String("invoice_id", invoice.InvoiceID),
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("total", invoice.TotalAmount.String()))
	return &invoice, nil
}

// GetInvoiceByID retrieves a specific invoice with its items.
func (s *invoiceService) GetInvoiceByID(ctx context.Context, organizationID string, invoiceID string, userID string) (*domain.Invoice, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
}

// ListInvoices retrieves a paginated list of invoices in an organization.
func (s *invoiceService) ListInvoices(ctx context.Context, organizationID string, userID string, params dto.ListInvoicesParams) (*dto.ListInvoicesResponse, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}

	var status *domain.InvoiceStatus
	if params.Status != nil {
		st := domain.InvoiceStatus(*params.Status)
		status = &st
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	invoices, nextToken, err := s.invoiceRepo.ListInvoices(ctx, organizationID, status, params.CustomerID, params.Overdue, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}

	resp := dto.ListInvoicesResponse{
		Invoices:  make([]dto.InvoiceResponse, len(invoices)),
		NextToken: nextToken,
	}
	for i := range invoices {
		resp.Invoices[i] = dto.ToInvoiceResponse(&invoices[i])
	}
	return &resp, nil
}

// UpdateInvoice updates an invoice's details and items, recomputing totals.
// PAID, VOID and CANCELLED invoices cannot be edited.
func (s *invoiceService) UpdateInvoice(ctx context.Context, organizationID string, invoiceID string, req dto.UpdateInvoiceRequest, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for UpdateInvoice", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.Status == domain.InvoicePaid || invoice.Status.IsTerminal() {
		return nil, fmt.Errorf("%w: %s: invoice is %s", apperrors.ErrConflict, ErrDocumentNotEditable, invoice.Status)
	}

	if req.InvoiceDate != nil {
		invoice.InvoiceDate = *req.InvoiceDate
	}
	if req.DueDate != nil {
		invoice.DueDate = *req.DueDate
	}
	if invoice.DueDate.Before(invoice.InvoiceDate) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDueDateBeforeDocDate)
	}
	if req.Notes != nil {
		invoice.Notes = *req.Notes
	}
	if req.TermsAndConditions != nil {
		invoice.TermsAndConditions = *req.TermsAndConditions
	}
	if req.BillingAddress != nil {
		invoice.BillingAddress = *req.BillingAddress
	}
	if req.ShippingAddress != nil {
		invoice.ShippingAddress = *req.ShippingAddress
	}

	if len(req.Items) > 0 {
		items, err := s.buildInvoiceItems(ctx, organizationID, invoice.InvoiceID, req.Items)
		if err != nil {
			return nil, err
		}
		totals := accounting.CalculateInvoiceTotals(items)
		if totals.TotalAmount.LessThan(invoice.PaidAmount) {
			return nil, fmt.Errorf("%w: new total %s is below the paid amount %s", apperrors.ErrValidation, totals.TotalAmount.String(), invoice.PaidAmount.String())
		}
		invoice.Items = items
		invoice.Subtotal = totals.Subtotal
		invoice.TaxAmount = totals.TaxAmount
		invoice.TotalAmount = totals.TotalAmount
		invoice.Balance = totals.TotalAmount.Sub(invoice.PaidAmount)
	}

	now := time.Now().UTC()
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID

	if err := s.invoiceRepo.UpdateInvoice(ctx, *invoice); err != nil {
		logger.Error("Failed to update invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	logger.Info("Invoice updated", slog.String("invoice_id", invoiceID))
	return invoice, nil
}

// validateInvoiceTransition checks whether an invoice may move from one
// status to another. VOID and CANCELLED are terminal; a PAID invoice can
// only be voided; DRAFT cannot be re-entered, since leaving it added the
// open balance to the customer's outstanding total.
func validateInvoiceTransition(from, to domain.InvoiceStatus) error {
	if from.IsTerminal() {
		return fmt.Errorf("%w: %s: invoice is %s", apperrors.ErrConflict, ErrInvalidTransition, from)
	}
	if from == domain.InvoicePaid && to != domain.InvoiceVoid {
		return fmt.Errorf("%w: %s: a paid invoice can only be voided", apperrors.ErrConflict, ErrInvalidTransition)
	}
	if to == domain.InvoiceDraft {
		return fmt.Errorf("%w: %s: an invoice cannot return to draft", apperrors.ErrConflict, ErrInvalidTransition)
	}
	if from == to {
		return fmt.Errorf("%w: %s: invoice is already %s", apperrors.ErrConflict, ErrInvalidTransition, from)
	}
	return nil
}

// UpdateInvoiceStatus transitions an invoice to a new status.
func (s *invoiceService) UpdateInvoiceStatus(ctx context.Context, organizationID string, invoiceID string, status domain.InvoiceStatus, userID string) (*domain.Invoice, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for UpdateInvoiceStatus", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
	if err != nil {
		return nil, err
	}

	if err := validateInvoiceTransition(invoice.Status, status); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.invoiceRepo.UpdateInvoiceStatus(ctx, organizationID, invoiceID, status, userID, now); err != nil {
		logger.Error("Failed to update invoice status", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return nil, fmt.Errorf("failed to update invoice status: %w", err)
	}

	invoice.Status = status
	invoice.LastUpdatedAt = now
	invoice.LastUpdatedBy = userID

	logger.Info("Invoice status updated",
		slog.String("invoice_id", invoiceID),
		slog.String("status", string(status)))
	return invoice, nil
}

// DeleteInvoice removes an invoice. Only DRAFT and CANCELLED invoices can
// be deleted.
func (s *invoiceService) DeleteInvoice(ctx context.Context, organizationID string, invoiceID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for DeleteInvoice", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, invoiceID)
	if err != nil {
		return err
	}

	if invoice.Status != domain.InvoiceDraft && invoice.Status != domain.InvoiceCancelled {
		return fmt.Errorf("%w: %s: invoice is %s", apperrors.ErrConflict, ErrDocumentNotDeletable, invoice.Status)
	}

	if err := s.invoiceRepo.DeleteInvoice(ctx, organizationID, invoiceID); err != nil {
		logger.Error("Failed to delete invoice", slog.String("error", err.Error()), slog.String("invoice_id", invoiceID))
		return fmt.Errorf("failed to delete invoice: %w", err)
	}

	logger.Info("Invoice deleted", slog.String("invoice_id", invoiceID))
	return nil
}
