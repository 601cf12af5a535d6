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
	ErrPaymentAmountNotPositive = errors.New("payment amount must be positive")
	ErrPaymentLinkMismatch      = errors.New("payment links do not match the payment type")
	ErrPaymentOverpays          = errors.New("payment exceeds the remaining document balance")
	ErrDocumentNotPayable       = errors.New("document cannot accept payments in its current status")
	ErrDocumentTerminal         = errors.New("linked document is void or cancelled")
)

// paymentService records payments and reconciles them against invoices,
// bills, party outstanding balances and the funding account.
type paymentService struct {
	paymentRepo  portsrepo.PaymentRepositoryFacade
	invoiceRepo  portsrepo.InvoiceRepositoryFacade
	billRepo     portsrepo.BillRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	vendorRepo   portsrepo.VendorRepositoryFacade
	accountRepo  portsrepo.AccountRepositoryFacade
	orgSvc       portssvc.OrganizationSvcFacade
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(
	paymentRepo portsrepo.PaymentRepositoryFacade,
	invoiceRepo portsrepo.InvoiceRepositoryFacade,
	billRepo portsrepo.BillRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	vendorRepo portsrepo.VendorRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	orgSvc portssvc.OrganizationSvcFacade,
) portssvc.PaymentSvcFacade {
	return &paymentService{
		paymentRepo:  paymentRepo,
		invoiceRepo:  invoiceRepo,
		billRepo:     billRepo,
		customerRepo: customerRepo,
		vendorRepo:   vendorRepo,
		accountRepo:  accountRepo,
		orgSvc:       orgSvc,
	}
}

var _ portssvc.PaymentSvcFacade = (*paymentService)(nil)

// paymentNumberPrefix returns the number prefix for a payment type.
func paymentNumberPrefix(paymentType domain.PaymentType) string {
	if paymentType == domain.PaymentMade {
		return "PAY-MADE"
	}
	return "PAY-RECV"
}

// generatePaymentNumber produces the next sequential payment number for the
// payment's type and date, e.g. PAY-RECV-20250301-0001.
func (s *paymentService) generatePaymentNumber(ctx context.Context, organizationID string, paymentType domain.PaymentType, date time.Time) (string, error) {
	count, err := s.paymentRepo.CountPaymentsOnDate(ctx, organizationID, paymentType, date)
	if err != nil {
		return "", fmt.Errorf("failed to count payments for number generation: %w", err)
	}
	return fmt.Sprintf("%s-%s-%04d", paymentNumberPrefix(paymentType), date.Format("20060102"), count+1), nil
}

// validatePaymentLinks enforces the mutual exclusivity of the party and
// document references against the effective payment type.
func validatePaymentLinks(paymentType domain.PaymentType, req dto.CreatePaymentRequest) error {
	switch paymentType {
	case domain.PaymentReceived:
		if req.VendorID != nil || req.BillID != nil {
			return fmt.Errorf("%w: %s: PAYMENT_RECEIVED cannot reference a vendor or bill", apperrors.ErrValidation, ErrPaymentLinkMismatch)
		}
		if req.CustomerID == nil && req.InvoiceID == nil {
			return fmt.Errorf("%w: %s: PAYMENT_RECEIVED requires a customer or invoice", apperrors.ErrValidation, ErrPaymentLinkMismatch)
		}
	case domain.PaymentMade:
		if req.CustomerID != nil || req.InvoiceID != nil {
			return fmt.Errorf("%w: %s: PAYMENT_MADE cannot reference a customer or invoice", apperrors.ErrValidation, ErrPaymentLinkMismatch)
		}
		if req.VendorID == nil && req.BillID == nil {
			return fmt.Errorf("%w: %s: PAYMENT_MADE requires a vendor or bill", apperrors.ErrValidation, ErrPaymentLinkMismatch)
		}
	default:
		return fmt.Errorf("%w: unknown payment type %s", apperrors.ErrValidation, paymentType)
	}
	return nil
}

// effectivePaymentType derives the payment's direction. A document link is
// authoritative: an invoice makes the payment PAYMENT_RECEIVED and a bill
// makes it PAYMENT_MADE, regardless of what the request says.
func effectivePaymentType(req dto.CreatePaymentRequest) domain.PaymentType {
	if req.InvoiceID != nil {
		return domain.PaymentReceived
	}
	if req.BillID != nil {
		return domain.PaymentMade
	}
	return req.PaymentType
}

// fundingAccountDelta returns the signed balance change the payment applies
// to the funding account. Money received debits the account, money paid
// credits it; the sign then follows the account type's natural balance.
func fundingAccountDelta(paymentType domain.PaymentType, accountType domain.AccountType, amount decimal.Decimal) (decimal.Decimal, error) {
	line := domain.JournalLine{DebitAmount: amount, CreditAmount: decimal.Zero}
	if paymentType == domain.PaymentMade {
		line = domain.JournalLine{DebitAmount: decimal.Zero, CreditAmount: amount}
	}
	return accounting.CalculateBalanceDelta(line, accountType)
}

// CreatePayment validates and records a payment. A linked invoice or bill
// determines the payment type and the party. The repository applies the
// reconciliation update atomically; the linked document's remaining balance
// is re-checked under a row lock, so a racing overpayment is rejected there
// as well.
func (s *paymentService) CreatePayment(ctx context.Context, organizationID string, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for CreatePayment", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrPaymentAmountNotPositive)
	}
	paymentType := effectivePaymentType(req)
	if err := validatePaymentLinks(paymentType, req); err != nil {
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: funding account %s not found", apperrors.ErrValidation, req.AccountID)
		}
		return nil, fmt.Errorf("failed to fetch funding account: %w", err)
	}
	if !account.IsActive {
		return nil, fmt.Errorf("%w: funding account %s is inactive", apperrors.ErrValidation, req.AccountID)
	}

	customerID := req.CustomerID
	vendorID := req.VendorID

	if req.InvoiceID != nil {
		invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, *req.InvoiceID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: invoice %s not found", apperrors.ErrValidation, *req.InvoiceID)
			}
			return nil, fmt.Errorf("failed to fetch invoice: %w", err)
		}
		if invoice.Status == domain.InvoiceDraft || invoice.Status.IsTerminal() {
			return nil, fmt.Errorf("%w: %s: invoice is %s", apperrors.ErrConflict, ErrDocumentNotPayable, invoice.Status)
		}
		if req.Amount.GreaterThan(invoice.Balance) {
			return nil, fmt.Errorf("%w: %s: amount %s, balance %s", apperrors.ErrValidation, ErrPaymentOverpays, req.Amount.String(), invoice.Balance.String())
		}
		if customerID != nil && *customerID != invoice.CustomerID {
			return nil, fmt.Errorf("%w: customer %s does not match the invoice's customer", apperrors.ErrValidation, *customerID)
		}
		customerID = &invoice.CustomerID
	} else if customerID != nil {
		if _, err := s.customerRepo.FindCustomerByID(ctx, organizationID, *customerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: customer %s not found", apperrors.ErrValidation, *customerID)
			}
			return nil, fmt.Errorf("failed to fetch customer: %w", err)
		}
	}

	if req.BillID != nil {
		bill, err := s.billRepo.FindBillByID(ctx, organizationID, *req.BillID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: bill %s not found", apperrors.ErrValidation, *req.BillID)
			}
			return nil, fmt.Errorf("failed to fetch bill: %w", err)
		}
		if bill.Status == domain.BillDraft || bill.Status == domain.BillCancelled {
			return nil, fmt.Errorf("%w: %s: bill is %s", apperrors.ErrConflict, ErrDocumentNotPayable, bill.Status)
		}
		if req.Amount.GreaterThan(bill.Balance) {
			return nil, fmt.Errorf("%w: %s: amount %s, balance %s", apperrors.ErrValidation, ErrPaymentOverpays, req.Amount.String(), bill.Balance.String())
		}
		if vendorID != nil && *vendorID != bill.VendorID {
			return nil, fmt.Errorf("%w: vendor %s does not match the bill's vendor", apperrors.ErrValidation, *vendorID)
		}
		vendorID = &bill.VendorID
	} else if vendorID != nil {
		if _, err := s.vendorRepo.FindVendorByID(ctx, organizationID, *vendorID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: vendor %s not found", apperrors.ErrValidation, *vendorID)
			}
			return nil, fmt.Errorf("failed to fetch vendor: %w", err)
		}
	}

	accountDelta, err := fundingAccountDelta(paymentType, account.AccountType, req.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to compute funding account delta: %w", err)
	}

	paymentNumber, err := s.generatePaymentNumber(ctx, organizationID, paymentType, req.PaymentDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	payment := domain.Payment{
		PaymentID:       uuid.NewString(),
		OrganizationID:  organizationID,
		PaymentType:     paymentType,
		PaymentNumber:   paymentNumber,
		PaymentDate:     req.PaymentDate,
		Amount:          req.Amount,
		PaymentMethod:   req.PaymentMethod,
		AccountID:       req.AccountID,
		CustomerID:      customerID,
		InvoiceID:       req.InvoiceID,
		VendorID:        vendorID,
		BillID:          req.BillID,
		ReferenceNumber: req.ReferenceNumber,
		Notes:           req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	recon := portsrepo.ReconciliationUpdate{
		InvoiceID:    payment.InvoiceID,
		BillID:       payment.BillID,
		CustomerID:   payment.CustomerID,
		VendorID:     payment.VendorID,
		Amount:       payment.Amount,
		AccountID:    payment.AccountID,
		AccountDelta: accountDelta,
	}

	if err := s.paymentRepo.SavePayment(ctx, payment, recon); err != nil {
		logger.Error("Failed to save payment", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save payment: %w", err)
	}

	logger.Info("Payment recorded",
		slog.String("payment_id", payment.PaymentID),
		slog.String("payment_number", payment.PaymentNumber),
		slog.String("amount", payment.Amount.String()))
	return &payment, nil
}

// GetPaymentByID retrieves a specific payment.
func (s *paymentService) GetPaymentByID(ctx context.Context, organizationID string, paymentID string, userID string) (*domain.Payment, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.paymentRepo.FindPaymentByID(ctx, organizationID, paymentID)
}

// ListPayments retrieves a paginated list of payments in an organization.
func (s *paymentService) ListPayments(ctx context.Context, organizationID string, userID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}

	var paymentType *domain.PaymentType
	if params.PaymentType != nil {
		pt := domain.PaymentType(*params.PaymentType)
		paymentType = &pt
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	payments, nextToken, err := s.paymentRepo.ListPayments(ctx, organizationID, paymentType, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &dto.ListPaymentsResponse{
		Payments:  dto.ToListPaymentResponse(payments),
		NextToken: nextToken,
	}, nil
}

// UpdatePayment updates the annotation fields of a payment. Amount, dates
// and document links are immutable once recorded.
func (s *paymentService) UpdatePayment(ctx context.Context, organizationID string, paymentID string, req dto.UpdatePaymentRequest, userID string) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for UpdatePayment", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, organizationID, paymentID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.PaymentMethod != nil {
		payment.PaymentMethod = *req.PaymentMethod
		updated = true
	}
	if req.ReferenceNumber != nil {
		payment.ReferenceNumber = *req.ReferenceNumber
		updated = true
	}
	if req.Notes != nil {
		payment.Notes = *req.Notes
		updated = true
	}
	if !updated {
		return payment, nil
	}

	now := time.Now().UTC()
	payment.LastUpdatedAt = now
	payment.LastUpdatedBy = userID

	if err := s.paymentRepo.UpdatePayment(ctx, *payment); err != nil {
		logger.Error("Failed to update payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	logger.Info("Payment updated", slog.String("payment_id", paymentID))
	return payment, nil
}

// DeletePayment removes a payment and reverses its reconciliation: the
// linked document's paid amount and balance, the party's outstanding
// balance and the funding account balance all return to their pre-payment
// values in one transaction.
func (s *paymentService) DeletePayment(ctx context.Context, organizationID string, paymentID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for DeletePayment", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}

	payment, err := s.paymentRepo.FindPaymentByID(ctx, organizationID, paymentID)
	if err != nil {
		return err
	}

	// A voided or cancelled document already had its open balance removed
	// from the party's outstanding total; unwinding a payment against it
	// would resurrect the document and double-adjust the mirror.
	if payment.InvoiceID != nil {
		invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, organizationID, *payment.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to fetch linked invoice: %w", err)
		}
		if invoice.Status.IsTerminal() {
			return fmt.Errorf("%w: %w: invoice is %s", apperrors.ErrConflict, ErrDocumentTerminal, invoice.Status)
		}
	}
	if payment.BillID != nil {
		bill, err := s.billRepo.FindBillByID(ctx, organizationID, *payment.BillID)
		if err != nil {
			return fmt.Errorf("failed to fetch linked bill: %w", err)
		}
		if bill.Status == domain.BillCancelled {
			return fmt.Errorf("%w: %w: bill is %s", apperrors.ErrConflict, ErrDocumentTerminal, bill.Status)
		}
	}

	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, payment.AccountID)
	if err != nil {
		return fmt.Errorf("failed to fetch funding account: %w", err)
	}
	accountDelta, err := fundingAccountDelta(payment.PaymentType, account.AccountType, payment.Amount)
	if err != nil {
		return fmt.Errorf("failed to compute funding account delta: %w", err)
	}

	recon := portsrepo.ReconciliationUpdate{
		InvoiceID:    payment.InvoiceID,
		BillID:       payment.BillID,
		CustomerID:   payment.CustomerID,
		VendorID:     payment.VendorID,
		Amount:       payment.Amount.Neg(),
		AccountID:    payment.AccountID,
		AccountDelta: accountDelta.Neg(),
	}

	now := time.Now().UTC()
	if err := s.paymentRepo.DeletePayment(ctx, organizationID, paymentID, recon, userID, now); err != nil {
		logger.Error("Failed to delete payment", slog.String("error", err.Error()), slog.String("payment_id", paymentID))
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	logger.Info("Payment deleted and reconciliation reversed",
		slog.String("payment_id", paymentID),
		slog.String("payment_number", payment.PaymentNumber))
	return nil
}
