package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// PaymentReaderSvc defines read operations for payment data
type PaymentReaderSvc interface {
	// GetPaymentByID retrieves a specific payment by its ID.
	GetPaymentByID(ctx context.Context, organizationID string, paymentID string, userID string) (*domain.Payment, error)

	// ListPayments retrieves a paginated list of payments in an organization.
	ListPayments(ctx context.Context, organizationID string, userID string, params dto.ListPaymentsParams) (*dto.ListPaymentsResponse, error)
}

// PaymentWriterSvc defines write operations for payment data
type PaymentWriterSvc interface {
	// CreatePayment validates and records a payment, reconciling the linked
	// invoice or bill, the party's outstanding balance and the funding
	// account atomically.
	CreatePayment(ctx context.Context, organizationID string, req dto.CreatePaymentRequest, userID string) (*domain.Payment, error)

	// UpdatePayment updates the annotation fields of a payment. Amount and
	// document links are immutable.
	UpdatePayment(ctx context.Context, organizationID string, paymentID string, req dto.UpdatePaymentRequest, userID string) (*domain.Payment, error)

	// DeletePayment removes a payment and reverses its reconciliation.
	DeletePayment(ctx context.Context, organizationID string, paymentID string, userID string) error
}

// PaymentSvcFacade combines all payment-related service interfaces
type PaymentSvcFacade interface {
	PaymentReaderSvc
	PaymentWriterSvc
}
