package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// BillReaderSvc defines read operations for bill data
type BillReaderSvc interface {
	// GetBillByID retrieves a specific bill with its items.
	GetBillByID(ctx context.Context, organizationID string, billID string, userID string) (*domain.Bill, error)

	// ListBills retrieves a paginated list of bills in an organization.
	ListBills(ctx context.Context, organizationID string, userID string, params dto.ListBillsParams) (*dto.ListBillsResponse, error)
}

// BillWriterSvc defines write operations for bill data
type BillWriterSvc interface {
	// CreateBill persists a new bill, deriving all totals from the items.
	CreateBill(ctx context.Context, organizationID string, req dto.CreateBillRequest, userID string) (*domain.Bill, error)

	// UpdateBill updates a bill's details and items, recomputing totals.
	// PAID and CANCELLED bills are immutable.
	UpdateBill(ctx context.Context, organizationID string, billID string, req dto.UpdateBillRequest, userID string) (*domain.Bill, error)

	// UpdateBillStatus transitions a bill to a new status.
	UpdateBillStatus(ctx context.Context, organizationID string, billID string, status domain.BillStatus, userID string) (*domain.Bill, error)

	// DeleteBill removes a bill. Only DRAFT bills can be deleted.
	DeleteBill(ctx context.Context, organizationID string, billID string, userID string) error
}

// BillSvcFacade combines all bill-related service interfaces
type BillSvcFacade interface {
	BillReaderSvc
	BillWriterSvc
}
