package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// BillReader defines read operations for bill data
type BillReader interface {
	// FindBillByID retrieves a specific bill with its items.
	FindBillByID(ctx context.Context, organizationID string, billID string) (*domain.Bill, error)

	// ListBills retrieves a paginated list of bills for an organization using
	// token-based pagination. Optional status and vendor filters. When
	// overdueOnly is set, only unpaid bills past their due date are returned.
	ListBills(ctx context.Context, organizationID string, status *domain.BillStatus, vendorID *string, overdueOnly bool, limit int, nextToken *string) ([]domain.Bill, *string, error)
}

// BillWriter defines write operations for bill data
type BillWriter interface {
	// SaveBill persists a new draft bill and its items in one transaction.
	// Drafts do not affect the vendor outstanding balance.
	SaveBill(ctx context.Context, bill domain.Bill) error

	// UpdateBill replaces the mutable fields and items of a bill. For
	// non-draft bills the vendor outstanding balance is adjusted by the
	// total delta in the same transaction.
	UpdateBill(ctx context.Context, bill domain.Bill) error

	// UpdateBillStatus transitions the status of a bill. The bill row is
	// locked and the vendor outstanding balance is adjusted in the same
	// transaction when the transition requires it: leaving DRAFT adds the
	// open balance, entering CANCELLED removes it.
	UpdateBillStatus(ctx context.Context, organizationID string, billID string, status domain.BillStatus, userID string, now time.Time) error

	// DeleteBill removes a bill and its items.
	DeleteBill(ctx context.Context, organizationID string, billID string) error
}

// BillRepositoryFacade combines all bill-related repository interfaces
type BillRepositoryFacade interface {
	BillReader
	BillWriter
}

// BillRepositoryWithTx extends BillRepositoryFacade with transaction capabilities
type BillRepositoryWithTx interface {
	BillRepositoryFacade
	TransactionManager
}
