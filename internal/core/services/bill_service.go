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

// ErrDiscountPercentRange is returned when a bill line discount is outside 0-100.
var ErrDiscountPercentRange = errors.New("discount percentage must be between 0 and 100")

// billService provides vendor bill operations.
type billService struct {
	billRepo   portsrepo.BillRepositoryFacade
	vendorRepo portsrepo.VendorRepositoryFacade
	itemRepo   portsrepo.ItemRepositoryFacade
	orgSvc     portssvc.OrganizationSvcFacade
}

// NewBillService creates a new BillService.
func NewBillService(
	billRepo portsrepo.BillRepositoryFacade,
	vendorRepo portsrepo.VendorRepositoryFacade,
	itemRepo portsrepo.ItemRepositoryFacade,
	orgSvc portssvc.OrganizationSvcFacade,
) portssvc.BillSvcFacade {
	return &billService{
		billRepo:   billRepo,
		vendorRepo: vendorRepo,
		itemRepo:   itemRepo,
		orgSvc:     orgSvc,
	}
}

var _ portssvc.BillSvcFacade = (*billService)(nil)

// buildBillItems converts item requests into domain items after checking
// that every referenced catalog item exists in the organization. Bill
// discounts are percentages, so they are bounded to 0-100.
func (s *billService) buildBillItems(ctx context.Context, organizationID string, billID string, reqs []dto.BillItemRequest) ([]domain.BillItem, error) {
	itemIDs := make([]string, 0, len(reqs))
	for _, r := range reqs {
		itemIDs = append(itemIDs, r.ItemID)
	}
	catalog, err := s.itemRepo.FindItemsByIDs(ctx, organizationID, uniqueStrings(itemIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch items: %w", err)
	}

	hundred := decimal.NewFromInt(100)
	items := make([]domain.BillItem, 0, len(reqs))
	for i, r := range reqs {
		catalogItem, ok := catalog[r.ItemID]
		if !ok {
			return nil, fmt.Errorf("%w: item %s not found", apperrors.ErrValidation, r.ItemID)
		}
		if r.Quantity.IsNegative() || r.UnitPrice.IsNegative() || r.TaxRate.IsNegative() {
			return nil, fmt.Errorf("%w: item amounts cannot be negative", apperrors.ErrValidation)
		}
		if r.Discount.IsNegative() || r.Discount.GreaterThan(hundred) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDiscountPercentRange)
		}
		description := r.Description
		if description == "" {
			description = catalogItem.Name
		}
		items = append(items, domain.BillItem{
			BillItemID:  uuid.NewString(),
			BillID:      billID,
			ItemID:      r.ItemID,
			Description: description,
			Quantity:    r.Quantity,
			UnitPrice:   r.UnitPrice,
			Discount:    r.Discount,
			TaxRate:     r.TaxRate,
			LineOrder:   i,
		})
	}
	return items, nil
}

// CreateBill persists a new draft bill, deriving all totals from the items.
func (s *billService) CreateBill(ctx context.Context, organizationID string, req dto.CreateBillRequest, userID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for CreateBill", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	vendor, err := s.vendorRepo.FindVendorByID(ctx, organizationID, req.VendorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: vendor %s not found", apperrors.ErrValidation, req.VendorID)
		}
		return nil, fmt.Errorf("failed to fetch vendor: %w", err)
	}
	if !vendor.IsActive {
		return nil, fmt.Errorf("%w: vendor %s is inactive", apperrors.ErrValidation, req.VendorID)
	}

	if req.DueDate.Before(req.BillDate) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDueDateBeforeDocDate)
	}

	billID := uuid.NewString()
	items, err := s.buildBillItems(ctx, organizationID, billID, req.Items)
	if err != nil {
		return nil, err
	}
	totals := accounting.CalculateBillTotals(items)

	now := time.Now().UTC()
	bill := domain.Bill{
		BillID:         billID,
		OrganizationID: organizationID,
		VendorID:       req.VendorID,
		BillNumber:     req.BillNumber,
		BillDate:       req.BillDate,
		DueDate:        req.DueDate,
		Status:         domain.BillDraft,
		Items:          items,
		Subtotal:       totals.Subtotal,
		TaxAmount:      totals.TaxAmount,
		TotalAmount:    totals.TotalAmount,
		PaidAmount:     decimal.Zero,
		Balance:        totals.TotalAmount,
		Reference:      req.Reference,
		Notes:          req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.billRepo.SaveBill(ctx, bill); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: bill number %s already exists", apperrors.ErrDuplicate, req.BillNumber)
		}
		logger.Error("Failed to save bill", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save bill: %w", err)
	}

	logger.Info("Bill created",
		slog.String("bill_id", bill.BillID),
		slog.String("bill_number", bill.BillNumber),
		slog.String("total", bill.TotalAmount.String()))
	return &bill, nil
}

// GetBillByID retrieves a specific bill with its items.
func (s *billService) GetBillByID(ctx context.Context, organizationID string, billID string, userID string) (*domain.Bill, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.billRepo.FindBillByID(ctx, organizationID, billID)
}

// ListBills retrieves a paginated list of bills in an organization.
func (s *billService) ListBills(ctx context.Context, organizationID string, userID string, params dto.ListBillsParams) (*dto.ListBillsResponse, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}

	var status *domain.BillStatus
	if params.Status != nil {
		st := domain.BillStatus(*params.Status)
		status = &st
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	bills, nextToken, err := s.billRepo.ListBills(ctx, organizationID, status, params.VendorID, params.Overdue, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	resp := dto.ListBillsResponse{
		Bills:     make([]dto.BillResponse, len(bills)),
		NextToken: nextToken,
	}
	for i := range bills {
		resp.Bills[i] = dto.ToBillResponse(&bills[i])
	}
	return &resp, nil
}

// UpdateBill updates a bill's details and items, recomputing totals.
// PAID and CANCELLED bills cannot be edited.
func (s *billService) UpdateBill(ctx context.Context, organizationID string, billID string, req dto.UpdateBillRequest, userID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for UpdateBill", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	bill, err := s.billRepo.FindBillByID(ctx, organizationID, billID)
	if err != nil {
		return nil, err
	}

	if bill.Status == domain.BillPaid || bill.Status == domain.BillCancelled {
		return nil, fmt.Errorf("%w: %s: bill is %s", apperrors.ErrConflict, ErrDocumentNotEditable, bill.Status)
	}

	if req.BillDate != nil {
		bill.BillDate = *req.BillDate
	}
	if req.DueDate != nil {
		bill.DueDate = *req.DueDate
	}
	if bill.DueDate.Before(bill.BillDate) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrDueDateBeforeDocDate)
	}
	if req.Reference != nil {
		bill.Reference = *req.Reference
	}
	if req.Notes != nil {
		bill.Notes = *req.Notes
	}

	if len(req.Items) > 0 {
		items, err := s.buildBillItems(ctx, organizationID, bill.BillID, req.Items)
		if err != nil {
			return nil, err
		}
		totals := accounting.CalculateBillTotals(items)
		if totals.TotalAmount.LessThan(bill.PaidAmount) {
			return nil, fmt.Errorf("%w: new total %s is below the paid amount %s", apperrors.ErrValidation, totals.TotalAmount.String(), bill.PaidAmount.String())
		}
		bill.Items = items
		bill.Subtotal = totals.Subtotal
		bill.TaxAmount = totals.TaxAmount
		bill.TotalAmount = totals.TotalAmount
		bill.Balance = totals.TotalAmount.Sub(bill.PaidAmount)
	}

	now := time.Now().UTC()
	bill.LastUpdatedAt = now
	bill.LastUpdatedBy = userID

	if err := s.billRepo.UpdateBill(ctx, *bill); err != nil {
		logger.Error("Failed to update bill", slog.String("error", err.Error()), slog.String("bill_id", billID))
		return nil, fmt.Errorf("failed to update bill: %w", err)
	}

	logger.Info("Bill updated", slog.String("bill_id", billID))
	return bill, nil
}

// validateBillTransition checks whether a bill may move from one status to
// another. CANCELLED is terminal; a PAID bill cannot change status; DRAFT
// cannot be re-entered, since leaving it added the open balance to the
// vendor's outstanding total.
func validateBillTransition(from, to domain.BillStatus) error {
	if from == domain.BillCancelled {
		return fmt.Errorf("%w: %s: bill is %s", apperrors.ErrConflict, ErrInvalidTransition, from)
	}
	if from == domain.BillPaid {
		return fmt.Errorf("%w: %s: bill is already paid", apperrors.ErrConflict, ErrInvalidTransition)
	}
	if to == domain.BillDraft {
		return fmt.Errorf("%w: %s: a bill cannot return to draft", apperrors.ErrConflict, ErrInvalidTransition)
	}
	if from == to {
		return fmt.Errorf("%w: %s: bill is already %s", apperrors.ErrConflict, ErrInvalidTransition, from)
	}
	return nil
}

// UpdateBillStatus transitions a bill to a new status.
func (s *billService) UpdateBillStatus(ctx context.Context, organizationID string, billID string, status domain.BillStatus, userID string) (*domain.Bill, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for UpdateBillStatus", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	bill, err := s.billRepo.FindBillByID(ctx, organizationID, billID)
	if err != nil {
		return nil, err
	}

	if err := validateBillTransition(bill.Status, status); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.billRepo.UpdateBillStatus(ctx, organizationID, billID, status, userID, now); err != nil {
		logger.Error("Failed to update bill status", slog.String("error", err.Error()), slog.String("bill_id", billID))
		return nil, fmt.Errorf("failed to update bill status: %w", err)
	}

	bill.Status = status
	bill.LastUpdatedAt = now
	bill.LastUpdatedBy = userID

	logger.Info("Bill status updated",
		slog.String("bill_id", billID),
		slog.String("status", string(status)))
	return bill, nil
}

// DeleteBill removes a bill. Only DRAFT bills can be deleted.
func (s *billService) DeleteBill(ctx context.Context, organizationID string, billID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for DeleteBill", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}

	bill, err := s.billRepo.FindBillByID(ctx, organizationID, billID)
	if err != nil {
		return err
	}

	if bill.Status != domain.BillDraft {
		return fmt.Errorf("%w: %s: bill is %s", apperrors.ErrConflict, ErrDocumentNotDeletable, bill.Status)
	}

	if err := s.billRepo.DeleteBill(ctx, organizationID, billID); err != nil {
		logger.Error("Failed to delete bill", slog.String("error", err.Error()), slog.String("bill_id", billID))
		return fmt.Errorf("failed to delete bill: %w", err)
	}

	logger.Info("Bill deleted", slog.String("bill_id", billID))
	return nil
}
