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
	"github.com/shopspring/decimal"
)

// vendorService provides vendor master data operations.
type vendorService struct {
	vendorRepo portsrepo.VendorRepositoryFacade
	orgSvc     portssvc.OrganizationSvcFacade
}

// NewVendorService creates a new VendorService.
func NewVendorService(vendorRepo portsrepo.VendorRepositoryFacade, orgSvc portssvc.OrganizationSvcFacade) portssvc.VendorSvcFacade {
	return &vendorService{
		vendorRepo: vendorRepo,
		orgSvc:     orgSvc,
	}
}

var _ portssvc.VendorSvcFacade = (*vendorService)(nil)

// CreateVendor persists a new vendor.
func (s *vendorService) CreateVendor(ctx context.Context, organizationID string, req dto.CreateVendorRequest, userID string) (*domain.Vendor, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for CreateVendor", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	vendor := domain.Vendor{
		VendorID:           uuid.NewString(),
		OrganizationID:     organizationID,
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Address:            req.Address,
		TaxNumber:          req.TaxNumber,
		OutstandingBalance: decimal.Zero,
		IsActive:           true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.vendorRepo.SaveVendor(ctx, vendor); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: vendor email %s already exists", apperrors.ErrDuplicate, req.Email)
		}
		logger.Error("Failed to save vendor", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save vendor: %w", err)
	}

	logger.Info("Vendor created", slog.String("vendor_id", vendor.VendorID))
	return &vendor, nil
}

// GetVendorByID retrieves a specific vendor.
func (s *vendorService) GetVendorByID(ctx context.Context, organizationID string, vendorID string, userID string) (*domain.Vendor, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.vendorRepo.FindVendorByID(ctx, organizationID, vendorID)
}

// ListVendors retrieves a paginated list of vendors.
func (s *vendorService) ListVendors(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Vendor, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.vendorRepo.ListVendors(ctx, organizationID, limit, offset)
}

// UpdateVendor updates an existing vendor's details.
func (s *vendorService) UpdateVendor(ctx context.Context, organizationID string, vendorID string, req dto.UpdateVendorRequest, userID string) (*domain.Vendor, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for UpdateVendor", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	vendor, err := s.vendorRepo.FindVendorByID(ctx, organizationID, vendorID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		vendor.Name = *req.Name
	}
	if req.Email != nil {
		vendor.Email = *req.Email
	}
	if req.Phone != nil {
		vendor.Phone = *req.Phone
	}
	if req.Address != nil {
		vendor.Address = *req.Address
	}
	if req.TaxNumber != nil {
		vendor.TaxNumber = *req.TaxNumber
	}
	if req.IsActive != nil {
		vendor.IsActive = *req.IsActive
	}

	now := time.Now().UTC()
	vendor.LastUpdatedAt = now
	vendor.LastUpdatedBy = userID

	if err := s.vendorRepo.UpdateVendor(ctx, *vendor); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: vendor email already exists", apperrors.ErrDuplicate)
		}
		logger.Error("Failed to update vendor", slog.String("error", err.Error()), slog.String("vendor_id", vendorID))
		return nil, fmt.Errorf("failed to update vendor: %w", err)
	}

	logger.Info("Vendor updated", slog.String("vendor_id", vendorID))
	return vendor, nil
}

// DeleteVendor deactivates a vendor. Vendors with an outstanding balance are
// refused.
func (s *vendorService) DeleteVendor(ctx context.Context, organizationID string, vendorID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for DeleteVendor", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}

	vendor, err := s.vendorRepo.FindVendorByID(ctx, organizationID, vendorID)
	if err != nil {
		return err
	}

	if !vendor.OutstandingBalance.IsZero() {
		return fmt.Errorf("%w: outstanding balance is %s", ErrPartyHasBalance, vendor.OutstandingBalance.String())
	}

	now := time.Now().UTC()
	if err := s.vendorRepo.DeactivateVendor(ctx, organizationID, vendorID, userID, now); err != nil {
		logger.Error("Failed to deactivate vendor", slog.String("error", err.Error()), slog.String("vendor_id", vendorID))
		return fmt.Errorf("failed to deactivate vendor: %w", err)
	}

	logger.Info("Vendor deactivated", slog.String("vendor_id", vendorID))
	return nil
}
