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

// ErrTaxRateRange is returned when a tax rate is outside 0-100 percent.
var ErrTaxRateRange = errors.New("tax rate must be between 0 and 100")

// taxService provides tax rate operations.
type taxService struct {
	taxRepo portsrepo.TaxRepositoryFacade
	orgSvc  portssvc.OrganizationSvcFacade
}

// NewTaxService creates a new TaxService.
func NewTaxService(taxRepo portsrepo.TaxRepositoryFacade, orgSvc portssvc.OrganizationSvcFacade) portssvc.TaxSvcFacade {
	return &taxService{
		taxRepo: taxRepo,
		orgSvc:  orgSvc,
	}
}

var _ portssvc.TaxSvcFacade = (*taxService)(nil)

func validateTaxRate(rate decimal.Decimal) error {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrTaxRateRange)
	}
	return nil
}

// CreateTax persists a new tax rate.
func (s *taxService) CreateTax(ctx context.Context, organizationID string, req dto.CreateTaxRequest, userID string) (*domain.Tax, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for CreateTax", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	if err := validateTaxRate(req.Rate); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	tax := domain.Tax{
		TaxID:          uuid.NewString(),
		OrganizationID: organizationID,
		Code:           req.Code,
		Name:           req.Name,
		Rate:           req.Rate,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.taxRepo.SaveTax(ctx, tax); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: tax code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save tax", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save tax: %w", err)
	}

	logger.Info("Tax created", slog.String("tax_id", tax.TaxID), slog.String("code", tax.Code))
	return &tax, nil
}

// GetTaxByID retrieves a specific tax rate.
func (s *taxService) GetTaxByID(ctx context.Context, organizationID string, taxID string, userID string) (*domain.Tax, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.taxRepo.FindTaxByID(ctx, organizationID, taxID)
}

// ListTaxes retrieves a paginated list of tax rates.
func (s *taxService) ListTaxes(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Tax, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.taxRepo.ListTaxes(ctx, organizationID, limit, offset)
}

// UpdateTax updates an existing tax rate's details. Documents already
// created keep the rate they were priced with.
func (s *taxService) UpdateTax(ctx context.Context, organizationID string, taxID string, req dto.UpdateTaxRequest, userID string) (*domain.Tax, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for UpdateTax", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	tax, err := s.taxRepo.FindTaxByID(ctx, organizationID, taxID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tax.Name = *req.Name
	}
	if req.Rate != nil {
		if err := validateTaxRate(*req.Rate); err != nil {
			return nil, err
		}
		tax.Rate = *req.Rate
	}
	if req.IsActive != nil {
		tax.IsActive = *req.IsActive
	}

	now := time.Now().UTC()
	tax.LastUpdatedAt = now
	tax.LastUpdatedBy = userID

	if err := s.taxRepo.UpdateTax(ctx, *tax); err != nil {
		logger.Error("Failed to update tax", slog.String("error", err.Error()), slog.String("tax_id", taxID))
		return nil, fmt.Errorf("failed to update tax: %w", err)
	}

	logger.Info("Tax updated", slog.String("tax_id", taxID))
	return tax, nil
}

// DeleteTax deactivates a tax rate.
func (s *taxService) DeleteTax(ctx context.Context, organizationID string, taxID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for DeleteTax", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}

	if _, err := s.taxRepo.FindTaxByID(ctx, organizationID, taxID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.taxRepo.DeactivateTax(ctx, organizationID, taxID, userID, now); err != nil {
		logger.Error("Failed to deactivate tax", slog.String("error", err.Error()), slog.String("tax_id", taxID))
		return fmt.Errorf("failed to deactivate tax: %w", err)
	}

	logger.Info("Tax deactivated", slog.String("tax_id", taxID))
	return nil
}
