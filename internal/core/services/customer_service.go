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

// ErrPartyHasBalance is returned when deactivating a customer or vendor that
// still carries an outstanding balance.
var ErrPartyHasBalance = errors.New("party with an outstanding balance cannot be deleted")

// customerService provides customer master data operations.
type customerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
	orgSvc       portssvc.OrganizationSvcFacade
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade, orgSvc portssvc.OrganizationSvcFacade) portssvc.CustomerSvcFacade {
	return &customerService{
		customerRepo: customerRepo,
		orgSvc:       orgSvc,
	}
}

var _ portssvc.CustomerSvcFacade = (*customerService)(nil)

// CreateCustomer persists a new customer.
func (s *customerService) CreateCustomer(ctx context.Context, organizationID string, req dto.CreateCustomerRequest, userID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for CreateCustomer", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	now := time.Now().UTC()
	customer := domain.Customer{
		CustomerID:         uuid.NewString(),
		OrganizationID:     organizationID,
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		BillingAddress:     req.BillingAddress,
		ShippingAddress:    req.ShippingAddress,
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

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: customer email %s already exists", apperrors.ErrDuplicate, req.Email)
		}
		logger.Error("Failed to save customer", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

// GetCustomerByID retrieves a specific customer.
func (s *customerService) GetCustomerByID(ctx context.Context, organizationID string, customerID string, userID string) (*domain.Customer, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.customerRepo.FindCustomerByID(ctx, organizationID, customerID)
}

// ListCustomers retrieves a paginated list of customers.
func (s *customerService) ListCustomers(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Customer, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.customerRepo.ListCustomers(ctx, organizationID, limit, offset)
}

// UpdateCustomer updates an existing customer's details.
func (s *customerService) UpdateCustomer(ctx context.Context, organizationID string, customerID string, req dto.UpdateCustomerRequest, userID string) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for UpdateCustomer", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, organizationID, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.BillingAddress != nil {
		customer.BillingAddress = *req.BillingAddress
	}
	if req.ShippingAddress != nil {
		customer.ShippingAddress = *req.ShippingAddress
	}
	if req.TaxNumber != nil {
		customer.TaxNumber = *req.TaxNumber
	}
	if req.IsActive != nil {
		customer.IsActive = *req.IsActive
	}

	now := time.Now().UTC()
	customer.LastUpdatedAt = now
	customer.LastUpdatedBy = userID

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: customer email already exists", apperrors.ErrDuplicate)
		}
		logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, fmt.Errorf("failed to update customer: %w", err)
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

// DeleteCustomer deactivates a customer. Customers with an outstanding
// balance are refused.
func (s *customerService) DeleteCustomer(ctx context.Context, organizationID string, customerID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for DeleteCustomer", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}

	customer, err := s.customerRepo.FindCustomerByID(ctx, organizationID, customerID)
	if err != nil {
		return err
	}

	if !customer.OutstandingBalance.IsZero() {
		return fmt.Errorf("%w: outstanding balance is %s", ErrPartyHasBalance, customer.OutstandingBalance.String())
	}

	now := time.Now().UTC()
	if err := s.customerRepo.DeactivateCustomer(ctx, organizationID, customerID, userID, now); err != nil {
		logger.Error("Failed to deactivate customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return fmt.Errorf("failed to deactivate customer: %w", err)
	}

	logger.Info("Customer deactivated", slog.String("customer_id", customerID))
	return nil
}
