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
)

var (
	ErrSystemAccount      = errors.New("system accounts cannot be modified")
	ErrAccountHasBalance  = errors.New("account with a non-zero balance cannot be deleted")
	ErrAccountHasChildren = errors.New("account with child accounts cannot be deleted")
)

// accountService provides chart-of-accounts operations.
type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	orgSvc      portssvc.OrganizationSvcFacade
}

// NewAccountService creates a new AccountService.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade, orgSvc portssvc.OrganizationSvcFacade) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo: accountRepo,
		orgSvc:      orgSvc,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

// CreateAccount persists a new account after validating its code and parent.
func (s *accountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for CreateAccount", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	existing, err := s.accountRepo.FindAccountByCode(ctx, organizationID, req.Code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check account code: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: account code %s already exists", apperrors.ErrDuplicate, req.Code)
	}

	parentID := ""
	if req.ParentAccountID != nil && *req.ParentAccountID != "" {
		parent, err := s.accountRepo.FindAccountByID(ctx, organizationID, *req.ParentAccountID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: parent account %s not found", apperrors.ErrValidation, *req.ParentAccountID)
			}
			return nil, fmt.Errorf("failed to fetch parent account: %w", err)
		}
		if parent.AccountType != req.AccountType {
			return nil, fmt.Errorf("%w: parent account type %s does not match %s", apperrors.ErrValidation, parent.AccountType, req.AccountType)
		}
		parentID = parent.AccountID
	}

	now := time.Now().UTC()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		OrganizationID:  organizationID,
		Code:            req.Code,
		Name:            req.Name,
		AccountType:     req.AccountType,
		ParentAccountID: parentID,
		Description:     req.Description,
		IsActive:        true,
		TaxApplicable:   req.TaxApplicable,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

// GetAccountByID retrieves a specific account.
func (s *accountService) GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
}

// GetAccountByCode retrieves an account by its code.
func (s *accountService) GetAccountByCode(ctx context.Context, organizationID string, code string, userID string) (*domain.Account, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountByCode(ctx, organizationID, code)
}

// GetAccountByIDs retrieves multiple accounts by their IDs.
func (s *accountService) GetAccountByIDs(ctx context.Context, organizationID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.accountRepo.FindAccountsByIDs(ctx, organizationID, accountIDs)
}

// ListAccounts retrieves a paginated list of accounts.
func (s *accountService) ListAccounts(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Account, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.accountRepo.ListAccounts(ctx, organizationID, limit, offset)
}

// UpdateAccount updates an existing account's details. System accounts are
// immutable.
func (s *accountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for UpdateAccount", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return nil, err
	}

	if account.IsSystem {
		return nil, fmt.Errorf("%w: account %s", ErrSystemAccount, accountID)
	}

	updated := false
	if req.Name != nil {
		account.Name = *req.Name
		updated = true
	}
	if req.Description != nil {
		account.Description = *req.Description
		updated = true
	}
	if req.TaxApplicable != nil {
		account.TaxApplicable = *req.TaxApplicable
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}
	if !updated {
		return account, nil
	}

	now := time.Now().UTC()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		logger.Error("Failed to update account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	logger.Info("Account updated", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount deactivates an account. System accounts, accounts with child
// accounts and accounts with a non-zero balance are refused.
func (s *accountService) DeleteAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for DeleteAccount", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}

	account, err := s.accountRepo.FindAccountByID(ctx, organizationID, accountID)
	if err != nil {
		return err
	}

	if account.IsSystem {
		return fmt.Errorf("%w: account %s", ErrSystemAccount, accountID)
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: balance is %s", ErrAccountHasBalance, account.Balance.String())
	}

	hasChildren, err := s.accountRepo.HasChildAccounts(ctx, organizationID, accountID)
	if err != nil {
		return fmt.Errorf("failed to check child accounts: %w", err)
	}
	if hasChildren {
		return fmt.Errorf("%w: account %s", ErrAccountHasChildren, accountID)
	}

	now := time.Now().UTC()
	if err := s.accountRepo.DeactivateAccount(ctx, organizationID, accountID, userID, now); err != nil {
		logger.Error("Failed to deactivate account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return fmt.Errorf("failed to deactivate account: %w", err)
	}

	logger.Info("Account deactivated", slog.String("account_id", accountID))
	return nil
}
