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
	ErrCannotRemoveOwner = errors.New("the organization owner cannot be removed")
	ErrOwnerRoleReserved = errors.New("only the owner can assign the OWNER role")
)

// roleRank orders organization roles for hierarchy checks. A higher rank
// implies all permissions of the lower ranks.
func roleRank(role domain.OrganizationRole) int {
	switch role {
	case domain.RoleOwner:
		return 4
	case domain.RoleAdmin:
		return 3
	case domain.RoleAccountant:
		return 2
	case domain.RoleViewer:
		return 1
	default:
		return 0
	}
}

// hasRequiredRole checks if the user's role meets or exceeds the required role.
func hasRequiredRole(userRole, requiredRole domain.OrganizationRole) bool {
	return roleRank(userRole) >= roleRank(requiredRole)
}

// organizationService implements the OrganizationSvcFacade interface. It owns
// tenant lifecycle, membership management and the role checks every other
// service delegates to.
type organizationService struct {
	organizationRepo portsrepo.OrganizationRepositoryFacade
}

// NewOrganizationService creates a new OrganizationService.
func NewOrganizationService(organizationRepo portsrepo.OrganizationRepositoryFacade) portssvc.OrganizationSvcFacade {
	return &organizationService{
		organizationRepo: organizationRepo,
	}
}

var _ portssvc.OrganizationSvcFacade = (*organizationService)(nil)

// CreateOrganization persists a new organization and makes the creator its
// OWNER in one transaction.
func (s *organizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	fiscalYearStart := req.FiscalYearStart
	if fiscalYearStart == 0 {
		fiscalYearStart = 1
	}

	now := time.Now().UTC()
	organization := domain.Organization{
		OrganizationID:  uuid.NewString(),
		Name:            req.Name,
		LegalName:       req.LegalName,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		CurrencyCode:    req.CurrencyCode,
		FiscalYearStart: fiscalYearStart,
		IsActive:        true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	creatorMembership := domain.UserOrganization{
		UserID:         creatorUserID,
		OrganizationID: organization.OrganizationID,
		Role:           domain.RoleOwner,
		JoinedAt:       now,
	}

	if err := s.organizationRepo.SaveOrganization(ctx, organization, creatorMembership); err != nil {
		logger.Error("Failed to save organization", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save organization: %w", err)
	}

	logger.Info("Organization created",
		slog.String("organization_id", organization.OrganizationID),
		slog.String("creator_id", creatorUserID))
	return &organization, nil
}

// GetOrganizationByID retrieves an organization. Only members can see it.
func (s *organizationService) GetOrganizationByID(ctx context.Context, organizationID string, userID string) (*domain.Organization, error) {
	if err := s.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.organizationRepo.FindOrganizationByID(ctx, organizationID)
}

// ListUserOrganizations retrieves the organizations a user is a member of.
func (s *organizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	organizations, err := s.organizationRepo.ListOrganizationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	if organizations == nil {
		return []domain.Organization{}, nil
	}
	return organizations, nil
}

// ListMembers retrieves all memberships of an organization.
func (s *organizationService) ListMembers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error) {
	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.organizationRepo.ListMembers(ctx, organizationID)
}

// UpdateOrganization updates an existing organization's details.
func (s *organizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, userID string) (*domain.Organization, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAdmin); err != nil {
		logger.Warn("Authorization failed for UpdateOrganization", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	organization, err := s.organizationRepo.FindOrganizationByID(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		organization.Name = *req.Name
	}
	if req.LegalName != nil {
		organization.LegalName = *req.LegalName
	}
	if req.Email != nil {
		organization.Email = *req.Email
	}
	if req.Phone != nil {
		organization.Phone = *req.Phone
	}
	if req.Address != nil {
		organization.Address = *req.Address
	}

	now := time.Now().UTC()
	organization.LastUpdatedAt = now
	organization.LastUpdatedBy = userID

	if err := s.organizationRepo.UpdateOrganization(ctx, *organization); err != nil {
		logger.Error("Failed to update organization", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to update organization: %w", err)
	}

	logger.Info("Organization updated", slog.String("organization_id", organizationID))
	return organization, nil
}

// DeactivateOrganization marks an organization as inactive. Only the owner
// may do this.
func (s *organizationService) DeactivateOrganization(ctx context.Context, organizationID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleOwner); err != nil {
		logger.Warn("Authorization failed for DeactivateOrganization", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}

	now := time.Now().UTC()
	if err := s.organizationRepo.DeactivateOrganization(ctx, organizationID, userID, now); err != nil {
		logger.Error("Failed to deactivate organization", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to deactivate organization: %w", err)
	}

	logger.Info("Organization deactivated", slog.String("organization_id", organizationID))
	return nil
}

// AddMember adds a user to an organization with a specific role. Requires
// ADMIN; the OWNER role can only be assigned by the owner.
func (s *organizationService) AddMember(ctx context.Context, requestingUserID string, targetUserID string, organizationID string, role domain.OrganizationRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		logger.Warn("Authorization failed for AddMember", slog.String("user_id", requestingUserID), slog.String("error", err.Error()))
		return err
	}
	if role == domain.RoleOwner {
		if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleOwner); err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrOwnerRoleReserved)
		}
	}

	membership := domain.UserOrganization{
		UserID:         targetUserID,
		OrganizationID: organizationID,
		Role:           role,
		JoinedAt:       time.Now().UTC(),
	}

	if err := s.organizationRepo.SaveUserOrganization(ctx, membership); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return fmt.Errorf("%w: user %s is already a member", apperrors.ErrDuplicate, targetUserID)
		}
		logger.Error("Failed to add member", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to add member: %w", err)
	}

	logger.Info("Member added",
		slog.String("organization_id", organizationID),
		slog.String("target_user_id", targetUserID),
		slog.String("role", string(role)))
	return nil
}

// RemoveMember removes a user from an organization. The owner cannot be
// removed; members may remove themselves.
func (s *organizationService) RemoveMember(ctx context.Context, requestingUserID string, targetUserID string, organizationID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if requestingUserID != targetUserID {
		if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
			logger.Warn("Authorization failed for RemoveMember", slog.String("user_id", requestingUserID), slog.String("error", err.Error()))
			return err
		}
	}

	membership, err := s.organizationRepo.FindUserOrganization(ctx, targetUserID, organizationID)
	if err != nil {
		return err
	}
	if membership.Role == domain.RoleOwner {
		return fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrCannotRemoveOwner)
	}

	if err := s.organizationRepo.DeleteUserOrganization(ctx, targetUserID, organizationID); err != nil {
		logger.Error("Failed to remove member", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to remove member: %w", err)
	}

	logger.Info("Member removed",
		slog.String("organization_id", organizationID),
		slog.String("target_user_id", targetUserID))
	return nil
}

// UpdateMemberRole changes a member's role. Requires ADMIN; granting or
// revoking OWNER requires the owner.
func (s *organizationService) UpdateMemberRole(ctx context.Context, requestingUserID string, targetUserID string, organizationID string, newRole domain.OrganizationRole) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleAdmin); err != nil {
		logger.Warn("Authorization failed for UpdateMemberRole", slog.String("user_id", requestingUserID), slog.String("error", err.Error()))
		return err
	}

	membership, err := s.organizationRepo.FindUserOrganization(ctx, targetUserID, organizationID)
	if err != nil {
		return err
	}
	if membership.Role == domain.RoleOwner || newRole == domain.RoleOwner {
		if err := s.AuthorizeUserAction(ctx, requestingUserID, organizationID, domain.RoleOwner); err != nil {
			return fmt.Errorf("%w: %s", apperrors.ErrForbidden, ErrOwnerRoleReserved)
		}
	}

	if err := s.organizationRepo.UpdateUserOrganizationRole(ctx, targetUserID, organizationID, newRole); err != nil {
		logger.Error("Failed to update member role", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return fmt.Errorf("failed to update member role: %w", err)
	}

	logger.Info("Member role updated",
		slog.String("organization_id", organizationID),
		slog.String("target_user_id", targetUserID),
		slog.String("role", string(newRole)))
	return nil
}

// AuthorizeUserAction checks if a user has the required role (or higher) in
// an organization. Non-members get ErrForbidden, not ErrNotFound, so the
// response does not leak which organizations exist.
func (s *organizationService) AuthorizeUserAction(ctx context.Context, userID string, organizationID string, requiredRole domain.OrganizationRole) error {
	membership, err := s.organizationRepo.FindUserOrganization(ctx, userID, organizationID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		return fmt.Errorf("failed to find membership: %w", err)
	}

	if !hasRequiredRole(membership.Role, requiredRole) {
		return fmt.Errorf("%w: requires %s role", apperrors.ErrForbidden, requiredRole)
	}
	return nil
}
