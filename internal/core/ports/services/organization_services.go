package services

import (
	"context"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
	"github.com/finbooks/finbooks_backend/internal/dto"
)

// OrganizationReaderSvc defines read operations for organization data
type OrganizationReaderSvc interface {
	// GetOrganizationByID retrieves a specific organization by its ID.
	GetOrganizationByID(ctx context.Context, organizationID string, userID string) (*domain.Organization, error)

	// ListUserOrganizations retrieves the organizations a user is a member of.
	ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error)

	// ListMembers retrieves all memberships of an organization.
	// Only members of the organization can access this data.
	ListMembers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error)
}

// OrganizationWriterSvc defines write operations for organization data
type OrganizationWriterSvc interface {
	// CreateOrganization persists a new organization with the creator as OWNER.
	CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error)

	// UpdateOrganization updates an existing organization's details.
	UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, userID string) (*domain.Organization, error)

	// DeactivateOrganization marks an organization as inactive.
	DeactivateOrganization(ctx context.Context, organizationID string, userID string) error
}

// OrganizationMembershipSvc defines operations for managing organization membership
type OrganizationMembershipSvc interface {
	// AddMember adds a user to an organization with a specific role.
	AddMember(ctx context.Context, requestingUserID string, targetUserID string, organizationID string, role domain.OrganizationRole) error

	// RemoveMember removes a user from an organization.
	// Only organization admins can remove members.
	RemoveMember(ctx context.Context, requestingUserID string, targetUserID string, organizationID string) error

	// UpdateMemberRole updates a user's role in an organization.
	// Only organization admins can update roles.
	UpdateMemberRole(ctx context.Context, requestingUserID string, targetUserID string, organizationID string, newRole domain.OrganizationRole) error
}

// OrganizationAuthorizerSvc defines operations for organization authorization
type OrganizationAuthorizerSvc interface {
	// AuthorizeUserAction checks if a user has the required role in an organization.
	AuthorizeUserAction(ctx context.Context, userID string, organizationID string, requiredRole domain.OrganizationRole) error
}

// OrganizationSvcFacade combines all organization-related service interfaces
// This is a facade for clients that need access to all operations
type OrganizationSvcFacade interface {
	OrganizationReaderSvc
	OrganizationWriterSvc
	OrganizationMembershipSvc
	OrganizationAuthorizerSvc
}
