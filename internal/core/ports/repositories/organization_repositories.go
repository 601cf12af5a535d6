package repositories

import (
	"context"
	"time"

	"github.com/finbooks/finbooks_backend/internal/core/domain"
)

// OrganizationReader defines read operations for organization data
type OrganizationReader interface {
	// FindOrganizationByID retrieves a specific organization by its unique identifier.
	FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error)

	// ListOrganizationsByUser retrieves the organizations a user is a member of.
	ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error)

	// FindUserOrganization retrieves the membership of a user in an organization,
	// or ErrNotFound if the user is not a member.
	FindUserOrganization(ctx context.Context, userID string, organizationID string) (*domain.UserOrganization, error)

	// ListMembers retrieves all memberships of an organization.
	ListMembers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error)
}

// OrganizationWriter defines write operations for organization data
type OrganizationWriter interface {
	// SaveOrganization persists a new organization and its creator's OWNER
	// membership in one transaction.
	SaveOrganization(ctx context.Context, organization domain.Organization, creatorMembership domain.UserOrganization) error

	// UpdateOrganization updates an existing organization's details.
	UpdateOrganization(ctx context.Context, organization domain.Organization) error

	// SaveUserOrganization persists a new membership.
	SaveUserOrganization(ctx context.Context, membership domain.UserOrganization) error

	// UpdateUserOrganizationRole changes the role of an existing membership.
	UpdateUserOrganizationRole(ctx context.Context, userID string, organizationID string, role domain.OrganizationRole) error

	// DeleteUserOrganization removes a membership.
	DeleteUserOrganization(ctx context.Context, userID string, organizationID string) error

	// DeactivateOrganization marks an organization as inactive.
	DeactivateOrganization(ctx context.Context, organizationID string, userID string, now time.Time) error
}

// OrganizationRepositoryFacade combines all organization-related repository interfaces
type OrganizationRepositoryFacade interface {
	OrganizationReader
	OrganizationWriter
}
