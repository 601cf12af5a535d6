package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_backend/internal/models"
	"github.com/finbooks/finbooks_backend/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxOrganizationRepository struct {
	BaseRepository
}

// newPgxOrganizationRepository creates a new repository for organization and membership data.
func newPgxOrganizationRepository(pool *pgxpool.Pool) portsrepo.OrganizationRepositoryFacade {
	return &PgxOrganizationRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxOrganizationRepository implements portsrepo.OrganizationRepositoryFacade
var _ portsrepo.OrganizationRepositoryFacade = (*PgxOrganizationRepository)(nil)

const organizationColumns = `organization_id, name, legal_name, email, phone, address, currency_code, fiscal_year_start, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanOrganization(row pgx.Row) (models.Organization, error) {
	var m models.Organization
	err := row.Scan(
		&m.OrganizationID,
		&m.Name,
		&m.LegalName,
		&m.Email,
		&m.Phone,
		&m.Address,
		&m.CurrencyCode,
		&m.FiscalYearStart,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveOrganization persists a new organization and its creator's OWNER
// membership in one transaction, so an organization can never exist without
// an owner.
func (r *PgxOrganizationRepository) SaveOrganization(ctx context.Context, organization domain.Organization, creatorMembership domain.UserOrganization) error {
	modelOrg := mapping.ToModelOrganization(organization)
	modelMembership := mapping.ToModelUserOrganization(creatorMembership)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	orgQuery := `
		INSERT INTO organizations (` + organizationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err = tx.Exec(ctx, orgQuery,
		modelOrg.OrganizationID,
		modelOrg.Name,
		modelOrg.LegalName,
		modelOrg.Email,
		modelOrg.Phone,
		modelOrg.Address,
		modelOrg.CurrencyCode,
		modelOrg.FiscalYearStart,
		modelOrg.IsActive,
		modelOrg.CreatedAt,
		modelOrg.CreatedBy,
		modelOrg.LastUpdatedAt,
		modelOrg.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: organization %s already exists", apperrors.ErrDuplicate, modelOrg.OrganizationID)
		}
		return fmt.Errorf("failed to insert organization %s: %w", modelOrg.OrganizationID, err)
	}

	membershipQuery := `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err = tx.Exec(ctx, membershipQuery,
		modelMembership.UserID,
		modelMembership.OrganizationID,
		modelMembership.Role,
		modelMembership.JoinedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert creator membership for organization %s: %w", modelOrg.OrganizationID, err)
	}

	return r.Commit(ctx, tx)
}

// FindOrganizationByID retrieves an organization by its ID.
func (r *PgxOrganizationRepository) FindOrganizationByID(ctx context.Context, organizationID string) (*domain.Organization, error) {
	query := `
		SELECT ` + organizationColumns + `
		FROM organizations
		WHERE organization_id = $1;
	`
	m, err := scanOrganization(r.Pool.QueryRow(ctx, query, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find organization by ID %s: %w", organizationID, err)
	}

	domainOrg := mapping.ToDomainOrganization(m)
	return &domainOrg, nil
}

// ListOrganizationsByUser retrieves the organizations a user is a member of.
func (r *PgxOrganizationRepository) ListOrganizationsByUser(ctx context.Context, userID string) ([]domain.Organization, error) {
	query := `
		SELECT o.organization_id, o.name, o.legal_name, o.email, o.phone, o.address, o.currency_code, o.fiscal_year_start, o.is_active,
		       o.created_at, o.created_by, o.last_updated_at, o.last_updated_by
		FROM organizations o
		JOIN user_organizations uo ON o.organization_id = uo.organization_id
		WHERE uo.user_id = $1
		ORDER BY o.name;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query organizations for user %s: %w", userID, err)
	}
	defer rows.Close()

	orgs := []models.Organization{}
	for rows.Next() {
		m, err := scanOrganization(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan organization row for user %s: %w", userID, err)
		}
		orgs = append(orgs, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating organization rows for user %s: %w", userID, rows.Err())
	}

	return mapping.ToDomainOrganizationSlice(orgs), nil
}

// FindUserOrganization retrieves the membership of a user in an organization.
func (r *PgxOrganizationRepository) FindUserOrganization(ctx context.Context, userID string, organizationID string) (*domain.UserOrganization, error) {
	query := `
		SELECT user_id, organization_id, role, joined_at
		FROM user_organizations
		WHERE user_id = $1 AND organization_id = $2;
	`
	var m models.UserOrganization
	err := r.Pool.QueryRow(ctx, query, userID, organizationID).Scan(
		&m.UserID,
		&m.OrganizationID,
		&m.Role,
		&m.JoinedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find membership of user %s in organization %s: %w", userID, organizationID, err)
	}

	domainMembership := mapping.ToDomainUserOrganization(m)
	return &domainMembership, nil
}

// ListMembers retrieves all memberships of an organization.
func (r *PgxOrganizationRepository) ListMembers(ctx context.Context, organizationID string) ([]domain.UserOrganization, error) {
	query := `
		SELECT user_id, organization_id, role, joined_at
		FROM user_organizations
		WHERE organization_id = $1
		ORDER BY joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query members of organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	memberships := []models.UserOrganization{}
	for rows.Next() {
		var m models.UserOrganization
		if err := rows.Scan(&m.UserID, &m.OrganizationID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan membership row for organization %s: %w", organizationID, err)
		}
		memberships = append(memberships, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating membership rows for organization %s: %w", organizationID, rows.Err())
	}

	return mapping.ToDomainUserOrganizationSlice(memberships), nil
}

// UpdateOrganization updates an existing organization's details.
func (r *PgxOrganizationRepository) UpdateOrganization(ctx context.Context, organization domain.Organization) error {
	m := mapping.ToModelOrganization(organization)

	query := `
		UPDATE organizations
		SET name = $2, legal_name = $3, email = $4, phone = $5, address = $6, fiscal_year_start = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE organization_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.Name,
		m.LegalName,
		m.Email,
		m.Phone,
		m.Address,
		m.FiscalYearStart,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update organization %s: %w", m.OrganizationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SaveUserOrganization persists a new membership.
func (r *PgxOrganizationRepository) SaveUserOrganization(ctx context.Context, membership domain.UserOrganization) error {
	m := mapping.ToModelUserOrganization(membership)

	query := `
		INSERT INTO user_organizations (user_id, organization_id, role, joined_at)
		VALUES ($1, $2, $3, $4);
	`
	_, err := r.Pool.Exec(ctx, query, m.UserID, m.OrganizationID, m.Role, m.JoinedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user %s is already a member of organization %s", apperrors.ErrDuplicate, m.UserID, m.OrganizationID)
		}
		return fmt.Errorf("failed to save membership of user %s in organization %s: %w", m.UserID, m.OrganizationID, err)
	}
	return nil
}

// UpdateUserOrganizationRole changes the role of an existing membership.
func (r *PgxOrganizationRepository) UpdateUserOrganizationRole(ctx context.Context, userID string, organizationID string, role domain.OrganizationRole) error {
	query := `
		UPDATE user_organizations
		SET role = $3
		WHERE user_id = $1 AND organization_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, organizationID, string(role))
	if err != nil {
		return fmt.Errorf("failed to update role of user %s in organization %s: %w", userID, organizationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteUserOrganization removes a membership.
func (r *PgxOrganizationRepository) DeleteUserOrganization(ctx context.Context, userID string, organizationID string) error {
	query := `
		DELETE FROM user_organizations
		WHERE user_id = $1 AND organization_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, userID, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete membership of user %s in organization %s: %w", userID, organizationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateOrganization marks an organization as inactive.
func (r *PgxOrganizationRepository) DeactivateOrganization(ctx context.Context, organizationID string, userID string, now time.Time) error {
	query := `
		UPDATE organizations
		SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3
		WHERE organization_id = $1 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, organizationID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate organization %s: %w", organizationID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
