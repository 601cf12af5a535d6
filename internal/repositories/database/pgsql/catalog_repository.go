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

type PgxItemRepository struct {
	BaseRepository
}

// newPgxItemRepository creates a new repository for catalog item data.
func newPgxItemRepository(pool *pgxpool.Pool) portsrepo.ItemRepositoryFacade {
	return &PgxItemRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxItemRepository implements portsrepo.ItemRepositoryFacade
var _ portsrepo.ItemRepositoryFacade = (*PgxItemRepository)(nil)

const itemColumns = `item_id, organization_id, code, name, description, unit_price, item_type, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanItem(row pgx.Row) (models.Item, error) {
	var m models.Item
	err := row.Scan(
		&m.ItemID,
		&m.OrganizationID,
		&m.Code,
		&m.Name,
		&m.Description,
		&m.UnitPrice,
		&m.ItemType,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveItem inserts a new item.
func (r *PgxItemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	m := mapping.ToModelItem(item)

	query := `
		INSERT INTO items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ItemID,
		m.OrganizationID,
		m.Code,
		m.Name,
		m.Description,
		m.UnitPrice,
		m.ItemType,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: item code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save item %s: %w", m.ItemID, err)
	}
	return nil
}

// FindItemByID retrieves an item by its ID within an organization.
func (r *PgxItemRepository) FindItemByID(ctx context.Context, organizationID string, itemID string) (*domain.Item, error) {
	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE item_id = $1 AND organization_id = $2;
	`
	m, err := scanItem(r.Pool.QueryRow(ctx, query, itemID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find item by ID %s: %w", itemID, err)
	}

	domainItem := mapping.ToDomainItem(m)
	return &domainItem, nil
}

// FindItemsByIDs retrieves multiple items by their IDs.
func (r *PgxItemRepository) FindItemsByIDs(ctx context.Context, organizationID string, itemIDs []string) (map[string]domain.Item, error) {
	if len(itemIDs) == 0 {
		return map[string]domain.Item{}, nil
	}

	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE organization_id = $1 AND item_id = ANY($2);
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query items by IDs: %w", err)
	}
	defer rows.Close()

	itemsMap := make(map[string]domain.Item)
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row during batch fetch: %w", err)
		}
		itemsMap[m.ItemID] = mapping.ToDomainItem(m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating item rows during batch fetch: %w", err)
	}

	return itemsMap, nil
}

// ListItems retrieves a paginated list of active items for an organization.
func (r *PgxItemRepository) ListItems(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Item, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + itemColumns + `
		FROM items
		WHERE organization_id = $1 AND is_active = TRUE
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query items for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	items := []models.Item{}
	for rows.Next() {
		m, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item row for organization %s: %w", organizationID, err)
		}
		items = append(items, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating item rows for organization %s: %w", organizationID, rows.Err())
	}

	return mapping.ToDomainItemSlice(items), nil
}

// UpdateItem updates an existing item's details.
func (r *PgxItemRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	m := mapping.ToModelItem(item)

	query := `
		UPDATE items
		SET name = $3, description = $4, unit_price = $5, item_type = $6, is_active = $7, last_updated_at = $8, last_updated_by = $9
		WHERE item_id = $1 AND organization_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.ItemID,
		m.OrganizationID,
		m.Name,
		m.Description,
		m.UnitPrice,
		m.ItemType,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update item %s: %w", m.ItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateItem marks an item as inactive.
func (r *PgxItemRepository) DeactivateItem(ctx context.Context, organizationID string, itemID string, userID string, now time.Time) error {
	query := `
		UPDATE items
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE item_id = $1 AND organization_id = $2 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, itemID, organizationID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate item %s: %w", itemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxTaxRepository struct {
	BaseRepository
}

// newPgxTaxRepository creates a new repository for tax rate data.
func newPgxTaxRepository(pool *pgxpool.Pool) portsrepo.TaxRepositoryFacade {
	return &PgxTaxRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTaxRepository implements portsrepo.TaxRepositoryFacade
var _ portsrepo.TaxRepositoryFacade = (*PgxTaxRepository)(nil)

const taxColumns = `tax_id, organization_id, code, name, rate, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanTax(row pgx.Row) (models.Tax, error) {
	var m models.Tax
	err := row.Scan(
		&m.TaxID,
		&m.OrganizationID,
		&m.Code,
		&m.Name,
		&m.Rate,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveTax inserts a new tax rate.
func (r *PgxTaxRepository) SaveTax(ctx context.Context, tax domain.Tax) error {
	m := mapping.ToModelTax(tax)

	query := `
		INSERT INTO taxes (` + taxColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TaxID,
		m.OrganizationID,
		m.Code,
		m.Name,
		m.Rate,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: tax code %s already exists", apperrors.ErrDuplicate, m.Code)
		}
		return fmt.Errorf("failed to save tax %s: %w", m.TaxID, err)
	}
	return nil
}

// FindTaxByID retrieves a tax rate by its ID within an organization.
func (r *PgxTaxRepository) FindTaxByID(ctx context.Context, organizationID string, taxID string) (*domain.Tax, error) {
	query := `
		SELECT ` + taxColumns + `
		FROM taxes
		WHERE tax_id = $1 AND organization_id = $2;
	`
	m, err := scanTax(r.Pool.QueryRow(ctx, query, taxID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find tax by ID %s: %w", taxID, err)
	}

	domainTax := mapping.ToDomainTax(m)
	return &domainTax, nil
}

// ListTaxes retrieves a paginated list of active tax rates for an organization.
func (r *PgxTaxRepository) ListTaxes(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Tax, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + taxColumns + `
		FROM taxes
		WHERE organization_id = $1 AND is_active = TRUE
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query taxes for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	taxes := []models.Tax{}
	for rows.Next() {
		m, err := scanTax(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax row for organization %s: %w", organizationID, err)
		}
		taxes = append(taxes, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating tax rows for organization %s: %w", organizationID, rows.Err())
	}

	return mapping.ToDomainTaxSlice(taxes), nil
}

// UpdateTax updates an existing tax rate's details.
func (r *PgxTaxRepository) UpdateTax(ctx context.Context, tax domain.Tax) error {
	m := mapping.ToModelTax(tax)

	query := `
		UPDATE taxes
		SET name = $3, rate = $4, is_active = $5, last_updated_at = $6, last_updated_by = $7
		WHERE tax_id = $1 AND organization_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.TaxID,
		m.OrganizationID,
		m.Name,
		m.Rate,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update tax %s: %w", m.TaxID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateTax marks a tax rate as inactive.
func (r *PgxTaxRepository) DeactivateTax(ctx context.Context, organizationID string, taxID string, userID string, now time.Time) error {
	query := `
		UPDATE taxes
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE tax_id = $1 AND organization_id = $2 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, taxID, organizationID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate tax %s: %w", taxID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
