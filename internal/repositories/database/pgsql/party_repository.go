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
	"github.com/shopspring/decimal"
)

// adjustCustomerOutstandingTx applies a signed delta to a customer's
// outstanding balance inside an externally managed transaction. The UPDATE
// itself takes the row lock.
func adjustCustomerOutstandingTx(ctx context.Context, tx pgx.Tx, customerID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE customers
		SET outstanding_balance = COALESCE(outstanding_balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE customer_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, customerID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust outstanding balance for customer %s: %w", customerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %s not found during balance adjustment", apperrors.ErrNotFound, customerID)
	}
	return nil
}

// adjustVendorOutstandingTx applies a signed delta to a vendor's outstanding
// balance inside an externally managed transaction.
func adjustVendorOutstandingTx(ctx context.Context, tx pgx.Tx, vendorID string, delta decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE vendors
		SET outstanding_balance = COALESCE(outstanding_balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE vendor_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query, vendorID, delta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust outstanding balance for vendor %s: %w", vendorID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: vendor %s not found during balance adjustment", apperrors.ErrNotFound, vendorID)
	}
	return nil
}

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxCustomerRepository implements portsrepo.CustomerRepositoryFacade
var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, organization_id, name, email, phone, billing_address, shipping_address, tax_number, outstanding_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.OrganizationID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.BillingAddress,
		&m.ShippingAddress,
		&m.TaxNumber,
		&m.OutstandingBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)

	query := `
		INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.OrganizationID,
		m.Name,
		m.Email,
		m.Phone,
		m.BillingAddress,
		m.ShippingAddress,
		m.TaxNumber,
		m.OutstandingBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: customer with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save customer %s: %w", m.CustomerID, err)
	}
	return nil
}

// FindCustomerByID retrieves a customer by its ID within an organization.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, organizationID string, customerID string) (*domain.Customer, error) {
	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE customer_id = $1 AND organization_id = $2;
	`
	m, err := scanCustomer(r.Pool.QueryRow(ctx, query, customerID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find customer by ID %s: %w", customerID, err)
	}

	domainCustomer := mapping.ToDomainCustomer(m)
	return &domainCustomer, nil
}

// ListCustomers retrieves a paginated list of active customers for an organization.
func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Customer, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE organization_id = $1 AND is_active = TRUE
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		m, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer row for organization %s: %w", organizationID, err)
		}
		customers = append(customers, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating customer rows for organization %s: %w", organizationID, rows.Err())
	}

	return mapping.ToDomainCustomerSlice(customers), nil
}

// UpdateCustomer updates an existing customer's details. The outstanding
// balance is maintained by invoice and payment writes, not here.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	m := mapping.ToModelCustomer(customer)

	query := `
		UPDATE customers
		SET name = $3, email = $4, phone = $5, billing_address = $6, shipping_address = $7, tax_number = $8, is_active = $9, last_updated_at = $10, last_updated_by = $11
		WHERE customer_id = $1 AND organization_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.OrganizationID,
		m.Name,
		m.Email,
		m.Phone,
		m.BillingAddress,
		m.ShippingAddress,
		m.TaxNumber,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: customer with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to execute update customer %s: %w", m.CustomerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateCustomer marks a customer as inactive.
func (r *PgxCustomerRepository) DeactivateCustomer(ctx context.Context, organizationID string, customerID string, userID string, now time.Time) error {
	query := `
		UPDATE customers
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE customer_id = $1 AND organization_id = $2 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, customerID, organizationID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate customer %s: %w", customerID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

type PgxVendorRepository struct {
	BaseRepository
}

// newPgxVendorRepository creates a new repository for vendor data.
func newPgxVendorRepository(pool *pgxpool.Pool) portsrepo.VendorRepositoryFacade {
	return &PgxVendorRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxVendorRepository implements portsrepo.VendorRepositoryFacade
var _ portsrepo.VendorRepositoryFacade = (*PgxVendorRepository)(nil)

const vendorColumns = `vendor_id, organization_id, name, email, phone, address, tax_number, outstanding_balance, is_active, created_at, created_by, last_updated_at, last_updated_by`

func scanVendor(row pgx.Row) (models.Vendor, error) {
	var m models.Vendor
	err := row.Scan(
		&m.VendorID,
		&m.OrganizationID,
		&m.Name,
		&m.Email,
		&m.Phone,
		&m.Address,
		&m.TaxNumber,
		&m.OutstandingBalance,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveVendor inserts a new vendor.
func (r *PgxVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	m := mapping.ToModelVendor(vendor)

	query := `
		INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.VendorID,
		m.OrganizationID,
		m.Name,
		m.Email,
		m.Phone,
		m.Address,
		m.TaxNumber,
		m.OutstandingBalance,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: vendor with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save vendor %s: %w", m.VendorID, err)
	}
	return nil
}

// FindVendorByID retrieves a vendor by its ID within an organization.
func (r *PgxVendorRepository) FindVendorByID(ctx context.Context, organizationID string, vendorID string) (*domain.Vendor, error) {
	query := `
		SELECT ` + vendorColumns + `
		FROM vendors
		WHERE vendor_id = $1 AND organization_id = $2;
	`
	m, err := scanVendor(r.Pool.QueryRow(ctx, query, vendorID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find vendor by ID %s: %w", vendorID, err)
	}

	domainVendor := mapping.ToDomainVendor(m)
	return &domainVendor, nil
}

// ListVendors retrieves a paginated list of active vendors for an organization.
func (r *PgxVendorRepository) ListVendors(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Vendor, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + vendorColumns + `
		FROM vendors
		WHERE organization_id = $1 AND is_active = TRUE
		ORDER BY name
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, organizationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	vendors := []models.Vendor{}
	for rows.Next() {
		m, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendor row for organization %s: %w", organizationID, err)
		}
		vendors = append(vendors, m)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating vendor rows for organization %s: %w", organizationID, rows.Err())
	}

	return mapping.ToDomainVendorSlice(vendors), nil
}

// UpdateVendor updates an existing vendor's details. The outstanding balance
// is maintained by bill and payment writes, not here.
func (r *PgxVendorRepository) UpdateVendor(ctx context.Context, vendor domain.Vendor) error {
	m := mapping.ToModelVendor(vendor)

	query := `
		UPDATE vendors
		SET name = $3, email = $4, phone = $5, address = $6, tax_number = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE vendor_id = $1 AND organization_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.VendorID,
		m.OrganizationID,
		m.Name,
		m.Email,
		m.Phone,
		m.Address,
		m.TaxNumber,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: vendor with email %s already exists", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to execute update vendor %s: %w", m.VendorID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeactivateVendor marks a vendor as inactive.
func (r *PgxVendorRepository) DeactivateVendor(ctx context.Context, organizationID string, vendorID string, userID string, now time.Time) error {
	query := `
		UPDATE vendors
		SET is_active = FALSE, last_updated_at = $3, last_updated_by = $4
		WHERE vendor_id = $1 AND organization_id = $2 AND is_active = TRUE;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, vendorID, organizationID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to execute deactivate vendor %s: %w", vendorID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
