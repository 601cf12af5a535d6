package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	"github.com/finbooks/finbooks_backend/internal/models"
	"github.com/finbooks/finbooks_backend/internal/utils/mapping"
	"github.com/finbooks/finbooks_backend/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxBillRepository struct {
	BaseRepository
}

// newPgxBillRepository creates a new repository for bill data.
func newPgxBillRepository(pool *pgxpool.Pool) portsrepo.BillRepositoryWithTx {
	return &PgxBillRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxBillRepository implements portsrepo.BillRepositoryWithTx
var _ portsrepo.BillRepositoryWithTx = (*PgxBillRepository)(nil)

const billColumns = `bill_id, organization_id, vendor_id, bill_number, bill_date, due_date, status, subtotal, tax_amount, total_amount, paid_amount, balance, reference, notes, created_at, created_by, last_updated_at, last_updated_by`

const billItemColumns = `bill_item_id, bill_id, item_id, description, quantity, unit_price, discount, tax_rate, amount, line_order`

func scanBill(row pgx.Row) (models.Bill, error) {
	var m models.Bill
	err := row.Scan(
		&m.BillID,
		&m.OrganizationID,
		&m.VendorID,
		&m.BillNumber,
		&m.BillDate,
		&m.DueDate,
		&m.Status,
		&m.Subtotal,
		&m.TaxAmount,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.Balance,
		&m.Reference,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertBillItemsTx batch-inserts the line items of a bill.
func (r *PgxBillRepository) insertBillItemsTx(ctx context.Context, tx pgx.Tx, billID string, items []domain.BillItem) error {
	query := `
		INSERT INTO bill_items (` + billItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelBillItem(item)
		batch.Queue(query,
			m.BillItemID,
			m.BillID,
			m.ItemID,
			m.Description,
			m.Quantity,
			m.UnitPrice,
			m.Discount,
			m.TaxRate,
			m.Amount,
			m.LineOrder,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert bill items for bill %s: %w", billID, err)
	}
	return nil
}

// SaveBill persists a new draft bill and its items in one transaction.
// Drafts do not affect the vendor outstanding balance.
func (r *PgxBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	modelBill := mapping.ToModelBill(bill)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO bills (` + billColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, query,
		modelBill.BillID,
		modelBill.OrganizationID,
		modelBill.VendorID,
		modelBill.BillNumber,
		modelBill.BillDate,
		modelBill.DueDate,
		modelBill.Status,
		modelBill.Subtotal,
		modelBill.TaxAmount,
		modelBill.TotalAmount,
		modelBill.PaidAmount,
		modelBill.Balance,
		modelBill.Reference,
		modelBill.Notes,
		modelBill.CreatedAt,
		modelBill.CreatedBy,
		modelBill.LastUpdatedAt,
		modelBill.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: bill number %s already exists", apperrors.ErrDuplicate, modelBill.BillNumber)
		}
		return fmt.Errorf("failed to insert bill %s: %w", modelBill.BillID, err)
	}

	if err := r.insertBillItemsTx(ctx, tx, bill.BillID, bill.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateBill replaces the mutable fields and items of a bill. For non-draft
// bills the vendor outstanding balance is adjusted by the total delta in the
// same transaction.
func (r *PgxBillRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	modelBill := mapping.ToModelBill(bill)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var oldStatus models.BillStatus
	var oldTotal decimal.Decimal
	lockQuery := `
		SELECT status, total_amount FROM bills
		WHERE bill_id = $1 AND organization_id = $2
		FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, lockQuery, modelBill.BillID, modelBill.OrganizationID).Scan(&oldStatus, &oldTotal); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock bill %s for update: %w", modelBill.BillID, err)
	}

	query := `
		UPDATE bills
		SET vendor_id = $3, bill_date = $4, due_date = $5, subtotal = $6, tax_amount = $7, total_amount = $8,
		    balance = $9, reference = $10, notes = $11, last_updated_at = $12, last_updated_by = $13
		WHERE bill_id = $1 AND organization_id = $2;
	`
	_, err = tx.Exec(ctx, query,
		modelBill.BillID,
		modelBill.OrganizationID,
		modelBill.VendorID,
		modelBill.BillDate,
		modelBill.DueDate,
		modelBill.Subtotal,
		modelBill.TaxAmount,
		modelBill.TotalAmount,
		modelBill.Balance,
		modelBill.Reference,
		modelBill.Notes,
		modelBill.LastUpdatedAt,
		modelBill.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update bill %s: %w", modelBill.BillID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM bill_items WHERE bill_id = $1;`, modelBill.BillID); err != nil {
		return fmt.Errorf("failed to delete bill items for bill %s: %w", modelBill.BillID, err)
	}
	if err := r.insertBillItemsTx(ctx, tx, bill.BillID, bill.Items); err != nil {
		return err
	}

	// Drafts never contributed to the outstanding balance.
	if oldStatus != "DRAFT" {
		delta := modelBill.TotalAmount.Sub(oldTotal)
		if err := adjustVendorOutstandingTx(ctx, tx, modelBill.VendorID, delta, modelBill.LastUpdatedBy, modelBill.LastUpdatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateBillStatus transitions the status of a bill. The row is locked and the
// vendor outstanding balance is adjusted in the same transaction when the
// transition requires it: leaving DRAFT adds the open balance, entering
// CANCELLED removes it.
func (r *PgxBillRepository) UpdateBillStatus(ctx context.Context, organizationID string, billID string, status domain.BillStatus, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var oldStatus models.BillStatus
	var balance decimal.Decimal
	var vendorID string
	lockQuery := `
		SELECT status, balance, vendor_id FROM bills
		WHERE bill_id = $1 AND organization_id = $2
		FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, lockQuery, billID, organizationID).Scan(&oldStatus, &balance, &vendorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock bill %s for status update: %w", billID, err)
	}

	query := `
		UPDATE bills
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE bill_id = $1 AND organization_id = $2;
	`
	if _, err := tx.Exec(ctx, query, billID, organizationID, string(status), now, userID); err != nil {
		return fmt.Errorf("failed to update status of bill %s: %w", billID, err)
	}

	delta := decimal.Zero
	leavingDraft := oldStatus == "DRAFT"
	enteringCancelled := status == domain.BillCancelled
	if leavingDraft && !enteringCancelled {
		delta = balance
	} else if !leavingDraft && enteringCancelled {
		delta = balance.Neg()
	}
	if !delta.IsZero() {
		if err := adjustVendorOutstandingTx(ctx, tx, vendorID, delta, userID, now); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteBill removes a bill and its items. Only drafts are deletable, and
// drafts never contribute to the outstanding balance.
func (r *PgxBillRepository) DeleteBill(ctx context.Context, organizationID string, billID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM bill_items WHERE bill_id = $1;`, billID); err != nil {
		return fmt.Errorf("failed to delete bill items for bill %s: %w", billID, err)
	}

	query := `
		DELETE FROM bills
		WHERE bill_id = $1 AND organization_id = $2 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query, billID, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete bill %s: %w", billID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: draft bill %s not found for delete", apperrors.ErrNotFound, billID)
	}

	return r.Commit(ctx, tx)
}

// FindBillByID retrieves a specific bill with its items.
func (r *PgxBillRepository) FindBillByID(ctx context.Context, organizationID string, billID string) (*domain.Bill, error) {
	query := `
		SELECT ` + billColumns + `
		FROM bills
		WHERE bill_id = $1 AND organization_id = $2;
	`
	m, err := scanBill(r.Pool.QueryRow(ctx, query, billID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find bill by ID %s: %w", billID, err)
	}

	items, err := r.findBillItems(ctx, billID)
	if err != nil {
		return nil, err
	}

	domainBill := mapping.ToDomainBill(m)
	domainBill.Items = items
	return &domainBill, nil
}

func (r *PgxBillRepository) findBillItems(ctx context.Context, billID string) ([]domain.BillItem, error) {
	query := `
		SELECT ` + billItemColumns + `
		FROM bill_items
		WHERE bill_id = $1
		ORDER BY line_order;
	`
	rows, err := r.Pool.Query(ctx, query, billID)
	if err != nil {
		return nil, fmt.Errorf("failed to query bill items for bill %s: %w", billID, err)
	}
	defer rows.Close()

	items := []models.BillItem{}
	for rows.Next() {
		var m models.BillItem
		err := rows.Scan(
			&m.BillItemID,
			&m.BillID,
			&m.ItemID,
			&m.Description,
			&m.Quantity,
			&m.UnitPrice,
			&m.Discount,
			&m.TaxRate,
			&m.Amount,
			&m.LineOrder,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill item row for bill %s: %w", billID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bill item rows for bill %s: %w", billID, err)
	}

	return mapping.ToDomainBillItemSlice(items), nil
}

// ListBills retrieves a paginated list of bills for an organization using
// token-based pagination on (bill_date, created_at).
func (r *PgxBillRepository) ListBills(ctx context.Context, organizationID string, status *domain.BillStatus, vendorID *string, overdueOnly bool, limit int, nextToken *string) ([]domain.Bill, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + billColumns + `
		FROM bills
	`
	filterClause := `WHERE organization_id = $1`
	args := []interface{}{organizationID}

	if status != nil {
		args = append(args, string(*status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}
	if vendorID != nil && *vendorID != "" {
		args = append(args, *vendorID)
		filterClause += ` AND vendor_id = $` + strconv.Itoa(len(args))
	}
	if overdueOnly {
		filterClause += ` AND due_date < NOW() AND balance > 0 AND status NOT IN ('DRAFT', 'PAID', 'CANCELLED')`
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (bill_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	orderByClause := `ORDER BY bill_date DESC, created_at DESC`
	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query bills for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	modelBills := make([]models.Bill, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanBill(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan bill row for organization %s: %w", organizationID, scanErr)
		}
		modelBills = append(modelBills, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating bill rows for organization %s: %w", organizationID, err)
	}

	var nextTokenVal *string
	results := modelBills
	if len(modelBills) > limit {
		last := modelBills[limit-1]
		token := pagination.EncodeToken(last.BillDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelBills[:limit]
	}

	domainBills := make([]domain.Bill, len(results))
	for i, m := range results {
		domainBills[i] = mapping.ToDomainBill(m)
	}
	return domainBills, nextTokenVal, nil
}
