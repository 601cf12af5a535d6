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

type PgxInvoiceRepository struct {
	BaseRepository
}

// newPgxInvoiceRepository creates a new repository for invoice data.
func newPgxInvoiceRepository(pool *pgxpool.Pool) portsrepo.InvoiceRepositoryWithTx {
	return &PgxInvoiceRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxInvoiceRepository implements portsrepo.InvoiceRepositoryWithTx
var _ portsrepo.InvoiceRepositoryWithTx = (*PgxInvoiceRepository)(nil)

const invoiceColumns = `invoice_id, organization_id, customer_id, invoice_number, invoice_date, due_date, status, subtotal, tax_amount, total_amount, paid_amount, balance, notes, terms_and_conditions, billing_address, shipping_address, created_at, created_by, last_updated_at, last_updated_by`

const invoiceItemColumns = `invoice_item_id, invoice_id, item_id, description, quantity, unit_price, discount, tax_rate, amount, line_order`

func scanInvoice(row pgx.Row) (models.Invoice, error) {
	var m models.Invoice
	err := row.Scan(
		&m.InvoiceID,
		&m.OrganizationID,
		&m.CustomerID,
		&m.InvoiceNumber,
		&m.InvoiceDate,
		&m.DueDate,
		&m.Status,
		&m.Subtotal,
		&m.TaxAmount,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.Balance,
		&m.Notes,
		&m.TermsAndConditions,
		&m.BillingAddress,
		&m.ShippingAddress,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertInvoiceItemsTx batch-inserts the line items of an invoice.
func (r *PgxInvoiceRepository) insertInvoiceItemsTx(ctx context.Context, tx pgx.Tx, invoiceID string, items []domain.InvoiceItem) error {
	query := `
		INSERT INTO invoice_items (` + invoiceItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, item := range items {
		m := mapping.ToModelInvoiceItem(item)
		batch.Queue(query,
			m.InvoiceItemID,
			m.InvoiceID,
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
		return fmt.Errorf("failed to insert invoice items for invoice %s: %w", invoiceID, err)
	}
	return nil
}

// SaveInvoice persists a new draft invoice and its items in one transaction.
// Drafts do not affect the customer outstanding balance.
func (r *PgxInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	modelInv := mapping.ToModelInvoice(invoice)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);
	`
	_, err = tx.Exec(ctx, query,
		modelInv.InvoiceID,
		modelInv.OrganizationID,
		modelInv.CustomerID,
		modelInv.InvoiceNumber,
		modelInv.InvoiceDate,
		modelInv.DueDate,
		modelInv.Status,
		modelInv.Subtotal,
		modelInv.TaxAmount,
		modelInv.TotalAmount,
		modelInv.PaidAmount,
		modelInv.Balance,
		modelInv.Notes,
		modelInv.TermsAndConditions,
		modelInv.BillingAddress,
		modelInv.ShippingAddress,
		modelInv.CreatedAt,
		modelInv.CreatedBy,
		modelInv.LastUpdatedAt,
		modelInv.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: invoice number %s already exists", apperrors.ErrDuplicate, modelInv.InvoiceNumber)
		}
		return fmt.Errorf("failed to insert invoice %s: %w", modelInv.InvoiceID, err)
	}

	if err := r.insertInvoiceItemsTx(ctx, tx, invoice.InvoiceID, invoice.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoice replaces the mutable fields and items of an invoice. For
// non-draft invoices the customer outstanding balance is adjusted by the
// total delta in the same transaction.
func (r *PgxInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	modelInv := mapping.ToModelInvoice(invoice)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	// Lock the row and read the previous total for the outstanding delta.
	var oldStatus models.InvoiceStatus
	var oldTotal decimal.Decimal
	lockQuery := `
		SELECT status, total_amount FROM invoices
		WHERE invoice_id = $1 AND organization_id = $2
		FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, lockQuery, modelInv.InvoiceID, modelInv.OrganizationID).Scan(&oldStatus, &oldTotal); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock invoice %s for update: %w", modelInv.InvoiceID, err)
	}

	query := `
		UPDATE invoices
		SET customer_id = $3, invoice_date = $4, due_date = $5, subtotal = $6, tax_amount = $7, total_amount = $8,
		    balance = $9, notes = $10, terms_and_conditions = $11, billing_address = $12, shipping_address = $13,
		    last_updated_at = $14, last_updated_by = $15
		WHERE invoice_id = $1 AND organization_id = $2;
	`
	_, err = tx.Exec(ctx, query,
		modelInv.InvoiceID,
		modelInv.OrganizationID,
		modelInv.CustomerID,
		modelInv.InvoiceDate,
		modelInv.DueDate,
		modelInv.Subtotal,
		modelInv.TaxAmount,
		modelInv.TotalAmount,
		modelInv.Balance,
		modelInv.Notes,
		modelInv.TermsAndConditions,
		modelInv.BillingAddress,
		modelInv.ShippingAddress,
		modelInv.LastUpdatedAt,
		modelInv.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update invoice %s: %w", modelInv.InvoiceID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, modelInv.InvoiceID); err != nil {
		return fmt.Errorf("failed to delete invoice items for invoice %s: %w", modelInv.InvoiceID, err)
	}
	if err := r.insertInvoiceItemsTx(ctx, tx, invoice.InvoiceID, invoice.Items); err != nil {
		return err
	}

	// Drafts never contributed to the outstanding balance.
	if oldStatus != "DRAFT" {
		delta := modelInv.TotalAmount.Sub(oldTotal)
		if err := adjustCustomerOutstandingTx(ctx, tx, modelInv.CustomerID, delta, modelInv.LastUpdatedBy, modelInv.LastUpdatedAt); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// UpdateInvoiceStatus transitions the status of an invoice. The row is locked
// and the customer outstanding balance is adjusted in the same transaction
// when the transition requires it: leaving DRAFT adds the open balance,
// entering VOID or CANCELLED removes it.
func (r *PgxInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, organizationID string, invoiceID string, status domain.InvoiceStatus, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var oldStatus models.InvoiceStatus
	var balance decimal.Decimal
	var customerID string
	lockQuery := `
		SELECT status, balance, customer_id FROM invoices
		WHERE invoice_id = $1 AND organization_id = $2
		FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, lockQuery, invoiceID, organizationID).Scan(&oldStatus, &balance, &customerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock invoice %s for status update: %w", invoiceID, err)
	}

	query := `
		UPDATE invoices
		SET status = $3, last_updated_at = $4, last_updated_by = $5
		WHERE invoice_id = $1 AND organization_id = $2;
	`
	if _, err := tx.Exec(ctx, query, invoiceID, organizationID, string(status), now, userID); err != nil {
		return fmt.Errorf("failed to update status of invoice %s: %w", invoiceID, err)
	}

	delta := decimal.Zero
	leavingDraft := oldStatus == "DRAFT"
	enteringClosed := status == domain.InvoiceVoid || status == domain.InvoiceCancelled
	if leavingDraft && !enteringClosed {
		delta = balance
	} else if !leavingDraft && enteringClosed {
		delta = balance.Neg()
	}
	if !delta.IsZero() {
		if err := adjustCustomerOutstandingTx(ctx, tx, customerID, delta, userID, now); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// DeleteInvoice removes an invoice and its items. Only draft and cancelled
// invoices are deletable; neither contributes to the outstanding balance.
func (r *PgxInvoiceRepository) DeleteInvoice(ctx context.Context, organizationID string, invoiceID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1;`, invoiceID); err != nil {
		return fmt.Errorf("failed to delete invoice items for invoice %s: %w", invoiceID, err)
	}

	query := `
		DELETE FROM invoices
		WHERE invoice_id = $1 AND organization_id = $2 AND status IN ('DRAFT', 'CANCELLED');
	`
	cmdTag, err := tx.Exec(ctx, query, invoiceID, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete invoice %s: %w", invoiceID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: deletable invoice %s not found", apperrors.ErrNotFound, invoiceID)
	}

	return r.Commit(ctx, tx)
}

// FindInvoiceByID retrieves a specific invoice with its items.
func (r *PgxInvoiceRepository) FindInvoiceByID(ctx context.Context, organizationID string, invoiceID string) (*domain.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices
		WHERE invoice_id = $1 AND organization_id = $2;
	`
	m, err := scanInvoice(r.Pool.QueryRow(ctx, query, invoiceID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find invoice by ID %s: %w", invoiceID, err)
	}

	items, err := r.findInvoiceItems(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	domainInv := mapping.ToDomainInvoice(m)
	domainInv.Items = items
	return &domainInv, nil
}

func (r *PgxInvoiceRepository) findInvoiceItems(ctx context.Context, invoiceID string) ([]domain.InvoiceItem, error) {
	query := `
		SELECT ` + invoiceItemColumns + `
		FROM invoice_items
		WHERE invoice_id = $1
		ORDER BY line_order;
	`
	rows, err := r.Pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query invoice items for invoice %s: %w", invoiceID, err)
	}
	defer rows.Close()

	items := []models.InvoiceItem{}
	for rows.Next() {
		var m models.InvoiceItem
		err := rows.Scan(
			&m.InvoiceItemID,
			&m.InvoiceID,
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
			return nil, fmt.Errorf("failed to scan invoice item row for invoice %s: %w", invoiceID, err)
		}
		items = append(items, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating invoice item rows for invoice %s: %w", invoiceID, err)
	}

	return mapping.ToDomainInvoiceItemSlice(items), nil
}

// ListInvoices retrieves a paginated list of invoices for an organization using
// token-based pagination on (invoice_date, created_at).
func (r *PgxInvoiceRepository) ListInvoices(ctx context.Context, organizationID string, status *domain.InvoiceStatus, customerID *string, overdueOnly bool, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + invoiceColumns + `
		FROM invoices
	`
	filterClause := `WHERE organization_id = $1`
	args := []interface{}{organizationID}

	if status != nil {
		args = append(args, string(*status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}
	if customerID != nil && *customerID != "" {
		args = append(args, *customerID)
		filterClause += ` AND customer_id = $` + strconv.Itoa(len(args))
	}
	if overdueOnly {
		filterClause += ` AND due_date < NOW() AND balance > 0 AND status NOT IN ('DRAFT', 'PAID', 'VOID', 'CANCELLED')`
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (invoice_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	orderByClause := `ORDER BY invoice_date DESC, created_at DESC`
	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query invoices for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	modelInvoices := make([]models.Invoice, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanInvoice(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan invoice row for organization %s: %w", organizationID, scanErr)
		}
		modelInvoices = append(modelInvoices, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating invoice rows for organization %s: %w", organizationID, err)
	}

	var nextTokenVal *string
	results := modelInvoices
	if len(modelInvoices) > limit {
		last := modelInvoices[limit-1]
		token := pagination.EncodeToken(last.InvoiceDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelInvoices[:limit]
	}

	domainInvoices := make([]domain.Invoice, len(results))
	for i, m := range results {
		domainInvoices[i] = mapping.ToDomainInvoice(m)
	}
	return domainInvoices, nextTokenVal, nil
}
