package pgsql

import (
	"context"
	"database/sql"
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

type PgxPaymentRepository struct {
	BaseRepository
}

// newPgxPaymentRepository creates a new repository for payment data.
func newPgxPaymentRepository(pool *pgxpool.Pool) portsrepo.PaymentRepositoryWithTx {
	return &PgxPaymentRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxPaymentRepository implements portsrepo.PaymentRepositoryWithTx
var _ portsrepo.PaymentRepositoryWithTx = (*PgxPaymentRepository)(nil)

const paymentColumns = `payment_id, organization_id, payment_type, payment_number, payment_date, amount, payment_method, account_id, customer_id, invoice_id, vendor_id, bill_id, reference_number, notes, created_at, created_by, last_updated_at, last_updated_by`

func scanPayment(row pgx.Row) (models.Payment, error) {
	var m models.Payment
	var customerID, invoiceID, vendorID, billID sql.NullString

	err := row.Scan(
		&m.PaymentID,
		&m.OrganizationID,
		&m.PaymentType,
		&m.PaymentNumber,
		&m.PaymentDate,
		&m.Amount,
		&m.PaymentMethod,
		&m.AccountID,
		&customerID,
		&invoiceID,
		&vendorID,
		&billID,
		&m.ReferenceNumber,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.Payment{}, err
	}
	if customerID.Valid {
		m.CustomerID = &customerID.String
	}
	if invoiceID.Valid {
		m.InvoiceID = &invoiceID.String
	}
	if vendorID.Valid {
		m.VendorID = &vendorID.String
	}
	if billID.Valid {
		m.BillID = &billID.String
	}
	return m, nil
}

// applyReconciliationTx applies the reconciliation deltas of a payment inside
// the given transaction: the linked document's paid amount and balance, the
// party's outstanding balance and the funding account balance. Document rows
// are locked and the remaining balance is re-checked under the lock so a
// concurrent payment against the same document cannot overpay it.
func applyReconciliationTx(ctx context.Context, tx pgx.Tx, recon portsrepo.ReconciliationUpdate, userID string, now time.Time) error {
	applying := recon.Amount.IsPositive()

	if recon.InvoiceID != nil {
		var balance, paid decimal.Decimal
		var status string
		lockQuery := `
			SELECT balance, paid_amount, status FROM invoices
			WHERE invoice_id = $1
			FOR UPDATE;
		`
		if err := tx.QueryRow(ctx, lockQuery, *recon.InvoiceID).Scan(&balance, &paid, &status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: invoice %s not found during reconciliation", apperrors.ErrNotFound, *recon.InvoiceID)
			}
			return fmt.Errorf("failed to lock invoice %s for reconciliation: %w", *recon.InvoiceID, err)
		}
		// Re-checked under the lock: the service already refused terminal
		// documents, but the invoice may have been voided since.
		if st := domain.InvoiceStatus(status); st.IsTerminal() {
			return fmt.Errorf("%w: invoice %s is %s", apperrors.ErrConflict, *recon.InvoiceID, st)
		}
		if applying && recon.Amount.GreaterThan(balance) {
			return fmt.Errorf("%w: payment of %s exceeds remaining balance %s of invoice %s", apperrors.ErrConflict, recon.Amount, balance, *recon.InvoiceID)
		}

		newPaid := paid.Add(recon.Amount)
		newBalance := balance.Sub(recon.Amount)
		newStatus := domain.InvoiceSent
		if newBalance.IsZero() {
			newStatus = domain.InvoicePaid
		} else if newPaid.IsPositive() {
			newStatus = domain.InvoicePartiallyPaid
		}

		updateQuery := `
			UPDATE invoices
			SET paid_amount = $2, balance = $3, status = $4, last_updated_at = $5, last_updated_by = $6
			WHERE invoice_id = $1;
		`
		if _, err := tx.Exec(ctx, updateQuery, *recon.InvoiceID, newPaid, newBalance, string(newStatus), now, userID); err != nil {
			return fmt.Errorf("failed to reconcile invoice %s: %w", *recon.InvoiceID, err)
		}
	}

	if recon.BillID != nil {
		var balance, paid decimal.Decimal
		var status string
		lockQuery := `
			SELECT balance, paid_amount, status FROM bills
			WHERE bill_id = $1
			FOR UPDATE;
		`
		if err := tx.QueryRow(ctx, lockQuery, *recon.BillID).Scan(&balance, &paid, &status); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return fmt.Errorf("%w: bill %s not found during reconciliation", apperrors.ErrNotFound, *recon.BillID)
			}
			return fmt.Errorf("failed to lock bill %s for reconciliation: %w", *recon.BillID, err)
		}
		if domain.BillStatus(status) == domain.BillCancelled {
			return fmt.Errorf("%w: bill %s is %s", apperrors.ErrConflict, *recon.BillID, status)
		}
		if applying && recon.Amount.GreaterThan(balance) {
			return fmt.Errorf("%w: payment of %s exceeds remaining balance %s of bill %s", apperrors.ErrConflict, recon.Amount, balance, *recon.BillID)
		}

		newPaid := paid.Add(recon.Amount)
		newBalance := balance.Sub(recon.Amount)
		newStatus := domain.BillApproved
		if newBalance.IsZero() {
			newStatus = domain.BillPaid
		} else if newPaid.IsPositive() {
			newStatus = domain.BillPartiallyPaid
		}

		updateQuery := `
			UPDATE bills
			SET paid_amount = $2, balance = $3, status = $4, last_updated_at = $5, last_updated_by = $6
			WHERE bill_id = $1;
		`
		if _, err := tx.Exec(ctx, updateQuery, *recon.BillID, newPaid, newBalance, string(newStatus), now, userID); err != nil {
			return fmt.Errorf("failed to reconcile bill %s: %w", *recon.BillID, err)
		}
	}

	// A payment reduces what the party owes (or is owed), so the outstanding
	// delta is the negated payment amount.
	if recon.CustomerID != nil {
		if err := adjustCustomerOutstandingTx(ctx, tx, *recon.CustomerID, recon.Amount.Neg(), userID, now); err != nil {
			return err
		}
	}
	if recon.VendorID != nil {
		if err := adjustVendorOutstandingTx(ctx, tx, *recon.VendorID, recon.Amount.Neg(), userID, now); err != nil {
			return err
		}
	}

	accountQuery := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, accountQuery, recon.AccountID, recon.AccountDelta, now, userID)
	if err != nil {
		return fmt.Errorf("failed to adjust funding account %s: %w", recon.AccountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s not found during reconciliation", apperrors.ErrNotFound, recon.AccountID)
	}

	return nil
}

// SavePayment persists the payment and applies the reconciliation update in
// one transaction. An overpayment detected under the document row lock
// returns ErrConflict and nothing is written.
func (r *PgxPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, recon portsrepo.ReconciliationUpdate) error {
	m := mapping.ToModelPayment(payment)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
	`
	_, err = tx.Exec(ctx, query,
		m.PaymentID,
		m.OrganizationID,
		m.PaymentType,
		m.PaymentNumber,
		m.PaymentDate,
		m.Amount,
		m.PaymentMethod,
		m.AccountID,
		nullableStringPtr(m.CustomerID),
		nullableStringPtr(m.InvoiceID),
		nullableStringPtr(m.VendorID),
		nullableStringPtr(m.BillID),
		m.ReferenceNumber,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: payment number %s already exists", apperrors.ErrDuplicate, m.PaymentNumber)
		}
		return fmt.Errorf("failed to insert payment %s: %w", m.PaymentID, err)
	}

	if err := applyReconciliationTx(ctx, tx, recon, m.CreatedBy, m.CreatedAt); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeletePayment removes the payment and applies the (negated) reconciliation
// update in one transaction, restoring the document, party and account
// balances the payment had adjusted.
func (r *PgxPaymentRepository) DeletePayment(ctx context.Context, organizationID string, paymentID string, recon portsrepo.ReconciliationUpdate, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		DELETE FROM payments
		WHERE payment_id = $1 AND organization_id = $2;
	`
	cmdTag, err := tx.Exec(ctx, query, paymentID, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete payment %s: %w", paymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if err := applyReconciliationTx(ctx, tx, recon, userID, now); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdatePayment updates the annotation fields of a payment. Amount and links
// are immutable once recorded.
func (r *PgxPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	m := mapping.ToModelPayment(payment)

	query := `
		UPDATE payments
		SET payment_method = $3, reference_number = $4, notes = $5, last_updated_at = $6, last_updated_by = $7
		WHERE payment_id = $1 AND organization_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.PaymentID,
		m.OrganizationID,
		m.PaymentMethod,
		m.ReferenceNumber,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update payment %s: %w", m.PaymentID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindPaymentByID retrieves a payment by its ID within an organization.
func (r *PgxPaymentRepository) FindPaymentByID(ctx context.Context, organizationID string, paymentID string) (*domain.Payment, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payments
		WHERE payment_id = $1 AND organization_id = $2;
	`
	m, err := scanPayment(r.Pool.QueryRow(ctx, query, paymentID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find payment by ID %s: %w", paymentID, err)
	}

	domainPayment := mapping.ToDomainPayment(m)
	return &domainPayment, nil
}

// ListPayments retrieves a paginated list of payments for an organization
// using token-based pagination on (payment_date, created_at).
func (r *PgxPaymentRepository) ListPayments(ctx context.Context, organizationID string, paymentType *domain.PaymentType, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + paymentColumns + `
		FROM payments
	`
	filterClause := `WHERE organization_id = $1`
	args := []interface{}{organizationID}

	if paymentType != nil {
		args = append(args, string(*paymentType))
		filterClause += ` AND payment_type = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (payment_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	orderByClause := `ORDER BY payment_date DESC, created_at DESC`
	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query payments for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	modelPayments := make([]models.Payment, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanPayment(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan payment row for organization %s: %w", organizationID, scanErr)
		}
		modelPayments = append(modelPayments, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating payment rows for organization %s: %w", organizationID, err)
	}

	var nextTokenVal *string
	results := modelPayments
	if len(modelPayments) > limit {
		last := modelPayments[limit-1]
		token := pagination.EncodeToken(last.PaymentDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelPayments[:limit]
	}

	return mapping.ToDomainPaymentSlice(results), nextTokenVal, nil
}

// CountPaymentsOnDate returns how many payments of the given type were
// recorded on a calendar date, for payment number generation.
func (r *PgxPaymentRepository) CountPaymentsOnDate(ctx context.Context, organizationID string, paymentType domain.PaymentType, date time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM payments
		WHERE organization_id = $1 AND payment_type = $2 AND payment_date::date = $3::date;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, organizationID, string(paymentType), date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payments on date: %w", err)
	}
	return count, nil
}
