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

type PgxJournalRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxJournalRepository creates a new repository for journal entry and line data.
func newPgxJournalRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.JournalRepositoryWithTx {
	return &PgxJournalRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryWithTx
var _ portsrepo.JournalRepositoryWithTx = (*PgxJournalRepository)(nil)

const journalEntryColumns = `entry_id, organization_id, journal_number, entry_date, reference, description, status, total_debit, total_credit, original_entry_id, reversing_entry_id, created_at, created_by, last_updated_at, last_updated_by`

const journalLineColumns = `line_id, entry_id, account_id, description, debit_amount, credit_amount, line_order, created_at, created_by, last_updated_at, last_updated_by`

// scanJournalEntry scans one entry row. Reversal link columns are NULL on
// ordinary entries.
func scanJournalEntry(row pgx.Row) (models.JournalEntry, error) {
	var m models.JournalEntry
	var originalID, reversingID sql.NullString

	err := row.Scan(
		&m.EntryID,
		&m.OrganizationID,
		&m.JournalNumber,
		&m.EntryDate,
		&m.Reference,
		&m.Description,
		&m.Status,
		&m.TotalDebit,
		&m.TotalCredit,
		&originalID,
		&reversingID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return models.JournalEntry{}, err
	}
	if originalID.Valid {
		m.OriginalEntryID = &originalID.String
	}
	if reversingID.Valid {
		m.ReversingEntryID = &reversingID.String
	}
	return m, nil
}

func scanJournalLine(row pgx.Row) (models.JournalLine, error) {
	var m models.JournalLine
	err := row.Scan(
		&m.LineID,
		&m.EntryID,
		&m.AccountID,
		&m.Description,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.LineOrder,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// insertEntryTx inserts the entry row using the transaction tx.
func (r *PgxJournalRepository) insertEntryTx(ctx context.Context, tx pgx.Tx, entry models.JournalEntry) error {
	query := `
		INSERT INTO journal_entries (` + journalEntryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		entry.EntryID,
		entry.OrganizationID,
		entry.JournalNumber,
		entry.EntryDate,
		entry.Reference,
		entry.Description,
		entry.Status,
		entry.TotalDebit,
		entry.TotalCredit,
		entry.OriginalEntryID,
		entry.ReversingEntryID,
		entry.CreatedAt,
		entry.CreatedBy,
		entry.LastUpdatedAt,
		entry.LastUpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: journal number %s already exists", apperrors.ErrDuplicate, entry.JournalNumber)
		}
		return fmt.Errorf("failed to insert journal entry %s: %w", entry.EntryID, err)
	}
	return nil
}

// insertLinesTx batch-inserts the lines of an entry using the transaction tx.
func (r *PgxJournalRepository) insertLinesTx(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.JournalLine) error {
	query := `
		INSERT INTO journal_lines (` + journalLineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		m := mapping.ToModelJournalLine(line)
		batch.Queue(query,
			m.LineID,
			m.EntryID,
			m.AccountID,
			m.Description,
			m.DebitAmount,
			m.CreditAmount,
			m.LineOrder,
			m.CreatedAt,
			m.CreatedBy,
			m.LastUpdatedAt,
			m.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to insert journal lines for entry %s: %w", entryID, err)
	}
	return nil
}

// SaveEntry persists a new draft entry and its lines. No balances change.
func (r *PgxJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertEntryTx(ctx, tx, mapping.ToModelJournalEntry(entry)); err != nil {
		return err
	}
	if err := r.insertLinesTx(ctx, tx, entry.EntryID, entry.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateEntry replaces the mutable fields and lines of a draft entry.
// The caller has verified the entry is still a draft; the delete-and-reinsert
// of lines happens in one transaction.
func (r *PgxJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	modelEntry := mapping.ToModelJournalEntry(entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE journal_entries
		SET entry_date = $3, reference = $4, description = $5, total_debit = $6, total_credit = $7, last_updated_at = $8, last_updated_by = $9
		WHERE entry_id = $1 AND organization_id = $2 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.OrganizationID,
		modelEntry.EntryDate,
		modelEntry.Reference,
		modelEntry.Description,
		modelEntry.TotalDebit,
		modelEntry.TotalCredit,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update journal entry %s: %w", modelEntry.EntryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: draft journal entry %s not found for update", apperrors.ErrNotFound, modelEntry.EntryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, modelEntry.EntryID); err != nil {
		return fmt.Errorf("failed to delete journal lines for entry %s: %w", modelEntry.EntryID, err)
	}
	if err := r.insertLinesTx(ctx, tx, entry.EntryID, entry.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// PostEntry marks a draft entry as posted and applies the balance changes to
// the affected accounts atomically. The entry row is locked and its status
// re-checked under the lock so concurrent posts of the same entry cannot both
// succeed.
func (r *PgxJournalRepository) PostEntry(ctx context.Context, organizationID string, entryID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	var status models.JournalEntryStatus
	lockQuery := `
		SELECT status FROM journal_entries
		WHERE entry_id = $1 AND organization_id = $2
		FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, lockQuery, entryID, organizationID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock journal entry %s: %w", entryID, err)
	}
	if status != models.EntryDraft {
		return fmt.Errorf("%w: journal entry %s is %s, only draft entries can be posted", apperrors.ErrConflict, entryID, status)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for posting entry %s: %w", entryID, err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return fmt.Errorf("failed to update account balances for entry %s: %w", entryID, err)
	}

	updateQuery := `
		UPDATE journal_entries
		SET status = 'POSTED', last_updated_at = $3, last_updated_by = $4
		WHERE entry_id = $1 AND organization_id = $2;
	`
	if _, err := tx.Exec(ctx, updateQuery, entryID, organizationID, now, userID); err != nil {
		return fmt.Errorf("failed to mark journal entry %s as posted: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}

// SaveReversal persists a reversing entry already in posted state, links it to
// the original, marks the original as reversed and applies the balance
// changes, all atomically.
func (r *PgxJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, balanceChanges map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	now := reversal.CreatedAt
	userID := reversal.CreatedBy

	// Lock the original and re-check it is still POSTED; a concurrent
	// reversal of the same entry loses here.
	var status models.JournalEntryStatus
	lockQuery := `
		SELECT status FROM journal_entries
		WHERE entry_id = $1 AND organization_id = $2
		FOR UPDATE;
	`
	if err := tx.QueryRow(ctx, lockQuery, originalEntryID, reversal.OrganizationID).Scan(&status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to lock journal entry %s for reversal: %w", originalEntryID, err)
	}
	if status != models.EntryPosted {
		return fmt.Errorf("%w: journal entry %s is %s, only posted entries can be reversed", apperrors.ErrConflict, originalEntryID, status)
	}

	if err := r.insertEntryTx(ctx, tx, mapping.ToModelJournalEntry(reversal)); err != nil {
		return err
	}
	if err := r.insertLinesTx(ctx, tx, reversal.EntryID, reversal.Lines); err != nil {
		return err
	}

	linkQuery := `
		UPDATE journal_entries
		SET status = 'REVERSED', reversing_entry_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE entry_id = $1 AND organization_id = $2;
	`
	if _, err := tx.Exec(ctx, linkQuery, originalEntryID, reversal.OrganizationID, reversal.EntryID, now, userID); err != nil {
		return fmt.Errorf("failed to mark journal entry %s as reversed: %w", originalEntryID, err)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}
	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for reversal of entry %s: %w", originalEntryID, err)
	}
	if err := r.accountRepo.UpdateAccountBalancesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return fmt.Errorf("failed to update account balances for reversal of entry %s: %w", originalEntryID, err)
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes a draft entry and its lines.
func (r *PgxJournalRepository) DeleteEntry(ctx context.Context, organizationID string, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if _, err := tx.Exec(ctx, `DELETE FROM journal_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete journal lines for entry %s: %w", entryID, err)
	}

	query := `
		DELETE FROM journal_entries
		WHERE entry_id = $1 AND organization_id = $2 AND status = 'DRAFT';
	`
	cmdTag, err := tx.Exec(ctx, query, entryID, organizationID)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", entryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("%w: draft journal entry %s not found for delete", apperrors.ErrNotFound, entryID)
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves a journal entry by its ID.
func (r *PgxJournalRepository) FindEntryByID(ctx context.Context, organizationID string, entryID string) (*domain.JournalEntry, error) {
	query := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
		WHERE entry_id = $1 AND organization_id = $2;
	`
	m, err := scanJournalEntry(r.Pool.QueryRow(ctx, query, entryID, organizationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal entry by ID %s: %w", entryID, err)
	}

	domainEntry := mapping.ToDomainJournalEntry(m)
	return &domainEntry, nil
}

// ListEntries retrieves a paginated list of journal entries for an organization
// using token-based pagination on (entry_date, created_at).
func (r *PgxJournalRepository) ListEntries(ctx context.Context, organizationID string, status *domain.JournalEntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine whether there is a next page.
	fetchLimit := limit + 1

	baseQuery := `
		SELECT ` + journalEntryColumns + `
		FROM journal_entries
	`
	filterClause := `WHERE organization_id = $1`
	args := []interface{}{organizationID}

	if status != nil {
		args = append(args, string(*status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		filterClause += ` AND (entry_date, created_at) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	orderByClause := `ORDER BY entry_date DESC, created_at DESC`
	args = append(args, fetchLimit)
	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal entries for organization %s: %w", organizationID, err)
	}
	defer rows.Close()

	modelEntries := make([]models.JournalEntry, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanJournalEntry(rows)
		if scanErr != nil {
			return nil, nil, fmt.Errorf("failed to scan journal entry row for organization %s: %w", organizationID, scanErr)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal entry rows for organization %s: %w", organizationID, err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		last := modelEntries[limit-1]
		token := pagination.EncodeToken(last.EntryDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	domainEntries := make([]domain.JournalEntry, len(results))
	for i, m := range results {
		domainEntries[i] = mapping.ToDomainJournalEntry(m)
	}
	return domainEntries, nextTokenVal, nil
}

// FindLinesByEntryID retrieves all lines of a single journal entry.
func (r *PgxJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	query := `
		SELECT ` + journalLineColumns + `
		FROM journal_lines
		WHERE entry_id = $1
		ORDER BY line_order;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []models.JournalLine{}
	for rows.Next() {
		m, err := scanJournalLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows for entry %s: %w", entryID, err)
	}

	return mapping.ToDomainJournalLineSlice(lines), nil
}

// FindLinesByEntryIDs retrieves lines for multiple entries, grouped by entry ID.
// Entries with no lines get an empty slice.
func (r *PgxJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	if len(entryIDs) == 0 {
		return map[string][]domain.JournalLine{}, nil
	}

	query := `
		SELECT ` + journalLineColumns + `
		FROM journal_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_order;
	`
	rows, err := r.Pool.Query(ctx, query, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal lines by entry IDs: %w", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.JournalLine)
	for rows.Next() {
		m, err := scanJournalLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal line row during batch fetch: %w", err)
		}
		domainLine := mapping.ToDomainJournalLine(m)
		linesMap[domainLine.EntryID] = append(linesMap[domainLine.EntryID], domainLine)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal line rows during batch fetch: %w", err)
	}

	for _, id := range entryIDs {
		if _, exists := linesMap[id]; !exists {
			linesMap[id] = []domain.JournalLine{}
		}
	}
	return linesMap, nil
}

// ListLinesByAccountID retrieves a paginated list of lines touching a specific
// account, newest first. Only lines of posted entries are included.
func (r *PgxJournalRepository) ListLinesByAccountID(ctx context.Context, organizationID string, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT l.line_id, l.entry_id, l.account_id, l.description, l.debit_amount, l.credit_amount, l.line_order,
		       l.created_at, l.created_by, l.last_updated_at, l.last_updated_by, e.entry_date
		FROM journal_lines l
		JOIN journal_entries e ON l.entry_id = e.entry_id
		WHERE l.account_id = $1 AND e.organization_id = $2 AND e.status IN ('POSTED', 'REVERSED')
	`
	orderByClause := `ORDER BY e.entry_date DESC, l.created_at DESC`
	args := []interface{}{accountID, organizationID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, fmt.Errorf("%w: invalid nextToken", apperrors.ErrValidation)
		}
		args = append(args, lastDate, lastCreatedAt)
		baseQuery += ` AND (e.entry_date, l.created_at) < ($3, $4)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query journal lines for account %s: %w", accountID, err)
	}
	defer rows.Close()

	type lineWithDate struct {
		line      models.JournalLine
		entryDate time.Time
	}

	scanned := make([]lineWithDate, 0, fetchLimit)
	for rows.Next() {
		var m models.JournalLine
		var entryDate time.Time
		err := rows.Scan(
			&m.LineID,
			&m.EntryID,
			&m.AccountID,
			&m.Description,
			&m.DebitAmount,
			&m.CreditAmount,
			&m.LineOrder,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
			&entryDate,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan journal line row for account %s: %w", accountID, err)
		}
		scanned = append(scanned, lineWithDate{line: m, entryDate: entryDate})
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating journal line rows for account %s: %w", accountID, err)
	}

	var nextTokenVal *string
	if len(scanned) > limit {
		last := scanned[limit-1]
		token := pagination.EncodeToken(last.entryDate, last.line.CreatedAt)
		nextTokenVal = &token
		scanned = scanned[:limit]
	}

	results := make([]models.JournalLine, len(scanned))
	for i, s := range scanned {
		results[i] = s.line
	}
	return mapping.ToDomainJournalLineSlice(results), nextTokenVal, nil
}

// CountEntriesOnDate returns how many entries were recorded on a calendar
// date, for journal number generation.
func (r *PgxJournalRepository) CountEntriesOnDate(ctx context.Context, organizationID string, date time.Time) (int, error) {
	query := `
		SELECT COUNT(*) FROM journal_entries
		WHERE organization_id = $1 AND entry_date::date = $2::date;
	`
	var count int
	if err := r.Pool.QueryRow(ctx, query, organizationID, date).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count journal entries on date: %w", err)
	}
	return count, nil
}
