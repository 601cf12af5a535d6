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
	"github.com/finbooks/finbooks_backend/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

var (
	ErrEntryMinLines    = errors.New("journal entry must have at least one line")
	ErrAccountNotFound  = errors.New("account not found")
	ErrEntryNotDraft    = errors.New("journal entry must be in draft status")
	ErrEntryNotPosted   = errors.New("journal entry must be posted")
	ErrEntryDescMissing = errors.New("journal entry description is required")
	ErrEntryHasReversal = errors.New("journal entry is already reversed")
	ErrEntryIsReversal  = errors.New("cannot reverse a reversing entry")
)

// journalService provides journal entry and posting operations.
type journalService struct {
	accountSvc  portssvc.AccountSvcFacade
	journalRepo portsrepo.JournalRepositoryFacade
	orgSvc      portssvc.OrganizationSvcFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade, accountSvc portssvc.AccountSvcFacade, orgSvc portssvc.OrganizationSvcFacade) portssvc.JournalSvcFacade {
	return &journalService{
		accountSvc:  accountSvc,
		journalRepo: journalRepo,
		orgSvc:      orgSvc,
	}
}

var _ portssvc.JournalSvcFacade = (*journalService)(nil)

// generateJournalNumber builds the next sequential journal number for a date,
// e.g. JE-20250114-0007.
func (s *journalService) generateJournalNumber(ctx context.Context, organizationID string, date time.Time) (string, error) {
	count, err := s.journalRepo.CountEntriesOnDate(ctx, organizationID, date)
	if err != nil {
		return "", fmt.Errorf("failed to count entries for journal number: %w", err)
	}
	return fmt.Sprintf("JE-%s-%04d", date.Format("20060102"), count+1), nil
}

// buildLines converts request lines to domain lines and validates the set.
func (s *journalService) buildLines(entryID string, reqLines []dto.CreateJournalLineRequest, userID string, now time.Time) ([]domain.JournalLine, error) {
	lines := make([]domain.JournalLine, len(reqLines))
	for i, lineReq := range reqLines {
		lines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      entryID,
			AccountID:    lineReq.AccountID,
			Description:  lineReq.Description,
			DebitAmount:  lineReq.DebitAmount,
			CreditAmount: lineReq.CreditAmount,
			LineOrder:    i,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	return lines, nil
}

// fetchAndValidateAccounts loads the accounts touched by the lines and checks
// they belong to the organization and are active.
func (s *journalService) fetchAndValidateAccounts(ctx context.Context, organizationID string, lines []domain.JournalLine, userID string) (map[string]domain.Account, error) {
	accountIDs := make([]string, 0, len(lines))
	for _, line := range lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	uniqueAccountIDs := uniqueStrings(accountIDs)

	accountsMap, err := s.accountSvc.GetAccountByIDs(ctx, organizationID, uniqueAccountIDs, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}

	for _, id := range uniqueAccountIDs {
		acc, found := accountsMap[id]
		if !found {
			return nil, fmt.Errorf("%w: %w: ID %s", apperrors.ErrNotFound, ErrAccountNotFound, id)
		}
		if acc.OrganizationID != organizationID {
			return nil, fmt.Errorf("%w: %w: account %s does not belong to organization %s", apperrors.ErrNotFound, ErrAccountNotFound, id, organizationID)
		}
		if !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return accountsMap, nil
}

// calculateBalanceChanges aggregates the signed balance delta per account.
func (s *journalService) calculateBalanceChanges(lines []domain.JournalLine, accountsMap map[string]domain.Account) (map[string]decimal.Decimal, error) {
	balanceChanges := make(map[string]decimal.Decimal)
	for _, line := range lines {
		acc := accountsMap[line.AccountID]
		delta, err := accounting.CalculateBalanceDelta(line, acc.AccountType)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate balance change: %w", err)
		}
		balanceChanges[line.AccountID] = balanceChanges[line.AccountID].Add(delta)
	}
	return balanceChanges, nil
}

// CreateEntry creates a new draft journal entry with its lines after validation.
func (s *journalService) CreateEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for CreateEntry", slog.String("user_id", userID), slog.String("organization_id", organizationID), slog.String("error", err.Error()))
		return nil, err
	}

	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEntryMinLines)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEntryDescMissing)
	}

	now := time.Now().UTC()
	entryID := uuid.NewString()

	lines, err := s.buildLines(entryID, req.Lines, userID, now)
	if err != nil {
		return nil, err
	}

	if _, err := s.fetchAndValidateAccounts(ctx, organizationID, lines, userID); err != nil {
		return nil, err
	}

	journalNumber, err := s.generateJournalNumber(ctx, organizationID, req.EntryDate)
	if err != nil {
		logger.Error("Failed to generate journal number", slog.String("error", err.Error()))
		return nil, err
	}

	totalDebit, totalCredit := accounting.EntryTotals(lines)
	entry := domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: organizationID,
		JournalNumber:  journalNumber,
		EntryDate:      req.EntryDate,
		Reference:      req.Reference,
		Description:    req.Description,
		Status:         domain.EntryDraft,
		TotalDebit:     totalDebit,
		TotalCredit:    totalCredit,
		Lines:          lines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveEntry(ctx, entry); err != nil {
		logger.Error("Failed to save journal entry", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save journal entry: %w", err)
	}

	logger.Info("Journal entry created", slog.String("entry_id", entry.EntryID), slog.String("journal_number", entry.JournalNumber))
	return &entry, nil
}

// GetEntryByID retrieves a specific journal entry with its lines.
func (s *journalService) GetEntryByID(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		logger.Warn("Authorization failed for GetEntryByID", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		}
		return nil, fmt.Errorf("failed to find journal entry %s: %w", entryID, err)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		logger.Error("Failed to fetch lines for journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, apperrors.ErrInternal)
	}
	entry.Lines = lines

	return entry, nil
}

// ListEntries retrieves a paginated list of journal entries for an organization.
func (s *journalService) ListEntries(ctx context.Context, organizationID string, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		logger.Warn("Authorization failed for ListEntries", "error", err)
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	var status *domain.JournalEntryStatus
	if params.Status != nil {
		st := domain.JournalEntryStatus(*params.Status)
		status = &st
	}

	entries, nextToken, err := s.journalRepo.ListEntries(ctx, organizationID, status, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journal entries", "error", err)
		return nil, fmt.Errorf("failed to retrieve journal entries: %w", err)
	}

	responses := make([]dto.JournalEntryResponse, len(entries))
	for i := range entries {
		responses[i] = dto.ToJournalEntryResponse(&entries[i])
	}

	return &dto.ListJournalEntriesResponse{
		Entries:   responses,
		NextToken: nextToken,
	}, nil
}

// ListLinesByAccount retrieves journal lines touching a specific account.
func (s *journalService) ListLinesByAccount(ctx context.Context, organizationID string, accountID string, userID string, params dto.ListJournalLinesParams) (*dto.ListJournalLinesResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		logger.Warn("Authorization failed for ListLinesByAccount", "error", err)
		return nil, err
	}

	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	lines, nextToken, err := s.journalRepo.ListLinesByAccountID(ctx, organizationID, accountID, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list journal lines by account", "error", err)
		return nil, fmt.Errorf("failed to retrieve journal lines: %w", err)
	}

	return &dto.ListJournalLinesResponse{
		Lines:     dto.ToJournalLineResponses(lines),
		NextToken: nextToken,
	}, nil
}

// UpdateEntry updates the details and lines of a draft journal entry.
func (s *journalService) UpdateEntry(ctx context.Context, organizationID string, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for UpdateEntry", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: %w: status is %s", apperrors.ErrConflict, ErrEntryNotDraft, entry.Status)
	}

	now := time.Now().UTC()

	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}
	if req.Reference != nil {
		entry.Reference = *req.Reference
	}
	if req.Description != nil {
		if *req.Description == "" {
			return nil, fmt.Errorf("%w: %w", apperrors.ErrValidation, ErrEntryDescMissing)
		}
		entry.Description = *req.Description
	}
	if req.Lines != nil {
		lines, err := s.buildLines(entryID, req.Lines, userID, now)
		if err != nil {
			return nil, err
		}
		if _, err := s.fetchAndValidateAccounts(ctx, organizationID, lines, userID); err != nil {
			return nil, err
		}
		entry.Lines = lines
		entry.TotalDebit, entry.TotalCredit = accounting.EntryTotals(lines)
	}

	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	if err := s.journalRepo.UpdateEntry(ctx, *entry); err != nil {
		logger.Error("Failed to update journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to update journal entry: %w", err)
	}

	logger.Info("Journal entry updated", slog.String("entry_id", entryID))
	return entry, nil
}

// PostEntry posts a draft entry, applying its lines to account balances.
func (s *journalService) PostEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for PostEntry", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}

	if entry.Status != domain.EntryDraft {
		return nil, fmt.Errorf("%w: status is %s", apperrors.ErrConflict, entry.Status)
	}

	lines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}

	// Re-validate before touching balances.
	if err := accounting.ValidateEntryBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	accountsMap, err := s.fetchAndValidateAccounts(ctx, organizationID, lines, userID)
	if err != nil {
		return nil, err
	}

	balanceChanges, err := s.calculateBalanceChanges(lines, accountsMap)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.journalRepo.PostEntry(ctx, organizationID, entryID, balanceChanges, userID, now); err != nil {
		logger.Error("Failed to post journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to post journal entry: %w", err)
	}

	entry.Status = domain.EntryPosted
	entry.Lines = lines
	entry.LastUpdatedAt = now
	entry.LastUpdatedBy = userID

	logger.Info("Journal entry posted", slog.String("entry_id", entryID), slog.String("journal_number", entry.JournalNumber))
	return entry, nil
}

// ReverseEntry creates and posts a reversing entry for a posted entry.
// The original entry is marked REVERSED and linked to the new entry; every
// line reappears with debit and credit swapped.
func (s *journalService) ReverseEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for ReverseEntry", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	original, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return nil, err
	}

	if original.Status != domain.EntryPosted {
		return nil, fmt.Errorf("%w: %w: status is %s", apperrors.ErrConflict, ErrEntryNotPosted, original.Status)
	}
	if original.ReversingEntryID != nil {
		return nil, fmt.Errorf("%w: %w: reversed by entry %s", apperrors.ErrConflict, ErrEntryHasReversal, *original.ReversingEntryID)
	}
	if original.OriginalEntryID != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrConflict, ErrEntryIsReversal)
	}

	originalLines, err := s.journalRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines for entry %s: %w", entryID, err)
	}

	now := time.Now().UTC()
	reversalID := uuid.NewString()

	reversingLines := make([]domain.JournalLine, len(originalLines))
	for i, origLine := range originalLines {
		reversingLines[i] = domain.JournalLine{
			LineID:       uuid.NewString(),
			EntryID:      reversalID,
			AccountID:    origLine.AccountID,
			Description:  origLine.Description,
			DebitAmount:  origLine.CreditAmount,
			CreditAmount: origLine.DebitAmount,
			LineOrder:    origLine.LineOrder,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     userID,
				LastUpdatedAt: now,
				LastUpdatedBy: userID,
			},
		}
	}

	accountsMap, err := s.fetchAndValidateAccounts(ctx, organizationID, reversingLines, userID)
	if err != nil {
		return nil, err
	}
	balanceChanges, err := s.calculateBalanceChanges(reversingLines, accountsMap)
	if err != nil {
		return nil, err
	}

	journalNumber, err := s.generateJournalNumber(ctx, organizationID, now)
	if err != nil {
		return nil, err
	}

	reversal := domain.JournalEntry{
		EntryID:         reversalID,
		OrganizationID:  organizationID,
		JournalNumber:   journalNumber,
		EntryDate:       now,
		Reference:       original.Reference,
		Description:     fmt.Sprintf("Reversal of %s", original.JournalNumber),
		Status:          domain.EntryPosted,
		TotalDebit:      original.TotalCredit,
		TotalCredit:     original.TotalDebit,
		OriginalEntryID: &original.EntryID,
		Lines:           reversingLines,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.journalRepo.SaveReversal(ctx, reversal, original.EntryID, balanceChanges); err != nil {
		logger.Error("Failed to save reversing entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return nil, fmt.Errorf("failed to save reversing entry: %w", err)
	}

	logger.Info("Journal entry reversed", slog.String("entry_id", entryID), slog.String("reversing_entry_id", reversalID))
	return &reversal, nil
}

// DeleteEntry removes a draft journal entry.
func (s *journalService) DeleteEntry(ctx context.Context, organizationID string, entryID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for DeleteEntry", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}

	entry, err := s.journalRepo.FindEntryByID(ctx, organizationID, entryID)
	if err != nil {
		return err
	}

	if entry.Status != domain.EntryDraft {
		return fmt.Errorf("%w: only draft entries can be deleted, status is %s", apperrors.ErrConflict, entry.Status)
	}

	if err := s.journalRepo.DeleteEntry(ctx, organizationID, entryID); err != nil {
		logger.Error("Failed to delete journal entry", slog.String("error", err.Error()), slog.String("entry_id", entryID))
		return fmt.Errorf("failed to delete journal entry: %w", err)
	}

	logger.Info("Journal entry deleted", slog.String("entry_id", entryID))
	return nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
