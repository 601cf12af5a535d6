package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

// Ensure MockJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) FindEntryByID(ctx context.Context, organizationID string, entryID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}

func (m *MockJournalRepository) ListEntries(ctx context.Context, organizationID string, status *domain.JournalEntryStatus, limit int, nextToken *string) ([]domain.JournalEntry, *string, error) {
	args := m.Called(ctx, organizationID, status, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalEntry), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, entryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) FindLinesByEntryIDs(ctx context.Context, entryIDs []string) (map[string][]domain.JournalLine, error) {
	args := m.Called(ctx, entryIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string][]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListLinesByAccountID(ctx context.Context, organizationID string, accountID string, limit int, nextToken *string) ([]domain.JournalLine, *string, error) {
	args := m.Called(ctx, organizationID, accountID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.JournalLine), returnedNextToken, args.Error(2)
}

func (m *MockJournalRepository) CountEntriesOnDate(ctx context.Context, organizationID string, date time.Time) (int, error) {
	args := m.Called(ctx, organizationID, date)
	return args.Int(0), args.Error(1)
}

func (m *MockJournalRepository) SaveEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) UpdateEntry(ctx context.Context, entry domain.JournalEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockJournalRepository) PostEntry(ctx context.Context, organizationID string, entryID string, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, entryID, balanceChanges, userID, now)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, reversal domain.JournalEntry, originalEntryID string, balanceChanges map[string]decimal.Decimal) error {
	args := m.Called(ctx, reversal, originalEntryID, balanceChanges)
	return args.Error(0)
}

func (m *MockJournalRepository) DeleteEntry(ctx context.Context, organizationID string, entryID string) error {
	args := m.Called(ctx, organizationID, entryID)
	return args.Error(0)
}

// --- Mock AccountService (as used by JournalService) ---
type MockAccountService2 struct {
	mock.Mock
}

var _ portssvc.AccountSvcFacade = (*MockAccountService2)(nil)

func (m *MockAccountService2) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService2) GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService2) GetAccountByCode(ctx context.Context, organizationID string, code string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService2) GetAccountByIDs(ctx context.Context, organizationID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountService2) ListAccounts(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountService2) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountService2) DeleteAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	args := m.Called(ctx, organizationID, accountID, userID)
	return args.Error(0)
}

// --- Mock OrganizationService ---
type MockOrganizationService struct {
	mock.Mock
}

// Ensure MockOrganizationService implements the full interface
var _ portssvc.OrganizationSvcFacade = (*MockOrganizationService)(nil)

func (m *MockOrganizationService) GetOrganizationByID(ctx context.Context, organizationID string, userID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) ListUserOrganizations(ctx context.Context, userID string) ([]domain.Organization, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) ListMembers(ctx context.Context, organizationID string, requestingUserID string) ([]domain.UserOrganization, error) {
	args := m.Called(ctx, organizationID, requestingUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.UserOrganization), args.Error(1)
}

func (m *MockOrganizationService) CreateOrganization(ctx context.Context, req dto.CreateOrganizationRequest, creatorUserID string) (*domain.Organization, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) UpdateOrganization(ctx context.Context, organizationID string, req dto.UpdateOrganizationRequest, userID string) (*domain.Organization, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Organization), args.Error(1)
}

func (m *MockOrganizationService) DeactivateOrganization(ctx context.Context, organizationID string, userID string) error {
	args := m.Called(ctx, organizationID, userID)
	return args.Error(0)
}

func (m *MockOrganizationService) AddMember(ctx context.Context, requestingUserID string, targetUserID string, organizationID string, role domain.OrganizationRole) error {
	args := m.Called(ctx, requestingUserID, targetUserID, organizationID, role)
	return args.Error(0)
}

func (m *MockOrganizationService) RemoveMember(ctx context.Context, requestingUserID string, targetUserID string, organizationID string) error {
	args := m.Called(ctx, requestingUserID, targetUserID, organizationID)
	return args.Error(0)
}

func (m *MockOrganizationService) UpdateMemberRole(ctx context.Context, requestingUserID string, targetUserID string, organizationID string, newRole domain.OrganizationRole) error {
	args := m.Called(ctx, requestingUserID, targetUserID, organizationID, newRole)
	return args.Error(0)
}

func (m *MockOrganizationService) AuthorizeUserAction(ctx context.Context, userID string, organizationID string, requiredRole domain.OrganizationRole) error {
	args := m.Called(ctx, userID, organizationID, requiredRole)
	return args.Error(0)
}

// --- Test Suite Setup ---
type JournalServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockAccountSvc   *MockAccountService2
	mockOrgSvc       *MockOrganizationService
	service          portssvc.JournalSvcFacade
	assetAccount     domain.Account
	liabilityAccount domain.Account
	revenueAccount   domain.Account
	expenseAccount   domain.Account
	organizationID   string
	userID           string
}

func (suite *JournalServiceTestSuite) SetupTest() {
	suite.mockJournalRepo = new(MockJournalRepository)
	suite.mockAccountSvc = new(MockAccountService2)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewJournalService(suite.mockJournalRepo, suite.mockAccountSvc, suite.mockOrgSvc)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.assetAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountType:    domain.Asset,
		IsActive:       true,
	}
	suite.liabilityAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountType:    domain.Liability,
		IsActive:       true,
	}
	suite.revenueAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountType:    domain.Revenue,
		IsActive:       true,
	}
	suite.expenseAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountType:    domain.Expense,
		IsActive:       true,
	}
}

// accountsMapFor builds the GetAccountByIDs return value for the given accounts.
func accountsMapFor(accounts ...domain.Account) map[string]domain.Account {
	m := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		m[acc.AccountID] = acc
	}
	return m
}

// --- CreateEntry ---

func (suite *JournalServiceTestSuite) TestCreateEntry_Success() {
	ctx := context.Background()
	entryDate := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)
	req := dto.CreateJournalEntryRequest{
		EntryDate:   entryDate,
		Description: "Opening loan",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.liabilityAccount.AccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID,
		[]string{suite.assetAccount.AccountID, suite.liabilityAccount.AccountID}, suite.userID,
	).Return(accountsMapFor(suite.assetAccount, suite.liabilityAccount), nil).Once()
	suite.mockJournalRepo.On("CountEntriesOnDate", ctx, suite.organizationID, entryDate).Return(6, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.NotEmpty(entry.EntryID)
	suite.Equal(suite.organizationID, entry.OrganizationID)
	suite.Equal("JE-20250314-0007", entry.JournalNumber)
	suite.Equal(domain.EntryDraft, entry.Status)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(100)))
	suite.Len(entry.Lines, 2)
	suite.Equal(suite.userID, entry.CreatedBy)

	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AuthorizationFail() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{ /* ... */ }
	authErr := apperrors.ErrForbidden

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(authErr).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, authErr)
	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertNotCalled(suite.T(), "GetAccountByIDs", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "SaveEntry", mock.Anything, mock.Anything)
}

func (suite *JournalServiceTestSuite) TestCreateEntry_NoLines() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "An entry without lines",
		Lines:       []dto.CreateJournalLineRequest{},
	}
	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryMinLines)
	// The handler maps this to a 400, not a generic 500.
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrgSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_MissingDescription() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		EntryDate: time.Now(),
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.liabilityAccount.AccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}
	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryDescMissing)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrgSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_Unbalanced() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Does not balance",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.NewFromInt(90)},
		},
	}
	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrgSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_MixedSideLineAccepted() {
	// One-sided lines are convention, not enforced: a balanced entry where a
	// line carries both a debit and a credit is accepted.
	ctx := context.Background()
	entryDate := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	req := dto.CreateJournalEntryRequest{
		EntryDate:   entryDate,
		Description: "Debit and credit on the same line",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, DebitAmount: decimal.NewFromInt(100), CreditAmount: decimal.NewFromInt(40)},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.NewFromInt(60)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything, suite.userID).Return(accountsMapFor(suite.assetAccount, suite.revenueAccount), nil).Once()
	suite.mockJournalRepo.On("CountEntriesOnDate", ctx, suite.organizationID, entryDate).Return(0, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.True(entry.TotalDebit.Equal(decimal.NewFromInt(100)))
	suite.True(entry.TotalCredit.Equal(decimal.NewFromInt(100)))
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_SameAccountBothSides() {
	// A transfer touching a single account is legal as long as it balances.
	ctx := context.Background()
	entryDate := time.Date(2025, 3, 16, 0, 0, 0, 0, time.UTC)
	req := dto.CreateJournalEntryRequest{
		EntryDate:   entryDate,
		Description: "Both lines hit the same account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.assetAccount.AccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, []string{suite.assetAccount.AccountID}, suite.userID).Return(accountsMapFor(suite.assetAccount), nil).Once()
	suite.mockJournalRepo.On("CountEntriesOnDate", ctx, suite.organizationID, entryDate).Return(0, nil).Once()
	suite.mockJournalRepo.On("SaveEntry", ctx, mock.AnythingOfType("domain.JournalEntry")).Return(nil).Once()

	entry, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(entry)
	suite.Len(entry.Lines, 2)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_FindAccountsError() {
	ctx := context.Background()
	req := dto.CreateJournalEntryRequest{
		Description: "Repo blows up",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}
	repoErr := assert.AnError
	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything, suite.userID).Return(nil, repoErr).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.Contains(err.Error(), repoErr.Error())
	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AccountNotFound() {
	ctx := context.Background()
	unknownAccountID := uuid.NewString()
	req := dto.CreateJournalEntryRequest{
		Description: "References a missing account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, DebitAmount: decimal.NewFromInt(100)},
			{AccountID: unknownAccountID, CreditAmount: decimal.NewFromInt(100)},
		},
	}
	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything, suite.userID).Return(accountsMapFor(suite.assetAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AccountWrongOrganization() {
	ctx := context.Background()
	foreignAccount := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: uuid.NewString(), // different organization
		AccountType:    domain.Expense,
		IsActive:       true,
	}
	req := dto.CreateJournalEntryRequest{
		Description: "References a foreign account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, DebitAmount: decimal.NewFromInt(50)},
			{AccountID: foreignAccount.AccountID, CreditAmount: decimal.NewFromInt(50)},
		},
	}
	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything, suite.userID).Return(accountsMapFor(suite.assetAccount, foreignAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountNotFound)
	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestCreateEntry_AccountInactive() {
	ctx := context.Background()
	inactiveAccount := domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountType:    domain.Expense,
		IsActive:       false,
	}
	req := dto.CreateJournalEntryRequest{
		Description: "References an inactive account",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: suite.assetAccount.AccountID, DebitAmount: decimal.NewFromInt(50)},
			{AccountID: inactiveAccount.AccountID, CreditAmount: decimal.NewFromInt(50)},
		},
	}
	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything, suite.userID).Return(accountsMapFor(suite.assetAccount, inactiveAccount), nil).Once()

	_, err := suite.service.CreateEntry(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
}

// --- PostEntry ---

func (suite *JournalServiceTestSuite) TestPostEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: suite.organizationID,
		JournalNumber:  "JE-20250314-0001",
		Status:         domain.EntryDraft,
	}
	lines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.assetAccount.AccountID, DebitAmount: decimal.NewFromInt(200)},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.revenueAccount.AccountID, CreditAmount: decimal.NewFromInt(200)},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(lines, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything, suite.userID).Return(accountsMapFor(suite.assetAccount, suite.revenueAccount), nil).Once()
	suite.mockJournalRepo.On("PostEntry", ctx, suite.organizationID, entryID,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			// Debit 200 to an asset raises it by 200, credit 200 to revenue raises it by 200.
			return changes[suite.assetAccount.AccountID].Equal(decimal.NewFromInt(200)) &&
				changes[suite.revenueAccount.AccountID].Equal(decimal.NewFromInt(200))
		}),
		suite.userID, mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	posted, err := suite.service.PostEntry(ctx, suite.organizationID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(posted)
	suite.Equal(domain.EntryPosted, posted.Status)
	suite.Len(posted.Lines, 2)

	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestPostEntry_NotDraft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	postedEntry := &domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: suite.organizationID,
		Status:         domain.EntryPosted,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entryID).Return(postedEntry, nil).Once()

	_, err := suite.service.PostEntry(ctx, suite.organizationID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "PostEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ReverseEntry ---

func (suite *JournalServiceTestSuite) TestReverseEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	original := &domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: suite.organizationID,
		JournalNumber:  "JE-20250314-0002",
		Status:         domain.EntryPosted,
		TotalDebit:     decimal.NewFromInt(75),
		TotalCredit:    decimal.NewFromInt(75),
	}
	originalLines := []domain.JournalLine{
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.expenseAccount.AccountID, DebitAmount: decimal.NewFromInt(75), LineOrder: 0},
		{LineID: uuid.NewString(), EntryID: entryID, AccountID: suite.assetAccount.AccountID, CreditAmount: decimal.NewFromInt(75), LineOrder: 1},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entryID).Return(original, nil).Once()
	suite.mockJournalRepo.On("FindLinesByEntryID", ctx, entryID).Return(originalLines, nil).Once()
	suite.mockAccountSvc.On("GetAccountByIDs", ctx, suite.organizationID, mock.Anything, suite.userID).Return(accountsMapFor(suite.expenseAccount, suite.assetAccount), nil).Once()
	suite.mockJournalRepo.On("CountEntriesOnDate", ctx, suite.organizationID, mock.AnythingOfType("time.Time")).Return(0, nil).Once()
	suite.mockJournalRepo.On("SaveReversal", ctx, mock.AnythingOfType("domain.JournalEntry"), entryID,
		mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
			// The reversal credits the expense and debits the asset back.
			return changes[suite.expenseAccount.AccountID].Equal(decimal.NewFromInt(-75)) &&
				changes[suite.assetAccount.AccountID].Equal(decimal.NewFromInt(75))
		}),
	).Return(nil).Once()

	reversal, err := suite.service.ReverseEntry(ctx, suite.organizationID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(reversal)
	suite.Equal(domain.EntryPosted, reversal.Status)
	suite.Require().NotNil(reversal.OriginalEntryID)
	suite.Equal(entryID, *reversal.OriginalEntryID)
	suite.Require().Len(reversal.Lines, 2)
	// Debit and credit swap on every line.
	suite.True(reversal.Lines[0].CreditAmount.Equal(decimal.NewFromInt(75)))
	suite.True(reversal.Lines[0].DebitAmount.IsZero())
	suite.True(reversal.Lines[1].DebitAmount.Equal(decimal.NewFromInt(75)))
	suite.True(reversal.Lines[1].CreditAmount.IsZero())

	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockAccountSvc.AssertExpectations(suite.T())
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestReverseEntry_NotPosted() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: suite.organizationID,
		Status:         domain.EntryDraft,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entryID).Return(draft, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.organizationID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryNotPosted)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_AlreadyReversed() {
	ctx := context.Background()
	entryID := uuid.NewString()
	reversingID := uuid.NewString()
	reversed := &domain.JournalEntry{
		EntryID:          entryID,
		OrganizationID:   suite.organizationID,
		Status:           domain.EntryPosted,
		ReversingEntryID: &reversingID,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entryID).Return(reversed, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.organizationID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryHasReversal)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

func (suite *JournalServiceTestSuite) TestReverseEntry_IsReversal() {
	ctx := context.Background()
	entryID := uuid.NewString()
	originalID := uuid.NewString()
	reversalEntry := &domain.JournalEntry{
		EntryID:         entryID,
		OrganizationID:  suite.organizationID,
		Status:          domain.EntryPosted,
		OriginalEntryID: &originalID,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entryID).Return(reversalEntry, nil).Once()

	_, err := suite.service.ReverseEntry(ctx, suite.organizationID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryIsReversal)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- UpdateEntry ---

func (suite *JournalServiceTestSuite) TestUpdateEntry_NotDraft() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: suite.organizationID,
		Status:         domain.EntryPosted,
	}
	newDesc := "Updated description"

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entryID).Return(posted, nil).Once()

	_, err := suite.service.UpdateEntry(ctx, suite.organizationID, entryID, dto.UpdateJournalEntryRequest{Description: &newDesc}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrEntryNotDraft)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "UpdateEntry", mock.Anything, mock.Anything)
}

// --- DeleteEntry ---

func (suite *JournalServiceTestSuite) TestDeleteEntry_Success() {
	ctx := context.Background()
	entryID := uuid.NewString()
	draft := &domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: suite.organizationID,
		Status:         domain.EntryDraft,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entryID).Return(draft, nil).Once()
	suite.mockJournalRepo.On("DeleteEntry", ctx, suite.organizationID, entryID).Return(nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.organizationID, entryID, suite.userID)

	suite.Require().NoError(err)
	suite.mockJournalRepo.AssertExpectations(suite.T())
}

func (suite *JournalServiceTestSuite) TestDeleteEntry_PostedEntry() {
	ctx := context.Background()
	entryID := uuid.NewString()
	posted := &domain.JournalEntry{
		EntryID:        entryID,
		OrganizationID: suite.organizationID,
		Status:         domain.EntryPosted,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockJournalRepo.On("FindEntryByID", ctx, suite.organizationID, entryID).Return(posted, nil).Once()

	err := suite.service.DeleteEntry(ctx, suite.organizationID, entryID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockJournalRepo.AssertNotCalled(suite.T(), "DeleteEntry", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestJournalService(t *testing.T) {
	suite.Run(t, new(JournalServiceTestSuite))
}
