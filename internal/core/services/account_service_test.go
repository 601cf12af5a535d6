package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---
type AccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockOrgSvc      *MockOrganizationService
	service         portssvc.AccountSvcFacade
	organizationID  string
	userID          string
}

func (suite *AccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewAccountService(suite.mockAccountRepo, suite.mockOrgSvc)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()
}

// --- CreateAccount ---

func (suite *AccountServiceTestSuite) TestCreateAccount_Success() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.organizationID, "1000").
		Return(nil, fmt.Errorf("%w: no account with code 1000", apperrors.ErrNotFound)).Once()
	suite.mockAccountRepo.On("SaveAccount", ctx, mock.AnythingOfType("domain.Account")).Return(nil).Once()

	account, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal("1000", account.Code)
	suite.Equal(domain.Asset, account.AccountType)
	suite.True(account.IsActive)
	suite.Equal(suite.userID, account.CreatedBy)

	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestCreateAccount_DuplicateCode() {
	ctx := context.Background()
	req := dto.CreateAccountRequest{
		Code:        "1000",
		Name:        "Cash again",
		AccountType: domain.Asset,
	}
	existing := &domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		Code:           "1000",
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.organizationID, "1000").Return(existing, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestCreateAccount_ParentTypeMismatch() {
	ctx := context.Background()
	parent := &domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountType:    domain.Liability,
	}
	req := dto.CreateAccountRequest{
		Code:            "1100",
		Name:            "Bank",
		AccountType:     domain.Asset,
		ParentAccountID: &parent.AccountID,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByCode", ctx, suite.organizationID, "1100").
		Return(nil, fmt.Errorf("%w: no account with code 1100", apperrors.ErrNotFound)).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, parent.AccountID).Return(parent, nil).Once()

	_, err := suite.service.CreateAccount(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccount", mock.Anything, mock.Anything)
}

// --- UpdateAccount ---

func (suite *AccountServiceTestSuite) TestUpdateAccount_SystemAccountImmutable() {
	ctx := context.Background()
	accountID := uuid.NewString()
	systemAccount := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.organizationID,
		IsSystem:       true,
	}
	newName := "Renamed"

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, accountID).Return(systemAccount, nil).Once()

	_, err := suite.service.UpdateAccount(ctx, suite.organizationID, accountID, dto.UpdateAccountRequest{Name: &newName}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrSystemAccount)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestUpdateAccount_NoChangesIsNoop() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.organizationID,
		Name:           "Cash",
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, accountID).Return(account, nil).Once()

	got, err := suite.service.UpdateAccount(ctx, suite.organizationID, accountID, dto.UpdateAccountRequest{}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal("Cash", got.Name)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccount", mock.Anything, mock.Anything)
}

// --- DeleteAccount ---

func (suite *AccountServiceTestSuite) TestDeleteAccount_Success() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.organizationID,
		Balance:        decimal.Zero,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("HasChildAccounts", ctx, suite.organizationID, accountID).Return(false, nil).Once()
	suite.mockAccountRepo.On("DeactivateAccount", ctx, suite.organizationID, accountID, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.organizationID, accountID, suite.userID)

	suite.Require().NoError(err)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_NonZeroBalance() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.organizationID,
		Balance:        decimal.NewFromInt(42),
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, accountID).Return(account, nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.organizationID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountHasBalance)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountServiceTestSuite) TestDeleteAccount_HasChildren() {
	ctx := context.Background()
	accountID := uuid.NewString()
	account := &domain.Account{
		AccountID:      accountID,
		OrganizationID: suite.organizationID,
		Balance:        decimal.Zero,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, accountID).Return(account, nil).Once()
	suite.mockAccountRepo.On("HasChildAccounts", ctx, suite.organizationID, accountID).Return(true, nil).Once()

	err := suite.service.DeleteAccount(ctx, suite.organizationID, accountID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, services.ErrAccountHasChildren)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "DeactivateAccount", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- ListAccounts ---

func (suite *AccountServiceTestSuite) TestListAccounts_DefaultsLimit() {
	ctx := context.Background()
	expected := []domain.Account{{AccountID: uuid.NewString()}}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleViewer).Return(nil).Once()
	suite.mockAccountRepo.On("ListAccounts", ctx, suite.organizationID, 20, 0).Return(expected, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, suite.organizationID, suite.userID, 0, 0)

	suite.Require().NoError(err)
	suite.Len(accounts, 1)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestAccountService(t *testing.T) {
	suite.Run(t, new(AccountServiceTestSuite))
}
