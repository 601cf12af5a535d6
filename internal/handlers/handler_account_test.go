package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/finbooks/finbooks_backend/internal/handlers"
	"github.com/finbooks/finbooks_backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock AccountService ---
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccount(ctx context.Context, organizationID string, req dto.CreateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByID(ctx context.Context, organizationID string, accountID string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByCode(ctx context.Context, organizationID string, code string, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) GetAccountByIDs(ctx context.Context, organizationID string, accountIDs []string, userID string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}
func (m *MockAccountService) ListAccounts(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, userID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}
func (m *MockAccountService) UpdateAccount(ctx context.Context, organizationID string, accountID string, req dto.UpdateAccountRequest, userID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}
func (m *MockAccountService) DeleteAccount(ctx context.Context, organizationID string, accountID string, userID string) error {
	args := m.Called(ctx, organizationID, accountID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.AccountSvcFacade = (*MockAccountService)(nil)

// --- Mock JournalService ---
type MockJournalService struct {
	mock.Mock
}

func (m *MockJournalService) CreateEntry(ctx context.Context, organizationID string, req dto.CreateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) GetEntryByID(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ListEntries(ctx context.Context, organizationID string, userID string, params dto.ListJournalEntriesParams) (*dto.ListJournalEntriesResponse, error) {
	args := m.Called(ctx, organizationID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalEntriesResponse), args.Error(1)
}
func (m *MockJournalService) ListLinesByAccount(ctx context.Context, organizationID string, accountID string, userID string, params dto.ListJournalLinesParams) (*dto.ListJournalLinesResponse, error) {
	args := m.Called(ctx, organizationID, accountID, userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListJournalLinesResponse), args.Error(1)
}
func (m *MockJournalService) UpdateEntry(ctx context.Context, organizationID string, entryID string, req dto.UpdateJournalEntryRequest, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) PostEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) ReverseEntry(ctx context.Context, organizationID string, entryID string, userID string) (*domain.JournalEntry, error) {
	args := m.Called(ctx, organizationID, entryID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JournalEntry), args.Error(1)
}
func (m *MockJournalService) DeleteEntry(ctx context.Context, organizationID string, entryID string, userID string) error {
	args := m.Called(ctx, organizationID, entryID, userID)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.JournalSvcFacade = (*MockJournalService)(nil)

// --- Test Suite ---
type AccountHandlerTestSuite struct {
	suite.Suite
	router             *gin.Engine
	mockAccountService *MockAccountService
	mockJournalService *MockJournalService
	jwtSecret          string
}

// generateTestToken creates a dummy JWT for testing.
func (suite *AccountHandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "finbooks-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(1 * time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(suite.jwtSecret))
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return signed
}

func (suite *AccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret))

	suite.mockAccountService = new(MockAccountService)
	suite.mockJournalService = new(MockJournalService)

	v1 := suite.router.Group("/api/v1/organizations/:org_id")
	handlers.RegisterAccountRoutes(v1, suite.mockAccountService, suite.mockJournalService)
}

// --- Test Cases ---

func (suite *AccountHandlerTestSuite) TestGetAccount_Success() {
	orgID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	expected := &domain.Account{
		AccountID:   accountID,
		Code:        "1000",
		Name:        "Cash",
		AccountType: domain.Asset,
		Balance:     decimal.NewFromInt(250),
		IsActive:    true,
	}

	suite.mockAccountService.On("GetAccountByID",
		mock.Anything, orgID, accountID, userID,
	).Return(expected, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s", orgID, accountID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)

	var body dto.AccountResponse
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(accountID, body.AccountID)
	suite.Equal("1000", body.Code)
	suite.True(expected.Balance.Equal(body.Balance))

	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_NotFound() {
	orgID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()

	suite.mockAccountService.On("GetAccountByID",
		mock.Anything, orgID, accountID, userID,
	).Return(nil, fmt.Errorf("%w: account %s not found", apperrors.ErrNotFound, accountID)).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s", orgID, accountID)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestGetAccount_MissingToken() {
	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s", uuid.NewString(), uuid.NewString())
	req, _ := http.NewRequest(http.MethodGet, url, nil)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAccountService.AssertNotCalled(suite.T(), "GetAccountByID")
}

func (suite *AccountHandlerTestSuite) TestCreateAccount_Validation() {
	orgID := uuid.NewString()
	userID := uuid.NewString()

	req := dto.CreateAccountRequest{
		Code:        "4000",
		Name:        "Sales",
		AccountType: domain.Revenue,
	}

	suite.mockAccountService.On("CreateAccount",
		mock.Anything, orgID, req, userID,
	).Return(nil, fmt.Errorf("%w: parent account type mismatch", apperrors.ErrValidation)).Once()

	payload, _ := json.Marshal(req)
	url := fmt.Sprintf("/api/v1/organizations/%s/accounts", orgID)
	httpReq, _ := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(payload))
	httpReq.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	httpReq.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, httpReq)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccountService.AssertExpectations(suite.T())
}

func (suite *AccountHandlerTestSuite) TestListAccountLines_Success() {
	orgID := uuid.NewString()
	accountID := uuid.NewString()
	userID := uuid.NewString()
	limit := 10

	expectedLines := []dto.JournalLineResponse{
		{
			LineID:      uuid.NewString(),
			AccountID:   accountID,
			DebitAmount: decimal.NewFromInt(100),
		},
		{
			LineID:       uuid.NewString(),
			AccountID:    accountID,
			CreditAmount: decimal.NewFromInt(50),
		},
	}
	expectedResponse := &dto.ListJournalLinesResponse{
		Lines:     expectedLines,
		NextToken: nil,
	}

	suite.mockJournalService.On("ListLinesByAccount",
		mock.Anything,
		orgID,
		accountID,
		userID,
		mock.MatchedBy(func(p dto.ListJournalLinesParams) bool {
			return p.Limit == limit
		}),
	).Return(expectedResponse, nil).Once()

	url := fmt.Sprintf("/api/v1/organizations/%s/accounts/%s/lines?limit=%d", orgID, accountID, limit)
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(userID))
	req.Header.Set("Accept", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code, "Expected status OK")

	var responseBody dto.ListJournalLinesResponse
	err := json.Unmarshal(w.Body.Bytes(), &responseBody)
	suite.NoError(err, "Failed to unmarshal response body")
	suite.Len(responseBody.Lines, len(expectedLines))
	if len(responseBody.Lines) == len(expectedLines) {
		suite.Equal(expectedLines[0].LineID, responseBody.Lines[0].LineID)
		suite.Equal(expectedLines[1].LineID, responseBody.Lines[1].LineID)
	}

	suite.mockJournalService.AssertExpectations(suite.T())
	suite.mockAccountService.AssertNotCalled(suite.T(), "ListAccounts")
}

// --- Run Test Suite ---
func TestAccountHandler(t *testing.T) {
	suite.Run(t, new(AccountHandlerTestSuite))
}
