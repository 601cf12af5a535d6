package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/finbooks/finbooks_backend/internal/apperrors"
	"github.com/finbooks/finbooks_backend/internal/core/domain"
	portsrepo "github.com/finbooks/finbooks_backend/internal/core/ports/repositories"
	portssvc "github.com/finbooks/finbooks_backend/internal/core/ports/services"
	"github.com/finbooks/finbooks_backend/internal/core/services"
	"github.com/finbooks/finbooks_backend/internal/dto"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock PaymentRepository ---
type MockPaymentRepository struct {
	mock.Mock
}

var _ portsrepo.PaymentRepositoryFacade = (*MockPaymentRepository)(nil)

func (m *MockPaymentRepository) FindPaymentByID(ctx context.Context, organizationID string, paymentID string) (*domain.Payment, error) {
	args := m.Called(ctx, organizationID, paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListPayments(ctx context.Context, organizationID string, paymentType *domain.PaymentType, limit int, nextToken *string) ([]domain.Payment, *string, error) {
	args := m.Called(ctx, organizationID, paymentType, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Payment), returnedNextToken, args.Error(2)
}

func (m *MockPaymentRepository) CountPaymentsOnDate(ctx context.Context, organizationID string, paymentType domain.PaymentType, date time.Time) (int, error) {
	args := m.Called(ctx, organizationID, paymentType, date)
	return args.Int(0), args.Error(1)
}

func (m *MockPaymentRepository) SavePayment(ctx context.Context, payment domain.Payment, recon portsrepo.ReconciliationUpdate) error {
	args := m.Called(ctx, payment, recon)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeletePayment(ctx context.Context, organizationID string, paymentID string, recon portsrepo.ReconciliationUpdate, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, paymentID, recon, userID, now)
	return args.Error(0)
}

func (m *MockPaymentRepository) UpdatePayment(ctx context.Context, payment domain.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

// --- Mock InvoiceRepository ---
type MockInvoiceRepository struct {
	mock.Mock
}

var _ portsrepo.InvoiceRepositoryFacade = (*MockInvoiceRepository)(nil)

func (m *MockInvoiceRepository) FindInvoiceByID(ctx context.Context, organizationID string, invoiceID string) (*domain.Invoice, error) {
	args := m.Called(ctx, organizationID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListInvoices(ctx context.Context, organizationID string, status *domain.InvoiceStatus, customerID *string, overdueOnly bool, limit int, nextToken *string) ([]domain.Invoice, *string, error) {
	args := m.Called(ctx, organizationID, status, customerID, overdueOnly, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Invoice), returnedNextToken, args.Error(2)
}

func (m *MockInvoiceRepository) SaveInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoice(ctx context.Context, invoice domain.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) UpdateInvoiceStatus(ctx context.Context, organizationID string, invoiceID string, status domain.InvoiceStatus, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, invoiceID, status, userID, now)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteInvoice(ctx context.Context, organizationID string, invoiceID string) error {
	args := m.Called(ctx, organizationID, invoiceID)
	return args.Error(0)
}

// --- Mock BillRepository ---
type MockBillRepository struct {
	mock.Mock
}

var _ portsrepo.BillRepositoryFacade = (*MockBillRepository)(nil)

func (m *MockBillRepository) FindBillByID(ctx context.Context, organizationID string, billID string) (*domain.Bill, error) {
	args := m.Called(ctx, organizationID, billID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Bill), args.Error(1)
}

func (m *MockBillRepository) ListBills(ctx context.Context, organizationID string, status *domain.BillStatus, vendorID *string, overdueOnly bool, limit int, nextToken *string) ([]domain.Bill, *string, error) {
	args := m.Called(ctx, organizationID, status, vendorID, overdueOnly, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Bill), returnedNextToken, args.Error(2)
}

func (m *MockBillRepository) SaveBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) UpdateBill(ctx context.Context, bill domain.Bill) error {
	args := m.Called(ctx, bill)
	return args.Error(0)
}

func (m *MockBillRepository) UpdateBillStatus(ctx context.Context, organizationID string, billID string, status domain.BillStatus, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, billID, status, userID, now)
	return args.Error(0)
}

func (m *MockBillRepository) DeleteBill(ctx context.Context, organizationID string, billID string) error {
	args := m.Called(ctx, organizationID, billID)
	return args.Error(0)
}

// --- Mock CustomerRepository ---
type MockCustomerRepository struct {
	mock.Mock
}

var _ portsrepo.CustomerRepositoryFacade = (*MockCustomerRepository)(nil)

func (m *MockCustomerRepository) FindCustomerByID(ctx context.Context, organizationID string, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, organizationID, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) ListCustomers(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Customer, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *MockCustomerRepository) DeactivateCustomer(ctx context.Context, organizationID string, customerID string, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, customerID, userID, now)
	return args.Error(0)
}

// --- Mock VendorRepository ---
type MockVendorRepository struct {
	mock.Mock
}

var _ portsrepo.VendorRepositoryFacade = (*MockVendorRepository)(nil)

func (m *MockVendorRepository) FindVendorByID(ctx context.Context, organizationID string, vendorID string) (*domain.Vendor, error) {
	args := m.Called(ctx, organizationID, vendorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) ListVendors(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Vendor, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Vendor), args.Error(1)
}

func (m *MockVendorRepository) SaveVendor(ctx context.Context, vendor domain.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) UpdateVendor(ctx context.Context, vendor domain.Vendor) error {
	args := m.Called(ctx, vendor)
	return args.Error(0)
}

func (m *MockVendorRepository) DeactivateVendor(ctx context.Context, organizationID string, vendorID string, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, vendorID, userID, now)
	return args.Error(0)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, organizationID string, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountByCode(ctx context.Context, organizationID string, code string) (*domain.Account, error) {
	args := m.Called(ctx, organizationID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, organizationID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, organizationID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Account, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) HasChildAccounts(ctx context.Context, organizationID string, accountID string) (bool, error) {
	args := m.Called(ctx, organizationID, accountID)
	return args.Bool(0), args.Error(1)
}

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) DeactivateAccount(ctx context.Context, organizationID string, accountID string, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, accountID, userID, now)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, tx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, userID string, now time.Time) error {
	args := m.Called(ctx, tx, balanceChanges, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type PaymentServiceTestSuite struct {
	suite.Suite
	mockPaymentRepo  *MockPaymentRepository
	mockInvoiceRepo  *MockInvoiceRepository
	mockBillRepo     *MockBillRepository
	mockCustomerRepo *MockCustomerRepository
	mockVendorRepo   *MockVendorRepository
	mockAccountRepo  *MockAccountRepository
	mockOrgSvc       *MockOrganizationService
	service          portssvc.PaymentSvcFacade
	bankAccount      domain.Account
	organizationID   string
	userID           string
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPaymentRepo = new(MockPaymentRepository)
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockBillRepo = new(MockBillRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockVendorRepo = new(MockVendorRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewPaymentService(
		suite.mockPaymentRepo,
		suite.mockInvoiceRepo,
		suite.mockBillRepo,
		suite.mockCustomerRepo,
		suite.mockVendorRepo,
		suite.mockAccountRepo,
		suite.mockOrgSvc,
	)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.bankAccount = domain.Account{
		AccountID:      uuid.NewString(),
		OrganizationID: suite.organizationID,
		AccountType:    domain.Asset,
		IsActive:       true,
	}
}

// --- CreatePayment ---

func (suite *PaymentServiceTestSuite) TestCreatePayment_InvoiceSuccess() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	customerID := uuid.NewString()
	paymentDate := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	invoice := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		CustomerID:     customerID,
		Status:         domain.InvoiceSent,
		TotalAmount:    decimal.NewFromInt(100),
		Balance:        decimal.NewFromInt(100),
	}
	req := dto.CreatePaymentRequest{
		PaymentType:   domain.PaymentReceived,
		PaymentDate:   paymentDate,
		Amount:        decimal.NewFromInt(60),
		PaymentMethod: domain.MethodBankTransfer,
		AccountID:     suite.bankAccount.AccountID,
		InvoiceID:     &invoiceID,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, suite.bankAccount.AccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("CountPaymentsOnDate", ctx, suite.organizationID, domain.PaymentReceived, paymentDate).Return(0, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"),
		mock.MatchedBy(func(recon portsrepo.ReconciliationUpdate) bool {
			// Money in debits the asset account, so the delta is +60.
			return recon.InvoiceID != nil && *recon.InvoiceID == invoiceID &&
				recon.CustomerID != nil && *recon.CustomerID == customerID &&
				recon.Amount.Equal(decimal.NewFromInt(60)) &&
				recon.AccountDelta.Equal(decimal.NewFromInt(60))
		}),
	).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.NotEmpty(payment.PaymentID)
	suite.Equal("PAY-RECV-20250301-0001", payment.PaymentNumber)
	suite.Require().NotNil(payment.CustomerID)
	suite.Equal(customerID, *payment.CustomerID) // derived from the invoice
	suite.Equal(suite.userID, payment.CreatedBy)

	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_AuthorizationFail() {
	ctx := context.Background()
	authErr := apperrors.ErrForbidden
	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(authErr).Once()

	_, err := suite.service.CreatePayment(ctx, suite.organizationID, dto.CreatePaymentRequest{}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, authErr)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.CreatePaymentRequest{
		PaymentType: domain.PaymentReceived,
		Amount:      decimal.Zero,
		AccountID:   suite.bankAccount.AccountID,
	}
	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()

	_, err := suite.service.CreatePayment(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_LinkMismatch() {
	ctx := context.Background()
	vendorID := uuid.NewString()
	req := dto.CreatePaymentRequest{
		PaymentType: domain.PaymentReceived,
		Amount:      decimal.NewFromInt(50),
		AccountID:   suite.bankAccount.AccountID,
		VendorID:    &vendorID, // a received payment cannot reference a vendor
	}
	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()

	_, err := suite.service.CreatePayment(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_TypeForcedFromInvoice() {
	// An invoice link is authoritative: the payment is recorded as
	// PAYMENT_RECEIVED even when the request says otherwise.
	ctx := context.Background()
	invoiceID := uuid.NewString()
	customerID := uuid.NewString()
	paymentDate := time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)

	invoice := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		CustomerID:     customerID,
		Status:         domain.InvoiceSent,
		TotalAmount:    decimal.NewFromInt(100),
		Balance:        decimal.NewFromInt(100),
	}
	req := dto.CreatePaymentRequest{
		PaymentType:   domain.PaymentMade, // contradicted by the invoice link
		PaymentDate:   paymentDate,
		Amount:        decimal.NewFromInt(100),
		PaymentMethod: domain.MethodBankTransfer,
		AccountID:     suite.bankAccount.AccountID,
		InvoiceID:     &invoiceID,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, suite.bankAccount.AccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(invoice, nil).Once()
	suite.mockPaymentRepo.On("CountPaymentsOnDate", ctx, suite.organizationID, domain.PaymentReceived, paymentDate).Return(0, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx,
		mock.MatchedBy(func(p domain.Payment) bool {
			return p.PaymentType == domain.PaymentReceived
		}),
		mock.AnythingOfType("repositories.ReconciliationUpdate"),
	).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal(domain.PaymentReceived, payment.PaymentType)
	suite.Equal("PAY-RECV-20250305-0001", payment.PaymentNumber)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_Overpays() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		CustomerID:     uuid.NewString(),
		Status:         domain.InvoicePartiallyPaid,
		TotalAmount:    decimal.NewFromInt(100),
		PaidAmount:     decimal.NewFromInt(70),
		Balance:        decimal.NewFromInt(30),
	}
	req := dto.CreatePaymentRequest{
		PaymentType:   domain.PaymentReceived,
		PaymentDate:   time.Now(),
		Amount:        decimal.NewFromInt(40), // more than the 30 remaining
		PaymentMethod: domain.MethodCash,
		AccountID:     suite.bankAccount.AccountID,
		InvoiceID:     &invoiceID,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, suite.bankAccount.AccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(invoice, nil).Once()

	_, err := suite.service.CreatePayment(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), services.ErrPaymentOverpays.Error())
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "SavePayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_DraftInvoice() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	invoice := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		CustomerID:     uuid.NewString(),
		Status:         domain.InvoiceDraft,
		Balance:        decimal.NewFromInt(100),
	}
	req := dto.CreatePaymentRequest{
		PaymentType:   domain.PaymentReceived,
		PaymentDate:   time.Now(),
		Amount:        decimal.NewFromInt(50),
		PaymentMethod: domain.MethodCash,
		AccountID:     suite.bankAccount.AccountID,
		InvoiceID:     &invoiceID,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, suite.bankAccount.AccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(invoice, nil).Once()

	_, err := suite.service.CreatePayment(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), services.ErrDocumentNotPayable.Error())
}

func (suite *PaymentServiceTestSuite) TestCreatePayment_BillSuccess() {
	ctx := context.Background()
	billID := uuid.NewString()
	vendorID := uuid.NewString()
	paymentDate := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	bill := &domain.Bill{
		BillID:         billID,
		OrganizationID: suite.organizationID,
		VendorID:       vendorID,
		Status:         domain.BillApproved,
		TotalAmount:    decimal.NewFromInt(80),
		Balance:        decimal.NewFromInt(80),
	}
	req := dto.CreatePaymentRequest{
		PaymentType:   domain.PaymentMade,
		PaymentDate:   paymentDate,
		Amount:        decimal.NewFromInt(80),
		PaymentMethod: domain.MethodCheck,
		AccountID:     suite.bankAccount.AccountID,
		BillID:        &billID,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, suite.bankAccount.AccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, suite.organizationID, billID).Return(bill, nil).Once()
	suite.mockPaymentRepo.On("CountPaymentsOnDate", ctx, suite.organizationID, domain.PaymentMade, paymentDate).Return(2, nil).Once()
	suite.mockPaymentRepo.On("SavePayment", ctx, mock.AnythingOfType("domain.Payment"),
		mock.MatchedBy(func(recon portsrepo.ReconciliationUpdate) bool {
			// Money out credits the asset account, so the delta is -80.
			return recon.BillID != nil && *recon.BillID == billID &&
				recon.VendorID != nil && *recon.VendorID == vendorID &&
				recon.AccountDelta.Equal(decimal.NewFromInt(-80))
		}),
	).Return(nil).Once()

	payment, err := suite.service.CreatePayment(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(payment)
	suite.Equal("PAY-MADE-20250302-0003", payment.PaymentNumber)
	suite.Require().NotNil(payment.VendorID)
	suite.Equal(vendorID, *payment.VendorID) // derived from the bill

	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockBillRepo.AssertExpectations(suite.T())
}

// --- DeletePayment ---

func (suite *PaymentServiceTestSuite) TestDeletePayment_ReversesReconciliation() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	invoiceID := uuid.NewString()
	customerID := uuid.NewString()

	payment := &domain.Payment{
		PaymentID:      paymentID,
		OrganizationID: suite.organizationID,
		PaymentType:    domain.PaymentReceived,
		PaymentNumber:  "PAY-RECV-20250301-0001",
		Amount:         decimal.NewFromInt(60),
		AccountID:      suite.bankAccount.AccountID,
		CustomerID:     &customerID,
		InvoiceID:      &invoiceID,
	}

	linkedInvoice := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		CustomerID:     customerID,
		Status:         domain.InvoicePartiallyPaid,
		TotalAmount:    decimal.NewFromInt(100),
		PaidAmount:     decimal.NewFromInt(60),
		Balance:        decimal.NewFromInt(40),
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.organizationID, paymentID).Return(payment, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(linkedInvoice, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.organizationID, suite.bankAccount.AccountID).Return(&suite.bankAccount, nil).Once()
	suite.mockPaymentRepo.On("DeletePayment", ctx, suite.organizationID, paymentID,
		mock.MatchedBy(func(recon portsrepo.ReconciliationUpdate) bool {
			// Everything the payment applied comes back negated.
			return recon.InvoiceID != nil && *recon.InvoiceID == invoiceID &&
				recon.Amount.Equal(decimal.NewFromInt(-60)) &&
				recon.AccountDelta.Equal(decimal.NewFromInt(-60))
		}),
		suite.userID, mock.AnythingOfType("time.Time"),
	).Return(nil).Once()

	err := suite.service.DeletePayment(ctx, suite.organizationID, paymentID, suite.userID)

	suite.Require().NoError(err)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_VoidedInvoiceRejected() {
	// Voiding already removed the invoice's open balance from the customer's
	// outstanding total; unwinding the payment now would resurrect a terminal
	// document and double-adjust the mirror.
	ctx := context.Background()
	paymentID := uuid.NewString()
	invoiceID := uuid.NewString()
	customerID := uuid.NewString()

	payment := &domain.Payment{
		PaymentID:      paymentID,
		OrganizationID: suite.organizationID,
		PaymentType:    domain.PaymentReceived,
		Amount:         decimal.NewFromInt(60),
		AccountID:      suite.bankAccount.AccountID,
		CustomerID:     &customerID,
		InvoiceID:      &invoiceID,
	}
	voided := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		CustomerID:     customerID,
		Status:         domain.InvoiceVoid,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.organizationID, paymentID).Return(payment, nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(voided, nil).Once()

	err := suite.service.DeletePayment(ctx, suite.organizationID, paymentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), services.ErrDocumentTerminal.Error())
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "DeletePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_CancelledBillRejected() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	billID := uuid.NewString()
	vendorID := uuid.NewString()

	payment := &domain.Payment{
		PaymentID:      paymentID,
		OrganizationID: suite.organizationID,
		PaymentType:    domain.PaymentMade,
		Amount:         decimal.NewFromInt(80),
		AccountID:      suite.bankAccount.AccountID,
		VendorID:       &vendorID,
		BillID:         &billID,
	}
	cancelled := &domain.Bill{
		BillID:         billID,
		OrganizationID: suite.organizationID,
		VendorID:       vendorID,
		Status:         domain.BillCancelled,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.organizationID, paymentID).Return(payment, nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, suite.organizationID, billID).Return(cancelled, nil).Once()

	err := suite.service.DeletePayment(ctx, suite.organizationID, paymentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), services.ErrDocumentTerminal.Error())
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "DeletePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDeletePayment_NotFound() {
	ctx := context.Background()
	paymentID := uuid.NewString()

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.organizationID, paymentID).
		Return(nil, fmt.Errorf("%w: payment %s", apperrors.ErrNotFound, paymentID)).Once()

	err := suite.service.DeletePayment(ctx, suite.organizationID, paymentID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockPaymentRepo.AssertNotCalled(suite.T(), "DeletePayment", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdatePayment ---

func (suite *PaymentServiceTestSuite) TestUpdatePayment_AnnotationsOnly() {
	ctx := context.Background()
	paymentID := uuid.NewString()
	payment := &domain.Payment{
		PaymentID:      paymentID,
		OrganizationID: suite.organizationID,
		PaymentType:    domain.PaymentReceived,
		Amount:         decimal.NewFromInt(60),
		AccountID:      suite.bankAccount.AccountID,
	}
	newNotes := "Wire confirmed by the bank"

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockPaymentRepo.On("FindPaymentByID", ctx, suite.organizationID, paymentID).Return(payment, nil).Once()
	suite.mockPaymentRepo.On("UpdatePayment", ctx, mock.MatchedBy(func(p domain.Payment) bool {
		return p.Notes == newNotes && p.LastUpdatedBy == suite.userID
	})).Return(nil).Once()

	updated, err := suite.service.UpdatePayment(ctx, suite.organizationID, paymentID, dto.UpdatePaymentRequest{Notes: &newNotes}, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(newNotes, updated.Notes)
	suite.mockPaymentRepo.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestPaymentService(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}
