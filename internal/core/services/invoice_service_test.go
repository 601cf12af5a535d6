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
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ItemRepository ---
type MockItemRepository struct {
	mock.Mock
}

var _ portsrepo.ItemRepositoryFacade = (*MockItemRepository)(nil)

func (m *MockItemRepository) FindItemByID(ctx context.Context, organizationID string, itemID string) (*domain.Item, error) {
	args := m.Called(ctx, organizationID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Item), args.Error(1)
}

func (m *MockItemRepository) FindItemsByIDs(ctx context.Context, organizationID string, itemIDs []string) (map[string]domain.Item, error) {
	args := m.Called(ctx, organizationID, itemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Item), args.Error(1)
}

func (m *MockItemRepository) ListItems(ctx context.Context, organizationID string, limit int, offset int) ([]domain.Item, error) {
	args := m.Called(ctx, organizationID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Item), args.Error(1)
}

func (m *MockItemRepository) SaveItem(ctx context.Context, item domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) UpdateItem(ctx context.Context, item domain.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) DeactivateItem(ctx context.Context, organizationID string, itemID string, userID string, now time.Time) error {
	args := m.Called(ctx, organizationID, itemID, userID, now)
	return args.Error(0)
}

// --- Test Suite Setup ---
type InvoiceServiceTestSuite struct {
	suite.Suite
	mockInvoiceRepo  *MockInvoiceRepository
	mockCustomerRepo *MockCustomerRepository
	mockItemRepo     *MockItemRepository
	mockOrgSvc       *MockOrganizationService
	service          portssvc.InvoiceSvcFacade
	customer         domain.Customer
	catalogItem      domain.Item
	organizationID   string
	userID           string
}

func (suite *InvoiceServiceTestSuite) SetupTest() {
	suite.mockInvoiceRepo = new(MockInvoiceRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockItemRepo = new(MockItemRepository)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewInvoiceService(
		suite.mockInvoiceRepo,
		suite.mockCustomerRepo,
		suite.mockItemRepo,
		suite.mockOrgSvc,
	)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.customer = domain.Customer{
		CustomerID:     uuid.NewString(),
		OrganizationID: suite.organizationID,
		Name:           "Acme Ltd",
		IsActive:       true,
	}
	suite.catalogItem = domain.Item{
		ItemID:         uuid.NewString(),
		OrganizationID: suite.organizationID,
		Name:           "Consulting hour",
		UnitPrice:      decimal.NewFromInt(50),
		IsActive:       true,
	}
}

func (suite *InvoiceServiceTestSuite) catalogFor(items ...domain.Item) map[string]domain.Item {
	m := make(map[string]domain.Item, len(items))
	for _, it := range items {
		m[it.ItemID] = it
	}
	return m
}

// --- CreateInvoice ---

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DerivesTotals() {
	ctx := context.Background()
	invoiceDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateInvoiceRequest{
		CustomerID:    suite.customer.CustomerID,
		InvoiceNumber: "INV-2025-001",
		InvoiceDate:   invoiceDate,
		DueDate:       invoiceDate.AddDate(0, 1, 0),
		Items: []dto.InvoiceItemRequest{
			// 2 x 50 - 10 discount = 90, 10% tax = 9
			{ItemID: suite.catalogItem.ItemID, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(50), Discount: decimal.NewFromInt(10), TaxRate: decimal.NewFromInt(10)},
			// 1 x 25, no discount, no tax
			{ItemID: suite.catalogItem.ItemID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(25)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.organizationID, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockItemRepo.On("FindItemsByIDs", ctx, suite.organizationID, []string{suite.catalogItem.ItemID}).Return(suite.catalogFor(suite.catalogItem), nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(nil).Once()

	invoice, err := suite.service.CreateInvoice(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(invoice)
	suite.Equal(domain.InvoiceDraft, invoice.Status)
	suite.True(invoice.Subtotal.Equal(decimal.NewFromInt(115)), "subtotal %s", invoice.Subtotal)
	suite.True(invoice.TaxAmount.Equal(decimal.NewFromInt(9)), "tax %s", invoice.TaxAmount)
	suite.True(invoice.TotalAmount.Equal(decimal.NewFromInt(124)), "total %s", invoice.TotalAmount)
	suite.True(invoice.PaidAmount.IsZero())
	suite.True(invoice.Balance.Equal(invoice.TotalAmount))
	suite.Len(invoice.Items, 2)
	// The line without a description inherits the catalog item name.
	suite.Equal(suite.catalogItem.Name, invoice.Items[0].Description)

	suite.mockOrgSvc.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
	suite.mockItemRepo.AssertExpectations(suite.T())
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_InactiveCustomer() {
	ctx := context.Background()
	inactive := suite.customer
	inactive.IsActive = false
	req := dto.CreateInvoiceRequest{
		CustomerID:    inactive.CustomerID,
		InvoiceNumber: "INV-2025-002",
		InvoiceDate:   time.Now(),
		DueDate:       time.Now().AddDate(0, 1, 0),
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.organizationID, inactive.CustomerID).Return(&inactive, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DueDateBeforeInvoiceDate() {
	ctx := context.Background()
	invoiceDate := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateInvoiceRequest{
		CustomerID:    suite.customer.CustomerID,
		InvoiceNumber: "INV-2025-003",
		InvoiceDate:   invoiceDate,
		DueDate:       invoiceDate.AddDate(0, 0, -1),
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.organizationID, suite.customer.CustomerID).Return(&suite.customer, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), services.ErrDueDateBeforeDocDate.Error())
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_UnknownItem() {
	ctx := context.Background()
	unknownItemID := uuid.NewString()
	req := dto.CreateInvoiceRequest{
		CustomerID:    suite.customer.CustomerID,
		InvoiceNumber: "INV-2025-004",
		InvoiceDate:   time.Now(),
		DueDate:       time.Now().AddDate(0, 1, 0),
		Items: []dto.InvoiceItemRequest{
			{ItemID: unknownItemID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.organizationID, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockItemRepo.On("FindItemsByIDs", ctx, suite.organizationID, []string{unknownItemID}).Return(map[string]domain.Item{}, nil).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "SaveInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestCreateInvoice_DuplicateNumber() {
	ctx := context.Background()
	req := dto.CreateInvoiceRequest{
		CustomerID:    suite.customer.CustomerID,
		InvoiceNumber: "INV-2025-001",
		InvoiceDate:   time.Now(),
		DueDate:       time.Now().AddDate(0, 1, 0),
		Items: []dto.InvoiceItemRequest{
			{ItemID: suite.catalogItem.ItemID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, suite.organizationID, suite.customer.CustomerID).Return(&suite.customer, nil).Once()
	suite.mockItemRepo.On("FindItemsByIDs", ctx, suite.organizationID, mock.Anything).Return(suite.catalogFor(suite.catalogItem), nil).Once()
	suite.mockInvoiceRepo.On("SaveInvoice", ctx, mock.AnythingOfType("domain.Invoice")).Return(apperrors.ErrDuplicate).Once()

	_, err := suite.service.CreateInvoice(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

// --- UpdateInvoice ---

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_PaidNotEditable() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	paid := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		CustomerID:     suite.customer.CustomerID,
		Status:         domain.InvoicePaid,
	}
	newNotes := "too late"

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(paid, nil).Once()

	_, err := suite.service.UpdateInvoice(ctx, suite.organizationID, invoiceID, dto.UpdateInvoiceRequest{Notes: &newNotes}, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoice_TotalBelowPaidAmount() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	partiallyPaid := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		CustomerID:     suite.customer.CustomerID,
		Status:         domain.InvoicePartiallyPaid,
		TotalAmount:    decimal.NewFromInt(100),
		PaidAmount:     decimal.NewFromInt(60),
		Balance:        decimal.NewFromInt(40),
	}
	req := dto.UpdateInvoiceRequest{
		Items: []dto.InvoiceItemRequest{
			// New total of 50 would fall below the 60 already paid.
			{ItemID: suite.catalogItem.ItemID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(50)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(partiallyPaid, nil).Once()
	suite.mockItemRepo.On("FindItemsByIDs", ctx, suite.organizationID, mock.Anything).Return(suite.catalogFor(suite.catalogItem), nil).Once()

	_, err := suite.service.UpdateInvoice(ctx, suite.organizationID, invoiceID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoice", mock.Anything, mock.Anything)
}

// --- UpdateInvoiceStatus ---

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_DraftToSent() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	draft := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		CustomerID:     suite.customer.CustomerID,
		Status:         domain.InvoiceDraft,
		TotalAmount:    decimal.NewFromInt(124),
		Balance:        decimal.NewFromInt(124),
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(draft, nil).Once()
	suite.mockInvoiceRepo.On("UpdateInvoiceStatus", ctx, suite.organizationID, invoiceID, domain.InvoiceSent, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	invoice, err := suite.service.UpdateInvoiceStatus(ctx, suite.organizationID, invoiceID, domain.InvoiceSent, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceSent, invoice.Status)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_CannotReturnToDraft() {
	// Leaving DRAFT added the open balance to the customer's outstanding
	// total; re-entering DRAFT would double-count it on the next send.
	ctx := context.Background()
	invoiceID := uuid.NewString()
	sent := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		CustomerID:     suite.customer.CustomerID,
		Status:         domain.InvoiceSent,
		TotalAmount:    decimal.NewFromInt(124),
		Balance:        decimal.NewFromInt(124),
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(sent, nil).Once()

	_, err := suite.service.UpdateInvoiceStatus(ctx, suite.organizationID, invoiceID, domain.InvoiceDraft, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_PaidCanOnlyBeVoided() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	paid := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		Status:         domain.InvoicePaid,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(paid, nil).Once()

	_, err := suite.service.UpdateInvoiceStatus(ctx, suite.organizationID, invoiceID, domain.InvoiceSent, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "UpdateInvoiceStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *InvoiceServiceTestSuite) TestUpdateInvoiceStatus_TerminalIsFinal() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	void := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		Status:         domain.InvoiceVoid,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(void, nil).Once()

	_, err := suite.service.UpdateInvoiceStatus(ctx, suite.organizationID, invoiceID, domain.InvoiceSent, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
}

// --- DeleteInvoice ---

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_Draft() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	draft := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		Status:         domain.InvoiceDraft,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(draft, nil).Once()
	suite.mockInvoiceRepo.On("DeleteInvoice", ctx, suite.organizationID, invoiceID).Return(nil).Once()

	err := suite.service.DeleteInvoice(ctx, suite.organizationID, invoiceID, suite.userID)

	suite.Require().NoError(err)
	suite.mockInvoiceRepo.AssertExpectations(suite.T())
}

func (suite *InvoiceServiceTestSuite) TestDeleteInvoice_SentRejected() {
	ctx := context.Background()
	invoiceID := uuid.NewString()
	sent := &domain.Invoice{
		InvoiceID:      invoiceID,
		OrganizationID: suite.organizationID,
		Status:         domain.InvoiceSent,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockInvoiceRepo.On("FindInvoiceByID", ctx, suite.organizationID, invoiceID).Return(sent, nil).Once()

	err := suite.service.DeleteInvoice(ctx, suite.organizationID, invoiceID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockInvoiceRepo.AssertNotCalled(suite.T(), "DeleteInvoice", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestInvoiceService(t *testing.T) {
	suite.Run(t, new(InvoiceServiceTestSuite))
}
