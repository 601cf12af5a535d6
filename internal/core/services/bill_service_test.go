package services_test

import (
	"context"
	"testing"
	"time"

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
type BillServiceTestSuite struct {
	suite.Suite
	mockBillRepo   *MockBillRepository
	mockVendorRepo *MockVendorRepository
	mockItemRepo   *MockItemRepository
	mockOrgSvc     *MockOrganizationService
	service        portssvc.BillSvcFacade
	vendor         domain.Vendor
	catalogItem    domain.Item
	organizationID string
	userID         string
}

func (suite *BillServiceTestSuite) SetupTest() {
	suite.mockBillRepo = new(MockBillRepository)
	suite.mockVendorRepo = new(MockVendorRepository)
	suite.mockItemRepo = new(MockItemRepository)
	suite.mockOrgSvc = new(MockOrganizationService)
	suite.service = services.NewBillService(
		suite.mockBillRepo,
		suite.mockVendorRepo,
		suite.mockItemRepo,
		suite.mockOrgSvc,
	)

	suite.organizationID = uuid.NewString()
	suite.userID = uuid.NewString()

	suite.vendor = domain.Vendor{
		VendorID:       uuid.NewString(),
		OrganizationID: suite.organizationID,
		Name:           "Office Supplies Co",
		IsActive:       true,
	}
	suite.catalogItem = domain.Item{
		ItemID:         uuid.NewString(),
		OrganizationID: suite.organizationID,
		Name:           "Printer paper",
		UnitPrice:      decimal.NewFromInt(20),
		IsActive:       true,
	}
}

// --- CreateBill ---

func (suite *BillServiceTestSuite) TestCreateBill_PercentDiscount() {
	ctx := context.Background()
	billDate := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	req := dto.CreateBillRequest{
		VendorID:   suite.vendor.VendorID,
		BillNumber: "BILL-0001",
		BillDate:   billDate,
		DueDate:    billDate.AddDate(0, 0, 30),
		Items: []dto.BillItemRequest{
			// 10 x 20 = 200, 10% discount = 180, 5% tax = 9
			{ItemID: suite.catalogItem.ItemID, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(20), Discount: decimal.NewFromInt(10), TaxRate: decimal.NewFromInt(5)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockVendorRepo.On("FindVendorByID", ctx, suite.organizationID, suite.vendor.VendorID).Return(&suite.vendor, nil).Once()
	suite.mockItemRepo.On("FindItemsByIDs", ctx, suite.organizationID, []string{suite.catalogItem.ItemID}).
		Return(map[string]domain.Item{suite.catalogItem.ItemID: suite.catalogItem}, nil).Once()
	suite.mockBillRepo.On("SaveBill", ctx, mock.AnythingOfType("domain.Bill")).Return(nil).Once()

	bill, err := suite.service.CreateBill(ctx, suite.organizationID, req, suite.userID)

	suite.Require().NoError(err)
	suite.Require().NotNil(bill)
	suite.Equal(domain.BillDraft, bill.Status)
	suite.True(bill.Subtotal.Equal(decimal.NewFromInt(180)), "subtotal %s", bill.Subtotal)
	suite.True(bill.TaxAmount.Equal(decimal.NewFromInt(9)), "tax %s", bill.TaxAmount)
	suite.True(bill.TotalAmount.Equal(decimal.NewFromInt(189)), "total %s", bill.TotalAmount)
	suite.True(bill.Balance.Equal(bill.TotalAmount))

	suite.mockBillRepo.AssertExpectations(suite.T())
	suite.mockVendorRepo.AssertExpectations(suite.T())
	suite.mockItemRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestCreateBill_DiscountOverHundredPercent() {
	ctx := context.Background()
	billDate := time.Now()
	req := dto.CreateBillRequest{
		VendorID:   suite.vendor.VendorID,
		BillNumber: "BILL-0002",
		BillDate:   billDate,
		DueDate:    billDate.AddDate(0, 0, 30),
		Items: []dto.BillItemRequest{
			{ItemID: suite.catalogItem.ItemID, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(20), Discount: decimal.NewFromInt(150)},
		},
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockVendorRepo.On("FindVendorByID", ctx, suite.organizationID, suite.vendor.VendorID).Return(&suite.vendor, nil).Once()
	suite.mockItemRepo.On("FindItemsByIDs", ctx, suite.organizationID, mock.Anything).
		Return(map[string]domain.Item{suite.catalogItem.ItemID: suite.catalogItem}, nil).Once()

	_, err := suite.service.CreateBill(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), services.ErrDiscountPercentRange.Error())
	suite.mockBillRepo.AssertNotCalled(suite.T(), "SaveBill", mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestCreateBill_InactiveVendor() {
	ctx := context.Background()
	inactive := suite.vendor
	inactive.IsActive = false
	req := dto.CreateBillRequest{
		VendorID:   inactive.VendorID,
		BillNumber: "BILL-0003",
		BillDate:   time.Now(),
		DueDate:    time.Now().AddDate(0, 0, 30),
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockVendorRepo.On("FindVendorByID", ctx, suite.organizationID, inactive.VendorID).Return(&inactive, nil).Once()

	_, err := suite.service.CreateBill(ctx, suite.organizationID, req, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "SaveBill", mock.Anything, mock.Anything)
}

// --- UpdateBillStatus ---

func (suite *BillServiceTestSuite) TestUpdateBillStatus_DraftToSubmitted() {
	ctx := context.Background()
	billID := uuid.NewString()
	draft := &domain.Bill{
		BillID:         billID,
		OrganizationID: suite.organizationID,
		VendorID:       suite.vendor.VendorID,
		Status:         domain.BillDraft,
		TotalAmount:    decimal.NewFromInt(189),
		Balance:        decimal.NewFromInt(189),
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, suite.organizationID, billID).Return(draft, nil).Once()
	suite.mockBillRepo.On("UpdateBillStatus", ctx, suite.organizationID, billID, domain.BillSubmitted, suite.userID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	bill, err := suite.service.UpdateBillStatus(ctx, suite.organizationID, billID, domain.BillSubmitted, suite.userID)

	suite.Require().NoError(err)
	suite.Equal(domain.BillSubmitted, bill.Status)
	suite.mockBillRepo.AssertExpectations(suite.T())
}

func (suite *BillServiceTestSuite) TestUpdateBillStatus_CannotReturnToDraft() {
	ctx := context.Background()
	billID := uuid.NewString()
	submitted := &domain.Bill{
		BillID:         billID,
		OrganizationID: suite.organizationID,
		VendorID:       suite.vendor.VendorID,
		Status:         domain.BillSubmitted,
		TotalAmount:    decimal.NewFromInt(189),
		Balance:        decimal.NewFromInt(189),
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, suite.organizationID, billID).Return(submitted, nil).Once()

	_, err := suite.service.UpdateBillStatus(ctx, suite.organizationID, billID, domain.BillDraft, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "UpdateBillStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillServiceTestSuite) TestUpdateBillStatus_PaidIsFinal() {
	ctx := context.Background()
	billID := uuid.NewString()
	paid := &domain.Bill{
		BillID:         billID,
		OrganizationID: suite.organizationID,
		Status:         domain.BillPaid,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, suite.organizationID, billID).Return(paid, nil).Once()

	_, err := suite.service.UpdateBillStatus(ctx, suite.organizationID, billID, domain.BillCancelled, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "UpdateBillStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// --- DeleteBill ---

func (suite *BillServiceTestSuite) TestDeleteBill_OnlyDraft() {
	ctx := context.Background()
	billID := uuid.NewString()
	approved := &domain.Bill{
		BillID:         billID,
		OrganizationID: suite.organizationID,
		Status:         domain.BillApproved,
	}

	suite.mockOrgSvc.On("AuthorizeUserAction", ctx, suite.userID, suite.organizationID, domain.RoleAccountant).Return(nil).Once()
	suite.mockBillRepo.On("FindBillByID", ctx, suite.organizationID, billID).Return(approved, nil).Once()

	err := suite.service.DeleteBill(ctx, suite.organizationID, billID, suite.userID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockBillRepo.AssertNotCalled(suite.T(), "DeleteBill", mock.Anything, mock.Anything, mock.Anything)
}

// --- Run Test Suite ---
func TestBillService(t *testing.T) {
	suite.Run(t, new(BillServiceTestSuite))
}
