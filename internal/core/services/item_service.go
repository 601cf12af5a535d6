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
)

// itemService provides catalog item operations.
type itemService struct {
	itemRepo portsrepo.ItemRepositoryFacade
	orgSvc   portssvc.OrganizationSvcFacade
}

// NewItemService creates a new ItemService.
func NewItemService(itemRepo portsrepo.ItemRepositoryFacade, orgSvc portssvc.OrganizationSvcFacade) portssvc.ItemSvcFacade {
	return &itemService{
		itemRepo: itemRepo,
		orgSvc:   orgSvc,
	}
}

var _ portssvc.ItemSvcFacade = (*itemService)(nil)

// CreateItem persists a new catalog item.
func (s *itemService) CreateItem(ctx context.Context, organizationID string, req dto.CreateItemRequest, userID string) (*domain.Item, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for CreateItem", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	if req.UnitPrice.IsNegative() {
		return nil, fmt.Errorf("%w: unit price cannot be negative", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	item := domain.Item{
		ItemID:         uuid.NewString(),
		OrganizationID: organizationID,
		Code:           req.Code,
		Name:           req.Name,
		Description:    req.Description,
		UnitPrice:      req.UnitPrice,
		ItemType:       req.ItemType,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.itemRepo.SaveItem(ctx, item); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: item code %s already exists", apperrors.ErrDuplicate, req.Code)
		}
		logger.Error("Failed to save item", slog.String("error", err.Error()), slog.String("organization_id", organizationID))
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	logger.Info("Item created", slog.String("item_id", item.ItemID), slog.String("code", item.Code))
	return &item, nil
}

// GetItemByID retrieves a specific catalog item.
func (s *itemService) GetItemByID(ctx context.Context, organizationID string, itemID string, userID string) (*domain.Item, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	return s.itemRepo.FindItemByID(ctx, organizationID, itemID)
}

// ListItems retrieves a paginated list of catalog items.
func (s *itemService) ListItems(ctx context.Context, organizationID string, userID string, limit int, offset int) ([]domain.Item, error) {
	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleViewer); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	return s.itemRepo.ListItems(ctx, organizationID, limit, offset)
}

// UpdateItem updates an existing catalog item's details.
func (s *itemService) UpdateItem(ctx context.Context, organizationID string, itemID string, req dto.UpdateItemRequest, userID string) (*domain.Item, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for UpdateItem", slog.String("user_id", userID), slog.String("error", err.Error()))
		return nil, err
	}

	item, err := s.itemRepo.FindItemByID(ctx, organizationID, itemID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.UnitPrice != nil {
		if req.UnitPrice.IsNegative() {
			return nil, fmt.Errorf("%w: unit price cannot be negative", apperrors.ErrValidation)
		}
		item.UnitPrice = *req.UnitPrice
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	now := time.Now().UTC()
	item.LastUpdatedAt = now
	item.LastUpdatedBy = userID

	if err := s.itemRepo.UpdateItem(ctx, *item); err != nil {
		logger.Error("Failed to update item", slog.String("error", err.Error()), slog.String("item_id", itemID))
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	logger.Info("Item updated", slog.String("item_id", itemID))
	return item, nil
}

// DeleteItem deactivates a catalog item. Existing invoice and bill lines
// keep referencing it.
func (s *itemService) DeleteItem(ctx context.Context, organizationID string, itemID string, userID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.orgSvc.AuthorizeUserAction(ctx, userID, organizationID, domain.RoleAccountant); err != nil {
		logger.Warn("Authorization failed for DeleteItem", slog.String("user_id", userID), slog.String("error", err.Error()))
		return err
	}

	if _, err := s.itemRepo.FindItemByID(ctx, organizationID, itemID); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := s.itemRepo.DeactivateItem(ctx, organizationID, itemID, userID, now); err != nil {
		logger.Error("Failed to deactivate item", slog.String("error", err.Error()), slog.String("item_id", itemID))
		return fmt.Errorf("failed to deactivate item: %w", err)
	}

	logger.Info("Item deactivated", slog.String("item_id", itemID))
	return nil
}
