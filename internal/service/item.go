package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/tbessonov/securetodo-server/internal/logger"
	"github.com/tbessonov/securetodo-server/internal/model"
	"github.com/tbessonov/securetodo-server/internal/security"
)

// Item coordinates the todo item lifecycle: creation registers the item as a
// secured resource in the authorization authority, reading and updating are
// gated on permission checks, and sharing adds grants for other users.
type Item struct {
	itemStore model.ItemStore
	logger    *logger.Logger
}

// NewItem creates a new Item service.
func NewItem(itemStore model.ItemStore, logger *logger.Logger) *Item {
	return &Item{
		itemStore: itemStore,
		logger:    logger,
	}
}

// CreateItem inserts the item into the domain store and registers it as a
// secured resource under the id's string form. If the registration fails the
// just-inserted row is deleted again before the failure propagates.
func (s *Item) CreateItem(ctx context.Context, ac model.AccessContext, params model.CreateItemParams) (model.TodoItem, error) {
	if err := validateItemForCreation(params); err != nil {
		return model.TodoItem{}, err
	}

	id, err := s.itemStore.Insert(ctx, params)
	if err != nil {
		return model.TodoItem{}, fmt.Errorf("failed to insert item: %w", err)
	}

	// Re-read the stored row to pick up store-assigned defaults, then
	// register the resource. Both run under the same compensation: any
	// failure past the insert deletes the row again.
	item, err := s.itemStore.GetByID(ctx, id)
	if err == nil {
		_, err = ac.CreateResource(ctx,
			security.ResourceClassTodo,
			security.Domain,
			itemExternalID(id),
			nil)
	}
	if err != nil {
		if delErr := s.itemStore.Delete(ctx, id); delErr != nil {
			s.logger.Error("Item service: failed to roll back item insert",
				"item_id", id,
				"error", delErr.Error())
		}
		s.logger.Error("Item service: item creation failed",
			"item_id", id,
			"error", err.Error())
		return model.TodoItem{}, err
	}

	s.logger.Info("Item service: item created",
		"item_id", item.ID)

	return item, nil
}

// FindByAuthenticatedUser returns every item the session's resource may VIEW,
// directly or through inherited grants. Ordering of the result is not
// specified. When the authority reports no viewable resources the store is
// not consulted at all.
func (s *Item) FindByAuthenticatedUser(ctx context.Context, ac model.AccessContext) ([]model.TodoItem, error) {
	resources, err := ac.ResourcesByPermission(ctx, ac.SessionResource(), security.ResourceClassTodo, security.PermView)
	if err != nil {
		return nil, fmt.Errorf("failed to query viewable items: %w", err)
	}

	if len(resources) == 0 {
		return []model.TodoItem{}, nil
	}

	ids := make([]int64, 0, len(resources))
	for _, resource := range resources {
		id, err := strconv.ParseInt(resource.ExternalID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse item resource id %q: %w", resource.ExternalID, err)
		}
		ids = append(ids, id)
	}

	items, err := s.itemStore.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by ids: %w", err)
	}

	return items, nil
}

// UpdateItem merges the patch onto the stored item after asserting the
// required permissions: VIEW always, plus EDIT when the patch carries a
// title, otherwise MARK-COMPLETED. The permission check runs before the item
// is read, so a request against a nonexistent item still fails authorization
// first when the caller holds no grants on it.
func (s *Item) UpdateItem(ctx context.Context, ac model.AccessContext, itemID int64, patch model.TodoItemPatch) (model.TodoItem, error) {
	if err := validateItemPatch(patch); err != nil {
		return model.TodoItem{}, err
	}

	changePerm := security.PermMarkCompleted
	if patch.Title != nil {
		changePerm = security.PermEdit
	}

	err := ac.AssertResourcePermissions(ctx,
		ac.SessionResource(),
		model.ResourceByExternalID(itemExternalID(itemID)),
		security.PermView,
		changePerm)
	if err != nil {
		return model.TodoItem{}, err
	}

	current, err := s.itemStore.GetByID(ctx, itemID)
	if err != nil {
		return model.TodoItem{}, err
	}

	item := patch.Apply(current)

	if err := s.itemStore.Update(ctx, item); err != nil {
		return model.TodoItem{}, fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.Info("Item service: item updated",
		"item_id", item.ID)

	return item, nil
}

// ShareItem grants VIEW and MARK-COMPLETED (never EDIT) on the item to the
// user identified by the lower-cased email. Whether the caller may grant at
// all is the authority's decision at grant time.
func (s *Item) ShareItem(ctx context.Context, ac model.AccessContext, itemID int64, email string) error {
	if err := validateEmail(email); err != nil {
		return err
	}

	err := ac.GrantResourcePermissions(ctx,
		model.ResourceByExternalID(strings.ToLower(email)),
		model.ResourceByExternalID(itemExternalID(itemID)),
		security.PermView,
		security.PermMarkCompleted)
	if err != nil {
		return err
	}

	s.logger.Info("Item service: item shared",
		"item_id", itemID,
		"shared_with", strings.ToLower(email))

	return nil
}

func itemExternalID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func validateItemForCreation(params model.CreateItemParams) error {
	if params.Title == "" {
		return model.NewInvalidInput("title is required")
	}
	if strings.TrimSpace(params.Title) == "" {
		return model.NewInvalidInput("title can not be blank")
	}

	return nil
}

func validateItemPatch(patch model.TodoItemPatch) error {
	if !patch.IsPatch() {
		return model.NewInvalidInput("either title or completed is required")
	}
	if patch.Title != nil && strings.TrimSpace(*patch.Title) == "" {
		return model.NewInvalidInput("title can not be blank")
	}

	return nil
}
