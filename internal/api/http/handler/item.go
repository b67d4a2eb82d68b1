package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tbessonov/securetodo-server/internal/logger"
	"github.com/tbessonov/securetodo-server/internal/model"
)

// ItemService defines todo item lifecycle operations.
type ItemService interface {
	CreateItem(ctx context.Context, ac model.AccessContext, params model.CreateItemParams) (model.TodoItem, error)
	FindByAuthenticatedUser(ctx context.Context, ac model.AccessContext) ([]model.TodoItem, error)
	UpdateItem(ctx context.Context, ac model.AccessContext, itemID int64, patch model.TodoItemPatch) (model.TodoItem, error)
	ShareItem(ctx context.Context, ac model.AccessContext, itemID int64, email string) error
}

// Item handles HTTP endpoints for todo items.
type Item struct {
	itemService    ItemService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewItem creates a new Item handler.
func NewItem(itemService ItemService, contextManager model.ContextManager, logger *logger.Logger) *Item {
	return &Item{
		itemService:    itemService,
		contextManager: contextManager,
		logger:         logger,
	}
}

type createItemRequest struct {
	Title     string `json:"title"`
	Completed *bool  `json:"completed"`
}

type itemResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	URL       string `json:"url"`
}

func newItemResponse(item model.TodoItem) itemResponse {
	return itemResponse{
		ID:        item.ID,
		Title:     item.Title,
		Completed: item.Completed,
		URL:       fmt.Sprintf("/todos/%d", item.ID),
	}
}

// CreateItem creates a new todo item for the authenticated user.
func (h *Item) CreateItem(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.contextManager.GetAccessContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
		return
	}

	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	item, err := h.itemService.CreateItem(r.Context(), ac, model.CreateItemParams{
		Title:     req.Title,
		Completed: req.Completed,
	})
	if err != nil {
		h.logger.Error("Item handler: item creation failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, newItemResponse(item))
}

// FindByAuthenticatedUser lists the items the authenticated user may view.
func (h *Item) FindByAuthenticatedUser(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.contextManager.GetAccessContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
		return
	}

	items, err := h.itemService.FindByAuthenticatedUser(r.Context(), ac)
	if err != nil {
		h.logger.Error("Item handler: item listing failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	responses := make([]itemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, newItemResponse(item))
	}

	respondJSON(w, http.StatusOK, responses)
}

// UpdateItem applies a partial update to an item.
func (h *Item) UpdateItem(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.contextManager.GetAccessContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
		return
	}

	itemID, err := itemIDFromRequest(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid item id"})
		return
	}

	var patch model.TodoItemPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	item, err := h.itemService.UpdateItem(r.Context(), ac, itemID, patch)
	if err != nil {
		h.logger.Error("Item handler: item update failed",
			"item_id", itemID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newItemResponse(item))
}

// ShareItem grants another user access to an item.
func (h *Item) ShareItem(w http.ResponseWriter, r *http.Request) {
	ac, ok := h.contextManager.GetAccessContext(r.Context())
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Message: "authentication required"})
		return
	}

	itemID, err := itemIDFromRequest(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid item id"})
		return
	}

	email := r.URL.Query().Get("share_with")

	if err := h.itemService.ShareItem(r.Context(), ac, itemID, email); err != nil {
		h.logger.Error("Item handler: item sharing failed",
			"item_id", itemID,
			"error", err.Error())
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func itemIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
