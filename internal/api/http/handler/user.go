package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tbessonov/securetodo-server/internal/logger"
	"github.com/tbessonov/securetodo-server/internal/model"
)

// UserService defines user enrollment operations.
type UserService interface {
	CreateUser(ctx context.Context, candidate model.TodoUser) (model.TodoUser, error)
}

// User handles HTTP endpoints for users.
type User struct {
	userService UserService
	logger      *logger.Logger
}

// NewUser creates a new User handler.
func NewUser(userService UserService, logger *logger.Logger) *User {
	return &User{
		userService: userService,
		logger:      logger,
	}
}

// createUserRequest is the only place an inbound password exists; the model
// never serializes it back.
type createUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CreateUser enrolls a new user.
func (h *User) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Message: "invalid request body"})
		return
	}

	user, err := h.userService.CreateUser(r.Context(), model.TodoUser{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.logger.Error("User handler: user creation failed",
			"error", err.Error())
		handleError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, user)
}
