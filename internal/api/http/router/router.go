package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tbessonov/securetodo-server/internal/api/http/handler"
	"github.com/tbessonov/securetodo-server/internal/api/http/middleware"
	"github.com/tbessonov/securetodo-server/internal/logger"
	"github.com/tbessonov/securetodo-server/internal/model"
	"github.com/tbessonov/securetodo-server/internal/service"
)

// Router builds the HTTP route table. User enrollment and the health probe
// are the only unauthenticated routes; everything under /todos runs behind
// the basic-auth middleware.
type Router struct {
	userService    *service.User
	itemService    *service.Item
	authority      model.AccessContextFactory
	contextManager model.ContextManager
	db             handler.Pinger
	logger         *logger.Logger
}

// New creates a new Router instance.
func New(
	userService *service.User,
	itemService *service.Item,
	authority model.AccessContextFactory,
	contextManager model.ContextManager,
	db handler.Pinger,
	logger *logger.Logger,
) *Router {
	return &Router{
		userService:    userService,
		itemService:    itemService,
		authority:      authority,
		contextManager: contextManager,
		db:             db,
		logger:         logger,
	}
}

// Register wires middleware and handlers and returns the root handler.
func (r *Router) Register() http.Handler {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.authority, r.contextManager, r.logger)

	userHandler := handler.NewUser(r.userService, r.logger)
	itemHandler := handler.NewItem(r.itemService, r.contextManager, r.logger)
	healthHandler := handler.NewHealth(r.db, r.logger)

	mux := chi.NewRouter()
	mux.Use(logging.Handle)

	mux.Get("/health", healthHandler.Check)
	mux.Post("/users", userHandler.CreateUser)

	mux.Group(func(g chi.Router) {
		g.Use(authenticate.Handle)
		g.Post("/todos", itemHandler.CreateItem)
		g.Get("/todos", itemHandler.FindByAuthenticatedUser)
		g.Patch("/todos/{id}", itemHandler.UpdateItem)
		g.Put("/todos/{id}", itemHandler.ShareItem)
	})

	return mux
}
