package handler

import (
	"context"
	"net/http"

	"github.com/tbessonov/securetodo-server/internal/logger"
)

// Pinger reports whether the domain store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Health answers liveness probes.
type Health struct {
	db     Pinger
	logger *logger.Logger
}

// NewHealth creates a new Health handler.
func NewHealth(db Pinger, logger *logger.Logger) *Health {
	return &Health{db: db, logger: logger}
}

// Check pings the database pool.
func (h *Health) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.db.Ping(r.Context()); err != nil {
		h.logger.Error("Health handler: database ping failed",
			"error", err.Error())
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
