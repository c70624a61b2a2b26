package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/techcorp/internal-tools/internal/transport"
)

type HealthStatus string

const (
	HealthHealthy  HealthStatus = "healthy"
	HealthDegraded HealthStatus = "degraded"

	DatabaseConnected = "connected"
)

type HealthResponse struct {
	Status    HealthStatus `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Database  string       `json:"database"`
	Version   string       `json:"version"`
}

// Pinger is satisfied by *sql.DB and *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type HealthHandler struct {
	*transport.BaseHandler
	db      Pinger
	version string
	timeout time.Duration
}

func NewHealthHandler(base *transport.BaseHandler, db Pinger, version string) *HealthHandler {
	return &HealthHandler{BaseHandler: base, db: db, version: version, timeout: 2 * time.Second}
}

// pingHandler only says the process is up.
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// healthCheckHandler always answers 200; a failing database downgrades the
// status to degraded and reports the error inline.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	resp := HealthResponse{
		Status:   HealthHealthy,
		Database: DatabaseConnected,
		Version:  h.version,
	}

	if err := h.db.PingContext(ctx); err != nil {
		h.Logger.Warn("health check: database unreachable", "error", err)
		resp.Status = HealthDegraded
		resp.Database = "error: " + err.Error()
	}
	resp.Timestamp = time.Now().UTC()

	h.WriteJSON(w, http.StatusOK, resp)
}

type InfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
	Health  string `json:"health"`
	API     string `json:"api"`
}

func (h *HealthHandler) infoHandler(info InfoResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.WriteJSON(w, http.StatusOK, info)
	}
}
