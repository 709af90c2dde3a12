package health

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dalemusser/gamecenter/internal/app/catalog"
	"github.com/dalemusser/gamecenter/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Pinger is the part of *mongo.Client the health check uses.
type Pinger interface {
	Ping(ctx context.Context, rp *readpref.ReadPref) error
}

// Handler holds dependencies needed for health checks.
type Handler struct {
	DB        Pinger // nil when no database is configured
	Endpoints catalog.Endpoints
	Log       *zap.Logger
}

// NewHandler constructs a health Handler. client may be nil.
func NewHandler(client *mongo.Client, endpoints catalog.Endpoints, logger *zap.Logger) *Handler {
	h := &Handler{Endpoints: endpoints, Log: logger}
	if client != nil {
		h.DB = client
	}
	return h
}

// healthResponse is the JSON structure for the health check response.
type healthResponse struct {
	Status   string        `json:"status"`
	Database string        `json:"database"`
	Catalog  catalogStatus `json:"catalog"`
	Message  string        `json:"message,omitempty"`
	Error    string        `json:"error,omitempty"`
}

// catalogStatus reports which upstream endpoints this instance talks to.
type catalogStatus struct {
	GameSearch      string `json:"game_search"`
	GameInfo        string `json:"game_info"`
	GameSearchQuery string `json:"game_search_query"`
}

// Serve handles GET /health.
//
// On success: 200 and
//
//	{ "status":"ok", "database":"connected", "catalog":{...} }
//
// "database" is "disabled" when feedback storage is not configured.
//
// On DB failure: 503 and
//
//	{ "status":"error", "database":"disconnected", "message":"Database unavailable", "error":"…" }
func (h *Handler) Serve(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")

	resp := healthResponse{
		Status:   "ok",
		Database: "disabled",
		Catalog: catalogStatus{
			GameSearch:      h.Endpoints.GameSearch,
			GameInfo:        h.Endpoints.GameInfo,
			GameSearchQuery: h.Endpoints.GameSearchQuery,
		},
	}

	if h.DB != nil {
		ctx, cancel := context.WithTimeout(r.Context(), timeouts.Ping())
		defer cancel()

		if err := h.DB.Ping(ctx, readpref.Primary()); err != nil {
			h.Log.Error("health-check: mongo ping failed", zap.Error(err))
			resp.Status = "error"
			resp.Database = "disconnected"
			resp.Message = "Database unavailable"
			resp.Error = err.Error()
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(resp)
			return
		}
		resp.Database = "connected"
	}

	_ = json.NewEncoder(w).Encode(resp)
}
