package health_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/gamecenter/internal/app/catalog"
	"github.com/dalemusser/gamecenter/internal/app/features/health"
	"github.com/dalemusser/gamecenter/internal/testutil"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type failingPinger struct{ err error }

func (p failingPinger) Ping(ctx context.Context, rp *readpref.ReadPref) error { return p.err }

type healthBody struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Catalog  struct {
		GameSearch      string `json:"game_search"`
		GameInfo        string `json:"game_info"`
		GameSearchQuery string `json:"game_search_query"`
	} `json:"catalog"`
	Message string `json:"message"`
	Error   string `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) healthBody {
	t.Helper()
	var body healthBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return body
}

func TestServe_DatabaseDisabled(t *testing.T) {
	eps := catalog.DefaultEndpoints()
	handler := health.NewHandler(nil, eps, zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type: got %q, want %q", ct, "application/json")
	}

	body := decode(t, rec)
	if body.Status != "ok" || body.Database != "disabled" {
		t.Errorf("unexpected body: %+v", body)
	}
	if body.Catalog.GameInfo != eps.GameInfo || body.Catalog.GameSearchQuery != eps.GameSearchQuery {
		t.Errorf("catalog endpoints not reported: %+v", body.Catalog)
	}
}

func TestServe_DatabaseConnected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := health.NewHandler(db.Client(), catalog.DefaultEndpoints(), zap.NewNop())

	rec := httptest.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
	if body := decode(t, rec); body.Database != "connected" {
		t.Errorf("database: got %q, want %q", body.Database, "connected")
	}
}

func TestServe_DatabaseDown(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	handler := &health.Handler{
		DB:        failingPinger{err: errors.New("server selection timeout")},
		Endpoints: catalog.DefaultEndpoints(),
		Log:       zap.New(core),
	}

	rec := httptest.NewRecorder()
	handler.Serve(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, rec.Code)
	}
	body := decode(t, rec)
	if body.Status != "error" || body.Database != "disconnected" || body.Error == "" {
		t.Errorf("unexpected body: %+v", body)
	}
	if logs.FilterMessage("health-check: mongo ping failed").Len() != 1 {
		t.Error("expected ping failure to be logged")
	}
}
