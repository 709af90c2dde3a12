package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/gamecenter/internal/app/catalog"
	"github.com/dalemusser/gamecenter/internal/app/features/game"
	"github.com/dalemusser/gamecenter/internal/app/features/shared"
	"github.com/dalemusser/gamecenter/internal/app/system/ratelimit"
	"github.com/dalemusser/gamecenter/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

const (
	routesListBody = `{"list":[{"_id":"g1","name":"Star Quest","icon":"https://img.example.com/g1.png","summary":"Space RPG","tags":["RPG"]}]}`

	routesDetailBody = `{"data":{"code":200,"_id":"g1","name":"Star Quest","summary":"Space RPG",
		"description":"Line one<br>Line two","developer":"Nebula Works","star":4.5,
		"resource":[{"_id":"r1","url":"/g1.apk","size":1048576,"version":"1.2.0",
			"channel":{"name":"Mirror","type":"direct","url_prefix":"https://cdn.example.com"}}]}}`
)

// newCatalogStub serves the listing and search endpoints from one list and
// knows a single game, g1.
func newCatalogStub(t *testing.T) catalog.Endpoints {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case r.URL.Path == "/game/search":
			fmt.Fprint(w, routesListBody)
		case r.URL.Path == "/game/info" && r.URL.Query().Get("id") == "g1":
			fmt.Fprint(w, routesDetailBody)
		default:
			fmt.Fprint(w, `{"data":null}`)
		}
	}))
	t.Cleanup(srv.Close)
	return catalog.Endpoints{
		GameSearch:      srv.URL + "/game/search",
		GameInfo:        srv.URL + "/game/info",
		GameSearchQuery: srv.URL + "/game/search",
	}
}

// lazyDatabase returns a handle whose client never dials unless a query
// runs, enough to switch on stored feedback.
func lazyDatabase(t *testing.T) *mongo.Database {
	t.Helper()
	opts := options.Client().
		ApplyURI("mongodb://127.0.0.1:1").
		SetServerSelectionTimeout(200 * time.Millisecond)
	client, err := mongo.Connect(context.Background(), opts)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })
	return client.Database("gamecenter_test")
}

type routerOpts struct {
	eps      catalog.Endpoints
	feedback bool
}

func newRouterWith(t *testing.T, o routerOpts) http.Handler {
	t.Helper()
	limiter := ratelimit.NewFeedbackLimiterWithConfig(5, time.Minute)
	t.Cleanup(limiter.Close)

	deps := DBDeps{
		Catalog: catalog.New(catalog.Options{
			Endpoints: o.eps,
			Timeout:   2 * time.Second,
			Logger:    zap.NewNop(),
		}),
		FeedbackLimiter: limiter,
	}
	if o.feedback {
		deps.MongoDatabase = lazyDatabase(t)
	}
	return newRouter(false, validAppConfig(), deps, zap.NewNop())
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	return newRouterWith(t, routerOpts{})
}

// serve runs the request, absorbing template panics when no engine is booted.
func serve(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	func() {
		defer func() { _ = recover() }()
		h.ServeHTTP(rec, req)
	}()
	return rec
}

func TestRouter_Health(t *testing.T) {
	rec := serve(newTestRouter(t), httptest.NewRequest("GET", "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "disabled", body["database"])
}

func TestRouter_Metrics(t *testing.T) {
	rec := serve(newTestRouter(t), httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouter_UnknownPathIsNotFound(t *testing.T) {
	rec := serve(newTestRouter(t), httptest.NewRequest("GET", "/no/such/page", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_FeedbackRequiresCSRFToken(t *testing.T) {
	form := url.Values{"message": {"broken link"}}
	req := httptest.NewRequest("POST", "/game/g1/feedback", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := serve(newRouterWith(t, routerOpts{feedback: true}), req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_FeedbackWithoutStoreFallsBackToEmail(t *testing.T) {
	h := newRouterWith(t, routerOpts{eps: newCatalogStub(t)})
	form := url.Values{"message": {"broken link"}}
	req := httptest.NewRequest("POST", "/game/g1/feedback", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := serve(h, req)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "mailto:"))
}

func TestPages_Render(t *testing.T) {
	testutil.BootTemplates(t)

	tests := []struct {
		name   string
		target string
		status int
		want   []string
	}{
		{"home", "/", http.StatusOK, []string{"Top games", "Star Quest", `href="/game/g1`}},
		{"search results", "/search?q=star", http.StatusOK, []string{"Results for", "Star Quest"}},
		{"search prompt", "/search", http.StatusOK, []string{"Type a game name"}},
		{"game", "/game/g1", http.StatusOK, []string{"Star Quest", "Nebula Works", "https://cdn.example.com/g1.apk", "Email us"}},
		{"unknown game", "/game/nope", http.StatusNotFound, []string{"error-page", "Go back"}},
		{"unknown path", "/no/such/page", http.StatusNotFound, []string{"error-page"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newRouterWith(t, routerOpts{eps: newCatalogStub(t)})

			rec := serve(h, httptest.NewRequest("GET", tt.target, nil))

			require.Equal(t, tt.status, rec.Code)
			for _, w := range tt.want {
				assert.Contains(t, rec.Body.String(), w)
			}
		})
	}
}

func TestPages_CatalogPagesAreCookieFree(t *testing.T) {
	testutil.BootTemplates(t)
	h := newRouterWith(t, routerOpts{eps: newCatalogStub(t), feedback: true})

	for _, target := range []string{"/", "/search?q=star"} {
		rec := serve(h, httptest.NewRequest("GET", target, nil))

		require.Equal(t, http.StatusOK, rec.Code, target)
		assert.Equal(t, shared.CacheControl, rec.Header().Get("Cache-Control"), target)
		assert.Empty(t, rec.Header().Values("Set-Cookie"), target)
	}
}

func TestPages_GameWithoutStoreIsCacheable(t *testing.T) {
	testutil.BootTemplates(t)
	h := newRouterWith(t, routerOpts{eps: newCatalogStub(t)})

	rec := serve(h, httptest.NewRequest("GET", "/game/g1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, shared.CacheControl, rec.Header().Get("Cache-Control"))
	assert.Empty(t, rec.Header().Values("Set-Cookie"))
	assert.NotContains(t, rec.Body.String(), "gorilla.csrf.Token")
}

func TestPages_GameWithStoreIsPrivate(t *testing.T) {
	testutil.BootTemplates(t)
	h := newRouterWith(t, routerOpts{eps: newCatalogStub(t), feedback: true})

	rec := serve(h, httptest.NewRequest("GET", "/game/g1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, game.PageCacheControl, rec.Header().Get("Cache-Control"))
	assert.NotEmpty(t, rec.Header().Values("Set-Cookie"))
	assert.Contains(t, rec.Body.String(), `name="gorilla.csrf.Token"`)
	assert.NotContains(t, rec.Body.String(), `name="gorilla.csrf.Token" value=""`)
}
