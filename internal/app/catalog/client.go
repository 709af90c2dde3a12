// internal/app/catalog/client.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/dalemusser/gamecenter/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultRevalidate is how long a fetched response may be served before
	// it is refreshed.
	DefaultRevalidate = 3600 * time.Second

	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 10 * time.Second

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 8 << 20
)

// Options configures a Client.
type Options struct {
	Endpoints Endpoints

	// HTTPClient defaults to a client without its own timeout; Timeout is
	// applied per request through the context instead.
	HTTPClient *http.Client

	// Revalidate is the cache window. Zero disables caching.
	Revalidate time.Duration

	// CacheEntries caps the number of cached URLs. Zero means
	// DefaultCacheEntries.
	CacheEntries int

	// Timeout bounds each upstream request. Zero means DefaultTimeout.
	Timeout time.Duration

	Logger *zap.Logger
}

// Client fetches games from the remote catalog and adapts them to
// view-models. Every method degrades to an empty or not-found value; no
// transport error reaches the caller. It is safe for concurrent use.
type Client struct {
	endpoints Endpoints
	http      *http.Client
	timeout   time.Duration
	cache     *revalidateCache
	group     singleflight.Group
	refreshWG sync.WaitGroup
	log       *zap.Logger
}

// New builds a Client. Blank endpoints fall back to the defaults.
func New(opts Options) *Client {
	c := &Client{
		endpoints: opts.Endpoints.WithDefaults(),
		http:      opts.HTTPClient,
		timeout:   opts.Timeout,
		log:       opts.Logger,
	}
	if c.http == nil {
		c.http = &http.Client{}
	}
	if c.timeout <= 0 {
		c.timeout = DefaultTimeout
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}
	if opts.Revalidate > 0 {
		c.cache = newRevalidateCache(opts.Revalidate, opts.CacheEntries)
	}
	return c
}

// Endpoints returns the resolved endpoints the client talks to.
func (c *Client) Endpoints() Endpoints {
	return c.endpoints
}

// Close waits for background cache refreshes to finish.
func (c *Client) Close() {
	c.refreshWG.Wait()
}

/*─────────────────────────────────────────────────────────────────────────────*
| Contract operations                                                          |
*─────────────────────────────────────────────────────────────────────────────*/

// FetchCatalog returns the landing-page listing, or an empty slice.
func (c *Client) FetchCatalog(ctx context.Context) []models.Game {
	return c.List(ctx).Games
}

// SearchCatalog returns the games matching query, or an empty slice.
// An empty query returns immediately without calling the catalog.
func (c *Client) SearchCatalog(ctx context.Context, query string) []models.Game {
	return c.Search(ctx, query).Games
}

// FetchGameDetails returns the game with the given id, or nil when it cannot
// be found or fetched.
func (c *Client) FetchGameDetails(ctx context.Context, id string) *models.GameDetails {
	return c.Detail(ctx, id).Game
}

/*─────────────────────────────────────────────────────────────────────────────*
| Result-returning operations                                                  |
*─────────────────────────────────────────────────────────────────────────────*/

// List fetches the catalog listing.
func (c *Client) List(ctx context.Context) ListResult {
	res := c.fetchList(ctx, endpointList, c.endpoints.GameSearch, zap.Skip())
	recordOutcome(endpointList, res.Outcome)
	return res
}

// Search fetches the games matching query.
func (c *Client) Search(ctx context.Context, query string) ListResult {
	if query == "" {
		recordOutcome(endpointSearch, OutcomeEmpty)
		return emptyList(OutcomeEmpty, nil)
	}

	u, err := withQuery(c.endpoints.GameSearchQuery, "q", query)
	if err != nil {
		c.log.Error("catalog: build search url failed", zap.String("query", query), zap.Error(err))
		recordOutcome(endpointSearch, OutcomeSuppressed)
		return emptyList(OutcomeSuppressed, err)
	}

	res := c.fetchList(ctx, endpointSearch, u, zap.String("query", query))
	recordOutcome(endpointSearch, res.Outcome)
	return res
}

// Detail fetches a single game.
//
// The lookup succeeds when the HTTP status is 2xx and the nested data object
// reports code 200. Otherwise a data object with a non-empty name is still
// returned as partial data. Transport and decode failures are not-found.
func (c *Client) Detail(ctx context.Context, id string) DetailResult {
	res := c.fetchDetail(ctx, id)
	recordOutcome(endpointInfo, res.Outcome)
	return res
}

func (c *Client) fetchDetail(ctx context.Context, id string) DetailResult {
	if strings.TrimSpace(id) == "" {
		return DetailResult{Outcome: OutcomeNotFound}
	}

	u, err := withQuery(c.endpoints.GameInfo, "id", id)
	if err != nil {
		c.log.Error("catalog: build detail url failed", zap.String("id", id), zap.Error(err))
		return DetailResult{Outcome: OutcomeSuppressed, Err: err}
	}

	resp, err := c.get(ctx, endpointInfo, u)
	if err != nil {
		c.log.Error("catalog: error fetching game details", zap.String("id", id), zap.Error(err))
		return DetailResult{Outcome: OutcomeSuppressed, Err: err}
	}

	env, err := decodeDetailEnvelope(resp.body)
	if err != nil {
		err = fmt.Errorf("decode game details: %w", err)
		c.log.Error("catalog: error fetching game details", zap.String("id", id), zap.Int("status", resp.status), zap.Error(err))
		return DetailResult{Outcome: OutcomeSuppressed, Err: err}
	}
	if env.FieldErr != nil {
		c.log.Warn("catalog: skipped mistyped game detail fields", zap.String("id", id), zap.Error(env.FieldErr))
	}

	if resp.ok() && env.Data.succeeded() {
		return DetailResult{Game: detailsFrom(env.Data, id), Outcome: OutcomeOK}
	}

	c.log.Error("catalog: API error for game details",
		zap.String("id", id),
		zap.Int("status", resp.status),
		zap.String("message", env.errorMessage()))

	if env.Data.usable() {
		c.log.Warn("catalog: serving partial game details", zap.String("id", id), zap.String("name", env.Data.Name))
		return DetailResult{Game: detailsFrom(env.Data, id), Outcome: OutcomePartial}
	}
	return DetailResult{Outcome: OutcomeNotFound}
}

// detailsFrom returns the nested data as a view-model. The requested id fills
// in a missing _id so a returned game always has one.
func detailsFrom(d *rawDetail, id string) *models.GameDetails {
	g := d.GameDetails
	if g.ID == "" {
		g.ID = id
	}
	return &g
}

func (c *Client) fetchList(ctx context.Context, endpoint, u string, field zap.Field) ListResult {
	resp, err := c.get(ctx, endpoint, u)
	if err != nil {
		c.log.Error("catalog: error fetching games", zap.String("endpoint", endpoint), field, zap.Error(err))
		return emptyList(OutcomeSuppressed, err)
	}
	if !resp.ok() {
		err := &StatusError{URL: u, StatusCode: resp.status}
		c.log.Error("catalog: failed to fetch games", zap.String("endpoint", endpoint), field, zap.Int("status", resp.status))
		return emptyList(OutcomeSuppressed, err)
	}

	var payload rawList
	if err := json.Unmarshal(resp.body, &payload); err != nil {
		err = fmt.Errorf("decode game list: %w", err)
		c.log.Error("catalog: error fetching games", zap.String("endpoint", endpoint), field, zap.Error(err))
		return emptyList(OutcomeSuppressed, err)
	}
	if payload.List == nil {
		return emptyList(OutcomeEmpty, nil)
	}

	games := make([]models.Game, 0, len(*payload.List))
	for i, s := range *payload.List {
		if err := s.validate(); err != nil {
			c.log.Warn("catalog: dropping invalid entry",
				zap.String("endpoint", endpoint), field, zap.Int("index", i), zap.Error(err))
			continue
		}
		games = append(games, s.toGame())
	}
	if len(games) == 0 {
		return ListResult{Games: games, Outcome: OutcomeEmpty}
	}
	return ListResult{Games: games, Outcome: OutcomeOK}
}

/*─────────────────────────────────────────────────────────────────────────────*
| Transport                                                                    |
*─────────────────────────────────────────────────────────────────────────────*/

// get returns the response for u, serving from the revalidation cache when
// possible. A non-2xx response is returned without error; only transport
// failures are errors.
func (c *Client) get(ctx context.Context, endpoint, u string) (response, error) {
	if c.cache == nil {
		return c.fetch(ctx, endpoint, u)
	}

	if resp, fresh, ok := c.cache.get(u); ok {
		if fresh {
			CacheLookups.WithLabelValues(endpoint, "fresh").Inc()
			return resp, nil
		}
		CacheLookups.WithLabelValues(endpoint, "stale").Inc()
		c.refreshInBackground(endpoint, u)
		return resp, nil
	}

	CacheLookups.WithLabelValues(endpoint, "miss").Inc()
	// The fetch is shared by every caller waiting on u, so one caller going
	// away must not cancel it for the rest.
	shared := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(u, func() (any, error) {
		resp, err := c.fetch(shared, endpoint, u)
		if err == nil {
			c.cache.put(u, resp)
		}
		return resp, err
	})
	if err != nil {
		return response{}, err
	}
	return v.(response), nil
}

// refreshInBackground refetches a stale entry without holding up the caller.
func (c *Client) refreshInBackground(endpoint, u string) {
	if !c.cache.beginRefresh(u) {
		return
	}

	c.refreshWG.Add(1)
	go func() {
		defer c.refreshWG.Done()

		ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
		defer cancel()

		_, err, _ := c.group.Do(u, func() (any, error) {
			resp, err := c.fetch(ctx, endpoint, u)
			if err == nil && resp.ok() {
				c.cache.put(u, resp)
				return resp, nil
			}
			if err == nil {
				err = &StatusError{URL: u, StatusCode: resp.status}
			}
			return resp, err
		})
		if err != nil {
			c.cache.endRefresh(u)
			c.log.Warn("catalog: background refresh failed", zap.String("url", u), zap.Error(err))
		}
	}()
}

// fetch performs one GET under the client timeout.
func (c *Client) fetch(ctx context.Context, endpoint, u string) (response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		recordUpstream(endpoint, "transport_error", start)
		return response{}, fmt.Errorf("get %s: %w", u, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		recordUpstream(endpoint, "transport_error", start)
		return response{}, fmt.Errorf("read %s: %w", u, err)
	}

	resp := response{status: res.StatusCode, body: body}
	if resp.ok() {
		recordUpstream(endpoint, "ok", start)
	} else {
		recordUpstream(endpoint, "http_error", start)
	}
	return resp, nil
}
