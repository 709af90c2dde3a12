package testutil

import (
	"context"
	"sync"

	"github.com/dalemusser/gamecenter/internal/domain/models"
)

// StubCatalog is an in-memory catalog for handler tests. It records the
// queries and ids it was asked for.
type StubCatalog struct {
	Games   []models.Game
	Results map[string][]models.Game
	Details map[string]*models.GameDetails

	mu       sync.Mutex
	Queries  []string
	Requests []string
}

// FetchCatalog returns Games.
func (s *StubCatalog) FetchCatalog(ctx context.Context) []models.Game {
	return s.Games
}

// SearchCatalog returns Results[query], or nil.
func (s *StubCatalog) SearchCatalog(ctx context.Context, query string) []models.Game {
	s.mu.Lock()
	s.Queries = append(s.Queries, query)
	s.mu.Unlock()
	return s.Results[query]
}

// FetchGameDetails returns Details[id], or nil.
func (s *StubCatalog) FetchGameDetails(ctx context.Context, id string) *models.GameDetails {
	s.mu.Lock()
	s.Requests = append(s.Requests, id)
	s.mu.Unlock()
	return s.Details[id]
}
