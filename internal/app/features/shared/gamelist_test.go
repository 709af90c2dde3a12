package shared

import (
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/gamecenter/internal/domain/models"
)

func TestGameHref(t *testing.T) {
	tests := []struct {
		id, ret string
		want    string
	}{
		{"g1", "", "/game/g1"},
		{"g1", "/", "/game/g1"},
		{"g1", "/search?q=star quest", "/game/g1?return=%2Fsearch%3Fq%3Dstar+quest"},
		{"a/b", "", "/game/a%2Fb"},
	}
	for _, tt := range tests {
		if got := GameHref(tt.id, tt.ret); got != tt.want {
			t.Errorf("GameHref(%q, %q) = %q, want %q", tt.id, tt.ret, got, tt.want)
		}
	}
}

func TestGameCards_Ranked(t *testing.T) {
	games := []models.Game{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	cards := GameCards(games, true, "/")
	if len(cards) != 3 {
		t.Fatalf("expected 3 cards, got %d", len(cards))
	}
	for i, c := range cards {
		if c.Rank != i+1 {
			t.Errorf("card %d rank = %d, want %d", i, c.Rank, i+1)
		}
		if c.Game.ID != games[i].ID {
			t.Errorf("card %d out of order: %q", i, c.Game.ID)
		}
	}
}

func TestGameCards_Unranked(t *testing.T) {
	cards := GameCards([]models.Game{{ID: "a"}}, false, "/search?q=a")
	if cards[0].Rank != 0 {
		t.Errorf("expected no rank, got %d", cards[0].Rank)
	}
	if cards[0].Href != "/game/a?return=%2Fsearch%3Fq%3Da" {
		t.Errorf("Href = %q", cards[0].Href)
	}
}

func TestGameCards_Empty(t *testing.T) {
	if cards := GameCards(nil, true, "/"); len(cards) != 0 {
		t.Errorf("expected no cards, got %d", len(cards))
	}
}

func TestSetCatalogCaching(t *testing.T) {
	rec := httptest.NewRecorder()
	SetCatalogCaching(rec)
	if got := rec.Header().Get("Cache-Control"); got != CacheControl {
		t.Errorf("Cache-Control = %q", got)
	}
}
