package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/courtflow/nba-stats-api/internal/domain/player"
	"github.com/courtflow/nba-stats-api/internal/domain/stats"
	"github.com/courtflow/nba-stats-api/internal/domain/usage"
	"github.com/courtflow/nba-stats-api/internal/platform/cache"
	"github.com/courtflow/nba-stats-api/internal/platform/logging"
	"github.com/courtflow/nba-stats-api/internal/usecase"
)

type stubDirectory struct {
	players map[string]player.Identity
}

func (d *stubDirectory) BySlug(_ context.Context, slug string) (player.Identity, bool) {
	identity, ok := d.players[slug]
	return identity, ok
}

func (d *stubDirectory) ByID(_ context.Context, id int64) (player.Identity, bool) {
	for _, identity := range d.players {
		if identity.ID == id {
			return identity, true
		}
	}
	return player.Identity{}, false
}

func (d *stubDirectory) Active(_ context.Context) []player.Identity {
	out := make([]player.Identity, 0, len(d.players))
	for _, identity := range d.players {
		if identity.IsActive {
			out = append(out, identity)
		}
	}
	return out
}

type stubProvider struct {
	seasons map[int64][]stats.RawSeasonTotals
}

func (p *stubProvider) ListPlayers(context.Context) ([]player.Identity, error) { return nil, nil }

func (p *stubProvider) SeasonTotals(_ context.Context, playerID int64, seasonType stats.SeasonType) ([]stats.RawSeasonTotals, error) {
	if seasonType == stats.SeasonTypePlayoffs {
		return nil, nil
	}
	return p.seasons[playerID], nil
}

func (p *stubProvider) CareerTotals(context.Context, int64, stats.SeasonType) (*stats.RawTotals, error) {
	return nil, nil
}

func (p *stubProvider) AdvancedTotals(context.Context, int64, stats.SeasonType) ([]stats.RawAdvancedSeason, *stats.RawAdvanced, error) {
	return nil, nil, nil
}

type stubUsageRepo struct {
	mu      sync.Mutex
	records []usage.Record
}

func (r *stubUsageRepo) Insert(_ context.Context, record usage.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *stubUsageRepo) Recent(_ context.Context, limit int) ([]usage.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit > len(r.records) {
		limit = len(r.records)
	}
	out := make([]usage.Record, limit)
	copy(out, r.records)
	return out, nil
}

func testRouter(t *testing.T) (http.Handler, *stubUsageRepo) {
	t.Helper()

	points := 1822.0
	minutes := 2500.0
	directory := &stubDirectory{players: map[string]player.Identity{
		"lebron-james":  {ID: 2544, FullName: "LeBron James", IsActive: true},
		"stephen-curry": {ID: 201939, FullName: "Stephen Curry", IsActive: true},
	}}
	provider := &stubProvider{seasons: map[int64][]stats.RawSeasonTotals{
		2544: {{
			SeasonID:  "2023-24",
			RawTotals: stats.RawTotals{GamesPlayed: 71, Minutes: &minutes, Pts: &points},
		}},
		201939: {{
			SeasonID:  "2023-24",
			RawTotals: stats.RawTotals{GamesPlayed: 74, Minutes: &minutes, Pts: &points},
		}},
	}}

	logger := logging.NewNop()
	profiles := usecase.NewProfileService(directory, provider, cache.NewStore(64, 0))
	usageRepo := &stubUsageRepo{}
	handler := NewHandler(
		profiles,
		usecase.NewLineupService(profiles),
		usecase.NewRecommendationService(directory, profiles, logger, 2),
		usecase.NewUsageService(usageRepo, logger),
		logger,
	)

	return NewRouter(handler, logger, nil), usageRepo
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body
}

func TestHandler_GetPlayerProfile(t *testing.T) {
	router, usageRepo := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/player/LeBron%20James?season_type=regular&stats_mode=basic", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data object: %v", body)
	}
	if got, _ := data["player_id"].(float64); got != 2544 {
		t.Fatalf("player_id = %v, want 2544", data["player_id"])
	}
	if len(usageRepo.records) != 1 || usageRepo.records[0].Outcome != "ok" {
		t.Fatalf("usage records = %+v", usageRepo.records)
	}
}

func TestHandler_GetPlayerProfile_NotFound(t *testing.T) {
	router, usageRepo := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/player/Nobody%20Here", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if len(usageRepo.records) != 1 || usageRepo.records[0].Outcome != "playerNotFound" {
		t.Fatalf("usage records = %+v", usageRepo.records)
	}
}

func TestHandler_GetPlayerProfile_BadSeasonType(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/player/LeBron%20James?season_type=preseason", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_ComparePlayers(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/compare?player1=LeBron%20James&player2=Stephen%20Curry&season_type=regular&stats_mode=basic", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data object: %v", body)
	}
	for _, key := range []string{"lebron-james", "stephen-curry"} {
		if _, ok := data[key]; !ok {
			t.Fatalf("missing %q in comparison: %v", key, data)
		}
	}
}

func TestHandler_ComparePlayers_MissingParam(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/compare?player1=LeBron%20James", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_AggregateLineup(t *testing.T) {
	router, _ := testRouter(t)

	payload := `{"players":["LeBron James","Stephen Curry"]}`
	req := httptest.NewRequest(http.MethodPost, "/lineup?metric=total", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data object: %v", body)
	}
	if got, _ := data["aggregation_metric"].(string); got != "total" {
		t.Fatalf("aggregation_metric = %v", data["aggregation_metric"])
	}
}

func TestHandler_AggregateLineup_RejectsUnknownFields(t *testing.T) {
	router, _ := testRouter(t)

	payload := `{"players":["LeBron James"],"extra":true}`
	req := httptest.NewRequest(http.MethodPost, "/lineup", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_RecommendPlayers_UnknownCategory(t *testing.T) {
	router, _ := testRouter(t)

	payload := `{"target_categories":["DUNKS"]}`
	req := httptest.NewRequest(http.MethodPost, "/recommendations/categories", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandler_RecommendPlayers(t *testing.T) {
	router, _ := testRouter(t)

	payload := `{"target_categories":["PTS"],"num_recommendations":1}`
	req := httptest.NewRequest(http.MethodPost, "/recommendations/categories", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("missing data object: %v", body)
	}
	items, ok := data["recommendations"].([]any)
	if !ok {
		t.Fatalf("missing recommendations array: %v", data)
	}
	if len(items) != 1 {
		t.Fatalf("recommendations = %d, want 1", len(items))
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		t.Fatalf("unexpected item shape: %v", items[0])
	}
	if _, ok := first["recommendation_score"]; !ok {
		t.Fatalf("missing recommendation_score: %v", first)
	}
	if _, ok := first["targeted_category_stats"]; !ok {
		t.Fatalf("missing targeted_category_stats: %v", first)
	}
}

func TestHandler_Healthz(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}
