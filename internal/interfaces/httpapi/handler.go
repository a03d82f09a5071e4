package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	jsoniter "github.com/json-iterator/go"

	"github.com/courtflow/nba-stats-api/internal/platform/logging"
	"github.com/courtflow/nba-stats-api/internal/usecase"
)

type Handler struct {
	profileService        *usecase.ProfileService
	lineupService         *usecase.LineupService
	recommendationService *usecase.RecommendationService
	usageService          *usecase.UsageService
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(
	profileService *usecase.ProfileService,
	lineupService *usecase.LineupService,
	recommendationService *usecase.RecommendationService,
	usageService *usecase.UsageService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		profileService:        profileService,
		lineupService:         lineupService,
		recommendationService: recommendationService,
		usageService:          usageService,
		logger:                logger,
		validator:             validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) GetPlayerProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerProfile")
	defer span.End()

	name := r.PathValue("playerName")
	seasonType := strings.TrimSpace(r.URL.Query().Get("season_type"))
	statsMode := strings.TrimSpace(r.URL.Query().Get("stats_mode"))
	params := map[string]any{
		"player_name": name,
		"season_type": seasonType,
		"stats_mode":  statsMode,
	}

	profile, err := h.profileService.GetProfileByName(ctx, name, seasonType, statsMode)
	h.recordUsage(ctx, "/player", params, err)
	if err != nil {
		h.logger.WarnContext(ctx, "get player profile failed", "player_name", name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, profile)
}

func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComparePlayers")
	defer span.End()

	query := r.URL.Query()
	first := strings.TrimSpace(query.Get("player1"))
	second := strings.TrimSpace(query.Get("player2"))
	seasonType := strings.TrimSpace(query.Get("season_type"))
	statsMode := strings.TrimSpace(query.Get("stats_mode"))
	params := map[string]any{
		"player1":     first,
		"player2":     second,
		"season_type": seasonType,
		"stats_mode":  statsMode,
	}

	if first == "" || second == "" {
		err := fmt.Errorf("%w: player1 and player2 are required", usecase.ErrInvalidParameter)
		h.recordUsage(ctx, "/compare", params, err)
		writeError(ctx, w, err)
		return
	}

	result, err := h.profileService.CompareProfiles(ctx, first, second, seasonType, statsMode)
	h.recordUsage(ctx, "/compare", params, err)
	if err != nil {
		h.logger.WarnContext(ctx, "compare players failed", "player1", first, "player2", second, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type lineupRequest struct {
	Players []string `json:"players" validate:"required,min=1,dive,required"`
}

func (h *Handler) AggregateLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AggregateLineup")
	defer span.End()

	metric := strings.TrimSpace(r.URL.Query().Get("metric"))

	var req lineupRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidParameter, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	params := map[string]any{
		"players": req.Players,
		"metric":  metric,
	}

	result, err := h.lineupService.Aggregate(ctx, req.Players, metric)
	h.recordUsage(ctx, "/lineup", params, err)
	if err != nil {
		h.logger.WarnContext(ctx, "aggregate lineup failed", "players", len(req.Players), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, result)
}

type recommendationRequest struct {
	TargetCategories   []string `json:"target_categories" validate:"required,min=1,dive,required"`
	ExcludedPlayerIDs  []int64  `json:"excluded_player_ids"`
	NumRecommendations int      `json:"num_recommendations" validate:"min=0,max=50"`
}

type recommendationDTO struct {
	PlayerID       int64               `json:"player_id"`
	FullName       string              `json:"full_name"`
	Score          float64             `json:"recommendation_score"`
	CategoryValues map[string]*float64 `json:"targeted_category_stats"`
}

func (h *Handler) RecommendPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecommendPlayers")
	defer span.End()

	var req recommendationRequest
	decoder := jsoniter.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidParameter, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	params := map[string]any{
		"target_categories":   req.TargetCategories,
		"excluded_player_ids": req.ExcludedPlayerIDs,
		"num_recommendations": req.NumRecommendations,
	}

	recommendations, err := h.recommendationService.Recommend(ctx, req.TargetCategories, req.ExcludedPlayerIDs, req.NumRecommendations)
	h.recordUsage(ctx, "/recommendations/categories", params, err)
	if err != nil {
		h.logger.WarnContext(ctx, "recommend players failed", "categories", req.TargetCategories, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]recommendationDTO, 0, len(recommendations))
	for _, rec := range recommendations {
		items = append(items, recommendationToDTO(rec))
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"recommendations": items})
}

func (h *Handler) RecentUsage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecentUsage")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit %q is not a number", usecase.ErrInvalidParameter, raw))
			return
		}
		limit = parsed
	}

	records, err := h.usageService.RecentUsage(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list recent usage failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, records)
}

// recordUsage captures one API invocation. Failures inside the usage
// service never reach the response path.
func (h *Handler) recordUsage(ctx context.Context, endpoint string, params map[string]any, err error) {
	outcome := "ok"
	if err != nil {
		outcome = mapError(ctx, err).Reason
	}
	h.usageService.Record(ctx, endpoint, params, outcome)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidParameter, err)
	}

	return nil
}

func recommendationToDTO(rec usecase.Recommendation) recommendationDTO {
	values := make(map[string]*float64, len(rec.CategoryValues))
	for category, value := range rec.CategoryValues {
		values[string(category)] = value
	}

	return recommendationDTO{
		PlayerID:       rec.PlayerID,
		FullName:       rec.FullName,
		Score:          rec.Score,
		CategoryValues: values,
	}
}
