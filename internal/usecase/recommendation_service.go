package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/courtflow/nba-stats-api/internal/domain/player"
	"github.com/courtflow/nba-stats-api/internal/domain/stats"
	"github.com/courtflow/nba-stats-api/internal/platform/logging"
)

const (
	defaultRecommendationCount = 5
	maxRecommendationCount     = 50

	// Pool eligibility thresholds: the candidate must have real
	// playing time this season before being worth recommending.
	minPoolGamesPlayed    = 10
	minPoolMinutesPerGame = 15.0

	defaultScanWorkers = 8
)

type RecommendationService struct {
	directory player.Directory
	profiles  *ProfileService
	logger    *logging.Logger
	workers   int
}

func NewRecommendationService(directory player.Directory, profiles *ProfileService, logger *logging.Logger, workers int) *RecommendationService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultScanWorkers
	}
	return &RecommendationService{
		directory: directory,
		profiles:  profiles,
		logger:    logger,
		workers:   workers,
	}
}

type Recommendation struct {
	PlayerID       int64
	FullName       string
	Score          float64
	CategoryValues map[stats.Category]*float64
}

// Recommend scans active players with meaningful minutes and ranks
// them by signed category score. Candidates whose stats cannot be
// loaded are skipped rather than failing the scan; unknown categories
// are rejected outright.
func (s *RecommendationService) Recommend(ctx context.Context, categoriesRaw []string, excludedIDs []int64, count int) ([]Recommendation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RecommendationService.Recommend")
	defer span.End()

	if len(categoriesRaw) == 0 {
		return nil, fmt.Errorf("%w: target categories are required", ErrInvalidParameter)
	}
	categories := make([]stats.Category, 0, len(categoriesRaw))
	seen := make(map[stats.Category]struct{}, len(categoriesRaw))
	for _, raw := range categoriesRaw {
		category, ok := stats.ParseCategory(raw)
		if !ok {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidParameter, raw)
		}
		if _, dup := seen[category]; dup {
			continue
		}
		seen[category] = struct{}{}
		categories = append(categories, category)
	}

	if count <= 0 {
		count = defaultRecommendationCount
	}
	if count > maxRecommendationCount {
		count = maxRecommendationCount
	}

	excluded := make(map[int64]struct{}, len(excludedIDs))
	for _, id := range excludedIDs {
		excluded[id] = struct{}{}
	}

	candidates := make([]player.Identity, 0, 64)
	for _, identity := range s.directory.Active(ctx) {
		if _, skip := excluded[identity.ID]; skip {
			continue
		}
		candidates = append(candidates, identity)
	}
	if len(candidates) == 0 {
		return []Recommendation{}, nil
	}

	workerCount := s.workers
	if workerCount > len(candidates) {
		workerCount = len(candidates)
	}
	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create scan worker pool: %w", err)
	}
	defer workerPool.Release()

	var mu sync.Mutex
	scored := make([]scoredCandidate, 0, len(candidates))

	var workers sync.WaitGroup
	for _, candidate := range candidates {
		candidate := candidate
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			row, ok := s.scoreCandidate(ctx, candidate, categories)
			if !ok {
				return
			}
			mu.Lock()
			scored = append(scored, row)
			mu.Unlock()
		}); err != nil {
			workers.Done()
			return nil, fmt.Errorf("submit candidate to scan pool: %w", err)
		}
	}
	workers.Wait()

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].score != scored[j].score {
			return scored[i].score > scored[j].score
		}
		if scored[i].gamesPlayed != scored[j].gamesPlayed {
			return scored[i].gamesPlayed > scored[j].gamesPlayed
		}
		return scored[i].identity.ID < scored[j].identity.ID
	})

	if len(scored) > count {
		scored = scored[:count]
	}

	out := make([]Recommendation, 0, len(scored))
	for _, row := range scored {
		values := make(map[stats.Category]*float64, len(categories))
		for _, category := range categories {
			values[category] = category.SummaryValue(row.summary)
		}
		out = append(out, Recommendation{
			PlayerID:       row.identity.ID,
			FullName:       row.identity.FullName,
			Score:          row.score,
			CategoryValues: values,
		})
	}

	return out, nil
}

type scoredCandidate struct {
	identity    player.Identity
	summary     stats.Summary
	score       float64
	gamesPlayed int
}

func (s *RecommendationService) scoreCandidate(ctx context.Context, candidate player.Identity, categories []stats.Category) (scoredCandidate, bool) {
	profile, err := s.profiles.loadProfile(ctx, candidate, stats.SeasonTypeRegular, stats.StatsModeAll)
	if err != nil {
		s.logger.WarnContext(ctx, "skipping recommendation candidate",
			"player_id", candidate.ID,
			"player_name", candidate.FullName,
			"error", err,
		)
		return scoredCandidate{}, false
	}

	summary := profile.LatestSeasonSummary
	if summary == nil {
		return scoredCandidate{}, false
	}
	if summary.GamesPlayed <= minPoolGamesPlayed {
		return scoredCandidate{}, false
	}
	if summary.MinutesPerGame == nil || *summary.MinutesPerGame <= minPoolMinutesPerGame {
		return scoredCandidate{}, false
	}

	return scoredCandidate{
		identity:    candidate,
		summary:     *summary,
		score:       stats.Score(*summary, categories),
		gamesPlayed: summary.GamesPlayed,
	}, true
}
