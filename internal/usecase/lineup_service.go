package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/courtflow/nba-stats-api/internal/domain/player"
	"github.com/courtflow/nba-stats-api/internal/domain/stats"
)

const maxLineupSize = 15

type LineupService struct {
	profiles *ProfileService
}

func NewLineupService(profiles *ProfileService) *LineupService {
	return &LineupService{profiles: profiles}
}

type LineupAggregation struct {
	Players    []string              `json:"lineup_players"`
	Metric     stats.AggregateMetric `json:"aggregation_metric"`
	Aggregated map[string]float64    `json:"aggregated_stats_from_latest_season_summary"`
}

// Aggregate combines the latest-season summaries of every named player
// into one line. Resolution is atomic: any unknown name fails the
// whole lineup, and a player with no regular-season summary fails it
// with incomplete data.
func (s *LineupService) Aggregate(ctx context.Context, names []string, metricRaw string) (LineupAggregation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.Aggregate")
	defer span.End()

	metric := stats.AggregateAvg
	if strings.TrimSpace(metricRaw) != "" {
		parsed, ok := stats.ParseAggregateMetric(metricRaw)
		if !ok {
			return LineupAggregation{}, fmt.Errorf("%w: aggregation metric %q", ErrInvalidParameter, metricRaw)
		}
		metric = parsed
	}

	trimmed := make([]string, 0, len(names))
	for _, name := range names {
		if strings.TrimSpace(name) != "" {
			trimmed = append(trimmed, name)
		}
	}
	if len(trimmed) == 0 {
		return LineupAggregation{}, fmt.Errorf("%w: lineup players are required", ErrInvalidParameter)
	}
	if len(trimmed) > maxLineupSize {
		return LineupAggregation{}, fmt.Errorf("%w: lineup exceeds %d players", ErrInvalidParameter, maxLineupSize)
	}

	identities := make([]player.Identity, len(trimmed))
	for i, name := range trimmed {
		identity, err := s.profiles.resolve(ctx, name)
		if err != nil {
			return LineupAggregation{}, err
		}
		identities[i] = identity
	}

	summaries := make([]stats.Summary, len(identities))
	var mu sync.Mutex

	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i := range identities {
		i := i
		identity := identities[i]
		p.Go(func(ctx context.Context) error {
			profile, err := s.profiles.loadProfile(ctx, identity, stats.SeasonTypeRegular, stats.StatsModeAll)
			if err != nil {
				return err
			}
			if profile.LatestSeasonSummary == nil {
				return fmt.Errorf("%w: no latest season summary for %s", ErrIncompleteData, identity.FullName)
			}
			mu.Lock()
			summaries[i] = *profile.LatestSeasonSummary
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return LineupAggregation{}, err
	}

	players := make([]string, len(identities))
	for i, identity := range identities {
		players[i] = identity.FullName
	}

	return LineupAggregation{
		Players:    players,
		Metric:     metric,
		Aggregated: stats.AggregateSummaries(metric, summaries),
	}, nil
}
