package usecase

import (
	"context"

	"github.com/courtflow/nba-stats-api/internal/domain/player"
	"github.com/courtflow/nba-stats-api/internal/domain/stats"
)

// StatsProvider is the upstream data source. Season type arguments are
// always a concrete partition (regular or playoffs); services expand
// "all" into separate calls so only the needed subsets are fetched.
type StatsProvider interface {
	ListPlayers(ctx context.Context) ([]player.Identity, error)
	SeasonTotals(ctx context.Context, playerID int64, seasonType stats.SeasonType) ([]stats.RawSeasonTotals, error)
	CareerTotals(ctx context.Context, playerID int64, seasonType stats.SeasonType) (*stats.RawTotals, error)
	AdvancedTotals(ctx context.Context, playerID int64, seasonType stats.SeasonType) ([]stats.RawAdvancedSeason, *stats.RawAdvanced, error)
}
