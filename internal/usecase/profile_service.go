package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/courtflow/nba-stats-api/internal/domain/player"
	"github.com/courtflow/nba-stats-api/internal/domain/stats"
	"github.com/courtflow/nba-stats-api/internal/platform/cache"
)

type ProfileService struct {
	directory player.Directory
	provider  StatsProvider
	store     *cache.Store
}

func NewProfileService(directory player.Directory, provider StatsProvider, store *cache.Store) *ProfileService {
	return &ProfileService{
		directory: directory,
		provider:  provider,
		store:     store,
	}
}

// GetProfileByName resolves a player name and returns the normalized
// profile for the requested partitions. Empty season type and stats
// mode default to "all".
func (s *ProfileService) GetProfileByName(ctx context.Context, name, seasonTypeRaw, statsModeRaw string) (stats.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.GetProfileByName")
	defer span.End()

	identity, err := s.resolve(ctx, name)
	if err != nil {
		return stats.Profile{}, err
	}
	seasonType, mode, err := parseViewParams(seasonTypeRaw, statsModeRaw)
	if err != nil {
		return stats.Profile{}, err
	}

	return s.loadProfile(ctx, identity, seasonType, mode)
}

// CompareProfiles loads two players side by side, keyed by the
// slugified request names. Resolution is atomic: one unknown name
// fails the whole comparison.
func (s *ProfileService) CompareProfiles(ctx context.Context, firstName, secondName, seasonTypeRaw, statsModeRaw string) (map[string]stats.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ProfileService.CompareProfiles")
	defer span.End()

	seasonType, mode, err := parseViewParams(seasonTypeRaw, statsModeRaw)
	if err != nil {
		return nil, err
	}

	names := []string{firstName, secondName}
	identities := make([]player.Identity, len(names))
	for i, name := range names {
		identity, err := s.resolve(ctx, name)
		if err != nil {
			return nil, err
		}
		identities[i] = identity
	}

	var mu sync.Mutex
	out := make(map[string]stats.Profile, len(names))

	p := pool.New().WithContext(ctx).WithCancelOnError()
	for i := range identities {
		identity := identities[i]
		slug := player.Slugify(names[i])
		p.Go(func(ctx context.Context) error {
			profile, err := s.loadProfile(ctx, identity, seasonType, mode)
			if err != nil {
				return err
			}
			mu.Lock()
			out[slug] = profile
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

func (s *ProfileService) resolve(ctx context.Context, name string) (player.Identity, error) {
	slug := player.Slugify(name)
	if slug == "" {
		return player.Identity{}, fmt.Errorf("%w: player name is required", ErrInvalidParameter)
	}

	identity, ok := s.directory.BySlug(ctx, slug)
	if !ok {
		return player.Identity{}, fmt.Errorf("%w: %s", ErrPlayerNotFound, strings.TrimSpace(name))
	}
	return identity, nil
}

// loadProfile is the read-through path: cache hit, or one fetch shared
// by all concurrent requests for the same (player, view) key.
func (s *ProfileService) loadProfile(ctx context.Context, identity player.Identity, seasonType stats.SeasonType, mode stats.StatsMode) (stats.Profile, error) {
	key := fmt.Sprintf("profile:%d:%s:%s", identity.ID, seasonType, mode)
	value, err := s.store.GetOrLoad(ctx, key, func(loadCtx context.Context) (any, error) {
		return s.fetchProfile(loadCtx, identity, seasonType, mode)
	})
	if err != nil {
		return stats.Profile{}, err
	}

	profile, ok := value.(stats.Profile)
	if !ok {
		return stats.Profile{}, fmt.Errorf("unexpected cached value type %T", value)
	}
	return profile, nil
}

func (s *ProfileService) fetchProfile(ctx context.Context, identity player.Identity, seasonType stats.SeasonType, mode stats.StatsMode) (any, error) {
	raw := stats.RawPlayerData{
		PlayerID:   identity.ID,
		PlayerName: identity.FullName,
		SeasonType: seasonType,
		Mode:       mode,
	}

	if seasonType.IncludesRegular() {
		if err := s.fetchPartition(ctx, identity.ID, stats.SeasonTypeRegular, mode,
			&raw.RegularSeasons, &raw.RegularCareer, &raw.RegularAdvancedSeasons, &raw.RegularAdvancedCareer); err != nil {
			return nil, err
		}
	}
	if seasonType.IncludesPlayoffs() {
		if err := s.fetchPartition(ctx, identity.ID, stats.SeasonTypePlayoffs, mode,
			&raw.PlayoffSeasons, &raw.PlayoffCareer, &raw.PlayoffAdvancedSeasons, &raw.PlayoffAdvancedCareer); err != nil {
			return nil, err
		}
	}

	if !raw.HasSeasonRows() {
		return nil, fmt.Errorf("%w: player_id=%d has no season rows", ErrIncompleteData, identity.ID)
	}

	return stats.NormalizeProfile(raw), nil
}

func (s *ProfileService) fetchPartition(
	ctx context.Context,
	playerID int64,
	partition stats.SeasonType,
	mode stats.StatsMode,
	seasons *[]stats.RawSeasonTotals,
	career **stats.RawTotals,
	advancedSeasons *[]stats.RawAdvancedSeason,
	advancedCareer **stats.RawAdvanced,
) error {
	if mode.IncludesBasic() {
		rows, err := s.provider.SeasonTotals(ctx, playerID, partition)
		if err != nil {
			return err
		}
		*seasons = rows

		careerRow, err := s.provider.CareerTotals(ctx, playerID, partition)
		if err != nil {
			return err
		}
		*career = careerRow
	}
	if mode.IncludesAdvanced() {
		rows, careerRow, err := s.provider.AdvancedTotals(ctx, playerID, partition)
		if err != nil {
			return err
		}
		*advancedSeasons = rows
		*advancedCareer = careerRow
	}
	return nil
}

func parseViewParams(seasonTypeRaw, statsModeRaw string) (stats.SeasonType, stats.StatsMode, error) {
	seasonType := stats.SeasonTypeAll
	if strings.TrimSpace(seasonTypeRaw) != "" {
		parsed, ok := stats.ParseSeasonType(seasonTypeRaw)
		if !ok {
			return "", "", fmt.Errorf("%w: season_type %q", ErrInvalidParameter, seasonTypeRaw)
		}
		seasonType = parsed
	}

	mode := stats.StatsModeAll
	if strings.TrimSpace(statsModeRaw) != "" {
		parsed, ok := stats.ParseStatsMode(statsModeRaw)
		if !ok {
			return "", "", fmt.Errorf("%w: stats_mode %q", ErrInvalidParameter, statsModeRaw)
		}
		mode = parsed
	}

	return seasonType, mode, nil
}
