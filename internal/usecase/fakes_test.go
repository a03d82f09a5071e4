package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/courtflow/nba-stats-api/internal/domain/player"
	"github.com/courtflow/nba-stats-api/internal/domain/stats"
	"github.com/courtflow/nba-stats-api/internal/platform/cache"
)

func fptr(v float64) *float64 { return &v }

type fakeDirectory struct {
	bySlug map[string]player.Identity
	byID   map[int64]player.Identity
	order  []player.Identity
}

func newFakeDirectory(identities ...player.Identity) *fakeDirectory {
	d := &fakeDirectory{
		bySlug: make(map[string]player.Identity, len(identities)),
		byID:   make(map[int64]player.Identity, len(identities)),
	}
	for _, identity := range identities {
		d.bySlug[identity.Slug()] = identity
		d.byID[identity.ID] = identity
		d.order = append(d.order, identity)
	}
	return d
}

func (d *fakeDirectory) BySlug(_ context.Context, slug string) (player.Identity, bool) {
	identity, ok := d.bySlug[slug]
	return identity, ok
}

func (d *fakeDirectory) ByID(_ context.Context, id int64) (player.Identity, bool) {
	identity, ok := d.byID[id]
	return identity, ok
}

func (d *fakeDirectory) Active(_ context.Context) []player.Identity {
	out := make([]player.Identity, 0, len(d.order))
	for _, identity := range d.order {
		if identity.IsActive {
			out = append(out, identity)
		}
	}
	return out
}

type fakePlayerData struct {
	regular          []stats.RawSeasonTotals
	regularCareer    *stats.RawTotals
	playoffs         []stats.RawSeasonTotals
	playoffCareer    *stats.RawTotals
	regularAdv       []stats.RawAdvancedSeason
	regularAdvCareer *stats.RawAdvanced
	playoffAdv       []stats.RawAdvancedSeason
	playoffAdvCareer *stats.RawAdvanced
}

type fakeProvider struct {
	mu      sync.Mutex
	data    map[int64]fakePlayerData
	failFor map[int64]error
	calls   []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		data:    make(map[int64]fakePlayerData),
		failFor: make(map[int64]error),
	}
}

func (p *fakeProvider) record(format string, args ...any) {
	p.mu.Lock()
	p.calls = append(p.calls, fmt.Sprintf(format, args...))
	p.mu.Unlock()
}

func (p *fakeProvider) callCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.calls)
}

func (p *fakeProvider) callsMatching(substr string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	count := 0
	for _, call := range p.calls {
		if len(substr) == 0 || contains(call, substr) {
			count++
		}
	}
	return count
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

func (p *fakeProvider) ListPlayers(context.Context) ([]player.Identity, error) {
	return nil, nil
}

func (p *fakeProvider) SeasonTotals(_ context.Context, playerID int64, seasonType stats.SeasonType) ([]stats.RawSeasonTotals, error) {
	p.record("totals:%d:%s", playerID, seasonType)
	if err := p.failFor[playerID]; err != nil {
		return nil, err
	}
	d := p.data[playerID]
	if seasonType == stats.SeasonTypePlayoffs {
		return d.playoffs, nil
	}
	return d.regular, nil
}

func (p *fakeProvider) CareerTotals(_ context.Context, playerID int64, seasonType stats.SeasonType) (*stats.RawTotals, error) {
	p.record("career:%d:%s", playerID, seasonType)
	if err := p.failFor[playerID]; err != nil {
		return nil, err
	}
	d := p.data[playerID]
	if seasonType == stats.SeasonTypePlayoffs {
		return d.playoffCareer, nil
	}
	return d.regularCareer, nil
}

func (p *fakeProvider) AdvancedTotals(_ context.Context, playerID int64, seasonType stats.SeasonType) ([]stats.RawAdvancedSeason, *stats.RawAdvanced, error) {
	p.record("advanced:%d:%s", playerID, seasonType)
	if err := p.failFor[playerID]; err != nil {
		return nil, nil, err
	}
	d := p.data[playerID]
	if seasonType == stats.SeasonTypePlayoffs {
		return d.playoffAdv, d.playoffAdvCareer, nil
	}
	return d.regularAdv, d.regularAdvCareer, nil
}

// seasonLine builds a raw season with enough volume to clear the
// recommendation pool thresholds.
func seasonLine(seasonID string, gp int, totals stats.RawTotals) stats.RawSeasonTotals {
	totals.GamesPlayed = gp
	if totals.Minutes == nil {
		totals.Minutes = fptr(float64(gp) * 34)
	}
	return stats.RawSeasonTotals{
		SeasonID:  seasonID,
		RawTotals: totals,
	}
}

func newProfileFixture(identities ...player.Identity) (*fakeDirectory, *fakeProvider, *ProfileService) {
	directory := newFakeDirectory(identities...)
	provider := newFakeProvider()
	service := NewProfileService(directory, provider, cache.NewStore(128, 0))
	return directory, provider, service
}
