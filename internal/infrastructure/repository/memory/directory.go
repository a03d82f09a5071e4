package memory

import (
	"context"
	"sync"

	"github.com/courtflow/nba-stats-api/internal/domain/player"
)

// Directory is an in-memory player index built once from the provider
// roster at startup. Lookups are slug-exact: no fuzzy matching, no
// partial names.
type Directory struct {
	mu     sync.RWMutex
	bySlug map[string]player.Identity
	byID   map[int64]player.Identity
	active []player.Identity
}

func NewDirectory(players []player.Identity) *Directory {
	d := &Directory{
		bySlug: make(map[string]player.Identity, len(players)),
		byID:   make(map[int64]player.Identity, len(players)),
	}
	d.Replace(players)
	return d
}

// Replace swaps the whole roster. Invalid identities are dropped; when
// two players share a slug the first one wins.
func (d *Directory) Replace(players []player.Identity) {
	bySlug := make(map[string]player.Identity, len(players))
	byID := make(map[int64]player.Identity, len(players))
	active := make([]player.Identity, 0, len(players))

	for _, identity := range players {
		if identity.Validate() != nil {
			continue
		}
		slug := identity.Slug()
		if _, exists := bySlug[slug]; exists {
			continue
		}
		bySlug[slug] = identity
		byID[identity.ID] = identity
		if identity.IsActive {
			active = append(active, identity)
		}
	}

	d.mu.Lock()
	d.bySlug = bySlug
	d.byID = byID
	d.active = active
	d.mu.Unlock()
}

func (d *Directory) BySlug(_ context.Context, slug string) (player.Identity, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	identity, ok := d.bySlug[slug]
	return identity, ok
}

func (d *Directory) ByID(_ context.Context, id int64) (player.Identity, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	identity, ok := d.byID[id]
	return identity, ok
}

func (d *Directory) Active(_ context.Context) []player.Identity {
	d.mu.RLock()
	defer d.mu.RUnlock()

	out := make([]player.Identity, len(d.active))
	copy(out, d.active)
	return out
}

func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.bySlug)
}
