package player

import "context"

// Directory resolves player names against the loaded league index.
// Lookups are exact on the slugified name; no fuzzy matching.
type Directory interface {
	BySlug(ctx context.Context, slug string) (Identity, bool)
	ByID(ctx context.Context, id int64) (Identity, bool)
	Active(ctx context.Context) []Identity
}
