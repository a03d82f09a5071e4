package player

import (
	"fmt"
	"strings"
)

// Identity is one entry in the league-wide player index.
type Identity struct {
	ID       int64
	FullName string
	IsActive bool
}

func (p Identity) Validate() error {
	if p.ID <= 0 {
		return fmt.Errorf("player id must be positive")
	}
	if strings.TrimSpace(p.FullName) == "" {
		return fmt.Errorf("player full name is required")
	}

	return nil
}

// Slug returns the canonical lookup key for the player's name.
func (p Identity) Slug() string {
	return Slugify(p.FullName)
}

// Slugify normalizes a display name into the canonical lookup form:
// lowercased, with runs of whitespace and hyphens collapsed into a
// single hyphen. "LeBron James", "lebron-james" and "lebron  james"
// all map to "lebron-james".
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	pendingSep := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r == ' ' || r == '\t' || r == '-' || r == '_':
			pendingSep = b.Len() > 0
		default:
			if pendingSep {
				b.WriteByte('-')
				pendingSep = false
			}
			b.WriteRune(r)
		}
	}

	return b.String()
}
