package stats

import "strings"

// Category is one of the closed set of recommendation targets. Each
// value maps onto a field of the latest-season summary.
type Category string

const (
	CategoryPoints     Category = "PTS"
	CategoryRebounds   Category = "REB"
	CategoryAssists    Category = "AST"
	CategorySteals     Category = "STL"
	CategoryBlocks     Category = "BLK"
	CategoryTurnovers  Category = "TOV"
	CategoryThreesMade Category = "FG3M"
	CategoryMinutes    Category = "MIN"
	CategoryFGPct      Category = "FG_PCT"
	CategoryFG3Pct     Category = "FG3_PCT"
	CategoryFTPct      Category = "FT_PCT"
	CategoryTSPct      Category = "TS_PCT"
	CategoryUsage      Category = "USG_PCT"
	CategoryPIE        Category = "PIE"
	CategoryWinShares  Category = "WS"
)

var allCategories = map[Category]struct{}{
	CategoryPoints:     {},
	CategoryRebounds:   {},
	CategoryAssists:    {},
	CategorySteals:     {},
	CategoryBlocks:     {},
	CategoryTurnovers:  {},
	CategoryThreesMade: {},
	CategoryMinutes:    {},
	CategoryFGPct:      {},
	CategoryFG3Pct:     {},
	CategoryFTPct:      {},
	CategoryTSPct:      {},
	CategoryUsage:      {},
	CategoryPIE:        {},
	CategoryWinShares:  {},
}

// categoryAliases maps common fantasy shorthand onto canonical
// categories so "3PM" and "FG3M" both work.
var categoryAliases = map[string]Category{
	"3PM":  CategoryThreesMade,
	"3P%":  CategoryFG3Pct,
	"FG%":  CategoryFGPct,
	"FT%":  CategoryFTPct,
	"TS%":  CategoryTSPct,
	"TO":   CategoryTurnovers,
	"USG":  CategoryUsage,
	"USG%": CategoryUsage,
}

// ParseCategory resolves user input to a canonical category. Unknown
// values are rejected, never silently dropped.
func ParseCategory(s string) (Category, bool) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	if alias, ok := categoryAliases[normalized]; ok {
		return alias, true
	}
	c := Category(normalized)
	if _, ok := allCategories[c]; ok {
		return c, true
	}
	return "", false
}

// LowerIsBetter reports whether a smaller value is the desirable
// direction for the category. Turnovers are the only such category.
func (c Category) LowerIsBetter() bool {
	return c == CategoryTurnovers
}

// SummaryValue extracts the category's value from a summary, or nil
// when the underlying stat is unknown for that player.
func (c Category) SummaryValue(s Summary) *float64 {
	switch c {
	case CategoryPoints:
		return s.PointsPerGame
	case CategoryRebounds:
		return s.ReboundsPerGame
	case CategoryAssists:
		return s.AssistsPerGame
	case CategorySteals:
		return s.StealsPerGame
	case CategoryBlocks:
		return s.BlocksPerGame
	case CategoryTurnovers:
		return s.TurnoversPerGame
	case CategoryThreesMade:
		return s.ThreesMadePerGame
	case CategoryMinutes:
		return s.MinutesPerGame
	case CategoryFGPct:
		return s.FieldGoalPct
	case CategoryFG3Pct:
		return s.ThreePointPct
	case CategoryFTPct:
		return s.FreeThrowPct
	case CategoryTSPct:
		return s.TrueShootingPct
	case CategoryUsage:
		return s.UsagePct
	case CategoryPIE:
		return s.PlayerImpactEstimate
	case CategoryWinShares:
		return s.WinShares
	}
	return nil
}

// Score sums the category values for a summary, negating categories
// where lower is better. Missing values contribute nothing.
func Score(s Summary, categories []Category) float64 {
	score := 0.0
	for _, c := range categories {
		v := c.SummaryValue(s)
		if v == nil {
			continue
		}
		if c.LowerIsBetter() {
			score -= *v
		} else {
			score += *v
		}
	}
	return score
}
