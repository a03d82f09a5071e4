package stats

import "strings"

// AggregateMetric selects how lineup summaries are combined.
type AggregateMetric string

const (
	AggregateAvg   AggregateMetric = "avg"
	AggregateTotal AggregateMetric = "total"
)

func ParseAggregateMetric(s string) (AggregateMetric, bool) {
	switch AggregateMetric(strings.ToLower(strings.TrimSpace(s))) {
	case AggregateAvg:
		return AggregateAvg, true
	case AggregateTotal:
		return AggregateTotal, true
	}
	return "", false
}

type summaryField struct {
	name  string
	value func(Summary) *float64
}

// summaryFields fixes the set and order of numeric summary fields that
// participate in lineup aggregation.
var summaryFields = []summaryField{
	{"games_played", func(s Summary) *float64 { v := float64(s.GamesPlayed); return &v }},
	{"minutes_per_game", func(s Summary) *float64 { return s.MinutesPerGame }},
	{"points_per_game", func(s Summary) *float64 { return s.PointsPerGame }},
	{"rebounds_per_game", func(s Summary) *float64 { return s.ReboundsPerGame }},
	{"assists_per_game", func(s Summary) *float64 { return s.AssistsPerGame }},
	{"steals_per_game", func(s Summary) *float64 { return s.StealsPerGame }},
	{"blocks_per_game", func(s Summary) *float64 { return s.BlocksPerGame }},
	{"turnovers_per_game", func(s Summary) *float64 { return s.TurnoversPerGame }},
	{"fg3m_per_game", func(s Summary) *float64 { return s.ThreesMadePerGame }},
	{"fg_pct", func(s Summary) *float64 { return s.FieldGoalPct }},
	{"fg3_pct", func(s Summary) *float64 { return s.ThreePointPct }},
	{"ft_pct", func(s Summary) *float64 { return s.FreeThrowPct }},
	{"ts_pct", func(s Summary) *float64 { return s.TrueShootingPct }},
	{"usg_pct", func(s Summary) *float64 { return s.UsagePct }},
	{"pie", func(s Summary) *float64 { return s.PlayerImpactEstimate }},
	{"ws", func(s Summary) *float64 { return s.WinShares }},
}

// AggregateSummaries combines latest-season summaries across a lineup.
// Averages divide each field by the number of players that actually
// carry it, so one player without win shares does not drag the lineup
// average down. Totals count a missing field as zero. A field carried
// by no player in the lineup stays absent for both metrics; zero never
// stands in for missing data. Keys are prefixed with the metric
// ("avg_points_per_game", "total_ws").
func AggregateSummaries(metric AggregateMetric, summaries []Summary) map[string]float64 {
	out := make(map[string]float64, len(summaryFields))
	if len(summaries) == 0 {
		return out
	}

	for _, field := range summaryFields {
		sum := 0.0
		present := 0
		for _, s := range summaries {
			if v := field.value(s); v != nil {
				sum += *v
				present++
			}
		}
		if present == 0 {
			continue
		}

		key := string(metric) + "_" + field.name
		if metric == AggregateTotal {
			out[key] = sum
		} else {
			out[key] = sum / float64(present)
		}
	}

	return out
}
