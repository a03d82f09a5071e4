package stats

import "strings"

// SeasonType selects which competition partitions a request covers.
type SeasonType string

const (
	SeasonTypeRegular  SeasonType = "regular"
	SeasonTypePlayoffs SeasonType = "playoffs"
	SeasonTypeAll      SeasonType = "all"
)

func ParseSeasonType(s string) (SeasonType, bool) {
	switch SeasonType(strings.ToLower(strings.TrimSpace(s))) {
	case SeasonTypeRegular:
		return SeasonTypeRegular, true
	case SeasonTypePlayoffs:
		return SeasonTypePlayoffs, true
	case SeasonTypeAll:
		return SeasonTypeAll, true
	}
	return "", false
}

func (t SeasonType) IncludesRegular() bool {
	return t == SeasonTypeRegular || t == SeasonTypeAll
}

func (t SeasonType) IncludesPlayoffs() bool {
	return t == SeasonTypePlayoffs || t == SeasonTypeAll
}

// StatsMode selects which stat families a request covers.
type StatsMode string

const (
	StatsModeBasic    StatsMode = "basic"
	StatsModeAdvanced StatsMode = "advanced"
	StatsModeAll      StatsMode = "all"
)

func ParseStatsMode(s string) (StatsMode, bool) {
	switch StatsMode(strings.ToLower(strings.TrimSpace(s))) {
	case StatsModeBasic:
		return StatsModeBasic, true
	case StatsModeAdvanced:
		return StatsModeAdvanced, true
	case StatsModeAll:
		return StatsModeAll, true
	}
	return "", false
}

func (m StatsMode) IncludesBasic() bool {
	return m == StatsModeBasic || m == StatsModeAll
}

func (m StatsMode) IncludesAdvanced() bool {
	return m == StatsModeAdvanced || m == StatsModeAll
}

// BasicStats holds the traditional box-score family on a per-game
// basis. A nil field means the value is unknown, which is distinct
// from a recorded zero.
type BasicStats struct {
	GamesPlayed    int      `json:"games_played"`
	GamesStarted   *int     `json:"games_started,omitempty"`
	MinutesPerGame *float64 `json:"minutes_per_game,omitempty"`
	FGMPerGame     *float64 `json:"fgm_per_game,omitempty"`
	FGAPerGame     *float64 `json:"fga_per_game,omitempty"`
	FGPct          *float64 `json:"fg_pct,omitempty"`
	FG3MPerGame    *float64 `json:"fg3m_per_game,omitempty"`
	FG3APerGame    *float64 `json:"fg3a_per_game,omitempty"`
	FG3Pct         *float64 `json:"fg3_pct,omitempty"`
	FTMPerGame     *float64 `json:"ftm_per_game,omitempty"`
	FTAPerGame     *float64 `json:"fta_per_game,omitempty"`
	FTPct          *float64 `json:"ft_pct,omitempty"`
	OrebPerGame    *float64 `json:"oreb_per_game,omitempty"`
	DrebPerGame    *float64 `json:"dreb_per_game,omitempty"`
	RebPerGame     *float64 `json:"reb_per_game,omitempty"`
	AstPerGame     *float64 `json:"ast_per_game,omitempty"`
	StlPerGame     *float64 `json:"stl_per_game,omitempty"`
	BlkPerGame     *float64 `json:"blk_per_game,omitempty"`
	TovPerGame     *float64 `json:"tov_per_game,omitempty"`
	PFPerGame      *float64 `json:"pf_per_game,omitempty"`
	PtsPerGame     *float64 `json:"pts_per_game,omitempty"`
}

// AdvancedStats holds the derived-efficiency family. These arrive
// already rate-based from the provider and pass through untouched.
type AdvancedStats struct {
	OffRating            *float64 `json:"off_rating,omitempty"`
	DefRating            *float64 `json:"def_rating,omitempty"`
	NetRating            *float64 `json:"net_rating,omitempty"`
	AstPct               *float64 `json:"ast_pct,omitempty"`
	AstTo                *float64 `json:"ast_to,omitempty"`
	AstRatio             *float64 `json:"ast_ratio,omitempty"`
	OrebPct              *float64 `json:"oreb_pct,omitempty"`
	DrebPct              *float64 `json:"dreb_pct,omitempty"`
	RebPct               *float64 `json:"reb_pct,omitempty"`
	TmTovPct             *float64 `json:"tm_tov_pct,omitempty"`
	EfgPct               *float64 `json:"efg_pct,omitempty"`
	TrueShootingPct      *float64 `json:"ts_pct,omitempty"`
	UsagePct             *float64 `json:"usg_pct,omitempty"`
	Pace                 *float64 `json:"pace,omitempty"`
	PlayerImpactEstimate *float64 `json:"pie,omitempty"`
	WinShares            *float64 `json:"ws,omitempty"`
}

// SeasonStats is one season line in a player's history.
type SeasonStats struct {
	SeasonID         string         `json:"season_id"`
	TeamAbbreviation string         `json:"team_abbreviation,omitempty"`
	PlayerAge        *float64       `json:"player_age,omitempty"`
	Basic            *BasicStats    `json:"basic_stats"`
	Advanced         *AdvancedStats `json:"advanced_stats"`
}

// CareerStats aggregates a whole partition (regular season or
// playoffs) into a single line.
type CareerStats struct {
	Basic    *BasicStats    `json:"basic_stats"`
	Advanced *AdvancedStats `json:"advanced_stats"`
}

// Summary is the flattened headline view of the player's most recent
// regular season, used by lineup aggregation and recommendations.
type Summary struct {
	SeasonID             string   `json:"season_id"`
	GamesPlayed          int      `json:"games_played"`
	MinutesPerGame       *float64 `json:"minutes_per_game,omitempty"`
	PointsPerGame        *float64 `json:"points_per_game,omitempty"`
	ReboundsPerGame      *float64 `json:"rebounds_per_game,omitempty"`
	AssistsPerGame       *float64 `json:"assists_per_game,omitempty"`
	StealsPerGame        *float64 `json:"steals_per_game,omitempty"`
	BlocksPerGame        *float64 `json:"blocks_per_game,omitempty"`
	TurnoversPerGame     *float64 `json:"turnovers_per_game,omitempty"`
	ThreesMadePerGame    *float64 `json:"fg3m_per_game,omitempty"`
	FieldGoalPct         *float64 `json:"fg_pct,omitempty"`
	ThreePointPct        *float64 `json:"fg3_pct,omitempty"`
	FreeThrowPct         *float64 `json:"ft_pct,omitempty"`
	TrueShootingPct      *float64 `json:"ts_pct,omitempty"`
	UsagePct             *float64 `json:"usg_pct,omitempty"`
	PlayerImpactEstimate *float64 `json:"pie,omitempty"`
	WinShares            *float64 `json:"ws,omitempty"`
}

// Profile is the full normalized view returned for a player. Sections
// outside the requested season type and stats mode stay nil.
type Profile struct {
	PlayerID                 int64         `json:"player_id"`
	PlayerName               string        `json:"player_name"`
	LatestSeasonSummary      *Summary      `json:"latest_season_summary"`
	CareerRegularSeason      *CareerStats  `json:"career_regular_season"`
	CareerPlayoffs           *CareerStats  `json:"career_playoffs"`
	HistoricalRegularSeasons []SeasonStats `json:"historical_regular_seasons"`
	HistoricalPlayoffSeasons []SeasonStats `json:"historical_playoff_seasons"`
}
