package stats

// RawTotals is an accumulated box-score line exactly as the provider
// reports it: counting stats are season (or career) totals, percentage
// fields are already rates. Nil means the provider omitted the field.
type RawTotals struct {
	GamesPlayed  int
	GamesStarted *int
	Minutes      *float64
	FGM          *float64
	FGA          *float64
	FGPct        *float64
	FG3M         *float64
	FG3A         *float64
	FG3Pct       *float64
	FTM          *float64
	FTA          *float64
	FTPct        *float64
	Oreb         *float64
	Dreb         *float64
	Reb          *float64
	Ast          *float64
	Stl          *float64
	Blk          *float64
	Tov          *float64
	PF           *float64
	Pts          *float64
}

// RawSeasonTotals is one season line from the provider.
type RawSeasonTotals struct {
	SeasonID         string
	TeamAbbreviation string
	PlayerAge        *float64
	RawTotals
}

// RawAdvanced is a provider advanced line; all fields are rates.
type RawAdvanced struct {
	OffRating            *float64
	DefRating            *float64
	NetRating            *float64
	AstPct               *float64
	AstTo                *float64
	AstRatio             *float64
	OrebPct              *float64
	DrebPct              *float64
	RebPct               *float64
	TmTovPct             *float64
	EfgPct               *float64
	TrueShootingPct      *float64
	UsagePct             *float64
	Pace                 *float64
	PlayerImpactEstimate *float64
	WinShares            *float64
}

// RawAdvancedSeason is one per-season advanced line.
type RawAdvancedSeason struct {
	SeasonID    string
	GamesPlayed int
	RawAdvanced
}

// RawPlayerData bundles everything fetched for a player in one
// request. Only the partitions matching SeasonType and Mode are
// populated; the rest stay nil.
type RawPlayerData struct {
	PlayerID   int64
	PlayerName string
	SeasonType SeasonType
	Mode       StatsMode

	RegularSeasons []RawSeasonTotals
	RegularCareer  *RawTotals
	PlayoffSeasons []RawSeasonTotals
	PlayoffCareer  *RawTotals

	RegularAdvancedSeasons []RawAdvancedSeason
	RegularAdvancedCareer  *RawAdvanced
	PlayoffAdvancedSeasons []RawAdvancedSeason
	PlayoffAdvancedCareer  *RawAdvanced
}

// HasSeasonRows reports whether any per-season line came back at all.
// A player shell with zero rows is treated as incomplete upstream data.
func (r RawPlayerData) HasSeasonRows() bool {
	return len(r.RegularSeasons) > 0 ||
		len(r.PlayoffSeasons) > 0 ||
		len(r.RegularAdvancedSeasons) > 0 ||
		len(r.PlayoffAdvancedSeasons) > 0
}
