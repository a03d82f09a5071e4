package nbastats

import (
	"github.com/courtflow/nba-stats-api/internal/domain/stats"
)

// Wire models for the stats provider. Field keys follow the provider's
// result-set vocabulary (GP, FG3M, TS_PCT, ...). Pointer fields stay
// nil when the provider reports null, and that absence is preserved
// through mapping.

type playersEnvelope struct {
	Players []playerItem `json:"players"`
}

type playerItem struct {
	ID       int64  `json:"id"`
	FullName string `json:"full_name"`
	IsActive bool   `json:"is_active"`
}

type totalsItem struct {
	GP     int      `json:"GP"`
	GS     *int     `json:"GS"`
	Min    *float64 `json:"MIN"`
	FGM    *float64 `json:"FGM"`
	FGA    *float64 `json:"FGA"`
	FGPct  *float64 `json:"FG_PCT"`
	FG3M   *float64 `json:"FG3M"`
	FG3A   *float64 `json:"FG3A"`
	FG3Pct *float64 `json:"FG3_PCT"`
	FTM    *float64 `json:"FTM"`
	FTA    *float64 `json:"FTA"`
	FTPct  *float64 `json:"FT_PCT"`
	Oreb   *float64 `json:"OREB"`
	Dreb   *float64 `json:"DREB"`
	Reb    *float64 `json:"REB"`
	Ast    *float64 `json:"AST"`
	Stl    *float64 `json:"STL"`
	Blk    *float64 `json:"BLK"`
	Tov    *float64 `json:"TOV"`
	PF     *float64 `json:"PF"`
	Pts    *float64 `json:"PTS"`
}

type seasonTotalsItem struct {
	SeasonID         string   `json:"SEASON_ID"`
	TeamAbbreviation string   `json:"TEAM_ABBREVIATION"`
	PlayerAge        *float64 `json:"PLAYER_AGE"`
	totalsItem
}

type seasonTotalsEnvelope struct {
	PlayerID int64              `json:"player_id"`
	Seasons  []seasonTotalsItem `json:"seasons"`
}

type careerEnvelope struct {
	PlayerID int64       `json:"player_id"`
	Totals   *totalsItem `json:"totals"`
}

type advancedItem struct {
	OffRating *float64 `json:"OFF_RATING"`
	DefRating *float64 `json:"DEF_RATING"`
	NetRating *float64 `json:"NET_RATING"`
	AstPct    *float64 `json:"AST_PCT"`
	AstTo     *float64 `json:"AST_TO"`
	AstRatio  *float64 `json:"AST_RATIO"`
	OrebPct   *float64 `json:"OREB_PCT"`
	DrebPct   *float64 `json:"DREB_PCT"`
	RebPct    *float64 `json:"REB_PCT"`
	TmTovPct  *float64 `json:"TM_TOV_PCT"`
	EfgPct    *float64 `json:"EFG_PCT"`
	TsPct     *float64 `json:"TS_PCT"`
	UsgPct    *float64 `json:"USG_PCT"`
	Pace      *float64 `json:"PACE"`
	PIE       *float64 `json:"PIE"`
	WS        *float64 `json:"WS"`
}

type advancedSeasonItem struct {
	SeasonID string `json:"SEASON_ID"`
	GP       int    `json:"GP"`
	advancedItem
}

type advancedEnvelope struct {
	PlayerID int64                `json:"player_id"`
	Seasons  []advancedSeasonItem `json:"seasons"`
	Career   *advancedItem        `json:"career"`
}

func mapTotals(item totalsItem) stats.RawTotals {
	return stats.RawTotals{
		GamesPlayed:  item.GP,
		GamesStarted: item.GS,
		Minutes:      item.Min,
		FGM:          item.FGM,
		FGA:          item.FGA,
		FGPct:        item.FGPct,
		FG3M:         item.FG3M,
		FG3A:         item.FG3A,
		FG3Pct:       item.FG3Pct,
		FTM:          item.FTM,
		FTA:          item.FTA,
		FTPct:        item.FTPct,
		Oreb:         item.Oreb,
		Dreb:         item.Dreb,
		Reb:          item.Reb,
		Ast:          item.Ast,
		Stl:          item.Stl,
		Blk:          item.Blk,
		Tov:          item.Tov,
		PF:           item.PF,
		Pts:          item.Pts,
	}
}

func mapSeasonTotals(item seasonTotalsItem) stats.RawSeasonTotals {
	return stats.RawSeasonTotals{
		SeasonID:         item.SeasonID,
		TeamAbbreviation: item.TeamAbbreviation,
		PlayerAge:        item.PlayerAge,
		RawTotals:        mapTotals(item.totalsItem),
	}
}

func mapAdvanced(item advancedItem) stats.RawAdvanced {
	return stats.RawAdvanced{
		OffRating:            item.OffRating,
		DefRating:            item.DefRating,
		NetRating:            item.NetRating,
		AstPct:               item.AstPct,
		AstTo:                item.AstTo,
		AstRatio:             item.AstRatio,
		OrebPct:              item.OrebPct,
		DrebPct:              item.DrebPct,
		RebPct:               item.RebPct,
		TmTovPct:             item.TmTovPct,
		EfgPct:               item.EfgPct,
		TrueShootingPct:      item.TsPct,
		UsagePct:             item.UsgPct,
		Pace:                 item.Pace,
		PlayerImpactEstimate: item.PIE,
		WinShares:            item.WS,
	}
}

func mapAdvancedSeason(item advancedSeasonItem) stats.RawAdvancedSeason {
	return stats.RawAdvancedSeason{
		SeasonID:    item.SeasonID,
		GamesPlayed: item.GP,
		RawAdvanced: mapAdvanced(item.advancedItem),
	}
}
