package stats

import "sort"

// NormalizeProfile converts raw provider totals into the per-game
// profile shape. It is a pure transformation: no I/O, no mutation of
// the input, and it never divides by a zero games-played count; a
// per-game value whose inputs are missing simply stays absent.
func NormalizeProfile(raw RawPlayerData) Profile {
	p := Profile{
		PlayerID:   raw.PlayerID,
		PlayerName: raw.PlayerName,
	}

	if raw.SeasonType.IncludesRegular() {
		p.HistoricalRegularSeasons = mergeSeasons(raw.RegularSeasons, raw.RegularAdvancedSeasons, raw.Mode)
		p.CareerRegularSeason = careerStats(raw.RegularCareer, raw.RegularAdvancedCareer, raw.Mode)
		p.LatestSeasonSummary = latestRegularSummary(raw)
	}
	if raw.SeasonType.IncludesPlayoffs() {
		p.HistoricalPlayoffSeasons = mergeSeasons(raw.PlayoffSeasons, raw.PlayoffAdvancedSeasons, raw.Mode)
		p.CareerPlayoffs = careerStats(raw.PlayoffCareer, raw.PlayoffAdvancedCareer, raw.Mode)
	}

	return p
}

// mergeSeasons joins basic and advanced lines by season id and returns
// them in ascending season order regardless of provider ordering.
func mergeSeasons(basic []RawSeasonTotals, advanced []RawAdvancedSeason, mode StatsMode) []SeasonStats {
	merged := make(map[string]*SeasonStats)

	if mode.IncludesBasic() {
		for _, row := range basic {
			if row.SeasonID == "" {
				continue
			}
			season := seasonEntry(merged, row.SeasonID)
			season.TeamAbbreviation = row.TeamAbbreviation
			season.PlayerAge = copyFloat(row.PlayerAge)
			season.Basic = basicPerGame(row.RawTotals)
		}
	}
	if mode.IncludesAdvanced() {
		for _, row := range advanced {
			if row.SeasonID == "" {
				continue
			}
			season := seasonEntry(merged, row.SeasonID)
			season.Advanced = advancedStats(row.RawAdvanced)
		}
	}

	if len(merged) == 0 {
		return nil
	}

	out := make([]SeasonStats, 0, len(merged))
	for _, season := range merged {
		out = append(out, *season)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SeasonID < out[j].SeasonID })

	return out
}

func seasonEntry(merged map[string]*SeasonStats, seasonID string) *SeasonStats {
	if season, ok := merged[seasonID]; ok {
		return season
	}
	season := &SeasonStats{SeasonID: seasonID}
	merged[seasonID] = season
	return season
}

func careerStats(basic *RawTotals, advanced *RawAdvanced, mode StatsMode) *CareerStats {
	career := &CareerStats{}
	if mode.IncludesBasic() && basic != nil {
		career.Basic = basicPerGame(*basic)
	}
	if mode.IncludesAdvanced() && advanced != nil {
		career.Advanced = advancedStats(*advanced)
	}
	if career.Basic == nil && career.Advanced == nil {
		return nil
	}
	return career
}

// latestRegularSummary flattens the most recent regular season, chosen
// by greatest season id, into the headline summary. Season ids sort
// lexicographically ("2023-24" > "2009-10"), so string ordering is
// chronological.
func latestRegularSummary(raw RawPlayerData) *Summary {
	latestID := ""
	if raw.Mode.IncludesBasic() {
		for _, row := range raw.RegularSeasons {
			if row.SeasonID > latestID {
				latestID = row.SeasonID
			}
		}
	}
	if raw.Mode.IncludesAdvanced() {
		for _, row := range raw.RegularAdvancedSeasons {
			if row.SeasonID > latestID {
				latestID = row.SeasonID
			}
		}
	}
	if latestID == "" {
		return nil
	}

	summary := &Summary{SeasonID: latestID}

	if raw.Mode.IncludesBasic() {
		for _, row := range raw.RegularSeasons {
			if row.SeasonID != latestID {
				continue
			}
			basic := basicPerGame(row.RawTotals)
			summary.GamesPlayed = basic.GamesPlayed
			summary.MinutesPerGame = basic.MinutesPerGame
			summary.PointsPerGame = basic.PtsPerGame
			summary.ReboundsPerGame = basic.RebPerGame
			summary.AssistsPerGame = basic.AstPerGame
			summary.StealsPerGame = basic.StlPerGame
			summary.BlocksPerGame = basic.BlkPerGame
			summary.TurnoversPerGame = basic.TovPerGame
			summary.ThreesMadePerGame = basic.FG3MPerGame
			summary.FieldGoalPct = basic.FGPct
			summary.ThreePointPct = basic.FG3Pct
			summary.FreeThrowPct = basic.FTPct
			break
		}
	}
	if raw.Mode.IncludesAdvanced() {
		for _, row := range raw.RegularAdvancedSeasons {
			if row.SeasonID != latestID {
				continue
			}
			if summary.GamesPlayed == 0 {
				summary.GamesPlayed = row.GamesPlayed
			}
			summary.TrueShootingPct = copyFloat(row.TrueShootingPct)
			summary.UsagePct = copyFloat(row.UsagePct)
			summary.PlayerImpactEstimate = copyFloat(row.PlayerImpactEstimate)
			summary.WinShares = copyFloat(row.WinShares)
			break
		}
	}

	return summary
}

func basicPerGame(rt RawTotals) *BasicStats {
	gp := rt.GamesPlayed
	return &BasicStats{
		GamesPlayed:    gp,
		GamesStarted:   copyInt(rt.GamesStarted),
		MinutesPerGame: perGame(rt.Minutes, gp),
		FGMPerGame:     perGame(rt.FGM, gp),
		FGAPerGame:     perGame(rt.FGA, gp),
		FGPct:          copyFloat(rt.FGPct),
		FG3MPerGame:    perGame(rt.FG3M, gp),
		FG3APerGame:    perGame(rt.FG3A, gp),
		FG3Pct:         copyFloat(rt.FG3Pct),
		FTMPerGame:     perGame(rt.FTM, gp),
		FTAPerGame:     perGame(rt.FTA, gp),
		FTPct:          copyFloat(rt.FTPct),
		OrebPerGame:    perGame(rt.Oreb, gp),
		DrebPerGame:    perGame(rt.Dreb, gp),
		RebPerGame:     perGame(rt.Reb, gp),
		AstPerGame:     perGame(rt.Ast, gp),
		StlPerGame:     perGame(rt.Stl, gp),
		BlkPerGame:     perGame(rt.Blk, gp),
		TovPerGame:     perGame(rt.Tov, gp),
		PFPerGame:      perGame(rt.PF, gp),
		PtsPerGame:     perGame(rt.Pts, gp),
	}
}

func advancedStats(ra RawAdvanced) *AdvancedStats {
	return &AdvancedStats{
		OffRating:            copyFloat(ra.OffRating),
		DefRating:            copyFloat(ra.DefRating),
		NetRating:            copyFloat(ra.NetRating),
		AstPct:               copyFloat(ra.AstPct),
		AstTo:                copyFloat(ra.AstTo),
		AstRatio:             copyFloat(ra.AstRatio),
		OrebPct:              copyFloat(ra.OrebPct),
		DrebPct:              copyFloat(ra.DrebPct),
		RebPct:               copyFloat(ra.RebPct),
		TmTovPct:             copyFloat(ra.TmTovPct),
		EfgPct:               copyFloat(ra.EfgPct),
		TrueShootingPct:      copyFloat(ra.TrueShootingPct),
		UsagePct:             copyFloat(ra.UsagePct),
		Pace:                 copyFloat(ra.Pace),
		PlayerImpactEstimate: copyFloat(ra.PlayerImpactEstimate),
		WinShares:            copyFloat(ra.WinShares),
	}
}

// perGame divides a season total by games played. With no games or no
// total the value is unknown, not zero.
func perGame(total *float64, gamesPlayed int) *float64 {
	if total == nil || gamesPlayed <= 0 {
		return nil
	}
	v := *total / float64(gamesPlayed)
	return &v
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func copyInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
