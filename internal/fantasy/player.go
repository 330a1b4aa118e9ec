package fantasy

import "sort"

// Player-level analytics derived from normalized Player records.

type PlayerInfo struct {
	Name         string `json:"name"`
	Position     string `json:"position"`
	ProTeam      string `json:"proTeam"`
	InjuryStatus string `json:"injuryStatus"`
}

type PlayerGameStats struct {
	Total      map[string]float64 `json:"total"`
	Average    map[string]float64 `json:"average"`
	Last5Games []GameStat         `json:"last_5_games"`
	BestGame   *GameStat          `json:"best_game"`
	WorstGame  *GameStat          `json:"worst_game"`
}

type Ownership struct {
	OwnedPercent   float64 `json:"owned_percent"`
	StarterPercent float64 `json:"starter_percent"`
}

type PlayerFantasy struct {
	TotalPoints     float64   `json:"total_points"`
	AvgPoints       float64   `json:"avg_points"`
	ProjectedPoints float64   `json:"projected_points"`
	Ownership       Ownership `json:"ownership"`
}

type PlayerSummary struct {
	Info    PlayerInfo      `json:"info"`
	Stats   PlayerGameStats `json:"stats"`
	Fantasy PlayerFantasy   `json:"fantasy"`
}

// SummarizePlayer derives the detailed per-player view: season totals and
// averages, last five games, and best/worst single-game performances by
// fantasy points.
func SummarizePlayer(player Player) PlayerSummary {
	summary := PlayerSummary{
		Info: PlayerInfo{
			Name:         player.Name,
			Position:     player.Position,
			ProTeam:      player.ProTeam,
			InjuryStatus: player.InjuryStatus,
		},
		Stats: PlayerGameStats{
			Total:   player.TotalStats,
			Average: player.AverageStats,
		},
		Fantasy: PlayerFantasy{
			TotalPoints:     player.TotalPoints,
			AvgPoints:       player.AvgPoints,
			ProjectedPoints: player.ProjectedPoints,
			Ownership: Ownership{
				OwnedPercent:   player.PercentOwned,
				StarterPercent: player.PercentStarted,
			},
		},
	}

	games := player.GameStats
	if len(games) > 5 {
		summary.Stats.Last5Games = games[len(games)-5:]
	} else {
		summary.Stats.Last5Games = games
	}

	if len(games) > 0 {
		best, worst := games[0], games[0]
		for _, g := range games[1:] {
			if g.Points > best.Points {
				best = g
			}
			if g.Points < worst.Points {
				worst = g
			}
		}
		summary.Stats.BestGame = &best
		summary.Stats.WorstGame = &worst
	}

	return summary
}

type StatDiff struct {
	Player1    float64 `json:"player1"`
	Player2    float64 `json:"player2"`
	Difference float64 `json:"difference"`
}

type FantasyComparison struct {
	TotalPoints StatDiff `json:"total_points"`
	AvgPoints   StatDiff `json:"avg_points"`
}

type ComparisonTrends struct {
	Player1Last5 []GameStat `json:"player1"`
	Player2Last5 []GameStat `json:"player2"`
}

type Comparison struct {
	Player1           PlayerInfo          `json:"player1"`
	Player2           PlayerInfo          `json:"player2"`
	StatsComparison   map[string]StatDiff `json:"stats_comparison"`
	FantasyComparison FantasyComparison   `json:"fantasy_comparison"`
	Trends            ComparisonTrends    `json:"trends"`
}

// ComparePlayers computes per-statistic differences between two players.
// Only keys present in player1's average stats are compared; keys that exist
// only for player2 are not iterated. This asymmetry matches product behavior
// and is asserted in tests rather than papered over.
func ComparePlayers(p1, p2 PlayerSummary) Comparison {
	comparison := Comparison{
		Player1:         p1.Info,
		Player2:         p2.Info,
		StatsComparison: make(map[string]StatDiff),
		FantasyComparison: FantasyComparison{
			TotalPoints: StatDiff{
				Player1:    p1.Fantasy.TotalPoints,
				Player2:    p2.Fantasy.TotalPoints,
				Difference: p1.Fantasy.TotalPoints - p2.Fantasy.TotalPoints,
			},
			AvgPoints: StatDiff{
				Player1:    p1.Fantasy.AvgPoints,
				Player2:    p2.Fantasy.AvgPoints,
				Difference: p1.Fantasy.AvgPoints - p2.Fantasy.AvgPoints,
			},
		},
		Trends: ComparisonTrends{
			Player1Last5: p1.Stats.Last5Games,
			Player2Last5: p2.Stats.Last5Games,
		},
	}

	for stat, value := range p1.Stats.Average {
		other := p2.Stats.Average[stat]
		comparison.StatsComparison[stat] = StatDiff{
			Player1:    value,
			Player2:    other,
			Difference: value - other,
		}
	}

	return comparison
}

type Ranking struct {
	Rank         int     `json:"rank"`
	Name         string  `json:"name"`
	Position     string  `json:"position"`
	TotalPoints  float64 `json:"total_points"`
	AvgPoints    float64 `json:"avg_points"`
	Team         string  `json:"team"`
	InjuryStatus string  `json:"injury_status"`
}

// PositionRankings ranks players by total fantasy points, optionally filtered
// to one position. The sort is stable, so tied players keep their input
// order; tied totals share a rank and the following rank skips.
func PositionRankings(players []Player, position string) []Ranking {
	filtered := players
	if position != "" {
		filtered = nil
		for _, p := range players {
			if p.Position == position {
				filtered = append(filtered, p)
			}
		}
	}

	sorted := make([]Player, len(filtered))
	copy(sorted, filtered)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalPoints > sorted[j].TotalPoints
	})

	rankings := make([]Ranking, 0, len(sorted))
	for i, player := range sorted {
		rank := i + 1
		if i > 0 && player.TotalPoints == sorted[i-1].TotalPoints {
			rank = rankings[i-1].Rank
		}
		rankings = append(rankings, Ranking{
			Rank:         rank,
			Name:         player.Name,
			Position:     player.Position,
			TotalPoints:  player.TotalPoints,
			AvgPoints:    player.AvgPoints,
			Team:         player.ProTeam,
			InjuryStatus: player.InjuryStatus,
		})
	}
	return rankings
}

const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

type ScoringTrend struct {
	Trend             string  `json:"trend"`
	AvgLastNWeeks     float64 `json:"avg_last_n_weeks"`
	AvgPreviousNWeeks float64 `json:"avg_previous_n_weeks"`
	ChangePercentage  float64 `json:"change_percentage"`
}

type Trends struct {
	Scoring ScoringTrend `json:"scoring"`
}

// PlayerTrends compares the mean of the most recent window against the mean
// of the window before it. With fewer than 2×weeks games the zeroed "stable"
// default is returned; that is a documented degenerate case, not an error.
func PlayerTrends(player Player, weeks int) Trends {
	trends := Trends{Scoring: ScoringTrend{Trend: TrendStable}}

	games := player.GameStats
	if weeks <= 0 || len(games) < weeks*2 {
		return trends
	}

	recent := games[len(games)-weeks:]
	previous := games[len(games)-weeks*2 : len(games)-weeks]

	recentAvg := meanPoints(recent)
	previousAvg := meanPoints(previous)

	trends.Scoring.AvgLastNWeeks = round(recentAvg, 2)
	trends.Scoring.AvgPreviousNWeeks = round(previousAvg, 2)

	switch {
	case recentAvg >= previousAvg*1.1:
		trends.Scoring.Trend = TrendUp
	case recentAvg <= previousAvg*0.9:
		trends.Scoring.Trend = TrendDown
	}

	if previousAvg > 0 {
		trends.Scoring.ChangePercentage = round((recentAvg-previousAvg)/previousAvg*100, 1)
	}

	return trends
}

const (
	RatingFavorable   = "favorable"
	RatingNeutral     = "neutral"
	RatingUnfavorable = "unfavorable"
)

type HistoricalPerformance struct {
	AvgPoints        float64   `json:"avg_points"`
	GamesPlayed      int       `json:"games_played"`
	BestPerformance  *GameStat `json:"best_performance"`
	WorstPerformance *GameStat `json:"worst_performance"`
}

type MatchupAnalysis struct {
	HistoricalPerformance HistoricalPerformance `json:"historical_performance"`
	MatchupRating         string                `json:"matchup_rating"`
}

// AnalyzeMatchup rates a player against an opponent's pro team based on the
// player's history versus that team. No prior games yields the zeroed
// "neutral" default.
func AnalyzeMatchup(player Player, opponent Player) MatchupAnalysis {
	analysis := MatchupAnalysis{MatchupRating: RatingNeutral}

	var vsOpponent []GameStat
	for _, game := range player.GameStats {
		if game.Opponent != "" && game.Opponent == opponent.ProTeam {
			vsOpponent = append(vsOpponent, game)
		}
	}
	if len(vsOpponent) == 0 {
		return analysis
	}

	analysis.HistoricalPerformance.GamesPlayed = len(vsOpponent)
	avgVsOpponent := meanPoints(vsOpponent)
	analysis.HistoricalPerformance.AvgPoints = round(avgVsOpponent, 2)

	best, worst := vsOpponent[0], vsOpponent[0]
	for _, g := range vsOpponent[1:] {
		if g.Points > best.Points {
			best = g
		}
		if g.Points < worst.Points {
			worst = g
		}
	}
	analysis.HistoricalPerformance.BestPerformance = &best
	analysis.HistoricalPerformance.WorstPerformance = &worst

	overall := player.AvgPoints
	switch {
	case avgVsOpponent >= overall*1.1:
		analysis.MatchupRating = RatingFavorable
	case avgVsOpponent <= overall*0.9:
		analysis.MatchupRating = RatingUnfavorable
	}

	return analysis
}

type HotColdPlayers struct {
	HotPlayers  []Player `json:"hot_players"`
	ColdPlayers []Player `json:"cold_players"`
}

// HotCold returns the top and bottom n players by total fantasy points.
func HotCold(players []Player, n int) HotColdPlayers {
	if n <= 0 {
		n = 10
	}

	byPoints := make([]Player, len(players))
	copy(byPoints, players)
	sort.SliceStable(byPoints, func(i, j int) bool {
		return byPoints[i].TotalPoints > byPoints[j].TotalPoints
	})

	result := HotColdPlayers{}
	if len(byPoints) < n {
		n = len(byPoints)
	}
	result.HotPlayers = append(result.HotPlayers, byPoints[:n]...)
	for i := 0; i < n; i++ {
		result.ColdPlayers = append(result.ColdPlayers, byPoints[len(byPoints)-1-i])
	}
	return result
}

func meanPoints(games []GameStat) float64 {
	if len(games) == 0 {
		return 0
	}
	var sum float64
	for _, g := range games {
		sum += g.Points
	}
	return sum / float64(len(games))
}
