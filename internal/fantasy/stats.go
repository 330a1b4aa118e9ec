package fantasy

import (
	"fmt"
	"math"
)

// Derived league statistics. All functions here are pure: they never mutate
// their inputs and are deterministic given normalized entities. Extremal
// fields (highest scorer, closest game, and so on) use strict comparison, so
// the first-encountered record wins ties.

type Record struct {
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	WinPercentage float64 `json:"win_percentage"`
	GamesPlayed   int     `json:"games_played"`
}

type Scoring struct {
	PointsFor         float64 `json:"points_for"`
	PointsAgainst     float64 `json:"points_against"`
	PointDifferential float64 `json:"point_differential"`
	AvgPointsFor      float64 `json:"avg_points_for"`
	AvgPointsAgainst  float64 `json:"avg_points_against"`
}

type Streaks struct {
	CurrentStreak string `json:"current_streak"`
}

type TeamStats struct {
	Record  Record  `json:"record"`
	Scoring Scoring `json:"scoring"`
	Streaks Streaks `json:"streaks"`
}

// CalculateTeamStats derives record and scoring statistics for one team.
// A team with no games played has 0.0 win percentage and zero averages.
func CalculateTeamStats(team Team) TeamStats {
	stats := TeamStats{
		Record: Record{
			Wins:   team.Wins,
			Losses: team.Losses,
		},
		Scoring: Scoring{
			PointsFor:     team.PointsFor,
			PointsAgainst: team.PointsAgainst,
		},
		Streaks: Streaks{
			CurrentStreak: streakLabel(team.StreakType, team.StreakLength),
		},
	}

	gamesPlayed := team.Wins + team.Losses
	stats.Record.GamesPlayed = gamesPlayed
	if gamesPlayed > 0 {
		stats.Record.WinPercentage = round(float64(team.Wins)/float64(gamesPlayed), 3)
		stats.Scoring.AvgPointsFor = round(team.PointsFor/float64(gamesPlayed), 2)
		stats.Scoring.AvgPointsAgainst = round(team.PointsAgainst/float64(gamesPlayed), 2)
	}
	stats.Scoring.PointDifferential = team.PointsFor - team.PointsAgainst

	return stats
}

type ScorerRef struct {
	Name   string  `json:"name"`
	Points float64 `json:"points"`
}

type RosterScoring struct {
	TotalPoints        float64    `json:"total_points"`
	AvgPointsPerPlayer float64    `json:"avg_points_per_player"`
	HighestScorer      *ScorerRef `json:"highest_scorer"`
	LowestScorer       *ScorerRef `json:"lowest_scorer"`
}

type RosterStats struct {
	Positions      map[string]int `json:"positions"`
	TotalPlayers   int            `json:"total_players"`
	InjuredPlayers int            `json:"injured_players"`
	Starters       int            `json:"starters"`
	Bench          int            `json:"bench"`
	Scoring        RosterScoring  `json:"scoring"`
}

// CalculateRosterStats derives composition and scoring statistics for a
// roster. Injured means OUT or INJURED status.
func CalculateRosterStats(roster []Player) RosterStats {
	stats := RosterStats{
		Positions:    make(map[string]int),
		TotalPlayers: len(roster),
	}

	for _, player := range roster {
		pos := player.Position
		if pos == "" {
			pos = "Unknown"
		}
		stats.Positions[pos]++

		if player.InjuryStatus == StatusOut || player.InjuryStatus == StatusInjured {
			stats.InjuredPlayers++
		}
		if player.Starting {
			stats.Starters++
		} else {
			stats.Bench++
		}

		points := player.TotalPoints
		stats.Scoring.TotalPoints += points

		if stats.Scoring.HighestScorer == nil || points > stats.Scoring.HighestScorer.Points {
			stats.Scoring.HighestScorer = &ScorerRef{Name: player.Name, Points: points}
		}
		if stats.Scoring.LowestScorer == nil || points < stats.Scoring.LowestScorer.Points {
			stats.Scoring.LowestScorer = &ScorerRef{Name: player.Name, Points: points}
		}
	}

	if stats.TotalPlayers > 0 {
		stats.Scoring.AvgPointsPerPlayer = round(stats.Scoring.TotalPoints/float64(stats.TotalPlayers), 2)
	}

	return stats
}

type MatchupResult struct {
	HomeTeam          string  `json:"home_team"`
	AwayTeam          string  `json:"away_team"`
	HomeScore         float64 `json:"home_score"`
	AwayScore         float64 `json:"away_score"`
	CombinedScore     float64 `json:"combined_score,omitempty"`
	PointDifferential float64 `json:"point_differential,omitempty"`
}

type MatchupStats struct {
	TotalMatchups      int            `json:"total_matchups"`
	AvgCombinedScore   float64        `json:"avg_combined_score"`
	HighestScoringGame *MatchupResult `json:"highest_scoring_game"`
	ClosestGame        *MatchupResult `json:"closest_game"`
	BiggestBlowout     *MatchupResult `json:"biggest_blowout"`
	HomeWins           int            `json:"home_wins"`
	AwayWins           int            `json:"away_wins"`
}

// CalculateMatchupStats derives extremal and aggregate statistics over a set
// of matchups.
func CalculateMatchupStats(matchups []Matchup) MatchupStats {
	stats := MatchupStats{TotalMatchups: len(matchups)}

	var totalPoints float64
	for _, matchup := range matchups {
		homeScore := matchup.HomeTeam.Score
		var awayScore float64
		var awayName string
		if matchup.AwayTeam != nil {
			awayScore = matchup.AwayTeam.Score
			awayName = matchup.AwayTeam.TeamName
		}

		combined := homeScore + awayScore
		differential := math.Abs(homeScore - awayScore)
		totalPoints += combined

		result := MatchupResult{
			HomeTeam:  matchup.HomeTeam.TeamName,
			AwayTeam:  awayName,
			HomeScore: homeScore,
			AwayScore: awayScore,
		}

		if stats.HighestScoringGame == nil || combined > stats.HighestScoringGame.CombinedScore {
			highest := result
			highest.CombinedScore = combined
			stats.HighestScoringGame = &highest
		}
		if stats.ClosestGame == nil || differential < stats.ClosestGame.PointDifferential {
			closest := result
			closest.PointDifferential = differential
			stats.ClosestGame = &closest
		}
		if stats.BiggestBlowout == nil || differential > stats.BiggestBlowout.PointDifferential {
			blowout := result
			blowout.PointDifferential = differential
			stats.BiggestBlowout = &blowout
		}

		if homeScore > awayScore {
			stats.HomeWins++
		} else {
			stats.AwayWins++
		}
	}

	if stats.TotalMatchups > 0 {
		stats.AvgCombinedScore = round(totalPoints/float64(stats.TotalMatchups), 2)
	}

	return stats
}

type TeamRef struct {
	TeamName string  `json:"team_name"`
	Points   float64 `json:"points,omitempty"`
	Wins     int     `json:"wins,omitempty"`
	Losses   int     `json:"losses,omitempty"`
}

type LeagueScoring struct {
	HighestScoringTeam *TeamRef `json:"highest_scoring_team"`
	LowestScoringTeam  *TeamRef `json:"lowest_scoring_team"`
	AvgPointsPerGame   float64  `json:"avg_points_per_game"`
	TotalPoints        float64  `json:"total_points"`
}

type LeagueStandings struct {
	AvgWins    float64  `json:"avg_wins"`
	AvgLosses  float64  `json:"avg_losses"`
	MostWins   *TeamRef `json:"most_wins"`
	MostLosses *TeamRef `json:"most_losses"`
}

type LeagueStats struct {
	Teams      int             `json:"teams"`
	TotalGames int             `json:"total_games"`
	Scoring    LeagueScoring   `json:"scoring"`
	Standings  LeagueStandings `json:"standings"`
	Matchups   MatchupStats    `json:"matchups"`
}

// CalculateLeagueStats aggregates team records into league-wide totals and
// nests matchup statistics.
func CalculateLeagueStats(teams []Team, matchups []Matchup) LeagueStats {
	stats := LeagueStats{
		Teams:    len(teams),
		Matchups: CalculateMatchupStats(matchups),
	}

	var totalWins, totalLosses int
	for _, team := range teams {
		stats.TotalGames += team.Wins + team.Losses
		totalWins += team.Wins
		totalLosses += team.Losses

		if stats.Scoring.HighestScoringTeam == nil || team.PointsFor > stats.Scoring.HighestScoringTeam.Points {
			stats.Scoring.HighestScoringTeam = &TeamRef{TeamName: team.TeamName, Points: team.PointsFor}
		}
		if stats.Scoring.LowestScoringTeam == nil || team.PointsFor < stats.Scoring.LowestScoringTeam.Points {
			stats.Scoring.LowestScoringTeam = &TeamRef{TeamName: team.TeamName, Points: team.PointsFor}
		}
		if stats.Standings.MostWins == nil || team.Wins > stats.Standings.MostWins.Wins {
			stats.Standings.MostWins = &TeamRef{TeamName: team.TeamName, Wins: team.Wins}
		}
		if stats.Standings.MostLosses == nil || team.Losses > stats.Standings.MostLosses.Losses {
			stats.Standings.MostLosses = &TeamRef{TeamName: team.TeamName, Losses: team.Losses}
		}

		stats.Scoring.TotalPoints += team.PointsFor
	}

	if stats.Teams > 0 {
		stats.Standings.AvgWins = round(float64(totalWins)/float64(stats.Teams), 2)
		stats.Standings.AvgLosses = round(float64(totalLosses)/float64(stats.Teams), 2)
		if stats.TotalGames > 0 {
			stats.Scoring.AvgPointsPerGame = round(stats.Scoring.TotalPoints/float64(stats.TotalGames), 2)
		}
	}

	return stats
}

func streakLabel(streakType string, length int) string {
	if streakType == "" {
		return "N/A"
	}
	return fmt.Sprintf("%s%d", streakType, length)
}

func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
