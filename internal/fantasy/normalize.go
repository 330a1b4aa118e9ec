package fantasy

import (
	"sort"

	"github.com/bmccrea/courtside/internal/espn"
)

// Normalization converts raw provider records into fully-defaulted entities.
// These functions are pure and total: any missing or null field on the raw
// record becomes its zero default, never an error, and the same record always
// normalizes to the same entity regardless of caller.

// NormalizeTeam converts a raw team record.
func NormalizeTeam(rec espn.TeamRecord) Team {
	team := Team{
		TeamID:           rec.ID.Int(),
		TeamName:         espn.Str(rec.Name),
		DivisionID:       rec.DivisionID.Int(),
		DivisionName:     espn.Str(rec.DivisionName),
		Standing:         rec.PlayoffSeed.Int(),
		FinalStanding:    rec.RankCalculatedFinal.Int(),
		WaiverPosition:   rec.WaiverRank.Int(),
		ClinchedPlayoffs: espn.Bool(rec.ClinchedPlayoffs),
		LogoURL:          espn.Str(rec.Logo),
	}

	if rec.Record != nil && rec.Record.Overall != nil {
		o := rec.Record.Overall
		team.Wins = o.Wins.Int()
		team.Losses = o.Losses.Int()
		team.Ties = o.Ties.Int()
		team.PointsFor = o.PointsFor.Float()
		team.PointsAgainst = o.PointsAgainst.Float()
		team.GamesBack = o.GamesBack.Float()
		team.StreakLength = o.StreakLength.Int()
		team.StreakType = espn.Str(o.StreakType)
	}

	if rec.TransactionCounter != nil {
		team.NumberOfMoves = rec.TransactionCounter.Moves.Int()
		team.NumberOfTrades = rec.TransactionCounter.Trades.Int()
		team.RosterMoves = rec.TransactionCounter.RosterMoves.Int()
	}

	if rec.Roster != nil {
		team.Roster = normalizeRoster(rec.Roster)
		team.RosterSize = len(team.Roster)
	}

	for _, item := range rec.Schedule {
		team.Schedule = append(team.Schedule, ScheduleEntry{
			Week:          item.Week.Int(),
			Opponent:      espn.Str(item.Opponent),
			IsHome:        espn.Bool(item.IsHome),
			Score:         item.Score.Float(),
			OpponentScore: item.OpponentScore.Float(),
		})
	}

	return team
}

// NormalizePlayer converts a raw player record, splitting its stat lines into
// season totals, season averages, projections, and the chronological per-game
// sequence.
func NormalizePlayer(rec espn.PlayerRecord) Player {
	player := Player{
		PlayerID:     rec.ID.Int(),
		Name:         espn.Str(rec.FullName),
		Position:     espn.PositionName(rec.DefaultPositionID.Int()),
		ProTeam:      espn.ProTeamAbbrev(rec.ProTeamID.Int()),
		InjuryStatus: espn.Str(rec.InjuryStatus),
	}
	if player.InjuryStatus == "" {
		player.InjuryStatus = StatusUnknown
	}
	if rec.LineupSlotID != nil {
		slot := rec.LineupSlotID.Int()
		player.Starting = espn.IsStartingSlot(slot)
		player.LineupSlot = espn.PositionName(slot)
	}
	if rec.Ownership != nil {
		player.PercentOwned = rec.Ownership.PercentOwned.Float()
		player.PercentStarted = rec.Ownership.PercentStarted.Float()
	}

	var games []gameLine
	for _, line := range rec.Stats {
		source := line.StatSourceID.Int()
		split := line.StatSplitTypeID.Int()
		switch {
		case source == 0 && split == 0:
			// Season to date
			player.TotalPoints = line.AppliedTotal.Float()
			player.AvgPoints = line.AppliedAverage.Float()
			player.TotalStats = statMap(line.Stats)
			player.AverageStats = statMap(line.AverageStats)
		case source == 1 && split == 0:
			player.ProjectedPoints = line.AppliedTotal.Float()
		case source == 0 && split == 1 && line.ScoringPeriodID.Int() > 0:
			games = append(games, gameLine{
				period: line.ScoringPeriodID.Int(),
				stat: GameStat{
					Points:   line.AppliedTotal.Float(),
					Opponent: espn.Str(line.ProOpponent),
					Stats:    statMap(line.Stats),
				},
			})
		}
	}

	sort.SliceStable(games, func(i, j int) bool { return games[i].period < games[j].period })
	for _, g := range games {
		player.GameStats = append(player.GameStats, g.stat)
	}

	return player
}

// NormalizeMatchup converts a raw matchup record. A missing home side still
// yields a zero-valued home team; a missing away side stays nil (bye week).
func NormalizeMatchup(rec espn.MatchupRecord) Matchup {
	matchup := Matchup{MatchupID: rec.ID.Int()}
	if rec.Home != nil {
		matchup.HomeTeam = normalizeSide(rec.Home)
	}
	if rec.Away != nil {
		away := normalizeSide(rec.Away)
		matchup.AwayTeam = &away
	}
	return matchup
}

// NormalizeTransaction converts a raw transaction record.
func NormalizeTransaction(rec espn.TransactionRecord) Transaction {
	return Transaction{
		Type:      espn.Str(rec.Type),
		Team:      espn.Str(rec.TeamName),
		Player:    espn.Str(rec.PlayerName),
		BidAmount: rec.BidAmount.Float(),
		Status:    espn.Str(rec.Status),
		Date:      espn.Str(rec.Date),
	}
}

// NormalizeTeams maps NormalizeTeam over a record slice.
func NormalizeTeams(recs []espn.TeamRecord) []Team {
	teams := make([]Team, 0, len(recs))
	for _, rec := range recs {
		teams = append(teams, NormalizeTeam(rec))
	}
	return teams
}

// NormalizePlayers maps NormalizePlayer over a record slice.
func NormalizePlayers(recs []espn.PlayerRecord) []Player {
	players := make([]Player, 0, len(recs))
	for _, rec := range recs {
		players = append(players, NormalizePlayer(rec))
	}
	return players
}

// NormalizeMatchups maps NormalizeMatchup over a record slice.
func NormalizeMatchups(recs []espn.MatchupRecord) []Matchup {
	matchups := make([]Matchup, 0, len(recs))
	for _, rec := range recs {
		matchups = append(matchups, NormalizeMatchup(rec))
	}
	return matchups
}

// NormalizeTransactions maps NormalizeTransaction over a record slice.
func NormalizeTransactions(recs []espn.TransactionRecord) []Transaction {
	txs := make([]Transaction, 0, len(recs))
	for _, rec := range recs {
		txs = append(txs, NormalizeTransaction(rec))
	}
	return txs
}

type gameLine struct {
	period int
	stat   GameStat
}

func normalizeSide(rec *espn.SideRecord) TeamSide {
	side := TeamSide{
		TeamID:    rec.TeamID.Int(),
		TeamName:  espn.Str(rec.TeamName),
		Score:     rec.TotalPoints.Float(),
		Projected: rec.TotalProjectedPoints.Float(),
	}
	if rec.Roster != nil {
		side.Lineup = normalizeRoster(rec.Roster)
	}
	return side
}

func normalizeRoster(block *espn.RosterBlock) []Player {
	var roster []Player
	for _, entry := range block.Entries {
		if entry.PlayerPoolEntry == nil || entry.PlayerPoolEntry.Player == nil {
			continue
		}
		player := NormalizePlayer(*entry.PlayerPoolEntry.Player)
		if entry.LineupSlotID != nil {
			slot := entry.LineupSlotID.Int()
			player.Starting = espn.IsStartingSlot(slot)
			player.LineupSlot = espn.PositionName(slot)
		}
		roster = append(roster, player)
	}
	return roster
}

func statMap(raw map[string]espn.FlexFloat) map[string]float64 {
	if len(raw) == 0 {
		return nil
	}
	m := make(map[string]float64, len(raw))
	for k, v := range raw {
		m[k] = float64(v)
	}
	return m
}
