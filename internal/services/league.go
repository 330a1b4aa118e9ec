package services

import (
	"context"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bmccrea/courtside/internal/espn"
	"github.com/bmccrea/courtside/internal/fantasy"
)

// Gateway is the provider surface the league service needs. *espn.Client
// satisfies it; tests substitute a stub.
type Gateway interface {
	LeagueName() string
	CurrentWeek() int
	Standings(ctx context.Context) ([]espn.TeamRecord, error)
	Teams(ctx context.Context) ([]espn.TeamRecord, error)
	Team(ctx context.Context, teamID int) (*espn.TeamRecord, error)
	Scoreboard(ctx context.Context, week int) ([]espn.MatchupRecord, error)
	BoxScores(ctx context.Context, week int) ([]espn.MatchupRecord, error)
	FreeAgents(ctx context.Context, position string, size int) ([]espn.PlayerRecord, error)
	Players(ctx context.Context, playerIDs []int) ([]espn.PlayerRecord, error)
	PlayerByName(ctx context.Context, name string) (*espn.PlayerRecord, error)
	Transactions(ctx context.Context, scoringPeriod int, types []string) ([]espn.TransactionRecord, error)
}

// Cache is the subset of CacheService the league service uses. A nil Cache
// disables caching.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// LeagueService is the seam between the provider gateway and the adapters:
// it fetches raw records, normalizes them, and derives statistics. Both the
// REST handlers and the bot commands call through here.
type LeagueService struct {
	gateway  Gateway
	cache    Cache
	logger   *logrus.Logger
	cacheTTL time.Duration
}

func NewLeagueService(gateway Gateway, cache Cache, logger *logrus.Logger, cacheTTL time.Duration) *LeagueService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &LeagueService{
		gateway:  gateway,
		cache:    cache,
		logger:   logger,
		cacheTTL: cacheTTL,
	}
}

// LeagueName returns the league display name.
func (s *LeagueService) LeagueName() string { return s.gateway.LeagueName() }

// CurrentWeek returns the current matchup period.
func (s *LeagueService) CurrentWeek() int { return s.gateway.CurrentWeek() }

// Standings returns teams sorted by wins then points-for, best first,
// optionally filtered to one division. divisionID < 0 means no filter.
func (s *LeagueService) Standings(ctx context.Context, divisionID int) ([]fantasy.Team, error) {
	var teams []fantasy.Team
	if !s.cacheRead(ctx, StandingsCacheKey(), &teams) {
		records, err := s.gateway.Standings(ctx)
		if err != nil {
			return nil, err
		}
		teams = fantasy.NormalizeTeams(records)
		s.cacheWrite(ctx, StandingsCacheKey(), teams)
	}

	if divisionID >= 0 {
		filtered := teams[:0:0]
		for _, t := range teams {
			if t.DivisionID == divisionID {
				filtered = append(filtered, t)
			}
		}
		teams = filtered
	}

	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].Wins != teams[j].Wins {
			return teams[i].Wins > teams[j].Wins
		}
		return teams[i].PointsFor > teams[j].PointsFor
	})
	return teams, nil
}

// Teams returns all teams with rosters, sorted by standing, optionally
// filtered to one division. divisionID < 0 means no filter.
func (s *LeagueService) Teams(ctx context.Context, divisionID int) ([]fantasy.Team, error) {
	var teams []fantasy.Team
	if !s.cacheRead(ctx, TeamsCacheKey(), &teams) {
		records, err := s.gateway.Teams(ctx)
		if err != nil {
			return nil, err
		}
		teams = fantasy.NormalizeTeams(records)
		s.cacheWrite(ctx, TeamsCacheKey(), teams)
	}

	if divisionID >= 0 {
		filtered := teams[:0:0]
		for _, t := range teams {
			if t.DivisionID == divisionID {
				filtered = append(filtered, t)
			}
		}
		teams = filtered
	}

	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].Standing < teams[j].Standing
	})
	return teams, nil
}

// Team returns one team with roster and schedule.
func (s *LeagueService) Team(ctx context.Context, teamID int) (*fantasy.Team, error) {
	var team fantasy.Team
	if s.cacheRead(ctx, TeamCacheKey(teamID), &team) {
		return &team, nil
	}

	record, err := s.gateway.Team(ctx, teamID)
	if err != nil {
		return nil, err
	}
	team = fantasy.NormalizeTeam(*record)
	s.cacheWrite(ctx, TeamCacheKey(teamID), team)
	return &team, nil
}

// Scoreboard returns normalized matchups for a week (0 = current).
func (s *LeagueService) Scoreboard(ctx context.Context, week int) ([]fantasy.Matchup, error) {
	var matchups []fantasy.Matchup
	if s.cacheRead(ctx, ScoreboardCacheKey(week), &matchups) {
		return matchups, nil
	}

	records, err := s.gateway.Scoreboard(ctx, week)
	if err != nil {
		return nil, err
	}
	matchups = fantasy.NormalizeMatchups(records)
	s.cacheWrite(ctx, ScoreboardCacheKey(week), matchups)
	return matchups, nil
}

// BoxScores returns matchups with lineups for a week (0 = current).
func (s *LeagueService) BoxScores(ctx context.Context, week int) ([]fantasy.Matchup, error) {
	var matchups []fantasy.Matchup
	if s.cacheRead(ctx, BoxScoresCacheKey(week), &matchups) {
		return matchups, nil
	}

	records, err := s.gateway.BoxScores(ctx, week)
	if err != nil {
		return nil, err
	}
	matchups = fantasy.NormalizeMatchups(records)
	s.cacheWrite(ctx, BoxScoresCacheKey(week), matchups)
	return matchups, nil
}

// FreeAgents returns available players, optionally filtered by position.
func (s *LeagueService) FreeAgents(ctx context.Context, position string, size int) ([]fantasy.Player, error) {
	var players []fantasy.Player
	if s.cacheRead(ctx, FreeAgentsCacheKey(position, size), &players) {
		return players, nil
	}

	records, err := s.gateway.FreeAgents(ctx, position, size)
	if err != nil {
		return nil, err
	}
	players = fantasy.NormalizePlayers(records)
	s.cacheWrite(ctx, FreeAgentsCacheKey(position, size), players)
	return players, nil
}

// Transactions returns league transactions filtered by scoring period and
// type set.
func (s *LeagueService) Transactions(ctx context.Context, scoringPeriod int, types []string) ([]fantasy.Transaction, error) {
	records, err := s.gateway.Transactions(ctx, scoringPeriod, types)
	if err != nil {
		return nil, err
	}
	return fantasy.NormalizeTransactions(records), nil
}

// Player returns a single normalized player.
func (s *LeagueService) Player(ctx context.Context, playerID int) (*fantasy.Player, error) {
	records, err := s.gateway.Players(ctx, []int{playerID})
	if err != nil {
		return nil, err
	}
	player := fantasy.NormalizePlayer(records[0])
	return &player, nil
}

// PlayerByName returns a single normalized player located by name.
func (s *LeagueService) PlayerByName(ctx context.Context, name string) (*fantasy.Player, error) {
	record, err := s.gateway.PlayerByName(ctx, name)
	if err != nil {
		return nil, err
	}
	player := fantasy.NormalizePlayer(*record)
	return &player, nil
}

// PlayerSummary returns the derived per-player view.
func (s *LeagueService) PlayerSummary(ctx context.Context, playerID int) (fantasy.PlayerSummary, error) {
	player, err := s.Player(ctx, playerID)
	if err != nil {
		return fantasy.PlayerSummary{}, err
	}
	return fantasy.SummarizePlayer(*player), nil
}

// ComparePlayers fetches both players and compares them.
func (s *LeagueService) ComparePlayers(ctx context.Context, player1ID, player2ID int) (fantasy.Comparison, error) {
	records, err := s.gateway.Players(ctx, []int{player1ID, player2ID})
	if err != nil {
		return fantasy.Comparison{}, err
	}
	p1 := fantasy.SummarizePlayer(fantasy.NormalizePlayer(records[0]))
	p2 := fantasy.SummarizePlayer(fantasy.NormalizePlayer(records[1]))
	return fantasy.ComparePlayers(p1, p2), nil
}

// Rankings ranks all rostered players, optionally filtered by position.
func (s *LeagueService) Rankings(ctx context.Context, position string) ([]fantasy.Ranking, error) {
	players, err := s.rosteredPlayers(ctx)
	if err != nil {
		return nil, err
	}
	return fantasy.PositionRankings(players, position), nil
}

// HotCold returns the hottest and coldest rostered players.
func (s *LeagueService) HotCold(ctx context.Context, n int) (fantasy.HotColdPlayers, error) {
	players, err := s.rosteredPlayers(ctx)
	if err != nil {
		return fantasy.HotColdPlayers{}, err
	}
	return fantasy.HotCold(players, n), nil
}

// TeamStats derives record/scoring statistics for one team.
func (s *LeagueService) TeamStats(ctx context.Context, teamID int) (fantasy.TeamStats, error) {
	team, err := s.Team(ctx, teamID)
	if err != nil {
		return fantasy.TeamStats{}, err
	}
	return fantasy.CalculateTeamStats(*team), nil
}

// RosterStats derives roster composition statistics for one team.
func (s *LeagueService) RosterStats(ctx context.Context, teamID int) (fantasy.RosterStats, error) {
	team, err := s.Team(ctx, teamID)
	if err != nil {
		return fantasy.RosterStats{}, err
	}
	return fantasy.CalculateRosterStats(team.Roster), nil
}

// MatchupStats derives matchup statistics for a week's scoreboard.
func (s *LeagueService) MatchupStats(ctx context.Context, week int) (fantasy.MatchupStats, error) {
	matchups, err := s.Scoreboard(ctx, week)
	if err != nil {
		return fantasy.MatchupStats{}, err
	}
	return fantasy.CalculateMatchupStats(matchups), nil
}

// LeagueStats derives league-wide statistics from standings and the current
// scoreboard.
func (s *LeagueService) LeagueStats(ctx context.Context) (fantasy.LeagueStats, error) {
	teams, err := s.Standings(ctx, -1)
	if err != nil {
		return fantasy.LeagueStats{}, err
	}
	matchups, err := s.Scoreboard(ctx, 0)
	if err != nil {
		return fantasy.LeagueStats{}, err
	}
	return fantasy.CalculateLeagueStats(teams, matchups), nil
}

// PlayerTrends derives the recent-form trend for one player.
func (s *LeagueService) PlayerTrends(ctx context.Context, playerID, weeks int) (fantasy.Trends, error) {
	player, err := s.Player(ctx, playerID)
	if err != nil {
		return fantasy.Trends{}, err
	}
	return fantasy.PlayerTrends(*player, weeks), nil
}

// MatchupFit rates a player against another player's pro team.
func (s *LeagueService) MatchupFit(ctx context.Context, playerID, opponentID int) (fantasy.MatchupAnalysis, error) {
	records, err := s.gateway.Players(ctx, []int{playerID, opponentID})
	if err != nil {
		return fantasy.MatchupAnalysis{}, err
	}
	player := fantasy.NormalizePlayer(records[0])
	opponent := fantasy.NormalizePlayer(records[1])
	return fantasy.AnalyzeMatchup(player, opponent), nil
}

func (s *LeagueService) rosteredPlayers(ctx context.Context) ([]fantasy.Player, error) {
	teams, err := s.Teams(ctx, -1)
	if err != nil {
		return nil, err
	}
	var players []fantasy.Player
	for _, team := range teams {
		players = append(players, team.Roster...)
	}
	return players, nil
}

func (s *LeagueService) cacheRead(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	return s.cache.Get(ctx, key, dest) == nil
}

func (s *LeagueService) cacheWrite(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil && s.logger != nil {
		s.logger.WithError(err).WithField("key", key).Warn("Cache write failed")
	}
}
