package espn_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmccrea/courtside/internal/espn"
)

const settingsBody = `{
	"settings": {
		"name": "Test League",
		"scheduleSettings": {
			"divisions": [
				{"id": 0, "name": "East"},
				{"id": 1, "name": "West"}
			]
		}
	},
	"status": {"currentMatchupPeriod": 5, "latestScoringPeriod": 32}
}`

// newTestClient starts a provider stub and opens a session against it. The
// stub always answers the init settings fetch; other views go through the
// supplied handler.
func newTestClient(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) *espn.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		views := r.URL.Query()["view"]
		if len(views) == 1 && views[0] == "mSettings" {
			io.WriteString(w, settingsBody)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	client, err := espn.New(espn.Config{
		LeagueID:  12345,
		Season:    2026,
		BaseURL:   server.URL,
		RateLimit: 1000,
		Logger:    logger,
	})
	require.NoError(t, err)
	return client
}

func TestNew_InitializesLeagueSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s", r.URL)
	})

	assert.Equal(t, "Test League", client.LeagueName())
	assert.Equal(t, 5, client.CurrentWeek())
	assert.Equal(t, "West", client.DivisionName(1))
}

func TestNew_UnreachableProviderIsFatal(t *testing.T) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	_, err := espn.New(espn.Config{
		LeagueID: 12345,
		Season:   2026,
		BaseURL:  "http://127.0.0.1:1",
		Logger:   logger,
	})
	assert.Error(t, err)
}

func TestStandings_SortedBySeed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{
			"teams": [
				{"id": 1, "name": "Second", "playoffSeed": 2, "divisionId": 0},
				{"id": 2, "name": "First", "playoffSeed": 1, "divisionId": 1}
			]
		}`)
	})

	teams, err := client.Standings(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 2)

	assert.Equal(t, "First", espn.Str(teams[0].Name))
	assert.Equal(t, "Second", espn.Str(teams[1].Name))
	assert.Equal(t, "West", espn.Str(teams[0].DivisionName), "division names resolve from settings")
}

func TestTeam_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"teams": [{"id": 1, "name": "Only"}]}`)
	})

	_, err := client.Team(context.Background(), 99)
	assert.ErrorIs(t, err, espn.ErrNotFound)
}

func TestTeam_BuildsSchedule(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{
			"teams": [
				{"id": 1, "name": "Us"},
				{"id": 2, "name": "Them"}
			],
			"schedule": [
				{"id": 10, "matchupPeriodId": 2, "home": {"teamId": 2, "totalPoints": 90}, "away": {"teamId": 1, "totalPoints": 100}},
				{"id": 11, "matchupPeriodId": 1, "home": {"teamId": 1, "totalPoints": 105}, "away": {"teamId": 2, "totalPoints": 95}}
			]
		}`)
	})

	team, err := client.Team(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, team.Schedule, 2)

	// Chronological, with home/away orientation per entry.
	first := team.Schedule[0]
	assert.Equal(t, 1, first.Week.Int())
	assert.True(t, espn.Bool(first.IsHome))
	assert.Equal(t, 105.0, first.Score.Float())
	assert.Equal(t, "Them", espn.Str(first.Opponent))

	second := team.Schedule[1]
	assert.Equal(t, 2, second.Week.Int())
	assert.False(t, espn.Bool(second.IsHome))
	assert.Equal(t, 100.0, second.Score.Float())
	assert.Equal(t, 90.0, second.OpponentScore.Float())
}

func TestScoreboard_FiltersWeekAndResolvesNames(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{
			"teams": [
				{"id": 1, "name": "Alpha"},
				{"id": 2, "name": "Beta"}
			],
			"status": {"currentMatchupPeriod": 5},
			"schedule": [
				{"id": 20, "matchupPeriodId": 4, "home": {"teamId": 1}, "away": {"teamId": 2}},
				{"id": 21, "matchupPeriodId": 5, "home": {"teamId": 2, "totalPoints": 110}, "away": {"teamId": 1, "totalPoints": 99}}
			]
		}`)
	})

	// Week 0 means the current matchup period.
	matchups, err := client.Scoreboard(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, matchups, 1)

	assert.Equal(t, 21, matchups[0].ID.Int())
	require.NotNil(t, matchups[0].Home)
	assert.Equal(t, "Beta", espn.Str(matchups[0].Home.TeamName))
	require.NotNil(t, matchups[0].Away)
	assert.Equal(t, "Alpha", espn.Str(matchups[0].Away.TeamName))
}

func TestFreeAgents_SendsFantasyFilter(t *testing.T) {
	var filter string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		filter = r.Header.Get("X-Fantasy-Filter")
		io.WriteString(w, `{"players": [{"player": {"id": 7, "fullName": "Waiver Guy"}}]}`)
	})

	players, err := client.FreeAgents(context.Background(), "PG", 25)
	require.NoError(t, err)
	require.Len(t, players, 1)

	assert.Equal(t, "Waiver Guy", espn.Str(players[0].FullName))
	assert.Contains(t, filter, "FREEAGENT")
	assert.Contains(t, filter, "filterSlotIds")
}

func TestFreeAgents_UnknownPosition(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s", r.URL)
	})

	_, err := client.FreeAgents(context.Background(), "QB", 10)
	assert.ErrorIs(t, err, espn.ErrNotFound)
}

func TestPlayers_MissingIDIsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"players": [{"player": {"id": 1, "fullName": "Present"}}]}`)
	})

	_, err := client.Players(context.Background(), []int{1, 2})
	assert.ErrorIs(t, err, espn.ErrNotFound)
}

func TestPlayers_PreservesRequestedOrder(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"players": [
			{"player": {"id": 1, "fullName": "One"}},
			{"player": {"id": 2, "fullName": "Two"}}
		]}`)
	})

	players, err := client.Players(context.Background(), []int{2, 1})
	require.NoError(t, err)
	require.Len(t, players, 2)
	assert.Equal(t, "Two", espn.Str(players[0].FullName))
	assert.Equal(t, "One", espn.Str(players[1].FullName))
}

func TestPlayerByName_CaseInsensitive(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"players": [{"player": {"id": 9, "fullName": "Jayson Example"}}]}`)
	})

	player, err := client.PlayerByName(context.Background(), "jayson example")
	require.NoError(t, err)
	assert.Equal(t, 9, player.ID.Int())
}

func TestTransactions_FiltersAndResolvesNames(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{
			"teams": [{
				"id": 1, "name": "Alpha",
				"roster": {"entries": [{"playerPoolEntry": {"player": {"id": 55, "fullName": "Pickup"}}}]}
			}],
			"transactions": [
				{"type": "WAIVER", "status": "EXECUTED", "teamId": 1, "bidAmount": 12,
				 "scoringPeriodId": 3, "proposedDate": 1700000000000, "items": [{"playerId": 55}]},
				{"type": "TRADE", "status": "EXECUTED", "teamId": 1, "scoringPeriodId": 4}
			]
		}`)
	})

	records, err := client.Transactions(context.Background(), 3, []string{"WAIVER"})
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, "WAIVER", espn.Str(rec.Type))
	assert.Equal(t, "Alpha", espn.Str(rec.TeamName))
	assert.Equal(t, "Pickup", espn.Str(rec.PlayerName))
	assert.Equal(t, 12.0, rec.BidAmount.Float())
	assert.Equal(t, "2023-11-14T22:13:20Z", espn.Str(rec.Date))
}

func TestMakeRequest_NotFoundIsNotRetried(t *testing.T) {
	var calls int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.Standings(context.Background())
	assert.ErrorIs(t, err, espn.ErrNotFound)
	assert.Equal(t, 1, calls)
}

func TestMakeRequest_CredentialFailureIsUnavailable(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := client.Standings(context.Background())
	assert.ErrorIs(t, err, espn.ErrUnavailable)
}
