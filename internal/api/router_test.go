package api_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmccrea/courtside/internal/api"
	"github.com/bmccrea/courtside/internal/bot"
	"github.com/bmccrea/courtside/internal/espn"
	"github.com/bmccrea/courtside/internal/services"
)

type apiGateway struct {
	unavailable bool
}

func flexInt(v int) *espn.FlexInt {
	f := espn.FlexInt(v)
	return &f
}

func flexFloat(v float64) *espn.FlexFloat {
	f := espn.FlexFloat(v)
	return &f
}

func strPtr(v string) *string { return &v }

func (g apiGateway) check() error {
	if g.unavailable {
		return fmt.Errorf("provider down: %w", espn.ErrUnavailable)
	}
	return nil
}

func (apiGateway) LeagueName() string { return "API League" }
func (apiGateway) CurrentWeek() int   { return 2 }

func (g apiGateway) Standings(ctx context.Context) ([]espn.TeamRecord, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	var teams []espn.TeamRecord
	for i := 1; i <= 12; i++ {
		teams = append(teams, espn.TeamRecord{
			ID:          flexInt(i),
			Name:        strPtr(fmt.Sprintf("Team %d", i)),
			PlayoffSeed: flexInt(i),
			Record: &espn.RecordSet{Overall: &espn.OverallRecord{
				Wins:      flexInt(20 - i),
				Losses:    flexInt(i),
				PointsFor: flexFloat(float64(1300 - i*10)),
			}},
		})
	}
	return teams, nil
}

func (g apiGateway) Teams(ctx context.Context) ([]espn.TeamRecord, error) {
	return g.Standings(ctx)
}

func (g apiGateway) Team(ctx context.Context, teamID int) (*espn.TeamRecord, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	teams, _ := g.Standings(ctx)
	for i := range teams {
		if teams[i].ID.Int() == teamID {
			return &teams[i], nil
		}
	}
	return nil, fmt.Errorf("team %d: %w", teamID, espn.ErrNotFound)
}

func (g apiGateway) Scoreboard(ctx context.Context, week int) ([]espn.MatchupRecord, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	return []espn.MatchupRecord{{
		ID:   flexInt(1),
		Home: &espn.SideRecord{TeamID: flexInt(1), TeamName: strPtr("Team 1"), TotalPoints: flexFloat(110)},
		Away: &espn.SideRecord{TeamID: flexInt(2), TeamName: strPtr("Team 2"), TotalPoints: flexFloat(95)},
	}}, nil
}

func (g apiGateway) BoxScores(ctx context.Context, week int) ([]espn.MatchupRecord, error) {
	return g.Scoreboard(ctx, week)
}

func (apiGateway) FreeAgents(ctx context.Context, position string, size int) ([]espn.PlayerRecord, error) {
	return nil, nil
}

func (g apiGateway) Players(ctx context.Context, playerIDs []int) ([]espn.PlayerRecord, error) {
	if err := g.check(); err != nil {
		return nil, err
	}
	var out []espn.PlayerRecord
	for _, id := range playerIDs {
		if id != 100 {
			return nil, fmt.Errorf("player %d: %w", id, espn.ErrNotFound)
		}
		out = append(out, espn.PlayerRecord{
			ID: flexInt(100), FullName: strPtr("Known Player"), DefaultPositionID: flexInt(0),
			Stats: []espn.StatLine{{StatSourceID: flexInt(0), StatSplitTypeID: flexInt(0),
				AppliedTotal: flexFloat(400), AppliedAverage: flexFloat(40)}},
		})
	}
	return out, nil
}

func (g apiGateway) PlayerByName(ctx context.Context, name string) (*espn.PlayerRecord, error) {
	recs, err := g.Players(ctx, []int{100})
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(name, "Known Player") {
		return nil, fmt.Errorf("player %q: %w", name, espn.ErrNotFound)
	}
	return &recs[0], nil
}

func (apiGateway) Transactions(ctx context.Context, scoringPeriod int, types []string) ([]espn.TransactionRecord, error) {
	return nil, nil
}

func newTestRouter(gateway services.Gateway) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	league := services.NewLeagueService(gateway, nil, logger, time.Minute)
	dispatcher := bot.NewDispatcher(league, "!", logger)

	router := gin.New()
	api.SetupRoutes(router.Group("/api/v1"), league, dispatcher)
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestGetStandings_Paginated(t *testing.T) {
	router := newTestRouter(apiGateway{})

	w := doRequest(router, http.MethodGet, "/api/v1/league/standings?page=2&page_size=10", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	var page struct {
		Items      []json.RawMessage `json:"items"`
		Pagination struct {
			TotalItems  int  `json:"total_items"`
			TotalPages  int  `json:"total_pages"`
			CurrentPage int  `json:"current_page"`
			HasNext     bool `json:"has_next"`
			HasPrevious bool `json:"has_previous"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))

	assert.Len(t, page.Items, 2)
	assert.Equal(t, 12, page.Pagination.TotalItems)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	assert.False(t, page.Pagination.HasNext)
	assert.True(t, page.Pagination.HasPrevious)
}

func TestGetStandings_InvalidPage(t *testing.T) {
	router := newTestRouter(apiGateway{})

	w := doRequest(router, http.MethodGet, "/api/v1/league/standings?page=0", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestGetStandings_ProviderDown(t *testing.T) {
	router := newTestRouter(apiGateway{unavailable: true})

	w := doRequest(router, http.MethodGet, "/api/v1/league/standings", "")
	require.Equal(t, http.StatusServiceUnavailable, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "PROVIDER_UNAVAILABLE", env.Error.Code)
}

func TestGetTeam_NotFound(t *testing.T) {
	router := newTestRouter(apiGateway{})

	w := doRequest(router, http.MethodGet, "/api/v1/team/99", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	env := decodeEnvelope(t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestGetTeam_InvalidID(t *testing.T) {
	router := newTestRouter(apiGateway{})

	w := doRequest(router, http.MethodGet, "/api/v1/team/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetPlayerStats(t *testing.T) {
	router := newTestRouter(apiGateway{})

	w := doRequest(router, http.MethodGet, "/api/v1/players/stats/100", "")
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var summary struct {
		Info struct {
			Name string `json:"name"`
		} `json:"info"`
		Fantasy struct {
			TotalPoints float64 `json:"total_points"`
		} `json:"fantasy"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &summary))
	assert.Equal(t, "Known Player", summary.Info.Name)
	assert.Equal(t, 400.0, summary.Fantasy.TotalPoints)
}

func TestComparePlayers_RequiresBothIDs(t *testing.T) {
	router := newTestRouter(apiGateway{})

	w := doRequest(router, http.MethodGet, "/api/v1/players/compare?player1_id=100", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/players/compare?player1_id=100&player2_id=100", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBotWebhook(t *testing.T) {
	router := newTestRouter(apiGateway{})

	w := doRequest(router, http.MethodPost, "/api/v1/bot/message", `{"author":"sam","content":"!ping"}`)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	var data struct {
		Reply string `json:"reply"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "Pong!", data.Reply)
}

func TestBotWebhook_UnprefixedMessageIsNoContent(t *testing.T) {
	router := newTestRouter(apiGateway{})

	w := doRequest(router, http.MethodPost, "/api/v1/bot/message", `{"content":"hi everyone"}`)
	assert.Equal(t, http.StatusNoContent, w.Code)
}
