package bot_test

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmccrea/courtside/internal/bot"
	"github.com/bmccrea/courtside/internal/espn"
	"github.com/bmccrea/courtside/internal/services"
)

// chatGateway serves two teams and two players, enough for every command.
type chatGateway struct{}

func flexInt(v int) *espn.FlexInt {
	f := espn.FlexInt(v)
	return &f
}

func flexFloat(v float64) *espn.FlexFloat {
	f := espn.FlexFloat(v)
	return &f
}

func strPtr(v string) *string { return &v }

func (chatGateway) LeagueName() string { return "Chat League" }
func (chatGateway) CurrentWeek() int   { return 3 }

func (chatGateway) Standings(ctx context.Context) ([]espn.TeamRecord, error) {
	return []espn.TeamRecord{
		{ID: flexInt(1), Name: strPtr("Alpha"), Record: &espn.RecordSet{Overall: &espn.OverallRecord{
			Wins: flexInt(6), Losses: flexInt(2), PointsFor: flexFloat(900),
		}}},
		{ID: flexInt(2), Name: strPtr("Beta"), Record: &espn.RecordSet{Overall: &espn.OverallRecord{
			Wins: flexInt(2), Losses: flexInt(6), PointsFor: flexFloat(700),
		}}},
	}, nil
}

func (g chatGateway) Teams(ctx context.Context) ([]espn.TeamRecord, error) {
	return g.Standings(ctx)
}

func (chatGateway) Team(ctx context.Context, teamID int) (*espn.TeamRecord, error) {
	return nil, fmt.Errorf("team %d: %w", teamID, espn.ErrNotFound)
}

func (chatGateway) Scoreboard(ctx context.Context, week int) ([]espn.MatchupRecord, error) {
	return []espn.MatchupRecord{{
		ID:   flexInt(1),
		Home: &espn.SideRecord{TeamID: flexInt(1), TeamName: strPtr("Alpha"), TotalPoints: flexFloat(101.5)},
		Away: &espn.SideRecord{TeamID: flexInt(2), TeamName: strPtr("Beta"), TotalPoints: flexFloat(98)},
	}}, nil
}

func (g chatGateway) BoxScores(ctx context.Context, week int) ([]espn.MatchupRecord, error) {
	return g.Scoreboard(ctx, week)
}

func (chatGateway) FreeAgents(ctx context.Context, position string, size int) ([]espn.PlayerRecord, error) {
	return nil, nil
}

func (chatGateway) Players(ctx context.Context, playerIDs []int) ([]espn.PlayerRecord, error) {
	var out []espn.PlayerRecord
	for _, id := range playerIDs {
		switch id {
		case 1:
			out = append(out, espn.PlayerRecord{
				ID: flexInt(1), FullName: strPtr("Star Guard"), DefaultPositionID: flexInt(0),
				Stats: []espn.StatLine{{StatSourceID: flexInt(0), StatSplitTypeID: flexInt(0),
					AppliedTotal: flexFloat(300), AppliedAverage: flexFloat(30)}},
			})
		case 2:
			out = append(out, espn.PlayerRecord{
				ID: flexInt(2), FullName: strPtr("Bench Wing"), DefaultPositionID: flexInt(2),
				Stats: []espn.StatLine{{StatSourceID: flexInt(0), StatSplitTypeID: flexInt(0),
					AppliedTotal: flexFloat(150), AppliedAverage: flexFloat(15)}},
			})
		default:
			return nil, fmt.Errorf("player %d: %w", id, espn.ErrNotFound)
		}
	}
	return out, nil
}

func (g chatGateway) PlayerByName(ctx context.Context, name string) (*espn.PlayerRecord, error) {
	switch name {
	case "Star Guard":
		recs, _ := g.Players(ctx, []int{1})
		return &recs[0], nil
	case "Bench Wing":
		recs, _ := g.Players(ctx, []int{2})
		return &recs[0], nil
	}
	return nil, fmt.Errorf("player %q: %w", name, espn.ErrNotFound)
}

func (chatGateway) Transactions(ctx context.Context, scoringPeriod int, types []string) ([]espn.TransactionRecord, error) {
	return nil, nil
}

func newTestDispatcher() *bot.Dispatcher {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	league := services.NewLeagueService(chatGateway{}, nil, logger, time.Minute)
	return bot.NewDispatcher(league, "!", logger)
}

func TestDispatch_IgnoresUnprefixedMessages(t *testing.T) {
	d := newTestDispatcher()

	_, handled := d.Dispatch(context.Background(), bot.Message{Content: "just chatting"})
	assert.False(t, handled)
}

func TestDispatch_HelloAndPing(t *testing.T) {
	d := newTestDispatcher()

	reply, handled := d.Dispatch(context.Background(), bot.Message{Author: "sam", Content: "!hello"})
	require.True(t, handled)
	assert.Equal(t, "Hello sam!", reply)

	reply, handled = d.Dispatch(context.Background(), bot.Message{Content: "!ping"})
	require.True(t, handled)
	assert.Equal(t, "Pong!", reply)
}

func TestDispatch_Standings(t *testing.T) {
	d := newTestDispatcher()

	reply, handled := d.Dispatch(context.Background(), bot.Message{Content: "!standings"})
	require.True(t, handled)

	assert.Contains(t, reply, "Chat League standings:")
	assert.Contains(t, reply, "1. Alpha (6-2")
	assert.Contains(t, reply, "2. Beta (2-6")
}

func TestDispatch_Scoreboard(t *testing.T) {
	d := newTestDispatcher()

	reply, handled := d.Dispatch(context.Background(), bot.Message{Content: "!scoreboard"})
	require.True(t, handled)

	assert.Contains(t, reply, "Week 3 scoreboard:")
	assert.Contains(t, reply, "Alpha 101.5 - 98.0 Beta")
}

func TestDispatch_Player(t *testing.T) {
	d := newTestDispatcher()

	reply, handled := d.Dispatch(context.Background(), bot.Message{Content: "!player Star Guard"})
	require.True(t, handled)
	assert.Contains(t, reply, "Star Guard (PG")
	assert.Contains(t, reply, "300.0 total")

	reply, _ = d.Dispatch(context.Background(), bot.Message{Content: "!player Nobody"})
	assert.Contains(t, reply, "not found")

	reply, _ = d.Dispatch(context.Background(), bot.Message{Content: "!player"})
	assert.Contains(t, reply, "Usage:")
}

func TestDispatch_Compare(t *testing.T) {
	d := newTestDispatcher()

	reply, handled := d.Dispatch(context.Background(), bot.Message{Content: "!compare Star Guard, Bench Wing"})
	require.True(t, handled)

	assert.Contains(t, reply, "Star Guard vs Bench Wing")
	assert.Contains(t, reply, "Edge: Star Guard by 15.0 avg points")

	reply, _ = d.Dispatch(context.Background(), bot.Message{Content: "!compare onlyone"})
	assert.Contains(t, reply, "Usage:")
}

func TestDispatch_UnknownCommand(t *testing.T) {
	d := newTestDispatcher()

	reply, handled := d.Dispatch(context.Background(), bot.Message{Content: "!rebound"})
	require.True(t, handled)
	assert.Contains(t, reply, "Unknown command")
}
