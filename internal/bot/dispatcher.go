// Package bot implements a transport-agnostic chat command dispatcher. A
// transport (HTTP webhook, Discord gateway, test harness) hands incoming
// messages to Dispatch and sends the returned reply back on its own channel.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/bmccrea/courtside/internal/espn"
	"github.com/bmccrea/courtside/internal/services"
)

// Message is an incoming chat message.
type Message struct {
	Author  string `json:"author"`
	Content string `json:"content"`
}

type Dispatcher struct {
	league *services.LeagueService
	prefix string
	logger *logrus.Logger
}

func NewDispatcher(league *services.LeagueService, prefix string, logger *logrus.Logger) *Dispatcher {
	if prefix == "" {
		prefix = "!"
	}
	return &Dispatcher{league: league, prefix: prefix, logger: logger}
}

// Dispatch routes a message to its command handler. The second return is
// false when the message does not carry the command prefix and no reply
// should be sent.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) (string, bool) {
	content := strings.TrimSpace(msg.Content)
	if !strings.HasPrefix(content, d.prefix) {
		return "", false
	}

	command, args := splitCommand(strings.TrimPrefix(content, d.prefix))
	d.logger.WithFields(logrus.Fields{
		"command": command,
		"author":  msg.Author,
	}).Info("Dispatching bot command")

	switch command {
	case "hello":
		if msg.Author != "" {
			return fmt.Sprintf("Hello %s!", msg.Author), true
		}
		return "Hello!", true
	case "ping":
		return "Pong!", true
	case "standings":
		return d.standings(ctx), true
	case "scoreboard":
		return d.scoreboard(ctx), true
	case "player":
		return d.player(ctx, args), true
	case "compare":
		return d.compare(ctx, args), true
	case "help":
		return d.help(), true
	default:
		return fmt.Sprintf("Unknown command %q. Try %shelp.", command, d.prefix), true
	}
}

func splitCommand(s string) (command, args string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return strings.ToLower(s[:i]), strings.TrimSpace(s[i+1:])
	}
	return strings.ToLower(s), ""
}

func (d *Dispatcher) help() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, line := range []string{
		"hello", "ping", "standings", "scoreboard",
		"player <name>", "compare <name>, <name>",
	} {
		fmt.Fprintf(&b, "  %s%s\n", d.prefix, line)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d *Dispatcher) standings(ctx context.Context) string {
	teams, err := d.league.Standings(ctx, -1)
	if err != nil {
		return d.errorReply(err, "No standings available.")
	}
	if len(teams) == 0 {
		return "No standings available."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s standings:\n", d.league.LeagueName())
	for i, t := range teams {
		fmt.Fprintf(&b, "%d. %s (%d-%d, %.1f PF)\n", i+1, t.TeamName, t.Wins, t.Losses, t.PointsFor)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d *Dispatcher) scoreboard(ctx context.Context) string {
	matchups, err := d.league.Scoreboard(ctx, 0)
	if err != nil {
		return d.errorReply(err, "No matchups this week.")
	}
	if len(matchups) == 0 {
		return "No matchups this week."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Week %d scoreboard:\n", d.league.CurrentWeek())
	for _, m := range matchups {
		if m.AwayTeam == nil {
			fmt.Fprintf(&b, "%s (bye)\n", m.HomeTeam.TeamName)
			continue
		}
		fmt.Fprintf(&b, "%s %.1f - %.1f %s\n",
			m.HomeTeam.TeamName, m.HomeTeam.Score, m.AwayTeam.Score, m.AwayTeam.TeamName)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d *Dispatcher) player(ctx context.Context, name string) string {
	if name == "" {
		return fmt.Sprintf("Usage: %splayer <name>", d.prefix)
	}

	player, err := d.league.PlayerByName(ctx, name)
	if err != nil {
		return d.errorReply(err, fmt.Sprintf("Player %q not found.", name))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s, %s)\n", player.Name, player.Position, player.ProTeam)
	fmt.Fprintf(&b, "Status: %s\n", player.InjuryStatus)
	fmt.Fprintf(&b, "Fantasy: %.1f total, %.1f avg, %.1f projected",
		player.TotalPoints, player.AvgPoints, player.ProjectedPoints)
	return b.String()
}

func (d *Dispatcher) compare(ctx context.Context, args string) string {
	names := strings.SplitN(args, ",", 2)
	if len(names) != 2 {
		return fmt.Sprintf("Usage: %scompare <name>, <name>", d.prefix)
	}
	first := strings.TrimSpace(names[0])
	second := strings.TrimSpace(names[1])
	if first == "" || second == "" {
		return fmt.Sprintf("Usage: %scompare <name>, <name>", d.prefix)
	}

	p1, err := d.league.PlayerByName(ctx, first)
	if err != nil {
		return d.errorReply(err, fmt.Sprintf("Player %q not found.", first))
	}
	p2, err := d.league.PlayerByName(ctx, second)
	if err != nil {
		return d.errorReply(err, fmt.Sprintf("Player %q not found.", second))
	}

	comparison, err := d.league.ComparePlayers(ctx, p1.PlayerID, p2.PlayerID)
	if err != nil {
		return d.errorReply(err, "Comparison unavailable.")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s vs %s\n", p1.Name, p2.Name)
	fmt.Fprintf(&b, "Avg points: %.1f vs %.1f\n", p1.AvgPoints, p2.AvgPoints)
	fmt.Fprintf(&b, "Total points: %.1f vs %.1f\n", p1.TotalPoints, p2.TotalPoints)
	diff := comparison.FantasyComparison.AvgPoints.Difference
	switch {
	case diff > 0:
		fmt.Fprintf(&b, "Edge: %s by %.1f avg points", p1.Name, diff)
	case diff < 0:
		fmt.Fprintf(&b, "Edge: %s by %.1f avg points", p2.Name, -diff)
	default:
		b.WriteString("Edge: even on average points")
	}
	return b.String()
}

func (d *Dispatcher) errorReply(err error, notFound string) string {
	switch {
	case errors.Is(err, espn.ErrNotFound):
		return notFound
	case errors.Is(err, espn.ErrUnavailable):
		return "League data is currently unavailable, try again shortly."
	default:
		d.logger.WithError(err).Error("Bot command failed")
		return "Something went wrong handling that command."
	}
}
