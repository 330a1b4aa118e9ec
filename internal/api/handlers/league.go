package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bmccrea/courtside/internal/fantasy"
	"github.com/bmccrea/courtside/internal/services"
	"github.com/bmccrea/courtside/pkg/utils"
)

type LeagueHandler struct {
	league *services.LeagueService
}

func NewLeagueHandler(league *services.LeagueService) *LeagueHandler {
	return &LeagueHandler{league: league}
}

// GetStandings returns league standings, optionally filtered by division,
// sorted by wins then points-for, paginated.
func (h *LeagueHandler) GetStandings(c *gin.Context) {
	page, pageSize, ok := pageParams(c)
	if !ok {
		return
	}
	divisionID, ok := intQuery(c, "division_id", -1)
	if !ok {
		return
	}

	standings, err := h.league.Standings(c.Request.Context(), divisionID)
	if err != nil {
		sendGatewayError(c, err, "Standings not found")
		return
	}

	result, err := fantasy.Paginate(standings, page, pageSize)
	if err != nil {
		utils.SendValidationError(c, "Invalid pagination", err.Error())
		return
	}
	utils.SendSuccess(c, result)
}

// GetScoreboard returns the scoreboard for a specific week, or the current
// week when the week parameter is absent.
func (h *LeagueHandler) GetScoreboard(c *gin.Context) {
	week, ok := intQuery(c, "week", 0)
	if !ok {
		return
	}

	scoreboard, err := h.league.Scoreboard(c.Request.Context(), week)
	if err != nil {
		sendGatewayError(c, err, "Scoreboard not found")
		return
	}
	utils.SendSuccess(c, scoreboard)
}

// GetFantasycast returns live box scores with lineups, paginated.
func (h *LeagueHandler) GetFantasycast(c *gin.Context) {
	page, pageSize, ok := pageParams(c)
	if !ok {
		return
	}
	week, ok := intQuery(c, "week", 0)
	if !ok {
		return
	}

	boxScores, err := h.league.BoxScores(c.Request.Context(), week)
	if err != nil {
		sendGatewayError(c, err, "Fantasycast data not found")
		return
	}

	result, err := fantasy.Paginate(boxScores, page, pageSize)
	if err != nil {
		utils.SendValidationError(c, "Invalid pagination", err.Error())
		return
	}
	utils.SendSuccess(c, result)
}

// GetLeagueStats returns league-wide derived statistics.
func (h *LeagueHandler) GetLeagueStats(c *gin.Context) {
	stats, err := h.league.LeagueStats(c.Request.Context())
	if err != nil {
		sendGatewayError(c, err, "League stats not found")
		return
	}
	utils.SendSuccess(c, stats)
}

// GetMatchupStats returns derived matchup statistics for a week.
func (h *LeagueHandler) GetMatchupStats(c *gin.Context) {
	week, ok := intQuery(c, "week", 0)
	if !ok {
		return
	}

	stats, err := h.league.MatchupStats(c.Request.Context(), week)
	if err != nil {
		sendGatewayError(c, err, "Matchup stats not found")
		return
	}
	utils.SendSuccess(c, stats)
}

// GetTransactions returns league transactions, optionally filtered by
// scoring period and a comma-separated type list.
func (h *LeagueHandler) GetTransactions(c *gin.Context) {
	scoringPeriod, ok := intQuery(c, "scoring_period", 0)
	if !ok {
		return
	}

	types := []string{"FREEAGENT", "WAIVER", "TRADE"}
	if raw := c.Query("types"); raw != "" {
		types = strings.Split(raw, ",")
	}

	transactions, err := h.league.Transactions(c.Request.Context(), scoringPeriod, types)
	if err != nil {
		sendGatewayError(c, err, "Transactions not found")
		return
	}
	utils.SendSuccess(c, transactions)
}

// GetFreeAgents returns available players, optionally filtered by position.
func (h *LeagueHandler) GetFreeAgents(c *gin.Context) {
	size, ok := intQuery(c, "size", 50)
	if !ok {
		return
	}
	if size < 1 || size > 200 {
		utils.SendValidationError(c, "Invalid size", "size must be between 1 and 200")
		return
	}

	players, err := h.league.FreeAgents(c.Request.Context(), c.Query("position"), size)
	if err != nil {
		sendGatewayError(c, err, "Free agents not found")
		return
	}
	utils.SendSuccess(c, players)
}
