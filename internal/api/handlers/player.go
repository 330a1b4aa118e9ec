package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bmccrea/courtside/internal/services"
	"github.com/bmccrea/courtside/pkg/utils"
)

type PlayerHandler struct {
	league *services.LeagueService
}

func NewPlayerHandler(league *services.LeagueService) *PlayerHandler {
	return &PlayerHandler{league: league}
}

// GetPlayerStats returns the full statistical summary for one player.
func (h *PlayerHandler) GetPlayerStats(c *gin.Context) {
	playerID, ok := intParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.league.PlayerSummary(c.Request.Context(), playerID)
	if err != nil {
		sendGatewayError(c, err, "Player not found")
		return
	}
	utils.SendSuccess(c, summary)
}

// ComparePlayers returns a per-category comparison of two players.
func (h *PlayerHandler) ComparePlayers(c *gin.Context) {
	player1ID, ok := requiredIntQuery(c, "player1_id")
	if !ok {
		return
	}
	player2ID, ok := requiredIntQuery(c, "player2_id")
	if !ok {
		return
	}
	if player1ID == player2ID {
		utils.SendValidationError(c, "Invalid comparison", "player1_id and player2_id must differ")
		return
	}

	comparison, err := h.league.ComparePlayers(c.Request.Context(), player1ID, player2ID)
	if err != nil {
		sendGatewayError(c, err, "Player not found")
		return
	}
	utils.SendSuccess(c, comparison)
}

// GetRankings returns rostered players ranked by average fantasy points,
// optionally restricted to one position.
func (h *PlayerHandler) GetRankings(c *gin.Context) {
	position := c.Query("position")

	rankings, err := h.league.Rankings(c.Request.Context(), position)
	if err != nil {
		sendGatewayError(c, err, "No players found")
		return
	}
	utils.SendSuccess(c, rankings)
}

// GetHotCold returns the league's top and bottom performers by average points.
func (h *PlayerHandler) GetHotCold(c *gin.Context) {
	count, ok := intQuery(c, "count", 5)
	if !ok {
		return
	}
	if count < 1 || count > 25 {
		utils.SendValidationError(c, "Invalid count", "count must be between 1 and 25")
		return
	}

	result, err := h.league.HotCold(c.Request.Context(), count)
	if err != nil {
		sendGatewayError(c, err, "No players found")
		return
	}
	utils.SendSuccess(c, result)
}

// GetTrends returns recent-versus-previous scoring trends for one player.
func (h *PlayerHandler) GetTrends(c *gin.Context) {
	playerID, ok := intParam(c, "id")
	if !ok {
		return
	}
	weeks, ok := intQuery(c, "weeks", 4)
	if !ok {
		return
	}
	if weeks < 1 || weeks > 20 {
		utils.SendValidationError(c, "Invalid weeks", "weeks must be between 1 and 20")
		return
	}

	trends, err := h.league.PlayerTrends(c.Request.Context(), playerID, weeks)
	if err != nil {
		sendGatewayError(c, err, "Player not found")
		return
	}
	utils.SendSuccess(c, trends)
}

// GetMatchupFit rates a player's history against an opponent's pro team.
func (h *PlayerHandler) GetMatchupFit(c *gin.Context) {
	playerID, ok := requiredIntQuery(c, "player_id")
	if !ok {
		return
	}
	opponentID, ok := requiredIntQuery(c, "opponent_id")
	if !ok {
		return
	}

	analysis, err := h.league.MatchupFit(c.Request.Context(), playerID, opponentID)
	if err != nil {
		sendGatewayError(c, err, "Player not found")
		return
	}
	utils.SendSuccess(c, analysis)
}
