package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/bmccrea/courtside/internal/fantasy"
	"github.com/bmccrea/courtside/internal/services"
	"github.com/bmccrea/courtside/pkg/utils"
)

type TeamHandler struct {
	league *services.LeagueService
}

func NewTeamHandler(league *services.LeagueService) *TeamHandler {
	return &TeamHandler{league: league}
}

// GetTeams returns all teams sorted by standing, optionally filtered by
// division, paginated.
func (h *TeamHandler) GetTeams(c *gin.Context) {
	page, pageSize, ok := pageParams(c)
	if !ok {
		return
	}
	divisionID, ok := intQuery(c, "division_id", -1)
	if !ok {
		return
	}

	teams, err := h.league.Teams(c.Request.Context(), divisionID)
	if err != nil {
		sendGatewayError(c, err, "No teams found")
		return
	}

	result, err := fantasy.Paginate(teams, page, pageSize)
	if err != nil {
		utils.SendValidationError(c, "Invalid pagination", err.Error())
		return
	}
	utils.SendSuccess(c, result)
}

// GetTeam returns one team. Roster is included by default and schedule on
// request, mirroring the dashboard's needs.
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, ok := intParam(c, "id")
	if !ok {
		return
	}

	team, err := h.league.Team(c.Request.Context(), teamID)
	if err != nil {
		sendGatewayError(c, err, "Team not found")
		return
	}

	// Copy before trimming so the cached entity stays intact.
	view := *team
	if c.DefaultQuery("include_roster", "true") == "false" {
		view.Roster = nil
	}
	if c.DefaultQuery("include_schedule", "false") != "true" {
		view.Schedule = nil
	}
	utils.SendSuccess(c, view)
}

// GetTeamStats returns derived record/scoring statistics for one team.
func (h *TeamHandler) GetTeamStats(c *gin.Context) {
	teamID, ok := intParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.league.TeamStats(c.Request.Context(), teamID)
	if err != nil {
		sendGatewayError(c, err, "Team not found")
		return
	}
	utils.SendSuccess(c, stats)
}

// GetRosterStats returns roster composition statistics for one team.
func (h *TeamHandler) GetRosterStats(c *gin.Context) {
	teamID, ok := intParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.league.RosterStats(c.Request.Context(), teamID)
	if err != nil {
		sendGatewayError(c, err, "Team not found")
		return
	}
	utils.SendSuccess(c, stats)
}
