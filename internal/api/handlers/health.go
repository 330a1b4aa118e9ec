package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bmccrea/courtside/internal/services"
)

type HealthHandler struct {
	league *services.LeagueService
}

func NewHealthHandler(league *services.LeagueService) *HealthHandler {
	return &HealthHandler{league: league}
}

// Check reports process liveness plus the league the server is bound to.
func (h *HealthHandler) Check(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"league_name":  h.league.LeagueName(),
		"current_week": h.league.CurrentWeek(),
	})
}
