package api

import (
	"github.com/gin-gonic/gin"

	"github.com/bmccrea/courtside/internal/api/handlers"
	"github.com/bmccrea/courtside/internal/bot"
	"github.com/bmccrea/courtside/internal/services"
)

// SetupRoutes configures all API routes on the given router group
func SetupRoutes(group *gin.RouterGroup, league *services.LeagueService, dispatcher *bot.Dispatcher) {
	leagueHandler := handlers.NewLeagueHandler(league)
	teamHandler := handlers.NewTeamHandler(league)
	playerHandler := handlers.NewPlayerHandler(league)
	botHandler := handlers.NewBotHandler(dispatcher)

	// League endpoints
	group.GET("/league/standings", leagueHandler.GetStandings)
	group.GET("/league/scoreboard", leagueHandler.GetScoreboard)
	group.GET("/league/fantasycast", leagueHandler.GetFantasycast)
	group.GET("/league/transactions", leagueHandler.GetTransactions)
	group.GET("/league/free-agents", leagueHandler.GetFreeAgents)
	group.GET("/league/stats", leagueHandler.GetLeagueStats)
	group.GET("/league/matchup-stats", leagueHandler.GetMatchupStats)

	// Team endpoints
	group.GET("/teams", teamHandler.GetTeams)
	group.GET("/team/:id", teamHandler.GetTeam)
	group.GET("/team/:id/stats", teamHandler.GetTeamStats)
	group.GET("/team/:id/roster-stats", teamHandler.GetRosterStats)

	// Player endpoints
	group.GET("/players/stats/:id", playerHandler.GetPlayerStats)
	group.GET("/players/compare", playerHandler.ComparePlayers)
	group.GET("/players/rankings", playerHandler.GetRankings)
	group.GET("/players/hot-cold", playerHandler.GetHotCold)
	group.GET("/players/trends/:id", playerHandler.GetTrends)
	group.GET("/players/matchup-fit", playerHandler.GetMatchupFit)

	// Bot webhook
	group.POST("/bot/message", botHandler.Webhook)
}
