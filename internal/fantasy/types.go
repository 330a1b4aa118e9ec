package fantasy

// Normalized league entities. Every field is defaulted during normalization,
// so downstream code never needs to guard against missing values.

// Injury status values as reported by the provider.
const (
	StatusActive   = "ACTIVE"
	StatusDayToDay = "DAY_TO_DAY"
	StatusOut      = "OUT"
	StatusInjured  = "INJURED"
	StatusUnknown  = "UNKNOWN"
)

// Team is a league team snapshot.
type Team struct {
	TeamID           int             `json:"team_id"`
	TeamName         string          `json:"team_name"`
	DivisionID       int             `json:"division_id"`
	DivisionName     string          `json:"division_name"`
	Wins             int             `json:"wins"`
	Losses           int             `json:"losses"`
	Ties             int             `json:"ties"`
	PointsFor        float64         `json:"points_for"`
	PointsAgainst    float64         `json:"points_against"`
	StreakLength     int             `json:"streak_length"`
	StreakType       string          `json:"streak_type"`
	Standing         int             `json:"standing"`
	GamesBack        float64         `json:"games_back"`
	FinalStanding    int             `json:"final_standing"`
	WaiverPosition   int             `json:"waiver_position"`
	NumberOfMoves    int             `json:"number_of_moves"`
	NumberOfTrades   int             `json:"number_of_trades"`
	RosterMoves      int             `json:"roster_moves"`
	ClinchedPlayoffs bool            `json:"clinched_playoffs"`
	LogoURL          string          `json:"logo_url,omitempty"`
	RosterSize       int             `json:"roster_size"`
	Roster           []Player        `json:"roster,omitempty"`
	Schedule         []ScheduleEntry `json:"schedule,omitempty"`
}

// ScheduleEntry is one week of a team's season schedule.
type ScheduleEntry struct {
	Week          int     `json:"week"`
	Opponent      string  `json:"opponent"`
	IsHome        bool    `json:"is_home"`
	Score         float64 `json:"score"`
	OpponentScore float64 `json:"opponent_score"`
}

// GameStat is one player's line in one pro game. Ordering within a player's
// GameStats slice is chronological; "recent" means the tail.
type GameStat struct {
	Points   float64            `json:"points"`
	Opponent string             `json:"opponent"`
	Stats    map[string]float64 `json:"stats,omitempty"`
}

// Player is a rostered player or free agent snapshot.
type Player struct {
	PlayerID        int                `json:"player_id"`
	Name            string             `json:"name"`
	Position        string             `json:"position"`
	ProTeam         string             `json:"proTeam"`
	InjuryStatus    string             `json:"injuryStatus"`
	GameStats       []GameStat         `json:"game_stats,omitempty"`
	TotalStats      map[string]float64 `json:"total_stats,omitempty"`
	AverageStats    map[string]float64 `json:"average_stats,omitempty"`
	TotalPoints     float64            `json:"total_points"`
	AvgPoints       float64            `json:"avg_points"`
	PercentOwned    float64            `json:"percent_owned"`
	PercentStarted  float64            `json:"percent_started"`
	ProjectedPoints float64            `json:"projected_points"`
	Starting        bool               `json:"starting"`
	LineupSlot      string             `json:"lineup_slot,omitempty"`
}

// TeamSide is one side of a matchup.
type TeamSide struct {
	TeamID    int      `json:"team_id"`
	TeamName  string   `json:"team_name"`
	Score     float64  `json:"score"`
	Projected float64  `json:"projected"`
	Lineup    []Player `json:"lineup,omitempty"`
}

// Matchup pairs two team sides for one matchup period. AwayTeam is nil on a
// bye week; HomeTeam is always present.
type Matchup struct {
	MatchupID int       `json:"matchup_id"`
	HomeTeam  TeamSide  `json:"home_team"`
	AwayTeam  *TeamSide `json:"away_team,omitempty"`
}

// Transaction is a waiver, free-agent, or trade move.
type Transaction struct {
	Type      string  `json:"type"`
	Team      string  `json:"team"`
	Player    string  `json:"player"`
	BidAmount float64 `json:"bid_amount"`
	Status    string  `json:"status"`
	Date      string  `json:"date"`
}
