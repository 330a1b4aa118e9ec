package espn

// Raw provider records. Every field that the provider may omit is a pointer;
// the normalizer in internal/fantasy defaults them exactly once, so nothing
// downstream has to re-check presence.

// TeamRecord is one team as returned by the mTeam/mStandings views. The
// gateway resolves DivisionName from league settings before handing the
// record out; everything else is provider wire shape.
type TeamRecord struct {
	ID                  *FlexInt            `json:"id"`
	Name                *string             `json:"name"`
	Abbrev              *string             `json:"abbrev"`
	DivisionID          *FlexInt            `json:"divisionId"`
	DivisionName        *string             `json:"divisionName"`
	Logo                *string             `json:"logo"`
	PlayoffSeed         *FlexInt            `json:"playoffSeed"`
	RankCalculatedFinal *FlexInt            `json:"rankCalculatedFinal"`
	WaiverRank          *FlexInt            `json:"waiverRank"`
	ClinchedPlayoffs    *bool               `json:"clinchedPlayoffs"`
	Record              *RecordSet          `json:"record"`
	TransactionCounter  *TransactionCounter `json:"transactionCounter"`
	Roster              *RosterBlock        `json:"roster"`
	Schedule            []ScheduleItem      `json:"schedule"`
}

type RecordSet struct {
	Overall *OverallRecord `json:"overall"`
}

type OverallRecord struct {
	Wins          *FlexInt   `json:"wins"`
	Losses        *FlexInt   `json:"losses"`
	Ties          *FlexInt   `json:"ties"`
	PointsFor     *FlexFloat `json:"pointsFor"`
	PointsAgainst *FlexFloat `json:"pointsAgainst"`
	GamesBack     *FlexFloat `json:"gamesBack"`
	StreakLength  *FlexInt   `json:"streakLength"`
	StreakType    *string    `json:"streakType"`
}

type TransactionCounter struct {
	Moves       *FlexInt `json:"moves"`
	Trades      *FlexInt `json:"trades"`
	RosterMoves *FlexInt `json:"rosterMoves"`
}

type ScheduleItem struct {
	Week          *FlexInt   `json:"week"`
	Opponent      *string    `json:"opponent"`
	IsHome        *bool      `json:"isHome"`
	Score         *FlexFloat `json:"score"`
	OpponentScore *FlexFloat `json:"opponentScore"`
}

// PlayerRecord is one player from the kona_player_info or roster views.
type PlayerRecord struct {
	ID                *FlexInt   `json:"id"`
	FullName          *string    `json:"fullName"`
	DefaultPositionID *FlexInt   `json:"defaultPositionId"`
	ProTeamID         *FlexInt   `json:"proTeamId"`
	InjuryStatus      *string    `json:"injuryStatus"`
	Injured           *bool      `json:"injured"`
	Stats             []StatLine `json:"stats"`
	Ownership         *Ownership `json:"ownership"`
	LineupSlotID      *FlexInt   `json:"lineupSlotId"`
}

// StatLine is one statistics split. statSourceId 0 is actuals, 1 projections;
// statSplitTypeId 0 is season-to-date, 1 a single scoring period.
type StatLine struct {
	ScoringPeriodID *FlexInt             `json:"scoringPeriodId"`
	StatSourceID    *FlexInt             `json:"statSourceId"`
	StatSplitTypeID *FlexInt             `json:"statSplitTypeId"`
	AppliedTotal    *FlexFloat           `json:"appliedTotal"`
	AppliedAverage  *FlexFloat           `json:"appliedAverage"`
	ProOpponent     *string              `json:"proOpponent"`
	Stats           map[string]FlexFloat `json:"stats"`
	AverageStats    map[string]FlexFloat `json:"averageStats"`
}

type Ownership struct {
	PercentOwned   *FlexFloat `json:"percentOwned"`
	PercentStarted *FlexFloat `json:"percentStarted"`
}

// MatchupRecord is one matchup from the mMatchup view. Away is nil on a bye.
type MatchupRecord struct {
	ID              *FlexInt    `json:"id"`
	MatchupPeriodID *FlexInt    `json:"matchupPeriodId"`
	Home            *SideRecord `json:"home"`
	Away            *SideRecord `json:"away"`
}

// SideRecord is one side of a matchup. TeamName is resolved by the gateway
// from the team map; the wire only carries teamId.
type SideRecord struct {
	TeamID               *FlexInt     `json:"teamId"`
	TeamName             *string      `json:"teamName"`
	TotalPoints          *FlexFloat   `json:"totalPoints"`
	TotalProjectedPoints *FlexFloat   `json:"totalProjectedPoints"`
	Roster               *RosterBlock `json:"rosterForCurrentScoringPeriod"`
}

type RosterBlock struct {
	Entries []RosterEntry `json:"entries"`
}

type RosterEntry struct {
	LineupSlotID    *FlexInt         `json:"lineupSlotId"`
	PlayerPoolEntry *PlayerPoolEntry `json:"playerPoolEntry"`
}

type PlayerPoolEntry struct {
	Player           *PlayerRecord `json:"player"`
	AppliedStatTotal *FlexFloat    `json:"appliedStatTotal"`
}

// TransactionRecord is one entry from the mTransactions2 view.
type TransactionRecord struct {
	Type            *string    `json:"type"`
	TeamName        *string    `json:"teamName"`
	PlayerName      *string    `json:"playerName"`
	BidAmount       *FlexFloat `json:"bidAmount"`
	Status          *string    `json:"status"`
	Date            *string    `json:"date"`
	ScoringPeriodID *FlexInt   `json:"scoringPeriodId"`
}
