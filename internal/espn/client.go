package espn

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://lm-api-reads.fantasy.espn.com/apis/v3/games/fba"

var (
	// ErrNotFound means the requested entity does not exist in the current
	// league snapshot. Distinct from an empty collection, which is not an error.
	ErrNotFound = errors.New("espn: not found")
	// ErrUnavailable means the provider could not be reached or rejected the
	// session. Detail is logged at the gateway, not carried to adapters.
	ErrUnavailable = errors.New("espn: provider unavailable")
)

// Config carries everything needed to open the league session.
type Config struct {
	LeagueID         int
	Season           int
	ESPNS2           string
	SWID             string
	BaseURL          string
	Timeout          time.Duration
	RateLimit        int
	BreakerThreshold int
	HTTPClient       *http.Client
	Logger           *logrus.Logger
}

// Client is the process-wide session against the ESPN fantasy API. It is
// built once at startup and read-only afterwards; all methods are safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	baseURL    string
	leagueID   int
	season     int
	espnS2     string
	swid       string
	logger     *logrus.Logger
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker

	// Snapshot of league settings taken at init. Divisions and the league
	// name do not change mid-season.
	leagueName    string
	divisionNames map[int]string
	currentWeek   int
}

// New opens the league session and validates the credentials with an initial
// settings fetch. A failure here is fatal for the process: no data request
// can be served without a league session.
func New(cfg Config) (*Client, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	rps := cfg.RateLimit
	if rps <= 0 {
		rps = 10
	}

	threshold := cfg.BreakerThreshold
	if threshold <= 0 {
		threshold = 5
	}

	c := &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		leagueID:   cfg.LeagueID,
		season:     cfg.Season,
		espnS2:     cfg.ESPNS2,
		swid:       cfg.SWID,
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "espn",
			MaxRequests: uint32(threshold),
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests >= 3 && failureRatio >= 0.6
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.WithFields(logrus.Fields{
					"component": "circuit_breaker",
					"service":   name,
					"from":      from.String(),
					"to":        to.String(),
				}).Info("Circuit breaker state changed")
			},
		}),
	}

	logger.WithFields(logrus.Fields{
		"league_id": cfg.LeagueID,
		"season":    cfg.Season,
	}).Info("Connecting to ESPN fantasy league")

	resp, err := c.fetchLeague(context.Background(), nil, "mSettings")
	if err != nil {
		logger.WithError(err).Error("Failed to initialize league session")
		return nil, fmt.Errorf("initializing league %d: %w", cfg.LeagueID, err)
	}

	c.divisionNames = make(map[int]string)
	if resp.Settings != nil {
		c.leagueName = Str(resp.Settings.Name)
		for _, d := range resp.Settings.ScheduleSettings.Divisions {
			c.divisionNames[d.ID.Int()] = Str(d.Name)
		}
	}
	if resp.Status != nil {
		c.currentWeek = resp.Status.CurrentMatchupPeriod.Int()
	}

	logger.WithField("league", c.leagueName).Info("ESPN league session initialized")
	return c, nil
}

// LeagueName returns the league display name captured at init.
func (c *Client) LeagueName() string { return c.leagueName }

// CurrentWeek returns the matchup period the league was in at init.
func (c *Client) CurrentWeek() int { return c.currentWeek }

// Standings returns all teams ordered by rank.
func (c *Client) Standings(ctx context.Context) ([]TeamRecord, error) {
	resp, err := c.fetchLeague(ctx, nil, "mTeam", "mStandings")
	if err != nil {
		return nil, err
	}

	teams := resp.Teams
	for i := range teams {
		c.resolveDivision(&teams[i])
	}
	sort.SliceStable(teams, func(i, j int) bool {
		return teams[i].PlayoffSeed.Int() < teams[j].PlayoffSeed.Int()
	})
	return teams, nil
}

// Teams returns all teams with rosters attached.
func (c *Client) Teams(ctx context.Context) ([]TeamRecord, error) {
	resp, err := c.fetchLeague(ctx, nil, "mTeam", "mRoster")
	if err != nil {
		return nil, err
	}
	teams := resp.Teams
	for i := range teams {
		c.resolveDivision(&teams[i])
	}
	return teams, nil
}

// Team returns one team with roster and season schedule, or ErrNotFound.
func (c *Client) Team(ctx context.Context, teamID int) (*TeamRecord, error) {
	resp, err := c.fetchLeague(ctx, nil, "mTeam", "mRoster", "mMatchup")
	if err != nil {
		return nil, err
	}

	names := teamNameIndex(resp.Teams)
	for i := range resp.Teams {
		rec := &resp.Teams[i]
		if rec.ID.Int() != teamID {
			continue
		}
		c.resolveDivision(rec)
		rec.Schedule = buildSchedule(teamID, resp.Schedule, names)
		return rec, nil
	}
	return nil, fmt.Errorf("team %d: %w", teamID, ErrNotFound)
}

// Scoreboard returns matchups for the given week, or for the current week
// when week is 0. Team names are resolved onto each side.
func (c *Client) Scoreboard(ctx context.Context, week int) ([]MatchupRecord, error) {
	params := url.Values{}
	if week > 0 {
		params.Set("scoringPeriodId", strconv.Itoa(week))
	}
	resp, err := c.fetchLeague(ctx, params, "mMatchupScore", "mTeam")
	if err != nil {
		return nil, err
	}

	if week == 0 {
		week = c.currentWeek
		if resp.Status != nil && resp.Status.CurrentMatchupPeriod.Int() > 0 {
			week = resp.Status.CurrentMatchupPeriod.Int()
		}
	}

	names := teamNameIndex(resp.Teams)
	var matchups []MatchupRecord
	for _, m := range resp.Schedule {
		if m.MatchupPeriodID.Int() != week {
			continue
		}
		resolveSideNames(&m, names)
		matchups = append(matchups, m)
	}
	return matchups, nil
}

// BoxScores returns the current week's matchups with lineups attached.
func (c *Client) BoxScores(ctx context.Context, week int) ([]MatchupRecord, error) {
	params := url.Values{}
	if week > 0 {
		params.Set("scoringPeriodId", strconv.Itoa(week))
	}
	resp, err := c.fetchLeague(ctx, params, "mMatchupScore", "mMatchup", "mRoster", "mTeam")
	if err != nil {
		return nil, err
	}

	target := week
	if target == 0 {
		target = c.currentWeek
		if resp.Status != nil && resp.Status.CurrentMatchupPeriod.Int() > 0 {
			target = resp.Status.CurrentMatchupPeriod.Int()
		}
	}

	names := teamNameIndex(resp.Teams)
	var matchups []MatchupRecord
	for _, m := range resp.Schedule {
		if m.MatchupPeriodID.Int() != target {
			continue
		}
		resolveSideNames(&m, names)
		matchups = append(matchups, m)
	}
	return matchups, nil
}

// FreeAgents returns available players, optionally filtered by position.
func (c *Client) FreeAgents(ctx context.Context, position string, size int) ([]PlayerRecord, error) {
	if size <= 0 {
		size = 50
	}
	filter := map[string]interface{}{
		"players": map[string]interface{}{
			"filterStatus": map[string]interface{}{"value": []string{"FREEAGENT", "WAIVERS"}},
			"limit":        size,
			"sortPercOwned": map[string]interface{}{
				"sortAsc":      false,
				"sortPriority": 1,
			},
		},
	}
	if position != "" {
		id := PositionID(position)
		if id < 0 {
			return nil, fmt.Errorf("position %q: %w", position, ErrNotFound)
		}
		filter["players"].(map[string]interface{})["filterSlotIds"] = map[string]interface{}{"value": []int{id}}
	}

	resp, err := c.fetchLeagueFiltered(ctx, filter, "kona_player_info")
	if err != nil {
		return nil, err
	}
	return playerRecords(resp.Players), nil
}

// Players returns records for the given player ids. Every requested id must
// resolve; a missing id yields ErrNotFound.
func (c *Client) Players(ctx context.Context, playerIDs []int) ([]PlayerRecord, error) {
	if len(playerIDs) == 0 {
		return nil, nil
	}
	filter := map[string]interface{}{
		"players": map[string]interface{}{
			"filterIds": map[string]interface{}{"value": playerIDs},
		},
	}
	resp, err := c.fetchLeagueFiltered(ctx, filter, "kona_player_info")
	if err != nil {
		return nil, err
	}

	records := playerRecords(resp.Players)
	byID := make(map[int]PlayerRecord, len(records))
	for _, r := range records {
		byID[r.ID.Int()] = r
	}

	ordered := make([]PlayerRecord, 0, len(playerIDs))
	for _, id := range playerIDs {
		rec, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("player %d: %w", id, ErrNotFound)
		}
		ordered = append(ordered, rec)
	}
	return ordered, nil
}

// PlayerByName finds a single player by exact name (case-insensitive).
func (c *Client) PlayerByName(ctx context.Context, name string) (*PlayerRecord, error) {
	filter := map[string]interface{}{
		"players": map[string]interface{}{
			"filterName": map[string]interface{}{"value": name},
		},
	}
	resp, err := c.fetchLeagueFiltered(ctx, filter, "kona_player_info")
	if err != nil {
		return nil, err
	}
	for _, p := range playerRecords(resp.Players) {
		if strings.EqualFold(Str(p.FullName), name) {
			rec := p
			return &rec, nil
		}
	}
	return nil, fmt.Errorf("player %q: %w", name, ErrNotFound)
}

// Transactions returns league transactions, optionally filtered by scoring
// period and type set (FREEAGENT, WAIVER, TRADE).
func (c *Client) Transactions(ctx context.Context, scoringPeriod int, types []string) ([]TransactionRecord, error) {
	resp, err := c.fetchLeague(ctx, nil, "mTransactions2", "mTeam", "mRoster")
	if err != nil {
		return nil, err
	}

	allowed := make(map[string]bool, len(types))
	for _, t := range types {
		allowed[strings.ToUpper(t)] = true
	}

	teamNames := teamNameIndex(resp.Teams)
	playerNames := playerNameIndex(resp.Teams)

	var records []TransactionRecord
	for _, tx := range resp.Transactions {
		if scoringPeriod > 0 && tx.ScoringPeriodID.Int() != scoringPeriod {
			continue
		}
		txType := strings.ToUpper(Str(tx.Type))
		if len(allowed) > 0 && !allowed[txType] {
			continue
		}
		rec := TransactionRecord{
			Type:            tx.Type,
			BidAmount:       tx.BidAmount,
			Status:          tx.Status,
			ScoringPeriodID: tx.ScoringPeriodID,
		}
		if name, ok := teamNames[tx.TeamID.Int()]; ok {
			rec.TeamName = &name
		}
		if len(tx.Items) > 0 {
			if name, ok := playerNames[tx.Items[0].PlayerID.Int()]; ok {
				rec.PlayerName = &name
			}
		}
		if tx.ProposedDate.Int() > 0 {
			date := time.UnixMilli(int64(tx.ProposedDate.Int())).UTC().Format(time.RFC3339)
			rec.Date = &date
		}
		records = append(records, rec)
	}
	return records, nil
}

// DivisionName resolves a division id from the settings snapshot.
func (c *Client) DivisionName(divisionID int) string {
	return c.divisionNames[divisionID]
}

func (c *Client) resolveDivision(rec *TeamRecord) {
	if rec.DivisionName == nil {
		if name, ok := c.divisionNames[rec.DivisionID.Int()]; ok {
			rec.DivisionName = &name
		}
	}
}

// leagueResponse is the top-level provider payload shared by all views.
type leagueResponse struct {
	ID       FlexInt          `json:"id"`
	Teams    []TeamRecord     `json:"teams"`
	Schedule []MatchupRecord  `json:"schedule"`
	Players  []playerPoolItem `json:"players"`
	Settings *leagueSettings  `json:"settings"`
	Status   *leagueStatus    `json:"status"`

	Transactions []transactionWire `json:"transactions"`
}

type playerPoolItem struct {
	Player   *PlayerRecord `json:"player"`
	OnTeamID *FlexInt      `json:"onTeamId"`
}

type leagueSettings struct {
	Name             *string `json:"name"`
	ScheduleSettings struct {
		Divisions []struct {
			ID   FlexInt `json:"id"`
			Name *string `json:"name"`
		} `json:"divisions"`
	} `json:"scheduleSettings"`
}

type leagueStatus struct {
	CurrentMatchupPeriod FlexInt `json:"currentMatchupPeriod"`
	LatestScoringPeriod  FlexInt `json:"latestScoringPeriod"`
}

type transactionWire struct {
	Type            *string    `json:"type"`
	Status          *string    `json:"status"`
	TeamID          FlexInt    `json:"teamId"`
	BidAmount       *FlexFloat `json:"bidAmount"`
	ScoringPeriodID *FlexInt   `json:"scoringPeriodId"`
	ProposedDate    FlexInt    `json:"proposedDate"`
	Items           []struct {
		PlayerID FlexInt `json:"playerId"`
	} `json:"items"`
}

func (c *Client) leagueURL(params url.Values, views ...string) string {
	u := fmt.Sprintf("%s/seasons/%d/segments/0/leagues/%d", c.baseURL, c.season, c.leagueID)
	q := url.Values{}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	for _, v := range views {
		q.Add("view", v)
	}
	return u + "?" + q.Encode()
}

func (c *Client) fetchLeague(ctx context.Context, params url.Values, views ...string) (*leagueResponse, error) {
	var resp leagueResponse
	if err := c.makeRequest(ctx, c.leagueURL(params, views...), "", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) fetchLeagueFiltered(ctx context.Context, filter map[string]interface{}, views ...string) (*leagueResponse, error) {
	header, err := json.Marshal(filter)
	if err != nil {
		return nil, fmt.Errorf("encoding player filter: %w", err)
	}
	var resp leagueResponse
	if err := c.makeRequest(ctx, c.leagueURL(nil, views...), string(header), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// makeRequest performs the HTTP call behind the rate limiter and circuit
// breaker, retrying transient failures with exponential backoff.
func (c *Client) makeRequest(ctx context.Context, url string, fantasyFilter string, target interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	_, err := c.breaker.Execute(func() (interface{}, error) {
		var lastErr error
		for attempt := 0; attempt < 3; attempt++ {
			if attempt > 0 {
				wait := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
				c.logger.WithFields(logrus.Fields{
					"attempt": attempt + 1,
					"wait":    wait,
				}).Warn("Retrying provider request")
				select {
				case <-time.After(wait):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return nil, err
			}
			req.Header.Set("Accept", "application/json")
			if fantasyFilter != "" {
				req.Header.Set("X-Fantasy-Filter", fantasyFilter)
			}
			if c.espnS2 != "" {
				req.AddCookie(&http.Cookie{Name: "espn_s2", Value: c.espnS2})
				req.AddCookie(&http.Cookie{Name: "SWID", Value: c.swid})
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				lastErr = err
				continue
			}

			switch {
			case resp.StatusCode == http.StatusOK:
				err := json.NewDecoder(resp.Body).Decode(target)
				resp.Body.Close()
				if err != nil {
					return nil, fmt.Errorf("decoding provider response: %w", err)
				}
				return nil, nil
			case resp.StatusCode == http.StatusNotFound:
				resp.Body.Close()
				return nil, ErrNotFound
			case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
				resp.Body.Close()
				return nil, fmt.Errorf("credentials rejected (status %d)", resp.StatusCode)
			default:
				resp.Body.Close()
				lastErr = fmt.Errorf("unexpected status code: %d", resp.StatusCode)
			}
		}
		return nil, lastErr
	})

	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return err
		}
		c.logger.WithError(err).WithField("url", url).Error("Provider request failed")
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func teamNameIndex(teams []TeamRecord) map[int]string {
	names := make(map[int]string, len(teams))
	for _, t := range teams {
		names[t.ID.Int()] = Str(t.Name)
	}
	return names
}

func playerNameIndex(teams []TeamRecord) map[int]string {
	names := make(map[int]string)
	for _, t := range teams {
		if t.Roster == nil {
			continue
		}
		for _, entry := range t.Roster.Entries {
			if entry.PlayerPoolEntry == nil || entry.PlayerPoolEntry.Player == nil {
				continue
			}
			p := entry.PlayerPoolEntry.Player
			names[p.ID.Int()] = Str(p.FullName)
		}
	}
	return names
}

func playerRecords(items []playerPoolItem) []PlayerRecord {
	records := make([]PlayerRecord, 0, len(items))
	for _, item := range items {
		if item.Player == nil {
			continue
		}
		records = append(records, *item.Player)
	}
	return records
}

func resolveSideNames(m *MatchupRecord, names map[int]string) {
	for _, side := range []*SideRecord{m.Home, m.Away} {
		if side == nil || side.TeamName != nil {
			continue
		}
		if name, ok := names[side.TeamID.Int()]; ok {
			side.TeamName = &name
		}
	}
}

func buildSchedule(teamID int, schedule []MatchupRecord, names map[int]string) []ScheduleItem {
	var items []ScheduleItem
	for _, m := range schedule {
		var us, them *SideRecord
		var isHome bool
		switch {
		case m.Home != nil && m.Home.TeamID.Int() == teamID:
			us, them, isHome = m.Home, m.Away, true
		case m.Away != nil && m.Away.TeamID.Int() == teamID:
			us, them, isHome = m.Away, m.Home, false
		default:
			continue
		}

		week := FlexInt(m.MatchupPeriodID.Int())
		item := ScheduleItem{
			Week:   &week,
			IsHome: &isHome,
			Score:  us.TotalPoints,
		}
		if them != nil {
			if name, ok := names[them.TeamID.Int()]; ok {
				item.Opponent = &name
			}
			item.OpponentScore = them.TotalPoints
		}
		items = append(items, item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Week.Int() < items[j].Week.Int()
	})
	return items
}
