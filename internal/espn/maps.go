package espn

// Provider id lookups. The fantasy API encodes positions, pro teams, and
// lineup slots as integers; these tables mirror the provider's constants.

var positionMap = map[int]string{
	0:  "PG",
	1:  "SG",
	2:  "SF",
	3:  "PF",
	4:  "C",
	5:  "G",
	6:  "F",
	7:  "SG/SF",
	8:  "G/F",
	9:  "PF/C",
	10: "F/C",
	11: "UT",
}

var proTeamMap = map[int]string{
	0:  "FA",
	1:  "ATL",
	2:  "BOS",
	3:  "NOP",
	4:  "CHI",
	5:  "CLE",
	6:  "DAL",
	7:  "DEN",
	8:  "DET",
	9:  "GSW",
	10: "HOU",
	11: "IND",
	12: "LAC",
	13: "LAL",
	14: "MIA",
	15: "MIL",
	16: "MIN",
	17: "BKN",
	18: "NYK",
	19: "ORL",
	20: "PHL",
	21: "PHO",
	22: "POR",
	23: "SAC",
	24: "SAS",
	25: "OKC",
	26: "UTA",
	27: "WAS",
	28: "TOR",
	29: "MEM",
	30: "CHA",
}

// positionIDMap inverts positionMap for free-agent filter requests.
var positionIDMap = func() map[string]int {
	m := make(map[string]int, len(positionMap))
	for id, name := range positionMap {
		m[name] = id
	}
	return m
}()

const (
	slotBench          = 12
	slotInjuredReserve = 13
)

// PositionName resolves a provider position id, "" when unknown.
func PositionName(id int) string {
	return positionMap[id]
}

// ProTeamAbbrev resolves a provider pro-team id, "" when unknown.
func ProTeamAbbrev(id int) string {
	return proTeamMap[id]
}

// PositionID resolves a position name back to the provider id, -1 when unknown.
func PositionID(name string) int {
	if id, ok := positionIDMap[name]; ok {
		return id
	}
	return -1
}

// IsStartingSlot reports whether a lineup slot id is a starting slot.
func IsStartingSlot(slotID int) bool {
	return slotID != slotBench && slotID != slotInjuredReserve
}
