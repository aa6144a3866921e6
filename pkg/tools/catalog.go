// Package tools declares the operations the model may call and
// executes them against the query layer.
package tools

import (
	"github.com/samber/lo"
	"google.golang.org/genai"
)

// Catalog is the ordered list of function declarations advertised to
// the model. Every name here must have exactly one handler in the
// Executor; NewExecutor enforces that at startup.
func Catalog() []*genai.FunctionDeclaration {
	return []*genai.FunctionDeclaration{
		{
			Name: "getRecentRaces",
			Description: "Get the most recent races from the league. " +
				"Use this when users ask about recent races, the last race, " +
				"or what happened lately.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"limit": {
						Type:        genai.TypeNumber,
						Description: "Number of races to return (default 5, max 50)",
					},
					"leagueId": {
						Type:        genai.TypeNumber,
						Description: "Optional: Filter by specific league ID",
					},
				},
			},
		},
		{
			Name: "getRaceResults",
			Description: "Get detailed results for a specific race including " +
				"finishing positions, lap times, and race information. Use this " +
				"when users ask about a specific race's results or want details " +
				"about who won a particular race.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"raceId": {
						Type:        genai.TypeNumber,
						Description: "The race ID to get results for",
					},
				},
				Required: []string{"raceId"},
			},
		},
		{
			Name: "getDriverStats",
			Description: "Get comprehensive statistics for a specific driver " +
				"including wins, podiums, fastest laps, and average position. " +
				"Use this when users ask about a driver's performance or career stats.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"driverName": {
						Type:        genai.TypeString,
						Description: "The driver's name to search for (partial match is ok)",
					},
					"leagueId": {
						Type:        genai.TypeNumber,
						Description: "Optional: Filter stats to a specific league/championship",
					},
				},
				Required: []string{"driverName"},
			},
		},
		{
			Name: "getLeagueStandings",
			Description: "Get the current championship standings for a specific " +
				"league including positions, points, wins, poles, and podiums. " +
				"Use this when users ask about championship standings, who's " +
				"leading, or league positions.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"leagueId": {
						Type:        genai.TypeNumber,
						Description: "The league/championship ID",
					},
				},
				Required: []string{"leagueId"},
			},
		},
		{
			Name: "getActiveLeagues",
			Description: "Get all currently active (ongoing) championships/leagues. " +
				"Use this when users ask about current championships, active " +
				"leagues, or what's happening now.",
			Parameters: &genai.Schema{Type: genai.TypeObject},
		},
		{
			Name: "getCompletedLeagues",
			Description: "Get all completed (past) championships/leagues. Use this " +
				"when users ask about previous seasons, past championships, or " +
				"league history.",
			Parameters: &genai.Schema{Type: genai.TypeObject},
		},
		{
			Name: "getMostRecentLeague",
			Description: "Get the most recent league, optionally only considering " +
				"active ones. Use this when users talk about 'the current season' " +
				"without naming a league.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"activeOnly": {
						Type:        genai.TypeBoolean,
						Description: "If true, only consider active leagues",
					},
				},
			},
		},
		{
			Name: "getChampionshipWinners",
			Description: "Get the champion of every completed league, newest " +
				"first. Use this when users ask who won past championships.",
			Parameters: &genai.Schema{Type: genai.TypeObject},
		},
		{
			Name: "getChampionshipStats",
			Description: "Get championship statistics: who won the most titles, " +
				"back-to-back champions, and the full champions list. Use this " +
				"for questions about championship records.",
			Parameters: &genai.Schema{Type: genai.TypeObject},
		},
		{
			Name: "getLapTimes",
			Description: "Get lap-by-lap timing data for a specific race. " +
				"Optionally filter by driver. Use this when users ask about lap " +
				"times, pace, or sector times from a race.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"raceId": {
						Type:        genai.TypeNumber,
						Description: "The race ID to get lap times for",
					},
					"driverName": {
						Type:        genai.TypeString,
						Description: "Optional: Filter to a specific driver's laps",
					},
				},
				Required: []string{"raceId"},
			},
		},
		{
			Name: "getHeadToHead",
			Description: "Compare two drivers head-to-head with statistics on " +
				"races together, wins, and performance. Use this when users ask " +
				"to compare drivers or want head-to-head stats.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"driver1": {
						Type:        genai.TypeString,
						Description: "First driver's name",
					},
					"driver2": {
						Type:        genai.TypeString,
						Description: "Second driver's name",
					},
				},
				Required: []string{"driver1", "driver2"},
			},
		},
		{
			Name: "searchDrivers",
			Description: "Search for drivers by name. Use this when you need to " +
				"find a driver's exact name or see available drivers.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"query": {
						Type:        genai.TypeString,
						Description: "Search query (partial name is ok)",
					},
				},
				Required: []string{"query"},
			},
		},
		{
			Name: "getAllRaces",
			Description: "Get races across all leagues and standalone races, " +
				"optionally filtered by track name or vehicle class. Use this " +
				"when users ask about races at a certain track or in a class.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"limit": {
						Type:        genai.TypeNumber,
						Description: "Number of races to return (default 20, max 50)",
					},
					"trackName": {
						Type:        genai.TypeString,
						Description: "Optional: filter by track name (partial match)",
					},
					"vehicleClass": {
						Type:        genai.TypeString,
						Description: "Optional: filter by vehicle class name (partial match)",
					},
				},
			},
		},
		{
			Name: "getDriverRaceHistory",
			Description: "Get all results for a specific driver across races, " +
				"newest race first. Use this for a driver's recent form.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"driverName": {
						Type:        genai.TypeString,
						Description: "The driver's name to search for (partial match is ok)",
					},
					"limit": {
						Type:        genai.TypeNumber,
						Description: "Number of results to return (default 20, max 50)",
					},
				},
				Required: []string{"driverName"},
			},
		},
		{
			Name: "getRecentWinners",
			Description: "Get the winners of the most recent races. Use this when " +
				"users ask who has been winning lately.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"limit": {
						Type:        genai.TypeNumber,
						Description: "Number of races to check (default 10, max 50)",
					},
				},
			},
		},
		{
			Name: "getLeagueDetails",
			Description: "Get full details about a specific league: metadata, " +
				"standings, race schedule, points system, and completed races. " +
				"Use this for deep questions about one championship.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"leagueId": {
						Type:        genai.TypeNumber,
						Description: "The league/championship ID",
					},
				},
				Required: []string{"leagueId"},
			},
		},
		{
			Name: "formatLapTime",
			Description: "Convert a lap time in milliseconds to a readable " +
				"string like '1:23.456'. All times in the database are " +
				"milliseconds; use this before quoting times to users.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"milliseconds": {
						Type:        genai.TypeNumber,
						Description: "Time in milliseconds",
					},
				},
				Required: []string{"milliseconds"},
			},
		},
	}
}

// Names returns the declared function names in catalog order.
func Names() []string {
	return lo.Map(Catalog(), func(d *genai.FunctionDeclaration, _ int) string {
		return d.Name
	})
}

// Has reports whether name is a declared function.
func Has(name string) bool {
	return lo.ContainsBy(Catalog(), func(d *genai.FunctionDeclaration) bool {
		return d.Name == name
	})
}

// Describe returns the declaration for name, nil if unknown.
func Describe(name string) *genai.FunctionDeclaration {
	d, _ := lo.Find(Catalog(), func(d *genai.FunctionDeclaration) bool {
		return d.Name == name
	})
	return d
}

// Tools wraps the catalog in the structure the Gemini API expects.
func Tools() []*genai.Tool {
	return []*genai.Tool{{FunctionDeclarations: Catalog()}}
}
