package query

import (
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/skidmark-racing/chorley/pkg/model"
)

// buildChampionshipStats groups the champions list (newest league
// first) by driver and detects back-to-back title runs. Two adjacent
// entries form a pair when the driver matches and the league ids
// differ by exactly 1; league ids stand in for seasons here.
func buildChampionshipStats(
	champions []model.ChampionshipWinner,
) *model.ChampionshipStats {
	byDriver := map[string]*model.DriverChampionships{}
	order := []string{}
	for i := range champions {
		c := champions[i]
		entry, ok := byDriver[c.Champion]
		if !ok {
			entry = &model.DriverChampionships{Name: c.Champion}
			byDriver[c.Champion] = entry
			order = append(order, c.Champion)
		}
		entry.Championships++
		entry.Titles = append(entry.Titles, model.ChampionshipTitle{
			LeagueName: c.LeagueName,
			LeagueID:   c.LeagueID,
			Points:     c.Points,
			Wins:       c.Wins,
		})
	}

	most := lo.Map(order, func(name string, _ int) model.DriverChampionships {
		return *byDriver[name]
	})
	sort.SliceStable(most, func(i, j int) bool {
		return most[i].Championships > most[j].Championships
	})

	var backToBack []model.BackToBack
	for i := 0; i+1 < len(champions); i++ {
		cur, next := champions[i], champions[i+1]
		if cur.Champion != next.Champion {
			continue
		}
		diff := cur.LeagueID - next.LeagueID
		if diff == 1 || diff == -1 {
			backToBack = append(backToBack, model.BackToBack{
				Driver:    cur.Champion,
				Leagues:   []string{cur.LeagueName, next.LeagueName},
				LeagueIDs: []int32{cur.LeagueID, next.LeagueID},
			})
		}
	}

	return &model.ChampionshipStats{
		TotalChampionships:  len(champions),
		AllChampions:        champions,
		MostChampionships:   most,
		BackToBackChampions: backToBack,
		UniqueChampions:     len(most),
	}
}

// filterRaces applies the optional name filters on enriched races and
// truncates to limit.
func filterRaces(
	races []model.Race, trackName, vehicleClass *string, limit int,
) []model.Race {
	if trackName != nil {
		want := strings.ToLower(*trackName)
		races = lo.Filter(races, func(r model.Race, _ int) bool {
			return strings.Contains(strings.ToLower(r.TrackName), want)
		})
	}
	if vehicleClass != nil {
		want := strings.ToLower(*vehicleClass)
		races = lo.Filter(races, func(r model.Race, _ int) bool {
			return strings.Contains(strings.ToLower(r.VehicleClassName), want)
		})
	}
	if len(races) > limit {
		races = races[:limit]
	}
	return races
}
