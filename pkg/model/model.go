// Package model holds the read-only row types returned by the query layer.
// Times (lap, sector, total) are integer milliseconds throughout; no
// conversion happens below the formatting helpers.
package model

import "time"

// Race is the summary row for a finished race, enriched with reference
// display names.
type Race struct {
	ID               int        `json:"id"`
	StartTime        time.Time  `json:"start_time"`
	EndTime          time.Time  `json:"end_time"`
	LeagueID         *int32     `json:"league_id"`
	LeagueName       *string    `json:"league_name"`
	TrackID          int32      `json:"track_id"`
	VehicleClassID   int32      `json:"vehicle_class_id"`
	VehicleModelID   int32      `json:"vehicle_model_id"`
	TrackName        string     `json:"track_name"`
	VehicleClassName string     `json:"vehicle_class_name"`
	VehicleName      string     `json:"vehicle_name"`
}

// RaceDetail extends Race with setup attributes only needed on the
// single-race view.
type RaceDetail struct {
	Race
	RaceLength int32 `json:"race_length"`
	GridSize   int32 `json:"grid_size"`
}

// RaceResult is one classified entry of a race. Position is nil for DNF.
type RaceResult struct {
	Name         string `json:"name"`
	Position     *int32 `json:"position"`
	TotalTime    *int64 `json:"total_time"`
	FastestLap   *int64 `json:"fastest_lap"`
	IsFastestLap bool   `json:"is_fastest_lap"`
	State        string `json:"state"`
	VehicleID    int32  `json:"vehicle_id"`
	VehicleName  string `json:"vehicle_name"`
}

// RaceWithResults is the composite returned for a single race lookup.
type RaceWithResults struct {
	Race    RaceDetail   `json:"race"`
	Results []RaceResult `json:"results"`
}

// DriverStats is the aggregate row for one driver across finished races.
type DriverStats struct {
	Name         string   `json:"name"`
	RacesEntered int64    `json:"races_entered"`
	Wins         int64    `json:"wins"`
	Podiums      int64    `json:"podiums"`
	Top10s       int64    `json:"top_10s"`
	FastestLaps  int64    `json:"fastest_laps"`
	BestLapTime  *int64   `json:"best_lap_time"`
	AvgPosition  *float64 `json:"avg_position"`
}

type League struct {
	ID                      int32   `json:"id"`
	Name                    string  `json:"name"`
	Description             string  `json:"description"`
	Completed               bool    `json:"completed"`
	ExtraPointForFastestLap bool    `json:"extra_point_for_fastest_lap"`
	Img                     *string `json:"img,omitempty"`
}

// StandingEntry is one scoreboard row. Position is nil for drivers
// without a classified position; those sort last.
type StandingEntry struct {
	LeagueID       int32  `json:"league_id"`
	LeagueName     string `json:"league_name"`
	Completed      bool   `json:"completed"`
	PlayerName     string `json:"player_name"`
	Position       *int32 `json:"position"`
	Points         int32  `json:"points"`
	Wins           int32  `json:"wins"`
	Poles          int32  `json:"poles"`
	Podiums        int32  `json:"podiums"`
	FastestLaps    int32  `json:"fastest_laps"`
	PointsFinishes int32  `json:"points_finishes"`
}

type ScheduleEntry struct {
	ID        int32     `json:"id"`
	TrackID   int32     `json:"track"`
	TrackName string    `json:"track_name"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

type PointsRow struct {
	Position int32 `json:"position"`
	Points   int32 `json:"points"`
}

// CompletedRace is the schedule-history row inside LeagueDetails.
type CompletedRace struct {
	ID        int       `json:"id"`
	EndTime   time.Time `json:"end_time"`
	TrackID   int32     `json:"track_id"`
	TrackName string    `json:"track_name"`
}

type LeagueDetails struct {
	League         League          `json:"league"`
	Standings      []StandingEntry `json:"standings"`
	Schedule       []ScheduleEntry `json:"schedule"`
	PointsSystem   []PointsRow     `json:"points_system"`
	RacesCompleted []CompletedRace `json:"races_completed"`
}

// ChampionshipWinner is the position-1 standings entry of a completed league.
type ChampionshipWinner struct {
	LeagueID   int32  `json:"league_id"`
	LeagueName string `json:"league_name"`
	Champion   string `json:"champion"`
	Points     int32  `json:"points"`
	Wins       int32  `json:"wins"`
	Poles      int32  `json:"poles"`
	Podiums    int32  `json:"podiums"`
}

type ChampionshipTitle struct {
	LeagueName string `json:"league_name"`
	LeagueID   int32  `json:"league_id"`
	Points     int32  `json:"points"`
	Wins       int32  `json:"wins"`
}

type DriverChampionships struct {
	Name          string              `json:"name"`
	Championships int                 `json:"championships"`
	Titles        []ChampionshipTitle `json:"titles"`
}

// BackToBack marks a driver winning two leagues with adjacent ids.
// This is an id-adjacency heuristic, not a chronological guarantee.
type BackToBack struct {
	Driver    string   `json:"driver"`
	Leagues   []string `json:"leagues"`
	LeagueIDs []int32  `json:"league_ids"`
}

type ChampionshipStats struct {
	TotalChampionships  int                   `json:"total_championships"`
	AllChampions        []ChampionshipWinner  `json:"all_champions"`
	MostChampionships   []DriverChampionships `json:"most_championships"`
	BackToBackChampions []BackToBack          `json:"back_to_back_champions"`
	UniqueChampions     int                   `json:"unique_champions"`
}

// LapEvent is one "Lap" stage event with a positive lap time.
type LapEvent struct {
	Name     string `json:"name"`
	Lap      int32  `json:"lap_number"`
	LapTime  int64  `json:"lap_time"`
	Sector1  int64  `json:"sector1"`
	Sector2  int64  `json:"sector2"`
	Sector3  int64  `json:"sector3"`
	Position int32  `json:"position"`
}

// HeadToHead counts come from independent substring matches; a name
// matching both patterns is counted on both sides. RacesTogether is
// the distinct races where either driver appears, not only those
// where both raced.
type HeadToHead struct {
	Driver1Races  int64 `json:"driver1_races"`
	Driver2Races  int64 `json:"driver2_races"`
	RacesTogether int64 `json:"races_together"`
	Driver1Wins   int64 `json:"driver1_wins"`
	Driver2Wins   int64 `json:"driver2_wins"`
}

// DriverRaceRow is one result of a driver's race history, newest first.
type DriverRaceRow struct {
	RaceID           int       `json:"race_id"`
	EndTime          time.Time `json:"end_time"`
	LeagueID         *int32    `json:"league_id"`
	LeagueName       *string   `json:"league_name"`
	TrackID          int32     `json:"track_id"`
	VehicleClassID   int32     `json:"vehicle_class_id"`
	TrackName        string    `json:"track_name"`
	VehicleClassName string    `json:"vehicle_class_name"`
	DriverName       string    `json:"driver_name"`
	Position         *int32    `json:"position"`
	TotalTime        *int64    `json:"total_time"`
	FastestLap       *int64    `json:"fastest_lap"`
	IsFastestLap     bool      `json:"is_fastest_lap"`
	State            string    `json:"state"`
}

type RaceWinner struct {
	RaceID           int       `json:"race_id"`
	EndTime          time.Time `json:"end_time"`
	LeagueID         *int32    `json:"league_id"`
	LeagueName       *string   `json:"league_name"`
	TrackID          int32     `json:"track_id"`
	VehicleClassID   int32     `json:"vehicle_class_id"`
	TrackName        string    `json:"track_name"`
	VehicleClassName string    `json:"vehicle_class_name"`
	WinnerName       string    `json:"winner_name"`
	WinningTime      *int64    `json:"winning_time"`
	FastestLap       *int64    `json:"fastest_lap"`
	HadFastestLap    bool      `json:"had_fastest_lap"`
}
