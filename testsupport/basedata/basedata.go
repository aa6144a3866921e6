// Package basedata seeds the test database with a small but realistic
// slice of league data: two completed seasons, one active season and a
// handful of finished races with results and lap events.
package basedata

import (
	"context"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	TrackBrands     = 1001
	TrackSpa        = 1002
	ClassGT3        = 77
	VehicleMercedes = 501
	VehiclePorsche  = 502
)

type SeedRace struct {
	ID           int
	LeagueID     *int32
	TrackID      int32
	VehicleClass int32
	VehicleModel int32
	EndTime      time.Time
	Finished     bool
	Historical   bool
}

type SeedResult struct {
	Name         string
	Position     *int32
	TotalTime    *int64
	FastestLap   *int64
	IsFastestLap bool
	State        string
	VehicleID    int32
}

func Int32(v int32) *int32 { return &v }

func Int64(v int64) *int64 { return &v }

// SeedLeague inserts a league with its scoreboard.
//
//nolint:errcheck // testsetup
func SeedLeague(
	pool *pgxpool.Pool, id int32, name string, completed bool,
	scoreboard []SeedScoreboardEntry,
) {
	ctx := context.Background()
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			insert into leagues_league (id, name, description, completed)
			values ($1, $2, $3, $4)`,
			id, name, "test league", completed); err != nil {
			return err
		}
		for _, e := range scoreboard {
			if _, err := tx.Exec(ctx, `
				insert into leagues_leaguescoreboardentry
				(league_id, "PlayerName", "Position", "Points", "Wins",
				 "Poles", "Podiums", "FastestLaps", "PointsFinishes")
				values ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				id, e.PlayerName, e.Position, e.Points, e.Wins,
				e.Poles, e.Podiums, e.FastestLaps, e.PointsFinishes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("SeedLeague: %v\n", err)
	}
}

type SeedScoreboardEntry struct {
	PlayerName     string
	Position       *int32
	Points         int32
	Wins           int32
	Poles          int32
	Podiums        int32
	FastestLaps    int32
	PointsFinishes int32
}

// SeedSchedule inserts race dates and a points table for a league.
//
//nolint:errcheck // testsetup
func SeedSchedule(pool *pgxpool.Pool, leagueID int32, dates []time.Time) {
	ctx := context.Background()
	for _, d := range dates {
		if _, err := pool.Exec(ctx, `
			insert into leagues_leagueracedate (league_id, track, date, completed)
			values ($1, $2, $3, $4)`,
			leagueID, TrackBrands, d, d.Before(time.Now())); err != nil {
			log.Fatalf("SeedSchedule: %v\n", err)
		}
	}
	points := []int32{25, 18, 15}
	for i, p := range points {
		if _, err := pool.Exec(ctx, `
			insert into leagues_leaguepointsposition (league_id, "position", points)
			values ($1, $2, $3)`,
			leagueID, i+1, p); err != nil {
			log.Fatalf("SeedSchedule: %v\n", err)
		}
	}
}

// SeedRaceWithResults inserts a race, its setup/stage plumbing and the
// classification. The stage id is derived from the race id.
//
//nolint:errcheck,funlen // testsetup
func SeedRaceWithResults(pool *pgxpool.Pool, race SeedRace, results []SeedResult) {
	ctx := context.Background()
	stageID := race.ID * 10
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `
			insert into batchupload_historysetup
			(id, "TrackId", "VehicleClassId", "VehicleModelId", "RaceLength", "GridSize")
			values ($1, $2, $3, $4, $5, $6)`,
			race.ID, race.TrackID, race.VehicleClass, race.VehicleModel,
			30, len(results)); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			insert into batchupload_historystage (id) values ($1)`,
			stageID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			insert into batchupload_historystages (id, race1_id) values ($1, $2)`,
			race.ID, stageID); err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			insert into batchupload_history
			(id, start_time, end_time, finished, "isHistoricalOrIncomplete",
			 league_id, setup_id, stages_id)
			values ($1, $2, $3, $4, $5, $6, $7, $8)`,
			race.ID, race.EndTime.Add(-time.Hour), race.EndTime,
			race.Finished, race.Historical,
			race.LeagueID, race.ID, race.ID); err != nil {
			return err
		}
		for _, r := range results {
			if _, err := tx.Exec(ctx, `
				insert into batchupload_historystageresult
				(stage_id, name, "RacePosition", "TotalTime", "FastestLapTime",
				 "IsFastestLap", "State", "VehicleId")
				values ($1, $2, $3, $4, $5, $6, $7, $8)`,
				stageID, r.Name, r.Position, r.TotalTime, r.FastestLap,
				r.IsFastestLap, r.State, r.VehicleID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatalf("SeedRaceWithResults: %v\n", err)
	}
}

// SeedLapEvent inserts one lap event for a race seeded via
// SeedRaceWithResults.
//
//nolint:errcheck // testsetup
func SeedLapEvent(
	pool *pgxpool.Pool, raceID int, driver string, lap int32, lapTime int64,
) {
	stageID := raceID * 10
	if _, err := pool.Exec(context.Background(), `
		insert into batchupload_historystageevent
		(stage_id, name, event_name, "attributes_Lap", "attributes_LapTime",
		 "attributes_Sector1Time", "attributes_Sector2Time",
		 "attributes_Sector3Time", "attributes_RacePosition")
		values ($1, $2, 'Lap', $3, $4, $5, $6, $7, 1)`,
		stageID, driver, lap, lapTime,
		lapTime/3, lapTime/3, lapTime-2*(lapTime/3)); err != nil {
		log.Fatalf("SeedLapEvent: %v\n", err)
	}
}
