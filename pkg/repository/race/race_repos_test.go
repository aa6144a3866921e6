//nolint:funlen // ok for tests
package race

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skidmark-racing/chorley/pkg/repository"
	"github.com/skidmark-racing/chorley/testsupport/basedata"
	"github.com/skidmark-racing/chorley/testsupport/testdb"
)

func seedRaces(pool *pgxpool.Pool) {
	basedata.SeedLeague(pool, 1, "Season 1", true, []basedata.SeedScoreboardEntry{})

	base := time.Date(2024, 4, 1, 20, 0, 0, 0, time.UTC)
	basedata.SeedRaceWithResults(pool, basedata.SeedRace{
		ID: 100, LeagueID: basedata.Int32(1),
		TrackID: basedata.TrackBrands, VehicleClass: basedata.ClassGT3,
		VehicleModel: basedata.VehicleMercedes,
		EndTime:      base, Finished: true,
	}, []basedata.SeedResult{
		{
			Name: "Alice", Position: basedata.Int32(1),
			TotalTime:  basedata.Int64(1800000),
			FastestLap: basedata.Int64(83456), IsFastestLap: true,
			State: "Finished", VehicleID: basedata.VehicleMercedes,
		},
		{
			Name: "Bob", Position: basedata.Int32(2),
			TotalTime:  basedata.Int64(1802456),
			FastestLap: basedata.Int64(84000),
			State:      "Finished", VehicleID: basedata.VehiclePorsche,
		},
		{
			Name: "Carol", State: "DNF", VehicleID: basedata.VehiclePorsche,
		},
	})
	basedata.SeedRaceWithResults(pool, basedata.SeedRace{
		ID: 101, LeagueID: basedata.Int32(1),
		TrackID: basedata.TrackSpa, VehicleClass: basedata.ClassGT3,
		VehicleModel: basedata.VehiclePorsche,
		EndTime:      base.Add(7 * 24 * time.Hour), Finished: true,
	}, []basedata.SeedResult{
		{
			Name: "Bob", Position: basedata.Int32(1),
			TotalTime:  basedata.Int64(2100000),
			FastestLap: basedata.Int64(139000), IsFastestLap: true,
			State: "Finished", VehicleID: basedata.VehiclePorsche,
		},
	})
	// must never show up: historical and unfinished races
	basedata.SeedRaceWithResults(pool, basedata.SeedRace{
		ID: 102, TrackID: basedata.TrackSpa, VehicleClass: basedata.ClassGT3,
		VehicleModel: basedata.VehiclePorsche,
		EndTime:      base.Add(14 * 24 * time.Hour),
		Finished:     true, Historical: true,
	}, nil)
	basedata.SeedRaceWithResults(pool, basedata.SeedRace{
		ID: 103, TrackID: basedata.TrackSpa, VehicleClass: basedata.ClassGT3,
		VehicleModel: basedata.VehiclePorsche,
		EndTime:      base.Add(21 * 24 * time.Hour), Finished: false,
	}, nil)
	// a league-less race, the newest finished one
	basedata.SeedRaceWithResults(pool, basedata.SeedRace{
		ID: 104, TrackID: basedata.TrackBrands, VehicleClass: basedata.ClassGT3,
		VehicleModel: basedata.VehicleMercedes,
		EndTime:      base.Add(28 * 24 * time.Hour), Finished: true,
	}, []basedata.SeedResult{
		{
			Name: "Alice", Position: basedata.Int32(1),
			TotalTime: basedata.Int64(1700000),
			State:     "Finished", VehicleID: basedata.VehicleMercedes,
		},
	})
}

func TestLoadRecent(t *testing.T) {
	pool := testdb.InitTestDb()
	seedRaces(pool)
	ctx := context.Background()

	races, err := LoadRecent(ctx, pool, 10, nil)
	require.NoError(t, err)
	require.Len(t, races, 3, "historical/unfinished races must be excluded")
	// newest first
	assert.Equal(t, 104, races[0].ID)
	assert.Equal(t, 101, races[1].ID)
	assert.Equal(t, 100, races[2].ID)
	assert.Nil(t, races[0].LeagueID)
	require.NotNil(t, races[1].LeagueName)
	assert.Equal(t, "Season 1", *races[1].LeagueName)

	races, err = LoadRecent(ctx, pool, 1, nil)
	require.NoError(t, err)
	assert.Len(t, races, 1)

	league := int32(1)
	races, err = LoadRecent(ctx, pool, 10, &league)
	require.NoError(t, err)
	assert.Len(t, races, 2)
}

func TestLoadDetail(t *testing.T) {
	pool := testdb.InitTestDb()
	seedRaces(pool)
	ctx := context.Background()

	detail, err := LoadDetail(ctx, pool, 100)
	require.NoError(t, err)
	assert.Equal(t, int32(basedata.TrackBrands), detail.TrackID)
	assert.Equal(t, int32(3), detail.GridSize)

	_, err = LoadDetail(ctx, pool, 99999)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLoadResults(t *testing.T) {
	pool := testdb.InitTestDb()
	seedRaces(pool)

	results, err := LoadResults(context.Background(), pool, 100)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "Alice", results[0].Name)
	assert.True(t, results[0].IsFastestLap)
	assert.Equal(t, "Bob", results[1].Name)
	// DNF entry has no position and sorts last
	last := results[2]
	assert.Equal(t, "Carol", last.Name)
	assert.Nil(t, last.Position)
	assert.Equal(t, "DNF", last.State)
}

func TestLoadLapEvents(t *testing.T) {
	pool := testdb.InitTestDb()
	seedRaces(pool)
	ctx := context.Background()

	basedata.SeedLapEvent(pool, 100, "Alice", 1, 85000)
	basedata.SeedLapEvent(pool, 100, "Alice", 2, 83456)
	basedata.SeedLapEvent(pool, 100, "Bob", 1, 86000)
	// invalid lap time is filtered out
	basedata.SeedLapEvent(pool, 100, "Bob", 2, 0)

	laps, err := LoadLapEvents(ctx, pool, 100, nil)
	require.NoError(t, err)
	assert.Len(t, laps, 3)
	// ordered by lap, then time
	assert.Equal(t, int32(1), laps[0].Lap)
	assert.Equal(t, "Alice", laps[0].Name)

	driver := "ali"
	laps, err = LoadLapEvents(ctx, pool, 100, &driver)
	require.NoError(t, err)
	assert.Len(t, laps, 2)
}

func TestLoadDriverHistory(t *testing.T) {
	pool := testdb.InitTestDb()
	seedRaces(pool)

	rows, err := LoadDriverHistory(context.Background(), pool, "bob", 10)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// newest first: the Spa win before the Brands P2
	assert.Equal(t, 101, rows[0].RaceID)
	require.NotNil(t, rows[0].Position)
	assert.Equal(t, int32(1), *rows[0].Position)
	assert.Equal(t, 100, rows[1].RaceID)
}

func TestLoadRecentWinners(t *testing.T) {
	pool := testdb.InitTestDb()
	seedRaces(pool)

	winners, err := LoadRecentWinners(context.Background(), pool, 10)
	require.NoError(t, err)
	require.Len(t, winners, 3)
	assert.Equal(t, "Alice", winners[0].WinnerName)
	assert.Equal(t, "Bob", winners[1].WinnerName)
	assert.True(t, winners[1].HadFastestLap)
}

func TestLoadByLeague(t *testing.T) {
	pool := testdb.InitTestDb()
	seedRaces(pool)

	races, err := LoadByLeague(context.Background(), pool, 1)
	require.NoError(t, err)
	require.Len(t, races, 2)
	// oldest first for the schedule view
	assert.Equal(t, 100, races[0].ID)
	assert.Equal(t, 101, races[1].ID)
}
