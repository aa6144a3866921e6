//nolint:funlen // ok for tests
package driver

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

func seedDrivers(pool *pgxpool.Pool) {
	basedata.SeedLeague(pool, 1, "Season 1", true, []basedata.SeedScoreboardEntry{})

	base := time.Date(2024, 4, 1, 20, 0, 0, 0, time.UTC)
	basedata.SeedRaceWithResults(pool, basedata.SeedRace{
		ID: 200, LeagueID: basedata.Int32(1),
		TrackID: basedata.TrackBrands, VehicleClass: basedata.ClassGT3,
		VehicleModel: basedata.VehicleMercedes,
		EndTime:      base, Finished: true,
	}, []basedata.SeedResult{
		{
			Name: "Alice Smith", Position: basedata.Int32(1),
			FastestLap: basedata.Int64(83456), IsFastestLap: true,
			State: "Finished", VehicleID: basedata.VehicleMercedes,
		},
		{
			Name: "Bob Jones", Position: basedata.Int32(2),
			FastestLap: basedata.Int64(84000),
			State:      "Finished", VehicleID: basedata.VehiclePorsche,
		},
	})
	basedata.SeedRaceWithResults(pool, basedata.SeedRace{
		ID: 201, TrackID: basedata.TrackSpa, VehicleClass: basedata.ClassGT3,
		VehicleModel: basedata.VehiclePorsche,
		EndTime:      base.Add(7 * 24 * time.Hour), Finished: true,
	}, []basedata.SeedResult{
		{
			Name: "Bob Jones", Position: basedata.Int32(1),
			FastestLap: basedata.Int64(139000), IsFastestLap: true,
			State: "Finished", VehicleID: basedata.VehiclePorsche,
		},
		{
			Name: "Alice Smith", Position: basedata.Int32(4),
			FastestLap: basedata.Int64(140000),
			State:      "Finished", VehicleID: basedata.VehicleMercedes,
		},
	})
	// a historical race that must not count anywhere
	basedata.SeedRaceWithResults(pool, basedata.SeedRace{
		ID: 202, TrackID: basedata.TrackSpa, VehicleClass: basedata.ClassGT3,
		VehicleModel: basedata.VehiclePorsche,
		EndTime:      base.Add(14 * 24 * time.Hour),
		Finished:     true, Historical: true,
	}, []basedata.SeedResult{
		{
			Name: "Alice Smith", Position: basedata.Int32(1),
			State: "Finished", VehicleID: basedata.VehicleMercedes,
		},
	})
}

func TestLoadStats(t *testing.T) {
	pool := testdb.InitTestDb()
	seedDrivers(pool)
	ctx := context.Background()

	// substring match, case-insensitive
	stats, err := LoadStats(ctx, pool, "alice", nil)
	require.NoError(t, err)
	assert.Equal(t, "Alice Smith", stats.Name)
	assert.Equal(t, int64(2), stats.RacesEntered)
	assert.Equal(t, int64(1), stats.Wins)
	assert.Equal(t, int64(1), stats.Podiums)
	assert.Equal(t, int64(2), stats.Top10s)
	assert.Equal(t, int64(1), stats.FastestLaps)
	require.NotNil(t, stats.BestLapTime)
	assert.Equal(t, int64(83456), *stats.BestLapTime)
	require.NotNil(t, stats.AvgPosition)
	assert.InDelta(t, 2.5, *stats.AvgPosition, 0.001)
}

func TestLoadStatsLeagueFilter(t *testing.T) {
	pool := testdb.InitTestDb()
	seedDrivers(pool)

	league := int32(1)
	stats, err := LoadStats(context.Background(), pool, "bob", &league)
	require.NoError(t, err)
	// only the league race counts, the win at Spa was league-less
	assert.Equal(t, int64(1), stats.RacesEntered)
	assert.Equal(t, int64(0), stats.Wins)
}

func TestLoadStatsNotFound(t *testing.T) {
	pool := testdb.InitTestDb()
	seedDrivers(pool)

	_, err := LoadStats(context.Background(), pool, "zebedee", nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestLoadHeadToHead(t *testing.T) {
	pool := testdb.InitTestDb()
	seedDrivers(pool)

	h2h, err := LoadHeadToHead(context.Background(), pool, "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, int64(2), h2h.Driver1Races)
	assert.Equal(t, int64(2), h2h.Driver2Races)
	assert.Equal(t, int64(2), h2h.RacesTogether)
	assert.Equal(t, int64(1), h2h.Driver1Wins)
	assert.Equal(t, int64(1), h2h.Driver2Wins)
}

func TestLoadHeadToHeadNoData(t *testing.T) {
	pool := testdb.InitTestDb()
	seedDrivers(pool)

	h2h, err := LoadHeadToHead(context.Background(), pool, "nobody", "noone")
	require.NoError(t, err)
	assert.Zero(t, h2h.RacesTogether)
	assert.Zero(t, h2h.Driver1Wins)
	assert.Zero(t, h2h.Driver2Wins)
}

func TestSearch(t *testing.T) {
	pool := testdb.InitTestDb()
	seedDrivers(pool)
	ctx := context.Background()

	names, err := Search(ctx, pool, "o")
	require.NoError(t, err)
	// distinct and alphabetical
	assert.Equal(t, []string{"Bob Jones"}, names)

	names, err = Search(ctx, pool, "SMITH")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice Smith"}, names)

	names, err = Search(ctx, pool, "xyz")
	require.NoError(t, err)
	assert.Empty(t, names)
}
