//nolint:whitespace // can't make both editor and linter happy
package driver

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/skidmark-racing/chorley/pkg/model"
	"github.com/skidmark-racing/chorley/pkg/repository"
)

const driverStatsSQL = `
	SELECT
		r.name,
		COUNT(*) as races_entered,
		SUM(CASE WHEN r."RacePosition" = 1 THEN 1 ELSE 0 END) as wins,
		SUM(CASE WHEN r."RacePosition" <= 3 THEN 1 ELSE 0 END) as podiums,
		SUM(CASE WHEN r."RacePosition" <= 10 THEN 1 ELSE 0 END) as top_10s,
		SUM(CASE WHEN r."IsFastestLap" = true THEN 1 ELSE 0 END) as fastest_laps,
		MIN(r."FastestLapTime") as best_lap_time,
		AVG(r."RacePosition") as avg_position
	FROM batchupload_historystageresult r
	JOIN batchupload_historystage s ON r.stage_id = s.id
	JOIN batchupload_historystages hs ON hs.race1_id = s.id
	JOIN batchupload_history h ON h.stages_id = hs.id
	WHERE r.name ILIKE $1
		AND h.finished = true
		AND h."isHistoricalOrIncomplete" = false
	GROUP BY r.name
`

// the league variant repeats the statement instead of splicing the
// filter in, so the parameter indices stay fixed
const driverStatsLeagueSQL = `
	SELECT
		r.name,
		COUNT(*) as races_entered,
		SUM(CASE WHEN r."RacePosition" = 1 THEN 1 ELSE 0 END) as wins,
		SUM(CASE WHEN r."RacePosition" <= 3 THEN 1 ELSE 0 END) as podiums,
		SUM(CASE WHEN r."RacePosition" <= 10 THEN 1 ELSE 0 END) as top_10s,
		SUM(CASE WHEN r."IsFastestLap" = true THEN 1 ELSE 0 END) as fastest_laps,
		MIN(r."FastestLapTime") as best_lap_time,
		AVG(r."RacePosition") as avg_position
	FROM batchupload_historystageresult r
	JOIN batchupload_historystage s ON r.stage_id = s.id
	JOIN batchupload_historystages hs ON hs.race1_id = s.id
	JOIN batchupload_history h ON h.stages_id = hs.id
	WHERE r.name ILIKE $1
		AND h.finished = true
		AND h."isHistoricalOrIncomplete" = false
		AND h.league_id = $2
	GROUP BY r.name
`

// LoadStats aggregates a driver's record across finished races. The
// name is matched case-insensitive as substring; the first matching
// aggregate row wins. ErrNotFound when nothing matches.
func LoadStats(
	ctx context.Context,
	conn repository.Querier,
	driverName string,
	leagueID *int32,
) (*model.DriverStats, error) {
	var rows pgx.Rows
	var err error
	if leagueID != nil {
		rows, err = conn.Query(ctx, driverStatsLeagueSQL,
			repository.Pattern(driverName), *leagueID)
	} else {
		rows, err = conn.Query(ctx, driverStatsSQL,
			repository.Pattern(driverName))
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, repository.ErrNotFound
	}
	var item model.DriverStats
	if err := rows.Scan(
		&item.Name, &item.RacesEntered, &item.Wins, &item.Podiums,
		&item.Top10s, &item.FastestLaps, &item.BestLapTime,
		&item.AvgPosition,
	); err != nil {
		return nil, err
	}
	return &item, nil
}

// LoadHeadToHead compares two drivers over finished races. Both names
// are matched independently; a driver matching both patterns is
// counted on both sides.
func LoadHeadToHead(
	ctx context.Context,
	conn repository.Querier,
	driver1, driver2 string,
) (*model.HeadToHead, error) {
	row := conn.QueryRow(ctx, `
	WITH race_positions AS (
		SELECT
			h.id as race_id,
			r.name,
			r."RacePosition" as position
		FROM batchupload_historystageresult r
		JOIN batchupload_historystage s ON r.stage_id = s.id
		JOIN batchupload_historystages hs ON hs.race1_id = s.id
		JOIN batchupload_history h ON h.stages_id = hs.id
		WHERE (r.name ILIKE $1 OR r.name ILIKE $2)
			AND h.finished = true
			AND h."isHistoricalOrIncomplete" = false
	)
	SELECT
		COUNT(DISTINCT CASE WHEN name ILIKE $1 THEN race_id END) as driver1_races,
		COUNT(DISTINCT CASE WHEN name ILIKE $2 THEN race_id END) as driver2_races,
		COUNT(DISTINCT race_id) as races_together,
		SUM(CASE WHEN name ILIKE $1 AND position = 1 THEN 1 ELSE 0 END) as driver1_wins,
		SUM(CASE WHEN name ILIKE $2 AND position = 1 THEN 1 ELSE 0 END) as driver2_wins
	FROM race_positions
	`, repository.Pattern(driver1), repository.Pattern(driver2))
	var item model.HeadToHead
	var d1Wins, d2Wins *int64
	if err := row.Scan(
		&item.Driver1Races, &item.Driver2Races, &item.RacesTogether,
		&d1Wins, &d2Wins,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	// SUM over zero rows is null
	if d1Wins != nil {
		item.Driver1Wins = *d1Wins
	}
	if d2Wins != nil {
		item.Driver2Wins = *d2Wins
	}
	return &item, nil
}

// Search returns distinct driver names matching the substring,
// alphabetical, capped at 20.
func Search(
	ctx context.Context,
	conn repository.Querier,
	query string,
) ([]string, error) {
	rows, err := conn.Query(ctx, `
	SELECT DISTINCT name
	FROM batchupload_historystageresult
	WHERE name ILIKE $1
	ORDER BY name
	LIMIT 20
	`, repository.Pattern(query))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		ret = append(ret, name)
	}
	return ret, rows.Err()
}
