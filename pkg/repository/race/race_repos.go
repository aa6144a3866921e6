//nolint:whitespace // can't make both editor and linter happy
package race

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/skidmark-racing/chorley/pkg/model"
	"github.com/skidmark-racing/chorley/pkg/repository"
)

// Only races with finished=true and the historical flag cleared count
// as finished; everything aggregates over those.
const raceColumns = `
	h.id,
	h.end_time,
	h.start_time,
	h.league_id,
	l.name as league_name,
	hs."TrackId" as track_id,
	hs."VehicleClassId" as vehicle_class_id,
	hs."VehicleModelId" as vehicle_model_id
`

const recentRacesSQL = `
	SELECT ` + raceColumns + `
	FROM batchupload_history h
	JOIN batchupload_historysetup hs ON h.setup_id = hs.id
	LEFT JOIN leagues_league l ON h.league_id = l.id
	WHERE h.finished = true
		AND h."isHistoricalOrIncomplete" = false
	ORDER BY h.end_time DESC
	LIMIT $1
`

// same shape, restricted to one league; kept as a separate statement so
// parameter indices never shift with optional fragments
const recentRacesByLeagueSQL = `
	SELECT ` + raceColumns + `
	FROM batchupload_history h
	JOIN batchupload_historysetup hs ON h.setup_id = hs.id
	LEFT JOIN leagues_league l ON h.league_id = l.id
	WHERE h.finished = true
		AND h."isHistoricalOrIncomplete" = false
		AND h.league_id = $2
	ORDER BY h.end_time DESC
	LIMIT $1
`

//nolint:funlen // by design
func LoadRecent(
	ctx context.Context,
	conn repository.Querier,
	limit int,
	leagueID *int32,
) ([]model.Race, error) {
	var rows pgx.Rows
	var err error
	if leagueID != nil {
		rows, err = conn.Query(ctx, recentRacesByLeagueSQL, limit, *leagueID)
	} else {
		rows, err = conn.Query(ctx, recentRacesSQL, limit)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	ret := make([]model.Race, 0, limit)
	for rows.Next() {
		var item model.Race
		if err := rows.Scan(
			&item.ID, &item.EndTime, &item.StartTime,
			&item.LeagueID, &item.LeagueName,
			&item.TrackID, &item.VehicleClassID, &item.VehicleModelID,
		); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

// LoadDetail returns the setup-level view of a single race.
// Returns repository.ErrNotFound for an unknown id.
func LoadDetail(
	ctx context.Context,
	conn repository.Querier,
	raceID int,
) (*model.RaceDetail, error) {
	row := conn.QueryRow(ctx, `
	SELECT `+raceColumns+`,
		hs."RaceLength" as race_length,
		hs."GridSize" as grid_size
	FROM batchupload_history h
	JOIN batchupload_historysetup hs ON h.setup_id = hs.id
	LEFT JOIN leagues_league l ON h.league_id = l.id
	WHERE h.id = $1
	`, raceID)
	var item model.RaceDetail
	if err := row.Scan(
		&item.ID, &item.EndTime, &item.StartTime,
		&item.LeagueID, &item.LeagueName,
		&item.TrackID, &item.VehicleClassID, &item.VehicleModelID,
		&item.RaceLength, &item.GridSize,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// LoadResults returns the race1 stage classification ordered by position.
func LoadResults(
	ctx context.Context,
	conn repository.Querier,
	raceID int,
) ([]model.RaceResult, error) {
	rows, err := conn.Query(ctx, `
	SELECT
		r.name,
		r."RacePosition" as position,
		r."TotalTime" as total_time,
		r."FastestLapTime" as fastest_lap,
		r."IsFastestLap" as is_fastest_lap,
		r."State" as state,
		r."VehicleId" as vehicle_id
	FROM batchupload_history h
	JOIN batchupload_historystages hs ON h.stages_id = hs.id
	JOIN batchupload_historystageresult r ON hs.race1_id = r.stage_id
	WHERE h.id = $1
	ORDER BY r."RacePosition" ASC
	`, raceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []model.RaceResult
	for rows.Next() {
		var item model.RaceResult
		if err := rows.Scan(
			&item.Name, &item.Position, &item.TotalTime,
			&item.FastestLap, &item.IsFastestLap, &item.State,
			&item.VehicleID,
		); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

const lapEventsSQL = `
	SELECT
		e.name,
		e."attributes_Lap" as lap_number,
		e."attributes_LapTime" as lap_time,
		e."attributes_Sector1Time" as sector1,
		e."attributes_Sector2Time" as sector2,
		e."attributes_Sector3Time" as sector3,
		e."attributes_RacePosition" as position
	FROM batchupload_history h
	JOIN batchupload_historystages hs ON h.stages_id = hs.id
	JOIN batchupload_historystageevent e ON hs.race1_id = e.stage_id
	WHERE h.id = $1
		AND e.event_name = 'Lap'
		AND e."attributes_LapTime" > 0
	ORDER BY e."attributes_Lap" ASC, e."attributes_LapTime" ASC
`

const lapEventsByDriverSQL = `
	SELECT
		e.name,
		e."attributes_Lap" as lap_number,
		e."attributes_LapTime" as lap_time,
		e."attributes_Sector1Time" as sector1,
		e."attributes_Sector2Time" as sector2,
		e."attributes_Sector3Time" as sector3,
		e."attributes_RacePosition" as position
	FROM batchupload_history h
	JOIN batchupload_historystages hs ON h.stages_id = hs.id
	JOIN batchupload_historystageevent e ON hs.race1_id = e.stage_id
	WHERE h.id = $1
		AND e.event_name = 'Lap'
		AND e."attributes_LapTime" > 0
		AND e.name ILIKE $2
	ORDER BY e."attributes_Lap" ASC, e."attributes_LapTime" ASC
`

// LoadLapEvents returns valid lap events of a race, optionally
// restricted to drivers matching the name substring.
func LoadLapEvents(
	ctx context.Context,
	conn repository.Querier,
	raceID int,
	driverName *string,
) ([]model.LapEvent, error) {
	var rows pgx.Rows
	var err error
	if driverName != nil {
		rows, err = conn.Query(ctx, lapEventsByDriverSQL,
			raceID, repository.Pattern(*driverName))
	} else {
		rows, err = conn.Query(ctx, lapEventsSQL, raceID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []model.LapEvent
	for rows.Next() {
		var item model.LapEvent
		if err := rows.Scan(
			&item.Name, &item.Lap, &item.LapTime,
			&item.Sector1, &item.Sector2, &item.Sector3,
			&item.Position,
		); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

// LoadDriverHistory returns a driver's results across races, newest first.
func LoadDriverHistory(
	ctx context.Context,
	conn repository.Querier,
	driverName string,
	limit int,
) ([]model.DriverRaceRow, error) {
	rows, err := conn.Query(ctx, `
	SELECT
		h.id as race_id,
		h.end_time,
		h.league_id,
		l.name as league_name,
		hs."TrackId" as track_id,
		hs."VehicleClassId" as vehicle_class_id,
		r.name as driver_name,
		r."RacePosition" as position,
		r."TotalTime" as total_time,
		r."FastestLapTime" as fastest_lap,
		r."IsFastestLap" as is_fastest_lap,
		r."State" as state
	FROM batchupload_historystageresult r
	JOIN batchupload_historystage s ON r.stage_id = s.id
	JOIN batchupload_historystages hs_stages ON hs_stages.race1_id = s.id
	JOIN batchupload_history h ON h.stages_id = hs_stages.id
	JOIN batchupload_historysetup hs ON h.setup_id = hs.id
	LEFT JOIN leagues_league l ON h.league_id = l.id
	WHERE r.name ILIKE $1
		AND h.finished = true
		AND h."isHistoricalOrIncomplete" = false
	ORDER BY h.end_time DESC
	LIMIT $2
	`, repository.Pattern(driverName), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []model.DriverRaceRow
	for rows.Next() {
		var item model.DriverRaceRow
		if err := rows.Scan(
			&item.RaceID, &item.EndTime, &item.LeagueID, &item.LeagueName,
			&item.TrackID, &item.VehicleClassID,
			&item.DriverName, &item.Position, &item.TotalTime,
			&item.FastestLap, &item.IsFastestLap, &item.State,
		); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

// LoadRecentWinners returns the position-1 finishers of the most
// recently ended races.
func LoadRecentWinners(
	ctx context.Context,
	conn repository.Querier,
	limit int,
) ([]model.RaceWinner, error) {
	rows, err := conn.Query(ctx, `
	SELECT
		h.id as race_id,
		h.end_time,
		h.league_id,
		l.name as league_name,
		hs."TrackId" as track_id,
		hs."VehicleClassId" as vehicle_class_id,
		r.name as winner_name,
		r."TotalTime" as winning_time,
		r."FastestLapTime" as fastest_lap,
		r."IsFastestLap" as had_fastest_lap
	FROM batchupload_history h
	JOIN batchupload_historysetup hs ON h.setup_id = hs.id
	JOIN batchupload_historystages hs_stages ON h.stages_id = hs_stages.id
	JOIN batchupload_historystageresult r ON hs_stages.race1_id = r.stage_id
	LEFT JOIN leagues_league l ON h.league_id = l.id
	WHERE h.finished = true
		AND h."isHistoricalOrIncomplete" = false
		AND r."RacePosition" = 1
	ORDER BY h.end_time DESC
	LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []model.RaceWinner
	for rows.Next() {
		var item model.RaceWinner
		if err := rows.Scan(
			&item.RaceID, &item.EndTime, &item.LeagueID, &item.LeagueName,
			&item.TrackID, &item.VehicleClassID,
			&item.WinnerName, &item.WinningTime, &item.FastestLap,
			&item.HadFastestLap,
		); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

// LoadByLeague returns the finished races of one league, oldest first,
// for the league detail view.
func LoadByLeague(
	ctx context.Context,
	conn repository.Querier,
	leagueID int32,
) ([]model.CompletedRace, error) {
	rows, err := conn.Query(ctx, `
	SELECT
		h.id,
		h.end_time,
		hs."TrackId" as track_id
	FROM batchupload_history h
	JOIN batchupload_historysetup hs ON h.setup_id = hs.id
	WHERE h.league_id = $1
		AND h.finished = true
	ORDER BY h.end_time ASC
	`, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []model.CompletedRace
	for rows.Next() {
		var item model.CompletedRace
		if err := rows.Scan(&item.ID, &item.EndTime, &item.TrackID); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}
