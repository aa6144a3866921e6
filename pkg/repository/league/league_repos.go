//nolint:whitespace // can't make both editor and linter happy
package league

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/skidmark-racing/chorley/pkg/model"
	"github.com/skidmark-racing/chorley/pkg/repository"
)

const leagueListSQL = `
	SELECT
		id,
		name,
		description,
		completed,
		"extraPointForFastestLap" as extra_point_for_fastest_lap
	FROM leagues_league
	WHERE completed = $1
	ORDER BY id DESC
`

// LoadByCompletion returns leagues filtered by completion flag,
// newest id first.
func LoadByCompletion(
	ctx context.Context,
	conn repository.Querier,
	completed bool,
) ([]model.League, error) {
	rows, err := conn.Query(ctx, leagueListSQL, completed)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []model.League
	for rows.Next() {
		var item model.League
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Description,
			&item.Completed, &item.ExtraPointForFastestLap,
		); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

const mostRecentSQL = `
	SELECT
		id,
		name,
		description,
		completed,
		"extraPointForFastestLap" as extra_point_for_fastest_lap
	FROM leagues_league
	ORDER BY id DESC
	LIMIT 1
`

const mostRecentActiveSQL = `
	SELECT
		id,
		name,
		description,
		completed,
		"extraPointForFastestLap" as extra_point_for_fastest_lap
	FROM leagues_league
	WHERE completed = false
	ORDER BY id DESC
	LIMIT 1
`

// LoadMostRecent returns the highest-id league, optionally only
// considering active ones. ErrNotFound if there is none.
func LoadMostRecent(
	ctx context.Context,
	conn repository.Querier,
	activeOnly bool,
) (*model.League, error) {
	sql := mostRecentSQL
	if activeOnly {
		sql = mostRecentActiveSQL
	}
	row := conn.QueryRow(ctx, sql)
	var item model.League
	if err := row.Scan(
		&item.ID, &item.Name, &item.Description,
		&item.Completed, &item.ExtraPointForFastestLap,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// LoadByID returns one league including the image reference.
func LoadByID(
	ctx context.Context,
	conn repository.Querier,
	id int32,
) (*model.League, error) {
	row := conn.QueryRow(ctx, `
	SELECT
		id,
		name,
		description,
		completed,
		"extraPointForFastestLap" as extra_point_for_fastest_lap,
		img
	FROM leagues_league
	WHERE id = $1
	`, id)
	var item model.League
	if err := row.Scan(
		&item.ID, &item.Name, &item.Description,
		&item.Completed, &item.ExtraPointForFastestLap, &item.Img,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// LoadStandings returns the scoreboard ordered by position, entries
// without a position last.
func LoadStandings(
	ctx context.Context,
	conn repository.Querier,
	leagueID int32,
) ([]model.StandingEntry, error) {
	rows, err := conn.Query(ctx, `
	SELECT
		l.id as league_id,
		l.name as league_name,
		l.completed,
		e."PlayerName" as player_name,
		e."Position" as position,
		e."Points" as points,
		e."Wins" as wins,
		e."Poles" as poles,
		e."Podiums" as podiums,
		e."FastestLaps" as fastest_laps,
		e."PointsFinishes" as points_finishes
	FROM leagues_league l
	JOIN leagues_leaguescoreboardentry e ON l.id = e.league_id
	WHERE l.id = $1
	ORDER BY e."Position" ASC NULLS LAST
	`, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []model.StandingEntry
	for rows.Next() {
		var item model.StandingEntry
		if err := rows.Scan(
			&item.LeagueID, &item.LeagueName, &item.Completed,
			&item.PlayerName, &item.Position, &item.Points,
			&item.Wins, &item.Poles, &item.Podiums,
			&item.FastestLaps, &item.PointsFinishes,
		); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

// LoadSchedule returns the planned race dates of a league.
func LoadSchedule(
	ctx context.Context,
	conn repository.Querier,
	leagueID int32,
) ([]model.ScheduleEntry, error) {
	rows, err := conn.Query(ctx, `
	SELECT
		id,
		track,
		date,
		completed
	FROM leagues_leagueracedate
	WHERE league_id = $1
	ORDER BY date ASC
	`, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []model.ScheduleEntry
	for rows.Next() {
		var item model.ScheduleEntry
		if err := rows.Scan(
			&item.ID, &item.TrackID, &item.Date, &item.Completed,
		); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

// LoadPointsSystem returns the points-per-position table.
func LoadPointsSystem(
	ctx context.Context,
	conn repository.Querier,
	leagueID int32,
) ([]model.PointsRow, error) {
	rows, err := conn.Query(ctx, `
	SELECT
		"position",
		points
	FROM leagues_leaguepointsposition
	WHERE league_id = $1
	ORDER BY "position" ASC
	`, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []model.PointsRow
	for rows.Next() {
		var item model.PointsRow
		if err := rows.Scan(&item.Position, &item.Points); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}

// LoadChampions returns the position-1 entry of every completed league,
// newest league first.
func LoadChampions(
	ctx context.Context,
	conn repository.Querier,
) ([]model.ChampionshipWinner, error) {
	rows, err := conn.Query(ctx, `
	SELECT
		l.id as league_id,
		l.name as league_name,
		e."PlayerName" as champion,
		e."Points" as points,
		e."Wins" as wins,
		e."Poles" as poles,
		e."Podiums" as podiums
	FROM leagues_league l
	JOIN leagues_leaguescoreboardentry e ON l.id = e.league_id
	WHERE l.completed = true
		AND e."Position" = 1
	ORDER BY l.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ret []model.ChampionshipWinner
	for rows.Next() {
		var item model.ChampionshipWinner
		if err := rows.Scan(
			&item.LeagueID, &item.LeagueName, &item.Champion,
			&item.Points, &item.Wins, &item.Poles, &item.Podiums,
		); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	return ret, rows.Err()
}
