// Package query is the read side of the bot: parameterized lookups and
// aggregates over the league database, with reference ids resolved to
// display names before anything leaves this package.
package query

import (
	"context"

	"github.com/samber/lo"

	"github.com/skidmark-racing/chorley/log"
	"github.com/skidmark-racing/chorley/pkg/model"
	"github.com/skidmark-racing/chorley/pkg/reference"
	"github.com/skidmark-racing/chorley/pkg/repository"
	driverrepo "github.com/skidmark-racing/chorley/pkg/repository/driver"
	leaguerepo "github.com/skidmark-racing/chorley/pkg/repository/league"
	racerepo "github.com/skidmark-racing/chorley/pkg/repository/race"
)

// ErrNotFound is re-exported so callers don't need to import the
// repository package for the common case.
var ErrNotFound = repository.ErrNotFound

const maxLimit = 50

// allRaces fetches a superset before filtering on enriched names
const overFetchFactor = 2

type Service struct {
	conn repository.Querier
	refs *reference.Index
	log  *log.Logger
}

type Option func(*Service)

func WithConn(conn repository.Querier) Option {
	return func(s *Service) { s.conn = conn }
}

func WithReferenceIndex(refs *reference.Index) Option {
	return func(s *Service) { s.refs = refs }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.log = l }
}

func NewService(opts ...Option) *Service {
	ret := &Service{log: log.Default().Named("query")}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func clampLimit(limit, fallback int) int {
	if limit <= 0 {
		return fallback
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func (s *Service) enrichRace(r model.Race) model.Race {
	r.TrackName = s.refs.TrackName(r.TrackID)
	r.VehicleClassName = s.refs.VehicleClassName(r.VehicleClassID)
	r.VehicleName = s.refs.VehicleName(r.VehicleModelID)
	return r
}

// RecentRaces returns the most recently ended finished races, newest
// first, optionally restricted to one league.
func (s *Service) RecentRaces(
	ctx context.Context, limit int, leagueID *int32,
) ([]model.Race, error) {
	races, err := racerepo.LoadRecent(ctx, s.conn, clampLimit(limit, 10), leagueID)
	if err != nil {
		return nil, err
	}
	return lo.Map(races, func(r model.Race, _ int) model.Race {
		return s.enrichRace(r)
	}), nil
}

// RaceResults returns race metadata plus the classification.
// ErrNotFound for an unknown race id.
func (s *Service) RaceResults(
	ctx context.Context, raceID int,
) (*model.RaceWithResults, error) {
	detail, err := racerepo.LoadDetail(ctx, s.conn, raceID)
	if err != nil {
		return nil, err
	}
	detail.Race = s.enrichRace(detail.Race)
	results, err := racerepo.LoadResults(ctx, s.conn, raceID)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].VehicleName = s.refs.VehicleName(results[i].VehicleID)
	}
	return &model.RaceWithResults{Race: *detail, Results: results}, nil
}

func (s *Service) DriverStats(
	ctx context.Context, driverName string, leagueID *int32,
) (*model.DriverStats, error) {
	return driverrepo.LoadStats(ctx, s.conn, driverName, leagueID)
}

func (s *Service) LeagueStandings(
	ctx context.Context, leagueID int32,
) ([]model.StandingEntry, error) {
	return leaguerepo.LoadStandings(ctx, s.conn, leagueID)
}

func (s *Service) ActiveLeagues(ctx context.Context) ([]model.League, error) {
	return leaguerepo.LoadByCompletion(ctx, s.conn, false)
}

func (s *Service) CompletedLeagues(ctx context.Context) ([]model.League, error) {
	return leaguerepo.LoadByCompletion(ctx, s.conn, true)
}

func (s *Service) MostRecentLeague(
	ctx context.Context, activeOnly bool,
) (*model.League, error) {
	return leaguerepo.LoadMostRecent(ctx, s.conn, activeOnly)
}

func (s *Service) ChampionshipWinners(
	ctx context.Context,
) ([]model.ChampionshipWinner, error) {
	return leaguerepo.LoadChampions(ctx, s.conn)
}

// ChampionshipStats derives title counts and back-to-back runs from
// the champions list.
func (s *Service) ChampionshipStats(
	ctx context.Context,
) (*model.ChampionshipStats, error) {
	champions, err := leaguerepo.LoadChampions(ctx, s.conn)
	if err != nil {
		return nil, err
	}
	return buildChampionshipStats(champions), nil
}

func (s *Service) LapTimes(
	ctx context.Context, raceID int, driverName *string,
) ([]model.LapEvent, error) {
	return racerepo.LoadLapEvents(ctx, s.conn, raceID, driverName)
}

func (s *Service) HeadToHead(
	ctx context.Context, driver1, driver2 string,
) (*model.HeadToHead, error) {
	return driverrepo.LoadHeadToHead(ctx, s.conn, driver1, driver2)
}

func (s *Service) SearchDrivers(
	ctx context.Context, query string,
) ([]string, error) {
	return driverrepo.Search(ctx, s.conn, query)
}

// AllRaces over-fetches, enriches, filters on the enriched names in
// memory and truncates to limit. Track/vehicle-class ids are opaque
// hashes, so name filters can only be applied after enrichment.
func (s *Service) AllRaces(
	ctx context.Context, limit int, trackName, vehicleClass *string,
) ([]model.Race, error) {
	limit = clampLimit(limit, 20)
	races, err := racerepo.LoadRecent(ctx, s.conn, limit*overFetchFactor, nil)
	if err != nil {
		return nil, err
	}
	enriched := lo.Map(races, func(r model.Race, _ int) model.Race {
		return s.enrichRace(r)
	})
	ret := filterRaces(enriched, trackName, vehicleClass, limit)
	s.log.Debug("filtered races",
		log.Int("fetched", len(races)),
		log.Int("matched", len(ret)))
	return ret, nil
}

func (s *Service) DriverRaceHistory(
	ctx context.Context, driverName string, limit int,
) ([]model.DriverRaceRow, error) {
	rows, err := racerepo.LoadDriverHistory(ctx, s.conn, driverName,
		clampLimit(limit, 20))
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TrackName = s.refs.TrackName(rows[i].TrackID)
		rows[i].VehicleClassName = s.refs.VehicleClassName(rows[i].VehicleClassID)
	}
	return rows, nil
}

func (s *Service) RecentWinners(
	ctx context.Context, limit int,
) ([]model.RaceWinner, error) {
	rows, err := racerepo.LoadRecentWinners(ctx, s.conn, clampLimit(limit, 10))
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].TrackName = s.refs.TrackName(rows[i].TrackID)
		rows[i].VehicleClassName = s.refs.VehicleClassName(rows[i].VehicleClassID)
	}
	return rows, nil
}

// LeagueDetails is the composite league view: metadata, standings,
// schedule, points system and completed races.
func (s *Service) LeagueDetails(
	ctx context.Context, leagueID int32,
) (*model.LeagueDetails, error) {
	lg, err := leaguerepo.LoadByID(ctx, s.conn, leagueID)
	if err != nil {
		return nil, err
	}
	standings, err := leaguerepo.LoadStandings(ctx, s.conn, leagueID)
	if err != nil {
		return nil, err
	}
	schedule, err := leaguerepo.LoadSchedule(ctx, s.conn, leagueID)
	if err != nil {
		return nil, err
	}
	for i := range schedule {
		schedule[i].TrackName = s.refs.TrackName(schedule[i].TrackID)
	}
	points, err := leaguerepo.LoadPointsSystem(ctx, s.conn, leagueID)
	if err != nil {
		return nil, err
	}
	races, err := racerepo.LoadByLeague(ctx, s.conn, leagueID)
	if err != nil {
		return nil, err
	}
	for i := range races {
		races[i].TrackName = s.refs.TrackName(races[i].TrackID)
	}
	return &model.LeagueDetails{
		League:         *lg,
		Standings:      standings,
		Schedule:       schedule,
		PointsSystem:   points,
		RacesCompleted: races,
	}, nil
}

// ReloadReference re-reads the reference catalogs in place.
func (s *Service) ReloadReference() {
	s.refs.Reload()
}
