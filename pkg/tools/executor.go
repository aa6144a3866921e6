package tools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/skidmark-racing/chorley/log"
	"github.com/skidmark-racing/chorley/pkg/format"
	"github.com/skidmark-racing/chorley/pkg/model"
	"github.com/skidmark-racing/chorley/pkg/query"
)

// Queries is the read surface the executor dispatches to. Implemented
// by query.Service; tests substitute a fake.
type Queries interface {
	RecentRaces(ctx context.Context, limit int, leagueID *int32) ([]model.Race, error)
	RaceResults(ctx context.Context, raceID int) (*model.RaceWithResults, error)
	DriverStats(ctx context.Context, driverName string, leagueID *int32) (*model.DriverStats, error)
	LeagueStandings(ctx context.Context, leagueID int32) ([]model.StandingEntry, error)
	ActiveLeagues(ctx context.Context) ([]model.League, error)
	CompletedLeagues(ctx context.Context) ([]model.League, error)
	MostRecentLeague(ctx context.Context, activeOnly bool) (*model.League, error)
	ChampionshipWinners(ctx context.Context) ([]model.ChampionshipWinner, error)
	ChampionshipStats(ctx context.Context) (*model.ChampionshipStats, error)
	LapTimes(ctx context.Context, raceID int, driverName *string) ([]model.LapEvent, error)
	HeadToHead(ctx context.Context, driver1, driver2 string) (*model.HeadToHead, error)
	SearchDrivers(ctx context.Context, q string) ([]string, error)
	AllRaces(ctx context.Context, limit int, trackName, vehicleClass *string) ([]model.Race, error)
	DriverRaceHistory(ctx context.Context, driverName string, limit int) ([]model.DriverRaceRow, error)
	RecentWinners(ctx context.Context, limit int) ([]model.RaceWinner, error)
	LeagueDetails(ctx context.Context, leagueID int32) (*model.LeagueDetails, error)
}

var _ Queries = (*query.Service)(nil)

// Call is one requested tool invocation.
type Call struct {
	Name string
	Args Args
}

// Result is the structured outcome of one call; Content carries either
// the payload or an error object, never both.
type Result struct {
	Name    string
	Content any
}

// Response shapes the result the way the model protocol expects.
func (r Result) Response() map[string]any {
	return map[string]any{"name": r.Name, "content": r.Content}
}

type handler func(ctx context.Context, args Args) (any, error)

const (
	defaultTimeout     = 15 * time.Second
	defaultMaxParallel = 5
)

type Executor struct {
	q           Queries
	log         *log.Logger
	handlers    map[string]handler
	timeout     time.Duration
	maxParallel int
}

type ExecutorOption func(*Executor)

func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) { e.timeout = d }
}

func WithMaxParallel(n int) ExecutorOption {
	return func(e *Executor) { e.maxParallel = n }
}

func WithExecutorLogger(l *log.Logger) ExecutorOption {
	return func(e *Executor) { e.log = l }
}

// NewExecutor builds the dispatch table and verifies it covers the
// catalog exactly. A missing or orphaned handler is a startup error,
// not something to discover at call time.
func NewExecutor(q Queries, opts ...ExecutorOption) (*Executor, error) {
	ret := &Executor{
		q:           q,
		log:         log.Default().Named("tools"),
		timeout:     defaultTimeout,
		maxParallel: defaultMaxParallel,
	}
	for _, opt := range opts {
		opt(ret)
	}
	ret.handlers = ret.buildHandlers()

	for _, name := range Names() {
		if _, ok := ret.handlers[name]; !ok {
			return nil, fmt.Errorf("catalog entry %q has no handler", name)
		}
	}
	for name := range ret.handlers {
		if !Has(name) {
			return nil, fmt.Errorf("handler %q is not declared in the catalog", name)
		}
	}
	return ret, nil
}

//nolint:funlen // one entry per catalog item
func (e *Executor) buildHandlers() map[string]handler {
	return map[string]handler{
		"getRecentRaces": func(ctx context.Context, args Args) (any, error) {
			return e.q.RecentRaces(ctx, args.IntOr("limit", 5), args.Int32Ptr("leagueId"))
		},
		"getRaceResults": func(ctx context.Context, args Args) (any, error) {
			raceID, err := args.RequireInt("raceId")
			if err != nil {
				return nil, err
			}
			return e.q.RaceResults(ctx, raceID)
		},
		"getDriverStats": func(ctx context.Context, args Args) (any, error) {
			name, err := args.RequireString("driverName")
			if err != nil {
				return nil, err
			}
			return e.q.DriverStats(ctx, name, args.Int32Ptr("leagueId"))
		},
		"getLeagueStandings": func(ctx context.Context, args Args) (any, error) {
			leagueID, err := args.RequireInt("leagueId")
			if err != nil {
				return nil, err
			}
			return e.q.LeagueStandings(ctx, int32(leagueID))
		},
		"getActiveLeagues": func(ctx context.Context, _ Args) (any, error) {
			return e.q.ActiveLeagues(ctx)
		},
		"getCompletedLeagues": func(ctx context.Context, _ Args) (any, error) {
			return e.q.CompletedLeagues(ctx)
		},
		"getMostRecentLeague": func(ctx context.Context, args Args) (any, error) {
			return e.q.MostRecentLeague(ctx, args.BoolOr("activeOnly", false))
		},
		"getChampionshipWinners": func(ctx context.Context, _ Args) (any, error) {
			return e.q.ChampionshipWinners(ctx)
		},
		"getChampionshipStats": func(ctx context.Context, _ Args) (any, error) {
			return e.q.ChampionshipStats(ctx)
		},
		"getLapTimes": func(ctx context.Context, args Args) (any, error) {
			raceID, err := args.RequireInt("raceId")
			if err != nil {
				return nil, err
			}
			return e.q.LapTimes(ctx, raceID, args.StringPtr("driverName"))
		},
		"getHeadToHead": func(ctx context.Context, args Args) (any, error) {
			driver1, err := args.RequireString("driver1")
			if err != nil {
				return nil, err
			}
			driver2, err := args.RequireString("driver2")
			if err != nil {
				return nil, err
			}
			return e.q.HeadToHead(ctx, driver1, driver2)
		},
		"searchDrivers": func(ctx context.Context, args Args) (any, error) {
			q, err := args.RequireString("query")
			if err != nil {
				return nil, err
			}
			return e.q.SearchDrivers(ctx, q)
		},
		"getAllRaces": func(ctx context.Context, args Args) (any, error) {
			return e.q.AllRaces(ctx, args.IntOr("limit", 20),
				args.StringPtr("trackName"), args.StringPtr("vehicleClass"))
		},
		"getDriverRaceHistory": func(ctx context.Context, args Args) (any, error) {
			name, err := args.RequireString("driverName")
			if err != nil {
				return nil, err
			}
			return e.q.DriverRaceHistory(ctx, name, args.IntOr("limit", 20))
		},
		"getRecentWinners": func(ctx context.Context, args Args) (any, error) {
			return e.q.RecentWinners(ctx, args.IntOr("limit", 10))
		},
		"getLeagueDetails": func(ctx context.Context, args Args) (any, error) {
			leagueID, err := args.RequireInt("leagueId")
			if err != nil {
				return nil, err
			}
			return e.q.LeagueDetails(ctx, int32(leagueID))
		},
		"formatLapTime": func(_ context.Context, args Args) (any, error) {
			ms, err := args.RequireInt("milliseconds")
			if err != nil {
				return nil, err
			}
			return map[string]any{"formatted_time": format.LapTime(int64(ms))}, nil
		},
	}
}

// Execute runs one call and always produces a structurally valid
// result. Unknown names and handler failures become error content;
// nothing escapes as a Go error.
func (e *Executor) Execute(ctx context.Context, call Call) Result {
	h, ok := e.handlers[call.Name]
	if !ok {
		return Result{
			Name:    call.Name,
			Content: map[string]any{"error": "unknown function: " + call.Name},
		}
	}
	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	start := time.Now()
	payload, err := h(ctx, call.Args)
	if err != nil {
		if errors.Is(err, query.ErrNotFound) {
			return Result{
				Name: call.Name,
				Content: map[string]any{
					"found":   false,
					"message": "no matching records",
				},
			}
		}
		e.log.Warn("tool call failed",
			log.String("name", call.Name),
			log.ErrorField(err))
		return Result{
			Name:    call.Name,
			Content: map[string]any{"error": err.Error()},
		}
	}
	e.log.Debug("tool call done",
		log.String("name", call.Name),
		log.Duration("took", time.Since(start)))
	return Result{Name: call.Name, Content: payload}
}

// ExecuteAll runs a round's calls concurrently and waits for all of
// them. The returned slice preserves the request order so results can
// be correlated with the model's call sequence. One call failing
// never affects its siblings.
func (e *Executor) ExecuteAll(ctx context.Context, calls []Call) []Result {
	results := make([]Result, len(calls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.maxParallel)
	for i, call := range calls {
		g.Go(func() error {
			results[i] = e.Execute(gctx, call)
			return nil
		})
	}
	//nolint:errcheck // workers never return errors
	g.Wait()
	return results
}
