//nolint:funlen // ok for tests
package chat

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skidmark-racing/chorley/pkg/model"
	"github.com/skidmark-racing/chorley/pkg/tools"
)

// scriptedModel replays a fixed sequence of replies and records what it
// was sent.
type scriptedModel struct {
	replies   []*ModelReply
	errs      []error
	step      int
	sentTexts []string
	sentTools [][]tools.Result
	resets    []string
}

func (m *scriptedModel) next() (*ModelReply, error) {
	defer func() { m.step++ }()
	var err error
	if m.step < len(m.errs) {
		err = m.errs[m.step]
	}
	if err != nil {
		return nil, err
	}
	return m.replies[m.step], nil
}

func (m *scriptedModel) SendText(
	_ context.Context, _, text string,
) (*ModelReply, error) {
	m.sentTexts = append(m.sentTexts, text)
	return m.next()
}

func (m *scriptedModel) SendToolResults(
	_ context.Context, _ string, results []tools.Result,
) (*ModelReply, error) {
	m.sentTools = append(m.sentTools, results)
	return m.next()
}

func (m *scriptedModel) Reset(convID string) {
	m.resets = append(m.resets, convID)
}

func newTestOrchestrator(t *testing.T, m Model) *Orchestrator {
	t.Helper()
	exec, err := tools.NewExecutor(queriesStub{})
	require.NoError(t, err)
	return NewOrchestrator(WithModel(m), WithExecutor(exec))
}

func TestHandleUserTurnDirectAnswer(t *testing.T) {
	m := &scriptedModel{replies: []*ModelReply{{Text: `"Verstappen won."`}}}
	o := newTestOrchestrator(t, m)

	reply := o.HandleUserTurn(context.Background(), "c1", "dave", "who won?")

	assert.Equal(t, "Verstappen won.", reply.FinalText)
	assert.Empty(t, reply.Intermediate)
	require.Len(t, m.sentTexts, 1)
	assert.Equal(t, "dave >> who won?", m.sentTexts[0])
}

func TestHandleUserTurnWithToolRound(t *testing.T) {
	m := &scriptedModel{replies: []*ModelReply{
		{
			Text:  "Let me check.",
			Calls: []tools.Call{{Name: "getRecentRaces", Args: tools.Args{}}},
		},
		{Text: "The last race was at Spa."},
	}}
	o := newTestOrchestrator(t, m)

	reply := o.HandleUserTurn(context.Background(), "c1", "dave", "last race?")

	assert.Equal(t, "The last race was at Spa.", reply.FinalText)
	assert.Equal(t, []string{"Let me check."}, reply.Intermediate)
	require.Len(t, m.sentTools, 1)
	require.Len(t, m.sentTools[0], 1)
	assert.Equal(t, "getRecentRaces", m.sentTools[0][0].Name)
}

func TestHandleUserTurnRoundLimit(t *testing.T) {
	// model keeps asking for tools forever
	loop := &ModelReply{
		Text:  "still digging",
		Calls: []tools.Call{{Name: "getRecentRaces", Args: tools.Args{}}},
	}
	m := &scriptedModel{replies: []*ModelReply{loop, loop, loop}}
	exec, err := tools.NewExecutor(queriesStub{})
	require.NoError(t, err)
	o := NewOrchestrator(WithModel(m), WithExecutor(exec), WithMaxRounds(3))

	reply := o.HandleUserTurn(context.Background(), "c1", "dave", "spiral")

	// the last narration becomes the final answer
	assert.Equal(t, "still digging", reply.FinalText)
	assert.Len(t, reply.Intermediate, 2)
	// two tool rounds ran before the limit hit on round 3
	assert.Len(t, m.sentTools, 2)
}

func TestHandleUserTurnModelError(t *testing.T) {
	m := &scriptedModel{
		replies: []*ModelReply{nil},
		errs:    []error{errors.New("quota exceeded")},
	}
	o := newTestOrchestrator(t, m)

	reply := o.HandleUserTurn(context.Background(), "c1", "dave", "hi")
	assert.Equal(t, apologyText, reply.FinalText)
}

func TestHandleUserTurnEmptyResponse(t *testing.T) {
	m := &scriptedModel{
		replies: []*ModelReply{nil},
		errs:    []error{ErrEmptyResponse},
	}
	o := newTestOrchestrator(t, m)

	reply := o.HandleUserTurn(context.Background(), "c1", "dave", "hi")
	assert.Equal(t, emptyText, reply.FinalText)
}

func TestHandleUserTurnBlankText(t *testing.T) {
	m := &scriptedModel{replies: []*ModelReply{{Text: "   "}}}
	o := newTestOrchestrator(t, m)

	reply := o.HandleUserTurn(context.Background(), "c1", "dave", "hi")
	assert.Equal(t, emptyText, reply.FinalText)
}

// stalledModel blocks until the turn's context expires.
type stalledModel struct{}

func (stalledModel) SendText(
	ctx context.Context, _, _ string,
) (*ModelReply, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stalledModel) SendToolResults(
	ctx context.Context, _ string, _ []tools.Result,
) (*ModelReply, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stalledModel) Reset(string) {}

func TestHandleUserTurnBudgetExceeded(t *testing.T) {
	exec, err := tools.NewExecutor(queriesStub{})
	require.NoError(t, err)
	o := NewOrchestrator(
		WithModel(stalledModel{}),
		WithExecutor(exec),
		WithTurnBudget(20*time.Millisecond))

	start := time.Now()
	reply := o.HandleUserTurn(context.Background(), "c1", "dave", "hello?")

	assert.Equal(t, apologyText, reply.FinalText)
	assert.Less(t, time.Since(start), time.Second)
}

func TestReset(t *testing.T) {
	m := &scriptedModel{}
	o := newTestOrchestrator(t, m)
	o.Reset("c7")
	assert.Equal(t, []string{"c7"}, m.resets)
}

// queriesStub satisfies tools.Queries with empty answers; the
// orchestrator tests only care about the loop mechanics.
type queriesStub struct{}

func (queriesStub) RecentRaces(
	_ context.Context, _ int, _ *int32,
) ([]model.Race, error) {
	return nil, nil
}

func (queriesStub) RaceResults(
	_ context.Context, _ int,
) (*model.RaceWithResults, error) {
	return &model.RaceWithResults{}, nil
}

func (queriesStub) DriverStats(
	_ context.Context, _ string, _ *int32,
) (*model.DriverStats, error) {
	return &model.DriverStats{}, nil
}

func (queriesStub) LeagueStandings(
	_ context.Context, _ int32,
) ([]model.StandingEntry, error) {
	return nil, nil
}

func (queriesStub) ActiveLeagues(_ context.Context) ([]model.League, error) {
	return nil, nil
}

func (queriesStub) CompletedLeagues(_ context.Context) ([]model.League, error) {
	return nil, nil
}

func (queriesStub) MostRecentLeague(
	_ context.Context, _ bool,
) (*model.League, error) {
	return &model.League{}, nil
}

func (queriesStub) ChampionshipWinners(
	_ context.Context,
) ([]model.ChampionshipWinner, error) {
	return nil, nil
}

func (queriesStub) ChampionshipStats(
	_ context.Context,
) (*model.ChampionshipStats, error) {
	return &model.ChampionshipStats{}, nil
}

func (queriesStub) LapTimes(
	_ context.Context, _ int, _ *string,
) ([]model.LapEvent, error) {
	return nil, nil
}

func (queriesStub) HeadToHead(
	_ context.Context, _, _ string,
) (*model.HeadToHead, error) {
	return &model.HeadToHead{}, nil
}

func (queriesStub) SearchDrivers(_ context.Context, _ string) ([]string, error) {
	return nil, nil
}

func (queriesStub) AllRaces(
	_ context.Context, _ int, _, _ *string,
) ([]model.Race, error) {
	return nil, nil
}

func (queriesStub) DriverRaceHistory(
	_ context.Context, _ string, _ int,
) ([]model.DriverRaceRow, error) {
	return nil, nil
}

func (queriesStub) RecentWinners(
	_ context.Context, _ int,
) ([]model.RaceWinner, error) {
	return nil, nil
}

func (queriesStub) LeagueDetails(
	_ context.Context, _ int32,
) (*model.LeagueDetails, error) {
	return &model.LeagueDetails{}, nil
}
