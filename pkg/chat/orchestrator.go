// Package chat drives the conversation loop between users, the
// generative model and the tool executor.
package chat

import (
	"context"
	"errors"
	"time"

	"github.com/skidmark-racing/chorley/log"
	"github.com/skidmark-racing/chorley/pkg/tools"
)

const (
	defaultMaxRounds  = 5
	defaultTurnBudget = 2 * time.Minute

	apologyText = "Sorry, I'm having technical difficulties at the moment."
	emptyText   = "Sorry, I couldn't come up with an answer to that one."
)

// ErrEmptyResponse signals that the model produced no usable content.
var ErrEmptyResponse = errors.New("model returned no usable content")

// Reply is the outcome of one user turn. Intermediate carries any
// narration the model produced alongside tool requests, in order.
type Reply struct {
	FinalText    string
	Intermediate []string
}

type Orchestrator struct {
	model      Model
	exec       *tools.Executor
	log        *log.Logger
	maxRounds  int
	turnBudget time.Duration
}

type Option func(*Orchestrator)

func WithModel(m Model) Option {
	return func(o *Orchestrator) { o.model = m }
}

func WithExecutor(e *tools.Executor) Option {
	return func(o *Orchestrator) { o.exec = e }
}

func WithMaxRounds(n int) Option {
	return func(o *Orchestrator) {
		if n > 0 {
			o.maxRounds = n
		}
	}
}

func WithTurnBudget(d time.Duration) Option {
	return func(o *Orchestrator) {
		if d > 0 {
			o.turnBudget = d
		}
	}
}

func WithLogger(l *log.Logger) Option {
	return func(o *Orchestrator) { o.log = l }
}

func NewOrchestrator(opts ...Option) *Orchestrator {
	ret := &Orchestrator{
		log:        log.Default().Named("chat"),
		maxRounds:  defaultMaxRounds,
		turnBudget: defaultTurnBudget,
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// HandleUserTurn runs the full round loop for one user message and
// never fails: every error path degrades to a user-visible message.
// Messages carry the author so the model can tell users apart.
func (o *Orchestrator) HandleUserTurn(
	ctx context.Context, convID, author, text string,
) *Reply {
	ctx, cancel := context.WithTimeout(ctx, o.turnBudget)
	defer cancel()

	reply, err := o.model.SendText(ctx, convID, author+" >> "+text)
	ret := &Reply{}
	for round := 1; ; round++ {
		if err != nil {
			return o.failed(ret, err)
		}
		if len(reply.Calls) == 0 {
			final := Sanitize(reply.Text)
			if final == "" {
				o.log.Warn("model produced no text", log.String("conv", convID))
				ret.FinalText = emptyText
				return ret
			}
			ret.FinalText = final
			return ret
		}
		// narration attached to a tool-requesting round surfaces
		// before the final text
		if narration := Sanitize(reply.Text); narration != "" {
			ret.Intermediate = append(ret.Intermediate, narration)
		}
		if round >= o.maxRounds {
			o.log.Warn("round limit reached",
				log.String("conv", convID),
				log.Int("rounds", round))
			ret.FinalText = o.lastResort(ret)
			return ret
		}
		o.log.Debug("executing tool calls",
			log.String("conv", convID),
			log.Int("round", round),
			log.Int("calls", len(reply.Calls)))
		results := o.exec.ExecuteAll(ctx, reply.Calls)
		reply, err = o.model.SendToolResults(ctx, convID, results)
	}
}

// Reset discards the conversation history so the next turn starts
// from a clean slate.
func (o *Orchestrator) Reset(convID string) {
	o.model.Reset(convID)
}

func (o *Orchestrator) failed(ret *Reply, err error) *Reply {
	if errors.Is(err, ErrEmptyResponse) {
		ret.FinalText = emptyText
		return ret
	}
	o.log.Error("model round trip failed", log.ErrorField(err))
	ret.FinalText = apologyText
	return ret
}

// lastResort finalizes a turn that hit the round limit: whatever
// narration we already have, or a generic fallback.
func (o *Orchestrator) lastResort(ret *Reply) string {
	if n := len(ret.Intermediate); n > 0 {
		last := ret.Intermediate[n-1]
		ret.Intermediate = ret.Intermediate[:n-1]
		return last
	}
	return apologyText
}
