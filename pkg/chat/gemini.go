package chat

import (
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"
	"google.golang.org/genai"

	"github.com/skidmark-racing/chorley/pkg/tools"
)

// DefaultSystemPrompt is the bot persona used when no override is
// configured.
const DefaultSystemPrompt = "Your name is Chorley, and you are a bot designed " +
	"to chat with users of a simulator racing league. " +
	"Each message you receive comes from a user in that chat, structured as " +
	"'username >> message'; remember who sends what based on that username. " +
	"You have access to a database with race results, driver statistics, and " +
	"championship standings through the provided functions. When a question " +
	"needs multiple pieces of data, call multiple functions at once. " +
	"IMPORTANT: all lap times are in milliseconds; use the formatLapTime " +
	"function to convert them to a readable format before quoting them. " +
	"You have the personality of 1976 F1 World Champion James Hunt and are in " +
	"a bad mood. You are disgusted by the state of modern racing and very " +
	"opinionated. Be open to conversation but brief and blunt."

// GeminiModel implements Model on the Gemini API. Turn history is
// kept per conversation id and only committed after a verified
// successful round, so a failed round trip can be retried cleanly.
type GeminiModel struct {
	client     *genai.Client
	model      string
	system     string
	tools      []*genai.Tool
	maxHistory int

	mu   sync.Mutex
	hist map[string][]*genai.Content
}

type GeminiOption func(*GeminiModel)

func WithSystemPrompt(prompt string) GeminiOption {
	return func(m *GeminiModel) {
		if prompt != "" {
			m.system = prompt
		}
	}
}

// WithMaxHistory caps the per-conversation history length in content
// entries; the oldest entries drop first. Zero means unbounded.
func WithMaxHistory(n int) GeminiOption {
	return func(m *GeminiModel) { m.maxHistory = n }
}

func WithTools(t []*genai.Tool) GeminiOption {
	return func(m *GeminiModel) { m.tools = t }
}

//nolint:whitespace // can't make both editor and linter happy
func NewGeminiModel(
	ctx context.Context,
	apiKey, model string,
	opts ...GeminiOption,
) (*GeminiModel, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	ret := &GeminiModel{
		client: client,
		model:  model,
		system: DefaultSystemPrompt,
		tools:  tools.Tools(),
		hist:   map[string][]*genai.Content{},
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret, nil
}

func (m *GeminiModel) SendText(
	ctx context.Context, convID, text string,
) (*ModelReply, error) {
	return m.send(ctx, convID, genai.NewContentFromText(text, genai.RoleUser))
}

func (m *GeminiModel) SendToolResults(
	ctx context.Context, convID string, results []tools.Result,
) (*ModelReply, error) {
	parts := lo.Map(results, func(r tools.Result, _ int) *genai.Part {
		return genai.NewPartFromFunctionResponse(r.Name, r.Response())
	})
	return m.send(ctx, convID, &genai.Content{
		Role:  genai.RoleUser,
		Parts: parts,
	})
}

func (m *GeminiModel) Reset(convID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.hist, convID)
}

func (m *GeminiModel) send(
	ctx context.Context, convID string, content *genai.Content,
) (*ModelReply, error) {
	m.mu.Lock()
	contents := slices.Clone(m.hist[convID])
	m.mu.Unlock()
	contents = append(contents, content)

	cfg := &genai.GenerateContentConfig{
		Tools:             m.tools,
		SystemInstruction: genai.NewContentFromText(m.system, genai.RoleUser),
	}
	resp, err := m.client.Models.GenerateContent(ctx, m.model, contents, cfg)
	if err != nil {
		return nil, err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, ErrEmptyResponse
	}
	modelContent := resp.Candidates[0].Content

	m.commit(convID, content, modelContent)

	return replyFromParts(modelContent.Parts), nil
}

// replyFromParts aggregates a candidate's parts: text fragments are
// concatenated, function calls collected in order.
func replyFromParts(parts []*genai.Part) *ModelReply {
	reply := &ModelReply{}
	for _, p := range parts {
		if p == nil {
			continue
		}
		if p.Text != "" {
			reply.Text += p.Text
		}
		if p.FunctionCall != nil {
			reply.Calls = append(reply.Calls, tools.Call{
				Name: p.FunctionCall.Name,
				Args: tools.Args(p.FunctionCall.Args),
			})
		}
	}
	return reply
}

// commit appends a verified round to the history and enforces the cap.
func (m *GeminiModel) commit(convID string, turns ...*genai.Content) {
	m.mu.Lock()
	defer m.mu.Unlock()
	h := append(m.hist[convID], turns...)
	if m.maxHistory > 0 && len(h) > m.maxHistory {
		h = h[len(h)-m.maxHistory:]
	}
	m.hist[convID] = h
}
