// Package reason dispatches reasoning queries and keeps the conversation
// transcript.
package reason

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/lhvu/memctl/internal/model"
)

// ErrQueryInFlight is returned when Ask is called while a previous query on
// the same conversation has not completed. Turns are serialized so answers
// cannot arrive out of order relative to what the user sent.
var ErrQueryInFlight = errors.New("a query is already in flight for this conversation")

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleError     = "error"
)

// Turn is one entry in a conversation transcript.
type Turn struct {
	ID        string    `json:"id,omitempty"`
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Mode      string    `json:"mode,omitempty"`
	Memories  int       `json:"memories,omitempty"`
	Tokens    int       `json:"tokens,omitempty"`
	LatencyMs int       `json:"latency_ms,omitempty"`
	External  bool      `json:"external,omitempty"`
	At        time.Time `json:"at"`
}

// Querier executes one reasoning query against the service.
type Querier interface {
	Query(ctx context.Context, req model.QueryRequest) (*model.QueryResponse, error)
}

// AskOptions parameterize one query. Mode defaults to RECALL. ContentType
// and Threshold are forwarded only when set so the service applies its own
// defaults otherwise.
type AskOptions struct {
	Mode        string
	ContentType string
	Threshold   *float64
}

// Conversation holds a transcript and serializes queries: at most one in
// flight at a time.
type Conversation struct {
	querier Querier

	mu       sync.Mutex
	inFlight bool
	turns    []Turn
}

// NewConversation creates an empty conversation dispatching through q.
func NewConversation(q Querier) *Conversation {
	return &Conversation{querier: q}
}

// Ask sends query in the chosen mode, appends the user turn and the
// assistant (or error) turn to the transcript, and returns the assistant
// turn. A second Ask while one is pending fails with ErrQueryInFlight.
func (c *Conversation) Ask(ctx context.Context, query string, opts AskOptions) (*Turn, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	mode := opts.Mode
	if mode == "" {
		mode = model.ModeRecall
	}
	if !model.ValidMode(mode) {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return nil, ErrQueryInFlight
	}
	c.inFlight = true
	c.turns = append(c.turns, Turn{Role: RoleUser, Text: query, Mode: mode, At: time.Now()})
	c.mu.Unlock()

	var threshold *float64
	if opts.Threshold != nil {
		clamped := clamp01(*opts.Threshold)
		threshold = &clamped
	}

	resp, err := c.querier.Query(ctx, model.QueryRequest{
		Query:       query,
		Mode:        mode,
		ContentType: opts.ContentType,
		Threshold:   threshold,
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = false

	if err != nil {
		c.turns = append(c.turns, Turn{Role: RoleError, Text: err.Error(), Mode: mode, At: time.Now()})
		return nil, err
	}

	turn := Turn{
		Role:      RoleAssistant,
		Text:      resp.Response,
		Mode:      resp.Mode,
		Memories:  resp.MemoryCount(),
		Tokens:    resp.Tokens(),
		LatencyMs: resp.LatencyMs,
		External:  resp.ExternalKnowledgeUsed,
		At:        time.Now(),
	}
	c.turns = append(c.turns, turn)
	return &turn, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Turns returns a copy of the transcript in order.
func (c *Conversation) Turns() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}
