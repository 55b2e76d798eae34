package ingest

import (
	"context"

	"github.com/lhvu/memctl/internal/model"
)

// Saver stores one record on the remote service.
type Saver interface {
	SaveMemory(ctx context.Context, req model.MemoryCreateRequest) (*model.Memory, error)
}

// Outcome aggregates one bulk run. It is reported to the caller once and
// then discarded; only the most recent failure message is kept.
type Outcome struct {
	Attempted int      `json:"attempted"`
	Succeeded int      `json:"succeeded"`
	Failed    int      `json:"failed"`
	LastError string   `json:"last_error,omitempty"`
	SavedIDs  []string `json:"saved_ids,omitempty"`
}

// OK reports whether every item was persisted.
func (o Outcome) OK() bool {
	return o.Failed == 0
}

// Pipeline submits validated candidates one at a time, in input order.
// Sequential on purpose: each save is an independent round trip, and one
// writer at a time keeps the outcome bounded and the store free of
// interleaved partial writes.
type Pipeline struct {
	saver Saver
}

// NewPipeline creates a pipeline submitting through saver.
func NewPipeline(saver Saver) *Pipeline {
	return &Pipeline{saver: saver}
}

// Run submits each item and aggregates the outcome. A failed item is
// counted and does not stop the items after it. Callers must have run
// NormalizeBatch first; Run does not re-validate.
//
// The service enqueues an embedding job per saved record; Run does not
// wait for or verify that.
func (p *Pipeline) Run(ctx context.Context, items []model.MemoryCreateRequest) Outcome {
	out := Outcome{Attempted: len(items)}
	for _, item := range items {
		mem, err := p.saver.SaveMemory(ctx, item)
		if err != nil {
			out.Failed++
			out.LastError = err.Error()
			continue
		}
		out.Succeeded++
		out.SavedIDs = append(out.SavedIDs, mem.ID)
	}
	return out
}
