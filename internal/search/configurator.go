// Package search builds ranked semantic-search requests and renders the
// ranked results.
package search

import (
	"context"
	"fmt"
	"strings"

	"github.com/lhvu/memctl/internal/model"
)

// Defaults keep a search well-formed even with minimal input. They match
// what the service UI suggests, not the service's own fallbacks.
const (
	DefaultThreshold = 0.45
	DefaultLimit     = 10
	MaxLimit         = 100
)

// Searcher executes one ranked search against the service.
type Searcher interface {
	Search(ctx context.Context, req model.SearchRequest) (*model.SearchResponse, error)
}

// Options parameterize a search. A nil Threshold or zero Limit takes the
// default; an empty ContentType means no filter and stays off the wire.
type Options struct {
	ContentType string
	Threshold   *float64
	Limit       int
}

// Configurator turns user input into well-formed search requests. Ordering
// and scores in the response are authoritative; nothing is re-ranked or
// re-filtered client-side.
type Configurator struct {
	searcher Searcher
}

// NewConfigurator creates a configurator searching through s.
func NewConfigurator(s Searcher) *Configurator {
	return &Configurator{searcher: s}
}

// Search runs query with opts. Zero results is a valid outcome, returned
// as a response with Total 0, never as an error.
func (c *Configurator) Search(ctx context.Context, query string, opts Options) (*model.SearchResponse, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if opts.ContentType != "" && !model.ValidContentTypes[opts.ContentType] {
		return nil, fmt.Errorf("unknown content type %q", opts.ContentType)
	}

	threshold := DefaultThreshold
	if opts.Threshold != nil {
		threshold = clamp01(*opts.Threshold)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return c.searcher.Search(ctx, model.SearchRequest{
		Query:       query,
		ContentType: opts.ContentType,
		Threshold:   threshold,
		Limit:       limit,
	})
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
