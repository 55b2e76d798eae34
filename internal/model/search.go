package model

import "fmt"

// SearchRequest is the body of POST /api/v1/search. ContentType is omitted
// when empty: "no filter" and "filter by empty string" are not the same
// request. Threshold and Limit are always sent; the configurator fills in
// defaults before the request is built.
type SearchRequest struct {
	Query       string  `json:"query"`
	ContentType string  `json:"content_type,omitempty"`
	Threshold   float64 `json:"threshold"`
	Limit       int     `json:"limit"`
}

// SearchResult is one ranked hit. Similarity and FinalScore are computed
// server-side and treated as opaque, display-only values.
type SearchResult struct {
	Memory
	Similarity float64 `json:"similarity"`
	FinalScore float64 `json:"final_score"`
}

// SearchResponse is the decoded body of a search. Zero results with Total
// zero is a valid outcome, not an error.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
	Total   int            `json:"total"`
	Query   string         `json:"query"`
}

// CheckComplete verifies the echoed query, the one field a search response
// must always carry.
func (r *SearchResponse) CheckComplete() error {
	if r.Query == "" {
		return errMissingField("query")
	}
	return nil
}

func errMissingField(name string) error {
	return fmt.Errorf("response missing required field %q", name)
}
