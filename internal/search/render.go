package search

import (
	"fmt"
	"io"
	"strings"

	"github.com/lhvu/memctl/internal/model"
)

// Render writes a readable view of ranked results. An empty result set gets
// its own message so it cannot be mistaken for a failed request.
func Render(w io.Writer, resp *model.SearchResponse) {
	if resp.Total == 0 {
		fmt.Fprintf(w, "No memories matched %q.\n", resp.Query)
		return
	}

	fmt.Fprintf(w, "Found %d result(s) for %q\n\n", resp.Total, resp.Query)
	for _, r := range resp.Results {
		fmt.Fprintf(w, "[%s] sim=%.3f score=%.3f\n", r.ContentType, r.Similarity, r.FinalScore)
		fmt.Fprintf(w, "  %s\n", indent(r.RawText))
		fmt.Fprintf(w, "  id=%s date=%s", shortID(r.ID), r.CreatedAt.Format("2006-01-02"))
		if r.ImportanceScore != nil {
			fmt.Fprintf(w, " importance=%.2f", *r.ImportanceScore)
		}
		if len(r.Metadata.Tags) > 0 {
			fmt.Fprintf(w, " tags=%s", strings.Join(r.Metadata.Tags, ","))
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w)
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func indent(text string) string {
	return strings.ReplaceAll(strings.TrimSpace(text), "\n", "\n  ")
}
