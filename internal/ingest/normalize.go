// Package ingest validates, normalizes, and submits candidate memory
// records. Validation is all-or-nothing across a batch and happens before
// any network call; submission failures are a separate, per-item concern
// handled by the pipeline.
package ingest

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/lhvu/memctl/internal/model"
)

// ValidationError is a local, pre-flight rejection. Item is the 1-based
// position of the offending candidate, 0 when the batch as a whole is bad.
type ValidationError struct {
	Item int
	Rule string
}

func (e *ValidationError) Error() string {
	if e.Item == 0 {
		return "invalid batch: " + e.Rule
	}
	return fmt.Sprintf("item %d: %s", e.Item, e.Rule)
}

// ParseBatch decodes free-form JSON that is either a single candidate
// record or an array of them. The single-or-list shape is resolved here,
// once; everything downstream sees a list.
func ParseBatch(data []byte) ([]model.MemoryCreateRequest, error) {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "" {
		return nil, &ValidationError{Rule: "input is empty"}
	}

	if strings.HasPrefix(trimmed, "[") {
		var items []model.MemoryCreateRequest
		if err := json.Unmarshal(data, &items); err != nil {
			return nil, &ValidationError{Rule: "invalid JSON: " + err.Error()}
		}
		return items, nil
	}

	var item model.MemoryCreateRequest
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, &ValidationError{Rule: "invalid JSON: " + err.Error()}
	}
	return []model.MemoryCreateRequest{item}, nil
}

// NormalizeBatch validates every candidate, then returns normalized copies.
// One bad item rejects the whole batch: nothing is submitted, nothing is
// partially normalized.
func NormalizeBatch(items []model.MemoryCreateRequest) ([]model.MemoryCreateRequest, error) {
	if len(items) == 0 {
		return nil, &ValidationError{Rule: "batch is empty"}
	}

	for i, item := range items {
		if strings.TrimSpace(item.RawText) == "" {
			return nil, &ValidationError{Item: i + 1, Rule: "raw_text is required and cannot be empty"}
		}
		if item.ContentType != "" && !model.ValidContentTypes[item.ContentType] {
			return nil, &ValidationError{Item: i + 1, Rule: "content_type must be one of: " + contentTypeList()}
		}
	}

	out := make([]model.MemoryCreateRequest, len(items))
	for i, item := range items {
		out[i] = normalize(item)
	}
	return out, nil
}

func normalize(item model.MemoryCreateRequest) model.MemoryCreateRequest {
	item.RawText = strings.TrimSpace(item.RawText)
	if item.ContentType == "" {
		item.ContentType = model.DefaultContentType
	}
	if item.ImportanceScore != nil {
		clamped := clamp01(*item.ImportanceScore)
		item.ImportanceScore = &clamped
	}
	item.Metadata.Tags = dedupeTags(item.Metadata.Tags)
	return item
}

// ApplyPerson designates a record as being about a person: the normalized
// name goes under metadata.extra.person_name and the "person" tag is
// guaranteed present.
func ApplyPerson(item *model.MemoryCreateRequest, name string) {
	name = NormalizePersonName(name)
	if name == "" {
		return
	}
	if item.Metadata.Extra == nil {
		item.Metadata.Extra = map[string]string{}
	}
	item.Metadata.Extra["person_name"] = name
	if !item.Metadata.HasTag("person") {
		item.Metadata.Tags = append(item.Metadata.Tags, "person")
	}
}

// NormalizePersonName trims and Title Cases a person name so "linh" and
// "LINH" refer to the same person.
func NormalizePersonName(name string) string {
	fields := strings.Fields(name)
	for i, f := range fields {
		runes := []rune(strings.ToLower(f))
		runes[0] = unicode.ToUpper(runes[0])
		fields[i] = string(runes)
	}
	return strings.Join(fields, " ")
}

// dedupeTags drops duplicate tags, keeping first-occurrence order.
func dedupeTags(tags []string) []string {
	if len(tags) == 0 {
		return tags
	}
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
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

func contentTypeList() string {
	names := make([]string, 0, len(model.ValidContentTypes))
	for ct := range model.ValidContentTypes {
		names = append(names, ct)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
