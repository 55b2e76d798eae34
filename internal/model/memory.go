// Package model defines the wire types shared with the memory service.
package model

import (
	"fmt"
	"time"
)

// Metadata carries the structured metadata of a memory record.
// Source identifies where the record came from ("cli", "api", "import").
// Extra holds free-form string pairs; person records set Extra["person_name"]
// and always carry the "person" tag.
type Metadata struct {
	Source     string            `json:"source,omitempty"`
	Tags       []string          `json:"tags,omitempty"`
	Type       string            `json:"type,omitempty"`
	SourceURLs []string          `json:"source_urls,omitempty"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// HasTag reports whether tag is present in the metadata.
func (m Metadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// MemoryCreateRequest is the body of POST /api/v1/memory.
type MemoryCreateRequest struct {
	RawText         string   `json:"raw_text"`
	ContentType     string   `json:"content_type,omitempty"`
	ImportanceScore *float64 `json:"importance_score,omitempty"`
	Metadata        Metadata `json:"metadata"`
}

// Memory is a persisted record as returned by the service. Immutable on the
// client side; archiving goes through the explicit archive endpoint.
type Memory struct {
	ID                   string    `json:"id"`
	RawText              string    `json:"raw_text"`
	ContentType          string    `json:"content_type"`
	Checksum             string    `json:"checksum,omitempty"`
	ImportanceScore      *float64  `json:"importance_score,omitempty"`
	Metadata             Metadata  `json:"metadata"`
	IsArchived           bool      `json:"is_archived"`
	ExcludeFromRetrieval bool      `json:"exclude_from_retrieval"`
	IsSummary            bool      `json:"is_summary"`
	HasEmbedding         bool      `json:"has_embedding"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// CheckComplete verifies the fields every persisted record must carry.
// A success body missing them is a malformed response, not a degraded one.
func (m *Memory) CheckComplete() error {
	if m.ID == "" {
		return fmt.Errorf("memory response missing id")
	}
	if m.RawText == "" {
		return fmt.Errorf("memory response missing raw_text")
	}
	return nil
}

// ArchiveRequest is the body of PATCH /api/v1/memory/{id}/archive.
type ArchiveRequest struct {
	IsArchived           bool `json:"is_archived"`
	ExcludeFromRetrieval bool `json:"exclude_from_retrieval"`
}

// ValidContentTypes are the six content types of the memory contract.
var ValidContentTypes = map[string]bool{
	"note":         true,
	"conversation": true,
	"reflection":   true,
	"idea":         true,
	"article":      true,
	"log":          true,
}

// DefaultContentType is used when a candidate record does not name one.
const DefaultContentType = "note"
