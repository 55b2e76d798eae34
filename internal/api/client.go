// Package api is the HTTP client for the memory service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"

	"github.com/lhvu/memctl/internal/model"
)

const basePath = "/api/v1"

// Client talks JSON over HTTP to the memory service. One request, one
// response; no retries and no backoff. Cancellation and the deadline come
// from the caller's context plus the client-wide timeout.
type Client struct {
	baseURL string
	http    *http.Client
	entropy *rand.Rand
}

// NewClient creates a client for the service at baseURL. A zero timeout
// disables the client-wide deadline.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// newIdempotencyKey returns a fresh ULID for one save attempt. The service
// may ignore the header today; a deduplicating server can use it without a
// client change.
func (c *Client) newIdempotencyKey() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), c.entropy).String()
}

func (c *Client) do(ctx context.Context, method, path string, header map[string]string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call memory service: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: extractErrorMessage(data)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// SaveMemory stores one record. The service enqueues the embedding job
// asynchronously; this call does not wait for it.
func (c *Client) SaveMemory(ctx context.Context, req model.MemoryCreateRequest) (*model.Memory, error) {
	header := map[string]string{"Idempotency-Key": c.newIdempotencyKey()}
	var mem model.Memory
	if err := c.do(ctx, http.MethodPost, basePath+"/memory", header, req, &mem); err != nil {
		return nil, err
	}
	if err := mem.CheckComplete(); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &mem, nil
}

// GetMemory fetches one record by its UUID.
func (c *Client) GetMemory(ctx context.Context, id string) (*model.Memory, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid memory id %q: %w", id, err)
	}
	var mem model.Memory
	if err := c.do(ctx, http.MethodGet, basePath+"/memory/"+id, nil, nil, &mem); err != nil {
		return nil, err
	}
	if err := mem.CheckComplete(); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &mem, nil
}

// ArchiveMemory flips the archive flags on a record.
func (c *Client) ArchiveMemory(ctx context.Context, id string, req model.ArchiveRequest) (*model.Memory, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("invalid memory id %q: %w", id, err)
	}
	var mem model.Memory
	if err := c.do(ctx, http.MethodPatch, basePath+"/memory/"+id+"/archive", nil, req, &mem); err != nil {
		return nil, err
	}
	if err := mem.CheckComplete(); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &mem, nil
}

// Search runs a ranked semantic search. Ordering and scores come back
// authoritative; the client never re-ranks.
func (c *Client) Search(ctx context.Context, req model.SearchRequest) (*model.SearchResponse, error) {
	var resp model.SearchResponse
	if err := c.do(ctx, http.MethodPost, basePath+"/search", nil, req, &resp); err != nil {
		return nil, err
	}
	if err := resp.CheckComplete(); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

// Query runs a reasoning query in one of the six modes.
func (c *Client) Query(ctx context.Context, req model.QueryRequest) (*model.QueryResponse, error) {
	var resp model.QueryResponse
	if err := c.do(ctx, http.MethodPost, basePath+"/query", nil, req, &resp); err != nil {
		return nil, err
	}
	if err := resp.CheckComplete(); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &resp, nil
}

// Health probes service liveness and returns the raw payload.
func (c *Client) Health(ctx context.Context) (map[string]any, error) {
	var payload map[string]any
	if err := c.do(ctx, http.MethodGet, "/health", nil, nil, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}
