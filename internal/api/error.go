package api

import (
	"encoding/json"
	"fmt"
	"strings"
)

// APIError is a non-2xx response from the memory service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("[%d] %s", e.Status, e.Message)
}

// extractErrorMessage pulls the most readable message out of an error body.
// The service usually sends {"detail": {"message": ...}} or {"detail": ...},
// but not every error shape conforms, so the chain falls back to the raw
// JSON body.
func extractErrorMessage(body []byte) string {
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Detail) > 0 {
		var structured struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Detail, &structured); err == nil && structured.Message != "" {
			return structured.Message
		}
		var plain string
		if err := json.Unmarshal(envelope.Detail, &plain); err == nil && plain != "" {
			return plain
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		return "empty error body"
	}
	return msg
}
