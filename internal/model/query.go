package model

// Reasoning modes. The service interprets the same query differently
// depending on the mode; the client only selects one, it never enforces
// the interpretation.
const (
	ModeRecall       = "RECALL"            // verbatim retrieval, no inference
	ModeRecallRerank = "RECALL_LLM_RERANK" // LLM-filtered retrieval, verbatim return
	ModeSynthesize   = "SYNTHESIZE"        // multi-record structured summary
	ModeReflect      = "REFLECT"           // trend and pattern analysis over time
	ModeChallenge    = "CHALLENGE"         // contradictions, weak logic, gaps
	ModeExpand       = "EXPAND"            // augmented with external knowledge
)

// Modes lists the reasoning modes in display order.
var Modes = []string{
	ModeRecall,
	ModeRecallRerank,
	ModeSynthesize,
	ModeReflect,
	ModeChallenge,
	ModeExpand,
}

// ModeDescriptions maps each mode to a short human description.
var ModeDescriptions = map[string]string{
	ModeRecall:       "Verbatim retrieval from memory. No inference.",
	ModeRecallRerank: "LLM filters memories by query context, then returns them verbatim.",
	ModeSynthesize:   "Synthesizes multiple memories into a structured summary.",
	ModeReflect:      "Analyzes how your thinking evolved, detects patterns.",
	ModeChallenge:    "Points out contradictions, weak logic, gaps.",
	ModeExpand:       "Expands beyond stored memories with external knowledge.",
}

// ValidMode reports whether mode is one of the six reasoning modes.
func ValidMode(mode string) bool {
	_, ok := ModeDescriptions[mode]
	return ok
}

// QueryRequest is the body of POST /api/v1/query. ContentType and Threshold
// are omitted from the wire when unset so the service applies its own
// defaults; an explicit zero would mean something different.
type QueryRequest struct {
	Query       string   `json:"query"`
	Mode        string   `json:"mode"`
	ContentType string   `json:"content_type,omitempty"`
	Threshold   *float64 `json:"threshold,omitempty"`
}

// QueryResponse is the decoded body of a reasoning query. MemoryUsed and
// TokenUsage are optional on the wire; a missing field decodes to a zero
// count rather than a failure.
type QueryResponse struct {
	Response              string         `json:"response"`
	Mode                  string         `json:"mode"`
	MemoryUsed            []string       `json:"memory_used"`
	TokenUsage            map[string]int `json:"token_usage"`
	ExternalKnowledgeUsed bool           `json:"external_knowledge_used"`
	LatencyMs             int            `json:"latency_ms"`
}

// MemoryCount returns how many records the service consulted.
func (r *QueryResponse) MemoryCount() int {
	return len(r.MemoryUsed)
}

// Tokens returns the total token usage, zero when the service omitted it.
func (r *QueryResponse) Tokens() int {
	return r.TokenUsage["total"]
}

// CheckComplete verifies the required reasoning response fields.
func (r *QueryResponse) CheckComplete() error {
	if r.Response == "" {
		return errMissingField("response")
	}
	if r.Mode == "" {
		return errMissingField("mode")
	}
	return nil
}
