package ingest

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lhvu/memctl/internal/model"
)

func TestParseBatch_SingleObject(t *testing.T) {
	items, err := ParseBatch([]byte(`{"raw_text": "hello"}`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(items))
	}
	if items[0].RawText != "hello" {
		t.Errorf("expected 'hello', got %q", items[0].RawText)
	}
}

func TestParseBatch_Array(t *testing.T) {
	items, err := ParseBatch([]byte(`[{"raw_text": "a"}, {"raw_text": "b", "content_type": "idea"}]`))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[1].ContentType != "idea" {
		t.Errorf("expected 'idea', got %q", items[1].ContentType)
	}
}

func TestParseBatch_InvalidJSON(t *testing.T) {
	for _, input := range []string{"", "   ", "{broken", "[{]"} {
		_, err := ParseBatch([]byte(input))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("input %q: expected ValidationError, got %v", input, err)
		}
	}
}

func TestNormalizeBatch_EmptyRawTextRejectsWholeBatch(t *testing.T) {
	items := []model.MemoryCreateRequest{
		{RawText: "fine"},
		{RawText: "   \n\t"},
		{RawText: "also fine"},
	}

	_, err := NormalizeBatch(items)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Item != 2 {
		t.Errorf("expected offending item 2, got %d", verr.Item)
	}
}

func TestNormalizeBatch_EmptyBatch(t *testing.T) {
	_, err := NormalizeBatch(nil)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Item != 0 {
		t.Errorf("expected batch-level error, got item %d", verr.Item)
	}
}

func TestNormalizeBatch_UnknownContentType(t *testing.T) {
	_, err := NormalizeBatch([]model.MemoryCreateRequest{{RawText: "x", ContentType: "tweet"}})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestNormalizeBatch_Defaults(t *testing.T) {
	out, err := NormalizeBatch([]model.MemoryCreateRequest{{RawText: "hello", ContentType: "note"}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	got := out[0]
	if got.ContentType != "note" {
		t.Errorf("expected 'note', got %q", got.ContentType)
	}
	if got.ImportanceScore != nil {
		t.Errorf("expected no importance score, got %v", *got.ImportanceScore)
	}
	if !reflect.DeepEqual(got.Metadata, model.Metadata{}) {
		t.Errorf("expected empty metadata, got %+v", got.Metadata)
	}
}

func TestNormalizeBatch_DefaultContentType(t *testing.T) {
	out, err := NormalizeBatch([]model.MemoryCreateRequest{{RawText: "hello"}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if out[0].ContentType != model.DefaultContentType {
		t.Errorf("expected default content type, got %q", out[0].ContentType)
	}
}

func TestNormalizeBatch_ClampsImportance(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-0.5, 0},
		{0, 0},
		{0.7, 0.7},
		{1.8, 1},
	}
	for _, tt := range tests {
		score := tt.in
		out, err := NormalizeBatch([]model.MemoryCreateRequest{{RawText: "x", ImportanceScore: &score}})
		if err != nil {
			t.Fatalf("normalize(%v): %v", tt.in, err)
		}
		if got := *out[0].ImportanceScore; got != tt.want {
			t.Errorf("importance %v: expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestNormalizeBatch_DedupesTags(t *testing.T) {
	out, err := NormalizeBatch([]model.MemoryCreateRequest{{
		RawText:  "x",
		Metadata: model.Metadata{Tags: []string{"ai", "code", "ai", "life", "code"}},
	}})
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	want := []string{"ai", "code", "life"}
	if !reflect.DeepEqual(out[0].Metadata.Tags, want) {
		t.Errorf("expected %v, got %v", want, out[0].Metadata.Tags)
	}
}

func TestNormalizeBatch_Idempotent(t *testing.T) {
	score := 0.8
	in := []model.MemoryCreateRequest{{
		RawText:         "  spaced out  ",
		ImportanceScore: &score,
		Metadata:        model.Metadata{Source: "api", Tags: []string{"ai", "ai"}},
	}}

	once, err := NormalizeBatch(in)
	if err != nil {
		t.Fatalf("first normalize: %v", err)
	}
	twice, err := NormalizeBatch(once)
	if err != nil {
		t.Fatalf("second normalize: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("normalize not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestApplyPerson(t *testing.T) {
	req := model.MemoryCreateRequest{RawText: "met her at the cafe"}
	ApplyPerson(&req, "Linh")

	if got := req.Metadata.Extra["person_name"]; got != "Linh" {
		t.Errorf("expected person_name 'Linh', got %q", got)
	}
	if !reflect.DeepEqual(req.Metadata.Tags, []string{"person"}) {
		t.Errorf("expected tags [person], got %v", req.Metadata.Tags)
	}
}

func TestApplyPerson_ExistingPersonTag(t *testing.T) {
	req := model.MemoryCreateRequest{
		RawText:  "x",
		Metadata: model.Metadata{Tags: []string{"person", "life"}},
	}
	ApplyPerson(&req, "linh")

	want := []string{"person", "life"}
	if !reflect.DeepEqual(req.Metadata.Tags, want) {
		t.Errorf("expected %v, got %v", want, req.Metadata.Tags)
	}
	if got := req.Metadata.Extra["person_name"]; got != "Linh" {
		t.Errorf("expected normalized 'Linh', got %q", got)
	}
}

func TestNormalizePersonName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"linh", "Linh"},
		{"LINH", "Linh"},
		{"  nguyen   van a  ", "Nguyen Van A"},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizePersonName(tt.in); got != tt.want {
			t.Errorf("NormalizePersonName(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}
