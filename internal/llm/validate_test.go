package llm

import (
	"encoding/json"
	"errors"
	"testing"
)

func meaningSchema() *Schema {
	return &Schema{
		Name:        "test-meaning",
		Description: "a vocabulary meaning",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []any{"word", "definition"},
			"properties": map[string]any{
				"word":       map[string]any{"type": "string", "minLength": 1},
				"definition": map[string]any{"type": "string", "minLength": 1},
			},
		},
	}
}

func TestValidateAgainstSchema_OK(t *testing.T) {
	raw := json.RawMessage(`{"word":"perro","definition":"dog"}`)
	if err := ValidatePayload(meaningSchema(), raw); err != nil {
		t.Fatalf("ValidatePayload: %v", err)
	}
}

func TestValidateAgainstSchema_NilSchema(t *testing.T) {
	if err := ValidatePayload(nil, json.RawMessage(`not even json`)); err != nil {
		t.Fatalf("nil schema should skip validation, got %v", err)
	}
}

func TestValidateAgainstSchema_InvalidJSON(t *testing.T) {
	err := ValidatePayload(meaningSchema(), json.RawMessage(`{"word":`))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("want ErrInvalidResponse, got %v", err)
	}
}

func TestValidateAgainstSchema_SchemaViolation(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing required field", `{"word":"perro"}`},
		{"wrong type", `{"word":"perro","definition":7}`},
		{"extra property", `{"word":"perro","definition":"dog","extra":true}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePayload(meaningSchema(), json.RawMessage(tt.raw))
			var invalid *ErrInvalidResponse
			if !errors.As(err, &invalid) {
				t.Fatalf("want ErrInvalidResponse, got %v", err)
			}
		})
	}
}

func TestMockProvider_FIFO(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"a":1}`)},
		MockResponse{Err: &ErrRateLimit{}},
	)

	resp, err := mock.Generate(t.Context(), Request{Prompt: "first"})
	if err != nil {
		t.Fatalf("first Generate: %v", err)
	}
	if string(resp.Content) != `{"a":1}` {
		t.Errorf("first content = %s", resp.Content)
	}

	_, err = mock.Generate(t.Context(), Request{Prompt: "second"})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("second Generate: want ErrRateLimit, got %v", err)
	}

	_, err = mock.Generate(t.Context(), Request{Prompt: "third"})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("empty queue: want ErrProviderUnavailable, got %v", err)
	}

	if mock.CallCount() != 3 {
		t.Errorf("CallCount = %d, want 3", mock.CallCount())
	}
}
