package llmgen

import (
	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/llm"
)

// contentSchemas maps each content type to the JSON Schema its payload
// must conform to. The same schemas are enforced again by the pipeline's
// normalization step, so a payload that passes generation passes DRAFT→
// CANDIDATE without surprises.
var contentSchemas = map[domain.ContentType]*llm.Schema{
	domain.ContentTypeMeaning: {
		Name:        "meaning-content",
		Description: "One vocabulary meaning: a word with its definition and translation.",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []any{"word", "definition", "translation", "part_of_speech"},
			"properties": map[string]any{
				"word":           map[string]any{"type": "string", "minLength": 1},
				"definition":     map[string]any{"type": "string", "minLength": 1},
				"translation":    map[string]any{"type": "string", "minLength": 1},
				"part_of_speech": map[string]any{"type": "string", "minLength": 1},
				"notes":          map[string]any{"type": "string"},
			},
		},
	},
	domain.ContentTypeUtterance: {
		Name:        "utterance-content",
		Description: "One example sentence demonstrating a meaning in context.",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []any{"meaning_id", "text", "translation"},
			"properties": map[string]any{
				"meaning_id":  map[string]any{"type": "string", "minLength": 1},
				"text":        map[string]any{"type": "string", "minLength": 1},
				"translation": map[string]any{"type": "string", "minLength": 1},
			},
		},
	},
	domain.ContentTypeGrammarRule: {
		Name:        "grammar-rule-content",
		Description: "One grammar rule with explanation and examples.",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []any{"title", "explanation", "examples"},
			"properties": map[string]any{
				"title":       map[string]any{"type": "string", "minLength": 1},
				"explanation": map[string]any{"type": "string", "minLength": 1},
				"examples": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
	},
	domain.ContentTypeExercise: {
		Name:        "exercise-content",
		Description: "One practice exercise with a prompt, answer and distractors.",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []any{"exercise_type", "prompt", "answer"},
			"properties": map[string]any{
				"exercise_type": map[string]any{
					"type": "string",
					"enum": []any{"multiple_choice", "fill_blank", "translation"},
				},
				"prompt": map[string]any{"type": "string", "minLength": 1},
				"answer": map[string]any{"type": "string", "minLength": 1},
				"distractors": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string", "minLength": 1},
				},
			},
		},
	},
	domain.ContentTypeOrthography: {
		Name:        "orthography-content",
		Description: "An orthography lesson: alphabet, digraphs and spelling notes.",
		Definition: map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"required":             []any{"alphabet", "notes"},
			"properties": map[string]any{
				"alphabet": map[string]any{
					"type":     "array",
					"minItems": 1,
					"items":    map[string]any{"type": "string", "minLength": 1},
				},
				"digraphs": map[string]any{
					"type":  "array",
					"items": map[string]any{"type": "string", "minLength": 1},
				},
				"notes": map[string]any{"type": "string"},
			},
		},
	},
}

// SchemaFor returns the payload schema for a content type, or nil when the
// type is unknown.
func SchemaFor(t domain.ContentType) *llm.Schema {
	return contentSchemas[t]
}
