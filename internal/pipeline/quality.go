package pipeline

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

// ContentQuality is the built-in quality gate. It applies per-type rules
// that go beyond structural schema checks: the kind of defects generated
// content exhibits even when it is well-formed. All of its rejections are
// deterministic, so they surface as validation errors.
type ContentQuality struct{}

// NewContentQuality creates the rule-based quality checker.
func NewContentQuality() *ContentQuality { return &ContentQuality{} }

// Check validates a candidate item's payload against type-specific rules.
func (q *ContentQuality) Check(_ context.Context, item domain.ContentItem) error {
	switch item.DataType {
	case domain.ContentTypeMeaning:
		return q.checkMeaning(item.Payload)
	case domain.ContentTypeUtterance:
		return q.checkUtterance(item.Payload)
	case domain.ContentTypeGrammarRule:
		return q.checkGrammar(item.Payload)
	case domain.ContentTypeExercise:
		return q.checkExercise(item.Payload)
	case domain.ContentTypeOrthography:
		return q.checkOrthography(item.Payload)
	}
	return domain.NewValidationError("dataType", "unknown content type")
}

func (q *ContentQuality) checkMeaning(payload json.RawMessage) error {
	var p struct {
		Word        string `json:"word"`
		Definition  string `json:"definition"`
		Translation string `json:"translation"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return domain.NewValidationError("payload", err.Error())
	}

	var errs []domain.FieldError
	if strings.EqualFold(strings.TrimSpace(p.Word), strings.TrimSpace(p.Translation)) {
		errs = append(errs, domain.FieldError{Field: "translation", Message: "translation must differ from the word"})
	}
	if len(strings.Fields(p.Definition)) < 2 {
		errs = append(errs, domain.FieldError{Field: "definition", Message: "definition too short"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (q *ContentQuality) checkUtterance(payload json.RawMessage) error {
	var p struct {
		Text        string `json:"text"`
		Translation string `json:"translation"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return domain.NewValidationError("payload", err.Error())
	}

	var errs []domain.FieldError
	if len(strings.Fields(p.Text)) < 2 {
		errs = append(errs, domain.FieldError{Field: "text", Message: "an example sentence needs at least two words"})
	}
	if strings.EqualFold(strings.TrimSpace(p.Text), strings.TrimSpace(p.Translation)) {
		errs = append(errs, domain.FieldError{Field: "translation", Message: "translation must differ from the sentence"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (q *ContentQuality) checkGrammar(payload json.RawMessage) error {
	var p struct {
		Explanation string   `json:"explanation"`
		Examples    []string `json:"examples"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return domain.NewValidationError("payload", err.Error())
	}

	var errs []domain.FieldError
	if len(strings.Fields(p.Explanation)) < 5 {
		errs = append(errs, domain.FieldError{Field: "explanation", Message: "explanation too short"})
	}
	if len(p.Examples) == 0 {
		errs = append(errs, domain.FieldError{Field: "examples", Message: "at least one example required"})
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (q *ContentQuality) checkExercise(payload json.RawMessage) error {
	var p struct {
		Answer      string   `json:"answer"`
		Distractors []string `json:"distractors"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return domain.NewValidationError("payload", err.Error())
	}

	for _, d := range p.Distractors {
		if strings.EqualFold(strings.TrimSpace(d), strings.TrimSpace(p.Answer)) {
			return domain.NewValidationError("distractors", "a distractor duplicates the answer")
		}
	}
	return nil
}

func (q *ContentQuality) checkOrthography(payload json.RawMessage) error {
	var p struct {
		Alphabet []string `json:"alphabet"`
	}
	if err := json.Unmarshal(payload, &p); err != nil {
		return domain.NewValidationError("payload", err.Error())
	}

	seen := make(map[string]bool, len(p.Alphabet))
	for _, letter := range p.Alphabet {
		key := strings.ToLower(letter)
		if seen[key] {
			return domain.NewValidationError("alphabet", "duplicate letter "+letter)
		}
		seen[key] = true
	}
	return nil
}
