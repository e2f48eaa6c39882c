package pipeline

import (
	"context"
	"fmt"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/llm"
	"github.com/arina-fedorova/PolyLadder-sub002/internal/source/llmgen"
)

// normalize is the DRAFT → CANDIDATE step: a pure structural check of the
// payload against the content type's schema. Its failures are always
// deterministic, so they surface as validation errors and are never retried.
func (o *Orchestrator) normalize(_ context.Context, item domain.ContentItem) error {
	schema := llmgen.SchemaFor(item.DataType)
	if schema == nil {
		return domain.NewValidationError("dataType", fmt.Sprintf("no payload schema for %s", item.DataType))
	}

	if len(item.Payload) == 0 {
		return domain.NewValidationError("payload", "empty payload")
	}

	if err := llm.ValidatePayload(schema, item.Payload); err != nil {
		return domain.NewValidationError("payload", err.Error())
	}
	return nil
}

// approve is the VALIDATED → APPROVED step. The structural and quality
// gates already passed, so auto-approval has nothing left to verify; the
// transition exists so the move into the approved partition shares the
// same envelope and bookkeeping as the other steps.
func (o *Orchestrator) approve(_ context.Context, _ domain.ContentItem) error {
	return nil
}
