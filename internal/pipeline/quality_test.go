package pipeline

import (
	"context"
	"testing"

	"github.com/arina-fedorova/PolyLadder-sub002/internal/domain"
)

func TestContentQuality_Check(t *testing.T) {
	q := NewContentQuality()

	tests := []struct {
		name     string
		dataType domain.ContentType
		payload  string
		wantErr  bool
	}{
		{
			name:     "meaning ok",
			dataType: domain.ContentTypeMeaning,
			payload:  `{"word":"dog","definition":"a domestic four-legged animal","translation":"perro","part_of_speech":"noun"}`,
		},
		{
			name:     "meaning translation equals word",
			dataType: domain.ContentTypeMeaning,
			payload:  `{"word":"hotel","definition":"a place to stay","translation":"Hotel","part_of_speech":"noun"}`,
			wantErr:  true,
		},
		{
			name:     "meaning one-word definition",
			dataType: domain.ContentTypeMeaning,
			payload:  `{"word":"dog","definition":"animal","translation":"perro","part_of_speech":"noun"}`,
			wantErr:  true,
		},
		{
			name:     "utterance ok",
			dataType: domain.ContentTypeUtterance,
			payload:  `{"meaning_id":"m-1","text":"The dog sleeps on the sofa.","translation":"El perro duerme en el sofá."}`,
		},
		{
			name:     "utterance single word",
			dataType: domain.ContentTypeUtterance,
			payload:  `{"meaning_id":"m-1","text":"Dog.","translation":"Perro."}`,
			wantErr:  true,
		},
		{
			name:     "grammar ok",
			dataType: domain.ContentTypeGrammarRule,
			payload:  `{"title":"Present simple","explanation":"Use the base form of the verb for habitual actions.","examples":["I walk to work."]}`,
		},
		{
			name:     "grammar no examples",
			dataType: domain.ContentTypeGrammarRule,
			payload:  `{"title":"Present simple","explanation":"Use the base form of the verb for habitual actions.","examples":[]}`,
			wantErr:  true,
		},
		{
			name:     "exercise ok",
			dataType: domain.ContentTypeExercise,
			payload:  `{"exercise_type":"multiple_choice","prompt":"Pick the animal","answer":"dog","distractors":["car","house"]}`,
		},
		{
			name:     "exercise distractor duplicates answer",
			dataType: domain.ContentTypeExercise,
			payload:  `{"exercise_type":"multiple_choice","prompt":"Pick the animal","answer":"dog","distractors":["Dog","house"]}`,
			wantErr:  true,
		},
		{
			name:     "orthography ok",
			dataType: domain.ContentTypeOrthography,
			payload:  `{"alphabet":["a","b","c"],"notes":"Latin script."}`,
		},
		{
			name:     "orthography duplicate letter",
			dataType: domain.ContentTypeOrthography,
			payload:  `{"alphabet":["a","b","A"],"notes":"Latin script."}`,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := q.Check(context.Background(), domain.ContentItem{
				DataType: tt.dataType,
				Payload:  []byte(tt.payload),
			})
			if (err != nil) != tt.wantErr {
				t.Errorf("Check() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !domain.IsDeterministic(err) {
				t.Errorf("quality rejections must be deterministic, got %v", err)
			}
		})
	}
}
