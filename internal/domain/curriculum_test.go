package domain

import "testing"

func TestCurriculumNode_Unlocked(t *testing.T) {
	tests := []struct {
		name      string
		and       []string
		or        []string
		completed map[string]bool
		want      bool
	}{
		{
			name: "no prerequisites",
			want: true,
		},
		{
			name:      "and satisfied",
			and:       []string{"X", "Y"},
			completed: map[string]bool{"X": true, "Y": true},
			want:      true,
		},
		{
			name:      "and partially satisfied",
			and:       []string{"X", "Y"},
			completed: map[string]bool{"X": true},
			want:      false,
		},
		{
			name:      "or satisfied by one",
			or:        []string{"X", "Y"},
			completed: map[string]bool{"Y": true},
			want:      true,
		},
		{
			name:      "or satisfied by both",
			or:        []string{"X", "Y"},
			completed: map[string]bool{"X": true, "Y": true},
			want:      true,
		},
		{
			name:      "or unsatisfied",
			or:        []string{"X", "Y"},
			completed: map[string]bool{"Z": true},
			want:      false,
		},
		{
			name:      "and satisfied but or unsatisfied",
			and:       []string{"A"},
			or:        []string{"X", "Y"},
			completed: map[string]bool{"A": true},
			want:      false,
		},
		{
			name:      "and unsatisfied but or satisfied",
			and:       []string{"A"},
			or:        []string{"X"},
			completed: map[string]bool{"X": true},
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := CurriculumNode{
				ConceptID:        "under-test",
				PrerequisitesAnd: tt.and,
				PrerequisitesOr:  tt.or,
			}
			if got := n.Unlocked(tt.completed); got != tt.want {
				t.Errorf("Unlocked() = %v, want %v", got, tt.want)
			}
		})
	}
}
