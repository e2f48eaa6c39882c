package domain

// ContentType identifies the kind of learning content flowing through the pipeline.
type ContentType string

const (
	ContentTypeOrthography ContentType = "ORTHOGRAPHY"
	ContentTypeMeaning     ContentType = "MEANING"
	ContentTypeUtterance   ContentType = "UTTERANCE"
	ContentTypeGrammarRule ContentType = "GRAMMAR_RULE"
	ContentTypeExercise    ContentType = "EXERCISE"
)

func (t ContentType) String() string { return string(t) }

func (t ContentType) IsValid() bool {
	switch t {
	case ContentTypeOrthography, ContentTypeMeaning, ContentTypeUtterance,
		ContentTypeGrammarRule, ContentTypeExercise:
		return true
	}
	return false
}

// Stage represents the pipeline position of a content item.
// Items only ever move forward: DRAFT → CANDIDATE → VALIDATED → APPROVED.
type Stage string

const (
	StageDraft     Stage = "DRAFT"
	StageCandidate Stage = "CANDIDATE"
	StageValidated Stage = "VALIDATED"
	StageApproved  Stage = "APPROVED"
)

func (s Stage) String() string { return string(s) }

func (s Stage) IsValid() bool {
	switch s {
	case StageDraft, StageCandidate, StageValidated, StageApproved:
		return true
	}
	return false
}

// Next returns the stage an item advances to from s.
// ok is false for APPROVED (terminal) and unknown stages.
func (s Stage) Next() (next Stage, ok bool) {
	switch s {
	case StageDraft:
		return StageCandidate, true
	case StageCandidate:
		return StageValidated, true
	case StageValidated:
		return StageApproved, true
	}
	return "", false
}

// Priority represents the urgency of a unit of generation work.
type Priority string

const (
	PriorityCritical Priority = "CRITICAL"
	PriorityHigh     Priority = "HIGH"
	PriorityMedium   Priority = "MEDIUM"
	PriorityLow      Priority = "LOW"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Language is a supported learning language (ISO 639-1, upper case).
type Language string

const (
	LanguageEN Language = "EN"
	LanguageES Language = "ES"
	LanguageDE Language = "DE"
	LanguageFR Language = "FR"
	LanguageIT Language = "IT"
)

// SupportedLanguages returns all languages the platform curates content for.
func SupportedLanguages() []Language {
	return []Language{LanguageEN, LanguageES, LanguageDE, LanguageFR, LanguageIT}
}

func (l Language) String() string { return string(l) }

func (l Language) IsValid() bool {
	switch l {
	case LanguageEN, LanguageES, LanguageDE, LanguageFR, LanguageIT:
		return true
	}
	return false
}

// Level is a CEFR proficiency level used to bucket content difficulty.
type Level string

const (
	LevelA0 Level = "A0"
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

// Levels returns all CEFR levels in ascending order.
func Levels() []Level {
	return []Level{LevelA0, LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}
}

func (l Level) String() string { return string(l) }

func (l Level) IsValid() bool {
	switch l {
	case LevelA0, LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2:
		return true
	}
	return false
}

// Order returns the position of the level in ascending CEFR order,
// or -1 for an unknown level.
func (l Level) Order() int {
	for i, lv := range Levels() {
		if lv == l {
			return i
		}
	}
	return -1
}

// ConceptType identifies the kind of curriculum concept.
type ConceptType string

const (
	ConceptTypeOrthography ConceptType = "ORTHOGRAPHY"
	ConceptTypeVocabulary  ConceptType = "VOCABULARY"
	ConceptTypeGrammar     ConceptType = "GRAMMAR"
)

func (t ConceptType) String() string { return string(t) }

func (t ConceptType) IsValid() bool {
	switch t {
	case ConceptTypeOrthography, ConceptTypeVocabulary, ConceptTypeGrammar:
		return true
	}
	return false
}

// ProgressStatus represents a user's state on one curriculum concept.
type ProgressStatus string

const (
	ProgressLocked     ProgressStatus = "locked"
	ProgressUnlocked   ProgressStatus = "unlocked"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

func (s ProgressStatus) String() string { return string(s) }

func (s ProgressStatus) IsValid() bool {
	switch s {
	case ProgressLocked, ProgressUnlocked, ProgressInProgress, ProgressCompleted:
		return true
	}
	return false
}
