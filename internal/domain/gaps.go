package domain

// LevelCount is an aggregate content count for one (language, level) pair.
type LevelCount struct {
	Language Language
	Level    Level
	Count    int
}

// MeaningCoverage counts the example utterances attached to one approved
// meaning.
type MeaningCoverage struct {
	MeaningID      string
	Word           string
	Language       Language
	Level          Level
	UtteranceCount int
}
