package entities

// UserSummary aggregates the completed quizzes of one user.
type UserSummary struct {
	OwnerID             int64   `json:"userId"`
	TotalQuizzes        int     `json:"totalQuizzes"`
	PerfectScores       int     `json:"perfectScores"`
	TotalMistakes       int     `json:"totalMistakes"`
	MostMissedWordIDs   []int64 `json:"mostMissedWordIds"`
	AverageScorePercent int     `json:"averageScorePercent"`
}

// DictionarySummary describes learning progress on a single dictionary.
type DictionarySummary struct {
	DictionaryID      int64 `json:"dictionaryId"`
	TotalWords        int   `json:"totalWords"`
	LearnedWords      int   `json:"learnedWords"`
	PercentageLearned int   `json:"percentageLearned"`
	QuizzesTaken      int   `json:"quizzesTaken"`
	AverageQuizScore  int   `json:"averageQuizScore"`
}

// MissedWord counts wrong answers given for a word.
type MissedWord struct {
	WordID int64
	Misses int
}
