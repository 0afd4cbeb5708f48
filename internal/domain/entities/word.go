package entities

// Word is a vocabulary entry of a dictionary. Pronunciation may be empty.
type Word struct {
	ID            int64
	DictionaryID  int64
	Writing       string
	Translation   string
	Pronunciation string
	IsLearned     bool
}

// Answer returns the text a question of type t expects for this word.
func (w *Word) Answer(t QuestionType) string {
	switch t {
	case QuestionTypeTranslation:
		return w.Translation
	case QuestionTypeWriting:
		return w.Writing
	case QuestionTypePronunciation:
		return w.Pronunciation
	default:
		return ""
	}
}

// Prompt returns the text shown to the user for a question of type t.
func (w *Word) Prompt(t QuestionType) string {
	switch t {
	case QuestionTypeTranslation:
		return w.Writing
	case QuestionTypeWriting, QuestionTypePronunciation:
		return w.Translation
	default:
		return w.Writing
	}
}
