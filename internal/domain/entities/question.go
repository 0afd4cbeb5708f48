package entities

import "github.com/google/uuid"

// MaxChoices is the size of a question's answer-choice set.
const MaxChoices = 4

// Question is one multiple-choice item of a quiz.
// UserAnswer and IsCorrect stay nil until the quiz is graded.
type Question struct {
	ID            uuid.UUID
	QuizID        uuid.UUID
	WordID        int64
	Position      int
	Prompt        string
	Choices       []string
	Type          QuestionType
	CorrectAnswer string
	UserAnswer    *string
	IsCorrect     *bool
}

// Grade records the user's answer. Matching is exact.
func (q *Question) Grade(answer string) bool {
	ok := answer == q.CorrectAnswer
	q.UserAnswer = &answer
	q.IsCorrect = &ok
	return ok
}

// IsAnswered reports whether the question has been graded.
func (q *Question) IsAnswered() bool {
	return q.UserAnswer != nil
}

// QuestionView is the part of a question shown before grading.
type QuestionView struct {
	ID      uuid.UUID `json:"id"`
	Prompt  string    `json:"prompt"`
	Choices []string  `json:"choices"`
}

// View strips the correct answer and grading fields.
func (q *Question) View() QuestionView {
	return QuestionView{ID: q.ID, Prompt: q.Prompt, Choices: q.Choices}
}

// Answer is one submitted {question, text} pair.
type Answer struct {
	QuestionID uuid.UUID `json:"questionId"`
	Text       string    `json:"userAnswer"`
}
