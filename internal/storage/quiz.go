package storage

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

var (
	ErrSheetNotFound = errors.New("answer sheet not found")
	ErrStaleAnswer   = errors.New("question already answered")
	ErrInvalidChoice = errors.New("invalid choice")
)

// AnswerSheet collects a user's answers until the whole quiz is submitted.
type AnswerSheet struct {
	QuizID    uuid.UUID
	OwnerID   int64
	Questions []entities.QuestionView
	Answers   []entities.Answer
}

// Current returns the next unanswered question.
func (s *AnswerSheet) Current() (entities.QuestionView, bool) {
	if s.Done() {
		return entities.QuestionView{}, false
	}
	return s.Questions[len(s.Answers)], true
}

// Done reports whether every question has an answer.
func (s *AnswerSheet) Done() bool {
	return len(s.Answers) >= len(s.Questions)
}

func (s *AnswerSheet) clone() *AnswerSheet {
	c := *s
	c.Answers = append([]entities.Answer(nil), s.Answers...)
	return &c
}

// QuizStorage provides in-memory storage for answer sheets by quiz ID.
type QuizStorage struct {
	mu     sync.RWMutex
	sheets map[uuid.UUID]*AnswerSheet
}

// NewQuizStorage creates a new QuizStorage.
func NewQuizStorage() *QuizStorage {
	return &QuizStorage{
		sheets: make(map[uuid.UUID]*AnswerSheet),
	}
}

// Store saves a new answer sheet for a quiz, replacing any previous one.
func (s *QuizStorage) Store(sheet *AnswerSheet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sheets[sheet.QuizID] = sheet.clone()
}

// Get returns a copy of the sheet for a quiz.
func (s *QuizStorage) Get(quizID uuid.UUID) (*AnswerSheet, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sheet, ok := s.sheets[quizID]
	if !ok {
		return nil, false
	}
	return sheet.clone(), true
}

// Record stores the chosen option for the question at position and returns
// the updated sheet. Only the current question of the owner's sheet can be answered.
func (s *QuizStorage) Record(quizID uuid.UUID, ownerID int64, position, choice int) (*AnswerSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sheet, ok := s.sheets[quizID]
	if !ok || sheet.OwnerID != ownerID {
		return nil, ErrSheetNotFound
	}
	if position != len(sheet.Answers) {
		return nil, ErrStaleAnswer
	}

	q, ok := sheet.Current()
	if !ok {
		return nil, ErrStaleAnswer
	}
	if choice < 0 || choice >= len(q.Choices) {
		return nil, ErrInvalidChoice
	}

	sheet.Answers = append(sheet.Answers, entities.Answer{
		QuestionID: q.ID,
		Text:       q.Choices[choice],
	})

	return sheet.clone(), nil
}

// Delete removes the sheet for a quiz.
func (s *QuizStorage) Delete(quizID uuid.UUID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sheets, quizID)
}
