package service

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres/repository"
)

// firstRand always picks the first candidate and never reorders.
type firstRand struct{}

func (firstRand) IntN(int) int                { return 0 }
func (firstRand) Shuffle(int, func(i, j int)) {}

// reverseRand always picks the last candidate and reverses on shuffle.
type reverseRand struct{}

func (reverseRand) IntN(n int) int { return n - 1 }
func (reverseRand) Shuffle(n int, swap func(i, j int)) {
	for i := 0; i < n/2; i++ {
		swap(i, n-1-i)
	}
}

type mockTx struct {
	calls int
}

func (m *mockTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockDictRepo struct {
	isAuthorized func(ctx context.Context, userID, dictionaryID int64) (bool, error)
	wordsOf      func(ctx context.Context, dictionaryID int64) ([]*entities.Word, error)
	wordStats    func(ctx context.Context, dictionaryID int64) (int, int, error)
}

func (m *mockDictRepo) IsAuthorized(ctx context.Context, userID, dictionaryID int64) (bool, error) {
	return m.isAuthorized(ctx, userID, dictionaryID)
}

func (m *mockDictRepo) WordsOf(ctx context.Context, dictionaryID int64) ([]*entities.Word, error) {
	return m.wordsOf(ctx, dictionaryID)
}

func (m *mockDictRepo) WordStats(ctx context.Context, dictionaryID int64) (int, int, error) {
	return m.wordStats(ctx, dictionaryID)
}

// dictWith returns a dictionary repository that authorizes ownerID for every
// dictionary and serves words.
func dictWith(ownerID int64, words []*entities.Word) *mockDictRepo {
	return &mockDictRepo{
		isAuthorized: func(_ context.Context, userID, _ int64) (bool, error) {
			return userID == ownerID, nil
		},
		wordsOf: func(context.Context, int64) ([]*entities.Word, error) {
			return words, nil
		},
	}
}

// memQuizRepo keeps quizzes in memory with the same conditional-update
// semantics as the postgres repository.
type memQuizRepo struct {
	mu        sync.Mutex
	quizzes   map[uuid.UUID]*entities.Quiz
	questions map[uuid.UUID][]*entities.Question

	createQuestionsErr error
}

func newMemQuizRepo() *memQuizRepo {
	return &memQuizRepo{
		quizzes:   make(map[uuid.UUID]*entities.Quiz),
		questions: make(map[uuid.UUID][]*entities.Question),
	}
}

func copyQuiz(q *entities.Quiz) *entities.Quiz {
	c := *q
	c.QuestionIDs = slices.Clone(q.QuestionIDs)
	if q.Result != nil {
		r := *q.Result
		c.Result = &r
	}
	if q.CompletedAt != nil {
		at := *q.CompletedAt
		c.CompletedAt = &at
	}
	return &c
}

func copyQuestion(q *entities.Question) *entities.Question {
	c := *q
	c.Choices = slices.Clone(q.Choices)
	if q.UserAnswer != nil {
		a := *q.UserAnswer
		c.UserAnswer = &a
	}
	if q.IsCorrect != nil {
		ok := *q.IsCorrect
		c.IsCorrect = &ok
	}
	return &c
}

func (r *memQuizRepo) CreateQuiz(_ context.Context, quiz *entities.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.quizzes[quiz.ID] = copyQuiz(quiz)
	return nil
}

func (r *memQuizRepo) CreateQuestions(_ context.Context, questions []*entities.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createQuestionsErr != nil {
		return r.createQuestionsErr
	}
	for _, q := range questions {
		r.questions[q.QuizID] = append(r.questions[q.QuizID], copyQuestion(q))
	}
	return nil
}

func (r *memQuizRepo) GetQuiz(_ context.Context, quizID uuid.UUID, ownerID int64) (*entities.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.quizzes[quizID]
	if !ok || q.OwnerID != ownerID {
		return nil, repository.ErrQuizNotFound
	}
	return copyQuiz(q), nil
}

func (r *memQuizRepo) GetQuizForUpdate(ctx context.Context, quizID uuid.UUID, ownerID int64) (*entities.Quiz, error) {
	return r.GetQuiz(ctx, quizID, ownerID)
}

func (r *memQuizRepo) ListByOwner(_ context.Context, ownerID int64, filter entities.QuizFilter) ([]*entities.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []*entities.Quiz
	for _, q := range r.quizzes {
		if q.OwnerID != ownerID {
			continue
		}
		if filter == entities.FilterUnfinished && q.IsCompleted() {
			continue
		}
		if filter == entities.FilterCompleted && !q.IsCompleted() {
			continue
		}
		out = append(out, copyQuiz(q))
	}

	slices.SortFunc(out, func(a, b *entities.Quiz) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out, nil
}

func (r *memQuizRepo) GetQuestions(_ context.Context, quizID uuid.UUID) ([]*entities.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entities.Question, 0, len(r.questions[quizID]))
	for _, q := range r.questions[quizID] {
		out = append(out, copyQuestion(q))
	}
	return out, nil
}

func (r *memQuizRepo) GetQuestion(_ context.Context, quizID, questionID uuid.UUID) (*entities.Question, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.questions[quizID] {
		if q.ID == questionID {
			return copyQuestion(q), nil
		}
	}
	return nil, repository.ErrQuestionNotFound
}

func (r *memQuizRepo) SaveAnswer(_ context.Context, q *entities.Question) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, stored := range r.questions[q.QuizID] {
		if stored.ID != q.ID {
			continue
		}
		if stored.UserAnswer != nil {
			return repository.ErrQuestionAlreadyAnswered
		}
		c := copyQuestion(q)
		stored.UserAnswer, stored.IsCorrect = c.UserAnswer, c.IsCorrect
		return nil
	}
	return repository.ErrQuestionNotFound
}

func (r *memQuizRepo) CompleteQuiz(_ context.Context, quiz *entities.Quiz) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.quizzes[quiz.ID]
	if !ok || stored.OwnerID != quiz.OwnerID || stored.IsCompleted() {
		return repository.ErrQuizAlreadyCompleted
	}
	r.quizzes[quiz.ID] = copyQuiz(quiz)
	return nil
}

type recordingPublisher struct {
	events []entities.QuizCompletedEvent
	err    error
}

func (p *recordingPublisher) PublishQuizCompleted(_ context.Context, evt entities.QuizCompletedEvent) error {
	p.events = append(p.events, evt)
	return p.err
}

type mapCache struct {
	reports map[uuid.UUID]*entities.QuizReport
}

func (c *mapCache) Get(quizID uuid.UUID) (*entities.QuizReport, bool) {
	r, ok := c.reports[quizID]
	return r, ok
}

func (c *mapCache) Set(report *entities.QuizReport) {
	c.reports[report.Quiz.ID] = report
}
