package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres/repository"
)

// QuizService generates quizzes from dictionary words and grades them.
type QuizService struct {
	quizRepo  QuizRepository
	dictRepo  DictionaryRepository
	tx        Transactor
	sampler   *Sampler
	resolver  *TypeResolver
	options   *OptionGenerator
	publisher EventPublisher
	cache     ResultCache
	logger    *zap.Logger
	now       func() time.Time
}

func NewQuizService(
	quizRepo QuizRepository,
	dictRepo DictionaryRepository,
	tx Transactor,
	rng Rand,
	logger *zap.Logger,
) *QuizService {
	return &QuizService{
		quizRepo:  quizRepo,
		dictRepo:  dictRepo,
		tx:        tx,
		sampler:   NewSampler(rng),
		resolver:  NewTypeResolver(rng),
		options:   NewOptionGenerator(rng),
		publisher: noopPublisher{},
		cache:     noopCache{},
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SetPublisher sets the publisher for quiz-completed events.
func (s *QuizService) SetPublisher(p EventPublisher) {
	s.publisher = p
}

// SetResultCache sets the cache used by Result.
func (s *QuizService) SetResultCache(c ResultCache) {
	s.cache = c
}

// StartQuiz creates an open quiz with up to wordCount questions drawn from the dictionary.
// A dictionary with fewer words yields fewer questions; an empty one yields none.
// The quiz and its questions are stored atomically.
func (s *QuizService) StartQuiz(
	ctx context.Context,
	ownerID, dictionaryID int64,
	wordCount int,
	mode entities.QuizMode,
) (*entities.Quiz, error) {
	if wordCount < 1 {
		return nil, fmt.Errorf("%w: word count must be at least 1", ErrInvalidInput)
	}
	parsed, err := entities.ParseQuizMode(string(mode))
	if err != nil {
		return nil, fmt.Errorf("%w: %s %q", ErrInvalidInput, err, mode)
	}
	mode = parsed

	ok, err := s.dictRepo.IsAuthorized(ctx, ownerID, dictionaryID)
	if err != nil {
		return nil, fmt.Errorf("check access: %w", err)
	}
	if !ok {
		return nil, ErrDictionaryNotFound
	}

	words, err := s.dictRepo.WordsOf(ctx, dictionaryID)
	if err != nil {
		return nil, fmt.Errorf("get words: %w", err)
	}

	quiz := entities.NewQuiz(ownerID, dictionaryID, mode, wordCount, s.now())
	questions := s.generateQuestions(quiz, words)

	quiz.QuestionIDs = make([]uuid.UUID, len(questions))
	for i, q := range questions {
		quiz.QuestionIDs[i] = q.ID
	}

	err = s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if err := s.quizRepo.CreateQuiz(ctx, quiz); err != nil {
			return err
		}
		return s.quizRepo.CreateQuestions(ctx, questions)
	})
	if err != nil {
		return nil, fmt.Errorf("store quiz: %w", err)
	}

	s.logger.Info("quiz started",
		zap.String("quiz_id", quiz.ID.String()),
		zap.Int64("owner_id", ownerID),
		zap.Int64("dictionary_id", dictionaryID),
		zap.String("mode", string(mode)),
		zap.Int("requested", wordCount),
		zap.Int("questions", len(questions)),
	)

	return quiz, nil
}

func (s *QuizService) generateQuestions(quiz *entities.Quiz, words []*entities.Word) []*entities.Question {
	sampled := s.sampler.Sample(words, quiz.WordCount)
	questions := make([]*entities.Question, 0, len(sampled))

	for i, w := range sampled {
		qType := s.resolver.Resolve(w, quiz.Mode)
		correct := w.Answer(qType)
		siblings := s.sampler.SampleExcluding(words, w.ID, entities.MaxChoices-1)

		questions = append(questions, &entities.Question{
			ID:            uuid.New(),
			QuizID:        quiz.ID,
			WordID:        w.ID,
			Position:      i,
			Prompt:        w.Prompt(qType),
			Choices:       s.options.GenerateOptions(correct, qType, siblings),
			Type:          qType,
			CorrectAnswer: correct,
		})
	}

	return questions
}

// Questions returns the questions of the owner's quiz without answers.
func (s *QuizService) Questions(ctx context.Context, quizID uuid.UUID, ownerID int64) ([]entities.QuestionView, error) {
	if _, err := s.getQuiz(ctx, quizID, ownerID); err != nil {
		return nil, err
	}

	questions, err := s.quizRepo.GetQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}

	views := make([]entities.QuestionView, len(questions))
	for i, q := range questions {
		views[i] = q.View()
	}

	return views, nil
}

// CompleteQuiz grades the submitted answers and finalizes the quiz exactly once.
//
// Answers referencing questions outside the quiz are skipped but still count
// towards the total. Empty submissions and repeated question IDs are rejected.
func (s *QuizService) CompleteQuiz(
	ctx context.Context,
	quizID uuid.UUID,
	ownerID int64,
	answers []entities.Answer,
) (*entities.QuizResult, error) {
	if err := validateAnswers(answers); err != nil {
		return nil, err
	}

	var quiz *entities.Quiz
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		q, err := s.quizRepo.GetQuizForUpdate(ctx, quizID, ownerID)
		if err != nil {
			if errors.Is(err, repository.ErrQuizNotFound) {
				return ErrQuizNotFound
			}
			return fmt.Errorf("get quiz: %w", err)
		}
		if q.IsCompleted() {
			return ErrQuizAlreadyCompleted
		}

		correct := 0
		for _, a := range answers {
			ok, err := s.gradeAnswer(ctx, quizID, a)
			if err != nil {
				return err
			}
			if ok {
				correct++
			}
		}

		if err := q.Complete(correct, len(answers), s.now()); err != nil {
			return ErrQuizAlreadyCompleted
		}

		if err := s.quizRepo.CompleteQuiz(ctx, q); err != nil {
			if errors.Is(err, repository.ErrQuizAlreadyCompleted) {
				return ErrQuizAlreadyCompleted
			}
			return fmt.Errorf("complete quiz: %w", err)
		}

		quiz = q
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("quiz completed",
		zap.String("quiz_id", quiz.ID.String()),
		zap.Int64("owner_id", ownerID),
		zap.Int("correct", quiz.Result.CorrectCount),
		zap.Int("total", quiz.Result.TotalCount),
	)

	evt := entities.QuizCompletedEvent{
		QuizID:       quiz.ID,
		OwnerID:      quiz.OwnerID,
		DictionaryID: quiz.DictionaryID,
		Result:       *quiz.Result,
		CompletedAt:  *quiz.CompletedAt,
	}
	if err := s.publisher.PublishQuizCompleted(ctx, evt); err != nil {
		s.logger.Error("failed to publish quiz completed event",
			zap.String("quiz_id", quiz.ID.String()),
			zap.Error(err),
		)
	}

	return quiz.Result, nil
}

// gradeAnswer grades one answer and reports whether it was correct.
// Unknown or already answered questions are reported as incorrect.
func (s *QuizService) gradeAnswer(ctx context.Context, quizID uuid.UUID, a entities.Answer) (bool, error) {
	q, err := s.quizRepo.GetQuestion(ctx, quizID, a.QuestionID)
	if err != nil {
		if errors.Is(err, repository.ErrQuestionNotFound) {
			s.logger.Debug("skipping unknown question",
				zap.String("quiz_id", quizID.String()),
				zap.String("question_id", a.QuestionID.String()),
			)
			return false, nil
		}
		return false, fmt.Errorf("get question: %w", err)
	}
	if q.IsAnswered() {
		return false, nil
	}

	ok := q.Grade(a.Text)
	if err := s.quizRepo.SaveAnswer(ctx, q); err != nil {
		if errors.Is(err, repository.ErrQuestionAlreadyAnswered) {
			return false, nil
		}
		return false, fmt.Errorf("save answer: %w", err)
	}

	return ok, nil
}

func validateAnswers(answers []entities.Answer) error {
	if len(answers) == 0 {
		return fmt.Errorf("%w: no answers submitted", ErrInvalidInput)
	}

	seen := make(map[uuid.UUID]struct{}, len(answers))
	for _, a := range answers {
		if _, ok := seen[a.QuestionID]; ok {
			return fmt.Errorf("%w: question %s answered twice", ErrInvalidInput, a.QuestionID)
		}
		seen[a.QuestionID] = struct{}{}
	}

	return nil
}

// Result returns a completed quiz together with its graded questions.
func (s *QuizService) Result(ctx context.Context, quizID uuid.UUID, ownerID int64) (*entities.QuizReport, error) {
	if report, ok := s.cache.Get(quizID); ok {
		if report.Quiz.OwnerID != ownerID {
			return nil, ErrQuizNotFound
		}
		return report, nil
	}

	quiz, err := s.getQuiz(ctx, quizID, ownerID)
	if err != nil {
		return nil, err
	}
	if !quiz.IsCompleted() {
		return nil, ErrQuizNotCompleted
	}

	questions, err := s.quizRepo.GetQuestions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}

	report := &entities.QuizReport{Quiz: quiz, Questions: questions}
	s.cache.Set(report)

	return report, nil
}

// ListAll returns all quizzes of the owner, newest first.
func (s *QuizService) ListAll(ctx context.Context, ownerID int64) ([]*entities.Quiz, error) {
	return s.list(ctx, ownerID, entities.FilterAll)
}

// ListUnfinished returns the owner's open quizzes, newest first.
func (s *QuizService) ListUnfinished(ctx context.Context, ownerID int64) ([]*entities.Quiz, error) {
	return s.list(ctx, ownerID, entities.FilterUnfinished)
}

// ListCompleted returns the owner's completed quizzes, newest first.
func (s *QuizService) ListCompleted(ctx context.Context, ownerID int64) ([]*entities.Quiz, error) {
	return s.list(ctx, ownerID, entities.FilterCompleted)
}

func (s *QuizService) list(ctx context.Context, ownerID int64, filter entities.QuizFilter) ([]*entities.Quiz, error) {
	quizzes, err := s.quizRepo.ListByOwner(ctx, ownerID, filter)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	return quizzes, nil
}

func (s *QuizService) getQuiz(ctx context.Context, quizID uuid.UUID, ownerID int64) (*entities.Quiz, error) {
	quiz, err := s.quizRepo.GetQuiz(ctx, quizID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return quiz, nil
}
