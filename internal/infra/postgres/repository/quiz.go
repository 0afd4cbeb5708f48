package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
	"github.com/aliskhannn/vocab-quiz/internal/infra/postgres"
)

var (
	ErrQuizNotFound            = errors.New("quiz not found")
	ErrQuizAlreadyCompleted    = errors.New("quiz already completed")
	ErrQuestionNotFound        = errors.New("question not found")
	ErrQuestionAlreadyAnswered = errors.New("question already answered")
)

const quizColumns = `
	id, owner_id, dictionary_id, mode, word_count, question_ids::text[],
	created_at, completed_at, correct_count, incorrect_count, total_count,
	score_percent, duration_seconds
`

const questionColumns = `
	id, quiz_id, word_id, position, prompt, choices, question_type,
	correct_answer, user_answer, is_correct
`

// QuizRepository provides access to quizzes and their questions in the database.
type QuizRepository struct {
	db postgres.DBTX
}

// NewQuizRepository creates a new QuizRepository with the provided database handle.
func NewQuizRepository(db postgres.DBTX) *QuizRepository {
	return &QuizRepository{db: db}
}

// CreateQuiz inserts a new open quiz.
func (r *QuizRepository) CreateQuiz(ctx context.Context, quiz *entities.Quiz) error {
	query := `
		INSERT INTO quizzes (
			id, owner_id, dictionary_id, mode, word_count, question_ids, created_at
		) VALUES ($1, $2, $3, $4, $5, $6::text[]::uuid[], $7)
	`

	_, err := postgres.Executor(ctx, r.db).Exec(
		ctx,
		query,
		quiz.ID,
		quiz.OwnerID,
		quiz.DictionaryID,
		string(quiz.Mode),
		quiz.WordCount,
		uuidStrings(quiz.QuestionIDs),
		quiz.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create quiz: %w", err)
	}

	return nil
}

// CreateQuestions inserts all questions of a quiz in one batch.
func (r *QuizRepository) CreateQuestions(ctx context.Context, questions []*entities.Question) error {
	if len(questions) == 0 {
		return nil
	}

	query := `
		INSERT INTO questions (
			id, quiz_id, word_id, position, prompt, choices, question_type, correct_answer
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	batch := &pgx.Batch{}
	for _, q := range questions {
		batch.Queue(query, q.ID, q.QuizID, q.WordID, q.Position, q.Prompt, q.Choices, string(q.Type), q.CorrectAnswer)
	}

	results := postgres.Executor(ctx, r.db).SendBatch(ctx, batch)
	defer results.Close()

	for range questions {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("create question: %w", err)
		}
	}

	return nil
}

// GetQuiz returns the quiz with the given ID if it belongs to ownerID.
func (r *QuizRepository) GetQuiz(ctx context.Context, quizID uuid.UUID, ownerID int64) (*entities.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1 AND owner_id = $2`

	quiz, err := scanQuiz(postgres.Executor(ctx, r.db).QueryRow(ctx, query, quizID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}

	return quiz, nil
}

// GetQuizForUpdate works like GetQuiz but locks the row until the transaction ends.
func (r *QuizRepository) GetQuizForUpdate(ctx context.Context, quizID uuid.UUID, ownerID int64) (*entities.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE id = $1 AND owner_id = $2 FOR UPDATE`

	quiz, err := scanQuiz(postgres.Executor(ctx, r.db).QueryRow(ctx, query, quizID, ownerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, fmt.Errorf("get quiz for update: %w", err)
	}

	return quiz, nil
}

// ListByOwner returns the owner's quizzes, newest first.
func (r *QuizRepository) ListByOwner(ctx context.Context, ownerID int64, filter entities.QuizFilter) ([]*entities.Quiz, error) {
	query := `SELECT ` + quizColumns + ` FROM quizzes WHERE owner_id = $1`
	switch filter {
	case entities.FilterUnfinished:
		query += ` AND completed_at IS NULL`
	case entities.FilterCompleted:
		query += ` AND completed_at IS NOT NULL`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := postgres.Executor(ctx, r.db).Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	quizzes := make([]*entities.Quiz, 0)
	for rows.Next() {
		quiz, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		quizzes = append(quizzes, quiz)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate quizzes: %w", err)
	}

	return quizzes, nil
}

// GetQuestions returns the questions of a quiz in presentation order.
func (r *QuizRepository) GetQuestions(ctx context.Context, quizID uuid.UUID) ([]*entities.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE quiz_id = $1 ORDER BY position`

	rows, err := postgres.Executor(ctx, r.db).Query(ctx, query, quizID)
	if err != nil {
		return nil, fmt.Errorf("get questions: %w", err)
	}
	defer rows.Close()

	questions := make([]*entities.Question, 0)
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate questions: %w", err)
	}

	return questions, nil
}

// GetQuestion returns a single question of the quiz.
func (r *QuizRepository) GetQuestion(ctx context.Context, quizID, questionID uuid.UUID) (*entities.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1 AND quiz_id = $2`

	q, err := scanQuestion(postgres.Executor(ctx, r.db).QueryRow(ctx, query, questionID, quizID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return q, nil
}

// SaveAnswer stores the graded answer of a question that has not been answered yet.
func (r *QuizRepository) SaveAnswer(ctx context.Context, q *entities.Question) error {
	query := `
		UPDATE questions
		SET user_answer = $1, is_correct = $2
		WHERE id = $3 AND quiz_id = $4 AND user_answer IS NULL
	`

	tag, err := postgres.Executor(ctx, r.db).Exec(ctx, query, q.UserAnswer, q.IsCorrect, q.ID, q.QuizID)
	if err != nil {
		return fmt.Errorf("save answer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrQuestionAlreadyAnswered
	}

	return nil
}

// CompleteQuiz stores the result of a quiz that is still open.
// It returns ErrQuizAlreadyCompleted when the quiz was completed concurrently.
func (r *QuizRepository) CompleteQuiz(ctx context.Context, quiz *entities.Quiz) error {
	if quiz.Result == nil || quiz.CompletedAt == nil {
		return errors.New("complete quiz: result is not set")
	}

	query := `
		UPDATE quizzes
		SET completed_at = $1,
		    correct_count = $2,
		    incorrect_count = $3,
		    total_count = $4,
		    score_percent = $5,
		    duration_seconds = $6
		WHERE id = $7 AND owner_id = $8 AND completed_at IS NULL
	`

	res := quiz.Result
	tag, err := postgres.Executor(ctx, r.db).Exec(
		ctx,
		query,
		*quiz.CompletedAt,
		res.CorrectCount,
		res.IncorrectCount,
		res.TotalCount,
		res.ScorePercent,
		res.DurationSeconds,
		quiz.ID,
		quiz.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("complete quiz: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrQuizAlreadyCompleted
	}

	return nil
}

// ListStaleOwners returns owners having unfinished quizzes created before olderThan,
// at least one of which has not been reminded about yet.
func (r *QuizRepository) ListStaleOwners(ctx context.Context, olderThan time.Time) ([]entities.StaleQuizReminder, error) {
	query := `
		SELECT owner_id, COUNT(*), MIN(created_at)
		FROM quizzes
		WHERE completed_at IS NULL AND created_at < $1
		GROUP BY owner_id
		HAVING BOOL_OR(reminded_at IS NULL)
		ORDER BY owner_id
	`

	rows, err := postgres.Executor(ctx, r.db).Query(ctx, query, olderThan)
	if err != nil {
		return nil, fmt.Errorf("list stale owners: %w", err)
	}
	defer rows.Close()

	var out []entities.StaleQuizReminder
	for rows.Next() {
		var rem entities.StaleQuizReminder
		if err := rows.Scan(&rem.OwnerID, &rem.UnfinishedCount, &rem.OldestCreatedAt); err != nil {
			return nil, fmt.Errorf("scan stale owner: %w", err)
		}
		out = append(out, rem)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stale owners: %w", err)
	}

	return out, nil
}

// MarkReminded records that the owner was reminded about unfinished quizzes
// created before olderThan.
func (r *QuizRepository) MarkReminded(ctx context.Context, ownerID int64, olderThan, at time.Time) error {
	query := `
		UPDATE quizzes
		SET reminded_at = $1
		WHERE owner_id = $2
		  AND completed_at IS NULL
		  AND created_at < $3
		  AND reminded_at IS NULL
	`

	if _, err := postgres.Executor(ctx, r.db).Exec(ctx, query, at, ownerID, olderThan); err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}

	return nil
}

func scanQuiz(row pgx.Row) (*entities.Quiz, error) {
	var (
		quiz        entities.Quiz
		mode        string
		questionIDs []string
		completedAt pgtype.Timestamptz
		correct     pgtype.Int4
		incorrect   pgtype.Int4
		total       pgtype.Int4
		score       pgtype.Int4
		duration    pgtype.Int4
	)

	err := row.Scan(
		&quiz.ID,
		&quiz.OwnerID,
		&quiz.DictionaryID,
		&mode,
		&quiz.WordCount,
		&questionIDs,
		&quiz.CreatedAt,
		&completedAt,
		&correct,
		&incorrect,
		&total,
		&score,
		&duration,
	)
	if err != nil {
		return nil, err
	}

	quiz.Mode = entities.QuizMode(mode)
	quiz.QuestionIDs, err = parseUUIDs(questionIDs)
	if err != nil {
		return nil, err
	}

	if completedAt.Valid {
		t := completedAt.Time
		quiz.CompletedAt = &t
		quiz.Result = &entities.QuizResult{
			CorrectCount:   int(correct.Int32),
			IncorrectCount: int(incorrect.Int32),
			TotalCount:     int(total.Int32),
			ScorePercent:   int(score.Int32),
		}
		if duration.Valid {
			d := int(duration.Int32)
			quiz.Result.DurationSeconds = &d
		}
	}

	return &quiz, nil
}

func scanQuestion(row pgx.Row) (*entities.Question, error) {
	var (
		q          entities.Question
		qType      string
		userAnswer pgtype.Text
		isCorrect  pgtype.Bool
	)

	err := row.Scan(
		&q.ID,
		&q.QuizID,
		&q.WordID,
		&q.Position,
		&q.Prompt,
		&q.Choices,
		&qType,
		&q.CorrectAnswer,
		&userAnswer,
		&isCorrect,
	)
	if err != nil {
		return nil, err
	}

	q.Type = entities.QuestionType(qType)
	if userAnswer.Valid {
		a := userAnswer.String
		q.UserAnswer = &a
	}
	if isCorrect.Valid {
		c := isCorrect.Bool
		q.IsCorrect = &c
	}

	return &q, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}
	return out
}

func parseUUIDs(ss []string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(ss))
	for i, s := range ss {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("parse uuid %q: %w", s, err)
		}
		out[i] = id
	}
	return out, nil
}
