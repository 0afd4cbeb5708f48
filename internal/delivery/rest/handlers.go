package rest

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aliskhannn/vocab-quiz/internal/domain/entities"
)

type Handler struct {
	quizService    QuizService
	summaryService SummaryService
	logger         *zap.Logger
}

func NewHandler(quizService QuizService, summaryService SummaryService, logger *zap.Logger) *Handler {
	return &Handler{
		quizService:    quizService,
		summaryService: summaryService,
		logger:         logger,
	}
}

// StartQuiz handles POST /quizzes.
func (h *Handler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerIDFromContext(r.Context())

	var req startQuizRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.DictionaryID < 1 {
		writeError(w, http.StatusBadRequest, "dictionaryId is required")
		return
	}
	if req.WordCount < 1 {
		writeError(w, http.StatusBadRequest, "wordCount must be at least 1")
		return
	}

	mode, err := entities.ParseQuizMode(req.QuestionType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	quiz, err := h.quizService.StartQuiz(r.Context(), ownerID, req.DictionaryID, req.WordCount, mode)
	if err != nil {
		h.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, startQuizResponse{QuizID: quiz.ID})
}

// ListAll handles GET /quizzes.
func (h *Handler) ListAll(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.quizService.ListAll)
}

// ListUnfinished handles GET /quizzes/unfinished.
func (h *Handler) ListUnfinished(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.quizService.ListUnfinished)
}

// ListCompleted handles GET /quizzes/completed.
func (h *Handler) ListCompleted(w http.ResponseWriter, r *http.Request) {
	h.list(w, r, h.quizService.ListCompleted)
}

type listFunc func(ctx context.Context, ownerID int64) ([]*entities.Quiz, error)

func (h *Handler) list(w http.ResponseWriter, r *http.Request, fetch listFunc) {
	ownerID, _ := OwnerIDFromContext(r.Context())

	quizzes, err := fetch(r.Context(), ownerID)
	if err != nil {
		h.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toQuizList(quizzes))
}

// Questions handles GET /quizzes/{id}.
func (h *Handler) Questions(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerIDFromContext(r.Context())

	quizID, ok := quizIDParam(w, r)
	if !ok {
		return
	}

	questions, err := h.quizService.Questions(r.Context(), quizID, ownerID)
	if err != nil {
		h.handleErr(w, r, err)
		return
	}
	if questions == nil {
		questions = []entities.QuestionView{}
	}

	writeJSON(w, http.StatusOK, questions)
}

// Submit handles POST /quizzes/{id}/submit. The body is an array of
// {questionId, userAnswer} pairs.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerIDFromContext(r.Context())

	quizID, ok := quizIDParam(w, r)
	if !ok {
		return
	}

	var req []submitAnswer
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	answers := make([]entities.Answer, len(req))
	for i, a := range req {
		if a.QuestionID == uuid.Nil || a.UserAnswer == "" {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("answer %d: questionId and userAnswer are required", i))
			return
		}
		answers[i] = entities.Answer{QuestionID: a.QuestionID, Text: a.UserAnswer}
	}

	result, err := h.quizService.CompleteQuiz(r.Context(), quizID, ownerID, answers)
	if err != nil {
		h.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Result handles GET /quizzes/{id}/result.
func (h *Handler) Result(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerIDFromContext(r.Context())

	quizID, ok := quizIDParam(w, r)
	if !ok {
		return
	}

	report, err := h.quizService.Result(r.Context(), quizID, ownerID)
	if err != nil {
		h.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toResultResponse(report))
}

// UserSummary handles GET /summary/user.
func (h *Handler) UserSummary(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerIDFromContext(r.Context())

	summary, err := h.summaryService.UserSummary(r.Context(), ownerID)
	if err != nil {
		h.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

// DictionarySummary handles GET /summary/dictionary?dictionaryId=.
func (h *Handler) DictionarySummary(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := OwnerIDFromContext(r.Context())

	dictID, err := strconv.ParseInt(r.URL.Query().Get("dictionaryId"), 10, 64)
	if err != nil || dictID < 1 {
		writeError(w, http.StatusBadRequest, "invalid dictionaryId")
		return
	}

	summary, err := h.summaryService.DictionarySummary(r.Context(), ownerID, dictID)
	if err != nil {
		h.handleErr(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}

func quizIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid quiz id")
		return uuid.Nil, false
	}
	return id, true
}
