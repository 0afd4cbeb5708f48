package rest

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// RouterConfig configures cross-cutting router behavior.
type RouterConfig struct {
	AuthSecret     []byte
	AllowedOrigins []string
	Timeout        time.Duration
}

// NewRouter wires the quiz API routes.
func NewRouter(h *Handler, cfg RouterConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, RequestLogger(logger), middleware.Recoverer)
	if cfg.Timeout > 0 {
		r.Use(middleware.Timeout(cfg.Timeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(Auth(cfg.AuthSecret, logger))

		r.Route("/quizzes", func(r chi.Router) {
			r.Post("/", h.StartQuiz)
			r.Get("/", h.ListAll)
			r.Get("/unfinished", h.ListUnfinished)
			r.Get("/completed", h.ListCompleted)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Questions)
				r.Post("/submit", h.Submit)
				r.Get("/result", h.Result)
			})
		})

		r.Route("/summary", func(r chi.Router) {
			r.Get("/user", h.UserSummary)
			r.Get("/dictionary", h.DictionarySummary)
		})
	})

	return r
}
