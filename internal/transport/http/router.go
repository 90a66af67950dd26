package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"timed-quiz-service/internal/app"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	CORSOrigins []string
}

// NewRouter mounts the quiz page, the bank resource, the score endpoints and
// the live session socket.
func NewRouter(service *app.QuizService, bank app.BankLoader, marks app.MarkRepository, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
			ExposedHeaders: []string{"Content-Length"},
			MaxAge:         300,
		}))
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	r.Get("/", PageHandler())
	r.Get("/static/questions.json", BankHandler(bank))

	scores := NewScoreHandler(marks)
	r.Group(func(api chi.Router) {
		api.Use(middleware.Timeout(15 * time.Second))
		api.Post("/save_score", scores.Save)
		api.Get("/scores", scores.List)
	})

	r.Get("/ws", NewWSHandler(service).ServeWS)
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type statusResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

func writeErr(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, statusResponse{Status: "error", Message: msg})
}
