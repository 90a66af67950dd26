package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"timed-quiz-service/internal/app"
	"timed-quiz-service/internal/domain"
)

const (
	defaultScoreLimit = 50
	maxScoreLimit     = 1000
)

// ScoreHandler accepts score reports and lists saved marks.
type ScoreHandler struct {
	marks app.MarkRepository
}

func NewScoreHandler(marks app.MarkRepository) *ScoreHandler {
	return &ScoreHandler{marks: marks}
}

type saveScoreRequest struct {
	Score *int `json:"score"`
	Total *int `json:"total"`
}

// Save handles POST /save_score. Both fields are required.
func (h *ScoreHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req saveScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Score == nil || req.Total == nil {
		writeErr(w, http.StatusBadRequest, "Invalid data")
		return
	}
	report := domain.Report{Score: *req.Score, Total: *req.Total}
	if err := report.Validate(); err != nil {
		writeErr(w, http.StatusBadRequest, "Invalid data")
		return
	}

	mark, err := h.marks.SaveMark(r.Context(), report)
	if err != nil {
		log.Printf("save score %d/%d: %v", report.Score, report.Total, err)
		writeErr(w, http.StatusInternalServerError, "could not save score")
		return
	}
	log.Printf("saved mark %s: %d/%d", mark.ID, mark.Score, mark.Total)
	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

// List handles GET /scores, newest first.
func (h *ScoreHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := defaultScoreLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= maxScoreLimit {
			limit = n
		}
	}
	marks, err := h.marks.ListMarks(r.Context(), limit)
	if err != nil {
		log.Printf("list scores: %v", err)
		writeErr(w, http.StatusInternalServerError, "could not list scores")
		return
	}
	if marks == nil {
		marks = []domain.Mark{}
	}
	writeJSON(w, http.StatusOK, marks)
}
