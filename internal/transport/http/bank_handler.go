package http

import (
	"log"
	"net/http"

	"timed-quiz-service/internal/app"
)

// BankHandler serves the question bank as the static JSON array the page and
// terminal clients fetch.
func BankHandler(bank app.BankLoader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		questions, err := bank.LoadBank(r.Context())
		if err != nil {
			log.Printf("serve bank: %v", err)
			writeErr(w, http.StatusServiceUnavailable, "questions unavailable")
			return
		}
		writeJSON(w, http.StatusOK, questions)
	}
}
