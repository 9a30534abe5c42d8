package http

import (
	"encoding/json"
	"net/http"

	"github.com/sankofa-ed/sankofa-sms/internal/grading"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps structured grading errors to HTTP statuses and ships the
// kind + message as JSON so UI collaborators can show the message verbatim.
func writeError(w http.ResponseWriter, err error) {
	kind := grading.KindOf(err)
	status := http.StatusBadRequest
	switch kind {
	case grading.KindStudentNotFound:
		status = http.StatusNotFound
	case grading.KindMissingCoreSubject:
		status = http.StatusUnprocessableEntity
	case grading.KindNegativeScore, grading.KindScoreTooHigh:
		status = http.StatusBadRequest
	case "":
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}
	writeJSON(w, status, map[string]string{"kind": string(kind), "message": err.Error()})
}
