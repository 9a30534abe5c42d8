package http

import (
	"encoding/json"
	stdlog "log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sankofa-ed/sankofa-sms/internal/audit"
	"github.com/sankofa-ed/sankofa-sms/internal/marks"
)

// PutMarkHandler upserts one mark. The store validates the score before
// anything is written; a validation failure comes back as a structured 400
// and nothing is persisted.
func PutMarkHandler(store marks.Store, log audit.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req marks.Mark
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		if req.StudentID == "" || req.SubjectID == "" || req.Term == "" || req.ExamType == "" {
			http.Error(w, "student_id, subject_id, term and exam_type required", 400)
			return
		}
		m, err := store.PutMark(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		// The mark is already stored; audit trouble must not fail the request.
		if err := log.Append(r.Context(), audit.EventMarkUpserted, m.ID, m); err != nil {
			stdlog.Printf("audit append: %v", err)
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func ListMarksHandler(store marks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "studentID")
		term := r.URL.Query().Get("term")
		examType := r.URL.Query().Get("exam_type")
		out, err := store.GetMarks(r.Context(), studentID, term, examType)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
