package http

import (
	"encoding/json"
	"net/http"

	"github.com/sankofa-ed/sankofa-sms/internal/marks"
)

func CreateSubjectHandler(store marks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req marks.Subject
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", 400)
			return
		}
		sub, err := store.PutSubject(r.Context(), req)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, sub)
	}
}

func ListSubjectsHandler(store marks.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := store.ListSubjects(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, out)
	}
}
