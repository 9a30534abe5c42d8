package http

import (
	"net/http"
	"strconv"

	"github.com/sankofa-ed/sankofa-sms/internal/audit"
)

// ListEventsHandler exposes the audit trail for report verification.
func ListEventsHandler(log *audit.EventLog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		events, err := log.Recent(r.Context(), limit)
		if err != nil {
			http.Error(w, "audit: "+err.Error(), http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, events)
	}
}
