package http

import (
	"bytes"
	"fmt"
	stdlog "log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/sankofa-ed/sankofa-sms/internal/audit"
	"github.com/sankofa-ed/sankofa-sms/internal/grading"
	"github.com/sankofa-ed/sankofa-sms/internal/marks"
	"github.com/sankofa-ed/sankofa-sms/internal/render"
	"github.com/sankofa-ed/sankofa-sms/internal/storage"
)

// Defaults applies the school's default period when a request omits it.
type Defaults struct {
	Term     string
	ExamType string
}

func (d Defaults) period(r *http.Request) (term, examType string) {
	term = r.URL.Query().Get("term")
	if term == "" {
		term = d.Term
	}
	examType = r.URL.Query().Get("exam_type")
	if examType == "" {
		examType = d.ExamType
	}
	return term, examType
}

// GetReportHandler returns the transparency report JSON for one student/period.
func GetReportHandler(eng *grading.Engine, d Defaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, examType := d.period(r)
		rep, err := eng.Compute(r.Context(), chi.URLParam(r, "studentID"), term, examType)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rep)
	}
}

// GetAggregateHandler computes the aggregate, persists it on the student row,
// records an audit event, and returns the summary.
func GetAggregateHandler(eng *grading.Engine, store marks.Store, log audit.Recorder, d Defaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "studentID")
		term, examType := d.period(r)
		rep, err := eng.Compute(r.Context(), studentID, term, examType)
		if err != nil {
			writeError(w, err)
			return
		}
		if err := store.SaveAggregate(r.Context(), studentID, rep.Aggregate); err != nil {
			writeError(w, err)
			return
		}
		if err := log.Append(r.Context(), audit.EventAggregateComputed, studentID, rep); err != nil {
			stdlog.Printf("audit append: %v", err)
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"student_id":     studentID,
			"term":           term,
			"exam_type":      examType,
			"aggregate":      rep.Aggregate,
			"core_total":     rep.CoreTotal,
			"elective_total": rep.ElectiveTotal,
		})
	}
}

// GetReportCSVHandler streams the CSV rendering of the transparency report
// and, when a blob store is configured, archives a copy.
func GetReportCSVHandler(eng *grading.Engine, blobs storage.BlobStore, d Defaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		studentID := chi.URLParam(r, "studentID")
		term, examType := d.period(r)
		rep, err := eng.Compute(r.Context(), studentID, term, examType)
		if err != nil {
			writeError(w, err)
			return
		}
		var buf bytes.Buffer
		if err := render.WriteCSV(&buf, rep); err != nil {
			http.Error(w, "render csv: "+err.Error(), http.StatusInternalServerError)
			return
		}
		if blobs != nil {
			key := fmt.Sprintf("reports/%s/%s-%s.csv", studentID,
				strings.ReplaceAll(term, " ", "_"), strings.ReplaceAll(examType, " ", "_"))
			if _, err := blobs.Put(key, bytes.NewReader(buf.Bytes())); err != nil {
				stdlog.Printf("archive report: %v", err)
			}
		}
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write(buf.Bytes())
	}
}

// RecomputeAggregatesHandler runs the engine over every student and persists
// the results. Per-student failures are collected, not fatal to the batch.
func RecomputeAggregatesHandler(eng *grading.Engine, store marks.Store, log audit.Recorder, d Defaults) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		term, examType := d.period(r)
		students, err := store.ListStudents(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		updated := 0
		failed := map[string]string{}
		for _, st := range students {
			rep, err := eng.Compute(r.Context(), st.ID, term, examType)
			if err != nil {
				failed[st.ID] = err.Error()
				continue
			}
			if err := store.SaveAggregate(r.Context(), st.ID, rep.Aggregate); err != nil {
				failed[st.ID] = err.Error()
				continue
			}
			if err := log.Append(r.Context(), audit.EventAggregateComputed, st.ID, rep); err != nil {
				stdlog.Printf("audit append: %v", err)
			}
			updated++
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"term":      term,
			"exam_type": examType,
			"total":     len(students),
			"updated":   updated,
			"failed":    failed,
		})
	}
}
