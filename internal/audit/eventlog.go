package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"
)

// Event types recorded by the marks and reporting paths.
const (
	EventMarkUpserted      = "MarkUpserted"
	EventAggregateComputed = "AggregateComputed"
)

type Event struct {
	Seq       int64  `json:"seq"`
	Type      string `json:"type"`
	Key       string `json:"key"`
	DataJSON  string `json:"data"`
	CreatedAt int64  `json:"created_at"`
}

// Recorder appends audit events. Writers treat a nil payload as "{}" and must
// never let audit failures block the operation they describe.
type Recorder interface {
	Append(ctx context.Context, typ, key string, payload any) error
}

// EventLog is the append-only audit trail backing the transparency story:
// every mark write and every aggregate run leaves a row.
type EventLog struct{ db *sql.DB }

func NewEventLog(db *sql.DB) *EventLog { return &EventLog{db: db} }

func (l *EventLog) Append(ctx context.Context, typ, key string, payload any) error {
	data := "{}"
	if payload != nil {
		buf, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		data = string(buf)
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO event_log (typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4)`,
		typ, key, data, time.Now().Unix())
	return err
}

// Recent returns the newest events, newest first.
func (l *EventLog) Recent(ctx context.Context, limit int) ([]Event, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT seq, typ, key, data, created_at FROM event_log ORDER BY seq DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Seq, &e.Type, &e.Key, &e.DataJSON, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// NopRecorder discards events; used when running on the in-memory store.
type NopRecorder struct{}

func (NopRecorder) Append(context.Context, string, string, any) error { return nil }
