package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo backed by SQLite and the sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *eventRepo) AppendRunEvent(ctx context.Context, data RunEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder.Insert(runEventsTable).
		Columns("sequence", "timestamp", "run_id", "operation", "exam_id",
			"sessions_created", "sessions_moved", "unresolved", "latency_ms",
			"success", "error_message").
		Values(seqNum, time.Now().UTC().Format(time.RFC3339Nano), data.RunID, data.Operation,
			nullInt(data.ExamID), data.SessionsCreated, data.SessionsMoved, data.Unresolved,
			data.LatencyMs, data.Success, nullString(data.ErrorMessage)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save run event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryRunEvents(ctx context.Context, opts QueryOpts) ([]RunEventRecord, error) {
	sel := builder.Select("id", "sequence", "timestamp", "run_id", "operation", "exam_id",
		"sessions_created", "sessions_moved", "unresolved", "latency_ms", "success", "error_message").
		From(builder.Table(runEventsTable)).
		OrderBy(entsql.Desc("sequence"))
	if opts.Operation != "" {
		sel.Where(entsql.EQ("operation", opts.Operation))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query run events: %w", err)
	}
	defer rows.Close()

	var records []RunEventRecord
	for rows.Next() {
		var (
			rec    RunEventRecord
			ts     string
			examID sql.NullInt64
			errMsg sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Sequence, &ts, &rec.RunID, &rec.Operation, &examID,
			&rec.SessionsCreated, &rec.SessionsMoved, &rec.Unresolved, &rec.LatencyMs,
			&rec.Success, &errMsg); err != nil {
			return nil, fmt.Errorf("scan run event: %w", err)
		}
		rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse run event timestamp %q: %w", ts, err)
		}
		rec.ExamID = int(examID.Int64)
		rec.ErrorMessage = errMsg.String
		records = append(records, rec)
	}
	return records, rows.Err()
}

// nullInt stores 0 as NULL.
func nullInt(v int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(v), Valid: v != 0}
}

// nullString stores "" as NULL.
func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
