package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studyplan/internal/calendar"
)

var sessionFields = []string{"id", "course_id", "exam_id", "milestone",
	"target_date", "final_date", "duration", "status"}

func (r *repo) GetSession(ctx context.Context, id int) (*Session, error) {
	query, args := selectSessions().Where(entsql.EQ("id", id)).Query()
	sessions, err := r.querySessions(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, nil
	}
	return &sessions[0], nil
}

// ListSessions returns every session ordered by final date.
func (r *repo) ListSessions(ctx context.Context) ([]Session, error) {
	query, args := selectSessions().OrderBy("final_date", "id").Query()
	return r.querySessions(ctx, query, args)
}

func (r *repo) ListSessionsByExam(ctx context.Context, examID int) ([]Session, error) {
	query, args := selectSessions().
		Where(entsql.EQ("exam_id", examID)).
		OrderBy("final_date", "id").
		Query()
	return r.querySessions(ctx, query, args)
}

func (r *repo) ListSessionsByCourse(ctx context.Context, courseID int) ([]Session, error) {
	query, args := selectSessions().
		Where(entsql.EQ("course_id", courseID)).
		OrderBy("final_date", "id").
		Query()
	return r.querySessions(ctx, query, args)
}

// CreateSessions inserts all sessions in one transaction.
func (r *repo) CreateSessions(ctx context.Context, sessions []Session) ([]Session, error) {
	if len(sessions) == 0 {
		return nil, nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	created := make([]Session, len(sessions))
	for i, s := range sessions {
		if s.Status == "" {
			s.Status = StatusPending
		}
		id, err := insertSession(ctx, tx, s)
		if err != nil {
			return nil, err
		}
		s.ID = id
		created[i] = s
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit sessions: %w", err)
	}
	return created, nil
}

func (r *repo) SaveSession(ctx context.Context, s Session) (Session, error) {
	if s.Status == "" {
		s.Status = StatusPending
	}
	if s.ID == 0 {
		id, err := insertSession(ctx, r.db, s)
		if err != nil {
			return Session{}, err
		}
		s.ID = id
		return s, nil
	}

	query, args := builder.Update(sessionsTable).
		Set("milestone", s.Milestone).
		Set("target_date", calendar.Format(s.TargetDate)).
		Set("final_date", calendar.Format(s.FinalDate)).
		Set("duration", s.Duration).
		Set("status", string(s.Status)).
		Where(entsql.EQ("id", s.ID)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return Session{}, fmt.Errorf("update session %d: %w", s.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return Session{}, fmt.Errorf("session %d: %w", s.ID, ErrNotFound)
	}
	return s, nil
}

func (r *repo) DeleteSessionsByCourse(ctx context.Context, courseID int) error {
	query, args := builder.Delete(sessionsTable).Where(entsql.EQ("course_id", courseID)).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete sessions of course %d: %w", courseID, err)
	}
	return nil
}

func (r *repo) DeleteSessionsByExam(ctx context.Context, examID int, keepDone bool) error {
	pred := entsql.EQ("exam_id", examID)
	if keepDone {
		pred = entsql.And(pred, entsql.NEQ("status", string(StatusDone)))
	}
	query, args := builder.Delete(sessionsTable).Where(pred).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete sessions of exam %d: %w", examID, err)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertSession(ctx context.Context, db execer, s Session) (int, error) {
	query, args := builder.Insert(sessionsTable).
		Columns("milestone", "target_date", "final_date", "duration", "status", "course_id", "exam_id").
		Values(s.Milestone, calendar.Format(s.TargetDate), calendar.Format(s.FinalDate),
			s.Duration, string(s.Status), s.CourseID, s.ExamID).
		Query()
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("save session %s of course %d: %w", s.Milestone, s.CourseID, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("session id: %w", err)
	}
	return int(id), nil
}

func selectSessions() *entsql.Selector {
	return builder.Select(sessionFields...).From(builder.Table(sessionsTable))
}

func (r *repo) querySessions(ctx context.Context, query string, args []any) ([]Session, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		var (
			s             Session
			target, final string
			status        string
		)
		if err := rows.Scan(&s.ID, &s.CourseID, &s.ExamID, &s.Milestone,
			&target, &final, &s.Duration, &status); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		s.Status = SessionStatus(status)
		if s.TargetDate, err = parseStoredDate(target); err != nil {
			return nil, err
		}
		if s.FinalDate, err = parseStoredDate(final); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}
