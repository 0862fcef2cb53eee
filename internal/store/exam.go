package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studyplan/internal/calendar"
)

// repo implements Repo on top of SQLite.
type repo struct {
	db *sql.DB
}

func (r *repo) CreateExam(ctx context.Context, e *Exam) error {
	query, args := builder.Insert(examsTable).
		Columns("title", "exam_date").
		Values(e.Title, calendar.Format(e.Date)).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save exam: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("exam id: %w", err)
	}
	e.ID = int(id)
	return nil
}

func (r *repo) GetExam(ctx context.Context, id int) (*Exam, error) {
	query, args := selectExams().Where(entsql.EQ("id", id)).Query()
	exams, err := r.queryExams(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(exams) == 0 {
		return nil, nil
	}
	return &exams[0], nil
}

func (r *repo) ListExams(ctx context.Context) ([]Exam, error) {
	query, args := selectExams().OrderBy("exam_date", "id").Query()
	return r.queryExams(ctx, query, args)
}

func (r *repo) DeleteExam(ctx context.Context, id int) error {
	query, args := builder.Delete(examsTable).Where(entsql.EQ("id", id)).Query()
	return execAffecting(ctx, r.db, query, args, "exam", id)
}

func selectExams() *entsql.Selector {
	return builder.Select("id", "title", "exam_date").From(builder.Table(examsTable))
}

func (r *repo) queryExams(ctx context.Context, query string, args []any) ([]Exam, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query exams: %w", err)
	}
	defer rows.Close()

	var exams []Exam
	for rows.Next() {
		var (
			e    Exam
			date string
		)
		if err := rows.Scan(&e.ID, &e.Title, &date); err != nil {
			return nil, fmt.Errorf("scan exam: %w", err)
		}
		if e.Date, err = parseStoredDate(date); err != nil {
			return nil, err
		}
		exams = append(exams, e)
	}
	return exams, rows.Err()
}

// ErrNotFound is returned by deletes that matched no row.
var ErrNotFound = errors.New("not found")

// execAffecting runs a statement that must touch at least one row.
func execAffecting(ctx context.Context, db *sql.DB, query string, args []any, entity string, id int) error {
	res, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", entity, id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete %s %d: %w", entity, id, err)
	}
	if n == 0 {
		return fmt.Errorf("%s %d: %w", entity, id, ErrNotFound)
	}
	return nil
}

func parseStoredDate(s string) (time.Time, error) {
	t, err := calendar.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("stored date: %w", err)
	}
	return t, nil
}
