package store

import (
	"context"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studyplan/internal/calendar"
)

// CreateScore validates and stores a score, assigning its id.
func (r *repo) CreateScore(ctx context.Context, s *Score) error {
	if err := s.Validate(); err != nil {
		return err
	}
	query, args := builder.Insert(scoresTable).
		Columns("milestone", "score", "total", "evaluated_on", "course_id").
		Values(s.Milestone, s.Raw, s.Total, calendar.Format(s.EvaluatedOn), s.CourseID).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save score: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("score id: %w", err)
	}
	s.ID = int(id)
	return nil
}

func (r *repo) ListScoresByCourse(ctx context.Context, courseID int) ([]Score, error) {
	query, args := builder.Select("id", "course_id", "milestone", "score", "total", "evaluated_on").
		From(builder.Table(scoresTable)).
		Where(entsql.EQ("course_id", courseID)).
		OrderBy("evaluated_on", "id").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var scores []Score
	for rows.Next() {
		var (
			s    Score
			date string
		)
		if err := rows.Scan(&s.ID, &s.CourseID, &s.Milestone, &s.Raw, &s.Total, &date); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		if s.EvaluatedOn, err = parseStoredDate(date); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, rows.Err()
}
