package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/studyplan/internal/calendar"
)

func (r *repo) CreateCourse(ctx context.Context, c *Course) error {
	query, args := builder.Insert(coursesTable).
		Columns("title", "kind", "start_date", "base_duration", "estimated_duration", "priority", "exam_id").
		Values(c.Title, string(c.Kind), calendar.Format(c.StartDate), c.BaseDuration,
			nullInt(c.EstimatedDuration), c.Priority, c.ExamID).
		Query()
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("save course: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("course id: %w", err)
	}
	c.ID = int(id)
	return nil
}

func (r *repo) GetCourse(ctx context.Context, id int) (*Course, error) {
	query, args := selectCourses().Where(entsql.EQ("id", id)).Query()
	courses, err := r.queryCourses(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(courses) == 0 {
		return nil, nil
	}
	return &courses[0], nil
}

// ListCoursesByExam returns the exam's courses in creation order.
func (r *repo) ListCoursesByExam(ctx context.Context, examID int) ([]Course, error) {
	query, args := selectCourses().Where(entsql.EQ("exam_id", examID)).OrderBy("id").Query()
	return r.queryCourses(ctx, query, args)
}

func (r *repo) DeleteCourse(ctx context.Context, id int) error {
	query, args := builder.Delete(coursesTable).Where(entsql.EQ("id", id)).Query()
	return execAffecting(ctx, r.db, query, args, "course", id)
}

func selectCourses() *entsql.Selector {
	return builder.Select("id", "exam_id", "title", "kind", "start_date",
		"base_duration", "estimated_duration", "priority").
		From(builder.Table(coursesTable))
}

func (r *repo) queryCourses(ctx context.Context, query string, args []any) ([]Course, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer rows.Close()

	var courses []Course
	for rows.Next() {
		var (
			c         Course
			kind      string
			start     string
			estimated sql.NullInt64
		)
		if err := rows.Scan(&c.ID, &c.ExamID, &c.Title, &kind, &start,
			&c.BaseDuration, &estimated, &c.Priority); err != nil {
			return nil, fmt.Errorf("scan course: %w", err)
		}
		c.Kind = CourseKind(kind)
		c.EstimatedDuration = int(estimated.Int64)
		if c.StartDate, err = parseStoredDate(start); err != nil {
			return nil, err
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
