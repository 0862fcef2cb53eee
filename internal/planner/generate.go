package planner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/curve"
	"github.com/abhisek/studyplan/internal/store"
)

// RegenerateOptions controls RegeneratePlanForExam.
type RegenerateOptions struct {
	// KeepDone preserves completed sessions. They still count toward the
	// daily load of the days they occupy.
	KeepDone bool
}

// RegeneratePlanForExam throws away the exam's plan and builds a new one for
// every course, highest priority first, so that important courses get the
// days they ask for and lighter ones are pushed forward.
func (e *Engine) RegeneratePlanForExam(ctx context.Context, examID int, opts RegenerateOptions) ([]store.Session, error) {
	exam, err := e.exam(ctx, examID)
	if err != nil {
		return nil, err
	}
	in, err := e.loadInputs(ctx)
	if err != nil {
		return nil, err
	}

	if err := e.repo.DeleteSessionsByExam(ctx, examID, opts.KeepDone); err != nil {
		return nil, fmt.Errorf("delete sessions of exam %d: %w", examID, err)
	}

	courses, err := e.repo.ListCoursesByExam(ctx, examID)
	if err != nil {
		return nil, fmt.Errorf("list courses of exam %d: %w", examID, err)
	}
	if len(courses) == 0 {
		return []store.Session{}, nil
	}

	ledger := NewLedger()
	if opts.KeepDone {
		kept, err := e.repo.ListSessionsByExam(ctx, examID)
		if err != nil {
			return nil, fmt.Errorf("list kept sessions of exam %d: %w", examID, err)
		}
		ledger = LedgerFrom(kept, true)
	}

	sort.SliceStable(courses, func(i, j int) bool {
		return courses[i].Priority > courses[j].Priority
	})

	var planned []store.Session
	for _, c := range courses {
		planned = append(planned, planCourse(c, *exam, in, ledger)...)
	}

	created, err := e.repo.CreateSessions(ctx, planned)
	if err != nil {
		return nil, fmt.Errorf("save plan of exam %d: %w", examID, err)
	}
	return created, nil
}

// GeneratePlanForCourse replaces the sessions of one course, fitting them
// around whatever the rest of the exam already has booked.
func (e *Engine) GeneratePlanForCourse(ctx context.Context, course store.Course) ([]store.Session, error) {
	exam, err := e.exam(ctx, course.ExamID)
	if err != nil {
		return nil, err
	}
	in, err := e.loadInputs(ctx)
	if err != nil {
		return nil, err
	}

	if err := e.repo.DeleteSessionsByCourse(ctx, course.ID); err != nil {
		return nil, fmt.Errorf("delete sessions of course %d: %w", course.ID, err)
	}
	existing, err := e.repo.ListSessionsByExam(ctx, exam.ID)
	if err != nil {
		return nil, fmt.Errorf("list sessions of exam %d: %w", exam.ID, err)
	}

	planned := planCourse(course, *exam, in, LedgerFrom(existing, true))
	created, err := e.repo.CreateSessions(ctx, planned)
	if err != nil {
		return nil, fmt.Errorf("save plan of course %d: %w", course.ID, err)
	}
	return created, nil
}

// planCourse lays out the sessions of one course and books each one in
// ledger as soon as it is placed.
func planCourse(c store.Course, exam store.Exam, in *inputs, ledger *Ledger) []store.Session {
	start := calendar.Day(c.StartDate)
	eve := calendar.AddDays(exam.Date, -1)
	protected := isProtected(c)
	base := baseDuration(c, in.params)

	offsets := curve.Offsets(in.revisions.SessionsFor(c.Priority), calendar.DaysBetween(start, exam.Date))
	sessions := make([]store.Session, 0, len(offsets))

	var prevTarget, prevFinal time.Time
	for i, off := range offsets {
		target := calendar.AddDays(start, off)
		if i > 0 && !target.After(prevTarget) {
			target = calendar.AddDays(prevTarget, 1)
		}
		if target.Before(start) {
			target = start
		}
		if !target.Before(exam.Date) {
			target = eve
		}

		duration := curve.Duration(base, i, in.params.MinDuration, in.params.MaxDuration)

		candidate := target
		if !protected && i > 0 && !candidate.After(prevFinal) {
			candidate = calendar.AddDays(prevFinal, 1)
		}
		final := findSlot(candidate, exam.Date, duration, protected, in, ledger)
		ledger.Register(final, duration)

		sessions = append(sessions, store.Session{
			CourseID:   c.ID,
			ExamID:     exam.ID,
			Milestone:  fmt.Sprintf("J%d", off),
			TargetDate: target,
			FinalDate:  final,
			Duration:   duration,
			Status:     store.StatusPending,
		})
		prevTarget, prevFinal = target, final
	}
	return sessions
}
