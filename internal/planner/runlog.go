package planner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/studyplan/internal/store"
)

// Run operation names recorded in the event log.
const (
	OpRegenerate     = "regenerate"
	OpGenerateCourse = "generate-course"
	OpScore          = "score"
	OpDetect         = "detect"
	OpRebalance      = "rebalance"
)

// LoggingScheduler is a decorator that records every scheduling run as an
// event.
type LoggingScheduler struct {
	inner     Scheduler
	eventRepo store.EventRepo
}

// WithRunLog wraps a Scheduler with run event logging.
func WithRunLog(s Scheduler, repo store.EventRepo) Scheduler {
	return &LoggingScheduler{inner: s, eventRepo: repo}
}

func (l *LoggingScheduler) RegeneratePlanForExam(ctx context.Context, examID int, opts RegenerateOptions) ([]store.Session, error) {
	start := time.Now()
	sessions, err := l.inner.RegeneratePlanForExam(ctx, examID, opts)
	l.record(ctx, start, store.RunEventData{
		Operation:       OpRegenerate,
		ExamID:          examID,
		SessionsCreated: len(sessions),
	}, err)
	return sessions, err
}

func (l *LoggingScheduler) GeneratePlanForCourse(ctx context.Context, course store.Course) ([]store.Session, error) {
	start := time.Now()
	sessions, err := l.inner.GeneratePlanForCourse(ctx, course)
	l.record(ctx, start, store.RunEventData{
		Operation:       OpGenerateCourse,
		ExamID:          course.ExamID,
		SessionsCreated: len(sessions),
	}, err)
	return sessions, err
}

func (l *LoggingScheduler) OnScoreRecorded(ctx context.Context, score store.Score) (*ReplanResult, error) {
	start := time.Now()
	res, err := l.inner.OnScoreRecorded(ctx, score)

	data := store.RunEventData{Operation: OpScore}
	if res != nil {
		if res.Remedial != nil {
			data.ExamID = res.Remedial.ExamID
			data.SessionsCreated = 1
		}
		if res.Moved != nil {
			data.ExamID = res.Moved.ExamID
			data.SessionsMoved = 1
		}
	}
	l.record(ctx, start, data, err)
	return res, err
}

func (l *LoggingScheduler) DetectConflicts(ctx context.Context) ([]ConflictReport, error) {
	start := time.Now()
	reports, err := l.inner.DetectConflicts(ctx)
	// Unresolved counts the overbooked days found.
	l.record(ctx, start, store.RunEventData{
		Operation:  OpDetect,
		Unresolved: len(reports),
	}, err)
	return reports, err
}

func (l *LoggingScheduler) Rebalance(ctx context.Context, scope Scope) (*RebalanceResult, error) {
	start := time.Now()
	res, err := l.inner.Rebalance(ctx, scope)

	data := store.RunEventData{Operation: OpRebalance, ExamID: scope.ExamID}
	if res != nil {
		data.SessionsMoved = res.AdjustmentsCount
		data.Unresolved = len(res.Unresolved)
	}
	l.record(ctx, start, data, err)
	return res, err
}

func (l *LoggingScheduler) record(ctx context.Context, start time.Time, data store.RunEventData, err error) {
	data.RunID = uuid.NewString()
	data.LatencyMs = time.Since(start).Milliseconds()
	data.Success = err == nil
	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// Log the event but don't fail the run if logging fails.
	if logErr := l.eventRepo.AppendRunEvent(ctx, data); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log %s run event: %v\n", data.Operation, logErr)
	}
}
