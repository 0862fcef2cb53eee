// Package planner is the scheduling engine. It turns courses into dated study
// sessions, keeps daily load within the configured budget, and adapts the
// plan when quiz scores come in.
//
// A run (one call on Engine) loads its inputs once, works on in-memory state
// that it alone owns, then writes the result back through store.PlanRepo.
// Callers must not run two mutating calls for the same exam concurrently.
package planner

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/studyplan/internal/settings"
	"github.com/abhisek/studyplan/internal/store"
)

// ErrNotFound is returned when an exam or course a run depends on is missing.
var ErrNotFound = errors.New("planner: not found")

// ErrInvalidScore is returned for scores with a non-positive total, a negative
// value, or a value above the total.
var ErrInvalidScore = store.ErrInvalidScore

// Scheduler is the engine's public surface.
type Scheduler interface {
	// RegeneratePlanForExam replaces the plan of every course of an exam.
	RegeneratePlanForExam(ctx context.Context, examID int, opts RegenerateOptions) ([]store.Session, error)

	// GeneratePlanForCourse replaces the plan of one course, fitting it
	// around the sessions already planned for the rest of the exam.
	GeneratePlanForCourse(ctx context.Context, course store.Course) ([]store.Session, error)

	// OnScoreRecorded adapts a course's plan to a graded quiz.
	OnScoreRecorded(ctx context.Context, score store.Score) (*ReplanResult, error)

	// DetectConflicts lists overbooked days across all exams.
	DetectConflicts(ctx context.Context) ([]ConflictReport, error)

	// Rebalance moves low-priority sessions off overbooked days.
	Rebalance(ctx context.Context, scope Scope) (*RebalanceResult, error)
}

// Engine implements Scheduler on top of a PlanRepo.
type Engine struct {
	repo store.PlanRepo
}

// New creates an engine reading and writing through repo.
func New(repo store.PlanRepo) *Engine {
	return &Engine{repo: repo}
}

// inputs is the configuration snapshot of one run.
type inputs struct {
	params    settings.Params
	avail     settings.Availability
	revisions settings.RevisionTable
}

// loadInputs reads parameters, availability and the revision table once.
func (e *Engine) loadInputs(ctx context.Context) (*inputs, error) {
	raw, err := e.repo.Parameters(ctx)
	if err != nil {
		return nil, fmt.Errorf("load parameters: %w", err)
	}
	params, err := settings.Resolve(raw)
	if err != nil {
		return nil, fmt.Errorf("resolve parameters: %w", err)
	}

	rawAvail, err := e.repo.Availability(ctx)
	if err != nil {
		return nil, fmt.Errorf("load availability: %w", err)
	}
	avail, err := settings.NewAvailability(rawAvail, params.DefaultDailyMinutes())
	if err != nil {
		return nil, fmt.Errorf("resolve availability: %w", err)
	}

	table, err := e.repo.RevisionTable(ctx)
	if err != nil {
		return nil, fmt.Errorf("load revision table: %w", err)
	}

	return &inputs{params: params, avail: avail, revisions: settings.RevisionTable(table)}, nil
}

func (e *Engine) exam(ctx context.Context, id int) (*store.Exam, error) {
	exam, err := e.repo.GetExam(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load exam %d: %w", id, err)
	}
	if exam == nil {
		return nil, fmt.Errorf("exam %d: %w", id, ErrNotFound)
	}
	return exam, nil
}

func (e *Engine) course(ctx context.Context, id int) (*store.Course, error) {
	course, err := e.repo.GetCourse(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load course %d: %w", id, err)
	}
	if course == nil {
		return nil, fmt.Errorf("course %d: %w", id, ErrNotFound)
	}
	return course, nil
}

// baseDuration is the minute count the duration curve scales for a course.
func baseDuration(c store.Course, p settings.Params) int {
	if d := c.EffectiveDuration(); d > 0 {
		return d
	}
	return p.MinDuration
}
