package planner

import (
	"context"
	"fmt"
	"sort"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/curve"
	"github.com/abhisek/studyplan/internal/store"
)

// ReplanAction is what OnScoreRecorded did with a score.
type ReplanAction string

const (
	ActionNone     ReplanAction = "none"
	ActionRemedial ReplanAction = "remedial"
	ActionSpaced   ReplanAction = "spaced"
)

// ReplanResult describes the plan change caused by one score.
type ReplanResult struct {
	Action ReplanAction

	// Remedial is the session inserted for a low score.
	Remedial *store.Session

	// Moved is the session pushed back after a high score.
	Moved *Adjustment
}

// OnScoreRecorded reacts to a graded quiz. A low score inserts one remedial
// session a couple of days after the evaluation. A high score spaces out the
// next session of the course. Anything in between leaves the plan alone.
func (e *Engine) OnScoreRecorded(ctx context.Context, score store.Score) (*ReplanResult, error) {
	if err := score.Validate(); err != nil {
		return nil, err
	}
	course, err := e.course(ctx, score.CourseID)
	if err != nil {
		return nil, err
	}
	exam, err := e.exam(ctx, course.ExamID)
	if err != nil {
		return nil, err
	}
	in, err := e.loadInputs(ctx)
	if err != nil {
		return nil, err
	}

	switch {
	case in.params.IsLow(score.Raw, score.Total):
		return e.addRemedial(ctx, score, *course, *exam, in)
	case in.params.IsHigh(score.Raw, score.Total):
		return e.spaceOut(ctx, score, *course, *exam, in)
	}
	return &ReplanResult{Action: ActionNone}, nil
}

func (e *Engine) addRemedial(ctx context.Context, score store.Score, course store.Course, exam store.Exam, in *inputs) (*ReplanResult, error) {
	sessions, err := e.repo.ListSessionsByExam(ctx, exam.ID)
	if err != nil {
		return nil, fmt.Errorf("list sessions of exam %d: %w", exam.ID, err)
	}
	count := 0
	for _, s := range sessions {
		if s.CourseID == course.ID {
			count++
		}
	}

	target := calendar.AddDays(score.EvaluatedOn, in.params.RemedialDelayDays())
	if !target.Before(exam.Date) {
		target = calendar.AddDays(exam.Date, -1)
	}
	duration := curve.Duration(baseDuration(course, in.params), count, in.params.MinDuration, in.params.MaxDuration)
	final := findSlot(target, exam.Date, duration, isProtected(course), in, LedgerFrom(sessions, true))

	created, err := e.repo.CreateSessions(ctx, []store.Session{{
		CourseID:   course.ID,
		ExamID:     exam.ID,
		Milestone:  fmt.Sprintf("JR%d", score.ID),
		TargetDate: target,
		FinalDate:  final,
		Duration:   duration,
		Status:     store.StatusPending,
	}})
	if err != nil {
		return nil, fmt.Errorf("save remedial session for course %d: %w", course.ID, err)
	}
	return &ReplanResult{Action: ActionRemedial, Remedial: &created[0]}, nil
}

func (e *Engine) spaceOut(ctx context.Context, score store.Score, course store.Course, exam store.Exam, in *inputs) (*ReplanResult, error) {
	none := &ReplanResult{Action: ActionNone}

	sessions, err := e.repo.ListSessionsByCourse(ctx, course.ID)
	if err != nil {
		return nil, fmt.Errorf("list sessions of course %d: %w", course.ID, err)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		if !sessions[i].FinalDate.Equal(sessions[j].FinalDate) {
			return sessions[i].FinalDate.Before(sessions[j].FinalDate)
		}
		return sessions[i].ID < sessions[j].ID
	})

	idx := -1
	for i, s := range sessions {
		if s.Milestone == score.Milestone {
			idx = i
			break
		}
	}
	if idx < 0 || idx+1 >= len(sessions) {
		return none, nil
	}
	next := sessions[idx+1]
	if next.Done() {
		return none, nil
	}

	limit := calendar.AddDays(exam.Date, -1)
	if idx+2 < len(sessions) {
		limit = calendar.AddDays(sessions[idx+2].FinalDate, -1)
	}
	moved := calendar.Min(calendar.AddDays(next.FinalDate, in.params.HighBonusDays), limit)
	if !moved.After(next.FinalDate) {
		return none, nil
	}

	adj := Adjustment{
		SessionID:   next.ID,
		CourseID:    course.ID,
		ExamID:      exam.ID,
		CourseTitle: course.Title,
		Milestone:   next.Milestone,
		From:        next.FinalDate,
		To:          moved,
		Duration:    next.Duration,
	}
	next.FinalDate = moved
	if _, err := e.repo.SaveSession(ctx, next); err != nil {
		return nil, fmt.Errorf("save session %d: %w", next.ID, err)
	}
	return &ReplanResult{Action: ActionSpaced, Moved: &adj}, nil
}
