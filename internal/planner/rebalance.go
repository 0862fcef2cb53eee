package planner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/studyplan/internal/store"
)

// Scope selects the sessions a rebalance may touch. The zero value is
// global.
type Scope struct {
	ExamID int
}

// GlobalScope covers every exam.
var GlobalScope = Scope{}

// ExamScope covers one exam.
func ExamScope(examID int) Scope {
	return Scope{ExamID: examID}
}

// Global reports whether the scope spans all exams.
func (s Scope) Global() bool {
	return s.ExamID == 0
}

// Adjustment records one session moved to another day.
type Adjustment struct {
	SessionID   int
	CourseID    int
	ExamID      int
	CourseTitle string
	Milestone   string
	From        time.Time
	To          time.Time
	Duration    int
}

// RebalanceResult summarizes a rebalance run.
type RebalanceResult struct {
	AdjustmentsCount  int
	ConflictsResolved int
	AdjustmentDetails []Adjustment
	Unresolved        []store.Session
}

// Rebalance clears overbooked days within scope. Day load always counts the
// pending sessions of every exam; the scope only decides which sessions may
// move. On each flagged day the most important sessions stay (out of scope
// first, then major, then by priority) and the rest move to the earliest
// later day that has room and keeps the course's sessions at least
// ecart_min_j days apart. Sessions with nowhere to go are left in place and
// reported as unresolved.
func (e *Engine) Rebalance(ctx context.Context, scope Scope) (*RebalanceResult, error) {
	in, err := e.loadInputs(ctx)
	if err != nil {
		return nil, err
	}

	var exams []store.Exam
	if scope.Global() {
		if exams, err = e.repo.ListExams(ctx); err != nil {
			return nil, fmt.Errorf("list exams: %w", err)
		}
	} else {
		exam, err := e.exam(ctx, scope.ExamID)
		if err != nil {
			return nil, err
		}
		exams = []store.Exam{*exam}
	}

	examDates := make(map[int]time.Time, len(exams))
	courses := make(map[int]store.Course)
	for _, x := range exams {
		examDates[x.ID] = x.Date
		list, err := e.repo.ListCoursesByExam(ctx, x.ID)
		if err != nil {
			return nil, fmt.Errorf("list courses of exam %d: %w", x.ID, err)
		}
		for _, c := range list {
			courses[c.ID] = c
		}
	}

	sessions, err := e.repo.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	pending := pendingOnly(sessions)
	ledger := LedgerFrom(pending, false)
	movable := func(s store.Session) bool {
		return scope.Global() || s.ExamID == scope.ExamID
	}

	result := &RebalanceResult{}
	for _, conflict := range detect(pending, in) {
		day := conflict.Date
		keptCount, keptMinutes := 0, 0
		var onDay []int
		for i, s := range pending {
			if !s.FinalDate.Equal(day) {
				continue
			}
			if movable(s) {
				onDay = append(onDay, i)
			} else {
				keptCount++
				keptMinutes += s.Duration
			}
		}
		if len(onDay) == 0 {
			continue
		}
		sort.SliceStable(onDay, func(a, b int) bool {
			return ranksBefore(pending[onDay[a]], pending[onDay[b]], courses)
		})

		capacity := in.avail.Capacity(day)
		unresolved := 0
		for _, i := range onDay {
			s := pending[i]
			if keptCount < in.params.MaxPerDay && keptMinutes+s.Duration <= capacity {
				keptCount++
				keptMinutes += s.Duration
				continue
			}

			ledger.Release(s.FinalDate, s.Duration)
			to, ok := findRebalanceSlot(s, examDates[s.ExamID], pending, in, ledger)
			if !ok {
				ledger.Register(s.FinalDate, s.Duration)
				result.Unresolved = append(result.Unresolved, s)
				unresolved++
				continue
			}

			from := s.FinalDate
			s.FinalDate = to
			if _, err := e.repo.SaveSession(ctx, s); err != nil {
				return nil, fmt.Errorf("save session %d: %w", s.ID, err)
			}
			ledger.Register(to, s.Duration)
			pending[i] = s

			result.AdjustmentDetails = append(result.AdjustmentDetails, Adjustment{
				SessionID:   s.ID,
				CourseID:    s.CourseID,
				ExamID:      s.ExamID,
				CourseTitle: courses[s.CourseID].Title,
				Milestone:   s.Milestone,
				From:        from,
				To:          to,
				Duration:    s.Duration,
			})
		}
		load := ledger.Load(day)
		if unresolved == 0 && load.Sessions <= in.params.MaxPerDay && load.Minutes <= capacity {
			result.ConflictsResolved++
		}
	}
	result.AdjustmentsCount = len(result.AdjustmentDetails)
	return result, nil
}

// ranksBefore orders sessions competing for one day: major courses first,
// then higher priority, then lower id.
func ranksBefore(a, b store.Session, courses map[int]store.Course) bool {
	ca, cb := courses[a.CourseID], courses[b.CourseID]
	if ma, mb := ca.Kind == store.KindMajor, cb.Kind == store.KindMajor; ma != mb {
		return ma
	}
	if ca.Priority != cb.Priority {
		return ca.Priority > cb.Priority
	}
	return a.ID < b.ID
}
