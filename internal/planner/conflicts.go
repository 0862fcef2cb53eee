package planner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/abhisek/studyplan/internal/store"
)

// ConflictReport describes one overbooked day.
type ConflictReport struct {
	Date      time.Time
	Sessions  int
	Minutes   int
	Capacity  int
	MaxPerDay int
	ExamIDs   []int
}

// DetectConflicts lists every day whose pending sessions, across all exams,
// exceed the per-day session cap or the day's minute budget.
func (e *Engine) DetectConflicts(ctx context.Context) ([]ConflictReport, error) {
	in, err := e.loadInputs(ctx)
	if err != nil {
		return nil, err
	}
	sessions, err := e.repo.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return detect(pendingOnly(sessions), in), nil
}

func pendingOnly(sessions []store.Session) []store.Session {
	out := make([]store.Session, 0, len(sessions))
	for _, s := range sessions {
		if !s.Done() {
			out = append(out, s)
		}
	}
	return out
}

// detect groups sessions by final date and returns the overbooked days in
// date order.
func detect(sessions []store.Session, in *inputs) []ConflictReport {
	byDay := make(map[time.Time]*ConflictReport)
	exams := make(map[time.Time]map[int]bool)
	for _, s := range sessions {
		r, ok := byDay[s.FinalDate]
		if !ok {
			r = &ConflictReport{
				Date:      s.FinalDate,
				Capacity:  in.avail.Capacity(s.FinalDate),
				MaxPerDay: in.params.MaxPerDay,
			}
			byDay[s.FinalDate] = r
			exams[s.FinalDate] = make(map[int]bool)
		}
		r.Sessions++
		r.Minutes += s.Duration
		exams[s.FinalDate][s.ExamID] = true
	}

	var reports []ConflictReport
	for day, r := range byDay {
		if r.Sessions <= r.MaxPerDay && r.Minutes <= r.Capacity {
			continue
		}
		for id := range exams[day] {
			r.ExamIDs = append(r.ExamIDs, id)
		}
		sort.Ints(r.ExamIDs)
		reports = append(reports, *r)
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].Date.Before(reports[j].Date) })
	return reports
}
