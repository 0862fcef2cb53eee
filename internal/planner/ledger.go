package planner

import (
	"sort"
	"time"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/store"
)

// DayLoad is what is already booked on one day.
type DayLoad struct {
	Sessions int
	Minutes  int
}

// Ledger accumulates the daily load of every session placed during a run.
// It is shared across all courses of the run and is not safe for concurrent
// use.
type Ledger struct {
	days map[time.Time]DayLoad
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{days: make(map[time.Time]DayLoad)}
}

// LedgerFrom seeds a ledger with existing sessions, skipping done ones unless
// includeDone is set.
func LedgerFrom(sessions []store.Session, includeDone bool) *Ledger {
	l := NewLedger()
	for _, s := range sessions {
		if s.Done() && !includeDone {
			continue
		}
		l.Register(s.FinalDate, s.Duration)
	}
	return l
}

// Load returns the booked load of day.
func (l *Ledger) Load(day time.Time) DayLoad {
	return l.days[calendar.Day(day)]
}

// Register books a session of minutes on day.
func (l *Ledger) Register(day time.Time, minutes int) {
	d := calendar.Day(day)
	load := l.days[d]
	load.Sessions++
	load.Minutes += minutes
	l.days[d] = load
}

// Release removes a session of minutes from day.
func (l *Ledger) Release(day time.Time, minutes int) {
	d := calendar.Day(day)
	load, ok := l.days[d]
	if !ok {
		return
	}
	load.Sessions--
	load.Minutes -= minutes
	if load.Sessions <= 0 {
		delete(l.days, d)
		return
	}
	l.days[d] = load
}

// Days returns every booked day in ascending order.
func (l *Ledger) Days() []time.Time {
	days := make([]time.Time, 0, len(l.days))
	for d := range l.days {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}
