// Package agenda classifies planned sessions relative to the current day.
package agenda

import (
	"sort"
	"time"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/store"
)

// Status describes where a session stands for display.
type Status string

const (
	StatusUpcoming Status = "upcoming"
	StatusDue      Status = "due"
	StatusOverdue  Status = "overdue"
	StatusDone     Status = "done"
)

// IsDue returns true if the session is pending and its day has come.
func IsDue(s store.Session, today time.Time) bool {
	return !s.Done() && !calendar.Day(today).Before(s.FinalDate)
}

// OverdueDays returns how many days past its day a pending session is.
// Returns 0 if not yet overdue.
func OverdueDays(s store.Session, today time.Time) int {
	if !IsDue(s, today) {
		return 0
	}
	return calendar.DaysBetween(s.FinalDate, today)
}

// DaysUntil returns the number of days until the session. Returns 0 if
// already due.
func DaysUntil(s store.Session, today time.Time) int {
	if IsDue(s, today) {
		return 0
	}
	return max(0, calendar.DaysBetween(today, s.FinalDate))
}

// StatusOf returns the display status of a session.
func StatusOf(s store.Session, today time.Time) Status {
	switch {
	case s.Done():
		return StatusDone
	case OverdueDays(s, today) > 0:
		return StatusOverdue
	case IsDue(s, today):
		return StatusDue
	}
	return StatusUpcoming
}

// Item is one agenda line.
type Item struct {
	Session store.Session
	Status  Status
	// Days is the overdue count for overdue items and the wait for
	// upcoming ones.
	Days int
}

// Build returns the pending sessions that are overdue, due today, or due
// within horizon days, overdue first then by date.
func Build(sessions []store.Session, today time.Time, horizon int) []Item {
	var items []Item
	for _, s := range sessions {
		status := StatusOf(s, today)
		switch status {
		case StatusDone:
			continue
		case StatusOverdue:
			items = append(items, Item{Session: s, Status: status, Days: OverdueDays(s, today)})
		case StatusDue:
			items = append(items, Item{Session: s, Status: status})
		default:
			if d := DaysUntil(s, today); d <= horizon {
				items = append(items, Item{Session: s, Status: status, Days: d})
			}
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].Session, items[j].Session
		if !a.FinalDate.Equal(b.FinalDate) {
			return a.FinalDate.Before(b.FinalDate)
		}
		return a.ID < b.ID
	})
	return items
}
