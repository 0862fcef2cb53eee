package planner

import (
	"time"

	"github.com/abhisek/studyplan/internal/calendar"
	"github.com/abhisek/studyplan/internal/settings"
	"github.com/abhisek/studyplan/internal/store"
)

// isProtected reports whether a course keeps its computed dates even when
// they overload a day: major courses and courses of priority 7 and above.
func isProtected(c store.Course) bool {
	return c.Kind == store.KindMajor || c.Priority >= settings.ProtectedPriority
}

// findSlot returns the day a session of duration minutes lands on, starting
// from candidate and always before examDate.
//
// Protected courses keep the candidate. Others take the first day from the
// candidate on with a free session slot and enough minutes left. When no day
// before the exam qualifies, the session goes on the eve of the exam: load
// limits are advisory, the exam date is not.
func findSlot(candidate, examDate time.Time, duration int, protected bool, in *inputs, ledger *Ledger) time.Time {
	eve := calendar.AddDays(examDate, -1)
	if !candidate.Before(examDate) {
		candidate = eve
	}
	if protected {
		return candidate
	}

	for day := candidate; day.Before(examDate); day = calendar.AddDays(day, 1) {
		load := ledger.Load(day)
		if load.Sessions < in.params.MaxPerDay && load.Minutes+duration <= in.avail.Capacity(day) {
			return day
		}
	}
	return eve
}

// findRebalanceSlot looks for a new day for s strictly after its current
// date and before examDate. On top of the load limits, days without any
// availability are skipped and every other pending session of the course
// must be at least MinGapDays away, before or after the day. pending holds
// the current dates of every pending session in the run.
func findRebalanceSlot(s store.Session, examDate time.Time, pending []store.Session, in *inputs, ledger *Ledger) (time.Time, bool) {
	for day := calendar.AddDays(s.FinalDate, 1); day.Before(examDate); day = calendar.AddDays(day, 1) {
		capacity := in.avail.Capacity(day)
		if capacity <= 0 {
			continue
		}
		load := ledger.Load(day)
		if load.Sessions >= in.params.MaxPerDay || load.Minutes+s.Duration > capacity {
			continue
		}
		if !gapRespected(s, day, pending, in.params.MinGapDays) {
			continue
		}
		return day, true
	}
	return time.Time{}, false
}

func gapRespected(s store.Session, day time.Time, pending []store.Session, minGap int) bool {
	if minGap <= 0 {
		return true
	}
	for _, other := range pending {
		if other.ID == s.ID || other.CourseID != s.CourseID {
			continue
		}
		gap := calendar.DaysBetween(other.FinalDate, day)
		if gap < 0 {
			gap = -gap
		}
		if gap < minGap {
			return false
		}
	}
	return true
}
