package settings

import (
	"fmt"
	"time"

	"github.com/abhisek/studyplan/internal/calendar"
)

// Availability answers how many minutes of study a given day can hold.
// A date entry wins over a weekday entry, which wins over the default.
type Availability struct {
	byDate map[time.Time]int
	weekly calendar.Week
}

// NewAvailability resolves raw availability rows keyed by YYYY-MM-DD dates
// or weekday names. Weekdays without an entry get defaultMinutes.
func NewAvailability(raw map[string]int, defaultMinutes int) (Availability, error) {
	a := Availability{
		byDate: make(map[time.Time]int),
		weekly: calendar.FilledWeek(defaultMinutes),
	}
	for key, minutes := range raw {
		if minutes < 0 {
			return Availability{}, fmt.Errorf("availability %q: negative minutes %d", key, minutes)
		}
		if wd, err := calendar.ParseWeekday(key); err == nil {
			a.weekly[wd] = minutes
			continue
		}
		day, err := calendar.Parse(key)
		if err != nil {
			return Availability{}, fmt.Errorf("availability %q: not a date or weekday", key)
		}
		a.byDate[day] = minutes
	}
	return a, nil
}

// UniformAvailability returns an Availability with the same capacity every day.
func UniformAvailability(minutes int) Availability {
	return Availability{
		byDate: make(map[time.Time]int),
		weekly: calendar.FilledWeek(minutes),
	}
}

// Capacity returns the minute budget of day.
func (a Availability) Capacity(day time.Time) int {
	if m, ok := a.byDate[calendar.Day(day)]; ok {
		return m
	}
	return a.weekly.On(day)
}
