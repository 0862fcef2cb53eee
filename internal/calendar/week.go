package calendar

import (
	"fmt"
	"strings"
	"time"
)

// weekdayNames maps accepted weekday spellings to time.Weekday. French names
// are kept because availability tables were historically keyed by them.
var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"dimanche":  time.Sunday,
	"lundi":     time.Monday,
	"mardi":     time.Tuesday,
	"mercredi":  time.Wednesday,
	"jeudi":     time.Thursday,
	"vendredi":  time.Friday,
	"samedi":    time.Saturday,
}

// ParseWeekday resolves an English or French weekday name, case-insensitively.
func ParseWeekday(name string) (time.Weekday, error) {
	wd, ok := weekdayNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return wd, nil
}

// Week holds one integer per weekday, indexed by time.Weekday. Every day
// always has a value, so lookups never miss.
type Week [7]int

// FilledWeek returns a Week with every day set to v.
func FilledWeek(v int) Week {
	var w Week
	for i := range w {
		w[i] = v
	}
	return w
}

// On returns the value for the weekday of t.
func (w Week) On(t time.Time) int {
	return w[t.Weekday()]
}
