package service

import "time"

// EndOfWeekCutoff returns Sunday 23:59:59 of the week containing t, in loc.
// Weeks run Monday through Sunday, so a Sunday is its own cutoff day.
func EndOfWeekCutoff(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	days := (7 - int(t.Weekday())) % 7
	sunday := t.AddDate(0, 0, days)
	return time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, loc)
}

// Closable reports whether a session dated sessionDate may be closed at now:
// the date must be on or before the current week's cutoff, i.e. not in a
// future week.
func Closable(sessionDate, now time.Time, loc *time.Location) bool {
	return !sessionDate.In(loc).After(EndOfWeekCutoff(now, loc))
}

// CutoffPassed reports whether sessionDate's own week cutoff is behind now.
// The auto-close sweep closes open sessions once this holds.
func CutoffPassed(sessionDate, now time.Time, loc *time.Location) bool {
	return now.In(loc).After(EndOfWeekCutoff(sessionDate, loc))
}
