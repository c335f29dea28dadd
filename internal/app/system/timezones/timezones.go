// Package timezones turns calendar days and wall-clock inputs into the
// epoch-second boundaries the attendance API filters on.
//
// All conversions take an explicit *time.Location (the console's configured
// zone) so that "a day's records" means the same thing on every page.
package timezones

import (
	"fmt"
	"strings"
	"time"
)

// Layouts used by HTML date and datetime-local inputs.
const (
	DayLayout       = "2006-01-02"
	DateTimeLayout  = "2006-01-02T15:04"
	ClockLayout     = "15:04"
	DisplayTime     = "03:04 PM"
	DisplayDate     = "01/02/2006"
	DisplayDateLong = "January 2, 2006"
)

// Resolve loads a location by IANA name. "", "Local" and "local" mean the
// process's local zone.
func Resolve(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local", "local":
		return time.Local, nil
	}
	loc, err := time.LoadLocation(strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// Window is an inclusive [Start, End] range of whole seconds.
type Window struct {
	Start time.Time
	End   time.Time
}

// StartUnix returns Start as epoch seconds.
func (w Window) StartUnix() int64 { return w.Start.Unix() }

// EndUnix returns End as epoch seconds.
func (w Window) EndUnix() int64 { return w.End.Unix() }

// Contains reports whether ts (epoch seconds) falls inside the window.
func (w Window) Contains(ts int64) bool {
	return ts >= w.StartUnix() && ts <= w.EndUnix()
}

// DayWindow returns local midnight of t's calendar day in loc through the
// last second before the next local midnight. AddDate keeps DST days at
// their true 23 or 25 hours.
func DayWindow(t time.Time, loc *time.Location) Window {
	lt := t.In(loc)
	start := time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
	next := start.AddDate(0, 0, 1)
	return Window{Start: start, End: next.Add(-time.Second)}
}

// ParseDay parses a YYYY-MM-DD date in loc.
func ParseDay(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DayLayout, strings.TrimSpace(s), loc)
}

// ParseDateTime parses a datetime-local input value (YYYY-MM-DDTHH:MM) in loc.
func ParseDateTime(s string, loc *time.Location) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, strings.TrimSpace(s), loc)
}

// FormatDateTime renders epoch seconds as a datetime-local input value in loc.
func FormatDateTime(ts int64, loc *time.Location) string {
	return time.Unix(ts, 0).In(loc).Format(DateTimeLayout)
}

// FormatTime renders epoch seconds as "03:04 PM" in loc.
func FormatTime(ts int64, loc *time.Location) string {
	return time.Unix(ts, 0).In(loc).Format(DisplayTime)
}

// FormatDate renders epoch seconds as "01/02/2006" in loc.
func FormatDate(ts int64, loc *time.Location) string {
	return time.Unix(ts, 0).In(loc).Format(DisplayDate)
}

// Clock is a wall-clock time of day.
type Clock struct {
	Hour, Minute, Second int
}

// ParseClock parses "HH:MM" or "HH:MM:SS".
func ParseClock(s string) (Clock, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", ClockLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return Clock{}, fmt.Errorf("invalid time of day %q (want HH:MM)", s)
}

// On returns the instant this clock time occurs on t's calendar day in loc.
func (c Clock) On(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), c.Hour, c.Minute, c.Second, 0, loc)
}

func (c Clock) String() string {
	if c.Second != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
	}
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}
