package timezones

import (
	"testing"
	"time"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := Resolve(name)
	if err != nil {
		t.Skipf("timezone data unavailable for %s: %v", name, err)
	}
	return loc
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"empty means local", "", false},
		{"Local", "Local", false},
		{"UTC", "UTC", false},
		{"unknown", "Invalid/Timezone", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Resolve(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Resolve(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestDayWindow_UTC(t *testing.T) {
	noon := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	w := DayWindow(noon, time.UTC)

	if want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC); !w.Start.Equal(want) {
		t.Errorf("Start: got %v, want %v", w.Start, want)
	}
	if want := time.Date(2024, 3, 15, 23, 59, 59, 0, time.UTC); !w.End.Equal(want) {
		t.Errorf("End: got %v, want %v", w.End, want)
	}
	if w.Contains(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC).Unix()) {
		t.Error("next midnight must not be inside the window")
	}
	if !w.Contains(w.StartUnix()) || !w.Contains(w.EndUnix()) {
		t.Error("window bounds are inclusive")
	}
}

func TestDayWindow_UsesLocalCalendarDay(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	// 02:00 UTC on the 16th is still the 15th in New York.
	instant := time.Date(2024, 3, 16, 2, 0, 0, 0, time.UTC)
	w := DayWindow(instant, ny)
	if w.Start.Day() != 15 {
		t.Errorf("expected the 15th local day, got %v", w.Start)
	}
}

func TestDayWindow_DSTDayLength(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	// Spring forward in 2024 was March 10.
	w := DayWindow(time.Date(2024, 3, 10, 12, 0, 0, 0, ny), ny)
	if got := w.End.Sub(w.Start) + time.Second; got != 23*time.Hour {
		t.Errorf("DST day length: got %v, want 23h", got)
	}
}

func TestParseDateTime_RoundTrip(t *testing.T) {
	ts, err := ParseDateTime("2024-05-01T08:45", time.UTC)
	if err != nil {
		t.Fatalf("ParseDateTime: %v", err)
	}
	if got := FormatDateTime(ts.Unix(), time.UTC); got != "2024-05-01T08:45" {
		t.Errorf("FormatDateTime: got %q", got)
	}
	if got := FormatTime(ts.Unix(), time.UTC); got != "08:45 AM" {
		t.Errorf("FormatTime: got %q", got)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    Clock
		wantErr bool
	}{
		{"09:00", Clock{9, 0, 0}, false},
		{"17:30:15", Clock{17, 30, 15}, false},
		{"9am", Clock{}, true},
		{"", Clock{}, true},
	}
	for _, tt := range tests {
		got, err := ParseClock(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseClock(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseClock(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClockOn(t *testing.T) {
	c := Clock{Hour: 9}
	checkIn := time.Date(2024, 1, 2, 13, 0, 0, 0, time.UTC)
	if got, want := c.On(checkIn, time.UTC), time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("On: got %v, want %v", got, want)
	}
	if c.String() != "09:00" {
		t.Errorf("String: got %q", c.String())
	}
}
