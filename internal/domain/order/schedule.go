package order

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout    = "2006-01-02"
	minutesPerDay = 24 * 60
)

// WorkingHours is the daily window services must fit in, in minutes from midnight.
type WorkingHours struct {
	start int
	end   int
}

func NewWorkingHours(start, end string) (WorkingHours, error) {
	s, err := parseClockMinutes(start)
	if err != nil {
		return WorkingHours{}, fmt.Errorf("working hours start: %w", err)
	}
	e, err := parseClockMinutes(end)
	if err != nil {
		return WorkingHours{}, fmt.Errorf("working hours end: %w", err)
	}
	if e <= s {
		return WorkingHours{}, fmt.Errorf("%w: working hours end %s must be after start %s", ErrInvalidSchedule, end, start)
	}
	return WorkingHours{start: s, end: e}, nil
}

func (h WorkingHours) Start() int { return h.start }
func (h WorkingHours) End() int   { return h.end }

// Slot is the conflict-comparison view of a schedule: [Start, End) minutes on Date.
type Slot struct {
	Date  string
	Start int
	End   int
}

// Overlaps uses half-open intervals, so touching endpoints never overlap.
func (a Slot) Overlaps(b Slot) bool {
	return a.Date == b.Date && a.Start < b.End && a.End > b.Start
}

func (a Slot) String() string {
	return fmt.Sprintf("%s %s-%s", a.Date, FormatClock(a.Start), FormatClock(a.End))
}

type Schedule struct {
	date            time.Time
	startMinute     int
	estimatedHours  float64
	durationMinutes int
}

// NewSchedule parses the wire representation: date "YYYY-MM-DD", time "HH:MM" (seconds allowed).
func NewSchedule(date, startTime string, estimatedHours float64) (Schedule, error) {
	d, err := ParseDate(date)
	if err != nil {
		return Schedule{}, err
	}
	start, err := parseClockMinutes(startTime)
	if err != nil {
		return Schedule{}, err
	}
	return ScheduleFromParts(d, start, estimatedHours)
}

// ScheduleFromParts builds a schedule from already-typed storage values.
func ScheduleFromParts(date time.Time, startMinute int, estimatedHours float64) (Schedule, error) {
	if startMinute < 0 || startMinute >= minutesPerDay {
		return Schedule{}, fmt.Errorf("%w: start minute %d out of range", ErrInvalidSchedule, startMinute)
	}
	if math.IsNaN(estimatedHours) || math.IsInf(estimatedHours, 0) || estimatedHours <= 0 {
		return Schedule{}, fmt.Errorf("%w: estimated hours must be positive", ErrInvalidSchedule)
	}
	duration := int(math.Round(estimatedHours * 60))
	if duration <= 0 {
		return Schedule{}, fmt.Errorf("%w: duration rounds to zero minutes", ErrInvalidSchedule)
	}
	y, m, dd := date.Date()
	return Schedule{
		date:            time.Date(y, m, dd, 0, 0, 0, 0, time.UTC),
		startMinute:     startMinute,
		estimatedHours:  estimatedHours,
		durationMinutes: duration,
	}, nil
}

func (s Schedule) Date() time.Time         { return s.date }
func (s Schedule) DateString() string      { return s.date.Format(DateLayout) }
func (s Schedule) StartMinute() int        { return s.startMinute }
func (s Schedule) EndMinute() int          { return s.startMinute + s.durationMinutes }
func (s Schedule) DurationMinutes() int    { return s.durationMinutes }
func (s Schedule) EstimatedHours() float64 { return s.estimatedHours }
func (s Schedule) StartClock() string      { return FormatClock(s.startMinute) }

func (s Schedule) Slot() Slot {
	return Slot{Date: s.DateString(), Start: s.startMinute, End: s.EndMinute()}
}

// Within rejects schedules that start before or end after the working-hours window.
func (s Schedule) Within(h WorkingHours) error {
	if s.startMinute < h.start {
		return fmt.Errorf("%w: starts at %s before working hours begin at %s",
			ErrInvalidSchedule, FormatClock(s.startMinute), FormatClock(h.start))
	}
	if s.EndMinute() > h.end {
		return fmt.Errorf("%w: ends at %s after working hours end at %s",
			ErrInvalidSchedule, FormatClock(s.EndMinute()), FormatClock(h.end))
	}
	return nil
}

func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: malformed date %q", ErrInvalidSchedule, raw)
	}
	return d, nil
}

// ParseClock converts "HH:MM" or "HH:MM:SS" to minutes from midnight. "24:00" is accepted
// so a working day can end at midnight.
func ParseClock(raw string) (int, error) {
	return parseClockMinutes(raw)
}

func parseClockMinutes(raw string) (int, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: malformed time %q", ErrInvalidSchedule, raw)
	}
	values := make([]int, len(parts))
	for i, p := range parts {
		if len(p) != 2 || !isDigit(p[0]) || !isDigit(p[1]) {
			return 0, fmt.Errorf("%w: malformed time %q", ErrInvalidSchedule, raw)
		}
		v, err := strconv.Atoi(p)
		if err != nil {
			return 0, fmt.Errorf("%w: malformed time %q", ErrInvalidSchedule, raw)
		}
		values[i] = v
	}
	hour, minute := values[0], values[1]
	if minute > 59 || (len(values) == 3 && values[2] > 59) {
		return 0, fmt.Errorf("%w: malformed time %q", ErrInvalidSchedule, raw)
	}
	if hour == 24 && minute == 0 && (len(values) == 2 || values[2] == 0) {
		return minutesPerDay, nil
	}
	if hour > 23 {
		return 0, fmt.Errorf("%w: malformed time %q", ErrInvalidSchedule, raw)
	}
	return hour*60 + minute, nil
}

func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
